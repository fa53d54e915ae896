package store

import (
	"context"
	"fmt"
	"time"

	"workshop-bridge/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// eventStore implements EventStore using PostgreSQL.
type eventStore struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewEventStore creates a new PostgreSQL-backed event store.
func NewEventStore(pool *pgxpool.Pool, logger zerolog.Logger) EventStore {
	return &eventStore{
		pool:   pool,
		logger: logger.With().Str("store", "event").Logger(),
	}
}

// Upcoming retrieves public events starting today or later, soonest
// first, with their linked workshop when one exists.
func (s *eventStore) Upcoming(ctx context.Context, limit int) ([]model.EventDetail, error) {
	query := `
		SELECT e.id, e.title, e.workshop_id, e.start_date, e.end_date, e.is_public, e.created_at,
			w.id, w.slug, w.name, w.description, w.price, w.active, w.created_at, w.updated_at
		FROM events e
		LEFT JOIN workshops w ON w.id = e.workshop_id
		WHERE e.is_public = true AND e.start_date >= current_date
		ORDER BY e.start_date
		LIMIT $1`

	rows, err := s.pool.Query(ctx, query, limit)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to query upcoming events")
		return nil, fmt.Errorf("failed to query upcoming events: %w", err)
	}
	defer rows.Close()

	var details []model.EventDetail
	for rows.Next() {
		var (
			e model.Event

			wID          *uuid.UUID
			wSlug        *string
			wName        *string
			wDescription *string
			wPrice       *float64
			wActive      *bool
			wCreatedAt   *time.Time
			wUpdatedAt   *time.Time
		)

		err := rows.Scan(
			&e.ID, &e.Title, &e.WorkshopID, &e.StartDate, &e.EndDate, &e.IsPublic, &e.CreatedAt,
			&wID, &wSlug, &wName, &wDescription, &wPrice, &wActive, &wCreatedAt, &wUpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}

		detail := model.EventDetail{Event: e}
		if wID != nil {
			detail.Workshop = &model.Workshop{
				ID:          *wID,
				Slug:        *wSlug,
				Name:        *wName,
				Description: wDescription,
				Price:       *wPrice,
				Active:      *wActive,
				CreatedAt:   *wCreatedAt,
				UpdatedAt:   *wUpdatedAt,
			}
		}
		details = append(details, detail)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	return details, nil
}
