package store

import (
	"context"
	"errors"
	"fmt"

	"workshop-bridge/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const workshopColumns = `id, slug, name, description, price, active, created_at, updated_at`

// workshopStore implements WorkshopStore using PostgreSQL.
type workshopStore struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewWorkshopStore creates a new PostgreSQL-backed workshop store.
func NewWorkshopStore(pool *pgxpool.Pool, logger zerolog.Logger) WorkshopStore {
	return &workshopStore{
		pool:   pool,
		logger: logger.With().Str("store", "workshop").Logger(),
	}
}

// ListActive retrieves all active workshops ordered by name.
func (s *workshopStore) ListActive(ctx context.Context) ([]model.Workshop, error) {
	query := fmt.Sprintf(`SELECT %s FROM workshops WHERE active = true ORDER BY name`, workshopColumns)

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to query workshops")
		return nil, fmt.Errorf("failed to query workshops: %w", err)
	}
	defer rows.Close()

	var workshops []model.Workshop
	for rows.Next() {
		w, err := scanWorkshop(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan workshop: %w", err)
		}
		workshops = append(workshops, *w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating workshops: %w", err)
	}

	return workshops, nil
}

// GetBySlug retrieves an active workshop by slug with its sessions.
func (s *workshopStore) GetBySlug(ctx context.Context, slug string) (*model.WorkshopDetail, error) {
	query := fmt.Sprintf(`SELECT %s FROM workshops WHERE slug = $1 AND active = true`, workshopColumns)

	w, err := scanWorkshop(s.pool.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		s.logger.Error().Err(err).Str("slug", slug).Msg("failed to query workshop")
		return nil, fmt.Errorf("failed to query workshop: %w", err)
	}

	sessions, err := s.SessionsForWorkshop(ctx, w.ID)
	if err != nil {
		return nil, err
	}

	return &model.WorkshopDetail{Workshop: *w, Sessions: sessions}, nil
}

// SessionsForWorkshop retrieves the active sessions of a workshop in
// date order.
func (s *workshopStore) SessionsForWorkshop(ctx context.Context, workshopID uuid.UUID) ([]model.WorkshopSession, error) {
	query := `
		SELECT id, workshop_id, date, available_spots, active, created_at
		FROM workshop_sessions
		WHERE workshop_id = $1 AND active = true
		ORDER BY date`

	rows, err := s.pool.Query(ctx, query, workshopID)
	if err != nil {
		s.logger.Error().Err(err).Str("workshop_id", workshopID.String()).Msg("failed to query sessions")
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []model.WorkshopSession
	for rows.Next() {
		var sess model.WorkshopSession
		if err := rows.Scan(&sess.ID, &sess.WorkshopID, &sess.Date, &sess.AvailableSpots, &sess.Active, &sess.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sessions: %w", err)
	}

	return sessions, nil
}

// GetSession retrieves a session by ID with its parent workshop.
func (s *workshopStore) GetSession(ctx context.Context, sessionID uuid.UUID) (*model.SessionDetail, error) {
	query := `
		SELECT s.id, s.workshop_id, s.date, s.available_spots, s.active, s.created_at,
			w.id, w.slug, w.name, w.description, w.price, w.active, w.created_at, w.updated_at
		FROM workshop_sessions s
		JOIN workshops w ON w.id = s.workshop_id
		WHERE s.id = $1`

	detail, err := scanSessionDetail(s.pool.QueryRow(ctx, query, sessionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		s.logger.Error().Err(err).Str("session_id", sessionID.String()).Msg("failed to query session")
		return nil, fmt.Errorf("failed to query session: %w", err)
	}

	return detail, nil
}

// UpcomingSessions retrieves active future sessions in date order.
func (s *workshopStore) UpcomingSessions(ctx context.Context, limit int) ([]model.SessionDetail, error) {
	query := `
		SELECT s.id, s.workshop_id, s.date, s.available_spots, s.active, s.created_at,
			w.id, w.slug, w.name, w.description, w.price, w.active, w.created_at, w.updated_at
		FROM workshop_sessions s
		JOIN workshops w ON w.id = s.workshop_id
		WHERE s.active = true AND s.date > now()
		ORDER BY s.date
		LIMIT $1`

	rows, err := s.pool.Query(ctx, query, limit)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to query upcoming sessions")
		return nil, fmt.Errorf("failed to query upcoming sessions: %w", err)
	}
	defer rows.Close()

	var details []model.SessionDetail
	for rows.Next() {
		detail, err := scanSessionDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		details = append(details, *detail)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sessions: %w", err)
	}

	return details, nil
}

// DecreaseSpots atomically takes one spot from a session. The guard on
// available_spots makes oversell impossible under concurrent bookings.
func (s *workshopStore) DecreaseSpots(ctx context.Context, sessionID uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE workshop_sessions
		SET available_spots = available_spots - 1
		WHERE id = $1 AND available_spots > 0`, sessionID)
	if err != nil {
		s.logger.Error().Err(err).Str("session_id", sessionID.String()).Msg("failed to decrease spots")
		return fmt.Errorf("failed to decrease spots: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrSessionSoldOut
	}

	s.logger.Debug().Str("session_id", sessionID.String()).Msg("session spot taken")

	return nil
}

// IncreaseSpots atomically returns one spot to a session.
func (s *workshopStore) IncreaseSpots(ctx context.Context, sessionID uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE workshop_sessions
		SET available_spots = available_spots + 1
		WHERE id = $1`, sessionID)
	if err != nil {
		s.logger.Error().Err(err).Str("session_id", sessionID.String()).Msg("failed to increase spots")
		return fmt.Errorf("failed to increase spots: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	s.logger.Debug().Str("session_id", sessionID.String()).Msg("session spot returned")

	return nil
}

func scanWorkshop(row pgx.Row) (*model.Workshop, error) {
	var w model.Workshop
	err := row.Scan(&w.ID, &w.Slug, &w.Name, &w.Description, &w.Price, &w.Active, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func scanSessionDetail(row pgx.Row) (*model.SessionDetail, error) {
	var (
		sess model.WorkshopSession
		w    model.Workshop
	)
	err := row.Scan(
		&sess.ID, &sess.WorkshopID, &sess.Date, &sess.AvailableSpots, &sess.Active, &sess.CreatedAt,
		&w.ID, &w.Slug, &w.Name, &w.Description, &w.Price, &w.Active, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &model.SessionDetail{WorkshopSession: sess, Workshop: &w}, nil
}
