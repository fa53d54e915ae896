package store

import (
	"context"
	"fmt"

	"workshop-bridge/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// testimonialStore implements TestimonialStore using PostgreSQL.
type testimonialStore struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewTestimonialStore creates a new PostgreSQL-backed testimonial store.
func NewTestimonialStore(pool *pgxpool.Pool, logger zerolog.Logger) TestimonialStore {
	return &testimonialStore{
		pool:   pool,
		logger: logger.With().Str("store", "testimonial").Logger(),
	}
}

const testimonialDetailQuery = `
	SELECT t.id, t.user_id, t.workshop_id, t.content, t.position, t.company,
		t.rating, t.is_approved, t.is_featured, t.created_at,
		u.full_name, u.email, w.name
	FROM testimonials t
	JOIN users u ON u.id = t.user_id
	JOIN workshops w ON w.id = t.workshop_id`

// Approved retrieves approved testimonials, newest first.
func (s *testimonialStore) Approved(ctx context.Context) ([]model.TestimonialDetail, error) {
	query := testimonialDetailQuery + `
		WHERE t.is_approved = true
		ORDER BY t.created_at DESC`

	return s.queryDetails(ctx, query)
}

// Featured retrieves approved, featured testimonials, newest first.
func (s *testimonialStore) Featured(ctx context.Context, limit int) ([]model.TestimonialDetail, error) {
	query := testimonialDetailQuery + `
		WHERE t.is_approved = true AND t.is_featured = true
		ORDER BY t.created_at DESC
		LIMIT $1`

	return s.queryDetails(ctx, query, limit)
}

// ForWorkshop retrieves approved testimonials for one workshop, newest
// first.
func (s *testimonialStore) ForWorkshop(ctx context.Context, workshopID uuid.UUID) ([]model.TestimonialDetail, error) {
	query := testimonialDetailQuery + `
		WHERE t.is_approved = true AND t.workshop_id = $1
		ORDER BY t.created_at DESC`

	return s.queryDetails(ctx, query, workshopID)
}

// Create inserts an unapproved, unfeatured testimonial for the resolved
// author.
func (s *testimonialStore) Create(ctx context.Context, userID uuid.UUID, req *model.TestimonialRequest) (*model.Testimonial, error) {
	query := `
		INSERT INTO testimonials (id, user_id, workshop_id, content, position,
			company, rating, is_approved, is_featured, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, false, false, now())
		RETURNING id, user_id, workshop_id, content, position, company,
			rating, is_approved, is_featured, created_at`

	var t model.Testimonial
	err := s.pool.QueryRow(ctx, query,
		uuid.New(), userID, req.WorkshopID, req.Content, req.Position, req.Company, req.Rating,
	).Scan(
		&t.ID, &t.UserID, &t.WorkshopID, &t.Content, &t.Position, &t.Company,
		&t.Rating, &t.IsApproved, &t.IsFeatured, &t.CreatedAt,
	)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to create testimonial")
		return nil, fmt.Errorf("failed to create testimonial: %w", err)
	}

	s.logger.Info().Str("testimonial_id", t.ID.String()).Msg("testimonial created")

	return &t, nil
}

func (s *testimonialStore) queryDetails(ctx context.Context, query string, args ...interface{}) ([]model.TestimonialDetail, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to query testimonials")
		return nil, fmt.Errorf("failed to query testimonials: %w", err)
	}
	defer rows.Close()

	var details []model.TestimonialDetail
	for rows.Next() {
		detail, err := scanTestimonialDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan testimonial: %w", err)
		}
		details = append(details, *detail)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating testimonials: %w", err)
	}

	return details, nil
}

func scanTestimonialDetail(row pgx.Row) (*model.TestimonialDetail, error) {
	var d model.TestimonialDetail
	err := row.Scan(
		&d.ID, &d.UserID, &d.WorkshopID, &d.Content, &d.Position, &d.Company,
		&d.Rating, &d.IsApproved, &d.IsFeatured, &d.CreatedAt,
		&d.UserFullName, &d.UserEmail, &d.WorkshopName,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
