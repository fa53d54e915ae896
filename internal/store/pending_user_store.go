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

// pendingUserStore implements PendingUserStore using PostgreSQL.
type pendingUserStore struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPendingUserStore creates a new PostgreSQL-backed pending user store.
func NewPendingUserStore(pool *pgxpool.Pool, logger zerolog.Logger) PendingUserStore {
	return &pendingUserStore{
		pool:   pool,
		logger: logger.With().Str("store", "pending_user").Logger(),
	}
}

// Create saves a pending user row.
func (s *pendingUserStore) Create(ctx context.Context, req *model.PendingUserRequest) (*model.PendingUser, error) {
	query := `
		INSERT INTO pending_users (id, email, full_name, phone, created_at)
		VALUES ($1, $2, $3, $4, now())
		RETURNING id, email, full_name, phone, created_at`

	var p model.PendingUser
	err := s.pool.QueryRow(ctx, query, uuid.New(), req.Email, req.FullName, req.Phone).
		Scan(&p.ID, &p.Email, &p.FullName, &p.Phone, &p.CreatedAt)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create pending user")
		return nil, fmt.Errorf("failed to create pending user: %w", err)
	}

	return &p, nil
}

// GetByEmail retrieves a pending user by email.
func (s *pendingUserStore) GetByEmail(ctx context.Context, email string) (*model.PendingUser, error) {
	query := `SELECT id, email, full_name, phone, created_at FROM pending_users WHERE email = $1`

	var p model.PendingUser
	err := s.pool.QueryRow(ctx, query, email).
		Scan(&p.ID, &p.Email, &p.FullName, &p.Phone, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		s.logger.Error().Err(err).Msg("failed to query pending user")
		return nil, fmt.Errorf("failed to query pending user: %w", err)
	}

	return &p, nil
}

// DeleteByEmail removes a pending user row by email.
func (s *pendingUserStore) DeleteByEmail(ctx context.Context, email string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM pending_users WHERE email = $1`, email)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to delete pending user")
		return fmt.Errorf("failed to delete pending user: %w", err)
	}

	return nil
}
