package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"workshop-bridge/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const userColumns = `id, email, full_name, phone, role, created_at, updated_at`

// userStore implements UserStore using PostgreSQL.
type userStore struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewUserStore creates a new PostgreSQL-backed user store.
func NewUserStore(pool *pgxpool.Pool, logger zerolog.Logger) UserStore {
	return &userStore{
		pool:   pool,
		logger: logger.With().Str("store", "user").Logger(),
	}
}

// GetByID retrieves a user by ID.
func (s *userStore) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)

	user, err := scanUser(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		s.logger.Error().Err(err).Str("user_id", id.String()).Msg("failed to query user")
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return user, nil
}

// GetIDByEmail resolves a user ID from an email address.
func (s *userStore) GetIDByEmail(ctx context.Context, email string) (uuid.UUID, error) {
	var id uuid.UUID
	err := s.pool.QueryRow(ctx, `SELECT id FROM users WHERE email = $1 LIMIT 1`, email).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, model.ErrUserNotFound
		}
		s.logger.Error().Err(err).Msg("failed to query user by email")
		return uuid.Nil, fmt.Errorf("failed to query user by email: %w", err)
	}

	return id, nil
}

// Create inserts a new user row and returns it. An empty role defaults
// to the client role.
func (s *userStore) Create(ctx context.Context, req *model.UserRequest) (*model.User, error) {
	role := req.Role
	if role == "" {
		role = model.RoleClient
	}

	query := fmt.Sprintf(`
		INSERT INTO users (id, email, full_name, phone, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())
		RETURNING %s`, userColumns)

	user, err := scanUser(s.pool.QueryRow(ctx, query, req.ID, req.Email, req.FullName, req.Phone, role))
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", req.ID.String()).Msg("failed to create user")
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID.String()).Msg("user created")

	return user, nil
}

// Update applies a partial update and returns the stored row.
func (s *userStore) Update(ctx context.Context, id uuid.UUID, update *model.UserUpdate) (*model.User, error) {
	var (
		sets []string
		args []interface{}
	)

	addSet := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Email != nil {
		addSet("email", *update.Email)
	}
	if update.FullName != nil {
		addSet("full_name", *update.FullName)
	}
	if update.Phone != nil {
		addSet("phone", *update.Phone)
	}
	if update.Role != nil {
		addSet("role", *update.Role)
	}

	if len(sets) == 0 {
		return s.GetByID(ctx, id)
	}

	sets = append(sets, "updated_at = now()")
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), userColumns)

	user, err := scanUser(s.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		s.logger.Error().Err(err).Str("user_id", id.String()).Msg("failed to update user")
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// ListAll retrieves every user, newest first.
func (s *userStore) ListAll(ctx context.Context) ([]model.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users ORDER BY created_at DESC`, userColumns)

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to query users")
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}

// Delete removes a user row.
func (s *userStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", id.String()).Msg("failed to delete user")
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	s.logger.Info().Str("user_id", id.String()).Msg("user deleted")

	return nil
}

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.FullName, &u.Phone, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
