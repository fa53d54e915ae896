package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"workshop-bridge/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const orderColumns = `id, user_id, workshop_id, session_id, payment_method, payment_id, amount, status, created_at, updated_at`

// orderStore implements OrderStore using PostgreSQL.
type orderStore struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderStore creates a new PostgreSQL-backed order store.
func NewOrderStore(pool *pgxpool.Pool, logger zerolog.Logger) OrderStore {
	return &orderStore{
		pool:   pool,
		logger: logger.With().Str("store", "order").Logger(),
	}
}

// Create inserts a new order in pending status and returns it.
func (s *orderStore) Create(ctx context.Context, req *model.OrderRequest) (*model.Order, error) {
	query := fmt.Sprintf(`
		INSERT INTO orders (id, user_id, workshop_id, session_id, payment_method,
			payment_id, amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
		RETURNING %s`, orderColumns)

	order, err := scanOrder(s.pool.QueryRow(ctx, query,
		uuid.New(),
		req.UserID,
		req.WorkshopID,
		req.SessionID,
		req.PaymentMethod,
		req.PaymentID,
		req.Amount,
		model.OrderStatusPending,
	))
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", req.UserID.String()).Msg("failed to create order")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("user_id", order.UserID.String()).
		Msg("order created")

	return order, nil
}

// UpdateStatus updates an order's status and payment reference.
func (s *orderStore) UpdateStatus(ctx context.Context, id uuid.UUID, update *model.OrderStatusUpdate) (*model.Order, error) {
	query := fmt.Sprintf(`
		UPDATE orders
		SET status = $1, payment_id = $2, updated_at = now()
		WHERE id = $3
		RETURNING %s`, orderColumns)

	order, err := scanOrder(s.pool.QueryRow(ctx, query, update.Status, update.PaymentID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to update order")
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	s.logger.Info().
		Str("order_id", id.String()).
		Str("status", order.Status).
		Msg("order status updated")

	return order, nil
}

// Cancel marks an order cancelled.
func (s *orderStore) Cancel(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	query := fmt.Sprintf(`
		UPDATE orders
		SET status = $1, updated_at = now()
		WHERE id = $2
		RETURNING %s`, orderColumns)

	order, err := scanOrder(s.pool.QueryRow(ctx, query, model.OrderStatusCancelled, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to cancel order")
		return nil, fmt.Errorf("failed to cancel order: %w", err)
	}

	s.logger.Info().Str("order_id", id.String()).Msg("order cancelled")

	return order, nil
}

// GetByID retrieves an order with its workshop and session.
func (s *orderStore) GetByID(ctx context.Context, id uuid.UUID) (*model.OrderDetail, error) {
	query := orderDetailQuery + ` WHERE o.id = $1`

	detail, err := scanOrderDetail(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	return detail, nil
}

// ListByUser retrieves a user's orders, newest first, with workshop and
// session details.
func (s *orderStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.OrderDetail, error) {
	query := orderDetailQuery + ` WHERE o.user_id = $1 ORDER BY o.created_at DESC`

	rows, err := s.pool.Query(ctx, query, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to query orders")
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var details []model.OrderDetail
	for rows.Next() {
		detail, err := scanOrderDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		details = append(details, *detail)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return details, nil
}

const orderDetailQuery = `
	SELECT o.id, o.user_id, o.workshop_id, o.session_id, o.payment_method,
		o.payment_id, o.amount, o.status, o.created_at, o.updated_at,
		w.id, w.slug, w.name, w.description, w.price, w.active, w.created_at, w.updated_at,
		s.id, s.workshop_id, s.date, s.available_spots, s.active, s.created_at
	FROM orders o
	JOIN workshops w ON w.id = o.workshop_id
	LEFT JOIN workshop_sessions s ON s.id = o.session_id`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(
		&o.ID, &o.UserID, &o.WorkshopID, &o.SessionID, &o.PaymentMethod,
		&o.PaymentID, &o.Amount, &o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func scanOrderDetail(row pgx.Row) (*model.OrderDetail, error) {
	var (
		o model.Order
		w model.Workshop

		// The session join is optional, so scan into nullable holders.
		sessID             *uuid.UUID
		sessWorkshopID     *uuid.UUID
		sessDate           *time.Time
		sessAvailableSpots *int
		sessActive         *bool
		sessCreatedAt      *time.Time
	)

	err := row.Scan(
		&o.ID, &o.UserID, &o.WorkshopID, &o.SessionID, &o.PaymentMethod,
		&o.PaymentID, &o.Amount, &o.Status, &o.CreatedAt, &o.UpdatedAt,
		&w.ID, &w.Slug, &w.Name, &w.Description, &w.Price, &w.Active, &w.CreatedAt, &w.UpdatedAt,
		&sessID, &sessWorkshopID, &sessDate, &sessAvailableSpots, &sessActive, &sessCreatedAt,
	)
	if err != nil {
		return nil, err
	}

	detail := &model.OrderDetail{Order: o, Workshop: &w}
	if sessID != nil {
		detail.Session = &model.WorkshopSession{
			ID:             *sessID,
			WorkshopID:     *sessWorkshopID,
			Date:           *sessDate,
			AvailableSpots: *sessAvailableSpots,
			Active:         *sessActive,
			CreatedAt:      *sessCreatedAt,
		}
	}

	return detail, nil
}
