// Package store exposes the platform's tables as capability interfaces
// backed by PostgreSQL. Handlers depend on the interfaces; the pgx
// implementations are selected through an anon or service-role handle.
package store

import (
	"context"

	"workshop-bridge/internal/model"

	"github.com/google/uuid"
)

// CouponStore defines data access for coupons.
type CouponStore interface {
	// GetByCode retrieves a coupon by its code. Lookup is
	// case-insensitive: the code is uppercased before matching.
	GetByCode(ctx context.Context, code string) (*model.Coupon, error)

	// GetByID retrieves a coupon by its ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Coupon, error)

	// List retrieves coupons newest first, narrowed by the filter.
	List(ctx context.Context, filter model.CouponFilter) ([]model.Coupon, error)

	// Create inserts a new coupon and returns the stored row.
	Create(ctx context.Context, c *model.Coupon) (*model.Coupon, error)

	// Update applies a partial update and returns the stored row.
	Update(ctx context.Context, id uuid.UUID, update *model.CouponUpdate) (*model.Coupon, error)

	// Delete removes a coupon unconditionally.
	Delete(ctx context.Context, id uuid.UUID) error

	// IncrementUsage atomically increments the usage counter database-side
	// and returns the updated row.
	IncrementUsage(ctx context.Context, id uuid.UUID) (*model.Coupon, error)
}

// UserStore defines data access for user rows.
type UserStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetIDByEmail(ctx context.Context, email string) (uuid.UUID, error)
	Create(ctx context.Context, req *model.UserRequest) (*model.User, error)
	Update(ctx context.Context, id uuid.UUID, update *model.UserUpdate) (*model.User, error)
	ListAll(ctx context.Context) ([]model.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PendingUserStore defines data access for pre-registration user data.
type PendingUserStore interface {
	Create(ctx context.Context, req *model.PendingUserRequest) (*model.PendingUser, error)
	GetByEmail(ctx context.Context, email string) (*model.PendingUser, error)
	DeleteByEmail(ctx context.Context, email string) error
}

// WorkshopStore defines data access for workshops and their sessions.
type WorkshopStore interface {
	ListActive(ctx context.Context) ([]model.Workshop, error)
	GetBySlug(ctx context.Context, slug string) (*model.WorkshopDetail, error)
	SessionsForWorkshop(ctx context.Context, workshopID uuid.UUID) ([]model.WorkshopSession, error)
	GetSession(ctx context.Context, sessionID uuid.UUID) (*model.SessionDetail, error)
	UpcomingSessions(ctx context.Context, limit int) ([]model.SessionDetail, error)

	// DecreaseSpots atomically takes one spot from a session. Returns
	// model.ErrSessionSoldOut when no spots remain.
	DecreaseSpots(ctx context.Context, sessionID uuid.UUID) error

	// IncreaseSpots atomically returns one spot to a session.
	IncreaseSpots(ctx context.Context, sessionID uuid.UUID) error
}

// EventStore defines data access for public events.
type EventStore interface {
	Upcoming(ctx context.Context, limit int) ([]model.EventDetail, error)
}

// OrderStore defines data access for orders.
type OrderStore interface {
	Create(ctx context.Context, req *model.OrderRequest) (*model.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, update *model.OrderStatusUpdate) (*model.Order, error)
	Cancel(ctx context.Context, id uuid.UUID) (*model.Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.OrderDetail, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.OrderDetail, error)
}

// TestimonialStore defines data access for testimonials.
type TestimonialStore interface {
	Approved(ctx context.Context) ([]model.TestimonialDetail, error)
	Featured(ctx context.Context, limit int) ([]model.TestimonialDetail, error)
	ForWorkshop(ctx context.Context, workshopID uuid.UUID) ([]model.TestimonialDetail, error)
	Create(ctx context.Context, userID uuid.UUID, req *model.TestimonialRequest) (*model.Testimonial, error)
}
