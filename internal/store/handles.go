package store

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Stores bundles every capability interface backed by one database role.
type Stores struct {
	Coupons      CouponStore
	Users        UserStore
	PendingUsers PendingUserStore
	Workshops    WorkshopStore
	Events       EventStore
	Orders       OrderStore
	Testimonials TestimonialStore
}

// Handles holds the two privilege tiers. Anon is subject to row-level
// security; Admin connects as the service role and bypasses it. Callers
// choose a handle explicitly per operation rather than toggling any
// shared state.
type Handles struct {
	Anon  *Stores
	Admin *Stores
}

// NewStores builds the full store set on one connection pool.
func NewStores(pool *pgxpool.Pool, logger zerolog.Logger) *Stores {
	return &Stores{
		Coupons:      NewCouponStore(pool, logger),
		Users:        NewUserStore(pool, logger),
		PendingUsers: NewPendingUserStore(pool, logger),
		Workshops:    NewWorkshopStore(pool, logger),
		Events:       NewEventStore(pool, logger),
		Orders:       NewOrderStore(pool, logger),
		Testimonials: NewTestimonialStore(pool, logger),
	}
}

// NewHandles builds the two-tier handle pair from the anon and service
// role pools.
func NewHandles(anonPool, adminPool *pgxpool.Pool, logger zerolog.Logger) *Handles {
	return &Handles{
		Anon:  NewStores(anonPool, logger.With().Str("role", "anon").Logger()),
		Admin: NewStores(adminPool, logger.With().Str("role", "service").Logger()),
	}
}
