package service

import (
	"context"

	"workshop-bridge/internal/coupon"
	"workshop-bridge/internal/model"

	"github.com/google/uuid"
)

// CouponService defines operations for coupon management and validation.
type CouponService interface {
	// List retrieves coupons narrowed by the filter.
	List(ctx context.Context, filter model.CouponFilter) ([]model.Coupon, error)

	// GetByID retrieves a single coupon.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Coupon, error)

	// ValidateByCode looks a coupon up by code (case-insensitive) and
	// evaluates it against the order amount. Returns the snapshot along
	// with the verdict; the error is non-nil only when the lookup fails.
	ValidateByCode(ctx context.Context, code string, orderAmount float64, userID string) (*model.Coupon, coupon.Verdict, error)

	// Create validates and inserts a new coupon, applying defaults for
	// omitted fields.
	Create(ctx context.Context, req *model.CouponRequest) (*model.Coupon, error)

	// Update applies a partial update.
	Update(ctx context.Context, id uuid.UUID, update *model.CouponUpdate) (*model.Coupon, error)

	// Delete removes a coupon.
	Delete(ctx context.Context, id uuid.UUID) error

	// IncrementUsage records one redemption against a coupon and returns
	// the updated snapshot. The increment happens atomically in the
	// store; it is not transactionally linked to any prior validation.
	IncrementUsage(ctx context.Context, id uuid.UUID) (*model.Coupon, error)
}
