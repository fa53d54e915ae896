package service

import (
	"context"
	"strings"
	"time"

	"workshop-bridge/internal/coupon"
	"workshop-bridge/internal/model"
	"workshop-bridge/internal/store"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Coupon input validation errors.
var (
	ErrCouponFieldsRequired = model.NewDomainError(model.ErrCodeMissingField,
		"Name, code, discount_type, and discount_value are required")
	ErrInvalidDiscountType = model.NewDomainError(model.ErrCodeMissingField,
		"discount_type must be 'percentage' or 'fixed_amount'")
)

// couponService implements CouponService.
type couponService struct {
	coupons store.CouponStore
	logger  zerolog.Logger
	now     func() time.Time
}

// NewCouponService creates a new coupon service.
func NewCouponService(coupons store.CouponStore, logger zerolog.Logger) CouponService {
	return &couponService{
		coupons: coupons,
		logger:  logger.With().Str("service", "coupon").Logger(),
		now:     time.Now,
	}
}

// List retrieves coupons narrowed by the filter.
func (s *couponService) List(ctx context.Context, filter model.CouponFilter) ([]model.Coupon, error) {
	return s.coupons.List(ctx, filter)
}

// GetByID retrieves a single coupon.
func (s *couponService) GetByID(ctx context.Context, id uuid.UUID) (*model.Coupon, error) {
	return s.coupons.GetByID(ctx, id)
}

// ValidateByCode looks a coupon up by code and evaluates it against the
// order amount at the current time.
func (s *couponService) ValidateByCode(ctx context.Context, code string, orderAmount float64, userID string) (*model.Coupon, coupon.Verdict, error) {
	snapshot, err := s.coupons.GetByCode(ctx, code)
	if err != nil {
		return nil, coupon.Verdict{}, err
	}

	verdict := coupon.Validate(snapshot, orderAmount, userID, s.now())

	s.logger.Debug().
		Str("code", snapshot.Code).
		Bool("valid", verdict.Valid).
		Float64("order_amount", orderAmount).
		Float64("discount_amount", verdict.DiscountAmount).
		Msg("coupon validated")

	return snapshot, verdict, nil
}

// Create validates and inserts a new coupon. The code is uppercased;
// is_active defaults to true and start_date to now when omitted.
func (s *couponService) Create(ctx context.Context, req *model.CouponRequest) (*model.Coupon, error) {
	if req.Name == "" || req.Code == "" || req.DiscountType == "" || req.DiscountValue == nil {
		return nil, ErrCouponFieldsRequired
	}

	if req.DiscountType != model.DiscountTypePercentage && req.DiscountType != model.DiscountTypeFixedAmount {
		return nil, ErrInvalidDiscountType
	}

	c := &model.Coupon{
		ID:                uuid.New(),
		Name:              req.Name,
		Code:              strings.ToUpper(req.Code),
		DiscountType:      req.DiscountType,
		DiscountValue:     *req.DiscountValue,
		MaxDiscountAmount: req.MaxDiscountAmount,
		MinOrderAmount:    req.MinOrderAmount,
		UsageLimit:        req.UsageLimit,
		UsageLimitPerUser: req.UsageLimitPerUser,
		StartDate:         s.now(),
		IsActive:          true,
	}

	if req.StartDate != nil {
		start, err := time.Parse(time.RFC3339, *req.StartDate)
		if err != nil {
			return nil, model.NewDomainError(model.ErrCodeMissingField, "start_date must be an RFC 3339 timestamp")
		}
		c.StartDate = start
	}
	if req.EndDate != nil {
		end, err := time.Parse(time.RFC3339, *req.EndDate)
		if err != nil {
			return nil, model.NewDomainError(model.ErrCodeMissingField, "end_date must be an RFC 3339 timestamp")
		}
		c.EndDate = &end
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}

	created, err := s.coupons.Create(ctx, c)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("code", created.Code).Msg("coupon created")

	return created, nil
}

// Update applies a partial update.
func (s *couponService) Update(ctx context.Context, id uuid.UUID, update *model.CouponUpdate) (*model.Coupon, error) {
	if update.DiscountType != nil &&
		*update.DiscountType != model.DiscountTypePercentage &&
		*update.DiscountType != model.DiscountTypeFixedAmount {
		return nil, ErrInvalidDiscountType
	}

	return s.coupons.Update(ctx, id, update)
}

// Delete removes a coupon.
func (s *couponService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.coupons.Delete(ctx, id)
}

// IncrementUsage records one redemption against a coupon.
func (s *couponService) IncrementUsage(ctx context.Context, id uuid.UUID) (*model.Coupon, error) {
	return s.coupons.IncrementUsage(ctx, id)
}
