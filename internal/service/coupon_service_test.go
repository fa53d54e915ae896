package service

import (
	"context"
	"testing"
	"time"

	"workshop-bridge/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCouponStore is a mock implementation of store.CouponStore.
type MockCouponStore struct {
	mock.Mock
}

func (m *MockCouponStore) GetByCode(ctx context.Context, code string) (*model.Coupon, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Coupon), args.Error(1)
}

func (m *MockCouponStore) GetByID(ctx context.Context, id uuid.UUID) (*model.Coupon, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Coupon), args.Error(1)
}

func (m *MockCouponStore) List(ctx context.Context, filter model.CouponFilter) ([]model.Coupon, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Coupon), args.Error(1)
}

func (m *MockCouponStore) Create(ctx context.Context, c *model.Coupon) (*model.Coupon, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Coupon), args.Error(1)
}

func (m *MockCouponStore) Update(ctx context.Context, id uuid.UUID, update *model.CouponUpdate) (*model.Coupon, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Coupon), args.Error(1)
}

func (m *MockCouponStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCouponStore) IncrementUsage(ctx context.Context, id uuid.UUID) (*model.Coupon, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Coupon), args.Error(1)
}

func newTestService(store *MockCouponStore, now time.Time) *couponService {
	svc := NewCouponService(store, zerolog.Nop()).(*couponService)
	svc.now = func() time.Time { return now }
	return svc
}

func floatPtr(v float64) *float64 { return &v }

func activeCoupon(code string) *model.Coupon {
	return &model.Coupon{
		ID:            uuid.New(),
		Name:          "Summer promotion",
		Code:          code,
		DiscountType:  model.DiscountTypePercentage,
		DiscountValue: 10,
		StartDate:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		IsActive:      true,
	}
}

func TestCouponService_ValidateByCode(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("valid coupon with discount", func(t *testing.T) {
		store := new(MockCouponStore)
		svc := newTestService(store, now)

		store.On("GetByCode", mock.Anything, "SUMMER10").Return(activeCoupon("SUMMER10"), nil)

		c, verdict, err := svc.ValidateByCode(context.Background(), "SUMMER10", 200, "")

		require.NoError(t, err)
		assert.Equal(t, "SUMMER10", c.Code)
		assert.True(t, verdict.Valid)
		assert.Equal(t, 20.0, verdict.DiscountAmount)
		store.AssertExpectations(t)
	})

	t.Run("lowercase code passes through to the store lookup", func(t *testing.T) {
		store := new(MockCouponStore)
		svc := newTestService(store, now)

		// The store uppercases before matching, so the stored row comes
		// back even for a lowercase submission.
		store.On("GetByCode", mock.Anything, "summer10").Return(activeCoupon("SUMMER10"), nil)

		c, verdict, err := svc.ValidateByCode(context.Background(), "summer10", 100, "")

		require.NoError(t, err)
		assert.Equal(t, "SUMMER10", c.Code)
		assert.True(t, verdict.Valid)
		store.AssertExpectations(t)
	})

	t.Run("unknown code surfaces the store error", func(t *testing.T) {
		store := new(MockCouponStore)
		svc := newTestService(store, now)

		store.On("GetByCode", mock.Anything, "NOPE").Return(nil, model.ErrCouponNotFound)

		_, _, err := svc.ValidateByCode(context.Background(), "NOPE", 100, "")

		assert.ErrorIs(t, err, model.ErrCouponNotFound)
		store.AssertExpectations(t)
	})

	t.Run("expired coupon yields invalid verdict without error", func(t *testing.T) {
		store := new(MockCouponStore)
		svc := newTestService(store, now)

		c := activeCoupon("OLD")
		end := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
		c.EndDate = &end
		store.On("GetByCode", mock.Anything, "OLD").Return(c, nil)

		_, verdict, err := svc.ValidateByCode(context.Background(), "OLD", 100, "")

		require.NoError(t, err)
		assert.False(t, verdict.Valid)
		assert.Equal(t, "This coupon has expired", verdict.Message)
		assert.Zero(t, verdict.DiscountAmount)
	})
}

func TestCouponService_Create(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("missing required fields", func(t *testing.T) {
		store := new(MockCouponStore)
		svc := newTestService(store, now)

		_, err := svc.Create(context.Background(), &model.CouponRequest{Name: "No code"})

		assert.ErrorIs(t, err, ErrCouponFieldsRequired)
		store.AssertNotCalled(t, "Create")
	})

	t.Run("rejects unknown discount type", func(t *testing.T) {
		store := new(MockCouponStore)
		svc := newTestService(store, now)

		_, err := svc.Create(context.Background(), &model.CouponRequest{
			Name:          "Bad type",
			Code:          "BAD",
			DiscountType:  "bogo",
			DiscountValue: floatPtr(10),
		})

		assert.ErrorIs(t, err, ErrInvalidDiscountType)
		store.AssertNotCalled(t, "Create")
	})

	t.Run("uppercases code and applies defaults", func(t *testing.T) {
		store := new(MockCouponStore)
		svc := newTestService(store, now)

		store.On("Create", mock.Anything, mock.MatchedBy(func(c *model.Coupon) bool {
			return c.Code == "WELCOME5" && c.IsActive && c.StartDate.Equal(now)
		})).Return(activeCoupon("WELCOME5"), nil)

		_, err := svc.Create(context.Background(), &model.CouponRequest{
			Name:          "Welcome",
			Code:          "welcome5",
			DiscountType:  model.DiscountTypeFixedAmount,
			DiscountValue: floatPtr(5),
		})

		require.NoError(t, err)
		store.AssertExpectations(t)
	})

	t.Run("rejects malformed start date", func(t *testing.T) {
		store := new(MockCouponStore)
		svc := newTestService(store, now)

		badDate := "not-a-date"
		_, err := svc.Create(context.Background(), &model.CouponRequest{
			Name:          "Bad date",
			Code:          "BADDATE",
			DiscountType:  model.DiscountTypePercentage,
			DiscountValue: floatPtr(10),
			StartDate:     &badDate,
		})

		require.Error(t, err)
		store.AssertNotCalled(t, "Create")
	})
}

func TestCouponService_Update(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("rejects unknown discount type", func(t *testing.T) {
		store := new(MockCouponStore)
		svc := newTestService(store, now)

		badType := "loyalty"
		_, err := svc.Update(context.Background(), uuid.New(), &model.CouponUpdate{DiscountType: &badType})

		assert.ErrorIs(t, err, ErrInvalidDiscountType)
		store.AssertNotCalled(t, "Update")
	})

	t.Run("delegates valid updates", func(t *testing.T) {
		store := new(MockCouponStore)
		svc := newTestService(store, now)

		id := uuid.New()
		update := &model.CouponUpdate{Name: strPtr("Renamed")}
		store.On("Update", mock.Anything, id, update).Return(activeCoupon("SUMMER10"), nil)

		_, err := svc.Update(context.Background(), id, update)

		require.NoError(t, err)
		store.AssertExpectations(t)
	})
}

func TestCouponService_IncrementUsage(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	store := new(MockCouponStore)
	svc := newTestService(store, now)

	id := uuid.New()
	c := activeCoupon("SUMMER10")
	c.UsageCount = 3
	store.On("IncrementUsage", mock.Anything, id).Return(c, nil)

	updated, err := svc.IncrementUsage(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, 3, updated.UsageCount)
	store.AssertExpectations(t)
}

func strPtr(s string) *string { return &s }
