package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"workshop-bridge/internal/coupon"
	"workshop-bridge/internal/metrics"
	"workshop-bridge/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCouponService is a mock implementation of service.CouponService.
type MockCouponService struct {
	mock.Mock
}

func (m *MockCouponService) List(ctx context.Context, filter model.CouponFilter) ([]model.Coupon, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Coupon), args.Error(1)
}

func (m *MockCouponService) GetByID(ctx context.Context, id uuid.UUID) (*model.Coupon, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Coupon), args.Error(1)
}

func (m *MockCouponService) ValidateByCode(ctx context.Context, code string, orderAmount float64, userID string) (*model.Coupon, coupon.Verdict, error) {
	args := m.Called(ctx, code, orderAmount, userID)
	if args.Get(0) == nil {
		return nil, args.Get(1).(coupon.Verdict), args.Error(2)
	}
	return args.Get(0).(*model.Coupon), args.Get(1).(coupon.Verdict), args.Error(2)
}

func (m *MockCouponService) Create(ctx context.Context, req *model.CouponRequest) (*model.Coupon, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Coupon), args.Error(1)
}

func (m *MockCouponService) Update(ctx context.Context, id uuid.UUID, update *model.CouponUpdate) (*model.Coupon, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Coupon), args.Error(1)
}

func (m *MockCouponService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCouponService) IncrementUsage(ctx context.Context, id uuid.UUID) (*model.Coupon, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Coupon), args.Error(1)
}

// couponRouter mounts the handler on the same route shapes the real
// router uses so chi URL params resolve.
func couponRouter(h *CouponHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/coupons", h.List)
	r.Get("/coupons/by-code/{code}", h.ValidateByCode)
	r.Get("/coupons/{id}", h.GetByID)
	r.Post("/coupons", h.Create)
	r.Put("/coupons/{id}", h.Update)
	r.Delete("/coupons/{id}", h.Delete)
	r.Post("/coupons/{id}/increment-usage", h.IncrementUsage)
	return r
}

func testCoupon() *model.Coupon {
	return &model.Coupon{
		ID:            uuid.New(),
		Name:          "Summer promotion",
		Code:          "SUMMER10",
		DiscountType:  model.DiscountTypePercentage,
		DiscountValue: 10,
		StartDate:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		IsActive:      true,
	}
}

func TestCouponHandler_ValidateByCode(t *testing.T) {
	t.Run("valid coupon", func(t *testing.T) {
		svc := new(MockCouponService)
		h := NewCouponHandler(svc, metrics.New(), zerolog.Nop())

		c := testCoupon()
		svc.On("ValidateByCode", mock.Anything, "SUMMER10", 200.0, "").
			Return(c, coupon.Verdict{Valid: true, Message: "Coupon is valid", DiscountAmount: 20}, nil)

		req := httptest.NewRequest(http.MethodGet, "/coupons/by-code/SUMMER10?order_amount=200", nil)
		w := httptest.NewRecorder()
		couponRouter(h).ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp model.CouponValidationResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.True(t, resp.Valid)
		assert.Equal(t, "Coupon is valid", resp.Message)
		assert.Equal(t, 20.0, resp.DiscountAmount)
		assert.Equal(t, "SUMMER10", resp.Data.Code)
		svc.AssertExpectations(t)
	})

	t.Run("malformed order_amount coerces to zero", func(t *testing.T) {
		svc := new(MockCouponService)
		h := NewCouponHandler(svc, metrics.New(), zerolog.Nop())

		svc.On("ValidateByCode", mock.Anything, "SUMMER10", 0.0, "").
			Return(testCoupon(), coupon.Verdict{Valid: true, Message: "Coupon is valid"}, nil)

		req := httptest.NewRequest(http.MethodGet, "/coupons/by-code/SUMMER10?order_amount=abc", nil)
		w := httptest.NewRecorder()
		couponRouter(h).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("unknown code returns 404 with validation shape", func(t *testing.T) {
		svc := new(MockCouponService)
		h := NewCouponHandler(svc, metrics.New(), zerolog.Nop())

		svc.On("ValidateByCode", mock.Anything, "NOPE", 0.0, "").
			Return(nil, coupon.Verdict{}, model.ErrCouponNotFound)

		req := httptest.NewRequest(http.MethodGet, "/coupons/by-code/NOPE", nil)
		w := httptest.NewRecorder()
		couponRouter(h).ServeHTTP(w, req)

		require.Equal(t, http.StatusNotFound, w.Code)

		var resp model.CouponValidationResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.False(t, resp.Valid)
		assert.Equal(t, "Coupon not found", resp.Error)
	})

	t.Run("invalid coupon keeps 200 with verdict", func(t *testing.T) {
		svc := new(MockCouponService)
		h := NewCouponHandler(svc, metrics.New(), zerolog.Nop())

		svc.On("ValidateByCode", mock.Anything, "OLD", 100.0, "").
			Return(testCoupon(), coupon.Verdict{Valid: false, Message: "This coupon has expired"}, nil)

		req := httptest.NewRequest(http.MethodGet, "/coupons/by-code/OLD?order_amount=100", nil)
		w := httptest.NewRecorder()
		couponRouter(h).ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp model.CouponValidationResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.False(t, resp.Valid)
		assert.Equal(t, "This coupon has expired", resp.Message)
		assert.Zero(t, resp.DiscountAmount)
	})
}

func TestCouponHandler_List(t *testing.T) {
	svc := new(MockCouponService)
	h := NewCouponHandler(svc, metrics.New(), zerolog.Nop())

	svc.On("List", mock.Anything, model.CouponFilter{ActiveOnly: true}).
		Return([]model.Coupon{*testCoupon()}, nil)

	req := httptest.NewRequest(http.MethodGet, "/coupons?active_only=true", nil)
	w := httptest.NewRecorder()
	couponRouter(h).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp model.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	svc.AssertExpectations(t)
}

func TestCouponHandler_Create(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := new(MockCouponService)
		h := NewCouponHandler(svc, metrics.New(), zerolog.Nop())

		svc.On("Create", mock.Anything, mock.AnythingOfType("*model.CouponRequest")).
			Return(testCoupon(), nil)

		body, _ := json.Marshal(map[string]interface{}{
			"name":           "Summer promotion",
			"code":           "summer10",
			"discount_type":  "percentage",
			"discount_value": 10,
		})
		req := httptest.NewRequest(http.MethodPost, "/coupons", bytes.NewReader(body))
		w := httptest.NewRecorder()
		couponRouter(h).ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("invalid body", func(t *testing.T) {
		svc := new(MockCouponService)
		h := NewCouponHandler(svc, metrics.New(), zerolog.Nop())

		req := httptest.NewRequest(http.MethodPost, "/coupons", bytes.NewReader([]byte("{nope")))
		w := httptest.NewRecorder()
		couponRouter(h).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Create")
	})
}

func TestCouponHandler_GetByID(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		svc := new(MockCouponService)
		h := NewCouponHandler(svc, metrics.New(), zerolog.Nop())

		req := httptest.NewRequest(http.MethodGet, "/coupons/not-a-uuid", nil)
		w := httptest.NewRecorder()
		couponRouter(h).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("not found maps to 404", func(t *testing.T) {
		svc := new(MockCouponService)
		h := NewCouponHandler(svc, metrics.New(), zerolog.Nop())

		id := uuid.New()
		svc.On("GetByID", mock.Anything, id).Return(nil, model.ErrCouponNotFound)

		req := httptest.NewRequest(http.MethodGet, "/coupons/"+id.String(), nil)
		w := httptest.NewRecorder()
		couponRouter(h).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCouponHandler_IncrementUsage(t *testing.T) {
	svc := new(MockCouponService)
	h := NewCouponHandler(svc, metrics.New(), zerolog.Nop())

	id := uuid.New()
	c := testCoupon()
	c.UsageCount = 4
	svc.On("IncrementUsage", mock.Anything, id).Return(c, nil)

	req := httptest.NewRequest(http.MethodPost, "/coupons/"+id.String()+"/increment-usage", nil)
	w := httptest.NewRecorder()
	couponRouter(h).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool         `json:"success"`
		Data    model.Coupon `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 4, resp.Data.UsageCount)
	svc.AssertExpectations(t)
}
