package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"workshop-bridge/internal/auth"
	"workshop-bridge/internal/handler"
	"workshop-bridge/internal/metrics"
	"workshop-bridge/internal/model"
	"workshop-bridge/internal/router"
	"workshop-bridge/internal/service"
	"workshop-bridge/internal/store"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider maps bearer tokens to users so auth-gated routes can be
// exercised without a live auth platform.
type fakeProvider struct {
	users map[string]*auth.User
}

func (f *fakeProvider) SignIn(ctx context.Context, email, password string) (*auth.SignInResult, error) {
	return nil, &auth.Error{Status: http.StatusBadRequest, Message: "Invalid login credentials"}
}

func (f *fakeProvider) SignUp(ctx context.Context, req auth.SignUpRequest) (*auth.SignInResult, error) {
	return &auth.SignInResult{User: &auth.User{ID: uuid.NewString(), Email: req.Email}}, nil
}

func (f *fakeProvider) SignOut(ctx context.Context, token string) error { return nil }

func (f *fakeProvider) GetUser(ctx context.Context, token string) (*auth.User, error) {
	user, ok := f.users[token]
	if !ok {
		return nil, &auth.Error{Status: http.StatusUnauthorized, Message: "invalid JWT"}
	}
	return user, nil
}

func (f *fakeProvider) ResetPassword(ctx context.Context, email, redirectTo string) error {
	return nil
}

func (f *fakeProvider) UpdatePassword(ctx context.Context, token, password string) (*auth.User, error) {
	return f.GetUser(ctx, token)
}

func setupTestServer(t *testing.T, testDB *TestDB, provider auth.Provider) http.Handler {
	t.Helper()

	logger := zerolog.Nop()

	// Both tiers share one pool in tests; privilege separation is a
	// deployment concern of the database roles.
	handles := store.NewHandles(testDB.Pool, testDB.Pool, logger)

	couponService := service.NewCouponService(handles.Anon.Coupons, logger)
	m := metrics.New()

	handlers := router.Handlers{
		Auth:        handler.NewAuthHandler(provider, handles.Admin.PendingUsers, logger),
		Coupon:      handler.NewCouponHandler(couponService, m, logger),
		User:        handler.NewUserHandler(handles.Anon.Users, handles.Admin.Users, handles.Admin.PendingUsers, logger),
		PendingUser: handler.NewPendingUserHandler(handles.Admin.PendingUsers, logger),
		Workshop:    handler.NewWorkshopHandler(handles.Anon.Workshops, logger),
		Event:       handler.NewEventHandler(handles.Anon.Events, logger),
		Order:       handler.NewOrderHandler(handles.Anon.Orders, logger),
		Testimonial: handler.NewTestimonialHandler(handles.Anon.Testimonials, handles.Admin.Users, logger),
	}

	return router.New(handlers, provider, handles, m, logger)
}

func TestCouponAPI_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	provider := &fakeProvider{users: map[string]*auth.User{}}
	server := setupTestServer(t, testDB, provider)

	t.Run("GET /coupons/by-code validates a live coupon", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCoupon(t, testDB.Pool, "SUMMER10", nil)

		req := httptest.NewRequest(http.MethodGet, "/coupons/by-code/summer10?order_amount=200", nil)
		w := httptest.NewRecorder()
		server.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp model.CouponValidationResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.True(t, resp.Success)
		assert.True(t, resp.Valid)
		assert.Equal(t, "Coupon is valid", resp.Message)
		assert.Equal(t, 20.0, resp.DiscountAmount)
	})

	t.Run("GET /coupons/by-code for unknown code returns 404", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		req := httptest.NewRequest(http.MethodGet, "/coupons/by-code/NOPE", nil)
		w := httptest.NewRecorder()
		server.ServeHTTP(w, req)

		require.Equal(t, http.StatusNotFound, w.Code)

		var resp model.CouponValidationResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.False(t, resp.Success)
		assert.Equal(t, "Coupon not found", resp.Error)
	})

	t.Run("POST /coupons requires an admin token", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		body, _ := json.Marshal(map[string]interface{}{
			"name":           "New",
			"code":           "new10",
			"discount_type":  "percentage",
			"discount_value": 10,
		})

		// No token at all.
		req := httptest.NewRequest(http.MethodPost, "/coupons", bytes.NewReader(body))
		w := httptest.NewRecorder()
		server.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		// Authenticated but not admin.
		clientID := SeedUser(t, testDB.Pool, "client@example.com", model.RoleClient)
		provider.users["client-token"] = &auth.User{ID: clientID.String(), Email: "client@example.com"}

		req = httptest.NewRequest(http.MethodPost, "/coupons", bytes.NewReader(body))
		req.Header.Set("Authorization", "Bearer client-token")
		w = httptest.NewRecorder()
		server.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)

		// Admin creates and the code comes back uppercased.
		adminID := SeedUser(t, testDB.Pool, "admin@example.com", model.RoleAdmin)
		provider.users["admin-token"] = &auth.User{ID: adminID.String(), Email: "admin@example.com"}

		req = httptest.NewRequest(http.MethodPost, "/coupons", bytes.NewReader(body))
		req.Header.Set("Authorization", "Bearer admin-token")
		w = httptest.NewRecorder()
		server.ServeHTTP(w, req)
		require.Equal(t, http.StatusCreated, w.Code)

		var resp struct {
			Success bool         `json:"success"`
			Data    model.Coupon `json:"data"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "NEW10", resp.Data.Code)
	})

	t.Run("POST /coupons/{id}/increment-usage bumps the counter", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		id := SeedCoupon(t, testDB.Pool, "BUMP", nil)

		req := httptest.NewRequest(http.MethodPost, "/coupons/"+id.String()+"/increment-usage", nil)
		w := httptest.NewRecorder()
		server.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Success bool         `json:"success"`
			Data    model.Coupon `json:"data"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, 1, resp.Data.UsageCount)
	})
}

func TestWorkshopAPI_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	server := setupTestServer(t, testDB, &fakeProvider{users: map[string]*auth.User{}})

	t.Run("GET /workshops/{slug} returns workshop with sessions", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedWorkshop(t, testDB.Pool, "go-basics", 10)

		req := httptest.NewRequest(http.MethodGet, "/workshops/go-basics", nil)
		w := httptest.NewRecorder()
		server.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Success bool                 `json:"success"`
			Data    model.WorkshopDetail `json:"data"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "go-basics", resp.Data.Slug)
		assert.Len(t, resp.Data.Sessions, 1)
	})

	t.Run("decrease-spots answers 400 once sold out", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		_, sessionID := SeedWorkshop(t, testDB.Pool, "tiny", 1)

		path := "/workshop-sessions/" + sessionID.String() + "/decrease-spots"

		req := httptest.NewRequest(http.MethodPost, path, nil)
		w := httptest.NewRecorder()
		server.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)

		req = httptest.NewRequest(http.MethodPost, path, nil)
		w = httptest.NewRecorder()
		server.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "No available spots")
	})
}

func TestHealthAndMetrics_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	server := setupTestServer(t, testDB, &fakeProvider{users: map[string]*auth.User{}})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w = httptest.NewRecorder()
	server.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}
