package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"workshop-bridge/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) Provider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewHTTPProvider(config.AuthConfig{
		PlatformURL: srv.URL,
		AnonKey:     "anon-key",
	}, zerolog.Nop())
}

func TestHTTPProvider_SignIn(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/auth/v1/token", r.URL.Path)
			assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
			assert.Equal(t, "anon-key", r.Header.Get("apikey"))

			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "ana@example.com", body["email"])

			json.NewEncoder(w).Encode(map[string]interface{}{
				"access_token":  "token123",
				"token_type":    "bearer",
				"expires_in":    3600,
				"refresh_token": "refresh123",
				"user":          map[string]string{"id": "abc", "email": "ana@example.com"},
			})
		})

		result, err := provider.SignIn(context.Background(), "ana@example.com", "secret")

		require.NoError(t, err)
		require.NotNil(t, result.Session)
		assert.Equal(t, "token123", result.Session.AccessToken)
		require.NotNil(t, result.User)
		assert.Equal(t, "ana@example.com", result.User.Email)
	})

	t.Run("bad credentials surface the platform message", func(t *testing.T) {
		provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"error_description": "Invalid login credentials"})
		})

		_, err := provider.SignIn(context.Background(), "ana@example.com", "wrong")

		require.Error(t, err)
		var authErr *Error
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, http.StatusBadRequest, authErr.Status)
		assert.Equal(t, "Invalid login credentials", authErr.Message)
	})
}

func TestHTTPProvider_GetUser(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/user", r.URL.Path)
		assert.Equal(t, "Bearer user-token", r.Header.Get("Authorization"))

		json.NewEncoder(w).Encode(map[string]string{"id": "abc", "email": "ana@example.com"})
	})

	user, err := provider.GetUser(context.Background(), "user-token")

	require.NoError(t, err)
	assert.Equal(t, "abc", user.ID)
}

func TestHTTPProvider_SignUp_BareUserShape(t *testing.T) {
	// With email confirmation on, the platform answers with the user only
	// and no token material.
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/signup", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"id": "abc", "email": "ana@example.com"})
	})

	result, err := provider.SignUp(context.Background(), SignUpRequest{
		Email:    "ana@example.com",
		Password: "secret",
	})

	require.NoError(t, err)
	assert.Nil(t, result.Session)
	require.NotNil(t, result.User)
	assert.Equal(t, "abc", result.User.ID)
}

func TestPlatformErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		expected string
	}{
		{name: "msg field", payload: `{"msg": "User already registered"}`, expected: "User already registered"},
		{name: "message field", payload: `{"message": "Token expired"}`, expected: "Token expired"},
		{name: "error_description field", payload: `{"error_description": "Invalid login credentials"}`, expected: "Invalid login credentials"},
		{name: "unparseable body", payload: `plain text`, expected: "plain text"},
		{name: "empty object", payload: `{}`, expected: "authentication failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, platformErrorMessage([]byte(tt.payload)))
		})
	}
}
