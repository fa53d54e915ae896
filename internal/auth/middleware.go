package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"workshop-bridge/internal/model"
	"workshop-bridge/internal/store"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type contextKey string

const userContextKey contextKey = "auth.user"

// UserFromContext returns the authenticated user set by RequireAuth.
func UserFromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(userContextKey).(*User)
	return user, ok
}

// BearerToken extracts the bearer token from an Authorization header.
// Returns an empty string when the header is missing or malformed.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// RequireAuth rejects requests without a valid access token and puts the
// resolved user on the request context.
func RequireAuth(provider Provider, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				writeEnvelopeError(w, http.StatusUnauthorized, "Access token required")
				return
			}

			user, err := provider.GetUser(r.Context(), token)
			if err != nil {
				logger.Warn().Err(err).Str("path", r.URL.Path).Msg("token verification failed")
				writeEnvelopeError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects authenticated requests whose user does not hold
// the admin role in the users table. Must run after RequireAuth. The
// role lookup uses the service-role store so row-level security cannot
// hide the row.
func RequireAdmin(users store.UserStore, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				writeEnvelopeError(w, http.StatusUnauthorized, "Access token required")
				return
			}

			userID, err := uuid.Parse(user.ID)
			if err != nil {
				writeEnvelopeError(w, http.StatusForbidden, "Unable to verify user permissions")
				return
			}

			row, err := users.GetByID(r.Context(), userID)
			if err != nil {
				logger.Warn().Err(err).Str("user_id", user.ID).Msg("admin role lookup failed")
				writeEnvelopeError(w, http.StatusForbidden, "Unable to verify user permissions")
				return
			}

			if row.Role != model.RoleAdmin {
				writeEnvelopeError(w, http.StatusForbidden, "Admin access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeEnvelopeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.Response{Success: false, Error: message})
}
