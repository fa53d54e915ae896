package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"workshop-bridge/internal/config"

	"github.com/rs/zerolog"
)

// httpProvider implements Provider against the platform's REST auth
// endpoints.
type httpProvider struct {
	baseURL string
	anonKey string
	client  *http.Client
	logger  zerolog.Logger
}

// NewHTTPProvider creates a Provider that talks to the platform auth API.
func NewHTTPProvider(cfg config.AuthConfig, logger zerolog.Logger) Provider {
	return &httpProvider{
		baseURL: strings.TrimRight(cfg.PlatformURL, "/"),
		anonKey: cfg.AnonKey,
		client:  &http.Client{Timeout: 10 * time.Second},
		logger:  logger.With().Str("component", "auth-provider").Logger(),
	}
}

// SignIn exchanges email/password credentials for a session.
func (p *httpProvider) SignIn(ctx context.Context, email, password string) (*SignInResult, error) {
	body := map[string]string{"email": email, "password": password}

	var resp struct {
		Session
		User *User `json:"user"`
	}
	if err := p.do(ctx, http.MethodPost, "/auth/v1/token?grant_type=password", "", body, &resp); err != nil {
		return nil, err
	}

	return &SignInResult{User: resp.User, Session: &resp.Session}, nil
}

// SignUp registers a new account.
func (p *httpProvider) SignUp(ctx context.Context, req SignUpRequest) (*SignInResult, error) {
	body := map[string]interface{}{
		"email":    req.Email,
		"password": req.Password,
		"data": map[string]string{
			"full_name": req.FullName,
			"phone":     req.Phone,
		},
	}
	if req.Phone != "" {
		body["phone"] = req.Phone
	}

	// When email confirmation is on, the platform returns a bare user
	// with no token material. Decode both shapes.
	var resp struct {
		Session
		User *User `json:"user"`
		// Bare-user shape
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	if err := p.do(ctx, http.MethodPost, "/auth/v1/signup", "", body, &resp); err != nil {
		return nil, err
	}

	result := &SignInResult{User: resp.User}
	if resp.AccessToken != "" {
		result.Session = &resp.Session
	}
	if result.User == nil && resp.ID != "" {
		result.User = &User{ID: resp.ID, Email: resp.Email}
	}

	return result, nil
}

// SignOut revokes the session behind the given access token.
func (p *httpProvider) SignOut(ctx context.Context, token string) error {
	return p.do(ctx, http.MethodPost, "/auth/v1/logout", token, nil, nil)
}

// GetUser resolves an access token to its user.
func (p *httpProvider) GetUser(ctx context.Context, token string) (*User, error) {
	var user User
	if err := p.do(ctx, http.MethodGet, "/auth/v1/user", token, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ResetPassword triggers the platform's password recovery email.
func (p *httpProvider) ResetPassword(ctx context.Context, email, redirectTo string) error {
	path := "/auth/v1/recover"
	if redirectTo != "" {
		path += "?redirect_to=" + redirectTo
	}
	return p.do(ctx, http.MethodPost, path, "", map[string]string{"email": email}, nil)
}

// UpdatePassword sets a new password for the token's user.
func (p *httpProvider) UpdatePassword(ctx context.Context, token, password string) (*User, error) {
	var user User
	body := map[string]string{"password": password}
	if err := p.do(ctx, http.MethodPut, "/auth/v1/user", token, body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// do performs one platform auth request. The anon API key always goes in
// the apikey header; the bearer token, when present, carries the user's
// session.
func (p *httpProvider) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode auth request: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build auth request: %w", err)
	}

	req.Header.Set("apikey", p.anonKey)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	} else {
		req.Header.Set("Authorization", "Bearer "+p.anonKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.Error().Err(err).Str("path", path).Msg("auth platform request failed")
		return fmt.Errorf("auth platform request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read auth response: %w", err)
	}

	if resp.StatusCode >= 400 {
		p.logger.Warn().
			Int("status", resp.StatusCode).
			Str("path", path).
			Msg("auth platform returned error")
		return &Error{Status: resp.StatusCode, Message: platformErrorMessage(data)}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode auth response: %w", err)
		}
	}

	return nil
}

// platformErrorMessage pulls the human-readable message out of the
// platform's error payload, which has varied across API versions.
func platformErrorMessage(data []byte) string {
	var payload struct {
		Message          string `json:"message"`
		Msg              string `json:"msg"`
		ErrorDescription string `json:"error_description"`
		Error            string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return string(data)
	}

	for _, msg := range []string{payload.Message, payload.Msg, payload.ErrorDescription, payload.Error} {
		if msg != "" {
			return msg
		}
	}

	return "authentication failed"
}
