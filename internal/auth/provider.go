// Package auth delegates authentication to the backing platform's auth
// API. The bridge never verifies credentials or tokens itself; it
// forwards them and reshapes the platform's answers.
package auth

import (
	"context"
	"fmt"
)

// User is the platform's view of an authenticated user.
type User struct {
	ID       string                 `json:"id"`
	Email    string                 `json:"email"`
	Phone    string                 `json:"phone,omitempty"`
	Role     string                 `json:"role,omitempty"`
	Metadata map[string]interface{} `json:"user_metadata,omitempty"`
}

// Session is an issued token pair.
type Session struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
}

// SignInResult bundles the user and session returned on successful
// sign-in or sign-up.
type SignInResult struct {
	User    *User    `json:"user"`
	Session *Session `json:"session"`
}

// SignUpRequest carries registration details forwarded to the platform.
type SignUpRequest struct {
	Email    string
	Password string
	Phone    string
	FullName string
}

// Provider is the capability interface for the platform auth API.
type Provider interface {
	// SignIn exchanges email/password credentials for a session.
	SignIn(ctx context.Context, email, password string) (*SignInResult, error)

	// SignUp registers a new account. Depending on platform settings the
	// session may be nil until the email is confirmed.
	SignUp(ctx context.Context, req SignUpRequest) (*SignInResult, error)

	// SignOut revokes the session behind the given access token.
	SignOut(ctx context.Context, token string) error

	// GetUser resolves an access token to its user.
	GetUser(ctx context.Context, token string) (*User, error)

	// ResetPassword triggers the platform's password recovery email.
	ResetPassword(ctx context.Context, email, redirectTo string) error

	// UpdatePassword sets a new password for the token's user.
	UpdatePassword(ctx context.Context, token, password string) (*User, error)
}

// Error is a platform auth failure with the upstream HTTP status
// preserved so handlers can echo it.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("auth platform error (status %d): %s", e.Status, e.Message)
}
