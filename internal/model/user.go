package model

import (
	"time"

	"github.com/google/uuid"
)

// User roles. New accounts default to RoleClient; admin-only routes
// require RoleAdmin.
const (
	RoleClient = "cliente"
	RoleAdmin  = "admin"
)

// User represents a registered platform user.
type User struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	FullName  string    `json:"full_name" db:"full_name"`
	Phone     *string   `json:"phone" db:"phone"`
	Role      string    `json:"role" db:"role"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// UserRequest represents the request payload for creating a user row.
type UserRequest struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
	Phone    *string   `json:"phone"`
	Role     string    `json:"role"`
}

// UserUpdate represents a partial user update.
type UserUpdate struct {
	Email    *string `json:"email"`
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
	Role     *string `json:"role"`
}

// PendingUser holds registration details captured before the user row
// exists, so they can be synced into the users table later.
type PendingUser struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	FullName  string    `json:"full_name" db:"full_name"`
	Phone     *string   `json:"phone" db:"phone"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// PendingUserRequest represents the request payload for saving a pending user.
type PendingUserRequest struct {
	Email    string  `json:"email"`
	FullName string  `json:"full_name"`
	Phone    *string `json:"phone"`
}
