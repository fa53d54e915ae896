package model

import (
	"time"

	"github.com/google/uuid"
)

// Order statuses.
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusCancelled = "cancelled"
)

// Order represents a workshop booking order.
type Order struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	UserID        uuid.UUID  `json:"user_id" db:"user_id"`
	WorkshopID    uuid.UUID  `json:"workshop_id" db:"workshop_id"`
	SessionID     *uuid.UUID `json:"session_id" db:"session_id"`
	PaymentMethod string     `json:"payment_method" db:"payment_method"`
	PaymentID     *string    `json:"payment_id" db:"payment_id"`
	Amount        float64    `json:"amount" db:"amount"`
	Status        string     `json:"status" db:"status"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}

// OrderRequest represents the request payload for creating an order.
type OrderRequest struct {
	UserID        uuid.UUID  `json:"user_id"`
	WorkshopID    uuid.UUID  `json:"workshop_id"`
	SessionID     *uuid.UUID `json:"session_id"`
	PaymentMethod string     `json:"payment_method"`
	PaymentID     *string    `json:"payment_id"`
	Amount        float64    `json:"amount"`
}

// OrderStatusUpdate represents the payload for updating an order's
// status and payment reference.
type OrderStatusUpdate struct {
	Status    string  `json:"status"`
	PaymentID *string `json:"payment_id"`
}

// OrderDetail is an order with its workshop and session attached.
type OrderDetail struct {
	Order
	Workshop *Workshop        `json:"workshops,omitempty"`
	Session  *WorkshopSession `json:"sessions,omitempty"`
}
