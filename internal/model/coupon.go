package model

import (
	"time"

	"github.com/google/uuid"
)

// Discount types supported by the coupon engine.
const (
	DiscountTypePercentage  = "percentage"
	DiscountTypeFixedAmount = "fixed_amount"
)

// Coupon represents a discount rule identified by a unique, uppercased code.
type Coupon struct {
	ID                uuid.UUID  `json:"id" db:"id"`
	Name              string     `json:"name" db:"name"`
	Code              string     `json:"code" db:"code"`
	DiscountType      string     `json:"discount_type" db:"discount_type"`
	DiscountValue     float64    `json:"discount_value" db:"discount_value"`
	MaxDiscountAmount *float64   `json:"max_discount_amount" db:"max_discount_amount"`
	MinOrderAmount    *float64   `json:"min_order_amount" db:"min_order_amount"`
	UsageLimit        *int       `json:"usage_limit" db:"usage_limit"`
	UsageLimitPerUser *int       `json:"usage_limit_per_user" db:"usage_limit_per_user"`
	UsageCount        int        `json:"usage_count" db:"usage_count"`
	StartDate         time.Time  `json:"start_date" db:"start_date"`
	EndDate           *time.Time `json:"end_date" db:"end_date"`
	IsActive          bool       `json:"is_active" db:"is_active"`
	CreatedAt         time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at" db:"updated_at"`
}

// CouponRequest represents the request payload for creating a coupon.
// Numeric fields arrive as strings from some clients and are parsed
// defensively by the handler.
type CouponRequest struct {
	Name              string   `json:"name"`
	Code              string   `json:"code"`
	DiscountType      string   `json:"discount_type"`
	DiscountValue     *float64 `json:"discount_value"`
	MaxDiscountAmount *float64 `json:"max_discount_amount"`
	MinOrderAmount    *float64 `json:"min_order_amount"`
	UsageLimit        *int     `json:"usage_limit"`
	UsageLimitPerUser *int     `json:"usage_limit_per_user"`
	StartDate         *string  `json:"start_date"`
	EndDate           *string  `json:"end_date"`
	IsActive          *bool    `json:"is_active"`
}

// CouponUpdate represents a partial coupon update. Nil fields are left
// untouched; pointers to zero values clear optional columns.
type CouponUpdate struct {
	Name              *string    `json:"name"`
	Code              *string    `json:"code"`
	DiscountType      *string    `json:"discount_type"`
	DiscountValue     *float64   `json:"discount_value"`
	MaxDiscountAmount *float64   `json:"max_discount_amount"`
	MinOrderAmount    *float64   `json:"min_order_amount"`
	UsageLimit        *int       `json:"usage_limit"`
	UsageLimitPerUser *int       `json:"usage_limit_per_user"`
	StartDate         *time.Time `json:"start_date"`
	EndDate           *time.Time `json:"end_date"`
	IsActive          *bool      `json:"is_active"`
}

// CouponFilter narrows coupon listings.
type CouponFilter struct {
	ActiveOnly  bool
	ExpiredOnly bool
}
