// Package coupon implements the pure coupon validation and discount
// computation core. Fetching the coupon snapshot and persisting usage
// counts are the caller's responsibility; validation itself performs no
// I/O and takes the evaluation time as an explicit input.
package coupon

import (
	"fmt"
	"math"
	"time"

	"workshop-bridge/internal/model"
)

// Validation messages returned in the Verdict.
const (
	MsgNotActive       = "This coupon is no longer active"
	MsgNotStarted      = "This coupon is not yet active"
	MsgExpired         = "This coupon has expired"
	MsgUsageLimitHit   = "This coupon has reached its usage limit"
	MsgValid           = "Coupon is valid"
	msgMinOrderPattern = "Minimum order amount of $%g required"
)

// Verdict is the outcome of validating a coupon against an order.
type Verdict struct {
	Valid          bool    `json:"valid"`
	Message        string  `json:"message"`
	DiscountAmount float64 `json:"discount_amount"`
}

// Validate evaluates a coupon snapshot against an order amount at the
// given time. Checks short-circuit in a fixed order: active flag, start
// date, end date, usage limit, minimum order amount. The discount is
// only computed when every check passes.
//
// userID is accepted for interface parity with callers that know who is
// redeeming, but per-user usage limits are not enforced: the data model
// carries usage_limit_per_user without a per-user redemption ledger to
// check it against.
// TODO: enforce usage_limit_per_user once a redemption ledger table exists.
func Validate(c *model.Coupon, orderAmount float64, userID string, now time.Time) Verdict {
	_ = userID

	if !c.IsActive {
		return Verdict{Valid: false, Message: MsgNotActive}
	}

	if c.StartDate.After(now) {
		return Verdict{Valid: false, Message: MsgNotStarted}
	}

	if c.EndDate != nil && c.EndDate.Before(now) {
		return Verdict{Valid: false, Message: MsgExpired}
	}

	if c.UsageLimit != nil && c.UsageCount >= *c.UsageLimit {
		return Verdict{Valid: false, Message: MsgUsageLimitHit}
	}

	if c.MinOrderAmount != nil && orderAmount < *c.MinOrderAmount {
		return Verdict{
			Valid:   false,
			Message: fmt.Sprintf(msgMinOrderPattern, *c.MinOrderAmount),
		}
	}

	return Verdict{
		Valid:          true,
		Message:        MsgValid,
		DiscountAmount: discount(c, orderAmount),
	}
}

// discount computes the discount amount for a coupon that passed all
// eligibility checks. Unknown discount types yield zero rather than an
// error.
func discount(c *model.Coupon, orderAmount float64) float64 {
	var amount float64

	switch c.DiscountType {
	case model.DiscountTypePercentage:
		amount = orderAmount * c.DiscountValue / 100
		if c.MaxDiscountAmount != nil && amount > *c.MaxDiscountAmount {
			amount = *c.MaxDiscountAmount
		}
	case model.DiscountTypeFixedAmount:
		amount = c.DiscountValue
		if amount > orderAmount {
			amount = orderAmount
		}
	}

	return round2(amount)
}

// round2 rounds to two decimal places, half away from zero.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
