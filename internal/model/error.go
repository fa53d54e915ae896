package model

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON   = "INVALID_JSON"
	ErrCodeMissingField  = "MISSING_FIELD"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeSoldOut       = "SOLD_OUT"
	ErrCodeUnauthorised  = "UNAUTHORIZED"
	ErrCodeForbidden     = "FORBIDDEN"
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// DomainError carries a stable code alongside a human-readable message
// so handlers can map failures to HTTP statuses without string matching.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound         = NewDomainError(ErrCodeNotFound, "Record not found")
	ErrCouponNotFound   = NewDomainError(ErrCodeNotFound, "Coupon not found")
	ErrUserNotFound     = NewDomainError(ErrCodeNotFound, "User not found for email")
	ErrSessionSoldOut   = NewDomainError(ErrCodeSoldOut, "No available spots remaining for this session")
	ErrMissingField     = NewDomainError(ErrCodeMissingField, "Required field missing")
	ErrInvalidAuthToken = NewDomainError(ErrCodeUnauthorised, "Invalid or expired token")
)
