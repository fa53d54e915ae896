package model

// Response is the uniform envelope returned by every endpoint.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

// CouponValidationResponse extends the envelope with the validation
// verdict for GET /coupons/by-code/{code}.
type CouponValidationResponse struct {
	Success        bool    `json:"success"`
	Data           *Coupon `json:"data,omitempty"`
	Error          string  `json:"error,omitempty"`
	Valid          bool    `json:"valid"`
	Message        string  `json:"message,omitempty"`
	DiscountAmount float64 `json:"discount_amount"`
}
