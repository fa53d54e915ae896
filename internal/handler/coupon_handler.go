package handler

import (
	"errors"
	"net/http"
	"strconv"

	"workshop-bridge/internal/metrics"
	"workshop-bridge/internal/model"
	"workshop-bridge/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CouponHandler handles coupon-related HTTP requests.
type CouponHandler struct {
	service service.CouponService
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

// NewCouponHandler creates a new coupon handler.
func NewCouponHandler(service service.CouponService, m *metrics.Metrics, logger zerolog.Logger) *CouponHandler {
	return &CouponHandler{
		service: service,
		metrics: m,
		logger:  logger.With().Str("handler", "coupon").Logger(),
	}
}

// List handles GET /coupons. Supports active_only and expired_only query
// parameters.
func (h *CouponHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := model.CouponFilter{
		ActiveOnly:  r.URL.Query().Get("active_only") == "true",
		ExpiredOnly: r.URL.Query().Get("expired_only") == "true",
	}

	coupons, err := h.service.List(r.Context(), filter)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, coupons)
}

// GetByID handles GET /coupons/{id}.
func (h *CouponHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	c, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, c)
}

// ValidateByCode handles GET /coupons/by-code/{code}. The order_amount
// query parameter feeds the discount computation; a missing or malformed
// value is treated as zero, matching how clients have always called this
// endpoint.
func (h *CouponHandler) ValidateByCode(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	orderAmount, err := strconv.ParseFloat(r.URL.Query().Get("order_amount"), 64)
	if err != nil {
		orderAmount = 0
	}
	userID := r.URL.Query().Get("user_id")

	c, verdict, err := h.service.ValidateByCode(r.Context(), code, orderAmount, userID)
	if err != nil {
		if errors.Is(err, model.ErrCouponNotFound) {
			h.metrics.RecordCouponValidation("not_found")
			writeJSON(w, http.StatusNotFound, model.CouponValidationResponse{
				Success: false,
				Error:   model.ErrCouponNotFound.Message,
				Valid:   false,
			})
			return
		}
		writeDomainError(w, err, h.logger)
		return
	}

	if verdict.Valid {
		h.metrics.RecordCouponValidation("valid")
	} else {
		h.metrics.RecordCouponValidation("invalid")
	}

	writeJSON(w, http.StatusOK, model.CouponValidationResponse{
		Success:        true,
		Data:           c,
		Valid:          verdict.Valid,
		Message:        verdict.Message,
		DiscountAmount: verdict.DiscountAmount,
	})
}

// Create handles POST /coupons.
func (h *CouponHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CouponRequest
	if !decodeBody(w, r, &req, h.logger) {
		return
	}

	c, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusCreated, c)
}

// Update handles PUT /coupons/{id}.
func (h *CouponHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var update model.CouponUpdate
	if !decodeBody(w, r, &update, h.logger) {
		return
	}

	c, err := h.service.Update(r.Context(), id, &update)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, c)
}

// Delete handles DELETE /coupons/{id}.
func (h *CouponHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeMessage(w, http.StatusOK, "Coupon deleted successfully")
}

// IncrementUsage handles POST /coupons/{id}/increment-usage. The counter
// moves database-side in a single statement, so concurrent redemptions
// never lose an increment.
func (h *CouponHandler) IncrementUsage(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	c, err := h.service.IncrementUsage(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, c)
}

func (h *CouponHandler) parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid coupon ID format", h.logger)
		return uuid.Nil, false
	}
	return id, true
}
