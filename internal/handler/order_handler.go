package handler

import (
	"net/http"

	"workshop-bridge/internal/model"
	"workshop-bridge/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// OrderHandler handles order-related HTTP requests.
type OrderHandler struct {
	orders store.OrderStore
	logger zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(orders store.OrderStore, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		orders: orders,
		logger: logger.With().Str("handler", "order").Logger(),
	}
}

// Create handles POST /orders. New orders always start pending.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.OrderRequest
	if !decodeBody(w, r, &req, h.logger) {
		return
	}

	if req.UserID == uuid.Nil || req.WorkshopID == uuid.Nil || req.PaymentMethod == "" {
		writeError(w, http.StatusBadRequest, "user_id, workshop_id, and payment_method are required", h.logger)
		return
	}

	order, err := h.orders.Create(r.Context(), &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusCreated, order)
}

// GetByID handles GET /orders/{id}, returning the order with its
// workshop and session attached.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	order, err := h.orders.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, order)
}

// ListByUser handles GET /orders/user/{id}.
func (h *OrderHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	orders, err := h.orders.ListByUser(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, orders)
}

// UpdateStatus handles PUT /orders/{id}, moving the order through its
// payment lifecycle.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var update model.OrderStatusUpdate
	if !decodeBody(w, r, &update, h.logger) {
		return
	}

	switch update.Status {
	case model.OrderStatusPending, model.OrderStatusPaid, model.OrderStatusCancelled:
	default:
		writeError(w, http.StatusBadRequest, "Invalid order status", h.logger)
		return
	}

	order, err := h.orders.UpdateStatus(r.Context(), id, &update)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, order)
}

// Cancel handles PUT /orders/{id}/cancel.
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	order, err := h.orders.Cancel(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, order)
}

func (h *OrderHandler) parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid order ID format", h.logger)
		return uuid.Nil, false
	}
	return id, true
}
