package handler

import (
	"net/http"

	"workshop-bridge/internal/model"
	"workshop-bridge/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// PendingUserHandler handles pre-registration contact data.
type PendingUserHandler struct {
	pendingUsers store.PendingUserStore
	logger       zerolog.Logger
}

// NewPendingUserHandler creates a new pending user handler.
func NewPendingUserHandler(pendingUsers store.PendingUserStore, logger zerolog.Logger) *PendingUserHandler {
	return &PendingUserHandler{
		pendingUsers: pendingUsers,
		logger:       logger.With().Str("handler", "pending-user").Logger(),
	}
}

// Create handles POST /pending-users.
func (h *PendingUserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.PendingUserRequest
	if !decodeBody(w, r, &req, h.logger) {
		return
	}

	if req.Email == "" {
		writeError(w, http.StatusBadRequest, "Email is required", h.logger)
		return
	}

	pending, err := h.pendingUsers.Create(r.Context(), &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusCreated, pending)
}

// GetByEmail handles GET /pending-users/by-email/{email}.
func (h *PendingUserHandler) GetByEmail(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	if email == "" {
		writeError(w, http.StatusBadRequest, "Email is required", h.logger)
		return
	}

	pending, err := h.pendingUsers.GetByEmail(r.Context(), email)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, pending)
}

// DeleteByEmail handles DELETE /pending-users/by-email/{email}.
func (h *PendingUserHandler) DeleteByEmail(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	if email == "" {
		writeError(w, http.StatusBadRequest, "Email is required", h.logger)
		return
	}

	if err := h.pendingUsers.DeleteByEmail(r.Context(), email); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeMessage(w, http.StatusOK, "Pending user deleted successfully")
}
