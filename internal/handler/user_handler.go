package handler

import (
	"errors"
	"net/http"

	"workshop-bridge/internal/auth"
	"workshop-bridge/internal/model"
	"workshop-bridge/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// UserHandler handles user profile HTTP requests. Regular routes go
// through the anon store; admin routes and the pending-user sync use the
// service-role store.
type UserHandler struct {
	users        store.UserStore
	adminUsers   store.UserStore
	pendingUsers store.PendingUserStore
	logger       zerolog.Logger
}

// NewUserHandler creates a new user handler.
func NewUserHandler(users, adminUsers store.UserStore, pendingUsers store.PendingUserStore, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		users:        users,
		adminUsers:   adminUsers,
		pendingUsers: pendingUsers,
		logger:       logger.With().Str("handler", "user").Logger(),
	}
}

// GetProfile handles GET /users/profile?id=.
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.URL.Query().Get("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Valid user ID is required", h.logger)
		return
	}

	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, user)
}

// UpdateProfile handles PUT /users/profile. The target row is the
// authenticated user's own; the ID comes from the verified token, never
// from the payload.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	authUser, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Access token required", h.logger)
		return
	}

	id, err := uuid.Parse(authUser.ID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID format", h.logger)
		return
	}

	var update model.UserUpdate
	if !decodeBody(w, r, &update, h.logger) {
		return
	}
	// Role changes go through the admin routes only.
	update.Role = nil

	user, err := h.users.Update(r.Context(), id, &update)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, user)
}

// GetIDByEmail handles GET /users/by-email/{email}.
func (h *UserHandler) GetIDByEmail(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	if email == "" {
		writeError(w, http.StatusBadRequest, "Email is required", h.logger)
		return
	}

	id, err := h.users.GetIDByEmail(r.Context(), email)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, map[string]string{"id": id.String()})
}

// GetByID handles GET /users/{id}.
func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, user)
}

// Create handles POST /users, inserting the row that mirrors a platform
// auth account. Contact details captured at registration time win over
// the payload; the pending row is removed once synced.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.UserRequest
	if !decodeBody(w, r, &req, h.logger) {
		return
	}

	if req.ID == uuid.Nil || req.Email == "" {
		writeError(w, http.StatusBadRequest, "ID and email are required", h.logger)
		return
	}

	pending, err := h.pendingUsers.GetByEmail(r.Context(), req.Email)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		h.logger.Warn().Err(err).Str("email", req.Email).Msg("pending user lookup failed")
	}
	if pending != nil {
		if pending.FullName != "" {
			req.FullName = pending.FullName
		}
		if pending.Phone != nil {
			req.Phone = pending.Phone
		}
	}

	user, err := h.users.Create(r.Context(), &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	if pending != nil {
		if err := h.pendingUsers.DeleteByEmail(r.Context(), req.Email); err != nil {
			h.logger.Warn().Err(err).Str("email", req.Email).Msg("failed to clear pending user")
		}
	}

	writeData(w, http.StatusCreated, user)
}

// Update handles PUT /users/{id}.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var update model.UserUpdate
	if !decodeBody(w, r, &update, h.logger) {
		return
	}
	update.Role = nil

	user, err := h.users.Update(r.Context(), id, &update)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, user)
}

// AdminListAll handles GET /users/admin/all.
func (h *UserHandler) AdminListAll(w http.ResponseWriter, r *http.Request) {
	users, err := h.adminUsers.ListAll(r.Context())
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, users)
}

// AdminGetByID handles GET /users/admin/{id}.
func (h *UserHandler) AdminGetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	user, err := h.adminUsers.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, user)
}

// AdminCreate handles POST /users/admin. Unlike Create, the role in the
// payload is honoured.
func (h *UserHandler) AdminCreate(w http.ResponseWriter, r *http.Request) {
	var req model.UserRequest
	if !decodeBody(w, r, &req, h.logger) {
		return
	}

	if req.ID == uuid.Nil || req.Email == "" {
		writeError(w, http.StatusBadRequest, "ID and email are required", h.logger)
		return
	}

	user, err := h.adminUsers.Create(r.Context(), &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusCreated, user)
}

// AdminUpdate handles PUT /users/admin/{id}. Role changes are allowed
// here.
func (h *UserHandler) AdminUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var update model.UserUpdate
	if !decodeBody(w, r, &update, h.logger) {
		return
	}

	user, err := h.adminUsers.Update(r.Context(), id, &update)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, user)
}

// AdminDelete handles DELETE /users/admin/{id}.
func (h *UserHandler) AdminDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	if err := h.adminUsers.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeMessage(w, http.StatusOK, "User deleted successfully")
}

func (h *UserHandler) parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user ID format", h.logger)
		return uuid.Nil, false
	}
	return id, true
}
