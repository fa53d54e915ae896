package handler

import (
	"net/http"

	"workshop-bridge/internal/auth"
	"workshop-bridge/internal/model"
	"workshop-bridge/internal/store"

	"github.com/rs/zerolog"
)

// AuthHandler forwards authentication requests to the platform auth API.
type AuthHandler struct {
	provider     auth.Provider
	pendingUsers store.PendingUserStore
	logger       zerolog.Logger
}

// NewAuthHandler creates a new auth handler. The pending-user store
// captures registration details before the user row exists.
func NewAuthHandler(provider auth.Provider, pendingUsers store.PendingUserStore, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		provider:     provider,
		pendingUsers: pendingUsers,
		logger:       logger.With().Str("handler", "auth").Logger(),
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req, h.logger) {
		return
	}

	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required", h.logger)
		return
	}

	result, err := h.provider.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, result)
}

type registerRequest struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	FullName string  `json:"full_name"`
	Phone    *string `json:"phone"`
}

// Register handles POST /auth/register. The contact details are also
// saved as a pending user so they can be synced into the users table on
// first sign-in; that insert is best-effort and never fails the
// registration.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, &req, h.logger) {
		return
	}

	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required", h.logger)
		return
	}

	signUp := auth.SignUpRequest{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	}
	if req.Phone != nil {
		signUp.Phone = *req.Phone
	}

	result, err := h.provider.SignUp(r.Context(), signUp)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	if _, err := h.pendingUsers.Create(r.Context(), &model.PendingUserRequest{
		Email:    req.Email,
		FullName: req.FullName,
		Phone:    req.Phone,
	}); err != nil {
		h.logger.Warn().Err(err).Str("email", req.Email).Msg("failed to save pending user")
	}

	writeData(w, http.StatusOK, result)
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := auth.BearerToken(r)
	if token == "" {
		writeError(w, http.StatusUnauthorized, "Access token required", h.logger)
		return
	}

	if err := h.provider.SignOut(r.Context(), token); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeMessage(w, http.StatusOK, "Logged out successfully")
}

// GetUser handles GET /auth/user, resolving the bearer token to its user.
func (h *AuthHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	token := auth.BearerToken(r)
	if token == "" {
		writeError(w, http.StatusUnauthorized, "Access token required", h.logger)
		return
	}

	user, err := h.provider.GetUser(r.Context(), token)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, user)
}

type resetPasswordRequest struct {
	Email      string `json:"email"`
	RedirectTo string `json:"redirect_to"`
}

// ResetPassword handles POST /auth/reset-password.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if !decodeBody(w, r, &req, h.logger) {
		return
	}

	if req.Email == "" {
		writeError(w, http.StatusBadRequest, "Email is required", h.logger)
		return
	}

	if err := h.provider.ResetPassword(r.Context(), req.Email, req.RedirectTo); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeMessage(w, http.StatusOK, "Password reset email sent")
}

type updatePasswordRequest struct {
	Password string `json:"password"`
}

// UpdatePassword handles POST /auth/update-password.
func (h *AuthHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	token := auth.BearerToken(r)
	if token == "" {
		writeError(w, http.StatusUnauthorized, "Access token required", h.logger)
		return
	}

	var req updatePasswordRequest
	if !decodeBody(w, r, &req, h.logger) {
		return
	}

	if req.Password == "" {
		writeError(w, http.StatusBadRequest, "Password is required", h.logger)
		return
	}

	user, err := h.provider.UpdatePassword(r.Context(), token, req.Password)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, user)
}
