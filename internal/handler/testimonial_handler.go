package handler

import (
	"errors"
	"net/http"

	"workshop-bridge/internal/model"
	"workshop-bridge/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const defaultFeaturedLimit = 6

// TestimonialHandler handles testimonial HTTP requests.
type TestimonialHandler struct {
	testimonials store.TestimonialStore
	users        store.UserStore
	logger       zerolog.Logger
}

// NewTestimonialHandler creates a new testimonial handler. The user store
// resolves submission authors by email and must be service-role so the
// lookup works for any registered user.
func NewTestimonialHandler(testimonials store.TestimonialStore, users store.UserStore, logger zerolog.Logger) *TestimonialHandler {
	return &TestimonialHandler{
		testimonials: testimonials,
		users:        users,
		logger:       logger.With().Str("handler", "testimonial").Logger(),
	}
}

// Approved handles GET /testimonials/approved.
func (h *TestimonialHandler) Approved(w http.ResponseWriter, r *http.Request) {
	testimonials, err := h.testimonials.Approved(r.Context())
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, testimonials)
}

// Featured handles GET /testimonials/featured.
func (h *TestimonialHandler) Featured(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r, defaultFeaturedLimit)

	testimonials, err := h.testimonials.Featured(r.Context(), limit)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, testimonials)
}

// ForWorkshop handles GET /testimonials/workshop/{id}.
func (h *TestimonialHandler) ForWorkshop(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid workshop ID format", h.logger)
		return
	}

	testimonials, err := h.testimonials.ForWorkshop(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, testimonials)
}

// Create handles POST /testimonials. The author is resolved by email; an
// unknown email is a client error, not a silent insert.
func (h *TestimonialHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.TestimonialRequest
	if !decodeBody(w, r, &req, h.logger) {
		return
	}

	if req.Email == "" || req.WorkshopID == uuid.Nil || req.Content == "" {
		writeError(w, http.StatusBadRequest, "email, workshopId, and content are required", h.logger)
		return
	}

	userID, err := h.users.GetIDByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) || errors.Is(err, model.ErrNotFound) {
			writeError(w, http.StatusBadRequest, model.ErrUserNotFound.Message, h.logger)
			return
		}
		writeDomainError(w, err, h.logger)
		return
	}

	testimonial, err := h.testimonials.Create(r.Context(), userID, &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusCreated, testimonial)
}
