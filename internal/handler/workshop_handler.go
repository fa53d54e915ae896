package handler

import (
	"net/http"
	"strconv"

	"workshop-bridge/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const defaultUpcomingLimit = 10

// WorkshopHandler handles workshop and session HTTP requests.
type WorkshopHandler struct {
	workshops store.WorkshopStore
	logger    zerolog.Logger
}

// NewWorkshopHandler creates a new workshop handler.
func NewWorkshopHandler(workshops store.WorkshopStore, logger zerolog.Logger) *WorkshopHandler {
	return &WorkshopHandler{
		workshops: workshops,
		logger:    logger.With().Str("handler", "workshop").Logger(),
	}
}

// List handles GET /workshops, returning active workshops.
func (h *WorkshopHandler) List(w http.ResponseWriter, r *http.Request) {
	workshops, err := h.workshops.ListActive(r.Context())
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, workshops)
}

// GetBySlug handles GET /workshops/{slug}, returning the workshop with
// its sessions.
func (h *WorkshopHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		writeError(w, http.StatusBadRequest, "Workshop slug is required", h.logger)
		return
	}

	detail, err := h.workshops.GetBySlug(r.Context(), slug)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, detail)
}

// UpcomingSessions handles GET /workshops/sessions/upcoming.
func (h *WorkshopHandler) UpcomingSessions(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r, defaultUpcomingLimit)

	sessions, err := h.workshops.UpcomingSessions(r.Context(), limit)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, sessions)
}

// GetSession handles GET /workshops/sessions/{id}.
func (h *WorkshopHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	session, err := h.workshops.GetSession(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, session)
}

// SessionsForWorkshop handles GET /workshops/sessions/workshop/{id}.
func (h *WorkshopHandler) SessionsForWorkshop(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	sessions, err := h.workshops.SessionsForWorkshop(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, sessions)
}

// DecreaseSpots handles POST /workshop-sessions/{id}/decrease-spots. The
// spot is taken by a conditional update, so two bookings can never share
// the last one.
func (h *WorkshopHandler) DecreaseSpots(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	if err := h.workshops.DecreaseSpots(r.Context(), id); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeMessage(w, http.StatusOK, "Spot reserved")
}

// IncreaseSpots handles POST /workshop-sessions/{id}/increase-spots,
// returning a spot after a cancellation.
func (h *WorkshopHandler) IncreaseSpots(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	if err := h.workshops.IncreaseSpots(r.Context(), id); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeMessage(w, http.StatusOK, "Spot released")
}

func (h *WorkshopHandler) parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid ID format", h.logger)
		return uuid.Nil, false
	}
	return id, true
}

// parseLimit reads the limit query parameter, falling back to a default
// for missing or unusable values.
func parseLimit(r *http.Request, fallback int) int {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		return fallback
	}
	return limit
}
