package handler

import (
	"net/http"

	"workshop-bridge/internal/store"

	"github.com/rs/zerolog"
)

const defaultEventLimit = 10

// EventHandler handles public event HTTP requests.
type EventHandler struct {
	events store.EventStore
	logger zerolog.Logger
}

// NewEventHandler creates a new event handler.
func NewEventHandler(events store.EventStore, logger zerolog.Logger) *EventHandler {
	return &EventHandler{
		events: events,
		logger: logger.With().Str("handler", "event").Logger(),
	}
}

// Upcoming handles GET /events/upcoming.
func (h *EventHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r, defaultEventLimit)

	events, err := h.events.Upcoming(r.Context(), limit)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, events)
}
