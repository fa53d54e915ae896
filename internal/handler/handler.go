// Package handler contains the HTTP handlers for the bridge API. Every
// endpoint answers with the {success, data|error} envelope.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"workshop-bridge/internal/auth"
	"workshop-bridge/internal/model"

	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already out; nothing useful left to do.
		return
	}
}

// writeData writes a success envelope around the given payload.
func writeData(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, model.Response{Success: true, Data: data})
}

// writeMessage writes a success envelope carrying only a message.
func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, model.Response{Success: true, Message: message})
}

// writeError writes an error envelope with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string, logger zerolog.Logger) {
	logger.Error().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.Response{Success: false, Error: message})
}

// writeDomainError maps a failure to an HTTP status and writes the error
// envelope. Domain errors keep their message; platform auth errors echo
// the upstream status; anything else becomes a generic 500.
func writeDomainError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		writeError(w, statusForCode(domainErr.Code), domainErr.Message, logger)
		return
	}

	var authErr *auth.Error
	if errors.As(err, &authErr) {
		status := authErr.Status
		if status < 400 || status > 599 {
			status = http.StatusBadRequest
		}
		writeError(w, status, authErr.Message, logger)
		return
	}

	logger.Error().Err(err).Msg("unexpected error")
	writeError(w, http.StatusInternalServerError, "Internal server error", logger)
}

func statusForCode(code string) int {
	switch code {
	case model.ErrCodeNotFound:
		return http.StatusNotFound
	case model.ErrCodeInvalidJSON, model.ErrCodeMissingField, model.ErrCodeSoldOut:
		return http.StatusBadRequest
	case model.ErrCodeUnauthorised:
		return http.StatusUnauthorized
	case model.ErrCodeForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// decodeBody decodes a JSON request body into dst, answering with a 400
// envelope on malformed input. Returns false when decoding failed and a
// response has already been written.
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}, logger zerolog.Logger) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", logger)
		return false
	}
	return true
}
