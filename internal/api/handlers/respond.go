package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/leafguard/leafguard-be/internal/apperr"
)

// writeJSON sends a JSON response with the given status code and data.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// writeMessage sends a JSON body containing only a message field.
func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// writeServiceError maps a service error to an HTTP response. Taxonomy
// errors carry their own user-facing message; anything else is a dependency
// failure, logged in full but returned as a generic message.
func writeServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, apperr.ErrDuplicateEmail):
		writeMessage(w, http.StatusBadRequest, "Email is already registered")
	case errors.Is(err, apperr.ErrInvalidCredentials):
		writeMessage(w, http.StatusBadRequest, "Invalid credentials")
	case errors.Is(err, apperr.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "User not found")
	default:
		log.Error().Err(err).Msg(fallback)
		writeMessage(w, http.StatusInternalServerError, fallback)
	}
}
