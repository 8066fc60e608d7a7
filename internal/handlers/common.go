package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"court-queue-backend/internal/models"
)

// ErrorResponse is the failure envelope returned by every endpoint
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// respondJSON sends a success envelope with the given payload fields
func respondJSON(w http.ResponseWriter, statusCode int, payload map[string]interface{}) {
	body := map[string]interface{}{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}

// respondError sends an error envelope
func respondError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Success: false, Error: message})
}

// statusForError maps domain errors onto HTTP status codes:
// 400 for validation failures, 404 for missing entities, 409 for state
// conflicts, 500 for everything else.
func statusForError(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidPhone),
		errors.Is(err, models.ErrDuplicatePlayers),
		errors.Is(err, models.ErrInvalidKind),
		errors.Is(err, models.ErrInvalidOption),
		errors.Is(err, models.ErrWrongPlayerCount),
		errors.Is(err, models.ErrUnknownPlayers),
		errors.Is(err, models.ErrBusyPlayers),
		errors.Is(err, models.ErrAlreadyQueued):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrCourtNotFound),
		errors.Is(err, models.ErrReservationNotFound),
		errors.Is(err, models.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrCourtNotAvailable),
		errors.Is(err, models.ErrCourtNotInUse),
		errors.Is(err, models.ErrNotHalfCourt):
		return http.StatusConflict
	case errors.Is(err, models.ErrNamePoolExhausted):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondServiceError sends an error envelope for a domain error. The
// client-facing message is the error text itself for recognized domain
// errors; unexpected failures get a generic message.
func respondServiceError(w http.ResponseWriter, err error, fallback string) {
	status := statusForError(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = fallback
	}
	respondError(w, message, status)
}
