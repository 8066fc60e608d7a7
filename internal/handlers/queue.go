package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"court-queue-backend/internal/models"

	"github.com/rs/zerolog/log"
)

// Waitlist is the handler-facing surface of the queue service
type Waitlist interface {
	Join(ctx context.Context, rawNames []string, kind models.ReservationKind) (*models.QueueEntry, error)
	Waiting(ctx context.Context) ([]models.QueueEntry, error)
}

// QueueHandler handles queue-board and waitlist HTTP requests
type QueueHandler struct {
	engine CourtEngine
	queue  Waitlist
}

// NewQueueHandler creates a new queue handler
func NewQueueHandler(engine CourtEngine, queue Waitlist) *QueueHandler {
	return &QueueHandler{engine: engine, queue: queue}
}

// JoinRequest represents the request body for joining the waitlist
type JoinRequest struct {
	Players []string `json:"players"`
	Kind    string   `json:"kind"`
}

// ListQueue handles GET /api/v1/queue: the queue board of unexpired
// reservations ordered by time remaining
func (h *QueueHandler) ListQueue(w http.ResponseWriter, r *http.Request) {
	active, err := h.engine.ActiveReservations(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list queue board")
		respondServiceError(w, err, "Failed to list queue board")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"queue": active})
}

// Join handles POST /api/v1/queue/join
func (h *QueueHandler) Join(w http.ResponseWriter, r *http.Request) {
	var req JoinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.Players) == 0 || req.Kind == "" {
		respondError(w, "players and kind are required", http.StatusBadRequest)
		return
	}

	entry, err := h.queue.Join(r.Context(), req.Players, models.ReservationKind(req.Kind))
	if err != nil {
		log.Error().Err(err).Strs("players", req.Players).Msg("Failed to join waitlist")
		respondServiceError(w, err, "Failed to join waitlist")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"queue_entry": entry})
}

// Waiting handles GET /api/v1/queue/waiting
func (h *QueueHandler) Waiting(w http.ResponseWriter, r *http.Request) {
	entries, err := h.queue.Waiting(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list waitlist")
		respondServiceError(w, err, "Failed to list waitlist")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"waiting": entries})
}
