package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"court-queue-backend/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// CourtEngine is the handler-facing surface of the availability engine
type CourtEngine interface {
	List(ctx context.Context, visibleOnly bool) ([]models.CourtView, error)
	Reserve(ctx context.Context, courtNumber int, rawNames []string, kind models.ReservationKind, option models.ReservationOption) (*models.Reservation, error)
	Merge(ctx context.Context, courtNumber int, rawNames []string) (*models.Reservation, error)
	ValidatePlayers(ctx context.Context, rawNames []string) (*models.PlayerValidation, error)
	ActiveReservations(ctx context.Context) ([]models.ActiveReservationView, error)
	ActiveUsers(ctx context.Context) ([]models.ActiveUser, error)
	IdleUsers(ctx context.Context) ([]models.IdleUser, error)
	Cancel(ctx context.Context, reservationID string) error
	ForceRelease(ctx context.Context, courtNumber int) (*models.Court, error)
	ToggleVisibility(ctx context.Context, courtNumber int) (*models.Court, error)
}

// CourtHandler handles court and reservation HTTP requests
type CourtHandler struct {
	engine CourtEngine
}

// NewCourtHandler creates a new court handler
func NewCourtHandler(engine CourtEngine) *CourtHandler {
	return &CourtHandler{engine: engine}
}

// ReserveRequest represents the request body for creating a reservation
type ReserveRequest struct {
	CourtNumber int      `json:"court_number"`
	Players     []string `json:"players"`
	Kind        string   `json:"kind"`
	Option      string   `json:"option"`
}

// MergeRequest represents the request body for merging into a half court
type MergeRequest struct {
	CourtNumber int      `json:"court_number"`
	Players     []string `json:"players"`
}

// ValidateRequest represents the request body for player validation
type ValidateRequest struct {
	Players []string `json:"players"`
}

// ListCourts handles GET /api/v1/courts
func (h *CourtHandler) ListCourts(w http.ResponseWriter, r *http.Request) {
	courts, err := h.engine.List(r.Context(), true)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list courts")
		respondServiceError(w, err, "Failed to list courts")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"courts": courts})
}

// Reserve handles POST /api/v1/reserve
func (h *CourtHandler) Reserve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ReserveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.CourtNumber == 0 || len(req.Players) == 0 || req.Kind == "" {
		respondError(w, "court_number, players and kind are required", http.StatusBadRequest)
		return
	}

	res, err := h.engine.Reserve(ctx, req.CourtNumber, req.Players,
		models.ReservationKind(req.Kind), models.ReservationOption(req.Option))
	if err != nil {
		log.Error().
			Err(err).
			Int("court", req.CourtNumber).
			Strs("players", req.Players).
			Msg("Failed to create reservation")
		respondServiceError(w, err, "Failed to create reservation")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"reservation": res})
}

// Merge handles POST /api/v1/merge
func (h *CourtHandler) Merge(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req MergeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.CourtNumber == 0 || len(req.Players) == 0 {
		respondError(w, "court_number and players are required", http.StatusBadRequest)
		return
	}

	res, err := h.engine.Merge(ctx, req.CourtNumber, req.Players)
	if err != nil {
		log.Error().
			Err(err).
			Int("court", req.CourtNumber).
			Strs("players", req.Players).
			Msg("Failed to merge court")
		respondServiceError(w, err, "Failed to merge court")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":     "Successfully merged into full court",
		"reservation": res,
	})
}

// Cancel handles DELETE /api/v1/reservations/{id}
func (h *CourtHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondError(w, "reservation id is required", http.StatusBadRequest)
		return
	}

	if err := h.engine.Cancel(r.Context(), id); err != nil {
		log.Error().Err(err).Str("reservation_id", id).Msg("Failed to cancel reservation")
		respondServiceError(w, err, "Failed to cancel reservation")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"message": "Reservation cancelled successfully"})
}

// ValidatePlayers handles POST /api/v1/validate-users
func (h *CourtHandler) ValidatePlayers(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.Players) == 0 {
		respondError(w, "players is required", http.StatusBadRequest)
		return
	}

	result, err := h.engine.ValidatePlayers(r.Context(), req.Players)
	if err != nil {
		log.Error().Err(err).Strs("players", req.Players).Msg("Failed to validate players")
		respondServiceError(w, err, "Failed to validate players")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"validation": result})
}

// ActiveUsers handles GET /api/v1/active-users
func (h *CourtHandler) ActiveUsers(w http.ResponseWriter, r *http.Request) {
	active, err := h.engine.ActiveUsers(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list active users")
		respondServiceError(w, err, "Failed to list active users")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"active_users": active})
}
