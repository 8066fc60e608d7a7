package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

// AdminHandler handles admin HTTP requests. Requests reach it only after
// the shared-secret middleware has passed.
type AdminHandler struct {
	engine CourtEngine
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(engine CourtEngine) *AdminHandler {
	return &AdminHandler{engine: engine}
}

// CourtActionRequest represents an admin request targeting one court
type CourtActionRequest struct {
	CourtNumber int `json:"court_number"`
}

// ListAllCourts handles GET /api/v1/admin/courts, including hidden courts
func (h *AdminHandler) ListAllCourts(w http.ResponseWriter, r *http.Request) {
	courts, err := h.engine.List(r.Context(), false)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list all courts")
		respondServiceError(w, err, "Failed to list all courts")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"courts": courts})
}

// ResetCourt handles POST /api/v1/admin/reset-court
func (h *AdminHandler) ResetCourt(w http.ResponseWriter, r *http.Request) {
	var req CourtActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.CourtNumber == 0 {
		respondError(w, "court_number is required", http.StatusBadRequest)
		return
	}

	court, err := h.engine.ForceRelease(r.Context(), req.CourtNumber)
	if err != nil {
		log.Error().Err(err).Int("court", req.CourtNumber).Msg("Failed to reset court")
		respondServiceError(w, err, "Failed to reset court")
		return
	}

	log.Info().Int("court", req.CourtNumber).Msg("Court reset by admin")
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Court reset successfully",
		"court":   court,
	})
}

// ToggleVisibility handles POST /api/v1/admin/toggle-visibility
func (h *AdminHandler) ToggleVisibility(w http.ResponseWriter, r *http.Request) {
	var req CourtActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.CourtNumber == 0 {
		respondError(w, "court_number is required", http.StatusBadRequest)
		return
	}

	court, err := h.engine.ToggleVisibility(r.Context(), req.CourtNumber)
	if err != nil {
		log.Error().Err(err).Int("court", req.CourtNumber).Msg("Failed to toggle visibility")
		respondServiceError(w, err, "Failed to toggle court visibility")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"court": court})
}

// Users handles GET /api/v1/admin/users: the active/idle user overview
func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	active, err := h.engine.ActiveUsers(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list active users")
		respondServiceError(w, err, "Failed to list users")
		return
	}
	idle, err := h.engine.IdleUsers(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list idle users")
		respondServiceError(w, err, "Failed to list users")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"active_users": active,
		"idle_users":   idle,
	})
}
