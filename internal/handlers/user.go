package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"court-queue-backend/internal/models"

	"github.com/rs/zerolog/log"
)

// UserDirectory is the user-facing surface of the user service
type UserDirectory interface {
	Register(ctx context.Context, rawPhone string) (*models.User, bool, error)
}

// UserHandler handles registration HTTP requests
type UserHandler struct {
	users UserDirectory
}

// NewUserHandler creates a new user handler
func NewUserHandler(users UserDirectory) *UserHandler {
	return &UserHandler{users: users}
}

// RegisterRequest represents the request body for registration
type RegisterRequest struct {
	PhoneNumber string `json:"phone_number"`
}

// Register handles POST /api/v1/register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.PhoneNumber == "" {
		respondError(w, "phone_number is required", http.StatusBadRequest)
		return
	}

	user, existing, err := h.users.Register(ctx, req.PhoneNumber)
	if err != nil {
		log.Error().Err(err).Msg("Failed to register user")
		respondServiceError(w, err, "Failed to register user")
		return
	}

	log.Info().
		Str("animal_name", user.AnimalName).
		Bool("is_existing", existing).
		Msg("User registered")

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"user":        user,
		"is_existing": existing,
	})
}
