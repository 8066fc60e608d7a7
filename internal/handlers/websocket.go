package handlers

import (
	"net/http"

	"court-queue-backend/internal/services"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebSocketHandler upgrades subscribers onto the court-update hub
type WebSocketHandler struct {
	hub    *services.WSHub
	engine CourtEngine
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(hub *services.WSHub, engine CourtEngine) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, engine: engine}
}

// HandleWebSocket handles GET /ws: subscribes the connection to court
// updates and sends the current board immediately.
func (h *WebSocketHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade WebSocket connection")
		return
	}

	h.hub.Register(conn)
	defer h.hub.Unregister(conn)

	// Initial snapshot so subscribers do not wait for the next change
	if courts, err := h.engine.List(r.Context(), true); err == nil {
		msg := services.WSMessage{Type: "courts_updated", Courts: courts}
		if err := conn.WriteJSON(msg); err != nil {
			log.Warn().Err(err).Msg("Failed to send initial court snapshot")
			return
		}
	}

	// Read loop only to detect disconnects; clients do not send commands
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
