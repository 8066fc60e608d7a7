package services

import (
	"encoding/json"
	"sync"

	"court-queue-backend/internal/models"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// WSMessage represents a WebSocket message pushed to subscribers
type WSMessage struct {
	Type   string             `json:"type"`
	Courts []models.CourtView `json:"courts,omitempty"`
}

// WSHub manages WebSocket subscribers interested in court-state changes.
// Subscribers are anonymous; every state change pushes the refreshed
// visible court list to all of them.
type WSHub struct {
	mu    sync.RWMutex
	conns map[*websocket.Conn]struct{}
}

// NewWSHub creates a new WebSocket hub
func NewWSHub() *WSHub {
	return &WSHub{
		conns: make(map[*websocket.Conn]struct{}),
	}
}

// Register adds a subscriber connection
func (h *WSHub) Register(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn] = struct{}{}
	log.Info().Int("subscribers", len(h.conns)).Msg("WebSocket subscriber registered")
}

// Unregister removes a subscriber connection and closes it
func (h *WSHub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.conns[conn]; ok {
		conn.Close()
		delete(h.conns, conn)
		log.Info().Int("subscribers", len(h.conns)).Msg("WebSocket subscriber unregistered")
	}
}

// BroadcastCourts pushes the refreshed court list to every subscriber.
// Connections that fail to accept the write are dropped.
func (h *WSHub) BroadcastCourts(courts []models.CourtView) {
	data, err := json.Marshal(WSMessage{Type: "courts_updated", Courts: courts})
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal court update")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Warn().Err(err).Msg("Dropping dead WebSocket subscriber")
			conn.Close()
			delete(h.conns, conn)
		}
	}
}

// Subscribers returns the current subscriber count
func (h *WSHub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}
