package handlers

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/drishyamitra/server/internal/services"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS policy is enforced at the router level
		return true
	},
}

// EventsHandler upgrades clients onto the library event stream
type EventsHandler struct {
	hub *services.EventHub
}

// NewEventsHandler creates a new EventsHandler
func NewEventsHandler(hub *services.EventHub) *EventsHandler {
	return &EventsHandler{hub: hub}
}

// Subscribe upgrades the connection and streams library events until the
// client disconnects.
func (h *EventsHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := h.hub.Register(conn)

	// Drain reads to detect disconnects; clients don't send anything.
	go func() {
		defer h.hub.Unregister(client)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
