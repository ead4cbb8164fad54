package services

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/drishyamitra/server/internal/observability"
)

// Event types broadcast to connected clients
const (
	EventPhotoUploaded = "photo.uploaded"
	EventPhotoDeleted  = "photo.deleted"
	EventShareCreated  = "share.created"
)

// Event is a WebSocket notification
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// EventClient is one connected WebSocket client
type EventClient struct {
	Conn *websocket.Conn
	Send chan []byte
	hub  *EventHub
}

// EventHub fans library events out to every connected client. This is a
// single-user app, so there is no per-user or per-topic routing.
type EventHub struct {
	clients    map[*EventClient]bool
	register   chan *EventClient
	unregister chan *EventClient
	broadcast  chan []byte
	mu         sync.RWMutex
	logger     *observability.Logger
}

// NewEventHub creates an EventHub
func NewEventHub() *EventHub {
	return &EventHub{
		clients:    make(map[*EventClient]bool),
		register:   make(chan *EventClient),
		unregister: make(chan *EventClient),
		broadcast:  make(chan []byte, 64),
		logger:     observability.GetLogger().WithField("component", "events"),
	}
}

// Run starts the hub's main loop
func (h *EventHub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.Debug("event client connected")

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mu.Unlock()
			h.logger.Debug("event client disconnected")

		case msg := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.Send <- msg:
				default:
					// Client buffer full, drop the connection
					go func(c *EventClient) {
						h.unregister <- c
					}(client)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Broadcast sends an event to every connected client. Safe on a nil hub,
// so callers without an event surface can skip wiring one.
func (h *EventHub) Broadcast(eventType string, payload interface{}) {
	if h == nil {
		return
	}
	msg, err := json.Marshal(Event{Type: eventType, Payload: payload})
	if err != nil {
		h.logger.Errorf("failed to encode %s event: %v", eventType, err)
		return
	}
	select {
	case h.broadcast <- msg:
	default:
		h.logger.Warn("event broadcast buffer full, dropping event")
	}
}

// Register attaches a new client connection to the hub and starts its
// write pump.
func (h *EventHub) Register(conn *websocket.Conn) *EventClient {
	client := &EventClient{
		Conn: conn,
		Send: make(chan []byte, 16),
		hub:  h,
	}
	h.register <- client

	go client.writePump()
	return client
}

// Unregister detaches a client from the hub
func (h *EventHub) Unregister(client *EventClient) {
	h.unregister <- client
}

func (c *EventClient) writePump() {
	defer c.Conn.Close()
	for msg := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}
