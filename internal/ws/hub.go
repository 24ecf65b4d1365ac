// Package ws broadcasts inventory events to connected websocket clients
// so dashboards see stock changes as they happen.
package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Event is the frame pushed to every connected client.
type Event struct {
	Type    string      `json:"type"`
	At      time.Time   `json:"at"`
	Payload interface{} `json:"payload,omitempty"`
}

type Hub struct {
	Register   chan *websocket.Conn
	Unregister chan *websocket.Conn
	Broadcast  chan []byte

	clients map[*websocket.Conn]string
	mutex   sync.Mutex
	log     zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		Register:   make(chan *websocket.Conn),
		Unregister: make(chan *websocket.Conn),
		Broadcast:  make(chan []byte, 16),
		clients:    make(map[*websocket.Conn]string),
		log:        log,
	}
}

// Publish serializes an event and queues it for all clients. Safe to call
// from any goroutine; a nil hub drops the event.
func (h *Hub) Publish(eventType string, payload interface{}) {
	if h == nil {
		return
	}
	msg, err := json.Marshal(Event{Type: eventType, At: time.Now(), Payload: payload})
	if err != nil {
		h.log.Error().Err(err).Str("event", eventType).Msg("event marshal failed")
		return
	}
	h.Broadcast <- msg
}

func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.Register:
			id := uuid.NewString()
			h.mutex.Lock()
			h.clients[conn] = id
			h.mutex.Unlock()
			h.log.Info().Str("client_id", id).Msg("ws client connected")

		case conn := <-h.Unregister:
			h.mutex.Lock()
			if id, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
				h.log.Info().Str("client_id", id).Msg("ws client disconnected")
			}
			h.mutex.Unlock()

		case message := <-h.Broadcast:
			h.mutex.Lock()
			for conn := range h.clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					conn.Close()
					delete(h.clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}
