// Package events pushes entity change notifications to a user's connected
// websocket clients. Delivery is best-effort: a slow client is dropped
// rather than allowed to block the hub.
package events

import (
	"encoding/json"

	"github.com/rs/zerolog"
)

type Event struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

type userEvent struct {
	userID  string
	payload []byte
}

type Hub struct {
	clients    map[*Client]bool
	userIndex  map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	events     chan userEvent
	log        zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		userIndex:  make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		events:     make(chan userEvent, 64),
		log:        log,
	}
}

// Run owns all hub state; it must be started once, in its own goroutine,
// before any client connects.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			if h.userIndex[client.userID] == nil {
				h.userIndex[client.userID] = make(map[*Client]bool)
			}
			h.userIndex[client.userID][client] = true
			h.log.Debug().Str("user_id", client.userID).Msg("events client connected")

		case client := <-h.unregister:
			h.drop(client)

		case ev := <-h.events:
			for client := range h.userIndex[ev.userID] {
				select {
				case client.send <- ev.payload:
				default:
					h.drop(client)
				}
			}
		}
	}
}

// Publish queues an entity change event for every connection the owner has.
// Safe to call from any goroutine; drops the event if the hub is saturated.
func (h *Hub) Publish(userID, eventType, entityID string) {
	payload, err := json.Marshal(Event{Type: eventType, ID: entityID})
	if err != nil {
		return
	}

	select {
	case h.events <- userEvent{userID: userID, payload: payload}:
	default:
		h.log.Warn().Str("type", eventType).Msg("events hub saturated, dropping event")
	}
}

func (h *Hub) drop(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}

	delete(h.clients, client)
	close(client.send)

	if conns := h.userIndex[client.userID]; conns != nil {
		delete(conns, client)
		if len(conns) == 0 {
			delete(h.userIndex, client.userID)
		}
	}
	h.log.Debug().Str("user_id", client.userID).Msg("events client disconnected")
}
