package handler

import (
	"net/http"
	"strings"

	"noteful-server/internal/events"
	"noteful-server/pkg/token"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// EventsHandler upgrades authenticated connections onto the change feed.
// Browsers cannot set headers on websocket dials, so the token may arrive
// as a query parameter instead of a bearer header.
type EventsHandler struct {
	hub         *events.Hub
	tokenSecret string
	upgrader    websocket.Upgrader
	log         zerolog.Logger
}

func NewEventsHandler(hub *events.Hub, tokenSecret string, log zerolog.Logger) *EventsHandler {
	return &EventsHandler{
		hub:         hub,
		tokenSecret: tokenSecret,
		log:         log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

func (h *EventsHandler) HandleConnection(w http.ResponseWriter, r *http.Request) {
	tokenString := r.URL.Query().Get("token")
	if tokenString == "" {
		authHeader := r.Header.Get("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}
	}

	if tokenString == "" {
		http.Error(w, "missing authorization token", http.StatusUnauthorized)
		return
	}

	claims, err := token.Validate(tokenString, h.tokenSecret)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("failed to upgrade events connection")
		return
	}

	events.NewClient(h.hub, claims.User.ID, conn).Start()
}
