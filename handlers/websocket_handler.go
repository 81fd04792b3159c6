package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Dosada05/volley-coach/live"
	"github.com/Dosada05/volley-coach/services"
	"github.com/gorilla/websocket"
)

type WebSocketHandler struct {
	hub          *live.Hub
	matchService *services.MatchService
	upgrader     websocket.Upgrader
}

// NewWebSocketHandler accepts connections from allowedOrigins; "*" or an empty list allows any.
func NewWebSocketHandler(hub *live.Hub, ms *services.MatchService, allowedOrigins []string) *WebSocketHandler {
	return &WebSocketHandler{
		hub:          hub,
		matchService: ms,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		set[o] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || len(set) == 0 || set[origin]
	}
}

// ServeMatch subscribes the caller to live updates of one of their matches:
// GET /ws/matches/{matchID}. The current state is sent first.
func (h *WebSocketHandler) ServeMatch(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(w, r)
	if !ok {
		return
	}
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.GetMatch(r.Context(), owner, matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		slog.Warn("websocket upgrade failed", slog.String("match_id", matchID), slog.Any("error", err))
		return
	}

	room := live.MatchRoom(matchID)
	h.hub.Attach(conn, room, live.Message{Type: live.MatchSnapshot, Payload: match, RoomID: room})
}
