package events

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/zhouzirui/interview-prep/backend/internal/service/events"
	sessionService "github.com/zhouzirui/interview-prep/backend/internal/service/session"
	"github.com/zhouzirui/interview-prep/backend/pkg/utils"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

// WebSocketHandler streams session change events to browser clients.
type WebSocketHandler struct {
	sessions *sessionService.Service
	hub      *events.Hub
	upgrader websocket.Upgrader
}

// NewWebSocketHandler creates the change feed handler.
func NewWebSocketHandler(sessions *sessionService.Service, hub *events.Hub) *WebSocketHandler {
	return &WebSocketHandler{
		sessions: sessions,
		hub:      hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes registers the websocket route.
func (h *WebSocketHandler) RegisterRoutes(r chi.Router) {
	r.Get("/sessions/{id}/events", h.handleWebSocket)
}

func (h *WebSocketHandler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	if _, err := h.sessions.GetSession(r.Context(), sessionID); err != nil {
		utils.RespondAppError(w, err, "Server error")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed for session=%s: %v", sessionID, err)
		return
	}
	defer conn.Close()

	sub := h.hub.Subscribe(sessionID)
	defer sub.Close()

	log.Printf("[ws] client subscribed to session=%s", sessionID)

	closed := make(chan struct{})
	go h.readLoop(conn, closed)

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			log.Printf("[ws] client left session=%s", sessionID)
			return
		case ev, ok := <-sub.Events():
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(ev); err != nil {
				log.Printf("[ws] write failed for session=%s: %v", sessionID, err)
				return
			}
			if ev.Type == events.SessionDeleted {
				closeMsg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session deleted")
				_ = conn.WriteControl(websocket.CloseMessage, closeMsg, time.Now().Add(writeWait))
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

// readLoop drains client frames so pongs and close frames are processed. It closes done when
// the connection goes away.
func (h *WebSocketHandler) readLoop(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)

	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
