package events

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/interview-prep/backend/internal/service/events"
	sessionService "github.com/zhouzirui/interview-prep/backend/internal/service/session"
	"github.com/zhouzirui/interview-prep/backend/pkg/utils"
)

// StreamHandler serves the session change feed as Server-Sent Events.
type StreamHandler struct {
	sessions  *sessionService.Service
	hub       *events.Hub
	keepAlive time.Duration
}

// NewStreamHandler creates the SSE feed handler.
func NewStreamHandler(sessions *sessionService.Service, hub *events.Hub) *StreamHandler {
	return &StreamHandler{sessions: sessions, hub: hub, keepAlive: pingPeriod}
}

// RegisterRoutes registers the SSE route.
func (h *StreamHandler) RegisterRoutes(r chi.Router) {
	r.Get("/sessions/{id}/stream", h.handleStream)
}

func (h *StreamHandler) handleStream(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	if _, err := h.sessions.GetSession(r.Context(), sessionID); err != nil {
		utils.RespondAppError(w, err, "Server error")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "Streaming unsupported")
		return
	}

	sub := h.hub.Subscribe(sessionID)
	defer sub.Close()

	utils.SetupSSEHeaders(w)
	w.WriteHeader(http.StatusOK)
	if err := utils.SendSSEComment(w, flusher, "subscribed"); err != nil {
		return
	}

	ticker := time.NewTicker(h.keepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev, ok := <-sub.Events():
			if !ok {
				return
			}
			if err := utils.SendSSEEvent(w, flusher, ev.Type, ev); err != nil {
				log.Printf("[sse] write failed for session=%s: %v", sessionID, err)
				return
			}
			if ev.Type == events.SessionDeleted {
				return
			}
		case <-ticker.C:
			if err := utils.SendSSEComment(w, flusher, "ping"); err != nil {
				return
			}
		}
	}
}
