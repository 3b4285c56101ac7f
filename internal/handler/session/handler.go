package session

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/interview-prep/backend/internal/middleware"
	"github.com/zhouzirui/interview-prep/backend/internal/model/interview"
	sessionService "github.com/zhouzirui/interview-prep/backend/internal/service/session"
	"github.com/zhouzirui/interview-prep/backend/pkg/utils"
)

// Handler serves the session endpoints.
type Handler struct {
	sessions *sessionService.Service
}

// New creates a session handler.
func New(sessions *sessionService.Service) *Handler {
	return &Handler{sessions: sessions}
}

// RegisterRoutes registers the session routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/sessions/create", h.handleCreate)
	r.Get("/sessions/my-sessions", h.handleListMine)
	r.Get("/sessions/{id}", h.handleGet)
	r.Delete("/sessions/{id}", h.handleDelete)
}

type createRequest struct {
	Role          string         `json:"role"`
	Experience    string         `json:"experience"`
	TopicsToFocus string         `json:"topicsToFocus"`
	Description   string         `json:"description"`
	Questions     []interview.QA `json:"questions"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload createRequest
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sess, err := h.sessions.CreateSession(r.Context(), sessionService.CreateInput{
		Role:          payload.Role,
		Experience:    payload.Experience,
		TopicsToFocus: payload.TopicsToFocus,
		Description:   payload.Description,
		Questions:     payload.Questions,
	}, middleware.UserID(r.Context()))
	if err != nil {
		utils.RespondAppError(w, err, "Server error")
		return
	}

	utils.RespondJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Session created successfully",
		"session": sess,
	})
}

func (h *Handler) handleListMine(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.sessions.ListSessionsForOwner(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		utils.RespondAppError(w, err, "Server error")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"message":  "Sessions fetched successfully",
		"sessions": sessions,
	})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.GetSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondAppError(w, err, "Server error")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Session fetched successfully",
		"session": sess,
	})
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	err := h.sessions.DeleteSession(r.Context(), chi.URLParam(r, "id"), middleware.UserID(r.Context()))
	if err != nil {
		utils.RespondAppError(w, err, "Server error")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Session deleted successfully",
	})
}
