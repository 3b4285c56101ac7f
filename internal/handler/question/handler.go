package question

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/interview-prep/backend/internal/model/interview"
	questionService "github.com/zhouzirui/interview-prep/backend/internal/service/question"
	sessionService "github.com/zhouzirui/interview-prep/backend/internal/service/session"
	"github.com/zhouzirui/interview-prep/backend/pkg/utils"
)

// Handler serves the question endpoints.
type Handler struct {
	questions *questionService.Service
	sessions  *sessionService.Service
}

// New creates a question handler.
func New(questions *questionService.Service, sessions *sessionService.Service) *Handler {
	return &Handler{questions: questions, sessions: sessions}
}

// RegisterRoutes registers the question routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/questions/add", h.handleAdd)
	r.Post("/questions/{id}/pin", h.handleTogglePin)
	r.Post("/questions/{id}/note", h.handleUpdateNote)
}

func (h *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		SessionID string          `json:"sessionId"`
		Questions json.RawMessage `json:"questions"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid input data")
		return
	}

	var qas []interview.QA
	if len(payload.Questions) > 0 && string(payload.Questions) != "null" {
		if err := json.Unmarshal(payload.Questions, &qas); err != nil || qas == nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid input data")
			return
		}
	}

	created, err := h.sessions.AppendQuestions(r.Context(), payload.SessionID, qas)
	if err != nil {
		utils.RespondAppError(w, err, "Server error")
		return
	}

	utils.RespondJSON(w, http.StatusCreated, map[string]any{
		"createdQuestions": created,
	})
}

func (h *Handler) handleTogglePin(w http.ResponseWriter, r *http.Request) {
	q, err := h.questions.TogglePin(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondAppError(w, err, "Server error")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"message":  "Question pinned successfully",
		"question": q,
	})
}

func (h *Handler) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Note *string `json:"note"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil && !errors.Is(err, io.EOF) {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	q, err := h.questions.UpdateNote(r.Context(), chi.URLParam(r, "id"), payload.Note)
	if err != nil {
		utils.RespondAppError(w, err, "Server error")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"message":  "Question note updated successfully",
		"question": q,
	})
}
