package ai

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	aiService "github.com/zhouzirui/interview-prep/backend/internal/service/ai"
	"github.com/zhouzirui/interview-prep/backend/pkg/utils"
)

// Handler serves the generation endpoints. A nil gateway answers 503.
type Handler struct {
	gateway *aiService.Gateway
}

// New creates a generation handler.
func New(gateway *aiService.Gateway) *Handler {
	return &Handler{gateway: gateway}
}

// RegisterRoutes registers the generation routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/ai/generate-questions", h.handleGenerateQuestions)
	r.Post("/ai/generate-explanation", h.handleGenerateExplanation)
}

func (h *Handler) handleGenerateQuestions(w http.ResponseWriter, r *http.Request) {
	if h.gateway == nil {
		utils.RespondError(w, http.StatusServiceUnavailable, "AI generation unavailable")
		return
	}

	var payload struct {
		Role              string `json:"role"`
		Experience        string `json:"experience"`
		TopicsToFocus     string `json:"topicsToFocus"`
		NumberOfQuestions int    `json:"numberOfQuestions"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	qas, err := h.gateway.GenerateQuestions(r.Context(), aiService.QuestionRequest{
		Role:       payload.Role,
		Experience: payload.Experience,
		Topics:     payload.TopicsToFocus,
		Count:      payload.NumberOfQuestions,
	})
	if err != nil {
		utils.RespondAppError(w, err, "Failed to generate questions")
		return
	}

	utils.RespondJSON(w, http.StatusOK, qas)
}

func (h *Handler) handleGenerateExplanation(w http.ResponseWriter, r *http.Request) {
	if h.gateway == nil {
		utils.RespondError(w, http.StatusServiceUnavailable, "AI generation unavailable")
		return
	}

	var payload struct {
		Question string `json:"question"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	explanation, err := h.gateway.GenerateExplanation(r.Context(), payload.Question)
	if err != nil {
		utils.RespondAppError(w, err, "Failed to generate explanation")
		return
	}

	utils.RespondJSON(w, http.StatusOK, explanation)
}
