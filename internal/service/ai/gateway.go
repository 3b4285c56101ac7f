package ai

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/zhouzirui/interview-prep/backend/internal/apperror"
	"github.com/zhouzirui/interview-prep/backend/internal/model/interview"
)

const (
	msgMissingFields     = "Missing required fields"
	msgInvalidJSON       = "Invalid JSON format in AI response"
	msgQuestionsFailed   = "Failed to generate questions"
	msgExplanationFailed = "Failed to generate explanation"
)

// Explanation is the in-depth answer to a single interview question.
type Explanation struct {
	Title       string `json:"title"`
	Explanation string `json:"explanation"`
}

// QuestionRequest holds the parameters of a question generation call.
type QuestionRequest struct {
	Role       string
	Experience string
	Topics     string
	Count      int
}

// Gateway sends templated prompts to the chat model and decodes its JSON replies.
type Gateway struct {
	questions   compose.Runnable[map[string]any, *schema.Message]
	explanation compose.Runnable[map[string]any, *schema.Message]
	timeout     time.Duration
}

// Option customises a Gateway.
type Option func(*Gateway)

// WithTimeout bounds every model call. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(g *Gateway) {
		g.timeout = d
	}
}

// NewGateway compiles the question and explanation chains around chatModel.
func NewGateway(ctx context.Context, chatModel model.BaseChatModel, opts ...Option) (*Gateway, error) {
	if chatModel == nil {
		return nil, fmt.Errorf("chat model is required")
	}

	questions, err := compileChain(ctx, questionTemplate(), chatModel)
	if err != nil {
		return nil, fmt.Errorf("failed to compile question chain: %w", err)
	}

	explanation, err := compileChain(ctx, explanationTemplate(), chatModel)
	if err != nil {
		return nil, fmt.Errorf("failed to compile explanation chain: %w", err)
	}

	g := &Gateway{
		questions:   questions,
		explanation: explanation,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

func compileChain(ctx context.Context, tpl prompt.ChatTemplate, chatModel model.BaseChatModel) (compose.Runnable[map[string]any, *schema.Message], error) {
	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(tpl)
	chain.AppendChatModel(chatModel)
	return chain.Compile(ctx)
}

// GenerateQuestions asks the model for req.Count question/answer pairs.
func (g *Gateway) GenerateQuestions(ctx context.Context, req QuestionRequest) ([]interview.QA, error) {
	role := strings.TrimSpace(req.Role)
	experience := strings.TrimSpace(req.Experience)
	topics := strings.TrimSpace(req.Topics)
	if role == "" || experience == "" || topics == "" || req.Count <= 0 {
		return nil, apperror.New(apperror.ErrValidation, msgMissingFields)
	}

	raw, err := g.invoke(ctx, g.questions, map[string]any{
		"role":       role,
		"experience": experience,
		"topics":     topics,
		"count":      req.Count,
	})
	if err != nil {
		log.Printf("[ai] question generation failed: %v", err)
		return nil, apperror.Wrap(apperror.ErrService, msgQuestionsFailed, err)
	}

	var qas []interview.QA
	if err := decodeModelJSON(raw, &qas); err != nil {
		log.Printf("[ai] question reply is not valid JSON: %v (raw length=%d)", err, len(raw))
		return nil, apperror.Wrap(apperror.ErrUpstreamFormat, msgInvalidJSON, err)
	}
	if qas == nil {
		qas = []interview.QA{}
	}

	log.Printf("[ai] generated %d questions for role=%q", len(qas), role)
	return qas, nil
}

// GenerateExplanation asks the model to explain a single question in depth.
func (g *Gateway) GenerateExplanation(ctx context.Context, question string) (*Explanation, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, apperror.New(apperror.ErrValidation, msgMissingFields)
	}

	raw, err := g.invoke(ctx, g.explanation, map[string]any{"question": question})
	if err != nil {
		log.Printf("[ai] explanation failed: %v", err)
		return nil, apperror.Wrap(apperror.ErrService, msgExplanationFailed, err)
	}

	var explanation Explanation
	if err := decodeModelJSON(raw, &explanation); err != nil {
		log.Printf("[ai] explanation reply is not valid JSON: %v (raw length=%d)", err, len(raw))
		return nil, apperror.Wrap(apperror.ErrUpstreamFormat, msgInvalidJSON, err)
	}
	return &explanation, nil
}

func (g *Gateway) invoke(ctx context.Context, chain compose.Runnable[map[string]any, *schema.Message], input map[string]any) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	msg, err := chain.Invoke(ctx, input)
	if err != nil {
		return "", err
	}
	if msg == nil {
		return "", fmt.Errorf("empty model response")
	}
	return msg.Content, nil
}
