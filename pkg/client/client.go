// Package client is a typed HTTP client for the interview prep API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultTimeout = 30 * time.Second

	// DefaultQuestionCount is how many questions the form flows ask the model for.
	DefaultQuestionCount = 10

	fallbackMessage = "Something went wrong. Please try again later."
)

// ErrMissingFields is returned by the form flows before any request is made.
var ErrMissingFields = errors.New("please fill all the fields")

// APIError is a non-2xx response. Message is the server's message, or a generic one when the
// body carried none.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// Client talks to the API with a bearer token.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds every request made by the client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// New creates a client for the server at baseURL, e.g. "http://localhost:8080".
func New(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GenerateQuestions asks the server to generate question/answer pairs.
func (c *Client) GenerateQuestions(ctx context.Context, req GenerateQuestionsRequest) ([]QA, error) {
	var out []QA
	if err := c.do(ctx, http.MethodPost, "/api/ai/generate-questions", req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GenerateExplanation asks the server to explain a question.
func (c *Client) GenerateExplanation(ctx context.Context, question string) (*Explanation, error) {
	var out Explanation
	if err := c.do(ctx, http.MethodPost, "/api/ai/generate-explanation", map[string]string{"question": question}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateSession stores a session and its questions.
func (c *Client) CreateSession(ctx context.Context, req CreateSessionRequest) (*Session, error) {
	var out sessionEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/sessions/create", req, &out); err != nil {
		return nil, err
	}
	return out.Session, nil
}

// MySessions lists the caller's sessions, newest first.
func (c *Client) MySessions(ctx context.Context) ([]Session, error) {
	var out struct {
		Sessions []Session `json:"sessions"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/sessions/my-sessions", nil, &out); err != nil {
		return nil, err
	}
	return out.Sessions, nil
}

// GetSession fetches a session with its questions in display order.
func (c *Client) GetSession(ctx context.Context, id string) (*Session, error) {
	var out sessionEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/sessions/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return out.Session, nil
}

// DeleteSession removes a session owned by the caller.
func (c *Client) DeleteSession(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/sessions/"+url.PathEscape(id), nil, nil)
}

// AddQuestions appends questions to an existing session.
func (c *Client) AddQuestions(ctx context.Context, sessionID string, qas []QA) ([]Question, error) {
	if qas == nil {
		qas = []QA{}
	}
	var out struct {
		CreatedQuestions []Question `json:"createdQuestions"`
	}
	body := map[string]any{"sessionId": sessionID, "questions": qas}
	if err := c.do(ctx, http.MethodPost, "/api/questions/add", body, &out); err != nil {
		return nil, err
	}
	return out.CreatedQuestions, nil
}

// TogglePin flips the pinned flag of a question.
func (c *Client) TogglePin(ctx context.Context, questionID string) (*Question, error) {
	var out questionEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/questions/"+url.PathEscape(questionID)+"/pin", nil, &out); err != nil {
		return nil, err
	}
	return out.Question, nil
}

// UpdateNote replaces the note of a question. An empty note clears it.
func (c *Client) UpdateNote(ctx context.Context, questionID, note string) (*Question, error) {
	var out questionEnvelope
	body := map[string]string{"note": note}
	if err := c.do(ctx, http.MethodPost, "/api/questions/"+url.PathEscape(questionID)+"/note", body, &out); err != nil {
		return nil, err
	}
	return out.Question, nil
}

// CreateFromForm generates questions for the form values and stores them as a new session.
func (c *Client) CreateFromForm(ctx context.Context, form SessionForm) (*Session, error) {
	if form.Role == "" || form.Experience == "" || form.TopicsToFocus == "" {
		return nil, ErrMissingFields
	}
	count := form.Count
	if count <= 0 {
		count = DefaultQuestionCount
	}

	qas, err := c.GenerateQuestions(ctx, GenerateQuestionsRequest{
		Role:              form.Role,
		Experience:        form.Experience,
		TopicsToFocus:     form.TopicsToFocus,
		NumberOfQuestions: count,
	})
	if err != nil {
		return nil, fmt.Errorf("generate questions: %w", err)
	}

	return c.CreateSession(ctx, CreateSessionRequest{
		Role:          form.Role,
		Experience:    form.Experience,
		TopicsToFocus: form.TopicsToFocus,
		Description:   form.Description,
		Questions:     qas,
	})
}

// GenerateMore generates another batch for an existing session and appends it.
func (c *Client) GenerateMore(ctx context.Context, sessionID string, count int) ([]Question, error) {
	sess, err := c.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if count <= 0 {
		count = DefaultQuestionCount
	}

	qas, err := c.GenerateQuestions(ctx, GenerateQuestionsRequest{
		Role:              sess.Role,
		Experience:        sess.Experience,
		TopicsToFocus:     sess.TopicsToFocus,
		NumberOfQuestions: count,
	})
	if err != nil {
		return nil, fmt.Errorf("generate questions: %w", err)
	}
	return c.AddQuestions(ctx, sessionID, qas)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp.StatusCode, data)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(status int, data []byte) error {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err != nil || strings.TrimSpace(body.Message) == "" {
		return &APIError{Status: status, Message: fallbackMessage}
	}
	return &APIError{Status: status, Message: body.Message}
}
