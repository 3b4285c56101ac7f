package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/interview-prep/backend/internal/apperror"
	"github.com/zhouzirui/interview-prep/backend/internal/service/ai/aitest"
)

func newTestGateway(t *testing.T, m *aitest.ChatModel) *Gateway {
	t.Helper()
	g, err := NewGateway(context.Background(), m)
	require.NoError(t, err)
	return g
}

func TestCleanModelOutput(t *testing.T) {
	cases := map[string]struct {
		raw  string
		want string
	}{
		"plain":            {raw: `[{"question":"q"}]`, want: `[{"question":"q"}]`},
		"fenced":           {raw: "```json\n[1,2]\n```", want: "[1,2]"},
		"fenced trailing":  {raw: "```json [1]```\n\n", want: "[1]"},
		"surrounding ws":   {raw: "   {\"a\":1}  ", want: `{"a":1}`},
		"unlabelled fence": {raw: "```\n[1]\n```", want: "```\n[1]"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, cleanModelOutput(tc.raw))
		})
	}
}

func TestGenerateQuestions_ParsesFencedReply(t *testing.T) {
	m := &aitest.ChatModel{Reply: "```json\n[{\"question\":\"What is an index?\",\"answer\":\"A lookup structure.\"}]\n```"}
	g := newTestGateway(t, m)

	qas, err := g.GenerateQuestions(context.Background(), QuestionRequest{
		Role: "Backend Engineer", Experience: "3", Topics: "Node,SQL", Count: 1,
	})
	require.NoError(t, err)
	require.Len(t, qas, 1)
	assert.Equal(t, "What is an index?", qas[0].Question)
	assert.Equal(t, "A lookup structure.", qas[0].Answer)

	calls := m.Calls()
	require.Len(t, calls, 1)
	require.Len(t, calls[0], 2)
	user := calls[0][1].Content
	assert.Contains(t, user, "Role: Backend Engineer")
	assert.Contains(t, user, "Candidate Experience: 3 years")
	assert.Contains(t, user, "Focus Topics: Node,SQL")
	assert.Contains(t, user, "Write 1 interview questions.")
}

func TestGenerateQuestions_RequiresAllFields(t *testing.T) {
	m := &aitest.ChatModel{Reply: "[]"}
	g := newTestGateway(t, m)

	bad := []QuestionRequest{
		{Experience: "3", Topics: "Go", Count: 5},
		{Role: "SRE", Topics: "Go", Count: 5},
		{Role: "SRE", Experience: "3", Count: 5},
		{Role: "SRE", Experience: "3", Topics: "Go"},
	}
	for _, req := range bad {
		_, err := g.GenerateQuestions(context.Background(), req)
		assert.ErrorIs(t, err, apperror.ErrValidation)
	}
	assert.Empty(t, m.Calls())
}

func TestGenerateQuestions_ProseReplyIsFormatError(t *testing.T) {
	m := &aitest.ChatModel{Reply: "Sure! Here are some great questions for you."}
	g := newTestGateway(t, m)

	_, err := g.GenerateQuestions(context.Background(), QuestionRequest{
		Role: "SRE", Experience: "2", Topics: "Linux", Count: 3,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrUpstreamFormat)

	appErr := apperror.As(err, "")
	assert.Equal(t, "Invalid JSON format in AI response", appErr.Message)
	assert.Empty(t, appErr.Detail())
	assert.False(t, strings.Contains(appErr.Message, "Sure!"))
}

func TestGenerateQuestions_ModelFailureIsServiceError(t *testing.T) {
	m := &aitest.ChatModel{Err: errors.New("quota exceeded")}
	g := newTestGateway(t, m)

	_, err := g.GenerateQuestions(context.Background(), QuestionRequest{
		Role: "SRE", Experience: "2", Topics: "Linux", Count: 3,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrService)

	appErr := apperror.As(err, "")
	assert.Equal(t, "Failed to generate questions", appErr.Message)
	assert.Contains(t, appErr.Detail(), "quota exceeded")
}

func TestGenerateExplanation(t *testing.T) {
	m := &aitest.ChatModel{Reply: "```json\n{\"title\":\"Indexes\",\"explanation\":\"They speed up reads.\"}\n```"}
	g := newTestGateway(t, m)

	exp, err := g.GenerateExplanation(context.Background(), "What is an index?")
	require.NoError(t, err)
	assert.Equal(t, "Indexes", exp.Title)
	assert.Equal(t, "They speed up reads.", exp.Explanation)
	assert.Contains(t, m.Calls()[0][1].Content, `Question: "What is an index?"`)

	_, err = g.GenerateExplanation(context.Background(), "  ")
	assert.ErrorIs(t, err, apperror.ErrValidation)
}

func TestGenerateExplanation_ProseReply(t *testing.T) {
	g := newTestGateway(t, &aitest.ChatModel{Reply: "An index is a data structure."})

	_, err := g.GenerateExplanation(context.Background(), "What is an index?")
	assert.ErrorIs(t, err, apperror.ErrUpstreamFormat)
}

func TestNewGatewayRequiresModel(t *testing.T) {
	_, err := NewGateway(context.Background(), nil)
	assert.Error(t, err)
}
