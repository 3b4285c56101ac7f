package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/zhouzirui/interview-prep/backend/internal/database"
	"github.com/zhouzirui/interview-prep/backend/internal/handler"
	"github.com/zhouzirui/interview-prep/backend/internal/middleware"
	"github.com/zhouzirui/interview-prep/backend/internal/repository"
	"github.com/zhouzirui/interview-prep/backend/internal/service/ai"
	"github.com/zhouzirui/interview-prep/backend/internal/service/ai/aitest"
	"github.com/zhouzirui/interview-prep/backend/internal/service/events"
	"github.com/zhouzirui/interview-prep/backend/internal/service/question"
	"github.com/zhouzirui/interview-prep/backend/internal/service/session"
	"github.com/zhouzirui/interview-prep/backend/pkg/client"
)

var secret = []byte("client-secret")

func newServer(t *testing.T, reply string) *httptest.Server {
	t.Helper()
	db, err := database.Init(database.Config{
		Path:     filepath.Join(t.TempDir(), "client.db"),
		LogLevel: logger.Silent,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	store := repository.NewStore(db)
	hub := events.NewHub(4)
	gateway, err := ai.NewGateway(context.Background(), &aitest.ChatModel{Reply: reply})
	require.NoError(t, err)

	srv := httptest.NewServer(handler.NewRouter(handler.Services{
		Sessions:  session.NewService(store, hub),
		Questions: question.NewService(store, hub),
		Gateway:   gateway,
		Hub:       hub,
	}, secret))
	t.Cleanup(srv.Close)
	return srv
}

func newClient(t *testing.T, srv *httptest.Server, user string) *client.Client {
	t.Helper()
	token, err := middleware.SignToken(secret, user)
	require.NoError(t, err)
	return client.New(srv.URL+"/", token, client.WithTimeout(5*time.Second))
}

func TestFormFlowAgainstRouter(t *testing.T) {
	srv := newServer(t, "```json\n[{\"question\":\"What is a goroutine?\",\"answer\":\"A lightweight thread.\"}]\n```")
	c := newClient(t, srv, "user-1")
	ctx := context.Background()

	sess, err := c.CreateFromForm(ctx, client.SessionForm{
		Role:          "Backend Engineer",
		Experience:    "3",
		TopicsToFocus: "Go",
	})
	require.NoError(t, err)
	require.Len(t, sess.Questions, 1)
	assert.Equal(t, "user-1", sess.User)
	assert.Equal(t, sess.ID, sess.Questions[0].Session)

	added, err := c.GenerateMore(ctx, sess.ID, 1)
	require.NoError(t, err)
	require.Len(t, added, 1)

	pinned, err := c.TogglePin(ctx, added[0].ID)
	require.NoError(t, err)
	assert.True(t, pinned.IsPinned)

	noted, err := c.UpdateNote(ctx, added[0].ID, "review channels")
	require.NoError(t, err)
	assert.Equal(t, "review channels", noted.Note)

	got, err := c.GetSession(ctx, sess.ID)
	require.NoError(t, err)
	require.Len(t, got.Questions, 2)
	assert.Equal(t, added[0].ID, got.Questions[0].ID)

	list, err := c.MySessions(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, c.DeleteSession(ctx, sess.ID))
	_, err = c.GetSession(ctx, sess.ID)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "Session not found", apiErr.Message)
}

func TestDeleteAsNonOwnerSurfacesMessage(t *testing.T) {
	srv := newServer(t, "[]")
	owner := newClient(t, srv, "owner")
	intruder := newClient(t, srv, "intruder")
	ctx := context.Background()

	sess, err := owner.CreateSession(ctx, client.CreateSessionRequest{
		Role: "SRE", Experience: "5", TopicsToFocus: "Linux",
		Questions: []client.QA{{Question: "q", Answer: "a"}},
	})
	require.NoError(t, err)

	err = intruder.DeleteSession(ctx, sess.ID)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Not authorised to delete this session", apiErr.Message)
}

func TestGenerateExplanation(t *testing.T) {
	srv := newServer(t, `{"title":"Channels","explanation":"Typed conduits."}`)
	c := newClient(t, srv, "user-1")

	exp, err := c.GenerateExplanation(context.Background(), "What is a channel?")
	require.NoError(t, err)
	assert.Equal(t, "Channels", exp.Title)
	assert.Equal(t, "Typed conduits.", exp.Explanation)
}

func TestCreateFromFormRequiresFields(t *testing.T) {
	c := client.New("http://127.0.0.1:0", "token")

	_, err := c.CreateFromForm(context.Background(), client.SessionForm{Role: "SRE"})
	assert.ErrorIs(t, err, client.ErrMissingFields)
}

func TestErrorWithoutMessageUsesFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	_, err := client.New(srv.URL, "token").MySessions(context.Background())
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "Something went wrong. Please try again later.", apiErr.Message)
}

func TestSendsBearerToken(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"sessions":[]}`))
	}))
	defer srv.Close()

	sessions, err := client.New(srv.URL, "abc").MySessions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, sessions)
	assert.Equal(t, "Bearer abc", got)
}

func TestTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := client.New(srv.URL, "token", client.WithTimeout(50*time.Millisecond)).MySessions(context.Background())
	require.Error(t, err)
	var apiErr *client.APIError
	assert.False(t, errors.As(err, &apiErr))
}
