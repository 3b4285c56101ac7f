package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/zhouzirui/interview-prep/backend/internal/database"
	"github.com/zhouzirui/interview-prep/backend/internal/handler"
	"github.com/zhouzirui/interview-prep/backend/internal/middleware"
	"github.com/zhouzirui/interview-prep/backend/internal/model/interview"
	"github.com/zhouzirui/interview-prep/backend/internal/repository"
	"github.com/zhouzirui/interview-prep/backend/internal/service/ai"
	"github.com/zhouzirui/interview-prep/backend/internal/service/ai/aitest"
	"github.com/zhouzirui/interview-prep/backend/internal/service/events"
	"github.com/zhouzirui/interview-prep/backend/internal/service/question"
	"github.com/zhouzirui/interview-prep/backend/internal/service/session"
)

var secret = []byte("prepctl-secret")

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func startServer(t *testing.T, reply string) (string, string) {
	t.Helper()
	db, err := database.Init(database.Config{
		Path:     filepath.Join(t.TempDir(), "api.db"),
		LogLevel: logger.Silent,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	store := repository.NewStore(db)
	gateway, err := ai.NewGateway(context.Background(), &aitest.ChatModel{Reply: reply})
	require.NoError(t, err)

	srv := httptest.NewServer(handler.NewRouter(handler.Services{
		Sessions:  session.NewService(store, events.Discard),
		Questions: question.NewService(store, events.Discard),
		Gateway:   gateway,
	}, secret))
	t.Cleanup(srv.Close)

	token, err := middleware.SignToken(secret, "cli-user")
	require.NoError(t, err)
	return srv.URL, token
}

func TestReconcileRemovesOrphans(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prep.db")
	db, err := database.Init(database.Config{Path: path, LogLevel: logger.Silent})
	require.NoError(t, err)

	now := time.Now().UTC()
	require.NoError(t, repository.NewStore(db).Questions().CreateBatch(context.Background(), []interview.Question{
		{ID: "q-1", SessionID: "gone", Position: 0, Question: "q", Answer: "a", CreatedAt: now, UpdatedAt: now},
		{ID: "q-2", SessionID: "gone", Position: 1, Question: "q", Answer: "a", CreatedAt: now, UpdatedAt: now},
	}))
	require.NoError(t, database.Close(db))

	out, err := execute(t, "reconcile", "--db", path)
	require.NoError(t, err)
	assert.Contains(t, out, "removed 2 orphaned question(s)")

	out, err = execute(t, "reconcile", "--db", path)
	require.NoError(t, err)
	assert.Contains(t, out, "removed 0 orphaned question(s)")
}

func TestSessionsCreateListAndShow(t *testing.T) {
	url, token := startServer(t, `[{"question":"What is a mutex?","answer":"A lock."}]`)

	out, err := execute(t, "--server", url, "--token", token,
		"sessions", "create", "--role", "Backend Engineer", "--experience", "3", "--topics", "Go", "--count", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "with 1 question(s)")

	out, err = execute(t, "--server", url, "--token", token, "sessions", "list")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 1)
	fields := strings.Split(lines[0], "\t")
	require.Len(t, fields, 6)
	assert.Equal(t, "Backend Engineer", fields[1])
	assert.Equal(t, "1", fields[4])

	out, err = execute(t, "--server", url, "--token", token, "sessions", "show", fields[0])
	require.NoError(t, err)
	assert.Contains(t, out, "What is a mutex?")
}

func TestSessionsCreateRequiresFields(t *testing.T) {
	_, err := execute(t, "--server", "http://127.0.0.1:0", "--token", "x", "sessions", "create", "--role", "SRE")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fill all the fields")
}

func TestRequiresToken(t *testing.T) {
	t.Setenv("PREP_TOKEN", "")

	_, err := execute(t, "--token", "", "sessions", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no token")
}

func TestSurfacesServerMessage(t *testing.T) {
	url, token := startServer(t, "[]")

	_, err := execute(t, "--server", url, "--token", token, "questions", "pin", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Question not found")
}
