package question_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/zhouzirui/interview-prep/backend/internal/apperror"
	"github.com/zhouzirui/interview-prep/backend/internal/database"
	"github.com/zhouzirui/interview-prep/backend/internal/model/interview"
	"github.com/zhouzirui/interview-prep/backend/internal/repository"
	"github.com/zhouzirui/interview-prep/backend/internal/service/events"
	"github.com/zhouzirui/interview-prep/backend/internal/service/question"
	"github.com/zhouzirui/interview-prep/backend/internal/service/session"
)

func setup(t *testing.T, hub *events.Hub) (*question.Service, *interview.Session) {
	t.Helper()
	db, err := database.Init(database.Config{
		Path:     filepath.Join(t.TempDir(), "questions.db"),
		LogLevel: logger.Silent,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	store := repository.NewStore(db)
	sess, err := session.NewService(store, nil).CreateSession(context.Background(), session.CreateInput{
		Role:      "Frontend Engineer",
		Questions: []interview.QA{{Question: "What is the virtual DOM?", Answer: "..."}},
	}, "user-1")
	require.NoError(t, err)

	var publisher events.Publisher
	if hub != nil {
		publisher = hub
	}
	return question.NewService(store, publisher), sess
}

func TestTogglePin_TwiceRestoresOriginal(t *testing.T) {
	svc, sess := setup(t, nil)
	ctx := context.Background()
	id := sess.Questions[0].ID

	q, err := svc.TogglePin(ctx, id)
	require.NoError(t, err)
	assert.True(t, q.IsPinned)

	q, err = svc.TogglePin(ctx, id)
	require.NoError(t, err)
	assert.False(t, q.IsPinned)
}

func TestTogglePin_NotFound(t *testing.T) {
	svc, _ := setup(t, nil)

	_, err := svc.TogglePin(context.Background(), "missing")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Equal(t, "Question not found", apperror.As(err, "").Message)
}

func TestUpdateNote_SetsAndClears(t *testing.T) {
	hub := events.NewHub(4)
	svc, sess := setup(t, hub)
	ctx := context.Background()
	id := sess.Questions[0].ID
	sub := hub.Subscribe(sess.ID)
	defer sub.Close()

	note := "mention reconciliation"
	q, err := svc.UpdateNote(ctx, id, &note)
	require.NoError(t, err)
	assert.Equal(t, note, q.Note)
	assert.Equal(t, sess.ID, q.SessionID)

	q, err = svc.UpdateNote(ctx, id, nil)
	require.NoError(t, err)
	assert.Equal(t, "", q.Note)

	ev := <-sub.Events()
	assert.Equal(t, events.QuestionNoted, ev.Type)
	assert.Equal(t, sess.ID, ev.SessionID)
}

func TestUpdateNote_NotFound(t *testing.T) {
	svc, _ := setup(t, nil)

	_, err := svc.UpdateNote(context.Background(), "missing", nil)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
