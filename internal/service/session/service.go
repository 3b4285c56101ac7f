package session

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/zhouzirui/interview-prep/backend/internal/apperror"
	"github.com/zhouzirui/interview-prep/backend/internal/model/interview"
	"github.com/zhouzirui/interview-prep/backend/internal/repository"
	"github.com/zhouzirui/interview-prep/backend/internal/service/events"
)

const (
	msgSessionNotFound = "Session not found"
	msgNotOwner        = "Not authorised to delete this session"
	msgInvalidInput    = "Invalid input data"
	msgServerError     = "Server error"
)

// CreateInput holds the user supplied parameters of a new session and its pre-generated questions.
type CreateInput struct {
	Role          string
	Experience    string
	TopicsToFocus string
	Description   string
	Questions     []interview.QA
}

// Service manages sessions and the questions they own.
type Service struct {
	store  repository.Store
	events events.Publisher
	now    func() time.Time
}

// NewService wires the session service. A nil publisher discards events.
func NewService(store repository.Store, publisher events.Publisher) *Service {
	if publisher == nil {
		publisher = events.Discard
	}
	return &Service{
		store:  store,
		events: publisher,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// CreateSession stores a session and its questions in one transaction.
func (s *Service) CreateSession(ctx context.Context, in CreateInput, ownerID string) (*interview.Session, error) {
	if ownerID == "" {
		return nil, apperror.New(apperror.ErrUnauthorized, "Not authorized")
	}

	now := s.now()
	sess := &interview.Session{
		ID:            uuid.NewString(),
		UserID:        ownerID,
		Role:          in.Role,
		Experience:    in.Experience,
		TopicsToFocus: in.TopicsToFocus,
		Description:   in.Description,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	questions := newQuestions(sess.ID, 0, in.Questions, now)

	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		if err := tx.Sessions().Create(ctx, sess); err != nil {
			return err
		}
		return tx.Questions().CreateBatch(ctx, questions)
	})
	if err != nil {
		return nil, storeError(err)
	}

	sess.Questions = questions
	log.Printf("[session] created session=%s owner=%s questions=%d", sess.ID, ownerID, len(questions))
	return sess, nil
}

// ListSessionsForOwner returns the owner's sessions, newest first, with questions in insertion order.
func (s *Service) ListSessionsForOwner(ctx context.Context, ownerID string) ([]interview.Session, error) {
	sessions, err := s.store.Sessions().ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, storeError(err)
	}
	if sessions == nil {
		sessions = []interview.Session{}
	}
	return sessions, nil
}

// GetSession returns a session with its questions pinned first, then newest first.
func (s *Service) GetSession(ctx context.Context, id string) (*interview.Session, error) {
	sess, err := s.store.Sessions().GetWithQuestions(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}
	if sess.Questions == nil {
		sess.Questions = []interview.Question{}
	}
	interview.SortForDisplay(sess.Questions)
	return sess, nil
}

// DeleteSession removes a session owned by requesterID together with every question that
// references it.
func (s *Service) DeleteSession(ctx context.Context, id, requesterID string) error {
	var removed int64
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		sess, err := tx.Sessions().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if sess.UserID != requesterID {
			return apperror.New(apperror.ErrUnauthorized, msgNotOwner)
		}

		removed, err = tx.Questions().DeleteBySession(ctx, id)
		if err != nil {
			return err
		}
		return tx.Sessions().Delete(ctx, id)
	})
	if err != nil {
		return storeError(err)
	}

	log.Printf("[session] deleted session=%s questions=%d", id, removed)
	s.events.Publish(events.Event{Type: events.SessionDeleted, SessionID: id})
	return nil
}

// AppendQuestions adds questions to an existing session after the ones it already has.
func (s *Service) AppendQuestions(ctx context.Context, sessionID string, qas []interview.QA) ([]interview.Question, error) {
	if sessionID == "" || qas == nil {
		return nil, apperror.New(apperror.ErrValidation, msgInvalidInput)
	}

	var created []interview.Question
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		if _, err := tx.Sessions().GetByID(ctx, sessionID); err != nil {
			return err
		}

		start, err := tx.Questions().NextPosition(ctx, sessionID)
		if err != nil {
			return err
		}

		now := s.now()
		created = newQuestions(sessionID, start, qas, now)
		if err := tx.Questions().CreateBatch(ctx, created); err != nil {
			return err
		}
		return tx.Sessions().Touch(ctx, sessionID, now)
	})
	if err != nil {
		return nil, storeError(err)
	}

	s.events.Publish(events.Event{Type: events.QuestionsAdded, SessionID: sessionID, Data: created})
	return created, nil
}

// ReconcileOrphans deletes questions whose session no longer exists and reports how many were removed.
func (s *Service) ReconcileOrphans(ctx context.Context) (int64, error) {
	removed, err := s.store.Questions().DeleteOrphans(ctx)
	if err != nil {
		return 0, storeError(err)
	}
	if removed > 0 {
		log.Printf("[session] reconcile removed %d orphaned questions", removed)
	}
	return removed, nil
}

func newQuestions(sessionID string, start int, qas []interview.QA, at time.Time) []interview.Question {
	questions := make([]interview.Question, 0, len(qas))
	for i, qa := range qas {
		questions = append(questions, interview.Question{
			ID:        uuid.NewString(),
			SessionID: sessionID,
			Position:  start + i,
			Question:  qa.Question,
			Answer:    qa.Answer,
			CreatedAt: at,
			UpdatedAt: at,
		})
	}
	return questions
}

func storeError(err error) error {
	var appErr *apperror.Error
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, repository.ErrNotFound):
		return apperror.New(apperror.ErrNotFound, msgSessionNotFound)
	default:
		return apperror.Wrap(apperror.ErrService, msgServerError, err)
	}
}
