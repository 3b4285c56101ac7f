package question

import (
	"context"
	"errors"

	"github.com/zhouzirui/interview-prep/backend/internal/apperror"
	"github.com/zhouzirui/interview-prep/backend/internal/model/interview"
	"github.com/zhouzirui/interview-prep/backend/internal/repository"
	"github.com/zhouzirui/interview-prep/backend/internal/service/events"
)

const msgQuestionNotFound = "Question not found"

// Service updates the user-editable fields of a question.
type Service struct {
	store  repository.Store
	events events.Publisher
}

// NewService wires the question service. A nil publisher discards events.
func NewService(store repository.Store, publisher events.Publisher) *Service {
	if publisher == nil {
		publisher = events.Discard
	}
	return &Service{store: store, events: publisher}
}

// TogglePin flips the pin flag of a question and returns the stored result.
func (s *Service) TogglePin(ctx context.Context, id string) (*interview.Question, error) {
	q, err := s.update(ctx, id, func(tx repository.Store) error {
		return tx.Questions().TogglePinned(ctx, id)
	})
	if err != nil {
		return nil, err
	}

	s.events.Publish(events.Event{Type: events.QuestionPinned, SessionID: q.SessionID, Data: q})
	return q, nil
}

// UpdateNote replaces the note of a question. A nil note clears it.
func (s *Service) UpdateNote(ctx context.Context, id string, note *string) (*interview.Question, error) {
	text := ""
	if note != nil {
		text = *note
	}

	q, err := s.update(ctx, id, func(tx repository.Store) error {
		return tx.Questions().UpdateNote(ctx, id, text)
	})
	if err != nil {
		return nil, err
	}

	s.events.Publish(events.Event{Type: events.QuestionNoted, SessionID: q.SessionID, Data: q})
	return q, nil
}

func (s *Service) update(ctx context.Context, id string, apply func(tx repository.Store) error) (*interview.Question, error) {
	var q *interview.Question
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		if err := apply(tx); err != nil {
			return err
		}
		var err error
		q, err = tx.Questions().GetByID(ctx, id)
		return err
	})
	switch {
	case err == nil:
		return q, nil
	case errors.Is(err, repository.ErrNotFound):
		return nil, apperror.New(apperror.ErrNotFound, msgQuestionNotFound)
	default:
		return nil, apperror.Wrap(apperror.ErrService, "Server error", err)
	}
}
