package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// Store groups the repositories so multi-step writes can share one transaction.
type Store interface {
	Sessions() SessionRepository
	Questions() QuestionRepository
	// Transaction runs fn against a Store bound to a single transaction. Returning an error
	// from fn rolls every write back.
	Transaction(ctx context.Context, fn func(tx Store) error) error
}

type gormStore struct {
	db        *gorm.DB
	sessions  SessionRepository
	questions QuestionRepository
}

// NewStore returns a GORM backed Store.
func NewStore(db *gorm.DB) Store {
	return &gormStore{
		db:        db,
		sessions:  NewSessionRepository(db),
		questions: NewQuestionRepository(db),
	}
}

func (s *gormStore) Sessions() SessionRepository {
	return s.sessions
}

func (s *gormStore) Questions() QuestionRepository {
	return s.questions
}

func (s *gormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
