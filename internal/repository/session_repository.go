package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/zhouzirui/interview-prep/backend/internal/model/interview"
)

type SessionRepository interface {
	Create(ctx context.Context, session *interview.Session) error
	// GetByID loads a session without its questions.
	GetByID(ctx context.Context, id string) (*interview.Session, error)
	// GetWithQuestions loads a session with its questions in insertion order.
	GetWithQuestions(ctx context.Context, id string) (*interview.Session, error)
	ListByOwner(ctx context.Context, userID string) ([]interview.Session, error)
	Touch(ctx context.Context, id string, at time.Time) error
	Delete(ctx context.Context, id string) error
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *interview.Session) error {
	if session == nil || session.ID == "" {
		return fmt.Errorf("session id is required")
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(session).Error
}

func (r *sessionRepository) GetByID(ctx context.Context, id string) (*interview.Session, error) {
	var sess interview.Session
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&sess).Error; err != nil {
		return nil, translate(err)
	}
	return &sess, nil
}

func (r *sessionRepository) GetWithQuestions(ctx context.Context, id string) (*interview.Session, error) {
	var sess interview.Session
	err := r.db.WithContext(ctx).
		Preload("Questions", byPosition).
		Where("id = ?", id).
		Take(&sess).Error
	if err != nil {
		return nil, translate(err)
	}
	return &sess, nil
}

func (r *sessionRepository) ListByOwner(ctx context.Context, userID string) ([]interview.Session, error) {
	var sessions []interview.Session
	res := r.db.WithContext(ctx).
		Preload("Questions", byPosition).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&sessions)
	if res.Error != nil {
		return nil, res.Error
	}
	return sessions, nil
}

func (r *sessionRepository) Touch(ctx context.Context, id string, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&interview.Session{}).Where("id = ?", id).UpdateColumn("updated_at", at)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&interview.Session{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func byPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position asc")
}
