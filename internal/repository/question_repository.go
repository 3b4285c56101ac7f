package repository

import (
	"context"
	"database/sql"
	"fmt"

	"gorm.io/gorm"

	"github.com/zhouzirui/interview-prep/backend/internal/model/interview"
)

type QuestionRepository interface {
	CreateBatch(ctx context.Context, questions []interview.Question) error
	GetByID(ctx context.Context, id string) (*interview.Question, error)
	// NextPosition returns the position the next appended question of a session should take.
	NextPosition(ctx context.Context, sessionID string) (int, error)
	TogglePinned(ctx context.Context, id string) error
	UpdateNote(ctx context.Context, id, note string) error
	DeleteBySession(ctx context.Context, sessionID string) (int64, error)
	// DeleteOrphans removes questions whose session no longer exists.
	DeleteOrphans(ctx context.Context) (int64, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) CreateBatch(ctx context.Context, questions []interview.Question) error {
	if len(questions) == 0 {
		return nil
	}
	for _, q := range questions {
		if q.ID == "" || q.SessionID == "" {
			return fmt.Errorf("question id and session id are required")
		}
	}
	return r.db.WithContext(ctx).Create(&questions).Error
}

func (r *questionRepository) GetByID(ctx context.Context, id string) (*interview.Question, error) {
	var q interview.Question
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&q).Error; err != nil {
		return nil, translate(err)
	}
	return &q, nil
}

func (r *questionRepository) NextPosition(ctx context.Context, sessionID string) (int, error) {
	var maxPos sql.NullInt64
	row := r.db.WithContext(ctx).
		Model(&interview.Question{}).
		Where("session_id = ?", sessionID).
		Select("MAX(position)").
		Row()
	if err := row.Scan(&maxPos); err != nil {
		return 0, err
	}
	if !maxPos.Valid {
		return 0, nil
	}
	return int(maxPos.Int64) + 1, nil
}

func (r *questionRepository) TogglePinned(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Model(&interview.Question{}).
		Where("id = ?", id).
		Update("is_pinned", gorm.Expr("NOT is_pinned"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *questionRepository) UpdateNote(ctx context.Context, id, note string) error {
	res := r.db.WithContext(ctx).
		Model(&interview.Question{}).
		Where("id = ?", id).
		Update("note", note)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *questionRepository) DeleteBySession(ctx context.Context, sessionID string) (int64, error) {
	res := r.db.WithContext(ctx).Where("session_id = ?", sessionID).Delete(&interview.Question{})
	return res.RowsAffected, res.Error
}

func (r *questionRepository) DeleteOrphans(ctx context.Context) (int64, error) {
	sessionIDs := r.db.Model(&interview.Session{}).Select("id")
	res := r.db.WithContext(ctx).Where("session_id NOT IN (?)", sessionIDs).Delete(&interview.Question{})
	return res.RowsAffected, res.Error
}
