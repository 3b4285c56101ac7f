package interview

import "time"

// Session is one interview-prep run and the questions generated for it.
type Session struct {
	ID            string     `gorm:"primaryKey;size:36" json:"_id"`
	UserID        string     `gorm:"size:64;not null;index:idx_sessions_user_created,priority:1" json:"user"`
	Role          string     `gorm:"size:255" json:"role"`
	Experience    string     `gorm:"size:64" json:"experience"`
	TopicsToFocus string     `gorm:"type:text" json:"topicsToFocus"`
	Description   string     `gorm:"type:text" json:"description"`
	Questions     []Question `gorm:"foreignKey:SessionID" json:"questions"`
	CreatedAt     time.Time  `gorm:"index:idx_sessions_user_created,priority:2" json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// QA is a generated question/answer pair before it is persisted.
type QA struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}
