package interview

import (
	"sort"
	"time"
)

// Question is a persisted Q&A pair. SessionID is the back-reference to the owning session and
// is never reassigned; Position keeps insertion order within a session.
type Question struct {
	ID        string    `gorm:"primaryKey;size:36" json:"_id"`
	SessionID string    `gorm:"size:36;not null;index" json:"session"`
	Position  int       `gorm:"not null" json:"-"`
	Question  string    `gorm:"type:text" json:"question"`
	Answer    string    `gorm:"type:text" json:"answer"`
	Note      string    `gorm:"type:text;not null;default:''" json:"note"`
	IsPinned  bool      `gorm:"not null;default:false" json:"isPinned"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SortForDisplay orders questions pinned first, then newest first. Questions created in the same
// batch share a timestamp, so the later position wins the tie.
func SortForDisplay(questions []Question) {
	sort.SliceStable(questions, func(i, j int) bool {
		a, b := questions[i], questions[j]
		if a.IsPinned != b.IsPinned {
			return a.IsPinned
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.Position > b.Position
	})
}
