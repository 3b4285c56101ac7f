package client

import "time"

// QA is a generated question/answer pair.
type QA struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Explanation is a generated concept explanation.
type Explanation struct {
	Title       string `json:"title"`
	Explanation string `json:"explanation"`
}

type Question struct {
	ID        string    `json:"_id"`
	Session   string    `json:"session"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Note      string    `json:"note"`
	IsPinned  bool      `json:"isPinned"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Session struct {
	ID            string     `json:"_id"`
	User          string     `json:"user"`
	Role          string     `json:"role"`
	Experience    string     `json:"experience"`
	TopicsToFocus string     `json:"topicsToFocus"`
	Description   string     `json:"description"`
	Questions     []Question `json:"questions"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

type GenerateQuestionsRequest struct {
	Role              string `json:"role"`
	Experience        string `json:"experience"`
	TopicsToFocus     string `json:"topicsToFocus"`
	NumberOfQuestions int    `json:"numberOfQuestions"`
}

type CreateSessionRequest struct {
	Role          string `json:"role"`
	Experience    string `json:"experience"`
	TopicsToFocus string `json:"topicsToFocus"`
	Description   string `json:"description"`
	Questions     []QA   `json:"questions"`
}

// SessionForm holds the values of the "new session" form. Count defaults to DefaultQuestionCount.
type SessionForm struct {
	Role          string
	Experience    string
	TopicsToFocus string
	Description   string
	Count         int
}

type sessionEnvelope struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Session *Session `json:"session"`
}

type questionEnvelope struct {
	Success  bool      `json:"success"`
	Message  string    `json:"message"`
	Question *Question `json:"question"`
}
