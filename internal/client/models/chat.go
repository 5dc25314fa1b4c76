package models

import "time"

// Chat roles used by the EduBot assistant.
const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// ChatMessage is one turn of an EduBot conversation. Messages the client
// has not yet seen confirmed carry a zero ID.
type ChatMessage struct {
	ID        int64     `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatSession is the user's most recent EduBot conversation.
type ChatSession struct {
	ID        int64         `json:"id"`
	Messages  []ChatMessage `json:"messages"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt *time.Time    `json:"updated_at,omitempty"`
}

type ChatRequest struct {
	Message string `json:"message"`
}
