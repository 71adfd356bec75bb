// README: Chat session and message models.
package chat

import "time"

const (
	StatusActive = "active"

	// DefaultTopic labels sessions whose extractor never produced a topic.
	DefaultTopic = "General Inquiry"
)

const (
	RoleUser   = "user"
	RoleSystem = "system"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
	// MessageType is set on user messages only ("text" or "selection").
	MessageType string    `json:"messageType,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

type Session struct {
	ID        string
	UserID    string
	Topic     string
	Status    string
	Messages  []Message
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Summary is the list view of a session, without the message bodies.
type Summary struct {
	ID        string    `json:"id"`
	Topic     string    `json:"topic"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updatedAt"`
}
