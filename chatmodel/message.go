package chatmodel

import (
	"time"
)

// Message is one turn in a conversation. A message never changes after
// creation; conversation state evolves only by appending new messages.
type Message struct {
	Role      Role
	Content   string
	CreatedAt time.Time
	Metadata  map[string]any
}

// NewMessage creates a message stamped with the current time.
func NewMessage(role Role, content string) Message {
	return Message{
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
		Metadata:  map[string]any{},
	}
}
