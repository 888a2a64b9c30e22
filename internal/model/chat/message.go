package chat

import (
	"time"

	"github.com/zhouzirui/persona-voice/backend/internal/model/language"
	"github.com/zhouzirui/persona-voice/backend/internal/model/persona"
)

// Role identifies the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single conversation turn. It is immutable once created except for
// the bulk language rewrite performed on a language switch.
type Message struct {
	ID        string            `json:"id"`
	Role      Role              `json:"role"`
	Content   string            `json:"content"`
	Timestamp time.Time         `json:"timestamp"`
	Mode      persona.Mode      `json:"mode"`
	Language  language.Language `json:"language"`
}

// Record is the persisted shape of a message.
type Record struct {
	ID        string    `json:"id"`
	Sender    Role      `json:"sender"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	SessionID string    `json:"session_id"`
}

// RecordOf converts a message into its persisted shape.
func RecordOf(sessionID string, m Message) Record {
	return Record{
		ID:        m.ID,
		Sender:    m.Role,
		Content:   m.Content,
		Timestamp: m.Timestamp,
		SessionID: sessionID,
	}
}
