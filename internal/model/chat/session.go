package chat

import (
	"time"

	"github.com/zhouzirui/persona-voice/backend/internal/model/language"
	"github.com/zhouzirui/persona-voice/backend/internal/model/persona"
)

// Session captures a conversation with its full transcript.
type Session struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Mode      persona.Mode      `json:"mode"`
	Messages  []Message         `json:"messages"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
	Language  language.Language `json:"language"`
}

// Clone returns a deep copy so callers cannot mutate shared transcripts.
func (s Session) Clone() Session {
	s.Messages = append([]Message(nil), s.Messages...)
	return s
}
