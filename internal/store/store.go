// Package store 持久化会话记录与消息。所有写入都是尽力而为，调用方不依赖其结果。
package store

import (
	"context"
	"errors"
	"sort"

	"github.com/zhouzirui/persona-voice/backend/internal/model/chat"
)

// ErrNotFound is returned when a session does not exist.
var ErrNotFound = errors.New("store: not found")

// Store is the persistence collaborator of a conversation.
type Store interface {
	SaveMessage(ctx context.Context, rec chat.Record) error
	GetMessages(ctx context.Context, sessionID string) ([]chat.Record, error)
	ClearMessages(ctx context.Context, sessionID string) error
	SaveSession(ctx context.Context, session chat.Session) error
	GetSession(ctx context.Context, id string) (chat.Session, error)
	// DeleteSession removes the session record. Deleting a missing session is not an error.
	DeleteSession(ctx context.Context, id string) error
}

// sortRecords orders records by timestamp, keeping insertion order for ties.
func sortRecords(records []chat.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.Before(records[j].Timestamp)
	})
}
