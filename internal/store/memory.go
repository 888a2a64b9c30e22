package store

import (
	"context"
	"sync"

	"github.com/zhouzirui/persona-voice/backend/internal/model/chat"
)

// MemoryStore keeps everything in process memory. It is the default backend
// and the shadow store behind Resilient.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]chat.Session
	messages map[string][]chat.Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]chat.Session),
		messages: make(map[string][]chat.Record),
	}
}

// SaveMessage appends a record, replacing an existing record with the same id.
func (s *MemoryStore) SaveMessage(_ context.Context, rec chat.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.messages[rec.SessionID]
	for i := range records {
		if records[i].ID == rec.ID {
			records[i] = rec
			return nil
		}
	}
	s.messages[rec.SessionID] = append(records, rec)
	return nil
}

// GetMessages returns a copy of the session's records in timestamp order.
func (s *MemoryStore) GetMessages(_ context.Context, sessionID string) ([]chat.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	copied := make([]chat.Record, len(s.messages[sessionID]))
	copy(copied, s.messages[sessionID])
	sortRecords(copied)
	return copied, nil
}

func (s *MemoryStore) ClearMessages(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.messages, sessionID)
	return nil
}

func (s *MemoryStore) SaveSession(_ context.Context, session chat.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session.Clone()
	return nil
}

func (s *MemoryStore) GetSession(_ context.Context, id string) (chat.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return chat.Session{}, ErrNotFound
	}
	return session.Clone(), nil
}

func (s *MemoryStore) DeleteSession(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}
