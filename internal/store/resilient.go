package store

import (
	"context"
	"errors"

	"github.com/zhouzirui/persona-voice/backend/internal/model/chat"
	"github.com/zhouzirui/persona-voice/backend/pkg/log"
)

// Resilient writes to a primary store and falls back to an in-memory shadow
// when the primary fails. Writes never return an error.
type Resilient struct {
	primary Store
	shadow  *MemoryStore
}

// NewResilient wraps primary. A nil primary makes the shadow the only store.
func NewResilient(primary Store) *Resilient {
	return &Resilient{primary: primary, shadow: NewMemoryStore()}
}

func (r *Resilient) SaveMessage(ctx context.Context, rec chat.Record) error {
	if r.primary != nil {
		err := r.primary.SaveMessage(ctx, rec)
		if err == nil {
			return nil
		}
		log.Warnf("[store] save message %s failed, keeping it in memory: %v", rec.ID, err)
	}
	return r.shadow.SaveMessage(ctx, rec)
}

// GetMessages merges primary records with anything only the shadow has.
func (r *Resilient) GetMessages(ctx context.Context, sessionID string) ([]chat.Record, error) {
	shadowed, _ := r.shadow.GetMessages(ctx, sessionID)
	if r.primary == nil {
		return shadowed, nil
	}

	records, err := r.primary.GetMessages(ctx, sessionID)
	if err != nil {
		log.Warnf("[store] get messages for %s failed, using memory: %v", sessionID, err)
		return shadowed, nil
	}
	if len(shadowed) == 0 {
		return records, nil
	}

	seen := make(map[string]struct{}, len(records))
	for _, rec := range records {
		seen[rec.ID] = struct{}{}
	}
	for _, rec := range shadowed {
		if _, ok := seen[rec.ID]; !ok {
			records = append(records, rec)
		}
	}
	sortRecords(records)
	return records, nil
}

func (r *Resilient) ClearMessages(ctx context.Context, sessionID string) error {
	_ = r.shadow.ClearMessages(ctx, sessionID)
	if r.primary != nil {
		if err := r.primary.ClearMessages(ctx, sessionID); err != nil {
			log.Warnf("[store] clear messages for %s failed: %v", sessionID, err)
		}
	}
	return nil
}

func (r *Resilient) SaveSession(ctx context.Context, session chat.Session) error {
	if r.primary != nil {
		err := r.primary.SaveSession(ctx, session)
		if err == nil {
			_ = r.shadow.DeleteSession(ctx, session.ID)
			return nil
		}
		log.Warnf("[store] save session %s failed, keeping it in memory: %v", session.ID, err)
	}
	return r.shadow.SaveSession(ctx, session)
}

// DeleteSession removes the session from both stores. A primary failure is logged and absorbed.
func (r *Resilient) DeleteSession(ctx context.Context, id string) error {
	_ = r.shadow.DeleteSession(ctx, id)
	if r.primary != nil {
		if err := r.primary.DeleteSession(ctx, id); err != nil {
			log.Warnf("[store] delete session %s failed: %v", id, err)
		}
	}
	return nil
}

// GetSession prefers the shadow copy, which only exists while the primary write is failing.
func (r *Resilient) GetSession(ctx context.Context, id string) (chat.Session, error) {
	if session, err := r.shadow.GetSession(ctx, id); err == nil {
		return session, nil
	}
	if r.primary == nil {
		return chat.Session{}, ErrNotFound
	}
	session, err := r.primary.GetSession(ctx, id)
	if err != nil && !errors.Is(err, ErrNotFound) {
		log.Warnf("[store] get session %s failed: %v", id, err)
		return chat.Session{}, ErrNotFound
	}
	return session, err
}
