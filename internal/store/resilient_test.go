package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zhouzirui/persona-voice/backend/internal/model/chat"
)

// flakyStore 在 down 为 true 时所有操作都失败。
type flakyStore struct {
	*MemoryStore
	down bool
}

var errDown = errors.New("connection refused")

func (f *flakyStore) SaveMessage(ctx context.Context, rec chat.Record) error {
	if f.down {
		return errDown
	}
	return f.MemoryStore.SaveMessage(ctx, rec)
}

func (f *flakyStore) GetMessages(ctx context.Context, id string) ([]chat.Record, error) {
	if f.down {
		return nil, errDown
	}
	return f.MemoryStore.GetMessages(ctx, id)
}

func (f *flakyStore) ClearMessages(ctx context.Context, id string) error {
	if f.down {
		return errDown
	}
	return f.MemoryStore.ClearMessages(ctx, id)
}

func (f *flakyStore) SaveSession(ctx context.Context, s chat.Session) error {
	if f.down {
		return errDown
	}
	return f.MemoryStore.SaveSession(ctx, s)
}

func (f *flakyStore) DeleteSession(ctx context.Context, id string) error {
	if f.down {
		return errDown
	}
	return f.MemoryStore.DeleteSession(ctx, id)
}

func (f *flakyStore) GetSession(ctx context.Context, id string) (chat.Session, error) {
	if f.down {
		return chat.Session{}, errDown
	}
	return f.MemoryStore.GetSession(ctx, id)
}

func TestResilientHealthyPrimary(t *testing.T) {
	testStoreContract(t, NewResilient(NewMemoryStore()))
}

func TestResilientWithoutPrimary(t *testing.T) {
	testStoreContract(t, NewResilient(nil))
}

func TestResilientFallsBackToMemory(t *testing.T) {
	ctx := context.Background()
	primary := &flakyStore{MemoryStore: NewMemoryStore(), down: true}
	s := NewResilient(primary)

	session := sampleSession()
	require.NoError(t, s.SaveSession(ctx, session))
	for _, m := range session.Messages {
		require.NoError(t, s.SaveMessage(ctx, chat.RecordOf(session.ID, m)))
	}

	got, err := s.GetSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.Title, got.Title)

	records, err := s.GetMessages(ctx, session.ID)
	require.NoError(t, err)
	assert.Len(t, records, 2)

	// 主存储恢复后，合并只存在于内存中的记录。
	primary.down = false
	extra := chat.RecordOf(session.ID, chat.Message{ID: "late", Role: chat.RoleUser, Content: "late", Timestamp: session.UpdatedAt.Add(1)})
	require.NoError(t, s.SaveMessage(ctx, extra))
	records, err = s.GetMessages(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "late", records[2].ID)

	session.Title = "updated"
	require.NoError(t, s.SaveSession(ctx, session))
	got, err = s.GetSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, "updated", got.Title)
}

func TestResilientGetSessionPrimaryError(t *testing.T) {
	s := NewResilient(&flakyStore{MemoryStore: NewMemoryStore(), down: true})
	_, err := s.GetSession(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResilientDeleteSessionWhilePrimaryDown(t *testing.T) {
	ctx := context.Background()
	primary := &flakyStore{MemoryStore: NewMemoryStore(), down: true}
	s := NewResilient(primary)

	session := sampleSession()
	require.NoError(t, s.SaveSession(ctx, session))
	require.NoError(t, s.DeleteSession(ctx, session.ID))

	primary.down = false
	_, err := s.GetSession(ctx, session.ID)
	assert.ErrorIs(t, err, ErrNotFound, "the shadow copy is gone")
}
