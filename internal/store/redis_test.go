package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zhouzirui/persona-voice/backend/internal/model/chat"
)

func newMiniRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := NewRedisClient(context.Background(), RedisConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestRedisStore(t *testing.T) {
	_, client := newMiniRedis(t)
	testStoreContract(t, NewRedisStore(client, time.Hour))
}

func TestRedisStoreExpires(t *testing.T) {
	mr, client := newMiniRedis(t)
	s := NewRedisStore(client, time.Minute)
	ctx := context.Background()

	session := sampleSession()
	require.NoError(t, s.SaveSession(ctx, session))
	assert.Equal(t, time.Minute, mr.TTL(sessionKey(session.ID)))

	mr.FastForward(2 * time.Minute)
	_, err := s.GetSession(ctx, session.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStoreDefaultTTL(t *testing.T) {
	mr, client := newMiniRedis(t)
	s := NewRedisStore(client, 0)

	rec := sampleSession().Messages[0]
	require.NoError(t, s.SaveMessage(context.Background(), chat.RecordOf("s-1", rec)))
	assert.Equal(t, DefaultRedisTTL, mr.TTL(messagesKey("s-1")))
}

func TestNewRedisClientFailsWhenUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisClient(context.Background(), RedisConfig{Addr: addr})
	assert.Error(t, err)
}
