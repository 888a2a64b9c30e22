package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/zhouzirui/persona-voice/backend/internal/model/chat"
)

// DefaultRedisTTL 是会话与消息在 Redis 中的保留时间。
const DefaultRedisTTL = 7 * 24 * time.Hour

// RedisStore keeps each session as a JSON string and its messages as a JSON list.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// RedisConfig describes the Redis connection.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// NewRedisClient 创建客户端并确认连接可用。
func NewRedisClient(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

// NewRedisStore wraps client. A non-positive ttl uses DefaultRedisTTL.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultRedisTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

func messagesKey(sessionID string) string { return fmt.Sprintf("chat:messages:%s", sessionID) }

func sessionKey(id string) string { return fmt.Sprintf("chat:session:%s", id) }

func (s *RedisStore) SaveMessage(ctx context.Context, rec chat.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}
	key := messagesKey(rec.SessionID)
	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, key, data)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save message: %w", err)
	}
	return nil
}

func (s *RedisStore) GetMessages(ctx context.Context, sessionID string) ([]chat.Record, error) {
	items, err := s.client.LRange(ctx, messagesKey(sessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get messages: %w", err)
	}
	records := make([]chat.Record, 0, len(items))
	for _, item := range items {
		var rec chat.Record
		if err := json.Unmarshal([]byte(item), &rec); err != nil {
			return nil, fmt.Errorf("failed to unmarshal message: %w", err)
		}
		records = append(records, rec)
	}
	sortRecords(records)
	return records, nil
}

func (s *RedisStore) ClearMessages(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, messagesKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to clear messages: %w", err)
	}
	return nil
}

func (s *RedisStore) SaveSession(ctx context.Context, session chat.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(session.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *RedisStore) DeleteSession(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (s *RedisStore) GetSession(ctx context.Context, id string) (chat.Session, error) {
	data, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return chat.Session{}, ErrNotFound
	}
	if err != nil {
		return chat.Session{}, fmt.Errorf("failed to get session: %w", err)
	}
	var session chat.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return chat.Session{}, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return session, nil
}
