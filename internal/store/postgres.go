package store

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zhouzirui/persona-voice/backend/internal/model/chat"
	"github.com/zhouzirui/persona-voice/backend/internal/model/language"
	"github.com/zhouzirui/persona-voice/backend/internal/model/persona"
	"github.com/zhouzirui/persona-voice/backend/pkg/log"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// PostgresStore persists sessions and messages with pgx.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPool 解析连接串、建立连接池并 Ping 一次。
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}
	config.MaxConns = 10
	config.MinConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

// RunMigrations applies the embedded schema migrations.
func RunMigrations(databaseURL string) error {
	sub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("load embedded migrations: %w", err)
	}
	d, err := iofs.New(sub, ".")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", d, databaseURL)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}

	version, dirty, _ := m.Version()
	log.Infof("[store] migrations applied: version=%d dirty=%v", version, dirty)
	return nil
}

// NewPostgresStore wraps an open pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) SaveMessage(ctx context.Context, rec chat.Record) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO chat_messages (id, session_id, sender, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET content = EXCLUDED.content`,
		rec.ID, rec.SessionID, string(rec.Sender), rec.Content, rec.Timestamp)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetMessages(ctx context.Context, sessionID string) ([]chat.Record, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, session_id, sender, content, created_at
		FROM chat_messages
		WHERE session_id = $1
		ORDER BY created_at, id`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	var records []chat.Record
	for rows.Next() {
		var rec chat.Record
		var sender string
		if err := rows.Scan(&rec.ID, &rec.SessionID, &sender, &rec.Content, &rec.Timestamp); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		rec.Sender = chat.Role(sender)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}
	return records, nil
}

func (s *PostgresStore) ClearMessages(ctx context.Context, sessionID string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM chat_messages WHERE session_id = $1`, sessionID); err != nil {
		return fmt.Errorf("delete messages: %w", err)
	}
	return nil
}

func (s *PostgresStore) SaveSession(ctx context.Context, session chat.Session) error {
	messages, err := json.Marshal(session.Messages)
	if err != nil {
		return fmt.Errorf("marshal session messages: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO chat_sessions (id, title, mode, language, messages, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			mode = EXCLUDED.mode,
			language = EXCLUDED.language,
			messages = EXCLUDED.messages,
			updated_at = EXCLUDED.updated_at`,
		session.ID, session.Title, string(session.Mode), string(session.Language),
		messages, session.CreatedAt, session.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteSession(ctx context.Context, id string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM chat_sessions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetSession(ctx context.Context, id string) (chat.Session, error) {
	var (
		session  chat.Session
		mode     string
		lang     string
		messages []byte
	)
	err := s.pool.QueryRow(ctx, `
		SELECT id, title, mode, language, messages, created_at, updated_at
		FROM chat_sessions WHERE id = $1`, id).
		Scan(&session.ID, &session.Title, &mode, &lang, &messages, &session.CreatedAt, &session.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return chat.Session{}, ErrNotFound
	}
	if err != nil {
		return chat.Session{}, fmt.Errorf("get session: %w", err)
	}
	if err := json.Unmarshal(messages, &session.Messages); err != nil {
		return chat.Session{}, fmt.Errorf("unmarshal session messages: %w", err)
	}
	session.Mode = persona.ParseMode(mode)
	session.Language = language.Parse(lang)
	return session, nil
}
