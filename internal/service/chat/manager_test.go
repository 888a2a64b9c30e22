package chat

import (
	"testing"

	"github.com/zhouzirui/persona-voice/backend/internal/model/persona"
)

func TestManagerLifecycle(t *testing.T) {
	m := NewManager(func(id string, cfg Config) *Session {
		return NewSession(fallbackOnly(), cfg, WithID(id))
	})

	s := m.Create(Config{Mode: persona.Coach})
	if s.ID() == "" {
		t.Fatal("expected a session id")
	}

	got, err := m.Get(s.ID())
	if err != nil {
		t.Fatalf("Get err: %v", err)
	}
	if got != s {
		t.Fatal("Get returned a different session")
	}
	if m.Len() != 1 {
		t.Fatalf("Len = %d, want 1", m.Len())
	}

	if err := m.Remove(s.ID()); err != nil {
		t.Fatalf("Remove err: %v", err)
	}
	if _, err := m.Get(s.ID()); err != ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if err := m.Remove(s.ID()); err != ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound on second remove, got %v", err)
	}
}

func TestManagerClose(t *testing.T) {
	m := NewManager(func(id string, cfg Config) *Session {
		return NewSession(fallbackOnly(), cfg, WithID(id))
	})
	a := m.Create(Config{})
	m.Create(Config{})

	m.Close()
	if m.Len() != 0 {
		t.Fatalf("Len = %d after Close", m.Len())
	}
	if _, err := a.SendMessage(t.Context(), "hi"); err != ErrClosed {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}
