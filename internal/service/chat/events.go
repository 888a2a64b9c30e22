package chat

import (
	"sync"
	"time"

	"github.com/zhouzirui/persona-voice/backend/internal/model/chat"
)

// EventKind names an activity notification.
type EventKind string

const (
	EventThinking  EventKind = "thinking"
	EventSpeaking  EventKind = "speaking"
	EventRecording EventKind = "recording"
	EventMessage   EventKind = "message"
	EventNotice    EventKind = "notice"
	EventReset     EventKind = "reset"
)

// Event is broadcast to observers. Delivery is best effort.
type Event struct {
	Kind    EventKind     `json:"kind"`
	Active  bool          `json:"active"`
	Message string        `json:"message,omitempty"`
	Payload *chat.Message `json:"payload,omitempty"`
	At      time.Time     `json:"at"`
}

const subscriberBuffer = 32

// bus 广播活动事件；订阅者读得慢时直接丢弃，不阻塞会话。
type bus struct {
	mu     sync.Mutex
	subs   map[chan Event]struct{}
	closed bool
}

func newBus() *bus {
	return &bus{subs: make(map[chan Event]struct{})}
}

func (b *bus) subscribe() (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(ch)
		return ch, func() {}
	}
	b.subs[ch] = struct{}{}

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if _, ok := b.subs[ch]; ok {
				delete(b.subs, ch)
				close(ch)
			}
		})
	}
}

func (b *bus) publish(e Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- e:
		default:
		}
	}
}

func (b *bus) close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for ch := range b.subs {
		delete(b.subs, ch)
		close(ch)
	}
}
