// Package chat 编排一次对话：维护消息列表与活动状态，按轮次调用回复生成与语音合成，并尽力持久化。
package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	detector "github.com/zhouzirui/persona-voice/backend/internal/analysis/language"
	"github.com/zhouzirui/persona-voice/backend/internal/model/chat"
	"github.com/zhouzirui/persona-voice/backend/internal/model/language"
	"github.com/zhouzirui/persona-voice/backend/internal/model/persona"
	"github.com/zhouzirui/persona-voice/backend/internal/service/ai"
	"github.com/zhouzirui/persona-voice/backend/internal/service/prompt"
	"github.com/zhouzirui/persona-voice/backend/internal/service/voice"
	"github.com/zhouzirui/persona-voice/backend/internal/store"
	"github.com/zhouzirui/persona-voice/backend/pkg/log"
)

var (
	ErrBusy         = errors.New("chat: a message is already being processed")
	ErrEmptyMessage = errors.New("chat: message is empty")
	ErrClosed       = errors.New("chat: session closed")
	// ErrReset 表示回复生成期间对话被清空、重新加载或切换了语言，回复已丢弃。
	ErrReset        = errors.New("chat: conversation was reset during the reply")
)

const (
	titleLimit            = 48
	defaultPersistTimeout = 5 * time.Second
)

// State is the coarse activity of a session.
type State string

const (
	StateIdle      State = "idle"
	StateThinking  State = "thinking"
	StateSpeaking  State = "speaking"
	StateRecording State = "recording"
)

// Responder produces the assistant reply for a turn.
type Responder interface {
	Generate(ctx context.Context, req ai.Request) ai.Reply
}

// Speaker plays replies aloud.
type Speaker interface {
	Speak(ctx context.Context, u voice.Utterance) (voice.Result, error)
	Stop()
}

// Config is the initial conversation setup.
type Config struct {
	Mode         persona.Mode
	Language     language.Language
	Preferences  persona.Preferences
	LearningMode bool
}

// Snapshot is a read-only view of a session.
type Snapshot struct {
	ID           string              `json:"id"`
	SessionID    string              `json:"sessionId,omitempty"`
	State        State               `json:"state"`
	Mode         persona.Mode        `json:"mode"`
	Language     language.Language   `json:"language"`
	Preferences  persona.Preferences `json:"preferences"`
	LearningMode bool                `json:"learningMode"`
	Thinking     bool                `json:"thinking"`
	Speaking     bool                `json:"speaking"`
	Recording    bool                `json:"recording"`
	Messages     []chat.Message      `json:"messages"`
}

// Session owns one live conversation. All methods are safe for concurrent use.
type Session struct {
	id        string
	responder Responder
	speaker   Speaker
	store     store.Store
	events    *bus
	now       func() time.Time

	persistTimeout time.Duration
	pending        sync.WaitGroup
	lastWrite      chan struct{}
	onClose        []func()

	mu          sync.Mutex
	busy        bool
	thinking    bool
	speakers    int
	recording   bool
	closed      bool
	greeted     bool
	generation  uint64
	messages    []chat.Message
	mode        persona.Mode
	lang        language.Language
	prefs       persona.Preferences
	learning    bool
	meta        *chat.Session
	unavailable bool
}

// SessionOption customizes a Session.
type SessionOption func(*Session)

// WithStore enables persistence through st.
func WithStore(st store.Store) SessionOption {
	return func(s *Session) { s.store = st }
}

// WithSpeaker sets the voice output. Without it replies are text only.
func WithSpeaker(sp Speaker) SessionOption {
	return func(s *Session) { s.speaker = sp }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) { s.now = now }
}

// WithPersistTimeout bounds each background persistence write.
func WithPersistTimeout(d time.Duration) SessionOption {
	return func(s *Session) {
		if d > 0 {
			s.persistTimeout = d
		}
	}
}

// WithID sets the live conversation id.
func WithID(id string) SessionOption {
	return func(s *Session) { s.id = id }
}

// WithOnClose registers fn to run once the session has closed.
func WithOnClose(fn func()) SessionOption {
	return func(s *Session) { s.onClose = append(s.onClose, fn) }
}

// NewSession creates an idle conversation.
func NewSession(responder Responder, cfg Config, opts ...SessionOption) *Session {
	s := &Session{
		id:             uuid.NewString(),
		responder:      responder,
		events:         newBus(),
		now:            time.Now,
		persistTimeout: defaultPersistTimeout,
		mode:           persona.ParseMode(string(cfg.Mode)),
		lang:           language.Parse(string(cfg.Language)),
		prefs:          cfg.Preferences,
		learning:       cfg.LearningMode,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the live conversation id.
func (s *Session) ID() string { return s.id }

// SendMessage runs one full turn and returns the assistant message.
// Provider and voice failures never surface as errors.
func (s *Session) SendMessage(ctx context.Context, text string) (chat.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return chat.Message{}, ErrEmptyMessage
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return chat.Message{}, ErrClosed
	}
	if s.busy {
		s.mu.Unlock()
		return chat.Message{}, ErrBusy
	}
	s.busy = true
	gen := s.generation
	history := append([]chat.Message(nil), s.messages...)
	userMsg := s.newMessageLocked(chat.RoleUser, text, detector.Resolve(text, s.lang))
	s.messages = append(s.messages, userMsg)
	req := ai.Request{
		UserText:     text,
		Mode:         s.mode,
		History:      history,
		Language:     s.lang,
		Preferences:  s.prefs,
		LearningMode: s.learning,
	}
	s.thinking = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.busy = false
		s.mu.Unlock()
	}()

	s.publish(Event{Kind: EventMessage, Payload: &userMsg})
	s.publish(Event{Kind: EventThinking, Active: true})

	reply := s.responder.Generate(ctx, req)

	s.mu.Lock()
	s.thinking = false
	if s.generation != gen {
		// 回复期间会话被清空、重新加载或切换语言，丢弃这条回复。
		s.mu.Unlock()
		s.publish(Event{Kind: EventThinking, Active: false})
		log.Debugf("[chat] session %s: dropping reply for a reset conversation", s.id)
		return chat.Message{}, ErrReset
	}
	assistantMsg := s.newMessageLocked(chat.RoleAssistant, reply.Text, reply.Language)
	s.messages = append(s.messages, assistantMsg)
	sessionID := s.ensureMetaLocked(text).ID
	s.persistLocked("save messages", func(ctx context.Context) error {
		if err := s.store.SaveMessage(ctx, chat.RecordOf(sessionID, userMsg)); err != nil {
			return err
		}
		return s.store.SaveMessage(ctx, chat.RecordOf(sessionID, assistantMsg))
	})
	gender := s.prefs.Gender
	s.mu.Unlock()

	s.publish(Event{Kind: EventThinking, Active: false})
	s.publish(Event{Kind: EventMessage, Payload: &assistantMsg})
	if reply.Source == ai.SourceCrisis {
		log.Infof("[chat] session %s: crisis response sent (severity=%s)", s.id, reply.Crisis.Severity)
	}

	s.speak(ctx, voice.Utterance{
		Text:     assistantMsg.Content,
		Mode:     assistantMsg.Mode,
		Language: reply.Language,
		Gender:   gender,
	})

	s.mu.Lock()
	if s.generation == gen && s.meta != nil {
		s.meta.UpdatedAt = s.now().UTC()
		s.meta.Mode = s.mode
		s.meta.Language = s.lang
		s.meta.Messages = append([]chat.Message(nil), s.messages...)
		snapshot := s.meta.Clone()
		s.persistLocked("save session", func(ctx context.Context) error {
			return s.store.SaveSession(ctx, snapshot)
		})
	}
	s.mu.Unlock()

	return assistantMsg, nil
}

// Greet appends and speaks the persona greeting once until the conversation is reset.
func (s *Session) Greet(ctx context.Context) (chat.Message, bool) {
	s.mu.Lock()
	if s.greeted || s.closed {
		s.mu.Unlock()
		return chat.Message{}, false
	}
	s.greeted = true
	text := prompt.Greeting(s.mode, s.lang, s.prefs.Age)
	msg := s.newMessageLocked(chat.RoleAssistant, text, s.lang)
	s.messages = append(s.messages, msg)
	gender := s.prefs.Gender
	s.mu.Unlock()

	s.publish(Event{Kind: EventMessage, Payload: &msg})
	s.speak(ctx, voice.Utterance{Text: msg.Content, Mode: msg.Mode, Language: msg.Language, Gender: gender})
	return msg, true
}

// ClearChat stops speech and wipes the in-memory and persisted history.
func (s *Session) ClearChat(ctx context.Context) {
	s.stopSpeech()

	s.mu.Lock()
	s.generation++
	s.messages = nil
	s.greeted = false
	var sessionID string
	if s.meta != nil {
		sessionID = s.meta.ID
	}
	s.meta = nil
	if sessionID != "" {
		s.persistLocked("clear session", func(ctx context.Context) error {
			if err := s.store.ClearMessages(ctx, sessionID); err != nil {
				return err
			}
			return s.store.DeleteSession(ctx, sessionID)
		})
	}
	s.mu.Unlock()

	s.publish(Event{Kind: EventReset})
}

// LoadSession atomically replaces the conversation with a persisted session.
func (s *Session) LoadSession(session chat.Session) {
	s.stopSpeech()

	loaded := session.Clone()
	s.mu.Lock()
	s.generation++
	s.messages = loaded.Messages
	s.lang = language.Parse(string(loaded.Language))
	s.mode = persona.ParseMode(string(loaded.Mode))
	s.greeted = true
	meta := loaded.Clone()
	s.meta = &meta
	s.mu.Unlock()

	s.publish(Event{Kind: EventReset})
}

// LoadSessionByID fetches a persisted session from the store and loads it.
func (s *Session) LoadSessionByID(ctx context.Context, id string) error {
	if s.store == nil {
		return store.ErrNotFound
	}
	session, err := s.store.GetSession(ctx, id)
	if err != nil {
		return err
	}
	s.LoadSession(session)
	return nil
}

// SetLanguage retags every message, resets initialization and greets once in the new language.
func (s *Session) SetLanguage(ctx context.Context, lang language.Language) chat.Message {
	lang = language.Parse(string(lang))
	s.stopSpeech()

	s.mu.Lock()
	s.generation++
	s.lang = lang
	for i := range s.messages {
		s.messages[i].Language = lang
	}
	if s.meta != nil {
		s.meta.Language = lang
	}
	s.greeted = false
	s.mu.Unlock()

	msg, _ := s.Greet(ctx)
	return msg
}

// SetMode switches the persona for subsequent turns.
func (s *Session) SetMode(mode persona.Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = persona.ParseMode(string(mode))
}

// SetPreferences replaces the persona preferences.
func (s *Session) SetPreferences(prefs persona.Preferences) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs = prefs
}

// UpdatePreferences applies fn to the preferences under the session lock.
func (s *Session) UpdatePreferences(fn func(*persona.Preferences)) persona.Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.prefs)
	return s.prefs
}

// SetPersistence toggles history persistence.
func (s *Session) SetPersistence(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs.PersistHistory = enabled
}

// SetLearningMode toggles the tutor learning mode.
func (s *Session) SetLearningMode(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.learning = enabled
}

// StartRecording marks the microphone as active. Recording and speaking are independent.
func (s *Session) StartRecording() { s.setRecording(true) }

// StopRecording marks the microphone as inactive.
func (s *Session) StopRecording() { s.setRecording(false) }

func (s *Session) setRecording(active bool) {
	s.mu.Lock()
	changed := s.recording != active
	s.recording = active
	s.mu.Unlock()
	if changed {
		s.publish(Event{Kind: EventRecording, Active: active})
	}
}

// StopSpeaking interrupts the current utterance.
func (s *Session) StopSpeaking() { s.stopSpeech() }

// Messages returns a copy of the conversation.
func (s *Session) Messages() []chat.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]chat.Message(nil), s.messages...)
}

// State reports the current activity.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *Session) stateLocked() State {
	switch {
	case s.thinking:
		return StateThinking
	case s.speakers > 0:
		return StateSpeaking
	case s.recording:
		return StateRecording
	default:
		return StateIdle
	}
}

// Snapshot returns the current view of the session.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		ID:           s.id,
		State:        s.stateLocked(),
		Mode:         s.mode,
		Language:     s.lang,
		Preferences:  s.prefs,
		LearningMode: s.learning,
		Thinking:     s.thinking,
		Speaking:     s.speakers > 0,
		Recording:    s.recording,
		Messages:     append([]chat.Message(nil), s.messages...),
	}
	if s.meta != nil {
		snap.SessionID = s.meta.ID
	}
	return snap
}

// Subscribe returns a channel of activity events and a function to stop receiving.
func (s *Session) Subscribe() (<-chan Event, func()) {
	return s.events.subscribe()
}

// Notify publishes a user-facing notice.
func (s *Session) Notify(message string) {
	s.publish(Event{Kind: EventNotice, Message: message})
}

// Close stops speech, waits for pending persistence and closes every subscription.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.stopSpeech()
	s.pending.Wait()
	s.events.close()
	for _, fn := range s.onClose {
		fn()
	}
}

func (s *Session) speak(ctx context.Context, u voice.Utterance) {
	if s.speaker == nil {
		return
	}
	s.mu.Lock()
	s.speakers++
	s.mu.Unlock()
	s.publish(Event{Kind: EventSpeaking, Active: true})

	res, err := s.speaker.Speak(ctx, u)

	s.mu.Lock()
	s.speakers--
	idle := s.speakers == 0
	notifyUnavailable := errors.Is(err, voice.ErrSpeechUnavailable) && !s.unavailable
	if notifyUnavailable {
		s.unavailable = true
	}
	s.mu.Unlock()
	if idle {
		s.publish(Event{Kind: EventSpeaking, Active: false})
	}

	switch {
	case notifyUnavailable:
		s.Notify(voice.NoticeUnavailable)
	case err != nil && !errors.Is(err, voice.ErrSpeechUnavailable):
		log.Debugf("[chat] session %s: speech skipped: %v", s.id, err)
	case res.Notice != "":
		s.Notify(res.Notice)
	case res.Interrupted:
		log.Debugf("[chat] session %s: speech interrupted", s.id)
	}
}

func (s *Session) stopSpeech() {
	if s.speaker != nil {
		s.speaker.Stop()
	}
}

// persistLocked queues fn behind earlier writes and runs it in the background
// with its own bounded context. Callers hold s.mu so Close cannot race the Add.
func (s *Session) persistLocked(op string, fn func(ctx context.Context) error) {
	if s.store == nil || !s.prefs.PersistHistory || s.closed {
		return
	}
	prev, done := s.lastWrite, make(chan struct{})
	s.lastWrite = done

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		defer close(done)
		if prev != nil {
			<-prev
		}
		ctx, cancel := context.WithTimeout(context.Background(), s.persistTimeout)
		defer cancel()
		if err := fn(ctx); err != nil {
			log.Warnf("[chat] session %s: %s failed: %v", s.id, op, err)
		}
	}()
}

func (s *Session) newMessageLocked(role chat.Role, content string, lang language.Language) chat.Message {
	ts := s.now().UTC()
	// 时间戳严格递增，保证按时间排序与追加顺序一致。
	if n := len(s.messages); n > 0 && !ts.After(s.messages[n-1].Timestamp) {
		ts = s.messages[n-1].Timestamp.Add(time.Millisecond)
	}
	return chat.Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: ts,
		Mode:      s.mode,
		Language:  lang,
	}
}

// ensureMetaLocked lazily creates the session record on the first exchange.
func (s *Session) ensureMetaLocked(firstText string) *chat.Session {
	if s.meta == nil {
		now := s.now().UTC()
		s.meta = &chat.Session{
			ID:        uuid.NewString(),
			Title:     truncate(firstText, titleLimit),
			Mode:      s.mode,
			CreatedAt: now,
			UpdatedAt: now,
			Language:  s.lang,
		}
	}
	return s.meta
}

func truncate(text string, limit int) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:limit]))
}

func (s *Session) publish(e Event) {
	if e.At.IsZero() {
		e.At = s.now().UTC()
	}
	s.events.publish(e)
}
