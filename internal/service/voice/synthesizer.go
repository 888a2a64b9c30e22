package voice

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/zhouzirui/persona-voice/backend/pkg/log"
)

const (
	// NoticeUnavailable is emitted once when no synthesis path exists at all.
	NoticeUnavailable = "Voice output is not available on this device."
	// NoticeFailed is emitted when both the remote and the local voice failed.
	NoticeFailed = "Voice playback failed. The reply is still shown as text."

	localProviderName = "local"
)

// utterance 是当前占用播放槽位的语音。
type utterance struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Synthesizer speaks one utterance at a time. Speak interrupts whatever is playing.
type Synthesizer struct {
	primary Provider
	local   LocalEngine
	player  Player
	notify  func(string)

	mu      sync.Mutex
	current *utterance

	unavailableOnce sync.Once
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithPrimary sets the remote TTS provider.
func WithPrimary(p Provider) Option {
	return func(s *Synthesizer) { s.primary = p }
}

// WithLocal sets the local synthesis engine.
func WithLocal(e LocalEngine) Option {
	return func(s *Synthesizer) { s.local = e }
}

// WithNotifier receives user-facing notices.
func WithNotifier(fn func(string)) Option {
	return func(s *Synthesizer) { s.notify = fn }
}

// NewSynthesizer creates a Synthesizer playing into player.
func NewSynthesizer(player Player, opts ...Option) *Synthesizer {
	if player == nil {
		player = DiscardPlayer
	}
	s := &Synthesizer{player: player}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Available reports whether any synthesis path is configured.
func (s *Synthesizer) Available() bool {
	return s.primary != nil || s.local != nil
}

// Speak preprocesses and plays u. It returns after playback completes or is interrupted.
// Every call interrupts the current utterance, even when u has nothing to say.
func (s *Synthesizer) Speak(ctx context.Context, u Utterance) (Result, error) {
	text := Preprocess(u.Text, u.Language, u.Mode)
	if text == "" {
		s.Stop()
		return Result{}, ErrEmptyText
	}
	if !s.Available() {
		s.unavailableOnce.Do(func() { s.emit(NoticeUnavailable) })
		return Result{}, ErrSpeechUnavailable
	}

	ctx, finish := s.acquire(ctx)
	defer finish()

	if s.primary != nil {
		err := s.playPrimary(ctx, text, u)
		if err == nil {
			return Result{Provider: s.primary.Name()}, nil
		}
		if ctx.Err() != nil {
			return Result{Provider: s.primary.Name(), Interrupted: true}, nil
		}
		if errors.Is(err, ErrNotConfigured) {
			log.Debugf("[voice] primary %s not configured: %v", s.primary.Name(), err)
		} else {
			log.Warnf("[voice] primary %s failed, trying local synthesis: %v", s.primary.Name(), err)
		}
	}

	if s.local == nil {
		s.emit(NoticeFailed)
		return Result{Notice: NoticeFailed}, nil
	}
	err := s.playLocal(ctx, text, u)
	if ctx.Err() != nil {
		return Result{Provider: localProviderName, Interrupted: true}, nil
	}
	if err != nil {
		log.Warnf("[voice] local synthesis failed: %v", err)
		s.emit(NoticeFailed)
		return Result{Provider: localProviderName, Notice: NoticeFailed}, nil
	}
	return Result{Provider: localProviderName}, nil
}

// Stop interrupts the current utterance and waits until its audio is released.
func (s *Synthesizer) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interruptLocked()
}

// Speaking reports whether an utterance holds the slot.
func (s *Synthesizer) Speaking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil
}

// acquire interrupts the previous utterance and takes the slot.
func (s *Synthesizer) acquire(parent context.Context) (context.Context, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interruptLocked()

	ctx, cancel := context.WithCancel(parent)
	u := &utterance{cancel: cancel, done: make(chan struct{})}
	s.current = u

	return ctx, func() {
		cancel()
		close(u.done)
		s.mu.Lock()
		if s.current == u {
			s.current = nil
		}
		s.mu.Unlock()
	}
}

// interruptLocked 取消当前语音并等待其释放音频句柄。调用方必须持有 s.mu。
func (s *Synthesizer) interruptLocked() {
	if s.current == nil {
		return
	}
	s.current.cancel()
	<-s.current.done
	s.current = nil
}

func (s *Synthesizer) playPrimary(ctx context.Context, text string, u Utterance) error {
	stream, format, err := s.primary.Synthesize(ctx, Request{
		Text:     text,
		VoiceID:  Resolve(u.Language, u.Gender, u.Mode),
		Language: u.Language,
		Gender:   u.Gender,
		Mode:     u.Mode,
		Settings: SettingsFor(u.Mode),
	})
	if err != nil {
		return err
	}
	return s.play(ctx, stream, format)
}

func (s *Synthesizer) playLocal(ctx context.Context, text string, u Utterance) error {
	voices, err := s.local.Voices(ctx)
	if err != nil {
		return err
	}
	tag := u.Language.Tag()
	req := LocalRequest{Text: text, LanguageTag: tag}
	if v, ok := SelectVoice(voices, tag, u.Gender); ok {
		req.VoiceName = variantFor(v, u.Gender)
	} else {
		return fmt.Errorf("no installed voice for %s", tag)
	}
	prosody := ProsodyFor(u.Mode)
	req.Rate, req.Pitch, req.Volume = prosody.Rate, prosody.Pitch, prosody.Volume

	stream, err := s.local.Synthesize(ctx, req)
	if err != nil {
		return err
	}
	return s.play(ctx, stream, "wav")
}

// play hands stream to the player and always closes it.
// Cancelling ctx closes the stream so a blocked read returns. A close error
// after a complete playback means the source failed and is returned.
func (s *Synthesizer) play(ctx context.Context, stream io.ReadCloser, format string) error {
	var (
		once     sync.Once
		closeErr error
	)
	release := func() { once.Do(func() { closeErr = stream.Close() }) }
	stop := context.AfterFunc(ctx, release)

	err := s.player.Play(ctx, Audio{Format: format, Stream: stream})
	stop()
	release()
	if err != nil {
		return fmt.Errorf("playback failed: %w", err)
	}
	if closeErr != nil && ctx.Err() == nil {
		return fmt.Errorf("audio source failed: %w", closeErr)
	}
	return nil
}

func (s *Synthesizer) emit(notice string) {
	if s.notify != nil {
		s.notify(notice)
	}
}
