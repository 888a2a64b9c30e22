package voice

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zhouzirui/persona-voice/backend/internal/model/language"
	"github.com/zhouzirui/persona-voice/backend/internal/model/persona"
	"go.uber.org/goleak"
)

// fakeStream 在 block 为 true 时一直阻塞，直到被关闭。
type fakeStream struct {
	data    *strings.Reader
	block   bool
	closed  chan struct{}
	once    sync.Once
	onClose func()
}

func newFakeStream(text string, block bool, onClose func()) *fakeStream {
	return &fakeStream{data: strings.NewReader(text), block: block, closed: make(chan struct{}), onClose: onClose}
}

func (s *fakeStream) Read(p []byte) (int, error) {
	if s.block {
		<-s.closed
		return 0, io.ErrClosedPipe
	}
	return s.data.Read(p)
}

func (s *fakeStream) Close() error {
	s.once.Do(func() {
		close(s.closed)
		s.onClose()
	})
	return nil
}

type fakeProvider struct {
	err      error
	blocking string
	started  chan string

	mu       sync.Mutex
	requests []Request
	opened   atomic.Int32
	closed   atomic.Int32
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{started: make(chan string, 4)}
}

func (p *fakeProvider) Name() string { return "fake" }

func (p *fakeProvider) Synthesize(_ context.Context, req Request) (io.ReadCloser, string, error) {
	p.mu.Lock()
	p.requests = append(p.requests, req)
	p.mu.Unlock()
	if p.err != nil {
		return nil, "", p.err
	}
	p.opened.Add(1)
	p.started <- req.Text
	return newFakeStream(req.Text, req.Text == p.blocking, func() { p.closed.Add(1) }), "mp3", nil
}

func (p *fakeProvider) open() int32 { return p.opened.Load() - p.closed.Load() }

type fakeEngine struct {
	voices []LocalVoice
	err    error

	mu       sync.Mutex
	requests []LocalRequest
}

func (e *fakeEngine) Voices(context.Context) ([]LocalVoice, error) { return e.voices, nil }

func (e *fakeEngine) Synthesize(_ context.Context, req LocalRequest) (io.ReadCloser, error) {
	e.mu.Lock()
	e.requests = append(e.requests, req)
	e.mu.Unlock()
	if e.err != nil {
		return nil, e.err
	}
	return io.NopCloser(strings.NewReader(req.Text)), nil
}

// recordingPlayer 记录完整播放完毕的音频内容。
type recordingPlayer struct {
	mu        sync.Mutex
	completed []string
	formats   []string
}

func (p *recordingPlayer) Play(_ context.Context, audio Audio) error {
	data, err := io.ReadAll(audio.Stream)
	if err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.completed = append(p.completed, string(data))
	p.formats = append(p.formats, audio.Format)
	return nil
}

func (p *recordingPlayer) played() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.completed...)
}

func english(text string) Utterance {
	return Utterance{Text: text, Mode: persona.General, Language: language.English, Gender: persona.Female}
}

func TestSpeakInterruptsPreviousUtterance(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	provider := newFakeProvider()
	provider.blocking = "First utterance"
	player := &recordingPlayer{}
	synth := NewSynthesizer(player, WithPrimary(provider))

	first := make(chan Result, 1)
	go func() {
		res, err := synth.Speak(context.Background(), english("First utterance"))
		assert.NoError(t, err)
		first <- res
	}()
	require.Equal(t, "First utterance", <-provider.started)

	second, err := synth.Speak(context.Background(), english("Second utterance"))
	require.NoError(t, err)
	assert.False(t, second.Interrupted)
	assert.Equal(t, "fake", second.Provider)

	interrupted := <-first
	assert.True(t, interrupted.Interrupted)
	assert.Equal(t, []string{"Second utterance"}, player.played())
	assert.Zero(t, provider.open(), "every audio handle must be released")
	assert.False(t, synth.Speaking())
}

func TestStopInterruptsAndReleases(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	provider := newFakeProvider()
	provider.blocking = "Long answer"
	synth := NewSynthesizer(&recordingPlayer{}, WithPrimary(provider))

	done := make(chan Result, 1)
	go func() {
		res, _ := synth.Speak(context.Background(), english("Long answer"))
		done <- res
	}()
	<-provider.started
	require.Eventually(t, synth.Speaking, time.Second, 5*time.Millisecond)

	synth.Stop()
	res := <-done
	assert.True(t, res.Interrupted)
	assert.Zero(t, provider.open())

	// Stop with nothing playing is a no-op.
	synth.Stop()
}

func TestSpeakParentCancelIsInterruption(t *testing.T) {
	provider := newFakeProvider()
	provider.blocking = "Hello"
	synth := NewSynthesizer(&recordingPlayer{}, WithPrimary(provider))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-provider.started
		cancel()
	}()
	res, err := synth.Speak(ctx, english("Hello"))
	require.NoError(t, err)
	assert.True(t, res.Interrupted)
	assert.Zero(t, provider.open())
}

func TestSpeakPrimaryRequest(t *testing.T) {
	provider := newFakeProvider()
	player := &recordingPlayer{}
	synth := NewSynthesizer(player, WithPrimary(provider))

	res, err := synth.Speak(context.Background(), Utterance{
		Text:     "**I am** here for you.",
		Mode:     persona.Therapist,
		Language: language.English,
		Gender:   persona.Male,
	})
	require.NoError(t, err)
	assert.Equal(t, Result{Provider: "fake"}, res)

	require.Len(t, provider.requests, 1)
	req := provider.requests[0]
	assert.Equal(t, "I'm here for you.", req.Text)
	assert.Equal(t, voiceAntoni, req.VoiceID)
	assert.Equal(t, SettingsFor(persona.Therapist), req.Settings)
	assert.Equal(t, []string{"mp3"}, player.formats)
}

func TestSpeakFallsBackToLocal(t *testing.T) {
	provider := newFakeProvider()
	provider.err = errors.New("elevenlabs returned 500")
	engine := &fakeEngine{voices: []LocalVoice{{Identifier: "en-us", Language: "en-us", Gender: persona.Male}}}
	player := &recordingPlayer{}
	var notices []string
	synth := NewSynthesizer(player, WithPrimary(provider), WithLocal(engine), WithNotifier(func(n string) { notices = append(notices, n) }))

	res, err := synth.Speak(context.Background(), Utterance{Text: "Keep going", Mode: persona.Friend, Language: language.English, Gender: persona.Female})
	require.NoError(t, err)
	assert.Equal(t, Result{Provider: "local"}, res)
	assert.Empty(t, notices)

	require.Len(t, engine.requests, 1)
	req := engine.requests[0]
	assert.Equal(t, "en-us+f3", req.VoiceName)
	assert.Equal(t, "en-US", req.LanguageTag)
	assert.Equal(t, ProsodyFor(persona.Friend).Rate, req.Rate)
	assert.Equal(t, []string{"Keep going"}, player.played())
	assert.Equal(t, []string{"wav"}, player.formats)
}

func TestSpeakLocalOnly(t *testing.T) {
	engine := &fakeEngine{voices: []LocalVoice{{Identifier: "es", Language: "es", Gender: persona.Male}}}
	synth := NewSynthesizer(&recordingPlayer{}, WithLocal(engine))

	res, err := synth.Speak(context.Background(), Utterance{Text: "Hola", Mode: persona.General, Language: language.Spanish, Gender: persona.Male})
	require.NoError(t, err)
	assert.Equal(t, "local", res.Provider)
	assert.Equal(t, "es", engine.requests[0].VoiceName)
}

func TestSpeakBothFailEmitsNotice(t *testing.T) {
	tests := []struct {
		name   string
		engine *fakeEngine
	}{
		{"engine error", &fakeEngine{voices: []LocalVoice{{Identifier: "en-us", Language: "en-us"}}, err: errors.New("exit status 1")}},
		{"no matching voice", &fakeEngine{voices: []LocalVoice{{Identifier: "ja", Language: "ja"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := newFakeProvider()
			provider.err = errors.New("timeout")
			var notices []string
			synth := NewSynthesizer(&recordingPlayer{}, WithPrimary(provider), WithLocal(tt.engine), WithNotifier(func(n string) { notices = append(notices, n) }))

			res, err := synth.Speak(context.Background(), english("Hello"))
			require.NoError(t, err)
			assert.Equal(t, NoticeFailed, res.Notice)
			assert.Equal(t, []string{NoticeFailed}, notices)
		})
	}
}

func TestSpeakPrimaryOnlyFailure(t *testing.T) {
	provider := newFakeProvider()
	provider.err = ErrNotConfigured
	synth := NewSynthesizer(nil, WithPrimary(provider))

	res, err := synth.Speak(context.Background(), english("Hello"))
	require.NoError(t, err)
	assert.Equal(t, NoticeFailed, res.Notice)
}

func TestSpeakWithoutAnyEngine(t *testing.T) {
	var notices []string
	synth := NewSynthesizer(&recordingPlayer{}, WithNotifier(func(n string) { notices = append(notices, n) }))

	for range 3 {
		_, err := synth.Speak(context.Background(), english("Hello"))
		assert.ErrorIs(t, err, ErrSpeechUnavailable)
	}
	assert.Equal(t, []string{NoticeUnavailable}, notices, "the notice is shown exactly once")
	assert.False(t, synth.Available())
}

func TestSpeakEmptyText(t *testing.T) {
	synth := NewSynthesizer(nil, WithPrimary(newFakeProvider()))
	_, err := synth.Speak(context.Background(), english("** **"))
	assert.ErrorIs(t, err, ErrEmptyText)
}

func TestSpeakEmptyTextInterruptsCurrent(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	provider := newFakeProvider()
	provider.blocking = "Long answer"
	synth := NewSynthesizer(&recordingPlayer{}, WithPrimary(provider))

	done := make(chan Result, 1)
	go func() {
		res, _ := synth.Speak(context.Background(), english("Long answer"))
		done <- res
	}()
	<-provider.started
	require.Eventually(t, synth.Speaking, time.Second, 5*time.Millisecond)

	_, err := synth.Speak(context.Background(), english("** **"))
	assert.ErrorIs(t, err, ErrEmptyText)
	assert.True(t, (<-done).Interrupted)
	assert.Zero(t, provider.open())
	assert.False(t, synth.Speaking())
}

// closeErrEngine 的音频流读完后 Close 返回错误，模拟引擎进程异常退出。
type closeErrEngine struct{ fakeEngine }

func (e *closeErrEngine) Synthesize(_ context.Context, req LocalRequest) (io.ReadCloser, error) {
	return failingCloser{Reader: strings.NewReader(req.Text)}, nil
}

type failingCloser struct{ io.Reader }

func (failingCloser) Close() error { return errors.New("exit status 1") }

func TestSpeakSourceCloseErrorFallsThrough(t *testing.T) {
	provider := newFakeProvider()
	provider.err = errors.New("timeout")
	engine := &closeErrEngine{fakeEngine{voices: []LocalVoice{{Identifier: "en-us", Language: "en-us"}}}}
	var notices []string
	synth := NewSynthesizer(&recordingPlayer{}, WithPrimary(provider), WithLocal(engine), WithNotifier(func(n string) { notices = append(notices, n) }))

	res, err := synth.Speak(context.Background(), english("Hello"))
	require.NoError(t, err)
	assert.Equal(t, NoticeFailed, res.Notice)
	assert.Equal(t, []string{NoticeFailed}, notices)
}
