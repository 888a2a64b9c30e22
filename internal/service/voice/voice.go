// Package voice 把回复文本合成为语音：优先使用云端 TTS，失败时回退到本地合成引擎。
package voice

import (
	"context"
	"errors"
	"io"

	"github.com/zhouzirui/persona-voice/backend/internal/model/language"
	"github.com/zhouzirui/persona-voice/backend/internal/model/persona"
)

var (
	// ErrNotConfigured 表示 TTS 凭证缺失或仍是占位符。
	ErrNotConfigured = errors.New("voice: provider not configured")
	// ErrSpeechUnavailable 表示既没有云端 TTS 也没有本地合成引擎。
	ErrSpeechUnavailable = errors.New("voice: no speech synthesis available")
	// ErrEngineNotFound 表示本地合成引擎未安装。
	ErrEngineNotFound = errors.New("voice: local engine not found")
	// ErrEmptyText 表示预处理后没有可朗读的内容。
	ErrEmptyText = errors.New("voice: empty text")
)

// Utterance is one piece of text to speak.
type Utterance struct {
	Text     string
	Mode     persona.Mode
	Language language.Language
	Gender   persona.Gender
}

// Result describes how an utterance ended. Interruption is a normal outcome.
type Result struct {
	Provider    string `json:"provider,omitempty"`
	Interrupted bool   `json:"interrupted"`
	Notice      string `json:"notice,omitempty"`
}

// Request is what a primary provider receives after preprocessing.
type Request struct {
	Text     string
	VoiceID  string
	Language language.Language
	Gender   persona.Gender
	Mode     persona.Mode
	Settings Settings
}

// Audio is an encoded audio stream handed to a Player.
type Audio struct {
	Format string
	Stream io.Reader
}

// Provider is a remote TTS backend. The returned stream must be closed.
type Provider interface {
	Name() string
	Synthesize(ctx context.Context, req Request) (io.ReadCloser, string, error)
}

// Player consumes audio. Play blocks until the audio is delivered or ctx ends.
type Player interface {
	Play(ctx context.Context, audio Audio) error
}

// PlayerFunc adapts a function to Player.
type PlayerFunc func(ctx context.Context, audio Audio) error

func (f PlayerFunc) Play(ctx context.Context, audio Audio) error {
	return f(ctx, audio)
}

// DiscardPlayer drains audio without playing it.
var DiscardPlayer Player = PlayerFunc(func(_ context.Context, audio Audio) error {
	_, err := io.Copy(io.Discard, audio.Stream)
	return err
})
