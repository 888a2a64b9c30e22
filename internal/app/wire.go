// Package app 根据配置组装各个组件，供 API 服务与命令行工具共用。
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/zhouzirui/persona-voice/backend/internal/config"
	"github.com/zhouzirui/persona-voice/backend/internal/service/ai"
	"github.com/zhouzirui/persona-voice/backend/internal/service/voice"
	"github.com/zhouzirui/persona-voice/backend/internal/store"
	"github.com/zhouzirui/persona-voice/backend/pkg/log"
)

// NewResponder builds the response service. A missing or broken LLM leaves
// the service on its offline fallback bank.
func NewResponder(ctx context.Context, cfg config.LLMConfig) *ai.Service {
	completer, err := newCompleter(ctx, cfg)
	switch {
	case errors.Is(err, ai.ErrNotConfigured):
		log.Infof("[ai] %s credentials not configured, using offline replies", cfg.Provider)
	case err != nil:
		log.Warnf("[ai] failed to initialize %s, using offline replies: %v", cfg.Provider, err)
	case completer != nil:
		log.Infof("[ai] %s completer initialized", cfg.Provider)
	}
	return ai.NewService(completer, ai.WithTimeout(cfg.Timeout))
}

func newCompleter(ctx context.Context, cfg config.LLMConfig) (ai.Completer, error) {
	switch cfg.Provider {
	case config.ProviderArk:
		chatModel, err := ai.NewArkChatModel(ctx, cfg.Ark())
		if err != nil {
			return nil, err
		}
		completer, err := ai.NewEinoCompleter(ctx, chatModel)
		if err != nil {
			return nil, err
		}
		return completer, nil
	case config.ProviderGemini:
		completer, err := ai.NewGeminiCompleter(ctx, cfg.Gemini())
		if err != nil {
			return nil, err
		}
		return completer, nil
	default:
		return nil, nil
	}
}

// Voices 汇总远程与本地语音合成，任意一项都可能为 nil。
type Voices struct {
	Primary voice.Provider
	Local   voice.LocalEngine
}

// Options returns synthesizer options for the configured engines.
func (v Voices) Options() []voice.Option {
	var opts []voice.Option
	if v.Primary != nil {
		opts = append(opts, voice.WithPrimary(v.Primary))
	}
	if v.Local != nil {
		opts = append(opts, voice.WithLocal(v.Local))
	}
	return opts
}

// NewVoices builds the remote provider and the local engine.
func NewVoices(tts config.TTSConfig, local config.LocalSpeechConfig) Voices {
	var v Voices

	primary, err := newProvider(tts)
	switch {
	case errors.Is(err, voice.ErrNotConfigured):
		log.Infof("[voice] %s credentials not configured", tts.Provider)
	case err != nil:
		log.Warnf("[voice] failed to initialize %s: %v", tts.Provider, err)
	default:
		v.Primary = primary
	}

	if local.Enabled {
		engine, err := voice.NewEspeak(local.Binary)
		if err != nil {
			log.Warnf("[voice] local synthesis disabled: %v", err)
		} else {
			v.Local = engine
		}
	}
	return v
}

func newProvider(cfg config.TTSConfig) (voice.Provider, error) {
	switch cfg.Provider {
	case config.ProviderElevenLabs:
		p, err := voice.NewElevenLabs(cfg.ElevenLabs())
		if err != nil {
			return nil, err
		}
		return p, nil
	case config.ProviderVolcengine:
		p, err := voice.NewVolcengineTTS(cfg.Volcengine())
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, voice.ErrNotConfigured
	}
}

// NewStore opens the configured history backend. Remote backends are wrapped so
// failed writes land in memory. The returned close function releases connections.
func NewStore(ctx context.Context, cfg config.StoreConfig) (store.Store, func(), error) {
	switch cfg.Backend {
	case config.BackendRedis:
		client, err := store.NewRedisClient(ctx, cfg.Redis())
		if err != nil {
			return nil, nil, err
		}
		st := store.NewResilient(store.NewRedisStore(client, cfg.RedisTTL))
		return st, func() { _ = client.Close() }, nil
	case config.BackendPostgres:
		if err := store.RunMigrations(cfg.DatabaseURL); err != nil {
			return nil, nil, err
		}
		pool, err := store.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return store.NewResilient(store.NewPostgresStore(pool)), pool.Close, nil
	case config.BackendMemory:
		return store.NewMemoryStore(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
