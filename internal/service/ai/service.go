// Package ai 生成人格化回复：优先调用远程模型，失败时回退到本地确定性回复库。
package ai

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/zhouzirui/persona-voice/backend/internal/analysis/crisis"
	"github.com/zhouzirui/persona-voice/backend/internal/analysis/emotion"
	detector "github.com/zhouzirui/persona-voice/backend/internal/analysis/language"
	"github.com/zhouzirui/persona-voice/backend/internal/model/chat"
	"github.com/zhouzirui/persona-voice/backend/internal/model/language"
	"github.com/zhouzirui/persona-voice/backend/internal/model/persona"
	"github.com/zhouzirui/persona-voice/backend/internal/service/prompt"
	"github.com/zhouzirui/persona-voice/backend/pkg/log"
)

// DefaultTimeout bounds a single primary provider call.
const DefaultTimeout = 10 * time.Second

// Source records which path produced a reply.
type Source string

const (
	SourcePrimary  Source = "primary"
	SourceFallback Source = "fallback"
	SourceCrisis   Source = "crisis"
)

// Request is one user turn.
type Request struct {
	UserText     string
	Mode         persona.Mode
	History      []chat.Message
	Language     language.Language
	Preferences  persona.Preferences
	LearningMode bool
}

// Reply is always non-empty.
type Reply struct {
	Text     string
	Language language.Language
	Emotion  emotion.Context
	Crisis   crisis.Assessment
	Source   Source
}

// Service implements the response pipeline.
type Service struct {
	completer Completer
	timeout   time.Duration
	rand      Rand
}

// Option customizes a Service.
type Option func(*Service)

// WithTimeout overrides DefaultTimeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithRand injects the naturalizer's random source.
func WithRand(r Rand) Option {
	return func(s *Service) {
		if r != nil {
			s.rand = r
		}
	}
}

// NewService creates a Service. A nil completer means every turn uses the
// fallback bank.
func NewService(completer Completer, opts ...Option) *Service {
	s := &Service{
		completer: completer,
		timeout:   DefaultTimeout,
		rand:      globalRand{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PrimaryEnabled reports whether a remote provider is wired.
func (s *Service) PrimaryEnabled() bool {
	return s.completer != nil
}

// Generate runs detect → classify → prompt → primary call, falling back to
// the local bank on any provider failure. It never returns an error.
func (s *Service) Generate(ctx context.Context, req Request) Reply {
	lang := detector.Resolve(req.UserText, req.Language)
	reply := Reply{
		Language: lang,
		Emotion:  emotion.Detect(req.UserText),
		Crisis:   crisis.Detect(req.UserText),
	}

	if reply.Crisis.IsCrisis {
		log.Warnf("[ai] crisis detected severity=%s triggers=%v, returning resource reply", reply.Crisis.Severity, reply.Crisis.Triggers)
		reply.Text = crisisReply(lang)
		reply.Source = SourceCrisis
		return reply
	}

	systemPrompt := prompt.Build(prompt.Input{
		Mode:         req.Mode,
		Language:     lang,
		Emotion:      reply.Emotion,
		Crisis:       reply.Crisis,
		Preferences:  req.Preferences,
		Continuing:   len(req.History) > 0,
		LearningMode: req.LearningMode,
	})

	text, err := s.callPrimary(ctx, Completion{
		SystemPrompt: systemPrompt,
		History:      recentHistory(req.History),
		UserText:     req.UserText,
		Temperature:  Temperature(req.Mode, req.LearningMode),
	})
	if err == nil {
		reply.Text = text
		reply.Source = SourcePrimary
		log.Debugf("[ai] primary reply mode=%s lang=%s length=%d", req.Mode, lang, len(text))
		return reply
	}

	if errors.Is(err, ErrNotConfigured) {
		log.Debugf("[ai] primary provider not configured, using fallback bank")
	} else {
		log.Warnf("[ai] primary provider failed, using fallback bank: %v", err)
	}

	bucket := emotion.BucketOf(reply.Emotion.DetectedEmotion)
	base := pickFallback(fallbackReplies(req.Mode, lang, bucket), req.UserText, len(req.History))
	reply.Text = naturalize(base, lang, s.rand)
	reply.Source = SourceFallback
	return reply
}

func (s *Service) callPrimary(ctx context.Context, req Completion) (text string, err error) {
	if s.completer == nil {
		return "", ErrNotConfigured
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			log.Errorf("[ai] provider panic: %v", r)
			text, err = "", errors.New("ai: provider panic")
		}
	}()

	text, err = s.completer.Complete(callCtx, req)
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}

// Temperature favors variety for conversational personas and precision for
// the tutor.
func Temperature(mode persona.Mode, learning bool) float32 {
	switch mode {
	case persona.Friend:
		return 0.9
	case persona.Tutor:
		if learning {
			return 0.2
		}
		return 0.3
	default:
		return 0.8
	}
}
