package ai

import (
	"context"
	"errors"

	"github.com/zhouzirui/persona-voice/backend/internal/model/chat"
)

// HistoryLimit 是发送给模型的最大历史轮数。
const HistoryLimit = 10

var (
	// ErrNotConfigured 表示凭证缺失或仍是示例占位符。
	ErrNotConfigured = errors.New("ai: provider not configured")
	// ErrEmptyCompletion 表示模型返回了空内容或无法解析的结果。
	ErrEmptyCompletion = errors.New("ai: empty completion")
)

// Completion is one request to a remote chat model.
type Completion struct {
	SystemPrompt string
	History      []chat.Message
	UserText     string
	Temperature  float32
}

// Completer sends a single chat completion to a remote provider.
type Completer interface {
	Complete(ctx context.Context, req Completion) (string, error)
}

// CompleterFunc adapts a function to Completer.
type CompleterFunc func(ctx context.Context, req Completion) (string, error)

func (f CompleterFunc) Complete(ctx context.Context, req Completion) (string, error) {
	return f(ctx, req)
}

// recentHistory keeps the last HistoryLimit messages.
func recentHistory(messages []chat.Message) []chat.Message {
	if len(messages) <= HistoryLimit {
		return messages
	}
	return messages[len(messages)-HistoryLimit:]
}
