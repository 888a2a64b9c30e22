package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"github.com/zhouzirui/persona-voice/backend/internal/model/chat"
	"github.com/zhouzirui/persona-voice/backend/pkg/utils"
)

// ArkConfig 描述火山方舟模型的接入参数。
type ArkConfig struct {
	APIKey    string
	AccessKey string
	SecretKey string
	Model     string
	BaseURL   string
	Region    string
	MaxTokens int
}

// Enabled 表示是否提供了可用的凭证与模型。
func (c ArkConfig) Enabled() bool {
	if utils.IsPlaceholder(c.Model) {
		return false
	}
	return !utils.IsPlaceholder(c.APIKey) || (!utils.IsPlaceholder(c.AccessKey) && !utils.IsPlaceholder(c.SecretKey))
}

// NewArkChatModel 使用配置创建一个方舟模型实例。
func NewArkChatModel(ctx context.Context, c ArkConfig) (model.BaseChatModel, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("ark credentials or model missing: %w", ErrNotConfigured)
	}

	cfg := &ark.ChatModelConfig{
		BaseURL:   c.BaseURL,
		Region:    c.Region,
		APIKey:    c.APIKey,
		AccessKey: c.AccessKey,
		SecretKey: c.SecretKey,
		Model:     c.Model,
	}
	if c.MaxTokens > 0 {
		maxTokens := c.MaxTokens
		cfg.MaxTokens = &maxTokens
	}

	return ark.NewChatModel(ctx, cfg)
}

// EinoCompleter runs a prompt template → chat model chain.
type EinoCompleter struct {
	chain compose.Runnable[map[string]any, *schema.Message]
}

// NewEinoCompleter compiles the chat chain around any eino chat model.
func NewEinoCompleter(ctx context.Context, chatModel model.BaseChatModel) (*EinoCompleter, error) {
	if chatModel == nil {
		return nil, ErrNotConfigured
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain: %w", err)
	}
	return &EinoCompleter{chain: runnable}, nil
}

// Complete implements Completer.
func (c *EinoCompleter) Complete(ctx context.Context, req Completion) (string, error) {
	input := map[string]any{
		"system":  req.SystemPrompt,
		"history": historyMessages(req.History),
		"query":   req.UserText,
	}

	response, err := c.chain.Invoke(ctx, input,
		compose.WithChatModelOption(model.WithTemperature(req.Temperature)))
	if err != nil {
		return "", fmt.Errorf("failed to run chat chain: %w", err)
	}
	if response == nil || strings.TrimSpace(response.Content) == "" {
		return "", ErrEmptyCompletion
	}
	return response.Content, nil
}

func historyMessages(messages []chat.Message) []*schema.Message {
	recent := recentHistory(messages)
	if len(recent) == 0 {
		return nil
	}

	history := make([]*schema.Message, 0, len(recent))
	for _, msg := range recent {
		switch msg.Role {
		case chat.RoleUser:
			history = append(history, schema.UserMessage(msg.Content))
		case chat.RoleAssistant:
			history = append(history, schema.AssistantMessage(msg.Content, nil))
		}
	}
	return history
}
