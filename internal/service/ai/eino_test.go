package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zhouzirui/persona-voice/backend/internal/model/chat"
)

// fakeChatModel 记录收到的消息与温度。
type fakeChatModel struct {
	reply       string
	err         error
	input       []*schema.Message
	temperature *float32
}

func (f *fakeChatModel) Generate(_ context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	f.input = input
	f.temperature = model.GetCommonOptions(&model.Options{}, opts...).Temperature
	if f.err != nil {
		return nil, f.err
	}
	return schema.AssistantMessage(f.reply, nil), nil
}

func (f *fakeChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := f.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

func TestEinoCompleterBuildsConversation(t *testing.T) {
	fake := &fakeChatModel{reply: "Hello there!"}
	completer, err := NewEinoCompleter(context.Background(), fake)
	require.NoError(t, err)

	text, err := completer.Complete(context.Background(), Completion{
		SystemPrompt: "You are Sam.",
		History: []chat.Message{
			{Role: chat.RoleUser, Content: "hi"},
			{Role: chat.RoleAssistant, Content: "hey!"},
		},
		UserText:    "what's up?",
		Temperature: 0.9,
	})
	require.NoError(t, err)
	assert.Equal(t, "Hello there!", text)

	require.Len(t, fake.input, 4)
	assert.Equal(t, schema.System, fake.input[0].Role)
	assert.Equal(t, "You are Sam.", fake.input[0].Content)
	assert.Equal(t, schema.User, fake.input[1].Role)
	assert.Equal(t, schema.Assistant, fake.input[2].Role)
	assert.Equal(t, "what's up?", fake.input[3].Content)
	require.NotNil(t, fake.temperature)
	assert.Equal(t, float32(0.9), *fake.temperature)
}

func TestEinoCompleterErrors(t *testing.T) {
	_, err := NewEinoCompleter(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNotConfigured)

	boom := errors.New("ark: 503")
	completer, err := NewEinoCompleter(context.Background(), &fakeChatModel{err: boom})
	require.NoError(t, err)
	_, err = completer.Complete(context.Background(), Completion{UserText: "hi"})
	assert.ErrorContains(t, err, boom.Error())

	completer, err = NewEinoCompleter(context.Background(), &fakeChatModel{reply: ""})
	require.NoError(t, err)
	_, err = completer.Complete(context.Background(), Completion{UserText: "hi"})
	assert.ErrorIs(t, err, ErrEmptyCompletion)
}

func TestArkConfigRejectsPlaceholders(t *testing.T) {
	_, err := NewArkChatModel(context.Background(), ArkConfig{APIKey: "your_ark_api_key", Model: "ep-20240101"})
	assert.ErrorIs(t, err, ErrNotConfigured)

	assert.True(t, ArkConfig{AccessKey: "ak", SecretKey: "sk", Model: "ep-1"}.Enabled())
	assert.False(t, ArkConfig{APIKey: "real-key"}.Enabled())
}

func TestGeminiRejectsPlaceholderKey(t *testing.T) {
	_, err := NewGeminiCompleter(context.Background(), GeminiConfig{APIKey: "YOUR_GEMINI_KEY"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}
