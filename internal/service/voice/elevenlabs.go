package voice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/zhouzirui/persona-voice/backend/pkg/utils"
)

const (
	defaultElevenLabsURL   = "https://api.elevenlabs.io"
	defaultElevenLabsModel = "eleven_multilingual_v2"
)

// ElevenLabsConfig describes the ElevenLabs text-to-speech API.
type ElevenLabsConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// ElevenLabs streams mp3 audio from the ElevenLabs API.
type ElevenLabs struct {
	cfg    ElevenLabsConfig
	client *http.Client
}

type elevenLabsRequest struct {
	Text          string   `json:"text"`
	ModelID       string   `json:"model_id"`
	VoiceSettings Settings `json:"voice_settings"`
}

// NewElevenLabs returns ErrNotConfigured for a missing or sample API key.
func NewElevenLabs(cfg ElevenLabsConfig) (*ElevenLabs, error) {
	if utils.IsPlaceholder(cfg.APIKey) {
		return nil, fmt.Errorf("elevenlabs api key missing: %w", ErrNotConfigured)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultElevenLabsURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultElevenLabsModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &ElevenLabs{cfg: cfg, client: &http.Client{Timeout: cfg.Timeout}}, nil
}

func (e *ElevenLabs) Name() string { return "elevenlabs" }

// Synthesize returns the response body as the audio stream.
func (e *ElevenLabs) Synthesize(ctx context.Context, req Request) (io.ReadCloser, string, error) {
	body, err := json.Marshal(elevenLabsRequest{
		Text:          req.Text,
		ModelID:       e.cfg.Model,
		VoiceSettings: req.Settings,
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal elevenlabs request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/text-to-speech/%s/stream?output_format=mp3_44100_128",
		strings.TrimRight(e.cfg.BaseURL, "/"), req.VoiceID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, "", fmt.Errorf("failed to build elevenlabs request: %w", err)
	}
	httpReq.Header.Set("xi-api-key", e.cfg.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "audio/mpeg")

	resp, err := e.client.Do(httpReq)
	if err != nil {
		return nil, "", fmt.Errorf("elevenlabs request failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, "", fmt.Errorf("elevenlabs returned %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}
	return resp.Body, "mp3", nil
}
