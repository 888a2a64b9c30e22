package voice

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zhouzirui/persona-voice/backend/internal/model/persona"
)

func TestElevenLabsSynthesize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/text-to-speech/voice-123/stream", r.URL.Path)
		assert.Equal(t, "mp3_44100_128", r.URL.Query().Get("output_format"))
		assert.Equal(t, "secret-key", r.Header.Get("xi-api-key"))

		var body elevenLabsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Hello there", body.Text)
		assert.Equal(t, defaultElevenLabsModel, body.ModelID)
		assert.Equal(t, SettingsFor(persona.Therapist), body.VoiceSettings)

		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte("ID3-audio"))
	}))
	defer srv.Close()

	tts, err := NewElevenLabs(ElevenLabsConfig{APIKey: "secret-key", BaseURL: srv.URL + "/"})
	require.NoError(t, err)

	stream, format, err := tts.Synthesize(context.Background(), Request{
		Text:     "Hello there",
		VoiceID:  "voice-123",
		Settings: SettingsFor(persona.Therapist),
	})
	require.NoError(t, err)
	defer stream.Close()

	audio, err := io.ReadAll(stream)
	require.NoError(t, err)
	assert.Equal(t, "mp3", format)
	assert.Equal(t, "ID3-audio", string(audio))
}

func TestElevenLabsNonSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"detail":"invalid api key"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	tts, err := NewElevenLabs(ElevenLabsConfig{APIKey: "secret-key", BaseURL: srv.URL})
	require.NoError(t, err)

	_, _, err = tts.Synthesize(context.Background(), Request{Text: "hi", VoiceID: DefaultVoiceID})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "invalid api key")
}

func TestNewElevenLabsRejectsPlaceholder(t *testing.T) {
	for _, key := range []string{"", "your_elevenlabs_api_key", "sk-xxxx"} {
		_, err := NewElevenLabs(ElevenLabsConfig{APIKey: key})
		assert.ErrorIs(t, err, ErrNotConfigured, key)
	}
}
