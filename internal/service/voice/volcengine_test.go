package voice

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zhouzirui/persona-voice/backend/internal/model/language"
	"github.com/zhouzirui/persona-voice/backend/internal/model/persona"
)

// ttsServer 启动一个模拟火山引擎协议的 WebSocket 服务。
func ttsServer(t *testing.T, handle func(t *testing.T, conn *websocket.Conn, r *http.Request, req volcengineRequest)) string {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		defer conn.Close()

		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Errorf("read request failed: %v", err)
			return
		}
		f, err := decodeFrame(data)
		if err != nil {
			t.Errorf("decode request failed: %v", err)
			return
		}
		body, err := f.payload()
		if err != nil {
			t.Errorf("decompress request failed: %v", err)
			return
		}
		var req volcengineRequest
		if err := json.Unmarshal(body, &req); err != nil {
			t.Errorf("unmarshal request failed: %v", err)
			return
		}
		handle(t, conn, r, req)
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func send(t *testing.T, conn *websocket.Conn, f *frame) {
	t.Helper()
	if err := conn.WriteMessage(websocket.BinaryMessage, encodeFrame(f)); err != nil {
		t.Errorf("write frame failed: %v", err)
	}
}

func newTestVolcengine(t *testing.T, url string) *VolcengineTTS {
	t.Helper()
	tts, err := NewVolcengineTTS(VolcengineConfig{AppID: "app-1", AccessToken: "token-1", URL: url, Timeout: 5 * time.Second})
	require.NoError(t, err)
	return tts
}

func TestVolcengineAudioOnlyFrames(t *testing.T) {
	url := ttsServer(t, func(t *testing.T, conn *websocket.Conn, r *http.Request, req volcengineRequest) {
		assert.Equal(t, "app-1", r.Header.Get("X-Api-App-Key"))
		assert.Equal(t, "token-1", r.Header.Get("X-Api-Access-Key"))
		assert.NotEmpty(t, r.Header.Get("X-Api-Connect-Id"))
		assert.Equal(t, "Take a breath", req.ReqParams.Text)
		assert.Equal(t, "zh_male_M392_conversation_wvae_bigtts", req.ReqParams.Speaker)
		assert.Equal(t, "zh-CN", req.ReqParams.Language)
		assert.Equal(t, 0.85, req.ReqParams.AudioParams.SpeedRatio)

		send(t, conn, &frame{Type: frameAudioOnlyResp, Flags: flagPositiveSequence, Sequence: 1, Payload: []byte("abc")})
		send(t, conn, &frame{Type: frameAudioOnlyResp, Flags: flagNegativeSequence, Sequence: -2, Payload: []byte("def")})
	})

	stream, format, err := newTestVolcengine(t, url).Synthesize(context.Background(), Request{
		Text:     "Take a breath",
		Language: language.Chinese,
		Gender:   persona.Male,
		Mode:     persona.Therapist,
	})
	require.NoError(t, err)
	defer stream.Close()

	audio, err := io.ReadAll(stream)
	require.NoError(t, err)
	assert.Equal(t, "mp3", format)
	assert.Equal(t, "abcdef", string(audio))
}

func TestVolcengineServerResponseFrames(t *testing.T) {
	url := ttsServer(t, func(t *testing.T, conn *websocket.Conn, _ *http.Request, _ volcengineRequest) {
		chunk, _ := json.Marshal(volcengineServerMessage{Code: 0, Sequence: 1, Data: base64.StdEncoding.EncodeToString([]byte("xyz"))})
		send(t, conn, &frame{Type: frameFullServerResp, Flags: flagNoSequence, Serialization: serializationJSON, Payload: chunk})
		send(t, conn, &frame{Type: frameFullServerResp, Flags: flagWithEvent, Event: eventSessionFinished, SessionID: "s1", Payload: []byte(`{}`)})
	})

	stream, _, err := newTestVolcengine(t, url).Synthesize(context.Background(), Request{Text: "hello", Language: language.English})
	require.NoError(t, err)
	audio, _ := io.ReadAll(stream)
	assert.Equal(t, "xyz", string(audio))
}

func TestVolcengineErrorFrame(t *testing.T) {
	url := ttsServer(t, func(t *testing.T, conn *websocket.Conn, _ *http.Request, _ volcengineRequest) {
		send(t, conn, &frame{Type: frameError, Flags: flagNoSequence, ErrorCode: 45000001, Payload: []byte("quota exceeded")})
	})

	_, _, err := newTestVolcengine(t, url).Synthesize(context.Background(), Request{Text: "hello", Language: language.English})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "45000001")
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestVolcengineRetriesMismatchedResource(t *testing.T) {
	var mu sync.Mutex
	var resources []string
	url := ttsServer(t, func(t *testing.T, conn *websocket.Conn, r *http.Request, _ volcengineRequest) {
		mu.Lock()
		resources = append(resources, r.Header.Get("X-Api-Resource-Id"))
		attempt := len(resources)
		mu.Unlock()

		if attempt == 1 {
			send(t, conn, &frame{Type: frameError, ErrorCode: 55000000, Payload: []byte("resource ID is mismatched with speaker related resource")})
			return
		}
		send(t, conn, &frame{Type: frameAudioOnlyResp, Flags: flagLastNoSequence, Payload: []byte("ok")})
	})

	stream, _, err := newTestVolcengine(t, url).Synthesize(context.Background(), Request{Text: "hello", Language: language.English, Gender: persona.Female})
	require.NoError(t, err)
	audio, _ := io.ReadAll(stream)
	assert.Equal(t, "ok", string(audio))
	assert.Equal(t, []string{"seed-tts-2.0", "volc.service_type.10029"}, resources)
}

func TestVolcengineHonoursContext(t *testing.T) {
	release := make(chan struct{})
	url := ttsServer(t, func(t *testing.T, conn *websocket.Conn, _ *http.Request, _ volcengineRequest) {
		<-release
	})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, _, err := newTestVolcengine(t, url).Synthesize(ctx, Request{Text: "hello", Language: language.English})
	assert.True(t, errors.Is(err, context.DeadlineExceeded), "got %v", err)
}

func TestNewVolcengineRejectsPlaceholders(t *testing.T) {
	_, err := NewVolcengineTTS(VolcengineConfig{AppID: "your_app_id", AccessToken: "token"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestResourceCandidates(t *testing.T) {
	assert.Equal(t, []string{"volc.megatts.default"}, resourceCandidates("S_abc"))
	assert.Equal(t, []string{"seed-tts-2.0", "volc.service_type.10029"}, resourceCandidates("zh_female_vv_uranus_bigtts"))
	assert.Equal(t, []string{"volc.service_type.10029", "seed-tts-2.0"}, resourceCandidates("BV001_streaming"))
}
