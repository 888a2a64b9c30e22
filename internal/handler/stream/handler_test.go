package stream

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/persona-voice/backend/internal/model/persona"
	"github.com/zhouzirui/persona-voice/backend/internal/service/ai"
	chatService "github.com/zhouzirui/persona-voice/backend/internal/service/chat"
)

type sseEvent struct {
	name string
	data string
}

// readEvent 读取下一条 SSE 事件，跳过心跳注释。
func readEvent(t *testing.T, r *bufio.Reader) sseEvent {
	t.Helper()
	var ev sseEvent
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\n")
		switch {
		case strings.HasPrefix(line, "event: "):
			ev.name = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			ev.data = strings.TrimPrefix(line, "data: ")
		case line == "" && ev.name != "":
			return ev
		}
	}
}

func TestEventsStream(t *testing.T) {
	sessions := chatService.NewManager(func(id string, cfg chatService.Config) *chatService.Session {
		return chatService.NewSession(ai.NewService(nil), cfg, chatService.WithID(id))
	})
	defer sessions.Close()
	session := sessions.Create(chatService.Config{Mode: persona.Friend})

	r := chi.NewRouter()
	New(sessions, 20*time.Millisecond).RegisterRoutes(r)
	srv := httptest.NewServer(r)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/sessions/"+session.ID()+"/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	status := readEvent(t, reader)
	assert.Equal(t, "status", status.name)
	assert.Contains(t, status.data, session.ID())

	session.StartRecording()
	ev := readEvent(t, reader)
	assert.Equal(t, "recording", ev.name)
	var payload chatService.Event
	require.NoError(t, json.Unmarshal([]byte(ev.data), &payload))
	assert.Equal(t, chatService.EventRecording, payload.Kind)
	assert.True(t, payload.Active)

	session.Notify("microphone unavailable")
	ev = readEvent(t, reader)
	assert.Equal(t, "notice", ev.name)
	assert.Contains(t, ev.data, "microphone unavailable")

	require.NoError(t, sessions.Remove(session.ID()))
	assert.Equal(t, "closed", readEvent(t, reader).name)
}

func TestEventsUnknownSession(t *testing.T) {
	sessions := chatService.NewManager(nil)
	r := chi.NewRouter()
	New(sessions, 0).RegisterRoutes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sessions/missing/events", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
