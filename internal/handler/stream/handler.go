package stream

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	chatService "github.com/zhouzirui/persona-voice/backend/internal/service/chat"
	"github.com/zhouzirui/persona-voice/backend/pkg/log"
	"github.com/zhouzirui/persona-voice/backend/pkg/utils"
)

const defaultHeartbeat = 15 * time.Second

// Handler 通过 Server-Sent Events 推送会话活动事件
type Handler struct {
	sessions  *chatService.Manager
	heartbeat time.Duration
}

// New creates a new stream handler. heartbeat <= 0 uses the default interval.
func New(sessions *chatService.Manager, heartbeat time.Duration) *Handler {
	if heartbeat <= 0 {
		heartbeat = defaultHeartbeat
	}
	return &Handler{sessions: sessions, heartbeat: heartbeat}
}

// RegisterRoutes 注册事件流路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/sessions/{id}/events", h.handleEvents)
}

// statusEvent 是连接建立后推送的第一条事件
type statusEvent struct {
	SessionID string               `json:"sessionId"`
	Snapshot  chatService.Snapshot `json:"snapshot"`
}

func (h *Handler) handleEvents(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	session, err := h.sessions.Get(sessionID)
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, "session not found")
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	events, unsubscribe := session.Subscribe()
	defer unsubscribe()

	utils.SetupSSEHeaders(w)
	w.WriteHeader(http.StatusOK)
	if err := utils.SendSSEEvent(w, flusher, "status", statusEvent{SessionID: sessionID, Snapshot: session.Snapshot()}); err != nil {
		return
	}
	log.Debugf("[sse] stream opened for session=%s", sessionID)

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			log.Debugf("[sse] stream closed for session=%s", sessionID)
			return
		case e, ok := <-events:
			if !ok {
				// 会话已关闭
				_ = utils.SendSSEEvent(w, flusher, "closed", map[string]string{"sessionId": sessionID})
				return
			}
			if err := utils.SendSSEEvent(w, flusher, string(e.Kind), e); err != nil {
				log.Debugf("[sse] write failed for session=%s: %v", sessionID, err)
				return
			}
		case <-ticker.C:
			if err := utils.SendSSEComment(w, flusher, "heartbeat"); err != nil {
				return
			}
		}
	}
}
