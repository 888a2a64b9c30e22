package speech

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	chatService "github.com/zhouzirui/persona-voice/backend/internal/service/chat"
	"github.com/zhouzirui/persona-voice/backend/pkg/log"
	"github.com/zhouzirui/persona-voice/backend/pkg/utils"
)

// WebSocketHandler 为会话提供音频播放的 WebSocket 通道
type WebSocketHandler struct {
	sessions *chatService.Manager
	hubs     *Hubs
	upgrader websocket.Upgrader
}

// NewWebSocketHandler 创建WebSocket处理器
func NewWebSocketHandler(sessions *chatService.Manager, hubs *Hubs) *WebSocketHandler {
	return &WebSocketHandler{
		sessions: sessions,
		hubs:     hubs,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: chunkSize,
		},
	}
}

// RegisterRoutes 注册WebSocket路由
func (h *WebSocketHandler) RegisterRoutes(r chi.Router) {
	r.Get("/sessions/{id}/audio", h.handleAudio)
}

func (h *WebSocketHandler) handleAudio(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	session, err := h.sessions.Get(sessionID)
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, "session not found")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warnf("[audio] websocket upgrade failed: %v", err)
		return
	}
	h.hubs.For(sessionID).Attach(conn, session.StopSpeaking)
}
