package chat

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/persona-voice/backend/internal/model/language"
	"github.com/zhouzirui/persona-voice/backend/internal/model/persona"
	chatService "github.com/zhouzirui/persona-voice/backend/internal/service/chat"
	"github.com/zhouzirui/persona-voice/backend/internal/store"
	"github.com/zhouzirui/persona-voice/backend/pkg/log"
	"github.com/zhouzirui/persona-voice/backend/pkg/utils"
)

// Handler 会话相关的HTTP处理器
type Handler struct {
	sessions *chatService.Manager
	history  store.Store
}

// New 创建会话处理器。history 为 nil 时历史查询接口返回 404。
func New(sessions *chatService.Manager, history store.Store) *Handler {
	return &Handler{
		sessions: sessions,
		history:  history,
	}
}

// RegisterRoutes 注册会话相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/sessions", h.handleCreateSession)
	r.Get("/history/{sessionID}", h.handleGetHistory)

	r.Get("/sessions/{id}", h.handleGetSession)
	r.Delete("/sessions/{id}", h.handleDeleteSession)
	r.Post("/sessions/{id}/greet", h.handleGreet)

	r.Get("/sessions/{id}/messages", h.handleListMessages)
	r.Post("/sessions/{id}/messages", h.handleSendMessage)
	r.Delete("/sessions/{id}/messages", h.handleClearMessages)

	r.Put("/sessions/{id}/language", h.handleSetLanguage)
	r.Put("/sessions/{id}/mode", h.handleSetMode)
	r.Put("/sessions/{id}/preferences", h.handleSetPreferences)
	r.Post("/sessions/{id}/load", h.handleLoadSession)
	r.Post("/sessions/{id}/recording", h.handleRecording)
	r.Post("/sessions/{id}/speech/stop", h.handleStopSpeech)
}

type createSessionRequest struct {
	Mode         string `json:"mode"`
	Language     string `json:"language"`
	Gender       string `json:"gender"`
	Tone         string `json:"tone"`
	Age          string `json:"age"`
	Persist      bool   `json:"persist"`
	LearningMode bool   `json:"learningMode"`
}

// handleCreateSession 创建实时会话
func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var payload createSessionRequest
	if !utils.DecodeJSON(w, r, &payload) {
		return
	}

	session := h.sessions.Create(chatService.Config{
		Mode:     persona.ParseMode(payload.Mode),
		Language: language.Parse(payload.Language),
		Preferences: persona.Preferences{
			Tone:           payload.Tone,
			Age:            persona.ParseAge(payload.Age),
			Gender:         persona.ParseGender(payload.Gender),
			PersistHistory: payload.Persist,
		},
		LearningMode: payload.LearningMode,
	})
	log.Infof("[chat] session %s created mode=%s", session.ID(), payload.Mode)
	utils.RespondJSON(w, http.StatusCreated, session.Snapshot())
}

func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	utils.RespondJSON(w, http.StatusOK, session.Snapshot())
}

func (h *Handler) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Remove(chi.URLParam(r, "id")); err != nil {
		utils.RespondError(w, http.StatusNotFound, "session not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleGreet 追加并朗读问候语，已问候过时返回 204
func (h *Handler) handleGreet(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	msg, greeted := session.Greet(detached(r))
	if !greeted {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	utils.RespondJSON(w, http.StatusOK, msg)
}

func (h *Handler) handleListMessages(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	utils.RespondJSON(w, http.StatusOK, session.Messages())
}

// handleSendMessage 运行一轮完整对话。回复同时通过事件流推送。
func (h *Handler) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	var payload struct {
		Text string `json:"text"`
	}
	if !utils.DecodeJSON(w, r, &payload) {
		return
	}

	reply, err := session.SendMessage(detached(r), payload.Text)
	switch {
	case errors.Is(err, chatService.ErrEmptyMessage):
		utils.RespondError(w, http.StatusBadRequest, "text is required")
	case errors.Is(err, chatService.ErrBusy):
		utils.RespondError(w, http.StatusConflict, "a message is already being processed")
	case errors.Is(err, chatService.ErrClosed):
		utils.RespondError(w, http.StatusGone, "session closed")
	case errors.Is(err, chatService.ErrReset):
		utils.RespondError(w, http.StatusConflict, "conversation was reset before the reply finished")
	case err != nil:
		log.Errorf("[chat] send message failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to send message")
	default:
		utils.RespondJSON(w, http.StatusOK, reply)
	}
}

func (h *Handler) handleClearMessages(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	session.ClearChat(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleSetLanguage(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	var payload struct {
		Language string `json:"language"`
	}
	if !utils.DecodeJSON(w, r, &payload) {
		return
	}
	if payload.Language == "" {
		utils.RespondError(w, http.StatusBadRequest, "language is required")
		return
	}
	greeting := session.SetLanguage(detached(r), language.Language(payload.Language))
	utils.RespondJSON(w, http.StatusOK, greeting)
}

func (h *Handler) handleSetMode(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	var payload struct {
		Mode string `json:"mode"`
	}
	if !utils.DecodeJSON(w, r, &payload) {
		return
	}
	session.SetMode(persona.Mode(payload.Mode))
	utils.RespondJSON(w, http.StatusOK, session.Snapshot())
}

func (h *Handler) handleSetPreferences(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	var payload struct {
		Tone         *string `json:"tone"`
		Age          *string `json:"age"`
		Gender       *string `json:"gender"`
		Persist      *bool   `json:"persist"`
		LearningMode *bool   `json:"learningMode"`
	}
	if !utils.DecodeJSON(w, r, &payload) {
		return
	}

	// 只修改请求中出现的字段
	session.UpdatePreferences(func(prefs *persona.Preferences) {
		if payload.Tone != nil {
			prefs.Tone = *payload.Tone
		}
		if payload.Age != nil {
			prefs.Age = persona.ParseAge(*payload.Age)
		}
		if payload.Gender != nil {
			prefs.Gender = persona.ParseGender(*payload.Gender)
		}
		if payload.Persist != nil {
			prefs.PersistHistory = *payload.Persist
		}
	})
	if payload.LearningMode != nil {
		session.SetLearningMode(*payload.LearningMode)
	}
	utils.RespondJSON(w, http.StatusOK, session.Snapshot())
}

// handleLoadSession 从持久化存储中加载历史会话
func (h *Handler) handleLoadSession(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	var payload struct {
		SessionID string `json:"sessionId"`
	}
	if !utils.DecodeJSON(w, r, &payload) {
		return
	}
	if payload.SessionID == "" {
		utils.RespondError(w, http.StatusBadRequest, "sessionId is required")
		return
	}

	if err := session.LoadSessionByID(r.Context(), payload.SessionID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.RespondError(w, http.StatusNotFound, "stored session not found")
			return
		}
		log.Errorf("[chat] load session %s failed: %v", payload.SessionID, err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to load session")
		return
	}
	utils.RespondJSON(w, http.StatusOK, session.Snapshot())
}

func (h *Handler) handleRecording(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	var payload struct {
		Active bool `json:"active"`
	}
	if !utils.DecodeJSON(w, r, &payload) {
		return
	}
	if payload.Active {
		session.StartRecording()
	} else {
		session.StopRecording()
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleStopSpeech(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	session.StopSpeaking()
	w.WriteHeader(http.StatusNoContent)
}

// handleGetHistory 查询持久化的会话记录
func (h *Handler) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		utils.RespondError(w, http.StatusNotFound, "history is disabled")
		return
	}
	stored, err := h.history.GetSession(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.RespondError(w, http.StatusNotFound, "stored session not found")
			return
		}
		log.Errorf("[chat] get history failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to load history")
		return
	}
	utils.RespondJSON(w, http.StatusOK, stored)
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*chatService.Session, bool) {
	session, err := h.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, "session not found")
		return nil, false
	}
	return session, true
}

// detached 让一轮对话在客户端断开后仍能完成，避免只保存半轮消息。
func detached(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}
