package persona

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/persona-voice/backend/internal/model/language"
	"github.com/zhouzirui/persona-voice/backend/internal/model/persona"
	"github.com/zhouzirui/persona-voice/backend/internal/service/prompt"
	"github.com/zhouzirui/persona-voice/backend/pkg/utils"
)

// Handler persona服务的HTTP处理器
type Handler struct {
	personas persona.Store
}

// New 创建persona处理器
func New(personas persona.Store) *Handler {
	return &Handler{
		personas: personas,
	}
}

// RegisterRoutes 注册persona相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/personas", h.handleListPersonas)
}

type personaView struct {
	persona.Persona
	Greeting string            `json:"greeting"`
	Language language.Language `json:"language"`
}

// handleListPersonas 列出所有persona，附带目标语言的问候语
func (h *Handler) handleListPersonas(w http.ResponseWriter, r *http.Request) {
	lang := language.Parse(r.URL.Query().Get("language"))
	age := persona.ParseAge(r.URL.Query().Get("age"))

	items := h.personas.List()
	views := make([]personaView, 0, len(items))
	for _, p := range items {
		views = append(views, personaView{
			Persona:  p,
			Greeting: prompt.Greeting(p.Mode, lang, age),
			Language: lang,
		})
	}
	utils.RespondJSON(w, http.StatusOK, views)
}
