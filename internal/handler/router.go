package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/zhouzirui/persona-voice/backend/internal/handler/chat"
	"github.com/zhouzirui/persona-voice/backend/internal/handler/persona"
	"github.com/zhouzirui/persona-voice/backend/internal/handler/speech"
	"github.com/zhouzirui/persona-voice/backend/internal/handler/stream"
	middlewarePkg "github.com/zhouzirui/persona-voice/backend/internal/middleware"
	personaModel "github.com/zhouzirui/persona-voice/backend/internal/model/persona"
	chatService "github.com/zhouzirui/persona-voice/backend/internal/service/chat"
	"github.com/zhouzirui/persona-voice/backend/internal/store"
	"github.com/zhouzirui/persona-voice/backend/pkg/utils"
)

// Deps 汇总路由需要的服务
type Deps struct {
	Personas    personaModel.Store
	Sessions    *chatService.Manager
	Hubs        *speech.Hubs
	History     store.Store
	CORSOrigins []string
	Heartbeat   time.Duration
}

// NewRouter wires HTTP routes to core services.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewarePkg.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS(deps.CORSOrigins))

	hubs := deps.Hubs
	if hubs == nil {
		hubs = speech.NewHubs()
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]any{
			"status":   "ok",
			"sessions": deps.Sessions.Len(),
		})
	})

	r.Route("/api", func(api chi.Router) {
		persona.New(deps.Personas).RegisterRoutes(api)
		chat.New(deps.Sessions, deps.History).RegisterRoutes(api)
		stream.New(deps.Sessions, deps.Heartbeat).RegisterRoutes(api)
		speech.NewWebSocketHandler(deps.Sessions, hubs).RegisterRoutes(api)
	})

	return r
}
