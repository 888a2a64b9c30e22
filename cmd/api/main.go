package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/zhouzirui/persona-voice/backend/internal/app"
	"github.com/zhouzirui/persona-voice/backend/internal/config"
	"github.com/zhouzirui/persona-voice/backend/internal/handler"
	"github.com/zhouzirui/persona-voice/backend/internal/handler/speech"
	"github.com/zhouzirui/persona-voice/backend/internal/model/persona"
	"github.com/zhouzirui/persona-voice/backend/internal/service/chat"
	"github.com/zhouzirui/persona-voice/backend/internal/service/voice"
	"github.com/zhouzirui/persona-voice/backend/pkg/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.Dir); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	if envErr != nil {
		log.Infof("[config] no .env file loaded, using system environment variables only")
	}

	responder := app.NewResponder(ctx, cfg.LLM)
	voices := app.NewVoices(cfg.TTS, cfg.Local)
	if voices.Primary == nil && voices.Local == nil {
		log.Warnf("[voice] no speech engine available, replies are text only")
	}

	history, closeStore, err := app.NewStore(ctx, cfg.Store)
	if err != nil {
		log.Fatalf("failed to open %s store: %v", cfg.Store.Backend, err)
	}
	defer closeStore()
	log.Infof("[store] using %s backend", cfg.Store.Backend)

	hubs := speech.NewHubs()
	sessions := chat.NewManager(func(id string, sessionCfg chat.Config) *chat.Session {
		synth := voice.NewSynthesizer(hubs.For(id), voices.Options()...)
		return chat.NewSession(responder, sessionCfg,
			chat.WithID(id),
			chat.WithSpeaker(synth),
			chat.WithStore(history),
			chat.WithPersistTimeout(cfg.Store.PersistTimeout),
			chat.WithOnClose(func() { hubs.Remove(id) }),
		)
	})
	// 关闭顺序：先停止 HTTP，再等待会话写完历史，最后关闭存储连接
	defer sessions.Close()

	router := handler.NewRouter(handler.Deps{
		Personas:    persona.NewMemoryStore(persona.Seed()),
		Sessions:    sessions,
		Hubs:        hubs,
		History:     history,
		CORSOrigins: cfg.Server.CORSOrigins,
		Heartbeat:   cfg.Server.SSEHeartbeat,
	})

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr()
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Infof("[server] persona voice backend listening on %s", addr)
	if err := runServer(ctx, srv, serverCfg.ShutdownTimeout); err != nil {
		log.Errorf("[server] server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Infof("[server] shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
