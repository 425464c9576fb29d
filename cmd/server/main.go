package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lottie-viewer/internal/bridge"
	"lottie-viewer/internal/llm"
	"lottie-viewer/internal/platform/config"
	"lottie-viewer/internal/platform/logger"
	"lottie-viewer/internal/platform/metrics"
	"lottie-viewer/internal/viewer"

	"github.com/go-chi/chi/v5"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = config.Load()

	port := config.GetEnv("PORT", "8080")
	logLevel := config.GetEnv("LOG_LEVEL", "info")
	logFormat := config.GetEnv("LOG_FORMAT", "json")
	geminiKey := config.GetEnv("GEMINI_API_KEY", "")
	geminiModel := config.GetEnv("GEMINI_MODEL", "gemini-2.5-flash-lite")
	defaultSpeed := config.GetEnvFloat("DEFAULT_SPEED", 1.0)

	log := logger.New(logLevel, logFormat)

	if geminiKey == "" {
		log.Warn("GEMINI_API_KEY not set, analysis requests will fail")
	}

	vp := bridge.New(log)
	gen := llm.NewGemini(geminiKey, log)
	met := metrics.New()

	defaults := viewer.DefaultSettings()
	defaults.Speed = defaultSpeed

	svc := viewer.NewService(vp, gen, geminiModel, defaults, log, met)
	h := viewer.NewHandler(svc, log)

	r := chi.NewRouter()
	r.Use(logger.RequestLogger(log))
	r.Use(metrics.RequestMiddleware(met))
	r.Get("/metrics", func(w http.ResponseWriter, req *http.Request) {
		met.Handler(func() {
			met.SetActiveSessions(svc.ActiveSessionCount())
			met.SetViewportConnected(vp.Connected())
		}).ServeHTTP(w, req)
	})
	r.Get("/viewport/ws", vp.HandleWS)
	h.Register(r)

	addr := ":" + port
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	log.Info("server starting",
		"port", port,
		"gemini_model", geminiModel,
		"log_level", logLevel,
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Info("shutdown signal received, draining connections")

	svc.Teardown()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
