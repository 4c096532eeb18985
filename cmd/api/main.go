package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nadavsuissa/AiTran/internal/api"
	"github.com/nadavsuissa/AiTran/internal/config"
	"github.com/nadavsuissa/AiTran/internal/lecture"
	"github.com/nadavsuissa/AiTran/internal/script"
	"github.com/nadavsuissa/AiTran/internal/tts"
	"github.com/nadavsuissa/AiTran/internal/upload"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	for _, dir := range []string{cfg.Storage.UploadDir, cfg.Storage.DownloadDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			slog.Error("failed to create directory", "dir", dir, "error", err)
			os.Exit(1)
		}
	}

	scripts, err := script.New(cfg.Script)
	if err != nil {
		slog.Error("failed to build script backend", "error", err)
		os.Exit(1)
	}

	store := upload.NewStore(cfg.Storage.UploadDir, cfg.Storage.MaxUploadBytes)
	synth := tts.NewOpenAITTS(cfg.TTS)
	svc := lecture.NewService(store, scripts, synth, cfg.Storage.DownloadDir)

	router := api.NewRouter(cfg, store, svc)
	handler := router.Setup()

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("starting API server", "addr", cfg.Addr(), "script_backend", scripts.Name())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
	}
	slog.Info("server stopped")
}
