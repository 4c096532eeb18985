package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/nadavsuissa/AiTran/internal/api/handlers"
	"github.com/nadavsuissa/AiTran/internal/api/middleware"
	"github.com/nadavsuissa/AiTran/internal/config"
	"github.com/nadavsuissa/AiTran/internal/lecture"
	"github.com/nadavsuissa/AiTran/internal/upload"
)

type Router struct {
	mux   *chi.Mux
	cfg   *config.Config
	store *upload.Store
	svc   *lecture.Service
}

func NewRouter(cfg *config.Config, store *upload.Store, svc *lecture.Service) *Router {
	return &Router{
		mux:   chi.NewRouter(),
		cfg:   cfg,
		store: store,
		svc:   svc,
	}
}

func (rt *Router) Setup() http.Handler {
	r := rt.mux

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS([]string{"*"}))

	rl := middleware.NewRateLimiter(2, 5)

	// Health endpoints
	health := handlers.NewHealthHandler(rt.cfg.Storage.DownloadDir)
	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)

	lectureH := handlers.NewLectureHandler(rt.store, rt.svc, rt.cfg.Storage.MaxUploadBytes)
	r.With(rl.Limit).Post("/api/process", lectureH.Process)

	// Persisted narration artifacts
	r.Handle("/downloads/*", http.StripPrefix("/downloads/",
		http.FileServer(http.Dir(rt.cfg.Storage.DownloadDir))))

	// Front-end
	r.Handle("/*", http.FileServer(http.Dir(rt.cfg.Storage.WebDir)))

	return r
}
