package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/schedtools/slurmspec/internal/config"
	"github.com/schedtools/slurmspec/internal/fetch"
)

// Server exposes spec generation over HTTP.
type Server struct {
	router  chi.Router
	fetcher *fetch.Client
	log     *slog.Logger
	cfg     config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(fetcher *fetch.Client, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		fetcher: fetcher,
		log:     log,
		cfg:     cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		// Auth is optional; without a configured key the endpoints are
		// open.
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey))
		}

		r.Post("/api/spec", s.handleGenerate)
		r.Get("/api/spec", s.handleGenerateFromURL)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
