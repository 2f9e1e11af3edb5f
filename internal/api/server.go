package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/paperforge/paperfmt/internal/config"
	"github.com/paperforge/paperfmt/internal/jobs"
	"github.com/paperforge/paperfmt/internal/oracle"
	"github.com/paperforge/paperfmt/internal/preview"
	"github.com/paperforge/paperfmt/internal/structure"
)

// Server is the local HTTP API the GUI shell talks to.
type Server struct {
	router     chi.Router
	runner     *jobs.Runner
	classifier *structure.Classifier
	oracle     *oracle.Client // nil when model assistance is disabled
	converter  *preview.Converter
	log        *slog.Logger
	cfg        config.Config
}

// NewServer creates and configures the HTTP server. The oracle client
// may be nil.
func NewServer(runner *jobs.Runner, classifier *structure.Classifier, oc *oracle.Client, conv *preview.Converter, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		runner:     runner,
		classifier: classifier,
		oracle:     oc,
		converter:  conv,
		log:        log,
		cfg:        cfg,
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

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Post("/api/format", s.handleFormat)
		r.Get("/api/format/{jobID}/status", s.handleFormatStatus)
		r.Get("/api/format/{jobID}/result", s.handleFormatResult)
		r.Get("/api/format/{jobID}/report", s.handleFormatReport)

		r.Post("/api/classify", s.handleClassify)
		r.Post("/api/validate", s.handleValidate)
		r.Post("/api/preview", s.handlePreview)

		r.Get("/api/stats/oracle", s.handleOracleStats)
		r.Get("/api/stats/stages", s.handleStageStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
