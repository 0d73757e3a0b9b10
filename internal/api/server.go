package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/docdeck/internal/config"
	"github.com/dgallion1/docdeck/internal/metrics"
	"github.com/dgallion1/docdeck/internal/pipeline"
	"github.com/dgallion1/docdeck/internal/session"
	"github.com/dgallion1/docdeck/internal/stats"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for docdeck.
type Server struct {
	router   chi.Router
	builder  *pipeline.Builder
	sessions *session.Store
	metrics  *metrics.Metrics
	stats    *stats.Window
	log      *slog.Logger
	cfg      config.Config
}

// NewServer creates and configures the HTTP server. m may be nil.
func NewServer(builder *pipeline.Builder, sessions *session.Store, m *metrics.Metrics, st *stats.Window, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		builder:  builder,
		sessions: sessions,
		metrics:  m,
		stats:    st,
		log:      log,
		cfg:      cfg,
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
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	// Viewer endpoints. The page posts transitions from the browser, which
	// holds the deck ID but no API key.
	r.Get("/decks/{deckID}", s.handleDeckPage)
	r.Post("/api/decks/{deckID}/transition", s.handleTransition)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.DocdeckAPIKey, s.log))

		r.Post("/api/decks", s.handleCreateDeck)
		r.Post("/api/decks/batch", s.handleBatchCreate)
		r.Get("/api/decks/{deckID}", s.handleGetDeck)
		r.Get("/api/decks/{deckID}/slides", s.handleDeckSlides)
		r.Delete("/api/decks/{deckID}", s.handleDeleteDeck)
		r.Get("/api/stats/build", s.handleBuildStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
