// Package server provides the HTTP server and routing for the auto-savings API.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/ketulrudani/Self-saving-for-your-retirement/internal/database"
	"github.com/ketulrudani/Self-saving-for-your-retirement/internal/modules/journal"
	journalhandlers "github.com/ketulrudani/Self-saving-for-your-retirement/internal/modules/journal/handlers"
	"github.com/ketulrudani/Self-saving-for-your-retirement/internal/modules/returns"
	returnshandlers "github.com/ketulrudani/Self-saving-for-your-retirement/internal/modules/returns/handlers"
	savingshandlers "github.com/ketulrudani/Self-saving-for-your-retirement/internal/modules/savings/handlers"
)

// JournalStore is the read side of the journal exposed over HTTP
type JournalStore interface {
	journalhandlers.RunStore
	Stats(ctx context.Context) (*journal.Stats, error)
}

// Config holds server configuration
type Config struct {
	Log            zerolog.Logger
	Port           int
	DevMode        bool
	BasePath       string
	RequestTimeout time.Duration
	Engine         *returns.Engine
	Recorder       journal.Recorder
	Journal        JournalStore // nil when the journal is disabled
	JournalDB      *database.DB // nil when the journal is disabled
}

// Server represents the HTTP server
type Server struct {
	router         *chi.Mux
	server         *http.Server
	log            zerolog.Logger
	port           int
	basePath       string
	requestTimeout time.Duration
	engine         *returns.Engine
	recorder       journal.Recorder
	journal        JournalStore
	systemHandlers *SystemHandlers
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	engine := cfg.Engine
	if engine == nil {
		engine = returns.NewEngine(returns.DefaultConfig())
	}
	recorder := cfg.Recorder
	if recorder == nil {
		recorder = journal.NopRecorder{}
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	s := &Server{
		router:         chi.NewRouter(),
		log:            cfg.Log.With().Str("component", "server").Logger(),
		port:           cfg.Port,
		basePath:       cfg.BasePath,
		requestTimeout: timeout,
		engine:         engine,
		recorder:       recorder,
		journal:        cfg.Journal,
		systemHandlers: NewSystemHandlers(cfg.Log, cfg.Journal, cfg.JournalDB),
	}

	s.setupMiddleware(cfg.DevMode)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: timeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware(devMode bool) {
	// Recovery from panics
	s.router.Use(middleware.Recoverer)

	// Request ID
	s.router.Use(middleware.RequestID)

	// Real IP
	s.router.Use(middleware.RealIP)

	// Request start time, read back by /performance
	s.router.Use(requestStartMiddleware)

	// Logging
	s.router.Use(s.loggingMiddleware)

	// Timeout
	s.router.Use(middleware.Timeout(s.requestTimeout))

	// CORS
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"Link"},
		MaxAge:         300,
	}))

	// Compress responses
	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route(s.apiPrefix(), func(r chi.Router) {
		savingshandlers.NewHandler(s.recorder, s.log).RegisterRoutes(r)
		returnshandlers.NewHandler(s.engine, s.recorder, s.log).RegisterRoutes(r)

		r.Get("/performance", s.systemHandlers.HandlePerformance)
		r.Get("/system/stats", s.systemHandlers.HandleSystemStats)

		if s.journal != nil {
			journalhandlers.NewHandler(s.journal, s.log).RegisterRoutes(r)
		}
	})
}

func (s *Server) apiPrefix() string {
	if s.basePath == "" {
		return "/"
	}
	return s.basePath
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Int("port", s.port).Str("base_path", s.apiPrefix()).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}

type startTimeKey struct{}

func requestStartMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), startTimeKey{}, time.Now())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requestStart returns when the request entered the router
func requestStart(ctx context.Context) (time.Time, bool) {
	start, ok := ctx.Value(startTimeKey{}).(time.Time)
	return start, ok
}
