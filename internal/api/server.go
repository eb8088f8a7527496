// Package api provides the HTTP server for the directory: the JSON API, the
// server-rendered directory pages, health and metrics.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/italianiuk/italianiuk-server/internal/metrics"
	"github.com/italianiuk/italianiuk-server/internal/ratelimit"
)

// Options configures the HTTP server.
type Options struct {
	// CORSOrigins lists origins allowed to call /api. Empty allows any origin.
	CORSOrigins []string
	// RateLimiter throttles /api per client IP. Nil disables throttling.
	RateLimiter *ratelimit.KeyedRateLimiter
	Version     string
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	services *Services
	metrics  *metrics.Metrics
	router   *chi.Mux
	api      huma.API
	pages    *pageRenderer
	limiter  *ratelimit.KeyedRateLimiter
	logger   *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(services *Services, m *metrics.Metrics, logger *slog.Logger, opts Options) (*Server, error) {
	pages, err := newPageRenderer()
	if err != nil {
		return nil, err
	}

	s := &Server{
		services: services,
		metrics:  m,
		router:   chi.NewRouter(),
		pages:    pages,
		limiter:  opts.RateLimiter,
		logger:   logger,
	}

	s.setupMiddleware(opts)

	version := opts.Version
	if version == "" {
		version = "dev"
	}
	humaConfig := huma.DefaultConfig("Italiani UK Directory API", version)
	humaConfig.Info.Description = "Italian restaurants, delis and shops across UK cities."
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)
	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()

	s.setupRoutes()

	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// API returns the huma API, mainly for tests.
func (s *Server) API() huma.API {
	return s.api
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware(opts Options) {
	s.router.Use(requestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(s.observe)

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Accept-Language", "Content-Type"},
		ExposedHeaders: []string{"Retry-After", middleware.RequestIDHeader},
		MaxAge:         300,
	})

	s.router.Use(func(next http.Handler) http.Handler {
		withCORS := corsHandler(next)
		if s.limiter != nil {
			withCORS = corsHandler(RateLimitMiddleware(s.limiter, s.metrics, s.logger)(next))
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isAPIPath(r.URL.Path) {
				withCORS.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	})
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.registerHealthRoutes()
	s.registerDirectoryRoutes()
	s.registerSearchRoutes()

	s.router.Handle("/metrics", s.metrics.Handler())

	s.registerPageRoutes()
	s.router.NotFound(s.handleNotFoundPage)
}
