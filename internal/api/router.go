// Package api provides the HTTP API for MoveWise.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/movewise/movewise/internal/analysis"
	"github.com/movewise/movewise/internal/api/handler"
	"github.com/movewise/movewise/internal/api/middleware"
	"github.com/movewise/movewise/internal/auth"
	"github.com/movewise/movewise/internal/profile"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version         string
	BuildTime       string
	Logger          zerolog.Logger
	ServiceName     string
	Metrics         *middleware.Metrics
	AuthService     *auth.Service
	AnalysisService *analysis.Service
	ProfileService  *profile.Service

	// DB is pinged by the readiness endpoint. May be nil.
	DB handler.Pinger
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Set default service name if not provided
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "movewise-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	r.Use(middleware.SecurityHeaders)      // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS)           // TLS enforcement (enabled via REQUIRE_TLS=true)
	r.Use(middleware.ContentTypeJSON)      // JSON content type

	// Initialize handlers
	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.DB)
	analysisHandler := handler.NewAnalysisHandler(cfg.AnalysisService)
	profileHandler := handler.NewProfileHandler(cfg.ProfileService)

	// Create auth middleware
	authMiddleware := middleware.Auth(cfg.AuthService)

	// Create rate limit middleware for different endpoint categories
	expensiveRateLimit := middleware.RateLimitByUser(middleware.ExpensiveRateLimit) // 30 req/min
	standardRateLimit := middleware.RateLimitByUser(middleware.StandardRateLimit)   // 100 req/min

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			// Status endpoint requires authentication
			r.With(authMiddleware).Get("/status", opsHandler.SystemStatus)
		})

		// Analyses (authenticated)
		r.Route("/analyses", func(r chi.Router) {
			r.Use(authMiddleware)

			// Creating an analysis fans out to every upstream provider,
			// so it gets the strict tier.
			r.With(expensiveRateLimit).Post("/", analysisHandler.CreateAnalysis)

			r.With(standardRateLimit).Get("/", analysisHandler.ListAnalyses)
			r.Route("/{analysisId}", func(r chi.Router) {
				r.Use(standardRateLimit)
				r.Get("/", analysisHandler.GetAnalysis)
				r.Delete("/", analysisHandler.DeleteAnalysis)
			})
		})

		// Me endpoints (authenticated)
		r.Route("/me", func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(standardRateLimit)
			r.Get("/profile", profileHandler.GetProfile)
			r.Put("/profile", profileHandler.UpsertProfile)
		})
	})

	return r
}
