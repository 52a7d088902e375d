package server

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AniruddhGohil/serp-checker/internal/db"
	"github.com/AniruddhGohil/serp-checker/internal/handlers"
	"github.com/AniruddhGohil/serp-checker/internal/handlers/api"
	"github.com/AniruddhGohil/serp-checker/internal/jobs"
	"github.com/AniruddhGohil/serp-checker/internal/middleware"
	"github.com/AniruddhGohil/serp-checker/internal/rank"
)

// Deps are the services the routes are wired to.
type Deps struct {
	DB        *db.DB            // nil when check statistics are disabled
	Tracker   *rank.Tracker
	Scheduler *jobs.RankChecker // nil when no tracking file is loaded
}

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(ctx context.Context, deps Deps) error {
	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(s.Cfg)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(deps.DB)
	checkHandler := handlers.NewCheckHandler(deps.Tracker, s.Cfg)
	apiCheckHandler := api.NewCheckHandler(deps.Tracker, deps.Scheduler, s.Cfg)

	// Health checks and metrics are never behind login
	s.App.Get("/healthz", healthHandler.Liveness)
	s.App.Get("/readyz", healthHandler.Readiness)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Auth routes - only when OIDC is configured
	if s.Cfg.IsAuthEnabled() {
		authHandler, err := handlers.NewAuthHandler(ctx, s.Cfg)
		if err != nil {
			return err
		}

		s.App.Get("/login", authHandler.LoginPage)
		s.App.Get("/auth/login", authHandler.Login)
		s.App.Get("/auth/callback", authHandler.Callback)
		s.App.Get("/auth/logout", authHandler.Logout)
	} else {
		slog.Info("OIDC authentication is disabled. Set OIDC_ISSUER to enable.")
	}

	// Frontend routes
	s.App.Get("/", authMiddleware.RequireAuth, checkHandler.Index)
	s.App.Post("/check", authMiddleware.RequireAuth, checkHandler.Run)
	s.App.Post("/reset", authMiddleware.RequireAuth, checkHandler.Reset)

	// JSON API
	s.App.Post("/api/check", authMiddleware.RequireAuth, apiCheckHandler.Check)
	s.App.Get("/api/ranks", authMiddleware.RequireAuth, apiCheckHandler.Ranks)
	s.App.Get("/api/tracking/:domain", authMiddleware.RequireAuth, apiCheckHandler.Tracking)

	return nil
}
