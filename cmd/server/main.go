package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/AniruddhGohil/serp-checker/internal/config"
	"github.com/AniruddhGohil/serp-checker/internal/db"
	"github.com/AniruddhGohil/serp-checker/internal/email"
	"github.com/AniruddhGohil/serp-checker/internal/jobs"
	"github.com/AniruddhGohil/serp-checker/internal/logging"
	"github.com/AniruddhGohil/serp-checker/internal/metrics"
	"github.com/AniruddhGohil/serp-checker/internal/rank"
	"github.com/AniruddhGohil/serp-checker/internal/serp"
	"github.com/AniruddhGohil/serp-checker/internal/server"
)

func main() {
	cfg := config.Load()

	logCloser := logging.Setup(cfg)
	defer logCloser.Close()

	if err := run(cfg); err != nil {
		slog.Error("server exited with error", "error", err)
		logCloser.Close()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Optional check statistics database
	var database *db.DB
	if cfg.IsStatsEnabled() {
		var err error
		database, err = db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer database.Close()

		if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
			return err
		}
		slog.Info("migrations completed successfully")
	} else {
		slog.Info("check statistics disabled (DATABASE_URL not set)")
	}

	metrics.Init(database)

	if cfg.SerpAPIKey == "" {
		slog.Warn("SERPAPI_API_KEY is not set; rank checks will be refused")
	}

	notifier := email.NewNotifier(cfg)
	defer notifier.Wait()

	tracker := rank.NewTracker(serp.NewClient(cfg), notifier)

	// Scheduled tracking from the YAML file
	tracking, err := config.LoadYAMLConfig()
	if err != nil {
		return err
	}
	var scheduler *jobs.RankChecker
	if tracking.HasProjects() {
		scheduler = jobs.NewRankChecker(tracker, tracking)
		go scheduler.Start(ctx)
	}

	srv := server.New(cfg)
	if err := srv.RegisterRoutes(ctx, server.Deps{
		DB:        database,
		Tracker:   tracker,
		Scheduler: scheduler,
	}); err != nil {
		return err
	}

	// Graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
	case <-ctx.Done():
	}

	slog.Info("shutting down server...")
	if err := srv.Shutdown(); err != nil {
		return err
	}
	slog.Info("server exited")
	return nil
}
