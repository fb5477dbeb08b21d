// Package main provides the titlex HTTP API server entrypoint.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/titlex/engine/internal/config"
	"github.com/titlex/engine/internal/observability"
	"github.com/titlex/engine/internal/patterns"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if len(os.Args) > 2 && os.Args[1] == "--config" {
		cfgPath = os.Args[2]
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(observability.LogConfig{
		Level:       cfg.Observability.LogLevel,
		Format:      cfg.Observability.LogFormat,
		ServiceName: "titlex-api",
	})

	logger.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Str("pattern_store", cfg.PatternStore.Driver).
		Msg("starting titlex API")

	loaderCtx, loaderCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer loaderCancel()
	loader, err := buildLoader(loaderCtx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load initial pattern library")
	}

	reloadCtx, reloadCancel := context.WithCancel(context.Background())
	defer reloadCancel()
	loader.StartAutoReload(reloadCtx, 1*time.Minute)

	router := NewRouter(logger, cfg, loader)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Msg("HTTP server listening")
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Error().Err(err).Msg("server error")
	case sig := <-shutdown:
		logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulShutdown)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
		if err := srv.Close(); err != nil {
			logger.Error().Err(err).Msg("forced shutdown failed")
		}
	}

	logger.Info().Msg("server stopped")
}

// buildLoader opens the configured pattern store and cache backend and
// performs the initial pattern-library load.
func buildLoader(ctx context.Context, cfg *config.Config, logger *observability.Logger) (*patterns.Loader, error) {
	var source patterns.Source
	var err error
	switch cfg.PatternStore.Driver {
	case "yaml":
		source = patterns.YAMLSource{Path: cfg.PatternStore.YAMLPath}
	case "sqlite":
		source, err = patterns.OpenSQLite(cfg.PatternStore.SQLite.Path)
	case "postgres":
		source, err = patterns.OpenPostgresDSN(cfg.PatternStore.Postgres.DSN)
	default:
		return nil, fmt.Errorf("unknown pattern store driver: %s", cfg.PatternStore.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open pattern source: %w", err)
	}

	cacheClient, err := buildCache(cfg)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}

	return patterns.NewLoader(ctx, source, cacheClient, logger)
}
