// Package main provides the API router setup.
package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/titlex/engine/cmd/titlex-api/handlers"
	"github.com/titlex/engine/cmd/titlex-api/middleware"
	"github.com/titlex/engine/internal/config"
	"github.com/titlex/engine/internal/extraction"
	"github.com/titlex/engine/internal/observability"
	"github.com/titlex/engine/internal/patterns"
	"github.com/titlex/engine/internal/pipeline"
)

// NewRouter creates the main API router with every route configured.
func NewRouter(logger *observability.Logger, cfg *config.Config, loader *patterns.Loader) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS([]string{"*"}))
	r.Use(chimiddleware.Timeout(cfg.Server.ReadTimeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy","service":"titlex-api"}`))
	})

	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if loader.Current() == nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"not_ready"}`))
			return
		}
		w.Write([]byte(`{"status":"ready"}`))
	})

	extractionCfg := extraction.ConfigFromSettings(
		cfg.Extraction.YearMin, cfg.Extraction.YearMax,
		cfg.Extraction.PreserveOriginalCasing, cfg.Extraction.AllowWordSeparators,
		cfg.Extraction.ASCIIOnlySlug, cfg.Extraction.AcronymPolicy,
	)
	pool := pipeline.NewPool(cfg.Worker.PoolSize, cfg.Worker.Timeout)
	extractionHandler := handlers.NewExtractionHandler(logger, loader, extractionCfg, pool)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/extract", extractionHandler.Extract)
		r.Post("/batch", extractionHandler.Batch)
		r.Post("/patterns/reload", extractionHandler.ReloadPatterns)
	})

	return r
}
