// Package handlers provides HTTP handlers for the titlex API.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/titlex/engine/internal/extraction"
	"github.com/titlex/engine/internal/observability"
	"github.com/titlex/engine/internal/patterns"
	"github.com/titlex/engine/internal/pipeline"
)

// ExtractionHandler serves single-title and batch extraction requests
// against the shared, hot-reloadable pattern library.
type ExtractionHandler struct {
	logger *observability.Logger
	loader *patterns.Loader
	cfg    extraction.Config
	pool   *pipeline.Pool
}

// NewExtractionHandler creates an extraction handler bound to loader for
// its pattern library and pool for concurrent batch requests.
func NewExtractionHandler(logger *observability.Logger, loader *patterns.Loader, cfg extraction.Config, pool *pipeline.Pool) *ExtractionHandler {
	return &ExtractionHandler{logger: logger, loader: loader, cfg: cfg, pool: pool}
}

// extractRequest is the request body for POST /v1/extract.
type extractRequest struct {
	Title string `json:"title"`
}

// batchRequest is the request body for POST /v1/batch.
type batchRequest struct {
	Titles []string `json:"titles"`
}

// Extract handles POST /v1/extract.
func (h *ExtractionHandler) Extract(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	result := extraction.Extract(req.Title, h.loader.Current(), h.cfg)
	writeJSON(w, http.StatusOK, result)
}

// Batch handles POST /v1/batch.
func (h *ExtractionHandler) Batch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Titles) == 0 {
		writeError(w, http.StatusBadRequest, "titles must be a non-empty array")
		return
	}

	batchID := uuid.New().String()
	batchLogger := h.logger.WithBatch(batchID)
	batchLogger.Info().Int("count", len(req.Titles)).Msg("batch extraction started")

	results, err := h.pool.Run(r.Context(), req.Titles, h.loader.Current(), h.cfg)
	if err != nil {
		batchLogger.Warn().Err(err).Msg("batch extraction timed out, returning partial results")
	} else {
		batchLogger.Info().Msg("batch extraction complete")
	}
	writeJSON(w, http.StatusOK, results)
}

// ReloadPatterns handles POST /v1/patterns/reload.
func (h *ExtractionHandler) ReloadPatterns(w http.ResponseWriter, r *http.Request) {
	if err := h.loader.Reload(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reloaded"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
