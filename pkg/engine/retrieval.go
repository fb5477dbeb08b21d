// Package engine provides the public Go SDK for the titlex extraction
// engine: a thin HTTP client over titlex-api's /v1 routes.
package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client is the public SDK client for the titlex extraction engine.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// ClientConfig holds client configuration.
type ClientConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// NewClient creates a new titlex engine client.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8085"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// ExtractRequest is the request body for a single-title extraction.
type ExtractRequest struct {
	Title string `json:"title"`
}

// ExtractResult mirrors extraction.Result's wire shape, kept independent
// of the internal package so SDK consumers don't import internal/.
type ExtractResult struct {
	OriginalTitle        string   `json:"original_title"`
	MarketTermType       string   `json:"market_term_type"`
	ExtractedDateRange   string   `json:"extracted_date_range,omitempty"`
	DateStatus           string   `json:"date_status"`
	ExtractedReportType  string   `json:"extracted_report_type,omitempty"`
	ExtractedRegions     []string `json:"extracted_regions"`
	Topic                string   `json:"topic"`
	TopicName            string   `json:"topic_name"`
	Confidence           float64  `json:"confidence"`
	Notes                string   `json:"notes,omitempty"`
}

// Extract calls POST /v1/extract for a single title.
func (c *Client) Extract(ctx context.Context, title string) (*ExtractResult, error) {
	var result ExtractResult
	if err := c.post(ctx, "/v1/extract", ExtractRequest{Title: title}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// BatchRequest is the request body for POST /v1/batch.
type BatchRequest struct {
	Titles []string `json:"titles"`
}

// Batch calls POST /v1/batch for a slice of titles, returned in input order.
func (c *Client) Batch(ctx context.Context, titles []string) ([]*ExtractResult, error) {
	var results []*ExtractResult
	if err := c.post(ctx, "/v1/batch", BatchRequest{Titles: titles}, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// ReloadPatterns calls POST /v1/patterns/reload.
func (c *Client) ReloadPatterns(ctx context.Context) error {
	return c.post(ctx, "/v1/patterns/reload", struct{}{}, &struct{}{})
}

// HealthResponse represents a health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// Health checks service health via GET /health.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return nil, fmt.Errorf("build health request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("health request: %w", err)
	}
	defer resp.Body.Close()

	var health HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return nil, fmt.Errorf("decode health response: %w", err)
	}
	return &health, nil
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return fmt.Errorf("%s: status %d: %s", path, resp.StatusCode, apiErr.Error)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
