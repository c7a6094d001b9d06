// Package telemetry is the read-only client for the tank telemetry API.
package telemetry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aquaflow/aquaflow/internal/config"
	"github.com/aquaflow/aquaflow/internal/errors"
)

// API endpoints, relative to the base URL.
const (
	PathCurrentData = "/api/current-data"
	PathStats       = "/api/stats"
	PathHistory     = "/api/history"
)

// Resource names used in logs and metrics.
const (
	ResourceCurrentData = "current-data"
	ResourceStats       = "stats"
	ResourceHistory     = "history"
)

// Client issues the three dashboard reads. Each call is independent; callers
// may run them concurrently and overlap calls from successive cycles.
type Client struct {
	baseURL    string
	httpClient *http.Client
	metrics    *Metrics
}

// Option customises client instantiation.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// WithMetrics records every fetch on m.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// New constructs a Client pointing at the provided API base URL.
// The default HTTP client has no timeout: a hung request only delays its own
// resource, and the caller's context bounds it.
func New(base string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(base)
	if trimmed == "" {
		trimmed = config.DefaultBaseURL
	}
	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		trimmed = "http://" + trimmed
	}
	if _, err := url.Parse(trimmed); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid API base URL: "+base,
			"Set api.base_url to something like http://localhost:5000")
	}
	c := &Client{
		baseURL:    strings.TrimRight(trimmed, "/"),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalised base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetCurrentReading fetches GET /api/current-data.
func (c *Client) GetCurrentReading(ctx context.Context) (CurrentReading, error) {
	var r CurrentReading
	err := c.get(ctx, ResourceCurrentData, PathCurrentData, &r)
	return r, err
}

// GetStats fetches GET /api/stats.
func (c *Client) GetStats(ctx context.Context) (Stats, error) {
	var s Stats
	err := c.get(ctx, ResourceStats, PathStats, &s)
	return s, err
}

// GetHistory fetches GET /api/history.
func (c *Client) GetHistory(ctx context.Context) (HistorySeries, error) {
	var h HistorySeries
	err := c.get(ctx, ResourceHistory, PathHistory, &h)
	return h, err
}

// get performs the request and decodes the JSON body into v.
// Transport failures and non-2xx statuses are ErrFetch; undecodable bodies are ErrParse.
func (c *Client) get(ctx context.Context, resource, path string, v any) error {
	if ctx == nil {
		ctx = context.Background()
	}
	start := time.Now()
	endpoint := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		c.metrics.observe(resource, OutcomeFetchError, time.Since(start))
		return errors.WrapWithCode(err, errors.ErrFetch,
			"Cannot build request for "+path, "")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.observe(resource, OutcomeFetchError, time.Since(start))
		return errors.WrapWithCode(err, errors.ErrFetch,
			"GET "+path+" failed",
			"Check that the telemetry API is running at "+c.baseURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		c.metrics.observe(resource, OutcomeFetchError, time.Since(start))
		return errors.New(errors.ErrFetch,
			fmt.Sprintf("GET %s returned status %d", path, resp.StatusCode),
			"Check the telemetry API logs")
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		c.metrics.observe(resource, OutcomeParseError, time.Since(start))
		return errors.WrapWithCode(err, errors.ErrParse,
			"Malformed response from "+path, "")
	}

	c.metrics.observe(resource, OutcomeOK, time.Since(start))
	return nil
}
