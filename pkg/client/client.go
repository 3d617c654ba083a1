// Package client provides the resilient Scryfall HTTP client with retry,
// exponential backoff, and rate-limit-aware pausing.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/mtgcanvas/scryfetch/pkg/scryfall"
)

// Prometheus metrics for request execution.
var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scryfall_requests_total",
		Help: "Total Scryfall requests by endpoint and status",
	}, []string{"endpoint", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "scryfall_request_duration_seconds",
		Help:    "Scryfall request duration in seconds by endpoint",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
	}, []string{"endpoint"})

	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scryfall_errors_total",
		Help: "Total Scryfall errors by class",
	}, []string{"class"})
)

// ErrorClass represents a classification of request failures.
type ErrorClass string

const (
	// ErrorClassClient represents 4xx provider errors other than 429.
	ErrorClassClient ErrorClass = "client"

	// ErrorClassServer represents 5xx provider errors.
	ErrorClassServer ErrorClass = "server"

	// ErrorClassRateLimit represents HTTP 429 rate limiting.
	ErrorClassRateLimit ErrorClass = "rate_limit"

	// ErrorClassNetwork represents network/timeout errors.
	ErrorClassNetwork ErrorClass = "network"
)

// Config holds the client configuration.
type Config struct {
	// BaseURL is the API root. Request URLs that are not absolute are
	// resolved against it.
	BaseURL string

	// UserAgent is sent with every request (required by the provider).
	UserAgent string

	// Timeout is the per-attempt request timeout.
	Timeout time.Duration

	// MaxAttempts is the total attempt budget for network failures,
	// including the first attempt. HTTP 429 responses never consume it.
	MaxAttempts int

	// BackoffBase is the exponent base of the backoff schedule: the n-th
	// consecutive failure waits BackoffBase^(n-1) backoff units before
	// the next attempt.
	BackoffBase float64

	// BackoffUnit scales the backoff schedule and Retry-After waits.
	// Defaults to one second; tests compress it.
	BackoffUnit time.Duration
}

// DefaultConfig returns a safe default configuration.
func DefaultConfig(userAgent string) Config {
	return Config{
		BaseURL:     scryfall.DefaultBaseURL,
		UserAgent:   userAgent,
		Timeout:     30 * time.Second,
		MaxAttempts: 5,
		BackoffBase: 2.0,
		BackoffUnit: time.Second,
	}
}

// Client executes requests against the Scryfall API. A single underlying
// http.Client is reused for the whole run so connections are pooled.
type Client struct {
	httpClient *http.Client
	config     Config
	logger     zerolog.Logger

	// sleep is overridable so tests do not wait out real backoff.
	sleep func(ctx context.Context, d time.Duration) error
}

// New creates a new Scryfall client.
func New(cfg Config, logger zerolog.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if cfg.UserAgent == "" {
		return nil, fmt.Errorf("user-agent is required")
	}
	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("timeout must be positive (got %v)", cfg.Timeout)
	}
	if cfg.MaxAttempts < 1 {
		return nil, fmt.Errorf("max_attempts must be >= 1 (got %d)", cfg.MaxAttempts)
	}
	if cfg.BackoffBase < 1 {
		return nil, fmt.Errorf("backoff_base must be >= 1 (got %g)", cfg.BackoffBase)
	}
	if cfg.BackoffUnit <= 0 {
		cfg.BackoffUnit = time.Second
	}

	return &Client{
		httpClient: &http.Client{},
		config:     cfg,
		logger:     logger,
		sleep:      sleepContext,
	}, nil
}

// Request is the specification of one logical request.
type Request struct {
	// Method is the HTTP method.
	Method string

	// URL is either an absolute URL (pagination cursors arrive as full
	// URLs) or a path resolved against Config.BaseURL.
	URL string

	// Body, when non-nil, is JSON-encoded as the request payload.
	Body any

	// Timeout overrides Config.Timeout for this request when positive.
	Timeout time.Duration
}

// Do executes one logical request and decodes the JSON response body into
// out (which may be nil). Network failures are retried with exponential
// backoff up to the attempt budget; 429 responses pause per Retry-After
// and retry indefinitely; other >=400 statuses return an *APIError.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	fullURL := c.resolveURL(req.URL)
	endpoint := endpointLabel(fullURL)

	var payload []byte
	if req.Body != nil {
		var err error
		payload, err = json.Marshal(req.Body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
	}

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = c.config.Timeout
	}

	start := time.Now()
	defer func() {
		requestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}()

	data, err := c.doWithRetry(ctx, req.Method, fullURL, payload, timeout, endpoint)
	if err != nil {
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response from %s: %w", endpoint, err)
	}
	return nil
}

// PostJSON executes a POST with a JSON body.
func (c *Client) PostJSON(ctx context.Context, url string, body, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPost, URL: url, Body: body}, out)
}

// GetJSON executes a GET.
func (c *Client) GetJSON(ctx context.Context, url string, out any) error {
	return c.Do(ctx, Request{Method: http.MethodGet, URL: url}, out)
}

// send performs a single HTTP attempt.
func (c *Client) send(ctx context.Context, method, url string, payload []byte) (*http.Response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("User-Agent", c.config.UserAgent)
	httpReq.Header.Set("Accept", "application/json")
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	return c.httpClient.Do(httpReq)
}

// resolveURL joins a path onto the base URL; absolute URLs pass through.
func (c *Client) resolveURL(u string) string {
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return u
	}
	return strings.TrimRight(c.config.BaseURL, "/") + u
}

// endpointLabel reduces a URL to its path for metric labels.
func endpointLabel(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Path == "" {
		return raw
	}
	return u.Path
}

// decodeErrorDetails extracts the provider's human-readable error detail
// from a response body, falling back to the first warning.
func decodeErrorDetails(body []byte) string {
	var e struct {
		Details  string   `json:"details"`
		Warnings []string `json:"warnings"`
	}
	if err := json.Unmarshal(body, &e); err != nil {
		return ""
	}
	if e.Details != "" {
		return e.Details
	}
	if len(e.Warnings) > 0 {
		return e.Warnings[0]
	}
	return ""
}

// sleepContext waits for d or until the context is cancelled.
func sleepContext(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", ErrContextCancelled, ctx.Err())
	case <-time.After(d):
		return nil
	}
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}
