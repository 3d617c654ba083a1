package client

import (
	"context"
	"io"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for retry behavior.
var (
	retriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scryfall_retries_total",
		Help: "Total number of retry attempts by error class",
	}, []string{"error_class"})

	retryBackoffSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "scryfall_retry_backoff_seconds",
		Help:    "Backoff duration before network-failure retries",
		Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60},
	})

	retryExhaustedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scryfall_retry_exhausted_total",
		Help: "Total number of times the network retry budget was exhausted",
	})

	rateLimitWaitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scryfall_rate_limit_waits_total",
		Help: "Total number of pauses caused by HTTP 429 responses",
	})
)

// doWithRetry drives one logical request to a terminal outcome. The loop
// is a small state machine: a network failure moves through a backoff
// wait and back to attempting until the budget is spent; a 429 moves
// through a rate-limit wait and back to attempting without touching the
// budget; any other response is terminal.
func (c *Client) doWithRetry(ctx context.Context, method, url string, payload []byte, timeout time.Duration, endpoint string) ([]byte, error) {
	failures := 0

	for {
		attemptCtx, cancel := context.WithTimeout(ctx, timeout)
		resp, err := c.send(attemptCtx, method, url, payload)

		var body []byte
		if err == nil {
			body, err = io.ReadAll(resp.Body)
			resp.Body.Close()
		}
		cancel()

		if err != nil {
			failures++
			errorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
			requestsTotal.WithLabelValues(endpoint, "network_error").Inc()

			if failures >= c.config.MaxAttempts {
				retryExhaustedTotal.Inc()
				c.logger.Error().
					Err(err).
					Str("endpoint", endpoint).
					Int("attempts", failures).
					Msg("Network retry budget exhausted")
				return nil, &TransportError{Attempts: failures, Err: err}
			}

			backoff := c.backoff(failures - 1)
			retriesTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
			retryBackoffSeconds.Observe(backoff.Seconds())
			c.logger.Warn().
				Err(err).
				Str("endpoint", endpoint).
				Int("attempt", failures).
				Dur("backoff", backoff).
				Msg("Network failure, retrying after backoff")

			if serr := c.sleep(ctx, backoff); serr != nil {
				return nil, serr
			}
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			wait := c.retryAfter(resp.Header)
			errorsTotal.WithLabelValues(string(ErrorClassRateLimit)).Inc()
			requestsTotal.WithLabelValues(endpoint, "429").Inc()
			rateLimitWaitsTotal.Inc()
			retriesTotal.WithLabelValues(string(ErrorClassRateLimit)).Inc()
			c.logger.Warn().
				Str("endpoint", endpoint).
				Dur("wait", wait).
				Msg("Rate limited, pausing before retry")

			if serr := c.sleep(ctx, wait); serr != nil {
				return nil, serr
			}
			continue
		}

		if resp.StatusCode >= 400 {
			class := classifyStatus(resp.StatusCode)
			errorsTotal.WithLabelValues(string(class)).Inc()
			requestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

			apiErr := &APIError{
				StatusCode: resp.StatusCode,
				Class:      class,
				Details:    decodeErrorDetails(body),
			}
			c.logger.Error().
				Str("endpoint", endpoint).
				Int("status", resp.StatusCode).
				Str("error_class", string(class)).
				Str("details", apiErr.Details).
				Msg("Provider error")
			return nil, apiErr
		}

		requestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()
		if failures > 0 {
			c.logger.Info().
				Str("endpoint", endpoint).
				Int("failures", failures).
				Msg("Request succeeded after retry")
		}
		return body, nil
	}
}

// backoff returns the wait before the retry following the n-th failure
// (n is zero-based): BackoffBase^n backoff units.
func (c *Client) backoff(n int) time.Duration {
	return time.Duration(math.Pow(c.config.BackoffBase, float64(n)) * float64(c.config.BackoffUnit))
}

// retryAfter reads the Retry-After header in whole seconds, defaulting to
// and never below one second.
func (c *Client) retryAfter(h http.Header) time.Duration {
	secs := 1
	if v := h.Get("Retry-After"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 1 {
			secs = parsed
		}
	}
	return time.Duration(secs) * c.config.BackoffUnit
}
