// Package metrics documents the Prometheus metrics exported by the
// Scryfall client. All metrics are defined next to the code that drives
// them (pkg/client) and registered automatically via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the client.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Request Metrics (pkg/client):
//   - scryfall_requests_total{endpoint, status} (Counter): Requests by
//     endpoint path and HTTP status ("network_error" for failed attempts)
//   - scryfall_request_duration_seconds{endpoint} (Histogram): Wall time
//     of a logical request including all retries and pauses
//   - scryfall_errors_total{class} (Counter): Errors by class
//     (client, server, rate_limit, network)
//
// Retry Metrics (pkg/client):
//   - scryfall_retries_total{error_class} (Counter): Retry attempts
//   - scryfall_retry_backoff_seconds (Histogram): Backoff before
//     network-failure retries
//   - scryfall_retry_exhausted_total (Counter): Runs of attempts that
//     spent the whole network retry budget
//   - scryfall_rate_limit_waits_total (Counter): Pauses caused by 429
//
// Example Prometheus Queries:
//
//   # Request error rate
//   rate(scryfall_errors_total[5m])
//
//   # Share of requests hitting the rate limit
//   rate(scryfall_rate_limit_waits_total[5m]) /
//   rate(scryfall_requests_total[5m])
//
//   # P95 logical request latency
//   histogram_quantile(0.95, rate(scryfall_request_duration_seconds_bucket[5m]))
