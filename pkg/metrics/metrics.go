// Package metrics provides the Prometheus registry and HTTP handler for the
// web API client. All metrics are defined in their respective packages
// (pagination, cache) to maintain modularity and avoid circular
// dependencies.
//
// This package provides documentation and reference for all available metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry is the default Prometheus registry used by the client.
// All metrics are automatically registered via promauto in their respective packages.
var Registry = prometheus.DefaultRegisterer

// Gatherer collects the metrics registered with Registry.
var Gatherer = prometheus.DefaultGatherer

// Handler serves all registered metrics in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Gatherer, promhttp.HandlerOpts{})
}

// Metrics Documentation
//
// Pagination Metrics (pkg/pagination):
//   - webapi_pagination_sessions_total{operation, strategy, outcome} (Counter): Sessions by outcome
//     (completed, stopped, limited, unsupported, invalid_options, transport_error, malformed, cancelled)
//   - webapi_pagination_pages_total{operation, strategy} (Counter): Pages fetched
//   - webapi_pagination_items_total{operation} (Counter): Items fetched
//   - webapi_pagination_call_duration_seconds{operation} (Histogram): Duration of each page call
//   - webapi_pagination_session_duration_seconds{operation} (Histogram): Duration of whole sessions
//
// Cache Metrics (pkg/cache):
//   - webapi_cache_hits_total{operation} (Counter): Cache hits
//   - webapi_cache_misses_total{operation} (Counter): Cache misses
//   - webapi_cache_size_bytes (Counter): Bytes written to the cache
//   - webapi_cache_errors_total{operation} (Counter): Cache operation errors
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   sum(rate(webapi_cache_hits_total[5m])) /
//   (sum(rate(webapi_cache_hits_total[5m])) + sum(rate(webapi_cache_misses_total[5m])))
//
//   # Sessions ending in errors
//   sum by (outcome) (rate(webapi_pagination_sessions_total{outcome=~"transport_error|malformed"}[5m]))
//
//   # Average pages per session
//   rate(webapi_pagination_pages_total[5m]) / ignoring(strategy) rate(webapi_pagination_sessions_total{outcome="completed"}[5m])
//
//   # P95 Call Latency
//   histogram_quantile(0.95, rate(webapi_pagination_call_duration_seconds_bucket[5m]))
