package pagination

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Session outcomes used as the "outcome" label.
const (
	outcomeCompleted   = "completed"
	outcomeStopped     = "stopped"
	outcomeLimited     = "limited"
	outcomeUnsupported = "unsupported"
	outcomeInvalid     = "invalid_options"
	outcomeTransport   = "transport_error"
	outcomeMalformed   = "malformed"
	outcomeCancelled   = "cancelled"
)

// Prometheus metrics for pagination sessions.
var (
	sessionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "webapi_pagination_sessions_total",
		Help: "Total pagination sessions by operation, strategy and outcome",
	}, []string{"operation", "strategy", "outcome"})

	pagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "webapi_pagination_pages_total",
		Help: "Total pages produced by operation and strategy",
	}, []string{"operation", "strategy"})

	itemsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "webapi_pagination_items_total",
		Help: "Total items produced by operation",
	}, []string{"operation"})

	callDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "webapi_pagination_call_duration_seconds",
		Help:    "Duration of operation calls made by the paginator",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	}, []string{"operation"})

	sessionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "webapi_pagination_session_duration_seconds",
		Help:    "Duration of whole pagination sessions by operation",
		Buckets: []float64{0.1, 0.5, 1, 5, 15, 60, 300},
	}, []string{"operation"})
)
