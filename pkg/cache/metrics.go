package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits tracks cache hits by operation
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webapi_cache_hits_total",
			Help: "Total number of response cache hits",
		},
		[]string{"operation"},
	)

	// CacheMisses tracks cache misses by operation
	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webapi_cache_misses_total",
			Help: "Total number of response cache misses",
		},
		[]string{"operation"},
	)

	// CacheSize tracks bytes written to the cache
	CacheSize = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "webapi_cache_size_bytes",
			Help: "Total bytes of responses written to the cache",
		},
	)

	// CacheErrors tracks cache operation errors
	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webapi_cache_errors_total",
			Help: "Total number of cache operation errors",
		},
		[]string{"operation"}, // "get", "set", "delete", "invalidate", "decode"
	)
)
