// Package cache provides a Redis-backed response cache for paginated web
// API calls.
//
// Every page of a pagination session is one call identified by its
// operation and arguments. The cache stores page responses under a
// deterministic key derived from both, so repeating a "fetch everything"
// session within the TTL is served without touching the API:
//
//   - Deterministic cache keys (argument order does not matter)
//   - TTL-bound entries, removed by Redis when they expire
//   - Only successful (ok) responses are cached
//   - Per-operation invalidation
//   - Prometheus metrics for observability
//
// # Basic Usage
//
//	// Create Redis client
//	redisClient := redis.NewClient(&redis.Options{
//		Addr: "localhost:6379",
//	})
//
//	// Wrap the API caller
//	caller := cache.NewCachingCaller(apiCaller, cache.NewManager(redisClient), cache.DefaultConfig())
//
//	// Paginate through the cache
//	p, err := pagination.New(methods.MustDefaultCatalog(), caller, pagination.DefaultConfig())
//
// # Direct Access
//
//	key := cache.CacheKey{
//		Operation: "conversations.list",
//		Args:      pagination.Args{"limit": 200},
//	}
//
//	entry, err := manager.Get(ctx, key)
//	if errors.Is(err, cache.ErrCacheMiss) {
//		// Cache miss - call the API
//	}
//
// # Metrics
//
// The cache exports Prometheus metrics:
//
//   - webapi_cache_hits_total{operation} - Cache hits
//   - webapi_cache_misses_total{operation} - Cache misses
//   - webapi_cache_size_bytes - Bytes written to the cache
//   - webapi_cache_errors_total{operation} - Cache operation errors
package cache
