package cache

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/Sternrassler/webapi-methods/pkg/logging"
	"github.com/Sternrassler/webapi-methods/pkg/pagination"
)

// Store is the storage a CachingCaller reads and writes. *Manager
// implements it.
type Store interface {
	Get(ctx context.Context, key CacheKey) (*CacheEntry, error)
	Set(ctx context.Context, key CacheKey, entry *CacheEntry) error
}

// Config holds caching caller configuration.
type Config struct {
	// TTL is how long a cached page stays valid.
	TTL time.Duration

	// Operations limits caching to the listed operations. Empty caches all.
	Operations []string
}

// DefaultConfig returns a default caching configuration.
func DefaultConfig() Config {
	return Config{
		TTL: 5 * time.Minute,
	}
}

// CachingCaller is a pagination.Caller that serves repeated calls from a
// Store and forwards misses to the wrapped caller.
//
// Cache failures never fail a call: a broken Store degrades to calling
// through. Failed calls and ok=false responses are not cached.
type CachingCaller struct {
	next   pagination.Caller
	store  Store
	config Config
	only   map[string]struct{}
	logger zerolog.Logger
}

// NewCachingCaller wraps next with a response cache.
func NewCachingCaller(next pagination.Caller, store Store, cfg Config) *CachingCaller {
	if next == nil {
		panic("caller cannot be nil")
	}
	if store == nil {
		panic("store cannot be nil")
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultConfig().TTL
	}

	return &CachingCaller{
		next:   next,
		store:  store,
		config: cfg,
		only:   lo.Keyify(cfg.Operations),
		logger: logging.NewLogger("cache"),
	}
}

// Call implements pagination.Caller.
func (c *CachingCaller) Call(ctx context.Context, operation string, args pagination.Args) (pagination.Response, error) {
	if !c.cached(operation) {
		return c.next.Call(ctx, operation, args)
	}

	key := CacheKey{Operation: operation, Args: args}

	entry, err := c.store.Get(ctx, key)
	switch {
	case err == nil:
		if resp, err := entry.Response(); err == nil {
			c.logger.Debug().
				Str("operation", operation).
				Str("key", key.String()).
				Dur("ttl", entry.TTL()).
				Bool("cache_hit", true).
				Msg("Serving page from cache")
			return resp, nil
		}
		CacheErrors.WithLabelValues("decode").Inc()
		c.logger.Warn().Str("operation", operation).Msg("Undecodable cache entry, calling through")
	case errors.Is(err, ErrCacheMiss):
		c.logger.Debug().Str("operation", operation).Bool("cache_hit", false).Msg("Cache miss")
	default:
		c.logger.Warn().Err(err).Str("operation", operation).Msg("Cache read failed, calling through")
	}

	resp, err := c.next.Call(ctx, operation, args)
	if err != nil || !succeeded(resp) {
		return resp, err
	}

	entry, err = NewEntry(operation, resp, c.config.TTL)
	if err == nil {
		err = c.store.Set(ctx, key, entry)
	}
	if err != nil {
		c.logger.Warn().Err(err).Str("operation", operation).Msg("Cache write failed")
	}
	return resp, nil
}

func (c *CachingCaller) cached(operation string) bool {
	if len(c.only) == 0 {
		return true
	}
	_, ok := c.only[operation]
	return ok
}

// succeeded reports whether resp is worth caching.
func succeeded(resp pagination.Response) bool {
	if resp == nil {
		return false
	}
	v, ok := resp["ok"]
	if !ok {
		return true
	}
	b, isBool := v.(bool)
	return isBool && b
}
