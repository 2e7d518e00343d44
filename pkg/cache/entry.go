package cache

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Sternrassler/webapi-methods/pkg/pagination"
)

// CacheEntry represents one cached page response.
type CacheEntry struct {
	// Operation the response belongs to
	Operation string `json:"operation"`

	// Data is the JSON-encoded response
	Data json.RawMessage `json:"data"`

	// Expires is when the cache entry becomes stale
	Expires time.Time `json:"expires"`

	// CachedAt is when we cached this response
	CachedAt time.Time `json:"cached_at"`
}

// NewEntry encodes resp into an entry valid for ttl.
func NewEntry(operation string, resp pagination.Response, ttl time.Duration) (*CacheEntry, error) {
	data, err := json.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("encode response: %w", err)
	}
	now := time.Now()
	return &CacheEntry{
		Operation: operation,
		Data:      data,
		Expires:   now.Add(ttl),
		CachedAt:  now,
	}, nil
}

// Response decodes the cached response. Numbers come back as float64, as
// from any JSON transport.
func (e *CacheEntry) Response() (pagination.Response, error) {
	var resp pagination.Response
	if err := json.Unmarshal(e.Data, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEntry, err)
	}
	if resp == nil {
		return nil, fmt.Errorf("%w: null response", ErrInvalidEntry)
	}
	return resp, nil
}

// IsExpired returns true if the cache entry has expired.
func (e *CacheEntry) IsExpired() bool {
	return time.Now().After(e.Expires)
}

// TTL returns the time until expiration.
// Returns 0 if already expired.
func (e *CacheEntry) TTL() time.Duration {
	ttl := time.Until(e.Expires)
	if ttl < 0 {
		return 0
	}
	return ttl
}
