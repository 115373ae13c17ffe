package anilist

import (
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// DefaultCacheTTL is how long a fetched airing list stays servable.
const DefaultCacheTTL = 90 * time.Second

// Clock abstracts time for testing.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

type cacheKind string

const (
	kindGeneral cacheKind = "general"
	kindSearch  cacheKind = "search"
)

type cacheEntry struct {
	kind      cacheKind
	data      []AiringItem
	expiresAt time.Time
}

// responseCache memoizes airing query results by query shape.
//
// Entries are immutable once stored; set always writes a fresh entry. Expiry
// is lazy: an entry past its deadline is deleted the first time get observes
// it, there is no background sweep. The cache is unbounded. The key space is
// limited to two kinds times the distinct titles and page sizes queried, so
// a capacity bound has not been worth it. Concurrent misses for the same key
// are not deduplicated and may cause a duplicate fetch.
type responseCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	clock   Clock
	entries map[string]cacheEntry
}

func newResponseCache(ttl time.Duration, clock Clock) *responseCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if clock == nil {
		clock = realClock{}
	}
	return &responseCache{
		ttl:     ttl,
		clock:   clock,
		entries: make(map[string]cacheEntry),
	}
}

func cacheKey(kind cacheKind, query string, page, perPage int) string {
	return fmt.Sprintf("%s:%s:%d:%d", kind, query, page, perPage)
}

func (c *responseCache) get(kind cacheKind, key string) ([]AiringItem, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.clock.Now().After(entry.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	slog.Debug("airing cache hit", "kind", kind)
	return entry.data, true
}

func (c *responseCache) set(kind cacheKind, key string, data []AiringItem) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{
		kind:      kind,
		data:      data,
		expiresAt: c.clock.Now().Add(c.ttl),
	}
}
