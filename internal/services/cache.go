package services

import (
	"sync"
	"time"
)

// cacheTTL is how long a cached catalog response stays valid.
const cacheTTL = 5 * time.Minute

type cacheEntry struct {
	body     []byte
	storedAt time.Time
}

// responseCache is an in-memory, time-boxed cache of raw response bodies,
// keyed by resource path plus encoded parameters. Entries are never evicted
// eagerly; an expired entry is simply overwritten on the next store.
type responseCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

func newResponseCache(ttl time.Duration) *responseCache {
	return &responseCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// get returns the cached body for key when present and still valid.
func (c *responseCache) get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok || c.now().Sub(entry.storedAt) >= c.ttl {
		return nil, false
	}
	return entry.body, true
}

// put stores a body under key, overwriting any prior entry.
func (c *responseCache) put(key string, body []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{body: body, storedAt: c.now()}
}

// purge drops every entry.
func (c *responseCache) purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}

// size reports the number of entries, valid or expired.
func (c *responseCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
