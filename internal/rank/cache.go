package rank

import (
	"encoding/json"
	"maps"
	"sync"
)

// Cache maps a keyword to the last rank seen for it. It lives for one UI
// session (or one process, for scheduled tracking) and is never persisted
// beyond that. It is safe for concurrent use.
type Cache struct {
	mu    sync.RWMutex
	ranks map[string]int
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{ranks: make(map[string]int)}
}

// Get returns the cached rank for keyword, if any.
func (c *Cache) Get(keyword string) (int, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.ranks[keyword]
	return r, ok
}

// Previous returns the cached rank as a pointer, nil when unseen.
func (c *Cache) Previous(keyword string) *int {
	if r, ok := c.Get(keyword); ok {
		return &r
	}
	return nil
}

// Set stores the latest rank for keyword.
func (c *Cache) Set(keyword string, rank int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ranks[keyword] = rank
}

// Len returns the number of cached keywords.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.ranks)
}

// Clear forgets all cached ranks.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.ranks)
}

// Snapshot returns a copy of the cached ranks.
func (c *Cache) Snapshot() map[string]int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return maps.Clone(c.ranks)
}

// MarshalJSON encodes the cache as a keyword -> rank object.
func (c *Cache) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Snapshot())
}

// UnmarshalJSON replaces the cache contents with a keyword -> rank object.
func (c *Cache) UnmarshalJSON(data []byte) error {
	ranks := make(map[string]int)
	if err := json.Unmarshal(data, &ranks); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ranks = ranks
	return nil
}
