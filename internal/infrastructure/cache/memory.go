package cache

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/yieldscale/backend/internal/domain"
)

// DefaultCleanupInterval is how often expired entries are swept when no interval is given
const DefaultCleanupInterval = 10 * time.Minute

// cacheEntry is a stored value with its expiry
type cacheEntry struct {
	Value     interface{}
	ExpiresAt time.Time
}

func (e cacheEntry) expired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}

// MemoryCache is a thread-safe in-memory cache with TTL support.
// Values are stored as generic JSON so readers see the same shapes a
// networked cache would hand back.
type MemoryCache struct {
	data      map[string]cacheEntry
	mutex     sync.RWMutex
	stop      chan struct{}
	closeOnce sync.Once
}

// NewMemoryCache creates a new in-memory cache and starts its sweeper.
// A zero interval uses DefaultCleanupInterval.
func NewMemoryCache(cleanupInterval time.Duration) *MemoryCache {
	if cleanupInterval <= 0 {
		cleanupInterval = DefaultCleanupInterval
	}

	c := &MemoryCache{
		data: make(map[string]cacheEntry),
		stop: make(chan struct{}),
	}

	go c.sweep(cleanupInterval)

	return c
}

// Get retrieves a value from the cache
func (c *MemoryCache) Get(ctx context.Context, key string) (interface{}, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	entry, ok := c.data[key]
	if !ok || entry.expired(time.Now()) {
		return nil, domain.ErrCacheMiss
	}

	return entry.Value, nil
}

// Set stores a value in the cache with TTL
func (c *MemoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	jsonData, err := json.Marshal(value)
	if err != nil {
		return err
	}

	var stored interface{}
	if err := json.Unmarshal(jsonData, &stored); err != nil {
		return err
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data[key] = cacheEntry{
		Value:     stored,
		ExpiresAt: time.Now().Add(ttl),
	}

	return nil
}

// Delete removes a value from the cache
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.data, key)
	return nil
}

// Exists checks if a key exists in the cache and is not expired
func (c *MemoryCache) Exists(ctx context.Context, key string) (bool, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	entry, ok := c.data[key]
	return ok && !entry.expired(time.Now()), nil
}

// Size returns the number of stored entries, including expired ones not yet swept
func (c *MemoryCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.data)
}

// Clear removes all items from the cache
func (c *MemoryCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.data = make(map[string]cacheEntry)
}

// Close stops the sweeper. The cache stays usable but is no longer swept.
func (c *MemoryCache) Close() {
	c.closeOnce.Do(func() {
		close(c.stop)
	})
}

// sweep removes expired entries every interval until Close is called
func (c *MemoryCache) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			if removed := c.removeExpired(time.Now()); removed > 0 {
				log.Printf("[CACHE] swept %d expired entries", removed)
			}
		}
	}
}

// removeExpired deletes entries that expired before now and returns how many
func (c *MemoryCache) removeExpired(now time.Time) int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	removed := 0
	for key, entry := range c.data {
		if entry.expired(now) {
			delete(c.data, key)
			removed++
		}
	}
	return removed
}
