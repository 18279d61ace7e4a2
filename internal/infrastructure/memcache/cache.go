package memcache

import (
	"context"
	"sync"
	"time"

	"github.com/avatarctic/trip-search/internal/core/ports"
)

type entry struct {
	value     []byte
	expiresAt time.Time // zero means no expiration
}

// Cache is an in-process ports.Cache for single-instance deployments and
// tests. Expired entries are evicted lazily on read; a read past expiry is
// indistinguishable from an absent key.
type Cache struct {
	mu    sync.RWMutex
	store map[string]entry
	// now is swappable so expiry can be tested without sleeping
	now func() time.Time
}

func New() *Cache {
	return &Cache{
		store: make(map[string]entry),
		now:   time.Now,
	}
}

func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.mu.RLock()
	e, ok := c.store[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !e.expiresAt.IsZero() && c.now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.store, key)
		c.mu.Unlock()
		return nil, false, nil
	}
	return e.value, true, nil
}

func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	e := entry{value: value}
	if ttl > 0 {
		e.expiresAt = c.now().Add(ttl)
	}
	c.mu.Lock()
	c.store[key] = e
	c.mu.Unlock()
	return nil
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	delete(c.store, key)
	c.mu.Unlock()
	return nil
}

// SupportsShutdown reports that the cache holds process memory worth
// releasing on exit.
func (c *Cache) SupportsShutdown() bool { return true }

// Shutdown drops all entries.
func (c *Cache) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	c.store = make(map[string]entry)
	c.mu.Unlock()
	return nil
}

var _ ports.Cache = (*Cache)(nil)
