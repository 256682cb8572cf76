// Package memory holds in-process stand-ins for the Redis adapters, used when
// REDIS_ADDR is empty and in tests.
package memory

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"hotelbot/internal/adapters/observability"
)

type entry struct {
	val       []byte
	expiresAt time.Time
}

// Cache stores JSON-encoded values so callers get copies, as with Redis.
type Cache struct {
	mu    sync.RWMutex
	items map[string]entry
	now   func() time.Time
}

func NewCache() *Cache {
	return &Cache{items: map[string]entry{}, now: time.Now}
}

func (c *Cache) Get(_ context.Context, key string, dst any) (bool, error) {
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()
	if !ok || (!e.expiresAt.IsZero() && c.now().After(e.expiresAt)) {
		observability.ObserveCache("memory", "miss")
		return false, nil
	}
	observability.ObserveCache("memory", "hit")
	return true, json.Unmarshal(e.val, dst)
}

func (c *Cache) Set(_ context.Context, key string, v any, ttlSec int) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	e := entry{val: b}
	if ttlSec > 0 {
		e.expiresAt = c.now().Add(time.Duration(ttlSec) * time.Second)
	}
	c.mu.Lock()
	c.items[key] = e
	c.mu.Unlock()
	observability.ObserveCache("memory", "set")
	return nil
}

func (c *Cache) Del(_ context.Context, key string) error {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
	observability.ObserveCache("memory", "del")
	return nil
}

func (c *Cache) Flush(_ context.Context, prefix string) error {
	c.mu.Lock()
	for k := range c.items {
		if strings.HasPrefix(k, prefix) {
			delete(c.items, k)
		}
	}
	c.mu.Unlock()
	observability.ObserveCache("memory", "flush")
	return nil
}
