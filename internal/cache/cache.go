// ABOUTME: In-memory page cache with TTL-based expiration
// ABOUTME: Generic, goroutine-safe cache over sync.Map with a stoppable janitor

package cache

import (
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const cleanupInterval = time.Minute

type entry[V any] struct {
	data      V
	expiresAt time.Time
}

// Cache holds values of one type keyed by string until their TTL lapses.
type Cache[V any] struct {
	store sync.Map
	ttl   time.Duration
	log   *zap.Logger

	done      chan struct{}
	closeOnce sync.Once
}

func New[V any](ttl time.Duration, log *zap.Logger) *Cache[V] {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Cache[V]{
		ttl:  ttl,
		log:  log.Named("cache"),
		done: make(chan struct{}),
	}
	go c.startCleanup(cleanupInterval)
	return c
}

func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V

	val, ok := c.store.Load(key)
	if !ok {
		c.log.Debug("cache miss", zap.String("key", key))
		return zero, false
	}

	e := val.(entry[V])
	if time.Now().After(e.expiresAt) {
		c.store.Delete(key)
		c.log.Debug("cache expired", zap.String("key", key))
		return zero, false
	}

	c.log.Debug("cache hit", zap.String("key", key))
	return e.data, true
}

func (c *Cache[V]) Set(key string, value V) {
	c.store.Store(key, entry[V]{
		data:      value,
		expiresAt: time.Now().Add(c.ttl),
	})
	c.log.Debug("cache set", zap.String("key", key), zap.Duration("ttl", c.ttl))
}

// ClearPrefix drops every key starting with prefix.
func (c *Cache[V]) ClearPrefix(prefix string) int {
	n := 0
	c.store.Range(func(key, _ any) bool {
		if strings.HasPrefix(key.(string), prefix) {
			c.store.Delete(key)
			n++
		}
		return true
	})
	if n > 0 {
		c.log.Debug("cache cleared", zap.String("prefix", prefix), zap.Int("entries", n))
	}
	return n
}

// Flush drops every entry.
func (c *Cache[V]) Flush() {
	c.ClearPrefix("")
}

// Close stops the cleanup goroutine. It is safe to call more than once.
func (c *Cache[V]) Close() {
	c.closeOnce.Do(func() { close(c.done) })
}

func (c *Cache[V]) startCleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case now := <-ticker.C:
			c.evictExpired(now)
		}
	}
}

func (c *Cache[V]) evictExpired(now time.Time) {
	c.store.Range(func(key, val any) bool {
		if now.After(val.(entry[V]).expiresAt) {
			c.store.Delete(key)
		}
		return true
	})
}
