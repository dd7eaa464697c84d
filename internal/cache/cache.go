package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// TTL is an in-memory cache whose entries expire a fixed time after they are set.
// A background goroutine removes expired entries until Close is called.
type TTL[V any] struct {
	mu    sync.RWMutex
	store map[string]entry[V]
	ttl   time.Duration
	now   func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

// New returns a cache that sweeps expired entries every interval.
func New[V any](ttl, interval time.Duration) *TTL[V] {
	c := &TTL[V]{
		store: make(map[string]entry[V]),
		ttl:   ttl,
		now:   time.Now,
		stop:  make(chan struct{}),
	}
	if interval > 0 {
		go c.cleanup(interval)
	}
	return c
}

// Get retrieves a value if present and not expired.
func (c *TTL[V]) Get(key string) (V, bool) {
	var zero V
	if c == nil {
		return zero, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.store[key]
	if !ok || c.now().After(e.expiresAt) {
		return zero, false
	}
	return e.value, true
}

// Set stores a value, replacing any previous one under key.
func (c *TTL[V]) Set(key string, value V) {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store[key] = entry[V]{value: value, expiresAt: c.now().Add(c.ttl)}
}

func (c *TTL[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}

// Clear removes all entries.
func (c *TTL[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = make(map[string]entry[V])
}

// Close stops the background sweep.
func (c *TTL[V]) Close() {
	c.stopOnce.Do(func() { close(c.stop) })
}

func (c *TTL[V]) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for key, e := range c.store {
		if now.After(e.expiresAt) {
			delete(c.store, key)
		}
	}
}

func (c *TTL[V]) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.sweep()
		case <-c.stop:
			return
		}
	}
}
