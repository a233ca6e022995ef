package middleware

import (
	"sync"
	"time"
)

// idempotencyCache holds replayable responses keyed by request fingerprint.
type idempotencyCache struct {
	mu    sync.RWMutex
	items map[uint64]*replayRecord
	ttl   time.Duration
}

func newIdempotencyCache(ttl time.Duration) *idempotencyCache {
	c := &idempotencyCache{
		items: make(map[uint64]*replayRecord),
		ttl:   ttl,
	}
	go c.startCleanup()
	return c
}

// Get returns the stored response for a fingerprint if it has not expired.
func (c *idempotencyCache) Get(key uint64) (*replayRecord, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	record, ok := c.items[key]
	if !ok || time.Since(record.Timestamp) > c.ttl {
		return nil, false
	}
	return record, true
}

// Set stores a response, stamping it with the current time.
func (c *idempotencyCache) Set(key uint64, record *replayRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()

	record.Timestamp = time.Now()
	c.items[key] = record
}

func (c *idempotencyCache) startCleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.cleanup()
	}
}

func (c *idempotencyCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, record := range c.items {
		if now.Sub(record.Timestamp) > c.ttl {
			delete(c.items, key)
		}
	}
}
