// Package pricecache holds the most recent scrape result.
package pricecache

import (
	"sync"
	"time"

	"github.com/tint-us/lm-api/internal/models"
)

// Cache is a single-slot store of the latest payload and the time it was stored.
// It is safe for concurrent use.
type Cache struct {
	mu       sync.RWMutex
	storedAt time.Time
	payload  *models.PricePayload
	now      func() time.Time
}

// New creates an empty cache using the wall clock.
func New() *Cache {
	return NewWithClock(time.Now)
}

// NewWithClock creates an empty cache reading time from now.
func NewWithClock(now func() time.Time) *Cache {
	return &Cache{now: now}
}

// GetFresh returns the held payload if it was stored no more than ttl ago.
func (c *Cache) GetFresh(ttl time.Duration) (*models.PricePayload, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.payload == nil {
		return nil, false
	}
	if c.now().Sub(c.storedAt) > ttl {
		return nil, false
	}
	return c.payload, true
}

// Set replaces the slot with p. A payload whose FetchedAt is earlier than the
// one already held is discarded so readers never see time go backwards.
// It reports whether p was stored.
func (c *Cache) Set(p *models.PricePayload) bool {
	if p == nil {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.payload != nil && p.FetchedAt.Before(c.payload.FetchedAt) {
		return false
	}
	c.payload = p
	c.storedAt = c.now()
	return true
}

// Age returns how long ago the held payload was stored.
func (c *Cache) Age() (time.Duration, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.payload == nil {
		return 0, false
	}
	return c.now().Sub(c.storedAt), true
}
