// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package cache provides a process-local expiring key-value store used as
// the read cache in front of the post repository. It is never authoritative:
// losing an entry only costs an extra database read.
package cache

import (
	"strings"
	"sync"
	"time"
)

const (
	// DefaultTTL is how long an entry stays valid after being set.
	DefaultTTL = 10 * time.Minute

	// DefaultMaxEntries bounds the cache size. When the cap is reached an
	// arbitrary entry is evicted; eviction order is not a correctness
	// concern here.
	DefaultMaxEntries = 1000

	// sweepInterval is how often the janitor removes expired entries.
	sweepInterval = 2 * time.Minute
)

type entry struct {
	value     any
	expiresAt time.Time
}

// Cache is a bounded in-memory key-value map with per-entry expiry.
// It is safe for concurrent use.
type Cache struct {
	mu         sync.RWMutex
	entries    map[string]entry
	ttl        time.Duration
	maxEntries int
	done       chan struct{}
	stopOnce   sync.Once
}

// New creates a cache and starts its background janitor. Zero values fall
// back to DefaultTTL and DefaultMaxEntries. Call Stop on shutdown.
func New(ttl time.Duration, maxEntries int) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	c := &Cache{
		entries:    make(map[string]entry),
		ttl:        ttl,
		maxEntries: maxEntries,
		done:       make(chan struct{}),
	}
	go c.janitor()
	return c
}

// Get returns the value for key, or false if it is absent or expired.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || time.Now().After(e.expiresAt) {
		return nil, false
	}
	return e.value, true
}

// Set stores a value under key with the configured TTL, overwriting any
// existing entry. When the cache is full an arbitrary entry is evicted to
// make room.
func (c *Cache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		c.evictOneLocked()
	}
	c.entries[key] = entry{value: value, expiresAt: time.Now().Add(c.ttl)}
}

// Delete removes a single entry. Deleting an absent key is a no-op.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// DeletePrefix removes every entry whose key starts with prefix. Used to
// drop all cached list pages when a write makes them stale.
func (c *Cache) DeletePrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
		}
	}
}

// Len reports the number of entries, including not-yet-swept expired ones.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stop terminates the janitor goroutine. Safe to call more than once.
func (c *Cache) Stop() {
	c.stopOnce.Do(func() { close(c.done) })
}

// evictOneLocked removes an expired entry if one exists, otherwise an
// arbitrary one. Caller must hold the write lock.
func (c *Cache) evictOneLocked() {
	now := time.Now()
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
			return
		}
	}
	for k := range c.entries {
		delete(c.entries, k)
		return
	}
}

// janitor periodically sweeps expired entries so the map does not pin
// memory for values nobody will read again.
func (c *Cache) janitor() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			now := time.Now()
			c.mu.Lock()
			for k, e := range c.entries {
				if now.After(e.expiresAt) {
					delete(c.entries, k)
				}
			}
			c.mu.Unlock()
		}
	}
}
