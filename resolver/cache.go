/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolver

import "sync"

// Key identifies a memoized resolution. The same path under a different
// theme, platform, brand or output mode is a different entry.
type Key struct {
	Theme      string
	Platform   string
	Brand      string
	Path       string
	References bool
}

// Cache memoizes resolved values. A cache shared between resolvers is
// only meaningful when they resolve the same tree with the same options.
type Cache interface {
	Get(key Key) (any, bool)
	Set(key Key, value any)
}

// MapCache is a Cache safe for concurrent use.
type MapCache struct {
	mu      sync.RWMutex
	entries map[Key]any
}

// NewMapCache creates an empty cache.
func NewMapCache() *MapCache {
	return &MapCache{entries: make(map[Key]any)}
}

// Get returns the cached value for key.
func (c *MapCache) Get(key Key) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	return v, ok
}

// Set stores value under key.
func (c *MapCache) Set(key Key, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
}

// Len returns the number of entries.
func (c *MapCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear removes all entries.
func (c *MapCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
}
