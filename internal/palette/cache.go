package palette

import (
	"hash/fnv"
	"slices"
	"strconv"
	"sync"
)

// Cache stores palettes by content fingerprint.
type Cache interface {
	Get(key string) (Palette, bool)
	Put(key string, p Palette)
	Len() int
}

// ContentKey fingerprints image content together with the colour count.
//
// The hash is 64-bit FNV-1a: fast, not cryptographic, and not collision
// resistant against crafted input.
func ContentKey(content []byte, k int) string {
	h := fnv.New64a()
	_, _ = h.Write(content)
	return strconv.FormatUint(h.Sum64(), 16) + "-" + strconv.Itoa(k)
}

// MemoryCache is an unbounded in-process Cache. Entries live for the lifetime
// of the cache; concurrent writers for one key race and the last one wins.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]Palette
}

// NewMemoryCache creates an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]Palette),
	}
}

// Get returns a copy of the palette stored under key.
func (c *MemoryCache) Get(key string) (Palette, bool) {
	c.mu.RLock()
	p, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return slices.Clone(p), true
}

// Put stores a copy of p under key.
func (c *MemoryCache) Put(key string, p Palette) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = slices.Clone(p)
}

// Len returns the number of cached palettes.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
