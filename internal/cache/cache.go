package cache

import (
	"cmp"
	"slices"
	"sync"
)

// Cache is a thread-safe map with least-recently-used eviction once it
// grows past its soft limit.
type Cache[K comparable, V any] struct {
	mu        sync.Mutex
	entries   map[K]*entry[V]
	softLimit int
	tick      uint64 // monotonic access counter

	hits, misses, evictions uint64
}

type entry[V any] struct {
	value V
	used  uint64
}

// New creates a cache holding about softLimit entries. Zero means unbounded.
func New[K comparable, V any](softLimit int) *Cache[K, V] {
	return &Cache[K, V]{
		entries:   make(map[K]*entry[V]),
		softLimit: softLimit,
	}
}

// Get returns the cached value for key.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	c.hits++
	c.tick++
	e.used = c.tick
	return e.value, true
}

// Set stores value under key.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store(key, value)
}

// GetOrCreate returns the value cached under key, calling create to build
// it on a miss. create runs under the cache lock, so concurrent callers
// never build the same key twice. Errors are returned and not cached.
func (c *Cache[K, V]) GetOrCreate(key K, create func() (V, error)) (V, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		c.hits++
		c.tick++
		e.used = c.tick
		return e.value, nil
	}
	c.misses++
	value, err := create()
	if err != nil {
		return value, err
	}
	c.store(key, value)
	return value, nil
}

// Delete removes key and reports whether it was present.
func (c *Cache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.entries[key]
	delete(c.entries, key)
	return ok
}

// Clear drops every entry. Counters are kept.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	clear(c.entries)
}

// Len returns the number of cached entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// Stats returns a snapshot of the cache counters.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Stats{
		Len:       len(c.entries),
		Capacity:  c.softLimit,
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
	}
}

// store inserts value and evicts if needed. Caller must hold c.mu.
func (c *Cache[K, V]) store(key K, value V) {
	c.tick++
	c.entries[key] = &entry[V]{value: value, used: c.tick}
	if c.softLimit > 0 && len(c.entries) > c.softLimit {
		c.evict()
	}
}

// evict drops the oldest entries until three quarters of the soft limit
// remain. Caller must hold c.mu.
func (c *Cache[K, V]) evict() {
	target := max(c.softLimit*3/4, 1)
	n := len(c.entries) - target
	if n <= 0 {
		return
	}

	type aged struct {
		key  K
		used uint64
	}
	all := make([]aged, 0, len(c.entries))
	for k, e := range c.entries {
		all = append(all, aged{k, e.used})
	}
	slices.SortFunc(all, func(a, b aged) int { return cmp.Compare(a.used, b.used) })
	for _, a := range all[:n] {
		delete(c.entries, a.key)
	}
	c.evictions += uint64(n)
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Len       int
	Capacity  int
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// HitRate returns Hits / (Hits + Misses), or 0 before any lookup.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}
