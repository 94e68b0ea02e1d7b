package registry

import (
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// listing is a cached snapshot of one registry.
type listing struct {
	names []string
	built time.Time
}

// listCache memoizes registry listings per kind.
// Concurrent misses for the same kind share one store read.
// A load that overlaps an invalidation is returned but not cached.
type listCache struct {
	ttl     time.Duration
	mu      sync.RWMutex
	entries map[Kind]listing
	gens    map[Kind]uint64
	sf      singleflight.Group
}

func newListCache(ttl time.Duration) *listCache {
	return &listCache{ttl: ttl, entries: make(map[Kind]listing), gens: make(map[Kind]uint64)}
}

func (c *listCache) generation(kind Kind) uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gens[kind]
}

func (c *listCache) fresh(kind Kind) ([]string, bool) {
	if c.ttl <= 0 {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	l, ok := c.entries[kind]
	if !ok || time.Since(l.built) > c.ttl {
		return nil, false
	}
	return l.names, true
}

// get returns the cached listing or loads it once.
func (c *listCache) get(kind Kind, load func() ([]string, error)) ([]string, error) {
	if names, ok := c.fresh(kind); ok {
		return names, nil
	}

	v, err, _ := c.sf.Do(string(kind), func() (any, error) {
		if names, ok := c.fresh(kind); ok {
			return names, nil
		}
		gen := c.generation(kind)
		names, err := load()
		if err != nil {
			return nil, err
		}
		if c.ttl > 0 {
			c.mu.Lock()
			if c.gens[kind] == gen {
				c.entries[kind] = listing{names: names, built: time.Now()}
			}
			c.mu.Unlock()
		}
		return names, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]string), nil
}

// invalidate drops the listing of the given kinds, or all of them when none are given.
func (c *listCache) invalidate(kinds ...Kind) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(kinds) == 0 {
		kinds = Kinds
	}
	for _, k := range kinds {
		delete(c.entries, k)
		c.gens[k]++
		c.sf.Forget(string(k))
	}
}
