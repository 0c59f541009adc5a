package metrics

import "sync/atomic"

// CacheMetric counts memo cache hits, misses and evictions.
type CacheMetric struct {
	name      string
	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

func newCacheMetric(name string) *CacheMetric {
	return &CacheMetric{name: name}
}

// Hit records a cache hit.
func (c *CacheMetric) Hit() {
	if Enabled() {
		c.hits.Add(1)
	}
}

// Miss records a cache miss.
func (c *CacheMetric) Miss() {
	if Enabled() {
		c.misses.Add(1)
	}
}

// Evict records an eviction.
func (c *CacheMetric) Evict() {
	if Enabled() {
		c.evictions.Add(1)
	}
}

// Name returns the metric name.
func (c *CacheMetric) Name() string { return c.name }

// Hits returns the hit count.
func (c *CacheMetric) Hits() int64 { return c.hits.Load() }

// Misses returns the miss count.
func (c *CacheMetric) Misses() int64 { return c.misses.Load() }

// HitRate returns hits / (hits + misses), or 0 before any lookup.
func (c *CacheMetric) HitRate() float64 {
	h, m := c.hits.Load(), c.misses.Load()
	if h+m == 0 {
		return 0
	}
	return float64(h) / float64(h+m)
}

// Reset clears the counters.
func (c *CacheMetric) Reset() {
	c.hits.Store(0)
	c.misses.Store(0)
	c.evictions.Store(0)
}

// Memo caches.
var (
	CloudCache = newCacheMetric("cloud_layout_cache")
	TreeCache  = newCacheMetric("tree_layout_cache")
)

// AllCacheMetrics returns all registered cache metrics.
func AllCacheMetrics() []*CacheMetric {
	return []*CacheMetric{CloudCache, TreeCache}
}
