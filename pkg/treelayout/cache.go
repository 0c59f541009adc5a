package treelayout

import (
	"container/list"
	"sync"

	"github.com/vanderheijden86/wordtree/pkg/expansion"
	"github.com/vanderheijden86/wordtree/pkg/metrics"
	"github.com/vanderheijden86/wordtree/pkg/model"
)

// DefaultCacheSize is the number of tree layouts a Cache keeps.
const DefaultCacheSize = 64

type cacheKey struct {
	tree       *model.TreeNode
	expansion  string
	container  Size
	fullscreen bool
}

type cacheEntry struct {
	key    cacheKey
	layout TreeLayout
}

// Cache memoizes Layout keyed by tree identity, expansion set, container
// and mode. Trees are treated as immutable once handed to the cache.
type Cache struct {
	mu       sync.Mutex
	capacity int
	entries  map[cacheKey]*list.Element
	order    *list.List
}

// NewCache returns a Cache holding at most capacity layouts.
func NewCache(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCacheSize
	}
	return &Cache{
		capacity: capacity,
		entries:  make(map[cacheKey]*list.Element, capacity),
		order:    list.New(),
	}
}

// Layout returns the cached layout for the inputs or computes it.
func (c *Cache) Layout(root *model.TreeNode, set expansion.Set, container Size, fullscreen bool) TreeLayout {
	key := cacheKey{tree: root, expansion: set.Key(), container: container, fullscreen: fullscreen}

	c.mu.Lock()
	if el, ok := c.entries[key]; ok {
		c.order.MoveToFront(el)
		l := el.Value.(*cacheEntry).layout
		c.mu.Unlock()
		metrics.TreeCache.Hit()
		return l
	}
	c.mu.Unlock()
	metrics.TreeCache.Miss()

	l := Layout(root, set, container, fullscreen)

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; !ok {
		c.entries[key] = c.order.PushFront(&cacheEntry{key: key, layout: l})
		for c.order.Len() > c.capacity {
			oldest := c.order.Back()
			c.order.Remove(oldest)
			delete(c.entries, oldest.Value.(*cacheEntry).key)
			metrics.TreeCache.Evict()
		}
	}
	return l
}

// Len returns the number of cached layouts.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Purge drops every cached layout, e.g. when a new tree is loaded.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[cacheKey]*list.Element, c.capacity)
	c.order.Init()
}
