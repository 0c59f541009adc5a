package cloud

import (
	"container/list"
	"encoding/binary"
	"math"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/vanderheijden86/wordtree/pkg/metrics"
	"github.com/vanderheijden86/wordtree/pkg/model"
)

// DefaultCacheSize is the number of layouts an Engine keeps.
const DefaultCacheSize = 32

type cacheKey struct {
	input      uint64
	width      float64
	baseHeight float64
	fullscreen bool
}

type cacheEntry struct {
	key    cacheKey
	layout Layout
}

// Engine runs Normalize and LayoutWords and memoizes the result keyed by
// (input hash, container size, mode). Only a change in the word set, the
// options, the width or the mode triggers a new layout pass.
type Engine struct {
	mu       sync.Mutex
	capacity int
	entries  map[cacheKey]*list.Element
	order    *list.List // front = most recently used
}

// NewEngine returns an Engine holding at most capacity layouts.
func NewEngine(capacity int) *Engine {
	if capacity <= 0 {
		capacity = DefaultCacheSize
	}
	return &Engine{
		capacity: capacity,
		entries:  make(map[cacheKey]*list.Element, capacity),
		order:    list.New(),
	}
}

// Compute returns the cloud layout for entries, reusing a cached result when
// the inputs, container and mode are unchanged.
func (e *Engine) Compute(entries []model.FrequencyEntry, norm NormalizeOptions, lay LayoutOptions) Layout {
	lay.Fullscreen = norm.Fullscreen
	if lay.Width <= 0 {
		lay.Width = norm.Width
	}
	norm.Width = lay.Width

	key := cacheKey{
		input:      hashInput(entries, norm, lay),
		width:      lay.Width,
		baseHeight: lay.BaseHeight,
		fullscreen: lay.Fullscreen,
	}

	e.mu.Lock()
	if el, ok := e.entries[key]; ok {
		e.order.MoveToFront(el)
		l := el.Value.(*cacheEntry).layout
		e.mu.Unlock()
		metrics.CloudCache.Hit()
		return l
	}
	e.mu.Unlock()
	metrics.CloudCache.Miss()

	l := LayoutWords(Normalize(entries, norm), lay)

	e.mu.Lock()
	defer e.mu.Unlock()
	if el, ok := e.entries[key]; ok {
		e.order.MoveToFront(el)
		return el.Value.(*cacheEntry).layout
	}
	e.entries[key] = e.order.PushFront(&cacheEntry{key: key, layout: l})
	for e.order.Len() > e.capacity {
		oldest := e.order.Back()
		e.order.Remove(oldest)
		delete(e.entries, oldest.Value.(*cacheEntry).key)
		metrics.CloudCache.Evict()
	}
	return l
}

// Len returns the number of cached layouts.
func (e *Engine) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.order.Len()
}

// Purge drops every cached layout.
func (e *Engine) Purge() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.entries = make(map[cacheKey]*list.Element, e.capacity)
	e.order.Init()
}

func hashInput(entries []model.FrequencyEntry, norm NormalizeOptions, lay LayoutOptions) uint64 {
	d := xxhash.New()
	var buf [8]byte
	putFloat := func(f float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
		_, _ = d.Write(buf[:])
	}
	for _, en := range entries {
		_, _ = d.WriteString(en.Text)
		_, _ = d.Write([]byte{0})
		putFloat(en.Frequency)
	}
	putFloat(norm.Floor)
	putFloat(float64(norm.Limit))
	putFloat(lay.Padding)
	putFloat(lay.Margin)
	return d.Sum64()
}
