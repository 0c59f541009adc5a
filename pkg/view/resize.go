package view

import (
	"sync"
	"time"

	"github.com/vanderheijden86/wordtree/pkg/treelayout"
	"github.com/vanderheijden86/wordtree/pkg/watcher"
)

// ResizeDebounce is how long container sizes must settle before a relayout.
const ResizeDebounce = 150 * time.Millisecond

// Resizer coalesces bursts of container resizes and applies only the last
// size once they settle.
type Resizer struct {
	debouncer *watcher.Debouncer
	apply     func(treelayout.Size)

	mu   sync.Mutex
	last treelayout.Size
}

// NewResizer returns a Resizer calling apply after delay of quiet. A
// non-positive delay uses ResizeDebounce.
func NewResizer(delay time.Duration, apply func(treelayout.Size)) *Resizer {
	if delay <= 0 {
		delay = ResizeDebounce
	}
	return &Resizer{debouncer: watcher.NewDebouncer(delay), apply: apply}
}

// ResizerFor debounces resizes into c.
func ResizerFor(c *Coordinator, delay time.Duration) *Resizer {
	return NewResizer(delay, c.Resize)
}

// Resize records size and schedules apply.
func (r *Resizer) Resize(size treelayout.Size) {
	r.mu.Lock()
	r.last = size
	r.mu.Unlock()
	r.debouncer.Trigger(func() {
		r.mu.Lock()
		s := r.last
		r.mu.Unlock()
		r.apply(s)
	})
}

// Flush applies a pending size immediately.
func (r *Resizer) Flush() {
	if !r.debouncer.Pending() {
		return
	}
	r.debouncer.Cancel()
	r.mu.Lock()
	s := r.last
	r.mu.Unlock()
	r.apply(s)
}

// Stop drops any pending resize.
func (r *Resizer) Stop() {
	r.debouncer.Cancel()
}
