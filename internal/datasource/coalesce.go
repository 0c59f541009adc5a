package datasource

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/vanderheijden86/wordtree/pkg/debug"
	"github.com/vanderheijden86/wordtree/pkg/metrics"
	"github.com/vanderheijden86/wordtree/pkg/model"
)

// Coalescing wraps a Source so concurrent identical fetches share one
// backend call. A shared call runs with the context of the caller that
// started it.
type Coalescing struct {
	src   Source
	freqs singleflight.Group
	trees singleflight.Group
}

// NewCoalescing wraps src.
func NewCoalescing(src Source) *Coalescing {
	return &Coalescing{src: src}
}

// FetchFrequencies implements Source. Each caller gets its own copy of the
// slice.
func (c *Coalescing) FetchFrequencies(ctx context.Context, f model.FilterCriteria) ([]model.FrequencyEntry, error) {
	v, err, shared := c.freqs.Do(f.Key(), func() (any, error) {
		defer metrics.Timer(metrics.FrequencyFetch)()
		return c.src.FetchFrequencies(ctx, f)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		debug.Log("datasource: shared frequency fetch for %q", f.Key())
	}
	entries := v.([]model.FrequencyEntry)
	out := make([]model.FrequencyEntry, len(entries))
	copy(out, entries)
	return out, nil
}

// FetchTree implements Source. Trees are shared between callers and must
// not be mutated.
func (c *Coalescing) FetchTree(ctx context.Context, word string, f model.FilterCriteria) (*model.TreeNode, error) {
	v, err, _ := c.trees.Do(word+"\x00"+f.Key(), func() (any, error) {
		defer metrics.Timer(metrics.TreeFetch)()
		return c.src.FetchTree(ctx, word, f)
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.TreeNode), nil
}

// DefaultPrefetchConcurrency bounds PrefetchTrees when limit <= 0.
const DefaultPrefetchConcurrency = 4

// PrefetchTrees fetches the trees for words concurrently. Words without a
// tree are left out of the result; any other error cancels the rest and is
// returned.
func PrefetchTrees(ctx context.Context, src Source, words []string, f model.FilterCriteria, limit int) (map[string]*model.TreeNode, error) {
	if limit <= 0 {
		limit = DefaultPrefetchConcurrency
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	var mu sync.Mutex
	out := make(map[string]*model.TreeNode, len(words))
	for _, word := range words {
		g.Go(func() error {
			tree, err := src.FetchTree(ctx, word, f)
			if errors.Is(err, model.ErrNoDataAvailable) {
				debug.Log("datasource: no tree for %q", word)
				return nil
			}
			if err != nil {
				return err
			}
			mu.Lock()
			out[word] = tree
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
