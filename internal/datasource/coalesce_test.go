package datasource

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vanderheijden86/wordtree/pkg/model"
)

// slowSource blocks fetches until release is closed and counts calls.
type slowSource struct {
	release chan struct{}
	calls   atomic.Int32
	fail    map[string]error
}

func (s *slowSource) FetchFrequencies(ctx context.Context, f model.FilterCriteria) ([]model.FrequencyEntry, error) {
	s.calls.Add(1)
	<-s.release
	return []model.FrequencyEntry{{Text: "taste", Frequency: 1}}, nil
}

func (s *slowSource) FetchTree(ctx context.Context, word string, f model.FilterCriteria) (*model.TreeNode, error) {
	s.calls.Add(1)
	if err, ok := s.fail[word]; ok {
		return nil, err
	}
	select {
	case <-s.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return &model.TreeNode{Word: word}, nil
}

func TestCoalescing_SharesConcurrentFetches(t *testing.T) {
	src := &slowSource{release: make(chan struct{})}
	c := NewCoalescing(src)

	const callers = 8
	var wg sync.WaitGroup
	results := make([][]model.FrequencyEntry, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = c.FetchFrequencies(context.Background(), model.FilterCriteria{Sources: []string{"a", "b"}})
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(src.release)
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	require.Equal(t, int32(1), src.calls.Load())
	results[0][0].Text = "mutated"
	require.Equal(t, "taste", results[1][0].Text, "callers must not share the slice")
}

func TestCoalescing_TreeKeyIncludesFilter(t *testing.T) {
	src := &slowSource{release: make(chan struct{})}
	close(src.release)
	c := NewCoalescing(src)

	_, err := c.FetchTree(context.Background(), "taste", model.FilterCriteria{})
	require.NoError(t, err)
	_, err = c.FetchTree(context.Background(), "taste", model.FilterCriteria{Category: "tea"})
	require.NoError(t, err)
	require.Equal(t, int32(2), src.calls.Load())
}

func TestPrefetchTrees(t *testing.T) {
	src := &slowSource{
		release: make(chan struct{}),
		fail:    map[string]error{"missing": model.ErrNoDataAvailable},
	}
	close(src.release)

	got, err := PrefetchTrees(context.Background(), src, []string{"taste", "aroma", "missing"}, model.FilterCriteria{}, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "aroma", got["aroma"].Word)
	require.NotContains(t, got, "missing")
}

func TestPrefetchTrees_FailureCancels(t *testing.T) {
	boom := errors.New("boom")
	src := &slowSource{
		release: make(chan struct{}),
		fail:    map[string]error{"bad": boom},
	}
	// release is never closed: the failing fetch must cancel the others.
	_, err := PrefetchTrees(context.Background(), src, []string{"a", "bad", "b"}, model.FilterCriteria{}, 3)
	require.ErrorIs(t, err, boom)
}

func TestPrefetchTrees_FromFile(t *testing.T) {
	src, err := NewFileSource(writeFixture(t))
	require.NoError(t, err)

	got, err := PrefetchTrees(context.Background(), NewCoalescing(src), []string{"taste", "service", "aroma"}, model.FilterCriteria{}, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
}
