package datasource

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/vanderheijden86/wordtree/pkg/debug"
	"github.com/vanderheijden86/wordtree/pkg/model"
)

// FileSource serves a JSON dataset document held in memory. Reload
// re-reads the file, e.g. after the watcher reports a change.
type FileSource struct {
	path string

	mu  sync.RWMutex
	doc *Document
}

// NewFileSource reads the document at path.
func NewFileSource(path string) (*FileSource, error) {
	s := &FileSource{path: path}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewDocumentSource serves an already decoded document.
func NewDocumentSource(doc *Document) *FileSource {
	if doc == nil {
		doc = &Document{}
	}
	return &FileSource{doc: doc}
}

// Path returns the backing file, empty for in-memory documents.
func (s *FileSource) Path() string { return s.path }

// Reload re-reads the backing file. On error the previous document stays
// in place.
func (s *FileSource) Reload() error {
	if s.path == "" {
		return nil
	}
	f, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrFetchFailure, err)
	}
	defer f.Close()

	doc, err := DecodeDocument(f)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", model.ErrFetchFailure, s.path, err)
	}
	s.mu.Lock()
	s.doc = doc
	s.mu.Unlock()
	debug.Log("datasource: loaded %d datasets from %s", len(doc.Datasets), s.path)
	return nil
}

// Document returns the current document.
func (s *FileSource) Document() *Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc
}

// FetchFrequencies implements Source.
func (s *FileSource) FetchFrequencies(ctx context.Context, f model.FilterCriteria) ([]model.FrequencyEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var lists [][]model.FrequencyEntry
	for _, ds := range s.Document().Datasets {
		if ds.Matches(f) {
			lists = append(lists, ds.Frequencies)
		}
	}
	if len(lists) == 0 {
		return nil, fmt.Errorf("%w for filter %q", model.ErrNoDataAvailable, f.Key())
	}
	return sumFrequencies(lists...), nil
}

// FetchTree implements Source. The first matching dataset carrying a tree
// for word wins.
func (s *FileSource) FetchTree(ctx context.Context, word string, f model.FilterCriteria) (*model.TreeNode, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, ds := range s.Document().Datasets {
		if !ds.Matches(f) {
			continue
		}
		if payload, ok := ds.Trees[word]; ok {
			return DecodeTree(payload)
		}
	}
	return nil, fmt.Errorf("%w: no tree for %q", model.ErrNoDataAvailable, word)
}

// Close implements io.Closer.
func (s *FileSource) Close() error { return nil }

// Facets implements Faceter.
func (s *FileSource) Facets(ctx context.Context) (Facets, error) {
	if err := ctx.Err(); err != nil {
		return Facets{}, err
	}
	var fc Facets
	for _, ds := range s.Document().Datasets {
		fc.add(ds.Source, ds.Category)
	}
	return fc, nil
}
