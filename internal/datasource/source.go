// Package datasource loads word frequencies and per-word sentiment trees.
//
// Two backends exist: a JSON dataset document (FileSource) and a SQLite
// database populated from such documents (SQLiteSource). Open picks one by
// file extension.
package datasource

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/vanderheijden86/wordtree/pkg/model"
)

// Source delivers frequencies and trees for a filter.
type Source interface {
	// FetchFrequencies returns the summed word frequencies of every dataset
	// matching f, or model.ErrNoDataAvailable when none matches.
	FetchFrequencies(ctx context.Context, f model.FilterCriteria) ([]model.FrequencyEntry, error)
	// FetchTree returns the tree for word. A payload without a root word
	// yields model.ErrInvalidPayload.
	FetchTree(ctx context.Context, word string, f model.FilterCriteria) (*model.TreeNode, error)
}

// SourceCloser is a Source holding resources.
type SourceCloser interface {
	Source
	io.Closer
}

// SourceType identifies a backend.
type SourceType string

const (
	SourceTypeJSON   SourceType = "json"
	SourceTypeSQLite SourceType = "sqlite"
)

// DetectType maps a path to its backend by extension.
func DetectType(path string) (SourceType, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return SourceTypeJSON, nil
	case ".db", ".sqlite", ".sqlite3":
		return SourceTypeSQLite, nil
	default:
		return "", fmt.Errorf("unknown dataset type for %q (want .json, .db or .sqlite)", path)
	}
}

// Open opens the dataset at path.
func Open(path string) (SourceCloser, error) {
	typ, err := DetectType(path)
	if err != nil {
		return nil, err
	}
	switch typ {
	case SourceTypeSQLite:
		return NewSQLiteSource(path)
	default:
		return NewFileSource(path)
	}
}

// sumFrequencies merges entries of several datasets by word. Order follows
// first appearance.
func sumFrequencies(lists ...[]model.FrequencyEntry) []model.FrequencyEntry {
	index := make(map[string]int)
	var out []model.FrequencyEntry
	for _, list := range lists {
		for _, e := range list {
			if i, ok := index[e.Text]; ok {
				out[i].Frequency += e.Frequency
				continue
			}
			index[e.Text] = len(out)
			out = append(out, e)
		}
	}
	return out
}

// Facets lists the distinct sources and categories of a dataset, in order
// of first appearance.
type Facets struct {
	Sources    []string
	Categories []string
}

func (f *Facets) add(source, category string) {
	if source != "" && !slices.Contains(f.Sources, source) {
		f.Sources = append(f.Sources, source)
	}
	if category != "" && !slices.Contains(f.Categories, category) {
		f.Categories = append(f.Categories, category)
	}
}

// Faceter is implemented by sources that can enumerate their filters.
type Faceter interface {
	Facets(ctx context.Context) (Facets, error)
}
