// Package model holds the data types shared by the cloud, tree and view
// packages.
package model

import (
	"sort"
	"strings"
)

// FrequencyEntry is a single (word, frequency) pair as delivered by a data
// source. Lists of entries are replaced wholesale on every fetch.
type FrequencyEntry struct {
	Text      string  `json:"text"`
	Frequency float64 `json:"frequency"`
}

// LayoutWord is a placed cloud label. X and Y are the label centre in
// cloud-centred coordinates; BoxWidth and BoxHeight are the measured extent
// the layout engine used for collision checks.
type LayoutWord struct {
	FrequencyEntry
	X               float64 `json:"x"`
	Y               float64 `json:"y"`
	RotationDegrees float64 `json:"rotate"`
	FontSize        float64 `json:"size"`
	ColorIndex      int     `json:"color"`
	BoxWidth        float64 `json:"box_width"`
	BoxHeight       float64 `json:"box_height"`
}

// TreeNode is the externally supplied word tree. The same Word may appear at
// several positions, so nodes are identified by their path, never by Word.
type TreeNode struct {
	Word     string      `json:"word"`
	Children []*TreeNode `json:"children,omitempty"`
}

// Count returns the number of nodes in the subtree rooted at n.
func (n *TreeNode) Count() int {
	if n == nil {
		return 0
	}
	total := 1
	for _, c := range n.Children {
		total += c.Count()
	}
	return total
}

// Depth returns the number of levels in the subtree rooted at n.
func (n *TreeNode) Depth() int {
	if n == nil {
		return 0
	}
	deepest := 0
	for _, c := range n.Children {
		if d := c.Depth(); d > deepest {
			deepest = d
		}
	}
	return deepest + 1
}

// FilterCriteria narrows the data source to particular review sources and a
// product category. An empty value matches everything.
type FilterCriteria struct {
	Sources  []string `json:"sources,omitempty" yaml:"sources,omitempty" toml:"sources"`
	Category string   `json:"category,omitempty" yaml:"category,omitempty" toml:"category"`
}

// Key returns a stable string for the criteria, independent of the order of
// Sources. Used for memoization and fetch coalescing.
func (f FilterCriteria) Key() string {
	sources := make([]string, 0, len(f.Sources))
	for _, s := range f.Sources {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			sources = append(sources, s)
		}
	}
	sort.Strings(sources)
	return strings.Join(sources, ",") + "|" + strings.ToLower(strings.TrimSpace(f.Category))
}

// MatchesSource reports whether source passes the Sources filter.
func (f FilterCriteria) MatchesSource(source string) bool {
	if len(f.Sources) == 0 {
		return true
	}
	for _, s := range f.Sources {
		if strings.EqualFold(strings.TrimSpace(s), source) {
			return true
		}
	}
	return false
}

// MatchesCategory reports whether category passes the Category filter.
func (f FilterCriteria) MatchesCategory(category string) bool {
	c := strings.TrimSpace(f.Category)
	return c == "" || strings.EqualFold(c, category)
}
