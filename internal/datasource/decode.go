package datasource

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"

	"github.com/vanderheijden86/wordtree/pkg/model"
)

// Document is the JSON dataset format.
type Document struct {
	Datasets []Dataset `json:"datasets"`
}

// Dataset is one review source and category. Trees are kept raw and decoded
// on demand, so one malformed tree does not fail the whole document.
type Dataset struct {
	Source      string                     `json:"source"`
	Category    string                     `json:"category"`
	Frequencies []model.FrequencyEntry     `json:"frequencies"`
	Trees       map[string]json.RawMessage `json:"trees,omitempty"`
}

// Matches reports whether the dataset passes f.
func (d Dataset) Matches(f model.FilterCriteria) bool {
	return f.MatchesSource(d.Source) && f.MatchesCategory(d.Category)
}

// DecodeDocument reads a dataset document.
func DecodeDocument(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode dataset document: %w", err)
	}
	return &doc, nil
}

// DecodeTree decodes one tree payload. Anything that is not an object with
// a non-empty root word is model.ErrInvalidPayload.
func DecodeTree(payload []byte) (*model.TreeNode, error) {
	payload = bytes.TrimSpace(payload)
	if len(payload) == 0 || bytes.Equal(payload, []byte("null")) {
		return nil, fmt.Errorf("%w: empty payload", model.ErrInvalidPayload)
	}
	var root model.TreeNode
	if err := json.Unmarshal(payload, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidPayload, err)
	}
	if strings.TrimSpace(root.Word) == "" {
		return nil, fmt.Errorf("%w: missing root word", model.ErrInvalidPayload)
	}
	pruneNil(&root)
	return &root, nil
}

// pruneNil drops null children, which JSON allows but the tree model does
// not.
func pruneNil(n *model.TreeNode) {
	kept := n.Children[:0]
	for _, c := range n.Children {
		if c == nil {
			continue
		}
		pruneNil(c)
		kept = append(kept, c)
	}
	if len(kept) == 0 {
		kept = nil
	}
	n.Children = kept
}
