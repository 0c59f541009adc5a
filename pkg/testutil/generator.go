// Package testutil provides deterministic fixtures and assertions for the
// cloud and tree layout tests.
package testutil

import (
	"fmt"
	"math/rand"

	"github.com/vanderheijden86/wordtree/pkg/model"
)

// reviewWords is a small vocabulary of review-mining terms. Duplicates are
// deliberate when building trees: the same word recurs at many positions.
var reviewWords = []string{
	"taste", "sweet", "bitter", "strong", "smooth", "aroma", "price",
	"packaging", "fresh", "delivery", "quality", "flavor", "roast", "acidic",
	"creamy", "value", "cheap", "great", "weak", "burnt",
}

// Generator creates reproducible frequency lists and word trees.
type Generator struct {
	rng *rand.Rand
}

// New returns a Generator seeded with seed.
func New(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// NewDefault returns a Generator with seed 42.
func NewDefault() *Generator {
	return New(42)
}

// Frequencies returns n entries with distinct text and frequencies in
// [1, maxFreq].
func (g *Generator) Frequencies(n int, maxFreq float64) []model.FrequencyEntry {
	out := make([]model.FrequencyEntry, n)
	for i := range out {
		word := reviewWords[i%len(reviewWords)]
		if i >= len(reviewWords) {
			word = fmt.Sprintf("%s%d", word, i/len(reviewWords))
		}
		out[i] = model.FrequencyEntry{
			Text:      word,
			Frequency: 1 + g.rng.Float64()*(maxFreq-1),
		}
	}
	return out
}

// Tree returns a full tree with the given depth (levels below the root) and
// breadth. Words are drawn from a small vocabulary so repeats are common.
func (g *Generator) Tree(root string, depth, breadth int) *model.TreeNode {
	n := &model.TreeNode{Word: root}
	if depth <= 0 {
		return n
	}
	for i := 0; i < breadth; i++ {
		word := reviewWords[g.rng.Intn(len(reviewWords))]
		n.Children = append(n.Children, g.Tree(word, depth-1, breadth))
	}
	return n
}

// TasteTree is the fixture with two sibling "sweet" nodes where only the
// second has a child.
func TasteTree() *model.TreeNode {
	return &model.TreeNode{Word: "taste", Children: []*model.TreeNode{
		{Word: "sweet"},
		{Word: "sweet", Children: []*model.TreeNode{{Word: "strong"}}},
	}}
}

// ABCFrequencies is the three-word fixture a=100, b=50, c=10.
func ABCFrequencies() []model.FrequencyEntry {
	return []model.FrequencyEntry{
		{Text: "a", Frequency: 100},
		{Text: "b", Frequency: 50},
		{Text: "c", Frequency: 10},
	}
}
