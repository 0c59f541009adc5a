package testutil

import (
	"math"

	"github.com/vanderheijden86/wordtree/pkg/model"
)

// Reporter is the subset of testing.TB used by the assertions. Both
// *testing.T and *rapid.T satisfy it.
type Reporter interface {
	Helper()
	Errorf(format string, args ...any)
}

const eps = 1e-9

// AssertNoOverlap verifies that no two word boxes are closer than pad.
func AssertNoOverlap(t Reporter, words []model.LayoutWord, pad float64) {
	t.Helper()
	for i := 0; i < len(words); i++ {
		for j := i + 1; j < len(words); j++ {
			a, b := words[i], words[j]
			gapX := math.Abs(a.X-b.X) - (a.BoxWidth+b.BoxWidth)/2
			gapY := math.Abs(a.Y-b.Y) - (a.BoxHeight+b.BoxHeight)/2
			if gapX < pad-eps && gapY < pad-eps {
				t.Errorf("words %q and %q are too close (gapX=%.2f gapY=%.2f pad=%.1f)",
					a.Text, b.Text, gapX, gapY, pad)
			}
		}
	}
}

// AssertWithinBounds verifies every word box lies inside the centred
// width x height canvas.
func AssertWithinBounds(t Reporter, words []model.LayoutWord, width, height float64) {
	t.Helper()
	for _, w := range words {
		if math.Abs(w.X)+w.BoxWidth/2 > width/2+eps {
			t.Errorf("word %q overflows horizontally: |x|=%.2f half-width=%.2f canvas=%.2f",
				w.Text, math.Abs(w.X), w.BoxWidth/2, width)
		}
		if math.Abs(w.Y)+w.BoxHeight/2 > height/2+eps {
			t.Errorf("word %q overflows vertically: |y|=%.2f half-height=%.2f canvas=%.2f",
				w.Text, math.Abs(w.Y), w.BoxHeight/2, height)
		}
	}
}

// AssertWordSet verifies that words contains exactly the texts in want.
func AssertWordSet(t Reporter, words []model.LayoutWord, want ...string) {
	t.Helper()
	got := make(map[string]int, len(words))
	for _, w := range words {
		got[w.Text]++
	}
	if len(words) != len(want) {
		t.Errorf("expected %d words, got %d", len(want), len(words))
	}
	for _, text := range want {
		if got[text] != 1 {
			t.Errorf("expected word %q exactly once, found %d", text, got[text])
		}
	}
}
