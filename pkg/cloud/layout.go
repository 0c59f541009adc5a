package cloud

import (
	"math"
	"sort"

	"github.com/vanderheijden86/wordtree/pkg/debug"
	"github.com/vanderheijden86/wordtree/pkg/metrics"
	"github.com/vanderheijden86/wordtree/pkg/model"
)

// Layout defaults.
const (
	DefaultPadding = 6.0
	DefaultMargin  = 20.0
	PaletteSize    = 10

	spiralStep     = 0.1
	spiralScale    = 2.0
	maxSpiralSteps = 500000
	gridCell       = 64.0
)

// LayoutOptions controls LayoutWords.
type LayoutOptions struct {
	Width      float64 // usable width in pixels
	BaseHeight float64 // target height; 0 means BaseHeightFor(Width, Fullscreen)
	Padding    float64 // minimum gap between label boxes; raised to DefaultPadding
	Margin     float64 // added to the measured extent; 0 means DefaultMargin
	Fullscreen bool
}

func (o LayoutOptions) withDefaults() LayoutOptions {
	if o.Width <= 0 {
		o.Width = 600
	}
	if o.BaseHeight <= 0 {
		o.BaseHeight = BaseHeightFor(o.Width, o.Fullscreen)
	}
	if o.Padding < DefaultPadding {
		o.Padding = DefaultPadding
	}
	if o.Margin <= 0 {
		o.Margin = DefaultMargin
	}
	return o
}

// BaseHeightFor returns the default target height for a container width.
func BaseHeightFor(width float64, fullscreen bool) float64 {
	if fullscreen {
		return math.Max(600, 0.75*width)
	}
	return math.Max(400, 0.65*width)
}

// Layout is a placed cloud. Coordinates are centred on (0, 0); every word
// box lies inside [-Width/2, Width/2] x [-Height/2, Height/2].
type Layout struct {
	Words      []model.LayoutWord
	Width      float64 // required width, at least the requested width
	Height     float64 // required height, at least the base height
	BaseHeight float64
	Overflowed bool // some word had to be stacked below the spiral area
}

type box struct {
	minX, minY, maxX, maxY float64
}

func (b box) hits(o box, pad float64) bool {
	return b.minX-pad < o.maxX && b.maxX+pad > o.minX &&
		b.minY-pad < o.maxY && b.maxY+pad > o.minY
}

// spiral walks an archimedean spiral stretched by ecc along x. Each step
// advances about arc pixels along the curve, so outer turns are sampled as
// densely as inner ones.
type spiral struct {
	t, ecc, arc float64
}

func (s *spiral) next() (x, y float64) {
	r := spiralScale * s.t
	x = s.ecc * r * math.Cos(s.t)
	y = r * math.Sin(s.t)
	s.t += math.Min(spiralStep, s.arc/math.Max(1, s.ecc*r))
	return x, y
}

// boxGrid buckets placed boxes into square cells for collision tests.
type boxGrid struct {
	cells map[[2]int][]box
}

func newBoxGrid() *boxGrid {
	return &boxGrid{cells: make(map[[2]int][]box)}
}

func cellRange(lo, hi float64) (int, int) {
	return int(math.Floor(lo / gridCell)), int(math.Floor(hi / gridCell))
}

func (g *boxGrid) add(b box) {
	x0, x1 := cellRange(b.minX, b.maxX)
	y0, y1 := cellRange(b.minY, b.maxY)
	for cx := x0; cx <= x1; cx++ {
		for cy := y0; cy <= y1; cy++ {
			k := [2]int{cx, cy}
			g.cells[k] = append(g.cells[k], b)
		}
	}
}

func (g *boxGrid) collides(c box, pad float64) bool {
	x0, x1 := cellRange(c.minX-pad, c.maxX+pad)
	y0, y1 := cellRange(c.minY-pad, c.maxY+pad)
	for cx := x0; cx <= x1; cx++ {
		for cy := y0; cy <= y1; cy++ {
			for _, p := range g.cells[[2]int{cx, cy}] {
				if c.hits(p, pad) {
					return true
				}
			}
		}
	}
	return false
}

// LayoutWords places words on an archimedean spiral from the centre, largest
// first. Words are never dropped: if the spiral cannot find room the word is
// stacked below everything placed so far and the reported height grows.
// Rotation is always 0. Identical inputs give identical layouts.
func LayoutWords(words []SizedWord, opts LayoutOptions) Layout {
	defer metrics.Timer(metrics.CloudLayout)()
	opts = opts.withDefaults()

	ordered := make([]SizedWord, len(words))
	copy(ordered, words)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].FontSize != ordered[j].FontSize {
			return ordered[i].FontSize > ordered[j].FontSize
		}
		return ordered[i].Text < ordered[j].Text
	})

	ecc := math.Min(3, math.Max(1, opts.Width/opts.BaseHeight))
	half := opts.Width / 2
	pad := opts.Padding

	result := Layout{
		Words:      make([]model.LayoutWord, 0, len(ordered)),
		BaseHeight: opts.BaseHeight,
	}
	placed := newBoxGrid()
	bottom := 0.0
	maxAbsX, maxAbsY := 0.0, 0.0

	for rank, w := range ordered {
		bw, bh := MeasureLabel(w.Text, w.FontSize)
		inBand := bw <= opts.Width

		var cx, cy float64
		found := false
		sp := spiral{ecc: ecc, arc: math.Max(2, math.Min(bw, bh)/2)}
		for step := 0; step < maxSpiralSteps; step++ {
			x, y := sp.next()
			if inBand && (x-bw/2 < -half || x+bw/2 > half) {
				continue
			}
			candidate := box{x - bw/2, y - bh/2, x + bw/2, y + bh/2}
			if placed.collides(candidate, pad) {
				continue
			}
			cx, cy = x, y
			found = true
			break
		}
		if !found {
			cx = 0
			cy = bottom + pad + bh/2
			result.Overflowed = true
			debug.Log("cloud: stacking %q below the spiral area", w.Text)
		}

		b := box{cx - bw/2, cy - bh/2, cx + bw/2, cy + bh/2}
		placed.add(b)
		bottom = math.Max(bottom, b.maxY)
		maxAbsX = math.Max(maxAbsX, math.Abs(cx)+bw/2)
		maxAbsY = math.Max(maxAbsY, math.Abs(cy)+bh/2)

		result.Words = append(result.Words, model.LayoutWord{
			FrequencyEntry: w.FrequencyEntry,
			X:              cx,
			Y:              cy,
			FontSize:       w.FontSize,
			ColorIndex:     rank % PaletteSize,
			BoxWidth:       bw,
			BoxHeight:      bh,
		})
	}

	result.Width = math.Max(opts.Width, 2*maxAbsX+opts.Margin)
	result.Height = math.Max(opts.BaseHeight, 2*maxAbsY+opts.Margin)
	return result
}
