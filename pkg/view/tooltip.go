package view

// DefaultTooltipGap is the distance between pointer and tooltip.
const DefaultTooltipGap = 12.0

// Point is a position in pixels.
type Point struct {
	X, Y float64
}

// Rect is a container rectangle in client coordinates.
type Rect struct {
	Left, Top, Width, Height float64
}

// TooltipRequest holds the inputs for PositionTooltip.
type TooltipRequest struct {
	Pointer   Point   // client coordinates
	Width     float64 // tooltip size
	Height    float64
	Container Rect
	Scroll    Point // container scroll offsets
	Gap       float64
}

// PositionTooltip places a tooltip above and to the left of the pointer,
// flipping below when there is no room above and to the right when there
// is no room on the left, then clamps it into the container. The result is
// in the container's content coordinates.
func PositionTooltip(r TooltipRequest) Point {
	gap := r.Gap
	if gap <= 0 {
		gap = DefaultTooltipGap
	}
	px := r.Pointer.X - r.Container.Left
	py := r.Pointer.Y - r.Container.Top

	x := px - r.Width - gap
	if x < 0 {
		x = px + gap
	}
	y := py - r.Height - gap
	if y < 0 {
		y = py + gap
	}

	x = clamp(x, 0, r.Container.Width-r.Width)
	y = clamp(y, 0, r.Container.Height-r.Height)
	return Point{X: x + r.Scroll.X, Y: y + r.Scroll.Y}
}

// clamp bounds v to [lo, hi]; lo wins when the range is empty.
func clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
