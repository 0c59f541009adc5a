package export

import (
	"io"
	"math"

	"git.sr.ht/~sbinet/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/vanderheijden86/wordtree/pkg/scene"
)

// basicfont.Face7x13 is a fixed 13px bitmap face; labels are scaled from it.
const baseFaceSize = 13.0

// maxPNGSide caps the raster size so huge trees do not exhaust memory.
const maxPNGSide = 8192

// WritePNG rasterizes s.
func WritePNG(w io.Writer, s scene.Scene) error {
	width := int(math.Ceil(s.Width))
	height := int(math.Ceil(s.Height))
	scale := 1.0
	if side := math.Max(float64(width), float64(height)); side > maxPNGSide {
		scale = maxPNGSide / side
		width = int(math.Ceil(s.Width * scale))
		height = int(math.Ceil(s.Height * scale))
	}
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	dc := gg.NewContext(width, height)
	if s.Background != "" {
		dc.SetHexColor(s.Background)
		dc.Clear()
	}
	dc.Scale(scale, scale)
	dc.Translate(-s.MinX, -s.MinY)
	dc.SetFontFace(basicfont.Face7x13)

	for _, e := range s.Elements {
		switch e.Kind {
		case scene.KindCurve:
			c := e.Curve
			dc.NewSubPath()
			dc.MoveTo(c[0].X, c[0].Y)
			dc.CubicTo(c[1].X, c[1].Y, c[2].X, c[2].Y, c[3].X, c[3].Y)
			dc.SetHexColor(e.Stroke)
			dc.SetLineWidth(e.StrokeWidth)
			dc.Stroke()
		case scene.KindCircle:
			dc.DrawCircle(e.X, e.Y, e.R)
			dc.SetHexColor(e.Fill)
			dc.FillPreserve()
			dc.SetHexColor(e.Stroke)
			dc.SetLineWidth(e.StrokeWidth)
			dc.Stroke()
		case scene.KindText:
			drawText(dc, e)
		}
	}
	return dc.EncodePNG(w)
}

func drawText(dc *gg.Context, e scene.Element) {
	ax := 0.0
	switch e.Anchor {
	case "middle":
		ax = 0.5
	case "end":
		ax = 1
	}
	k := e.FontSize / baseFaceSize
	if k <= 0 {
		k = 1
	}
	dc.Push()
	dc.Translate(e.X+e.DX, e.Y+e.DY)
	dc.Scale(k, k)
	dc.SetHexColor(e.Fill)
	dc.DrawStringAnchored(e.Text, 0, 0, ax, 0)
	dc.Pop()
}
