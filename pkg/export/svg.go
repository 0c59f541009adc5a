package export

import (
	"fmt"
	"io"
	"math"

	"github.com/ajstarks/svgo"

	"github.com/vanderheijden86/wordtree/pkg/scene"
)

const fontFamily = "Helvetica, Arial, sans-serif"

// WriteSVG writes s as a standalone SVG document. Hover titles are emitted
// as <title> children so browsers show them as tooltips.
func WriteSVG(w io.Writer, s scene.Scene) error {
	ew := &errWriter{w: w}
	canvas := svg.New(ew)

	width, height := px(s.Width), px(s.Height)
	canvas.Startview(width, height, px(s.MinX), px(s.MinY), width, height)
	if s.Background != "" {
		canvas.Rect(px(s.MinX), px(s.MinY), width, height, "fill:"+s.Background)
	}

	for _, e := range s.Elements {
		switch e.Kind {
		case scene.KindCurve:
			canvas.Path(e.Path, fmt.Sprintf("fill:none;stroke:%s;stroke-width:%.1f", e.Stroke, e.StrokeWidth))
		case scene.KindCircle:
			canvas.Group()
			if e.Title != "" {
				canvas.Title(e.Title)
			}
			canvas.Circle(px(e.X), px(e.Y), px(e.R),
				fmt.Sprintf("fill:%s;stroke:%s;stroke-width:%.1f", e.Fill, e.Stroke, e.StrokeWidth))
			canvas.Gend()
		case scene.KindText:
			style := fmt.Sprintf("fill:%s;font-size:%.0fpx;font-family:%s;text-anchor:%s",
				e.Fill, e.FontSize, fontFamily, anchorOrStart(e.Anchor))
			if e.Bold {
				style += ";font-weight:bold"
			}
			if e.Title != "" {
				canvas.Group()
				canvas.Title(e.Title)
				canvas.Text(px(e.X+e.DX), px(e.Y+e.DY), e.Text, style)
				canvas.Gend()
			} else {
				canvas.Text(px(e.X+e.DX), px(e.Y+e.DY), e.Text, style)
			}
		}
	}
	canvas.End()
	return ew.err
}

func px(v float64) int {
	return int(math.Round(v))
}

func anchorOrStart(a string) string {
	if a == "" {
		return "start"
	}
	return a
}

// errWriter remembers the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}
