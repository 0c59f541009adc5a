// Package export renders scenes to SVG, gzip-compressed SVG and PNG.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/vanderheijden86/wordtree/pkg/debug"
	"github.com/vanderheijden86/wordtree/pkg/scene"
)

// Format is an output format.
type Format string

const (
	FormatSVG  Format = "svg"
	FormatSVGZ Format = "svgz"
	FormatPNG  Format = "png"
)

// ParseFormat resolves the output format from an explicit name or, when
// that is empty, from the file extension. Paths without an extension
// default to SVG.
func ParseFormat(path, explicit string) (Format, error) {
	name := strings.ToLower(strings.TrimPrefix(explicit, "."))
	if name == "" {
		name = strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
		if name == "" {
			return FormatSVG, nil
		}
	}
	switch Format(name) {
	case FormatSVG, FormatSVGZ, FormatPNG:
		return Format(name), nil
	default:
		return "", fmt.Errorf("unsupported format %q (want svg, svgz or png)", name)
	}
}

// SnapshotOptions controls Save.
type SnapshotOptions struct {
	Path   string // output path; an extension is appended when missing
	Format string // svg, svgz or png; inferred from Path when empty
}

// Save renders s to opts.Path and returns the path written.
func Save(s scene.Scene, opts SnapshotOptions) (string, error) {
	if opts.Path == "" {
		return "", fmt.Errorf("output path is required")
	}
	format, err := ParseFormat(opts.Path, opts.Format)
	if err != nil {
		return "", err
	}
	path := opts.Path
	if filepath.Ext(path) == "" {
		path += "." + string(format)
	}
	if len(s.Elements) == 0 {
		debug.Log("export: empty scene to %s", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create parent dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := Write(f, s, format); err != nil {
		f.Close()
		return "", fmt.Errorf("render %s: %w", format, err)
	}
	return path, f.Close()
}

// Write renders s to w in the given format.
func Write(w io.Writer, s scene.Scene, format Format) error {
	switch format {
	case FormatSVG:
		return WriteSVG(w, s)
	case FormatSVGZ:
		return WriteSVGZ(w, s)
	case FormatPNG:
		return WritePNG(w, s)
	default:
		return fmt.Errorf("unhandled format %q", format)
	}
}

// WriteSVGZ writes gzip-compressed SVG.
func WriteSVGZ(w io.Writer, s scene.Scene) error {
	zw, err := gzip.NewWriterLevel(w, gzip.BestCompression)
	if err != nil {
		return err
	}
	if err := WriteSVG(zw, s); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}
