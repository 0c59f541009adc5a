// Package cloud turns (word, frequency) lists into a non-overlapping,
// frequency-scaled word cloud layout.
package cloud

import (
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/vanderheijden86/wordtree/pkg/metrics"
	"github.com/vanderheijden86/wordtree/pkg/model"
)

// Font size bounds in pixels.
const (
	MinFontSize           = 12.0
	MaxFontSize           = 40.0
	MaxFontSizeFullscreen = 80.0
	MaxFontSizeWideScreen = 100.0
	wideScreenWidth       = 1600.0
)

// NormalizeOptions controls Normalize.
type NormalizeOptions struct {
	Floor      float64 // entries with frequency <= Floor are dropped
	Limit      int     // keep only the top Limit entries; 0 keeps all
	Width      float64 // container width in pixels
	Fullscreen bool
}

// SizedWord is a frequency entry with its font size assigned.
type SizedWord struct {
	model.FrequencyEntry
	FontSize float64
}

// MaxFontSizeFor returns the largest font size for the given mode.
func MaxFontSizeFor(width float64, fullscreen bool) float64 {
	if !fullscreen {
		return MaxFontSize
	}
	if width >= wideScreenWidth {
		return MaxFontSizeWideScreen
	}
	return MaxFontSizeFullscreen
}

// Normalize filters, ranks and sizes entries. The result is sorted by
// descending frequency (ties by text) and never contains a font size below
// MinFontSize. Normalize is pure.
func Normalize(entries []model.FrequencyEntry, opts NormalizeOptions) []SizedWord {
	defer metrics.Timer(metrics.Normalize)()

	kept := make([]model.FrequencyEntry, 0, len(entries))
	for _, e := range entries {
		if e.Frequency <= opts.Floor || e.Text == "" {
			continue
		}
		kept = append(kept, e)
	}
	if len(kept) == 0 {
		return nil
	}

	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].Frequency != kept[j].Frequency {
			return kept[i].Frequency > kept[j].Frequency
		}
		return kept[i].Text < kept[j].Text
	})
	if opts.Limit > 0 && len(kept) > opts.Limit {
		kept = kept[:opts.Limit]
	}

	freqs := make([]float64, len(kept))
	for i, e := range kept {
		freqs[i] = e.Frequency
	}
	maxFreq := floats.Max(freqs)
	maxSize := MaxFontSizeFor(opts.Width, opts.Fullscreen)

	out := make([]SizedWord, len(kept))
	for i, e := range kept {
		size := MinFontSize
		if maxFreq > 0 {
			size = MinFontSize + (maxSize-MinFontSize)*(e.Frequency/maxFreq)
		}
		if size < MinFontSize {
			size = MinFontSize
		}
		out[i] = SizedWord{FrequencyEntry: e, FontSize: size}
	}
	return out
}
