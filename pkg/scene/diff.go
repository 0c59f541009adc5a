package scene

import (
	"fmt"
	"sort"
)

// Diff lists element keys that differ between two scenes.
type Diff struct {
	Added     []string
	Removed   []string
	Updated   []string
	Unchanged int
	Resized   bool // canvas size or view box changed
}

// Empty reports whether nothing changed.
func (d Diff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Updated) == 0 && !d.Resized
}

func (d Diff) String() string {
	return fmt.Sprintf("+%d -%d ~%d =%d", len(d.Added), len(d.Removed), len(d.Updated), d.Unchanged)
}

// Compare returns the changes needed to turn prev into next. Key lists are
// sorted.
func Compare(prev, next Scene) Diff {
	old := make(map[string]Element, len(prev.Elements))
	for _, e := range prev.Elements {
		old[e.Key] = e
	}

	var d Diff
	seen := make(map[string]struct{}, len(next.Elements))
	for _, e := range next.Elements {
		seen[e.Key] = struct{}{}
		was, ok := old[e.Key]
		switch {
		case !ok:
			d.Added = append(d.Added, e.Key)
		case was != e:
			d.Updated = append(d.Updated, e.Key)
		default:
			d.Unchanged++
		}
	}
	for _, e := range prev.Elements {
		if _, ok := seen[e.Key]; !ok {
			d.Removed = append(d.Removed, e.Key)
		}
	}

	d.Resized = prev.Width != next.Width || prev.Height != next.Height ||
		prev.MinX != next.MinX || prev.MinY != next.MinY

	sort.Strings(d.Added)
	sort.Strings(d.Removed)
	sort.Strings(d.Updated)
	return d
}
