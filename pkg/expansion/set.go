package expansion

import (
	"sort"
	"strconv"
)

// Set is an immutable set of path keys. The zero value is empty. Operations
// return new sets and never modify the receiver.
type Set struct {
	ids map[string]struct{}
}

// NewSet returns a set holding ids.
func NewSet(ids ...string) Set {
	m := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		m[id] = struct{}{}
	}
	return Set{ids: m}
}

// Has reports membership.
func (s Set) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of ids.
func (s Set) Len() int { return len(s.ids) }

// IDs returns the ids in sorted order.
func (s Set) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Key returns a canonical string for the whole set, usable as a memo key.
// Each id is length-prefixed, so word text cannot make two sets collide.
func (s Set) Key() string {
	ids := s.IDs()
	n := 0
	for _, id := range ids {
		n += len(id) + 4
	}
	buf := make([]byte, 0, n)
	for _, id := range ids {
		buf = strconv.AppendInt(buf, int64(len(id)), 10)
		buf = append(buf, ':')
		buf = append(buf, id...)
	}
	return string(buf)
}

// Equal reports whether both sets hold the same ids.
func (s Set) Equal(o Set) bool {
	if len(s.ids) != len(o.ids) {
		return false
	}
	for id := range s.ids {
		if !o.Has(id) {
			return false
		}
	}
	return true
}

// with returns a copy of s with add inserted and every id in drop removed.
func (s Set) with(add string, drop map[string]struct{}) Set {
	m := make(map[string]struct{}, len(s.ids)+1)
	for id := range s.ids {
		if _, gone := drop[id]; !gone {
			m[id] = struct{}{}
		}
	}
	if add != "" {
		m[add] = struct{}{}
	}
	return Set{ids: m}
}
