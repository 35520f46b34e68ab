// Package search scans a sheet for cells whose content contains a query.
package search

import (
	"sort"
	"strings"

	"xl-vim/internal/grid"
)

// Direction of a search.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	if d == Forward {
		return Backward
	}
	return Forward
}

// Prompt is the key that starts a search in this direction.
func (d Direction) Prompt() string {
	if d == Backward {
		return "?"
	}
	return "/"
}

// All returns every matching position in row-major order. Matching is
// case-sensitive substring containment on raw content.
func All(s *grid.Sheet, query string) []grid.Pos {
	if query == "" {
		return nil
	}
	var out []grid.Pos
	for p, c := range s.Cells() {
		if strings.Contains(c.Content, query) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// Result describes a search hit.
type Result struct {
	Pos     grid.Pos
	Wrapped bool
}

// Next finds the first match strictly after from in the given direction,
// wrapping around the sheet once. The cell at from is considered last, so a
// lone match under the cursor is found again after a full wrap.
func Next(s *grid.Sheet, query string, from grid.Pos, dir Direction) (Result, bool) {
	matches := All(s, query)
	if len(matches) == 0 {
		return Result{}, false
	}
	if dir == Forward {
		i := sort.Search(len(matches), func(i int) bool { return from.Less(matches[i]) })
		if i < len(matches) {
			return Result{Pos: matches[i]}, true
		}
		return Result{Pos: matches[0], Wrapped: true}, true
	}
	i := sort.Search(len(matches), func(i int) bool { return !matches[i].Less(from) })
	if i > 0 {
		return Result{Pos: matches[i-1]}, true
	}
	return Result{Pos: matches[len(matches)-1], Wrapped: true}, true
}

// Set is a lookup table of highlighted positions.
type Set map[grid.Pos]struct{}

// Highlights returns the matches of query as a set.
func Highlights(s *grid.Sheet, query string) Set {
	m := All(s, query)
	if len(m) == 0 {
		return nil
	}
	set := make(Set, len(m))
	for _, p := range m {
		set[p] = struct{}{}
	}
	return set
}

// Has reports whether p is highlighted.
func (s Set) Has(p grid.Pos) bool {
	_, ok := s[p]
	return ok
}
