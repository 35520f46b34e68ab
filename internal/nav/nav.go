// Package nav computes cursor targets. Every function here is pure: it reads
// the sheet and never mutates it.
package nav

import "xl-vim/internal/grid"

// Motion is a cursor movement request.
type Motion int

const (
	Left Motion = iota
	Right
	Up
	Down
	RowStart
	RowFirstNonEmpty
	RowEnd
	FirstRow
	LastRow
	JumpLeft
	JumpRight
	JumpUp
	JumpDown
)

var motionNames = map[Motion]string{
	Left:             "left",
	Right:            "right",
	Up:               "up",
	Down:             "down",
	RowStart:         "first column",
	RowFirstNonEmpty: "first non-empty column",
	RowEnd:           "last column",
	FirstRow:         "first row",
	LastRow:          "last row",
	JumpLeft:         "left",
	JumpRight:        "right",
	JumpUp:           "up",
	JumpDown:         "down",
}

func (m Motion) String() string { return motionNames[m] }

// IsJump reports whether m is a block jump.
func (m Motion) IsJump() bool { return m >= JumpLeft }

// Move returns the position reached from `from` by m. Results saturate at
// row/column 0 and at the sheet's known extent.
func Move(s *grid.Sheet, from grid.Pos, m Motion) grid.Pos {
	maxRow, maxCol := s.Extent()
	p := Clamp(s, from)
	switch m {
	case Left:
		p.Col--
	case Right:
		p.Col++
	case Up:
		p.Row--
	case Down:
		p.Row++
	case RowStart:
		p.Col = 0
	case RowFirstNonEmpty:
		p.Col = 0
		for c := 0; c <= maxCol; c++ {
			if s.Get(p.Row, c) != "" {
				p.Col = c
				break
			}
		}
	case RowEnd:
		p.Col = maxCol
	case FirstRow:
		p.Row = 0
	case LastRow:
		p.Row = maxRow
	case JumpLeft:
		p = jump(s, p, 0, -1)
	case JumpRight:
		p = jump(s, p, 0, 1)
	case JumpUp:
		p = jump(s, p, -1, 0)
	case JumpDown:
		p = jump(s, p, 1, 0)
	}
	return Clamp(s, p)
}

// Clamp limits p to [0, maxRow] x [0, maxCol].
func Clamp(s *grid.Sheet, p grid.Pos) grid.Pos {
	maxRow, maxCol := s.Extent()
	p.Row = max(0, min(p.Row, maxRow))
	p.Col = max(0, min(p.Col, maxCol))
	return p
}

// jump moves to the edge of a non-empty block. From inside a block it runs to
// the block's last cell; otherwise it goes to the next non-empty cell, or to
// the boundary when there is none.
func jump(s *grid.Sheet, p grid.Pos, dr, dc int) grid.Pos {
	maxRow, maxCol := s.Extent()
	in := func(q grid.Pos) bool {
		return q.Row >= 0 && q.Col >= 0 && q.Row <= maxRow && q.Col <= maxCol
	}
	filled := func(q grid.Pos) bool { return s.Get(q.Row, q.Col) != "" }
	step := func(q grid.Pos) grid.Pos { return grid.Pos{Row: q.Row + dr, Col: q.Col + dc} }

	next := step(p)
	if !in(next) {
		return p
	}
	if filled(p) && filled(next) {
		for in(step(next)) && filled(step(next)) {
			next = step(next)
		}
		return next
	}
	for q := next; in(q); q = step(q) {
		if filled(q) {
			return q
		}
		next = q
	}
	return next
}
