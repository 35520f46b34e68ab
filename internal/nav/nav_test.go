package nav

import (
	"testing"

	"xl-vim/internal/grid"
)

func sheetWithRow(values ...string) *grid.Sheet {
	s := grid.NewSheet("S")
	for c, v := range values {
		s.Set(0, c, v)
	}
	s.Touch(grid.Pos{Row: 0, Col: len(values) - 1})
	return s
}

func TestUnitStepsSaturate(t *testing.T) {
	s := grid.NewSheet("S")
	s.Set(2, 3, "x")

	p := grid.Pos{}
	for i := 0; i < 10; i++ {
		p = Move(s, p, Up)
		p = Move(s, p, Left)
	}
	if p != (grid.Pos{}) {
		t.Errorf("up/left past edge = %v, want origin", p)
	}
	for i := 0; i < 10; i++ {
		p = Move(s, p, Down)
		p = Move(s, p, Right)
	}
	if p != (grid.Pos{Row: 2, Col: 3}) {
		t.Errorf("down/right past edge = %v, want (2,3)", p)
	}
}

func TestMoveClampsOutOfRangeStart(t *testing.T) {
	s := grid.NewSheet("S")
	s.Set(1, 1, "x")
	got := Move(s, grid.Pos{Row: 40, Col: -3}, Left)
	if got != (grid.Pos{Row: 1, Col: 0}) {
		t.Errorf("Move from out-of-range = %v", got)
	}
}

func TestRowMotions(t *testing.T) {
	s := sheetWithRow("", "", "a", "", "b")
	s.Set(3, 6, "z")
	from := grid.Pos{Row: 0, Col: 3}

	tests := []struct {
		m    Motion
		want grid.Pos
	}{
		{RowStart, grid.Pos{Row: 0, Col: 0}},
		{RowFirstNonEmpty, grid.Pos{Row: 0, Col: 2}},
		{RowEnd, grid.Pos{Row: 0, Col: 6}},
		{FirstRow, grid.Pos{Row: 0, Col: 3}},
		{LastRow, grid.Pos{Row: 3, Col: 3}},
	}
	for _, tt := range tests {
		if got := Move(s, from, tt.m); got != tt.want {
			t.Errorf("%v: got %v, want %v", tt.m, got, tt.want)
		}
	}
}

func TestFirstNonEmptyOnBlankRow(t *testing.T) {
	s := grid.NewSheet("S")
	s.Set(0, 5, "x")
	got := Move(s, grid.Pos{Row: 0, Col: 3}, RowFirstNonEmpty)
	if got.Col != 5 {
		t.Errorf("col = %d, want 5", got.Col)
	}
	s.Set(1, 0, "")
	s.Touch(grid.Pos{Row: 1})
	got = Move(s, grid.Pos{Row: 1, Col: 3}, RowFirstNonEmpty)
	if got.Col != 0 {
		t.Errorf("blank row: col = %d, want 0", got.Col)
	}
}

// ---------------------------------------------------------------------------
// Block jumps
// ---------------------------------------------------------------------------

func TestJumpRightFromEmpty(t *testing.T) {
	s := sheetWithRow("", "x", "", "y", "")
	got := Move(s, grid.Pos{Col: 0}, JumpRight)
	if got.Col != 1 {
		t.Errorf("jump right from 0 = %d, want 1", got.Col)
	}
}

func TestJumpRightFromNonEmpty(t *testing.T) {
	s := sheetWithRow("", "x", "", "y", "")
	got := Move(s, grid.Pos{Col: 1}, JumpRight)
	if got.Col != 3 {
		t.Errorf("jump right from 1 = %d, want 3", got.Col)
	}
}

func TestJumpToBoundaryWhenNothingAhead(t *testing.T) {
	s := sheetWithRow("", "x", "", "y", "")
	got := Move(s, grid.Pos{Col: 3}, JumpRight)
	if got.Col != 4 {
		t.Errorf("jump right from 3 = %d, want 4 (boundary)", got.Col)
	}
	got = Move(s, grid.Pos{Col: 4}, JumpRight)
	if got.Col != 4 {
		t.Errorf("jump right at boundary = %d, want 4", got.Col)
	}
}

func TestJumpRunsToEndOfBlock(t *testing.T) {
	s := sheetWithRow("a", "b", "c", "", "d")
	if got := Move(s, grid.Pos{Col: 0}, JumpRight); got.Col != 2 {
		t.Errorf("jump within block = %d, want 2", got.Col)
	}
	if got := Move(s, grid.Pos{Col: 2}, JumpLeft); got.Col != 0 {
		t.Errorf("jump left within block = %d, want 0", got.Col)
	}
	if got := Move(s, grid.Pos{Col: 4}, JumpLeft); got.Col != 2 {
		t.Errorf("jump left over gap = %d, want 2", got.Col)
	}
}

func TestJumpVertical(t *testing.T) {
	s := grid.NewSheet("S")
	s.Set(0, 0, "h")
	s.Set(3, 0, "a")
	s.Set(4, 0, "b")
	s.Set(7, 1, "z")

	if got := Move(s, grid.Pos{Row: 0}, JumpDown); got.Row != 3 {
		t.Errorf("jump down from header = %d, want 3", got.Row)
	}
	if got := Move(s, grid.Pos{Row: 3}, JumpDown); got.Row != 4 {
		t.Errorf("jump down in block = %d, want 4", got.Row)
	}
	if got := Move(s, grid.Pos{Row: 4}, JumpDown); got.Row != 7 {
		t.Errorf("jump down past data = %d, want 7", got.Row)
	}
	if got := Move(s, grid.Pos{Row: 3}, JumpUp); got.Row != 0 {
		t.Errorf("jump up = %d, want 0", got.Row)
	}
}
