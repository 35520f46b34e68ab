package history

import (
	"errors"
	"reflect"
	"testing"

	"xl-vim/internal/grid"
)

type snapshot struct {
	names  []string
	cells  []map[grid.Pos]grid.Cell
	widths []map[int]int
}

func snap(w *grid.Workbook) snapshot {
	var s snapshot
	for _, sh := range w.Sheets() {
		s.names = append(s.names, sh.Name())
		s.cells = append(s.cells, sh.Cells())
		s.widths = append(s.widths, sh.Widths())
	}
	return s
}

func sample() *grid.Workbook {
	w := grid.New("A", "B")
	a := w.Sheet(0)
	for r := 0; r < 12; r++ {
		a.Set(r, 0, "row"+grid.RefName(grid.Pos{Row: r}))
		a.Set(r, 2, "x")
	}
	a.SetWidth(2, 22)
	w.Sheet(1).Set(0, 0, "b")
	w.MarkClean()
	return w
}

func TestEmptyStacks(t *testing.T) {
	h := New()
	w := sample()
	if _, _, err := h.Undo(w); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("Undo err = %v", err)
	}
	if _, _, err := h.Redo(w); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("Redo err = %v", err)
	}
	if h.CanUndo() || h.CanRedo() {
		t.Error("new history should be empty")
	}
}

func TestRoundTripEachOp(t *testing.T) {
	tests := []struct {
		name string
		op   func(w *grid.Workbook) Op
	}{
		{"cell edit", func(w *grid.Workbook) Op {
			s := w.Sheet(0)
			old, _ := s.Cell(3, 0)
			return CellEdit{Sheet: s, Row: 3, Col: 0, Old: old, New: grid.Cell{Content: "new"}}
		}},
		{"cell edit beyond extent", func(w *grid.Workbook) Op {
			return CellEdit{Sheet: w.Sheet(0), Row: 40, Col: 9, New: grid.Cell{Content: "far"}}
		}},
		{"row delete", func(w *grid.Workbook) Op {
			s := w.Sheet(0)
			removed, _ := s.Clone().DeleteRow(4)
			return RowDelete{Sheet: s, Row: 4, Removed: removed}
		}},
		{"column delete", func(w *grid.Workbook) Op {
			s := w.Sheet(0)
			col := grid.Column{Cells: map[int]grid.Cell{}}
			for r := 0; r < 12; r++ {
				if c, ok := s.Cell(r, 0); ok {
					col.Cells[r] = c
				}
			}
			return ColumnDelete{Sheet: s, Col: 0, Removed: col}
		}},
		{"sheet delete", func(w *grid.Workbook) Op {
			return SheetDelete{Index: 0, Removed: w.Sheet(0)}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := sample()
			h := New()
			before := snap(w)
			op := tt.op(w)
			if _, err := h.Do(w, op, Focus{Sheet: w.Sheet(0)}); err != nil {
				t.Fatalf("Do: %v", err)
			}
			after := snap(w)
			if reflect.DeepEqual(before, after) {
				t.Fatal("op did not change the workbook")
			}
			if _, _, err := h.Undo(w); err != nil {
				t.Fatalf("Undo: %v", err)
			}
			if got := snap(w); !reflect.DeepEqual(got, before) {
				t.Errorf("after undo:\n got %+v\nwant %+v", got, before)
			}
			if _, _, err := h.Redo(w); err != nil {
				t.Fatalf("Redo: %v", err)
			}
			if got := snap(w); !reflect.DeepEqual(got, after) {
				t.Errorf("after redo:\n got %+v\nwant %+v", got, after)
			}
		})
	}
}

func TestRecordClearsRedo(t *testing.T) {
	w := sample()
	h := New()
	s := w.Sheet(0)
	s.Set(0, 5, "a")
	h.Record(CellEdit{Sheet: s, Row: 0, Col: 5, New: grid.Cell{Content: "a"}}, Focus{})
	if _, _, err := h.Undo(w); err != nil {
		t.Fatal(err)
	}
	if !h.CanRedo() {
		t.Fatal("undo should enable redo")
	}
	s.Set(1, 5, "b")
	h.Record(CellEdit{Sheet: s, Row: 1, Col: 5, New: grid.Cell{Content: "b"}}, Focus{})
	if h.CanRedo() {
		t.Error("recording should clear redo")
	}
}

func TestUndoFocus(t *testing.T) {
	w := sample()
	h := New()
	s := w.Sheet(0)
	old, _ := s.Cell(2, 2)
	op := CellEdit{Sheet: s, Row: 2, Col: 2, Old: old, New: grid.Cell{Content: "y"}}
	if _, err := h.Do(w, op, Focus{}); err != nil {
		t.Fatal(err)
	}
	_, f, err := h.Undo(w)
	if err != nil {
		t.Fatal(err)
	}
	if f.Sheet != s || f.Row != 2 || f.Col != 2 {
		t.Errorf("focus = %+v, want edited cell", f)
	}

	_, _, _ = h.Redo(w)
	before := Focus{Sheet: s, Row: 7, Col: 1}
	h2 := New()
	h2.Record(op, before)
	_, f, _ = h2.Undo(w)
	if f != before {
		t.Errorf("focus = %+v, want recorded %+v", f, before)
	}
}

func TestBatchRangeDelete(t *testing.T) {
	w := sample()
	h := New()
	s := w.Sheet(0)
	before := snap(w)
	below := s.Get(11, 0)

	var ops []Op
	for r := 10; r >= 5; r-- {
		removed, ok := s.DeleteRow(r)
		if !ok {
			t.Fatalf("DeleteRow(%d) reported no change", r)
		}
		ops = append(ops, RowDelete{Sheet: s, Row: r, Removed: removed})
	}
	h.Record(Batch{Label: "delete of rows 6-11", Ops: ops}, Focus{Sheet: s})

	if got := s.Get(5, 0); got != below {
		t.Errorf("row 11 should shift to 5: got %q want %q", got, below)
	}
	if undo, _ := h.Len(); undo != 1 {
		t.Errorf("batch should be one undo entry, got %d", undo)
	}
	if _, _, err := h.Undo(w); err != nil {
		t.Fatal(err)
	}
	if got := snap(w); !reflect.DeepEqual(got, before) {
		t.Errorf("batch undo did not restore rows")
	}
}

func TestRevertDetachedSheetIsInconsistent(t *testing.T) {
	w := sample()
	h := New()
	s := w.Sheet(1)
	h.Record(CellEdit{Sheet: s, Row: 0, Col: 0, Old: grid.Cell{}, New: grid.Cell{Content: "b"}}, Focus{})
	if _, err := w.DeleteSheet(1); err != nil {
		t.Fatal(err)
	}
	if _, _, err := h.Undo(w); !errors.Is(err, ErrInconsistent) {
		t.Errorf("err = %v, want ErrInconsistent", err)
	}
}
