// Package history records reversible workbook mutations.
package history

import (
	"errors"
	"fmt"

	"xl-vim/internal/grid"
)

// ErrInconsistent marks a recorded op that could not be applied or reverted.
// It indicates a bug, not a user error.
var ErrInconsistent = errors.New("history out of sync with workbook")

// Focus is where the cursor belongs after an op is applied or reverted.
// Row or Col of -1 leaves that coordinate unchanged.
type Focus struct {
	Sheet *grid.Sheet
	Row   int
	Col   int
}

// Op is one recorded mutation. The set of implementations is closed.
type Op interface {
	apply(w *grid.Workbook) (Focus, error)
	revert(w *grid.Workbook) (Focus, error)
	// Describe names the op for notices, e.g. "edit on B3".
	Describe() string
}

// CellEdit replaces the content of one cell.
type CellEdit struct {
	Sheet    *grid.Sheet
	Row, Col int
	Old, New grid.Cell
}

// RowDelete removes one row. Removed holds its cells keyed by column.
type RowDelete struct {
	Sheet   *grid.Sheet
	Row     int
	Removed map[int]grid.Cell
}

// ColumnDelete removes one column, width included.
type ColumnDelete struct {
	Sheet   *grid.Sheet
	Col     int
	Removed grid.Column
}

// SheetDelete removes a whole sheet. Removed is the detached sheet.
type SheetDelete struct {
	Index   int
	Removed *grid.Sheet
}

// Batch groups ops that undo and redo together. Ops are applied in order and
// reverted in reverse order.
type Batch struct {
	Label string
	Ops   []Op
}

func (e CellEdit) apply(w *grid.Workbook) (Focus, error) {
	if w.IndexOf(e.Sheet) < 0 {
		return Focus{}, fmt.Errorf("%w: %s", ErrInconsistent, e.Describe())
	}
	e.Sheet.SetCell(e.Row, e.Col, e.New)
	return Focus{Sheet: e.Sheet, Row: e.Row, Col: e.Col}, nil
}

func (e CellEdit) revert(w *grid.Workbook) (Focus, error) {
	if w.IndexOf(e.Sheet) < 0 {
		return Focus{}, fmt.Errorf("%w: %s", ErrInconsistent, e.Describe())
	}
	e.Sheet.SetCell(e.Row, e.Col, e.Old)
	return Focus{Sheet: e.Sheet, Row: e.Row, Col: e.Col}, nil
}

func (e CellEdit) Describe() string {
	return "edit on " + grid.RefName(grid.Pos{Row: e.Row, Col: e.Col})
}

func (d RowDelete) apply(w *grid.Workbook) (Focus, error) {
	if w.IndexOf(d.Sheet) < 0 {
		return Focus{}, fmt.Errorf("%w: %s", ErrInconsistent, d.Describe())
	}
	d.Sheet.DeleteRow(d.Row)
	return Focus{Sheet: d.Sheet, Row: d.Row, Col: -1}, nil
}

func (d RowDelete) revert(w *grid.Workbook) (Focus, error) {
	if w.IndexOf(d.Sheet) < 0 {
		return Focus{}, fmt.Errorf("%w: %s", ErrInconsistent, d.Describe())
	}
	d.Sheet.InsertRow(d.Row, d.Removed)
	return Focus{Sheet: d.Sheet, Row: d.Row, Col: -1}, nil
}

func (d RowDelete) Describe() string { return fmt.Sprintf("delete of row %d", d.Row+1) }

func (d ColumnDelete) apply(w *grid.Workbook) (Focus, error) {
	if w.IndexOf(d.Sheet) < 0 {
		return Focus{}, fmt.Errorf("%w: %s", ErrInconsistent, d.Describe())
	}
	d.Sheet.DeleteColumn(d.Col)
	return Focus{Sheet: d.Sheet, Row: -1, Col: d.Col}, nil
}

func (d ColumnDelete) revert(w *grid.Workbook) (Focus, error) {
	if w.IndexOf(d.Sheet) < 0 {
		return Focus{}, fmt.Errorf("%w: %s", ErrInconsistent, d.Describe())
	}
	d.Sheet.InsertColumn(d.Col, d.Removed)
	return Focus{Sheet: d.Sheet, Row: -1, Col: d.Col}, nil
}

func (d ColumnDelete) Describe() string {
	return "delete of column " + grid.ColumnName(d.Col)
}

func (d SheetDelete) apply(w *grid.Workbook) (Focus, error) {
	i := w.IndexOf(d.Removed)
	if i < 0 {
		return Focus{}, fmt.Errorf("%w: %s", ErrInconsistent, d.Describe())
	}
	if _, err := w.DeleteSheet(i); err != nil {
		return Focus{}, fmt.Errorf("%w: %v", ErrInconsistent, err)
	}
	return Focus{Sheet: w.ActiveSheet(), Row: -1, Col: -1}, nil
}

func (d SheetDelete) revert(w *grid.Workbook) (Focus, error) {
	if err := w.InsertSheet(d.Index, d.Removed); err != nil {
		return Focus{}, fmt.Errorf("%w: %v", ErrInconsistent, err)
	}
	return Focus{Sheet: d.Removed, Row: -1, Col: -1}, nil
}

func (d SheetDelete) Describe() string { return "delete of sheet '" + d.Removed.Name() + "'" }

func (b Batch) apply(w *grid.Workbook) (Focus, error) {
	var f Focus
	for _, op := range b.Ops {
		var err error
		if f, err = op.apply(w); err != nil {
			return f, err
		}
	}
	return f, nil
}

func (b Batch) revert(w *grid.Workbook) (Focus, error) {
	var f Focus
	for i := len(b.Ops) - 1; i >= 0; i-- {
		var err error
		if f, err = b.Ops[i].revert(w); err != nil {
			return f, err
		}
	}
	return f, nil
}

func (b Batch) Describe() string {
	if b.Label != "" {
		return b.Label
	}
	return fmt.Sprintf("%d changes", len(b.Ops))
}
