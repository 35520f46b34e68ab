package grid

import (
	"sort"
)

// Pos is a zero-based cell coordinate.
type Pos struct {
	Row int
	Col int
}

// Less orders positions row-major.
func (p Pos) Less(o Pos) bool {
	if p.Row != o.Row {
		return p.Row < o.Row
	}
	return p.Col < o.Col
}

// Cell holds raw content and the value shown for it. Display is the cached
// value read from the workbook file; for edited cells it equals Content.
type Cell struct {
	Content string
	Display string
}

// Text returns the value to render.
func (c Cell) Text() string {
	if c.Display != "" {
		return c.Display
	}
	return c.Content
}

// IsFormula reports whether the content is a formula string.
func (c Cell) IsFormula() bool {
	return len(c.Content) > 0 && c.Content[0] == '='
}

// Column is a removed column: its cells keyed by row plus its width, if any.
type Column struct {
	Cells    map[int]Cell
	Width    int
	HasWidth bool
}

// Sheet is a sparse grid of cells. Only cells with non-empty content are
// stored. The known extent grows with content and never shrinks.
type Sheet struct {
	name   string
	cells  map[Pos]Cell
	widths map[int]int
	maxRow int
	maxCol int
	dirty  bool
	owner  *Workbook
}

// NewSheet returns an empty sheet.
func NewSheet(name string) *Sheet {
	return &Sheet{
		name:   name,
		cells:  make(map[Pos]Cell),
		widths: make(map[int]int),
	}
}

// Name returns the sheet name.
func (s *Sheet) Name() string { return s.name }

// Dirty reports whether the sheet has been mutated since the last save.
func (s *Sheet) Dirty() bool { return s.dirty }

// Extent returns the highest known row and column.
func (s *Sheet) Extent() (maxRow, maxCol int) { return s.maxRow, s.maxCol }

// Len returns the number of stored cells.
func (s *Sheet) Len() int { return len(s.cells) }

// Get returns the content at (row, col), or "" for an absent cell.
func (s *Sheet) Get(row, col int) string {
	return s.cells[Pos{row, col}].Content
}

// Cell returns the cell at (row, col).
func (s *Sheet) Cell(row, col int) (Cell, bool) {
	c, ok := s.cells[Pos{row, col}]
	return c, ok
}

// Set writes content at (row, col). Empty content removes the cell.
func (s *Sheet) Set(row, col int, content string) {
	s.SetCell(row, col, Cell{Content: content})
}

// SetCell writes a full cell record. A cell with empty content is removed.
func (s *Sheet) SetCell(row, col int, c Cell) {
	if row < 0 || col < 0 {
		return
	}
	p := Pos{row, col}
	if c.Content == "" {
		delete(s.cells, p)
	} else {
		s.cells[p] = c
	}
	s.Touch(p)
	s.mutated()
}

// Load places a cell without marking the sheet dirty. Used by readers.
func (s *Sheet) Load(row, col int, c Cell) {
	if row < 0 || col < 0 || c.Content == "" {
		return
	}
	p := Pos{row, col}
	s.cells[p] = c
	s.Touch(p)
}

// Touch grows the known extent to include p.
func (s *Sheet) Touch(p Pos) {
	if p.Row > s.maxRow {
		s.maxRow = p.Row
	}
	if p.Col > s.maxCol {
		s.maxCol = p.Col
	}
}

// Width returns the width of col, or def when none is set.
func (s *Sheet) Width(col, def int) int {
	if w, ok := s.widths[col]; ok {
		return w
	}
	return def
}

// SetWidth sets a column width. Widths are presentation state and do not
// mark the sheet dirty.
func (s *Sheet) SetWidth(col, width int) {
	if col < 0 || width <= 0 {
		return
	}
	s.widths[col] = width
}

// Widths returns a copy of the explicit column widths.
func (s *Sheet) Widths() map[int]int {
	out := make(map[int]int, len(s.widths))
	for k, v := range s.widths {
		out[k] = v
	}
	return out
}

// Cells returns a copy of the stored cells.
func (s *Sheet) Cells() map[Pos]Cell {
	out := make(map[Pos]Cell, len(s.cells))
	for k, v := range s.cells {
		out[k] = v
	}
	return out
}

// Positions returns the positions of all stored cells in row-major order.
func (s *Sheet) Positions() []Pos {
	out := make([]Pos, 0, len(s.cells))
	for p := range s.cells {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// Bounds returns the last row and column holding content. ok is false for
// a sheet with no cells. Unlike Extent it ignores positions only visited.
func (s *Sheet) Bounds() (maxRow, maxCol int, ok bool) {
	for p := range s.cells {
		maxRow = max(maxRow, p.Row)
		maxCol = max(maxCol, p.Col)
	}
	return maxRow, maxCol, len(s.cells) > 0
}

// DeleteRow removes row and shifts every row below it up by one. It returns
// the removed cells keyed by column and whether anything changed. Deleting a
// row outside the known data is a successful no-op.
func (s *Sheet) DeleteRow(row int) (map[int]Cell, bool) {
	if row < 0 {
		return nil, false
	}
	removed := make(map[int]Cell)
	moved := make(map[Pos]Cell)
	for p, c := range s.cells {
		switch {
		case p.Row == row:
			removed[p.Col] = c
			delete(s.cells, p)
		case p.Row > row:
			moved[Pos{p.Row - 1, p.Col}] = c
			delete(s.cells, p)
		}
	}
	if len(removed) == 0 && len(moved) == 0 {
		return removed, false
	}
	for p, c := range moved {
		s.cells[p] = c
	}
	s.mutated()
	return removed, true
}

// InsertRow shifts rows at and below row down by one and fills row with
// cells. It is the inverse of DeleteRow.
func (s *Sheet) InsertRow(row int, cells map[int]Cell) {
	if row < 0 {
		return
	}
	moved := make(map[Pos]Cell)
	for p, c := range s.cells {
		if p.Row >= row {
			moved[Pos{p.Row + 1, p.Col}] = c
			delete(s.cells, p)
		}
	}
	for p, c := range moved {
		s.cells[p] = c
		s.Touch(p)
	}
	for col, c := range cells {
		if c.Content == "" {
			continue
		}
		p := Pos{row, col}
		s.cells[p] = c
		s.Touch(p)
	}
	s.mutated()
}

// DeleteColumn removes col and shifts every column to its right left by one,
// widths included. Deleting a column outside the known data is a successful
// no-op.
func (s *Sheet) DeleteColumn(col int) (Column, bool) {
	removed := Column{Cells: make(map[int]Cell)}
	if col < 0 {
		return removed, false
	}
	moved := make(map[Pos]Cell)
	for p, c := range s.cells {
		switch {
		case p.Col == col:
			removed.Cells[p.Row] = c
			delete(s.cells, p)
		case p.Col > col:
			moved[Pos{p.Row, p.Col - 1}] = c
			delete(s.cells, p)
		}
	}
	if len(removed.Cells) == 0 && len(moved) == 0 {
		return removed, false
	}
	for p, c := range moved {
		s.cells[p] = c
	}
	removed.Width, removed.HasWidth = s.widths[col]
	s.widths = shiftWidths(s.widths, col, -1)
	s.mutated()
	return removed, true
}

// InsertColumn is the inverse of DeleteColumn.
func (s *Sheet) InsertColumn(col int, column Column) {
	if col < 0 {
		return
	}
	moved := make(map[Pos]Cell)
	for p, c := range s.cells {
		if p.Col >= col {
			moved[Pos{p.Row, p.Col + 1}] = c
			delete(s.cells, p)
		}
	}
	for p, c := range moved {
		s.cells[p] = c
		s.Touch(p)
	}
	for row, c := range column.Cells {
		if c.Content == "" {
			continue
		}
		p := Pos{row, col}
		s.cells[p] = c
		s.Touch(p)
	}
	s.widths = shiftWidths(s.widths, col, 1)
	if column.HasWidth {
		s.widths[col] = column.Width
	}
	s.mutated()
}

func shiftWidths(widths map[int]int, col, delta int) map[int]int {
	out := make(map[int]int, len(widths))
	for c, w := range widths {
		switch {
		case c < col:
			out[c] = w
		case delta < 0 && c == col:
			// dropped with the column
		default:
			out[c+delta] = w
		}
	}
	return out
}

// Clone returns a deep copy detached from any workbook.
func (s *Sheet) Clone() *Sheet {
	return &Sheet{
		name:   s.name,
		cells:  s.Cells(),
		widths: s.Widths(),
		maxRow: s.maxRow,
		maxCol: s.maxCol,
		dirty:  s.dirty,
	}
}

func (s *Sheet) mutated() {
	s.dirty = true
	if s.owner != nil {
		s.owner.version++
	}
}
