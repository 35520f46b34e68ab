package ui

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"xl-vim/internal/grid"
	"xl-vim/internal/session"
)

// Viewport is the scroll position of the grid: the first visible row and
// column.
type Viewport struct {
	Top, Left int
}

func gutterWidth(lastRow int) int {
	return max(4, len(fmt.Sprint(lastRow+1))+1)
}

// visibleColumns returns the columns that fit in avail cells starting at left.
// At least one column is always returned.
func visibleColumns(v session.View, left, avail int) []int {
	var cols []int
	used := 0
	for col := left; ; col++ {
		w := v.Sheet.Width(col, v.DefaultWidth) + 1
		if len(cols) > 0 && used+w > avail {
			return cols
		}
		cols = append(cols, col)
		used += w
		if used >= avail {
			return cols
		}
	}
}

// Follow scrolls the viewport so the cursor is inside a grid of the given
// size. rows counts data rows only.
func (vp *Viewport) Follow(v session.View, width, rows int) {
	rows = max(rows, 1)
	c := v.Cursor
	if c.Row < vp.Top {
		vp.Top = c.Row
	}
	if c.Row >= vp.Top+rows {
		vp.Top = c.Row - rows + 1
	}

	avail := width - gutterWidth(vp.Top+rows)
	if c.Col < vp.Left {
		vp.Left = c.Col
	}
	for vp.Left < c.Col {
		cols := visibleColumns(v, vp.Left, avail)
		if cols[len(cols)-1] >= c.Col && fits(v, cols, avail) {
			break
		}
		vp.Left++
	}
}

// fits reports whether every column in cols is fully shown.
func fits(v session.View, cols []int, avail int) bool {
	used := 0
	for _, col := range cols {
		used += v.Sheet.Width(col, v.DefaultWidth) + 1
	}
	return used <= avail
}

// cellText fits s into exactly w terminal cells.
func cellText(s string, w int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return runewidth.FillRight(runewidth.Truncate(s, w, "…"), w)
}

// RenderGrid draws the column header and rows data rows of the active sheet.
func RenderGrid(v session.View, vp Viewport, width, rows int) string {
	gw := gutterWidth(vp.Top + rows)
	cols := visibleColumns(v, vp.Left, width-gw)

	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", gw))
	for _, col := range cols {
		w := v.Sheet.Width(col, v.DefaultWidth)
		style := columnHeaderStyle
		if col == v.Cursor.Col {
			style = activeHeaderStyle
		}
		sb.WriteString(style.Render(cellText(grid.ColumnName(col), w)))
		sb.WriteString(" ")
	}

	for row := vp.Top; row < vp.Top+rows; row++ {
		sb.WriteString("\n")
		num := fmt.Sprintf("%*d ", gw-1, row+1)
		if row == v.Cursor.Row {
			sb.WriteString(activeHeaderStyle.Render(num))
		} else {
			sb.WriteString(gutterStyle.Render(num))
		}
		for _, col := range cols {
			sb.WriteString(renderCell(v, grid.Pos{Row: row, Col: col}))
			sb.WriteString(" ")
		}
	}
	return sb.String()
}

func renderCell(v session.View, p grid.Pos) string {
	w := v.Sheet.Width(p.Col, v.DefaultWidth)
	c, _ := v.Sheet.Cell(p.Row, p.Col)

	if p == v.Cursor && v.Editor != nil {
		return editCellStyle.Render(cellText(v.Editor.Value(), w))
	}
	text := cellText(c.Text(), w)
	switch {
	case p == v.Cursor:
		return cursorStyle.Render(text)
	case v.Highlights.Has(p):
		return searchHLStyle.Render(text)
	case c.IsFormula():
		return formulaStyle.Render(text)
	}
	return text
}
