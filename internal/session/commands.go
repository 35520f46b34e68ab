package session

import (
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"xl-vim/internal/command"
	"xl-vim/internal/config"
	"xl-vim/internal/export"
	"xl-vim/internal/grid"
	"xl-vim/internal/history"
)

// --- Command mode (:) ---------------------------------------------------

func (s *Session) updateCommand(m Command, msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		s.setMode(Browse{})
	case "enter":
		s.setMode(Browse{})
		return s.execute(m.Line)
	case "backspace":
		if m.Line == "" {
			s.setMode(Browse{})
			return nil
		}
		r := []rune(m.Line)
		s.setMode(Command{Line: string(r[:len(r)-1])})
	default:
		if len(msg.Runes) > 0 && !msg.Alt {
			s.setMode(Command{Line: m.Line + string(msg.Runes)})
		}
	}
	return nil
}

// Execute runs one command line as if typed after ':'.
func (s *Session) Execute(line string) tea.Cmd {
	return s.execute(line)
}

func (s *Session) execute(line string) tea.Cmd {
	c, err := command.Parse(line)
	if err != nil {
		s.fail(err)
		return nil
	}
	log.Printf("[session] :%s", line)

	switch c := c.(type) {
	case command.Write:
		return s.write(false)
	case command.WriteQuit:
		return s.write(true)
	case command.Quit:
		if s.wb.Dirty() && !c.Force {
			s.notify("Unsaved changes! Use :q! to force or :wq to save & quit")
			return nil
		}
		return quit
	case command.Copy:
		s.copyCell()
	case command.Cut:
		s.cutCell()
	case command.Put:
		s.pasteCell()
	case command.Goto:
		s.cur.Touch(c.Pos)
		s.cursor = c.Pos
		s.notify("Jumped to " + grid.RefName(c.Pos))
	case command.SwitchSheet:
		i, err := s.wb.Find(c.Target)
		if err != nil {
			s.fail(err)
			return nil
		}
		s.switchTo(i)
		s.notify(fmt.Sprintf("Switched to sheet '%s'", s.cur.Name()))
	case command.DeleteSheet:
		s.deleteSheet()
	case command.DeleteRows:
		s.deleteRows(c)
	case command.DeleteColumns:
		s.deleteColumns(c)
	case command.ColumnWidth:
		s.columnWidth(c)
	case command.NoHighlight:
		s.highlight = false
	case command.Help:
		return func() tea.Msg { return HelpMsg{} }
	case command.Export:
		return s.export(c)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Structural deletes
// ---------------------------------------------------------------------------

func (s *Session) deleteSheet() {
	before := s.focus()
	i := s.wb.Active()
	removed, err := s.wb.DeleteSheet(i)
	if err != nil {
		s.fail(err)
		return
	}
	s.hist.Record(history.SheetDelete{Index: i, Removed: removed}, before)
	s.sync()
	s.notify(fmt.Sprintf("Deleted sheet '%s'", removed.Name()))
}

// record stores ops as one undo step.
func (s *Session) record(ops []history.Op, label string, before history.Focus) {
	if len(ops) == 1 {
		s.hist.Record(ops[0], before)
		return
	}
	s.hist.Record(history.Batch{Label: "delete of " + label, Ops: ops}, before)
}

func rangeLabel(unit, start, end string) string {
	if start == end {
		return unit + " " + start
	}
	return unit + "s " + start + "-" + end
}

// shifted maps an index across the removal of [start, end].
func shifted(i, start, end int) int {
	switch {
	case i > end:
		return i - (end - start + 1)
	case i >= start:
		return start
	}
	return i
}

func (s *Session) deleteRows(c command.DeleteRows) {
	start, end := c.Start, c.End
	if c.Current {
		start, end = s.cursor.Row, s.cursor.Row
	}
	label := rangeLabel("row", fmt.Sprint(start+1), fmt.Sprint(end+1))
	sheet, before := s.cur, s.focus()
	maxRow, _, _ := sheet.Bounds()

	// Highest first, so lower indices stay valid. Rows past the last filled
	// row are empty, so the range stops there.
	var ops []history.Op
	for r := min(end, maxRow); r >= start; r-- {
		if removed, ok := sheet.DeleteRow(r); ok {
			ops = append(ops, history.RowDelete{Sheet: sheet, Row: r, Removed: removed})
		}
	}
	if len(ops) == 0 {
		s.notify("Nothing to delete at " + label)
		return
	}
	s.record(ops, label, before)
	s.cursor.Row = shifted(s.cursor.Row, start, end)
	s.sync()
	s.notify("Deleted " + label)
}

func (s *Session) deleteColumns(c command.DeleteColumns) {
	start, end := c.Start, c.End
	if c.Current {
		start, end = s.cursor.Col, s.cursor.Col
	}
	label := rangeLabel("column", grid.ColumnName(start), grid.ColumnName(end))
	sheet, before := s.cur, s.focus()
	_, maxCol, _ := sheet.Bounds()

	var ops []history.Op
	for col := min(end, maxCol); col >= start; col-- {
		if removed, ok := sheet.DeleteColumn(col); ok {
			ops = append(ops, history.ColumnDelete{Sheet: sheet, Col: col, Removed: removed})
		}
	}
	if len(ops) == 0 {
		s.notify("Nothing to delete at " + label)
		return
	}
	s.record(ops, label, before)
	s.cursor.Col = shifted(s.cursor.Col, start, end)
	s.sync()
	s.notify("Deleted " + label)
}

// ---------------------------------------------------------------------------
// Column widths
// ---------------------------------------------------------------------------

func (s *Session) clampWidth(w int) int {
	return max(s.cfg.MinColumnWidth, min(w, s.cfg.MaxColumnWidth))
}

// contentWidths returns the widest display text per column.
func contentWidths(sheet *grid.Sheet) map[int]int {
	widths := make(map[int]int)
	for p, c := range sheet.Cells() {
		widths[p.Col] = max(widths[p.Col], runewidth.StringWidth(c.Text()))
	}
	return widths
}

func (s *Session) columnWidth(c command.ColumnWidth) {
	sheet := s.cur
	cols := []int{s.cursor.Col}
	if c.All {
		_, maxCol, _ := sheet.Bounds()
		cols = cols[:0]
		for col := 0; col <= maxCol; col++ {
			cols = append(cols, col)
		}
	}

	var fit map[int]int
	if c.Mode == command.WidthFit {
		fit = contentWidths(sheet)
	}
	width := 0
	for _, col := range cols {
		switch c.Mode {
		case command.WidthFit:
			width = s.clampWidth(max(3, len(grid.ColumnName(col)), fit[col]))
		case command.WidthMin:
			width = s.cfg.MinColumnWidth
		default:
			width = s.clampWidth(c.Width)
		}
		sheet.SetWidth(col, width)
	}

	switch {
	case c.All && c.Mode == command.WidthFit:
		s.notify("Fitted all columns")
	case c.All && c.Mode == command.WidthMin:
		s.notify(fmt.Sprintf("Set all columns to width %d", width))
	default:
		s.notify(fmt.Sprintf("Column %s width set to %d", grid.ColumnName(s.cursor.Col), width))
	}
}

// ---------------------------------------------------------------------------
// JSON export
// ---------------------------------------------------------------------------

func (s *Session) export(c command.Export) tea.Cmd {
	snapshot := s.wb.Clone()
	active := s.wb.Active()
	base, now := s.opts.ExportBase, s.opts.Now()
	s.notify("Exporting...")

	return func() tea.Msg {
		var (
			path string
			v    any
		)
		if c.All {
			set, err := export.Workbook(snapshot, c.Direction, c.HeaderCount)
			if err != nil {
				return ExportDoneMsg{Err: err}
			}
			path, v = export.AllSheetsFileName(base, now), set
		} else {
			sheet := snapshot.Sheet(active)
			records, err := export.Sheet(sheet, c.Direction, c.HeaderCount)
			if err != nil {
				return ExportDoneMsg{Err: err}
			}
			if records == nil {
				records = []export.Record{}
			}
			path, v = export.SheetFileName(base, sheet.Name(), now), records
		}
		if err := export.WriteFile(path, v); err != nil {
			return ExportDoneMsg{Path: path, Err: err}
		}
		config.FixOwnership(path)
		return ExportDoneMsg{Path: path}
	}
}
