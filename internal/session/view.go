package session

import (
	"xl-vim/internal/celledit"
	"xl-vim/internal/grid"
	"xl-vim/internal/search"
)

// View is a read-only snapshot of what the screen should show.
type View struct {
	Sheet      *grid.Sheet
	SheetNames []string
	SheetDirty []bool
	Active     int
	Cursor     grid.Pos
	Mode       ModeKind
	// Editor is set while a cell is being edited.
	Editor *celledit.Editor
	// Prompt is the command or search line being typed, with its prefix.
	Prompt     string
	Highlights search.Set
	Notices    []string
	Dirty      bool
	Saving     bool
	Source     string
	// DefaultWidth applies to columns without an explicit width.
	DefaultWidth int
}

// View returns the current screen state.
func (s *Session) View() View {
	v := View{
		Sheet:        s.cur,
		SheetNames:   s.wb.Names(),
		Active:       s.wb.Active(),
		Cursor:       s.cursor,
		Mode:         s.mode.Kind(),
		Highlights:   s.Highlights(),
		Notices:      s.notices,
		Dirty:        s.wb.Dirty(),
		Saving:       s.saving,
		Source:       s.opts.Source,
		DefaultWidth: s.cfg.DefaultColumnWidth,
	}
	for _, sh := range s.wb.Sheets() {
		v.SheetDirty = append(v.SheetDirty, sh.Dirty())
	}
	switch m := s.mode.(type) {
	case Editing:
		v.Editor = m.Editor
	case Command:
		v.Prompt = ":" + m.Line
	case Search:
		v.Prompt = m.Dir.Prompt() + m.Query
	}
	return v
}
