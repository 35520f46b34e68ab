package session

import (
	"log"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"xl-vim/internal/celledit"
	"xl-vim/internal/grid"
	"xl-vim/internal/history"
	"xl-vim/internal/nav"
	"xl-vim/internal/search"
)

func (s *Session) updateBrowse(msg tea.KeyMsg) {
	if s.pendingG {
		s.pendingG = false
		if msg.String() == "g" {
			s.move(nav.FirstRow)
		}
		return
	}

	k := s.keys
	switch {
	case key.Matches(msg, k.Left):
		s.move(nav.Left)
	case key.Matches(msg, k.Right):
		s.move(nav.Right)
	case key.Matches(msg, k.Up):
		s.move(nav.Up)
	case key.Matches(msg, k.Down):
		s.move(nav.Down)
	case key.Matches(msg, k.RowStart):
		s.move(nav.RowStart)
	case key.Matches(msg, k.FirstNonEmpty):
		s.move(nav.RowFirstNonEmpty)
	case key.Matches(msg, k.RowEnd):
		s.move(nav.RowEnd)
	case key.Matches(msg, k.FirstRow):
		s.pendingG = true
	case key.Matches(msg, k.LastRow):
		s.move(nav.LastRow)
	case key.Matches(msg, k.JumpLeft):
		s.move(nav.JumpLeft)
	case key.Matches(msg, k.JumpRight):
		s.move(nav.JumpRight)
	case key.Matches(msg, k.JumpUp):
		s.move(nav.JumpUp)
	case key.Matches(msg, k.JumpDown):
		s.move(nav.JumpDown)

	case key.Matches(msg, k.Edit):
		s.startEdit()
	case key.Matches(msg, k.Command):
		s.setMode(Command{})
	case key.Matches(msg, k.SearchForward):
		s.setMode(Search{Dir: search.Forward})
	case key.Matches(msg, k.SearchBack):
		s.setMode(Search{Dir: search.Backward})
	case key.Matches(msg, k.Next):
		s.repeatSearch(false)
	case key.Matches(msg, k.Prev):
		s.repeatSearch(true)

	case key.Matches(msg, k.Copy):
		s.copyCell()
	case key.Matches(msg, k.Cut):
		s.cutCell()
	case key.Matches(msg, k.Paste):
		s.pasteCell()
	case key.Matches(msg, k.Undo):
		s.undo()
	case key.Matches(msg, k.Redo):
		s.redo()
	case key.Matches(msg, k.PrevSheet):
		s.cycleSheet(-1)
	case key.Matches(msg, k.NextSheet):
		s.cycleSheet(1)
	case key.Matches(msg, k.Dismiss):
		s.notices = nil
	}
}

func (s *Session) move(m nav.Motion) {
	s.cursor = nav.Move(s.cur, s.cursor, m)
	switch {
	case m.IsJump():
		s.notify("Jumped " + m.String() + " to " + grid.RefName(s.cursor))
	case m >= nav.RowStart:
		s.notify("Jumped to " + m.String())
	}
}

// ---------------------------------------------------------------------------
// Cell editing
// ---------------------------------------------------------------------------

func (s *Session) startEdit() {
	c, _ := s.cur.Cell(s.cursor.Row, s.cursor.Col)
	s.setMode(Editing{
		Editor: celledit.New(c.Content, s.regs),
		Sheet:  s.cur,
		Pos:    s.cursor,
	})
}

func (s *Session) updateEditing(m Editing, msg tea.KeyMsg) {
	switch m.Editor.Update(msg) {
	case celledit.Commit:
		s.setMode(Browse{})
		s.commitEdit(m)
	case celledit.Cancel:
		s.setMode(Browse{})
	}
}

// commitEdit writes the editor's value back. An unchanged value is not
// recorded and leaves the workbook clean.
func (s *Session) commitEdit(m Editing) {
	old, _ := m.Sheet.Cell(m.Pos.Row, m.Pos.Col)
	value := m.Editor.Value()
	if value == old.Content {
		return
	}
	s.setCell(m.Sheet, m.Pos, old, value)
}

func (s *Session) setCell(sheet *grid.Sheet, p grid.Pos, old grid.Cell, value string) bool {
	return s.apply(history.CellEdit{
		Sheet: sheet,
		Row:   p.Row,
		Col:   p.Col,
		Old:   old,
		New:   grid.Cell{Content: value},
	})
}

// ---------------------------------------------------------------------------
// Cell clipboard
// ---------------------------------------------------------------------------

func (s *Session) setClipboard(text string) {
	s.regs.SetClipboard(text)
	if s.opts.Clipboard == nil || !s.cfg.SyncClipboard {
		return
	}
	// The register already holds the text, so a failed mirror is not shown.
	if err := s.opts.Clipboard.WriteAll(text); err != nil {
		log.Printf("[session] clipboard sync: %v", err)
	}
}

func (s *Session) copyCell() {
	c, _ := s.cur.Cell(s.cursor.Row, s.cursor.Col)
	s.setClipboard(c.Content)
	s.notify("Copied " + grid.RefName(s.cursor))
}

func (s *Session) cutCell() {
	p := s.cursor
	c, _ := s.cur.Cell(p.Row, p.Col)
	s.setClipboard(c.Content)
	if c.Content != "" && !s.setCell(s.cur, p, c, "") {
		return
	}
	s.notify("Cut " + grid.RefName(p))
}

func (s *Session) pasteCell() {
	text := s.regs.Clipboard()
	if text == "" {
		s.notify("Clipboard is empty")
		return
	}
	p := s.cursor
	c, _ := s.cur.Cell(p.Row, p.Col)
	if c.Content != text && !s.setCell(s.cur, p, c, text) {
		return
	}
	s.notify("Pasted into " + grid.RefName(p))
}

// ---------------------------------------------------------------------------
// Search
// ---------------------------------------------------------------------------

func (s *Session) updateSearch(m Search, msg tea.KeyMsg) {
	switch msg.String() {
	case "esc":
		s.setMode(Browse{})
	case "enter":
		s.setMode(Browse{})
		q := m.Query
		if q == "" {
			q = s.query
		}
		if q == "" {
			return
		}
		s.query, s.dir, s.highlight = q, m.Dir, true
		s.find(m.Dir)
	case "backspace":
		if m.Query == "" {
			s.setMode(Browse{})
			return
		}
		r := []rune(m.Query)
		s.setMode(Search{Query: string(r[:len(r)-1]), Dir: m.Dir})
	default:
		if len(msg.Runes) > 0 && !msg.Alt {
			s.setMode(Search{Query: m.Query + string(msg.Runes), Dir: m.Dir})
		}
	}
}

func (s *Session) repeatSearch(reverse bool) {
	if s.query == "" {
		s.notify("No previous search")
		return
	}
	dir := s.dir
	if reverse {
		dir = dir.Reverse()
	}
	s.highlight = true
	s.find(dir)
}

func (s *Session) find(dir search.Direction) {
	res, ok := search.Next(s.cur, s.query, s.cursor, dir)
	if !ok {
		s.notify("Pattern not found: " + s.query)
		return
	}
	s.cursor = res.Pos
	if !res.Wrapped {
		return
	}
	if dir == search.Forward {
		s.notify("Search hit BOTTOM, continuing at TOP")
	} else {
		s.notify("Search hit TOP, continuing at BOTTOM")
	}
}
