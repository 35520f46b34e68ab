// Package session is the application controller. It owns the open workbook
// and everything that changes while browsing it: the cursor, the input mode,
// undo history, registers, search state and notices. Slow work (saving,
// exporting) is handed back to the caller as tea.Cmds that run on snapshots.
package session

import (
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"xl-vim/internal/celledit"
	"xl-vim/internal/config"
	"xl-vim/internal/grid"
	"xl-vim/internal/history"
	"xl-vim/internal/nav"
	"xl-vim/internal/search"
)

// Store persists a workbook snapshot and reports where it was written.
type Store interface {
	Save(w *grid.Workbook) (string, error)
}

// Clipboard receives copied cell values.
type Clipboard interface {
	WriteAll(text string) error
}

// Options configures a Session.
type Options struct {
	// Source is shown in the status bar.
	Source string
	// ExportBase is the local path JSON export file names derive from.
	// Defaults to Source.
	ExportBase string
	Config     *config.Config
	Store      Store
	Clipboard  Clipboard
	Now        func() time.Time
}

// SaveDoneMsg reports the outcome of a save started by :w or :wq.
type SaveDoneMsg struct {
	Path    string
	Version uint64
	Quit    bool
	Err     error
}

// ExportDoneMsg reports the outcome of :ej or :eja.
type ExportDoneMsg struct {
	Path string
	Err  error
}

// QuitMsg asks the program to exit.
type QuitMsg struct{}

// HelpMsg asks the program to show the help overlay.
type HelpMsg struct{}

func quit() tea.Msg { return QuitMsg{} }

// Session is the controller state for one open workbook.
type Session struct {
	wb   *grid.Workbook
	opts Options
	cfg  *config.Config
	keys KeyMap

	cur       *grid.Sheet
	cursor    grid.Pos
	positions map[*grid.Sheet]grid.Pos

	hist *history.History
	regs *celledit.Registers
	mode Mode

	pendingG  bool
	query     string
	dir       search.Direction
	highlight bool

	notices []string
	saving  bool
}

// New returns a session browsing wb from A1 of its active sheet.
func New(wb *grid.Workbook, opts Options) *Session {
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.ExportBase == "" {
		opts.ExportBase = opts.Source
	}
	s := &Session{
		wb:        wb,
		opts:      opts,
		cfg:       opts.Config,
		keys:      DefaultKeyMap(),
		positions: make(map[*grid.Sheet]grid.Pos),
		hist:      history.New(),
		regs:      celledit.NewRegisters(),
		mode:      Browse{},
	}
	s.sync()
	return s
}

// Workbook returns the open workbook.
func (s *Session) Workbook() *grid.Workbook { return s.wb }

// Sheet returns the active sheet.
func (s *Session) Sheet() *grid.Sheet { return s.wb.ActiveSheet() }

// Cursor returns the cursor position on the active sheet.
func (s *Session) Cursor() grid.Pos { return s.cursor }

// Mode returns the current input mode.
func (s *Session) Mode() Mode { return s.mode }

// Keys returns the browse-mode key bindings.
func (s *Session) Keys() KeyMap { return s.keys }

// Notices returns recent notices, oldest first.
func (s *Session) Notices() []string { return s.notices }

// Saving reports whether a save is in flight.
func (s *Session) Saving() bool { return s.saving }

// Highlights returns the cells matching the last search on the active sheet,
// or nil when highlighting is off.
func (s *Session) Highlights() search.Set {
	if !s.highlight || s.query == "" {
		return nil
	}
	return search.Highlights(s.Sheet(), s.query)
}

// Update handles one message and returns follow-up work, if any.
func (s *Session) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m := s.mode.(type) {
		case Editing:
			s.updateEditing(m, msg)
			return nil
		case Command:
			return s.updateCommand(m, msg)
		case Search:
			s.updateSearch(m, msg)
			return nil
		default:
			s.updateBrowse(msg)
			return nil
		}

	case SaveDoneMsg:
		return s.saveDone(msg)

	case ExportDoneMsg:
		if msg.Err != nil {
			log.Printf("[session] export failed: %v", msg.Err)
			s.notify("Export failed: " + msg.Err.Error())
		} else {
			s.notify("Exported to " + msg.Path)
		}
	}
	return nil
}

func (s *Session) setMode(m Mode) {
	if !allowed(s.mode.Kind(), m.Kind()) {
		log.Printf("[session] refused mode change %s -> %s", s.mode.Kind(), m.Kind())
		return
	}
	s.mode = m
}

func (s *Session) notify(msg string) {
	s.notices = append(s.notices, msg)
	if over := len(s.notices) - s.cfg.MaxNotifications; over > 0 {
		s.notices = append([]string(nil), s.notices[over:]...)
	}
}

func (s *Session) fail(err error) {
	if k := Classify(err); k == KindIO || k == KindInternal {
		log.Printf("[session] %s error: %v", k, err)
	}
	s.notify(describe(err))
}

// sync points the cursor at the active sheet, restoring that sheet's last
// position when the active sheet changed.
func (s *Session) sync() {
	if a := s.wb.ActiveSheet(); a != s.cur {
		if s.cur != nil {
			s.positions[s.cur] = s.cursor
		}
		s.cur = a
		s.cursor = s.positions[a]
	}
	s.cursor = nav.Clamp(s.cur, s.cursor)
}

func (s *Session) switchTo(i int) {
	if err := s.wb.SetActive(i); err != nil {
		s.fail(err)
		return
	}
	s.sync()
}

func (s *Session) focus() history.Focus {
	return history.Focus{Sheet: s.cur, Row: s.cursor.Row, Col: s.cursor.Col}
}

func (s *Session) focusOn(f history.Focus) {
	if f.Sheet != nil {
		if i := s.wb.IndexOf(f.Sheet); i >= 0 {
			_ = s.wb.SetActive(i)
		}
	}
	s.sync()
	if f.Row >= 0 {
		s.cursor.Row = f.Row
	}
	if f.Col >= 0 {
		s.cursor.Col = f.Col
	}
	s.cursor = nav.Clamp(s.cur, s.cursor)
}

// apply runs op through history and moves the cursor to its focus.
func (s *Session) apply(op history.Op) bool {
	f, err := s.hist.Do(s.wb, op, s.focus())
	if err != nil {
		s.fail(err)
		return false
	}
	s.focusOn(f)
	return true
}

func (s *Session) undo() {
	op, f, err := s.hist.Undo(s.wb)
	if err != nil {
		s.fail(err)
		return
	}
	s.focusOn(f)
	s.notify("Undid " + op.Describe())
}

func (s *Session) redo() {
	op, f, err := s.hist.Redo(s.wb)
	if err != nil {
		s.fail(err)
		return
	}
	s.focusOn(f)
	s.notify("Redid " + op.Describe())
}

func (s *Session) cycleSheet(delta int) {
	n := s.wb.Len()
	if n == 1 {
		s.notify("Only one sheet")
		return
	}
	s.switchTo((s.wb.Active() + delta + n) % n)
	s.notify(fmt.Sprintf("Sheet '%s' (%d/%d)", s.cur.Name(), s.wb.Active()+1, n))
}

// ---------------------------------------------------------------------------
// Saving
// ---------------------------------------------------------------------------

func (s *Session) write(quitAfter bool) tea.Cmd {
	if !s.wb.Dirty() {
		if quitAfter {
			return quit
		}
		s.notify("No changes to save")
		return nil
	}
	if s.opts.Store == nil {
		s.notify("No file to save to")
		return nil
	}
	if s.saving {
		s.notify("Save already in progress")
		return nil
	}
	s.saving = true
	snapshot, version, store := s.wb.Clone(), s.wb.Version(), s.opts.Store
	s.notify("Saving...")
	log.Printf("[session] saving version %d", version)
	return func() tea.Msg {
		path, err := store.Save(snapshot)
		return SaveDoneMsg{Path: path, Version: version, Quit: quitAfter, Err: err}
	}
}

func (s *Session) saveDone(msg SaveDoneMsg) tea.Cmd {
	s.saving = false
	if msg.Err != nil {
		log.Printf("[session] save failed: %v", msg.Err)
		s.notify("Save failed: " + msg.Err.Error())
		return nil
	}
	if s.wb.Version() == msg.Version {
		s.wb.MarkClean()
	}
	s.notify("Saved to " + msg.Path)
	if msg.Quit {
		if s.wb.Dirty() {
			s.notify("Changed during save; not quitting")
			return nil
		}
		return quit
	}
	return nil
}
