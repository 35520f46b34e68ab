// Package celledit implements the vim-style editor used to change the text
// of a single cell.
package celledit

import (
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
)

// Mode is the editor sub-mode.
type Mode int

const (
	Normal Mode = iota
	Insert
	Visual
)

func (m Mode) String() string {
	switch m {
	case Insert:
		return "INSERT"
	case Visual:
		return "VISUAL"
	default:
		return "NORMAL"
	}
}

// Outcome tells the caller what a key did to the editing session.
type Outcome int

const (
	Continue Outcome = iota
	Commit
	Cancel
)

const maxUndoHistory = 100

type snapshot struct {
	buf []rune
	pos int
}

// Editor is an in-progress edit of one cell. A cell holds one line of text,
// so line and buffer bounds coincide.
type Editor struct {
	buf     []rune
	pos     int
	mode    Mode
	anchor  int
	pending rune // operator (d, y, c) or prefix (g, r) awaiting its next key
	opG     bool // operator followed by g, waiting for the second g
	regs    *Registers
	undo    []snapshot
	redo    []snapshot
	status  string
}

// New opens an editor seeded with content, in Normal mode with the cursor on
// the last character.
func New(content string, regs *Registers) *Editor {
	if regs == nil {
		regs = NewRegisters()
	}
	e := &Editor{buf: []rune(content), regs: regs}
	e.pos = e.lastCol()
	return e
}

// Value returns the buffer text.
func (e *Editor) Value() string { return string(e.buf) }

// Cursor returns the cursor offset in runes.
func (e *Editor) Cursor() int { return e.pos }

// Mode returns the current sub-mode.
func (e *Editor) Mode() Mode { return e.mode }

// Pending returns the operator or prefix awaiting a key, or 0.
func (e *Editor) Pending() rune { return e.pending }

// Status returns a short message about the last action.
func (e *Editor) Status() string { return e.status }

// Selection returns the inclusive visual selection.
func (e *Editor) Selection() (start, end int, ok bool) {
	if e.mode != Visual {
		return 0, 0, false
	}
	start, end = e.anchor, e.pos
	if start > end {
		start, end = end, start
	}
	if end >= len(e.buf) {
		end = len(e.buf) - 1
	}
	return start, end, len(e.buf) > 0
}

// Update handles one key.
func (e *Editor) Update(msg tea.KeyMsg) Outcome {
	e.status = ""
	var out Outcome
	switch e.mode {
	case Insert:
		out = e.updateInsert(msg)
	case Visual:
		out = e.updateVisual(msg)
	default:
		out = e.updateNormal(msg)
	}
	e.clamp()
	return out
}

// --- Undo / Redo --------------------------------------------------------

func (e *Editor) pushUndo() {
	e.undo = append(e.undo, e.snap())
	if len(e.undo) > maxUndoHistory {
		e.undo = e.undo[1:]
	}
	e.redo = nil
}

func (e *Editor) snap() snapshot {
	return snapshot{buf: append([]rune(nil), e.buf...), pos: e.pos}
}

func (e *Editor) restore(s snapshot) {
	e.buf = append([]rune(nil), s.buf...)
	e.pos = s.pos
}

func (e *Editor) undoChange() {
	if len(e.undo) == 0 {
		e.status = "Already at oldest change"
		return
	}
	e.redo = append(e.redo, e.snap())
	e.restore(e.undo[len(e.undo)-1])
	e.undo = e.undo[:len(e.undo)-1]
}

func (e *Editor) redoChange() {
	if len(e.redo) == 0 {
		e.status = "Already at newest change"
		return
	}
	e.undo = append(e.undo, e.snap())
	e.restore(e.redo[len(e.redo)-1])
	e.redo = e.redo[:len(e.redo)-1]
}

// --- Motions ------------------------------------------------------------

func (e *Editor) lastCol() int {
	if len(e.buf) == 0 {
		return 0
	}
	return len(e.buf) - 1
}

func (e *Editor) clamp() {
	limit := e.lastCol()
	if e.mode == Insert {
		limit = len(e.buf)
	}
	if e.pos > limit {
		e.pos = limit
	}
	if e.pos < 0 {
		e.pos = 0
	}
}

func (e *Editor) isSpace(i int) bool { return unicode.IsSpace(e.buf[i]) }

// wordForward returns the start of the next whitespace-delimited word, or
// the buffer length when there is none.
func (e *Editor) wordForward(from int) int {
	i := from
	for i < len(e.buf) && !e.isSpace(i) {
		i++
	}
	for i < len(e.buf) && e.isSpace(i) {
		i++
	}
	return i
}

// wordBackward returns the start of the word before from.
func (e *Editor) wordBackward(from int) int {
	i := from
	if i > 0 {
		i--
	}
	for i > 0 && e.isSpace(i) {
		i--
	}
	for i > 0 && !e.isSpace(i-1) {
		i--
	}
	return i
}

// wordEnd returns the last character of the current or next word.
func (e *Editor) wordEnd(from int) int {
	if len(e.buf) == 0 {
		return 0
	}
	i := from
	if i < len(e.buf)-1 {
		i++
	}
	for i < len(e.buf)-1 && e.isSpace(i) {
		i++
	}
	for i < len(e.buf)-1 && !e.isSpace(i+1) {
		i++
	}
	return i
}

func (e *Editor) firstNonBlank() int {
	i := 0
	for i < len(e.buf) && e.isSpace(i) {
		i++
	}
	if i >= len(e.buf) {
		return e.lastCol()
	}
	return i
}

// motion resolves a motion key to a target offset. inclusive reports whether
// an operator span includes the target character.
func (e *Editor) motion(key string) (target int, inclusive, ok bool) {
	switch key {
	case "h", "left":
		return max(e.pos-1, 0), false, true
	case "l", "right":
		return min(e.pos+1, len(e.buf)), false, true
	case "w":
		return e.wordForward(e.pos), false, true
	case "b":
		return e.wordBackward(e.pos), false, true
	case "e":
		return e.wordEnd(e.pos), true, true
	case "0", "home":
		return 0, false, true
	case "^":
		return e.firstNonBlank(), false, true
	case "$", "end", "G":
		return e.lastCol(), true, true
	}
	return e.pos, false, false
}

// --- Editing primitives -------------------------------------------------

func (e *Editor) text(start, end int) string {
	start = max(start, 0)
	end = min(end, len(e.buf))
	if start >= end {
		return ""
	}
	return string(e.buf[start:end])
}

func (e *Editor) remove(start, end int) string {
	start = max(start, 0)
	end = min(end, len(e.buf))
	if start >= end {
		return ""
	}
	out := string(e.buf[start:end])
	e.buf = append(e.buf[:start:start], e.buf[end:]...)
	e.pos = start
	return out
}

func (e *Editor) insert(at int, s []rune) {
	at = max(0, min(at, len(e.buf)))
	buf := make([]rune, 0, len(e.buf)+len(s))
	buf = append(buf, e.buf[:at]...)
	buf = append(buf, s...)
	buf = append(buf, e.buf[at:]...)
	e.buf = buf
}

// operate applies d, y or c to the half-open span [start, end).
func (e *Editor) operate(op rune, start, end int) {
	if start > end {
		start, end = end, start
	}
	switch op {
	case 'y':
		e.regs.Yank(e.text(start, end))
		e.pos = start
		e.status = "Yanked"
	case 'd':
		e.pushUndo()
		e.regs.Yank(e.remove(start, end))
	case 'c':
		e.pushUndo()
		e.regs.Yank(e.remove(start, end))
		e.mode = Insert
	}
}

func (e *Editor) paste(before bool) {
	text := []rune(e.regs.Paste())
	if len(text) == 0 {
		e.status = "Nothing to paste"
		return
	}
	e.pushUndo()
	at := e.pos
	if !before && len(e.buf) > 0 {
		at++
	}
	e.insert(at, text)
	e.pos = at + len(text) - 1
}

// --- Normal mode --------------------------------------------------------

func (e *Editor) updateNormal(msg tea.KeyMsg) Outcome {
	key := msg.String()

	if e.pending != 0 {
		return e.updatePending(msg)
	}

	switch key {
	case "enter":
		return Commit
	case "esc":
		return Cancel

	case "i":
		e.mode = Insert
	case "I":
		e.pos = e.firstNonBlank()
		e.mode = Insert
	case "a":
		if len(e.buf) > 0 {
			e.pos++
		}
		e.mode = Insert
	case "A", "o":
		e.pos = len(e.buf)
		e.mode = Insert
	case "O":
		e.pos = 0
		e.mode = Insert
	case "v":
		e.mode = Visual
		e.anchor = e.pos

	case "x":
		if len(e.buf) > 0 {
			e.pushUndo()
			e.regs.Yank(e.remove(e.pos, e.pos+1))
		}
	case "X":
		if e.pos > 0 {
			e.pushUndo()
			e.regs.Yank(e.remove(e.pos-1, e.pos))
		}
	case "D":
		if len(e.buf) > 0 {
			e.pushUndo()
			e.regs.Yank(e.remove(e.pos, len(e.buf)))
		}
	case "C":
		e.pushUndo()
		e.regs.Yank(e.remove(e.pos, len(e.buf)))
		e.pos = len(e.buf)
		e.mode = Insert

	case "d", "y", "c", "g", "r":
		e.pending = []rune(key)[0]

	case "p":
		e.paste(false)
	case "P":
		e.paste(true)

	case "u":
		e.undoChange()
	case "ctrl+r":
		e.redoChange()

	default:
		if target, _, ok := e.motion(key); ok {
			e.pos = target
		}
	}
	return Continue
}

// updatePending completes operator and prefix sequences.
func (e *Editor) updatePending(msg tea.KeyMsg) Outcome {
	key := msg.String()
	op := e.pending

	if key == "esc" {
		e.pending, e.opG = 0, false
		return Continue
	}

	switch op {
	case 'g':
		e.pending = 0
		if key == "g" {
			e.pos = 0
		}
		return Continue
	case 'r':
		e.pending = 0
		if len(msg.Runes) == 1 && len(e.buf) > 0 {
			e.pushUndo()
			e.buf[e.pos] = msg.Runes[0]
		}
		return Continue
	}

	if e.opG {
		e.pending, e.opG = 0, false
		if key == "g" {
			e.operate(op, 0, e.pos+1)
		}
		return Continue
	}

	switch {
	case key == string(op):
		e.pending = 0
		e.operate(op, 0, len(e.buf))
		return Continue
	case key == "g":
		e.opG = true
		return Continue
	}

	e.pending = 0
	if op == 'c' && key == "w" && len(e.buf) > 0 && !e.isSpace(e.pos) {
		// cw changes to the end of the word, like ce.
		e.operate(op, e.pos, e.wordEnd(e.pos-1)+1)
		return Continue
	}
	target, inclusive, ok := e.motion(key)
	if !ok {
		return Continue
	}
	start, end := e.pos, target
	if end < start {
		start, end = end, start
	}
	if inclusive {
		end++
	}
	e.operate(op, start, end)
	return Continue
}

// --- Insert mode --------------------------------------------------------

func (e *Editor) updateInsert(msg tea.KeyMsg) Outcome {
	switch msg.String() {
	case "enter":
		return Commit
	case "esc":
		e.mode = Normal
		if e.pos > 0 {
			e.pos--
		}
	case "left":
		if e.pos > 0 {
			e.pos--
		}
	case "right":
		if e.pos < len(e.buf) {
			e.pos++
		}
	case "home", "ctrl+a":
		e.pos = 0
	case "end", "ctrl+e":
		e.pos = len(e.buf)
	case "backspace":
		if e.pos > 0 {
			e.pushUndo()
			e.remove(e.pos-1, e.pos)
		}
	case "delete":
		if e.pos < len(e.buf) {
			e.pushUndo()
			e.remove(e.pos, e.pos+1)
		}
	default:
		var runes []rune
		switch {
		case msg.Type == tea.KeySpace:
			runes = []rune{' '}
		case msg.Type == tea.KeyRunes && !msg.Alt:
			runes = msg.Runes
		}
		if len(runes) > 0 {
			e.pushUndo()
			e.insert(e.pos, runes)
			e.pos += len(runes)
		}
	}
	return Continue
}

// --- Visual mode --------------------------------------------------------

func (e *Editor) updateVisual(msg tea.KeyMsg) Outcome {
	key := msg.String()

	if e.pending == 'g' {
		e.pending = 0
		if key == "g" {
			e.pos = 0
		}
		return Continue
	}

	switch key {
	case "enter":
		return Commit
	case "esc", "v":
		e.mode = Normal
	case "o":
		e.anchor, e.pos = e.pos, e.anchor
	case "g":
		e.pending = 'g'
	case "y", "d", "x", "c":
		start, end, ok := e.Selection()
		e.mode = Normal
		if !ok {
			return Continue
		}
		op := []rune(key)[0]
		if op == 'x' {
			op = 'd'
		}
		e.operate(op, start, end+1)
	default:
		if target, _, ok := e.motion(key); ok {
			e.pos = target
		}
	}
	return Continue
}
