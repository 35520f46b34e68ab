package ui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var helpContent = `
  Browse
  h/j/k/l       Move left/down/up/right (arrows too)
  0/^/$         First column / first non-empty column / last column
  gg/G          First / last row
  Ctrl+arrows   Jump to the edge of a block of filled cells
  [ / ]         Previous / next sheet
  i / Enter     Edit the current cell
  y / d / p     Copy / cut / paste the current cell
  u / Ctrl+R    Undo / redo
  /term ?term   Search forward / backward
  n / N         Next / previous match
  Esc           Clear messages
  Ctrl+C        Quit

  Cell editor (Vim-style)
  Modes: NORMAL → i/I/a/A → INSERT, v → VISUAL
  h/l w/b/e 0/^/$    Motions
  x/X/D/C r<char>    Delete char / delete to end / change to end / replace
  dw/cw/yw dd/cc/yy  Operators with a motion, or on the whole cell
  p/P u/Ctrl+R       Paste / undo / redo inside the cell
  Enter              Commit the cell
  Esc                Leave INSERT/VISUAL; in NORMAL, discard the edit

  Commands
  :w  :wq  :x  :q  :q!      Save (new timestamped file) / save & quit / quit
  :B10                      Go to cell
  :sheet <name|n>           Switch sheet    :delsheet  Delete sheet
  :dr [row] [end]           Delete rows     :dc [col] [end]  Delete columns
  :cw fit|min [all]  :cw n  Set column width
  :y  :d  :put              Copy / cut / paste
  :ej [h|v] [n]  :eja       Export sheet / all sheets to JSON
  :noh                      Clear search highlights
  :help                     Toggle this help (j/k to scroll, Esc to close)
`

var helpStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("#7D56F4")).
	Padding(1, 3).
	Bold(false)

// RenderHelp returns the help overlay view.
func RenderHelp(width, height int) string {
	box := helpStyle.Render(helpContent)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

// Help is a scrollable help overlay for terminals too short to show
// helpContent whole.
type Help struct {
	vp viewport.Model
}

// NewHelp returns a help overlay sized for width x height.
func NewHelp(width, height int) Help {
	h := Help{vp: viewport.New(0, 0)}
	h.vp.SetContent(helpContent)
	h.SetSize(width, height)
	return h
}

// SetSize fits the overlay into width x height, border included.
func (h *Help) SetSize(width, height int) {
	fw, fh := helpStyle.GetFrameSize()
	h.vp.Width = max(1, min(width-fw, lipgloss.Width(helpContent)))
	h.vp.Height = max(1, min(height-fh, lipgloss.Height(helpContent)))
}

// Update scrolls the overlay.
func (h Help) Update(msg tea.Msg) (Help, tea.Cmd) {
	var cmd tea.Cmd
	h.vp, cmd = h.vp.Update(msg)
	return h, cmd
}

// View renders the overlay centered in width x height.
func (h Help) View(width, height int) string {
	box := helpStyle.Render(h.vp.View())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
