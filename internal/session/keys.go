package session

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the browse-mode bindings.
type KeyMap struct {
	Left, Right, Up, Down                    key.Binding
	RowStart, FirstNonEmpty, RowEnd          key.Binding
	FirstRow, LastRow                        key.Binding
	JumpLeft, JumpRight, JumpUp, JumpDown    key.Binding
	Edit, Command, SearchForward, SearchBack key.Binding
	Next, Prev                               key.Binding
	Copy, Cut, Paste                         key.Binding
	Undo, Redo                               key.Binding
	PrevSheet, NextSheet                     key.Binding
	Dismiss                                  key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left:          key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/←", "left")),
		Right:         key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l/→", "right")),
		Up:            key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Down:          key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		RowStart:      key.NewBinding(key.WithKeys("0", "home"), key.WithHelp("0", "first column")),
		FirstNonEmpty: key.NewBinding(key.WithKeys("^"), key.WithHelp("^", "first non-empty column")),
		RowEnd:        key.NewBinding(key.WithKeys("$", "end"), key.WithHelp("$", "last column")),
		FirstRow:      key.NewBinding(key.WithKeys("g"), key.WithHelp("gg", "first row")),
		LastRow:       key.NewBinding(key.WithKeys("G"), key.WithHelp("G", "last row")),
		JumpLeft:      key.NewBinding(key.WithKeys("ctrl+left", "alt+left"), key.WithHelp("ctrl+←", "jump left")),
		JumpRight:     key.NewBinding(key.WithKeys("ctrl+right", "alt+right"), key.WithHelp("ctrl+→", "jump right")),
		JumpUp:        key.NewBinding(key.WithKeys("ctrl+up", "alt+up"), key.WithHelp("ctrl+↑", "jump up")),
		JumpDown:      key.NewBinding(key.WithKeys("ctrl+down", "alt+down"), key.WithHelp("ctrl+↓", "jump down")),
		Edit:          key.NewBinding(key.WithKeys("i", "enter"), key.WithHelp("i", "edit cell")),
		Command:       key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "command")),
		SearchForward: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		SearchBack:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "search back")),
		Next:          key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next match")),
		Prev:          key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "previous match")),
		Copy:          key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy cell")),
		Cut:           key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "cut cell")),
		Paste:         key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "paste cell")),
		Undo:          key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo")),
		Redo:          key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "redo")),
		PrevSheet:     key.NewBinding(key.WithKeys("["), key.WithHelp("[", "previous sheet")),
		NextSheet:     key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next sheet")),
		Dismiss:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear messages")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Edit, k.Command, k.SearchForward, k.Undo, k.NextSheet}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Down, k.Up, k.Right, k.RowStart, k.FirstNonEmpty, k.RowEnd, k.FirstRow, k.LastRow},
		{k.JumpLeft, k.JumpDown, k.JumpUp, k.JumpRight, k.PrevSheet, k.NextSheet},
		{k.Edit, k.Copy, k.Cut, k.Paste, k.Undo, k.Redo},
		{k.Command, k.SearchForward, k.SearchBack, k.Next, k.Prev, k.Dismiss},
	}
}
