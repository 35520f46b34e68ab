package session

import (
	"xl-vim/internal/celledit"
	"xl-vim/internal/grid"
	"xl-vim/internal/search"
)

// ModeKind names the outer input mode.
type ModeKind int

const (
	BrowseMode ModeKind = iota
	EditingMode
	CommandMode
	SearchMode
)

func (k ModeKind) String() string {
	switch k {
	case EditingMode:
		return "EDIT"
	case CommandMode:
		return "COMMAND"
	case SearchMode:
		return "SEARCH"
	default:
		return "BROWSE"
	}
}

// Mode is the outer input mode. Each variant carries only the state that is
// valid while it is active.
type Mode interface {
	Kind() ModeKind
}

// Browse moves the cell cursor.
type Browse struct{}

// Editing edits one cell.
type Editing struct {
	Editor *celledit.Editor
	Sheet  *grid.Sheet
	Pos    grid.Pos
}

// Command collects an ex command line.
type Command struct {
	Line string
}

// Search collects a search query.
type Search struct {
	Query string
	Dir   search.Direction
}

func (Browse) Kind() ModeKind  { return BrowseMode }
func (Editing) Kind() ModeKind { return EditingMode }
func (Command) Kind() ModeKind { return CommandMode }
func (Search) Kind() ModeKind  { return SearchMode }

// transitions lists, per mode, the modes it may switch to.
var transitions = map[ModeKind][]ModeKind{
	BrowseMode:  {BrowseMode, EditingMode, CommandMode, SearchMode},
	EditingMode: {BrowseMode},
	CommandMode: {BrowseMode, CommandMode},
	SearchMode:  {BrowseMode, SearchMode},
}

func allowed(from, to ModeKind) bool {
	for _, k := range transitions[from] {
		if k == to {
			return true
		}
	}
	return false
}
