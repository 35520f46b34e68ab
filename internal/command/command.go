// Package command parses ex-style command lines (the text after ':').
package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"xl-vim/internal/export"
	"xl-vim/internal/grid"
)

var (
	// ErrUnknownCommand is returned for a line that names no command.
	ErrUnknownCommand = errors.New("not a command")
	// ErrUsage is returned when a known command has bad arguments.
	ErrUsage = errors.New("usage")
)

// Command is a parsed command line. The set of implementations is closed.
type Command interface {
	command()
}

// WidthMode selects how cw sets a column width.
type WidthMode int

const (
	WidthFit WidthMode = iota
	WidthMin
	WidthSet
)

type (
	// ColumnWidth is cw fit|min [all] or cw <n>.
	ColumnWidth struct {
		Mode  WidthMode
		All   bool
		Width int
	}
	// Write is w.
	Write struct{}
	// WriteQuit is wq or x.
	WriteQuit struct{}
	// Quit is q or q!.
	Quit struct{ Force bool }
	// Copy is y: copy the current cell.
	Copy struct{}
	// Cut is d: cut the current cell.
	Cut struct{}
	// Put is put or pu: paste into the current cell.
	Put struct{}
	// Goto is a bare cell reference like B10.
	Goto struct{ Pos grid.Pos }
	// SwitchSheet is sheet <name|index>.
	SwitchSheet struct{ Target string }
	// DeleteSheet is delsheet.
	DeleteSheet struct{}
	// DeleteRows is dr [start [end]]. Rows are zero-based and inclusive.
	DeleteRows struct {
		Current    bool
		Start, End int
	}
	// DeleteColumns is dc [start [end]]. Columns are zero-based and inclusive.
	DeleteColumns struct {
		Current    bool
		Start, End int
	}
	// NoHighlight is noh or nohlsearch.
	NoHighlight struct{}
	// Help is help.
	Help struct{}
	// Export is ej or eja [h|v] [count].
	Export struct {
		All         bool
		Direction   export.Direction
		HeaderCount int
	}
)

func (ColumnWidth) command()   {}
func (Write) command()         {}
func (WriteQuit) command()     {}
func (Quit) command()          {}
func (Copy) command()          {}
func (Cut) command()           {}
func (Put) command()           {}
func (Goto) command()          {}
func (SwitchSheet) command()   {}
func (DeleteSheet) command()   {}
func (DeleteRows) command()    {}
func (DeleteColumns) command() {}
func (NoHighlight) command()   {}
func (Help) command()          {}
func (Export) command()        {}

func usage(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrUsage}, args...)...)
}

// Parse parses one command line without its leading ':'. An empty line
// returns a nil Command and no error.
func Parse(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, nil
	}
	name, args := fields[0], fields[1:]

	if len(args) == 0 && refShaped(name) {
		p, err := grid.ParseRef(name)
		if err != nil {
			return nil, err
		}
		return Goto{Pos: p}, nil
	}

	switch name {
	case "w":
		return Write{}, nil
	case "wq", "x":
		return WriteQuit{}, nil
	case "q":
		return Quit{}, nil
	case "q!":
		return Quit{Force: true}, nil
	case "y":
		return Copy{}, nil
	case "d":
		return Cut{}, nil
	case "put", "pu":
		return Put{}, nil
	case "noh", "nohlsearch":
		return NoHighlight{}, nil
	case "help", "h":
		return Help{}, nil
	case "delsheet":
		return DeleteSheet{}, nil
	case "sheet":
		if len(args) == 0 {
			return nil, usage(":sheet <name|number>")
		}
		return SwitchSheet{Target: strings.Join(args, " ")}, nil
	case "cw":
		return parseWidth(args)
	case "dr":
		return parseDeleteRows(args)
	case "dc":
		return parseDeleteColumns(args)
	case "ej", "eja":
		return parseExport(name == "eja", args)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, line)
}

// refShaped reports whether s is letters followed by digits, like "B10".
func refShaped(s string) bool {
	i := strings.IndexAny(s, "0123456789")
	if i <= 0 {
		return false
	}
	for j, r := range s {
		isLetter := r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'
		isDigit := r >= '0' && r <= '9'
		if j < i && !isLetter || j >= i && !isDigit {
			return false
		}
	}
	return true
}

func parseWidth(args []string) (Command, error) {
	if len(args) == 0 || len(args) > 2 {
		return nil, usage(":cw fit [all] | :cw min [all] | :cw <number>")
	}
	all := false
	if len(args) == 2 {
		if strings.ToLower(args[1]) != "all" {
			return nil, usage(":cw %s all", args[0])
		}
		all = true
	}
	switch strings.ToLower(args[0]) {
	case "fit":
		return ColumnWidth{Mode: WidthFit, All: all}, nil
	case "min":
		return ColumnWidth{Mode: WidthMin, All: all}, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n <= 0 || all {
		return nil, usage(":cw <number> (got %s)", strings.Join(args, " "))
	}
	return ColumnWidth{Mode: WidthSet, Width: n}, nil
}

func parseDeleteRows(args []string) (Command, error) {
	if len(args) == 0 {
		return DeleteRows{Current: true}, nil
	}
	if len(args) > 2 {
		return nil, usage(":dr [row] [end]")
	}
	var rows []int
	for _, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil || n < 1 {
			return nil, usage("invalid row number: %s", a)
		}
		rows = append(rows, n-1)
	}
	start, end := rows[0], rows[len(rows)-1]
	if start > end {
		return nil, usage("start row must not exceed end row")
	}
	return DeleteRows{Start: start, End: end}, nil
}

func parseDeleteColumns(args []string) (Command, error) {
	if len(args) == 0 {
		return DeleteColumns{Current: true}, nil
	}
	if len(args) > 2 {
		return nil, usage(":dc [col] [end]")
	}
	var cols []int
	for _, a := range args {
		c, err := grid.ParseColumnArg(a)
		if err != nil {
			return nil, usage("invalid column: %s", a)
		}
		cols = append(cols, c)
	}
	start, end := cols[0], cols[len(cols)-1]
	if start > end {
		return nil, usage("start column must not exceed end column")
	}
	return DeleteColumns{Start: start, End: end}, nil
}

func parseExport(all bool, args []string) (Command, error) {
	cmd := Export{All: all, Direction: export.Horizontal, HeaderCount: 1}
	if len(args) > 2 {
		return nil, usage(":ej [h|v] [header count]")
	}
	for _, a := range args {
		if d, err := export.ParseDirection(a); err == nil {
			cmd.Direction = d
			continue
		}
		n, err := strconv.Atoi(a)
		if err != nil || n < 1 {
			return nil, usage(":ej [h|v] [header count] (got %s)", a)
		}
		cmd.HeaderCount = n
	}
	return cmd, nil
}
