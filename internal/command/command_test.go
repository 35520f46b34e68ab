package command

import (
	"errors"
	"reflect"
	"testing"

	"xl-vim/internal/export"
	"xl-vim/internal/grid"
)

func TestParse(t *testing.T) {
	tests := []struct {
		line string
		want Command
	}{
		{"w", Write{}},
		{"wq", WriteQuit{}},
		{"x", WriteQuit{}},
		{"q", Quit{}},
		{"q!", Quit{Force: true}},
		{"y", Copy{}},
		{"d", Cut{}},
		{"put", Put{}},
		{"pu", Put{}},
		{"noh", NoHighlight{}},
		{"nohlsearch", NoHighlight{}},
		{"help", Help{}},
		{"delsheet", DeleteSheet{}},
		{"  w  ", Write{}},

		{"a1", Goto{Pos: grid.Pos{Row: 0, Col: 0}}},
		{"B10", Goto{Pos: grid.Pos{Row: 9, Col: 1}}},
		{"aa3", Goto{Pos: grid.Pos{Row: 2, Col: 26}}},

		{"sheet 2", SwitchSheet{Target: "2"}},
		{"sheet Q1 Sales", SwitchSheet{Target: "Q1 Sales"}},

		{"cw fit", ColumnWidth{Mode: WidthFit}},
		{"cw fit all", ColumnWidth{Mode: WidthFit, All: true}},
		{"cw min", ColumnWidth{Mode: WidthMin}},
		{"cw MIN ALL", ColumnWidth{Mode: WidthMin, All: true}},
		{"cw 20", ColumnWidth{Mode: WidthSet, Width: 20}},

		{"dr", DeleteRows{Current: true}},
		{"dr 5", DeleteRows{Start: 4, End: 4}},
		{"dr 5 10", DeleteRows{Start: 4, End: 9}},
		{"dc", DeleteColumns{Current: true}},
		{"dc b", DeleteColumns{Start: 1, End: 1}},
		{"dc A C", DeleteColumns{Start: 0, End: 2}},
		{"dc 2 4", DeleteColumns{Start: 1, End: 3}},

		{"ej", Export{Direction: export.Horizontal, HeaderCount: 1}},
		{"ej v", Export{Direction: export.Vertical, HeaderCount: 1}},
		{"ej h 2", Export{Direction: export.Horizontal, HeaderCount: 2}},
		{"eja 3", Export{All: true, Direction: export.Horizontal, HeaderCount: 3}},
	}
	for _, tt := range tests {
		got, err := Parse(tt.line)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", tt.line, err)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Parse(%q) = %#v, want %#v", tt.line, got, tt.want)
		}
	}
}

func TestParseEmpty(t *testing.T) {
	got, err := Parse("   ")
	if got != nil || err != nil {
		t.Errorf("Parse(blank) = %v, %v; want nil, nil", got, err)
	}
}

func TestParseUnknown(t *testing.T) {
	for _, line := range []string{"frobnicate", "wqq", "set nu", "10"} {
		_, err := Parse(line)
		if !errors.Is(err, ErrUnknownCommand) {
			t.Errorf("Parse(%q) err = %v, want ErrUnknownCommand", line, err)
		}
	}
}

func TestParseUsage(t *testing.T) {
	for _, line := range []string{
		"cw", "cw wide", "cw 0", "cw -3", "cw fit some", "cw 10 all",
		"dr x", "dr 0", "dr 10 5", "dr 1 2 3",
		"dc 1x", "dc C A", "dc 0",
		"sheet",
		"ej x", "ej h 0", "ej h 1 2",
	} {
		_, err := Parse(line)
		if !errors.Is(err, ErrUsage) {
			t.Errorf("Parse(%q) err = %v, want ErrUsage", line, err)
		}
	}
}

func TestParseReferenceOutOfRange(t *testing.T) {
	for _, line := range []string{"A2000000", "A1048577", "XFE1", "b0"} {
		_, err := Parse(line)
		if !errors.Is(err, grid.ErrBadReference) {
			t.Errorf("Parse(%q) err = %v, want ErrBadReference", line, err)
		}
	}
	got, err := Parse("XFD1048576")
	if err != nil || got != (Goto{Pos: grid.Pos{Row: 1048575, Col: 16383}}) {
		t.Errorf("Parse(XFD1048576) = %v, %v", got, err)
	}
	if _, err := Parse("dc 2 ZZZZ"); !errors.Is(err, ErrUsage) {
		t.Errorf("Parse(dc 2 ZZZZ) err = %v, want ErrUsage", err)
	}
}
