package remote

import (
	"testing"

	"xl-vim/internal/config"
)

func TestParseLocation(t *testing.T) {
	tests := []struct {
		arg  string
		want Location
		ok   bool
	}{
		{"alice@files:/data/book.xlsx", Location{User: "alice", Host: "files", Path: "/data/book.xlsx"}, true},
		{"files:book.xlsx", Location{Host: "files", Path: "book.xlsx"}, true},
		{"book.xlsx", Location{}, false},
		{"./odd:name.xlsx", Location{}, false},
		{"/tmp/a:b.xlsx", Location{}, false},
		{`C:\data\book.xlsx`, Location{}, false},
		{"C:/data/book.xlsx", Location{}, false},
		{"host:", Location{}, false},
		{":book.xlsx", Location{}, false},
		{"alice@:book.xlsx", Location{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseLocation(tt.arg)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseLocation(%q) = %+v, %v; want %+v, %v", tt.arg, got, ok, tt.want, tt.ok)
		}
	}
}

func TestLocationString(t *testing.T) {
	if got := (Location{User: "u", Host: "h", Path: "/x.xlsx"}).String(); got != "u@h:/x.xlsx" {
		t.Errorf("String() = %q", got)
	}
	if got := (Location{Host: "h", Path: "x.xlsx"}).String(); got != "h:x.xlsx" {
		t.Errorf("String() = %q", got)
	}
}

func TestLocationSibling(t *testing.T) {
	loc := Location{User: "u", Host: "h", Path: "/data/book.xlsx"}
	got := loc.Sibling("book_20240301_093000.xlsx")
	if got.Path != "/data/book_20240301_093000.xlsx" || got.Host != "h" || got.User != "u" {
		t.Errorf("Sibling = %+v", got)
	}
	if got := (Location{Host: "h", Path: "book.xlsx"}).Sibling("b2.xlsx"); got.Path != "b2.xlsx" {
		t.Errorf("relative Sibling path = %q, want b2.xlsx", got.Path)
	}
}

func TestResolveUsesRecentConnection(t *testing.T) {
	t.Setenv("USER", "local")
	recent := []config.Connection{
		{Host: "other", Port: "22", Username: "x"},
		{Host: "files", Port: "2222", Username: "bob", KeyPath: "/k/bob"},
	}

	conn := Resolve(Location{Host: "files", Path: "/a.xlsx"}, nil, recent)
	if conn.Port != "2222" || conn.Username != "bob" || conn.KeyPath != "/k/bob" {
		t.Errorf("conn = %+v, want recent files connection", conn)
	}

	conn = Resolve(Location{User: "carol", Host: "files", Path: "/a.xlsx"}, nil, recent)
	if conn.Port != "22" || conn.Username != "carol" || conn.KeyPath != "" {
		t.Errorf("conn = %+v, want defaults for another user", conn)
	}

	conn = Resolve(Location{Host: "fresh", Path: "/a.xlsx"}, nil, recent)
	if conn.Port != "22" || conn.Username != "local" {
		t.Errorf("conn = %+v, want port 22 and $USER", conn)
	}
}

func TestResolvePrefersSSHConfig(t *testing.T) {
	hosts := []config.SSHHost{{Alias: "files", HostName: "10.0.0.5", User: "svc", Port: "22"}}
	recent := []config.Connection{{Host: "files", Port: "2222", Username: "bob"}}

	conn := Resolve(Location{Host: "files", Path: "/a.xlsx"}, hosts, recent)
	if conn.Host != "10.0.0.5" || conn.Username != "svc" || conn.Port != "22" {
		t.Errorf("conn = %+v, want ssh_config entry", conn)
	}
}
