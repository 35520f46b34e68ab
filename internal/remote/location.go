// Package remote opens and saves workbooks on other hosts over SSH and SCP.
package remote

import (
	"fmt"
	"path"
	"strings"
)

// Location is a workbook on a remote host, written [user@]host:path.
type Location struct {
	User string
	Host string
	Path string
}

// ParseLocation splits arg into a Location. It reports false for anything
// that reads as a local path: no colon, a slash before the colon, or a
// Windows drive letter.
func ParseLocation(arg string) (Location, bool) {
	colon := strings.Index(arg, ":")
	if colon <= 0 || colon == len(arg)-1 {
		return Location{}, false
	}
	if slash := strings.IndexAny(arg, `/\`); slash >= 0 && slash < colon {
		return Location{}, false
	}
	if colon == 1 && len(arg) > 2 && (arg[2] == '\\' || arg[2] == '/') {
		return Location{}, false
	}

	var loc Location
	hostPart := arg[:colon]
	if user, host, ok := strings.Cut(hostPart, "@"); ok {
		loc.User, hostPart = user, host
	}
	if hostPart == "" {
		return Location{}, false
	}
	loc.Host = hostPart
	loc.Path = arg[colon+1:]
	return loc, true
}

// String returns the location in [user@]host:path form.
func (l Location) String() string {
	if l.User != "" {
		return fmt.Sprintf("%s@%s:%s", l.User, l.Host, l.Path)
	}
	return l.Host + ":" + l.Path
}

// Sibling returns a location in the same remote directory named name.
func (l Location) Sibling(name string) Location {
	l.Path = path.Join(path.Dir(l.Path), name)
	return l
}
