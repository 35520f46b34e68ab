package config

import (
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

// FixOwnership hands path, and any directories between it and the home
// directory, to the home directory's owner. It only acts when running as root
// with a home directory that belongs to someone else, as in dev containers.
// Files written outside the home directory keep their owner.
func FixOwnership(path string) {
	if os.Getuid() != 0 {
		return
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return
	}
	uid, gid, ok := ownerOf(home)
	if !ok || uid == 0 {
		return
	}
	if !within(home, path) {
		return
	}

	_ = os.Lchown(path, uid, gid)

	for dir := filepath.Dir(path); within(home, dir) && dir != home; dir = filepath.Dir(dir) {
		if u, _, ok := ownerOf(dir); !ok || u == uid {
			break
		}
		_ = os.Lchown(dir, uid, gid)
	}
}

func ownerOf(path string) (uid, gid int, ok bool) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, 0, false
	}
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return 0, 0, false
	}
	return int(st.Uid), int(st.Gid), true
}

// within reports whether path is home or below it.
func within(home, path string) bool {
	rel, err := filepath.Rel(home, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
