package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"

	"xl-vim/internal/config"
	"xl-vim/internal/export"
	"xl-vim/internal/grid"
	"xl-vim/internal/remote"
	"xl-vim/internal/session"
	"xl-vim/internal/xlsx"
)

// source is an opened workbook and where saves of it go.
type source struct {
	wb         *grid.Workbook
	name       string
	exportBase string
	store      session.Store
	close      func() error
}

// openSource loads arg as a local file, or as [user@]host:path when no
// local file by that name exists.
func openSource(arg string, cfg *config.Config) (*source, error) {
	if loc, ok := remote.ParseLocation(arg); ok {
		if _, err := os.Stat(arg); os.IsNotExist(err) {
			return openRemote(loc, cfg)
		}
	}

	wb, err := xlsx.Load(arg)
	if err != nil {
		return nil, err
	}
	if abs, err := filepath.Abs(arg); err == nil {
		cfg.AddRecentFile(abs)
	}
	return &source{
		wb:         wb,
		name:       arg,
		exportBase: arg,
		store:      xlsx.NewStore(arg),
		close:      func() error { return nil },
	}, nil
}

func openRemote(loc remote.Location, cfg *config.Config) (*source, error) {
	log.Printf("[main] fetching %s", loc)
	rw, err := remote.Fetch(loc, config.LoadSSHConfig(), cfg.RecentConnections, remote.TerminalPrompt)
	if err != nil {
		return nil, err
	}
	wb, err := xlsx.Load(rw.Local)
	if err != nil {
		rw.Close()
		return nil, err
	}
	cfg.AddRecent(rw.Conn)
	return &source{
		wb:         wb,
		name:       loc.String(),
		exportBase: filepath.Base(loc.Path),
		store:      rw.Store(xlsx.NewStore(rw.Local)),
		close:      rw.Close,
	}, nil
}

// recordingStore adds every saved path to the recent file list. The list is
// reloaded from disk since saves run off the UI goroutine.
type recordingStore struct {
	session.Store

	mu sync.Mutex
}

func (r *recordingStore) Save(wb *grid.Workbook) (string, error) {
	path, err := r.Store.Save(wb)
	if err != nil {
		return "", err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	recent, err := config.Load()
	if err != nil || recent == nil {
		recent = config.Default()
	}
	recent.AddRecentFile(path)
	if err := config.Save(recent); err != nil {
		log.Printf("failed to save config: %v", err)
	}
	return path, nil
}

// writeJSON prints every sheet of wb as one JSON object.
func writeJSON(w io.Writer, wb *grid.Workbook, dir export.Direction, headerCount int) error {
	set, err := export.Workbook(wb, dir, headerCount)
	if err != nil {
		return err
	}
	return export.Encode(w, set)
}
