package remote

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"golang.org/x/crypto/ssh"

	"xl-vim/internal/config"
	"xl-vim/internal/grid"
)

// Saver writes a workbook to a new local file and returns its path.
type Saver interface {
	Save(wb *grid.Workbook) (string, error)
}

// Workbook is a remote workbook downloaded into a private temp dir.
type Workbook struct {
	Loc   Location
	Conn  config.Connection
	Local string

	client *Client
	dir    string
}

// Resolve fills in the connection for loc. An ssh_config entry wins; a host
// without one reuses the port, user and key of the last connection to it.
func Resolve(loc Location, hosts []config.SSHHost, recent []config.Connection) config.Connection {
	conn := config.Resolve(hosts, loc.Host, loc.User, "")
	if config.MatchSSHHost(hosts, loc.Host) == nil {
		for _, rc := range recent {
			if rc.Host != loc.Host || (loc.User != "" && rc.Username != loc.User) {
				continue
			}
			conn.Port, conn.KeyPath = rc.Port, rc.KeyPath
			if conn.Username == "" {
				conn.Username = rc.Username
			}
			break
		}
	}
	if conn.Username == "" {
		conn.Username = os.Getenv("USER")
	}
	return conn
}

// Fetch resolves loc, connects and downloads the file. prompt is used for
// passwords when key and agent auth fail.
func Fetch(loc Location, hosts []config.SSHHost, recent []config.Connection, prompt Prompt) (*Workbook, error) {
	conn := Resolve(loc, hosts, recent)
	hk, err := HostKeyCallback(conn)
	if err != nil {
		return nil, err
	}
	return Open(loc, conn, AuthMethods(conn, prompt), hk)
}

// Open connects with explicit auth and downloads loc.
func Open(loc Location, conn config.Connection, auth []ssh.AuthMethod, hk ssh.HostKeyCallback) (*Workbook, error) {
	c, err := Dial(conn, auth, hk)
	if err != nil {
		return nil, err
	}
	dir, err := os.MkdirTemp("", "xl-vim-*")
	if err != nil {
		c.Close()
		return nil, err
	}
	local, err := c.Download(loc.Path, dir)
	if err != nil {
		c.Close()
		os.RemoveAll(dir)
		return nil, err
	}
	return &Workbook{Loc: loc, Conn: conn, Local: local, client: c, dir: dir}, nil
}

// Close drops the connection and the downloaded copy.
func (w *Workbook) Close() error {
	return errors.Join(w.client.Close(), os.RemoveAll(w.dir))
}

// Store returns a store that saves through local and uploads the result next
// to the remote source.
func (w *Workbook) Store(local Saver) *Store {
	return &Store{local: local, wb: w}
}

// Store uploads locally saved workbooks.
type Store struct {
	local Saver
	wb    *Workbook
}

// Save writes wb with the local saver and uploads it. The remote file is
// never overwritten. The returned path is the remote location.
func (s *Store) Save(wb *grid.Workbook) (string, error) {
	p, err := s.local.Save(wb)
	if err != nil {
		return "", err
	}
	target := s.wb.Loc.Sibling(filepath.Base(p))

	exists, err := s.wb.client.Exists(target.Path)
	if err != nil {
		return "", fmt.Errorf("check %s: %w", target, err)
	}
	if exists {
		return "", fmt.Errorf("%s already exists", target)
	}
	if err := s.wb.client.Upload(p, target.Path); err != nil {
		return "", fmt.Errorf("upload %s: %w", target, err)
	}
	log.Printf("[remote] saved %s", target)
	return target.String(), nil
}
