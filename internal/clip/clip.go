// Package clip mirrors the clipboard register to the system clipboard.
package clip

import (
	"errors"
	"log"

	"github.com/atotto/clipboard"
)

// ErrUnsupported is returned when no clipboard utility is available.
var ErrUnsupported = errors.New("system clipboard unsupported")

// System writes to the OS clipboard. The first failure is logged.
type System struct {
	warned bool
}

// New returns the OS clipboard.
func New() *System {
	return &System{}
}

// WriteAll copies text to the OS clipboard.
func (s *System) WriteAll(text string) error {
	err := ErrUnsupported
	if !clipboard.Unsupported {
		err = clipboard.WriteAll(text)
	}
	if err != nil && !s.warned {
		s.warned = true
		log.Printf("[clip] write failed: %v", err)
	}
	return err
}
