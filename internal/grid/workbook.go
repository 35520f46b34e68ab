package grid

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrLastSheet is returned when deleting the only sheet of a workbook.
	ErrLastSheet = errors.New("cannot delete the last sheet")
	// ErrSheetNotFound is returned for an unknown sheet name or index.
	ErrSheetNotFound = errors.New("sheet not found")
	// ErrDuplicateSheet is returned when a sheet name is already taken.
	ErrDuplicateSheet = errors.New("sheet name already exists")
	// ErrEmptySheetName is returned for a blank sheet name.
	ErrEmptySheetName = errors.New("sheet name cannot be empty")
)

// Workbook is an ordered list of sheets with one active sheet. It always
// holds at least one sheet.
type Workbook struct {
	sheets  []*Sheet
	active  int
	dirty   bool
	version uint64
}

// New returns a workbook with one empty sheet per name, or a single
// "Sheet1" when no names are given.
func New(names ...string) *Workbook {
	if len(names) == 0 {
		names = []string{"Sheet1"}
	}
	w := &Workbook{}
	for _, n := range names {
		s := NewSheet(n)
		s.owner = w
		w.sheets = append(w.sheets, s)
	}
	return w
}

// FromSheets builds a workbook from already populated sheets. The result is
// clean.
func FromSheets(sheets []*Sheet) (*Workbook, error) {
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	w := &Workbook{}
	seen := make(map[string]bool, len(sheets))
	for _, s := range sheets {
		key := strings.ToLower(s.name)
		if seen[key] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSheet, s.name)
		}
		seen[key] = true
		s.owner = w
		s.dirty = false
		w.sheets = append(w.sheets, s)
	}
	return w, nil
}

// Len returns the number of sheets.
func (w *Workbook) Len() int { return len(w.sheets) }

// Sheet returns the sheet at index i, or nil.
func (w *Workbook) Sheet(i int) *Sheet {
	if i < 0 || i >= len(w.sheets) {
		return nil
	}
	return w.sheets[i]
}

// Sheets returns the sheets in tab order.
func (w *Workbook) Sheets() []*Sheet {
	out := make([]*Sheet, len(w.sheets))
	copy(out, w.sheets)
	return out
}

// Names returns sheet names in tab order.
func (w *Workbook) Names() []string {
	out := make([]string, len(w.sheets))
	for i, s := range w.sheets {
		out[i] = s.name
	}
	return out
}

// Active returns the active sheet index.
func (w *Workbook) Active() int { return w.active }

// ActiveSheet returns the active sheet.
func (w *Workbook) ActiveSheet() *Sheet { return w.sheets[w.active] }

// SetActive makes sheet i active.
func (w *Workbook) SetActive(i int) error {
	if i < 0 || i >= len(w.sheets) {
		return fmt.Errorf("%w: index %d", ErrSheetNotFound, i+1)
	}
	w.active = i
	return nil
}

// IndexOf returns the index of s, or -1.
func (w *Workbook) IndexOf(s *Sheet) int {
	for i, x := range w.sheets {
		if x == s {
			return i
		}
	}
	return -1
}

// Find resolves a 1-based index or a case-insensitive sheet name.
func (w *Workbook) Find(ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	if n, err := strconv.Atoi(ref); err == nil {
		if n >= 1 && n <= len(w.sheets) {
			return n - 1, nil
		}
	}
	for i, s := range w.sheets {
		if strings.EqualFold(s.name, ref) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: '%s'", ErrSheetNotFound, ref)
}

// AddSheet appends an empty sheet.
func (w *Workbook) AddSheet(name string) (*Sheet, error) {
	if err := w.checkName(name, nil); err != nil {
		return nil, err
	}
	s := NewSheet(name)
	s.owner = w
	w.sheets = append(w.sheets, s)
	w.touch()
	return s, nil
}

// RenameSheet renames sheet i.
func (w *Workbook) RenameSheet(i int, name string) error {
	s := w.Sheet(i)
	if s == nil {
		return fmt.Errorf("%w: index %d", ErrSheetNotFound, i+1)
	}
	if err := w.checkName(name, s); err != nil {
		return err
	}
	s.name = name
	w.touch()
	return nil
}

func (w *Workbook) checkName(name string, self *Sheet) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptySheetName
	}
	for _, s := range w.sheets {
		if s != self && strings.EqualFold(s.name, name) {
			return fmt.Errorf("%w: %s", ErrDuplicateSheet, name)
		}
	}
	return nil
}

// DeleteSheet removes sheet i and returns it for undo. The active index moves
// to a neighbouring sheet.
func (w *Workbook) DeleteSheet(i int) (*Sheet, error) {
	if i < 0 || i >= len(w.sheets) {
		return nil, fmt.Errorf("%w: index %d", ErrSheetNotFound, i+1)
	}
	if len(w.sheets) == 1 {
		return nil, ErrLastSheet
	}
	s := w.sheets[i]
	w.sheets = append(w.sheets[:i:i], w.sheets[i+1:]...)
	s.owner = nil
	if w.active > i || w.active >= len(w.sheets) {
		w.active--
	}
	w.touch()
	return s, nil
}

// InsertSheet places s at index i. It is the inverse of DeleteSheet. The
// active sheet does not change.
func (w *Workbook) InsertSheet(i int, s *Sheet) error {
	if i < 0 || i > len(w.sheets) {
		return fmt.Errorf("%w: index %d", ErrSheetNotFound, i+1)
	}
	if err := w.checkName(s.name, nil); err != nil {
		return err
	}
	w.sheets = append(w.sheets[:i:i], append([]*Sheet{s}, w.sheets[i:]...)...)
	s.owner = w
	if w.active >= i {
		w.active++
	}
	w.touch()
	return nil
}

// Dirty reports whether anything changed since the last MarkClean.
func (w *Workbook) Dirty() bool {
	if w.dirty {
		return true
	}
	for _, s := range w.sheets {
		if s.dirty {
			return true
		}
	}
	return false
}

// MarkClean clears all dirty flags.
func (w *Workbook) MarkClean() {
	w.dirty = false
	for _, s := range w.sheets {
		s.dirty = false
	}
}

// Version increases with every mutation.
func (w *Workbook) Version() uint64 { return w.version }

// Clone returns a deep copy suitable for handing to a background writer.
func (w *Workbook) Clone() *Workbook {
	c := &Workbook{active: w.active, dirty: w.dirty, version: w.version}
	for _, s := range w.sheets {
		cs := s.Clone()
		cs.owner = c
		c.sheets = append(c.sheets, cs)
	}
	return c
}

func (w *Workbook) touch() {
	w.dirty = true
	w.version++
}
