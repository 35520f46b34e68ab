// Package export flattens sheets into JSON records keyed by header text.
package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"xl-vim/internal/grid"
)

// Direction says where headers live.
type Direction int

const (
	// Horizontal headers occupy the first rows; each later row is a record.
	Horizontal Direction = iota
	// Vertical headers occupy the first columns; each later column is a record.
	Vertical
)

func (d Direction) String() string {
	if d == Vertical {
		return "v"
	}
	return "h"
}

// ParseDirection accepts h, horizontal, v or vertical.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "h", "horizontal":
		return Horizontal, nil
	case "v", "vertical":
		return Vertical, nil
	}
	return Horizontal, fmt.Errorf("invalid header direction: %s (use h or v)", s)
}

// ErrHeaderCount is returned when the header count leaves no data.
var ErrHeaderCount = errors.New("invalid header count")

// Field is one key/value pair of a record.
type Field struct {
	Key   string
	Value any
}

// Record is an ordered JSON object.
type Record []Field

// MarshalJSON writes the fields in order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// SheetSet is an ordered mapping from sheet name to its records.
type SheetSet struct {
	Names   []string
	Records [][]Record
}

// MarshalJSON writes sheets in tab order.
func (s SheetSet) MarshalJSON() ([]byte, error) {
	r := make(Record, len(s.Names))
	for i, n := range s.Names {
		recs := s.Records[i]
		if recs == nil {
			recs = []Record{}
		}
		r[i] = Field{Key: n, Value: recs}
	}
	return r.MarshalJSON()
}

// Sheet converts one sheet to records.
func Sheet(s *grid.Sheet, dir Direction, headerCount int) ([]Record, error) {
	rows, cols := 0, 0
	if maxRow, maxCol, ok := s.Bounds(); ok {
		rows, cols = maxRow+1, maxCol+1
	}
	at := func(line, i int) grid.Cell {
		if dir == Vertical {
			c, _ := s.Cell(i, line)
			return c
		}
		c, _ := s.Cell(line, i)
		return c
	}
	lines, width := rows, cols
	if dir == Vertical {
		lines, width = cols, rows
	}
	if headerCount <= 0 || headerCount >= lines {
		return nil, fmt.Errorf("%w: %d", ErrHeaderCount, headerCount)
	}

	headers := make([]string, width)
	last := make(map[int]string, headerCount)
	for i := 0; i < width; i++ {
		var parts []string
		for h := 0; h < headerCount; h++ {
			v := at(h, i).Content
			switch {
			case v != "":
				last[h] = v
				parts = append(parts, v)
			case last[h] != "":
				parts = append(parts, last[h])
			case len(parts) > 0:
				parts = append(parts, parts[len(parts)-1])
			}
		}
		headers[i] = strings.Join(parts, "-")
	}

	var out []Record
	for line := headerCount; line < lines; line++ {
		var rec Record
		for i, h := range headers {
			if h == "" {
				continue
			}
			rec = append(rec, Field{Key: h, Value: Value(at(line, i).Content)})
		}
		if len(rec) > 0 {
			out = append(out, rec)
		}
	}
	return out, nil
}

// Workbook converts every sheet, keyed by sheet name.
func Workbook(w *grid.Workbook, dir Direction, headerCount int) (SheetSet, error) {
	var set SheetSet
	for _, s := range w.Sheets() {
		if s.Len() == 0 {
			set.Names = append(set.Names, s.Name())
			set.Records = append(set.Records, nil)
			continue
		}
		recs, err := Sheet(s, dir, headerCount)
		if err != nil {
			return SheetSet{}, fmt.Errorf("sheet %s: %w", s.Name(), err)
		}
		set.Names = append(set.Names, s.Name())
		set.Records = append(set.Records, recs)
	}
	return set, nil
}

// Value types raw cell text: empty is null, numbers and booleans are typed,
// anything else stays a string.
func Value(content string) any {
	if content == "" {
		return nil
	}
	switch strings.ToLower(content) {
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.ParseInt(content, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(content, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		if f == float64(int64(f)) && !strings.ContainsAny(content, "eE") {
			return int64(f)
		}
		return f
	}
	return content
}

// Encode writes v as indented JSON.
func Encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Timestamp formats t for output file names.
func Timestamp(t time.Time) string {
	return t.Format("20060102_150405")
}

// SheetFileName returns <stem>_sheet_<name>_<ts>.json next to source.
func SheetFileName(source, sheet string, t time.Time) string {
	dir, stem := split(source)
	return filepath.Join(dir, fmt.Sprintf("%s_sheet_%s_%s.json", stem, sheet, Timestamp(t)))
}

// AllSheetsFileName returns <stem>_all_sheets_<ts>.json next to source.
func AllSheetsFileName(source string, t time.Time) string {
	dir, stem := split(source)
	return filepath.Join(dir, fmt.Sprintf("%s_all_sheets_%s.json", stem, Timestamp(t)))
}

func split(source string) (dir, stem string) {
	base := filepath.Base(source)
	return filepath.Dir(source), strings.TrimSuffix(base, filepath.Ext(base))
}

// WriteFile encodes v into a new file at path.
func WriteFile(path string, v any) (retErr error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cErr := f.Close(); cErr != nil {
			retErr = errors.Join(retErr, fmt.Errorf("close %s: %w", path, cErr))
		}
	}()
	return Encode(f, v)
}
