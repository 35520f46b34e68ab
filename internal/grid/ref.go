package grid

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrBadReference is returned for text that is not a cell reference or
// column name.
var ErrBadReference = errors.New("invalid cell reference")

// Excel sheet limits: rows 1..1048576 and columns A..XFD.
const (
	MaxRows    = 1 << 20
	MaxColumns = 1 << 14
)

// ColumnName converts a zero-based column index to letters: 0 -> A, 26 -> AA.
func ColumnName(col int) string {
	if col < 0 {
		return ""
	}
	var b []byte
	for n := col + 1; n > 0; n = (n - 1) / 26 {
		b = append([]byte{byte('A' + (n-1)%26)}, b...)
	}
	return string(b)
}

// ParseColumn converts column letters (any case) to a zero-based index.
// Columns past XFD are rejected.
func ParseColumn(letters string) (int, error) {
	if letters == "" {
		return 0, fmt.Errorf("%w: empty column", ErrBadReference)
	}
	n := 0
	for _, r := range strings.ToUpper(letters) {
		if r < 'A' || r > 'Z' {
			return 0, fmt.Errorf("%w: %s", ErrBadReference, letters)
		}
		n = n*26 + int(r-'A') + 1
		if n > MaxColumns {
			return 0, fmt.Errorf("%w: %s", ErrBadReference, letters)
		}
	}
	return n - 1, nil
}

// ParseColumnArg accepts column letters or a 1-based column number.
func ParseColumnArg(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > MaxColumns {
			return 0, fmt.Errorf("%w: column %d", ErrBadReference, n)
		}
		return n - 1, nil
	}
	return ParseColumn(s)
}

// ParseRef parses a reference like "B10" or "a1" into a zero-based position.
func ParseRef(ref string) (Pos, error) {
	i := strings.IndexAny(ref, "0123456789")
	if i <= 0 {
		return Pos{}, fmt.Errorf("%w: %s", ErrBadReference, ref)
	}
	col, err := ParseColumn(ref[:i])
	if err != nil {
		return Pos{}, err
	}
	row, err := strconv.Atoi(ref[i:])
	if err != nil || row < 1 || row > MaxRows {
		return Pos{}, fmt.Errorf("%w: %s", ErrBadReference, ref)
	}
	return Pos{Row: row - 1, Col: col}, nil
}

// RefName formats a position as a reference like "B10".
func RefName(p Pos) string {
	return ColumnName(p.Col) + strconv.Itoa(p.Row+1)
}
