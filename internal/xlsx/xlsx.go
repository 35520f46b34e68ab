// Package xlsx reads and writes workbooks with excelize.
package xlsx

import (
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"xl-vim/internal/config"
	"xl-vim/internal/grid"
)

// lastColumn is the widest column Excel allows. It is never given an explicit
// width, so its width is the sheet default.
const lastColumn = "XFD"

// Load reads every worksheet of the file at path. Formula cells keep their
// formula as content and the cached result as display text.
func Load(path string) (wb *grid.Workbook, retErr error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		if cErr := f.Close(); cErr != nil {
			retErr = errors.Join(retErr, fmt.Errorf("close %s: %w", path, cErr))
		}
	}()

	names := f.GetSheetList()
	if len(names) == 0 {
		return nil, fmt.Errorf("%s: no worksheets found", path)
	}

	sheets := make([]*grid.Sheet, 0, len(names))
	for _, name := range names {
		s, err := loadSheet(f, name)
		if err != nil {
			return nil, err
		}
		sheets = append(sheets, s)
	}

	wb, err = grid.FromSheets(sheets)
	if err != nil {
		return nil, err
	}
	if active := f.GetActiveSheetIndex(); active > 0 && active < wb.Len() {
		_ = wb.SetActive(active)
	}
	log.Printf("[xlsx] loaded %s (%d sheets)", path, wb.Len())
	return wb, nil
}

func loadSheet(f *excelize.File, name string) (*grid.Sheet, error) {
	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read worksheet %s: %w", name, err)
	}

	// GetRows drops trailing empty cells, which hides formulas that have no
	// cached result. The sheet dimension bounds the scan for those.
	height, width := len(rows), 0
	for _, row := range rows {
		width = max(width, len(row))
	}
	if cols, rs, ok := dimension(f, name); ok {
		height, width = max(height, rs), max(width, cols)
	}

	s := grid.NewSheet(name)
	for r := 0; r < height; r++ {
		for c := 0; c < width; c++ {
			var value string
			if r < len(rows) && c < len(rows[r]) {
				value = rows[r][c]
			}
			axis, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, err
			}
			if formula, err := f.GetCellFormula(name, axis); err == nil && formula != "" {
				if value == "" {
					value, _ = f.CalcCellValue(name, axis)
				}
				s.Load(r, c, grid.Cell{Content: "=" + formula, Display: value})
				continue
			}
			if value == "0" || value == "1" {
				if typ, err := f.GetCellType(name, axis); err == nil && typ == excelize.CellTypeBool {
					value = boolText(value)
				}
			}
			s.Load(r, c, grid.Cell{Content: value})
		}
	}

	def, err := f.GetColWidth(name, lastColumn)
	if err != nil {
		return s, nil
	}
	for c := 0; c < width; c++ {
		w, err := f.GetColWidth(name, grid.ColumnName(c))
		if err != nil || w == def {
			continue
		}
		s.SetWidth(c, int(math.Round(w)))
	}
	return s, nil
}

// dimension returns the column and row count of the sheet's used range as
// recorded in the file.
func dimension(f *excelize.File, name string) (cols, rows int, ok bool) {
	ref, err := f.GetSheetDimension(name)
	if err != nil || ref == "" {
		return 0, 0, false
	}
	_, last, _ := strings.Cut(ref, ":")
	if last == "" {
		last = ref
	}
	cols, rows, err = excelize.CellNameToCoordinates(last)
	if err != nil {
		return 0, 0, false
	}
	return cols, rows, true
}

// boolText turns a raw boolean cell value into the text Excel shows.
func boolText(raw string) string {
	switch raw {
	case "1":
		return "TRUE"
	case "0":
		return "FALSE"
	}
	return raw
}

// Store saves workbooks next to Source under a timestamped name.
type Store struct {
	Source string
	Now    func() time.Time
}

// NewStore returns a Store writing next to source.
func NewStore(source string) *Store {
	return &Store{Source: source, Now: time.Now}
}

// Save writes wb to a new file and returns its path. An existing file is
// never overwritten.
func (st *Store) Save(wb *grid.Workbook) (string, error) {
	now := time.Now
	if st.Now != nil {
		now = st.Now
	}
	f, err := build(wb)
	if err != nil {
		return "", err
	}
	defer f.Close()

	path, out, err := create(OutputPath(st.Source, now()))
	if err != nil {
		return "", err
	}
	if err := f.Write(out); err != nil {
		out.Close()
		os.Remove(path)
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}
	config.FixOwnership(path)
	log.Printf("[xlsx] saved %s (%d sheets)", path, wb.Len())
	return path, nil
}

// OutputPath returns <stem>_<YYYYMMDD_HHMMSS><ext> next to source. Sources
// excelize cannot write, such as .xls, are saved as .xlsx.
func OutputPath(source string, t time.Time) string {
	base := filepath.Base(source)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	switch strings.ToLower(ext) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
	default:
		ext = ".xlsx"
	}
	return filepath.Join(filepath.Dir(source), fmt.Sprintf("%s_%s%s", stem, t.Format("20060102_150405"), ext))
}

// create opens path exclusively, adding a numeric suffix while the name is
// taken.
func create(path string) (string, *os.File, error) {
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	for i := 0; ; i++ {
		p := path
		if i > 0 {
			p = fmt.Sprintf("%s_%d%s", stem, i, ext)
		}
		out, err := os.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return p, out, nil
		}
		if !errors.Is(err, os.ErrExist) || i >= 100 {
			return "", nil, err
		}
	}
}

func build(wb *grid.Workbook) (*excelize.File, error) {
	f := excelize.NewFile()
	first := f.GetSheetName(0)
	for i, s := range wb.Sheets() {
		var err error
		if i == 0 {
			err = f.SetSheetName(first, s.Name())
		} else {
			_, err = f.NewSheet(s.Name())
		}
		if err == nil {
			err = writeSheet(f, s)
		}
		if err != nil {
			f.Close()
			return nil, err
		}
	}
	f.SetActiveSheet(wb.Active())
	return f, nil
}

func writeSheet(f *excelize.File, s *grid.Sheet) error {
	name := s.Name()
	for _, p := range s.Positions() {
		c, _ := s.Cell(p.Row, p.Col)
		axis, err := excelize.CoordinatesToCellName(p.Col+1, p.Row+1)
		if err != nil {
			return err
		}
		if c.IsFormula() {
			err = f.SetCellFormula(name, axis, c.Content[1:])
		} else {
			err = f.SetCellValue(name, axis, value(c.Content))
		}
		if err != nil {
			return fmt.Errorf("%s!%s: %w", name, axis, err)
		}
	}
	if maxRow, maxCol, ok := s.Bounds(); ok {
		last, err := excelize.CoordinatesToCellName(maxCol+1, maxRow+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetDimension(name, "A1:"+last); err != nil {
			return fmt.Errorf("%s dimension: %w", name, err)
		}
	}
	for col, w := range s.Widths() {
		letters := grid.ColumnName(col)
		if err := f.SetColWidth(name, letters, letters, float64(w)); err != nil {
			return fmt.Errorf("%s column %s: %w", name, letters, err)
		}
	}
	return nil
}

// value types content for the cell writer. Numbers are typed only when they
// print back exactly, so text like "007" or "1.50" stays text.
func value(content string) any {
	if n, err := strconv.ParseInt(content, 10, 64); err == nil && strconv.FormatInt(n, 10) == content {
		return n
	}
	if v, err := strconv.ParseFloat(content, 64); err == nil &&
		!math.IsInf(v, 0) && !math.IsNaN(v) &&
		strconv.FormatFloat(v, 'f', -1, 64) == content {
		return v
	}
	switch content {
	case "TRUE", "true":
		return true
	case "FALSE", "false":
		return false
	}
	return content
}
