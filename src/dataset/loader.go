// Package dataset loads the dashboard's tabular records and publishes load state
// (loading, error, ready) to the charts.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/iafilius/InteractiveDashboard/src/types"
)

var (
	ErrMissingID         = errors.New("dataset: missing id column")
	ErrMissingColumn     = errors.New("dataset: missing column")
	ErrDuplicateID       = errors.New("dataset: duplicate id")
	ErrUnsupportedFormat = errors.New("dataset: unsupported file format")
	ErrEmptyFile         = errors.New("dataset: no header row")
)

// RowError describes a skipped row. Line is 1-based and counts the header.
type RowError struct {
	Line   int
	Reason string
}

func (e RowError) Error() string { return fmt.Sprintf("line %d: %s", e.Line, e.Reason) }

// Result is a parsed dataset plus the rows that were dropped.
type Result struct {
	Records types.Dataset
	Skipped []RowError
}

// LoadFile reads a .csv or .xlsx file with an id,x,y header.
func LoadFile(path string) (Result, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		f, err := os.Open(path)
		if err != nil {
			return Result{}, fmt.Errorf("open dataset: %w", err)
		}
		defer f.Close()
		return ParseCSV(f)
	case ".xlsx", ".xlsm":
		return loadXLSX(path)
	default:
		return Result{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// ParseCSV parses comma separated records.
func ParseCSV(r io.Reader) (Result, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return Result{}, fmt.Errorf("read csv: %w", err)
	}
	return parseRows(rows)
}

func loadXLSX(path string) (Result, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Result{}, ErrEmptyFile
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return Result{}, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return parseRows(rows)
}

func parseRows(rows [][]string) (Result, error) {
	if len(rows) == 0 {
		return Result{}, ErrEmptyFile
	}
	col := map[string]int{}
	for i, h := range rows[0] {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, ok := col[name]; !ok {
			col[name] = i
		}
	}
	idCol, ok := col["id"]
	if !ok {
		return Result{}, ErrMissingID
	}
	xCol, okX := col["x"]
	yCol, okY := col["y"]
	if !okX || !okY {
		return Result{}, fmt.Errorf("%w: need id,x,y", ErrMissingColumn)
	}

	res := Result{Records: make(types.Dataset, 0, len(rows)-1)}
	seen := map[types.ID]int{}
	for i, row := range rows[1:] {
		line := i + 2
		if blankRow(row) {
			continue
		}
		id, err := parseID(cell(row, idCol))
		if err != nil {
			res.Skipped = append(res.Skipped, RowError{Line: line, Reason: "id: " + err.Error()})
			continue
		}
		x, err := parseNumber(cell(row, xCol))
		if err != nil {
			res.Skipped = append(res.Skipped, RowError{Line: line, Reason: "x: " + err.Error()})
			continue
		}
		y, err := parseNumber(cell(row, yCol))
		if err != nil {
			res.Skipped = append(res.Skipped, RowError{Line: line, Reason: "y: " + err.Error()})
			continue
		}
		if first, dup := seen[id]; dup {
			return Result{}, fmt.Errorf("%w %d on lines %d and %d", ErrDuplicateID, id, first, line)
		}
		seen[id] = line
		res.Records = append(res.Records, types.Record{ID: id, X: x, Y: y})
	}
	return res, nil
}

func cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func parseNumber(s string) (float64, error) {
	if s == "" {
		return 0, errors.New("empty value")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number %q", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not finite %q", s)
	}
	return v, nil
}

// parseID accepts integral values, including "3.0" as written by spreadsheets.
func parseID(s string) (types.ID, error) {
	v, err := parseNumber(s)
	if err != nil {
		return 0, err
	}
	if v != math.Trunc(v) || v > math.MaxInt32 || v < math.MinInt32 {
		return 0, fmt.Errorf("not an integer %q", s)
	}
	return types.ID(int(v)), nil
}
