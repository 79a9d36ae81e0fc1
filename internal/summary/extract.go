package summary

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"dcrSummary/internal/config"
	"dcrSummary/internal/excel"
)

// ErrSourceMissing means the tower's workbook does not exist.
var ErrSourceMissing = errors.New("source workbook not found")

// ExtractError carries the tower and file behind a failed read.
type ExtractError struct {
	Tower string
	Path  string
	Err   error
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("tower %s (%s): %v", e.Tower, e.Path, e.Err)
}

func (e *ExtractError) Unwrap() error {
	return e.Err
}

// Extract opens a tower workbook, reads one range of the given sheet and
// closes the file again.
func Extract(tower, path, sheet string, rng config.CellRange) ([][]any, error) {
	if !excel.SourceExists(path) {
		return nil, &ExtractError{Tower: tower, Path: path, Err: ErrSourceMissing}
	}

	src, err := excel.OpenFile(path)
	if err != nil {
		return nil, &ExtractError{Tower: tower, Path: path, Err: err}
	}
	defer src.Close()

	values, err := src.ReadRange(sheet, rng)
	if err != nil {
		return nil, &ExtractError{Tower: tower, Path: path, Err: err}
	}
	return values, nil
}

// Round rounds numbers to the given number of decimals. The exact binary value
// is rounded, and exact ties go to the even digit, so 0.125 becomes 0.12 while
// 2.675 (stored just below) becomes 2.67. Anything that is not a float passes
// through unchanged.
func Round(v any, digits int) any {
	f, ok := v.(float64)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return v
	}
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(f, 'f', digits, 64), 64)
	if err != nil {
		return f
	}
	return rounded
}
