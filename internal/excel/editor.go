package excel

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"dcrSummary/internal/config"

	"github.com/xuri/excelize/v2"
)

// ErrSheetNotFound is returned when a workbook lacks the requested sheet.
var ErrSheetNotFound = errors.New("sheet not found")

type Editor struct {
	file     *excelize.File
	filepath string
}

// OpenFile opens an existing Excel file. Formula cells yield their cached
// values; nothing is recalculated.
func OpenFile(filepath string) (*Editor, error) {
	file, err := excelize.OpenFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return &Editor{
		file:     file,
		filepath: filepath,
	}, nil
}

// CreateNewFile creates a new Excel file in memory
func CreateNewFile() *Editor {
	return &Editor{
		file:     excelize.NewFile(),
		filepath: "",
	}
}

// OpenOrCreateFile opens an existing file or creates a new one if it doesn't exist
func OpenOrCreateFile(filepath string) (*Editor, error) {
	if _, err := os.Stat(filepath); os.IsNotExist(err) {
		return &Editor{
			file:     excelize.NewFile(),
			filepath: filepath,
		}, nil
	} else if err != nil {
		return nil, fmt.Errorf("error checking file status: %w", err)
	}
	file, err := excelize.OpenFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to open existing file: %w", err)
	}
	return &Editor{
		file:     file,
		filepath: filepath,
	}, nil
}

// ReadRange returns the values of a rectangular range, one slice per row.
// The result always has rng.Height() rows of rng.Width() values. Empty cells
// are nil, numeric cells are float64, boolean cells are bool and everything
// else (shared or inline strings, string formula results, errors) is the cell
// text, even when that text looks like a number.
func (e *Editor) ReadRange(sheet string, rng config.CellRange) ([][]any, error) {
	if !e.HasSheet(sheet) {
		return nil, fmt.Errorf("%w: %s", ErrSheetNotFound, sheet)
	}

	rows, err := e.file.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}

	values := make([][]any, rng.Height())
	for r := range values {
		values[r] = make([]any, rng.Width())
		rowIdx := rng.FromRow - 1 + r
		if rowIdx >= len(rows) {
			continue
		}
		row := rows[rowIdx]
		for c := range values[r] {
			colIdx := rng.FromCol - 1 + c
			if colIdx >= len(row) || row[colIdx] == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return nil, err
			}
			typ, err := e.file.GetCellType(sheet, cell)
			if err != nil {
				return nil, fmt.Errorf("failed to get type of %s: %w", cell, err)
			}
			values[r][c] = parseCellValue(row[colIdx], typ)
		}
	}
	return values, nil
}

// SetValue writes a value at 1-based coordinates.
func (e *Editor) SetValue(sheet string, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return e.SetCellValue(sheet, cell, value)
}

// SetCellValue sets a value in a specific cell
func (e *Editor) SetCellValue(sheet, cell string, value any) error {
	return e.file.SetCellValue(sheet, cell, value)
}

// SetCellFormula sets a formula for a specific cell
func (e *Editor) SetCellFormula(sheet, cell, formula string) error {
	return e.file.SetCellFormula(sheet, cell, formula)
}

// GetCellFormula returns the formula in a specific cell (if any)
func (e *Editor) GetCellFormula(sheet, cell string) (string, error) {
	return e.file.GetCellFormula(sheet, cell)
}

// GetAllRows returns all rows from a sheet
func (e *Editor) GetAllRows(sheet string) ([][]string, error) {
	return e.file.GetRows(sheet)
}

// GetSheetNames returns all sheet names in the workbook
func (e *Editor) GetSheetNames() []string {
	return e.file.GetSheetList()
}

func (e *Editor) HasSheet(sheet string) bool {
	idx, err := e.file.GetSheetIndex(sheet)
	return err == nil && idx != -1
}

// AddSheet creates a new sheet
func (e *Editor) AddSheet(sheetName string) error {
	_, err := e.file.NewSheet(sheetName)
	return err
}

// EnsureSheet creates the sheet unless it already exists.
func (e *Editor) EnsureSheet(sheetName string) error {
	if e.HasSheet(sheetName) {
		return nil
	}
	return e.AddSheet(sheetName)
}

// DeleteSheet removes a sheet
func (e *Editor) DeleteSheet(sheetName string) error {
	return e.file.DeleteSheet(sheetName)
}

// ActivateFirstSheet makes the first sheet the one shown on open.
func (e *Editor) ActivateFirstSheet() {
	e.file.SetActiveSheet(0)
}

// MergeCells merges the rectangle spanned by two 1-based corners.
func (e *Editor) MergeCells(sheet string, fromCol, fromRow, toCol, toRow int) error {
	from, err := excelize.CoordinatesToCellName(fromCol, fromRow)
	if err != nil {
		return err
	}
	to, err := excelize.CoordinatesToCellName(toCol, toRow)
	if err != nil {
		return err
	}
	return e.file.MergeCell(sheet, from, to)
}

// GetMergedRanges returns the merged ranges of a sheet as "A1:C1" strings.
func (e *Editor) GetMergedRanges(sheet string) ([]string, error) {
	merges, err := e.file.GetMergeCells(sheet)
	if err != nil {
		return nil, err
	}
	ranges := make([]string, 0, len(merges))
	for _, m := range merges {
		ranges = append(ranges, m.GetStartAxis()+":"+m.GetEndAxis())
	}
	return ranges, nil
}

// Save writes the workbook back to the path it was opened from.
func (e *Editor) Save() error {
	if e.filepath == "" {
		return fmt.Errorf("no filepath specified, use SaveAs instead")
	}
	return e.file.SaveAs(e.filepath)
}

// SaveAs saves the Excel file with a new name
func (e *Editor) SaveAs(filepath string) error {
	e.filepath = filepath
	return e.file.SaveAs(filepath)
}

// Close closes the Excel file
func (e *Editor) Close() error {
	return e.file.Close()
}

// parseCellValue converts a raw cell string by its stored type. Only numeric
// cells (type "n" or no type) become float64; text stays text.
func parseCellValue(value string, typ excelize.CellType) any {
	if value == "" {
		return nil
	}
	switch typ {
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return nil
		}
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return f
		}
		return value
	case excelize.CellTypeBool:
		return value == "1" || strings.EqualFold(value, "true")
	default:
		return value
	}
}
