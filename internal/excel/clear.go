package excel

import (
	"fmt"
	"strings"

	"dcrSummary/internal/config"

	"github.com/xuri/excelize/v2"
)

// ClearColumns wipes columns 1..lastCol of a sheet: values, formulas, styles
// (border, alignment, font, fill), and the merges and conditional formats that
// lie entirely inside those columns. Rows are cleared down to at least minRows.
// Everything to the right of lastCol is left untouched.
func (e *Editor) ClearColumns(sheet string, lastCol, minRows int) error {
	rows, err := e.GetAllRows(sheet)
	if err != nil {
		return fmt.Errorf("failed to get rows: %w", err)
	}

	for r, row := range rows {
		for c := 0; c < len(row) && c < lastCol; c++ {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if formula, _ := e.GetCellFormula(sheet, cell); formula != "" {
				if err := e.SetCellFormula(sheet, cell, ""); err != nil {
					return fmt.Errorf("failed to clear formula in %s: %w", cell, err)
				}
			}
			if row[c] == "" {
				continue
			}
			if err := e.file.SetCellDefault(sheet, cell, ""); err != nil {
				return fmt.Errorf("failed to clear %s: %w", cell, err)
			}
		}
	}

	if err := e.clearMerges(sheet, lastCol); err != nil {
		return err
	}
	if err := e.clearColorScales(sheet, lastCol); err != nil {
		return err
	}

	lastRow := max(len(rows), minRows, e.dimensionRows(sheet))
	if lastRow == 0 {
		return nil
	}
	return e.SetRangeStyle(sheet, config.CellRange{FromCol: 1, FromRow: 1, ToCol: lastCol, ToRow: lastRow}, 0)
}

func (e *Editor) clearMerges(sheet string, lastCol int) error {
	merges, err := e.file.GetMergeCells(sheet)
	if err != nil {
		return fmt.Errorf("failed to get merged cells: %w", err)
	}
	for _, m := range merges {
		if !withinColumns(m.GetStartAxis()+":"+m.GetEndAxis(), lastCol) {
			continue
		}
		if err := e.file.UnmergeCell(sheet, m.GetStartAxis(), m.GetEndAxis()); err != nil {
			return fmt.Errorf("failed to unmerge %s:%s: %w", m.GetStartAxis(), m.GetEndAxis(), err)
		}
	}
	return nil
}

func (e *Editor) clearColorScales(sheet string, lastCol int) error {
	formats, err := e.file.GetConditionalFormats(sheet)
	if err != nil {
		return fmt.Errorf("failed to get conditional formats: %w", err)
	}
	for sqref := range formats {
		if !withinColumns(sqref, lastCol) {
			continue
		}
		if err := e.file.UnsetConditionalFormat(sheet, sqref); err != nil {
			return fmt.Errorf("failed to remove conditional format %s: %w", sqref, err)
		}
	}
	return nil
}

// dimensionRows reads the last row from the sheet's used-range record, which
// also covers rows holding only styles.
func (e *Editor) dimensionRows(sheet string) int {
	dim, err := e.file.GetSheetDimension(sheet)
	if err != nil || dim == "" {
		return 0
	}
	parts := strings.Split(dim, ":")
	_, row, err := excelize.CellNameToCoordinates(parts[len(parts)-1])
	if err != nil {
		return 0
	}
	return row
}

// withinColumns reports whether every reference of a space-separated sqref
// ends at or before lastCol.
func withinColumns(sqref string, lastCol int) bool {
	for _, ref := range strings.Fields(sqref) {
		corners := strings.Split(ref, ":")
		col, _, err := excelize.CellNameToCoordinates(corners[len(corners)-1])
		if err != nil || col > lastCol {
			return false
		}
	}
	return true
}
