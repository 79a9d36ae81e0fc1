package excel

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"dcrSummary/internal/config"

	"github.com/xuri/excelize/v2"
)

// BlockStyle creates the centered, thin-bordered style used for tower blocks.
// excelize deduplicates styles, so calling it once per sheet is fine.
func (e *Editor) BlockStyle(borderColor string) (int, error) {
	color := "#" + borderColor
	style, err := e.file.NewStyle(&excelize.Style{
		Border: []excelize.Border{
			{Type: "left", Color: color, Style: 1},
			{Type: "right", Color: color, Style: 1},
			{Type: "top", Color: color, Style: 1},
			{Type: "bottom", Color: color, Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to create block style: %w", err)
	}
	return style, nil
}

// SetRangeStyle applies a style to every cell of a rectangle.
func (e *Editor) SetRangeStyle(sheet string, rng config.CellRange, styleID int) error {
	from, to, err := corners(rng)
	if err != nil {
		return err
	}
	if err := e.file.SetCellStyle(sheet, from, to, styleID); err != nil {
		return fmt.Errorf("failed to apply style to %s: %w", rng, err)
	}
	return nil
}

// AddColorScale adds a three-stop numeric color scale over a rectangle.
func (e *Editor) AddColorScale(sheet string, rng config.CellRange, scale config.ColorScale) error {
	err := e.file.SetConditionalFormat(sheet, rng.String(), []excelize.ConditionalFormatOptions{
		{
			Type:     "3_color_scale",
			Criteria: "=",
			MinType:  "num",
			MidType:  "num",
			MaxType:  "num",
			MinValue: formatThreshold(scale.Min),
			MidValue: formatThreshold(scale.Mid),
			MaxValue: formatThreshold(scale.Max),
			MinColor: "#" + scale.MinColor,
			MidColor: "#" + scale.MidColor,
			MaxColor: "#" + scale.MaxColor,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to add color scale to %s: %w", rng, err)
	}
	return nil
}

// GetColorScales returns the conditional format ranges of a sheet.
func (e *Editor) GetColorScales(sheet string) (map[string][]excelize.ConditionalFormatOptions, error) {
	return e.file.GetConditionalFormats(sheet)
}

// AutoFitColumns sets the width of each column to the longest rendered value
// in it plus one. Columns 1..minCols are always sized (empty ones get a width
// of one); when maxCols is positive, columns past it keep their width.
func (e *Editor) AutoFitColumns(sheet string, minCols, maxCols int) ([]float64, error) {
	rows, err := e.GetAllRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}

	widths := ColumnWidths(rows, minCols)
	if maxCols > 0 && len(widths) > maxCols {
		widths = widths[:maxCols]
	}
	for i, w := range widths {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := e.file.SetColWidth(sheet, name, name, w); err != nil {
			return nil, fmt.Errorf("failed to set width of column %s: %w", name, err)
		}
	}
	return widths, nil
}

// GetColWidth returns the width of a column by 1-based index.
func (e *Editor) GetColWidth(sheet string, col int) (float64, error) {
	name, err := excelize.ColumnNumberToName(col)
	if err != nil {
		return 0, err
	}
	return e.file.GetColWidth(sheet, name)
}

// ColumnWidths computes max rune length + 1 per column over rendered rows.
// The result covers at least lastCol columns.
func ColumnWidths(rows [][]string, lastCol int) []float64 {
	maxLen := make([]int, lastCol)
	for _, row := range rows {
		for c, v := range row {
			if c >= len(maxLen) {
				maxLen = append(maxLen, make([]int, c-len(maxLen)+1)...)
			}
			maxLen[c] = max(maxLen[c], utf8.RuneCountInString(v))
		}
	}

	widths := make([]float64, len(maxLen))
	for i, n := range maxLen {
		widths[i] = float64(n + 1)
	}
	return widths
}

func corners(rng config.CellRange) (string, string, error) {
	from, err := excelize.CoordinatesToCellName(rng.FromCol, rng.FromRow)
	if err != nil {
		return "", "", err
	}
	to, err := excelize.CoordinatesToCellName(rng.ToCol, rng.ToRow)
	if err != nil {
		return "", "", err
	}
	return from, to, nil
}

func formatThreshold(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
