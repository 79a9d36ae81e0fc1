package excel

import (
	"testing"

	"dcrSummary/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockStyle(t *testing.T) {
	e := CreateNewFile()
	defer e.Close()

	style, err := e.BlockStyle("AAAAAA")
	require.NoError(t, err)
	again, err := e.BlockStyle("AAAAAA")
	require.NoError(t, err)
	assert.Equal(t, style, again, "identical styles are deduplicated")

	rng := config.CellRange{FromCol: 2, FromRow: 4, ToCol: 4, ToRow: 6}
	require.NoError(t, e.SetRangeStyle("Sheet1", rng, style))

	for _, cell := range []string{"B4", "C5", "D6"} {
		got, err := e.file.GetCellStyle("Sheet1", cell)
		require.NoError(t, err)
		assert.Equal(t, style, got, cell)
	}
	outside, err := e.file.GetCellStyle("Sheet1", "E6")
	require.NoError(t, err)
	assert.Zero(t, outside)

	def, err := e.file.GetStyle(style)
	require.NoError(t, err)
	require.NotNil(t, def.Alignment)
	assert.Equal(t, "center", def.Alignment.Horizontal)
	assert.Equal(t, "center", def.Alignment.Vertical)
	assert.Len(t, def.Border, 4)
}

func TestAddColorScale(t *testing.T) {
	e := CreateNewFile()
	defer e.Close()

	scale := config.Default().Style.Scale
	rng := config.CellRange{FromCol: 3, FromRow: 4, ToCol: 31, ToRow: 116}
	require.NoError(t, e.AddColorScale("Sheet1", rng, scale))

	formats, err := e.GetColorScales("Sheet1")
	require.NoError(t, err)
	require.Contains(t, formats, "C4:AE116")

	opts := formats["C4:AE116"]
	require.Len(t, opts, 1)
	assert.Equal(t, "3_color_scale", opts[0].Type)
	assert.Equal(t, "num", opts[0].MinType)
	assert.Equal(t, "0.6", opts[0].MinValue)
	assert.Equal(t, "0.8", opts[0].MidValue)
	assert.Equal(t, "1.05", opts[0].MaxValue)
}

func TestAutoFitColumns(t *testing.T) {
	e := CreateNewFile()
	defer e.Close()

	require.NoError(t, e.SetCellValue("Sheet1", "B1", "City Cores"))
	require.NoError(t, e.SetCellValue("Sheet1", "C3", "Tower N1"))
	require.NoError(t, e.SetCellValue("Sheet1", "C4", 0.85))
	require.NoError(t, e.SetCellValue("Sheet1", "D4", 1))

	widths, err := e.AutoFitColumns("Sheet1", 6, 0)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 11, 9, 2, 1, 1}, widths)

	require.NoError(t, e.file.SetColWidth("Sheet1", "H", "H", 30))
	require.NoError(t, e.SetCellValue("Sheet1", "H2", "kept"))
	widths, err = e.AutoFitColumns("Sheet1", 6, 6)
	require.NoError(t, err)
	assert.Len(t, widths, 6)
	kept, err := e.GetColWidth("Sheet1", 8)
	require.NoError(t, err)
	assert.Equal(t, 30.0, kept)

	for col, want := range map[int]float64{1: 1, 2: 11, 3: 9, 4: 2, 6: 1} {
		got, err := e.GetColWidth("Sheet1", col)
		require.NoError(t, err)
		assert.Equal(t, want, got, "column %d", col)
	}
}

func TestColumnWidths(t *testing.T) {
	rows := [][]string{
		{"", "City Cores"},
		{},
		{"", "", "Tower P1", "", "", "", "x"},
		{"", "0.5", "1.05"},
		{"", "", "塔樓"},
	}
	assert.Equal(t, []float64{1, 11, 9, 1, 1, 1, 2}, ColumnWidths(rows, 3))
	assert.Empty(t, ColumnWidths(nil, 0))
	assert.Equal(t, []float64{1, 1}, ColumnWidths(nil, 2))
}
