package summary

import (
	"fmt"

	"dcrSummary/internal/config"
)

// GroupHeader is the merged group title in row 1 of a summary sheet.
type GroupHeader struct {
	Name    string
	Row     int
	FromCol int
	ToCol   int
}

// Block is the destination of one tower's data on one field sheet. Row and
// Col are the block's top-left corner: the label goes at (Row, Col+1) and the
// extracted values start at (Row+1, Col+1).
type Block struct {
	Field  string
	Sheet  string
	Group  string
	Tower  string
	Source config.CellRange
	Row    int
	Col    int
	Span   int
	Height int
}

// LabelCell returns the column and row of the "Tower <id>" label.
func (b Block) LabelCell() (col, row int) {
	return b.Col + 1, b.Row
}

// Dest maps position (r, c) of the extracted range to a destination cell.
func (b Block) Dest(r, c int) (col, row int) {
	return b.Col + 1 + c, b.Row + 1 + r
}

// StyleRange is the bordered, centered data area of the block.
func (b Block) StyleRange() config.CellRange {
	return config.CellRange{
		FromCol: b.Col, FromRow: b.Row + 1,
		ToCol: b.Col + b.Span - 1, ToRow: b.Row + b.Height,
	}
}

// ScaleRange is the color-scaled pier area, which skips the block's first column.
func (b Block) ScaleRange() config.CellRange {
	r := b.StyleRange()
	r.FromCol++
	return r
}

// Extent is every cell the block may touch, label row included.
func (b Block) Extent() config.CellRange {
	return config.CellRange{
		FromCol: b.Col, FromRow: b.Row,
		ToCol: b.Col + b.Span - 1, ToRow: b.Row + b.Height,
	}
}

// SheetPlan is the full layout of one field sheet.
type SheetPlan struct {
	Field   string
	Sheet   string
	Headers []GroupHeader
	Blocks  []Block
	LastCol int
	LastRow int
}

// Plan computes where every tower of every group lands on the field's sheet.
// It touches no workbook.
func Plan(cfg *config.Config, field config.Field) (*SheetPlan, error) {
	plan := &SheetPlan{Field: field.Name, Sheet: field.Sheet}
	t := cfg.Target

	groupCol := t.StartCol
	for _, g := range cfg.Groups {
		ref, ok := field.Ranges[g.Name]
		if !ok {
			return nil, fmt.Errorf("field %s has no range for group %s", field.Name, g.Name)
		}
		src, err := config.ParseRange(ref)
		if err != nil {
			return nil, fmt.Errorf("field %s group %s: %w", field.Name, g.Name, err)
		}
		slots, err := g.RowSlots()
		if err != nil {
			return nil, err
		}

		width := g.Width()
		plan.Headers = append(plan.Headers, GroupHeader{
			Name:    g.Name,
			Row:     1,
			FromCol: groupCol,
			ToCol:   groupCol + width - 1,
		})

		next := 0
		for slot, count := range slots {
			rowBase := t.StartRow + slot*(t.DataRowCount+t.RowGap)
			for i := 0; i < count && next < len(g.Towers); i++ {
				plan.Blocks = append(plan.Blocks, Block{
					Field:  field.Name,
					Sheet:  field.Sheet,
					Group:  g.Name,
					Tower:  g.Towers[next],
					Source: src,
					Row:    rowBase,
					Col:    groupCol + i*(g.ColSpan+1),
					Span:   g.ColSpan,
					Height: t.DataRowCount,
				})
				next++
			}
		}

		plan.LastCol = groupCol + width - 1
		groupCol += width + 1
	}

	for _, b := range plan.Blocks {
		plan.LastRow = max(plan.LastRow, b.Row+b.Height)
	}
	return plan, nil
}

// CheckOverlap returns an error naming the first pair of blocks that share a cell.
func CheckOverlap(blocks []Block) error {
	for i := range blocks {
		for j := i + 1; j < len(blocks); j++ {
			if blocks[i].Extent().Overlaps(blocks[j].Extent()) {
				return fmt.Errorf("tower %s block %s overlaps tower %s block %s",
					blocks[i].Tower, blocks[i].Extent(), blocks[j].Tower, blocks[j].Extent())
			}
		}
	}
	return nil
}
