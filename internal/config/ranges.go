package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// CellRange is a rectangular cell range with 1-based, inclusive corners.
type CellRange struct {
	FromCol, FromRow int
	ToCol, ToRow     int
}

// ParseRange parses "CS3:DU114". The corners may be given in any order.
func ParseRange(ref string) (CellRange, error) {
	parts := strings.Split(strings.TrimSpace(ref), ":")
	if len(parts) != 2 {
		return CellRange{}, fmt.Errorf("invalid range %q: expected two corners", ref)
	}

	c1, r1, err := excelize.CellNameToCoordinates(strings.TrimSpace(parts[0]))
	if err != nil {
		return CellRange{}, fmt.Errorf("invalid range %q: %w", ref, err)
	}
	c2, r2, err := excelize.CellNameToCoordinates(strings.TrimSpace(parts[1]))
	if err != nil {
		return CellRange{}, fmt.Errorf("invalid range %q: %w", ref, err)
	}

	return CellRange{
		FromCol: min(c1, c2), FromRow: min(r1, r2),
		ToCol: max(c1, c2), ToRow: max(r1, r2),
	}, nil
}

func (r CellRange) Width() int  { return r.ToCol - r.FromCol + 1 }
func (r CellRange) Height() int { return r.ToRow - r.FromRow + 1 }

func (r CellRange) String() string {
	from, _ := excelize.CoordinatesToCellName(r.FromCol, r.FromRow)
	to, _ := excelize.CoordinatesToCellName(r.ToCol, r.ToRow)
	return from + ":" + to
}

// Overlaps reports whether two ranges share at least one cell.
func (r CellRange) Overlaps(o CellRange) bool {
	return r.FromCol <= o.ToCol && o.FromCol <= r.ToCol &&
		r.FromRow <= o.ToRow && o.FromRow <= r.ToRow
}

// RowSlots parses a layout such as "4-over-4" into the number of towers in
// each row slot, top to bottom.
func (g TowerGroup) RowSlots() ([]int, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(g.Layout)), "-over-")
	slots := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("group %q: invalid layout %q", g.Name, g.Layout)
		}
		slots = append(slots, n)
	}
	return slots, nil
}

// TowersPerRow is the widest row slot of the layout.
func (g TowerGroup) TowersPerRow() int {
	slots, err := g.RowSlots()
	if err != nil {
		return 0
	}
	widest := 0
	for _, n := range slots {
		widest = max(widest, n)
	}
	return widest
}

// Width is the number of columns the group occupies on a summary sheet.
func (g TowerGroup) Width() int {
	return g.TowersPerRow()*(g.ColSpan+1) - 1
}
