package config

import (
	"fmt"
)

// Validate checks the tables for problems that would make tower blocks
// overlap or leave a group without a source range.
func Validate(cfg *Config) error {
	if cfg.Source.FileTemplate == "" {
		return fmt.Errorf("source file template is required")
	}
	if cfg.Source.Sheet == "" {
		return fmt.Errorf("source sheet is required")
	}
	if cfg.Target.File == "" {
		return fmt.Errorf("target file is required")
	}
	switch cfg.Target.Mode {
	case ModeRebuild, ModeUpdate:
	default:
		return fmt.Errorf("unknown target mode %q (want %s or %s)", cfg.Target.Mode, ModeRebuild, ModeUpdate)
	}
	if cfg.Target.StartRow < 2 || cfg.Target.StartCol < 1 {
		return fmt.Errorf("target start must leave row 1 for group headers (row %d, col %d)",
			cfg.Target.StartRow, cfg.Target.StartCol)
	}
	if cfg.Target.DataRowCount <= 0 {
		return fmt.Errorf("data row count must be positive")
	}
	if cfg.Target.RowGap < 1 {
		return fmt.Errorf("row gap must be at least 1")
	}
	if cfg.Style.Digits < 0 {
		return fmt.Errorf("rounding digits must not be negative")
	}
	if len(cfg.Groups) == 0 {
		return fmt.Errorf("at least one tower group is required")
	}
	if len(cfg.Fields) == 0 {
		return fmt.Errorf("at least one field is required")
	}

	groups := make(map[string]bool)
	towers := make(map[string]string)
	lastCol := cfg.Target.StartCol - 1
	for i := range cfg.Groups {
		g := &cfg.Groups[i]
		if err := validateGroup(g); err != nil {
			return fmt.Errorf("group %d error: %w", i, err)
		}
		if groups[g.Name] {
			return fmt.Errorf("duplicate group %q", g.Name)
		}
		groups[g.Name] = true
		for _, t := range g.Towers {
			if other, ok := towers[t]; ok {
				return fmt.Errorf("tower %q listed in both %q and %q", t, other, g.Name)
			}
			towers[t] = g.Name
		}
		lastCol += g.Width() + 1
	}

	// lastCol includes the trailing gap column of the last group.
	if cfg.Target.Mode == ModeUpdate && cfg.Target.ManagedColumns < lastCol-1 {
		return fmt.Errorf("managed columns (%d) do not cover the layout (%d columns)",
			cfg.Target.ManagedColumns, lastCol-1)
	}

	sheets := make(map[string]bool)
	names := make(map[string]bool)
	for i := range cfg.Fields {
		f := &cfg.Fields[i]
		if err := validateField(cfg, f); err != nil {
			return fmt.Errorf("field %d error: %w", i, err)
		}
		if names[f.Name] {
			return fmt.Errorf("duplicate field %q", f.Name)
		}
		if sheets[f.Sheet] {
			return fmt.Errorf("field %q reuses sheet %q", f.Name, f.Sheet)
		}
		names[f.Name] = true
		sheets[f.Sheet] = true
	}
	return nil
}

func validateGroup(g *TowerGroup) error {
	if g.Name == "" {
		return fmt.Errorf("group name is required")
	}
	if len(g.Towers) == 0 {
		return fmt.Errorf("group '%s' has no towers", g.Name)
	}
	if g.ColSpan < 2 {
		return fmt.Errorf("group '%s' col_span must be at least 2", g.Name)
	}
	slots, err := g.RowSlots()
	if err != nil {
		return err
	}
	total := 0
	for _, n := range slots {
		total += n
	}
	if total != len(g.Towers) {
		return fmt.Errorf("group '%s' layout %q holds %d towers, group has %d",
			g.Name, g.Layout, total, len(g.Towers))
	}
	return nil
}

func validateField(cfg *Config, f *Field) error {
	if f.Name == "" {
		return fmt.Errorf("field name is required")
	}
	if f.Sheet == "" {
		return fmt.Errorf("field '%s' sheet is required", f.Name)
	}
	for name := range f.Ranges {
		if _, ok := cfg.Group(name); !ok {
			return fmt.Errorf("field '%s' has a range for unknown group '%s'", f.Name, name)
		}
	}
	for _, g := range cfg.Groups {
		ref, ok := f.Ranges[g.Name]
		if !ok {
			return fmt.Errorf("field '%s' has no range for group '%s'", f.Name, g.Name)
		}
		rng, err := ParseRange(ref)
		if err != nil {
			return fmt.Errorf("field '%s' group '%s': %w", f.Name, g.Name, err)
		}
		if rng.Width() > g.ColSpan-1 {
			return fmt.Errorf("field '%s' group '%s': range %s is %d columns wide, col_span %d allows %d",
				f.Name, g.Name, ref, rng.Width(), g.ColSpan, g.ColSpan-1)
		}
		if rng.Height() > cfg.Target.DataRowCount {
			return fmt.Errorf("field '%s' group '%s': range %s has %d rows, data_row_count is %d",
				f.Name, g.Name, ref, rng.Height(), cfg.Target.DataRowCount)
		}
	}
	return nil
}
