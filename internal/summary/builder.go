package summary

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"dcrSummary/internal/config"
	"dcrSummary/internal/excel"
	"dcrSummary/internal/logger"
	"dcrSummary/internal/report"
)

type EventKind int

const (
	EventWritten EventKind = iota
	EventMissing
	EventFailed
	EventSaved
)

// Event is sent after every tower block and once after the workbook is saved.
type Event struct {
	Kind  EventKind
	Field string
	Tower string
	Path  string
	Err   error
	Done  int
	Total int
}

// Builder aggregates the tower workbooks into the summary workbook.
type Builder struct {
	cfg      *config.Config
	progress func(Event)
}

func NewBuilder(cfg *config.Config) *Builder {
	return &Builder{cfg: cfg, progress: func(Event) {}}
}

// OnProgress registers a callback for progress events.
func (b *Builder) OnProgress(fn func(Event)) *Builder {
	if fn != nil {
		b.progress = fn
	}
	return b
}

// Run builds the summary in the configured mode and saves it. Missing or
// unreadable tower workbooks are skipped and recorded in the report; errors
// while writing or saving the destination abort the run.
func (b *Builder) Run() (*report.Report, error) {
	cfg := b.cfg
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	plans := make([]*SheetPlan, 0, len(cfg.Fields))
	total := 0
	for _, field := range cfg.Fields {
		plan, err := Plan(cfg, field)
		if err != nil {
			return nil, err
		}
		if err := CheckOverlap(plan.Blocks); err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name, err)
		}
		plans = append(plans, plan)
		total += len(plan.Blocks)
	}

	target := cfg.Target.File
	rep := report.New(cfg.Target.Mode, target)
	logger.Info("Starting summary build", "mode", cfg.Target.Mode, "target", target,
		"fields", len(plans), "blocks", total)

	dest, fresh, err := b.openDestination()
	if err != nil {
		return nil, err
	}
	defer dest.Close()

	done := 0
	for _, plan := range plans {
		if err := b.prepareSheet(dest, plan); err != nil {
			return nil, err
		}

		style, err := dest.BlockStyle(cfg.Style.BorderColor)
		if err != nil {
			return nil, err
		}

		for _, block := range plan.Blocks {
			entry, err := b.placeBlock(dest, block, style)
			if err != nil {
				return nil, err
			}
			rep.Add(entry)
			done++

			ev := Event{Field: block.Field, Tower: block.Tower, Path: entry.Source, Done: done, Total: total}
			switch entry.Status {
			case report.StatusWritten:
				ev.Kind = EventWritten
			case report.StatusMissing:
				ev.Kind = EventMissing
			default:
				ev.Kind = EventFailed
				ev.Err = errors.New(entry.Error)
			}
			b.progress(ev)
		}

		minCols, maxCols := plan.LastCol, 0
		if cfg.Target.Mode == config.ModeUpdate {
			minCols, maxCols = cfg.Target.ManagedColumns, cfg.Target.ManagedColumns
		}
		if _, err := dest.AutoFitColumns(plan.Sheet, minCols, maxCols); err != nil {
			return nil, fmt.Errorf("sheet %s: %w", plan.Sheet, err)
		}
	}

	if fresh {
		if err := dropDefaultSheet(dest, cfg.Fields); err != nil {
			return nil, err
		}
	}

	if dir := filepath.Dir(target); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create target directory: %w", err)
		}
	}
	// update mode writes back to the file it opened
	save := func() error { return dest.SaveAs(target) }
	if cfg.Target.Mode == config.ModeUpdate {
		save = dest.Save
	}
	if err := save(); err != nil {
		return nil, fmt.Errorf("failed to save %s: %w", target, err)
	}
	rep.Finished = time.Now()
	logger.Info("Saved summary workbook", "target", target)
	b.progress(Event{Kind: EventSaved, Path: target, Done: done, Total: total})

	if cfg.Target.ReportFile != "" {
		if err := rep.SaveToFile(cfg.Target.ReportFile); err != nil {
			return rep, err
		}
		logger.Info("Saved run report", "path", cfg.Target.ReportFile)
	}
	return rep, nil
}

// openDestination returns the workbook to write into and whether it was
// created from scratch.
func (b *Builder) openDestination() (*excel.Editor, bool, error) {
	target := b.cfg.Target.File
	if b.cfg.Target.Mode == config.ModeRebuild {
		return excel.CreateNewFile(), true, nil
	}

	fresh := !excel.SourceExists(target)
	dest, err := excel.OpenOrCreateFile(target)
	if err != nil {
		return nil, false, fmt.Errorf("failed to open destination %s: %w", target, err)
	}
	return dest, fresh, nil
}

// prepareSheet makes sure the field sheet exists, clears the managed columns
// in update mode and writes the merged group headers.
func (b *Builder) prepareSheet(dest *excel.Editor, plan *SheetPlan) error {
	existed := dest.HasSheet(plan.Sheet)
	if err := dest.EnsureSheet(plan.Sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", plan.Sheet, err)
	}

	if existed && b.cfg.Target.Mode == config.ModeUpdate {
		logger.Info("Clearing managed columns", "sheet", plan.Sheet, "columns", b.cfg.Target.ManagedColumns)
		if err := dest.ClearColumns(plan.Sheet, b.cfg.Target.ManagedColumns, plan.LastRow); err != nil {
			return fmt.Errorf("sheet %s: %w", plan.Sheet, err)
		}
	}

	for _, h := range plan.Headers {
		if err := dest.SetValue(plan.Sheet, h.FromCol, h.Row, h.Name); err != nil {
			return fmt.Errorf("sheet %s: %w", plan.Sheet, err)
		}
		if h.ToCol > h.FromCol {
			if err := dest.MergeCells(plan.Sheet, h.FromCol, h.Row, h.ToCol, h.Row); err != nil {
				return fmt.Errorf("sheet %s: failed to merge header %s: %w", plan.Sheet, h.Name, err)
			}
		}
	}
	return nil
}

// placeBlock extracts one tower's range and writes it into its block. Read
// failures are reported in the entry; write failures are returned.
func (b *Builder) placeBlock(dest *excel.Editor, block Block, style int) (report.Entry, error) {
	cfg := b.cfg
	path := cfg.SourcePath(block.Tower)
	entry := report.Entry{
		Field:  block.Field,
		Sheet:  block.Sheet,
		Group:  block.Group,
		Tower:  block.Tower,
		Source: path,
		Block:  block.Extent().String(),
	}

	values, err := Extract(block.Tower, path, cfg.Source.Sheet, block.Source)
	if errors.Is(err, ErrSourceMissing) {
		logger.Warn("Skipping tower, file not found", "field", block.Field, "tower", block.Tower, "path", path)
		entry.Status = report.StatusMissing
		return entry, nil
	}
	if err != nil {
		logger.Error("Error reading tower", "field", block.Field, "tower", block.Tower, "error", err)
		entry.Status = report.StatusError
		entry.Error = err.Error()
		return entry, nil
	}

	col, row := block.LabelCell()
	if err := dest.SetValue(block.Sheet, col, row, "Tower "+block.Tower); err != nil {
		return entry, fmt.Errorf("sheet %s: %w", block.Sheet, err)
	}

	for r, vals := range values {
		for c, v := range vals {
			if v == nil {
				continue
			}
			col, row := block.Dest(r, c)
			if err := dest.SetValue(block.Sheet, col, row, Round(v, cfg.Style.Digits)); err != nil {
				return entry, fmt.Errorf("sheet %s: %w", block.Sheet, err)
			}
		}
	}

	if err := dest.SetRangeStyle(block.Sheet, block.StyleRange(), style); err != nil {
		return entry, fmt.Errorf("sheet %s: %w", block.Sheet, err)
	}
	if err := dest.AddColorScale(block.Sheet, block.ScaleRange(), cfg.Style.Scale); err != nil {
		return entry, fmt.Errorf("sheet %s: %w", block.Sheet, err)
	}

	logger.Info("Finished tower", "field", block.Field, "tower", block.Tower,
		"rows", block.Source.Height(), "cols", block.Source.Width())
	entry.Status = report.StatusWritten
	entry.Rows = block.Source.Height()
	entry.Cols = block.Source.Width()
	return entry, nil
}

// dropDefaultSheet removes the blank sheet excelize puts in new workbooks.
func dropDefaultSheet(dest *excel.Editor, fields []config.Field) error {
	const defaultSheet = "Sheet1"
	isField := slices.ContainsFunc(fields, func(f config.Field) bool { return f.Sheet == defaultSheet })
	if !isField && dest.HasSheet(defaultSheet) {
		if err := dest.DeleteSheet(defaultSheet); err != nil {
			return fmt.Errorf("failed to remove default sheet: %w", err)
		}
	}
	dest.ActivateFirstSheet()
	return nil
}
