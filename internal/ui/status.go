package ui

import (
	"fmt"
	"io"
	"time"

	"dcrSummary/internal/config"
	"dcrSummary/internal/excel"
	"dcrSummary/internal/report"
	"dcrSummary/internal/summary"

	"github.com/xuri/excelize/v2"
)

// EventLine renders one progress event as a console status line.
func EventLine(ev summary.Event) string {
	switch ev.Kind {
	case summary.EventWritten:
		return SuccessStyle.Render(fmt.Sprintf("✓ %s: finished Tower %s", ev.Field, ev.Tower))
	case summary.EventMissing:
		return WarnStyle.Render(fmt.Sprintf("- %s: file not found for Tower %s: %s", ev.Field, ev.Tower, ev.Path))
	case summary.EventFailed:
		return ErrorStyle.Render(fmt.Sprintf("✗ %s: error reading Tower %s: %v", ev.Field, ev.Tower, ev.Err))
	case summary.EventSaved:
		return SuccessStyle.Render(fmt.Sprintf("✓ Saved %s", ev.Path))
	}
	return ""
}

// PrintEvents returns a progress callback that writes one line per event.
func PrintEvents(w io.Writer) func(summary.Event) {
	return func(ev summary.Event) {
		fmt.Fprintln(w, EventLine(ev))
	}
}

// PrintReport writes the closing totals of a run.
func PrintReport(w io.Writer, rep *report.Report) {
	written, missing, failed := rep.Counts()
	fmt.Fprintln(w, TitleStyle.Render(fmt.Sprintf("Summary %s (%s)", rep.Target, rep.Mode)))
	fmt.Fprintf(w, "  Written: %d\n", written)
	fmt.Fprintf(w, "  Missing: %d\n", missing)
	fmt.Fprintf(w, "  Failed:  %d\n", failed)
	if !rep.Finished.IsZero() {
		fmt.Fprintln(w, SubtitleStyle.Render(fmt.Sprintf("  Took %s", rep.Finished.Sub(rep.Started).Round(time.Millisecond))))
	}
}

// PrintSources writes the availability of every tower workbook.
func PrintSources(w io.Writer, statuses []excel.SourceStatus) (found int) {
	for _, s := range statuses {
		if s.Exists {
			found++
			fmt.Fprintln(w, SuccessStyle.Render(fmt.Sprintf("✓ %-4s %s (%d bytes, %s)",
				s.Tower, s.Path, s.Size, s.ModTime.Format("2006-01-02 15:04"))))
			continue
		}
		fmt.Fprintln(w, WarnStyle.Render(fmt.Sprintf("- %-4s %s not found", s.Tower, s.Path)))
	}
	fmt.Fprintf(w, "%d of %d tower workbooks found\n", found, len(statuses))
	return found
}

// PrintPlan writes the placement of every block of a sheet.
func PrintPlan(w io.Writer, plan *summary.SheetPlan) {
	fmt.Fprintln(w, TitleStyle.Render(fmt.Sprintf("%s -> sheet %s", plan.Field, plan.Sheet)))
	for _, h := range plan.Headers {
		rng := config.CellRange{FromCol: h.FromCol, FromRow: h.Row, ToCol: h.ToCol, ToRow: h.Row}
		fmt.Fprintf(w, "  header %-14s %s\n", h.Name, rng)
	}
	for _, b := range plan.Blocks {
		label, _ := excelize.CoordinatesToCellName(b.LabelCell())
		fmt.Fprintf(w, "  %-4s %-10s label %-6s block %-12s scale %s\n",
			b.Tower, b.Source, label, b.StyleRange(), b.ScaleRange())
	}
	fmt.Fprintln(w, SubtitleStyle.Render(fmt.Sprintf("  last column %d, last row %d", plan.LastCol, plan.LastRow)))
}

