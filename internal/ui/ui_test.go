package ui

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"dcrSummary/internal/config"
	"dcrSummary/internal/excel"
	"dcrSummary/internal/report"
	"dcrSummary/internal/summary"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventLine(t *testing.T) {
	tests := []struct {
		ev   summary.Event
		want string
	}{
		{summary.Event{Kind: summary.EventWritten, Field: "V DCR", Tower: "N1"}, "V DCR: finished Tower N1"},
		{summary.Event{Kind: summary.EventMissing, Field: "V DCR", Tower: "N3", Path: "x/N3.xlsm"}, "file not found for Tower N3: x/N3.xlsm"},
		{summary.Event{Kind: summary.EventFailed, Field: "V DCR", Tower: "P1", Err: errors.New("sheet HeatMap not found")}, "error reading Tower P1: sheet HeatMap not found"},
		{summary.Event{Kind: summary.EventSaved, Path: "Summary.xlsx"}, "Saved Summary.xlsx"},
	}
	for _, tt := range tests {
		assert.Contains(t, EventLine(tt.ev), tt.want)
	}
}

func TestModel_Update(t *testing.T) {
	events := make(chan summary.Event)
	done := make(chan buildDoneMsg, 1)
	m := NewModel("Building", events, done)

	for i := 1; i <= recentLines+2; i++ {
		next, cmd := m.Update(eventMsg{Kind: summary.EventWritten, Field: "V DCR", Tower: "N1", Done: i, Total: 12})
		m = next.(Model)
		assert.NotNil(t, cmd)
	}
	assert.Len(t, m.recent, recentLines)
	assert.Equal(t, 8, m.last.Done)
	assert.InDelta(t, 8.0/12.0, m.progress.Percent(), 1e-9)
	assert.Contains(t, m.View(), "8 / 12 blocks")

	rep := report.New(config.ModeRebuild, "Summary.xlsx")
	next, cmd := m.Update(buildDoneMsg{report: rep})
	m = next.(Model)
	assert.True(t, m.finished)
	assert.Same(t, rep, m.report)
	require.NotNil(t, cmd)
	_, quit := cmd().(tea.QuitMsg)
	assert.True(t, quit)
}

func TestWaitForEvent(t *testing.T) {
	events := make(chan summary.Event, 1)
	done := make(chan buildDoneMsg, 1)

	events <- summary.Event{Tower: "S2"}
	msg := waitForEvent(events, done)()
	assert.Equal(t, "S2", msg.(eventMsg).Tower)

	close(events)
	done <- buildDoneMsg{err: errors.New("boom")}
	msg = waitForEvent(events, done)()
	assert.EqualError(t, msg.(buildDoneMsg).err, "boom")
}

func TestPrintReport(t *testing.T) {
	rep := report.New(config.ModeUpdate, "Summary.xlsx")
	rep.Add(report.Entry{Tower: "N1", Status: report.StatusWritten})
	rep.Add(report.Entry{Tower: "N2", Status: report.StatusMissing})
	rep.Finished = rep.Started.Add(1500 * time.Millisecond)

	var buf bytes.Buffer
	PrintReport(&buf, rep)
	out := buf.String()
	assert.Contains(t, out, "Written: 1")
	assert.Contains(t, out, "Missing: 1")
	assert.Contains(t, out, "Failed:  0")
	assert.Contains(t, out, "1.5s")
}

func TestPrintSources(t *testing.T) {
	var buf bytes.Buffer
	found := PrintSources(&buf, []excel.SourceStatus{
		{Tower: "N1", Path: "N1.xlsm", Exists: true, Size: 10, ModTime: time.Now()},
		{Tower: "N2", Path: "N2.xlsm"},
	})
	assert.Equal(t, 1, found)
	assert.Contains(t, buf.String(), "N2.xlsm not found")
	assert.Contains(t, buf.String(), "1 of 2 tower workbooks found")
}

func TestPrintPlan(t *testing.T) {
	cfg := config.Default()
	plan, err := summary.Plan(cfg, cfg.Fields[0])
	require.NoError(t, err)

	var buf bytes.Buffer
	PrintPlan(&buf, plan)
	out := buf.String()
	assert.Contains(t, out, "B1:DT1")
	assert.Contains(t, out, "label C3")
	assert.Contains(t, out, "last column 204, last row 231")
}
