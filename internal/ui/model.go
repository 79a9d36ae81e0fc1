package ui

import (
	"fmt"
	"strings"

	"dcrSummary/internal/logger"
	"dcrSummary/internal/report"
	"dcrSummary/internal/summary"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

const recentLines = 6

type eventMsg summary.Event

type buildDoneMsg struct {
	report *report.Report
	err    error
}

// Model shows a progress bar and the last few tower results while a build runs.
type Model struct {
	progress progress.Model
	events   <-chan summary.Event
	done     <-chan buildDoneMsg

	title    string
	recent   []string
	last     summary.Event
	report   *report.Report
	err      error
	finished bool
}

func NewModel(title string, events <-chan summary.Event, done <-chan buildDoneMsg) Model {
	return Model{
		progress: progress.New(progress.WithGradient("#C6E0B4", "#F8696B")),
		events:   events,
		done:     done,
		title:    title,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForEvent(m.events, m.done), m.progress.Init())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.progress.Width = min(max(msg.Width-8, 10), 80)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}
		return m, nil

	case eventMsg:
		ev := summary.Event(msg)
		m.last = ev
		m.recent = append(m.recent, EventLine(ev))
		if len(m.recent) > recentLines {
			m.recent = m.recent[len(m.recent)-recentLines:]
		}
		var cmd tea.Cmd
		if ev.Total > 0 {
			cmd = m.progress.SetPercent(float64(ev.Done) / float64(ev.Total))
		}
		return m, tea.Batch(cmd, waitForEvent(m.events, m.done))

	case buildDoneMsg:
		m.report = msg.report
		m.err = msg.err
		m.finished = true
		return m, tea.Quit

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render(m.title))
	s.WriteString("\n\n")
	if m.last.Total > 0 {
		s.WriteString(SubtitleStyle.Render(fmt.Sprintf("%d / %d blocks", m.last.Done, m.last.Total)))
		s.WriteString("\n")
	}
	s.WriteString(m.progress.View())
	s.WriteString("\n\n")
	for _, line := range m.recent {
		s.WriteString(line)
		s.WriteString("\n")
	}
	if m.err != nil {
		s.WriteString(ErrorStyle.Render(m.err.Error()))
		s.WriteString("\n")
	}
	s.WriteString(HelpStyle.Render("q: close view (the build keeps running)"))

	return BoxStyle.Render(s.String())
}

// waitForEvent reads the next progress event, or the build result once the
// event channel is closed.
func waitForEvent(events <-chan summary.Event, done <-chan buildDoneMsg) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			res, ok := <-done
			if ok {
				return res
			}
			return nil
		}
		return eventMsg(ev)
	}
}

// RunWithProgress runs the builder behind a progress view. Closing the view
// early does not stop the build; the call still waits for it to finish.
func RunWithProgress(title string, b *summary.Builder) (*report.Report, error) {
	events := make(chan summary.Event, 100)
	done := make(chan buildDoneMsg, 1)
	finished := make(chan struct{})

	var (
		rep      *report.Report
		buildErr error
	)
	b.OnProgress(func(ev summary.Event) { events <- ev })
	go func() {
		rep, buildErr = b.Run()
		close(events)
		done <- buildDoneMsg{report: rep, err: buildErr}
		close(done)
		close(finished)
	}()

	_, err := tea.NewProgram(NewModel(title, events, done)).Run()
	for range events {
	}
	<-finished
	if err != nil {
		logger.Warn("Progress view failed", "error", err)
	}
	return rep, buildErr
}
