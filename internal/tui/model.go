// internal/tui/model.go
//
// Bubbletea dashboard for a batch run. The model follows The Elm
// Architecture: the run executes in the background, and the view flips
// from a spinner to the gate/report summary when it finishes.

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/noredistribution/avd/internal/runner"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62")).Padding(0, 1)
	runStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	heldStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	sectionStyle = lipgloss.NewStyle().Bold(true).MarginTop(1)
)

// RunFunc executes the batch and returns its report.
type RunFunc func() (*runner.Report, error)

type runFinishedMsg struct {
	report *runner.Report
	err    error
}

// Model is the dashboard state.
type Model struct {
	run     RunFunc
	spinner spinner.Model

	report   *runner.Report
	err      error
	finished bool
	width    int
}

// New builds a dashboard that executes run when started.
func New(run RunFunc) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("62"))
	return Model{run: run, spinner: sp}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.startRun())
}

func (m Model) startRun() tea.Cmd {
	return func() tea.Msg {
		report, err := m.run()
		return runFinishedMsg{report: report, err: err}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
		return m, nil
	case runFinishedMsg:
		m.finished = true
		m.report = msg.report
		m.err = msg.err
		return m, nil
	case spinner.TickMsg:
		if m.finished {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("avd run"))
	b.WriteString("\n")
	if !m.finished {
		b.WriteString(fmt.Sprintf("\n %s generating...\n", m.spinner.View()))
		b.WriteString(dimStyle.Render("\n press q to abort\n"))
		return b.String()
	}
	if m.report != nil {
		b.WriteString(m.renderReport())
	}
	if m.err != nil {
		b.WriteString(sectionStyle.Render("Error") + "\n")
		b.WriteString(errorStyle.Render(" "+m.err.Error()) + "\n")
	}
	b.WriteString(dimStyle.Render("\n press q to quit\n"))
	if m.width > 0 {
		return lipgloss.NewStyle().MaxWidth(m.width).Render(b.String())
	}
	return b.String()
}

func (m Model) renderReport() string {
	var b strings.Builder
	report := m.report
	b.WriteString(dimStyle.Render(" run "+report.RunID) + "\n")
	if len(report.Requested) > 0 {
		b.WriteString(dimStyle.Render(" tags: "+strings.Join(report.Requested, ",")) + "\n")
	}
	if len(report.Skipped) > 0 {
		b.WriteString(dimStyle.Render(" skip-tags: "+strings.Join(report.Skipped, ",")) + "\n")
	}

	b.WriteString(sectionStyle.Render("Actions") + "\n")
	for _, decision := range report.Decisions {
		verdict := heldStyle.Render("held")
		detail := "not triggered"
		if decision.Run {
			verdict = runStyle.Render("run")
			detail = "triggered"
		} else if decision.Triggered && decision.Excluded {
			detail = "skipped by tag"
		} else if decision.Triggered {
			detail = "disabled"
		}
		b.WriteString(fmt.Sprintf(" %-12s %s %s\n", decision.ActionID, verdict, dimStyle.Render("("+detail+")")))
	}

	if report.NothingToDo {
		b.WriteString(dimStyle.Render("\n nothing to do for the requested tags\n"))
		return b.String()
	}

	b.WriteString(sectionStyle.Render("Devices") + "\n")
	for _, device := range report.Devices {
		status := runStyle.Render("ok")
		if device.Err != nil {
			status = errorStyle.Render("failed")
		}
		artifacts := make([]string, 0, 2)
		if device.GeneratedConfig {
			artifacts = append(artifacts, "config")
		}
		if device.GeneratedDoc {
			artifacts = append(artifacts, "doc")
		}
		b.WriteString(fmt.Sprintf(" %-16s %s %s\n", device.Device, status, dimStyle.Render(strings.Join(artifacts, "+"))))
	}
	return b.String()
}
