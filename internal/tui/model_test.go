package tui

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/noredistribution/avd/internal/runner"
)

func finished(t *testing.T, m Model, report *runner.Report, err error) Model {
	t.Helper()
	updated, _ := m.Update(runFinishedMsg{report: report, err: err})
	model, ok := updated.(Model)
	if !ok {
		t.Fatalf("unexpected model type %T", updated)
	}
	return model
}

func TestViewWhileRunning(t *testing.T) {
	m := New(func() (*runner.Report, error) { return &runner.Report{}, nil })
	view := m.View()
	if !strings.Contains(view, "generating") {
		t.Fatalf("expected running view, got %q", view)
	}
}

func TestViewRendersDecisionsAndDevices(t *testing.T) {
	report := &runner.Report{
		RunID: "test-run",
		Decisions: []runner.ActionDecision{
			{ActionID: "configure", Triggered: true, Run: true},
			{ActionID: "document", Triggered: true, Excluded: true},
		},
		Devices: []runner.DeviceResult{
			{Device: "DC1-SPINE1", GeneratedConfig: true},
			{Device: "DC1-SPINE2", Err: fmt.Errorf("boom")},
		},
	}
	m := finished(t, New(nil), report, nil)
	view := m.View()
	for _, want := range []string{"configure", "document", "DC1-SPINE1", "DC1-SPINE2", "test-run"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
	if !strings.Contains(view, "failed") {
		t.Fatalf("expected failed marker in view:\n%s", view)
	}
}

func TestViewNothingToDo(t *testing.T) {
	report := &runner.Report{
		Decisions:   []runner.ActionDecision{{ActionID: "configure"}},
		NothingToDo: true,
	}
	m := finished(t, New(nil), report, nil)
	if !strings.Contains(m.View(), "nothing to do") {
		t.Fatalf("expected no-op notice, got %q", m.View())
	}
}

func TestQuitKeys(t *testing.T) {
	m := New(nil)
	for _, key := range []string{"q", "esc"} {
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
		if key == "q" && cmd == nil {
			t.Fatalf("expected quit command for %q", key)
		}
	}
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatalf("expected quit command for esc")
	}
}
