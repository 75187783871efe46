package runner

import (
	"time"

	"github.com/noredistribution/avd/internal/requirements"
)

// ActionDecision records one gate evaluation, including the docs
// override when it applied.
type ActionDecision struct {
	ActionID  string `json:"action" yaml:"action"`
	Triggered bool   `json:"triggered" yaml:"triggered"`
	Excluded  bool   `json:"excluded" yaml:"excluded"`
	Run       bool   `json:"run" yaml:"run"`
}

// DeviceResult records the outcome of one device's generation.
type DeviceResult struct {
	Device          string `json:"device" yaml:"device"`
	GeneratedConfig bool   `json:"generated_config" yaml:"generated_config"`
	GeneratedDoc    bool   `json:"generated_doc" yaml:"generated_doc"`
	Err             error  `json:"-" yaml:"-"`
}

// Report is the account of one batch.
type Report struct {
	RunID        string               `json:"run_id" yaml:"run_id"`
	StartedAt    time.Time            `json:"started_at" yaml:"started_at"`
	CompletedAt  time.Time            `json:"completed_at" yaml:"completed_at"`
	Requested    []string             `json:"requested,omitempty" yaml:"requested,omitempty"`
	Skipped      []string             `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Requirements *requirements.Result `json:"requirements,omitempty" yaml:"requirements,omitempty"`
	Decisions    []ActionDecision     `json:"decisions" yaml:"decisions"`
	Devices      []DeviceResult       `json:"devices,omitempty" yaml:"devices,omitempty"`
	NothingToDo  bool                 `json:"nothing_to_do,omitempty" yaml:"nothing_to_do,omitempty"`
}

// ShouldRun returns the recorded verdict for an action; unknown actions
// never run.
func (r *Report) ShouldRun(actionID string) bool {
	if r == nil {
		return false
	}
	for _, decision := range r.Decisions {
		if decision.ActionID == actionID {
			return decision.Run
		}
	}
	return false
}

// FailedDevices lists devices whose generation failed.
func (r *Report) FailedDevices() []string {
	if r == nil {
		return nil
	}
	var failed []string
	for _, device := range r.Devices {
		if device.Err != nil {
			failed = append(failed, device.Device)
		}
	}
	return failed
}
