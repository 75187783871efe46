// Package runner sequences one batch: verify requirements once, evaluate
// the tag gate for every cataloged action, and fan the admitted work out
// to the external generator per device.
package runner

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noredistribution/avd/internal/action"
	"github.com/noredistribution/avd/internal/config"
	"github.com/noredistribution/avd/internal/gate"
	"github.com/noredistribution/avd/internal/generator"
	"github.com/noredistribution/avd/internal/inventory"
	"github.com/noredistribution/avd/internal/requirements"
	"github.com/noredistribution/avd/internal/tags"
)

// Options wires one batch together. Config, Catalog, Inventory and
// Generator are required; Verifier may be nil to skip the requirements
// pass (tests) and Logger may be nil for silence.
type Options struct {
	Config    *config.Config
	Catalog   *action.Catalog
	Inventory *inventory.Inventory
	Generator generator.Generator
	Verifier  requirements.Verifier
	Logger    *zap.Logger

	// Requested and Skipped are the operator's tag selections, already
	// tokenized. The gate never parses flag input.
	Requested tags.Set
	Skipped   tags.Set

	// Limit restricts the batch to the named devices when non-empty.
	Limit []string
}

// Runner executes batches.
type Runner struct {
	opts   Options
	logger *zap.Logger
}

// New validates the wiring and returns a Runner.
func New(opts Options) (*Runner, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("runner: config is required")
	}
	if opts.Catalog == nil {
		return nil, fmt.Errorf("runner: action catalog is required")
	}
	if opts.Inventory == nil {
		return nil, fmt.Errorf("runner: inventory is required")
	}
	if opts.Generator == nil {
		return nil, fmt.Errorf("runner: generator is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{opts: opts, logger: logger}, nil
}

// Run executes one batch and returns its report. A batch where no action
// is admitted is a silent no-op, not an error.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	report := &Report{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
		Requested: r.opts.Requested.Values(),
		Skipped:   r.opts.Skipped.Values(),
	}
	defer func() { report.CompletedAt = time.Now().UTC() }()
	logger := r.logger.With(zap.String("run_id", report.RunID))

	if r.opts.Verifier != nil {
		cache := requirements.NewCache(r.opts.Config.StateDir())
		result, err := requirements.Ensure(ctx, r.opts.Verifier, cache)
		if err != nil {
			return report, err
		}
		report.Requirements = &result
		if !result.OK {
			logger.Error("requirements not satisfied", zap.Strings("failures", result.Failures))
			return report, fmt.Errorf("runner: requirements not satisfied: %v", result.Failures)
		}
		logger.Debug("requirements satisfied", zap.Time("checked_at", result.CheckedAt))
	}

	for _, spec := range r.opts.Catalog.Specs() {
		decision := gate.Evaluate(r.opts.Requested, r.opts.Skipped, spec.Trigger(), spec.Skip())
		run := decision.Run
		if spec.Docs {
			// The docs override short-circuits ahead of the tag verdict.
			run = gate.ShouldRunDocs(r.opts.Config.DocsEnabled, r.opts.Requested, r.opts.Skipped, spec.Trigger(), spec.Skip())
		}
		report.Decisions = append(report.Decisions, ActionDecision{
			ActionID:  spec.ID,
			Triggered: decision.Triggered,
			Excluded:  decision.Excluded,
			Run:       run,
		})
		logger.Info("gate decision",
			zap.String("action", spec.ID),
			zap.Bool("triggered", decision.Triggered),
			zap.Bool("excluded", decision.Excluded),
			zap.Bool("run", run))
	}

	generateConfig := report.ShouldRun(action.IDConfigure)
	generateDoc := report.ShouldRun(action.IDDocument)
	if !generateConfig && !generateDoc {
		logger.Info("nothing to do for the requested tags",
			zap.String("requested", r.opts.Requested.String()),
			zap.String("skipped", r.opts.Skipped.String()))
		report.NothingToDo = true
		return report, nil
	}

	devices := r.devices()
	if len(devices) == 0 {
		logger.Warn("no devices in scope", zap.String("container_root", r.opts.Config.ContainerRoot()))
		report.NothingToDo = true
		return report, nil
	}

	report.Devices = make([]DeviceResult, len(devices))
	group, gctx := errgroup.WithContext(ctx)
	if limit := r.opts.Config.MaxParallel(); limit > 0 {
		group.SetLimit(limit)
	}
	for i, device := range devices {
		i, device := i, device
		group.Go(func() error {
			result := DeviceResult{Device: device}
			req := r.request(device, generateConfig, generateDoc)
			if err := r.opts.Generator.Generate(gctx, req); err != nil {
				logger.Error("generation failed", zap.String("device", device), zap.Error(err))
				result.Err = err
			} else {
				result.GeneratedConfig = generateConfig
				result.GeneratedDoc = generateDoc
				logger.Debug("generation complete",
					zap.String("device", device),
					zap.Bool("config", generateConfig),
					zap.Bool("doc", generateDoc))
			}
			report.Devices[i] = result
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return report, err
	}
	if failed := report.FailedDevices(); len(failed) > 0 {
		return report, fmt.Errorf("runner: generation failed for %d of %d devices: %v", len(failed), len(devices), failed)
	}
	return report, nil
}

func (r *Runner) devices() []string {
	devices := r.opts.Inventory.DevicesUnder(r.opts.Config.ContainerRoot())
	if len(r.opts.Limit) == 0 {
		return devices
	}
	allowed := tags.FromList(r.opts.Limit)
	filtered := devices[:0:0]
	for _, device := range devices {
		if allowed.Contains(device) {
			filtered = append(filtered, device)
		}
	}
	return filtered
}

func (r *Runner) request(device string, generateConfig, generateDoc bool) generator.Request {
	cfg := r.opts.Config
	req := generator.Request{
		Device:               device,
		StructuredConfigFile: filepath.Join(cfg.StructuredConfigDir(), device+".yml"),
		GenerateDeviceConfig: generateConfig,
		GenerateDeviceDoc:    generateDoc,
		ConversionMode:       cfg.Project.ConversionMode,
		ValidationMode:       cfg.Project.ValidationMode,
	}
	if generateConfig {
		req.ConfigOutputFile = filepath.Join(cfg.ConfigOutputDir(), device+".cfg")
	}
	if generateDoc {
		req.DocOutputFile = filepath.Join(cfg.DocOutputDir(), device+".md")
	}
	if configure, ok := r.opts.Catalog.Lookup(action.IDConfigure); ok && configure.Generator.CProfileFile != "" {
		req.CProfileFile = configure.Generator.CProfileFile
	}
	return req
}
