package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noredistribution/avd/internal/action"
	"github.com/noredistribution/avd/internal/config"
	"github.com/noredistribution/avd/internal/generator"
	"github.com/noredistribution/avd/internal/inventory"
	"github.com/noredistribution/avd/internal/logging"
	"github.com/noredistribution/avd/internal/requirements"
	"github.com/noredistribution/avd/internal/runner"
	"github.com/noredistribution/avd/internal/tags"
)

var (
	flagTags       string
	flagSkipTags   string
	flagInventory  string
	flagLimit      []string
	flagGenerator  string
	flagSkipVerify bool
)

const defaultGeneratorBinary = "eos-cli-config-gen"

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the batch: gate each action by tags and generate per device",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, logger, err := buildRunner()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		report, err := r.Run(cmd.Context())
		if report != nil {
			printReport(report)
		}
		return err
	},
}

func init() {
	addRunFlags(runCmd)
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&flagTags, "tags", "t", tags.All, "comma-separated tags to run")
	cmd.Flags().StringVar(&flagSkipTags, "skip-tags", "", "comma-separated tags to skip")
	cmd.Flags().StringVarP(&flagInventory, "inventory", "i", "inventory.yml", "inventory file")
	cmd.Flags().StringSliceVarP(&flagLimit, "limit", "l", nil, "restrict the batch to the named devices")
	cmd.Flags().StringVar(&flagGenerator, "generator", defaultGeneratorBinary, "generator binary")
	cmd.Flags().BoolVar(&flagSkipVerify, "skip-requirements", false, "skip the requirements verification")
}

// buildRunner wires the batch from flags and project configuration. The
// tag flags are tokenized here; the gate itself never parses input.
func buildRunner() (*runner.Runner, *zap.Logger, error) {
	cfg, err := config.Load(flagProject)
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(cfg.LogsDir(), flagDebug)
	if err != nil {
		return nil, nil, err
	}

	catalog, err := loadCatalog(cfg)
	if err != nil {
		return nil, nil, err
	}

	inventoryPath := flagInventory
	if !filepath.IsAbs(inventoryPath) {
		inventoryPath = filepath.Join(cfg.ProjectDir, inventoryPath)
	}
	inv, err := inventory.Load(inventoryPath)
	if err != nil {
		return nil, nil, err
	}

	var verifier requirements.Verifier
	if !flagSkipVerify {
		verifier = requirements.BinaryVerifier{Binaries: []string{flagGenerator}}
	}

	r, err := runner.New(runner.Options{
		Config:    cfg,
		Catalog:   catalog,
		Inventory: inv,
		Generator: generator.Command{Binary: flagGenerator},
		Verifier:  verifier,
		Logger:    logger,
		Requested: tags.Split(flagTags),
		Skipped:   tags.Split(flagSkipTags),
		Limit:     flagLimit,
	})
	if err != nil {
		return nil, nil, err
	}
	return r, logger, nil
}

// loadCatalog merges the built-in actions with any custom specs found in
// the project actions directory.
func loadCatalog(cfg *config.Config) (*action.Catalog, error) {
	catalog := action.Default()
	files, err := action.LoadSpecDir(cfg.ActionsDir())
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return catalog, nil
	}
	specs := make([]action.Spec, 0, len(files))
	for _, file := range files {
		specs = append(specs, file.Spec)
	}
	return catalog.Merge(specs...)
}

func printReport(report *runner.Report) {
	fmt.Printf("run %s\n", report.RunID)
	for _, decision := range report.Decisions {
		verdict := "held"
		if decision.Run {
			verdict = "run"
		}
		fmt.Printf("  %-12s %s\n", decision.ActionID, verdict)
	}
	if report.NothingToDo {
		fmt.Println("  nothing to do for the requested tags")
		return
	}
	ok := 0
	for _, device := range report.Devices {
		if device.Err == nil {
			ok++
		}
	}
	fmt.Printf("  devices: %d ok, %d failed\n", ok, len(report.Devices)-ok)
	if failed := report.FailedDevices(); len(failed) > 0 {
		fmt.Printf("  failed: %s\n", strings.Join(failed, ", "))
	}
}
