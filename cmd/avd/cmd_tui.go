package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/noredistribution/avd/internal/runner"
	"github.com/noredistribution/avd/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Run the batch inside the interactive dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, logger, err := buildRunner()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		model := tui.New(func() (*runner.Report, error) {
			return r.Run(cmd.Context())
		})
		program := tea.NewProgram(model, tea.WithAltScreen())
		_, err = program.Run()
		return err
	},
}

func init() {
	addRunFlags(tuiCmd)
}
