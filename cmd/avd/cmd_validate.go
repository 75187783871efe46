package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/noredistribution/avd/internal/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the project configuration and action catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagProject)
		if err != nil {
			return err
		}
		catalog, err := loadCatalog(cfg)
		if err != nil {
			return err
		}
		for _, spec := range catalog.Specs() {
			docs := ""
			if spec.Docs {
				docs = " (docs)"
			}
			fmt.Printf("  %-12s triggers=%s skip=%s%s\n", spec.ID, spec.Trigger(), spec.Skip(), docs)
		}
		fmt.Printf("ok: %d actions, generate_device_doc=%t\n", len(catalog.IDs()), cfg.DocsEnabled)
		return nil
	},
}
