// cmd/avd/main.go
//
// Entry point for the avd CLI. Subcommands cover the batch run, catalog
// validation, the inventory-to-container topology export, and the schema
// converter.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagProject string
	flagDebug   bool
)

var rootCmd = &cobra.Command{
	Use:           "avd",
	Short:         "Tag-gated network automation orchestration",
	Long:          "avd sequences device configuration and documentation generation,\ngated by the run's requested and skipped tags.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagProject, "project", "p", ".", "project directory")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
	rootCmd.AddCommand(runCmd, tuiCmd, validateCmd, inventoryCmd, schemaCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
