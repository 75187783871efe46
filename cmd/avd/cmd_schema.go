package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/noredistribution/avd/internal/schema"
)

var flagSchemaOutput string

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Schema tooling",
}

var schemaConvertCmd = &cobra.Command{
	Use:   "convert <schema.yml>",
	Short: "Convert an AVD schema to JSON Schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}
		var avdSchema schema.Schema
		if err := yaml.Unmarshal(data, &avdSchema); err != nil {
			return fmt.Errorf("parse %s: %w", args[0], err)
		}
		converted, err := schema.NewConverter().Convert(avdSchema)
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(converted, "", "  ")
		if err != nil {
			return fmt.Errorf("encode schema: %w", err)
		}
		out = append(out, '\n')
		if flagSchemaOutput == "" {
			_, err = os.Stdout.Write(out)
			return err
		}
		if err := os.WriteFile(flagSchemaOutput, out, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", flagSchemaOutput, err)
		}
		return nil
	},
}

func init() {
	schemaConvertCmd.Flags().StringVarP(&flagSchemaOutput, "output", "o", "", "write JSON Schema to a file instead of stdout")
	schemaCmd.AddCommand(schemaConvertCmd)
}
