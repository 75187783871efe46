package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/noredistribution/avd/internal/config"
	"github.com/noredistribution/avd/internal/inventory"
)

var (
	flagContainerRoot   string
	flagConfigletDir    string
	flagConfigletPrefix string
	flagDestination     string
	flagFormat          string
)

var inventoryCmd = &cobra.Command{
	Use:   "inventory",
	Short: "Inventory-derived exports",
}

// containerExport is the provisioning payload consumed by the CloudVision
// collaborator.
type containerExport struct {
	Topology   inventory.Topology `json:"cvp_topology" yaml:"cvp_topology"`
	Configlets map[string]string  `json:"cvp_configlets,omitempty" yaml:"cvp_configlets,omitempty"`
}

var toContainerCmd = &cobra.Command{
	Use:   "to-container",
	Short: "Derive the CloudVision container topology from the inventory",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagProject)
		if err != nil {
			return err
		}
		inventoryPath := flagInventory
		if !filepath.IsAbs(inventoryPath) {
			inventoryPath = filepath.Join(cfg.ProjectDir, inventoryPath)
		}
		inv, err := inventory.Load(inventoryPath)
		if err != nil {
			return err
		}
		root := flagContainerRoot
		if root == "" {
			root = cfg.ContainerRoot()
		}
		topology, err := inv.Topology(root)
		if err != nil {
			return err
		}
		export := containerExport{Topology: topology}
		if flagConfigletDir != "" {
			configlets, err := inventory.Configlets(flagConfigletDir, flagConfigletPrefix, "")
			if err != nil {
				return err
			}
			export.Configlets = configlets
		}
		return writeExport(export)
	},
}

func writeExport(export containerExport) error {
	var data []byte
	var err error
	switch flagFormat {
	case "yaml", "yml":
		data, err = yaml.Marshal(export)
	case "json":
		data, err = json.MarshalIndent(export, "", "  ")
		data = append(data, '\n')
	default:
		return fmt.Errorf("unsupported format %q (yaml or json)", flagFormat)
	}
	if err != nil {
		return fmt.Errorf("encode topology: %w", err)
	}
	if flagDestination == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(flagDestination, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", flagDestination, err)
	}
	return nil
}

func init() {
	toContainerCmd.Flags().StringVarP(&flagInventory, "inventory", "i", "inventory.yml", "inventory file")
	toContainerCmd.Flags().StringVar(&flagContainerRoot, "container-root", "", "inventory group used as topology root (defaults to the configured one)")
	toContainerCmd.Flags().StringVar(&flagConfigletDir, "configlet-dir", "", "directory of intended configurations to export as configlets")
	toContainerCmd.Flags().StringVar(&flagConfigletPrefix, "configlet-prefix", "", "prefix for exported configlet names")
	toContainerCmd.Flags().StringVarP(&flagDestination, "destination", "d", "", "write output to a file instead of stdout")
	toContainerCmd.Flags().StringVar(&flagFormat, "format", "yaml", "output format: yaml or json")
	inventoryCmd.AddCommand(toContainerCmd)
}
