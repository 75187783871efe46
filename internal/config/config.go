// internal/config/config.go
//
// Project configuration for avd runs. A project directory carries an
// optional avd.yml plus the conventional output layout (intended configs,
// documentation, logs, state). Missing config means defaults.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the conventional project configuration file.
const ConfigFileName = "avd.yml"

// Conversion and validation modes accepted by the generator seam.
var (
	conversionModes = []string{"disabled", "error", "warning", "info", "debug", "quiet"}
	validationModes = []string{"disabled", "error", "warning"}
)

const (
	defaultConversionMode = "debug"
	defaultValidationMode = "warning"
	defaultContainerRoot  = "FABRIC"
)

// ProjectConfig models avd.yml. GenerateDeviceDoc is a pointer so an
// absent key can be told apart from an explicit false; applyDefaults
// resolves it exactly once at load time.
type ProjectConfig struct {
	Version           int      `yaml:"version"`
	GenerateDeviceDoc *bool    `yaml:"generate_device_doc,omitempty"`
	ContainerRoot     string   `yaml:"container_root,omitempty"`
	MaxParallel       int      `yaml:"max_parallel,omitempty"`
	ConversionMode    string   `yaml:"conversion_mode,omitempty"`
	ValidationMode    string   `yaml:"validation_mode,omitempty"`
	ConfigOutputDir   string   `yaml:"config_output_dir,omitempty"`
	DocOutputDir      string   `yaml:"doc_output_dir,omitempty"`
	StructuredDir     string   `yaml:"structured_config_dir,omitempty"`
	ActionsDir        string   `yaml:"actions_dir,omitempty"`
	RequirementsFiles []string `yaml:"requirements_files,omitempty"`
}

// Config holds the resolved runtime configuration for one project.
type Config struct {
	// ProjectDir is the directory the operator ran `avd` from.
	ProjectDir string

	// DocsEnabled is the resolved documentation override. It defaults to
	// true and is fixed for the lifetime of the run; the gate receives it
	// as an explicit input, never as a per-call fallback.
	DocsEnabled bool

	Project ProjectConfig
}

// Load reads avd.yml from the project directory. A missing file yields
// the defaults; a malformed or invalid file is an error.
func Load(projectDir string) (*Config, error) {
	cfg := &Config{
		ProjectDir: projectDir,
		Project:    defaultProjectConfig(),
	}
	path := cfg.ConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg.Project.normalize(projectDir)
			cfg.resolve()
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	var parsed ProjectConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	parsed.applyDefaults()
	parsed.normalize(projectDir)
	if err := parsed.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg.Project = parsed
	cfg.resolve()
	return cfg, nil
}

func (c *Config) resolve() {
	c.DocsEnabled = c.Project.GenerateDeviceDoc == nil || *c.Project.GenerateDeviceDoc
}

// ConfigPath returns the on-disk location of the project config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.ProjectDir, ConfigFileName)
}

// LogsDir returns the directory run logs are written to.
func (c *Config) LogsDir() string {
	return filepath.Join(c.ProjectDir, "logs")
}

// StateDir returns the directory for cached run state, including the
// requirements verification result.
func (c *Config) StateDir() string {
	return filepath.Join(c.ProjectDir, "state")
}

// ConfigOutputDir returns the directory intended configurations land in.
func (c *Config) ConfigOutputDir() string {
	return c.Project.ConfigOutputDir
}

// DocOutputDir returns the directory device documentation lands in.
func (c *Config) DocOutputDir() string {
	return c.Project.DocOutputDir
}

// StructuredConfigDir returns the directory holding structured configs.
func (c *Config) StructuredConfigDir() string {
	return c.Project.StructuredDir
}

// ActionsDir returns the directory scanned for custom action specs.
func (c *Config) ActionsDir() string {
	return c.Project.ActionsDir
}

// MaxParallel returns the per-device fan-out bound; 0 means unbounded.
func (c *Config) MaxParallel() int {
	return c.Project.MaxParallel
}

// ContainerRoot returns the inventory group treated as topology root.
func (c *Config) ContainerRoot() string {
	return c.Project.ContainerRoot
}

func defaultProjectConfig() ProjectConfig {
	pc := ProjectConfig{Version: 1}
	pc.applyDefaults()
	return pc
}

func (pc *ProjectConfig) applyDefaults() {
	if pc.Version == 0 {
		pc.Version = 1
	}
	if pc.GenerateDeviceDoc == nil {
		enabled := true
		pc.GenerateDeviceDoc = &enabled
	}
	if strings.TrimSpace(pc.ConversionMode) == "" {
		pc.ConversionMode = defaultConversionMode
	}
	if strings.TrimSpace(pc.ValidationMode) == "" {
		pc.ValidationMode = defaultValidationMode
	}
	if strings.TrimSpace(pc.ContainerRoot) == "" {
		pc.ContainerRoot = defaultContainerRoot
	}
	if strings.TrimSpace(pc.ConfigOutputDir) == "" {
		pc.ConfigOutputDir = filepath.Join("intended", "configs")
	}
	if strings.TrimSpace(pc.DocOutputDir) == "" {
		pc.DocOutputDir = filepath.Join("documentation", "devices")
	}
	if strings.TrimSpace(pc.StructuredDir) == "" {
		pc.StructuredDir = filepath.Join("intended", "structured_configs")
	}
	if strings.TrimSpace(pc.ActionsDir) == "" {
		pc.ActionsDir = "actions"
	}
}

func (pc *ProjectConfig) normalize(base string) {
	pc.ContainerRoot = strings.TrimSpace(pc.ContainerRoot)
	pc.ConversionMode = strings.ToLower(strings.TrimSpace(pc.ConversionMode))
	pc.ValidationMode = strings.ToLower(strings.TrimSpace(pc.ValidationMode))
	pc.ConfigOutputDir = resolvePath(base, pc.ConfigOutputDir)
	pc.DocOutputDir = resolvePath(base, pc.DocOutputDir)
	pc.StructuredDir = resolvePath(base, pc.StructuredDir)
	pc.ActionsDir = resolvePath(base, pc.ActionsDir)
	if pc.MaxParallel < 0 {
		pc.MaxParallel = 0
	}
	for i := range pc.RequirementsFiles {
		pc.RequirementsFiles[i] = resolvePath(base, pc.RequirementsFiles[i])
	}
}

func (pc *ProjectConfig) validate() error {
	if pc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	if !contains(conversionModes, pc.ConversionMode) {
		return fmt.Errorf("conversion_mode must be one of %s", strings.Join(conversionModes, ", "))
	}
	if !contains(validationModes, pc.ValidationMode) {
		return fmt.Errorf("validation_mode must be one of %s", strings.Join(validationModes, ", "))
	}
	return nil
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

func resolvePath(base, candidate string) string {
	trimmed := strings.TrimSpace(candidate)
	if trimmed == "" {
		return ""
	}
	if filepath.IsAbs(trimmed) {
		return filepath.Clean(trimmed)
	}
	return filepath.Clean(filepath.Join(base, trimmed))
}
