package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaultsWhenMissing(t *testing.T) {
	projectDir := t.TempDir()
	cfg, err := Load(projectDir)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Project.Version != 1 {
		t.Fatalf("expected default version == 1, got %d", cfg.Project.Version)
	}
	if !cfg.DocsEnabled {
		t.Fatalf("documentation must default to enabled")
	}
	if cfg.ContainerRoot() != defaultContainerRoot {
		t.Fatalf("expected default container root, got %q", cfg.ContainerRoot())
	}
	if !strings.HasPrefix(cfg.ConfigOutputDir(), projectDir) {
		t.Fatalf("expected resolved output dir, got %s", cfg.ConfigOutputDir())
	}
}

func TestLoadParsesYaml(t *testing.T) {
	projectDir := t.TempDir()
	configYAML := strings.TrimSpace(`
version: 1
generate_device_doc: false
container_root: DC1_FABRIC
max_parallel: 4
conversion_mode: warning
validation_mode: error
config_output_dir: out/configs
doc_output_dir: out/docs
`)
	if err := os.WriteFile(filepath.Join(projectDir, ConfigFileName), []byte(configYAML), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(projectDir)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.DocsEnabled {
		t.Fatalf("explicit false must disable documentation")
	}
	if cfg.ContainerRoot() != "DC1_FABRIC" {
		t.Fatalf("wrong container root: %s", cfg.ContainerRoot())
	}
	if cfg.MaxParallel() != 4 {
		t.Fatalf("wrong max_parallel: %d", cfg.MaxParallel())
	}
	if cfg.Project.ConversionMode != "warning" {
		t.Fatalf("wrong conversion mode: %s", cfg.Project.ConversionMode)
	}
	if !strings.HasPrefix(cfg.ConfigOutputDir(), projectDir) {
		t.Fatalf("expected relative output dir resolved against project, got %s", cfg.ConfigOutputDir())
	}
	if !strings.HasSuffix(cfg.DocOutputDir(), filepath.Join("out", "docs")) {
		t.Fatalf("wrong doc output dir: %s", cfg.DocOutputDir())
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		msg  string
	}{
		{
			name: "bad conversion mode",
			yaml: "version: 1\nconversion_mode: loud\n",
			msg:  "conversion_mode",
		},
		{
			name: "bad validation mode",
			yaml: "version: 1\nvalidation_mode: panic\n",
			msg:  "validation_mode",
		},
		{
			name: "malformed yaml",
			yaml: "version: [",
			msg:  "parse",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			projectDir := t.TempDir()
			if err := os.WriteFile(filepath.Join(projectDir, ConfigFileName), []byte(tc.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(projectDir); err == nil || !strings.Contains(err.Error(), tc.msg) {
				t.Fatalf("expected error containing %q, got %v", tc.msg, err)
			}
		})
	}
}

func TestGenerateDeviceDocExplicitTrue(t *testing.T) {
	projectDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(projectDir, ConfigFileName), []byte("version: 1\ngenerate_device_doc: true\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(projectDir)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !cfg.DocsEnabled {
		t.Fatalf("explicit true must leave documentation enabled")
	}
}

func TestNegativeMaxParallelNormalizedToUnbounded(t *testing.T) {
	projectDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(projectDir, ConfigFileName), []byte("version: 1\nmax_parallel: -2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(projectDir)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.MaxParallel() != 0 {
		t.Fatalf("expected negative max_parallel to normalize to 0, got %d", cfg.MaxParallel())
	}
}
