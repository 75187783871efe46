package action

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// SpecFile pairs a parsed action spec with its on-disk source.
type SpecFile struct {
	Spec Spec
	Path string
}

// ParseSpecYAML decodes and validates a single action spec payload.
func ParseSpecYAML(data []byte) (Spec, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Spec{}, fmt.Errorf("action: spec payload is empty")
	}
	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return Spec{}, fmt.Errorf("action: decode spec: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return Spec{}, err
	}
	return spec.Normalized(), nil
}

// LoadSpecFile reads a YAML file from disk and returns the parsed action spec.
func LoadSpecFile(path string) (SpecFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return SpecFile{}, fmt.Errorf("action: stat %s: %w", path, err)
	}
	if info.IsDir() {
		return SpecFile{}, fmt.Errorf("action: %s is a directory", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return SpecFile{}, fmt.Errorf("action: read %s: %w", path, err)
	}
	spec, err := ParseSpecYAML(data)
	if err != nil {
		return SpecFile{}, fmt.Errorf("action: %s: %w", path, err)
	}
	return SpecFile{Spec: spec, Path: filepath.Clean(path)}, nil
}

// LoadSpecDir scans a directory for *.yaml action specs and returns the
// parsed files. Missing directories are treated as "no custom actions" to
// simplify startup.
func LoadSpecDir(dir string) ([]SpecFile, error) {
	trimmed := strings.TrimSpace(dir)
	if trimmed == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(trimmed)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("action: read %s: %w", trimmed, err)
	}
	var specs []SpecFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !isYAMLFile(name) {
			continue
		}
		path := filepath.Join(trimmed, name)
		spec, err := LoadSpecFile(path)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	if len(specs) == 0 {
		return nil, nil
	}
	sort.Slice(specs, func(i, j int) bool { return specs[i].Path < specs[j].Path })
	return specs, nil
}

func isYAMLFile(name string) bool {
	lower := strings.ToLower(strings.TrimSpace(name))
	return strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml")
}
