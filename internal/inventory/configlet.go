package inventory

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultConfigletExtension is the file extension intended configurations
// are stored under.
const DefaultConfigletExtension = "cfg"

// Configlets reads the intended configurations from a directory and
// returns them keyed by configlet name. A non-empty prefix is prepended
// as "<prefix>_<file>"; an empty prefix leaves names untouched.
func Configlets(dir, prefix, extension string) (map[string]string, error) {
	if strings.TrimSpace(extension) == "" {
		extension = DefaultConfigletExtension
	}
	pattern := filepath.Join(dir, "*."+extension)
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("inventory: glob %s: %w", pattern, err)
	}
	configlets := make(map[string]string, len(matches))
	for _, path := range matches {
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if trimmed := strings.TrimSpace(prefix); trimmed != "" {
			name = trimmed + "_" + name
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("inventory: read configlet %s: %w", path, err)
		}
		configlets[name] = string(data)
	}
	return configlets, nil
}

// ConfigletNames returns the sorted names of a configlet map.
func ConfigletNames(configlets map[string]string) []string {
	if len(configlets) == 0 {
		return nil
	}
	out := make([]string, 0, len(configlets))
	for name := range configlets {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
