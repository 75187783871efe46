// Package requirements verifies that the environment satisfies the run's
// prerequisites. Verification happens once per batch: a cached result in
// the project state dir short-circuits later runs until it is cleared.
// The tag gate has no influence here.
package requirements

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Result is the outcome of one verification pass.
type Result struct {
	OK        bool      `yaml:"ok"`
	CheckedAt time.Time `yaml:"checked_at"`
	Failures  []string  `yaml:"failures,omitempty"`
}

// Verifier runs the actual requirement checks. Implementations must be
// safe to call once per batch.
type Verifier interface {
	Verify(ctx context.Context) (Result, error)
}

// VerifierFunc adapts a plain function to the Verifier interface.
type VerifierFunc func(ctx context.Context) (Result, error)

// Verify implements Verifier.
func (f VerifierFunc) Verify(ctx context.Context) (Result, error) {
	return f(ctx)
}

// CacheFileName is the state file holding the precomputed result.
const CacheFileName = "requirements.yml"

// Cache persists verification results in the project state directory.
type Cache struct {
	path string
}

// NewCache builds a cache rooted at the given state directory.
func NewCache(stateDir string) *Cache {
	return &Cache{path: filepath.Join(stateDir, CacheFileName)}
}

// Path returns the file backing this cache.
func (c *Cache) Path() string {
	if c == nil {
		return ""
	}
	return c.path
}

// Load returns the cached result if one is available.
func (c *Cache) Load() (Result, bool, error) {
	if c == nil {
		return Result{}, false, nil
	}
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Result{}, false, nil
		}
		return Result{}, false, fmt.Errorf("requirements: read %s: %w", c.path, err)
	}
	var result Result
	if err := yaml.Unmarshal(data, &result); err != nil {
		return Result{}, false, fmt.Errorf("requirements: parse %s: %w", c.path, err)
	}
	return result, true, nil
}

// Store writes a result to the cache, creating the state dir as needed.
func (c *Cache) Store(result Result) error {
	if c == nil {
		return fmt.Errorf("requirements: nil cache")
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("requirements: ensure state dir: %w", err)
	}
	data, err := yaml.Marshal(result)
	if err != nil {
		return fmt.Errorf("requirements: encode result: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("requirements: write %s: %w", c.path, err)
	}
	return nil
}

// Clear removes the cached result so the next batch verifies again.
func (c *Cache) Clear() error {
	if c == nil {
		return nil
	}
	if err := os.Remove(c.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("requirements: clear %s: %w", c.path, err)
	}
	return nil
}

// Ensure returns the precomputed result when one exists, otherwise runs
// the verifier and caches its outcome.
func Ensure(ctx context.Context, verifier Verifier, cache *Cache) (Result, error) {
	if cached, ok, err := cache.Load(); err != nil {
		return Result{}, err
	} else if ok {
		return cached, nil
	}
	if verifier == nil {
		return Result{}, fmt.Errorf("requirements: verifier is required")
	}
	result, err := verifier.Verify(ctx)
	if err != nil {
		return Result{}, err
	}
	if result.CheckedAt.IsZero() {
		result.CheckedAt = time.Now().UTC()
	}
	if err := cache.Store(result); err != nil {
		return Result{}, err
	}
	return result, nil
}

// BinaryVerifier checks that the named executables are resolvable on
// PATH. Missing binaries are reported as failures, not errors, so the
// result can be cached and surfaced to the operator.
type BinaryVerifier struct {
	Binaries []string
}

// Verify implements Verifier.
func (v BinaryVerifier) Verify(ctx context.Context) (Result, error) {
	result := Result{OK: true, CheckedAt: time.Now().UTC()}
	for _, binary := range v.Binaries {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		if _, err := exec.LookPath(binary); err != nil {
			result.OK = false
			result.Failures = append(result.Failures, fmt.Sprintf("%s not found on PATH", binary))
		}
	}
	return result, nil
}
