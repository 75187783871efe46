// Package generator is the seam to the external configuration and
// documentation generator. The generation algorithm itself lives in the
// external plugin; this package only shapes its inputs and invokes it.
package generator

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// Request carries one device's generator invocation. The two booleans are
// the gate's verdicts; everything else is passed through untouched.
type Request struct {
	Device               string
	StructuredConfigFile string
	ConfigOutputFile     string
	DocOutputFile        string
	GenerateDeviceConfig bool
	GenerateDeviceDoc    bool
	ConversionMode       string
	ValidationMode       string
	CProfileFile         string
}

// Validate ensures the request names a device and asks for at least one
// artifact.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Device) == "" {
		return fmt.Errorf("generator: device is required")
	}
	if !r.GenerateDeviceConfig && !r.GenerateDeviceDoc {
		return fmt.Errorf("generator: %s: nothing to generate", r.Device)
	}
	return nil
}

// Generator renders one device's artifacts.
type Generator interface {
	Generate(ctx context.Context, req Request) error
}

// Command invokes an external generator binary per device. Flags follow
// the plugin's CLI contract; stderr is surfaced on failure.
type Command struct {
	// Binary is the generator executable, resolved via PATH when relative.
	Binary string
	// ExtraArgs are appended verbatim after the generated flags.
	ExtraArgs []string
}

// Generate implements Generator by shelling out to the configured binary.
func (c Command) Generate(ctx context.Context, req Request) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(c.Binary) == "" {
		return fmt.Errorf("generator: binary is required")
	}
	args := []string{
		"--device", req.Device,
		"--structured-config", req.StructuredConfigFile,
		"--generate-device-config", strconv.FormatBool(req.GenerateDeviceConfig),
		"--generate-device-doc", strconv.FormatBool(req.GenerateDeviceDoc),
	}
	if req.ConfigOutputFile != "" {
		args = append(args, "--config-output", req.ConfigOutputFile)
	}
	if req.DocOutputFile != "" {
		args = append(args, "--doc-output", req.DocOutputFile)
	}
	if req.ConversionMode != "" {
		args = append(args, "--conversion-mode", req.ConversionMode)
	}
	if req.ValidationMode != "" {
		args = append(args, "--validation-mode", req.ValidationMode)
	}
	if req.CProfileFile != "" {
		args = append(args, "--cprofile-file", req.CProfileFile)
	}
	args = append(args, c.ExtraArgs...)

	cmd := exec.CommandContext(ctx, c.Binary, args...)
	cmd.Stdout = os.Stdout
	var stderr strings.Builder
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return fmt.Errorf("generator: %s: %w: %s", req.Device, err, detail)
		}
		return fmt.Errorf("generator: %s: %w", req.Device, err)
	}
	return nil
}
