// Package preflight provides pre-flight checks for the tools quadsmith's
// output depends on. Checks only inspect the filesystem; nothing is executed.
package preflight

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// ErrNotExecutable is returned when a binary exists but cannot be executed.
var ErrNotExecutable = errors.New("not executable")

// BinaryCheck represents a binary and its purpose.
type BinaryCheck struct {
	Name        string
	Required    bool   // false = warning only
	InstallHint string // e.g., "brew install podman" or "https://..."
}

// requiredBinaries defines binaries that must be present for generated units
// to run. Podman is located separately by ResolvePodman since its path is
// configurable.
var requiredBinaries = []BinaryCheck{
	{
		Name:        "systemctl",
		Required:    true,
		InstallHint: "Quadlet units are loaded by systemd: https://systemd.io",
	},
}

// optionalBinaries defines binaries that help inspect generated units.
var optionalBinaries = []BinaryCheck{
	{
		Name:        "systemd-analyze",
		Required:    false,
		InstallHint: "Install systemd-analyze to verify units: https://systemd.io",
	},
}

// lookPath is replaced in tests.
var lookPath = exec.LookPath

// missing returns the binaries in bins that are not on PATH.
func missing(bins []BinaryCheck) []BinaryCheck {
	var out []BinaryCheck
	for _, bin := range bins {
		if _, err := lookPath(bin.Name); err != nil {
			out = append(out, bin)
		}
	}
	return out
}

// CheckAll performs all binary checks. Errors are for missing required
// binaries, warnings are for missing optional binaries.
func CheckAll() (warnings []string, errors []string) {
	for _, bin := range missing(requiredBinaries) {
		errors = append(errors, bin.Name+": "+bin.InstallHint)
	}
	for _, bin := range missing(optionalBinaries) {
		warnings = append(warnings, bin.Name+": "+bin.InstallHint)
	}
	return warnings, errors
}

// ResolvePodman locates the Podman binary. An absolute or relative path
// containing a separator is checked directly; a bare name is searched for
// in PATH. The resolved path is returned.
func ResolvePodman(binary string) (string, error) {
	if binary == "" {
		binary = "podman"
	}

	if filepath.Base(binary) == binary {
		path, err := lookPath(binary)
		if err != nil {
			return "", fmt.Errorf("podman binary %q not found in PATH: %w", binary, err)
		}
		return path, nil
	}

	info, err := os.Stat(binary)
	if err != nil {
		return "", fmt.Errorf("podman binary %q: %w", binary, err)
	}
	if info.IsDir() || info.Mode().Perm()&0111 == 0 {
		return "", fmt.Errorf("podman binary %q: %w", binary, ErrNotExecutable)
	}
	return binary, nil
}
