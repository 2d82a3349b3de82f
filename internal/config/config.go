// Package config handles quadsmith configuration discovery and loading.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// ProjectFile is the name of a per-project configuration file.
const ProjectFile = "quadsmith.toml"

// Paths contains output locations.
type Paths struct {
	// OutputDir receives the rendered quadlet files.
	OutputDir string `toml:"output_dir"`

	// ManifestDir receives one manifest file per resource type.
	// Defaults to OutputDir/.manifests.
	ManifestDir string `toml:"manifest_dir"`

	// ValuesFile is the default template values file for .tmpl definitions.
	ValuesFile string `toml:"values_file"`
}

// Render controls the processing pipeline.
type Render struct {
	// Strict fails the render when any unit has violations.
	Strict bool `toml:"strict"`

	// Workers bounds how many units are processed concurrently.
	Workers int `toml:"workers"`
}

// Podman describes the runtime the generated units depend on.
type Podman struct {
	// Binary is the podman executable path checked by preflight.
	Binary string `toml:"binary"`
}

// Logging contains configuration for diagnostic output.
type Logging struct {
	Level string `toml:"level"`
}

// Config holds the quadsmith configuration.
type Config struct {
	Paths   Paths   `toml:"paths"`
	Render  Render  `toml:"render"`
	Podman  Podman  `toml:"podman"`
	Logging Logging `toml:"logging"`

	// Source is the file the config was read from; empty for defaults only.
	Source string `toml:"-"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: "~/.config/containers/systemd",
		},
		Render: Render{
			Strict:  true,
			Workers: runtime.NumCPU(),
		},
		Podman: Podman{
			Binary: "/usr/bin/podman",
		},
		Logging: Logging{
			Level: "info",
		},
	}
}

// DefaultPath returns the user-level configuration file location.
func DefaultPath() (string, error) {
	return expandPath("~/.config/quadsmith/config.toml")
}

// FindRoot searches upward from the current directory for a project
// directory containing quadsmith.toml.
func FindRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		candidate := filepath.Join(dir, ProjectFile)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("project root not found (no %s)", ProjectFile)
}

// Load reads configuration. An explicit path must exist. Without one, the
// nearest project quadsmith.toml is used, then the user-level file, then the
// defaults. QUADSMITH_* environment variables override file values.
func Load(path string) (*Config, error) {
	cfg := Default()

	resolved, err := resolvePath(path)
	if err != nil {
		return nil, err
	}

	if resolved != "" {
		if err := decodeFile(resolved, &cfg); err != nil {
			return nil, err
		}
		cfg.Source = resolved
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// resolvePath returns the config file to read, or "" when none exists.
func resolvePath(path string) (string, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", err
		}
		if _, err := os.Stat(expanded); err != nil {
			return "", fmt.Errorf("stat config: %w", err)
		}
		return expanded, nil
	}

	if root, err := FindRoot(); err == nil {
		return filepath.Join(root, ProjectFile), nil
	}

	userPath, err := DefaultPath()
	if err != nil {
		return "", err
	}
	if info, err := os.Stat(userPath); err == nil && !info.IsDir() {
		return userPath, nil
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("stat config: %w", err)
	}

	return "", nil
}

func decodeFile(path string, cfg *Config) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	decoder := toml.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// applyEnv overrides fields from QUADSMITH_* variables.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("QUADSMITH_OUTPUT_DIR"); ok && v != "" {
		c.Paths.OutputDir = v
	}
	if v, ok := lookup("QUADSMITH_MANIFEST_DIR"); ok && v != "" {
		c.Paths.ManifestDir = v
	}
	if v, ok := lookup("QUADSMITH_VALUES_FILE"); ok && v != "" {
		c.Paths.ValuesFile = v
	}
	if v, ok := lookup("QUADSMITH_PODMAN"); ok && v != "" {
		c.Podman.Binary = v
	}
	if v, ok := lookup("QUADSMITH_LOG_LEVEL"); ok && v != "" {
		c.Logging.Level = v
	}
	if v, ok := lookup("QUADSMITH_STRICT"); ok && v != "" {
		strict, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("QUADSMITH_STRICT: %w", err)
		}
		c.Render.Strict = strict
	}
	if v, ok := lookup("QUADSMITH_WORKERS"); ok && v != "" {
		workers, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("QUADSMITH_WORKERS: %w", err)
		}
		c.Render.Workers = workers
	}
	return nil
}

func (c *Config) normalize() error {
	var err error
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return err
	}
	if c.Paths.ManifestDir == "" && c.Paths.OutputDir != "" {
		c.Paths.ManifestDir = filepath.Join(c.Paths.OutputDir, ".manifests")
	}
	if c.Paths.ManifestDir, err = expandPath(c.Paths.ManifestDir); err != nil {
		return err
	}
	if c.Paths.ValuesFile, err = expandPath(c.Paths.ValuesFile); err != nil {
		return err
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	return nil
}

// validLevels are the accepted logging levels.
var validLevels = []string{"debug", "info", "warn", "error"}

// Validate checks field values.
func (c *Config) Validate() error {
	if c.Paths.OutputDir == "" {
		return errors.New("paths.output_dir must be set")
	}
	if c.Render.Workers < 1 {
		return fmt.Errorf("render.workers must be at least 1, got %d", c.Render.Workers)
	}
	for _, level := range validLevels {
		if c.Logging.Level == level {
			return nil
		}
	}
	return fmt.Errorf("logging.level %q is not one of %s", c.Logging.Level, strings.Join(validLevels, ", "))
}

// ExpandPath exposes the path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && pathValue[1] == '/' {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}
