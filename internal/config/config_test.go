package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// evalSymlinks resolves symlinks for path comparison (macOS /var -> /private/var).
func evalSymlinks(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return path
	}
	return resolved
}

// isolate points HOME at an empty directory and moves into a fresh working
// directory so no real configuration leaks into the test.
func isolate(t *testing.T) string {
	t.Helper()
	home := evalSymlinks(t, t.TempDir())
	t.Setenv("HOME", home)
	for _, key := range []string{
		"QUADSMITH_OUTPUT_DIR", "QUADSMITH_MANIFEST_DIR", "QUADSMITH_VALUES_FILE",
		"QUADSMITH_PODMAN", "QUADSMITH_LOG_LEVEL", "QUADSMITH_STRICT", "QUADSMITH_WORKERS",
	} {
		t.Setenv(key, "")
	}
	work := evalSymlinks(t, t.TempDir())
	t.Chdir(work)
	return home
}

func TestFindRoot_FromSubdirectory(t *testing.T) {
	isolate(t)
	root := evalSymlinks(t, t.TempDir())
	require.NoError(t, os.WriteFile(filepath.Join(root, ProjectFile), nil, 0644))

	subDir := filepath.Join(root, "sub", "deep")
	require.NoError(t, os.MkdirAll(subDir, 0755))
	t.Chdir(subDir)

	got, err := FindRoot()
	require.NoError(t, err)
	assert.Equal(t, root, got)
}

func TestFindRoot_NoProjectRoot(t *testing.T) {
	isolate(t)

	_, err := FindRoot()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "project root not found")
}

func TestLoad_Defaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Empty(t, cfg.Source)
	assert.Equal(t, filepath.Join(home, ".config", "containers", "systemd"), cfg.Paths.OutputDir)
	assert.Equal(t, filepath.Join(cfg.Paths.OutputDir, ".manifests"), cfg.Paths.ManifestDir)
	assert.True(t, cfg.Render.Strict)
	assert.GreaterOrEqual(t, cfg.Render.Workers, 1)
	assert.Equal(t, "/usr/bin/podman", cfg.Podman.Binary)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_ProjectFile(t *testing.T) {
	isolate(t)
	root := evalSymlinks(t, t.TempDir())
	content := `
[paths]
output_dir = "out"

[render]
strict = false
workers = 2

[logging]
level = "DEBUG"
`
	require.NoError(t, os.WriteFile(filepath.Join(root, ProjectFile), []byte(content), 0644))
	t.Chdir(root)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, ProjectFile), cfg.Source)
	assert.Equal(t, filepath.Join(root, "out"), cfg.Paths.OutputDir)
	assert.Equal(t, filepath.Join(root, "out", ".manifests"), cfg.Paths.ManifestDir)
	assert.False(t, cfg.Render.Strict)
	assert.Equal(t, 2, cfg.Render.Workers)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_UserFile(t *testing.T) {
	home := isolate(t)
	userDir := filepath.Join(home, ".config", "quadsmith")
	require.NoError(t, os.MkdirAll(userDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(userDir, "config.toml"),
		[]byte("[podman]\nbinary = \"/opt/podman/bin/podman\"\n"), 0644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/opt/podman/bin/podman", cfg.Podman.Binary)
}

func TestLoad_ExplicitPathMissing(t *testing.T) {
	isolate(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stat config")
}

func TestLoad_UnknownField(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[render]\nparallel = 3\n"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	out := evalSymlinks(t, t.TempDir())
	t.Setenv("QUADSMITH_OUTPUT_DIR", out)
	t.Setenv("QUADSMITH_STRICT", "false")
	t.Setenv("QUADSMITH_WORKERS", "3")
	t.Setenv("QUADSMITH_PODMAN", "podman")
	t.Setenv("QUADSMITH_LOG_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, out, cfg.Paths.OutputDir)
	assert.False(t, cfg.Render.Strict)
	assert.Equal(t, 3, cfg.Render.Workers)
	assert.Equal(t, "podman", cfg.Podman.Binary)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoad_InvalidEnv(t *testing.T) {
	isolate(t)
	t.Setenv("QUADSMITH_WORKERS", "many")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "QUADSMITH_WORKERS")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults valid", mutate: func(*Config) {}},
		{
			name:    "zero workers",
			mutate:  func(c *Config) { c.Render.Workers = 0 },
			wantErr: "render.workers",
		},
		{
			name:    "bad level",
			mutate:  func(c *Config) { c.Logging.Level = "loud" },
			wantErr: "logging.level",
		},
		{
			name:    "empty output dir",
			mutate:  func(c *Config) { c.Paths.OutputDir = "" },
			wantErr: "output_dir",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestExpandPath(t *testing.T) {
	home := isolate(t)

	got, err := ExpandPath("~/units")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "units"), got)

	got, err = ExpandPath("")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = ExpandPath("/abs/../path")
	require.NoError(t, err)
	assert.Equal(t, "/path", got)
}
