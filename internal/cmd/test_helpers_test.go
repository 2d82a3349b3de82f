package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// isolate points HOME and the working directory at empty temp directories
// and clears QUADSMITH_* overrides so no real configuration is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{
		"QUADSMITH_OUTPUT_DIR", "QUADSMITH_MANIFEST_DIR", "QUADSMITH_VALUES_FILE",
		"QUADSMITH_PODMAN", "QUADSMITH_LOG_LEVEL", "QUADSMITH_STRICT", "QUADSMITH_WORKERS",
	} {
		t.Setenv(key, "")
	}
	t.Chdir(t.TempDir())
	return home
}

// resetFlags restores every flag of c and its children to its default so
// cobra state doesn't leak between tests.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// executeCmd executes the root command with the given args and returns
// everything written to stdout, stderr and the ui package.
func executeCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	oldOutput := color.Output
	t.Cleanup(func() { color.Output = oldOutput })

	buf := new(bytes.Buffer)
	color.Output = buf
	rootCmd.SetArgs(args)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	err := rootCmd.Execute()
	return buf.String(), err
}

// writeFile writes content under dir and returns the path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const sampleDefinitions = `apiVersion: quadsmith/v1
kind: Units
units:
  - name: podman-web
    type: container
    settings:
      Container:
        Image: docker.io/library/nginx
        PublishPort: ["8080:80"]
  - name: podman-frontend
    type: network
  - name: podman-app
    type: build
    settings:
      Build:
        File: !path /srv/app/Containerfile
`

const hijackDefinitions = `units:
  - name: podman-web
    type: container
    settings:
      Container:
        ContainerName: db
`
