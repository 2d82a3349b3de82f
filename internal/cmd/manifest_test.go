package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cameronsjo/quadsmith/internal/quadlet"
)

func TestManifestCmd(t *testing.T) {
	dir := isolate(t)
	defs := writeFile(t, dir, "units.yaml", sampleDefinitions)

	t.Run("single type", func(t *testing.T) {
		output, err := executeCmd(t, "manifest", "--type", "build", defs)
		require.NoError(t, err)
		assert.Equal(t, "localhost/homemanager/app\n", output)
	})

	t.Run("mixed types fail", func(t *testing.T) {
		_, err := executeCmd(t, "manifest", defs)
		require.Error(t, err)
		assert.ErrorIs(t, err, quadlet.ErrMixedTypes)
		assert.Contains(t, err.Error(), "build, container, network")
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := executeCmd(t, "manifest", "-t", "pod", defs)
		assert.ErrorIs(t, err, quadlet.ErrUnknownResourceType)
	})

	t.Run("type with no units", func(t *testing.T) {
		output, err := executeCmd(t, "manifest", "-t", "volume", defs)
		require.NoError(t, err)
		assert.Empty(t, output)
	})
}

func TestManifestCmd_SingleTypeFile(t *testing.T) {
	dir := isolate(t)
	defs := writeFile(t, dir, "containers.yaml", `units:
  - name: podman-web
    type: container
  - name: db
    type: container
`)

	output, err := executeCmd(t, "manifest", defs)
	require.NoError(t, err)
	assert.Equal(t, "web\ndb\n", output)
}
