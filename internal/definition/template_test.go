package definition

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTemplate(t *testing.T) {
	t.Run("values and sprig functions", func(t *testing.T) {
		got, err := RenderTemplate("t", `{{ .image | upper }} {{ .tag | default "latest" }}`,
			map[string]any{"image": "nginx", "tag": ""})
		require.NoError(t, err)
		assert.Equal(t, "NGINX latest", string(got))
	})

	t.Run("missing key is an error", func(t *testing.T) {
		_, err := RenderTemplate("t", `{{ .nope }}`, nil)
		require.Error(t, err)
	})

	t.Run("parse error", func(t *testing.T) {
		_, err := RenderTemplate("t", `{{ .broken `, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse template")
	})
}

func TestIsTemplate(t *testing.T) {
	assert.True(t, IsTemplate("units.yaml.tmpl"))
	assert.False(t, IsTemplate("units.yaml"))
}

func TestLoadValues(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "prod.yaml")
	require.NoError(t, os.WriteFile(path, []byte("domain: example.com\nreplicas: 2\n"), 0644))

	values, err := LoadValues(path)
	require.NoError(t, err)
	assert.Equal(t, "example.com", values["domain"])
	assert.Equal(t, 2, values["replicas"])

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, nil, 0644))
	values, err = LoadValues(empty)
	require.NoError(t, err)
	assert.Empty(t, values)

	_, err = LoadValues(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}
