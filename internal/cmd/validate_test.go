package cmd

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cameronsjo/quadsmith/internal/quadlet"
	"github.com/cameronsjo/quadsmith/internal/render"
)

func TestValidateCmd_Valid(t *testing.T) {
	dir := isolate(t)
	defs := writeFile(t, dir, "units.yaml", sampleDefinitions)

	output, err := executeCmd(t, "validate", defs)
	require.NoError(t, err)
	assert.Contains(t, output, "3 units valid")
}

func TestValidateCmd_ReportsEveryViolation(t *testing.T) {
	dir := isolate(t)
	defs := writeFile(t, dir, "units.yaml", `units:
  - name: podman-web
    type: container
    settings:
      Container:
        ContainerName: db
  - name: podman-app
    type: build
    base:
      Build:
        ImageTag: [other/app]
  - name: podman-net
    type: network
    settings:
      Network:
        NetworkName: [a, b]
`)

	output, err := executeCmd(t, "validate", defs)
	require.Error(t, err)

	var verr *render.ViolationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Violations, 3)

	assert.Equal(t, quadlet.ViolationType, verr.Violations[0].Kind)
	assert.Equal(t, quadlet.ViolationMissingTag, verr.Violations[1].Kind)
	assert.Equal(t, "net", verr.Violations[2].Quadlet)

	assert.Contains(t, output, "must contain homemanager/app")
	assert.Contains(t, output, `["net", "a", "b"]`)
}
