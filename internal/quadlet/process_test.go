package quadlet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcess(t *testing.T) {
	unit := NewUnit(TypeContainer, "podman-web", Defaults(TypeContainer, "podman-web"))
	overrides := NewMapping().
		Set("Container", NewMapping().
			Set("Image", Str("docker.io/library/nginx")).
			Set("PublishPort", Strs("8080:80"))).
		Set("Install", NewMapping().Set("WantedBy", Str("multi-user.target")))

	got := Process(unit, overrides, nil)

	assert.Empty(t, got.Violations)
	assert.Equal(t, TypeContainer, got.Unit.Type)
	assert.True(t, Equal(got.Merged, got.Unit.Sections))

	want := "[Unit]\n" +
		"Description=Podman container web\n" +
		"[Container]\n" +
		"ContainerName=web\n" +
		"Image=docker.io/library/nginx\n" +
		"PublishPort=8080:80\n" +
		"[Service]\n" +
		"Restart=always\n" +
		"TimeoutStopSec=60\n" +
		"[Install]\n" +
		"WantedBy=default.target\n" +
		"WantedBy=multi-user.target\n"
	assert.Equal(t, want, got.Text)
}

func TestProcessRendersDespiteViolations(t *testing.T) {
	unit := NewUnit(TypeContainer, "podman-web", Defaults(TypeContainer, "podman-web"))
	overrides := NewMapping().
		Set("Container", NewMapping().Set("ContainerName", Str("db")))

	got := Process(unit, overrides, nil)

	require.Len(t, got.Violations, 1)
	assert.Equal(t, "ContainerName", got.Violations[0].Attribute)
	assert.Contains(t, got.Text, "ContainerName=db\n")
}

func TestProcessLeavesBaseUntouched(t *testing.T) {
	base := Defaults(TypeVolume, "podman-data")
	before := base.Clone()
	unit := NewUnit(TypeVolume, "podman-data", base)

	Process(unit, NewMapping().Set("Volume", NewMapping().Set("Driver", Str("local"))), NewRegistry())

	assert.True(t, Equal(before, base))
}
