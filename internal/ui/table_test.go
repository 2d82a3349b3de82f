package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cameronsjo/quadsmith/internal/quadlet"
)

func TestTable(t *testing.T) {
	t.Run("no headers", func(t *testing.T) {
		assert.Empty(t, Table(nil, [][]string{{"a"}}))
	})

	t.Run("pads short rows", func(t *testing.T) {
		out := Table([]string{"Name", "Type"}, [][]string{{"web"}, {"db", "container"}})

		lines := strings.Split(out, "\n")
		// top border, header, separator, two rows, bottom border
		assert.Len(t, lines, 6)
		assert.True(t, strings.HasPrefix(lines[0], "╭"))
		assert.Contains(t, out, "web")
		assert.Contains(t, out, "container")
	})
}

func TestViolationTable(t *testing.T) {
	out := ViolationTable(quadlet.Violations{
		{
			Quadlet:   "web",
			Section:   "Container",
			Attribute: "ContainerName",
			Value:     `"db"`,
			Expected:  `one of "web"`,
			Kind:      quadlet.ViolationType,
		},
		{
			Quadlet:   "app",
			Section:   "Build",
			Attribute: "ImageTag",
			Value:     `["other"]`,
			Expected:  "homemanager/app",
			Kind:      quadlet.ViolationMissingTag,
		},
	})

	assert.Contains(t, out, "QUADLET")
	assert.Contains(t, out, "Container.ContainerName")
	assert.Contains(t, out, `one of "web"`)
	assert.Contains(t, out, "must contain homemanager/app")
}
