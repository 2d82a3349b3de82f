// Package definition loads quadlet unit definitions from YAML files.
package definition

import (
	"gopkg.in/yaml.v3"

	"github.com/cameronsjo/quadsmith/internal/quadlet"
)

// API version and kind constants for definition files.
const (
	// APIVersionV1 is the current API version for definition files.
	APIVersionV1 = "quadsmith/v1"

	// KindUnits identifies a file holding unit definitions.
	KindUnits = "Units"

	// PathTag marks a YAML scalar that should load as a quadlet.Path.
	PathTag = "!path"
)

// SupportedAPIVersions lists all API versions that can be loaded.
var SupportedAPIVersions = []string{APIVersionV1}

// SupportedKinds lists all valid definition kinds.
var SupportedKinds = []string{KindUnits}

// File is the on-disk layout of a definition file.
type File struct {
	// APIVersion identifies the schema version (e.g., "quadsmith/v1").
	APIVersion string `yaml:"apiVersion,omitempty"`

	// Kind identifies the file type (e.g., "Units").
	Kind string `yaml:"kind,omitempty"`

	// Vars are shared variables for ${var} interpolation.
	Vars map[string]any `yaml:"vars,omitempty"`

	// Settings apply to every unit in the file, under each unit's own
	// settings. Variables are interpolated per unit.
	Settings yaml.Node `yaml:"settings,omitempty"`

	// Units lists the unit definitions in output order.
	Units []UnitSpec `yaml:"units"`
}

// UnitSpec is a single unit as written by the user.
type UnitSpec struct {
	// Name is the service name, conventionally prefixed with "podman-".
	Name string `yaml:"name"`

	// Type is one of build, container, network or volume.
	Type string `yaml:"type"`

	// Base replaces the generated default sections when set.
	Base yaml.Node `yaml:"base,omitempty"`

	// Settings are the user overrides merged over the base.
	Settings yaml.Node `yaml:"settings,omitempty"`
}

// Entry is a loaded unit ready for processing.
type Entry struct {
	// Unit carries the base sections.
	Unit quadlet.Unit

	// Overrides are merged over Unit.Sections.
	Overrides *quadlet.Mapping

	// Source is the file the entry was loaded from.
	Source string
}
