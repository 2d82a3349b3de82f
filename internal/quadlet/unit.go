package quadlet

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ResourceType is the kind of Podman resource a unit describes.
type ResourceType string

// Supported resource types.
const (
	TypeBuild     ResourceType = "build"
	TypeContainer ResourceType = "container"
	TypeNetwork   ResourceType = "network"
	TypeVolume    ResourceType = "volume"
)

// ResourceTypes lists every supported type.
var ResourceTypes = []ResourceType{TypeBuild, TypeContainer, TypeNetwork, TypeVolume}

// ErrUnknownResourceType indicates a type outside ResourceTypes.
var ErrUnknownResourceType = errors.New("unknown resource type")

// ParseResourceType converts s to a ResourceType.
func ParseResourceType(s string) (ResourceType, error) {
	for _, t := range ResourceTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q (supported: %v)", ErrUnknownResourceType, s, ResourceTypes)
}

// Extension returns the quadlet file suffix for t, e.g. ".container".
func (t ResourceType) Extension() string {
	return "." + string(t)
}

const (
	// ServicePrefix is the conventional prefix of unit service names.
	ServicePrefix = "podman-"

	// TagNamespace is the image namespace used to tag locally built images.
	TagNamespace = "homemanager"

	// LocalRegistry is the registry Podman reports for locally built images.
	LocalRegistry = "localhost"
)

// Unit is a named quadlet definition. Type is fixed at construction.
type Unit struct {
	Type        ResourceType
	ServiceName string
	Sections    *Mapping
}

// NewUnit creates a unit. A nil sections mapping is replaced by an empty one.
func NewUnit(t ResourceType, serviceName string, sections *Mapping) Unit {
	if sections == nil {
		sections = NewMapping()
	}
	return Unit{Type: t, ServiceName: serviceName, Sections: sections}
}

// Name returns the resource name: the service name without its podman- prefix.
func (u Unit) Name() string {
	return strings.TrimPrefix(u.ServiceName, ServicePrefix)
}

// FileName returns the quadlet file name, e.g. "web.container".
func (u Unit) FileName() string {
	return u.Name() + u.Type.Extension()
}

// RequiredTag returns the image tag a build unit must carry.
func (u Unit) RequiredTag() string {
	return TagNamespace + "/" + u.Name()
}

// ManifestName returns the name Podman reports for the resource when listing
// resources of its type. Built images are listed under the local registry.
func ManifestName(u Unit) string {
	if u.Type == TypeBuild {
		return LocalRegistry + "/" + u.RequiredTag()
	}
	return u.Name()
}

// ErrMixedTypes is matched by errors.Is for every *MixedTypesError.
var ErrMixedTypes = errors.New("quadlets in a manifest must share one resource type")

// MixedTypesError reports a manifest batch containing several resource types.
type MixedTypesError struct {
	// Types holds the distinct types found, sorted.
	Types []ResourceType
}

func (e *MixedTypesError) Error() string {
	names := make([]string, len(e.Types))
	for i, t := range e.Types {
		names[i] = string(t)
	}
	return fmt.Sprintf("%s; found: %s", ErrMixedTypes, strings.Join(names, ", "))
}

func (e *MixedTypesError) Is(target error) bool {
	return target == ErrMixedTypes
}

// GenerateManifest lists the manifest name of every unit, one per line, in
// input order. All units must share one resource type; otherwise nothing is
// produced and a *MixedTypesError is returned.
func GenerateManifest(units []Unit) (string, error) {
	seen := make(map[ResourceType]bool)
	for _, u := range units {
		seen[u.Type] = true
	}
	if len(seen) > 1 {
		types := make([]ResourceType, 0, len(seen))
		for t := range seen {
			types = append(types, t)
		}
		sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
		return "", &MixedTypesError{Types: types}
	}

	var b strings.Builder
	for _, u := range units {
		b.WriteString(ManifestName(u))
		b.WriteString("\n")
	}
	return b.String(), nil
}

// Defaults returns the base sections quadsmith generates for a unit when the
// caller supplies none.
func Defaults(t ResourceType, serviceName string) *Mapping {
	u := Unit{Type: t, ServiceName: serviceName}
	name := u.Name()

	sections := NewMapping()
	sections.Set("Unit", NewMapping().
		Set("Description", Str(fmt.Sprintf("Podman %s %s", t, name))))

	switch t {
	case TypeContainer:
		sections.Set("Container", NewMapping().
			Set("ContainerName", Str(name)))
		sections.Set("Service", NewMapping().
			Set("Restart", Str("always")).
			Set("TimeoutStopSec", Int(60)))
	case TypeBuild:
		sections.Set("Build", NewMapping().
			Set("ImageTag", Strs(u.RequiredTag())))
	case TypeNetwork:
		sections.Set("Network", NewMapping().
			Set("NetworkName", Str(name)))
	case TypeVolume:
		sections.Set("Volume", NewMapping().
			Set("VolumeName", Str(name)))
	}

	sections.Set("Install", NewMapping().
		Set("WantedBy", Strs("default.target")))
	return sections
}
