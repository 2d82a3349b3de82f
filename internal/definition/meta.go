package definition

import (
	"errors"
	"fmt"
	"slices"
)

// Validation errors for definition file versioning.
var (
	// ErrUnsupportedAPIVersion indicates an unknown or unsupported API version.
	ErrUnsupportedAPIVersion = errors.New("unsupported API version")

	// ErrInvalidKind indicates an unknown definition kind.
	ErrInvalidKind = errors.New("invalid definition kind")
)

// ValidateAPIVersion checks if the provided version is supported.
// An empty version is accepted.
func ValidateAPIVersion(version string) error {
	if version == "" || slices.Contains(SupportedAPIVersions, version) {
		return nil
	}
	return fmt.Errorf("%w: %s (supported: %v)", ErrUnsupportedAPIVersion, version, SupportedAPIVersions)
}

// ValidateKind checks if the provided kind is valid. An empty kind is accepted.
func ValidateKind(kind string) error {
	if kind == "" || slices.Contains(SupportedKinds, kind) {
		return nil
	}
	return fmt.Errorf("%w: %s (supported: %v)", ErrInvalidKind, kind, SupportedKinds)
}
