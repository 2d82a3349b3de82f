// Package quadlet models Podman Quadlet unit definitions and turns them into
// unit file text.
//
// The pipeline for a single unit is:
//
//   - Merge user overrides over a base definition (see Merge for the rules)
//   - Validate the merged sections against a Registry of attribute rules
//   - Render the sections as INI text with repeated keys for lists
//
// # Values
//
// Configuration values form a closed set: Null, Bool, Int, Str, Path, List
// and *Mapping. Lists hold primitives of one kind; mappings keep insertion
// order so rendered files are deterministic.
//
//	sections := quadlet.NewMapping().
//		Set("Container", quadlet.NewMapping().
//			Set("Image", quadlet.Str("docker.io/library/nginx")).
//			Set("PublishPort", quadlet.Strs("80:80", "443:443")).
//			Set("Environment", quadlet.NewMapping().Set("TZ", quadlet.Str("UTC"))))
//
// renders as
//
//	[Container]
//	Image=docker.io/library/nginx
//	PublishPort=80:80
//	PublishPort=443:443
//	Environment=TZ=UTC
//
// # Manifests
//
// GenerateManifest lists the names Podman itself reports for a batch of
// units of one resource type. A batch mixing types fails with a
// *MixedTypesError and produces no output.
package quadlet
