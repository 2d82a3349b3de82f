package render

import (
	"fmt"
	"path/filepath"

	"github.com/cameronsjo/quadsmith/internal/fileutil"
	"github.com/cameronsjo/quadsmith/internal/lock"
	"github.com/cameronsjo/quadsmith/internal/quadlet"
)

// ManifestExtension is the suffix of manifest files.
const ManifestExtension = ".manifest"

// lockOperation names the lock held while writing outputs.
const lockOperation = "render"

// WriteSummary reports which files a write touched.
type WriteSummary struct {
	Written   []string
	Unchanged []string
}

// DefaultManifestDir returns the manifest directory used for outputDir when
// none is configured.
func DefaultManifestDir(outputDir string) string {
	return filepath.Join(outputDir, ".manifests")
}

// ManifestPath returns where the manifest for t is written.
func ManifestPath(manifestDir string, t quadlet.ResourceType) string {
	return filepath.Join(manifestDir, string(t)+ManifestExtension)
}

// WriteOutputs writes every unit file into dir and every manifest into
// manifestDir while holding the render lock on dir. Files whose content is
// already current are left untouched.
func WriteOutputs(out *Output, dir, manifestDir string) (WriteSummary, error) {
	var summary WriteSummary

	err := lock.WithLock(dir, lockOperation, func() error {
		for _, res := range out.Results {
			path := filepath.Join(dir, res.Unit.FileName())
			if err := writeIfChanged(&summary, path, res.Text); err != nil {
				return err
			}
		}

		for _, t := range quadlet.ResourceTypes {
			text, ok := out.Manifests[t]
			if !ok {
				continue
			}
			if err := writeIfChanged(&summary, ManifestPath(manifestDir, t), text); err != nil {
				return err
			}
		}
		return nil
	})
	return summary, err
}

func writeIfChanged(summary *WriteSummary, path, text string) error {
	data := []byte(text)
	if fileutil.SameContent(path, data) {
		summary.Unchanged = append(summary.Unchanged, path)
		return nil
	}
	if err := fileutil.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	summary.Written = append(summary.Written, path)
	return nil
}
