package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cameronsjo/quadsmith/internal/config"
	"github.com/cameronsjo/quadsmith/internal/quadlet"
	"github.com/cameronsjo/quadsmith/internal/render"
	"github.com/cameronsjo/quadsmith/internal/ui"
)

var (
	renderOutput      string
	renderManifestDir string
	renderValues      string
	renderDryRun      bool
	renderStrict      bool
)

// renderCmd represents the render command.
var renderCmd = &cobra.Command{
	Use:   "render [files...]",
	Short: "Render definitions into quadlet files",
	Long: `Render unit definitions into Podman Quadlet files.

Each unit's settings are merged over its base sections (generated defaults
unless the definition supplies a base), validated, and written to the output
directory as <name>.<type>. One manifest per resource type is written to the
manifest directory.

Files ending in .tmpl are rendered as Go templates first, using the values
file as data and the sprig function set.

Examples:
  # Render into the configured output directory
  quadsmith render units.yaml

  # Preview without writing
  quadsmith render -n units.yaml

  # Render a template with values
  quadsmith render -f prod.yaml units.yaml.tmpl`,
	Args:              cobra.MinimumNArgs(1),
	ValidArgsFunction: completeDefinitionFiles,
	RunE:              runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Output directory (default from config)")
	renderCmd.Flags().StringVar(&renderManifestDir, "manifest-dir", "", "Manifest directory (default <output>/.manifests)")
	renderCmd.Flags().StringVarP(&renderValues, "values", "f", "", "Values file for .tmpl definitions")
	renderCmd.Flags().BoolVarP(&renderDryRun, "dry-run", "n", false, "Print rendered units instead of writing them")
	renderCmd.Flags().BoolVar(&renderStrict, "strict", true, "Fail when any unit has violations (default from config)")

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	entries, err := loadEntries(args, renderValues)
	if err != nil {
		return err
	}

	strict := appConfig.Render.Strict
	if cmd.Flags().Changed("strict") {
		strict = renderStrict
	}

	out, err := newRenderer(strict).Render(cmd.Context(), entries)
	if violations := violationsOf(out); len(violations) > 0 {
		ui.Warning("%s found", pluralize(len(violations), "violation"))
		fmt.Fprintln(cmd.OutOrStdout(), ui.ViolationTable(violations))
	}
	if err != nil {
		var verr *render.ViolationError
		if errors.As(err, &verr) {
			return fmt.Errorf("render aborted: %w", err)
		}
		return err
	}

	if renderDryRun {
		for _, res := range out.Results {
			fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s\n", res.Unit.FileName(), res.Text)
		}
		return nil
	}

	outputDir, manifestDir, err := outputDirs()
	if err != nil {
		return err
	}

	summary, err := render.WriteOutputs(out, outputDir, manifestDir)
	if err != nil {
		return err
	}

	for _, path := range summary.Written {
		logger.Debug("wrote file", "path", path)
	}
	ui.Success("Rendered %s into %s (%d unchanged)",
		pluralize(len(out.Results), "unit"), outputDir, len(summary.Unchanged))
	return nil
}

// outputDirs resolves the output and manifest directories from flags and config.
func outputDirs() (string, string, error) {
	outputDir := appConfig.Paths.OutputDir
	manifestDir := appConfig.Paths.ManifestDir

	if renderOutput != "" {
		dir, err := config.ExpandPath(renderOutput)
		if err != nil {
			return "", "", err
		}
		outputDir = dir
		manifestDir = render.DefaultManifestDir(dir)
	}
	if renderManifestDir != "" {
		dir, err := config.ExpandPath(renderManifestDir)
		if err != nil {
			return "", "", err
		}
		manifestDir = dir
	}
	return outputDir, manifestDir, nil
}

// violationsOf tolerates the nil output of a failed render.
func violationsOf(out *render.Output) quadlet.Violations {
	if out == nil {
		return nil
	}
	return out.Violations()
}
