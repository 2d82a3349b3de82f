package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cameronsjo/quadsmith/internal/render"
	"github.com/cameronsjo/quadsmith/internal/ui"
)

var validateValues string

// validateCmd represents the validate command.
var validateCmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "Check definitions without writing anything",
	Long: `Validate unit definitions without writing any files.

Every unit is merged and checked against the naming rules:
  - container, network and volume names must match the unit's own name
  - build image tags must be a list of strings
  - build image tags must include homemanager/<name>

All violations are reported at once. The command exits non-zero if any
are found.

Examples:
  quadsmith validate units.yaml
  quadsmith validate -f prod.yaml units.yaml.tmpl`,
	Args:              cobra.MinimumNArgs(1),
	ValidArgsFunction: completeDefinitionFiles,
	RunE:              runValidate,
}

func init() {
	validateCmd.Flags().StringVarP(&validateValues, "values", "f", "", "Values file for .tmpl definitions")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	entries, err := loadEntries(args, validateValues)
	if err != nil {
		return err
	}

	out, err := newRenderer(false).Render(cmd.Context(), entries)
	if err != nil {
		return err
	}

	violations := out.Violations()
	if len(violations) == 0 {
		ui.Success("%s valid", pluralize(len(out.Results), "unit"))
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), ui.ViolationTable(violations))
	return &render.ViolationError{Violations: violations}
}
