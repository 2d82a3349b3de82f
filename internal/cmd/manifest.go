package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cameronsjo/quadsmith/internal/quadlet"
)

var (
	manifestType   string
	manifestValues string
)

// manifestCmd prints the manifest for a batch of definitions.
var manifestCmd = &cobra.Command{
	Use:   "manifest [files...]",
	Short: "Print the names of managed resources",
	Long: `Print the name Podman reports for each defined resource, one per line.

Built images are listed as localhost/homemanager/<name>; every other type
is listed by its plain name. A manifest covers a single resource type, so
definitions mixing types need --type.

Examples:
  quadsmith manifest containers.yaml
  quadsmith manifest -t build units.yaml`,
	Args:              cobra.MinimumNArgs(1),
	ValidArgsFunction: completeDefinitionFiles,
	RunE:              runManifest,
}

func init() {
	manifestCmd.Flags().StringVarP(&manifestType, "type", "t", "", "Only list resources of this type")
	manifestCmd.Flags().StringVarP(&manifestValues, "values", "f", "", "Values file for .tmpl definitions")

	rootCmd.AddCommand(manifestCmd)
}

func runManifest(cmd *cobra.Command, args []string) error {
	var types []quadlet.ResourceType
	if manifestType != "" {
		t, err := quadlet.ParseResourceType(manifestType)
		if err != nil {
			return err
		}
		types = append(types, t)
	}

	entries, err := loadEntries(args, manifestValues)
	if err != nil {
		return err
	}

	units := make([]quadlet.Unit, 0, len(entries))
	for _, entry := range entries {
		if len(types) == 0 || entry.Unit.Type == types[0] {
			units = append(units, entry.Unit)
		}
	}

	manifest, err := quadlet.GenerateManifest(units)
	if err != nil {
		return fmt.Errorf("%w (use --type to select one)", err)
	}

	fmt.Fprint(cmd.OutOrStdout(), manifest)
	return nil
}
