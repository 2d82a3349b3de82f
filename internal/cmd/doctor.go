package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cameronsjo/quadsmith/internal/preflight"
	"github.com/cameronsjo/quadsmith/internal/ui"
)

// doctorCmd runs pre-flight checks.
var doctorCmd = &cobra.Command{
	Use:     "doctor",
	Aliases: []string{"checkup"},
	Short:   "Pre-flight checks for podman and systemd",
	Long: `Check that the tools the generated units rely on are installed.

Nothing is executed; binaries are only located on disk.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	ui.Header("Running pre-flight checks...")

	passed, failed, warned := 0, 0, 0

	ui.Step(1, "Podman")
	if path, err := preflight.ResolvePodman(appConfig.Podman.Binary); err == nil {
		ui.Success("Podman found: %s", path)
		passed++
	} else {
		ui.Error("%v", err)
		failed++
	}

	ui.Step(2, "systemd")
	warnings, errs := preflight.CheckAll()
	for _, msg := range errs {
		ui.Error("%s", msg)
		failed++
	}
	for _, msg := range warnings {
		ui.Warning("%s", msg)
		warned++
	}
	if len(errs) == 0 && len(warnings) == 0 {
		ui.Success("systemd tools found")
		passed++
	}

	ui.Step(3, "Configuration")
	if appConfig.Source != "" {
		ui.Success("Config: %s", appConfig.Source)
	} else {
		ui.Warning("No config file found, using defaults")
		warned++
	}
	ui.Info("  Output directory: %s", appConfig.Paths.OutputDir)
	ui.Info("  Manifest directory: %s", appConfig.Paths.ManifestDir)
	passed++

	fmt.Fprintf(cmd.OutOrStdout(), "\n%d passed, %d failed, %d warnings\n", passed, failed, warned)
	if failed > 0 {
		return fmt.Errorf("%s failed", pluralize(failed, "check"))
	}
	return nil
}
