// Package cmd provides the CLI commands for quadsmith.
package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/cameronsjo/quadsmith/internal/config"
	"github.com/cameronsjo/quadsmith/internal/logging"
	"github.com/cameronsjo/quadsmith/internal/ui"
)

const version = "0.1.0"

var (
	configPath string
	verbose    bool
	noColor    bool
)

// Set by the root command before any subcommand runs.
var (
	appConfig *config.Config
	logger    *log.Logger
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "quadsmith",
	Short: "Generate Podman Quadlet units from structured definitions",
	Long: `quadsmith - Podman Quadlet generator

Merges unit definitions over generated defaults, validates resource names
and image tags, and writes .container, .build, .network and .volume files
for the systemd Quadlet generator, plus one manifest per resource type.

COMMANDS
  render [files...]     Render definitions into quadlet files
    --output, -o <dir>  Output directory (default from config)
    --dry-run, -n       Print units instead of writing them
    --values, -f <file> Template values for .tmpl definitions
  validate [files...]   Check definitions without writing anything
  manifest [files...]   Print the managed resource names
    --type, -t <type>   Only list resources of one type
  doctor                Pre-flight checks for podman and systemd

Configuration is read from ./quadsmith.toml, ~/.config/quadsmith/config.toml
or --config, and QUADSMITH_* environment variables.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		ui.Configure(noColor)

		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if verbose {
			cfg.Logging.Level = "debug"
		}

		l, err := logging.New(cfg.Logging.Level, cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		appConfig = cfg
		logger = l
		logger.Debug("configuration loaded", "source", cfg.Source, "output", cfg.Paths.OutputDir)
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		ui.Fatal("%v", err)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: ./quadsmith.toml or ~/.config/quadsmith/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.SetVersionTemplate("quadsmith version {{.Version}}\n")
}
