package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/cameronsjo/quadsmith/internal/quadlet"
)

// definitionExtensions are the file suffixes offered for definition arguments.
var definitionExtensions = []string{"yaml", "yml", "tmpl"}

// completeDefinitionFiles completes definition file arguments.
func completeDefinitionFiles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return definitionExtensions, cobra.ShellCompDirectiveFilterFileExt
}

// completeResourceTypes completes resource type names.
func completeResourceTypes(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var names []string
	for _, t := range quadlet.ResourceTypes {
		if strings.HasPrefix(string(t), toComplete) {
			names = append(names, string(t))
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

// registerCompletions registers flag completions for commands.
func registerCompletions() {
	// Registration fails on repeated Execute calls; completions are optional.
	_ = manifestCmd.RegisterFlagCompletionFunc("type", completeResourceTypes)
	for _, c := range []*cobra.Command{renderCmd, validateCmd, manifestCmd} {
		_ = c.RegisterFlagCompletionFunc("values", completeDefinitionFiles)
	}
}

func init() {
	cobra.OnInitialize(registerCompletions)
}
