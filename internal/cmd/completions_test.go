package cmd

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func TestCompleteResourceTypes(t *testing.T) {
	tests := []struct {
		name       string
		toComplete string
		want       []string
	}{
		{"empty prefix returns all", "", []string{"build", "container", "network", "volume"}},
		{"prefix filters", "c", []string{"container"}},
		{"no match", "x", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, dir := completeResourceTypes(nil, nil, tt.toComplete)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, dir)
		})
	}
}

func TestCompleteDefinitionFiles(t *testing.T) {
	got, dir := completeDefinitionFiles(nil, nil, "")
	assert.Equal(t, []string{"yaml", "yml", "tmpl"}, got)
	assert.Equal(t, cobra.ShellCompDirectiveFilterFileExt, dir)
}
