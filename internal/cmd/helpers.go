package cmd

import (
	"errors"
	"fmt"

	"github.com/cameronsjo/quadsmith/internal/definition"
	"github.com/cameronsjo/quadsmith/internal/render"
)

// errNoDefinitions is returned when a command is run without input files.
var errNoDefinitions = errors.New("no definition files given")

// loadEntries reads the definition files named on the command line.
// valuesFile overrides the configured template values file.
func loadEntries(paths []string, valuesFile string) ([]definition.Entry, error) {
	if len(paths) == 0 {
		return nil, errNoDefinitions
	}

	if valuesFile == "" {
		valuesFile = appConfig.Paths.ValuesFile
	}

	var opts definition.Options
	if valuesFile != "" {
		values, err := definition.LoadValues(valuesFile)
		if err != nil {
			return nil, err
		}
		opts.Values = values
	}

	entries, err := definition.LoadAll(paths, opts)
	if err != nil {
		return nil, err
	}
	logger.Debug("definitions loaded", "files", len(paths), "units", len(entries))
	return entries, nil
}

// newRenderer builds a renderer from the loaded configuration.
func newRenderer(strict bool) *render.Renderer {
	return render.NewRenderer(render.Config{
		Workers: appConfig.Render.Workers,
		Strict:  strict,
	}, render.WithLogger(logger))
}

// pluralize returns word with an "s" unless n is one.
func pluralize(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
