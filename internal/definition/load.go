package definition

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/cameronsjo/quadsmith/internal/quadlet"
)

// Loading errors.
var (
	// ErrMissingName indicates a unit without a name.
	ErrMissingName = errors.New("unit name is required")

	// ErrDuplicateUnit indicates two units that would write the same file.
	ErrDuplicateUnit = errors.New("duplicate unit")
)

// Options control how definition files are read.
type Options struct {
	// Values is the template data for .tmpl files.
	Values map[string]any
}

// Load reads a definition file. Files ending in .tmpl are rendered with
// opts.Values before parsing.
func Load(path string, opts Options) ([]Entry, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read definitions: %w", err)
	}

	if IsTemplate(path) {
		content, err = RenderTemplate(filepath.Base(path), string(content), opts.Values)
		if err != nil {
			return nil, err
		}
	}

	entries, err := Parse(content, path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

// LoadAll loads several definition files and concatenates their entries in
// argument order. Duplicate units across files are rejected.
func LoadAll(paths []string, opts Options) ([]Entry, error) {
	var all []Entry
	for _, path := range paths {
		entries, err := Load(path, opts)
		if err != nil {
			return nil, err
		}
		all = append(all, entries...)
	}
	if err := checkDuplicates(all); err != nil {
		return nil, err
	}
	return all, nil
}

// Parse decodes definition YAML. source is recorded on every entry.
func Parse(data []byte, source string) ([]Entry, error) {
	var file File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse definitions: %w", err)
	}

	if err := ValidateAPIVersion(file.APIVersion); err != nil {
		return nil, err
	}
	if err := ValidateKind(file.Kind); err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(file.Units))
	for i, spec := range file.Units {
		entry, err := buildEntry(spec, file.Vars, &file.Settings)
		if err != nil {
			label := spec.Name
			if label == "" {
				label = fmt.Sprintf("#%d", i+1)
			}
			return nil, fmt.Errorf("unit %s: %w", label, err)
		}
		entry.Source = source
		entries = append(entries, entry)
	}

	if err := checkDuplicates(entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// buildEntry converts one unit. Overrides layer the file-level settings under
// the unit's settings; Process then merges them over the base.
func buildEntry(spec UnitSpec, vars map[string]any, shared *yaml.Node) (Entry, error) {
	if spec.Name == "" {
		return Entry{}, ErrMissingName
	}
	rt, err := quadlet.ParseResourceType(spec.Type)
	if err != nil {
		return Entry{}, err
	}

	probe := quadlet.NewUnit(rt, spec.Name, nil)
	variables := make(map[string]any, len(vars)+3)
	for k, v := range vars {
		variables[k] = v
	}
	variables["name"] = probe.Name()
	variables["serviceName"] = spec.Name
	variables["type"] = string(rt)

	conv := &nodeConverter{variables: variables}

	base, err := conv.mapping(&spec.Base)
	if err != nil {
		return Entry{}, fmt.Errorf("base: %w", err)
	}
	if base == nil {
		base = quadlet.Defaults(rt, spec.Name)
	}

	fileSettings, err := conv.mapping(shared)
	if err != nil {
		return Entry{}, fmt.Errorf("file settings: %w", err)
	}

	unitSettings, err := conv.mapping(&spec.Settings)
	if err != nil {
		return Entry{}, fmt.Errorf("settings: %w", err)
	}

	return Entry{
		Unit:      quadlet.NewUnit(rt, spec.Name, base),
		Overrides: quadlet.MergeAll(fileSettings, unitSettings),
	}, nil
}

func checkDuplicates(entries []Entry) error {
	seen := make(map[string]string, len(entries))
	for _, e := range entries {
		file := e.Unit.FileName()
		if prev, ok := seen[file]; ok {
			return fmt.Errorf("%w: %s defined in %s and %s", ErrDuplicateUnit, file, prev, e.Source)
		}
		seen[file] = e.Source
	}
	return nil
}
