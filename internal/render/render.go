// Package render runs the quadlet pipeline over a batch of loaded definitions
// and writes the resulting unit files and manifests.
package render

import (
	"context"
	"fmt"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/cameronsjo/quadsmith/internal/definition"
	"github.com/cameronsjo/quadsmith/internal/logging"
	"github.com/cameronsjo/quadsmith/internal/quadlet"
)

// Config holds the rendering configuration.
type Config struct {
	// Workers bounds how many units are processed concurrently.
	Workers int
	// Strict makes any violation fail the render.
	Strict bool
}

// Renderer processes definition entries into unit files.
type Renderer struct {
	config   Config
	registry *quadlet.Registry
	logger   *log.Logger
}

// Option is a functional option for configuring the Renderer.
type Option func(*Renderer)

// WithRegistry sets the validation rules.
func WithRegistry(reg *quadlet.Registry) Option {
	return func(r *Renderer) {
		r.registry = reg
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger *log.Logger) Option {
	return func(r *Renderer) {
		r.logger = logger
	}
}

// NewRenderer creates a Renderer. A non-positive worker count uses one
// worker per CPU.
func NewRenderer(cfg Config, opts ...Option) *Renderer {
	if cfg.Workers < 1 {
		cfg.Workers = runtime.NumCPU()
	}
	r := &Renderer{
		config:   cfg,
		registry: quadlet.DefaultRegistry(),
		logger:   logging.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Output is the result of rendering a batch.
type Output struct {
	// Results holds one entry per input, in input order.
	Results []quadlet.Result
	// Manifests holds the manifest text for each resource type present.
	Manifests map[quadlet.ResourceType]string
}

// Violations returns every violation in result order.
func (o *Output) Violations() quadlet.Violations {
	var all quadlet.Violations
	for _, res := range o.Results {
		all = append(all, res.Violations...)
	}
	return all
}

// Units returns the processed units of the given types in input order, or
// every unit when no type is given.
func (o *Output) Units(types ...quadlet.ResourceType) []quadlet.Unit {
	want := make(map[quadlet.ResourceType]bool, len(types))
	for _, t := range types {
		want[t] = true
	}

	var units []quadlet.Unit
	for _, res := range o.Results {
		if len(want) == 0 || want[res.Unit.Type] {
			units = append(units, res.Unit)
		}
	}
	return units
}

// ViolationError is returned by a strict render that found violations.
type ViolationError struct {
	Violations quadlet.Violations
}

func (e *ViolationError) Error() string {
	if len(e.Violations) == 1 {
		return "1 validation violation"
	}
	return fmt.Sprintf("%d validation violations", len(e.Violations))
}

func (e *ViolationError) Unwrap() error {
	return e.Violations
}

// Render processes entries concurrently. The Output is returned even when
// strict mode rejects it, so callers can report every violation.
func (r *Renderer) Render(ctx context.Context, entries []definition.Entry) (*Output, error) {
	results := make([]quadlet.Result, len(entries))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.config.Workers)

	for i, entry := range entries {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res := quadlet.Process(entry.Unit, entry.Overrides, r.registry)
			r.logger.Debug("processed unit",
				"unit", res.Unit.FileName(),
				"source", entry.Source,
				"violations", len(res.Violations))
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("render units: %w", err)
	}

	out := &Output{Results: results}
	manifests, err := manifestsByType(out)
	if err != nil {
		return nil, err
	}
	out.Manifests = manifests

	violations := out.Violations()
	for _, v := range violations {
		r.logger.Warn("validation failed", "quadlet", v.Quadlet, "attribute", v.Section+"."+v.Attribute)
	}
	if r.config.Strict && len(violations) > 0 {
		return out, &ViolationError{Violations: violations}
	}
	return out, nil
}

// manifestsByType builds one manifest per resource type. Each batch holds a
// single type, so generation cannot fail on mixed input.
func manifestsByType(out *Output) (map[quadlet.ResourceType]string, error) {
	manifests := make(map[quadlet.ResourceType]string)
	for _, t := range quadlet.ResourceTypes {
		units := out.Units(t)
		if len(units) == 0 {
			continue
		}
		text, err := quadlet.GenerateManifest(units)
		if err != nil {
			return nil, fmt.Errorf("generate %s manifest: %w", t, err)
		}
		manifests[t] = text
	}
	return manifests, nil
}
