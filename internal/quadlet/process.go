package quadlet

// Result is the outcome of processing one unit.
type Result struct {
	Unit       Unit
	Merged     *Mapping
	Text       string
	Violations Violations
}

// Process merges overrides into the unit's base sections, validates the
// merged sections with reg (the default registry when nil) and renders them.
// Rendering happens even when violations are found; callers decide whether
// the text is usable.
func Process(u Unit, overrides *Mapping, reg *Registry) Result {
	if reg == nil {
		reg = DefaultRegistry()
	}

	merged := Merge(u.Sections, overrides)
	processed := NewUnit(u.Type, u.ServiceName, merged)

	return Result{
		Unit:       processed,
		Merged:     merged,
		Text:       Render(merged),
		Violations: reg.Validate(processed, merged),
	}
}
