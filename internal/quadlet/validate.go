package quadlet

import (
	"fmt"
	"strconv"
	"strings"
)

// ViolationKind distinguishes the reasons a unit can fail validation.
type ViolationKind string

const (
	// ViolationType means an attribute failed its registered rule.
	ViolationType ViolationKind = "type"

	// ViolationMissingTag means a build unit lacks its required image tag.
	ViolationMissingTag ViolationKind = "missing-tag"
)

// Violation describes one attribute that broke a rule.
type Violation struct {
	// Quadlet is the unit's resource name, without the podman- prefix.
	Quadlet   string
	Section   string
	Attribute string
	// Value is the offending value as rendered by Describe.
	Value    string
	Expected string
	Kind     ViolationKind
}

func (v Violation) Error() string {
	if v.Kind == ViolationMissingTag {
		return fmt.Sprintf("quadlet %s: %s.%s = %s does not contain the required tag %s",
			v.Quadlet, v.Section, v.Attribute, v.Value, v.Expected)
	}
	return fmt.Sprintf("quadlet %s: %s.%s = %s is not %s",
		v.Quadlet, v.Section, v.Attribute, v.Value, v.Expected)
}

// Violations is the result of validating one or more units.
type Violations []Violation

func (vs Violations) Error() string {
	lines := make([]string, len(vs))
	for i, v := range vs {
		lines[i] = v.Error()
	}
	return strings.Join(lines, "\n")
}

// Err returns vs as an error, or nil when there are no violations.
func (vs Violations) Err() error {
	if len(vs) == 0 {
		return nil
	}
	return vs
}

// Rule constrains a single attribute.
type Rule struct {
	// Check reports whether v is acceptable for u.
	Check func(u Unit, v Value) bool
	// Expected describes the accepted values for u.
	Expected func(u Unit) string
}

type ruleKey struct {
	Type      ResourceType
	Section   string
	Attribute string
}

// Registry maps (resource type, section, attribute) to a Rule. Attributes
// without an entry are unconstrained.
type Registry struct {
	rules map[ruleKey]Rule
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{rules: make(map[ruleKey]Rule)}
}

// Register adds or replaces the rule for an attribute.
func (r *Registry) Register(t ResourceType, section, attribute string, rule Rule) {
	r.rules[ruleKey{t, section, attribute}] = rule
}

// Lookup returns the rule for an attribute.
func (r *Registry) Lookup(t ResourceType, section, attribute string) (Rule, bool) {
	rule, ok := r.rules[ruleKey{t, section, attribute}]
	return rule, ok
}

// DefaultRegistry returns the built-in rules: build image tags must be a list
// of strings, and the identifying name attribute of each other type must equal
// the unit's own name so one unit cannot take over another's resource.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(TypeBuild, "Build", "ImageTag", ListOfStrRule())
	r.Register(TypeContainer, "Container", "ContainerName", OwnNameRule())
	r.Register(TypeNetwork, "Network", "NetworkName", OwnNameRule())
	r.Register(TypeVolume, "Volume", "VolumeName", OwnNameRule())
	return r
}

// ListOfStrRule accepts only lists whose elements are all Str.
func ListOfStrRule() Rule {
	return Rule{
		Check: func(_ Unit, v Value) bool {
			l, ok := v.(List)
			if !ok {
				return false
			}
			_, ok = l.Strings()
			return ok
		},
		Expected: func(Unit) string { return "a list of strings" },
	}
}

// OwnNameRule accepts only a Str equal to the unit's resource name.
func OwnNameRule() Rule {
	return Rule{
		Check: func(u Unit, v Value) bool {
			s, ok := v.(Str)
			return ok && string(s) == u.Name()
		},
		Expected: func(u Unit) string { return "one of " + strconv.Quote(u.Name()) },
	}
}

// Validate checks merged against the default registry.
func Validate(u Unit, merged *Mapping) Violations {
	return DefaultRegistry().Validate(u, merged)
}

// Validate reports every rule failure in merged for u. It does not stop at the
// first failure and never modifies merged.
func (r *Registry) Validate(u Unit, merged *Mapping) Violations {
	var violations Violations

	for _, sectionName := range merged.Keys() {
		section := merged.Section(sectionName)
		for _, attr := range section.Keys() {
			rule, ok := r.Lookup(u.Type, sectionName, attr)
			if !ok {
				continue
			}
			value, _ := section.Get(attr)
			if rule.Check(u, value) {
				continue
			}
			violations = append(violations, Violation{
				Quadlet:   u.Name(),
				Section:   sectionName,
				Attribute: attr,
				Value:     Describe(value),
				Expected:  rule.Expected(u),
				Kind:      ViolationType,
			})
		}
	}

	if u.Type == TypeBuild {
		if v, ok := checkRequiredTag(u, merged); !ok {
			violations = append(violations, v)
		}
	}

	return violations
}

// checkRequiredTag enforces that a non-empty Build.ImageTag list contains the
// tag used to find the unit's build output later. Non-list values are left to
// the type rule.
func checkRequiredTag(u Unit, merged *Mapping) (Violation, bool) {
	value, ok := merged.Section("Build").Get("ImageTag")
	if !ok {
		return Violation{}, true
	}
	tags, ok := value.(List)
	if !ok || len(tags) == 0 {
		return Violation{}, true
	}

	required := u.RequiredTag()
	for _, tag := range tags {
		if s, isStr := tag.(Str); isStr && string(s) == required {
			return Violation{}, true
		}
	}

	return Violation{
		Quadlet:   u.Name(),
		Section:   "Build",
		Attribute: "ImageTag",
		Value:     Describe(value),
		Expected:  required,
		Kind:      ViolationMissingTag,
	}, false
}
