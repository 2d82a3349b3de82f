package definition

import (
	"fmt"
	"regexp"
	"strings"
)

// varPattern matches ${varname} placeholders.
var varPattern = regexp.MustCompile(`\$\{(\w+)\}`)

// Interpolate replaces ${var} placeholders with values from the variables map.
// Returns an error naming every referenced variable that is missing.
func Interpolate(template string, variables map[string]any) (string, error) {
	var missingVars []string

	result := varPattern.ReplaceAllStringFunc(template, func(match string) string {
		key := varPattern.FindStringSubmatch(match)[1]

		value, ok := variables[key]
		if !ok {
			missingVars = append(missingVars, key)
			return match
		}

		return toString(value)
	})

	if len(missingVars) > 0 {
		return "", fmt.Errorf("missing variables: ${%s}", strings.Join(missingVars, "}, ${"))
	}

	return result, nil
}

// toString converts any value to its string representation.
func toString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case nil:
		return ""
	case bool:
		return fmt.Sprintf("%t", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
