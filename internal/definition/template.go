package definition

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"gopkg.in/yaml.v3"
)

// TemplateSuffix marks definition files rendered as Go templates before parsing.
const TemplateSuffix = ".tmpl"

// IsTemplate reports whether path names a templated definition file.
func IsTemplate(path string) bool {
	return strings.HasSuffix(path, TemplateSuffix)
}

// RenderTemplate executes content as a Go template with the sprig function
// set. Values are the template's root context.
func RenderTemplate(name, content string, values map[string]any) ([]byte, error) {
	tmpl, err := template.New(name).
		Funcs(sprig.TxtFuncMap()).
		Option("missingkey=error").
		Parse(content)
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", name, err)
	}

	if values == nil {
		values = map[string]any{}
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, values); err != nil {
		return nil, fmt.Errorf("render template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// LoadValues loads a YAML values file used as template data.
func LoadValues(path string) (map[string]any, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read values file: %w", err)
	}

	var values map[string]any
	if err := yaml.Unmarshal(content, &values); err != nil {
		return nil, fmt.Errorf("parse values file: %w", err)
	}
	if values == nil {
		values = map[string]any{}
	}

	return values, nil
}
