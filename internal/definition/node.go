package definition

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/cameronsjo/quadsmith/internal/quadlet"
)

// nodeConverter turns YAML nodes into quadlet values, keeping mapping order
// and interpolating string scalars.
type nodeConverter struct {
	variables map[string]any
}

// mapping converts n into a mapping. An absent or null node yields nil.
func (c *nodeConverter) mapping(n *yaml.Node) (*quadlet.Mapping, error) {
	if n == nil || n.Kind == 0 {
		return nil, nil
	}
	v, err := c.value(n)
	if err != nil {
		return nil, err
	}
	switch m := v.(type) {
	case *quadlet.Mapping:
		return m, nil
	case quadlet.Null:
		return nil, nil
	default:
		return nil, fmt.Errorf("line %d: expected a mapping of sections, got %s", n.Line, v.Kind())
	}
}

func (c *nodeConverter) value(n *yaml.Node) (quadlet.Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return quadlet.Null{}, nil
		}
		return c.value(n.Content[0])
	case yaml.AliasNode:
		return c.value(n.Alias)
	case yaml.ScalarNode:
		return c.scalar(n)
	case yaml.SequenceNode:
		list := make(quadlet.List, 0, len(n.Content))
		for _, item := range n.Content {
			v, err := c.value(item)
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		if err := quadlet.CheckList(list); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return list, nil
	case yaml.MappingNode:
		m := quadlet.NewMapping()
		for i := 0; i+1 < len(n.Content); i += 2 {
			keyNode, valueNode := n.Content[i], n.Content[i+1]
			if keyNode.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping keys must be scalars", keyNode.Line)
			}
			v, err := c.value(valueNode)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", keyNode.Value, err)
			}
			m.Set(keyNode.Value, v)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("line %d: unsupported YAML node kind %d", n.Line, n.Kind)
	}
}

func (c *nodeConverter) scalar(n *yaml.Node) (quadlet.Value, error) {
	if n.Tag == PathTag {
		s, err := c.interpolate(n)
		if err != nil {
			return nil, err
		}
		return quadlet.Path(s), nil
	}

	switch n.ShortTag() {
	case "!!null":
		return quadlet.Null{}, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return quadlet.Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return quadlet.Int(i), nil
	case "!!float":
		// Unit files have no float type; keep the literal text.
		return quadlet.Str(n.Value), nil
	default:
		s, err := c.interpolate(n)
		if err != nil {
			return nil, err
		}
		return quadlet.Str(s), nil
	}
}

func (c *nodeConverter) interpolate(n *yaml.Node) (string, error) {
	s, err := Interpolate(n.Value, c.variables)
	if err != nil {
		return "", fmt.Errorf("line %d: %w", n.Line, err)
	}
	return s, nil
}
