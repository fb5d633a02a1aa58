package kb

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// UnmarshalYAML decodes the declarative condition grammar. A condition is a
// YAML mapping from attribute path to expected value:
//
//	when:
//	  environment.moisture: outdoor                       # equality
//	  load.type: [light_dynamic, heavy_dynamic]           # membership
//	  constraints.permanence: {not: removable}            # negated equality
//	  environment.uv_exposure: {not: [true]}              # negated membership
//	  materials.a.type: {same_as: materials.b.type}       # cross-reference
//
// Mapping order is preserved, which keeps evaluation deterministic.
func (c *Condition) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("condition must be a mapping, got %s", yamlKind(node.Kind))
	}

	tests := make(Condition, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]

		var path string
		if err := keyNode.Decode(&path); err != nil {
			return fmt.Errorf("condition key at line %d: %w", keyNode.Line, err)
		}

		test, err := parseTest(path, valNode)
		if err != nil {
			return err
		}
		tests = append(tests, test)
	}

	*c = tests
	return nil
}

func parseTest(path string, node *yaml.Node) (Test, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		var v any
		if err := node.Decode(&v); err != nil {
			return Test{}, fmt.Errorf("condition %q: %w", path, err)
		}
		return Test{Path: path, Op: OpEqual, Value: v}, nil

	case yaml.SequenceNode:
		var vs []any
		if err := node.Decode(&vs); err != nil {
			return Test{}, fmt.Errorf("condition %q: %w", path, err)
		}
		if len(vs) == 0 {
			return Test{}, fmt.Errorf("condition %q: empty membership list", path)
		}
		return Test{Path: path, Op: OpIn, Values: vs}, nil

	case yaml.MappingNode:
		return parseModifierTest(path, node)

	default:
		return Test{}, fmt.Errorf("condition %q: unsupported value kind %s", path, yamlKind(node.Kind))
	}
}

// parseModifierTest handles the {not: ...} and {same_as: ...} forms.
func parseModifierTest(path string, node *yaml.Node) (Test, error) {
	if len(node.Content) != 2 {
		return Test{}, fmt.Errorf("condition %q: modifier mapping must have exactly one key", path)
	}

	var modifier string
	if err := node.Content[0].Decode(&modifier); err != nil {
		return Test{}, fmt.Errorf("condition %q: %w", path, err)
	}
	valNode := node.Content[1]

	switch modifier {
	case "not":
		switch valNode.Kind {
		case yaml.ScalarNode:
			var v any
			if err := valNode.Decode(&v); err != nil {
				return Test{}, fmt.Errorf("condition %q: %w", path, err)
			}
			return Test{Path: path, Op: OpNotEqual, Value: v}, nil
		case yaml.SequenceNode:
			var vs []any
			if err := valNode.Decode(&vs); err != nil {
				return Test{}, fmt.Errorf("condition %q: %w", path, err)
			}
			if len(vs) == 0 {
				return Test{}, fmt.Errorf("condition %q: empty negated membership list", path)
			}
			return Test{Path: path, Op: OpNotIn, Values: vs}, nil
		default:
			return Test{}, fmt.Errorf("condition %q: 'not' requires a scalar or list", path)
		}

	case "same_as":
		var other string
		if err := valNode.Decode(&other); err != nil || other == "" {
			return Test{}, fmt.Errorf("condition %q: 'same_as' requires an attribute path", path)
		}
		return Test{Path: path, Op: OpSameAs, Other: other}, nil

	default:
		return Test{}, fmt.Errorf("condition %q: unknown modifier %q", path, modifier)
	}
}

func yamlKind(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	}
	return "unknown"
}
