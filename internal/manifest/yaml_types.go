package manifest

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// --- FieldMap YAML methods ---

// UnmarshalYAML accepts a mapping (order preserved) or a list of single-entry mappings.
func (m *FieldMap) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.MappingNode:
		entries, err := mapEntries(node)
		if err != nil {
			return err
		}

		*m = entries

		return nil

	case yaml.SequenceNode:
		var entries FieldMap

		for _, item := range node.Content {
			if item.Kind != yaml.MappingNode {
				return fmt.Errorf("line %d: expected {dto: path} map in list, got %v", item.Line, kindName(item.Kind))
			}

			part, err := mapEntries(item)
			if err != nil {
				return err
			}

			entries = append(entries, part...)
		}

		*m = entries

		return nil

	default:
		return fmt.Errorf("line %d: expected map of dto field to entity path, got %v", node.Line, kindName(node.Kind))
	}
}

func mapEntries(node *yaml.Node) (FieldMap, error) {
	entries := make(FieldMap, 0, len(node.Content)/2)

	for i := 0; i+1 < len(node.Content); i += 2 {
		var key, value string

		if err := node.Content[i].Decode(&key); err != nil {
			return nil, fmt.Errorf("invalid dto field name: %w", err)
		}

		if err := node.Content[i+1].Decode(&value); err != nil {
			return nil, fmt.Errorf("invalid entity path for %s: %w", key, err)
		}

		entries = append(entries, MapEntry{DTO: key, Path: value})
	}

	return entries, nil
}

// MarshalYAML writes the entries as a mapping in order.
func (m FieldMap) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}

	for _, e := range m {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.DTO},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Path},
		)
	}

	return node, nil
}

// --- DependencyList YAML methods ---

// UnmarshalYAML implements custom YAML unmarshaling for DependencyList.
// Accepts:
//   - Single string: "email"
//   - Single with reducer: {orders.amount: SUM}
//   - Array of strings: [firstName, lastName]
//   - Array with reducers: [{orders.amount: SUM}, currency]
func (d *DependencyList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string

		if err := node.Decode(&str); err != nil {
			return err
		}

		if str == "" {
			*d = DependencyList{}
		} else {
			*d = DependencyList{{Path: str}}
		}

		return nil

	case yaml.MappingNode:
		deps, err := dependenciesFromMap(node)
		if err != nil {
			return err
		}

		*d = deps

		return nil

	case yaml.SequenceNode:
		var deps DependencyList

		for _, item := range node.Content {
			switch item.Kind {
			case yaml.ScalarNode:
				var str string

				if err := item.Decode(&str); err != nil {
					return err
				}

				deps = append(deps, Dependency{Path: str})

			case yaml.MappingNode:
				part, err := dependenciesFromMap(item)
				if err != nil {
					return err
				}

				deps = append(deps, part...)

			default:
				return fmt.Errorf("line %d: expected string or map in dependency list, got %v", item.Line, kindName(item.Kind))
			}
		}

		*d = deps

		return nil

	default:
		return fmt.Errorf("line %d: expected string, map, or array of dependencies, got %v", node.Line, kindName(node.Kind))
	}
}

// dependenciesFromMap parses {path: REDUCER} entries.
func dependenciesFromMap(node *yaml.Node) (DependencyList, error) {
	if len(node.Content) == 0 {
		return nil, errors.New("expected key-value map like {orders.amount: SUM}")
	}

	entries, err := mapEntries(node)
	if err != nil {
		return nil, err
	}

	deps := make(DependencyList, len(entries))
	for i, e := range entries {
		deps[i] = Dependency{Path: e.DTO, Reducer: e.Path}
	}

	return deps, nil
}

// MarshalYAML implements custom YAML marshaling for DependencyList.
// Outputs:
//   - Single string if length is 1 and no reducer
//   - Single map if length is 1 with reducer
//   - Array otherwise
func (d DependencyList) MarshalYAML() (any, error) {
	if len(d) == 0 {
		return []string{}, nil
	}

	if len(d) == 1 {
		return d[0].marshalValue(), nil
	}

	result := make([]any, len(d))
	for i, dep := range d {
		result[i] = dep.marshalValue()
	}

	return result, nil
}

func (d Dependency) marshalValue() any {
	if d.Reducer == "" {
		return d.Path
	}

	return map[string]string{d.Path: d.Reducer}
}

// --- StringOrArray YAML methods ---

// UnmarshalYAML accepts either a single string or an array of strings.
func (s *StringOrArray) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string

		if err := node.Decode(&str); err != nil {
			return err
		}

		if str != "" {
			*s = StringOrArray{str}
		} else {
			*s = StringOrArray{}
		}

		return nil

	case yaml.SequenceNode:
		var arr []string

		if err := node.Decode(&arr); err != nil {
			return err
		}

		*s = arr

		return nil

	default:
		return fmt.Errorf("line %d: expected string or array, got %v", node.Line, kindName(node.Kind))
	}
}

// MarshalYAML outputs a single string if length is 1, otherwise an array.
func (s StringOrArray) MarshalYAML() (any, error) {
	if len(s) == 1 {
		return s[0], nil
	}

	return []string(s), nil
}

func kindName(k yaml.Kind) string {
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
	default:
		return "unknown"
	}
}
