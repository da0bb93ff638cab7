package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"sort"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// MarshalJSON writes the entries as a JSON object in order.
func (m FieldMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, e := range m {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(e.DTO)
		if err != nil {
			return nil, err
		}

		value, err := json.Marshal(e.Path)
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object keeping its key order. JSON is read
// through the YAML decoder, which keeps mapping order.
func (m *FieldMap) UnmarshalJSON(data []byte) error {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return fmt.Errorf("invalid field map: %w", err)
	}

	if node.Kind != yaml.DocumentNode || len(node.Content) != 1 {
		return errors.New("invalid field map: expected a JSON object")
	}

	return m.UnmarshalYAML(node.Content[0])
}

// MarshalJSON mirrors the YAML form: string, {path: reducer} or a list of either.
func (d DependencyList) MarshalJSON() ([]byte, error) {
	v, err := d.MarshalYAML()
	if err != nil {
		return nil, err
	}

	return json.Marshal(v)
}

// UnmarshalJSON accepts a string, an object of path to reducer, or an array of either.
func (d *DependencyList) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	deps, err := dependenciesFromAny(raw)
	if err != nil {
		return err
	}

	*d = deps

	return nil
}

func dependenciesFromAny(raw any) (DependencyList, error) {
	switch v := raw.(type) {
	case nil:
		return DependencyList{}, nil
	case string:
		if v == "" {
			return DependencyList{}, nil
		}

		return DependencyList{{Path: v}}, nil
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}

		sort.Strings(keys)

		deps := make(DependencyList, 0, len(keys))

		for _, k := range keys {
			reducer, ok := v[k].(string)
			if !ok {
				return nil, fmt.Errorf("reducer for %s must be a string", k)
			}

			deps = append(deps, Dependency{Path: k, Reducer: reducer})
		}

		return deps, nil
	case []any:
		var deps DependencyList

		for _, item := range v {
			part, err := dependenciesFromAny(item)
			if err != nil {
				return nil, err
			}

			deps = append(deps, part...)
		}

		return deps, nil
	default:
		return nil, fmt.Errorf("expected string, object, or array of dependencies, got %T", raw)
	}
}

// MarshalJSON outputs a single string if length is 1, otherwise an array.
func (s StringOrArray) MarshalJSON() ([]byte, error) {
	if len(s) == 1 {
		return json.Marshal(s[0])
	}

	return json.Marshal([]string(s))
}

// UnmarshalJSON accepts a string or an array of strings.
func (s *StringOrArray) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single == "" {
			*s = StringOrArray{}
		} else {
			*s = StringOrArray{single}
		}

		return nil
	}

	var multi []string
	if err := json.Unmarshal(data, &multi); err != nil {
		return errors.New("expected string or list of strings")
	}

	*s = multi

	return nil
}
