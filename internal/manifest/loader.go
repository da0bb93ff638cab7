package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Format is a manifest serialization format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatOf returns the format implied by a file extension; YAML unless ".json".
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}

	return FormatYAML
}

// LoadFile loads and parses a manifest, choosing the format by file extension.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	if FormatOf(path) == FormatJSON {
		return ParseJSON(data)
	}

	return Parse(data)
}

// Parse parses YAML data into a Document.
func Parse(data []byte) (*Document, error) {
	var doc Document

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse manifest YAML: %w", err)
	}

	applyDefaults(&doc)

	return &doc, nil
}

// ParseJSON parses JSON data into a Document.
func ParseJSON(data []byte) (*Document, error) {
	var doc Document

	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse manifest JSON: %w", err)
	}

	applyDefaults(&doc)

	return &doc, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(doc *Document) {
	if doc.Version == "" {
		doc.Version = CurrentVersion
	}

	for i := range doc.Projections {
		p := &doc.Projections[i]
		for j := range p.Fields {
			if p.Fields[j].Entity == "" {
				p.Fields[j].Entity = p.Fields[j].DTO
			}
		}
	}
}

// Marshal serializes a Document to YAML.
func Marshal(doc *Document) ([]byte, error) {
	return yaml.Marshal(doc)
}

// MarshalJSON serializes a Document to indented JSON.
func MarshalJSON(doc *Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

// Encode serializes a Document in the given format.
func Encode(doc *Document, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return MarshalJSON(doc)
	case FormatYAML:
		return Marshal(doc)
	default:
		return nil, fmt.Errorf("unsupported manifest format %q", format)
	}
}

// WriteFile writes a Document to path, choosing the format by file extension.
func WriteFile(doc *Document, path string) error {
	data, err := Encode(doc, FormatOf(path))
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write manifest %s: %w", path, err)
	}

	return nil
}
