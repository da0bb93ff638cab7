package manifest

import (
	"slices"

	"projmeta/internal/common"
)

// CurrentVersion is the schema version written by this package.
const CurrentVersion = "1"

// Document is the root of a manifest file.
type Document struct {
	// Version of the manifest schema.
	Version string `yaml:"version,omitempty" json:"version,omitempty"`

	// Package qualifies bare type names used in the document.
	Package string `yaml:"package,omitempty" json:"package,omitempty"`

	Entities    []EntityDoc     `yaml:"entities,omitempty" json:"entities,omitempty"`
	Embeddables []EntityDoc     `yaml:"embeddables,omitempty" json:"embeddables,omitempty"`
	Projections []ProjectionDoc `yaml:"projections,omitempty" json:"projections,omitempty"`
}

// EntityDoc describes an entity or an embeddable.
type EntityDoc struct {
	Type   string     `yaml:"type" json:"type"`
	Fields []FieldDoc `yaml:"fields,omitempty" json:"fields,omitempty"`
	// IDs lists identifier field names. Defaults to fields flagged id or embedded_id.
	IDs StringOrArray `yaml:"ids,omitempty" json:"ids,omitempty"`
}

// FieldDoc describes one persistent field.
type FieldDoc struct {
	Name string `yaml:"name" json:"name"`
	// Type is the declared Go type ("string", "time.Time", "[]Order", "Address").
	Type string `yaml:"type,omitempty" json:"type,omitempty"`
	// Collection is the container kind (list, set, map, collection, array); empty for scalars.
	Collection string `yaml:"collection,omitempty" json:"collection,omitempty"`
	// Element is the element type of a collection.
	Element    string `yaml:"element,omitempty" json:"element,omitempty"`
	Relation   bool   `yaml:"relation,omitempty" json:"relation,omitempty"`
	Embedded   bool   `yaml:"embedded,omitempty" json:"embedded,omitempty"`
	ID         bool   `yaml:"id,omitempty" json:"id,omitempty"`
	EmbeddedID bool   `yaml:"embedded_id,omitempty" json:"embedded_id,omitempty"`
}

// ProjectionDoc describes one projection.
type ProjectionDoc struct {
	Type   string `yaml:"type" json:"type"`
	Entity string `yaml:"entity" json:"entity"`

	// Map is the ordered shorthand for direct fields: dto field -> entity path.
	// Entries come before Fields in the built metadata.
	Map FieldMap `yaml:"map,omitempty" json:"map,omitempty"`

	// Fields is the full form for direct fields.
	Fields []MappingDoc `yaml:"fields,omitempty" json:"fields,omitempty"`

	Computed []ComputedDoc `yaml:"computed,omitempty" json:"computed,omitempty"`
}

// DirectFields returns the shorthand and full-form mappings in build order.
func (p *ProjectionDoc) DirectFields() []MappingDoc {
	out := make([]MappingDoc, 0, len(p.Map)+len(p.Fields))
	for _, e := range p.Map {
		out = append(out, MappingDoc{DTO: e.DTO, Entity: e.Path})
	}

	return append(out, p.Fields...)
}

// MappingDoc is the full form of a direct field.
type MappingDoc struct {
	DTO string `yaml:"dto" json:"dto"`
	// Entity is the dotted entity path. Defaults to DTO.
	Entity string `yaml:"entity,omitempty" json:"entity,omitempty"`
	// Projection is set when the dto field is itself a projection.
	Projection string `yaml:"projection,omitempty" json:"projection,omitempty"`
	Collection string `yaml:"collection,omitempty" json:"collection,omitempty"`
}

// EntityPath returns the entity path, defaulting to the dto field name.
func (m MappingDoc) EntityPath() string {
	if m.Entity == "" {
		return m.DTO
	}

	return m.Entity
}

// ComputedDoc describes a computed field.
type ComputedDoc struct {
	Field        string         `yaml:"field" json:"field"`
	Dependencies DependencyList `yaml:"dependencies" json:"dependencies"`
	Reducers     []ReducerDoc   `yaml:"reducers,omitempty" json:"reducers,omitempty"`
	// Compute is the computing method, "Owner#Method".
	Compute string `yaml:"compute,omitempty" json:"compute,omitempty"`
	// Then is the transforming method applied to the computed value, "Owner#Method".
	Then string `yaml:"then,omitempty" json:"then,omitempty"`
}

// ReducerDoc assigns a reducer to a dependency by index.
type ReducerDoc struct {
	Index   int    `yaml:"index" json:"index"`
	Reducer string `yaml:"reducer" json:"reducer"`
}

// MapEntry is one entry of the ordered map shorthand.
type MapEntry struct {
	DTO  string
	Path string
}

// FieldMap is an order-preserving dto field -> entity path map.
type FieldMap []MapEntry

// Get returns the entity path mapped for dto.
func (m FieldMap) Get(dto string) (string, bool) {
	for _, e := range m {
		if e.DTO == dto {
			return e.Path, true
		}
	}

	return "", false
}

// Dependency is one computed-field dependency with an optional inline reducer.
type Dependency struct {
	Path    string
	Reducer string
}

// DependencyList accepts a string, a {path: REDUCER} map, or a list of either.
type DependencyList []Dependency

// Paths returns the dependency paths in order.
func (d DependencyList) Paths() []string {
	paths := make([]string, len(d))
	for i, dep := range d {
		paths[i] = dep.Path
	}

	return paths
}

// StringOrArray is a list that can be written as a single string.
type StringOrArray []string

// First returns the first element or empty string if empty.
func (s StringOrArray) First() string {
	if v, ok := common.First(s); ok {
		return v
	}

	return ""
}

// IsEmpty returns true if the array is empty.
func (s StringOrArray) IsEmpty() bool {
	return common.IsEmpty(s)
}

// Contains returns true if the array contains str.
func (s StringOrArray) Contains(str string) bool {
	return slices.Contains(s, str)
}
