package metamodel

import (
	"projmeta/internal/common"
)

// DirectMapping maps one projection field straight onto an entity path.
type DirectMapping struct {
	// DTOField is the exposed projection field name.
	DTOField string
	// EntityField is the dotted source path on the projection's entity.
	EntityField string
	// Nested is the projection type of the DTO field when it is itself a projection.
	Nested TypeID
	// Collection is the container kind of the DTO field (Scalar for single values).
	Collection CollectionKind
}

// IsNested returns true if the DTO field is typed as another projection.
func (d DirectMapping) IsNested() bool {
	return !d.Nested.IsZero()
}

// ProjectionMetadata describes one projection type.
type ProjectionMetadata struct {
	// Projection is the projection type itself.
	Projection TypeID
	// Entity is the source entity the projection reads from.
	Entity TypeID
	// Fields are the direct mappings, in declaration order.
	Fields []DirectMapping
	// Computed are the computed fields, in declaration order.
	Computed []ComputedField
}

// Field returns the direct mapping for name.
func (p ProjectionMetadata) Field(name string, ignoreCase bool) (DirectMapping, bool) {
	for _, f := range p.Fields {
		if f.DTOField == name {
			return f, true
		}
	}

	if !ignoreCase {
		return DirectMapping{}, false
	}

	key := common.FoldKey(name)

	for _, f := range p.Fields {
		if common.FoldKey(f.DTOField) == key {
			return f, true
		}
	}

	return DirectMapping{}, false
}

// ComputedField returns the computed field named name.
func (p ProjectionMetadata) ComputedField(name string, ignoreCase bool) (ComputedField, bool) {
	for _, c := range p.Computed {
		if c.DTOField() == name {
			return c, true
		}
	}

	if !ignoreCase {
		return ComputedField{}, false
	}

	key := common.FoldKey(name)

	for _, c := range p.Computed {
		if common.FoldKey(c.DTOField()) == key {
			return c, true
		}
	}

	return ComputedField{}, false
}

// FieldNames returns every exposed field name: direct mappings first, then computed fields.
func (p ProjectionMetadata) FieldNames() []string {
	names := make([]string, 0, len(p.Fields)+len(p.Computed))
	for _, f := range p.Fields {
		names = append(names, f.DTOField)
	}

	for _, c := range p.Computed {
		names = append(names, c.DTOField())
	}

	return names
}

// Clone returns a deep copy.
func (p ProjectionMetadata) Clone() ProjectionMetadata {
	p.Fields = append([]DirectMapping(nil), p.Fields...)
	p.Computed = append([]ComputedField(nil), p.Computed...)

	return p
}
