package metamodel

import (
	"strings"

	"projmeta/internal/common"
)

//go:generate go tool stringer -type=CollectionKind -linecomment -output=collection_string.go

// CollectionKind is the container kind of a persistent or projection field.
type CollectionKind int

const (
	CollectionScalar  CollectionKind = iota // scalar
	CollectionList                          // list
	CollectionSet                           // set
	CollectionMap                           // map
	CollectionGeneric                       // collection
	CollectionArray                         // array
	CollectionUnknown                       // unknown
)

var collectionKindsByName = map[string]CollectionKind{
	"":           CollectionScalar,
	"scalar":     CollectionScalar,
	"list":       CollectionList,
	"set":        CollectionSet,
	"map":        CollectionMap,
	"collection": CollectionGeneric,
	"array":      CollectionArray,
	"unknown":    CollectionUnknown,
}

// ParseCollectionKind parses a collection kind name (case-insensitive).
// Unrecognized names yield CollectionUnknown and false.
func ParseCollectionKind(s string) (CollectionKind, bool) {
	k, ok := collectionKindsByName[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return CollectionUnknown, false
	}

	return k, true
}

// IsPlural returns true for every container kind.
func (k CollectionKind) IsPlural() bool {
	return k != CollectionScalar
}

// FieldMetadata describes one persistent field of an entity or embeddable.
type FieldMetadata struct {
	// Name is the declared field name.
	Name string
	// Type is the declared attribute type (the container type for plural fields).
	Type TypeID
	// Collection is the container kind; Scalar for single-valued fields.
	Collection CollectionKind
	// Element is the element type of plural fields.
	Element TypeID
	// Relation is true for associations to other entities.
	Relation bool
	// Embedded is true for fields typed as an embeddable.
	Embedded bool
	// ID is true for simple identifier fields.
	ID bool
	// EmbeddedID is true for composite identifiers declared on an embeddable id type.
	EmbeddedID bool
}

// TargetType returns the element type for plural fields and the declared type otherwise.
func (f FieldMetadata) TargetType() TypeID {
	if f.Collection.IsPlural() && !f.Element.IsZero() {
		return f.Element
	}

	return f.Type
}

// PersistenceMetadata describes a registered entity or embeddable.
type PersistenceMetadata struct {
	Type       TypeID
	Embeddable bool
	Fields     []FieldMetadata
	// IDFields lists identifier field names in declaration order.
	IDFields []string
}

// Field returns the field named name.
func (p PersistenceMetadata) Field(name string, ignoreCase bool) (FieldMetadata, bool) {
	for _, f := range p.Fields {
		if f.Name == name {
			return f, true
		}
	}

	if !ignoreCase {
		return FieldMetadata{}, false
	}

	key := common.FoldKey(name)

	for _, f := range p.Fields {
		if common.FoldKey(f.Name) == key {
			return f, true
		}
	}

	return FieldMetadata{}, false
}

// FieldNames returns the declared field names in order.
func (p PersistenceMetadata) FieldNames() []string {
	names := make([]string, len(p.Fields))
	for i, f := range p.Fields {
		names[i] = f.Name
	}

	return names
}

// Clone returns a deep copy.
func (p PersistenceMetadata) Clone() PersistenceMetadata {
	p.Fields = append([]FieldMetadata(nil), p.Fields...)
	p.IDFields = append([]string(nil), p.IDFields...)

	return p
}
