// Package metamodel defines the runtime metamodel that maps persistence
// entities to read-only projections.
//
// Key types:
//   - TypeID: package import path + type name
//   - MethodReference: a validated (owner type, method name) pair
//   - ReducerMapping: an aggregation applied to one collection-valued dependency
//   - Pipeline: the ordered compute -> transform chain of a computed field
//   - ComputedField: a projection field derived from one or more entity paths
//   - ProjectionMetadata: direct mappings, computed fields and nested projections
//   - PersistenceMetadata: entity/embeddable fields, relations and identifiers
//
// Every value is validated on construction and immutable afterwards.
// Construction failures wrap ErrInvalidArgument.
package metamodel
