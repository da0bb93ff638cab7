package registry

import (
	"projmeta/metamodel"
)

// ResolvePath resolves a projection path against the Default registry.
func ResolvePath(projection metamodel.TypeID, path string, opts ...ResolveOption) (string, error) {
	return Default().ResolvePath(projection, path, opts...)
}

// RequiredFields returns the required entity paths of t from the Default registry.
func RequiredFields(t metamodel.TypeID) ([]string, error) {
	return Default().RequiredFields(t)
}

// ComputedFields returns the computed fields of a projection from the Default registry.
func ComputedFields(t metamodel.TypeID) ([]metamodel.ComputedField, error) {
	return Default().ComputedFields(t)
}

// IsProjection reports whether t is a projection in the Default registry.
func IsProjection(t metamodel.TypeID) bool {
	return Default().IsProjection(t)
}

// IsEntity reports whether t is an entity in the Default registry.
func IsEntity(t metamodel.TypeID) bool {
	return Default().IsEntity(t)
}
