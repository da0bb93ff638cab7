package metamodel

import (
	"slices"
	"strings"
)

// ComputedField describes a projection field derived from one or more entity
// paths rather than copied from a single one.
//
// Invariants (checked by every constructor):
//   - the DTO field name is non-blank;
//   - there is at least one dependency and no dependency is blank;
//   - every reducer targets a valid dependency index, at most once;
//   - every pipeline step names a method built by NewMethodReference.
//
// A dependency that traverses a plural relation ("orders.amount") is
// collection-valued and needs a reducer. Detecting plurality requires
// persistence metadata, so that rule is checked by registry validation.
type ComputedField struct {
	dtoField     string
	dependencies []string
	reducers     []ReducerMapping
	pipeline     Pipeline
}

// NewComputedField returns a validated ComputedField.
func NewComputedField(dtoField string, dependencies []string, reducers []ReducerMapping, pipeline Pipeline) (ComputedField, error) {
	subject := "ComputedField " + dtoField

	if strings.TrimSpace(dtoField) == "" {
		return ComputedField{}, invariant("ComputedField", "dto field name cannot be blank")
	}

	if len(dependencies) == 0 {
		return ComputedField{}, invariant(subject, "dependencies cannot be empty")
	}

	for i, dep := range dependencies {
		if strings.TrimSpace(dep) == "" {
			return ComputedField{}, invariant(subject, "dependency %d is blank", i)
		}
	}

	seen := make(map[int]bool, len(reducers))

	for _, rm := range reducers {
		if rm.DependencyIndex < 0 || rm.DependencyIndex >= len(dependencies) {
			return ComputedField{}, invariant(subject,
				"reducer %s targets dependency index %d, want [0, %d)",
				rm.Reducer, rm.DependencyIndex, len(dependencies))
		}

		if strings.TrimSpace(string(rm.Reducer)) == "" {
			return ComputedField{}, invariant(subject, "reducer for dependency %d is blank", rm.DependencyIndex)
		}

		if seen[rm.DependencyIndex] {
			return ComputedField{}, invariant(subject, "dependency %d has more than one reducer", rm.DependencyIndex)
		}

		seen[rm.DependencyIndex] = true
	}

	for _, step := range pipeline.steps {
		if step.Method.IsZero() {
			return ComputedField{}, invariant(subject, "%s step has an unvalidated method reference", step.Stage)
		}
	}

	return ComputedField{
		dtoField:     dtoField,
		dependencies: slices.Clone(dependencies),
		reducers:     slices.Clone(reducers),
		pipeline:     pipeline,
	}, nil
}

// NewDerivedField returns a computed field whose computation is resolved
// elsewhere (by convention or an external resolver).
func NewDerivedField(dtoField string, dependencies ...string) (ComputedField, error) {
	return NewComputedField(dtoField, dependencies, nil, NoPipeline())
}

// NewReducedField returns a computed field with reducer mappings and no explicit pipeline.
func NewReducedField(dtoField string, dependencies []string, reducers []ReducerMapping) (ComputedField, error) {
	return NewComputedField(dtoField, dependencies, reducers, NoPipeline())
}

// MustComputedField is like NewComputedField but panics on error.
// It is intended for generated provider code.
func MustComputedField(dtoField string, dependencies []string, reducers []ReducerMapping, pipeline Pipeline) ComputedField {
	cf, err := NewComputedField(dtoField, dependencies, reducers, pipeline)
	if err != nil {
		panic(err)
	}

	return cf
}

// DTOField returns the exposed projection field name.
func (c ComputedField) DTOField() string { return c.dtoField }

// Dependencies returns a copy of the ordered dependency paths.
func (c ComputedField) Dependencies() []string { return slices.Clone(c.dependencies) }

// Reducers returns a copy of the reducer mappings.
func (c ComputedField) Reducers() []ReducerMapping { return slices.Clone(c.reducers) }

// Pipeline returns the compute/transform pipeline.
func (c ComputedField) Pipeline() Pipeline { return c.pipeline }

// ComputedBy returns the primary computation step, if any.
func (c ComputedField) ComputedBy() (MethodReference, bool) { return c.pipeline.ComputedBy() }

// Transformer returns the post-compute transform step, if any.
func (c ComputedField) Transformer() (MethodReference, bool) { return c.pipeline.Transformer() }

// HasReducers returns true if at least one reducer is declared.
func (c ComputedField) HasReducers() bool {
	return len(c.reducers) > 0
}

// DependsOn returns true if path is literally one of the dependencies.
func (c ComputedField) DependsOn(path string) bool {
	return slices.Contains(c.dependencies, path)
}

// DependencyCount returns the number of dependencies.
func (c ComputedField) DependencyCount() int {
	return len(c.dependencies)
}

// HasNestedDependencies returns true if any dependency traverses a relation hop.
func (c ComputedField) HasNestedDependencies() bool {
	return slices.ContainsFunc(c.dependencies, IsNestedPath)
}

// ReducerFor returns the reducer applied to the dependency at index.
func (c ComputedField) ReducerFor(index int) (Reducer, bool) {
	for _, rm := range c.reducers {
		if rm.DependencyIndex == index {
			return rm.Reducer, true
		}
	}

	return "", false
}

// ReducerMap returns the reducers keyed by dependency index.
func (c ComputedField) ReducerMap() map[int]Reducer {
	m := make(map[int]Reducer, len(c.reducers))
	for _, rm := range c.reducers {
		m[rm.DependencyIndex] = rm.Reducer
	}

	return m
}

// Equal reports structural equality.
func (c ComputedField) Equal(other ComputedField) bool {
	return c.dtoField == other.dtoField &&
		slices.Equal(c.dependencies, other.dependencies) &&
		slices.Equal(c.reducers, other.reducers) &&
		c.pipeline.Equal(other.pipeline)
}
