package registry

import (
	"fmt"
	"slices"

	"projmeta/internal/common"
	"projmeta/internal/match"
	"projmeta/metamodel"
)

// RequiredFields returns the entity paths that must be loaded to populate t.
//
// For a projection: mapped paths of direct fields, nested projection fields
// prefixed by their mapped path, and the entity path of every computed
// dependency (dependencies written through a nested projection are translated).
// An entity or embeddable is treated as the identity projection of its own fields.
// Paths are deduplicated, keeping the first declared occurrence.
func (r *Registry) RequiredFields(t metamodel.TypeID) ([]string, error) {
	if err := r.ensure(); err != nil {
		return nil, err
	}

	if cached, ok := r.required.Load(t); ok {
		return slices.Clone(cached.([]string)), nil
	}

	fields, err := r.requiredFields(t, len(r.projections)+1)
	if err != nil {
		return nil, err
	}

	cached, _ := r.required.LoadOrStore(t, fields)

	return slices.Clone(cached.([]string)), nil
}

func (r *Registry) requiredFields(t metamodel.TypeID, depth int) ([]string, error) {
	if depth <= 0 {
		return nil, fmt.Errorf("%w: nested projections of %s are cyclic", metamodel.ErrInvalidPath, t)
	}

	pm, ok := r.projections[t]
	if !ok {
		entity, ok := r.managed[t]
		if !ok {
			return nil, &metamodel.RegistrationError{Type: t, Kind: metamodel.KindAny}
		}

		return entity.FieldNames(), nil
	}

	set := common.NewOrderedSet[string]()

	for _, f := range pm.Fields {
		if !f.IsNested() {
			set.Add(f.EntityField)

			continue
		}

		inner, err := r.requiredFields(f.Nested, depth-1)
		if err != nil {
			return nil, fmt.Errorf("required fields of %s.%s: %w", t.Name, f.DTOField, err)
		}

		for _, p := range inner {
			set.Add(metamodel.JoinPath(f.EntityField, p))
		}
	}

	for _, c := range pm.Computed {
		for _, dep := range c.Dependencies() {
			set.Add(r.sourceDependency(pm, c, dep, r.depthBudget(dep)))
		}
	}

	return set.Items(), nil
}

// ComputedFields returns the computed field descriptors of a projection in declaration order.
func (r *Registry) ComputedFields(t metamodel.TypeID) ([]metamodel.ComputedField, error) {
	pm, err := r.projection(t)
	if err != nil {
		return nil, err
	}

	return slices.Clone(pm.Computed), nil
}

// ComputedField returns one computed field descriptor of a projection.
func (r *Registry) ComputedField(t metamodel.TypeID, name string) (metamodel.ComputedField, error) {
	pm, err := r.projection(t)
	if err != nil {
		return metamodel.ComputedField{}, err
	}

	c, ok := pm.ComputedField(name, false)
	if !ok {
		names := make([]string, len(pm.Computed))
		for i, cf := range pm.Computed {
			names[i] = cf.DTOField()
		}

		return metamodel.ComputedField{}, &metamodel.PathError{
			Type:        t,
			Path:        name,
			Segment:     name,
			Err:         metamodel.ErrFieldNotFound,
			Suggestions: match.Suggest(name, names),
		}
	}

	return c, nil
}
