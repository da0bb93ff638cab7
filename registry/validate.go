package registry

import (
	"errors"
	"fmt"

	"projmeta/internal/common"
	"projmeta/internal/diagnostic"
	"projmeta/internal/match"
	"projmeta/metamodel"
)

// Validate returns the well-formedness findings for the loaded metadata.
func (r *Registry) Validate() *diagnostic.Diagnostics {
	return r.Diagnostics()
}

// validate checks the indexed metadata graph. It runs once, during initialization.
func (r *Registry) validate() *diagnostic.Diagnostics {
	diags := &diagnostic.Diagnostics{}

	for _, t := range r.managedOrder {
		r.validateManaged(diags, r.managed[t])
	}

	for _, t := range r.projectionOrder {
		r.validateProjection(diags, r.projections[t])
	}

	r.validateAcyclic(diags)

	return diags
}

func (r *Registry) validateManaged(diags *diagnostic.Diagnostics, pm metamodel.PersistenceMetadata) {
	subject := pm.Type.String()
	seen := make(map[string]struct{}, len(pm.Fields))

	for _, f := range pm.Fields {
		if f.Name == "" {
			diags.AddError(diagnostic.CodeBlankName, "field without a name", subject, "")

			continue
		}

		if _, dup := seen[f.Name]; dup {
			diags.AddError(diagnostic.CodeDuplicateField, "field declared twice", subject, f.Name)
		}

		seen[f.Name] = struct{}{}

		if f.Collection == metamodel.CollectionUnknown {
			diags.AddWarning(diagnostic.CodeInvalidCollection, "collection kind is unknown", subject, f.Name)
		}

		if (f.Relation || f.Embedded || f.EmbeddedID) && !r.isManaged(f.TargetType()) {
			diags.AddWarning(diagnostic.CodeEntityNotFound,
				fmt.Sprintf("target type %s is not registered", f.TargetType()), subject, f.Name)
		}
	}

	for _, id := range pm.IDFields {
		if _, ok := pm.Field(id, false); !ok {
			diags.AddError(diagnostic.CodeIDNotFound,
				fmt.Sprintf("identifier %q is not a declared field", id), subject, id,
				match.Suggest(id, pm.FieldNames())...)
		}
	}
}

func (r *Registry) validateProjection(diags *diagnostic.Diagnostics, pm metamodel.ProjectionMetadata) {
	subject := pm.Projection.String()

	entityKnown := r.isManaged(pm.Entity)
	if !entityKnown {
		diags.AddError(diagnostic.CodeEntityNotFound,
			fmt.Sprintf("source entity %s is not registered", pm.Entity), subject, "",
			r.suggestTypes(pm.Entity, r.managedOrder)...)
	}

	seen := make(map[string]struct{}, len(pm.Fields)+len(pm.Computed))
	folded := make(map[string]string, len(pm.Fields)+len(pm.Computed))

	// names equal under case folding make ignore-case lookups order dependent
	checkFolded := func(name string) {
		key := common.FoldKey(name)
		if prev, ok := folded[key]; ok && prev != name {
			diags.AddWarning(diagnostic.CodeFoldedNameCollision,
				fmt.Sprintf("field names %q and %q only differ in case", prev, name), subject, name)

			return
		}

		folded[key] = name
	}

	for _, f := range pm.Fields {
		if _, dup := seen[f.DTOField]; dup {
			diags.AddError(diagnostic.CodeDuplicateField, "field declared twice", subject, f.DTOField)
		}

		seen[f.DTOField] = struct{}{}
		checkFolded(f.DTOField)

		if err := metamodel.ValidatePath(f.EntityField); err != nil {
			diags.AddError(diagnostic.CodeInvalidPath, err.Error(), subject, f.DTOField)

			continue
		}

		if f.IsNested() && !r.isProjection(f.Nested) {
			diags.AddError(diagnostic.CodeProjectionNotFound,
				fmt.Sprintf("nested projection %s is not registered", f.Nested), subject, f.DTOField,
				r.suggestTypes(f.Nested, r.projectionOrder)...)
		}

		if entityKnown {
			if _, err := r.walkSource(pm.Entity, f.EntityField, false); err != nil {
				r.addSourceError(diags, subject, f.DTOField, err)
			}
		}
	}

	for _, c := range pm.Computed {
		if _, dup := seen[c.DTOField()]; dup {
			diags.AddError(diagnostic.CodeComputedShadowsField,
				"computed field has the same name as another field", subject, c.DTOField())
		}

		seen[c.DTOField()] = struct{}{}
		checkFolded(c.DTOField())

		r.validateComputed(diags, pm, c, entityKnown)
	}
}

func (r *Registry) validateComputed(
	diags *diagnostic.Diagnostics,
	pm metamodel.ProjectionMetadata,
	c metamodel.ComputedField,
	entityKnown bool,
) {
	subject := pm.Projection.String()
	deps := c.Dependencies()

	if c.DTOField() == "" || len(deps) == 0 {
		diags.AddError(diagnostic.CodeInvalidComputed, "computed field is not initialized", subject, c.DTOField())

		return
	}

	for _, rm := range c.Reducers() {
		if rm.DependencyIndex < 0 || rm.DependencyIndex >= len(deps) {
			diags.AddError(diagnostic.CodeInvalidComputed,
				fmt.Sprintf("reducer index %d out of range [0, %d)", rm.DependencyIndex, len(deps)),
				subject, c.DTOField())
		}

		if !rm.Reducer.Known() {
			diags.AddWarning(diagnostic.CodeUnknownReducer,
				fmt.Sprintf("reducer %q is not one of the standard reducers", rm.Reducer),
				subject, c.DTOField())
		}
	}

	if !entityKnown {
		return
	}

	for i, dep := range deps {
		fieldPath := metamodel.JoinPath(c.DTOField(), dep)

		step, err := r.walkSource(pm.Entity, dep, false)
		via, nested, viaErr := r.viaProjection(pm, dep, r.depthBudget(dep))

		switch {
		case err == nil && nested && viaErr == nil && via != dep:
			diags.AddWarning(diagnostic.CodeAmbiguousDependency,
				fmt.Sprintf("dependency %d is an entity path and reads %q through a nested projection; the entity path is used", i, via),
				subject, fieldPath)
		case err != nil && nested && viaErr == nil:
			// written through a nested projection: check the entity path it reads
			step, err = r.walkSource(pm.Entity, via, false)
		}

		if err != nil {
			r.addSourceError(diags, subject, fieldPath, err)

			continue
		}

		_, hasReducer := c.ReducerFor(i)

		switch {
		case step.plural && !hasReducer:
			diags.AddError(diagnostic.CodeMissingReducer,
				fmt.Sprintf("dependency %d traverses a collection and needs a reducer", i),
				subject, fieldPath)
		case !step.plural && hasReducer:
			diags.AddWarning(diagnostic.CodeUnexpectedReducer,
				fmt.Sprintf("dependency %d is single-valued; its reducer has no effect", i),
				subject, fieldPath)
		}
	}
}

// validateAcyclic reports projections whose nested projection graph contains a cycle.
func (r *Registry) validateAcyclic(diags *diagnostic.Diagnostics) {
	index := make(map[metamodel.TypeID]int, len(r.projectionOrder))
	for i, t := range r.projectionOrder {
		index[t] = i
	}

	_, err := common.TopoSort(len(r.projectionOrder), func(i int) []int {
		var deps []int

		for _, f := range r.projections[r.projectionOrder[i]].Fields {
			if j, ok := index[f.Nested]; ok && f.IsNested() {
				deps = append(deps, j)
			}
		}

		return deps
	})

	var cycle *common.CycleError
	if !errors.As(err, &cycle) {
		return
	}

	for _, i := range cycle.Remaining {
		diags.AddError(diagnostic.CodeProjectionCycle,
			"nested projections form a cycle", r.projectionOrder[i].String(), "")
	}
}

func (r *Registry) addSourceError(diags *diagnostic.Diagnostics, subject, fieldPath string, err error) {
	var pathErr *metamodel.PathError
	if errors.As(err, &pathErr) {
		diags.AddError(diagnostic.CodeSourcePathNotFound,
			fmt.Sprintf("entity path %q not found at segment %q", pathErr.Path, pathErr.Segment),
			subject, fieldPath, pathErr.Suggestions...)

		return
	}

	diags.AddError(diagnostic.CodeSourcePathNotFound, err.Error(), subject, fieldPath)
}

func (r *Registry) isManaged(t metamodel.TypeID) bool {
	_, ok := r.managed[t]
	return ok
}

func (r *Registry) isProjection(t metamodel.TypeID) bool {
	_, ok := r.projections[t]
	return ok
}

// suggestTypes returns registered types whose name is close to t's name.
func (r *Registry) suggestTypes(t metamodel.TypeID, candidates []metamodel.TypeID) []string {
	names := make([]string, len(candidates))
	byName := make(map[string]string, len(candidates))

	for i, c := range candidates {
		names[i] = c.Name
		byName[c.Name] = c.String()
	}

	var out []string
	for _, name := range match.Suggest(t.Name, names) {
		out = append(out, byName[name])
	}

	return out
}
