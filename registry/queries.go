package registry

import (
	"fmt"

	"projmeta/internal/match"
	"projmeta/metamodel"
)

// IsEntity returns true if t is a registered entity.
func (r *Registry) IsEntity(t metamodel.TypeID) bool {
	if r.ensure() != nil {
		return false
	}

	pm, ok := r.managed[t]

	return ok && !pm.Embeddable
}

// IsEmbeddable returns true if t is a registered embeddable.
func (r *Registry) IsEmbeddable(t metamodel.TypeID) bool {
	if r.ensure() != nil {
		return false
	}

	pm, ok := r.managed[t]

	return ok && pm.Embeddable
}

// IsProjection returns true if t is a registered projection.
func (r *Registry) IsProjection(t metamodel.TypeID) bool {
	if r.ensure() != nil {
		return false
	}

	_, ok := r.projections[t]

	return ok
}

// Entity returns the persistence metadata of an entity or embeddable.
func (r *Registry) Entity(t metamodel.TypeID) (metamodel.PersistenceMetadata, error) {
	pm, err := r.persistence(t)
	if err != nil {
		return metamodel.PersistenceMetadata{}, err
	}

	return pm.Clone(), nil
}

// Projection returns the metadata of a projection.
func (r *Registry) Projection(t metamodel.TypeID) (metamodel.ProjectionMetadata, error) {
	pm, err := r.projection(t)
	if err != nil {
		return metamodel.ProjectionMetadata{}, err
	}

	return pm.Clone(), nil
}

// Fields returns the persistent fields of an entity or embeddable in declaration order.
func (r *Registry) Fields(t metamodel.TypeID) ([]metamodel.FieldMetadata, error) {
	pm, err := r.persistence(t)
	if err != nil {
		return nil, err
	}

	return append([]metamodel.FieldMetadata(nil), pm.Fields...), nil
}

// Field returns one persistent field of an entity or embeddable.
func (r *Registry) Field(t metamodel.TypeID, name string) (metamodel.FieldMetadata, error) {
	pm, err := r.persistence(t)
	if err != nil {
		return metamodel.FieldMetadata{}, err
	}

	f, ok := pm.Field(name, false)
	if !ok {
		return metamodel.FieldMetadata{}, &metamodel.PathError{
			Type:        t,
			Path:        name,
			Segment:     name,
			Err:         metamodel.ErrFieldNotFound,
			Suggestions: match.Suggest(name, pm.FieldNames()),
		}
	}

	return f, nil
}

// IDFields returns the identifier paths of an entity. Composite identifiers
// declared through an embedded id expand to one "id.part" path per part.
func (r *Registry) IDFields(t metamodel.TypeID) ([]string, error) {
	pm, err := r.persistence(t)
	if err != nil {
		return nil, err
	}

	names := pm.IDFields
	if len(names) == 0 {
		for _, f := range pm.Fields {
			if f.ID || f.EmbeddedID {
				names = append(names, f.Name)
			}
		}
	}

	var ids []string

	for _, name := range names {
		f, ok := pm.Field(name, false)
		if !ok || !f.EmbeddedID {
			ids = append(ids, name)

			continue
		}

		idType, ok := r.managed[f.TargetType()]
		if !ok || len(idType.Fields) == 0 {
			ids = append(ids, name)

			continue
		}

		for _, part := range idType.Fields {
			ids = append(ids, metamodel.JoinPath(name, part.Name))
		}
	}

	return ids, nil
}

// AttributeType returns the declared type of the attribute at a dotted source path.
// Relations and embeddables are traversed; plural fields step into their element type.
func (r *Registry) AttributeType(t metamodel.TypeID, path string) (metamodel.TypeID, error) {
	if err := r.ensure(); err != nil {
		return metamodel.TypeID{}, err
	}

	step, err := r.walkSource(t, path, false)
	if err != nil {
		return metamodel.TypeID{}, err
	}

	return step.field.Type, nil
}

// Projections returns every registered projection type, sorted.
func (r *Registry) Projections() []metamodel.TypeID {
	if r.ensure() != nil {
		return nil
	}

	return append([]metamodel.TypeID(nil), r.projectionOrder...)
}

// Entities returns every registered entity type (embeddables excluded), sorted.
func (r *Registry) Entities() []metamodel.TypeID {
	return r.managedTypes(false)
}

// Embeddables returns every registered embeddable type, sorted.
func (r *Registry) Embeddables() []metamodel.TypeID {
	return r.managedTypes(true)
}

func (r *Registry) managedTypes(embeddable bool) []metamodel.TypeID {
	if r.ensure() != nil {
		return nil
	}

	var out []metamodel.TypeID

	for _, t := range r.managedOrder {
		if r.managed[t].Embeddable == embeddable {
			out = append(out, t)
		}
	}

	return out
}

func (r *Registry) persistence(t metamodel.TypeID) (metamodel.PersistenceMetadata, error) {
	if err := r.ensure(); err != nil {
		return metamodel.PersistenceMetadata{}, err
	}

	pm, ok := r.managed[t]
	if !ok {
		return metamodel.PersistenceMetadata{}, &metamodel.RegistrationError{Type: t, Kind: metamodel.KindManaged}
	}

	return pm, nil
}

func (r *Registry) projection(t metamodel.TypeID) (metamodel.ProjectionMetadata, error) {
	if err := r.ensure(); err != nil {
		return metamodel.ProjectionMetadata{}, err
	}

	pm, ok := r.projections[t]
	if !ok {
		return metamodel.ProjectionMetadata{}, &metamodel.RegistrationError{Type: t, Kind: metamodel.KindProjection}
	}

	return pm, nil
}

// sourceStep is the outcome of walking a source path.
type sourceStep struct {
	// field is the last field on the path.
	field metamodel.FieldMetadata
	// path is the walked path in metadata casing.
	path string
	// plural is true if any field on the path is collection-valued.
	plural bool
}

// walkSource follows a dotted source path from root through persistence metadata.
func (r *Registry) walkSource(root metamodel.TypeID, path string, ignoreCase bool) (sourceStep, error) {
	current, ok := r.managed[root]
	if !ok {
		return sourceStep{}, &metamodel.RegistrationError{Type: root, Kind: metamodel.KindManaged}
	}

	if err := metamodel.ValidatePath(path); err != nil {
		return sourceStep{}, &metamodel.PathError{Type: root, Path: path, Err: err}
	}

	var step sourceStep

	segments := metamodel.Segments(path)
	for i, seg := range segments {
		f, ok := current.Field(seg, ignoreCase)
		if !ok {
			return sourceStep{}, &metamodel.PathError{
				Type:        current.Type,
				Path:        path,
				Segment:     seg,
				Resolved:    step.path,
				Err:         metamodel.ErrFieldNotFound,
				Suggestions: match.Suggest(seg, current.FieldNames()),
			}
		}

		step.field = f
		step.path = metamodel.JoinPath(step.path, f.Name)
		step.plural = step.plural || f.Collection.IsPlural()

		if i == len(segments)-1 {
			break
		}

		next, ok := r.managed[f.TargetType()]
		if !ok {
			return sourceStep{}, &metamodel.PathError{
				Type:     current.Type,
				Path:     path,
				Segment:  segments[i+1],
				Resolved: step.path,
				Err:      fmt.Errorf("%w: %s of type %s has no fields", metamodel.ErrInvalidPath, f.Name, f.TargetType()),
			}
		}

		current = next
	}

	return step, nil
}
