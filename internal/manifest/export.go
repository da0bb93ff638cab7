package manifest

import (
	"projmeta/metamodel"
)

// FromMetadata converts metadata back into a document. Types in pkg are written
// by bare name; pass an empty pkg to qualify every type.
func FromMetadata(
	pkg string,
	persistence []metamodel.PersistenceMetadata,
	projections []metamodel.ProjectionMetadata,
) *Document {
	doc := &Document{Version: CurrentVersion, Package: pkg}

	for _, pm := range persistence {
		ed := entityDoc(pm, pkg)
		if pm.Embeddable {
			doc.Embeddables = append(doc.Embeddables, ed)
		} else {
			doc.Entities = append(doc.Entities, ed)
		}
	}

	for _, pm := range projections {
		doc.Projections = append(doc.Projections, projectionDoc(pm, pkg))
	}

	return doc
}

func entityDoc(pm metamodel.PersistenceMetadata, pkg string) EntityDoc {
	ed := EntityDoc{Type: short(pm.Type, pkg)}

	for _, f := range pm.Fields {
		fd := FieldDoc{
			Name:       f.Name,
			Type:       short(f.Type, pkg),
			Relation:   f.Relation,
			Embedded:   f.Embedded,
			ID:         f.ID,
			EmbeddedID: f.EmbeddedID,
		}

		if f.Collection != metamodel.CollectionScalar {
			fd.Collection = f.Collection.String()
			fd.Element = short(f.Element, pkg)
		}

		ed.Fields = append(ed.Fields, fd)
	}

	if len(pm.IDFields) > 0 {
		ed.IDs = append(StringOrArray(nil), pm.IDFields...)
	}

	return ed
}

func projectionDoc(pm metamodel.ProjectionMetadata, pkg string) ProjectionDoc {
	pd := ProjectionDoc{
		Type:   short(pm.Projection, pkg),
		Entity: short(pm.Entity, pkg),
	}

	// plain mappings use the shorthand until the first full-form field, keeping order
	for _, f := range pm.Fields {
		if len(pd.Fields) == 0 && !f.IsNested() && f.Collection == metamodel.CollectionScalar {
			pd.Map = append(pd.Map, MapEntry{DTO: f.DTOField, Path: f.EntityField})
			continue
		}

		md := MappingDoc{DTO: f.DTOField, Entity: f.EntityField}
		if f.IsNested() {
			md.Projection = short(f.Nested, pkg)
		}

		if f.Collection != metamodel.CollectionScalar {
			md.Collection = f.Collection.String()
		}

		pd.Fields = append(pd.Fields, md)
	}

	for _, c := range pm.Computed {
		pd.Computed = append(pd.Computed, computedDoc(c, pkg))
	}

	return pd
}

func computedDoc(c metamodel.ComputedField, pkg string) ComputedDoc {
	cd := ComputedDoc{Field: c.DTOField()}

	for i, dep := range c.Dependencies() {
		d := Dependency{Path: dep}
		if r, ok := c.ReducerFor(i); ok {
			d.Reducer = string(r)
		}

		cd.Dependencies = append(cd.Dependencies, d)
	}

	if ref, ok := c.ComputedBy(); ok {
		cd.Compute = methodString(ref, pkg)
	}

	if ref, ok := c.Transformer(); ok {
		cd.Then = methodString(ref, pkg)
	}

	return cd
}

func methodString(ref metamodel.MethodReference, pkg string) string {
	return short(ref.Owner(), pkg) + "#" + ref.Method()
}
