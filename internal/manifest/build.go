package manifest

import (
	"errors"
	"fmt"
	"strings"

	"projmeta/internal/diagnostic"
	"projmeta/metamodel"
	"projmeta/registry"
)

// Provider serves the metadata of a manifest. It implements both registry provider interfaces.
type Provider struct {
	persistence []metamodel.PersistenceMetadata
	projections []metamodel.ProjectionMetadata
}

var (
	_ registry.PersistenceProvider = (*Provider)(nil)
	_ registry.ProjectionProvider  = (*Provider)(nil)
)

// Persistence implements registry.PersistenceProvider.
func (p *Provider) Persistence() []metamodel.PersistenceMetadata {
	out := make([]metamodel.PersistenceMetadata, len(p.persistence))
	for i, pm := range p.persistence {
		out[i] = pm.Clone()
	}

	return out
}

// Projections implements registry.ProjectionProvider.
func (p *Provider) Projections() []metamodel.ProjectionMetadata {
	out := make([]metamodel.ProjectionMetadata, len(p.projections))
	for i, pm := range p.projections {
		out[i] = pm.Clone()
	}

	return out
}

// RegistryOptions returns the options that register p with a registry.
func (p *Provider) RegistryOptions() []registry.Option {
	return []registry.Option{
		registry.WithPersistenceProviders(p),
		registry.WithProjectionProviders(p),
	}
}

// Validate checks a document structurally: names, paths, collection kinds,
// method references, reducers and computed field invariants. Cross-type
// checks that need the whole metadata graph are left to the registry.
func Validate(doc *Document) *diagnostic.Diagnostics {
	_, diags := convert(doc)
	return diags
}

// Build converts a document into a Provider. It fails if Validate reports errors.
func Build(doc *Document) (*Provider, error) {
	p, diags := convert(doc)
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid manifest: %w", diags.Error())
	}

	return p, nil
}

// builder converts one document, collecting diagnostics.
type builder struct {
	names *typeNames
	diags *diagnostic.Diagnostics
	seen  map[metamodel.TypeID]struct{}
}

func convert(doc *Document) (*Provider, *diagnostic.Diagnostics) {
	diags := &diagnostic.Diagnostics{}
	if doc == nil {
		diags.AddError("manifest_is_nil", "manifest is nil", "", "")
		return &Provider{}, diags
	}

	b := &builder{
		names: newTypeNames(doc),
		diags: diags,
		seen:  make(map[metamodel.TypeID]struct{}),
	}

	p := &Provider{}

	for _, e := range doc.Entities {
		if pm, ok := b.persistence(e, false); ok {
			p.persistence = append(p.persistence, pm)
		}
	}

	for _, e := range doc.Embeddables {
		if pm, ok := b.persistence(e, true); ok {
			p.persistence = append(p.persistence, pm)
		}
	}

	for i := range doc.Projections {
		if pm, ok := b.projection(&doc.Projections[i]); ok {
			p.projections = append(p.projections, pm)
		}
	}

	return p, diags
}

// declare records t, reporting blank and duplicate type names.
func (b *builder) declare(name string, t metamodel.TypeID) bool {
	if t.IsZero() {
		b.diags.AddError(diagnostic.CodeBlankName, "type name is required", name, "")
		return false
	}

	if _, dup := b.seen[t]; dup {
		b.diags.AddError(diagnostic.CodeDuplicateType, "type declared twice", t.String(), "")
		return false
	}

	b.seen[t] = struct{}{}

	return true
}

func (b *builder) persistence(e EntityDoc, embeddable bool) (metamodel.PersistenceMetadata, bool) {
	t := b.names.qualify(e.Type)
	if !b.declare(e.Type, t) {
		return metamodel.PersistenceMetadata{}, false
	}

	subject := t.String()
	pm := metamodel.PersistenceMetadata{Type: t, Embeddable: embeddable}
	fieldNames := make(map[string]struct{}, len(e.Fields))

	for _, fd := range e.Fields {
		if strings.TrimSpace(fd.Name) == "" {
			b.diags.AddError(diagnostic.CodeBlankName, "field name is required", subject, "")
			continue
		}

		if _, dup := fieldNames[fd.Name]; dup {
			b.diags.AddError(diagnostic.CodeDuplicateField, "field declared twice", subject, fd.Name)
			continue
		}

		fieldNames[fd.Name] = struct{}{}

		f, err := b.field(fd)
		if err != nil {
			b.diags.AddError(diagnostic.CodeInvalidCollection, err.Error(), subject, fd.Name)
			continue
		}

		pm.Fields = append(pm.Fields, f)
	}

	if !e.IDs.IsEmpty() {
		for _, id := range e.IDs {
			if _, ok := fieldNames[id]; !ok {
				b.diags.AddError(diagnostic.CodeIDNotFound,
					fmt.Sprintf("identifier %q is not a declared field", id), subject, id)
			}
		}

		pm.IDFields = append([]string(nil), e.IDs...)
	}

	return pm, true
}

func (b *builder) field(fd FieldDoc) (metamodel.FieldMetadata, error) {
	typeExpr := strings.TrimPrefix(strings.TrimSpace(fd.Type), "*")

	f := metamodel.FieldMetadata{
		Name:       fd.Name,
		Type:       b.names.goType(typeExpr),
		Relation:   fd.Relation,
		Embedded:   fd.Embedded,
		ID:         fd.ID,
		EmbeddedID: fd.EmbeddedID,
	}

	inferred, elem := inferCollection(typeExpr)

	if fd.Collection != "" {
		kind, ok := metamodel.ParseCollectionKind(fd.Collection)
		if !ok {
			return f, fmt.Errorf("unknown collection kind %q", fd.Collection)
		}

		f.Collection = kind
	} else {
		f.Collection = inferred
	}

	if fd.Element != "" {
		elem = fd.Element
	}

	if f.Collection.IsPlural() && elem != "" {
		f.Element = b.names.goType(elem)
	}

	target := f.TargetType()

	switch {
	case b.names.isEntity(target):
		f.Relation = true
	case b.names.isEmbeddable(target) && !f.EmbeddedID:
		f.Embedded = true
	}

	return f, nil
}

func (b *builder) projection(pd *ProjectionDoc) (metamodel.ProjectionMetadata, bool) {
	t := b.names.qualify(pd.Type)
	if !b.declare(pd.Type, t) {
		return metamodel.ProjectionMetadata{}, false
	}

	subject := t.String()
	pm := metamodel.ProjectionMetadata{Projection: t, Entity: b.names.qualify(pd.Entity)}

	switch {
	case pm.Entity.IsZero():
		b.diags.AddError(diagnostic.CodeEntityNotFound, "projection entity is required", subject, "")
	case !b.names.isManaged(pm.Entity):
		b.diags.AddInfo(diagnostic.CodeEntityNotFound,
			fmt.Sprintf("entity %s is not declared in this manifest", pm.Entity), subject, "")
	}

	dtoNames := make(map[string]struct{})

	for _, md := range pd.DirectFields() {
		if strings.TrimSpace(md.DTO) == "" {
			b.diags.AddError(diagnostic.CodeBlankName, "dto field name is required", subject, "")
			continue
		}

		if _, dup := dtoNames[md.DTO]; dup {
			b.diags.AddError(diagnostic.CodeDuplicateField, "field declared twice", subject, md.DTO)
			continue
		}

		dtoNames[md.DTO] = struct{}{}

		path := md.EntityPath()
		if err := metamodel.ValidatePath(path); err != nil {
			b.diags.AddError(diagnostic.CodeInvalidPath, err.Error(), subject, md.DTO)
			continue
		}

		dm := metamodel.DirectMapping{
			DTOField:    md.DTO,
			EntityField: path,
			Nested:      b.names.qualify(md.Projection),
		}

		if md.Collection != "" {
			kind, ok := metamodel.ParseCollectionKind(md.Collection)
			if !ok {
				b.diags.AddError(diagnostic.CodeInvalidCollection,
					fmt.Sprintf("unknown collection kind %q", md.Collection), subject, md.DTO)
				continue
			}

			dm.Collection = kind
		}

		pm.Fields = append(pm.Fields, dm)
	}

	for _, cd := range pd.Computed {
		if _, dup := dtoNames[cd.Field]; dup && cd.Field != "" {
			b.diags.AddError(diagnostic.CodeComputedShadowsField,
				"computed field has the same name as another field", subject, cd.Field)
			continue
		}

		dtoNames[cd.Field] = struct{}{}

		cf, err := b.computed(cd)
		if err != nil {
			code := diagnostic.CodeInvalidComputed
			if errors.Is(err, errInvalidMethod) {
				code = diagnostic.CodeInvalidMethod
			}

			b.diags.AddError(code, err.Error(), subject, cd.Field)

			continue
		}

		pm.Computed = append(pm.Computed, cf)
	}

	return pm, true
}

var errInvalidMethod = errors.New("invalid method reference")

func (b *builder) computed(cd ComputedDoc) (metamodel.ComputedField, error) {
	for _, dep := range cd.Dependencies {
		if err := metamodel.ValidatePath(dep.Path); err != nil {
			return metamodel.ComputedField{}, fmt.Errorf("dependency: %w", err)
		}
	}

	var reducers []metamodel.ReducerMapping

	for i, dep := range cd.Dependencies {
		if dep.Reducer == "" {
			continue
		}

		rm, err := metamodel.NewReducerMapping(i, metamodel.ParseReducer(dep.Reducer))
		if err != nil {
			return metamodel.ComputedField{}, err
		}

		reducers = append(reducers, rm)
	}

	for _, rd := range cd.Reducers {
		rm, err := metamodel.NewReducerMapping(rd.Index, metamodel.ParseReducer(rd.Reducer))
		if err != nil {
			return metamodel.ComputedField{}, err
		}

		reducers = append(reducers, rm)
	}

	var computedBy, transformer *metamodel.MethodReference

	if cd.Compute != "" {
		ref, err := b.names.method(cd.Compute)
		if err != nil {
			return metamodel.ComputedField{}, fmt.Errorf("%w: compute: %w", errInvalidMethod, err)
		}

		computedBy = &ref
	}

	if cd.Then != "" {
		ref, err := b.names.method(cd.Then)
		if err != nil {
			return metamodel.ComputedField{}, fmt.Errorf("%w: then: %w", errInvalidMethod, err)
		}

		transformer = &ref
	}

	pipeline, err := metamodel.NewPipeline(computedBy, transformer)
	if err != nil {
		return metamodel.ComputedField{}, err
	}

	return metamodel.NewComputedField(cd.Field, cd.Dependencies.Paths(), reducers, pipeline)
}
