package analyze

import (
	"fmt"
	"strings"

	"projmeta/internal/common"
	"projmeta/internal/diagnostic"
	"projmeta/internal/manifest"
	"projmeta/metamodel"
)

// Marker kinds.
const (
	MarkerEntity     = "entity"
	MarkerEmbeddable = "embeddable"
	MarkerProjection = "projection"
)

// Entity field options of the meta tag.
const (
	metaSkip       = "-"
	metaID         = "id"
	metaEmbeddedID = "embeddedId"
	metaEmbedded   = "embedded"
	metaRelation   = "relation"
)

type marked struct {
	info   *TypeInfo
	kind   string
	entity TypeID // projections only
}

// extractor turns marked types of a graph into one manifest document.
type extractor struct {
	graph       *TypeGraph
	stringer    *TypeStringer
	diags       *diagnostic.Diagnostics
	types       []marked
	projections map[TypeID]struct{}
}

// Scan loads the packages matching patterns and extracts their metadata.
// Types of the first package are written by bare name.
func Scan(dir string, patterns ...string) (*manifest.Document, error) {
	a := NewAnalyzer()
	a.Dir = dir

	graph, err := a.LoadPackages(patterns...)
	if err != nil {
		return nil, err
	}

	doc, diags := Extract(graph, graph.Roots...)
	if diags.HasErrors() {
		return nil, fmt.Errorf("scan: %w", diags.Error())
	}

	return doc, nil
}

// Extract builds a manifest document from the marked types of the given
// packages. The document package is the first path.
func Extract(graph *TypeGraph, pkgPaths ...string) (*manifest.Document, *diagnostic.Diagnostics) {
	doc := &manifest.Document{Version: manifest.CurrentVersion}
	diags := &diagnostic.Diagnostics{}

	if len(pkgPaths) == 0 {
		return doc, diags
	}

	doc.Package = pkgPaths[0]

	x := &extractor{
		graph:       graph,
		stringer:    NewTypeStringer(doc.Package),
		diags:       diags,
		projections: make(map[TypeID]struct{}),
	}

	for _, path := range pkgPaths {
		pkg, ok := graph.Packages[path]
		if !ok {
			diags.AddError(diagnostic.CodeInvalidType, "package is not loaded", path, "")
			continue
		}

		for _, id := range pkg.Types {
			x.collect(graph.GetType(id))
		}
	}

	for _, m := range x.types {
		switch m.kind {
		case MarkerEntity:
			doc.Entities = append(doc.Entities, x.entity(m.info))
		case MarkerEmbeddable:
			doc.Embeddables = append(doc.Embeddables, x.entity(m.info))
		case MarkerProjection:
			doc.Projections = append(doc.Projections, x.projection(m))
		}
	}

	return doc, diags
}

// collect records a marked type.
func (x *extractor) collect(info *TypeInfo) {
	if info == nil || len(info.Directives) == 0 {
		return
	}

	subject := info.ID.String()

	if common.IsMultiple(info.Directives) {
		x.diags.AddError(diagnostic.CodeInvalidTag,
			fmt.Sprintf("conflicting markers %s", strings.Join(info.Directives, ", ")), subject, "")

		return
	}

	d := parseDirective(info.Directives[0])
	m := marked{info: info, kind: d.kind}

	switch d.kind {
	case MarkerEntity, MarkerEmbeddable:
	case MarkerProjection:
		name := d.args[MarkerEntity]
		if name == "" {
			x.diags.AddError(diagnostic.CodeEntityNotFound,
				"projection marker needs entity=Name", subject, "")

			return
		}

		if strings.Contains(name, ".") {
			m.entity = metamodel.ParseTypeID(name)
		} else {
			m.entity = TypeID{PkgPath: info.ID.PkgPath, Name: name}
		}

		x.projections[info.ID] = struct{}{}
	default:
		x.diags.AddError(diagnostic.CodeInvalidTag,
			fmt.Sprintf("unknown marker %q", d.kind), subject, "")

		return
	}

	if info.Kind != TypeKindStruct {
		x.diags.AddError(diagnostic.CodeInvalidType,
			fmt.Sprintf("%s marker on a %s type", d.kind, info.Kind), subject, "")

		return
	}

	x.types = append(x.types, m)
}

func (x *extractor) entity(info *TypeInfo) manifest.EntityDoc {
	subject := info.ID.String()
	ed := manifest.EntityDoc{Type: x.stringer.TypeName(info.ID)}

	for i := range info.Fields {
		f := &info.Fields[i]
		fd := manifest.FieldDoc{
			Name:       f.MetaName(),
			Type:       x.stringer.TypeString(f.Type),
			Collection: f.GetTag("collection"),
		}

		skip := false

		for _, opt := range tagOptions(f.GetTag("meta")) {
			switch opt {
			case metaSkip:
				skip = true
			case metaID:
				fd.ID = true
			case metaEmbeddedID:
				fd.EmbeddedID = true
			case metaEmbedded:
				fd.Embedded = true
			case metaRelation:
				fd.Relation = true
			default:
				x.diags.AddError(diagnostic.CodeInvalidTag,
					fmt.Sprintf("unknown meta option %q", opt), subject, fd.Name)
			}
		}

		if skip {
			continue
		}

		if fd.ID || fd.EmbeddedID {
			ed.IDs = append(ed.IDs, fd.Name)
		}

		ed.Fields = append(ed.Fields, fd)
	}

	return ed
}

func (x *extractor) projection(m marked) manifest.ProjectionDoc {
	subject := m.info.ID.String()
	pd := manifest.ProjectionDoc{
		Type:   x.stringer.TypeName(m.info.ID),
		Entity: x.stringer.TypeName(m.entity),
	}

	for i := range m.info.Fields {
		f := &m.info.Fields[i]
		dto := f.MetaName()
		path := f.GetTag("map")

		if path == "-" {
			continue
		}

		if deps := f.GetTag("computed"); deps != "" {
			cd, err := computedDoc(dto, deps)
			if err != nil {
				x.diags.AddError(diagnostic.CodeInvalidTag, err.Error(), subject, dto)
				continue
			}

			cd.Compute = x.methodRef(f.GetTag("compute"), m.info.ID.PkgPath)
			cd.Then = x.methodRef(f.GetTag("then"), m.info.ID.PkgPath)
			pd.Computed = append(pd.Computed, cd)

			continue
		}

		if f.HasTag("compute") || f.HasTag("then") {
			x.diags.AddError(diagnostic.CodeInvalidTag,
				"compute and then tags need a computed tag", subject, dto)

			continue
		}

		if path == "" {
			path = dto
		}

		md := manifest.MappingDoc{DTO: dto, Entity: path, Collection: f.GetTag("collection")}

		elem, kind := f.Type.Elem()
		if md.Collection == "" && kind.IsPlural() {
			md.Collection = kind.String()
		}

		if elem != nil && elem.IsNamed() {
			if _, ok := x.projections[elem.ID]; ok {
				md.Projection = x.stringer.TypeName(elem.ID)
			}
		}

		pd.Fields = append(pd.Fields, md)
	}

	return pd
}

// methodRef spells an "Owner#Method" tag for the document. A bare owner
// belongs to the package declaring the tagged field.
func (x *extractor) methodRef(tag, pkg string) string {
	owner, method, found := strings.Cut(strings.TrimSpace(tag), "#")
	if !found || strings.Contains(owner, ".") {
		return tag
	}

	return x.stringer.TypeName(TypeID{PkgPath: pkg, Name: strings.TrimSpace(owner)}) + "#" + method
}

// computedDoc parses a computed tag: comma-separated dependency paths, each
// with an optional ":REDUCER" suffix.
func computedDoc(dto, tag string) (manifest.ComputedDoc, error) {
	cd := manifest.ComputedDoc{Field: dto}

	for _, opt := range tagOptions(tag) {
		path, reducer, _ := strings.Cut(opt, ":")
		path, reducer = strings.TrimSpace(path), strings.TrimSpace(reducer)

		if err := metamodel.ValidatePath(path); err != nil {
			return cd, fmt.Errorf("computed tag: %w", err)
		}

		cd.Dependencies = append(cd.Dependencies, manifest.Dependency{Path: path, Reducer: reducer})
	}

	if len(cd.Dependencies) == 0 {
		return cd, fmt.Errorf("computed tag %q has no dependencies", tag)
	}

	return cd, nil
}
