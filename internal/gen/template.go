package gen

import (
	"strconv"
	"strings"
	"text/template"

	"projmeta/metamodel"
)

var collectionIdents = map[metamodel.CollectionKind]string{
	metamodel.CollectionScalar:  "CollectionScalar",
	metamodel.CollectionList:    "CollectionList",
	metamodel.CollectionSet:     "CollectionSet",
	metamodel.CollectionMap:     "CollectionMap",
	metamodel.CollectionGeneric: "CollectionGeneric",
	metamodel.CollectionArray:   "CollectionArray",
	metamodel.CollectionUnknown: "CollectionUnknown",
}

var reducerIdents = map[metamodel.Reducer]string{
	metamodel.ReducerSum:           "ReducerSum",
	metamodel.ReducerAvg:           "ReducerAvg",
	metamodel.ReducerCount:         "ReducerCount",
	metamodel.ReducerCountDistinct: "ReducerCountDistinct",
	metamodel.ReducerMin:           "ReducerMin",
	metamodel.ReducerMax:           "ReducerMax",
}

// typeIDExpr renders a TypeID literal.
func typeIDExpr(t metamodel.TypeID) string {
	if t.PkgPath == "" {
		return "metamodel.TypeID{Name: " + strconv.Quote(t.Name) + "}"
	}

	return "metamodel.TypeID{PkgPath: " + strconv.Quote(t.PkgPath) + ", Name: " + strconv.Quote(t.Name) + "}"
}

// fieldExpr renders a FieldMetadata literal, omitting zero values.
func fieldExpr(f metamodel.FieldMetadata) string {
	parts := []string{"Name: " + strconv.Quote(f.Name)}

	if !f.Type.IsZero() {
		parts = append(parts, "Type: "+typeIDExpr(f.Type))
	}

	if f.Collection != metamodel.CollectionScalar {
		parts = append(parts, "Collection: metamodel."+collectionIdents[f.Collection])
	}

	if !f.Element.IsZero() {
		parts = append(parts, "Element: "+typeIDExpr(f.Element))
	}

	for _, flag := range []struct {
		name string
		set  bool
	}{
		{"Relation", f.Relation},
		{"Embedded", f.Embedded},
		{"ID", f.ID},
		{"EmbeddedID", f.EmbeddedID},
	} {
		if flag.set {
			parts = append(parts, flag.name+": true")
		}
	}

	return "{" + strings.Join(parts, ", ") + "}"
}

// mappingExpr renders a DirectMapping literal.
func mappingExpr(d metamodel.DirectMapping) string {
	parts := []string{
		"DTOField: " + strconv.Quote(d.DTOField),
		"EntityField: " + strconv.Quote(d.EntityField),
	}

	if d.IsNested() {
		parts = append(parts, "Nested: "+typeIDExpr(d.Nested))
	}

	if d.Collection != metamodel.CollectionScalar {
		parts = append(parts, "Collection: metamodel."+collectionIdents[d.Collection])
	}

	return "{" + strings.Join(parts, ", ") + "}"
}

func methodExpr(ref metamodel.MethodReference) string {
	return "metamodel.MustMethodReference(" + typeIDExpr(ref.Owner()) + ", " + strconv.Quote(ref.Method()) + ")"
}

func pipelineExpr(p metamodel.Pipeline) string {
	computedBy, hasCompute := p.ComputedBy()
	transformer, hasTransform := p.Transformer()

	switch {
	case hasCompute && hasTransform:
		return "metamodel.ComputeThenTransform(" + methodExpr(computedBy) + ", " + methodExpr(transformer) + ")"
	case hasCompute:
		return "metamodel.ComputeOnly(" + methodExpr(computedBy) + ")"
	case hasTransform:
		return "metamodel.TransformOnly(" + methodExpr(transformer) + ")"
	default:
		return "metamodel.NoPipeline()"
	}
}

func reducerExpr(r metamodel.Reducer) string {
	if ident, ok := reducerIdents[r]; ok {
		return "metamodel." + ident
	}

	return "metamodel.Reducer(" + strconv.Quote(string(r)) + ")"
}

// computedExpr renders a MustComputedField call.
func computedExpr(c metamodel.ComputedField) string {
	deps := c.Dependencies()
	quoted := make([]string, len(deps))

	for i, dep := range deps {
		quoted[i] = strconv.Quote(dep)
	}

	reducers := "nil"

	if rms := c.Reducers(); len(rms) > 0 {
		items := make([]string, len(rms))
		for i, rm := range rms {
			items[i] = "metamodel.MustReducerMapping(" + strconv.Itoa(rm.DependencyIndex) + ", " + reducerExpr(rm.Reducer) + ")"
		}

		reducers = "[]metamodel.ReducerMapping{" + strings.Join(items, ", ") + "}"
	}

	return "metamodel.MustComputedField(" + strconv.Quote(c.DTOField()) +
		", []string{" + strings.Join(quoted, ", ") + "}, " +
		reducers + ", " + pipelineExpr(c.Pipeline()) + ")"
}

func quoteList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = strconv.Quote(s)
	}

	return "[]string{" + strings.Join(quoted, ", ") + "}"
}

var templateFuncs = template.FuncMap{
	"typeID":    typeIDExpr,
	"field":     fieldExpr,
	"mapping":   mappingExpr,
	"computed":  computedExpr,
	"quoteList": quoteList,
}

var providerTemplate = template.Must(template.New("providers").Funcs(templateFuncs).Parse(`// Code generated by projmeta. DO NOT EDIT.
{{- if .Source}}
// Source package: {{.Source}}
{{- end}}

package {{.PackageName}}

import (
{{- range .Imports}}
	"{{.}}"
{{- end}}
)

var projmetaPersistence = registry.PersistenceProviderFunc(func() []metamodel.PersistenceMetadata {
	return []metamodel.PersistenceMetadata{
{{- range .Persistence}}
{{- if $.Comments}}
		// {{.Type}}
{{- end}}
		{
			Type: {{typeID .Type}},
{{- if .Embeddable}}
			Embeddable: true,
{{- end}}
{{- if .Fields}}
			Fields: []metamodel.FieldMetadata{
{{- range .Fields}}
				{{field .}},
{{- end}}
			},
{{- end}}
{{- if .IDFields}}
			IDFields: {{quoteList .IDFields}},
{{- end}}
		},
{{- end}}
	}
})

var projmetaProjections = registry.ProjectionProviderFunc(func() []metamodel.ProjectionMetadata {
	return []metamodel.ProjectionMetadata{
{{- range .Projections}}
{{- if $.Comments}}
		// {{.Projection}} projects {{.Entity}}
{{- end}}
		{
			Projection: {{typeID .Projection}},
			Entity: {{typeID .Entity}},
{{- if .Fields}}
			Fields: []metamodel.DirectMapping{
{{- range .Fields}}
				{{mapping .}},
{{- end}}
			},
{{- end}}
{{- if .Computed}}
			Computed: []metamodel.ComputedField{
{{- range .Computed}}
				{{computed .}},
{{- end}}
			},
{{- end}}
		},
{{- end}}
	}
})

func init() {
	registry.RegisterPersistenceProvider(projmetaPersistence)
	registry.RegisterProjectionProvider(projmetaProjections)
}
`))
