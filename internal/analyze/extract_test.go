package analyze

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"projmeta/internal/diagnostic"
	"projmeta/internal/manifest"
)

func TestExtract_Shop(t *testing.T) {
	doc, diags := Extract(loadShop(t), shopPkg)
	require.True(t, diags.IsValid(), spew.Sdump(diags.All()))

	assert.Equal(t, shopPkg, doc.Package)

	var entities []string
	for _, e := range doc.Entities {
		entities = append(entities, e.Type)
	}

	assert.Equal(t, []string{"Customer", "Order", "OrderItem", "Product"}, entities)
	require.Len(t, doc.Embeddables, 2)
	require.Len(t, doc.Projections, 3)

	order := doc.Entities[1]
	assert.Equal(t, manifest.StringOrArray{"key"}, order.IDs)
	assert.Equal(t, manifest.FieldDoc{Name: "key", Type: "OrderKey", EmbeddedID: true}, order.Fields[0])
	assert.Equal(t, manifest.FieldDoc{Name: "customer", Type: "*Customer"}, order.Fields[3])

	for _, f := range order.Fields {
		assert.NotEqual(t, "audit", f.Name, "meta:\"-\" is skipped")
	}

	tags := doc.Entities[3].Fields[3]
	assert.Equal(t, manifest.FieldDoc{Name: "tags", Type: "[]string", Collection: "set"}, tags)

	cv := doc.Projections[1]
	assert.Equal(t, "CustomerView", cv.Type)
	assert.Equal(t, "Customer", cv.Entity)
	assert.Equal(t, []manifest.MappingDoc{
		{DTO: "customerEmail", Entity: "email"},
		{DTO: "city", Entity: "address.city"},
		{DTO: "address", Entity: "address", Projection: "AddressView"},
	}, cv.Fields)

	require.Len(t, cv.Computed, 3)
	assert.Equal(t, manifest.ComputedDoc{
		Field:        "fullName",
		Dependencies: manifest.DependencyList{{Path: "firstName"}, {Path: "lastName"}},
		Compute:      "Names#FullName",
		Then:         "Names#Upper",
	}, cv.Computed[0])
	assert.Equal(t, manifest.DependencyList{{Path: "orders.key.orderNo", Reducer: "count_distinct"}},
		cv.Computed[2].Dependencies)

	summary := doc.Projections[2]
	for _, f := range summary.Fields {
		assert.NotEqual(t, "selected", f.DTO, "map:\"-\" is skipped")
	}
}

// The scanned package and the hand-written manifest describe the same model.
func TestExtract_MatchesManifest(t *testing.T) {
	scanned, err := Scan("", shopPkg)
	require.NoError(t, err)

	written, err := manifest.LoadFile("../../examples/shop/shop.yaml")
	require.NoError(t, err)

	want, err := manifest.Build(written)
	require.NoError(t, err)

	got, err := manifest.Build(scanned)
	require.NoError(t, err)

	assert.Equal(t, want.Persistence(), got.Persistence())
	assert.Equal(t, want.Projections(), got.Projections())
}

func structInfo(pkg, name string, directives []string, fields ...FieldInfo) *TypeInfo {
	return &TypeInfo{
		ID:         TypeID{PkgPath: pkg, Name: name},
		Kind:       TypeKindStruct,
		Fields:     fields,
		Directives: directives,
	}
}

func graphOf(pkg string, infos ...*TypeInfo) *TypeGraph {
	g := NewTypeGraph()
	p := &PackageInfo{Path: pkg}

	for _, info := range infos {
		g.Types[info.ID] = info
		p.Types = append(p.Types, info.ID)
	}

	g.Packages[pkg] = p
	g.Roots = []string{pkg}

	return g
}

func TestExtract_Findings(t *testing.T) {
	const pkg = "example.com/model"

	str := &TypeInfo{Kind: TypeKindBasic}

	tests := []struct {
		name      string
		info      *TypeInfo
		wantCode  string
		wantField string
	}{
		{
			name:     "unknown marker",
			info:     structInfo(pkg, "User", []string{"projmeta:table"}),
			wantCode: diagnostic.CodeInvalidTag,
		},
		{
			name:     "conflicting markers",
			info:     structInfo(pkg, "User", []string{"projmeta:entity", "projmeta:embeddable"}),
			wantCode: diagnostic.CodeInvalidTag,
		},
		{
			name:     "projection without entity",
			info:     structInfo(pkg, "UserView", []string{"projmeta:projection"}),
			wantCode: diagnostic.CodeEntityNotFound,
		},
		{
			name: "marker on non-struct",
			info: &TypeInfo{
				ID: TypeID{PkgPath: pkg, Name: "Status"}, Kind: TypeKindAlias,
				Directives: []string{"projmeta:entity"},
			},
			wantCode: diagnostic.CodeInvalidType,
		},
		{
			name: "unknown meta option",
			info: structInfo(pkg, "User", []string{"projmeta:entity"},
				FieldInfo{Name: "Email", Type: str, Tag: `meta:"unique"`}),
			wantCode: diagnostic.CodeInvalidTag, wantField: "email",
		},
		{
			name: "compute without computed",
			info: structInfo(pkg, "UserView", []string{"projmeta:projection entity=User"},
				FieldInfo{Name: "Name", Type: str, Tag: `compute:"Names#Full"`}),
			wantCode: diagnostic.CodeInvalidTag, wantField: "name",
		},
		{
			name: "malformed computed path",
			info: structInfo(pkg, "UserView", []string{"projmeta:projection entity=User"},
				FieldInfo{Name: "Total", Type: str, Tag: `computed:"orders..amount:SUM"`}),
			wantCode: diagnostic.CodeInvalidTag, wantField: "total",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, diags := Extract(graphOf(pkg, tt.info), pkg)

			require.Len(t, diags.Errors, 1, spew.Sdump(diags.All()))
			assert.Equal(t, tt.wantCode, diags.Errors[0].Code)
			assert.Equal(t, tt.wantField, diags.Errors[0].FieldPath)
		})
	}
}

func TestExtract_ForeignEntityAndCollections(t *testing.T) {
	const pkg = "example.com/views"

	tag := structInfo(pkg, "TagView", []string{"projmeta:projection entity=example.com/model.Tag"},
		FieldInfo{Name: "Label", Type: &TypeInfo{Kind: TypeKindBasic}})
	tagID := tag.ID

	view := structInfo(pkg, "UserView", []string{"projmeta:projection entity=example.com/model.User"},
		FieldInfo{
			Name: "Tags",
			Type: &TypeInfo{Kind: TypeKindSlice, ElemType: &TypeInfo{Kind: TypeKindPointer, ElemType: tag}},
		},
		FieldInfo{Name: "Codes", Type: &TypeInfo{Kind: TypeKindSlice, ElemType: &TypeInfo{Kind: TypeKindBasic}}, Tag: `collection:"set"`},
	)

	doc, diags := Extract(graphOf(pkg, tag, view), pkg)
	require.True(t, diags.IsValid(), spew.Sdump(diags.All()))

	require.Len(t, doc.Projections, 2)
	assert.Equal(t, tagID.Name, doc.Projections[0].Type)

	uv := doc.Projections[1]
	assert.Equal(t, "example.com/model.User", uv.Entity)
	assert.Equal(t, []manifest.MappingDoc{
		{DTO: "tags", Entity: "tags", Projection: "TagView", Collection: "list"},
		{DTO: "codes", Entity: "codes", Collection: "set"},
	}, uv.Fields)
}

func TestExtract_MissingPackage(t *testing.T) {
	_, diags := Extract(NewTypeGraph(), "example.com/missing")
	assert.True(t, diags.HasCode(diagnostic.CodeInvalidType))

	doc, diags := Extract(NewTypeGraph())
	assert.True(t, diags.IsValid())
	assert.Empty(t, doc.Package)
}
