package analyze

import (
	"path/filepath"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"projmeta/internal/diagnostic"
	"projmeta/internal/manifest"
	"projmeta/metamodel"
	"projmeta/registry"
)

const (
	warehousePkg = "projmeta/examples/warehouse"
	viewsPkg     = "projmeta/examples/warehouse/views"
)

func warehouse(name string) metamodel.TypeID {
	return metamodel.TypeID{PkgPath: warehousePkg, Name: name}
}

func view(name string) metamodel.TypeID {
	return metamodel.TypeID{PkgPath: viewsPkg, Name: name}
}

// extractWarehouse scans the views with the entities they project.
func extractWarehouse(t *testing.T) *manifest.Document {
	t.Helper()

	graph, err := NewAnalyzer().LoadPackages(viewsPkg, warehousePkg)
	require.NoError(t, err)

	doc, diags := Extract(graph, viewsPkg, warehousePkg)
	require.True(t, diags.IsValid(), spew.Sdump(diags.All()))

	return doc
}

func TestExtract_CrossPackage(t *testing.T) {
	doc := extractWarehouse(t)

	assert.Equal(t, viewsPkg, doc.Package)

	var projections []string
	for _, p := range doc.Projections {
		projections = append(projections, p.Type)
	}

	assert.Equal(t, []string{"AddressLine", "CustomerCard", "OrderRow", "ProductTile"}, projections)
	require.Len(t, doc.Embeddables, 1)
	assert.Equal(t, warehousePkg+".Address", doc.Embeddables[0].Type)

	card := doc.Projections[1]
	assert.Equal(t, warehousePkg+".Customer", card.Entity)
	assert.Equal(t, []manifest.MappingDoc{
		{DTO: "id", Entity: "id"},
		{DTO: "email", Entity: "email"},
		{DTO: "addresses", Entity: "addresses", Projection: "AddressLine", Collection: "list"},
	}, card.Fields)

	require.Len(t, card.Computed, 3)
	assert.Equal(t, "Convert#ConcatNames", card.Computed[0].Compute, "owner is spelled relative to the document")

	for _, e := range doc.Entities {
		if e.Type != warehousePkg+".Customer" {
			continue
		}

		for _, f := range e.Fields {
			assert.NotEqual(t, "password_hash", f.Name)
		}

		assert.Contains(t, e.Fields, manifest.FieldDoc{Name: "orders", Type: "[]" + warehousePkg + ".Order"})
	}
}

func TestExtract_CrossPackageRegistry(t *testing.T) {
	provider, err := manifest.Build(extractWarehouse(t))
	require.NoError(t, err)

	r := registry.New(append(provider.RegistryOptions(), registry.WithStrict(true))...)
	require.NoError(t, r.Init(), spew.Sdump(r.Diagnostics().All()))

	required, err := r.RequiredFields(view("CustomerCard"))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"id",
		"email",
		"addresses.city",
		"addresses.postal_code",
		"addresses.country",
		"first_name",
		"last_name",
		"orders.items.unit_price",
		"orders.placed_at",
	}, required)

	src, err := r.ResolvePath(view("OrderRow"), "ship_to.zip")
	require.NoError(t, err)
	assert.Equal(t, "shipping_address.postal_code", src)

	src, err = r.ResolvePath(view("CustomerCard"), "lifetime_cents")
	require.NoError(t, err)
	assert.Equal(t, "orders.items.unit_price", src)

	ids, err := r.IDFields(warehouse("Order"))
	require.NoError(t, err)
	assert.Equal(t, []string{"id"}, ids)

	sku, err := r.AttributeType(warehouse("Customer"), "orders.items.product.sku")
	require.NoError(t, err)
	assert.Equal(t, metamodel.TypeID{Name: "string"}, sku)

	dims, err := r.Field(warehouse("Product"), "dimensions")
	require.NoError(t, err)
	assert.Equal(t, metamodel.CollectionArray, dims.Collection)
	assert.Equal(t, metamodel.TypeID{Name: "float64"}, dims.Element)

	tile, err := r.Projection(view("ProductTile"))
	require.NoError(t, err)

	attrs, ok := tile.Field("attributes", false)
	require.True(t, ok)
	assert.Equal(t, metamodel.CollectionMap, attrs.Collection)

	name, err := r.ComputedField(view("CustomerCard"), "full_name")
	require.NoError(t, err)

	computedBy, ok := name.ComputedBy()
	require.True(t, ok)
	assert.Equal(t, view("Convert"), computedBy.Owner())
}

func TestExtract_CrossPackageJSONRoundTrip(t *testing.T) {
	doc := extractWarehouse(t)

	path := filepath.Join(t.TempDir(), "warehouse.json")
	require.NoError(t, manifest.WriteFile(doc, path))

	loaded, err := manifest.LoadFile(path)
	require.NoError(t, err)

	want, err := manifest.Build(doc)
	require.NoError(t, err)

	got, err := manifest.Build(loaded)
	require.NoError(t, err)

	assert.Equal(t, want.Persistence(), got.Persistence())
	assert.Equal(t, want.Projections(), got.Projections())
}

func TestScan_ProjectionsOnly(t *testing.T) {
	doc, err := Scan("", viewsPkg)
	require.NoError(t, err)

	assert.Empty(t, doc.Entities, "entities of other packages are referenced, not extracted")
	require.Len(t, doc.Projections, 4)

	diags := manifest.Validate(doc)
	assert.True(t, diags.IsValid(), spew.Sdump(diags.All()))
	assert.True(t, diags.HasCode(diagnostic.CodeEntityNotFound), "foreign entities are reported as info")
}
