package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromMetadata_RoundTrip(t *testing.T) {
	p := loadShop(t)

	for _, pkg := range []string{shopPkg, ""} {
		t.Run("pkg="+pkg, func(t *testing.T) {
			doc := FromMetadata(pkg, p.Persistence(), p.Projections())

			data, err := Marshal(doc)
			require.NoError(t, err)

			parsed, err := Parse(data)
			require.NoError(t, err)

			again, err := Build(parsed)
			require.NoError(t, err)

			assert.Equal(t, p.Persistence(), again.Persistence())
			assert.Equal(t, p.Projections(), again.Projections())
		})
	}
}

func TestFromMetadata_Shape(t *testing.T) {
	doc := FromMetadata(shopPkg, loadShop(t).Persistence(), loadShop(t).Projections())

	assert.Equal(t, CurrentVersion, doc.Version)
	assert.Len(t, doc.Entities, 4)
	assert.Len(t, doc.Embeddables, 2)

	cv := doc.Projections[1]
	assert.Equal(t, "CustomerView", cv.Type)
	assert.Equal(t, FieldMap{{DTO: "customerEmail", Path: "email"}, {DTO: "city", Path: "address.city"}}, cv.Map)
	require.Len(t, cv.Fields, 1)
	assert.Equal(t, MappingDoc{DTO: "address", Entity: "address", Projection: "AddressView"}, cv.Fields[0])

	require.Len(t, cv.Computed, 3)
	assert.Equal(t, "Names#FullName", cv.Computed[0].Compute)
	assert.Equal(t, "Names#Upper", cv.Computed[0].Then)
	assert.Equal(t, DependencyList{{Path: "orders.key.orderNo", Reducer: "COUNT_DISTINCT"}}, cv.Computed[2].Dependencies,
		"reducers are written inline")

	orders := doc.Entities[0].Fields[5]
	assert.Equal(t, "orders", orders.Name)
	assert.Equal(t, "list", orders.Collection)
	assert.Equal(t, "Order", orders.Element)
	assert.True(t, orders.Relation)
}
