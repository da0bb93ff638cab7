package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"projmeta/metamodel"
)

func TestRequiredFields_DirectAndComputed(t *testing.T) {
	r := newShopRegistry()

	got, err := r.RequiredFields(contactViewType)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"email", "firstName", "lastName"}, got)
}

func TestRequiredFields_NestedProjectionAndOrder(t *testing.T) {
	r := newShopRegistry()

	got, err := r.RequiredFields(userViewType)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"email",
		"address.city",
		"address.street",
		"department.manager.address.city",
		"firstName",
		"lastName",
		"orders.amount",
		"orders.id",
	}, got)
}

func TestRequiredFields_IdentityProjectionForEntities(t *testing.T) {
	r := newShopRegistry()

	got, err := r.RequiredFields(addressType)
	require.NoError(t, err)
	assert.Equal(t, []string{"street", "city", "country"}, got)

	got, err = r.RequiredFields(departmentType)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name", "manager"}, got)
}

func TestRequiredFields_Unregistered(t *testing.T) {
	r := newShopRegistry()

	_, err := r.RequiredFields(shopType("Ghost"))
	require.ErrorIs(t, err, metamodel.ErrNotRegistered)
}

func TestRequiredFields_MemoisedCopies(t *testing.T) {
	r := newShopRegistry()

	first, err := r.RequiredFields(contactViewType)
	require.NoError(t, err)

	first[0] = "mutated"

	second, err := r.RequiredFields(contactViewType)
	require.NoError(t, err)
	assert.Equal(t, "email", second[0])

	_, cached := r.required.Load(contactViewType)
	assert.True(t, cached)
}

func TestRequiredFields_MissingNestedProjection(t *testing.T) {
	view := metamodel.ProjectionMetadata{
		Projection: shopType("OrphanView"),
		Entity:     userType,
		Fields: []metamodel.DirectMapping{
			{DTOField: "address", EntityField: "address", Nested: shopType("GhostView")},
		},
	}

	r := newShopRegistry(WithProjectionProviders(ProjectionProviderFunc(func() []metamodel.ProjectionMetadata {
		return []metamodel.ProjectionMetadata{view}
	})))

	_, err := r.RequiredFields(view.Projection)
	require.ErrorIs(t, err, metamodel.ErrNotRegistered)
	assert.Contains(t, err.Error(), "OrphanView.address")
}

func TestComputedFields(t *testing.T) {
	r := newShopRegistry()

	fields, err := r.ComputedFields(userViewType)
	require.NoError(t, err)
	require.Len(t, fields, 3)

	assert.Equal(t, "fullName", fields[0].DTOField())
	assert.False(t, fields[0].HasReducers())

	by, ok := fields[0].ComputedBy()
	require.True(t, ok)
	assert.Equal(t, fullNameRef, by)

	stats := fields[2]
	assert.Equal(t, map[int]metamodel.Reducer{
		0: metamodel.ReducerAvg,
		1: metamodel.ReducerCountDistinct,
	}, stats.ReducerMap())

	one, err := r.ComputedField(userViewType, "totalSpent")
	require.NoError(t, err)
	assert.Equal(t, []string{"orders.amount"}, one.Dependencies())

	_, err = r.ComputedField(userViewType, "totalSpnt")
	require.ErrorIs(t, err, metamodel.ErrFieldNotFound)
	assert.Contains(t, err.Error(), "did you mean totalSpent?")

	_, err = r.ComputedFields(userType)
	require.ErrorIs(t, err, metamodel.ErrNotRegistered)
}

func TestRequiredFields_DependencyThroughNestedProjection(t *testing.T) {
	r := newCityRegistry()

	got, err := r.RequiredFields(cityViewType)
	require.NoError(t, err)
	assert.Equal(t, []string{"address.city", "address.street", "address.country"}, got)

	resolved, err := r.ResolvePath(cityViewType, "cityName")
	require.NoError(t, err)
	assert.Contains(t, got, resolved)
}

func TestRequiredFields_AreEntityPaths(t *testing.T) {
	r := newCityRegistry()

	for _, typ := range r.Projections() {
		pm, err := r.Projection(typ)
		require.NoError(t, err)

		required, err := r.RequiredFields(typ)
		require.NoError(t, err)

		for _, path := range required {
			_, err := r.AttributeType(pm.Entity, path)
			assert.NoError(t, err, "%s requires %q", typ.Name, path)
		}
	}
}
