package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"projmeta/metamodel"
)

func TestRegistry_Kinds(t *testing.T) {
	r := newShopRegistry()

	assert.True(t, r.IsEntity(userType))
	assert.False(t, r.IsEmbeddable(userType))
	assert.True(t, r.IsEmbeddable(addressType))
	assert.False(t, r.IsEntity(addressType))
	assert.True(t, r.IsProjection(userViewType))
	assert.False(t, r.IsProjection(userType))
	assert.False(t, r.IsEntity(shopType("Ghost")))

	assert.Equal(t, []metamodel.TypeID{departmentType, orderType, userType}, r.Entities())
	assert.Equal(t, []metamodel.TypeID{addressType, orderKeyType}, r.Embeddables())
	assert.Equal(t, []metamodel.TypeID{addressViewType, contactViewType, userViewType}, r.Projections())
}

func TestRegistry_MetadataCopies(t *testing.T) {
	r := newShopRegistry()

	pm, err := r.Projection(userViewType)
	require.NoError(t, err)
	pm.Fields[0].EntityField = "mutated"

	again, err := r.Projection(userViewType)
	require.NoError(t, err)
	assert.Equal(t, "email", again.Fields[0].EntityField)

	fields, err := r.Fields(userType)
	require.NoError(t, err)
	fields[0].Name = "mutated"

	f, err := r.Field(userType, "id")
	require.NoError(t, err)
	assert.True(t, f.ID)
}

func TestRegistry_NotRegistered(t *testing.T) {
	r := newShopRegistry()
	ghost := shopType("Ghost")

	_, err := r.Entity(ghost)
	require.ErrorIs(t, err, metamodel.ErrNotRegistered)

	_, err = r.Projection(userType)
	require.ErrorIs(t, err, metamodel.ErrNotRegistered)

	_, err = r.Fields(userViewType)
	require.ErrorIs(t, err, metamodel.ErrNotRegistered)

	_, err = r.IDFields(ghost)
	require.ErrorIs(t, err, metamodel.ErrNotRegistered)

	_, err = r.AttributeType(ghost, "id")
	require.ErrorIs(t, err, metamodel.ErrNotRegistered)
}

func TestRegistry_Field(t *testing.T) {
	r := newShopRegistry()

	f, err := r.Field(userType, "orders")
	require.NoError(t, err)
	assert.Equal(t, metamodel.CollectionList, f.Collection)
	assert.Equal(t, orderType, f.TargetType())

	_, err = r.Field(userType, "emal")
	require.ErrorIs(t, err, metamodel.ErrFieldNotFound)
	assert.Contains(t, err.Error(), "did you mean email?")
}

func TestRegistry_IDFields(t *testing.T) {
	r := newShopRegistry()

	ids, err := r.IDFields(userType)
	require.NoError(t, err)
	assert.Equal(t, []string{"id"}, ids)

	ids, err = r.IDFields(orderType)
	require.NoError(t, err)
	assert.Equal(t, []string{"id.orderNo", "id.region"}, ids)

	ids, err = r.IDFields(addressType)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestRegistry_IDFieldsFromFlags(t *testing.T) {
	r := New(WithPersistenceProviders(PersistenceProviderFunc(func() []metamodel.PersistenceMetadata {
		return []metamodel.PersistenceMetadata{{
			Type: shopType("Tag"),
			Fields: []metamodel.FieldMetadata{
				{Name: "label", Type: goType("string")},
				{Name: "code", Type: goType("string"), ID: true},
			},
		}}
	})))

	ids, err := r.IDFields(shopType("Tag"))
	require.NoError(t, err)
	assert.Equal(t, []string{"code"}, ids)
}

func TestRegistry_AttributeType(t *testing.T) {
	r := newShopRegistry()

	tests := []struct {
		path string
		want metamodel.TypeID
	}{
		{"email", goType("string")},
		{"address", addressType},
		{"address.city", goType("string")},
		{"department.manager.email", goType("string")},
		{"orders", goType("[]" + orderType.String())},
		{"orders.amount", goType("float64")},
		{"orders.id.region", goType("string")},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := r.AttributeType(userType, tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := r.AttributeType(userType, "email.domain")
	require.ErrorIs(t, err, metamodel.ErrInvalidPath)

	_, err = r.AttributeType(userType, "address.zip")
	require.ErrorIs(t, err, metamodel.ErrFieldNotFound)

	_, err = r.AttributeType(userType, "tags.length")
	require.ErrorIs(t, err, metamodel.ErrInvalidPath)
}
