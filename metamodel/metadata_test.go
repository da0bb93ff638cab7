package metamodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleUser struct{}

func TestTypeID(t *testing.T) {
	id := ParseTypeID("projmeta/examples/shop.User")
	assert.Equal(t, TypeID{PkgPath: "projmeta/examples/shop", Name: "User"}, id)
	assert.Equal(t, "projmeta/examples/shop.User", id.String())

	assert.Equal(t, TypeID{Name: "User"}, ParseTypeID("User"))
	assert.True(t, TypeID{}.IsZero())
	assert.True(t, TypeID{PkgPath: "a", Name: "Z"}.Less(TypeID{PkgPath: "b", Name: "A"}))
	assert.True(t, TypeID{PkgPath: "a", Name: "A"}.Less(TypeID{PkgPath: "a", Name: "B"}))
}

func TestTypeOf(t *testing.T) {
	want := TypeID{PkgPath: "projmeta/metamodel", Name: "sampleUser"}
	assert.Equal(t, want, TypeOf[sampleUser]())
	assert.Equal(t, want, TypeOf[*sampleUser]())
	assert.Equal(t, TypeID{}, TypeIDOf(nil))
}

func TestPathHelpers(t *testing.T) {
	head, tail := SplitHead("department.manager.address.city")
	assert.Equal(t, "department", head)
	assert.Equal(t, "manager.address.city", tail)

	head, tail = SplitHead("email")
	assert.Equal(t, "email", head)
	assert.Empty(t, tail)

	assert.Equal(t, "address.city", JoinPath("address", "", "city"))
	assert.Equal(t, []string{"a", "b"}, Segments("a.b"))
	assert.Nil(t, Segments(""))
	assert.True(t, IsNestedPath("a.b"))
	assert.False(t, IsNestedPath("a"))
}

func TestValidatePath(t *testing.T) {
	for _, ok := range []string{"email", "address.city", "a_b.c1", "$id"} {
		assert.NoError(t, ValidatePath(ok), ok)
	}

	for _, bad := range []string{"", ".", "a..b", "a.", "1a", "a-b"} {
		err := ValidatePath(bad)
		require.Error(t, err, bad)
		assert.ErrorIs(t, err, ErrInvalidPath)
	}
}

func TestProjectionMetadata_Lookups(t *testing.T) {
	fullName, err := NewDerivedField("fullName", "firstName", "lastName")
	require.NoError(t, err)

	pm := ProjectionMetadata{
		Projection: TypeID{Name: "UserView"},
		Entity:     TypeID{Name: "User"},
		Fields: []DirectMapping{
			{DTOField: "userEmail", EntityField: "email"},
			{DTOField: "address", EntityField: "address", Nested: TypeID{Name: "AddressView"}},
		},
		Computed: []ComputedField{fullName},
	}

	f, ok := pm.Field("userEmail", false)
	require.True(t, ok)
	assert.Equal(t, "email", f.EntityField)
	assert.False(t, f.IsNested())

	_, ok = pm.Field("USEREMAIL", false)
	assert.False(t, ok)

	f, ok = pm.Field("USEREMAIL", true)
	require.True(t, ok)
	assert.Equal(t, "userEmail", f.DTOField)

	nested, ok := pm.Field("address", false)
	require.True(t, ok)
	assert.True(t, nested.IsNested())

	c, ok := pm.ComputedField("FULLNAME", true)
	require.True(t, ok)
	assert.Equal(t, "fullName", c.DTOField())

	_, ok = pm.ComputedField("FULLNAME", false)
	assert.False(t, ok)

	assert.Equal(t, []string{"userEmail", "address", "fullName"}, pm.FieldNames())

	clone := pm.Clone()
	clone.Fields[0].EntityField = "changed"
	assert.Equal(t, "email", pm.Fields[0].EntityField)
}

func TestPersistenceMetadata_Lookups(t *testing.T) {
	pm := PersistenceMetadata{
		Type: TypeID{Name: "User"},
		Fields: []FieldMetadata{
			{Name: "id", Type: TypeID{Name: "int64"}, ID: true},
			{Name: "orders", Type: TypeID{Name: "[]Order"}, Collection: CollectionList, Element: TypeID{Name: "Order"}, Relation: true},
		},
		IDFields: []string{"id"},
	}

	f, ok := pm.Field("ORDERS", true)
	require.True(t, ok)
	assert.Equal(t, TypeID{Name: "Order"}, f.TargetType())
	assert.True(t, f.Collection.IsPlural())

	id, ok := pm.Field("id", false)
	require.True(t, ok)
	assert.Equal(t, TypeID{Name: "int64"}, id.TargetType())

	assert.Equal(t, []string{"id", "orders"}, pm.FieldNames())
}

func TestCollectionKind(t *testing.T) {
	tests := []struct {
		in     string
		want   CollectionKind
		wantOK bool
	}{
		{"", CollectionScalar, true},
		{"LIST", CollectionList, true},
		{"set", CollectionSet, true},
		{"map", CollectionMap, true},
		{"collection", CollectionGeneric, true},
		{"array", CollectionArray, true},
		{"bag", CollectionUnknown, false},
	}

	for _, tt := range tests {
		got, ok := ParseCollectionKind(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.wantOK, ok, tt.in)
	}

	assert.Equal(t, "list", CollectionList.String())
	assert.Equal(t, "collection", CollectionGeneric.String())
	assert.False(t, CollectionScalar.IsPlural())
	assert.True(t, CollectionUnknown.IsPlural())
}

func TestErrors(t *testing.T) {
	pe := &PathError{
		Type:        TypeID{Name: "UserView"},
		Path:        "adress.city",
		Segment:     "adress",
		Err:         ErrFieldNotFound,
		Suggestions: []string{"address"},
	}
	assert.ErrorIs(t, pe, ErrFieldNotFound)
	assert.Equal(t, `resolve "adress.city" on UserView: segment "adress": field not found; did you mean address?`, pe.Error())

	re := &RegistrationError{Type: TypeID{Name: "Ghost"}, Kind: KindProjection}
	assert.ErrorIs(t, re, ErrNotRegistered)
	assert.Equal(t, "Ghost is not a registered projection", re.Error())
}
