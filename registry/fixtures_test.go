package registry

import (
	"projmeta/metamodel"
)

const shopPkg = "projmeta/examples/shop"

func shopType(name string) metamodel.TypeID {
	return metamodel.TypeID{PkgPath: shopPkg, Name: name}
}

func goType(name string) metamodel.TypeID {
	return metamodel.TypeID{Name: name}
}

var (
	userType        = shopType("User")
	addressType     = shopType("Address")
	departmentType  = shopType("Department")
	orderType       = shopType("Order")
	orderKeyType    = shopType("OrderKey")
	userViewType    = shopType("UserView")
	addressViewType = shopType("AddressView")
	contactViewType = shopType("ContactView")
	cityViewType    = shopType("CityView")
)

func shopPersistence() []metamodel.PersistenceMetadata {
	return []metamodel.PersistenceMetadata{
		{
			Type: userType,
			Fields: []metamodel.FieldMetadata{
				{Name: "id", Type: goType("int64"), ID: true},
				{Name: "email", Type: goType("string")},
				{Name: "firstName", Type: goType("string")},
				{Name: "lastName", Type: goType("string")},
				{Name: "address", Type: addressType, Embedded: true},
				{Name: "department", Type: departmentType, Relation: true},
				{
					Name: "orders", Type: goType("[]" + orderType.String()),
					Collection: metamodel.CollectionList, Element: orderType, Relation: true,
				},
				{Name: "tags", Type: goType("[]string"), Collection: metamodel.CollectionList, Element: goType("string")},
			},
			IDFields: []string{"id"},
		},
		{
			Type:       addressType,
			Embeddable: true,
			Fields: []metamodel.FieldMetadata{
				{Name: "street", Type: goType("string")},
				{Name: "city", Type: goType("string")},
				{Name: "country", Type: goType("string")},
			},
		},
		{
			Type: departmentType,
			Fields: []metamodel.FieldMetadata{
				{Name: "id", Type: goType("int64"), ID: true},
				{Name: "name", Type: goType("string")},
				{Name: "manager", Type: userType, Relation: true},
			},
			IDFields: []string{"id"},
		},
		{
			Type: orderType,
			Fields: []metamodel.FieldMetadata{
				{Name: "id", Type: orderKeyType, EmbeddedID: true},
				{Name: "amount", Type: goType("float64")},
				{Name: "status", Type: goType("string")},
			},
			IDFields: []string{"id"},
		},
		{
			Type:       orderKeyType,
			Embeddable: true,
			Fields: []metamodel.FieldMetadata{
				{Name: "orderNo", Type: goType("int64")},
				{Name: "region", Type: goType("string")},
			},
		},
	}
}

var (
	fullNameRef = metamodel.MustMethodReference(shopType("Names"), "FullName")
	upperRef    = metamodel.MustMethodReference(shopType("Names"), "Upper")
)

func shopProjections() []metamodel.ProjectionMetadata {
	return []metamodel.ProjectionMetadata{
		{
			Projection: addressViewType,
			Entity:     addressType,
			Fields: []metamodel.DirectMapping{
				{DTOField: "town", EntityField: "city"},
				{DTOField: "street", EntityField: "street"},
			},
		},
		{
			Projection: userViewType,
			Entity:     userType,
			Fields: []metamodel.DirectMapping{
				{DTOField: "userEmail", EntityField: "email"},
				{DTOField: "city", EntityField: "address.city"},
				{DTOField: "address", EntityField: "address", Nested: addressViewType},
				{DTOField: "managerCity", EntityField: "department.manager.address.city"},
			},
			Computed: []metamodel.ComputedField{
				metamodel.MustComputedField("fullName", []string{"firstName", "lastName"}, nil,
					metamodel.ComputeThenTransform(fullNameRef, upperRef)),
				metamodel.MustComputedField("totalSpent", []string{"orders.amount"},
					[]metamodel.ReducerMapping{metamodel.MustReducerMapping(0, metamodel.ReducerSum)},
					metamodel.NoPipeline()),
				metamodel.MustComputedField("orderStats", []string{"orders.amount", "orders.id"},
					[]metamodel.ReducerMapping{
						metamodel.MustReducerMapping(0, metamodel.ReducerAvg),
						metamodel.MustReducerMapping(1, metamodel.ReducerCountDistinct),
					},
					metamodel.NoPipeline()),
			},
		},
		{
			Projection: contactViewType,
			Entity:     userType,
			Fields: []metamodel.DirectMapping{
				{DTOField: "userEmail", EntityField: "email"},
			},
			Computed: []metamodel.ComputedField{
				metamodel.MustComputedField("fullName", []string{"firstName", "lastName"}, nil, metamodel.NoPipeline()),
			},
		},
	}
}

func newShopRegistry(opts ...Option) *Registry {
	opts = append([]Option{
		WithPersistenceProviders(PersistenceProviderFunc(shopPersistence)),
		WithProjectionProviders(ProjectionProviderFunc(shopProjections)),
	}, opts...)

	return New(opts...)
}

// cityView declares computed dependencies through its nested AddressView
// ("address.town") next to a plain entity path ("address.country").
func cityView() metamodel.ProjectionMetadata {
	return metamodel.ProjectionMetadata{
		Projection: cityViewType,
		Entity:     userType,
		Fields: []metamodel.DirectMapping{
			{DTOField: "address", EntityField: "address", Nested: addressViewType},
		},
		Computed: []metamodel.ComputedField{
			metamodel.MustComputedField("cityName", []string{"address.town"}, nil, metamodel.NoPipeline()),
			metamodel.MustComputedField("country", []string{"address.country"}, nil, metamodel.NoPipeline()),
			metamodel.MustComputedField("location", []string{"address.town", "address.street"}, nil, metamodel.NoPipeline()),
		},
	}
}

func newCityRegistry(opts ...Option) *Registry {
	return newShopRegistry(append([]Option{
		WithProjectionProviders(ProjectionProviderFunc(func() []metamodel.ProjectionMetadata {
			return []metamodel.ProjectionMetadata{cityView()}
		})),
	}, opts...)...)
}
