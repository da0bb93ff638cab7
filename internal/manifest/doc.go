// Package manifest provides the YAML/JSON schema for projection metadata,
// parsing, structural validation, and conversion into registry providers.
//
// A manifest is the declarative form of the metadata the registry serves.
// It is produced by hand, by the Go-source scanner, or exported from a
// loaded registry, and is the input of the provider code generator.
//
// # Schema Overview
//
//	version: "1"
//	package: projmeta/examples/shop     # qualifies bare type names
//	entities:
//	  - type: User
//	    ids: id
//	    fields:
//	      - {name: id, type: int64, id: true}
//	      - {name: email, type: string}
//	      - {name: address, type: Address}         # embedded (inferred)
//	      - {name: orders, type: "[]Order", collection: list, element: Order}
//	embeddables:
//	  - type: Address
//	    fields:
//	      - {name: city, type: string}
//	projections:
//	  - type: UserView
//	    entity: User
//	    # ordered shorthand: dto field -> entity path
//	    map:
//	      userEmail: email
//	      city: address.city
//	    # full form, for nested projections and collections
//	    fields:
//	      - {dto: address, entity: address, projection: AddressView}
//	    computed:
//	      - field: fullName
//	        dependencies: [firstName, lastName]
//	        compute: Names#FullName
//	        then: Names#Upper
//	      - field: totalSpent
//	        dependencies: {orders.amount: SUM}
//
// # Dependencies
//
// A computed field's dependencies accept:
//   - Single path: "email"
//   - Single path with reducer: {orders.amount: SUM}
//   - List of paths: [firstName, lastName]
//   - Mixed list: [{orders.amount: SUM}, currency]
//
// Reducers may also be listed explicitly by dependency index under "reducers".
//
// # Type names
//
// Type names are "pkg/path.Name". Bare names of entities, embeddables and
// projections are qualified with the document package. Method references
// are "Owner#Method", with the owner qualified the same way.
package manifest
