// Package registry is the runtime façade over projection and persistence metadata.
//
// Metadata is supplied by providers, usually generated code that registers
// itself from init():
//
//	func init() {
//		registry.RegisterPersistenceProvider(shopEntities{})
//		registry.RegisterProjectionProvider(shopProjections{})
//	}
//
// The registry builds its indexes once, on first query, and is read-only
// afterwards. Typical queries:
//
//	r := registry.Default()
//	paths, _ := r.RequiredFields(metamodel.TypeOf[shop.UserView]())
//	src, _ := r.ResolvePath(metamodel.TypeOf[shop.UserView](), "address.town")
package registry
