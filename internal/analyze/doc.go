// Package analyze loads Go packages and extracts projection metadata from them.
//
// It uses golang.org/x/tools/go/packages with AST and go/types
// to build a canonical in-memory model of structs and their fields,
// then reads projmeta markers and struct tags into a manifest.
//
// Markers are line comments directly above a type declaration:
//
//	//projmeta:entity
//	//projmeta:embeddable
//	//projmeta:projection entity=Customer
//
// Entity fields take `meta:"id"`, `meta:"embeddedId"`, `meta:"embedded"`,
// `meta:"relation"` or `meta:"-"`, and `collection:"set"` to override the
// inferred container kind. Projection fields take `map:"entity.path"`
// (default: the field name), `map:"-"`, and for computed fields
// `computed:"firstName,orders.amount:SUM"` with optional `compute:"Owner#Method"`
// and `then:"Owner#Method"`.
//
// Field names are the json tag name when present, otherwise the Go name
// in lower camel case.
package analyze
