// Package gen renders projection metadata as Go source.
//
// Generation uses text/template + go/format. The generated file declares one
// persistence provider and one projection provider and registers both with
// the default registry from init, so importing the package is enough to make
// its metadata visible.
//
// Output is deterministic: managed types are sorted by type id and
// projections are ordered nested-first.
package gen
