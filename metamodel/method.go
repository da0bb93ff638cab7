package metamodel

import (
	"strings"
)

// MethodSeparator separates the owner type from the method name in the
// textual form of a MethodReference ("pkg/path.Type#Method").
const MethodSeparator = "#"

// MethodReference identifies one callable computation or transformation step
// by its owning type and member name. Both parts are mandatory; the only way
// to obtain a non-zero value is NewMethodReference.
type MethodReference struct {
	owner  TypeID
	method string
}

// NewMethodReference returns a validated MethodReference.
func NewMethodReference(owner TypeID, method string) (MethodReference, error) {
	switch {
	case owner.IsZero() && strings.TrimSpace(method) == "":
		return MethodReference{}, invariant("MethodReference", "owner and method name are required")
	case owner.IsZero():
		return MethodReference{}, invariant("MethodReference", "owner is required (method %q)", method)
	case strings.TrimSpace(method) == "":
		return MethodReference{}, invariant("MethodReference", "method name is required (owner %s)", owner)
	}

	return MethodReference{owner: owner, method: method}, nil
}

// MustMethodReference is like NewMethodReference but panics on error.
// It is intended for generated provider code.
func MustMethodReference(owner TypeID, method string) MethodReference {
	ref, err := NewMethodReference(owner, method)
	if err != nil {
		panic(err)
	}

	return ref
}

// ParseMethodReference parses "pkg/path.Type#Method".
func ParseMethodReference(s string) (MethodReference, error) {
	owner, method, ok := strings.Cut(strings.TrimSpace(s), MethodSeparator)
	if !ok {
		return MethodReference{}, invariant("MethodReference", "%q: expected Owner%sMethod", s, MethodSeparator)
	}

	return NewMethodReference(ParseTypeID(owner), strings.TrimSpace(method))
}

// Owner returns the type declaring the method.
func (m MethodReference) Owner() TypeID { return m.owner }

// Method returns the method name.
func (m MethodReference) Method() string { return m.method }

// IsZero returns true for the zero value, which never passed validation.
func (m MethodReference) IsZero() bool {
	return m.owner.IsZero() && m.method == ""
}

// Equal reports structural equality.
func (m MethodReference) Equal(other MethodReference) bool {
	return m == other
}

// String returns "Owner#Method".
func (m MethodReference) String() string {
	if m.IsZero() {
		return ""
	}

	return m.owner.String() + MethodSeparator + m.method
}

// Reducer identifies an aggregation applied to a collection-valued dependency.
// The vocabulary is open: any non-blank identifier is accepted.
type Reducer string

const (
	ReducerSum           Reducer = "SUM"
	ReducerAvg           Reducer = "AVG"
	ReducerCount         Reducer = "COUNT"
	ReducerCountDistinct Reducer = "COUNT_DISTINCT"
	ReducerMin           Reducer = "MIN"
	ReducerMax           Reducer = "MAX"
)

var knownReducers = map[Reducer]bool{
	ReducerSum:           true,
	ReducerAvg:           true,
	ReducerCount:         true,
	ReducerCountDistinct: true,
	ReducerMin:           true,
	ReducerMax:           true,
}

// ParseReducer normalizes a reducer identifier (trimmed, upper case).
func ParseReducer(s string) Reducer {
	return Reducer(strings.ToUpper(strings.TrimSpace(s)))
}

// Known returns true if the reducer is part of the built-in vocabulary.
func (r Reducer) Known() bool {
	return knownReducers[r]
}

// ReducerMapping associates a reducer with one dependency index of a ComputedField.
type ReducerMapping struct {
	DependencyIndex int
	Reducer         Reducer
}

// NewReducerMapping returns a validated ReducerMapping.
func NewReducerMapping(index int, reducer Reducer) (ReducerMapping, error) {
	if index < 0 {
		return ReducerMapping{}, invariant("ReducerMapping", "dependency index must be >= 0, got %d", index)
	}

	if strings.TrimSpace(string(reducer)) == "" {
		return ReducerMapping{}, invariant("ReducerMapping", "reducer is required (index %d)", index)
	}

	return ReducerMapping{DependencyIndex: index, Reducer: reducer}, nil
}

// MustReducerMapping is like NewReducerMapping but panics on error.
func MustReducerMapping(index int, reducer Reducer) ReducerMapping {
	rm, err := NewReducerMapping(index, reducer)
	if err != nil {
		panic(err)
	}

	return rm
}
