package metamodel

import (
	"reflect"
	"strings"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "projmeta/examples/shop"
	Name    string // e.g., "User"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// IsZero returns true if the TypeID does not identify any type.
func (t TypeID) IsZero() bool {
	return t.Name == ""
}

// Less orders type ids by package path, then name.
func (t TypeID) Less(other TypeID) bool {
	if t.PkgPath != other.PkgPath {
		return t.PkgPath < other.PkgPath
	}

	return t.Name < other.Name
}

// ParseTypeID parses "pkg/path.Name" into a TypeID.
// The name is everything after the last dot; a string without a dot is a bare name.
func ParseTypeID(s string) TypeID {
	s = strings.TrimSpace(s)

	idx := strings.LastIndex(s, ".")
	if idx < 0 {
		return TypeID{Name: s}
	}

	return TypeID{PkgPath: s[:idx], Name: s[idx+1:]}
}

// TypeOf returns the TypeID of T. Pointer types are dereferenced.
func TypeOf[T any]() TypeID {
	return TypeIDOf(reflect.TypeFor[T]())
}

// TypeIDOf returns the TypeID of a reflect.Type. Pointer types are dereferenced.
func TypeIDOf(t reflect.Type) TypeID {
	if t == nil {
		return TypeID{}
	}

	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return TypeID{PkgPath: t.PkgPath(), Name: t.Name()}
}
