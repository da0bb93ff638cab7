package analyze

import (
	"strconv"
)

// TypeStringer writes type expressions the way manifests spell them:
// types of the home package by bare name, other named types qualified
// by import path ("time.Time", "example.com/money.Amount").
type TypeStringer struct {
	home string
}

// NewTypeStringer creates a TypeStringer relative to the home package path.
func NewTypeStringer(home string) *TypeStringer {
	return &TypeStringer{home: home}
}

// TypeName returns the spelling of a named type.
func (s *TypeStringer) TypeName(id TypeID) string {
	if id.PkgPath == "" || id.PkgPath == s.home {
		return id.Name
	}

	return id.String()
}

// TypeString returns the type expression for t.
func (s *TypeStringer) TypeString(t *TypeInfo) string {
	if t == nil {
		return "<nil>"
	}

	if t.IsNamed() {
		return s.TypeName(t.ID)
	}

	switch t.Kind {
	case TypeKindPointer:
		return "*" + s.TypeString(t.ElemType)

	case TypeKindSlice:
		return "[]" + s.TypeString(t.ElemType)

	case TypeKindArray:
		return "[" + strconv.FormatInt(t.Len, 10) + "]" + s.TypeString(t.ElemType)

	case TypeKindMap:
		return "map[" + s.TypeString(t.KeyType) + "]" + s.TypeString(t.ElemType)

	case TypeKindStruct:
		return "struct{...}"

	default:
		if t.GoType == nil {
			return "<unknown>"
		}

		return t.GoType.String()
	}
}
