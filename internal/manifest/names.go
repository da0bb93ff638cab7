package manifest

import (
	"strings"

	"projmeta/metamodel"
)

// typeNames resolves the type names written in one document.
type typeNames struct {
	pkg         string
	entities    map[metamodel.TypeID]struct{}
	embeddables map[metamodel.TypeID]struct{}
}

func newTypeNames(doc *Document) *typeNames {
	n := &typeNames{
		pkg:         doc.Package,
		entities:    make(map[metamodel.TypeID]struct{}),
		embeddables: make(map[metamodel.TypeID]struct{}),
	}

	for _, e := range doc.Entities {
		n.entities[n.qualify(e.Type)] = struct{}{}
	}

	for _, e := range doc.Embeddables {
		n.embeddables[n.qualify(e.Type)] = struct{}{}
	}

	return n
}

// qualify resolves a reference to a declared type. Bare names belong to the document package.
func (n *typeNames) qualify(name string) metamodel.TypeID {
	name = strings.TrimSpace(name)
	if name == "" {
		return metamodel.TypeID{}
	}

	if !strings.Contains(name, ".") {
		return metamodel.TypeID{PkgPath: n.pkg, Name: name}
	}

	return metamodel.ParseTypeID(name)
}

// goType resolves a field type. Composite type expressions are kept verbatim;
// bare names are qualified only when the document declares them.
func (n *typeNames) goType(name string) metamodel.TypeID {
	name = strings.TrimSpace(name)

	switch {
	case name == "":
		return metamodel.TypeID{}
	case isTypeExpr(name):
		return metamodel.TypeID{Name: name}
	case !strings.Contains(name, "."):
		if q := n.qualify(name); n.isManaged(q) {
			return q
		}

		return metamodel.TypeID{Name: name}
	default:
		return metamodel.ParseTypeID(name)
	}
}

func (n *typeNames) isEntity(t metamodel.TypeID) bool {
	_, ok := n.entities[t]
	return ok
}

func (n *typeNames) isEmbeddable(t metamodel.TypeID) bool {
	_, ok := n.embeddables[t]
	return ok
}

func (n *typeNames) isManaged(t metamodel.TypeID) bool {
	return n.isEntity(t) || n.isEmbeddable(t)
}

// method parses "Owner#Method", qualifying the owner.
func (n *typeNames) method(s string) (metamodel.MethodReference, error) {
	owner, method, found := strings.Cut(strings.TrimSpace(s), "#")
	if !found {
		return metamodel.ParseMethodReference(s)
	}

	return metamodel.NewMethodReference(n.qualify(owner), strings.TrimSpace(method))
}

// short writes t relative to pkg.
func short(t metamodel.TypeID, pkg string) string {
	if pkg != "" && t.PkgPath == pkg {
		return t.Name
	}

	return t.String()
}

func isTypeExpr(s string) bool {
	for _, prefix := range []string{"[", "*", "map[", "func(", "chan ", "<-chan ", "interface{", "struct{"} {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}

	return false
}

// inferCollection derives the collection kind and element type from a type expression.
func inferCollection(typeExpr string) (metamodel.CollectionKind, string) {
	switch {
	case strings.HasPrefix(typeExpr, "[]"):
		return metamodel.CollectionList, strings.TrimLeft(strings.TrimPrefix(typeExpr, "[]"), "*")
	case strings.HasPrefix(typeExpr, "["):
		if _, elem, ok := strings.Cut(typeExpr, "]"); ok {
			return metamodel.CollectionArray, strings.TrimLeft(elem, "*")
		}
	case strings.HasPrefix(typeExpr, "map["):
		if _, elem, ok := strings.Cut(typeExpr, "]"); ok {
			return metamodel.CollectionMap, strings.TrimLeft(elem, "*")
		}
	}

	return metamodel.CollectionScalar, ""
}
