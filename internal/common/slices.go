package common

// IsEmpty returns true if the slice is empty.
func IsEmpty[S ~[]E, E any](s S) bool {
	return len(s) == 0
}

// IsSingle returns true if the slice has exactly one element.
func IsSingle[S ~[]E, E any](s S) bool {
	return len(s) == 1
}

// IsMultiple returns true if the slice has more than one element.
func IsMultiple[S ~[]E, E any](s S) bool {
	return len(s) > 1
}

// First returns the first element of the slice and true, or the zero value and false if empty.
func First[S ~[]E, E any](s S) (E, bool) {
	if len(s) == 0 {
		var zero E
		return zero, false
	}

	return s[0], true
}

// OrderedSet collects comparable values, keeping the first occurrence order.
type OrderedSet[E comparable] struct {
	seen  map[E]struct{}
	items []E
}

// NewOrderedSet creates an empty OrderedSet.
func NewOrderedSet[E comparable]() *OrderedSet[E] {
	return &OrderedSet[E]{seen: make(map[E]struct{})}
}

// Add appends v unless it is already present. It returns true if v was added.
func (s *OrderedSet[E]) Add(v E) bool {
	if _, ok := s.seen[v]; ok {
		return false
	}

	s.seen[v] = struct{}{}
	s.items = append(s.items, v)

	return true
}

// AddAll adds every value in order.
func (s *OrderedSet[E]) AddAll(vs ...E) {
	for _, v := range vs {
		s.Add(v)
	}
}

// Contains returns true if v is present.
func (s *OrderedSet[E]) Contains(v E) bool {
	_, ok := s.seen[v]
	return ok
}

// Len returns the number of values.
func (s *OrderedSet[E]) Len() int {
	return len(s.items)
}

// Items returns a copy of the values in insertion order.
func (s *OrderedSet[E]) Items() []E {
	return append([]E(nil), s.items...)
}
