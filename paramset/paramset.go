package paramset

import "github.com/pa-m/geneva/rng"

// ParameterSet is an ordered, heterogeneous container of Elements (spec
// §4.3). Order is significant and preserved by Clone/serialization; adapt
// order is position 0 first.
type ParameterSet struct {
	elements []Element
}

// New builds a ParameterSet from the given elements, in order.
func New(elements ...Element) *ParameterSet {
	return &ParameterSet{elements: elements}
}

// Len returns the number of elements.
func (s *ParameterSet) Len() int { return len(s.elements) }

// At returns the element at position i.
func (s *ParameterSet) At(i int) Element { return s.elements[i] }

// Append adds an element to the end of the set.
func (s *ParameterSet) Append(e Element) { s.elements = append(s.elements, e) }

// Elements returns the underlying slice. Callers must not mutate it; use
// Append or index assignment via Set.
func (s *ParameterSet) Elements() []Element { return s.elements }

// Set replaces the element at position i.
func (s *ParameterSet) Set(i int, e Element) { s.elements[i] = e }

// AdaptAll applies Adapt to every element, position 0 first (spec §4.3).
func (s *ParameterSet) AdaptAll(r *rng.Source) {
	for _, e := range s.elements {
		e.Adapt(r)
	}
}

// RandomInitAll draws a fresh value for every element, position 0 first.
func (s *ParameterSet) RandomInitAll(r *rng.Source) {
	for _, e := range s.elements {
		e.RandomInit(r)
	}
}

// Clone returns a deep copy preserving order.
func (s *ParameterSet) Clone() *ParameterSet {
	out := make([]Element, len(s.elements))
	for i, e := range s.elements {
		out[i] = e.Clone()
	}
	return &ParameterSet{elements: out}
}

// CountByKind returns how many elements have the given Kind.
func (s *ParameterSet) CountByKind(k Kind) int {
	n := 0
	for _, e := range s.elements {
		if e.Kind() == k {
			n++
		}
	}
	return n
}

// Equal reports structural equality within tol, position by position.
func (s *ParameterSet) Equal(other *ParameterSet, tol float64) bool {
	if other == nil || len(s.elements) != len(other.elements) {
		return false
	}
	for i := range s.elements {
		if !s.elements[i].Equal(other.elements[i], tol) {
			return false
		}
	}
	return true
}
