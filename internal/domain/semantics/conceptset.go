// Package semantics provides the concept expansion and context detection
// primitives the scoring engine compares input spans and dictionary entries
// with.  Both components are deterministic pure functions of their input over
// static tables; the expander additionally memoizes results, which is safe to
// share because the underlying tables never change.
package semantics

import "sort"

// ConceptSet is a set of normalized (lower-cased) concept strings.  It is the
// unit of similarity comparison: factors are computed from intersections of
// concept sets, never from raw word equality.
type ConceptSet map[string]struct{}

// NewConceptSet builds a set from the given concepts.
func NewConceptSet(concepts ...string) ConceptSet {
	s := make(ConceptSet, len(concepts))
	for _, c := range concepts {
		s[c] = struct{}{}
	}
	return s
}

// Add inserts a concept.
func (s ConceptSet) Add(concept string) { s[concept] = struct{}{} }

// AddAll inserts every concept of other.
func (s ConceptSet) AddAll(other ConceptSet) {
	for c := range other {
		s[c] = struct{}{}
	}
}

// Has reports membership.
func (s ConceptSet) Has(concept string) bool {
	_, ok := s[concept]
	return ok
}

// Len returns the set size.
func (s ConceptSet) Len() int { return len(s) }

// IntersectionCount returns |s ∩ other| without allocating.
func (s ConceptSet) IntersectionCount(other ConceptSet) int {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	n := 0
	for c := range small {
		if _, ok := large[c]; ok {
			n++
		}
	}
	return n
}

// Values returns the sorted concept list; useful in tests and diagnostics.
func (s ConceptSet) Values() []string {
	out := make([]string, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
