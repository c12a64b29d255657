// Package set provides collections of unique elements.
package set

import (
	"sort"

	"facette.io/natsort"
)

// Of is a collection of unique elements. The zero value is not usable;
// create sets with New.
type Of[T comparable] struct {
	elements map[T]struct{}
}

// New creates a new set containing the given elements.
func New[T comparable](elements ...T) *Of[T] {
	s := &Of[T]{
		elements: make(map[T]struct{}, len(elements)),
	}

	s.AddAll(elements...)

	return s
}

// AddAll adds multiple elements to the set. Elements already present
// are left as-is.
func (s *Of[T]) AddAll(elements ...T) {
	for _, element := range elements {
		s.Add(element)
	}
}

// Add adds a single element to the set. Adding an element that already
// exists is a no-op.
func (s *Of[T]) Add(element T) {
	s.elements[element] = struct{}{}
}

// Remove removes an element from the set. Removing an element that is
// not in the set is a no-op.
func (s *Of[T]) Remove(element T) {
	delete(s.elements, element)
}

// Clear removes all elements from the set.
func (s *Of[T]) Clear() {
	clear(s.elements)
}

// Contains checks if an element exists in the set.
func (s *Of[T]) Contains(element T) bool {
	_, found := s.elements[element]

	return found
}

// Size returns the number of elements in the set.
func (s *Of[T]) Size() int {
	return len(s.elements)
}

// Entries returns all elements in the set as a slice. The order is
// not guaranteed.
func (s *Of[T]) Entries() []T {
	out := make([]T, 0, len(s.elements))

	for element := range s.elements {
		out = append(out, element)
	}

	return out
}

// Union returns a new set containing all elements from both sets.
func (s *Of[T]) Union(other *Of[T]) *Of[T] {
	out := New(s.Entries()...)

	if other != nil {
		out.AddAll(other.Entries()...)
	}

	return out
}

// Intersection returns a new set containing only elements present in
// both sets.
func (s *Of[T]) Intersection(other *Of[T]) *Of[T] {
	out := New[T]()

	if other == nil {
		return out
	}

	for element := range s.elements {
		if other.Contains(element) {
			out.Add(element)
		}
	}

	return out
}

// Strings is a set of strings with sorting helpers.
type Strings struct {
	Of[string]
}

// NewStrings creates a new string set containing the given elements.
func NewStrings(elements ...string) *Strings {
	s := &Strings{
		Of: Of[string]{
			elements: make(map[string]struct{}, len(elements)),
		},
	}

	s.AddAll(elements...)

	return s
}

// SortedEntries returns all elements sorted lexicographically.
func (s *Strings) SortedEntries() []string {
	items := s.Entries()
	sort.Strings(items)

	return items
}

// NaturalSortedEntries returns all elements sorted using natural sort
// order, where embedded numbers compare numerically ("state2" sorts
// before "state10").
func (s *Strings) NaturalSortedEntries() []string {
	items := s.Entries()
	natsort.Sort(items)

	return items
}
