// Package attrs implements the immutable per-element attribute snapshot
// (AttributesSet in spec.md §3/§4.E) chained through element nesting: each
// Set holds the attributes of one element plus a back-link to the set of
// its enclosing element, forming a stack via linked list.
package attrs

import "github.com/dekarrin/bali/internal/name"

// Entry is one (name, value) attribute binding.
type Entry struct {
	Name  name.Code
	Value string
}

// Set is an immutable snapshot of one element's attributes. It is
// identity-equal to itself only; two Sets with the same entries built
// separately are still distinct stack frames.
type Set struct {
	entries  []Entry
	previous *Set
}

// empty is the shared zero-attribute Set used as the initial stack frame and
// wherever the algebra calls for an attribute context that has none (e.g.
// the negative-lookahead probe in a Data transition).
var empty = &Set{}

// Empty returns the canonical empty attribute set.
func Empty() *Set { return empty }

// New builds a Set chained onto previous. Callers are expected to have
// already filtered out xmlns/xmlns:* namespace-declaration attributes
// before calling New, per spec.md §6.
func New(entries []Entry, previous *Set) *Set {
	return &Set{entries: entries, previous: previous}
}

// Len reports the number of attributes in this Set (not counting any
// enclosing Set in the stack).
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// NameAt returns the name code of the i'th attribute.
func (s *Set) NameAt(i int) name.Code { return s.entries[i].Name }

// ValueAt returns the text value of the i'th attribute.
func (s *Set) ValueAt(i int) string { return s.entries[i].Value }

// Previous returns the attribute set of the enclosing element, or nil at the
// root of the stack.
func (s *Set) Previous() *Set {
	if s == nil {
		return nil
	}
	return s.previous
}

// Pop returns the enclosing element's Set, releasing this frame. Since Go
// values are garbage collected, "releasing" is simply ceasing to reference
// this frame; Pop exists so callers mirror the push/pop driver discipline
// spec.md §4.F describes rather than reaching into Previous directly.
func Pop(s *Set) *Set {
	return s.Previous()
}
