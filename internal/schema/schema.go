// Package schema is the facade component (spec.md §4.G): it owns the frozen
// state/transition arrays and name table a compiled grammar consists of, and
// exposes just enough surface for a validator.Driver to start a match and
// resolve qualified names to name codes. Schema values are built once by
// Load, LoadBytes or Cache.Load and are never mutated afterward, so they are safe to
// share across concurrently running drivers.
package schema

import (
	"github.com/dekarrin/bali/internal/name"
	"github.com/dekarrin/bali/internal/state"
)

// Schema is a sealed, precompiled grammar: a name table, a registry of
// primitive automaton states, and the initial state a document's root
// element is matched against.
type Schema struct {
	names    name.Table
	registry *state.Registry
	initial  state.Primitive
}

// Initial returns the primitive state a fresh validator.Driver begins a
// document at.
func (s *Schema) Initial() state.Primitive {
	return s.initial
}

// NameCode resolves a namespace URI and local name to the name code this
// schema's transitions were compiled against, falling back to the default
// code registered for unrecognized names (spec.md §3 Name).
func (s *Schema) NameCode(uri, local string) name.Code {
	return s.names.Lookup(uri, local)
}
