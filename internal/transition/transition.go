// Package transition defines the static production records a schema's
// states carry: element, attribute, data, list, interleave, and no-attribute
// transitions. These are read-only, contiguous slices owned by the schema
// (spec.md §9 prefers this to the source engine's linked lists); each state
// holds its outgoing productions of each kind in its own slice of these
// records, not behind a head pointer.
package transition

import (
	"github.com/dekarrin/bali/internal/datatype"
	"github.com/dekarrin/bali/internal/name"
)

// StateRef is an index into a schema's State array. It stands in for the
// pointer-to-SingleState the source engine used; resolution from a textual
// schema-description id to a StateRef happens once, at load time.
type StateRef int

// Element: "accept an element whose name matches Name, whose content
// matches Left, whose tail of the enclosing sequence is Right."
type Element struct {
	Name  name.Signature
	Left  StateRef
	Right StateRef
}

// Att: the attribute's value must satisfy Left as a final text match;
// consuming it advances to Right. Repeated permits one-or-more occurrences;
// otherwise exactly one is required.
type Att struct {
	Name     name.Signature
	Repeated bool
	Left     StateRef
	Right    StateRef
}

// Data: text is accepted if Datatype validates it and, when Left is set
// (non-negative), Left must *reject* the value as a final text match — a
// negative-lookahead device used to encode "any datatype except ...".
type Data struct {
	Left     StateRef // -1 means "no negative-lookahead state"
	Right    StateRef
	Datatype datatype.Datatype
}

// List: text is whitespace-split; tokens are threaded through Left in
// sequence, and if Left reaches a final state after all tokens, the overall
// transition advances to Right. Empty tokens are skipped.
type List struct {
	Left  StateRef
	Right StateRef
}

// Interleave: a non-deterministic shuffle of Left and Right, synchronized at
// Join once both sides are final. TextToLeft selects which side sees text
// events.
type Interleave struct {
	Left       StateRef
	Right      StateRef
	Join       StateRef
	TextToLeft bool
}

// NoAtt advances to Right when no attribute present matches any entry of
// NegTests positively while also not matching any PosTests entry — i.e. "a
// wildcard with exceptions" per spec.md §4.D.
type NoAtt struct {
	Right    StateRef
	NegTests []name.Signature
	PosTests []name.Signature
}

// Accepts reports whether an attribute named code should block this
// no-attribute transition: true iff code matches some NegTests entry and
// does not match any PosTests entry.
func (n NoAtt) Accepts(code name.Code) bool {
	for _, sig := range n.PosTests {
		if sig.Accepts(code) {
			return false
		}
	}
	for _, sig := range n.NegTests {
		if sig.Accepts(code) {
			return true
		}
	}
	return false
}

// NoStateRef is the sentinel used where a StateRef field is optional and
// absent (e.g. Data.Left when there is no negative-lookahead constraint).
const NoStateRef StateRef = -1
