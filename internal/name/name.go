// Package name implements the compact name-code model used by the schema
// and engine packages: qualified (namespace, local) pairs are encoded as a
// single 32-bit Code, and a Signature tests a range of codes via a bitmask
// rather than comparing strings at rewrite time.
package name

// Code is a compact identifier standing in for a (namespace, local) pair.
// The engine and transition tables never compare namespace/local strings
// directly; every comparison is a Signature test against a Code.
type Code uint32

// Signature matches a Code N iff N&Mask == Test. A literal name (Mask =
// ^uint32(0)) matches exactly one code; a wildcard signature can match a
// contiguous family of codes sharing the same high bits.
type Signature struct {
	Mask Code
	Test Code
}

// Accepts reports whether c satisfies the signature.
func (s Signature) Accepts(c Code) bool {
	return c&s.Mask == s.Test
}

// Literal binds one concrete (URI, Local) pair to a Code. Local == "*" marks
// a wildcard entry: "any local name in this URI."
type Literal struct {
	URI   string
	Local string
	Code  Code
}

const wildcardLocal = "*"

// Table is the ordered, read-only list of Literal bindings a Schema carries,
// plus the sentinel returned when nothing matches.
type Table struct {
	literals []Literal
	def      Code
}

// NewTable builds a lookup table from literal bindings and a default code
// returned when neither an exact nor a wildcard literal matches.
func NewTable(literals []Literal, def Code) Table {
	return Table{literals: literals, def: def}
}

// Lookup resolves (uri, local) to a Code: first by exact literal match, then
// by a (uri, "*") wildcard entry, finally falling back to the table's
// default code. The table is small (schemas name tens of elements and
// attributes, per spec) so a linear scan dominates neither construction nor
// per-event cost; event dispatch through the state algebra does.
func (t Table) Lookup(uri, local string) Code {
	for _, lit := range t.literals {
		if lit.URI == uri && lit.Local == local {
			return lit.Code
		}
	}
	for _, lit := range t.literals {
		if lit.URI == uri && lit.Local == wildcardLocal {
			return lit.Code
		}
	}
	return t.def
}
