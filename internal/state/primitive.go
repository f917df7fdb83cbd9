package state

import (
	"github.com/dekarrin/bali/internal/attrs"
	"github.com/dekarrin/bali/internal/name"
	"github.com/dekarrin/bali/internal/transition"
)

// StateInfo is a node of the compiled automaton: its identity, finality,
// persistence (spec.md's "remains a disjunct of any expansion," used for
// unbounded-repetition loops), and its six disjoint transition lists.
// A schema owns a slice of these and binds them into a Registry once, at
// construction; thereafter they are read-only.
type StateInfo struct {
	ID         int
	Final      bool
	Persistent bool

	ElemTr  []transition.Element
	AttTr   []transition.Att
	DataTr  []transition.Data
	ListTr  []transition.List
	InterTr []transition.Interleave
	NoAttTr []transition.NoAtt

	reg *Registry
}

// Registry is the array of StateInfo a Schema owns; StateRef values from
// transition records index into it. It exists so transition records can
// reference states by a small integer rather than a live pointer the
// algebra would otherwise need circularly at construction time.
type Registry struct {
	infos []*StateInfo
}

// NewRegistry builds a Registry from infos, binding each one's back-pointer
// so its transitions can resolve StateRef values against the same array.
// Once this returns, the arrays are never rewritten (spec.md §6).
func NewRegistry(infos []*StateInfo) *Registry {
	r := &Registry{infos: infos}
	for _, info := range infos {
		info.reg = r
	}
	return r
}

// Resolve returns the Primitive for a StateRef. Transition targets
// (Element.Left/Right, Att.Left/Right, Data.Left/Right, List.Left/Right,
// Interleave.Left/Right/Join, NoAtt.Right) are always primitive states,
// never composite expressions — composite expressions arise only at
// rewrite time, not in static schema data.
func (r *Registry) Resolve(ref transition.StateRef) Primitive {
	return Primitive{Info: r.infos[ref]}
}

// Primitive is an automaton node: the expression-algebra wrapper around one
// StateInfo. Two Primitive values are the same automaton node iff their
// Info pointers are equal.
type Primitive struct {
	Info *StateInfo
}

func (Primitive) isExpr()       {}
func (p Primitive) Final() bool { return p.Info.Final }

// StartElement merges, for every Element transition whose name signature
// accepts code, the continuation After(left.ExpandAttributes(...), right)
// into acc.
func (p Primitive) StartElement(code name.Code, at *attrs.Set, acc Expr) Expr {
	result := acc
	for _, e := range p.Info.ElemTr {
		if !e.Name.Accepts(code) {
			continue
		}
		left := p.Info.reg.Resolve(e.Left)
		right := p.Info.reg.Resolve(e.Right)
		expandedLeft := left.ExpandAttributes(at, Empty)
		result = choice(result, after(expandedLeft, right))
	}
	return result
}

// EndElement is never invoked on a bare Primitive: the driver only calls
// EndElement on composite states built by After/Choice/Interleave.
func (Primitive) EndElement(*attrs.Set, Expr) Expr {
	panic("state: EndElement called directly on a Primitive")
}

func (p Primitive) Expand(at *attrs.Set, acc Expr) Expr {
	return p.ExpandAttributes(at, acc)
}

// Text implements the primitive text derivative: whitespace is always
// optionally accepted (the state itself survives), then every Data and
// List transition is tried in turn.
func (p Primitive) Text(value string, at *attrs.Set, acc Expr) Expr {
	result := acc

	if isAllWhitespace(value) {
		result = choice(result, Expr(p))
	}

	for _, d := range p.Info.DataTr {
		if !d.Datatype.Validate(value) {
			continue
		}
		blocked := false
		if d.Left != transition.NoStateRef {
			lookahead := p.Info.reg.Resolve(d.Left)
			blocked = lookahead.Text(value, attrs.Empty(), Empty).Final()
		}
		if blocked {
			continue
		}
		right := p.Info.reg.Resolve(d.Right)
		result = right.ExpandAttributes(at, result)
	}

	for _, l := range p.Info.ListTr {
		cur := Expr(p.Info.reg.Resolve(l.Left))
		ok := true
		for _, tok := range splitXMLWhitespace(value) {
			if tok == "" {
				continue
			}
			cur = cur.Text(tok, attrs.Empty(), Empty)
			if cur == Empty {
				ok = false
				break
			}
		}
		if ok && cur.Final() {
			right := p.Info.reg.Resolve(l.Right)
			result = right.ExpandAttributes(at, result)
		}
	}

	return result
}

func (Primitive) WrapAfterByAfter(Expr, Expr) Expr {
	panic("state: WrapAfterByAfter called directly on a Primitive")
}
func (Primitive) WrapAfterByInterleaveLeft(Expr, Alphabet, Expr) Expr {
	panic("state: WrapAfterByInterleaveLeft called directly on a Primitive")
}
func (Primitive) WrapAfterByInterleaveRight(Expr, Alphabet, Expr) Expr {
	panic("state: WrapAfterByInterleaveRight called directly on a Primitive")
}

// Contains defaults to identity: a Primitive contains only itself (same
// underlying StateInfo).
func (p Primitive) Contains(x Expr) bool {
	other, ok := x.(Primitive)
	return ok && other.Info == p.Info
}

// ExpandAttributes is the attribute-matching core (spec.md §4.D). It is a
// concrete Primitive method, not part of Expr, because transition targets
// (Element/Att/NoAtt/Interleave Left/Right/Join) are always primitive
// states, never arbitrary composite expressions.
func (p Primitive) ExpandAttributes(at *attrs.Set, acc Expr) Expr {
	if acc.Contains(Expr(p)) {
		return acc
	}

	result := acc
	if p.Info.Persistent {
		result = choice(result, Expr(p))
	}

	for _, a := range p.Info.AttTr {
		count := 0
		mismatch := false
		for i := 0; i < at.Len(); i++ {
			if !a.Name.Accepts(at.NameAt(i)) {
				continue
			}
			left := p.Info.reg.Resolve(a.Left)
			if left.Text(at.ValueAt(i), attrs.Empty(), Empty).Final() {
				count++
			} else {
				mismatch = true
			}
		}
		if mismatch {
			continue
		}
		satisfied := count == 1
		if a.Repeated {
			satisfied = count >= 1
		}
		if !satisfied {
			continue
		}
		right := p.Info.reg.Resolve(a.Right)
		result = right.ExpandAttributes(at, result)
	}

	for _, n := range p.Info.NoAttTr {
		blocked := false
		for i := 0; i < at.Len(); i++ {
			if n.Accepts(at.NameAt(i)) {
				blocked = true
				break
			}
		}
		if blocked {
			continue
		}
		right := p.Info.reg.Resolve(n.Right)
		result = right.ExpandAttributes(at, result)
	}

	for _, it := range p.Info.InterTr {
		left := p.Info.reg.Resolve(it.Left)
		right := p.Info.reg.Resolve(it.Right)
		join := p.Info.reg.Resolve(it.Join)

		expandedLeft := left.ExpandAttributes(at, Empty)
		expandedRight := right.ExpandAttributes(at, Empty)
		alphabet := Alphabet{Join: join, TextToLeft: it.TextToLeft}

		result = choice(result, interleave(expandedLeft, expandedRight, alphabet))
	}

	return result
}
