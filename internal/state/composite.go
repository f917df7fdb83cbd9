package state

import (
	"github.com/dekarrin/bali/internal/attrs"
	"github.com/dekarrin/bali/internal/name"
)

// Alphabet is the interleave alphabet: the join state both sides resync at
// once they are both final, and which side receives text events. Join is
// always a transition record's primitive target, never a composite that
// rewriting has produced.
type Alphabet struct {
	Join       Primitive
	TextToLeft bool
}

// After represents "the current sub-production is Child; once it reaches a
// final state, continue with Then." Then is itself a general Expr, not
// necessarily a Primitive: once rewriting nests (wrapAfterByAfter wrapping
// an already-wrapped continuation), Then becomes an After/Choice in its own
// right, exactly as the algebra allows (spec.md §4.D).
type After struct {
	Child Expr
	Then  Expr
}

func (*After) isExpr()       {}
func (a *After) Final() bool { return a.Child.Final() }

func (a *After) StartElement(code name.Code, at *attrs.Set, acc Expr) Expr {
	childResult := a.Child.StartElement(code, at, Empty)
	return childResult.WrapAfterByAfter(a.Then, acc)
}

func (a *After) EndElement(at *attrs.Set, acc Expr) Expr {
	if a.Child.Final() {
		return a.Then.Expand(at, acc)
	}
	return acc
}

func (a *After) Expand(at *attrs.Set, acc Expr) Expr {
	return choice(acc, after(a.Child.Expand(at, Empty), a.Then))
}

func (a *After) Text(value string, at *attrs.Set, acc Expr) Expr {
	return choice(acc, after(a.Child.Text(value, at, Empty), a.Then))
}

func (a *After) WrapAfterByAfter(newThen Expr, acc Expr) Expr {
	return choice(acc, after(a.Child, after(a.Then, newThen)))
}

func (a *After) WrapAfterByInterleaveLeft(lhs Expr, alphabet Alphabet, acc Expr) Expr {
	return choice(acc, after(a.Child, interleave(lhs, a.Then, alphabet)))
}

func (a *After) WrapAfterByInterleaveRight(rhs Expr, alphabet Alphabet, acc Expr) Expr {
	return choice(acc, after(a.Child, interleave(a.Then, rhs, alphabet)))
}

// Contains holds for another After iff this child contains the other's
// child and the continuations are mutually equivalent (spec.md §4.D).
func (a *After) Contains(x Expr) bool {
	other, ok := x.(*After)
	if !ok {
		return false
	}
	return a.Child.Contains(other.Child) &&
		a.Then.Contains(other.Then) &&
		other.Then.Contains(a.Then)
}

// Choice is a non-deterministic union of Lhs and Rhs. Invariant: Rhs is
// never itself a Choice (left-leaning, merged via the smart constructors).
type Choice struct {
	Lhs Expr
	Rhs Expr
}

func (*Choice) isExpr()       {}
func (c *Choice) Final() bool { return c.Lhs.Final() || c.Rhs.Final() }

func (c *Choice) StartElement(code name.Code, at *attrs.Set, acc Expr) Expr {
	acc = c.Lhs.StartElement(code, at, acc)
	return c.Rhs.StartElement(code, at, acc)
}

func (c *Choice) EndElement(at *attrs.Set, acc Expr) Expr {
	acc = c.Lhs.EndElement(at, acc)
	return c.Rhs.EndElement(at, acc)
}

func (c *Choice) Expand(at *attrs.Set, acc Expr) Expr {
	acc = c.Lhs.Expand(at, acc)
	return c.Rhs.Expand(at, acc)
}

func (c *Choice) Text(value string, at *attrs.Set, acc Expr) Expr {
	acc = c.Lhs.Text(value, at, acc)
	return c.Rhs.Text(value, at, acc)
}

func (c *Choice) WrapAfterByAfter(newThen Expr, acc Expr) Expr {
	acc = c.Lhs.WrapAfterByAfter(newThen, acc)
	return c.Rhs.WrapAfterByAfter(newThen, acc)
}

func (c *Choice) WrapAfterByInterleaveLeft(lhs Expr, alphabet Alphabet, acc Expr) Expr {
	acc = c.Lhs.WrapAfterByInterleaveLeft(lhs, alphabet, acc)
	return c.Rhs.WrapAfterByInterleaveLeft(lhs, alphabet, acc)
}

func (c *Choice) WrapAfterByInterleaveRight(rhs Expr, alphabet Alphabet, acc Expr) Expr {
	acc = c.Lhs.WrapAfterByInterleaveRight(rhs, alphabet, acc)
	return c.Rhs.WrapAfterByInterleaveRight(rhs, alphabet, acc)
}

func (c *Choice) Contains(x Expr) bool {
	return c.Lhs.Contains(x) || c.Rhs.Contains(x)
}

// Interleave represents a concurrent match against both Lhs and Rhs,
// synchronized by Alphabet.Join once both reach final.
type Interleave struct {
	Lhs      Expr
	Rhs      Expr
	Alphabet Alphabet
}

func (*Interleave) isExpr() {}
func (i *Interleave) Final() bool {
	return i.Lhs.Final() && i.Rhs.Final() && i.Alphabet.Join.Final()
}

func (i *Interleave) StartElement(code name.Code, at *attrs.Set, acc Expr) Expr {
	result := acc

	l := i.Lhs.StartElement(code, at, Empty)
	result = l.WrapAfterByInterleaveRight(i.Rhs, i.Alphabet, result)

	r := i.Rhs.StartElement(code, at, Empty)
	result = r.WrapAfterByInterleaveLeft(i.Lhs, i.Alphabet, result)

	return result
}

// EndElement is never invoked directly on an Interleave; the driver only
// ever calls EndElement on the outermost current-state handle, and an
// Interleave only ever appears nested under an After in well-formed
// rewrites (spec.md §4.D).
func (*Interleave) EndElement(*attrs.Set, Expr) Expr {
	panic("state: EndElement called directly on an Interleave")
}

func (i *Interleave) Expand(at *attrs.Set, acc Expr) Expr {
	return choice(acc, interleave(i.Lhs.Expand(at, Empty), i.Rhs.Expand(at, Empty), i.Alphabet))
}

func (i *Interleave) Text(value string, at *attrs.Set, acc Expr) Expr {
	var next Expr
	if i.Alphabet.TextToLeft {
		next = interleave(i.Lhs.Text(value, at, Empty), i.Rhs, i.Alphabet)
	} else {
		next = interleave(i.Lhs, i.Rhs.Text(value, at, Empty), i.Alphabet)
	}

	result := choice(acc, next)

	if joined, ok := next.(*Interleave); ok && joined.canJoin() {
		result = i.Alphabet.Join.ExpandAttributes(at, result)
	}

	return result
}

func (i *Interleave) canJoin() bool {
	return i.Lhs.Final() && i.Rhs.Final()
}

func (i *Interleave) WrapAfterByAfter(Expr, Expr) Expr {
	panic("state: WrapAfterByAfter called directly on an Interleave")
}
func (i *Interleave) WrapAfterByInterleaveLeft(Expr, Alphabet, Expr) Expr {
	panic("state: WrapAfterByInterleaveLeft called directly on an Interleave")
}
func (i *Interleave) WrapAfterByInterleaveRight(Expr, Alphabet, Expr) Expr {
	panic("state: WrapAfterByInterleaveRight called directly on an Interleave")
}

// Contains defaults to identity for Interleave: the same object instance.
func (i *Interleave) Contains(x Expr) bool {
	other, ok := x.(*Interleave)
	return ok && other == i
}
