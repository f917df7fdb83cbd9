// Package state implements the derivative-based state-expression algebra
// that is the heart of the engine (spec.md §3/§4.D): an algebraic
// expression over primitive automaton states that rewrites itself on each
// tree event. The variant set (Empty, Primitive, After, Choice, Interleave)
// is closed and bounded, so it is modeled as a small sealed interface
// (spec.md §9) rather than an open class hierarchy.
package state

import (
	"github.com/dekarrin/bali/internal/attrs"
	"github.com/dekarrin/bali/internal/name"
)

// Expr is a state expression: the set of continuations currently possible
// for some prefix of tree events. The four rewrite methods correspond to
// the four tree events the engine consumes (spec.md §4.D); the three
// WrapAfterBy* methods are the internal helpers used to thread an After's
// continuation through a child's rewrite result (spec.md §4.D).
type Expr interface {
	// isExpr seals the interface to this package's variant set.
	isExpr()

	// Final reports whether this expression represents a complete match if
	// no further input arrives.
	Final() bool

	// StartElement computes the derivative of this expression by a
	// start-element event, merging results into acc.
	StartElement(code name.Code, at *attrs.Set, acc Expr) Expr

	// EndElement computes the derivative by an end-element event. Only
	// composite expressions built by After/Choice/Interleave are ever
	// invoked this way; a bare Primitive never receives EndElement
	// directly (spec.md §4.D).
	EndElement(at *attrs.Set, acc Expr) Expr

	// Expand resolves any pending attribute-matching obligation.
	Expand(at *attrs.Set, acc Expr) Expr

	// Text computes the derivative by a characters event.
	Text(value string, at *attrs.Set, acc Expr) Expr

	// WrapAfterByAfter treats each disjunct of this expression as the child
	// of an After(child, newThen), merging results into acc.
	WrapAfterByAfter(newThen Expr, acc Expr) Expr

	// WrapAfterByInterleaveLeft keeps each disjunct's child and replaces its
	// continuation with Interleave(lhs, continuation, alphabet): lhs stays
	// the left operand and the disjunct's continuation becomes the right one.
	WrapAfterByInterleaveLeft(lhs Expr, alphabet Alphabet, acc Expr) Expr

	// WrapAfterByInterleaveRight is the mirror of WrapAfterByInterleaveLeft:
	// the continuation becomes Interleave(continuation, rhs, alphabet), with
	// rhs kept as the right operand.
	WrapAfterByInterleaveRight(rhs Expr, alphabet Alphabet, acc Expr) Expr

	// Contains reports whether x is already subsumed by some disjunct of
	// this expression. It is a soundness-preserving optimization (not
	// required to be complete) that keeps Choice accumulation from growing
	// without bound.
	Contains(x Expr) bool
}

// emptyState is the singleton "no match possible" expression.
type emptyState struct{}

// Empty is the canonical empty-set expression: every rewrite on Empty
// returns its acc argument unchanged (Empty is absorbing on the left,
// neutral as acc on the right — spec.md §8 invariant 1).
var Empty Expr = emptyState{}

func (emptyState) isExpr()      {}
func (emptyState) Final() bool  { return false }

func (emptyState) StartElement(_ name.Code, _ *attrs.Set, acc Expr) Expr { return acc }
func (emptyState) EndElement(_ *attrs.Set, acc Expr) Expr           { return acc }
func (emptyState) Expand(_ *attrs.Set, acc Expr) Expr               { return acc }
func (emptyState) Text(_ string, _ *attrs.Set, acc Expr) Expr       { return acc }

func (emptyState) WrapAfterByAfter(_ Expr, acc Expr) Expr { return acc }
func (emptyState) WrapAfterByInterleaveLeft(_ Expr, _ Alphabet, acc Expr) Expr {
	return acc
}
func (emptyState) WrapAfterByInterleaveRight(_ Expr, _ Alphabet, acc Expr) Expr {
	return acc
}

func (emptyState) Contains(x Expr) bool {
	_, ok := x.(emptyState)
	return ok
}
