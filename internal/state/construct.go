package state

// Smart constructors. Every composite node in the algebra is built through
// one of these instead of a bare struct literal, so the Empty-collapsing and
// containment-based simplifications (spec.md §4.D "Smart constructors") are
// applied uniformly and composite nodes never need to be re-simplified by
// their callers.

// after builds After(child, then), collapsing to Empty when either side is
// Empty: an Empty child has nothing left to continue from, and an Empty then
// means there is no continuation to reach once child finishes (spec.md §8
// Invariant 3). then is a general Expr rather than a Primitive since wrapping
// an already-wrapped continuation (wrapAfterByAfter) can itself nest an After
// as the new then.
func after(child Expr, then Expr) Expr {
	if child == Empty || then == Empty {
		return Empty
	}
	return &After{Child: child, Then: then}
}

// choice merges rhs into lhs, returning lhs unchanged if rhs contributes
// nothing new (already contained) and rhs unchanged if lhs is Empty. The
// result is always left-leaning: the Rhs of any returned *Choice is never
// itself a *Choice.
func choice(lhs, rhs Expr) Expr {
	if rhs == Empty {
		return lhs
	}
	if lhs == Empty {
		return rhs
	}
	if lhs.Contains(rhs) {
		return lhs
	}
	if rhs.Contains(lhs) {
		return rhs
	}
	return choice2(lhs, rhs)
}

// choice2 is the raw two-way merge, used once the Empty and full-containment
// cases have already been ruled out by choice. If rhs is itself a *Choice,
// its disjuncts are merged in one at a time so the result stays
// left-leaning; every disjunct after the leftmost one goes through choice
// and its containment checks, while the leftmost is appended directly.
func choice2(lhs, rhs Expr) Expr {
	if rc, ok := rhs.(*Choice); ok {
		return choice(choice2(lhs, rc.Lhs), rc.Rhs)
	}
	return &Choice{Lhs: lhs, Rhs: rhs}
}

// interleave builds Interleave(lhs, rhs, alphabet), collapsing to Empty if
// either side is Empty (an interleave can make no progress without both
// operands). No other simplification is applied: an operand that is already
// final is kept as it is, not unwrapped.
func interleave(lhs, rhs Expr, alphabet Alphabet) Expr {
	if lhs == Empty || rhs == Empty {
		return Empty
	}
	return &Interleave{Lhs: lhs, Rhs: rhs, Alphabet: alphabet}
}
