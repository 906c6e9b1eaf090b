package rewritesearch

import "strconv"

// isGoal reports whether refs is a canonical simplified form: either a
// single number, or a constant plus a linear combination of distinct
// variables with integer coefficients (spec §4.4).
func isGoal(refs []*ARef) bool {
	terms := termsOf(refs)
	if len(terms) == 1 && terms[0].Kind() == KindNumber {
		return true
	}
	// Clause 2 only makes sense once every remaining top-level operator
	// is '+' — a state still joined by '*', '/', or '^' (e.g. "x^2 *
	// x^3" before applyMul combines it) is never a goal even if its
	// terms happen to individually look like accepted shapes.
	if !isPureSumForm(refs) {
		return false
	}
	return isLinearForm(terms)
}

// termsOf extracts the non-operator refs from a flattened top-level
// sequence (spec §4.1's definition of "term").
func termsOf(refs []*ARef) []*ARef {
	terms := make([]*ARef, 0, len(refs))
	for _, r := range refs {
		if r.IsTerm() {
			terms = append(terms, r)
		}
	}
	return terms
}

// isLinearForm checks clause 2 of spec §4.4: every term is a number (at
// most one), a named variable occurring at most once, or a coefficient
// composite c*v whose variable occurs at most once.
func isLinearForm(terms []*ARef) bool {
	sawNumber := false
	seenVar := make(map[string]bool)
	for _, t := range terms {
		switch t.Kind() {
		case KindNumber:
			if sawNumber {
				return false
			}
			sawNumber = true
		case KindVariable:
			if seenVar[t.Symbol()] {
				return false
			}
			seenVar[t.Symbol()] = true
		case KindComposite:
			if name, ok := coeffVarShape(t); ok {
				if seenVar[name] {
					return false
				}
				seenVar[name] = true
				continue
			}
			// A bare power v^p (no coefficient) is also an accepted
			// term — spec §8's E6 ("x^2 * x^3" → "x^5") only terminates
			// if a lone power is a recognized goal shape; it keys
			// separately from the variable's own bare-name slot so x
			// and x^2 aren't treated as the same term appearing twice.
			if base, power, ok := powerShape(t); ok {
				key := "pow:" + base + "^" + strconv.FormatInt(power, 10)
				if seenVar[key] {
					return false
				}
				seenVar[key] = true
				continue
			}
			return false
		default:
			return false
		}
	}
	return true
}

// coeffVarShape reports whether t is exactly "c * v" — a number factor
// and a named-variable factor, in either order — and if so returns v's
// name (spec §4.4 clause 2's "composite of the exact shape c·v").
func coeffVarShape(t *ARef) (string, bool) {
	kids := t.Children()
	if len(kids) != 3 || !kids[1].IsOp('*') {
		return "", false
	}
	a, b := kids[0], kids[2]
	if a.Kind() == KindNumber && b.Kind() == KindVariable {
		return b.Symbol(), true
	}
	if a.Kind() == KindVariable && b.Kind() == KindNumber {
		return a.Symbol(), true
	}
	return "", false
}
