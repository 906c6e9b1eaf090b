package rewritesearch

import "fmt"

// mergeInfo is the result of classifying a top-level term for the
// purposes of applySum/applyCancel: a grouping key plus the integer
// coefficient/value the term contributes under that key.
type mergeInfo struct {
	isNumber bool
	value    int64  // the term's own numeric value (number) or coefficient (everything else)
	key      string // grouping key: same key ⇒ compatible per spec §4.6
	unit     *ARef  // the "variable part" to re-attach a combined coefficient to; nil for numbers
}

// powerShape reports whether r is a named variable (implicit power 1) or
// a composite of the exact shape v^p (children len 3, middle '^', base
// variable, exponent number). Used by both applySum (same variable at
// the same power) and applyMul (combining powers of the same base).
func powerShape(r *ARef) (base string, power int64, ok bool) {
	if r.Kind() == KindVariable {
		return r.Symbol(), 1, true
	}
	if r.Kind() != KindComposite {
		return "", 0, false
	}
	kids := r.Children()
	if len(kids) != 3 || !kids[1].IsOp('^') {
		return "", 0, false
	}
	if kids[0].Kind() != KindVariable {
		return "", 0, false
	}
	exp, ok := kids[2].Value()
	if !ok {
		return "", 0, false
	}
	return kids[0].Symbol(), exp, true
}

// classifyTerm groups a top-level term for merge compatibility. Two
// terms are mergeable by applySum/applyCancel iff classifyTerm succeeds
// for both and their keys are equal.
func classifyTerm(r *ARef) (mergeInfo, bool) {
	if r.Kind() == KindNumber {
		v, ok := r.Value()
		if !ok {
			return mergeInfo{}, false
		}
		return mergeInfo{isNumber: true, value: v, key: "#number"}, true
	}
	if base, power, ok := powerShape(r); ok {
		return mergeInfo{value: 1, key: fmt.Sprintf("var:%s^%d", base, power), unit: r}, true
	}
	if varName, ok := coeffVarShape(r); ok {
		kids := r.Children()
		coeffRef, unitRef := kids[0], kids[2]
		if coeffRef.Kind() != KindNumber {
			coeffRef, unitRef = kids[2], kids[0]
		}
		v, ok := coeffRef.Value()
		if !ok {
			return mergeInfo{}, false
		}
		return mergeInfo{value: v, key: "var:" + varName + "^1", unit: unitRef}, true
	}
	if r.Kind() == KindComposite {
		// Opaque composite: mergeable only with an identical sub-expression
		// (spec §4.6 "two composites with identical variable sets" —
		// operationalized here as identical cache-interned symbol).
		return mergeInfo{value: 1, key: "self:" + r.Symbol(), unit: r}, true
	}
	return mergeInfo{}, false
}

// isPureSumForm reports whether every top-level operator in refs is '+'.
// applySum and applyCancel only operate once a Model has reached this
// shape — multiplication/division triples must be folded first by
// applyMul/applyDiv (spec §4.1's linear-form invariant).
func isPureSumForm(refs []*ARef) bool {
	for _, r := range refs {
		if r.Kind() == KindOp && r.Symbol() != "+" {
			return false
		}
	}
	return true
}

// rebuildPlusChain reassembles a term list into a top-level Term (+
// Term)* sequence, minting fresh '+' separators.
func rebuildPlusChain(terms []*ARef) []*ARef {
	if len(terms) == 0 {
		return []*ARef{NewNumber(0)}
	}
	out := make([]*ARef, 0, 2*len(terms)-1)
	for i, t := range terms {
		if i > 0 {
			out = append(out, plusOp)
		}
		out = append(out, t)
	}
	return out
}

// replaceTerms returns a copy of terms with the elements at i and j
// (i < j) replaced by a single ref, or removed entirely if replacement
// is nil.
func replaceTerms(terms []*ARef, i, j int, replacement *ARef) []*ARef {
	out := make([]*ARef, 0, len(terms)-1)
	for k, t := range terms {
		switch k {
		case i:
			if replacement != nil {
				out = append(out, replacement)
			}
		case j:
			continue
		default:
			out = append(out, t)
		}
	}
	return out
}
