package rewritesearch

// applyCleanup offers the trivial algebraic identities that have nothing
// to do with combining like terms: x·1, 1·x, x/1, x·0, 0·x, and a lone
// redundant 0 term sitting in an otherwise non-empty sum (spec §4.6
// "Cleanup"). Each match yields exactly one Model.
func applyCleanup(model *Model) *CandidateSeq {
	refs := model.Refs()
	cost := model.Cache().Cost

	var cands []Candidate
	for i := 0; i+2 < len(refs); i++ {
		op := refs[i+1]
		left, right := refs[i], refs[i+2]
		if !left.IsTerm() || !right.IsTerm() {
			continue
		}
		switch {
		case op.IsOp('*'):
			if cand, ok := mulIdentity(refs, i, left, right, cost); ok {
				cands = append(cands, cand)
			}
		case op.IsOp('/'):
			if cand, ok := divByOne(refs, i, left, right, cost); ok {
				cands = append(cands, cand)
			}
		}
	}

	if isPureSumForm(refs) {
		if cand, ok := dropRedundantZero(refs, cost); ok {
			cands = append(cands, cand)
		}
	}

	if cand, ok := stripLeadingUnaryPlus(refs); ok {
		cands = append(cands, cand)
	}
	if cand, ok := foldLeadingMinus(model, refs); ok {
		cands = append(cands, cand)
	}

	return newCandidateSeq(cands)
}

// stripLeadingUnaryPlus drops a redundant leading '+' sitting in front
// of the first term (spec §4.6 "removes a leading unary +"). The
// parser this module ships never emits one — it starts every sequence
// at the first term directly — so this exists for Models built by
// other means.
func stripLeadingUnaryPlus(refs []*ARef) (Candidate, bool) {
	if len(refs) < 2 || !refs[0].IsOp('+') {
		return Candidate{}, false
	}
	return Candidate{Transform: "drop_leading_plus", Refs: cloneRefs(refs[1:]), Cost: 1}, true
}

// foldLeadingMinus turns a leading "- n" (numeric n) into a single
// negative-valued number ref (spec §4.6 "Cleanup"); a leading minus in
// front of a variable or composite instead becomes a (-1 * term)
// coefficient, mirroring applySubToAdd's negate helper. Like
// applySubToAdd, this is a safety net: the parser normalizes leading
// unary minus at parse time, so in normal operation there is nothing
// here for the search to do.
func foldLeadingMinus(model *Model, refs []*ARef) (Candidate, bool) {
	if len(refs) < 2 || !refs[0].IsOp('-') || !refs[1].IsTerm() {
		return Candidate{}, false
	}
	if refs[1].Kind() == KindNumber {
		v, _ := refs[1].Value()
		return Candidate{Transform: "fold_leading_minus", Refs: spliceTerm(refs, 0, 2, NewNumber(-v)), Cost: 1}, true
	}
	negated := negate(model, refs[1])
	return Candidate{Transform: "fold_leading_minus", Refs: spliceTerm(refs, 0, 2, negated), Cost: 1, ResultRef: negated}, true
}

func mulIdentity(refs []*ARef, i int, left, right *ARef, cost CostModel) (Candidate, bool) {
	if left.Kind() == KindNumber {
		if v, _ := left.Value(); v == 0 {
			return Candidate{Transform: "multiply_by_zero", Refs: spliceTerm(refs, i, i+3, NewNumber(0)), Cost: cost.MulByZero}, true
		}
		if v, _ := left.Value(); v == 1 {
			return Candidate{Transform: "multiply_by_one", Refs: spliceTerm(refs, i, i+3, right), Cost: cost.MulByOne}, true
		}
	}
	if right.Kind() == KindNumber {
		if v, _ := right.Value(); v == 0 {
			return Candidate{Transform: "multiply_by_zero", Refs: spliceTerm(refs, i, i+3, NewNumber(0)), Cost: cost.MulByZero}, true
		}
		if v, _ := right.Value(); v == 1 {
			return Candidate{Transform: "multiply_by_one", Refs: spliceTerm(refs, i, i+3, left), Cost: cost.MulByOne}, true
		}
	}
	return Candidate{}, false
}

func divByOne(refs []*ARef, i int, left, right *ARef, cost CostModel) (Candidate, bool) {
	if right.Kind() != KindNumber {
		return Candidate{}, false
	}
	if v, _ := right.Value(); v == 1 {
		return Candidate{Transform: "divide_by_one", Refs: spliceTerm(refs, i, i+3, left), Cost: cost.MulByOne}, true
	}
	return Candidate{}, false
}

// dropRedundantZero removes a lone literal-0 term from a sum of two or
// more terms, since it contributes nothing to the value.
func dropRedundantZero(refs []*ARef, cost CostModel) (Candidate, bool) {
	terms := termsOf(refs)
	if len(terms) < 2 {
		return Candidate{}, false
	}
	for idx, t := range terms {
		if t.Kind() != KindNumber {
			continue
		}
		if v, _ := t.Value(); v != 0 {
			continue
		}
		newTerms := make([]*ARef, 0, len(terms)-1)
		newTerms = append(newTerms, terms[:idx]...)
		newTerms = append(newTerms, terms[idx+1:]...)
		return Candidate{Transform: "drop_zero_term", Refs: rebuildPlusChain(newTerms), Cost: cost.AddZero}, true
	}
	return Candidate{}, false
}

// applySubToAdd rewrites any top-level "a - b" triple into "a + (-b)".
// The parser normalizes subtraction to negated-addend form before a
// Model is ever constructed (spec §9's resolution of the subtraction
// Open Question), so in normal operation this generator finds nothing
// to do; it exists for the composites a deferred-compute or a future
// parser revision could still hand back a literal '-' and keeps the
// rewrite system's idempotence property (spec §8 property 7) honest
// regardless of how a Model was produced.
func applySubToAdd(model *Model) *CandidateSeq {
	refs := model.Refs()

	var cands []Candidate
	for i := 0; i+2 < len(refs); i++ {
		op := refs[i+1]
		if !op.IsOp('-') {
			continue
		}
		left, right := refs[i], refs[i+2]
		if !left.IsTerm() || !right.IsTerm() {
			continue
		}
		negated := negate(model, right)
		newRefs := spliceTerm(refs, i, i+3, left, plusOp, negated)
		cands = append(cands, Candidate{Transform: "sub_to_add", Refs: newRefs, Cost: 1})
	}
	return newCandidateSeq(cands)
}

// negate returns the ref for -r (spec §4.1's "- T → + (−1·T)"): the
// literal negative number when r is a number, otherwise a (-1 * r)
// coefficient composite. Shared with the parser package via NegateRef
// so both normalize subtraction identically.
func negate(model *Model, r *ARef) *ARef {
	return NegateRef(model.Cache(), r)
}

// applyParenthesis unwraps a redundant grouping: a top-level term that
// is itself a (lparen, inner, rparen) composite contributes nothing
// beyond its inner term once it's the whole term, so replacing it with
// the bare inner ref is always available (spec §4.6 "Parenthesis").
func applyParenthesis(model *Model) *CandidateSeq {
	refs := model.Refs()

	var cands []Candidate
	for i, r := range refs {
		inner, ok := parenInner(r)
		if !ok {
			continue
		}
		cands = append(cands, Candidate{
			Transform: "unwrap_parenthesis",
			Refs:      spliceTerm(refs, i, i+1, inner),
			Cost:      1,
		})
	}
	return newCandidateSeq(cands)
}

func parenInner(r *ARef) (*ARef, bool) {
	if r.Kind() != KindComposite {
		return nil, false
	}
	kids := r.Children()
	if len(kids) != 3 || !kids[0].IsOp('(') || !kids[2].IsOp(')') {
		return nil, false
	}
	return kids[1], true
}
