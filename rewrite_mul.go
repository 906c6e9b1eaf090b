package rewritesearch

// applyMul scans adjacent (L, *, R) triples of the top-level sequence
// and folds each into a composite, one candidate per triple (spec §4.6
// "Multiplication").
func applyMul(model *Model) *CandidateSeq {
	refs := model.Refs()
	cost := model.Cache().Cost

	var cands []Candidate
	for i := 0; i+2 < len(refs); i++ {
		op := refs[i+1]
		if !op.IsOp('*') {
			continue
		}
		left, right := refs[i], refs[i+2]
		if !left.IsTerm() || !right.IsTerm() {
			continue
		}
		cand, ok := mulTriple(model, refs, i, left, right, cost)
		if ok {
			cands = append(cands, cand)
		}
	}
	return newCandidateSeq(cands)
}

func mulTriple(model *Model, refs []*ARef, i int, left, right *ARef, cost CostModel) (Candidate, bool) {
	if left.Kind() == KindNumber && right.Kind() == KindNumber {
		lv, _ := left.Value()
		rv, _ := right.Value()
		compute := func() (int64, bool) { return lv * rv, true }
		composite, err := model.Cache().NewComposite([]*ARef{left, mulOp, right}, compute)
		if err != nil {
			return Candidate{}, false
		}
		return Candidate{
			Transform: "multiply_numbers",
			Refs:      spliceTerm(refs, i, i+3, composite),
			Cost:      cost.mulCost(lv, rv),
			ResultRef: composite,
		}, true
	}

	if coeffRef, varRef, ok := numberVariablePair(left, right); ok {
		composite, err := model.Cache().NewComposite([]*ARef{coeffRef, mulOp, varRef}, nil)
		if err != nil {
			return Candidate{}, false
		}
		return Candidate{
			Transform: "multiply_coefficient",
			Refs:      spliceTerm(refs, i, i+3, composite),
			Cost:      cost.CoeffVarMul,
			ResultRef: composite,
		}, true
	}

	if baseL, powL, ok1 := powerShape(left); ok1 {
		if baseR, powR, ok2 := powerShape(right); ok2 && baseL == baseR {
			result, err := buildPower(model, baseL, powL+powR)
			if err != nil {
				return Candidate{}, false
			}
			return Candidate{
				Transform: "combine_powers",
				Refs:      spliceTerm(refs, i, i+3, result),
				Cost:      cost.SameVarMul,
				ResultRef: result,
			}, true
		}
	}

	return Candidate{}, false
}

// numberVariablePair reports whether {left,right} is exactly one
// KindNumber and one KindVariable, returning (coefficient, variable) in
// that canonical order regardless of which side held which.
func numberVariablePair(left, right *ARef) (coeff, variable *ARef, ok bool) {
	if left.Kind() == KindNumber && right.Kind() == KindVariable {
		return left, right, true
	}
	if left.Kind() == KindVariable && right.Kind() == KindNumber {
		return right, left, true
	}
	return nil, nil, false
}

// buildPower returns the ref for base^power: the bare variable when
// power == 1, NewNumber(1) when power == 0, otherwise a cache-interned
// v^p composite.
func buildPower(model *Model, base string, power int64) (*ARef, error) {
	if power == 1 {
		return NewVariable(base), nil
	}
	if power == 0 {
		return NewNumber(1), nil
	}
	return model.Cache().NewComposite([]*ARef{NewVariable(base), powOp, NewNumber(power)}, nil)
}
