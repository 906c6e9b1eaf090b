package rewritesearch

// applyDiv scans adjacent (L, /, R) triples and folds each into a
// composite, mirroring applyMul (spec §4.6 "Division"). Division by
// zero is never offered as a candidate: the generator must not hand the
// driver a Model whose numeric evaluation is undefined.
func applyDiv(model *Model) *CandidateSeq {
	refs := model.Refs()
	cost := model.Cache().Cost

	var cands []Candidate
	for i := 0; i+2 < len(refs); i++ {
		op := refs[i+1]
		if !op.IsOp('/') {
			continue
		}
		left, right := refs[i], refs[i+2]
		if !left.IsTerm() || !right.IsTerm() {
			continue
		}
		cand, ok := divTriple(model, refs, i, left, right, cost)
		if ok {
			cands = append(cands, cand)
		}
	}
	return newCandidateSeq(cands)
}

func divTriple(model *Model, refs []*ARef, i int, left, right *ARef, cost CostModel) (Candidate, bool) {
	if left.Kind() == KindNumber && right.Kind() == KindNumber {
		lv, _ := left.Value()
		rv, _ := right.Value()
		if rv == 0 {
			return Candidate{}, false
		}
		if lv%rv != 0 {
			// Non-exact division would require introducing a new numeric
			// kind the rest of the model doesn't have (spec §3 restricts
			// number refs to integers); the generator simply has nothing
			// to offer here.
			return Candidate{}, false
		}
		quotient := lv / rv
		compute := func() (int64, bool) { return quotient, true }
		composite, err := model.Cache().NewComposite([]*ARef{left, divOp, right}, compute)
		if err != nil {
			return Candidate{}, false
		}
		return Candidate{
			Transform: "divide_numbers",
			Refs:      spliceTerm(refs, i, i+3, composite),
			Cost:      cost.Div * maxInt(digits(lv), digits(rv)),
			ResultRef: composite,
		}, true
	}

	if baseL, powL, ok1 := powerShape(left); ok1 {
		if baseR, powR, ok2 := powerShape(right); ok2 && baseL == baseR && powL >= powR {
			result, err := buildPower(model, baseL, powL-powR)
			if err != nil {
				return Candidate{}, false
			}
			return Candidate{
				Transform: "reduce_powers",
				Refs:      spliceTerm(refs, i, i+3, result),
				Cost:      cost.SameVarMul,
				ResultRef: result,
			}, true
		}
	}

	return Candidate{}, false
}
