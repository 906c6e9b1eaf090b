package rewritesearch

// applySum enumerates unordered pairs of compatible top-level terms and
// yields a Model per pair with the pair merged, ordered by ascending
// local cost (spec §4.6 "Sum").
func applySum(model *Model) *CandidateSeq {
	refs := model.Refs()
	if !isPureSumForm(refs) {
		return newCandidateSeq(nil)
	}
	terms := termsOf(refs)
	cost := model.Cache().Cost

	var cands []Candidate
	for i := 0; i < len(terms); i++ {
		ai, ok := classifyTerm(terms[i])
		if !ok {
			continue
		}
		for j := i + 1; j < len(terms); j++ {
			bj, ok := classifyTerm(terms[j])
			if !ok || ai.key != bj.key {
				continue
			}
			if cand, ok := sumCandidate(model, terms, i, j, ai, bj, cost); ok {
				cands = append(cands, cand)
			}
		}
	}
	return newCandidateSeq(cands)
}

func sumCandidate(model *Model, terms []*ARef, i, j int, a, b mergeInfo, cost CostModel) (Candidate, bool) {
	if a.isNumber {
		return sumNumbers(model, terms, i, j, a.value, b.value, cost)
	}
	return sumLikeTerms(model, terms, i, j, a, b, cost)
}

// sumNumbers merges two number terms into a composite with a deferred
// (lazy) compute thunk — the actual addition happens during the search
// driver's phase B, not here (spec §4.6, §9).
func sumNumbers(model *Model, terms []*ARef, i, j int, av, bv int64, cost CostModel) (Candidate, bool) {
	left, right := terms[i], terms[j]
	transform := "add_numbers"
	localCost := cost.addCost(av, bv)
	oppositeSigns := av != 0 && bv != 0 && (av < 0) != (bv < 0)
	if oppositeSigns {
		transform = "subtract_numbers"
		localCost = cost.subCost(abs64(av), abs64(bv))
	}
	compute := func() (int64, bool) { return av + bv, true }
	composite, err := model.Cache().NewComposite([]*ARef{left, plusOp, right}, compute)
	if err != nil {
		return Candidate{}, false
	}
	newTerms := replaceTerms(terms, i, j, composite)
	return Candidate{
		Transform: transform,
		Refs:      rebuildPlusChain(newTerms),
		Cost:      localCost,
		ResultRef: composite,
	}, true
}

// sumLikeTerms merges two terms sharing a variable/composite key. A
// coefficient sum of exactly zero cancels the pair outright into the
// number 0 (spec: "the 0 case is produced as a plain number ref"); any
// other sum produces (or re-collapses to) a coefficient·unit term.
func sumLikeTerms(model *Model, terms []*ARef, i, j int, a, b mergeInfo, cost CostModel) (Candidate, bool) {
	newCoeff := a.value + b.value
	unit := a.unit
	if unit == nil {
		unit = b.unit
	}

	if newCoeff == 0 {
		newTerms := replaceTerms(terms, i, j, NewNumber(0))
		return Candidate{
			Transform: "cancel_like_terms",
			Refs:      rebuildPlusChain(newTerms),
			Cost:      cost.VarCancelReward,
		}, true
	}

	result, localCost, transform, err := coefficientTerm(model, unit, newCoeff, cost)
	if err != nil {
		return Candidate{}, false
	}
	newTerms := replaceTerms(terms, i, j, result)
	return Candidate{
		Transform: transform,
		Refs:      rebuildPlusChain(newTerms),
		Cost:      localCost,
		ResultRef: result,
	}, true
}

// coefficientTerm builds the term representing coeff·unit, collapsing
// to a bare unit when coeff == 1. unit may itself be an opaque composite
// ("self:" keys), in which case this produces coeff·composite.
func coefficientTerm(model *Model, unit *ARef, coeff int64, cost CostModel) (*ARef, int, string, error) {
	if coeff == 1 {
		return unit, cost.VarCombine, "combine_like_terms", nil
	}
	family := cost.VarCombine
	if unit.Kind() == KindComposite && !isVariableUnit(unit) {
		family = cost.ExprCombine
	}
	composite, err := model.Cache().NewComposite([]*ARef{NewNumber(coeff), mulOp, unit}, nil)
	if err != nil {
		return nil, 0, "", err
	}
	return composite, family, "combine_like_terms", nil
}

// isVariableUnit reports whether unit is (or resolves to) a bare named
// variable or a v^p power composite, as opposed to an opaque
// sub-expression — used only to pick between var-combine and
// expr-combine costs.
func isVariableUnit(unit *ARef) bool {
	if unit.Kind() == KindVariable {
		return true
	}
	_, _, ok := powerShape(unit)
	return ok
}
