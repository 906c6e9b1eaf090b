package rewritesearch

// applyCancel finds a top-level pair of terms whose values are exact
// negatives of one another under the same merge key and removes both
// entirely, leaving no residue (spec §4.6 "Cancel"). This is the cheap,
// no-trace shortcut; applySum's zero-coefficient case reaches the same
// numeric outcome but still publishes a "0" term that needs one more
// step to absorb.
func applyCancel(model *Model) *CandidateSeq {
	refs := model.Refs()
	if !isPureSumForm(refs) {
		return newCandidateSeq(nil)
	}
	terms := termsOf(refs)

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
			if ai.value+bj.value != 0 {
				continue
			}
			newTerms := replaceTerms(terms, i, j, nil)
			var newRefs []*ARef
			if len(newTerms) == 0 {
				newRefs = []*ARef{NewNumber(0)}
			} else {
				newRefs = rebuildPlusChain(newTerms)
			}
			cands = append(cands, Candidate{Transform: "cancel", Refs: newRefs, Cost: 1})
		}
	}
	return newCandidateSeq(cands)
}
