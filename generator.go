package rewritesearch

import "sort"

// Candidate is one successor a rewrite generator offers: the new top-
// level ref sequence, the local cost of getting there, a diagnostic
// transform label, and (if the rewrite created one) the new composite.
type Candidate struct {
	Transform string
	Refs      []*ARef
	Cost      int
	ResultRef *ARef
}

// CandidateSeq is the pull-based sequence a Generator hands back.
// Candidates are produced eagerly (each generator's work per Model is
// bounded, spec §5) and consumed one at a time through Next, in
// ascending local cost; multiplexExpand drains every sequence.
type CandidateSeq struct {
	items []Candidate
	pos   int
}

func newCandidateSeq(items []Candidate) *CandidateSeq {
	sort.SliceStable(items, func(i, j int) bool { return items[i].Cost < items[j].Cost })
	return &CandidateSeq{items: items}
}

// Next pops the next candidate in ascending local-cost order. Returns
// ok=false once the sequence is drained.
func (s *CandidateSeq) Next() (Candidate, bool) {
	if s == nil || s.pos >= len(s.items) {
		return Candidate{}, false
	}
	c := s.items[s.pos]
	s.pos++
	return c, true
}

// Empty reports whether the sequence has no more candidates.
func (s *CandidateSeq) Empty() bool {
	return s == nil || s.pos >= len(s.items)
}

// Generator is a rewrite family's expand function (spec §4.6). It must
// not mutate model, must yield Models (via Candidate.Refs) satisfying
// the invariants of spec §3, and must be deterministic across repeated
// calls on the same Model.
type Generator func(model *Model) *CandidateSeq

// allGenerators is the fixed roster the action multiplexer merges,
// listed in the order spec §4.6 introduces them. Order here has no
// bearing on correctness — the multiplexer re-sorts everything by
// successor total cost — but keeping it stable keeps tie-breaks
// reproducible (spec §8 property 6, determinism).
func allGenerators() []Generator {
	return []Generator{
		applySum,
		applyMul,
		applyDiv,
		applyCancel,
		applyCleanup,
		applySubToAdd,
		applyParenthesis,
	}
}

// cloneRefs returns a fresh slice so a generator never hands the driver
// a ref sequence that aliases model.Refs().
func cloneRefs(refs []*ARef) []*ARef {
	cp := make([]*ARef, len(refs))
	copy(cp, refs)
	return cp
}

// spliceTerm replaces the refs at [start,end) with replacement, keeping
// everything else in place. Used by every generator that collapses a
// contiguous run of the top-level sequence into one new ref.
func spliceTerm(refs []*ARef, start, end int, replacement ...*ARef) []*ARef {
	out := make([]*ARef, 0, len(refs)-(end-start)+len(replacement))
	out = append(out, refs[:start]...)
	out = append(out, replacement...)
	out = append(out, refs[end:]...)
	return out
}
