package rewritesearch

import "strings"

// Model is an immutable search-graph node: a flattened top-level ref
// sequence plus the bookkeeping the search driver needs to order and
// reconstruct paths (spec §3 "Model").
type Model struct {
	parent          *Model
	transform       string
	refs            []*ARef
	totalApproxCost int
	remainCost      int
	resultRef       *ARef
	cache           *SymbolCache
}

// newRootModel wraps an initial ref sequence produced by the parser into
// the root of a search. transform is always "initial" for a root, per
// spec §6.
func newRootModel(cache *SymbolCache, refs []*ARef) *Model {
	m := &Model{
		transform:       "initial",
		refs:            refs,
		totalApproxCost: 0,
		cache:           cache,
	}
	m.remainCost = m.totalApproxCost + heuristic(refs, cache.Cost, cache.MaxNumberMagnitude)
	return m
}

// newChildModel builds a successor of parent produced by a rewrite
// generator. localCost may be negative (the cancel-reward case); the
// heap priority is always recomputed as totalApproxCost + heuristic,
// per spec §9's resolution of the f-score open question.
func newChildModel(parent *Model, transform string, refs []*ARef, localCost int, resultRef *ARef) *Model {
	m := &Model{
		parent:          parent,
		transform:       transform,
		refs:            refs,
		totalApproxCost: parent.totalApproxCost + localCost,
		resultRef:       resultRef,
		cache:           parent.cache,
	}
	m.remainCost = m.totalApproxCost + heuristic(refs, parent.cache.Cost, parent.cache.MaxNumberMagnitude)
	return m
}

// Refs returns the Model's flattened top-level ref sequence.
func (m *Model) Refs() []*ARef { return m.refs }

// Parent returns the predecessor Model, or nil at the root.
func (m *Model) Parent() *Model { return m.parent }

// Transform returns the diagnostic label of the rewrite that produced
// this Model. Not part of the state key.
func (m *Model) Transform() string { return m.transform }

// TotalApproxCost is the summed local rewrite cost from the root to
// here.
func (m *Model) TotalApproxCost() int { return m.totalApproxCost }

// RemainCost is the heap priority: totalApproxCost + heuristic(refs),
// computed once at construction.
func (m *Model) RemainCost() int { return m.remainCost }

// ResultRef is the composite this rewrite just created, if any.
func (m *Model) ResultRef() *ARef { return m.resultRef }

// Cache returns the SymbolCache shared by every Model along this
// search, inherited from the root.
func (m *Model) Cache() *SymbolCache { return m.cache }

// StateKey is the sequence of each top-level ref's Symbol, joined; two
// Models with equal keys are the same state for the visited set (spec
// §4.8). Composites are represented purely by their cache-assigned ?k,
// so structurally-identical sub-expressions collapse automatically.
func (m *Model) StateKey() string {
	var b strings.Builder
	for i, r := range m.refs {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(r.Symbol())
	}
	return b.String()
}

// Terms returns the subsequence of refs that are not operators — the
// top-level additive terms of the expression (spec §4.1).
func (m *Model) Terms() []*ARef {
	terms := make([]*ARef, 0, len(m.refs))
	for _, r := range m.refs {
		if r.IsTerm() {
			terms = append(terms, r)
		}
	}
	return terms
}

// withRefs returns a fresh copy of the given ref slice; it reads nothing
// from m. Generators build successors through newChildModel with their
// own slices and never mutate m.refs in place (spec §4.6: "the
// generator must not mutate model").
func (m *Model) withRefs(refs []*ARef) []*ARef {
	cp := make([]*ARef, len(refs))
	copy(cp, refs)
	return cp
}

// Path reconstructs the root-to-m chain of Models by following parent
// links, per spec §6's search(...) → Solved(path).
func (m *Model) Path() []*Model {
	var rev []*Model
	for n := m; n != nil; n = n.parent {
		rev = append(rev, n)
	}
	path := make([]*Model, len(rev))
	for i, n := range rev {
		path[len(rev)-1-i] = n
	}
	return path
}
