package rewritesearch

import "container/heap"

// multiplexItem is one generator's current head candidate, tagged with
// its originating generator index so the multiplexer can pull the next
// one from the same sequence once this item is taken.
type multiplexItem struct {
	genIndex  int
	candidate Candidate
}

type multiplexHeap []multiplexItem

func (h multiplexHeap) Len() int { return len(h) }
func (h multiplexHeap) Less(i, j int) bool {
	ci, cj := h[i].candidate.Cost, h[j].candidate.Cost
	if ci != cj {
		return ci < cj
	}
	// Stable tie-break on generator index keeps expansion order
	// reproducible across runs (spec §8 property 6).
	return h[i].genIndex < h[j].genIndex
}
func (h multiplexHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *multiplexHeap) Push(x any)        { *h = append(*h, x.(multiplexItem)) }
func (h *multiplexHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// multiplexExpand runs every registered generator against model and
// returns its successors as a single slice, ordered by ascending
// successor total cost — a k-way merge of each generator's own
// ascending-cost sequence (spec §4.7 "Action multiplexer").
//
// The heap compares local costs, which gives successor-cost order: a
// generator's own sequence is already non-decreasing in local cost,
// and local cost only ever adds to the same parent's totalApproxCost.
// The driver pushes every fresh successor; it applies no per-generator
// "continue while improving" cut-off.
func multiplexExpand(model *Model, generators []Generator) []*Model {
	seqs := make([]*CandidateSeq, len(generators))
	for i, gen := range generators {
		seqs[i] = gen(model)
	}

	h := make(multiplexHeap, 0, len(generators))
	for i, seq := range seqs {
		if c, ok := seq.Next(); ok {
			h = append(h, multiplexItem{genIndex: i, candidate: c})
		}
	}
	heap.Init(&h)

	var out []*Model
	for h.Len() > 0 {
		item := heap.Pop(&h).(multiplexItem)
		out = append(out, newChildModel(model, item.candidate.Transform, item.candidate.Refs, item.candidate.Cost, item.candidate.ResultRef))
		if next, ok := seqs[item.genIndex].Next(); ok {
			heap.Push(&h, multiplexItem{genIndex: item.genIndex, candidate: next})
		}
	}
	return out
}
