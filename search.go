package rewritesearch

import (
	"container/heap"
	"context"
	"time"

	"github.com/google/uuid"
)

// Options tunes one Search call (spec §6). The zero value is usable:
// MaxSteps and MaxCost of 0 are treated as "unbounded."
type Options struct {
	// MaxSteps bounds the number of Models the driver may expand. Zero
	// means unbounded.
	MaxSteps int

	// MaxCost is a ceiling on totalApproxCost; a frontier Model whose
	// RemainCost already exceeds it is never expanded. Zero means
	// unbounded.
	MaxCost int

	// Cost overrides the default cost model. Nil uses DefaultCostModel().
	Cost *CostModel

	// MaxNumberMagnitude overrides the heuristic's MAX bound (spec §4.5).
	// Zero uses the SymbolCache default.
	MaxNumberMagnitude int

	// Context, if non-nil, is checked between expansions; a canceled
	// context stops the search and returns ErrCanceled.
	Context context.Context

	// RequestID correlates one Search call across logs, metrics, and a
	// caller's own tracing. Left blank, Search mints one with
	// uuid.New() so every Outcome always carries one.
	RequestID string

	// Metrics, if non-nil, receives per-search instrumentation
	// (expansions, frontier size, duration, phase-B retries).
	Metrics *Metrics
}

// Outcome is the result of one Search call (spec §6).
type Outcome struct {
	// Solved is true iff Path ends in a goal Model.
	Solved bool

	// Path is the root-to-goal chain of Models, populated only when
	// Solved.
	Path []*Model

	// Steps is the number of Models the driver expanded.
	Steps int

	// Err explains a non-Solved outcome: one of ErrStepLimit,
	// ErrCostExceeded, ErrCanceled, or ErrExhausted. An *InternError
	// raised while a generator builds a composite is not reported here:
	// that generator drops the candidate and the search goes on.
	Err error

	// RequestID echoes Options.RequestID (or the one minted for this
	// call when the caller left it blank).
	RequestID string
}

// modelHeap orders frontier Models by ascending RemainCost — the f-score
// of spec §9's resolved Open Question 2.
type modelHeap []*Model

func (h modelHeap) Len() int            { return len(h) }
func (h modelHeap) Less(i, j int) bool  { return h[i].RemainCost() < h[j].RemainCost() }
func (h modelHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *modelHeap) Push(x any)         { *h = append(*h, x.(*Model)) }
func (h *modelHeap) Pop() any {
	old := *h
	n := len(old)
	m := old[n-1]
	*h = old[:n-1]
	return m
}

// Search builds a root Model from initialRefs using a fresh SymbolCache
// (tuned by Options.Cost / Options.MaxNumberMagnitude) and runs the
// driver over it. It is the convenience entry point for callers who
// don't need to hold onto the cache or root Model themselves; parser
// packages and callers that need both should use NewRootModel plus
// SearchModel directly (spec §6: parseInitialModel produces the Model
// that search(model, options) then consumes).
func Search(initialRefs []*ARef, opts Options) Outcome {
	cost := DefaultCostModel()
	if opts.Cost != nil {
		cost = *opts.Cost
	}
	cache := NewSymbolCacheWithCost(cost)
	if opts.MaxNumberMagnitude > 0 {
		cache.MaxNumberMagnitude = opts.MaxNumberMagnitude
	}
	return SearchModel(newRootModel(cache, initialRefs), opts)
}

// SearchModel runs the best-first driver of spec §4.8 over the DAG
// rooted at root, returning the first goal Model reached (by ascending
// RemainCost) or a definitive reason why none was. Frontier Models with
// equal RemainCost come off the heap in container/heap's sift order,
// which is the same on every run over the same input but is not the
// order in which they were discovered. root is normally produced by NewRootModel so its
// SymbolCache is shared with every successor the driver creates.
func SearchModel(root *Model, opts Options) Outcome {
	requestID := opts.RequestID
	if requestID == "" {
		requestID = uuid.New().String()
	}

	start := time.Now()
	m := opts.Metrics
	m.observeSearchStart()
	defer func() { m.observeSearchDuration(time.Since(start)) }()

	if isGoal(root.Refs()) {
		m.incSearches(true)
		return Outcome{Solved: true, Path: []*Model{root}, Steps: 0, RequestID: requestID}
	}

	generators := allGenerators()
	visited := make(map[string]bool)
	visited[root.StateKey()] = true

	frontier := &modelHeap{root}
	steps := 0

	for frontier.Len() > 0 {
		m.observeFrontierSize(frontier.Len())
		if opts.Context != nil {
			select {
			case <-opts.Context.Done():
				m.incSearches(false)
				return Outcome{Steps: steps, Err: ErrCanceled, RequestID: requestID}
			default:
			}
		}
		if opts.MaxSteps > 0 && steps >= opts.MaxSteps {
			m.incSearches(false)
			return Outcome{Steps: steps, Err: ErrStepLimit, RequestID: requestID}
		}

		model := heap.Pop(frontier).(*Model)
		if isGoal(model.Refs()) {
			m.incSearches(true)
			return Outcome{Solved: true, Path: model.Path(), Steps: steps, RequestID: requestID}
		}
		if opts.MaxCost > 0 && model.RemainCost() > opts.MaxCost {
			m.incSearches(false)
			return Outcome{Steps: steps, Err: ErrCostExceeded, RequestID: requestID}
		}
		steps++
		m.incExpansions()

		successors := multiplexExpand(model, generators)
		fresh := pushFresh(frontier, visited, successors)

		if fresh == 0 {
			// Phase A stalled at this node: every generator-produced
			// successor (if any) was already visited. Try deferred
			// compute — materialize any composite whose value has since
			// become resolvable into a fresh Number ref, and give the
			// driver one more state to continue from (spec §4.8 phase B).
			if resolved, changed := materializeComposites(model.Refs()); changed {
				child := newChildModel(model, "materialize", resolved, 0, nil)
				if !visited[child.StateKey()] {
					visited[child.StateKey()] = true
					heap.Push(frontier, child)
					m.incPhaseBRetries()
				}
			}
		}
	}

	m.incSearches(false)
	return Outcome{Steps: steps, Err: ErrExhausted, RequestID: requestID}
}

// pushFresh pushes every successor whose StateKey hasn't been seen yet,
// marking it visited immediately so two successors of the same
// expansion that happen to coincide don't both get pushed (spec §4.8's
// visited-set de-dup). Returns the count actually pushed.
func pushFresh(frontier *modelHeap, visited map[string]bool, successors []*Model) int {
	n := 0
	for _, succ := range successors {
		key := succ.StateKey()
		if visited[key] {
			continue
		}
		visited[key] = true
		heap.Push(frontier, succ)
		n++
	}
	return n
}

// materializeComposites replaces every top-level composite ref whose
// compute thunk now resolves with a fresh Number ref carrying the same
// value, leaving every other ref untouched. Returns changed=false if
// nothing in refs was resolvable.
func materializeComposites(refs []*ARef) ([]*ARef, bool) {
	out := make([]*ARef, len(refs))
	changed := false
	for i, r := range refs {
		if r.Kind() == KindComposite {
			if v, ok := r.TryResolve(); ok {
				out[i] = NewNumber(v)
				changed = true
				continue
			}
		}
		out[i] = r
	}
	return out, changed
}
