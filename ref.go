package rewritesearch

import (
	"fmt"
	"strconv"
)

// RefKind is the tag of an ARef: number, named variable, operator, or a
// composite sub-expression folded behind a symbol-cache name.
type RefKind int

const (
	KindNumber RefKind = iota
	KindVariable
	KindOp
	KindComposite
)

func (k RefKind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindVariable:
		return "variable"
	case KindOp:
		return "op"
	case KindComposite:
		return "composite"
	default:
		return "unknown"
	}
}

// ComputeFunc materializes the integer value of a composite ref from its
// children. It returns ok=false when a child's value is not yet known;
// the deferred-compute phase of the search driver retries it once every
// child becomes resolvable.
type ComputeFunc func() (int64, bool)

// ARef is a node of the shared expression DAG: a number, a named
// variable, an operator position, or a composite sub-expression.
//
// ARefs are immutable with respect to Kind, Symbol, and Children once
// published (see spec §3). The only thing that ever changes after
// construction is the memoized result of Compute, which transitions
// from unknown to known at most once and only caches a value the
// ComputeFunc would have recomputed identically every time anyway.
type ARef struct {
	kind     RefKind
	symbol   string
	value    *int64
	children []*ARef
	compute  ComputeFunc
	resolved *int64
}

// NewNumber builds a number ref. Its symbol is the exact decimal form of
// the value, per spec §3.
func NewNumber(v int64) *ARef {
	return &ARef{kind: KindNumber, symbol: strconv.FormatInt(v, 10), value: &v}
}

// NewVariable builds a named-variable ref. Its symbol is the variable's
// own name.
func NewVariable(name string) *ARef {
	return &ARef{kind: KindVariable, symbol: name}
}

// NewOp builds an operator ref. Operator refs carry no value and no
// children.
func NewOp(op byte) *ARef {
	return &ARef{kind: KindOp, symbol: string(op)}
}

// newComposite builds a composite ref under the given cache-assigned
// symbol. It is unexported: every caller must go through a SymbolCache
// so that structurally identical children share one symbol (spec §4.2,
// §4.6 "All generators that introduce composites must route construction
// through the symbol cache").
func newComposite(symbol string, children []*ARef, compute ComputeFunc) *ARef {
	kids := make([]*ARef, len(children))
	copy(kids, children)
	return &ARef{kind: KindComposite, symbol: symbol, children: kids, compute: compute}
}

// Kind reports the ref's tag.
func (r *ARef) Kind() RefKind { return r.kind }

// Symbol reports the ref's canonical name: the decimal form for a
// number, the letter for a variable, the operator character for an op,
// or the cache-assigned ?k for a composite.
func (r *ARef) Symbol() string { return r.symbol }

// Children returns the ref's flattened sub-sequence. Empty for atoms and
// operators.
func (r *ARef) Children() []*ARef { return r.children }

// IsTerm reports whether this ref occupies a term position (i.e. is not
// an operator). Every top-level non-operator in a Model's refs is a term
// (spec §4.1).
func (r *ARef) IsTerm() bool { return r.kind != KindOp }

// IsOp reports whether the ref's symbol equals the given operator
// character. False for non-op refs.
func (r *ARef) IsOp(op byte) bool { return r.kind == KindOp && r.symbol == string(op) }

// Value reports the ref's known integer value. A number ref always
// returns ok=true. A composite returns ok=true only once its compute
// thunk has been successfully evaluated (directly, or via the search
// driver's deferred-compute phase priming the memo through TryResolve). An
// operator or unresolved variable/composite returns ok=false.
func (r *ARef) Value() (int64, bool) {
	if r.value != nil {
		return *r.value, true
	}
	if r.resolved != nil {
		return *r.resolved, true
	}
	if r.kind == KindComposite && r.compute != nil {
		if v, ok := r.compute(); ok {
			r.resolved = &v
			return v, true
		}
	}
	return 0, false
}

// TryResolve attempts to materialize a composite's value without
// error-ing when it isn't ready yet; it is the operation the
// deferred-compute phase (spec §4.8 phase B) drives repeatedly across a
// stalled Model's refs.
func (r *ARef) TryResolve() (int64, bool) {
	return r.Value()
}

// IsNumber reports whether the ref currently carries a known integer
// value, whatever its Kind.
func (r *ARef) IsNumber() bool {
	_, ok := r.Value()
	return ok
}

// NegateRef returns the ref for -r, per spec §4.1's parse-time
// subtraction elimination ("- T → + (−1·T), where (−1·T) is a
// composite ref whose lazy compute is numeric negation"). A number ref
// negates directly into a fresh number ref rather than a composite,
// since its value is already known and a wrapping composite would add
// nothing; every other kind becomes a (-1 * r) coefficient composite
// interned through cache so repeated negations of the same r collapse
// to one symbol.
func NegateRef(cache *SymbolCache, r *ARef) *ARef {
	if r.Kind() == KindNumber {
		v, _ := r.Value()
		return NewNumber(-v)
	}
	negated := func() (int64, bool) {
		v, ok := r.Value()
		if !ok {
			return 0, false
		}
		return -v, true
	}
	composite, err := cache.NewComposite([]*ARef{NewNumber(-1), mulOp, r}, negated)
	if err != nil {
		return r
	}
	return composite
}

func (r *ARef) String() string {
	switch r.kind {
	case KindOp:
		return r.symbol
	default:
		return r.symbol
	}
}

// checkAcyclic walks r's children and reports whether r transitively
// appears in its own Children, violating the DAG invariant of spec §3.
// It is exercised by tests, not by the hot rewrite path — generators
// only ever build composites from strictly smaller children, so the
// invariant holds by construction and this is a belt-and-suspenders
// check.
func checkAcyclic(r *ARef) error {
	onStack := make(map[*ARef]bool)
	var walk func(*ARef) error
	walk = func(n *ARef) error {
		if onStack[n] {
			return fmt.Errorf("ref: cycle detected at symbol %q", n.symbol)
		}
		onStack[n] = true
		for _, c := range n.children {
			if err := walk(c); err != nil {
				return err
			}
		}
		delete(onStack, n)
		return nil
	}
	return walk(r)
}
