package rewritesearch

import (
	"fmt"
	"strconv"
	"strings"
)

// maxInternedSymbols bounds the cache's counter; a search that needs
// more composite names than this is almost certainly looping, and the
// spec treats allocator exhaustion as the one fatal failure a cache can
// produce (spec §4.2).
const maxInternedSymbols = 1 << 24

// InternError is returned by SymbolCache.Intern when the cache's
// counter is exhausted. Per spec §7 this is the only fatal error kind
// the core itself raises (ResourceExhaustion).
type InternError struct {
	Key string
}

func (e *InternError) Error() string {
	return fmt.Sprintf("symtab: cannot intern %q: cache exhausted", e.Key)
}

// SymbolCache assigns stable internal names ?1, ?2, … to composite
// sub-expressions by the identity of their child list (spec §4.2). It is
// created with the root Model and shared, unpruned, with every
// descendant for the lifetime of one search.
type SymbolCache struct {
	byKey   map[string]string
	counter int

	// Cost is the read-only cost-model configuration record (spec §6)
	// shared by every Model, generator, and heuristic evaluation in this
	// search. It lives on the cache because the cache is already the one
	// object every Model inherits from its root.
	Cost CostModel

	// MaxNumberMagnitude is the heuristic's tunable MAX bound (spec §4.5).
	MaxNumberMagnitude int
}

// NewSymbolCache creates an empty cache with the default cost model. One
// cache is created per search and its identity is threaded through every
// Model (spec §3, invariant: "cache identity is preserved along every
// path from the root").
func NewSymbolCache() *SymbolCache {
	return NewSymbolCacheWithCost(DefaultCostModel())
}

// NewSymbolCacheWithCost creates an empty cache using a caller-supplied
// cost model, letting a search tune the constants of spec §4.3 without
// touching the generators or heuristic that consume them.
func NewSymbolCacheWithCost(cost CostModel) *SymbolCache {
	return &SymbolCache{byKey: make(map[string]string), Cost: cost, MaxNumberMagnitude: 100}
}

// compositeKey joins children's symbols with a separator that cannot appear in
// any symbol we mint (operator refs are single characters, numbers are
// decimal, variables are identifiers, composites are ?k — none contain
// the unit separator).
func compositeKey(children []*ARef) string {
	syms := make([]string, len(children))
	for i, c := range children {
		syms[i] = c.Symbol()
	}
	return strings.Join(syms, "\x1f")
}

// Intern returns the canonical symbol for a composite built from
// children, minting a fresh ?k the first time this exact child sequence
// is seen and reusing it afterwards. Idempotent and stable across the
// whole search, regardless of which generator asks first.
func (c *SymbolCache) Intern(children []*ARef) (string, error) {
	key := compositeKey(children)
	if sym, ok := c.byKey[key]; ok {
		return sym, nil
	}
	if c.counter >= maxInternedSymbols {
		return "", &InternError{Key: key}
	}
	c.counter++
	sym := "?" + strconv.Itoa(c.counter)
	c.byKey[key] = sym
	return sym, nil
}

// NewComposite interns children under this cache and builds the
// resulting composite ARef in one step. Every rewrite generator that
// introduces a composite must go through this, not newComposite
// directly, so that two structurally identical sub-expressions share one
// ?k and are recognized as the same state by the visited set.
func (c *SymbolCache) NewComposite(children []*ARef, compute ComputeFunc) (*ARef, error) {
	sym, err := c.Intern(children)
	if err != nil {
		return nil, err
	}
	return newComposite(sym, children, compute), nil
}

// size reports how many distinct composites this cache has minted; used
// only by tests and diagnostics.
func (c *SymbolCache) size() int { return c.counter }
