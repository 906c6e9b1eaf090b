package rewritesearch

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// NewRootModel wraps an initial ref sequence produced by a parser into
// the root of a search (spec §6: "parseInitialModel(cache,
// expressionText) → Model"). The parser itself lives outside this
// package — it only needs to produce []*ARef plus a SymbolCache it
// interned any composites through; this is the one place that turns
// that pair into a Model with transform "initial" and zero cost.
func NewRootModel(cache *SymbolCache, refs []*ARef) *Model {
	return newRootModel(cache, refs)
}

// FormatPath renders a solved path as the one stable textual output
// spec §6 mandates: one line per Model, "[transform] <refs> (cost:
// totalApproxCost)".
func FormatPath(path []*Model) string {
	var b strings.Builder
	for i, m := range path {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "[%s] %s (cost: %d)", m.Transform(), joinSymbols(m.Refs()), m.TotalApproxCost())
	}
	return b.String()
}

func joinSymbols(refs []*ARef) string {
	parts := make([]string, len(refs))
	for i, r := range refs {
		parts[i] = r.Symbol()
	}
	return strings.Join(parts, " ")
}

// pathStep is the JSON shape of one Model along a solved path, used by
// FormatPathJSON (cmd/simplify's --json output; cmd/simplify-server's
// /simplify response carries FormatPath's text instead). It is
// additional to FormatPath, not a replacement for it: spec §6 calls
// FormatPath's text form the only *stable* output; this is the
// supplemental rendering this module's domain stack adds (SPEC_FULL §4).
type pathStep struct {
	Transform       string `json:"transform"`
	Refs            string `json:"refs"`
	TotalApproxCost int    `json:"total_approx_cost"`
}

// FormatPathJSON renders a solved path as a JSON array of pathStep,
// matching FormatPath's content but structured for machine consumers.
func FormatPathJSON(path []*Model) ([]byte, error) {
	steps := make([]pathStep, len(path))
	for i, m := range path {
		steps[i] = pathStep{
			Transform:       m.Transform(),
			Refs:            joinSymbols(m.Refs()),
			TotalApproxCost: m.TotalApproxCost(),
		}
	}
	return json.Marshal(steps)
}

// MarshalJSON renders an ARef the way the search's JSON-facing callers
// need it: kind, symbol, value (when known), and children. Mirrors the
// teacher's case-switch-on-"type" convention for its own Expr type,
// adapted to this module's RefKind tag (SPEC_FULL §4 "Textual and JSON
// rendering of a solved path").
func (r *ARef) MarshalJSON() ([]byte, error) {
	type wire struct {
		Kind     string  `json:"kind"`
		Symbol   string  `json:"symbol"`
		Value    *int64  `json:"value,omitempty"`
		Children []*ARef `json:"children,omitempty"`
	}
	w := wire{Kind: r.Kind().String(), Symbol: r.Symbol(), Children: r.Children()}
	if v, ok := r.Value(); ok {
		w.Value = &v
	}
	return json.Marshal(w)
}

// UnmarshalJSON reconstructs an ARef from the wire form MarshalJSON
// produces. Composites round-trip without a cache: the symbol on the
// wire is already the canonical ?k the original cache minted, so this
// rebuilds the same DAG shape directly rather than re-interning through
// a (now absent) SymbolCache. A composite reconstructed this way has no
// compute thunk — its value, if any, travels as the wire "value" field
// and is treated as already resolved.
func (r *ARef) UnmarshalJSON(data []byte) error {
	var w struct {
		Kind     string  `json:"kind"`
		Symbol   string  `json:"symbol"`
		Value    *int64  `json:"value,omitempty"`
		Children []*ARef `json:"children,omitempty"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("ref: unmarshal: %w", err)
	}
	kind, err := parseRefKind(w.Kind)
	if err != nil {
		return err
	}
	r.kind = kind
	r.symbol = w.Symbol
	r.children = w.Children
	if w.Value != nil {
		r.resolved = w.Value
		if kind == KindNumber {
			r.value = w.Value
		}
	}
	return nil
}

func parseRefKind(s string) (RefKind, error) {
	switch s {
	case "number":
		return KindNumber, nil
	case "variable":
		return KindVariable, nil
	case "op":
		return KindOp, nil
	case "composite":
		return KindComposite, nil
	default:
		return 0, fmt.Errorf("ref: unmarshal: unknown kind %q", s)
	}
}

// ExpressionText renders a ref sequence back to a flat one-line
// expression for diagnostics: numbers by value, every other ref by its
// symbol, joined by spaces. It is not a parser's inverse: a composite
// shows only its cache-assigned ?k, and the parser's own output already
// has subtraction rewritten as addition of a negated term and powers,
// parenthesized groups, and negated non-numbers folded into composites.
func ExpressionText(refs []*ARef) string {
	parts := make([]string, len(refs))
	for i, r := range refs {
		if r.Kind() == KindNumber {
			v, _ := r.Value()
			parts[i] = strconv.FormatInt(v, 10)
			continue
		}
		parts[i] = r.Symbol()
	}
	return strings.Join(parts, " ")
}
