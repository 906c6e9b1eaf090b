package parser_test

import (
	"testing"

	"github.com/njchilds90/rewritesearch"
	"github.com/njchilds90/rewritesearch/parser"
)

func parseOrFatal(t *testing.T, cache *rewritesearch.SymbolCache, text string) []*rewritesearch.ARef {
	refs, err := parser.Parse(cache, text)
	if err != nil {
		t.Fatalf("Parse(%q): %v", text, err)
	}
	return refs
}

func TestParse_SimpleAddition(t *testing.T) {
	cache := rewritesearch.NewSymbolCache()
	refs := parseOrFatal(t, cache, "3 + 4")
	if len(refs) != 3 || !refs[1].IsOp('+') {
		t.Fatalf("want [3 + 4], got %v", refs)
	}
}

func TestParse_SubtractionNormalized(t *testing.T) {
	cache := rewritesearch.NewSymbolCache()
	refs := parseOrFatal(t, cache, "x - 3")
	if len(refs) != 3 || !refs[1].IsOp('+') {
		t.Fatalf("subtraction should normalize to a '+' chain, got %v", refs)
	}
	v, ok := refs[2].Value()
	if !ok || v != -3 {
		t.Errorf("want the second term to resolve to -3, got %d ok=%v", v, ok)
	}
}

func TestParse_ImplicitMultiplication(t *testing.T) {
	cache := rewritesearch.NewSymbolCache()
	refs := parseOrFatal(t, cache, "5y")
	if len(refs) != 3 || !refs[1].IsOp('*') {
		t.Fatalf("want [5 * y] from juxtaposition, got %v", refs)
	}
}

func TestParse_OperatorPrecedence(t *testing.T) {
	cache := rewritesearch.NewSymbolCache()
	refs := parseOrFatal(t, cache, "4 + 3*4")
	if len(refs) != 5 {
		t.Fatalf("want a flat 5-ref sequence (mul left unfolded for the generators), got %v", refs)
	}
	if !refs[1].IsOp('+') || !refs[3].IsOp('*') {
		t.Fatalf("want 4 + 3 * 4, got %v", refs)
	}
}

func TestParse_Power(t *testing.T) {
	cache := rewritesearch.NewSymbolCache()
	refs := parseOrFatal(t, cache, "x^2")
	if len(refs) != 1 || refs[0].Kind() != rewritesearch.KindComposite {
		t.Fatalf("want a single x^2 composite, got %v", refs)
	}
}

func TestParse_NumericPowerResolves(t *testing.T) {
	cache := rewritesearch.NewSymbolCache()
	refs := parseOrFatal(t, cache, "2^3")
	v, ok := refs[0].Value()
	if !ok || v != 8 {
		t.Errorf("want 2^3 to resolve to 8, got %d ok=%v", v, ok)
	}
}

func TestParse_ParenthesesSingleToken(t *testing.T) {
	cache := rewritesearch.NewSymbolCache()
	refs := parseOrFatal(t, cache, "(x)")
	if len(refs) != 1 || refs[0].Kind() != rewritesearch.KindComposite {
		t.Fatalf("want a degenerate (x) composite, got %v", refs)
	}
	kids := refs[0].Children()
	if len(kids) != 3 || kids[1].Kind() != rewritesearch.KindVariable {
		t.Fatalf("want (lparen, x, rparen) shape, got %v", kids)
	}
}

func TestParse_ParenthesesGroup(t *testing.T) {
	cache := rewritesearch.NewSymbolCache()
	refs := parseOrFatal(t, cache, "2 * (3 + 4)")
	if len(refs) != 3 || !refs[1].IsOp('*') {
		t.Fatalf("want [2 * group], got %v", refs)
	}
	v, ok := refs[2].Value()
	if !ok || v != 7 {
		t.Errorf("want the group to resolve to 7, got %d ok=%v", v, ok)
	}
}

func TestParse_EmptyExpressionIsError(t *testing.T) {
	cache := rewritesearch.NewSymbolCache()
	if _, err := parser.Parse(cache, ""); err == nil {
		t.Errorf("expected an error for an empty expression")
	}
}

func TestParse_UnexpectedTrailingTokenIsError(t *testing.T) {
	cache := rewritesearch.NewSymbolCache()
	if _, err := parser.Parse(cache, "3 + 4)"); err == nil {
		t.Errorf("expected an error for an unmatched ')'")
	}
}

func TestParseModel_BuildsRoot(t *testing.T) {
	cache := rewritesearch.NewSymbolCache()
	model, err := parser.ParseModel(cache, "3 + 4")
	if err != nil {
		t.Fatalf("ParseModel: %v", err)
	}
	if model.Transform() != "initial" {
		t.Errorf("want transform initial, got %s", model.Transform())
	}
}
