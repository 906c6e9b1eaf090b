package rewritesearch_test

import (
	"testing"

	"github.com/njchilds90/rewritesearch"
)

func value(r *rewritesearch.ARef) int64 {
	v, _ := r.Value()
	return v
}

func TestSearch_SingleNumberIsImmediateGoal(t *testing.T) {
	refs := []*rewritesearch.ARef{rewritesearch.NewNumber(42)}
	outcome := rewritesearch.Search(refs, rewritesearch.Options{})
	if !outcome.Solved || outcome.Steps != 0 {
		t.Fatalf("a lone number should solve in zero steps, got solved=%v steps=%d", outcome.Solved, outcome.Steps)
	}
}

func TestSearch_CombinesTwoNumbers(t *testing.T) {
	refs := []*rewritesearch.ARef{
		rewritesearch.NewNumber(3), rewritesearch.NewOp('+'), rewritesearch.NewNumber(4),
	}
	outcome := rewritesearch.Search(refs, rewritesearch.Options{})
	if !outcome.Solved {
		t.Fatalf("3 + 4 should be solvable, got err=%v", outcome.Err)
	}
	last := outcome.Path[len(outcome.Path)-1]
	if len(last.Refs()) != 1 || value(last.Refs()[0]) != 7 {
		t.Errorf("want a single ref valued 7, got %v", last.Refs())
	}
}

func TestSearch_MultiplicationBeforeAddition(t *testing.T) {
	// "4 + 3*4" -> "16"
	refs := []*rewritesearch.ARef{
		rewritesearch.NewNumber(4), rewritesearch.NewOp('+'),
		rewritesearch.NewNumber(3), rewritesearch.NewOp('*'), rewritesearch.NewNumber(4),
	}
	outcome := rewritesearch.Search(refs, rewritesearch.Options{})
	if !outcome.Solved {
		t.Fatalf("4 + 3*4 should be solvable, got err=%v", outcome.Err)
	}
	last := outcome.Path[len(outcome.Path)-1]
	if len(last.Refs()) != 1 || value(last.Refs()[0]) != 16 {
		t.Errorf("want a single ref valued 16, got %v", last.Refs())
	}
}

func TestSearch_CancelSymmetry(t *testing.T) {
	for _, negFirst := range []bool{false, true} {
		cache := rewritesearch.NewSymbolCache()
		x := rewritesearch.NewVariable("x")
		negX := rewritesearch.NegateRef(cache, x)
		refs := []*rewritesearch.ARef{x, rewritesearch.NewOp('+'), negX}
		if negFirst {
			refs = []*rewritesearch.ARef{negX, rewritesearch.NewOp('+'), x}
		}
		root := rewritesearch.NewRootModel(cache, refs)
		outcome := rewritesearch.SearchModel(root, rewritesearch.Options{})
		if !outcome.Solved {
			t.Fatalf("negFirst=%v: opposite x terms should be solvable, got err=%v", negFirst, outcome.Err)
		}
		last := outcome.Path[len(outcome.Path)-1]
		if len(last.Refs()) != 1 || value(last.Refs()[0]) != 0 {
			t.Errorf("negFirst=%v: want a single ref valued 0, got %v", negFirst, last.Refs())
		}
	}
}

func TestSearch_StepLimit(t *testing.T) {
	refs := []*rewritesearch.ARef{
		rewritesearch.NewNumber(1), rewritesearch.NewOp('+'),
		rewritesearch.NewNumber(2), rewritesearch.NewOp('+'),
		rewritesearch.NewVariable("x"), rewritesearch.NewOp('+'),
		rewritesearch.NewVariable("y"), rewritesearch.NewOp('+'),
		rewritesearch.NewNumber(3),
	}
	outcome := rewritesearch.Search(refs, rewritesearch.Options{MaxSteps: 1})
	if outcome.Solved {
		t.Fatalf("expected the step limit to trip before a solution, got solved path %v", outcome.Path)
	}
	if outcome.Err != rewritesearch.ErrStepLimit {
		t.Errorf("want ErrStepLimit, got %v", outcome.Err)
	}
}

func TestSearch_Determinism(t *testing.T) {
	build := func() []*rewritesearch.ARef {
		return []*rewritesearch.ARef{
			rewritesearch.NewNumber(1), rewritesearch.NewOp('+'),
			rewritesearch.NewNumber(2), rewritesearch.NewOp('+'),
			rewritesearch.NewNumber(3),
		}
	}
	a := rewritesearch.Search(build(), rewritesearch.Options{})
	b := rewritesearch.Search(build(), rewritesearch.Options{})
	if !a.Solved || !b.Solved {
		t.Fatalf("expected both runs to solve, got a=%v b=%v", a.Err, b.Err)
	}
	if rewritesearch.FormatPath(a.Path) != rewritesearch.FormatPath(b.Path) {
		t.Errorf("two runs over the same input should walk the same path")
	}
}

func TestSearch_RequestIDMinted(t *testing.T) {
	refs := []*rewritesearch.ARef{rewritesearch.NewNumber(1)}
	outcome := rewritesearch.Search(refs, rewritesearch.Options{})
	if outcome.RequestID == "" {
		t.Errorf("a blank Options.RequestID should still produce a minted RequestID on the Outcome")
	}
}

func TestFormatPath_Shape(t *testing.T) {
	refs := []*rewritesearch.ARef{
		rewritesearch.NewNumber(3), rewritesearch.NewOp('+'), rewritesearch.NewNumber(4),
	}
	outcome := rewritesearch.Search(refs, rewritesearch.Options{})
	if !outcome.Solved {
		t.Fatalf("expected a solved outcome")
	}
	text := rewritesearch.FormatPath(outcome.Path)
	if text == "" {
		t.Errorf("FormatPath should never be empty for a solved path")
	}
}
