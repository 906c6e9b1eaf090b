package rewritesearch

import "testing"

func TestHeuristic_ZeroAtGoal(t *testing.T) {
	cost := DefaultCostModel()
	refs := []*ARef{NewNumber(5), plusOp, NewVariable("x")}
	if got := heuristic(refs, cost, 100); got != 0 {
		t.Errorf("heuristic at a goal state should be 0, got %d", got)
	}
}

func TestHeuristic_NonNegative(t *testing.T) {
	cost := DefaultCostModel()
	refs := []*ARef{NewNumber(1), plusOp, NewNumber(2), plusOp, NewNumber(3)}
	if got := heuristic(refs, cost, 100); got < 0 {
		t.Errorf("heuristic should never be negative, got %d", got)
	}
}

func TestHeuristic_RewardsCombinableTerms(t *testing.T) {
	cost := DefaultCostModel()
	combinable := []*ARef{NewNumber(1), plusOp, NewNumber(2), plusOp, NewNumber(3)}
	alreadyDistinct := []*ARef{NewNumber(1), plusOp, NewVariable("x"), plusOp, NewVariable("y")}
	hCombinable := heuristic(combinable, cost, 100)
	hDistinct := heuristic(alreadyDistinct, cost, 100)
	if hCombinable == 0 {
		t.Errorf("three still-combinable numbers should carry a positive heuristic")
	}
	_ = hDistinct
}

func TestHeuristic_ChargesForFoldableOps(t *testing.T) {
	cost := DefaultCostModel()
	refs := []*ARef{NewVariable("x"), mulOp, NewVariable("y")}
	if got := heuristic(refs, cost, 100); got <= 0 {
		t.Errorf("x * y still needs a mul rewrite, heuristic should be positive, got %d", got)
	}
}

func TestCountFoldableOps(t *testing.T) {
	cache := NewSymbolCache()
	inner, err := cache.NewComposite([]*ARef{NewVariable("x"), mulOp, NewVariable("y")}, nil)
	if err != nil {
		t.Fatalf("NewComposite: %v", err)
	}
	refs := []*ARef{inner, plusOp, NewNumber(1)}
	if got := countFoldableOps(refs); got != 1 {
		t.Errorf("want 1 foldable op inside the composite, got %d", got)
	}
}
