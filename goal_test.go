package rewritesearch

import "testing"

// ============================================================
// isGoal
// ============================================================

func TestIsGoal_SingleNumber(t *testing.T) {
	if !isGoal([]*ARef{NewNumber(7)}) {
		t.Errorf("a lone number should be a goal")
	}
}

func TestIsGoal_ConstantPlusVariables(t *testing.T) {
	refs := []*ARef{NewNumber(5), plusOp, NewVariable("x"), plusOp, NewVariable("y")}
	if !isGoal(refs) {
		t.Errorf("5 + x + y should be a goal")
	}
}

func TestIsGoal_RepeatedVariable(t *testing.T) {
	refs := []*ARef{NewVariable("x"), plusOp, NewVariable("x")}
	if isGoal(refs) {
		t.Errorf("x + x should not be a goal: the variable occurs twice")
	}
}

func TestIsGoal_TwoNumbers(t *testing.T) {
	refs := []*ARef{NewNumber(1), plusOp, NewNumber(2)}
	if isGoal(refs) {
		t.Errorf("1 + 2 should not be a goal: still combinable")
	}
}

func TestIsGoal_RejectsNonSumForm(t *testing.T) {
	// "x * y" has two terms that individually look fine, but the chain is
	// still joined by '*', not '+', so it must not be mistaken for a goal.
	refs := []*ARef{NewVariable("x"), mulOp, NewVariable("y")}
	if isGoal(refs) {
		t.Errorf("x * y should not be a goal: not pure sum form")
	}
}

func TestIsGoal_CoeffVariable(t *testing.T) {
	cache := NewSymbolCache()
	term, err := cache.NewComposite([]*ARef{NewNumber(3), mulOp, NewVariable("x")}, nil)
	if err != nil {
		t.Fatalf("NewComposite: %v", err)
	}
	refs := []*ARef{NewNumber(2), plusOp, term}
	if !isGoal(refs) {
		t.Errorf("2 + 3*x should be a goal")
	}
}

func TestIsGoal_BarePower(t *testing.T) {
	cache := NewSymbolCache()
	x5, err := cache.NewComposite([]*ARef{NewVariable("x"), powOp, NewNumber(5)}, func() (int64, bool) { return 0, false })
	if err != nil {
		t.Fatalf("NewComposite: %v", err)
	}
	if !isGoal([]*ARef{x5}) {
		t.Errorf("x^5 should be a goal")
	}
}

func TestIsGoal_VariableAndItsPowerAreDistinct(t *testing.T) {
	cache := NewSymbolCache()
	x2, err := cache.NewComposite([]*ARef{NewVariable("x"), powOp, NewNumber(2)}, func() (int64, bool) { return 0, false })
	if err != nil {
		t.Fatalf("NewComposite: %v", err)
	}
	refs := []*ARef{NewVariable("x"), plusOp, x2}
	if !isGoal(refs) {
		t.Errorf("x + x^2 should be a goal: distinct power keys")
	}
}

// ============================================================
// isPureSumForm
// ============================================================

func TestIsPureSumForm(t *testing.T) {
	if !isPureSumForm([]*ARef{NewNumber(1), plusOp, NewNumber(2)}) {
		t.Errorf("1 + 2 is pure sum form")
	}
	if isPureSumForm([]*ARef{NewNumber(1), mulOp, NewNumber(2)}) {
		t.Errorf("1 * 2 is not pure sum form")
	}
}

// ============================================================
// coeffVarShape
// ============================================================

func TestCoeffVarShape_Match(t *testing.T) {
	cache := NewSymbolCache()
	term, err := cache.NewComposite([]*ARef{NewVariable("y"), mulOp, NewNumber(4)}, nil)
	if err != nil {
		t.Fatalf("NewComposite: %v", err)
	}
	name, ok := coeffVarShape(term)
	if !ok || name != "y" {
		t.Errorf("want y, ok=true, got %s ok=%v", name, ok)
	}
}

func TestCoeffVarShape_NoMatch(t *testing.T) {
	cache := NewSymbolCache()
	term, err := cache.NewComposite([]*ARef{NewVariable("x"), mulOp, NewVariable("y")}, nil)
	if err != nil {
		t.Fatalf("NewComposite: %v", err)
	}
	if _, ok := coeffVarShape(term); ok {
		t.Errorf("x * y is not a coefficient-variable composite")
	}
}
