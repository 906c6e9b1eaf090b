package rewritesearch

import "testing"

func TestNewRootModel_Transform(t *testing.T) {
	cache := NewSymbolCache()
	m := newRootModel(cache, []*ARef{NewNumber(1), plusOp, NewNumber(2)})
	if m.Transform() != "initial" {
		t.Errorf("want transform initial, got %s", m.Transform())
	}
	if m.TotalApproxCost() != 0 {
		t.Errorf("root should carry zero cost, got %d", m.TotalApproxCost())
	}
	if m.Parent() != nil {
		t.Errorf("root should have no parent")
	}
}

func TestNewChildModel_AccumulatesCost(t *testing.T) {
	cache := NewSymbolCache()
	root := newRootModel(cache, []*ARef{NewNumber(1), plusOp, NewNumber(2)})
	child := newChildModel(root, "sum", []*ARef{NewNumber(3)}, 5, nil)
	if child.TotalApproxCost() != 5 {
		t.Errorf("want cost 5, got %d", child.TotalApproxCost())
	}
	grandchild := newChildModel(child, "sum", []*ARef{NewNumber(3)}, 2, nil)
	if grandchild.TotalApproxCost() != 7 {
		t.Errorf("want cost 7, got %d", grandchild.TotalApproxCost())
	}
}

func TestModel_StateKey_IgnoresTransform(t *testing.T) {
	cache := NewSymbolCache()
	root := newRootModel(cache, []*ARef{NewNumber(1), plusOp, NewNumber(2)})
	a := newChildModel(root, "sum", []*ARef{NewNumber(3)}, 1, nil)
	b := newChildModel(root, "materialize", []*ARef{NewNumber(3)}, 9, nil)
	if a.StateKey() != b.StateKey() {
		t.Errorf("equal refs should produce equal state keys regardless of transform or cost")
	}
}

func TestModel_Path_RootToHere(t *testing.T) {
	cache := NewSymbolCache()
	root := newRootModel(cache, []*ARef{NewNumber(1), plusOp, NewNumber(2)})
	child := newChildModel(root, "sum", []*ARef{NewNumber(3)}, 1, nil)
	grandchild := newChildModel(child, "sum", []*ARef{NewNumber(3)}, 0, nil)

	path := grandchild.Path()
	if len(path) != 3 {
		t.Fatalf("want path length 3, got %d", len(path))
	}
	if path[0] != root || path[1] != child || path[2] != grandchild {
		t.Errorf("path should be root, child, grandchild in order")
	}
}

func TestModel_Terms(t *testing.T) {
	cache := NewSymbolCache()
	root := newRootModel(cache, []*ARef{NewNumber(1), plusOp, NewVariable("x")})
	terms := root.Terms()
	if len(terms) != 2 {
		t.Fatalf("want 2 terms, got %d", len(terms))
	}
}

func TestModel_CacheSharedAcrossChildren(t *testing.T) {
	cache := NewSymbolCache()
	root := newRootModel(cache, []*ARef{NewNumber(1)})
	child := newChildModel(root, "sum", []*ARef{NewNumber(1)}, 0, nil)
	if child.Cache() != cache {
		t.Errorf("child model should inherit the root's cache identity")
	}
}
