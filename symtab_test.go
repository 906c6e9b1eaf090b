package rewritesearch

import "testing"

func TestSymbolCache_InternStable(t *testing.T) {
	cache := NewSymbolCache()
	children := []*ARef{NewNumber(2), mulOp, NewVariable("x")}
	sym1, err := cache.Intern(children)
	if err != nil {
		t.Fatalf("Intern: %v", err)
	}
	sym2, err := cache.Intern(children)
	if err != nil {
		t.Fatalf("Intern: %v", err)
	}
	if sym1 != sym2 {
		t.Errorf("interning the same children twice should produce the same symbol, got %s and %s", sym1, sym2)
	}
}

func TestSymbolCache_InternDistinctChildren(t *testing.T) {
	cache := NewSymbolCache()
	symA, err := cache.Intern([]*ARef{NewNumber(2), mulOp, NewVariable("x")})
	if err != nil {
		t.Fatalf("Intern: %v", err)
	}
	symB, err := cache.Intern([]*ARef{NewNumber(3), mulOp, NewVariable("x")})
	if err != nil {
		t.Fatalf("Intern: %v", err)
	}
	if symA == symB {
		t.Errorf("distinct children should not share a symbol")
	}
}

func TestSymbolCache_NewComposite_Identity(t *testing.T) {
	cache := NewSymbolCache()
	children := []*ARef{NewNumber(2), mulOp, NewVariable("x")}
	a, err := cache.NewComposite(children, nil)
	if err != nil {
		t.Fatalf("NewComposite: %v", err)
	}
	b, err := cache.NewComposite(children, nil)
	if err != nil {
		t.Fatalf("NewComposite: %v", err)
	}
	if a.Symbol() != b.Symbol() {
		t.Errorf("structurally identical composites should share a symbol")
	}
}

func TestSymbolCache_Size(t *testing.T) {
	cache := NewSymbolCache()
	if cache.size() != 0 {
		t.Fatalf("fresh cache should report size 0")
	}
	if _, err := cache.Intern([]*ARef{NewNumber(1), plusOp, NewNumber(2)}); err != nil {
		t.Fatalf("Intern: %v", err)
	}
	if cache.size() != 1 {
		t.Errorf("want size 1 after one Intern, got %d", cache.size())
	}
	if _, err := cache.Intern([]*ARef{NewNumber(1), plusOp, NewNumber(2)}); err != nil {
		t.Fatalf("Intern: %v", err)
	}
	if cache.size() != 1 {
		t.Errorf("reinterning the same key should not grow the cache, got size %d", cache.size())
	}
}

func TestInternError_Message(t *testing.T) {
	err := &InternError{Key: "1\x1f+\x1f2"}
	if err.Error() == "" {
		t.Errorf("InternError should produce a non-empty message")
	}
}
