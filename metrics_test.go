package rewritesearch

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	// None of these should panic on a nil *Metrics — every call site in
	// search.go passes opts.Metrics unconditionally.
	m.incSearches(true)
	m.incExpansions()
	m.observeFrontierSize(3)
	m.observeSearchStart()
	m.incPhaseBRetries()
}

func TestNewMetrics_RegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	m.incSearches(true)
	m.incExpansions()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	if len(families) == 0 {
		t.Errorf("expected at least one registered metric family")
	}
}

func TestSearchModel_RecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	cache := NewSymbolCache()
	root := newRootModel(cache, []*ARef{NewNumber(3), plusOp, NewNumber(4)})

	outcome := SearchModel(root, Options{Metrics: m})
	if !outcome.Solved {
		t.Fatalf("expected 3 + 4 to solve")
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	recorded := false
	for _, f := range families {
		if f.GetName() == "rewritesearch_searches_total" {
			recorded = true
		}
	}
	if !recorded {
		t.Errorf("expected SearchModel to record rewritesearch_searches_total")
	}
}
