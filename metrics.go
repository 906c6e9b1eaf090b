package rewritesearch

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects Prometheus instrumentation for one or more Search
// calls. The zero value is not usable directly — build one with
// NewMetrics — but every call site in this package takes a *Metrics
// that may be nil, so instrumentation is entirely opt-in: callers who
// don't want it simply leave Options.Metrics unset.
type Metrics struct {
	searchesTotal     *prometheus.CounterVec
	expansionsTotal   prometheus.Counter
	frontierSize      prometheus.Gauge
	searchDuration    prometheus.Histogram
	phaseBRetries     prometheus.Counter
}

// NewMetrics builds a Metrics and registers its collectors on reg. Pass
// prometheus.DefaultRegisterer to expose them on the default /metrics
// handler; cmd/simplify-server instead passes its own fresh
// prometheus.NewRegistry() and serves that on /metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		searchesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rewritesearch",
			Name:      "searches_total",
			Help:      "Number of Search calls, partitioned by outcome.",
		}, []string{"outcome"}),
		expansionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rewritesearch",
			Name:      "expansions_total",
			Help:      "Number of Models popped off the frontier and expanded.",
		}),
		frontierSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "rewritesearch",
			Name:      "frontier_size",
			Help:      "Size of the search frontier heap at the start of each loop iteration.",
		}),
		searchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "rewritesearch",
			Name:      "search_duration_seconds",
			Help:      "Wall-clock duration of a single Search/SearchModel call.",
			Buckets:   prometheus.DefBuckets,
		}),
		phaseBRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rewritesearch",
			Name:      "phase_b_retries_total",
			Help:      "Number of times deferred-compute (phase B) produced a re-pushable Model.",
		}),
	}
	reg.MustRegister(m.searchesTotal, m.expansionsTotal, m.frontierSize, m.searchDuration, m.phaseBRetries)
	return m
}

func (m *Metrics) incSearches(solved bool) {
	if m == nil {
		return
	}
	outcome := "no_solution"
	if solved {
		outcome = "solved"
	}
	m.searchesTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) incExpansions() {
	if m == nil {
		return
	}
	m.expansionsTotal.Inc()
}

func (m *Metrics) observeFrontierSize(n int) {
	if m == nil {
		return
	}
	m.frontierSize.Set(float64(n))
}

func (m *Metrics) observeSearchStart() {
	if m == nil {
		return
	}
	m.frontierSize.Set(1)
}

func (m *Metrics) observeSearchDuration(d time.Duration) {
	if m == nil {
		return
	}
	m.searchDuration.Observe(d.Seconds())
}

func (m *Metrics) incPhaseBRetries() {
	if m == nil {
		return
	}
	m.phaseBRetries.Inc()
}
