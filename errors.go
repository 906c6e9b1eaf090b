package rewritesearch

import "errors"

// Sentinel errors for the taxonomy spec §7 asks the driver to
// distinguish: a definitive negative result, a resource limit tripped
// before one was found, and caller-initiated cancellation. InternError
// (symtab.go) is the one fatal error the core itself can raise and is
// never wrapped by these.
var (
	// ErrStepLimit is returned when Options.MaxSteps expansions were
	// performed without reaching a goal Model.
	ErrStepLimit = errors.New("rewritesearch: step limit reached before a goal was found")

	// ErrCostExceeded is returned when every remaining frontier Model's
	// RemainCost exceeds Options.MaxCost, so continuing cannot possibly
	// find a cheaper solution than the ceiling already rules out.
	ErrCostExceeded = errors.New("rewritesearch: cost ceiling exceeded before a goal was found")

	// ErrCanceled is returned when the caller's context was done before a
	// goal was found.
	ErrCanceled = errors.New("rewritesearch: search canceled")

	// ErrExhausted is returned when the frontier ran dry — every
	// reachable state was visited and none was a goal. Distinct from
	// ErrStepLimit/ErrCostExceeded: this is a definitive "no solution
	// reachable under this generator roster," not a resource limit.
	ErrExhausted = errors.New("rewritesearch: search space exhausted without a goal")
)
