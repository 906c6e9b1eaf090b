// Package rewritesearch is a cost-directed symbolic simplifier for
// elementary algebraic expressions over integers and named variables.
//
// Design goals:
//   - A content-addressed expression graph with lazy numeric evaluation
//   - A family of rewrite generators enumerating successors in
//     non-decreasing local cost
//   - A best-first (A*-style) search driver with an admissible heuristic
//     and a deferred-compute phase
//   - Deterministic output: the same input and options always walk the
//     same path
//
// The package does not parse surface syntax itself; see the sibling
// parser package for a tokenizer/parser that produces the ARef sequence
// this package's search operates over.
package rewritesearch
