package rewritesearch

import "math"

type termGroupKind int

const (
	groupNumber termGroupKind = iota
	groupVariable
	groupComposite
)

type termGroup struct {
	kind  termGroupKind
	count int
}

// heuristic is an admissible lower bound on the remaining cost to reach
// a goal form, computed once per Model (spec §4.5). It never exceeds the
// true remaining cost: every charge below corresponds to at least one
// rewrite the search must still perform.
func heuristic(refs []*ARef, cost CostModel, maxMagnitude int) int {
	if isGoal(refs) {
		return 0
	}

	groups := make(map[string]*termGroup)
	order := make([]string, 0)
	for _, t := range termsOf(refs) {
		var key string
		var kind termGroupKind
		switch t.Kind() {
		case KindNumber:
			key, kind = "#number", groupNumber
		case KindVariable:
			key, kind = "var:"+t.Symbol(), groupVariable
		case KindComposite:
			key, kind = "cmp:"+t.Symbol(), groupComposite
		default:
			continue
		}
		g, ok := groups[key]
		if !ok {
			g = &termGroup{kind: kind}
			groups[key] = g
			order = append(order, key)
		}
		g.count++
	}

	logMax := log10Floor(maxMagnitude)
	numberBase := cost.AddPerDigit * logMax

	total := 0
	for _, key := range order {
		g := groups[key]
		if g.count < 2 {
			continue
		}
		var base int
		switch g.kind {
		case groupNumber:
			base = numberBase
		case groupComposite:
			base = cost.ExprCombine
		case groupVariable:
			base = cost.VarCombine
		}
		total += (g.count - 1) * base
	}
	if len(order) > 1 {
		total += (len(order) - 1) * cost.VarBase
	}

	total += cost.MulSingleDigit * logMax * countFoldableOps(refs)

	if total < 0 {
		return 0
	}
	return total
}

// log10Floor returns floor(log10(n)) for n >= 1, clamped to a minimum of
// 1 so the heuristic's per-group charges never vanish for a reasonably
// sized MAX bound.
func log10Floor(n int) int {
	if n < 10 {
		return 1
	}
	return int(math.Log10(float64(n)))
}

// countFoldableOps counts every *, /, or ^ operator ref reachable from
// refs, including inside composites' children. Operators inside
// composites that are already folded (a c*v coefficient, a v^p power,
// a multiplied-out product) are counted too.
func countFoldableOps(refs []*ARef) int {
	count := 0
	for _, r := range refs {
		if r.Kind() == KindOp {
			switch r.Symbol() {
			case "*", "/", "^":
				count++
			}
		}
		if kids := r.Children(); len(kids) > 0 {
			count += countFoldableOps(kids)
		}
	}
	return count
}
