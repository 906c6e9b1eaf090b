package rewritesearch

// Operator refs carry no value and no children, so a single shared
// instance per character is safe to hand out everywhere (spec §3:
// "two ARefs with equal symbol are interchangeable").
var (
	plusOp  = NewOp('+')
	minusOp = NewOp('-')
	mulOp   = NewOp('*')
	divOp   = NewOp('/')
	powOp   = NewOp('^')
	lparen  = NewOp('(')
	rparen  = NewOp(')')
)
