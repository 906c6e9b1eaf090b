package parser

import (
	"fmt"

	"github.com/njchilds90/rewritesearch"
)

// ParseError reports a syntax problem found while tokenizing or parsing
// an expression. It is the one error kind spec §7 says the external
// parser raises and the core surfaces unchanged.
type ParseError struct {
	Pos     int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parser: %s (at byte %d)", e.Message, e.Pos)
}

// Parse tokenizes and parses an arithmetic expression over integers,
// named variables, and + - * / ^ ( ), and returns the flattened
// top-level ref sequence spec §4.1 describes. Composites created for
// parenthesized sub-expressions are interned through cache, so a
// second Parse call sharing the same cache recognizes structurally
// identical groups as the same symbol.
//
// Subtraction is eliminated here, not left for the core to rewrite
// away: every "a - b" becomes "a + (-b)" (spec §4.1, §9's resolution of
// the subtraction Open Question), by negating the leading factor of
// the subtracted term — sound because multiplication associates, so
// -(b*c) = (-b)*c.
func Parse(cache *rewritesearch.SymbolCache, text string) ([]*rewritesearch.ARef, error) {
	p := &parser{lex: NewLexer(text), cache: cache}
	p.advance()
	refs, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.tok.Type != TokenEOF {
		return nil, &ParseError{Pos: p.tok.Pos, Message: fmt.Sprintf("unexpected %q", p.tok.Literal)}
	}
	if len(refs) == 0 {
		return nil, &ParseError{Pos: 0, Message: "empty expression"}
	}
	return refs, nil
}

// ParseModel is a convenience wrapper combining Parse with
// rewritesearch.NewRootModel — the thin adapter spec §6 describes as
// parseInitialModel(cache, expressionText) → Model.
func ParseModel(cache *rewritesearch.SymbolCache, text string) (*rewritesearch.Model, error) {
	refs, err := Parse(cache, text)
	if err != nil {
		return nil, err
	}
	return rewritesearch.NewRootModel(cache, refs), nil
}

type parser struct {
	lex   *Lexer
	cache *rewritesearch.SymbolCache
	tok   Token
}

func (p *parser) advance() { p.tok = p.lex.NextToken() }

// parseExpr parses term (('+'|'-') term)* and returns the single flat
// top-level ref sequence for the whole expression, with every '-'
// already folded into a negated leading factor of the following term.
func (p *parser) parseExpr() ([]*rewritesearch.ARef, error) {
	first, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	out := first
	for p.tok.Type == TokenPlus || p.tok.Type == TokenMinus {
		negate := p.tok.Type == TokenMinus
		p.advance()
		next, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		if negate {
			next[0] = rewritesearch.NegateRef(p.cache, next[0])
		}
		out = append(out, plusToken())
		out = append(out, next...)
	}
	return out, nil
}

// parseTerm parses unary (('*'|'/') unary)* and returns the flat
// token run for one additive term: alternating value/operator refs,
// never crossing a top-level '+' or '-'.
func (p *parser) parseTerm() ([]*rewritesearch.ARef, error) {
	first, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	out := []*rewritesearch.ARef{first}
	for {
		switch {
		case p.tok.Type == TokenStar || p.tok.Type == TokenSlash:
			opTok := p.tok
			p.advance()
			next, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			out = append(out, opRef(opTok.Type), next)
		case startsImplicitFactor(p.tok.Type):
			// Juxtaposition multiplication ("5y", "2(x+1)"): no explicit
			// '*' between a factor and the next one that starts a new
			// atom means multiply, the common algebra-calculator
			// convention spec's own E5 scenario ("5y") relies on.
			next, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			out = append(out, opRef(TokenStar), next)
		default:
			return out, nil
		}
	}
}

// startsImplicitFactor reports whether t can open a new factor without
// an explicit operator token in front of it.
func startsImplicitFactor(t TokenType) bool {
	return t == TokenNumber || t == TokenIdent || t == TokenLParen
}

// parseUnary parses ('-')* power, negating the wrapped power once per
// leading minus. Binds tighter than '*'/'/' but looser than '^': "-x^2"
// parses as -(x^2), matching ordinary algebraic convention.
func (p *parser) parseUnary() (*rewritesearch.ARef, error) {
	if p.tok.Type == TokenMinus {
		p.advance()
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return rewritesearch.NegateRef(p.cache, inner), nil
	}
	if p.tok.Type == TokenPlus {
		p.advance()
		return p.parseUnary()
	}
	return p.parsePower()
}

// parsePower parses atom ('^' unary)?, right-associative.
func (p *parser) parsePower() (*rewritesearch.ARef, error) {
	base, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if p.tok.Type != TokenCaret {
		return base, nil
	}
	p.advance()
	exp, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	children := []*rewritesearch.ARef{base, opRef(TokenCaret), exp}
	var compute rewritesearch.ComputeFunc
	if base.Kind() == rewritesearch.KindNumber {
		// A numeric base's power is fully known up front — unlike the
		// variable-base case (resolved by applyMul/applyDiv combining
		// powers), there is no generator that ever reduces this
		// composite, so it must carry its own lazy compute.
		compute = func() (int64, bool) {
			bv, ok := base.Value()
			if !ok {
				return 0, false
			}
			ev, ok := exp.Value()
			if !ok || ev < 0 {
				return 0, false
			}
			return intPow(bv, ev), true
		}
	}
	composite, err := p.cache.NewComposite(children, compute)
	if err != nil {
		return nil, &ParseError{Pos: p.tok.Pos, Message: err.Error()}
	}
	return composite, nil
}

func intPow(base, exp int64) int64 {
	r := int64(1)
	for i := int64(0); i < exp; i++ {
		r *= base
	}
	return r
}

// parseAtom parses a number, an identifier (variable), or a
// parenthesized sub-expression.
func (p *parser) parseAtom() (*rewritesearch.ARef, error) {
	switch p.tok.Type {
	case TokenNumber:
		v, err := parseInt(p.tok.Literal)
		if err != nil {
			return nil, &ParseError{Pos: p.tok.Pos, Message: err.Error()}
		}
		p.advance()
		return rewritesearch.NewNumber(v), nil
	case TokenIdent:
		name := p.tok.Literal
		p.advance()
		return rewritesearch.NewVariable(name), nil
	case TokenLParen:
		p.advance()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.tok.Type != TokenRParen {
			return nil, &ParseError{Pos: p.tok.Pos, Message: "expected ')'"}
		}
		p.advance()
		return p.wrapParen(inner)
	default:
		return nil, &ParseError{Pos: p.tok.Pos, Message: fmt.Sprintf("unexpected %q, want a number, identifier, or '('", p.tok.Literal)}
	}
}

// wrapParen folds a parenthesized group's flattened inner sequence into
// one term. A single-token group becomes the degenerate (lparen, x,
// rparen) shape the core's applyParenthesis generator elides in one
// step; a multi-token group becomes an opaque composite whose arefs
// are the exact inner flattened sequence (spec §3's "arefs: ... the
// exact flattened token list of the sub-expression") and whose compute
// thunk evaluates that sequence once every leaf is a known number.
func (p *parser) wrapParen(inner []*rewritesearch.ARef) (*rewritesearch.ARef, error) {
	if len(inner) == 1 {
		composite, err := p.cache.NewComposite([]*rewritesearch.ARef{opRef(TokenLParen), inner[0], opRef(TokenRParen)}, nil)
		if err != nil {
			return nil, &ParseError{Message: err.Error()}
		}
		return composite, nil
	}
	group := make([]*rewritesearch.ARef, len(inner))
	copy(group, inner)
	composite, err := p.cache.NewComposite(group, func() (int64, bool) { return evalFlatExpr(group) })
	if err != nil {
		return nil, &ParseError{Message: err.Error()}
	}
	return composite, nil
}

func plusToken() *rewritesearch.ARef { return opRef(TokenPlus) }

// opRef returns a shared operator ref for a lexer token type. Kept
// local to the parser package rather than reusing the core's
// unexported operator singletons — the parser is an external
// collaborator per spec §1 and constructs its own op refs, relying on
// ARef's symbol-equality contract (spec §3) to make them interchangeable
// with the core's.
func opRef(t TokenType) *rewritesearch.ARef {
	switch t {
	case TokenPlus:
		return rewritesearch.NewOp('+')
	case TokenMinus:
		return rewritesearch.NewOp('-')
	case TokenStar:
		return rewritesearch.NewOp('*')
	case TokenSlash:
		return rewritesearch.NewOp('/')
	case TokenCaret:
		return rewritesearch.NewOp('^')
	case TokenLParen:
		return rewritesearch.NewOp('(')
	case TokenRParen:
		return rewritesearch.NewOp(')')
	default:
		return rewritesearch.NewOp('?')
	}
}

func parseInt(s string) (int64, error) {
	var v int64
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("invalid digit %q in number %q", c, s)
		}
		v = v*10 + int64(c-'0')
	}
	return v, nil
}

// evalFlatExpr evaluates a flattened "val (+ val)*" sequence where each
// val is itself a "val (*|/ val)*" run, mirroring the shape every
// top-level Model sequence has once subtraction is normalized (spec
// §4.1). Returns ok=false as soon as any leaf's value is unknown — a
// variable, or a nested composite that hasn't resolved yet — so a
// grouped sub-expression with a free variable in it never reports a
// false value; it just never resolves, which is the expected fate of
// an opaque composite the generators can't see inside of.
func evalFlatExpr(refs []*rewritesearch.ARef) (int64, bool) {
	var total int64
	i := 0
	for i < len(refs) {
		termVal, next, ok := evalFlatTerm(refs, i)
		if !ok {
			return 0, false
		}
		total += termVal
		i = next + 1 // the '+' separator, if any term remains
		if i < len(refs) {
			i++ // step past it onto the next term's leading value
		}
	}
	return total, true
}

// evalFlatTerm evaluates one multiplicative run starting at i and
// returns its value plus the index of the last ref it consumed.
func evalFlatTerm(refs []*rewritesearch.ARef, i int) (int64, int, bool) {
	v, ok := refs[i].Value()
	if !ok {
		return 0, i, false
	}
	j := i + 1
	for j+1 < len(refs) && (refs[j].IsOp('*') || refs[j].IsOp('/')) {
		rv, ok := refs[j+1].Value()
		if !ok {
			return 0, j, false
		}
		if refs[j].IsOp('*') {
			v *= rv
		} else {
			if rv == 0 || v%rv != 0 {
				return 0, j, false
			}
			v /= rv
		}
		j += 2
	}
	return v, j - 1, true
}
