// Package format renders expression trees back to display tokens and text.
//
// Rendering keeps the user's parentheses and token order, so the output of
// Expr for a freshly parsed tree matches the source up to spacing, keyword
// case and operator aliases.
package format

import (
	"strings"

	"github.com/leapstack-labs/boolstep/pkg/parser"
	"github.com/leapstack-labs/boolstep/pkg/token"
)

// Span is a half-open range [Start, End) of token indices.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// NoSpan marks the absence of a highlighted range.
var NoSpan = Span{Start: -1, End: -1}

// IsEmpty reports whether the span covers no tokens.
func (s Span) IsEmpty() bool {
	return s.Start < 0 || s.End <= s.Start
}

// Len returns the number of tokens covered.
func (s Span) Len() int {
	if s.IsEmpty() {
		return 0
	}
	return s.End - s.Start
}

// Collapse returns the span the reduced range occupies once replaced by a
// single literal.
func (s Span) Collapse() Span {
	if s.IsEmpty() {
		return NoSpan
	}
	return Span{Start: s.Start, End: s.Start + 1}
}

// Tokens renders n as display tokens.
func Tokens(n parser.Node) []token.Token {
	p := newPrinter(nil)
	p.print(n)
	return p.tokens
}

// TokensWithSpan renders n and reports the span occupied by mark, which
// must be a node of n (compared by identity). The span is NoSpan when mark
// does not occur in n.
func TokensWithSpan(n, mark parser.Node) ([]token.Token, Span) {
	p := newPrinter(mark)
	p.print(n)
	return p.tokens, p.span
}

// Expr renders n as text.
func Expr(n parser.Node) string {
	return Join(Tokens(n))
}

// Join renders display tokens separated by single spaces.
func Join(tokens []token.Token) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}
