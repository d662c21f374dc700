package format

import (
	"github.com/leapstack-labs/boolstep/pkg/parser"
	"github.com/leapstack-labs/boolstep/pkg/token"
)

// Printer flattens an expression tree into display tokens.
type Printer struct {
	tokens []token.Token
	mark   parser.Node
	span   Span
}

func newPrinter(mark parser.Node) *Printer {
	return &Printer{mark: mark, span: NoSpan}
}

func (p *Printer) emit(t token.TokenType) {
	p.tokens = append(p.tokens, token.Token{Type: t})
}

func (p *Printer) print(n parser.Node) {
	marked := p.mark != nil && n == p.mark
	if marked {
		p.span.Start = len(p.tokens)
	}

	switch n := n.(type) {
	case *parser.Literal:
		p.tokens = append(p.tokens, token.Lit(n.Value))
	case *parser.Variable:
		p.tokens = append(p.tokens, token.Token{Type: token.VAR, Literal: n.Name})
	case *parser.Not:
		p.emit(token.NOT)
		p.print(n.X)
	case *parser.And:
		p.print(n.X)
		p.emit(token.AND)
		p.print(n.Y)
	case *parser.Or:
		p.print(n.X)
		p.emit(token.OR)
		p.print(n.Y)
	case *parser.Paren:
		p.emit(token.LPAREN)
		p.print(n.X)
		p.emit(token.RPAREN)
	}

	if marked {
		p.span.End = len(p.tokens)
	}
}
