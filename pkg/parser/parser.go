// Package parser tokenizes and parses Boolean expressions.
//
// # Usage
//
//	expr, err := parser.ParseString("not (A and B) or C")
//	if err != nil {
//	    // handle error; errors.Is(err, parser.ErrUnknownWord) etc.
//	}
//
// # Grammar
//
// The parser implements a recursive descent parser with one token of
// lookahead. Precedence from low to high is or, and, not:
//
//	expr    → orExpr
//	orExpr  → andExpr ( 'or' andExpr )*
//	andExpr → notExpr ( 'and' notExpr )*
//	notExpr → 'not' notExpr | primary
//	primary → 'true' | 'false' | VAR | '(' expr ')'
//
// Keywords are case-insensitive and '!', '&&' and '||' are accepted as
// aliases for not, and and or. Binary operators are left-associative.
package parser

import (
	"github.com/leapstack-labs/boolstep/pkg/token"
)

// maxDepth bounds group and negation nesting.
const maxDepth = 512

// Parser parses a token sequence into an AST.
type Parser struct {
	tokens []token.Token
	pos    int // index of the current token
	depth  int
}

// NewParser creates a new parser over tokens.
func NewParser(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse parses tokens into an AST.
func Parse(tokens []token.Token) (Node, error) {
	return NewParser(tokens).Parse()
}

// ParseString tokenizes and parses source.
func ParseString(source string) (Node, error) {
	tokens, err := Tokenize(source)
	if err != nil {
		return nil, err
	}
	return Parse(tokens)
}

// Parse parses the whole token sequence as one expression.
func (p *Parser) Parse() (Node, error) {
	n, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if tok, ok := p.current(); ok {
		return nil, p.unexpected(tok)
	}
	return n, nil
}

// ---------- Token Helpers ----------

// current returns the current token; ok is false at end of input.
func (p *Parser) current() (token.Token, bool) {
	if p.pos >= len(p.tokens) {
		return token.Token{}, false
	}
	return p.tokens[p.pos], true
}

// check returns true if the current token is of the given type.
func (p *Parser) check(t token.TokenType) bool {
	tok, ok := p.current()
	return ok && tok.Type == t
}

// advance consumes and returns the current token.
func (p *Parser) advance() token.Token {
	tok := p.tokens[p.pos]
	p.pos++
	return tok
}

// endPos returns the position just past the last token.
func (p *Parser) endPos() token.Position {
	if len(p.tokens) == 0 {
		return token.Position{Line: 1, Column: 1}
	}
	last := p.tokens[len(p.tokens)-1]
	n := len(last.Literal)
	return token.Position{
		Line:   last.Pos.Line,
		Column: last.Pos.Column + n,
		Offset: last.Pos.Offset + n,
	}
}

func (p *Parser) unexpected(tok token.Token) *ParseError {
	return &ParseError{
		Kind:  ErrUnexpectedToken,
		Pos:   tok.Pos,
		Text:  tok.Literal,
		Token: tok,
		Index: p.pos,
	}
}

func (p *Parser) errorAtCurrent(kind error) *ParseError {
	if tok, ok := p.current(); ok {
		return &ParseError{Kind: kind, Pos: tok.Pos, Token: tok, Index: p.pos}
	}
	return &ParseError{Kind: kind, Pos: p.endPos(), Index: p.pos}
}

func (p *Parser) enter() error {
	p.depth++
	if p.depth > maxDepth {
		return p.errorAtCurrent(ErrNestingTooDeep)
	}
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

// ---------- Grammar ----------

// parseOr parses: andExpr ( 'or' andExpr )*
func (p *Parser) parseOr() (Node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.check(token.OR) {
		op := p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = NewOr(op.Pos, left, right)
	}
	return left, nil
}

// parseAnd parses: notExpr ( 'and' notExpr )*
func (p *Parser) parseAnd() (Node, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.check(token.AND) {
		op := p.advance()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = NewAnd(op.Pos, left, right)
	}
	return left, nil
}

// parseNot parses: 'not' notExpr | primary
func (p *Parser) parseNot() (Node, error) {
	if !p.check(token.NOT) {
		return p.parsePrimary()
	}
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	op := p.advance()
	x, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	return NewNot(op.Pos, x), nil
}

// parsePrimary parses: 'true' | 'false' | VAR | '(' expr ')'
func (p *Parser) parsePrimary() (Node, error) {
	tok, ok := p.current()
	if !ok {
		return nil, p.errorAtCurrent(ErrUnexpectedEndOfInput)
	}

	switch tok.Type {
	case token.TRUE:
		p.advance()
		return NewLiteral(tok.Pos, true), nil
	case token.FALSE:
		p.advance()
		return NewLiteral(tok.Pos, false), nil
	case token.VAR:
		p.advance()
		return NewVariable(tok.Pos, tok.Literal), nil
	case token.LPAREN:
		return p.parseGroup()
	default:
		return nil, p.unexpected(tok)
	}
}

// parseGroup parses: '(' expr ')'
func (p *Parser) parseGroup() (Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	open := p.advance()
	x, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if !p.check(token.RPAREN) {
		return nil, p.errorAtCurrent(ErrMissingClosingParen)
	}
	p.advance()
	return NewParen(open.Pos, x), nil
}
