package parser

import (
	"unicode/utf8"

	"github.com/leapstack-labs/boolstep/pkg/token"
)

// Lexer tokenizes Boolean expression input.
type Lexer struct {
	input   string
	words   *token.Resolver
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      byte // current char under examination
	line    int  // current line number (1-based)
	col     int  // current column number (1-based)
}

// NewLexer creates a new Lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{
		input: input,
		words: token.NewResolver(),
		line:  1,
		col:   0,
	}
	l.readChar()
	return l
}

// Tokenize converts source into a flat token sequence.
func Tokenize(source string) ([]token.Token, error) {
	return NewLexer(source).Tokenize()
}

// Tokenize converts the remaining input into a slice of tokens.
// No end-of-input token is appended.
func (l *Lexer) Tokenize() ([]token.Token, error) {
	var tokens []token.Token
	for {
		l.skipWhitespace()
		if l.atEOF() {
			return tokens, nil
		}
		tok, err := l.nextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
}

// nextToken scans one token starting at the current character.
func (l *Lexer) nextToken() (token.Token, error) {
	pos := l.currentPos()

	switch l.ch {
	case '(':
		return l.single(token.LPAREN, pos), nil
	case ')':
		return l.single(token.RPAREN, pos), nil
	case '!':
		return l.single(token.NOT, pos), nil
	case '&':
		if l.peekChar() == '&' {
			l.readChar()
			l.readChar()
			return token.Token{Type: token.AND, Literal: "&&", Pos: pos}, nil
		}
	case '|':
		if l.peekChar() == '|' {
			l.readChar()
			l.readChar()
			return token.Token{Type: token.OR, Literal: "||", Pos: pos}, nil
		}
	default:
		if isLetter(l.ch) {
			return l.readWord(pos)
		}
	}

	r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
	return token.Token{}, newLexError(ErrUnexpectedCharacter, pos, string(r))
}

// readWord reads a maximal run of letters and resolves it.
func (l *Lexer) readWord(pos token.Position) (token.Token, error) {
	start := l.pos
	for isLetter(l.ch) && !l.atEOF() {
		l.readChar()
	}
	word := l.input[start:l.pos]

	typ, name, ok := l.words.Lookup(word)
	if !ok {
		return token.Token{}, newLexError(ErrUnknownWord, pos, word)
	}
	if typ == token.VAR {
		return token.Token{Type: typ, Literal: name, Pos: pos}, nil
	}
	return token.Token{Type: typ, Literal: word, Pos: pos}, nil
}

func (l *Lexer) single(t token.TokenType, pos token.Position) token.Token {
	tok := token.Token{Type: t, Literal: string(l.ch), Pos: pos}
	l.readChar()
	return tok
}

// readChar advances to the next character.
func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0 // ASCII NUL = EOF
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++

	if l.pos > 0 && l.pos <= len(l.input) && l.input[l.pos-1] == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

func (l *Lexer) skipWhitespace() {
	for !l.atEOF() && (l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r') {
		l.readChar()
	}
}

// currentPos returns the current position.
func (l *Lexer) currentPos() token.Position {
	return token.Position{
		Line:   l.line,
		Column: l.col,
		Offset: l.pos,
	}
}

func isLetter(ch byte) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
}
