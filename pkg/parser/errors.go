package parser

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/boolstep/pkg/token"
)

// Error kinds. A *ParseError unwraps to exactly one of these, so callers can
// match with errors.Is.
var (
	ErrUnknownWord          = errors.New("unknown word")
	ErrUnexpectedCharacter  = errors.New("unexpected character")
	ErrUnexpectedToken      = errors.New("unexpected token")
	ErrMissingClosingParen  = errors.New("missing closing parenthesis")
	ErrUnexpectedEndOfInput = errors.New("unexpected end of expression")
	ErrNestingTooDeep       = errors.New("expression nested too deeply")
)

// ParseError represents a tokenizer or parser error with position information.
type ParseError struct {
	Kind  error // one of the Err* kinds above
	Pos   token.Position
	Text  string      // offending word, character or token text
	Token token.Token // offending token (ErrUnexpectedToken only)
	Index int         // token index for parser errors, -1 for lexer errors
}

func (e *ParseError) Error() string {
	msg := e.Kind.Error()
	if e.Text != "" {
		msg = fmt.Sprintf("%s %q", msg, e.Text)
	}
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s at %s", msg, e.Pos)
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Kind
}

// Code returns a stable identifier for the error kind, suitable for
// machine-readable output.
func (e *ParseError) Code() string {
	switch e.Kind {
	case ErrUnknownWord:
		return "UnknownWord"
	case ErrUnexpectedCharacter:
		return "UnexpectedCharacter"
	case ErrUnexpectedToken:
		return "UnexpectedToken"
	case ErrMissingClosingParen:
		return "MissingClosingParen"
	case ErrUnexpectedEndOfInput:
		return "UnexpectedEndOfInput"
	case ErrNestingTooDeep:
		return "NestingTooDeep"
	default:
		return "ParseError"
	}
}

func newLexError(kind error, pos token.Position, text string) *ParseError {
	return &ParseError{Kind: kind, Pos: pos, Text: text, Index: -1}
}
