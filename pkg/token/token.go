// Package token defines the lexical tokens of the Boolean expression language.
//
// The token set is closed: operators (not, and, or), grouping parentheses,
// the two literals and the single-letter variables A, B and C.
package token

import (
	"fmt"

	"golang.org/x/text/cases"
)

// TokenType represents the type of a lexical token.
//
//nolint:revive // Accept stutter as token.TokenType is clear and widely used
type TokenType int

const (
	ILLEGAL TokenType = iota

	NOT    // not, !
	AND    // and, &&
	OR     // or, ||
	LPAREN // (
	RPAREN // )
	TRUE   // true
	FALSE  // false
	VAR    // A, B, C
)

// String returns a human-readable representation of the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", t)
}

var tokenNames = map[TokenType]string{
	ILLEGAL: "ILLEGAL",
	NOT:     "NOT",
	AND:     "AND",
	OR:      "OR",
	LPAREN:  "(",
	RPAREN:  ")",
	TRUE:    "TRUE",
	FALSE:   "FALSE",
	VAR:     "VAR",
}

// keywords maps case-folded keyword strings to their token types.
var keywords = map[string]TokenType{
	"not":   NOT,
	"and":   AND,
	"or":    OR,
	"true":  TRUE,
	"false": FALSE,
}

var variables = [...]string{"A", "B", "C"}

// Variables returns the variable names the language accepts, in declared order.
func Variables() []string {
	out := variables
	return out[:]
}

// foldedVariables maps each case-folded variable name to its canonical form.
var foldedVariables = func() map[string]string {
	fold := cases.Fold()
	m := make(map[string]string, len(variables))
	for _, name := range variables {
		m[fold.String(name)] = name
	}
	return m
}()

// Resolver resolves words to keyword or variable token types. It reuses
// one case folder, so a Resolver must not be shared between goroutines.
type Resolver struct {
	fold cases.Caser
}

// NewResolver returns a Resolver ready for use.
func NewResolver() *Resolver {
	return &Resolver{fold: cases.Fold()}
}

// Lookup resolves a word. The match is case-insensitive. The last result
// is false when the word is neither a keyword nor a known variable.
func (r *Resolver) Lookup(word string) (TokenType, string, bool) {
	folded := r.fold.String(word)
	if t, ok := keywords[folded]; ok {
		return t, folded, true
	}
	if name, ok := foldedVariables[folded]; ok {
		return VAR, name, true
	}
	return ILLEGAL, word, false
}

// Lookup resolves a single word with a fresh Resolver.
func Lookup(word string) (TokenType, string, bool) {
	return NewResolver().Lookup(word)
}

// IsVariable reports whether name is one of the language's variables.
func IsVariable(name string) bool {
	for _, v := range variables {
		if v == name {
			return true
		}
	}
	return false
}

// Token is a single lexical token.
type Token struct {
	Type    TokenType
	Literal string // variable name for VAR, source text otherwise
	Pos     Position
}

// Lit returns the display token for a Boolean value.
func Lit(v bool) Token {
	if v {
		return Token{Type: TRUE, Literal: "True"}
	}
	return Token{Type: FALSE, Literal: "False"}
}

// IsValue reports whether the token is a Boolean literal.
func (t Token) IsValue() bool {
	return t.Type == TRUE || t.Type == FALSE
}

// IsOperator reports whether the token is not, and or or.
func (t Token) IsOperator() bool {
	return t.Type == NOT || t.Type == AND || t.Type == OR
}

// String returns the display form of the token. Literals are
// capitalized and operators are lower case.
func (t Token) String() string {
	switch t.Type {
	case NOT:
		return "not"
	case AND:
		return "and"
	case OR:
		return "or"
	case LPAREN:
		return "("
	case RPAREN:
		return ")"
	case TRUE:
		return "True"
	case FALSE:
		return "False"
	case VAR:
		return t.Literal
	default:
		return t.Literal
	}
}
