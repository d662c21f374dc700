package parser

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sexpr renders a tree as an s-expression for compact comparisons.
func sexpr(n Node) string {
	switch n := n.(type) {
	case *Literal:
		if n.Value {
			return "True"
		}
		return "False"
	case *Variable:
		return n.Name
	case *Not:
		return fmt.Sprintf("(not %s)", sexpr(n.X))
	case *And:
		return fmt.Sprintf("(and %s %s)", sexpr(n.X), sexpr(n.Y))
	case *Or:
		return fmt.Sprintf("(or %s %s)", sexpr(n.X), sexpr(n.Y))
	case *Paren:
		return fmt.Sprintf("(group %s)", sexpr(n.X))
	default:
		return fmt.Sprintf("<%T>", n)
	}
}

func TestParser_ValidInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"literal", "True", "True"},
		{"variable", "b", "B"},
		{"precedence not and or", "not True or False and True", "(or (not True) (and False True))"},
		{"and binds tighter than or", "A or B and C", "(or A (and B C))"},
		{"and left assoc", "A and B and C", "(and (and A B) C)"},
		{"or left assoc", "A or B or C", "(or (or A B) C)"},
		{"chained not", "not not A", "(not (not A))"},
		{"not binds tighter than and", "not A and B", "(and (not A) B)"},
		{"group", "not (A and B)", "(not (group (and A B)))"},
		{"redundant group", "((A))", "(group (group A))"},
		{"aliases", "a && !b || c", "(or (and A (not B)) C)"},
		{"case insensitive", "TRUE AND false", "(and True False)"},
		{"de morgan right", "(not A) or (not B)", "(or (group (not A)) (group (not B)))"},
		{
			"preset with groups",
			"(True or False) and (not True or False)",
			"(and (group (or True False)) (group (or (not True) False)))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := ParseString(tt.input)
			require.NoError(t, err, "unexpected error")
			assert.Equal(t, tt.want, sexpr(n))
		})
	}
}

func TestParser_Positions(t *testing.T) {
	n, err := ParseString("A or not B")
	require.NoError(t, err)

	or, ok := n.(*Or)
	require.True(t, ok, "expected *Or, got %T", n)
	assert.Equal(t, 3, or.Pos().Column)

	not, ok := or.Y.(*Not)
	require.True(t, ok, "expected *Not, got %T", or.Y)
	assert.Equal(t, 6, not.Pos().Column)
	assert.Equal(t, 10, not.X.Pos().Column)
}

func TestParser_Errors(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantKind  error
		wantCol   int
		wantIndex int
	}{
		{"trailing operator", "A and", ErrUnexpectedEndOfInput, 6, 2},
		{"empty input", "", ErrUnexpectedEndOfInput, 1, 0},
		{"lone not", "not", ErrUnexpectedEndOfInput, 4, 1},
		{"unclosed group", "(A and B", ErrMissingClosingParen, 9, 4},
		{"unclosed group before token", "(A B", ErrMissingClosingParen, 4, 2},
		{"trailing token", "A B", ErrUnexpectedToken, 3, 1},
		{"stray close paren", ")", ErrUnexpectedToken, 1, 0},
		{"trailing close paren", "A)", ErrUnexpectedToken, 2, 1},
		{"double operator", "A and or B", ErrUnexpectedToken, 7, 2},
		{"empty group", "()", ErrUnexpectedToken, 2, 1},
		{"leading binary", "and A", ErrUnexpectedToken, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := ParseString(tt.input)
			require.Error(t, err)
			assert.Nil(t, n)
			assert.True(t, errors.Is(err, tt.wantKind), "expected %v, got %v", tt.wantKind, err)

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.wantCol, perr.Pos.Column, "column")
			assert.Equal(t, tt.wantIndex, perr.Index, "index")
		})
	}
}

func TestParser_UnexpectedTokenCarriesToken(t *testing.T) {
	_, err := ParseString("A or )")
	require.Error(t, err)

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, ")", perr.Token.Literal)
	assert.Equal(t, "UnexpectedToken", perr.Code())
	assert.Equal(t, `unexpected token ")" at column 6`, perr.Error())
}

func TestParser_ErrorSurfacing(t *testing.T) {
	_, err := ParseString("A and")
	assert.ErrorIs(t, err, ErrUnexpectedEndOfInput)

	_, err = ParseString("A xor B")
	assert.ErrorIs(t, err, ErrUnknownWord)
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "xor", perr.Text)
	assert.Equal(t, "UnknownWord", perr.Code())
}

func TestParser_NestingLimit(t *testing.T) {
	deep := strings.Repeat("(", maxDepth+1) + "A" + strings.Repeat(")", maxDepth+1)
	_, err := ParseString(deep)
	assert.ErrorIs(t, err, ErrNestingTooDeep)

	nots := strings.Repeat("not ", maxDepth+1) + "A"
	_, err = ParseString(nots)
	assert.ErrorIs(t, err, ErrNestingTooDeep)

	ok := strings.Repeat("(", 64) + "A" + strings.Repeat(")", 64)
	_, err = ParseString(ok)
	assert.NoError(t, err)
}

func TestParser_Deterministic(t *testing.T) {
	a, err := ParseString("not (A or B) and C or True")
	require.NoError(t, err)
	b, err := ParseString("not (A or B) and C or True")
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotSame(t, a, b)
}

func TestVariables(t *testing.T) {
	n, err := ParseString("C and (A or C) or not B and A")
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "A", "B"}, Variables(n))

	n, err = ParseString("True or False")
	require.NoError(t, err)
	assert.Empty(t, Variables(n))
}

func TestUnparen(t *testing.T) {
	n, err := ParseString("((A))")
	require.NoError(t, err)

	v, ok := Unparen(n).(*Variable)
	require.True(t, ok)
	assert.Equal(t, "A", v.Name)
}
