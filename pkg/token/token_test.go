package token

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		word     string
		wantType TokenType
		wantLit  string
		wantOK   bool
	}{
		{"not", NOT, "not", true},
		{"NOT", NOT, "not", true},
		{"And", AND, "and", true},
		{"oR", OR, "or", true},
		{"True", TRUE, "true", true},
		{"FALSE", FALSE, "false", true},
		{"a", VAR, "A", true},
		{"C", VAR, "C", true},
		{"d", ILLEGAL, "d", false},
		{"xor", ILLEGAL, "xor", false},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			typ, lit, ok := Lookup(tt.word)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantType, typ)
			assert.Equal(t, tt.wantLit, lit)
		})
	}
}

func TestResolver_Reuse(t *testing.T) {
	r := NewResolver()
	words := []string{"NOT", "a", "xor", "And", "c", "TRUE", "b", "Or", "false", "d"}

	for round := 0; round < 3; round++ {
		for _, w := range words {
			typ, lit, ok := r.Lookup(w)
			wantType, wantLit, wantOK := Lookup(w)
			assert.Equal(t, wantType, typ, "round %d word %q", round, w)
			assert.Equal(t, wantLit, lit, "round %d word %q", round, w)
			assert.Equal(t, wantOK, ok, "round %d word %q", round, w)
		}
	}
}

func TestResolver_OnePerGoroutine(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r := NewResolver()
			for j := 0; j < 200; j++ {
				typ, lit, ok := r.Lookup("oR")
				assert.True(t, ok)
				assert.Equal(t, OR, typ)
				assert.Equal(t, "or", lit)
			}
		}()
	}
	wg.Wait()
}

func TestTokenString(t *testing.T) {
	assert.Equal(t, "True", Lit(true).String())
	assert.Equal(t, "False", Lit(false).String())
	assert.Equal(t, "not", Token{Type: NOT, Literal: "!"}.String())
	assert.Equal(t, "and", Token{Type: AND, Literal: "&&"}.String())
	assert.Equal(t, "or", Token{Type: OR, Literal: "||"}.String())
	assert.Equal(t, "B", Token{Type: VAR, Literal: "B"}.String())
	assert.Equal(t, "TOKEN(42)", TokenType(42).String())
}

func TestTokenPredicates(t *testing.T) {
	assert.True(t, Lit(true).IsValue())
	assert.False(t, Token{Type: VAR, Literal: "A"}.IsValue())
	assert.True(t, Token{Type: OR}.IsOperator())
	assert.False(t, Token{Type: LPAREN}.IsOperator())
	assert.True(t, IsVariable("A"))
	assert.False(t, IsVariable("a"))
}

func TestPositionString(t *testing.T) {
	assert.Equal(t, "column 3", Position{Line: 1, Column: 3, Offset: 2}.String())
	assert.Equal(t, "line 2, column 1", Position{Line: 2, Column: 1}.String())
	assert.Equal(t, "-", Position{}.String())
}
