package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/boolstep/pkg/format"
	"github.com/leapstack-labs/boolstep/pkg/token"
)

// TokenStyle returns the style for a display token.
func (s *Styles) TokenStyle(t token.Token) lipgloss.Style {
	switch t.Type {
	case token.NOT:
		return s.Not
	case token.AND:
		return s.And
	case token.OR:
		return s.Or
	case token.TRUE:
		return s.True
	case token.FALSE:
		return s.False
	case token.LPAREN, token.RPAREN:
		return s.Paren
	default:
		return s.Variable
	}
}

// Bool renders a value as True or False in its colour.
func (r *Renderer) Bool(v bool) string {
	t := token.Lit(v)
	if r.EffectiveMode() != ModeText {
		return t.String()
	}
	return r.styles.TokenStyle(t).Render(t.String())
}

// Expr renders display tokens with span marked. In text mode tokens are
// coloured by kind and the span is underlined; in markdown the span is
// wrapped in bold markers.
func (r *Renderer) Expr(tokens []token.Token, span format.Span) string {
	text := r.EffectiveMode() == ModeText
	parts := make([]string, 0, len(tokens))
	for i, t := range tokens {
		s := t.String()
		if text {
			style := r.styles.TokenStyle(t)
			if !span.IsEmpty() && i >= span.Start && i < span.End {
				style = style.Inherit(r.styles.Highlight)
			}
			s = style.Render(s)
		}
		parts = append(parts, s)
	}
	if text || span.IsEmpty() || span.End > len(parts) {
		return strings.Join(parts, " ")
	}

	before := strings.Join(parts[:span.Start], " ")
	marked := "**" + strings.Join(parts[span.Start:span.End], " ") + "**"
	after := strings.Join(parts[span.End:], " ")
	return strings.TrimSpace(strings.Join([]string{before, marked, after}, " "))
}

// Title capitalizes each word of s, as in "Not Equivalent".
func Title(s string) string {
	return cases.Title(language.English).String(s)
}
