// Package trace produces the step-by-step reduction of an expression to a
// single literal, following operator precedence.
//
// Each step picks one target inside the current scope: the leftmost
// innermost parenthesized group, or the whole expression when no group is
// left. Inside the scope a negation of a literal is reduced first, then a
// conjunction of two literals, then a disjunction of two literals. A group
// that holds nothing but a literal loses its parentheses in a step of its
// own. Ties go to the leftmost candidate.
package trace

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/leapstack-labs/boolstep/pkg/eval"
	"github.com/leapstack-labs/boolstep/pkg/format"
	"github.com/leapstack-labs/boolstep/pkg/parser"
	"github.com/leapstack-labs/boolstep/pkg/token"
)

// OpKind identifies what a step reduced.
type OpKind int

const (
	OpNot OpKind = iota
	OpAnd
	OpOr
	OpParens
	OpDone
)

var opNames = map[OpKind]string{
	OpNot:    "not",
	OpAnd:    "and",
	OpOr:     "or",
	OpParens: "parens",
	OpDone:   "done",
}

func (k OpKind) String() string {
	if name, ok := opNames[k]; ok {
		return name
	}
	return fmt.Sprintf("OpKind(%d)", int(k))
}

// MarshalText encodes the kind by name.
func (k OpKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Step is one reduction. Highlight indexes into Before. For the final
// OpDone step Before and After both hold the single remaining literal and
// Highlight is format.NoSpan.
type Step struct {
	Before    []token.Token
	Highlight format.Span
	Op        OpKind
	Result    bool
	After     []token.Token
}

// Highlighted returns the tokens covered by Highlight.
func (s Step) Highlighted() []token.Token {
	if s.Highlight.IsEmpty() {
		return nil
	}
	return s.Before[s.Highlight.Start:s.Highlight.End]
}

// Description renders the step as "True and False  =>  False", or
// "Final result: True" for the last step.
func (s Step) Description() string {
	result := token.Lit(s.Result).String()
	if s.Op == OpDone {
		return "Final result: " + result
	}
	return format.Join(s.Highlighted()) + "  =>  " + result
}

// MarshalJSON encodes the step with display tokens as strings and the
// description included.
func (s Step) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Before      []string    `json:"before"`
		Highlight   format.Span `json:"highlight"`
		Op          OpKind      `json:"op"`
		Result      bool        `json:"result"`
		After       []string    `json:"after"`
		Description string      `json:"description"`
	}{
		Before:      words(s.Before),
		Highlight:   s.Highlight,
		Op:          s.Op,
		Result:      s.Result,
		After:       words(s.After),
		Description: s.Description(),
	})
}

func words(tokens []token.Token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.String()
	}
	return out
}

// errNoTarget signals a tree that is neither a literal nor reducible,
// which cannot come out of the parser.
var errNoTarget = errors.New("trace: no reducible sub-expression")

// Trace substitutes env into n and reduces it one operator at a time.
// The last step is always OpDone and its Result equals eval.Evaluate(n, env).
func Trace(n parser.Node, env eval.Env) ([]Step, error) {
	root, err := substitute(n, env)
	if err != nil {
		return nil, err
	}

	var steps []Step
	for {
		lit, done := root.(*parser.Literal)
		if done {
			final := []token.Token{token.Lit(lit.Value)}
			steps = append(steps, Step{
				Before:    final,
				Highlight: format.NoSpan,
				Op:        OpDone,
				Result:    lit.Value,
				After:     final,
			})
			return steps, nil
		}

		target, op, value, ok := next(root)
		if !ok {
			return nil, fmt.Errorf("%w in %q", errNoTarget, format.Expr(root))
		}

		before, span := format.TokensWithSpan(root, target)
		root = replace(root, target, parser.NewLiteral(target.Pos(), value))
		steps = append(steps, Step{
			Before:    before,
			Highlight: span,
			Op:        op,
			Result:    value,
			After:     format.Tokens(root),
		})
	}
}

// next picks the node to reduce in root and computes its value.
func next(root parser.Node) (parser.Node, OpKind, bool, bool) {
	var scope parser.Node = root
	if g := innermostGroup(root); g != nil {
		scope = g
	}

	if n := find(scope, negatesLiteral); n != nil {
		return n, OpNot, !literal(n.(*parser.Not).X), true
	}
	if n := find(scope, conjoinsLiterals); n != nil {
		a := n.(*parser.And)
		return n, OpAnd, literal(a.X) && literal(a.Y), true
	}
	if n := find(scope, disjoinsLiterals); n != nil {
		o := n.(*parser.Or)
		return n, OpOr, literal(o.X) || literal(o.Y), true
	}
	if g, ok := scope.(*parser.Paren); ok {
		if lit, ok := g.X.(*parser.Literal); ok {
			return g, OpParens, lit.Value, true
		}
	}
	return nil, 0, false, false
}

// innermostGroup returns the leftmost group that contains no other group.
func innermostGroup(n parser.Node) *parser.Paren {
	switch n := n.(type) {
	case *parser.Paren:
		if inner := innermostGroup(n.X); inner != nil {
			return inner
		}
		return n
	case *parser.Not:
		return innermostGroup(n.X)
	case *parser.And:
		if g := innermostGroup(n.X); g != nil {
			return g
		}
		return innermostGroup(n.Y)
	case *parser.Or:
		if g := innermostGroup(n.X); g != nil {
			return g
		}
		return innermostGroup(n.Y)
	}
	return nil
}

// find returns the first node of scope, in pre-order, that satisfies match.
// Matches for and/or never nest inside each other, so pre-order and in-order
// agree on which one comes first.
func find(scope parser.Node, match func(parser.Node) bool) parser.Node {
	var found parser.Node
	parser.Inspect(scope, func(n parser.Node) bool {
		if found != nil {
			return false
		}
		if match(n) {
			found = n
			return false
		}
		return true
	})
	return found
}

func negatesLiteral(n parser.Node) bool {
	not, ok := n.(*parser.Not)
	return ok && isLiteral(not.X)
}

func conjoinsLiterals(n parser.Node) bool {
	and, ok := n.(*parser.And)
	return ok && isLiteral(and.X) && isLiteral(and.Y)
}

func disjoinsLiterals(n parser.Node) bool {
	or, ok := n.(*parser.Or)
	return ok && isLiteral(or.X) && isLiteral(or.Y)
}

func isLiteral(n parser.Node) bool {
	_, ok := n.(*parser.Literal)
	return ok
}

func literal(n parser.Node) bool {
	return n.(*parser.Literal).Value
}

// substitute returns a copy of n with every variable replaced by its value.
func substitute(n parser.Node, env eval.Env) (parser.Node, error) {
	switch n := n.(type) {
	case *parser.Literal:
		return n, nil
	case *parser.Variable:
		v, ok := env[n.Name]
		if !ok {
			return nil, &eval.UndefinedVariableError{Name: n.Name, Pos: n.Pos(), Mode: len(env)}
		}
		return parser.NewLiteral(n.Pos(), v), nil
	case *parser.Not:
		x, err := substitute(n.X, env)
		if err != nil {
			return nil, err
		}
		return parser.NewNot(n.Pos(), x), nil
	case *parser.And:
		x, y, err := substitutePair(n.X, n.Y, env)
		if err != nil {
			return nil, err
		}
		return parser.NewAnd(n.Pos(), x, y), nil
	case *parser.Or:
		x, y, err := substitutePair(n.X, n.Y, env)
		if err != nil {
			return nil, err
		}
		return parser.NewOr(n.Pos(), x, y), nil
	case *parser.Paren:
		x, err := substitute(n.X, env)
		if err != nil {
			return nil, err
		}
		return parser.NewParen(n.Pos(), x), nil
	}
	return nil, fmt.Errorf("trace: unexpected node %T", n)
}

func substitutePair(x, y parser.Node, env eval.Env) (parser.Node, parser.Node, error) {
	xs, err := substitute(x, env)
	if err != nil {
		return nil, nil, err
	}
	ys, err := substitute(y, env)
	if err != nil {
		return nil, nil, err
	}
	return xs, ys, nil
}

// replace returns root with target swapped for repl. Only the nodes on the
// path from root to target are copied.
func replace(root, target, repl parser.Node) parser.Node {
	if root == target {
		return repl
	}
	switch n := root.(type) {
	case *parser.Not:
		if x := replace(n.X, target, repl); x != n.X {
			return parser.NewNot(n.Pos(), x)
		}
	case *parser.And:
		x, y := replace(n.X, target, repl), replace(n.Y, target, repl)
		if x != n.X || y != n.Y {
			return parser.NewAnd(n.Pos(), x, y)
		}
	case *parser.Or:
		x, y := replace(n.X, target, repl), replace(n.Y, target, repl)
		if x != n.X || y != n.Y {
			return parser.NewOr(n.Pos(), x, y)
		}
	case *parser.Paren:
		if x := replace(n.X, target, repl); x != n.X {
			return parser.NewParen(n.Pos(), x)
		}
	}
	return root
}
