package parser

import "github.com/leapstack-labs/boolstep/pkg/token"

// Node is the interface for all expression AST nodes.
//
// The set of implementations is closed: *Literal, *Variable, *Not, *And,
// *Or and *Paren. Consumers are expected to switch over all of them.
type Node interface {
	Pos() token.Position
	node() // marker method to restrict implementation
}

// nodeBase provides common Position handling for all nodes.
// For operators the position is that of the operator token, for groups
// that of the opening parenthesis.
type nodeBase struct {
	pos token.Position
}

func (n *nodeBase) Pos() token.Position { return n.pos }
func (n *nodeBase) node()               {}

// Literal is True or False.
type Literal struct {
	nodeBase
	Value bool
}

// Variable is a reference to A, B or C.
type Variable struct {
	nodeBase
	Name string
}

// Not is logical negation.
type Not struct {
	nodeBase
	X Node
}

// And is logical conjunction.
type And struct {
	nodeBase
	X, Y Node
}

// Or is logical disjunction.
type Or struct {
	nodeBase
	X, Y Node
}

// Paren records a parenthesized group exactly as the user wrote it.
// It has no effect on the value of X.
type Paren struct {
	nodeBase
	X Node
}

// NewLiteral creates a literal node.
func NewLiteral(pos token.Position, v bool) *Literal {
	return &Literal{nodeBase: nodeBase{pos: pos}, Value: v}
}

// NewVariable creates a variable node.
func NewVariable(pos token.Position, name string) *Variable {
	return &Variable{nodeBase: nodeBase{pos: pos}, Name: name}
}

// NewNot creates a negation node.
func NewNot(pos token.Position, x Node) *Not {
	return &Not{nodeBase: nodeBase{pos: pos}, X: x}
}

// NewAnd creates a conjunction node.
func NewAnd(pos token.Position, x, y Node) *And {
	return &And{nodeBase: nodeBase{pos: pos}, X: x, Y: y}
}

// NewOr creates a disjunction node.
func NewOr(pos token.Position, x, y Node) *Or {
	return &Or{nodeBase: nodeBase{pos: pos}, X: x, Y: y}
}

// NewParen creates a group node.
func NewParen(pos token.Position, x Node) *Paren {
	return &Paren{nodeBase: nodeBase{pos: pos}, X: x}
}

// Unparen strips any number of enclosing groups.
func Unparen(n Node) Node {
	for {
		p, ok := n.(*Paren)
		if !ok {
			return n
		}
		n = p.X
	}
}
