// Package eval evaluates parsed Boolean expressions against a variable
// assignment.
package eval

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/leapstack-labs/boolstep/pkg/parser"
	"github.com/leapstack-labs/boolstep/pkg/token"
)

// ErrUndefinedVariable is matched by *UndefinedVariableError via errors.Is.
var ErrUndefinedVariable = errors.New("undefined variable")

// UndefinedVariableError reports a variable missing from the environment,
// typically C while only A and B are in play.
type UndefinedVariableError struct {
	Name string
	Pos  token.Position
	Mode int // number of variables the environment defines
}

func (e *UndefinedVariableError) Error() string {
	return fmt.Sprintf("variable %s is not defined for %d-variable mode", e.Name, e.Mode)
}

func (e *UndefinedVariableError) Unwrap() error {
	return ErrUndefinedVariable
}

// Env maps variable names to values for one evaluation.
type Env map[string]bool

// NewEnv pairs names with values. It fails when the lengths differ, a name
// repeats or a name is not a variable of the language.
func NewEnv(names []string, values []bool) (Env, error) {
	if len(names) != len(values) {
		return nil, fmt.Errorf("got %d values for %d variables", len(values), len(names))
	}
	env := make(Env, len(names))
	for i, name := range names {
		if !token.IsVariable(name) {
			return nil, fmt.Errorf("unknown variable %q", name)
		}
		if _, dup := env[name]; dup {
			return nil, fmt.Errorf("duplicate variable %q", name)
		}
		env[name] = values[i]
	}
	return env, nil
}

// Names returns the defined variable names in sorted order.
func (e Env) Names() []string {
	names := make([]string, 0, len(e))
	for name := range e {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// String renders the environment as "A=True B=False".
func (e Env) String() string {
	parts := make([]string, 0, len(e))
	for _, name := range e.Names() {
		parts = append(parts, name+"="+token.Lit(e[name]).String())
	}
	return strings.Join(parts, " ")
}

// ParseAssignment parses pairs such as "A=true", "b=0" or "C=F" into env,
// starting from defaults. Every name in defaults stays defined; pairs may
// only set names that are present in defaults.
func ParseAssignment(defaults Env, pairs []string) (Env, error) {
	env := make(Env, len(defaults))
	for name, v := range defaults {
		env[name] = v
	}
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid assignment %q: expected NAME=VALUE", pair)
		}
		_, canonical, known := token.Lookup(strings.TrimSpace(name))
		if !known || !token.IsVariable(canonical) {
			return nil, fmt.Errorf("invalid assignment %q: unknown variable", pair)
		}
		if _, inMode := env[canonical]; !inMode {
			return nil, &UndefinedVariableError{Name: canonical, Mode: len(defaults)}
		}
		v, err := parseBool(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("invalid assignment %q: %w", pair, err)
		}
		env[canonical] = v
	}
	return env, nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "t", "true", "1":
		return true, nil
	case "f", "false", "0":
		return false, nil
	}
	return strconv.ParseBool(s)
}

// Evaluate computes the value of n under env. Both operands of and/or are
// always evaluated.
func Evaluate(n parser.Node, env Env) (bool, error) {
	switch n := n.(type) {
	case *parser.Literal:
		return n.Value, nil

	case *parser.Variable:
		v, ok := env[n.Name]
		if !ok {
			return false, &UndefinedVariableError{Name: n.Name, Pos: n.Pos(), Mode: len(env)}
		}
		return v, nil

	case *parser.Not:
		x, err := Evaluate(n.X, env)
		if err != nil {
			return false, err
		}
		return !x, nil

	case *parser.And:
		x, y, err := operands(n.X, n.Y, env)
		if err != nil {
			return false, err
		}
		return x && y, nil

	case *parser.Or:
		x, y, err := operands(n.X, n.Y, env)
		if err != nil {
			return false, err
		}
		return x || y, nil

	case *parser.Paren:
		return Evaluate(n.X, env)

	default:
		return false, fmt.Errorf("eval: unexpected node %T", n)
	}
}

func operands(x, y parser.Node, env Env) (bool, bool, error) {
	xv, err := Evaluate(x, env)
	if err != nil {
		return false, false, err
	}
	yv, err := Evaluate(y, env)
	if err != nil {
		return false, false, err
	}
	return xv, yv, nil
}
