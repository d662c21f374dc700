// Package truthtable enumerates every assignment of the active variables
// and evaluates an expression for each of them.
package truthtable

import (
	"fmt"

	"github.com/leapstack-labs/boolstep/pkg/eval"
	"github.com/leapstack-labs/boolstep/pkg/parser"
	"github.com/leapstack-labs/boolstep/pkg/token"
)

// Row is one assignment and the value of the expression under it.
// Inputs follow the order of Table.Vars.
type Row struct {
	Inputs []bool `json:"inputs"`
	Result bool   `json:"result"`
}

// Table is a complete truth table. Row r assigns variable i the bit
// (r >> (len(Vars)-1-i)) & 1, so the first variable changes slowest.
type Table struct {
	Vars []string `json:"vars"`
	Rows []Row    `json:"rows"`
}

// VarsForMode returns the variables of the 2- or 3-variable mode.
func VarsForMode(mode int) ([]string, error) {
	all := token.Variables()
	switch mode {
	case 2, 3:
		return all[:mode], nil
	}
	return nil, fmt.Errorf("unsupported variable mode %d: must be 2 or 3", mode)
}

// Generate evaluates n for all 2^len(vars) assignments. A failure in any
// row fails the whole table.
func Generate(n parser.Node, vars []string) (*Table, error) {
	if len(vars) == 0 || len(vars) > len(token.Variables()) {
		return nil, fmt.Errorf("truth table needs 1 to %d variables, got %d", len(token.Variables()), len(vars))
	}

	count := 1 << len(vars)
	t := &Table{
		Vars: append([]string(nil), vars...),
		Rows: make([]Row, 0, count),
	}
	for r := 0; r < count; r++ {
		inputs := Assignment(r, len(vars))
		env, err := eval.NewEnv(vars, inputs)
		if err != nil {
			return nil, err
		}
		result, err := eval.Evaluate(n, env)
		if err != nil {
			return nil, err
		}
		t.Rows = append(t.Rows, Row{Inputs: inputs, Result: result})
	}
	return t, nil
}

// Assignment returns the inputs of row r for n variables.
func Assignment(r, n int) []bool {
	inputs := make([]bool, n)
	for i := range inputs {
		inputs[i] = (r>>(n-1-i))&1 == 1
	}
	return inputs
}

// Env returns the environment of row r.
func (t *Table) Env(r int) eval.Env {
	env := make(eval.Env, len(t.Vars))
	for i, name := range t.Vars {
		env[name] = t.Rows[r].Inputs[i]
	}
	return env
}

// Results returns the result column.
func (t *Table) Results() []bool {
	out := make([]bool, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row.Result
	}
	return out
}

// Comparison holds the tables of two expressions over the same variables.
type Comparison struct {
	Left       *Table `json:"left"`
	Right      *Table `json:"right"`
	Matches    []bool `json:"matches"`
	Equivalent bool   `json:"equivalent"`
}

// Compare builds both tables and reports which rows agree. The expressions
// are equivalent when every row does.
func Compare(a, b parser.Node, vars []string) (*Comparison, error) {
	left, err := Generate(a, vars)
	if err != nil {
		return nil, fmt.Errorf("left expression: %w", err)
	}
	right, err := Generate(b, vars)
	if err != nil {
		return nil, fmt.Errorf("right expression: %w", err)
	}

	c := &Comparison{
		Left:       left,
		Right:      right,
		Matches:    make([]bool, len(left.Rows)),
		Equivalent: true,
	}
	for i := range left.Rows {
		c.Matches[i] = left.Rows[i].Result == right.Rows[i].Result
		if !c.Matches[i] {
			c.Equivalent = false
		}
	}
	return c, nil
}
