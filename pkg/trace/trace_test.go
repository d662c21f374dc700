package trace

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/boolstep/pkg/eval"
	"github.com/leapstack-labs/boolstep/pkg/format"
	"github.com/leapstack-labs/boolstep/pkg/parser"
)

// wantStep is a compact expectation for a single step.
type wantStep struct {
	before string
	span   format.Span
	op     OpKind
	result bool
	after  string
}

func mustTrace(t *testing.T, src string, env eval.Env) []Step {
	t.Helper()
	n, err := parser.ParseString(src)
	require.NoError(t, err, "parse %q", src)
	steps, err := Trace(n, env)
	require.NoError(t, err, "trace %q", src)
	return steps
}

func assertSteps(t *testing.T, want []wantStep, got []Step) {
	t.Helper()
	require.Len(t, got, len(want), "step count")
	for i, w := range want {
		g := got[i]
		assert.Equal(t, w.before, format.Join(g.Before), "step %d before", i)
		assert.Equal(t, w.span, g.Highlight, "step %d span", i)
		assert.Equal(t, w.op, g.Op, "step %d op", i)
		assert.Equal(t, w.result, g.Result, "step %d result", i)
		assert.Equal(t, w.after, format.Join(g.After), "step %d after", i)
	}
}

func TestTrace_Presets(t *testing.T) {
	tests := []struct {
		expr  string
		steps []wantStep
	}{
		{
			expr: "not True or False and True",
			steps: []wantStep{
				{"not True or False and True", format.Span{Start: 0, End: 2}, OpNot, false, "False or False and True"},
				{"False or False and True", format.Span{Start: 2, End: 5}, OpAnd, false, "False or False"},
				{"False or False", format.Span{Start: 0, End: 3}, OpOr, false, "False"},
				{"False", format.NoSpan, OpDone, false, "False"},
			},
		},
		{
			expr: "True and False or not False",
			steps: []wantStep{
				{"True and False or not False", format.Span{Start: 4, End: 6}, OpNot, true, "True and False or True"},
				{"True and False or True", format.Span{Start: 0, End: 3}, OpAnd, false, "False or True"},
				{"False or True", format.Span{Start: 0, End: 3}, OpOr, true, "True"},
				{"True", format.NoSpan, OpDone, true, "True"},
			},
		},
		{
			expr: "not (True and False) or True",
			steps: []wantStep{
				{"not ( True and False ) or True", format.Span{Start: 2, End: 5}, OpAnd, false, "not ( False ) or True"},
				{"not ( False ) or True", format.Span{Start: 1, End: 4}, OpParens, false, "not False or True"},
				{"not False or True", format.Span{Start: 0, End: 2}, OpNot, true, "True or True"},
				{"True or True", format.Span{Start: 0, End: 3}, OpOr, true, "True"},
				{"True", format.NoSpan, OpDone, true, "True"},
			},
		},
		{
			expr: "(True or False) and (not True or False)",
			steps: []wantStep{
				{"( True or False ) and ( not True or False )", format.Span{Start: 1, End: 4}, OpOr, true, "( True ) and ( not True or False )"},
				{"( True ) and ( not True or False )", format.Span{Start: 0, End: 3}, OpParens, true, "True and ( not True or False )"},
				{"True and ( not True or False )", format.Span{Start: 3, End: 5}, OpNot, false, "True and ( False or False )"},
				{"True and ( False or False )", format.Span{Start: 3, End: 6}, OpOr, false, "True and ( False )"},
				{"True and ( False )", format.Span{Start: 2, End: 5}, OpParens, false, "True and False"},
				{"True and False", format.Span{Start: 0, End: 3}, OpAnd, false, "False"},
				{"False", format.NoSpan, OpDone, false, "False"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			assertSteps(t, tt.steps, mustTrace(t, tt.expr, nil))
		})
	}
}

func TestTrace_ChainedOperatorsReduceLeftToRight(t *testing.T) {
	env := eval.Env{"A": true, "B": false, "C": true}

	assertSteps(t, []wantStep{
		{"True and False and True", format.Span{Start: 0, End: 3}, OpAnd, false, "False and True"},
		{"False and True", format.Span{Start: 0, End: 3}, OpAnd, false, "False"},
		{"False", format.NoSpan, OpDone, false, "False"},
	}, mustTrace(t, "A and B and C", env))

	env = eval.Env{"A": false, "B": true, "C": false}
	assertSteps(t, []wantStep{
		{"False or True or False", format.Span{Start: 0, End: 3}, OpOr, true, "True or False"},
		{"True or False", format.Span{Start: 0, End: 3}, OpOr, true, "True"},
		{"True", format.NoSpan, OpDone, true, "True"},
	}, mustTrace(t, "A or B or C", env))

	assertSteps(t, []wantStep{
		{"not not True", format.Span{Start: 1, End: 3}, OpNot, false, "not False"},
		{"not False", format.Span{Start: 0, End: 2}, OpNot, true, "True"},
		{"True", format.NoSpan, OpDone, true, "True"},
	}, mustTrace(t, "not not True", nil))
}

func TestTrace_InnermostGroupFirst(t *testing.T) {
	assertSteps(t, []wantStep{
		{"True and ( False and True )", format.Span{Start: 3, End: 6}, OpAnd, false, "True and ( False )"},
		{"True and ( False )", format.Span{Start: 2, End: 5}, OpParens, false, "True and False"},
		{"True and False", format.Span{Start: 0, End: 3}, OpAnd, false, "False"},
		{"False", format.NoSpan, OpDone, false, "False"},
	}, mustTrace(t, "True and (False and True)", nil))

	steps := mustTrace(t, "((True))", nil)
	assertSteps(t, []wantStep{
		{"( ( True ) )", format.Span{Start: 1, End: 4}, OpParens, true, "( True )"},
		{"( True )", format.Span{Start: 0, End: 3}, OpParens, true, "True"},
		{"True", format.NoSpan, OpDone, true, "True"},
	}, steps)
}

func TestTrace_SingleLiteral(t *testing.T) {
	steps := mustTrace(t, "False", nil)
	require.Len(t, steps, 1)
	assert.Equal(t, OpDone, steps[0].Op)
	assert.False(t, steps[0].Result)
	assert.Empty(t, steps[0].Highlighted())
	assert.Equal(t, "Final result: False", steps[0].Description())
}

func TestTrace_Variables(t *testing.T) {
	steps := mustTrace(t, "A and not B", eval.Env{"A": true, "B": false})
	assertSteps(t, []wantStep{
		{"True and not False", format.Span{Start: 2, End: 4}, OpNot, true, "True and True"},
		{"True and True", format.Span{Start: 0, End: 3}, OpAnd, true, "True"},
		{"True", format.NoSpan, OpDone, true, "True"},
	}, steps)
}

func TestTrace_UndefinedVariable(t *testing.T) {
	n, err := parser.ParseString("A or C")
	require.NoError(t, err)

	steps, err := Trace(n, eval.Env{"A": true, "B": false})
	assert.Nil(t, steps)
	assert.ErrorIs(t, err, eval.ErrUndefinedVariable)
	assert.Equal(t, "variable C is not defined for 2-variable mode", err.Error())
}

func TestTrace_DoesNotModifyInput(t *testing.T) {
	n, err := parser.ParseString("not (A and B) or C")
	require.NoError(t, err)
	before := format.Expr(n)

	_, err = Trace(n, eval.Env{"A": true, "B": true, "C": false})
	require.NoError(t, err)
	assert.Equal(t, before, format.Expr(n))
}

func TestStep_Description(t *testing.T) {
	steps := mustTrace(t, "not True or False and True", nil)
	descriptions := make([]string, len(steps))
	for i, s := range steps {
		descriptions[i] = s.Description()
	}

	assert.Equal(t, []string{
		"not True  =>  False",
		"False and True  =>  False",
		"False or False  =>  False",
		"Final result: False",
	}, descriptions)
}

func TestOpKind_String(t *testing.T) {
	assert.Equal(t, "not", OpNot.String())
	assert.Equal(t, "parens", OpParens.String())
	assert.Equal(t, "OpKind(42)", OpKind(42).String())

	text, err := OpDone.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "done", string(text))
}

func TestStep_MarshalJSON(t *testing.T) {
	steps := mustTrace(t, "True and False", nil)

	data, err := json.Marshal(steps[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"before": ["True", "and", "False"],
		"highlight": {"start": 0, "end": 3},
		"op": "and",
		"result": false,
		"after": ["False"],
		"description": "True and False  =>  False"
	}`, string(data))
}

// randomExpr builds a well-formed expression over A, B, C and the literals.
func randomExpr(r *rand.Rand, depth int) string {
	if depth == 0 || r.IntN(4) == 0 {
		leaves := []string{"A", "B", "C", "True", "False"}
		return leaves[r.IntN(len(leaves))]
	}
	switch r.IntN(4) {
	case 0:
		return "not " + randomExpr(r, depth-1)
	case 1:
		return randomExpr(r, depth-1) + " and " + randomExpr(r, depth-1)
	case 2:
		return randomExpr(r, depth-1) + " or " + randomExpr(r, depth-1)
	default:
		return "(" + randomExpr(r, depth-1) + ")"
	}
}

func TestTrace_AgreesWithEvaluate(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	vars := []string{"A", "B", "C"}

	for i := 0; i < 300; i++ {
		src := randomExpr(r, 5)
		n, err := parser.ParseString(src)
		require.NoError(t, err, "parse %q", src)

		for row := 0; row < 8; row++ {
			values := []bool{row&4 != 0, row&2 != 0, row&1 != 0}
			env, err := eval.NewEnv(vars, values)
			require.NoError(t, err)

			want, err := eval.Evaluate(n, env)
			require.NoError(t, err)

			steps, err := Trace(n, env)
			require.NoError(t, err, "trace %q", src)
			require.NotEmpty(t, steps)

			last := steps[len(steps)-1]
			require.Equal(t, OpDone, last.Op)
			require.Equal(t, want, last.Result, "%q with %s", src, env)

			for j := 0; j < len(steps)-1; j++ {
				s := steps[j]
				require.False(t, s.Highlight.IsEmpty(), "%q step %d", src, j)
				require.LessOrEqual(t, s.Highlight.End, len(s.Before))
				require.Less(t, len(s.After), len(s.Before))
				require.Equal(t, format.Join(s.After), format.Join(steps[j+1].Before),
					fmt.Sprintf("%q: step %d does not chain", src, j))
			}
			require.False(t, strings.Contains(format.Join(steps[0].Before), "A"),
				"variables must be substituted")
		}
	}
}
