package truthtable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/boolstep/pkg/eval"
	"github.com/leapstack-labs/boolstep/pkg/parser"
)

func mustParse(t *testing.T, src string) parser.Node {
	t.Helper()
	n, err := parser.ParseString(src)
	require.NoError(t, err, "parse %q", src)
	return n
}

func TestVarsForMode(t *testing.T) {
	vars, err := VarsForMode(2)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, vars)

	vars, err = VarsForMode(3)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, vars)

	for _, mode := range []int{0, 1, 4} {
		_, err := VarsForMode(mode)
		assert.Error(t, err, "mode %d", mode)
	}
}

func TestGenerate_TwoVariables(t *testing.T) {
	table, err := Generate(mustParse(t, "A and B"), []string{"A", "B"})
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B"}, table.Vars)
	assert.Equal(t, []Row{
		{Inputs: []bool{false, false}, Result: false},
		{Inputs: []bool{false, true}, Result: false},
		{Inputs: []bool{true, false}, Result: false},
		{Inputs: []bool{true, true}, Result: true},
	}, table.Rows)
}

func TestGenerate_ThreeVariables(t *testing.T) {
	table, err := Generate(mustParse(t, "A or B and C"), []string{"A", "B", "C"})
	require.NoError(t, err)
	require.Len(t, table.Rows, 8)

	assert.Equal(t, []bool{false, false, false}, table.Rows[0].Inputs)
	assert.Equal(t, []bool{false, false, true}, table.Rows[1].Inputs)
	assert.Equal(t, []bool{true, false, false}, table.Rows[4].Inputs)
	assert.Equal(t, []bool{true, true, true}, table.Rows[7].Inputs)
	assert.Equal(t, []bool{false, false, false, true, true, true, true, true}, table.Results())

	assert.Equal(t, eval.Env{"A": true, "B": false, "C": true}, table.Env(5))
}

func TestGenerate_UndefinedVariableFailsTable(t *testing.T) {
	table, err := Generate(mustParse(t, "A and C"), []string{"A", "B"})
	assert.Nil(t, table)
	assert.ErrorIs(t, err, eval.ErrUndefinedVariable)
}

func TestGenerate_BadVariables(t *testing.T) {
	n := mustParse(t, "True")

	_, err := Generate(n, nil)
	assert.Error(t, err)

	_, err = Generate(n, []string{"A", "A"})
	assert.Error(t, err)
}

func TestGenerate_ConstantExpression(t *testing.T) {
	table, err := Generate(mustParse(t, "not (True and False) or True"), []string{"A", "B"})
	require.NoError(t, err)
	assert.Equal(t, []bool{true, true, true, true}, table.Results())
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name       string
		left       string
		right      string
		vars       []string
		equivalent bool
		matches    []bool
	}{
		{
			name:       "de morgan and",
			left:       "not (A and B)",
			right:      "(not A) or (not B)",
			vars:       []string{"A", "B"},
			equivalent: true,
			matches:    []bool{true, true, true, true},
		},
		{
			name:       "de morgan or",
			left:       "not (A or B)",
			right:      "not A and not B",
			vars:       []string{"A", "B"},
			equivalent: true,
			matches:    []bool{true, true, true, true},
		},
		{
			name:       "common mistake",
			left:       "not (A and B)",
			right:      "not A and not B",
			vars:       []string{"A", "B"},
			equivalent: false,
			matches:    []bool{true, false, false, true},
		},
		{
			name:       "distribution",
			left:       "A and (B or C)",
			right:      "A and B or A and C",
			vars:       []string{"A", "B", "C"},
			equivalent: true,
			matches:    []bool{true, true, true, true, true, true, true, true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Compare(mustParse(t, tt.left), mustParse(t, tt.right), tt.vars)
			require.NoError(t, err)
			assert.Equal(t, tt.equivalent, c.Equivalent)
			assert.Equal(t, tt.matches, c.Matches)
		})
	}
}

func TestCompare_Error(t *testing.T) {
	_, err := Compare(mustParse(t, "A"), mustParse(t, "C"), []string{"A", "B"})
	require.Error(t, err)
	assert.ErrorIs(t, err, eval.ErrUndefinedVariable)
	assert.Contains(t, err.Error(), "right expression")
}

func TestTable_Check(t *testing.T) {
	table, err := Generate(mustParse(t, "A or B"), []string{"A", "B"})
	require.NoError(t, err)

	answers, err := ParseAnswers("F T ? F")
	require.NoError(t, err)
	assert.Equal(t, "FT?F", FormatAnswers(answers))

	report, err := table.Check(answers)
	require.NoError(t, err)
	assert.Equal(t, []Verdict{Correct, Correct, Missed, Wrong}, report.Verdicts)
	assert.Equal(t, "2/4", report.Score())
	assert.False(t, report.Perfect())

	answers, err = ParseAnswers("0111")
	require.NoError(t, err)
	report, err = table.Check(answers)
	require.NoError(t, err)
	assert.True(t, report.Perfect())

	_, err = table.Check(answers[:3])
	assert.Error(t, err)
}

func TestParseAnswers_Invalid(t *testing.T) {
	_, err := ParseAnswers("TFX")
	assert.EqualError(t, err, `invalid answer 'X' at position 3`)
}
