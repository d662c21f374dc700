package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/boolstep/internal/cli/config"
	clitest "github.com/leapstack-labs/boolstep/internal/cli/testutil"
	"github.com/leapstack-labs/boolstep/pkg/eval"
)

// newTestRoot wraps the commands in a root that loads configuration the
// way the real one does, from a clean working directory.
func newTestRoot(t *testing.T, cmds ...*cobra.Command) *cobra.Command {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Cleanup(config.ResetConfig)

	root := &cobra.Command{
		Use:           "boolstep",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			_, err := config.LoadConfig("", cmd.Flags())
			return err
		},
	}
	root.PersistentFlags().StringP("output", "o", "", "")
	root.PersistentFlags().Int("vars", config.DefaultVariables, "")
	root.PersistentFlags().String("presets", "", "")
	root.AddCommand(cmds...)
	return root
}

func run(t *testing.T, cmd *cobra.Command, args ...string) string {
	t.Helper()
	out, _, err := clitest.ExecuteCommand(newTestRoot(t, cmd), args...)
	require.NoError(t, err)
	return out
}

func TestCommandMetadata(t *testing.T) {
	tests := []struct {
		cmd   *cobra.Command
		use   string
		flags []string
	}{
		{NewEvalCommand(), "eval <expr>", []string{"set"}},
		{NewTableCommand(), "table <expr>", nil},
		{NewCompareCommand(), "compare <expr1> <expr2>", nil},
		{NewTraceCommand(), "trace <expr>", []string{"set"}},
		{NewStepCommand(), "step <expr>", []string{"set"}},
		{NewCheckCommand(), "check <expr> <answers>", nil},
		{NewPresetsCommand(), "presets [name]", nil},
		{NewREPLCommand(), "repl", nil},
		{NewServeCommand(), "serve", []string{"port", "watch"}},
	}

	for _, tt := range tests {
		t.Run(tt.use, func(t *testing.T) {
			assert.Equal(t, tt.use, tt.cmd.Use)
			assert.NotEmpty(t, tt.cmd.Short, "Short should not be empty")
			for _, flag := range tt.flags {
				assert.NotNil(t, tt.cmd.Flags().Lookup(flag), "flag %q should exist", flag)
			}
		})
	}
}

func TestEval(t *testing.T) {
	out := run(t, NewEvalCommand(), "eval", "A and not B", "--set", "A=true")
	clitest.AssertNoANSI(t, out)
	assert.Contains(t, out, "- **Expression:** A and not B")
	assert.Contains(t, out, "- **Assignment:** A=True B=False")
	assert.Contains(t, out, "- **Result:** True")
}

func TestEval_JSON(t *testing.T) {
	out := run(t, NewEvalCommand(), "eval", "not True or False and True", "-o", "json")
	assert.JSONEq(t, `{
		"expr": "not True or False and True",
		"assignment": {"A": false, "B": false},
		"value": false
	}`, out)
}

func TestEval_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		is   error
		msg  string
	}{
		{"undefined variable", []string{"eval", "A or C"}, eval.ErrUndefinedVariable, "variable C is not defined for 2-variable mode"},
		{"bad assignment", []string{"eval", "A", "--set", "A=maybe"}, nil, `invalid assignment "A=maybe"`},
		{"parse error", []string{"eval", "(A or B"}, nil, "missing closing parenthesis"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := clitest.ExecuteCommand(newTestRoot(t, NewEvalCommand()), tt.args...)
			require.Error(t, err)
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestTable(t *testing.T) {
	out := run(t, NewTableCommand(), "table", "A and B")
	clitest.AssertValidMarkdown(t, out)
	assert.Contains(t, out, "## Truth table: A and B")
	assert.Contains(t, out, "| A | B | Result |")
	assert.Contains(t, out, "| False | False | False |")
	assert.Contains(t, out, "| True | True | True |")
}

func TestTable_ThreeVariablesJSON(t *testing.T) {
	out := run(t, NewTableCommand(), "table", "A or B and C", "--vars", "3", "-o", "json")

	var got TableOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []string{"A", "B", "C"}, got.Vars)
	require.Len(t, got.Rows, 8)
	assert.Equal(t, []bool{false, true, true}, got.Rows[3].Inputs)
	assert.True(t, got.Rows[3].Result)
}

func TestCompare(t *testing.T) {
	out := run(t, NewCompareCommand(), "compare", "not (A and B)", "not A or not B")
	assert.Contains(t, out, "| A | B | not ( A and B ) | not A or not B | Match |")
	assert.Contains(t, out, "✓")
	assert.NotContains(t, out, "✗")
	assert.Contains(t, out, "Equivalent")

	out = run(t, NewCompareCommand(), "compare", "not (A and B)", "not A and not B")
	assert.Contains(t, out, "✗")
	assert.Contains(t, out, "Not Equivalent")
}

func TestCompare_JSON(t *testing.T) {
	out := run(t, NewCompareCommand(), "compare", "A or B", "B or A", "-o", "json")

	var got CompareOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "A or B", got.Left)
	assert.True(t, got.Comparison.Equivalent)
	assert.Equal(t, []bool{true, true, true, true}, got.Comparison.Matches)
}

func TestTrace(t *testing.T) {
	out := run(t, NewTraceCommand(), "trace", "not True or False and True")
	clitest.AssertNoANSI(t, out)
	assert.Contains(t, out, "## Reduction: not True or False and True")
	assert.Contains(t, out, "1. **not True** or False and True")
	assert.Contains(t, out, "   not True  =>  False")
	assert.Contains(t, out, "2. False or **False and True**")
	assert.Contains(t, out, "3. **False or False**")
	assert.Contains(t, out, "Final result: False")
}

func TestTrace_JSON(t *testing.T) {
	out := run(t, NewTraceCommand(), "trace", "A or B", "--set", "B=1", "-o", "json")

	var got struct {
		Expr  string `json:"expr"`
		Steps []struct {
			Op          string `json:"op"`
			Description string `json:"description"`
		} `json:"steps"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "A or B", got.Expr)
	require.Len(t, got.Steps, 2)
	assert.Equal(t, "or", got.Steps[0].Op)
	assert.Equal(t, "False or True  =>  True", got.Steps[0].Description)
	assert.Equal(t, "done", got.Steps[1].Op)
}

func TestStep_FallsBackToTraceWithoutTerminal(t *testing.T) {
	out := run(t, NewStepCommand(), "step", "True and (False or True)")
	assert.Contains(t, out, "## Reduction: True and ( False or True )")
	assert.Contains(t, out, "Final result: True")
}

func TestCheck(t *testing.T) {
	out := run(t, NewCheckCommand(), "check", "A and B", "FFFT")
	assert.Contains(t, out, "## Practice: A and B")
	assert.Contains(t, out, "| A | B | Your answer | Verdict |")
	assert.Contains(t, out, "- **Score:** 4/4")
	assert.Contains(t, out, "All rows correct")

	out = run(t, NewCheckCommand(), "check", "A and B", "F T ? T", "-o", "json")
	assert.JSONEq(t, `{"verdicts": ["correct", "wrong", "missed", "correct"], "correct": 2, "total": 4}`, out)
}

func TestCheck_Errors(t *testing.T) {
	_, _, err := clitest.ExecuteCommand(newTestRoot(t, NewCheckCommand()), "check", "A and B", "FFF")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "got 3 answers for 4 rows")

	_, _, err = clitest.ExecuteCommand(newTestRoot(t, NewCheckCommand()), "check", "A and B", "FFXT")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid answer 'X' at position 3")
}

func TestPresets_List(t *testing.T) {
	out := run(t, NewPresetsCommand(), "presets")
	assert.Contains(t, out, "## Presets (7)")
	assert.Contains(t, out, "| precedence-not-or-and | trace | not True or False and True |")
	assert.Contains(t, out, "not (A and B)  vs  not A or not B")
}

func TestPresets_Run(t *testing.T) {
	out := run(t, NewPresetsCommand(), "presets", "de-morgan-and")
	assert.Contains(t, out, "Equivalent")

	out = run(t, NewPresetsCommand(), "presets", "and-table")
	assert.Contains(t, out, "## Truth table: A and B")

	out = run(t, NewPresetsCommand(), "presets", "precedence-parens-first")
	assert.Contains(t, out, "Final result: True")

	_, _, err := clitest.ExecuteCommand(newTestRoot(t, NewPresetsCommand()), "presets", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown preset "nope"`)
}

func TestPresets_FromFile(t *testing.T) {
	root := newTestRoot(t, NewPresetsCommand())
	path := filepath.Join(t.TempDir(), "classroom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("presets:\n  - {name: homework, kind: table, expr: not A}\n"), 0600))

	out, _, err := clitest.ExecuteCommand(root, "presets", "--presets", path, "-o", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"presets": [{"name": "homework", "kind": "table", "expr": "not A"}]}`, out)
}

// newTestSession builds a REPL session writing markdown into buffers.
func newTestSession(t *testing.T) (*replSession, *clitest.TestRenderer) {
	t.Helper()
	tr := clitest.NewTestRendererMarkdown()
	c := &CommandContext{Cfg: config.DefaultConfig(), Logger: config.GetLogger(t.Context()), Renderer: tr.Renderer}
	s, err := newREPLSession(c)
	require.NoError(t, err)
	return s, tr
}

func TestREPL_Handle(t *testing.T) {
	s, tr := newTestSession(t)

	quit, err := s.handle("   ")
	require.NoError(t, err)
	assert.False(t, quit)
	assert.Empty(t, tr.Output())

	_, err = s.handle(".set")
	require.NoError(t, err)
	assert.Equal(t, "A=False B=False\n", tr.Output())
	tr.Reset()

	_, err = s.handle(".vars 3")
	require.NoError(t, err)
	assert.Equal(t, "3-variable mode: A=False B=False C=False\n", tr.Output())
	tr.Reset()

	_, err = s.handle(".set A=true c=1")
	require.NoError(t, err)
	assert.Equal(t, "A=True B=False C=True\n", tr.Output())
	tr.Reset()

	_, err = s.handle("A and B or C")
	require.NoError(t, err)
	assert.Contains(t, tr.Output(), "1. **True and False** or True")
	assert.Contains(t, tr.Output(), "Final result: True")
	tr.Reset()

	_, err = s.handle(".table not C")
	require.NoError(t, err)
	assert.Contains(t, tr.Output(), "| A | B | C | Result |")
	tr.Reset()

	_, err = s.handle(".help")
	require.NoError(t, err)
	assert.Contains(t, tr.Output(), ".vars 2|3")

	quit, err = s.handle(".QUIT")
	require.NoError(t, err)
	assert.True(t, quit)
}

func TestREPL_HandleErrors(t *testing.T) {
	tests := []struct {
		line string
		msg  string
	}{
		{".vars three", "usage: .vars 2|3"},
		{".vars 4", "4"},
		{".set C=true", "variable C is not defined for 2-variable mode"},
		{".set A", `invalid assignment "A"`},
		{".table", "usage: .table <expr>"},
		{".frobnicate", "unknown command .frobnicate (try .help)"},
		{"A or", "unexpected end of expression"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			s, _ := newTestSession(t)
			quit, err := s.handle(tt.line)
			assert.False(t, quit)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestREPL_FailedVarsKeepsMode(t *testing.T) {
	s, _ := newTestSession(t)

	_, err := s.handle(".vars 5")
	require.Error(t, err)
	assert.Equal(t, 2, s.mode)
	assert.Len(t, s.env, 2)
}
