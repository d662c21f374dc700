package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/boolstep/internal/cli/output"
	"github.com/leapstack-labs/boolstep/pkg/eval"
	"github.com/leapstack-labs/boolstep/pkg/format"
)

// EvalOutput is the JSON form of an evaluation.
type EvalOutput struct {
	Expr  string          `json:"expr"`
	Env   map[string]bool `json:"assignment"`
	Value bool            `json:"value"`
}

// NewEvalCommand creates the eval command.
func NewEvalCommand() *cobra.Command {
	var set []string

	cmd := &cobra.Command{
		Use:   "eval <expr>",
		Short: "Evaluate an expression",
		Long: `Evaluate a Boolean expression under a variable assignment.

Variables of the active mode default to False; use --set to change them.`,
		Example: `  boolstep eval "not True or False and True"
  boolstep eval "A and not B" --set A=true
  boolstep eval "A or C" --vars 3 --set C=1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(cmd, args[0], set)
		},
	}
	addSetFlag(cmd, &set)

	return cmd
}

func runEval(cmd *cobra.Command, src string, set []string) error {
	c := NewCommandContext(cmd)
	r := c.Renderer

	n, err := c.Parse(src)
	if err != nil {
		return err
	}
	env, err := c.Env(set)
	if err != nil {
		return err
	}
	v, err := eval.Evaluate(n, env)
	if err != nil {
		return err
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(EvalOutput{Expr: format.Expr(n), Env: env, Value: v})
	case output.ModeMarkdown:
		r.Println(output.FormatKeyValue("Expression", format.Expr(n)))
		if len(env) > 0 {
			r.Println(output.FormatKeyValue("Assignment", env.String()))
		}
		r.Println(output.FormatKeyValue("Result", r.Bool(v)))
	default:
		r.Println(r.Bool(v))
	}
	return nil
}
