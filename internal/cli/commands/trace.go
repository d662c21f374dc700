package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/boolstep/internal/cli/output"
	"github.com/leapstack-labs/boolstep/pkg/format"
	"github.com/leapstack-labs/boolstep/pkg/trace"
)

// NewTraceCommand creates the trace command.
func NewTraceCommand() *cobra.Command {
	var set []string

	cmd := &cobra.Command{
		Use:   "trace <expr>",
		Short: "Show the step-by-step reduction of an expression",
		Long: `Reduce an expression one operator at a time, following precedence:
innermost parentheses first, then not, and, or, each left to right.

Every step shows the expression with the reduced part highlighted and the
value it was replaced by.`,
		Example: `  boolstep trace "not True or False and True"
  boolstep trace "not (A and B) or C" --vars 3 --set A=true --set C=false`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(cmd, args[0], set)
		},
	}
	addSetFlag(cmd, &set)

	return cmd
}

func runTrace(cmd *cobra.Command, src string, set []string) error {
	c := NewCommandContext(cmd)

	n, err := c.Parse(src)
	if err != nil {
		return err
	}
	env, err := c.Env(set)
	if err != nil {
		return err
	}
	steps, err := trace.Trace(n, env)
	if err != nil {
		return err
	}
	c.Logger.Debug("traced expression", "steps", len(steps))

	return renderSteps(c.Renderer, format.Expr(n), steps)
}

func renderSteps(r *output.Renderer, expr string, steps []trace.Step) error {
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(struct {
			Expr  string       `json:"expr"`
			Steps []trace.Step `json:"steps"`
		}{expr, steps})
	}

	r.Header(2, fmt.Sprintf("Reduction: %s", expr))
	styles := r.Styles()
	for i, s := range steps {
		if s.Op == trace.OpDone {
			r.Println("")
			r.Println(styles.Bold.Render(s.Description()))
			break
		}
		r.Printf("%d. %s\n", i+1, r.Expr(s.Before, s.Highlight))
		r.Printf("   %s\n", styles.Muted.Render(s.Description()))
	}
	return nil
}
