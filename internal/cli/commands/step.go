package commands

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/boolstep/internal/cli/output"
	"github.com/leapstack-labs/boolstep/internal/stepper"
)

// NewStepCommand creates the step command.
func NewStepCommand() *cobra.Command {
	var set []string

	cmd := &cobra.Command{
		Use:   "step <expr>",
		Short: "Step through a reduction interactively",
		Long: `Open an interactive stepper for the reduction of an expression.

Keys: → or n for the next step, ← or p for the previous one, r to reset,
e to jump to the final result, ? for help and q to quit.

When output is not a terminal the steps are printed as with 'trace'.`,
		Example: `  boolstep step "(True or False) and (not True or False)"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStep(cmd, args[0], set)
		},
	}
	addSetFlag(cmd, &set)

	return cmd
}

func runStep(cmd *cobra.Command, src string, set []string) error {
	c := NewCommandContext(cmd)
	r := c.Renderer

	s, err := stepper.New(stepper.State{Expr: src, Mode: c.Cfg.Variables, Set: set})
	if err != nil {
		return err
	}

	if !r.IsTTY() || r.EffectiveMode() != output.ModeText {
		return runTrace(cmd, src, set)
	}

	p := tea.NewProgram(
		stepper.NewModel(s, r),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
		tea.WithContext(cmd.Context()),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("stepper failed: %w", err)
	}
	return nil
}
