package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/boolstep/internal/cli/output"
	"github.com/leapstack-labs/boolstep/internal/presets"
)

// NewPresetsCommand creates the presets command.
func NewPresetsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets [name]",
		Short: "List presets or run one",
		Long: `Without arguments, list the preset catalogue. With a name, run the
preset: trace presets print their reduction, table presets their truth
table and compare presets the comparison of both expressions.

The built-in catalogue can be replaced with --presets or presets_file.`,
		Example: `  boolstep presets
  boolstep presets de-morgan-and`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			catalog, err := NewCommandContext(cmd).Presets()
			if err != nil {
				return nil, cobra.ShellCompDirectiveError
			}
			return catalog.Names(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runPresetsList(cmd)
			}
			return runPreset(cmd, args[0])
		},
	}
	return cmd
}

func runPresetsList(cmd *cobra.Command) error {
	c := NewCommandContext(cmd)
	r := c.Renderer

	catalog, err := c.Presets()
	if err != nil {
		return err
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(catalog)
	}

	rows := make([][]string, len(catalog.Presets))
	for i, p := range catalog.Presets {
		expr := p.Expr
		if p.Kind == presets.KindCompare {
			expr = fmt.Sprintf("%s  vs  %s", p.Expr, p.Compare)
		}
		rows[i] = []string{p.Name, string(p.Kind), expr, p.Title}
	}
	r.Header(2, fmt.Sprintf("Presets (%d)", len(catalog.Presets)))
	r.Table([]string{"Name", "Kind", "Expression", "Title"}, rows)
	return nil
}

func runPreset(cmd *cobra.Command, name string) error {
	c := NewCommandContext(cmd)

	catalog, err := c.Presets()
	if err != nil {
		return err
	}
	p, ok := catalog.Get(name)
	if !ok {
		return fmt.Errorf("unknown preset %q (run 'boolstep presets' to list them)", name)
	}
	c.Logger.Debug("running preset", "name", p.Name, "kind", p.Kind)

	switch p.Kind {
	case presets.KindTable:
		return runTable(cmd, p.Expr)
	case presets.KindCompare:
		return runCompare(cmd, p.Expr, p.Compare)
	default:
		return runTrace(cmd, p.Expr, nil)
	}
}
