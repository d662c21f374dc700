package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/boolstep/internal/cli/output"
	"github.com/leapstack-labs/boolstep/pkg/format"
	"github.com/leapstack-labs/boolstep/pkg/truthtable"
)

// CompareOutput is the JSON form of a comparison.
type CompareOutput struct {
	Left       string                 `json:"left"`
	Right      string                 `json:"right"`
	Comparison *truthtable.Comparison `json:"comparison"`
}

// NewCompareCommand creates the compare command.
func NewCompareCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "compare <expr1> <expr2>",
		Short: "Check whether two expressions are equivalent",
		Long: `Build the truth tables of two expressions over the same variables and
report, row by row, where they agree. The expressions are equivalent when
every row matches.`,
		Example: `  boolstep compare "not (A and B)" "not A or not B"
  boolstep compare "A and (B or C)" "A and B or A and C" --vars 3`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, args[0], args[1])
		},
	}
}

func runCompare(cmd *cobra.Command, leftSrc, rightSrc string) error {
	c := NewCommandContext(cmd)
	r := c.Renderer

	left, err := c.Parse(leftSrc)
	if err != nil {
		return err
	}
	right, err := c.Parse(rightSrc)
	if err != nil {
		return err
	}
	vars, err := c.Vars()
	if err != nil {
		return err
	}
	cmp, err := truthtable.Compare(left, right, vars)
	if err != nil {
		return err
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(CompareOutput{Left: format.Expr(left), Right: format.Expr(right), Comparison: cmp})
	}

	header := append([]string(nil), vars...)
	header = append(header, format.Expr(left), format.Expr(right), "Match")

	rows := make([][]string, len(cmp.Left.Rows))
	for i, row := range cmp.Left.Rows {
		cells := make([]string, 0, len(header))
		for _, in := range row.Inputs {
			cells = append(cells, r.Bool(in))
		}
		mark := "✓"
		if !cmp.Matches[i] {
			mark = "✗"
		}
		rows[i] = append(cells, r.Bool(row.Result), r.Bool(cmp.Right.Rows[i].Result), mark)
	}

	r.Header(2, "Comparison")
	r.Table(header, rows)
	r.Println("")
	if cmp.Equivalent {
		r.Success(output.Title("equivalent"))
	} else {
		r.Println(r.Styles().Error.Render(output.Title("not equivalent")))
	}
	return nil
}
