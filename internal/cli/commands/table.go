package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/boolstep/internal/cli/output"
	"github.com/leapstack-labs/boolstep/pkg/format"
	"github.com/leapstack-labs/boolstep/pkg/truthtable"
)

// TableOutput is the JSON form of a truth table.
type TableOutput struct {
	Expr string           `json:"expr"`
	Vars []string         `json:"vars"`
	Rows []truthtable.Row `json:"rows"`
}

// NewTableCommand creates the table command.
func NewTableCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "table <expr>",
		Short: "Print the truth table of an expression",
		Long: `Print the truth table of an expression over the variables of the
active mode (--vars 2 for A and B, --vars 3 for A, B and C).

Rows are listed with the first variable changing slowest, starting from
all False.`,
		Example: `  boolstep table "A and B"
  boolstep table "A or B and C" --vars 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTable(cmd, args[0])
		},
	}
}

func runTable(cmd *cobra.Command, src string) error {
	c := NewCommandContext(cmd)
	r := c.Renderer

	n, err := c.Parse(src)
	if err != nil {
		return err
	}
	vars, err := c.Vars()
	if err != nil {
		return err
	}
	table, err := truthtable.Generate(n, vars)
	if err != nil {
		return err
	}
	c.Logger.Debug("generated truth table", "rows", len(table.Rows))

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(TableOutput{Expr: format.Expr(n), Vars: table.Vars, Rows: table.Rows})
	}

	r.Header(2, fmt.Sprintf("Truth table: %s", format.Expr(n)))
	header := append(append([]string(nil), table.Vars...), "Result")
	r.Table(header, tableRows(r, table))
	return nil
}

// tableRows renders the input columns and the result column of table.
func tableRows(r *output.Renderer, table *truthtable.Table) [][]string {
	rows := make([][]string, len(table.Rows))
	for i, row := range table.Rows {
		cells := make([]string, 0, len(row.Inputs)+1)
		for _, in := range row.Inputs {
			cells = append(cells, r.Bool(in))
		}
		rows[i] = append(cells, r.Bool(row.Result))
	}
	return rows
}
