package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/boolstep/internal/cli/output"
	"github.com/leapstack-labs/boolstep/pkg/truthtable"
)

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <expr> <answers>",
		Short: "Grade a guessed result column",
		Long: `Practice mode: guess the result column of a truth table and have it
graded row by row.

Answers are one character per row in table order: T or 1 for True, F or 0
for False, ? for a row left blank.`,
		Example: `  boolstep check "A and B" FFFT
  boolstep check "A or B and C" "FFFT TT?T" --vars 3`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args[0], args[1])
		},
	}
}

func runCheck(cmd *cobra.Command, src, raw string) error {
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
	answers, err := truthtable.ParseAnswers(raw)
	if err != nil {
		return err
	}
	report, err := table.Check(answers)
	if err != nil {
		return err
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(report)
	}

	styles := r.Styles()
	header := append(append([]string(nil), vars...), "Your answer", "Verdict")
	rows := make([][]string, len(table.Rows))
	for i, row := range table.Rows {
		cells := make([]string, 0, len(header))
		for _, in := range row.Inputs {
			cells = append(cells, r.Bool(in))
		}
		guess := "?"
		if answers[i] != truthtable.Unanswered {
			guess = r.Bool(answers[i] == truthtable.AnswerTrue)
		}
		verdict := output.Title(report.Verdicts[i].String())
		if r.EffectiveMode() == output.ModeText {
			switch report.Verdicts[i] {
			case truthtable.Correct:
				verdict = styles.Success.Render(verdict)
			case truthtable.Wrong:
				verdict = styles.Error.Render(verdict)
			default:
				verdict = styles.Muted.Render(verdict)
			}
		}
		rows[i] = append(cells, guess, verdict)
	}

	r.Header(2, "Practice: "+src)
	r.Table(header, rows)
	r.Println("")
	if r.EffectiveMode() == output.ModeMarkdown {
		r.Println(output.FormatKeyValue("Score", report.Score()))
	} else {
		r.Println(styles.Bold.Render("Score: " + report.Score()))
	}
	if report.Perfect() {
		r.Success("All rows correct")
	}
	return nil
}
