package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/boolstep/pkg/eval"
	"github.com/leapstack-labs/boolstep/pkg/format"
	"github.com/leapstack-labs/boolstep/pkg/trace"
	"github.com/leapstack-labs/boolstep/pkg/truthtable"
)

const replPrompt = "boolstep> "

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Evaluate expressions interactively",
		Long: `Start an interactive session. Each line is evaluated and its reduction
printed under the current assignment.

Commands:
  .vars 2|3        Switch between A,B and A,B,C
  .set A=true ...  Assign variables (unassigned ones are False)
  .table <expr>    Print a truth table
  .help            Show help
  .quit            Exit`,
		Args: cobra.NoArgs,
		RunE: runREPL,
	}
}

// replSession is the state of one REPL run.
type replSession struct {
	c    *CommandContext
	mode int
	env  eval.Env
}

func newREPLSession(c *CommandContext) (*replSession, error) {
	s := &replSession{c: c}
	if err := s.setMode(c.Cfg.Variables); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *replSession) setMode(mode int) error {
	vars, err := truthtable.VarsForMode(mode)
	if err != nil {
		return err
	}
	env, err := eval.NewEnv(vars, make([]bool, len(vars)))
	if err != nil {
		return err
	}
	s.mode, s.env = mode, env
	return nil
}

func runREPL(cmd *cobra.Command, _ []string) error {
	c := NewCommandContext(cmd)
	session, err := newREPLSession(c)
	if err != nil {
		return err
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		HistoryFile:     historyFile(),
		AutoComplete:    newREPLCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	c.Renderer.Println("boolstep REPL. Type .help for commands, .quit to exit")
	c.Renderer.Println("")

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}

		quit, err := session.handle(line)
		if err != nil {
			c.Renderer.Error(err.Error())
		}
		if quit {
			break
		}
	}
	return nil
}

// historyFile returns the REPL history path, or "" when there is no
// user cache directory.
func historyFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	dir = filepath.Join(dir, "boolstep")
	if err := os.MkdirAll(dir, 0750); err != nil {
		return ""
	}
	return filepath.Join(dir, "history")
}

func newREPLCompleter() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem(".vars", readline.PcItem("2"), readline.PcItem("3")),
		readline.PcItem(".set", readline.PcItem("A=true"), readline.PcItem("B=true"), readline.PcItem("C=true")),
		readline.PcItem(".table"),
		readline.PcItem(".help"),
		readline.PcItem(".quit"),
	)
}

// handle runs one input line and reports whether the session should end.
func (s *replSession) handle(line string) (bool, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false, nil
	}
	if !strings.HasPrefix(line, ".") {
		return false, s.evaluate(line)
	}

	command, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)
	switch strings.ToLower(command) {
	case ".quit", ".exit":
		return true, nil

	case ".help":
		s.printHelp()

	case ".vars":
		mode, err := strconv.Atoi(rest)
		if err != nil {
			return false, fmt.Errorf("usage: .vars 2|3")
		}
		if err := s.setMode(mode); err != nil {
			return false, err
		}
		s.c.Renderer.Muted(fmt.Sprintf("%d-variable mode: %s", mode, s.env))

	case ".set":
		if rest == "" {
			s.c.Renderer.Muted(s.env.String())
			return false, nil
		}
		env, err := eval.ParseAssignment(s.env, strings.Fields(rest))
		if err != nil {
			return false, err
		}
		s.env = env
		s.c.Renderer.Muted(s.env.String())

	case ".table":
		if rest == "" {
			return false, fmt.Errorf("usage: .table <expr>")
		}
		return false, s.table(rest)

	default:
		return false, fmt.Errorf("unknown command %s (try .help)", command)
	}
	return false, nil
}

func (s *replSession) evaluate(src string) error {
	n, err := s.c.Parse(src)
	if err != nil {
		return err
	}
	steps, err := trace.Trace(n, s.env)
	if err != nil {
		return err
	}
	return renderSteps(s.c.Renderer, format.Expr(n), steps)
}

func (s *replSession) table(src string) error {
	n, err := s.c.Parse(src)
	if err != nil {
		return err
	}
	table, err := truthtable.Generate(n, s.env.Names())
	if err != nil {
		return err
	}
	header := append(append([]string(nil), table.Vars...), "Result")
	s.c.Renderer.Table(header, tableRows(s.c.Renderer, table))
	return nil
}

func (s *replSession) printHelp() {
	r := s.c.Renderer
	r.Println("Enter an expression to evaluate it step by step, e.g. not (A and B) or C")
	r.Println("")
	r.Println("  .vars 2|3        Switch between A,B and A,B,C")
	r.Println("  .set A=true ...  Assign variables; .set alone shows them")
	r.Println("  .table <expr>    Print a truth table")
	r.Println("  .help            Show this help")
	r.Println("  .quit            Exit")
}
