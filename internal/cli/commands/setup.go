package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/boolstep/internal/cli/config"
	"github.com/leapstack-labs/boolstep/internal/cli/output"
	"github.com/leapstack-labs/boolstep/internal/presets"
	"github.com/leapstack-labs/boolstep/pkg/eval"
	"github.com/leapstack-labs/boolstep/pkg/parser"
	"github.com/leapstack-labs/boolstep/pkg/truthtable"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext with a renderer for cmd's
// output streams.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// Vars returns the variables of the configured mode.
func (c *CommandContext) Vars() ([]string, error) {
	return truthtable.VarsForMode(c.Cfg.Variables)
}

// Env builds the assignment for the configured mode from --set pairs.
// Unassigned variables are False.
func (c *CommandContext) Env(pairs []string) (eval.Env, error) {
	vars, err := c.Vars()
	if err != nil {
		return nil, err
	}
	defaults, err := eval.NewEnv(vars, make([]bool, len(vars)))
	if err != nil {
		return nil, err
	}
	return eval.ParseAssignment(defaults, pairs)
}

// Parse parses src and logs the outcome.
func (c *CommandContext) Parse(src string) (parser.Node, error) {
	n, err := parser.ParseString(src)
	if err != nil {
		c.Logger.Debug("parse failed", slog.String("expr", src), slog.String("error", err.Error()))
		return nil, err
	}
	c.Logger.Debug("parsed expression", slog.String("expr", src), slog.Any("vars", parser.Variables(n)))
	return n, nil
}

// Presets loads the configured preset catalogue.
func (c *CommandContext) Presets() (*presets.Catalog, error) {
	return presets.Load(c.Cfg.PresetsFile)
}

// getConfig returns the current configuration, or the defaults when no
// configuration has been loaded.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return config.DefaultConfig()
}

// addSetFlag registers the repeatable --set NAME=VALUE flag.
func addSetFlag(cmd *cobra.Command, target *[]string) {
	cmd.Flags().StringArrayVarP(target, "set", "s", nil, "Assign a variable, e.g. --set A=true (repeatable)")
}
