package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/boolstep/internal/cli/config"
	"github.com/leapstack-labs/boolstep/internal/presets"
	"github.com/leapstack-labs/boolstep/internal/ui"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API",
		Long: `Start a local HTTP server exposing evaluation, tracing, truth tables,
comparison, practice checking and a cookie-backed stepper as JSON.

With --watch, the presets file given by --presets or presets_file is
reloaded on change and pushed to clients of /api/updates.`,
		Example: `  # Serve on the default port
  boolstep serve

  # Custom port and preset catalogue
  boolstep serve --port 3000 --presets ./classroom.yaml`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	// Read through the config loader as server.port and server.watch.
	cmd.Flags().Int("port", config.DefaultPort, "Port to serve on")
	cmd.Flags().Bool("watch", true, "Reload the presets file when it changes")

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	c := NewCommandContext(cmd)
	cfg := c.Cfg

	source, err := presets.NewSource(cfg.PresetsFile)
	if err != nil {
		return err
	}
	if cfg.Server.SessionSecret == config.DevSessionSecret {
		c.Renderer.Warning("using the development session secret; set BOOLSTEP_SESSION_SECRET for shared deployments")
	}

	server := ui.NewServer(ui.Config{
		Presets:       source,
		Port:          cfg.Server.Port,
		Watch:         cfg.Server.Watch,
		Variables:     cfg.Variables,
		SessionSecret: cfg.Server.SessionSecret,
		Logger:        c.Logger,
	})

	c.Renderer.Printf("Serving API on http://localhost:%d\n", cfg.Server.Port)
	c.Renderer.Muted("Press Ctrl+C to stop")

	ctx, cancel := signal.NotifyContext(contextOrBackground(cmd), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return server.Serve(ctx)
}

func contextOrBackground(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
