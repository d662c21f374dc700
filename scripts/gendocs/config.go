package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/leapstack-labs/boolstep/internal/cli/config"
)

// ConfigField represents a configuration key.
type ConfigField struct {
	Name        string
	Type        string
	Default     string
	Env         string
	Flag        string
	Description string
}

// getConfigSchema describes the keys of internal/cli/config.Config.
func getConfigSchema() []ConfigField {
	d := config.DefaultConfig()
	return []ConfigField{
		{Name: "output", Type: "string", Default: d.OutputFormat, Env: "BOOLSTEP_OUTPUT", Flag: "--output", Description: "Output format: auto, text, markdown or json"},
		{Name: "verbose", Type: "bool", Default: "false", Env: "BOOLSTEP_VERBOSE", Flag: "--verbose", Description: "Log debug messages to stderr"},
		{Name: "variables", Type: "int", Default: strconv.Itoa(d.Variables), Env: "BOOLSTEP_VARIABLES", Flag: "--vars", Description: "Variable mode: 2 for A,B or 3 for A,B,C"},
		{Name: "presets_file", Type: "string", Env: "BOOLSTEP_PRESETS_FILE", Flag: "--presets", Description: "YAML preset catalogue, relative to the config file"},
		{Name: "server.port", Type: "int", Default: strconv.Itoa(d.Server.Port), Env: "BOOLSTEP_SERVER_PORT", Flag: "serve --port", Description: "Port the API listens on"},
		{Name: "server.watch", Type: "bool", Default: strconv.FormatBool(d.Server.Watch), Env: "BOOLSTEP_SERVER_WATCH", Flag: "serve --watch", Description: "Reload the presets file when it changes"},
		{Name: "server.session_secret", Type: "string", Default: "${BOOLSTEP_SESSION_SECRET}", Env: "BOOLSTEP_SESSION_SECRET", Description: "Secret signing stepper session cookies; ${VAR} references are expanded"},
	}
}

// generateConfigDocs generates the configuration reference page.
func generateConfigDocs(outDir string) error {
	log.Printf("Generating configuration docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	w := NewMarkdownWriter()
	w.Frontmatter("Configuration", "boolstep configuration reference")
	w.GeneratedMarker()

	w.Header(1, "Configuration")
	w.Paragraph("boolstep reads `boolstep.yaml` or `boolstep.yml` from the working directory or the nearest parent. " +
		"Environment variables override the file and flags override both.")

	headers := []string{"Key", "Type", "Default", "Environment", "Flag", "Description"}
	var rows [][]string
	for _, f := range getConfigSchema() {
		defVal, flagName := "-", "-"
		if f.Default != "" {
			defVal = InlineCode(f.Default)
		}
		if f.Flag != "" {
			flagName = InlineCode(f.Flag)
		}
		rows = append(rows, []string{InlineCode(f.Name), f.Type, defVal, InlineCode(f.Env), flagName, f.Description})
	}
	w.Table(headers, rows)

	w.Header(2, "Example")
	w.CodeBlock("yaml", `output: text
variables: 3
presets_file: presets/classroom.yaml
server:
  port: 8080
  watch: true
  session_secret: ${CLASSROOM_SECRET}`)

	if err := os.WriteFile(filepath.Join(outDir, "configuration.md"), w.Bytes(), 0600); err != nil {
		return err
	}
	log.Printf("  Generated configuration.md")
	return nil
}
