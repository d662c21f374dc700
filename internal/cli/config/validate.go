package config

import (
	"fmt"

	"github.com/leapstack-labs/boolstep/internal/cli/output"
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Variables != 2 && c.Variables != 3 {
		return fmt.Errorf("variables must be 2 or 3, got %d", c.Variables)
	}
	if !output.IsValidMode(c.OutputFormat) {
		return fmt.Errorf("unknown output format %q (expected one of %v)", c.OutputFormat, output.Modes)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	return nil
}
