// Package config provides configuration management for the boolstep CLI.
package config

// ServerConfig holds configuration for the HTTP server.
type ServerConfig struct {
	Port          int    `koanf:"port"`
	Watch         bool   `koanf:"watch"`
	SessionSecret string `koanf:"session_secret"`
}

// Config holds all CLI configuration options.
type Config struct {
	Verbose      bool         `koanf:"verbose"`
	OutputFormat string       `koanf:"output"`
	Variables    int          `koanf:"variables"`
	PresetsFile  string       `koanf:"presets_file"`
	Server       ServerConfig `koanf:"server"`

	// ConfigDir is the directory of the config file in use, or the working
	// directory when there is none.
	ConfigDir string `koanf:"-"`

	// UnknownKeys lists keys from the file or environment that match no
	// field, typically typos.
	UnknownKeys []string `koanf:"-"`
}

// Default configuration values.
const (
	DefaultOutput    = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultVariables = 2
	DefaultPort      = 8765

	// DevSessionSecret signs stepper cookies when no secret is configured.
	DevSessionSecret = "boolstep-development-session-secret"
)

// DefaultConfig returns the configuration used before any source is loaded.
func DefaultConfig() *Config {
	return &Config{
		OutputFormat: DefaultOutput,
		Variables:    DefaultVariables,
		Server: ServerConfig{
			Port:          DefaultPort,
			Watch:         true,
			SessionSecret: DevSessionSecret,
		},
	}
}
