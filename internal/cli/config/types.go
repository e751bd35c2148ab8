// Package config provides configuration management for the kdbexpr CLI.
//
// Values come from, in increasing priority: built-in defaults, a
// kdbexpr.yaml (or kdbexpr.yml) file, KDBEXPR_* environment variables and
// explicitly set command-line flags.
package config

// Config holds all CLI configuration options.
type Config struct {
	// MaxTextLength is the length above which text literals type as LongText.
	MaxTextLength int    `koanf:"max_text_length"`
	Dialect       string `koanf:"dialect"`
	OutputFormat  string `koanf:"output"`
	LogLevel      string `koanf:"log_level"`
	Verbose       bool   `koanf:"verbose"`
	// Jobs bounds how many tree files check processes at once.
	Jobs int `koanf:"jobs"`
}

// Default configuration values.
const (
	DefaultMaxTextLength = 255
	DefaultDialect       = "native"
	DefaultOutput        = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultLogLevel      = "warn"
	DefaultJobs          = 4
)

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		MaxTextLength: DefaultMaxTextLength,
		Dialect:       DefaultDialect,
		OutputFormat:  DefaultOutput,
		LogLevel:      DefaultLogLevel,
		Jobs:          DefaultJobs,
	}
}
