package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/KDE/kdb-sub002/pkg/core"
	"github.com/KDE/kdb-sub002/pkg/dialect"
)

var outputFormats = []string{"auto", "text", "markdown", "json"}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.MaxTextLength < 0 {
		return fmt.Errorf("max_text_length must not be negative, got %d", c.MaxTextLength)
	}
	if _, err := dialect.Lookup(c.Dialect); err != nil {
		return fmt.Errorf("invalid dialect: %w", err)
	}
	if !isOutputFormat(c.OutputFormat) {
		return fmt.Errorf("invalid output format %q (available: %s)", c.OutputFormat, strings.Join(outputFormats, ", "))
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1, got %d", c.Jobs)
	}
	return nil
}

func isOutputFormat(s string) bool {
	for _, f := range outputFormats {
		if s == f {
			return true
		}
	}
	return false
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return l, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return l, nil
}

// Apply pushes process-wide settings into the expression packages.
func (c *Config) Apply() {
	core.SetDefaultMaxLength(c.MaxTextLength)
}

// SelectedDialect returns the configured dialect, Native if it is unknown.
func (c *Config) SelectedDialect() *dialect.Dialect {
	if d, ok := dialect.Get(c.Dialect); ok {
		return d
	}
	return dialect.Native
}
