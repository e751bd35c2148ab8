package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KDE/kdb-sub002/pkg/core"
	"github.com/KDE/kdb-sub002/pkg/dialect"
)

func newFlags(t *testing.T) *pflag.FlagSet {
	t.Helper()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("max-text-length", 0, "")
	flags.String("dialect", "", "")
	flags.StringP("output", "o", "", "")
	flags.String("log-level", "", "")
	flags.BoolP("verbose", "v", false, "")
	flags.IntP("jobs", "j", 0, "")
	return flags
}

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "kdbexpr.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Empty(t, GetConfigFileUsed())
}

func TestLoadConfig_Precedence(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeConfig(t, dir, "dialect: sqlite\nmax_text_length: 40\njobs: 2\noutput: json\n")
	t.Setenv("KDBEXPR_JOBS", "8")
	t.Setenv("KDBEXPR_LOG_LEVEL", "debug")

	flags := newFlags(t)
	require.NoError(t, flags.Parse([]string{"--dialect", "postgres"}))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Dialect, "flag beats file")
	assert.Equal(t, 8, cfg.Jobs, "env beats file")
	assert.Equal(t, 40, cfg.MaxTextLength, "file beats default")
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, filepath.Join(dir, "kdbexpr.yaml"), GetConfigFileUsed())
}

func TestLoadConfig_SearchesUpward(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "dialect: SQLite\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o750))
	t.Chdir(nested)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Dialect)
	assert.Same(t, dialect.SQLite, cfg.SelectedDialect())
}

func TestLoadConfig_ExplicitFile(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeConfig(t, t.TempDir(), "output: markdown\n")

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "markdown", cfg.OutputFormat)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.ErrorContains(t, err, "error reading config file")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		errSubstr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"negative length", func(c *Config) { c.MaxTextLength = -1 }, "max_text_length"},
		{"unknown dialect", func(c *Config) { c.Dialect = "oracle" }, "unknown dialect"},
		{"unknown output", func(c *Config) { c.OutputFormat = "csv" }, "invalid output format"},
		{"unknown level", func(c *Config) { c.LogLevel = "loud" }, "invalid log_level"},
		{"no jobs", func(c *Config) { c.Jobs = 0 }, "jobs must be at least 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errSubstr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.errSubstr)
		})
	}
}

func TestLoadConfig_RejectsInvalid(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("KDBEXPR_OUTPUT", "xml")

	_, err := LoadConfig("", nil)
	assert.ErrorContains(t, err, "invalid output format")
}

func TestConfig_Apply(t *testing.T) {
	defer core.SetDefaultMaxLength(core.DefaultMaxLength())

	cfg := Default()
	cfg.MaxTextLength = 12
	cfg.Apply()
	assert.Equal(t, 12, core.DefaultMaxLength())
}

func TestConfig_NewLogger(t *testing.T) {
	cfg := Default()
	l := cfg.NewLogger(os.Stderr)
	assert.False(t, l.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, l.Enabled(context.Background(), slog.LevelWarn))

	cfg.Verbose = true
	assert.True(t, cfg.NewLogger(os.Stderr).Enabled(context.Background(), slog.LevelDebug))
}

func TestGetLogger(t *testing.T) {
	assert.NotNil(t, GetLogger(context.Background()))

	l := slog.New(slog.DiscardHandler)
	ctx := context.WithValue(context.Background(), LoggerKey(), l)
	assert.Same(t, l, GetLogger(ctx))
}

func TestGetConfig(t *testing.T) {
	assert.Equal(t, Default(), GetConfig(context.Background()))

	cfg := Default()
	cfg.Jobs = 1
	ctx := context.WithValue(context.Background(), ConfigKey(), cfg)
	assert.Same(t, cfg, GetConfig(ctx))
}
