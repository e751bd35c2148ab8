package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KDE/kdb-sub002/pkg/core"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestRootHasSubcommands(t *testing.T) {
	cmd := NewRootCmd()
	for _, name := range []string{"version", "render", "type", "check", "eval", "tokens", "completion"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}
	for _, flag := range []string{"config", "dialect", "max-text-length", "log-level", "jobs", "verbose", "output"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestVersionCommand(t *testing.T) {
	t.Chdir(t.TempDir())
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "kdbexpr v"+Version)
}

func TestRenderThroughRoot(t *testing.T) {
	defer core.SetDefaultMaxLength(core.DefaultMaxLength())

	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "kdbexpr.yaml"), []byte("dialect: sqlite\noutput: markdown\n"), 0o600))
	trees := filepath.Join(dir, "trees.yaml")
	require.NoError(t, os.WriteFile(trees, []byte(`name: p
expr: {param: {name: id, type: Integer}}
`), 0o600))

	out, err := execute(t, "render", trees)
	require.NoError(t, err)
	assert.Contains(t, out, "| p | :id |")

	out, err = execute(t, "render", trees, "--dialect", "native")
	require.NoError(t, err)
	assert.Contains(t, out, "| p | [id] |")
}

func TestInvalidConfigFails(t *testing.T) {
	t.Chdir(t.TempDir())
	_, err := execute(t, "tokens", "--dialect", "oracle")
	assert.ErrorContains(t, err, "unknown dialect")
}

func TestCompletionCommand(t *testing.T) {
	out, err := execute(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "kdbexpr")
}
