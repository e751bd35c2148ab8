package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMode(t *testing.T) {
	assert.Equal(t, ModeJSON, Mode("JSON"))
	assert.Equal(t, ModeMarkdown, Mode("markdown"))
	assert.Equal(t, ModeAuto, Mode("csv"))
}

func TestEffectiveMode(t *testing.T) {
	tests := []struct {
		mode  OutputMode
		isTTY bool
		want  OutputMode
	}{
		{ModeAuto, true, ModeText},
		{ModeAuto, false, ModeMarkdown},
		{ModeJSON, true, ModeJSON},
		{ModeText, false, ModeText},
	}
	for _, tt := range tests {
		r := NewRendererWithTTY(&bytes.Buffer{}, &bytes.Buffer{}, tt.isTTY, tt.mode)
		assert.Equal(t, tt.want, r.EffectiveMode(), "%s tty=%t", tt.mode, tt.isTTY)
	}
}

func TestNewRendererOnBufferIsNotTTY(t *testing.T) {
	r := NewRenderer(&bytes.Buffer{}, &bytes.Buffer{}, ModeAuto)
	assert.False(t, r.IsTTY())
}

func TestTable(t *testing.T) {
	header := []string{"Name", "Type"}
	rows := [][]string{{"a", "Integer"}, {"b", "Text"}}

	t.Run("markdown", func(t *testing.T) {
		out := &bytes.Buffer{}
		require.NoError(t, NewRendererWithTTY(out, out, false, ModeMarkdown).Table(header, rows))
		assert.Contains(t, out.String(), "| Name | Type |")
		assert.Contains(t, out.String(), "| a | Integer |")
	})

	t.Run("text", func(t *testing.T) {
		out := &bytes.Buffer{}
		require.NoError(t, NewRendererWithTTY(out, out, true, ModeText).Table(header, rows))
		assert.Contains(t, out.String(), "Integer")
		assert.Contains(t, out.String(), "(2 rows)")
	})

	t.Run("json", func(t *testing.T) {
		out := &bytes.Buffer{}
		require.NoError(t, NewRendererWithTTY(out, out, false, ModeJSON).Table(header, rows))
		var got []map[string]string
		require.NoError(t, json.Unmarshal(out.Bytes(), &got))
		assert.Equal(t, []map[string]string{{"name": "a", "type": "Integer"}, {"name": "b", "type": "Text"}}, got)
	})
}

func TestWarnf(t *testing.T) {
	errOut := &bytes.Buffer{}
	NewRendererWithTTY(&bytes.Buffer{}, errOut, false, ModeText).Warnf("skipped %s", "x")
	assert.Equal(t, "warning: skipped x\n", errOut.String())
}
