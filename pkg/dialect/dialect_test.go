package dialect

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteString(t *testing.T) {
	assert.Equal(t, "'abc'", Native.QuoteString("abc"))
	assert.Equal(t, "'it''s'", Native.QuoteString("it's"))
	assert.Equal(t, "''", SQLite.QuoteString(""))
}

func TestQuoteIdentifier(t *testing.T) {
	tests := []struct {
		ident string
		want  string
	}{
		{"name", "name"},
		{"_x1", "_x1"},
		{"select", `"select"`},
		{"Where", `"Where"`},
		{"1abc", `"1abc"`},
		{"first name", `"first name"`},
		{`a"b`, `"a""b"`},
		{"", `""`},
	}
	for _, tt := range tests {
		t.Run(tt.ident, func(t *testing.T) {
			assert.Equal(t, tt.want, Native.QuoteIdentifier(tt.ident))
		})
	}
	assert.True(t, SQLite.NeedsQuoting("glob"))
	assert.False(t, Native.NeedsQuoting("glob"))
}

func TestLiterals(t *testing.T) {
	ts := time.Date(2024, time.March, 5, 14, 30, 0, 0, time.UTC)

	assert.Equal(t, "DATE '2024-03-05'", Native.FormatDate(ts))
	assert.Equal(t, "TIMESTAMP '2024-03-05 14:30:00'", Native.FormatDateTime(ts))
	assert.Equal(t, "TIME '14:30:00'", Native.FormatTime(ts))
	assert.Equal(t, "'2024-03-05'", SQLite.FormatDate(ts))
	assert.Equal(t, "TIME '14:30:00.5'", Native.FormatTime(ts.Add(500*time.Millisecond)))

	assert.Equal(t, "X'00FF'", Native.FormatBytes([]byte{0, 0xff}))
	assert.Equal(t, `'\x0A'::bytea`, PostgreSQL.FormatBytes([]byte{10}))

	assert.Equal(t, "TRUE", Native.FormatBool(true))
	assert.Equal(t, "FALSE", SQLite.FormatBool(false))
	assert.Equal(t, "1", (&Dialect{BoolAsInt: true}).FormatBool(true))
}

func TestFormatPlaceholder(t *testing.T) {
	assert.Equal(t, "[id]", Native.FormatPlaceholder("id", 1))
	assert.Equal(t, ":id", SQLite.FormatPlaceholder("id", 1))
	assert.Equal(t, "$2", PostgreSQL.FormatPlaceholder("id", 2))
	assert.Equal(t, "?", (&Dialect{Placeholder: PlaceholderQuestion}).FormatPlaceholder("id", 3))
}

func TestRegistry(t *testing.T) {
	assert.Equal(t, []string{"native", "postgres", "sqlite"}, List())

	d, ok := Get("SQLite")
	require.True(t, ok)
	assert.Same(t, SQLite, d)

	_, err := Lookup("oracle")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownDialect)
	assert.Contains(t, err.Error(), "native, postgres, sqlite")
}
