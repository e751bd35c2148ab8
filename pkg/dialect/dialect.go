// Package dialect provides the SQL text conventions expressions are rendered with.
//
// A Dialect decides how literals, identifiers and query parameters are spelled.
// Concrete dialects are registered in standard.go; callers pick one by name via Get.
package dialect

import (
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/KDE/kdb-sub002/pkg/core"
)

// PlaceholderStyle defines how query parameters are formatted.
type PlaceholderStyle int

const (
	// PlaceholderNamed renders parameters as [name].
	PlaceholderNamed PlaceholderStyle = iota
	// PlaceholderColon renders parameters as :name (SQLite).
	PlaceholderColon
	// PlaceholderDollar uses $1, $2, etc. for parameters (PostgreSQL).
	PlaceholderDollar
	// PlaceholderQuestion uses ? for all parameters.
	PlaceholderQuestion
)

// IdentifierConfig defines how identifiers are quoted.
type IdentifierConfig struct {
	Quote    string // Quote character: ", `, [
	QuoteEnd string // End quote character (usually same as Quote, ] for [)
	Escape   string // Escape sequence for QuoteEnd inside the identifier: "", ``, ]]
}

// DateTimeStyle defines how date/time literals are written.
type DateTimeStyle int

const (
	// DateTimeTyped writes DATE '...', TIME '...', TIMESTAMP '...'.
	DateTimeTyped DateTimeStyle = iota
	// DateTimeString writes plain string literals.
	DateTimeString
)

// Dialect represents a SQL dialect configuration.
type Dialect struct {
	Name        string
	Identifiers IdentifierConfig
	Placeholder PlaceholderStyle
	DateTimes   DateTimeStyle

	// BoolAsInt renders TRUE/FALSE as 1/0.
	BoolAsInt bool
	// BlobHexPrefix and BlobHexSuffix wrap the hex digits of a byte literal.
	BlobHexPrefix string
	BlobHexSuffix string

	reservedWords map[string]struct{} // upper-cased words that need quoting as identifiers
}

// GetName returns the dialect name.
func (d *Dialect) GetName() string {
	return d.Name
}

// QuoteString returns s as a single-quoted SQL string literal.
func (d *Dialect) QuoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// NeedsQuoting reports whether ident has to be quoted to be read back as
// an identifier: it is a reserved word or not a plain [A-Za-z_][A-Za-z0-9_]* name.
func (d *Dialect) NeedsQuoting(ident string) bool {
	if ident == "" {
		return true
	}
	for i := 0; i < len(ident); i++ {
		c := ident[i]
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return true
		}
	}
	_, reserved := d.reservedWords[strings.ToUpper(ident)]
	return reserved
}

// QuoteIdentifier quotes ident when NeedsQuoting says so.
func (d *Dialect) QuoteIdentifier(ident string) string {
	if !d.NeedsQuoting(ident) {
		return ident
	}
	q := d.Identifiers
	return q.Quote + strings.ReplaceAll(ident, q.QuoteEnd, q.Escape) + q.QuoteEnd
}

// FormatBool returns the literal for a boolean.
func (d *Dialect) FormatBool(b bool) string {
	switch {
	case d.BoolAsInt && b:
		return "1"
	case d.BoolAsInt:
		return "0"
	case b:
		return "TRUE"
	default:
		return "FALSE"
	}
}

// FormatBytes returns the literal for a byte sequence.
func (d *Dialect) FormatBytes(b []byte) string {
	return d.BlobHexPrefix + strings.ToUpper(hex.EncodeToString(b)) + d.BlobHexSuffix
}

// FormatDate returns the literal for a calendar date.
func (d *Dialect) FormatDate(t time.Time) string {
	return d.typedLiteral("DATE", t.Format(core.DateLayout))
}

// FormatTime returns the literal for a time of day.
func (d *Dialect) FormatTime(t time.Time) string {
	return d.typedLiteral("TIME", t.Format(core.TimeLayout)+fraction(t))
}

// FormatDateTime returns the literal for a date-time.
func (d *Dialect) FormatDateTime(t time.Time) string {
	return d.typedLiteral("TIMESTAMP", t.Format(core.DateTimeLayout)+fraction(t))
}

func (d *Dialect) typedLiteral(keyword, text string) string {
	if d.DateTimes == DateTimeString {
		return d.QuoteString(text)
	}
	return keyword + " " + d.QuoteString(text)
}

func fraction(t time.Time) string {
	if t.Nanosecond() == 0 {
		return ""
	}
	return strings.TrimRight(t.Format(".000000000"), "0")
}

// FormatPlaceholder returns a placeholder for the parameter called name,
// which is the index-th parameter (1-based) of the rendered text.
func (d *Dialect) FormatPlaceholder(name string, index int) string {
	switch d.Placeholder {
	case PlaceholderColon:
		return ":" + name
	case PlaceholderDollar:
		return "$" + strconv.Itoa(index)
	case PlaceholderQuestion:
		return "?"
	default:
		return "[" + name + "]"
	}
}
