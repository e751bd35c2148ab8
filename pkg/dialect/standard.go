package dialect

import (
	"strings"

	"github.com/KDE/kdb-sub002/pkg/token"
)

// reservedKeywords returns the single-word keyword spellings of the builtin
// tokens plus extra dialect words.
func reservedKeywords(extra ...string) map[string]struct{} {
	words := make(map[string]struct{})
	for _, t := range token.All() {
		if t.IsDynamic() || !t.IsKeyword() {
			continue
		}
		s := t.String()
		if strings.ContainsAny(s, " _") {
			continue
		}
		words[s] = struct{}{}
	}
	for _, w := range extra {
		words[strings.ToUpper(w)] = struct{}{}
	}
	return words
}

var (
	// Native is the dialect used when no driver is involved: typed date
	// literals, [name] parameters and X'..' byte strings.
	Native = &Dialect{
		Name:          "native",
		Identifiers:   IdentifierConfig{Quote: `"`, QuoteEnd: `"`, Escape: `""`},
		Placeholder:   PlaceholderNamed,
		DateTimes:     DateTimeTyped,
		BlobHexPrefix: "X'",
		BlobHexSuffix: "'",
		reservedWords: reservedKeywords(),
	}

	// SQLite follows SQLite's literal syntax; it has no typed date literals.
	SQLite = &Dialect{
		Name:          "sqlite",
		Identifiers:   IdentifierConfig{Quote: `"`, QuoteEnd: `"`, Escape: `""`},
		Placeholder:   PlaceholderColon,
		DateTimes:     DateTimeString,
		BlobHexPrefix: "X'",
		BlobHexSuffix: "'",
		reservedWords: reservedKeywords("GLOB", "REGEXP", "MATCH", "PRAGMA"),
	}

	// PostgreSQL uses positional parameters and bytea escapes.
	PostgreSQL = &Dialect{
		Name:          "postgres",
		Identifiers:   IdentifierConfig{Quote: `"`, QuoteEnd: `"`, Escape: `""`},
		Placeholder:   PlaceholderDollar,
		DateTimes:     DateTimeTyped,
		BlobHexPrefix: `'\x`,
		BlobHexSuffix: "'::bytea",
		reservedWords: reservedKeywords("ILIKE", "RETURNING", "USER"),
	}
)

func init() {
	Register(Native)
	Register(SQLite)
	Register(PostgreSQL)
}
