// Package token defines the tokens attached to SQL expression nodes.
//
// Single-character tokens carry the value of the printable ASCII character
// they stand for ('+', '*', '(' ...). Keyword and multi-character tokens are
// defined as constants above MaxCharTokenValue. Dialect-specific keywords are
// registered dynamically via Register().
package token

import (
	"fmt"
	"strings"
)

// Token identifies an operator, keyword or literal class.
// The zero value is the invalid token.
type Token int32

// MaxCharTokenValue is the largest value a single-character token can have.
const MaxCharTokenValue Token = 253

// Invalid is the default token; it means "no operator".
const Invalid Token = 0

// invalidName is what Name and String return for tokens nobody knows.
const invalidName = "<INVALID_TOKEN>"

//nolint:revive // Token names are intentionally ALL_CAPS for SQL token conventions
const (
	// Relational ternary operators
	BETWEEN_AND Token = MaxCharTokenValue + 1 + iota
	NOT_BETWEEN_AND

	// Literal classes
	CHARACTER_STRING_LITERAL
	DATE_CONST
	DATETIME_CONST
	TIME_CONST
	INTEGER_CONST
	REAL_CONST
	SQL_NULL
	SQL_TRUE
	SQL_FALSE

	// Names
	IDENTIFIER
	IDENTIFIER_DOT_ASTERISK
	QUERY_PARAMETER

	// Multi-character operators
	CONCATENATION       // ||
	GREATER_OR_EQUAL    // >=
	LESS_OR_EQUAL       // <=
	NOT_EQUAL           // <>
	NOT_EQUAL2          // !=
	BITWISE_SHIFT_LEFT  // <<
	BITWISE_SHIFT_RIGHT // >>
	DOUBLE_COLON        // ::

	// Keyword operators
	LIKE
	NOT_LIKE
	SIMILAR_TO
	NOT_SIMILAR_TO
	SQL_IN
	NOT_IN
	SQL_IS
	SQL_IS_NULL
	SQL_IS_NOT_NULL
	AND
	OR
	XOR
	NOT
	AS

	// Statement keywords (alphabetical)
	ALL
	ASC
	BY
	CASE
	CAST
	CROSS
	DESC
	DISTINCT
	ELSE
	END
	EXCEPT
	EXISTS
	FROM
	FULL
	GROUP
	HAVING
	INNER
	INTERSECT
	JOIN
	LEFT
	LIMIT
	OFFSET
	ON
	ORDER
	OUTER
	RIGHT
	SELECT
	SQL
	THEN
	UNION
	WHEN
	WHERE

	// Sentinel - dynamic tokens start after this
	maxBuiltin Token = 999
)

// Char returns the single-character token for c.
// Only printable ASCII characters form valid tokens.
func Char(c byte) Token {
	if c <= ' ' || c > '~' {
		return Invalid
	}
	return Token(c)
}

// Value returns the raw integer value of the token.
func (t Token) Value() int32 { return int32(t) }

// ToChar returns the character of a single-character token, or 0.
func (t Token) ToChar() byte {
	if t > ' ' && t <= '~' {
		return byte(t)
	}
	return 0
}

// IsValid reports whether t names a token: a single-character token, a
// builtin keyword or operator, or a registered dynamic token.
func (t Token) IsValid() bool {
	if t.IsChar() {
		return true
	}
	if _, ok := tokenNames[t]; ok {
		return true
	}
	_, ok := getDynamicName(t)
	return ok
}

// IsChar reports whether t is a single-character token.
func (t Token) IsChar() bool { return t.ToChar() != 0 }

// IsDynamic returns true if the token is a dynamically registered token.
func (t Token) IsDynamic() bool { return t > maxBuiltin }

// Name returns the identifier of the token: the character itself for
// single-character tokens, the constant name (e.g. NOT_EQUAL) otherwise.
func (t Token) Name() string {
	if c := t.ToChar(); c != 0 {
		return string(rune(c))
	}
	if name, ok := getDynamicName(t); ok {
		return name
	}
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return invalidName
}

// String returns the SQL spelling of the token (e.g. "<>" for NOT_EQUAL,
// "SIMILAR TO" for SIMILAR_TO). Tokens without a special spelling use Name.
func (t Token) String() string {
	if s, ok := spellings[t]; ok {
		return s
	}
	return t.Name()
}

// GoString formats the token for %#v, useful in test failures.
func (t Token) GoString() string {
	return fmt.Sprintf("token.Token(%d /* %s */)", int32(t), t.Name())
}

// IsKeyword reports whether the SQL spelling of the token is a word
// (NOT, LIKE, IS NULL ...) rather than symbolic.
func (t Token) IsKeyword() bool {
	if !t.IsValid() || t.IsChar() {
		return false
	}
	s := t.String()
	return s != "" && (s[0] >= 'A' && s[0] <= 'Z' || s[0] >= 'a' && s[0] <= 'z')
}

// tokenNames maps builtin keyword tokens to their identifiers.
var tokenNames = map[Token]string{
	BETWEEN_AND:     "BETWEEN_AND",
	NOT_BETWEEN_AND: "NOT_BETWEEN_AND",

	CHARACTER_STRING_LITERAL: "CHARACTER_STRING_LITERAL",
	DATE_CONST:               "DATE_CONST",
	DATETIME_CONST:           "DATETIME_CONST",
	TIME_CONST:               "TIME_CONST",
	INTEGER_CONST:            "INTEGER_CONST",
	REAL_CONST:               "REAL_CONST",
	SQL_NULL:                 "SQL_NULL",
	SQL_TRUE:                 "SQL_TRUE",
	SQL_FALSE:                "SQL_FALSE",

	IDENTIFIER:              "IDENTIFIER",
	IDENTIFIER_DOT_ASTERISK: "IDENTIFIER_DOT_ASTERISK",
	QUERY_PARAMETER:         "QUERY_PARAMETER",

	CONCATENATION:       "CONCATENATION",
	GREATER_OR_EQUAL:    "GREATER_OR_EQUAL",
	LESS_OR_EQUAL:       "LESS_OR_EQUAL",
	NOT_EQUAL:           "NOT_EQUAL",
	NOT_EQUAL2:          "NOT_EQUAL2",
	BITWISE_SHIFT_LEFT:  "BITWISE_SHIFT_LEFT",
	BITWISE_SHIFT_RIGHT: "BITWISE_SHIFT_RIGHT",
	DOUBLE_COLON:        "DOUBLE_COLON",

	LIKE:            "LIKE",
	NOT_LIKE:        "NOT_LIKE",
	SIMILAR_TO:      "SIMILAR_TO",
	NOT_SIMILAR_TO:  "NOT_SIMILAR_TO",
	SQL_IN:          "SQL_IN",
	NOT_IN:          "NOT_IN",
	SQL_IS:          "SQL_IS",
	SQL_IS_NULL:     "SQL_IS_NULL",
	SQL_IS_NOT_NULL: "SQL_IS_NOT_NULL",
	AND:             "AND",
	OR:              "OR",
	XOR:             "XOR",
	NOT:             "NOT",
	AS:              "AS",

	ALL:       "ALL",
	ASC:       "ASC",
	BY:        "BY",
	CASE:      "CASE",
	CAST:      "CAST",
	CROSS:     "CROSS",
	DESC:      "DESC",
	DISTINCT:  "DISTINCT",
	ELSE:      "ELSE",
	END:       "END",
	EXCEPT:    "EXCEPT",
	EXISTS:    "EXISTS",
	FROM:      "FROM",
	FULL:      "FULL",
	GROUP:     "GROUP",
	HAVING:    "HAVING",
	INNER:     "INNER",
	INTERSECT: "INTERSECT",
	JOIN:      "JOIN",
	LEFT:      "LEFT",
	LIMIT:     "LIMIT",
	OFFSET:    "OFFSET",
	ON:        "ON",
	ORDER:     "ORDER",
	OUTER:     "OUTER",
	RIGHT:     "RIGHT",
	SELECT:    "SELECT",
	SQL:       "SQL",
	THEN:      "THEN",
	UNION:     "UNION",
	WHEN:      "WHEN",
	WHERE:     "WHERE",
}

// spellings holds the SQL text of tokens whose spelling differs from the name.
var spellings = map[Token]string{
	BETWEEN_AND:         "BETWEEN",
	NOT_BETWEEN_AND:     "NOT BETWEEN",
	SQL_NULL:            "NULL",
	SQL_TRUE:            "TRUE",
	SQL_FALSE:           "FALSE",
	CONCATENATION:       "||",
	GREATER_OR_EQUAL:    ">=",
	LESS_OR_EQUAL:       "<=",
	NOT_EQUAL:           "<>",
	NOT_EQUAL2:          "!=",
	BITWISE_SHIFT_LEFT:  "<<",
	BITWISE_SHIFT_RIGHT: ">>",
	DOUBLE_COLON:        "::",
	NOT_LIKE:            "NOT LIKE",
	SIMILAR_TO:          "SIMILAR TO",
	NOT_SIMILAR_TO:      "NOT SIMILAR TO",
	SQL_IN:              "IN",
	NOT_IN:              "NOT IN",
	SQL_IS:              "IS",
	SQL_IS_NULL:         "IS NULL",
	SQL_IS_NOT_NULL:     "IS NOT NULL",
}

// charTokens lists the single-character tokens the expression grammar uses.
var charTokens = []byte{
	'!', '#', '%', '&', '(', ')', '*', '+', ',', '-', '.', '/',
	':', ';', '<', '=', '>', '?', '[', ']', '^', '|', '~',
}

// lookup maps upper-cased names and spellings to builtin tokens.
var lookup = func() map[string]Token {
	m := make(map[string]Token, 2*len(tokenNames))
	for t, name := range tokenNames {
		m[name] = t
	}
	for t, s := range spellings {
		m[s] = t
	}
	return m
}()

// Lookup returns the token spelled s. It accepts single characters ("+"),
// SQL spellings ("<>", "similar to") and token names ("NOT_EQUAL").
// Keyword matching is case-insensitive. Registered dynamic tokens are
// consulted after the builtin ones. Invalid is returned when nothing matches.
func Lookup(s string) Token {
	if len(s) == 1 {
		return Char(s[0])
	}
	key := strings.ToUpper(strings.Join(strings.Fields(s), " "))
	if t, ok := lookup[key]; ok {
		return t
	}
	if t, ok := LookupDynamicKeyword(key); ok {
		return t
	}
	return Invalid
}

// All returns every known token in ascending value order: the grammar's
// single-character tokens, the builtin keywords and registered dynamic tokens.
func All() []Token {
	result := make([]Token, 0, len(charTokens)+len(tokenNames))
	for _, c := range charTokens {
		result = append(result, Token(c))
	}
	for t := BETWEEN_AND; t <= WHERE; t++ {
		result = append(result, t)
	}
	return append(result, dynamicList()...)
}
