package core

import (
	"encoding/hex"
	"strconv"
	"time"
)

// ValueKind identifies the variant held by a Value.
type ValueKind int

// ValueKind constants.
const (
	KindNull ValueKind = iota
	KindInt
	KindUint
	KindReal
	KindBool
	KindText
	KindBytes
	KindDate
	KindTime
	KindDateTime
)

func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindReal:
		return "real"
	case KindBool:
		return "bool"
	case KindText:
		return "text"
	case KindBytes:
		return "bytes"
	case KindDate:
		return "date"
	case KindTime:
		return "time"
	case KindDateTime:
		return "datetime"
	default:
		return "unknown"
	}
}

// Layouts used to print and parse date/time values.
const (
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04:05"
	DateTimeLayout = "2006-01-02 15:04:05"
)

// Value is a literal value carried by a constant expression.
// The zero Value is NULL.
type Value struct {
	kind ValueKind
	i    int64
	u    uint64
	f    float64
	s    string
	b    []byte
	t    time.Time
}

// NullValue returns the NULL value.
func NullValue() Value { return Value{} }

// IntValue returns a signed integer value.
func IntValue(v int64) Value { return Value{kind: KindInt, i: v} }

// UintValue returns an unsigned integer value.
func UintValue(v uint64) Value { return Value{kind: KindUint, u: v} }

// RealValue returns a floating-point value.
func RealValue(v float64) Value { return Value{kind: KindReal, f: v} }

// BoolValue returns a boolean value.
func BoolValue(v bool) Value { return Value{kind: KindBool, i: boolToInt(v)} }

// TextValue returns a character string value.
func TextValue(s string) Value { return Value{kind: KindText, s: s} }

// BytesValue returns a byte sequence value. The slice is copied.
func BytesValue(b []byte) Value {
	return Value{kind: KindBytes, b: append([]byte(nil), b...)}
}

// DateValue returns a calendar date value.
func DateValue(year int, month time.Month, day int) Value {
	return Value{kind: KindDate, t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// TimeValue returns a time-of-day value.
func TimeValue(hour, minute, sec, nsec int) Value {
	return Value{kind: KindTime, t: time.Date(0, time.January, 1, hour, minute, sec, nsec, time.UTC)}
}

// DateTimeValue returns a date-time value.
func DateTimeValue(t time.Time) Value { return Value{kind: KindDateTime, t: t} }

func boolToInt(v bool) int64 {
	if v {
		return 1
	}
	return 0
}

// Kind returns the variant of v.
func (v Value) Kind() ValueKind { return v.kind }

// IsNull reports whether v is the NULL value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Int returns the signed integer held by v.
func (v Value) Int() (int64, bool) { return v.i, v.kind == KindInt }

// Uint returns the unsigned integer held by v.
func (v Value) Uint() (uint64, bool) { return v.u, v.kind == KindUint }

// Real returns the floating-point number held by v.
func (v Value) Real() (float64, bool) { return v.f, v.kind == KindReal }

// Bool returns the boolean held by v.
func (v Value) Bool() (bool, bool) { return v.i != 0, v.kind == KindBool }

// Text returns the string held by v.
func (v Value) Text() (string, bool) { return v.s, v.kind == KindText }

// Bytes returns the byte sequence held by v.
func (v Value) Bytes() ([]byte, bool) { return v.b, v.kind == KindBytes }

// Time returns the date, time or date-time held by v.
func (v Value) Time() (time.Time, bool) {
	switch v.kind {
	case KindDate, KindTime, KindDateTime:
		return v.t, true
	}
	return time.Time{}, false
}

// Clone returns a copy of v that shares no memory with it.
func (v Value) Clone() Value {
	if v.kind == KindBytes {
		v.b = append([]byte(nil), v.b...)
	}
	return v
}

// String returns a plain, locale-independent rendering of v. It is
// meant for diagnostics; SQL literals are produced by the dialects.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindUint:
		return strconv.FormatUint(v.u, 10)
	case KindReal:
		return FormatReal(v.f)
	case KindBool:
		return strconv.FormatBool(v.i != 0)
	case KindText:
		return v.s
	case KindBytes:
		return hex.EncodeToString(v.b)
	case KindDate:
		return v.t.Format(DateLayout)
	case KindTime:
		return v.t.Format(TimeLayout)
	case KindDateTime:
		return v.t.Format(DateTimeLayout)
	default:
		return "NULL"
	}
}

// FormatReal formats f without locale influence and always keeps a decimal
// point or exponent so the text reads back as a real number.
func FormatReal(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '.', 'e', 'E', 'I', 'N':
			return s
		}
	}
	return s + ".0"
}
