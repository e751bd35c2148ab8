package core

import "sync/atomic"

// FieldType is the SQL scalar type domain an expression evaluates to.
type FieldType int

// FieldType constants. Integer types are ordered by width so that the wider
// of two integer types is the larger value.
const (
	InvalidType FieldType = iota
	Byte
	ShortInteger
	Integer
	BigInteger
	Boolean
	Date
	DateTime
	Time
	Float
	Double
	Text
	LongText
	BLOB
	// Null is the type of the untyped NULL literal.
	Null
	// Structural markers, not scalar types.
	Asterisk
	Enum
	Map
	Tuple
)

var fieldTypeNames = [...]string{
	InvalidType:  "InvalidType",
	Byte:         "Byte",
	ShortInteger: "ShortInteger",
	Integer:      "Integer",
	BigInteger:   "BigInteger",
	Boolean:      "Boolean",
	Date:         "Date",
	DateTime:     "DateTime",
	Time:         "Time",
	Float:        "Float",
	Double:       "Double",
	Text:         "Text",
	LongText:     "LongText",
	BLOB:         "BLOB",
	Null:         "Null",
	Asterisk:     "Asterisk",
	Enum:         "Enum",
	Map:          "Map",
	Tuple:        "Tuple",
}

// String returns the name of the type.
func (t FieldType) String() string {
	if t < 0 || int(t) >= len(fieldTypeNames) {
		return fieldTypeNames[InvalidType]
	}
	return fieldTypeNames[t]
}

// ParseFieldType returns the type named s, or InvalidType.
func ParseFieldType(s string) FieldType {
	for t, name := range fieldTypeNames {
		if name == s {
			return FieldType(t)
		}
	}
	return InvalidType
}

// TypeGroup classifies field types into families of mutually comparable types.
type TypeGroup int

// TypeGroup constants.
const (
	InvalidGroup TypeGroup = iota
	TextGroup
	IntegerGroup
	FloatGroup
	BooleanGroup
	DateTimeGroup
	BLOBGroup
)

var typeGroupNames = [...]string{
	InvalidGroup:  "InvalidGroup",
	TextGroup:     "TextGroup",
	IntegerGroup:  "IntegerGroup",
	FloatGroup:    "FloatGroup",
	BooleanGroup:  "BooleanGroup",
	DateTimeGroup: "DateTimeGroup",
	BLOBGroup:     "BLOBGroup",
}

func (g TypeGroup) String() string {
	if g < 0 || int(g) >= len(typeGroupNames) {
		return typeGroupNames[InvalidGroup]
	}
	return typeGroupNames[g]
}

// Group returns the type group of t. Null and the structural markers
// belong to no group.
func (t FieldType) Group() TypeGroup {
	switch t {
	case Byte, ShortInteger, Integer, BigInteger:
		return IntegerGroup
	case Float, Double:
		return FloatGroup
	case Text, LongText:
		return TextGroup
	case Boolean:
		return BooleanGroup
	case Date, DateTime, Time:
		return DateTimeGroup
	case BLOB:
		return BLOBGroup
	default:
		return InvalidGroup
	}
}

// IsInteger reports whether t is one of the integer widths.
func (t FieldType) IsInteger() bool { return t.Group() == IntegerGroup }

// IsFloat reports whether t is a floating-point type.
func (t FieldType) IsFloat() bool { return t.Group() == FloatGroup }

// IsNumeric reports whether t is an integer or floating-point type.
func (t FieldType) IsNumeric() bool { return t.IsInteger() || t.IsFloat() }

// IsText reports whether t is Text or LongText.
func (t FieldType) IsText() bool { return t.Group() == TextGroup }

// IsDateTime reports whether t is Date, DateTime or Time.
func (t FieldType) IsDateTime() bool { return t.Group() == DateTimeGroup }

// IsValid reports whether t is a usable type (not InvalidType).
func (t FieldType) IsValid() bool { return t > InvalidType && int(t) < len(fieldTypeNames) }

// MaxInteger returns the type of combining two integer operands: the wider
// of both, but never narrower than Integer so small operands cannot overflow.
func MaxInteger(a, b FieldType) FieldType {
	return max(a, b, Integer)
}

// defaultMaxLength is the maximum length of a Text value; 0 means unlimited.
var defaultMaxLength atomic.Int64

// DefaultMaxLength returns the maximum number of characters a Text value
// may have before it is considered LongText. 0 means unlimited.
func DefaultMaxLength() int {
	return int(defaultMaxLength.Load())
}

// SetDefaultMaxLength sets the value returned by DefaultMaxLength.
// Negative values are treated as 0.
func SetDefaultMaxLength(n int) {
	if n < 0 {
		n = 0
	}
	defaultMaxLength.Store(int64(n))
}
