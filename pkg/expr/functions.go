package expr

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/KDE/kdb-sub002/pkg/core"
)

// ArgKind is the set of types a function argument accepts.
type ArgKind int

// ArgKind constants.
const (
	ArgAny ArgKind = iota
	ArgNumber
	ArgInteger
	ArgText
	ArgTextOrBLOB
	ArgAnyOrAsterisk
)

func (k ArgKind) String() string {
	switch k {
	case ArgNumber:
		return "number"
	case ArgInteger:
		return "integer"
	case ArgText:
		return "text"
	case ArgTextOrBLOB:
		return "text or BLOB"
	case ArgAnyOrAsterisk:
		return "any value or *"
	default:
		return "any value"
	}
}

// Accepts reports whether an argument of type t is allowed. The NULL type
// is accepted everywhere.
func (k ArgKind) Accepts(t core.FieldType) bool {
	switch t {
	case core.Null:
		return true
	case core.InvalidType, core.Tuple:
		return false
	case core.Asterisk:
		return k == ArgAnyOrAsterisk
	}
	switch k {
	case ArgNumber:
		return t.IsNumeric()
	case ArgInteger:
		return t.IsInteger()
	case ArgText:
		return t.IsText()
	case ArgTextOrBLOB:
		return t.IsText() || t == core.BLOB
	default:
		return true
	}
}

// Builtin describes a built-in SQL function.
type Builtin struct {
	Name    string
	MinArgs int
	// MaxArgs is -1 for variadic functions.
	MaxArgs int
	// Args holds the kind of each position; the last kind repeats.
	Args      []ArgKind
	Aggregate bool

	result func(args []core.FieldType) core.FieldType
}

// AcceptsCount reports whether the function can be called with n arguments.
func (b *Builtin) AcceptsCount(n int) bool {
	return n >= b.MinArgs && (b.MaxArgs < 0 || n <= b.MaxArgs)
}

// ArgKind returns the kind accepted at position i.
func (b *Builtin) ArgKind(i int) ArgKind {
	switch {
	case len(b.Args) == 0:
		return ArgAny
	case i < len(b.Args):
		return b.Args[i]
	default:
		return b.Args[len(b.Args)-1]
	}
}

// ResultType returns the type of a call with arguments of the given types,
// or InvalidType when the argument count is out of range or an argument
// has no valid type.
func (b *Builtin) ResultType(args []core.FieldType) core.FieldType {
	if !b.AcceptsCount(len(args)) {
		return core.InvalidType
	}
	if slices.Contains(args, core.InvalidType) {
		return core.InvalidType
	}
	return b.result(args)
}

// LookupFunction returns the built-in function called name, ignoring case.
func LookupFunction(name string) (*Builtin, bool) {
	b, ok := builtins[cases.Upper(language.Und).String(name)]
	return b, ok
}

// BuiltinFunctions returns all built-in functions sorted by name.
func BuiltinFunctions() []*Builtin {
	result := make([]*Builtin, 0, len(builtins))
	for _, b := range builtins {
		result = append(result, b)
	}
	slices.SortFunc(result, func(a, b *Builtin) int { return strings.Compare(a.Name, b.Name) })
	return result
}

var builtins = map[string]*Builtin{}

func register(b *Builtin) {
	builtins[b.Name] = b
}

func fixed(t core.FieldType) func([]core.FieldType) core.FieldType {
	return func([]core.FieldType) core.FieldType { return t }
}

// nullOr returns t unless the first argument is NULL.
func nullOr(t core.FieldType) func([]core.FieldType) core.FieldType {
	return func(args []core.FieldType) core.FieldType {
		if len(args) > 0 && args[0] == core.Null {
			return core.Null
		}
		return t
	}
}

func numeric(args []core.FieldType) core.FieldType {
	switch t := args[0]; {
	case t == core.Null, t.IsInteger():
		return t
	case t.IsFloat():
		return core.Double
	}
	return core.InvalidType
}

func textOfFirst(args []core.FieldType) core.FieldType {
	if t := args[0]; t == core.Null || t.IsText() {
		return t
	}
	return core.InvalidType
}

// commonType is the type shared by all non-NULL arguments.
func commonType(args []core.FieldType) core.FieldType {
	result := core.Null
	for _, t := range args {
		switch {
		case t == core.Null:
		case result == core.Null:
			result = t
		case result.IsInteger() && t.IsInteger():
			result = max(result, t)
		case result.IsNumeric() && t.IsNumeric():
			result = core.Double
		case result.IsText() && t.IsText():
			result = max(result, t)
		case result != t:
			return core.InvalidType
		}
	}
	if result == core.Asterisk || result == core.Tuple {
		return core.InvalidType
	}
	return result
}

// anyNull returns Null when an argument is NULL and commonType otherwise.
func anyNull(args []core.FieldType) core.FieldType {
	if slices.Contains(args, core.Null) {
		return core.Null
	}
	return commonType(args)
}

func init() {
	for _, b := range []*Builtin{
		{Name: "ABS", MinArgs: 1, MaxArgs: 1, Args: []ArgKind{ArgNumber}, result: numeric},
		{Name: "CEILING", MinArgs: 1, MaxArgs: 1, Args: []ArgKind{ArgNumber}, result: numeric},
		{Name: "FLOOR", MinArgs: 1, MaxArgs: 1, Args: []ArgKind{ArgNumber}, result: numeric},
		{Name: "ROUND", MinArgs: 1, MaxArgs: 2, Args: []ArgKind{ArgNumber, ArgInteger}, result: numeric},
		{Name: "RANDOM", MinArgs: 0, MaxArgs: 2, Args: []ArgKind{ArgInteger}, result: func(args []core.FieldType) core.FieldType {
			if len(args) == 0 {
				return core.Double
			}
			result := core.Integer
			for _, t := range args {
				switch {
				case t == core.Null:
					return core.Null
				case !t.IsInteger():
					return core.InvalidType
				}
				result = core.MaxInteger(result, t)
			}
			return result
		}},
		{Name: "CHAR", MinArgs: 0, MaxArgs: -1, Args: []ArgKind{ArgInteger}, result: fixed(core.Text)},
		{Name: "HEX", MinArgs: 1, MaxArgs: 1, Args: []ArgKind{ArgAny}, result: nullOr(core.Text)},
		{Name: "INSTR", MinArgs: 2, MaxArgs: 2, Args: []ArgKind{ArgText}, result: nullOr(core.Integer)},
		{Name: "LENGTH", MinArgs: 1, MaxArgs: 1, Args: []ArgKind{ArgTextOrBLOB}, result: nullOr(core.Integer)},
		{Name: "LOWER", MinArgs: 1, MaxArgs: 1, Args: []ArgKind{ArgText}, result: textOfFirst},
		{Name: "UPPER", MinArgs: 1, MaxArgs: 1, Args: []ArgKind{ArgText}, result: textOfFirst},
		{Name: "LTRIM", MinArgs: 1, MaxArgs: 2, Args: []ArgKind{ArgText}, result: textOfFirst},
		{Name: "RTRIM", MinArgs: 1, MaxArgs: 2, Args: []ArgKind{ArgText}, result: textOfFirst},
		{Name: "TRIM", MinArgs: 1, MaxArgs: 2, Args: []ArgKind{ArgText}, result: textOfFirst},
		{Name: "SOUNDEX", MinArgs: 1, MaxArgs: 1, Args: []ArgKind{ArgText}, result: nullOr(core.Text)},
		{Name: "SUBSTR", MinArgs: 2, MaxArgs: 3, Args: []ArgKind{ArgText, ArgInteger}, result: func(args []core.FieldType) core.FieldType {
			switch t := args[0]; {
			case t == core.Null:
				return core.Null
			case t.IsText():
				return core.Text
			}
			return core.InvalidType
		}},
		{Name: "UNICODE", MinArgs: 1, MaxArgs: 1, Args: []ArgKind{ArgText}, result: nullOr(core.Integer)},
		{Name: "COALESCE", MinArgs: 2, MaxArgs: -1, Args: []ArgKind{ArgAny}, result: commonType},
		{Name: "IFNULL", MinArgs: 2, MaxArgs: 2, Args: []ArgKind{ArgAny}, result: commonType},
		{Name: "NULLIF", MinArgs: 2, MaxArgs: 2, Args: []ArgKind{ArgAny}, result: func(args []core.FieldType) core.FieldType {
			return args[0]
		}},
		{Name: "GREATEST", MinArgs: 2, MaxArgs: -1, Args: []ArgKind{ArgAny}, result: anyNull},
		{Name: "LEAST", MinArgs: 2, MaxArgs: -1, Args: []ArgKind{ArgAny}, result: anyNull},
		{Name: "MIN", MinArgs: 1, MaxArgs: -1, Args: []ArgKind{ArgAny}, Aggregate: true, result: commonType},
		{Name: "MAX", MinArgs: 1, MaxArgs: -1, Args: []ArgKind{ArgAny}, Aggregate: true, result: commonType},
		{Name: "COUNT", MinArgs: 1, MaxArgs: 1, Args: []ArgKind{ArgAnyOrAsterisk}, Aggregate: true, result: fixed(core.BigInteger)},
		{Name: "SUM", MinArgs: 1, MaxArgs: 1, Args: []ArgKind{ArgNumber}, Aggregate: true, result: func(args []core.FieldType) core.FieldType {
			switch t := args[0]; {
			case t == core.Null:
				return core.Null
			case t.IsInteger():
				return core.BigInteger
			case t.IsFloat():
				return core.Double
			}
			return core.InvalidType
		}},
		{Name: "AVG", MinArgs: 1, MaxArgs: 1, Args: []ArgKind{ArgNumber}, Aggregate: true, result: nullOr(core.Double)},
	} {
		register(b)
	}
}
