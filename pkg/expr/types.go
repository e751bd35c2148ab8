package expr

import (
	"unicode/utf8"

	"github.com/KDE/kdb-sub002/pkg/core"
	"github.com/KDE/kdb-sub002/pkg/token"
)

// operatorClass returns the family of a binary operator.
func operatorClass(t token.Token) SubClass {
	switch t {
	case token.Char('+'), token.Char('-'), token.Char('*'), token.Char('/'), token.Char('%'),
		token.Char('&'), token.Char('|'), token.Char('^'),
		token.BITWISE_SHIFT_LEFT, token.BITWISE_SHIFT_RIGHT, token.CONCATENATION:
		return Arithmetic
	case token.Char('='), token.Char('<'), token.Char('>'),
		token.NOT_EQUAL, token.NOT_EQUAL2, token.GREATER_OR_EQUAL, token.LESS_OR_EQUAL,
		token.LIKE, token.NOT_LIKE, token.SIMILAR_TO, token.NOT_SIMILAR_TO,
		token.SQL_IN, token.NOT_IN, token.SQL_IS,
		token.BETWEEN_AND, token.NOT_BETWEEN_AND:
		return Relational
	case token.AND, token.OR, token.XOR:
		return Logical
	default:
		return Special
	}
}

// Type returns the result type of e. Malformed and cyclic trees yield
// core.InvalidType; Type never changes the tree.
func (e Expr) Type() core.FieldType {
	if e.arena == nil {
		return core.InvalidType
	}
	return e.arena.typeOf(e.id, make(map[id]struct{}))
}

func (a *Arena) typeOf(i id, path map[id]struct{}) core.FieldType {
	if i == noID {
		return core.InvalidType
	}
	if _, seen := path[i]; seen {
		return core.InvalidType
	}
	path[i] = struct{}{}
	defer delete(path, i)

	n := &a.nodes[i]
	switch n.class {
	case ClassConst:
		return constType(n.tok, n.value)
	case ClassUnary:
		return unaryType(n.tok, a.typeOf(n.children[0], path))
	case ClassBinary:
		l, r := n.children[0], n.children[1]
		return a.binaryType(n.tok, l, a.typeOf(l, path), r, a.typeOf(r, path))
	case ClassNArg:
		return a.naryType(n, path)
	case ClassFunction:
		b, ok := LookupFunction(n.name)
		if !ok {
			return core.InvalidType
		}
		return b.ResultType(a.argTypes(n.children[0], path))
	case ClassVariable:
		if isAsterisk(n.name) {
			return core.Asterisk
		}
		return n.ftype
	case ClassQueryParameter:
		return n.ftype
	default:
		return core.InvalidType
	}
}

// argTypes returns the types of the children of an argument list.
func (a *Arena) argTypes(list id, path map[id]struct{}) []core.FieldType {
	if list == noID {
		return nil
	}
	kids := a.nodes[list].children
	types := make([]core.FieldType, len(kids))
	for i, c := range kids {
		types[i] = a.typeOf(c, path)
	}
	return types
}

func constType(t token.Token, v core.Value) core.FieldType {
	switch t {
	case token.SQL_NULL:
		return core.Null
	case token.SQL_TRUE, token.SQL_FALSE:
		return core.Boolean
	case token.REAL_CONST:
		return core.Double
	case token.DATE_CONST:
		return core.Date
	case token.DATETIME_CONST:
		return core.DateTime
	case token.TIME_CONST:
		return core.Time
	}
	return valueType(v)
}

// valueType derives a type from a literal value. Integers get the smallest
// width holding them.
func valueType(v core.Value) core.FieldType {
	switch v.Kind() {
	case core.KindNull:
		return core.Null
	case core.KindInt:
		i, _ := v.Int()
		if i >= 0 {
			return unsignedType(uint64(i))
		}
		switch {
		case i > -0x80:
			return core.Byte
		case i > -0x8000:
			return core.ShortInteger
		case i > -0x80000000:
			return core.Integer
		default:
			return core.BigInteger
		}
	case core.KindUint:
		u, _ := v.Uint()
		return unsignedType(u)
	case core.KindReal:
		return core.Double
	case core.KindBool:
		return core.Boolean
	case core.KindText:
		s, _ := v.Text()
		if limit := core.DefaultMaxLength(); limit > 0 && utf8.RuneCountInString(s) > limit {
			return core.LongText
		}
		return core.Text
	case core.KindBytes:
		return core.BLOB
	case core.KindDate:
		return core.Date
	case core.KindTime:
		return core.Time
	case core.KindDateTime:
		return core.DateTime
	default:
		return core.InvalidType
	}
}

func unsignedType(u uint64) core.FieldType {
	switch {
	case u <= 0xff:
		return core.Byte
	case u <= 0xffff:
		return core.ShortInteger
	case u <= 0xffffffff:
		return core.Integer
	default:
		return core.BigInteger
	}
}

func unaryType(t token.Token, arg core.FieldType) core.FieldType {
	if arg == core.InvalidType {
		return core.InvalidType
	}
	switch t {
	case token.NOT:
		switch arg {
		case core.Null, core.Boolean:
			return arg
		}
		return core.InvalidType
	case token.SQL_IS_NULL, token.SQL_IS_NOT_NULL:
		if arg == core.Null {
			return core.Null
		}
		return core.Boolean
	}
	return arg
}

func (a *Arena) binaryType(t token.Token, l id, lt core.FieldType, r id, rt core.FieldType) core.FieldType {
	if lt == core.InvalidType || rt == core.InvalidType {
		return core.InvalidType
	}
	switch operatorClass(t) {
	case Arithmetic:
		return arithmeticType(t, lt, rt)
	case Relational:
		return relationalType(t, lt, rt)
	case Logical:
		return logicalType(t, lt, a.truth(l), rt, a.truth(r))
	}
	if t == token.AS {
		return lt
	}
	return core.InvalidType
}

func arithmeticType(t token.Token, lt, rt core.FieldType) core.FieldType {
	if lt == core.Null || rt == core.Null {
		return core.Null
	}
	concat := t == token.Char('+') || t == token.CONCATENATION
	switch {
	case lt.IsText() && rt.IsText():
		if !concat {
			return core.InvalidType
		}
		if lt == core.LongText || rt == core.LongText {
			return core.LongText
		}
		return core.Text
	case t == token.CONCATENATION:
		return core.InvalidType
	case lt.IsInteger() && rt.IsInteger():
		return core.MaxInteger(lt, rt)
	case !lt.IsNumeric() || !rt.IsNumeric():
		return core.InvalidType
	}
	switch t {
	case token.Char('&'), token.Char('|'), token.Char('^'),
		token.BITWISE_SHIFT_LEFT, token.BITWISE_SHIFT_RIGHT:
		return core.InvalidType
	}
	return core.Double
}

func relationalType(t token.Token, lt, rt core.FieldType) core.FieldType {
	switch t {
	case token.SQL_IN, token.NOT_IN:
		if rt == core.Tuple {
			if lt == core.Null {
				return core.Null
			}
			return core.Boolean
		}
	}
	if lt == core.Null || rt == core.Null {
		return core.Null
	}
	switch t {
	case token.LIKE, token.NOT_LIKE, token.SIMILAR_TO, token.NOT_SIMILAR_TO:
		if lt.IsText() && rt.IsText() {
			return core.Boolean
		}
		return core.InvalidType
	}
	if isComparable(lt, rt) {
		return core.Boolean
	}
	return core.InvalidType
}

// isComparable reports whether values of the two types can be compared.
func isComparable(a, b core.FieldType) bool {
	if a.IsNumeric() && b.IsNumeric() {
		return true
	}
	g := a.Group()
	return g != core.InvalidGroup && g == b.Group()
}

// truthValue is the known boolean value of an operand.
type truthValue int

const (
	truthUnknown truthValue = iota
	truthFalse
	truthTrue
)

// truth returns the value of a TRUE or FALSE constant.
func (a *Arena) truth(i id) truthValue {
	if i == noID {
		return truthUnknown
	}
	n := &a.nodes[i]
	if n.class != ClassConst {
		return truthUnknown
	}
	if b, ok := n.value.Bool(); ok && (n.tok == token.SQL_TRUE || n.tok == token.SQL_FALSE) {
		if b {
			return truthTrue
		}
		return truthFalse
	}
	switch n.tok {
	case token.SQL_TRUE:
		return truthTrue
	case token.SQL_FALSE:
		return truthFalse
	}
	return truthUnknown
}

// combineTruth evaluates a logical operator over two possibly unknown
// operand values.
func combineTruth(t token.Token, l, r truthValue) truthValue {
	switch t {
	case token.OR:
		if l == truthTrue || r == truthTrue {
			return truthTrue
		}
		if l == truthFalse && r == truthFalse {
			return truthFalse
		}
	case token.AND:
		if l == truthFalse || r == truthFalse {
			return truthFalse
		}
		if l == truthTrue && r == truthTrue {
			return truthTrue
		}
	case token.XOR:
		if l != truthUnknown && r != truthUnknown {
			if l != r {
				return truthTrue
			}
			return truthFalse
		}
	}
	return truthUnknown
}

// logicalType applies the three-valued truth table. With one NULL operand
// the result is only known when the other side decides it on its own.
func logicalType(t token.Token, lt core.FieldType, lv truthValue, rt core.FieldType, rv truthValue) core.FieldType {
	for _, ft := range []core.FieldType{lt, rt} {
		if ft != core.Boolean && ft != core.Null {
			return core.InvalidType
		}
	}
	switch {
	case lt == core.Boolean && rt == core.Boolean:
		return core.Boolean
	case lt == core.Null && rt == core.Null:
		return core.Null
	}
	other := lv
	if lt == core.Null {
		other = rv
	}
	switch {
	case t == token.OR && other == truthTrue:
		return core.Boolean
	case t == token.AND && other == truthFalse:
		return core.Boolean
	}
	return core.Null
}

func (a *Arena) naryType(n *node, path map[id]struct{}) core.FieldType {
	kids := n.children
	switch n.sub {
	case Arithmetic, Logical:
		if len(kids) < 2 {
			return core.InvalidType
		}
		acc := a.typeOf(kids[0], path)
		accTruth := a.truth(kids[0])
		for _, c := range kids[1:] {
			ct := a.typeOf(c, path)
			if acc == core.InvalidType || ct == core.InvalidType {
				return core.InvalidType
			}
			if n.sub == Arithmetic {
				acc = arithmeticType(n.tok, acc, ct)
				continue
			}
			ctTruth := a.truth(c)
			next := logicalType(n.tok, acc, accTruth, ct, ctTruth)
			accTruth = combineTruth(n.tok, accTruth, ctTruth)
			acc = next
		}
		return acc
	case Relational:
		if n.tok != token.BETWEEN_AND && n.tok != token.NOT_BETWEEN_AND || len(kids) != 3 {
			return core.InvalidType
		}
		var types [3]core.FieldType
		for i, c := range kids {
			types[i] = a.typeOf(c, path)
			if types[i] == core.InvalidType {
				return core.InvalidType
			}
		}
		for _, t := range types {
			if t == core.Null {
				return core.Null
			}
		}
		if isComparable(types[0], types[1]) && isComparable(types[0], types[2]) {
			return core.Boolean
		}
		return core.InvalidType
	default:
		return core.Tuple
	}
}
