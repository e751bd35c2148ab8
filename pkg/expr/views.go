package expr

import (
	"strings"

	"github.com/KDE/kdb-sub002/pkg/core"
	"github.com/KDE/kdb-sub002/pkg/token"
)

// Unary is an operator applied to one argument.
type Unary struct{ Expr }

// Binary is an operator applied to a left and a right operand.
type Binary struct{ Expr }

// NArg is an ordered list of child expressions.
type NArg struct{ Expr }

// Const is a literal.
type Const struct{ Expr }

// Function is a call of a named function with an argument list.
type Function struct{ Expr }

// Variable references a column or a wildcard.
type Variable struct{ Expr }

// QueryParameter is a placeholder bound when the query runs.
type QueryParameter struct{ Expr }

// AsUnary returns the unary view of e.
func (e Expr) AsUnary() (Unary, bool) {
	if e.Class() == ClassUnary {
		return Unary{e}, true
	}
	return Unary{}, false
}

// AsBinary returns the binary view of e.
func (e Expr) AsBinary() (Binary, bool) {
	if e.Class() == ClassBinary {
		return Binary{e}, true
	}
	return Binary{}, false
}

// AsNArg returns the n-ary view of e.
func (e Expr) AsNArg() (NArg, bool) {
	if e.Class() == ClassNArg {
		return NArg{e}, true
	}
	return NArg{}, false
}

// AsConst returns the constant view of e.
func (e Expr) AsConst() (Const, bool) {
	if e.Class() == ClassConst {
		return Const{e}, true
	}
	return Const{}, false
}

// AsFunction returns the function view of e.
func (e Expr) AsFunction() (Function, bool) {
	if e.Class() == ClassFunction {
		return Function{e}, true
	}
	return Function{}, false
}

// AsVariable returns the variable view of e.
func (e Expr) AsVariable() (Variable, bool) {
	if e.Class() == ClassVariable {
		return Variable{e}, true
	}
	return Variable{}, false
}

// AsQueryParameter returns the query parameter view of e.
func (e Expr) AsQueryParameter() (QueryParameter, bool) {
	if e.Class() == ClassQueryParameter {
		return QueryParameter{e}, true
	}
	return QueryParameter{}, false
}

// Arg returns the argument.
func (u Unary) Arg() Expr {
	if u.Class() != ClassUnary {
		return Expr{}
	}
	return u.arena.handle(u.node().children[0])
}

// Left returns the left operand.
func (b Binary) Left() Expr { return b.slot(0) }

// Right returns the right operand.
func (b Binary) Right() Expr { return b.slot(1) }

func (b Binary) slot(i int) Expr {
	if b.Class() != ClassBinary {
		return Expr{}
	}
	return b.arena.handle(b.node().children[i])
}

// SubClass returns the operator family of the expression.
func (b Binary) SubClass() SubClass { return operatorClass(b.Token()) }

// SubClass returns the list or operator family of the expression.
func (n NArg) SubClass() SubClass {
	if nd := n.node(); nd != nil {
		return nd.sub
	}
	return ArgumentList
}

// Len returns the number of children, empty slots included.
func (n NArg) Len() int {
	if n.Class() != ClassNArg {
		return 0
	}
	return len(n.node().children)
}

// IsEmpty reports whether the list has no children.
func (n NArg) IsEmpty() bool { return n.Len() == 0 }

// At returns the child at index i, or the null handle when i is out of range.
func (n NArg) At(i int) Expr {
	if i < 0 || i >= n.Len() {
		return Expr{}
	}
	return n.arena.handle(n.node().children[i])
}

// IndexOf returns the position of the first occurrence of child at or
// after from, or -1.
func (n NArg) IndexOf(child Expr, from int) int {
	if from < 0 {
		from = 0
	}
	want, ok := n.childID(child)
	if !ok {
		return -1
	}
	for i := from; i < n.Len(); i++ {
		if n.node().children[i] == want {
			return i
		}
	}
	return -1
}

// LastIndexOf returns the position of the last occurrence of child at or
// before from, or -1. A negative from searches from the end.
func (n NArg) LastIndexOf(child Expr, from int) int {
	if from < 0 || from >= n.Len() {
		from = n.Len() - 1
	}
	want, ok := n.childID(child)
	if !ok {
		return -1
	}
	for i := from; i >= 0; i-- {
		if n.node().children[i] == want {
			return i
		}
	}
	return -1
}

// childID maps a handle to the id stored in the children slice.
// The null handle matches empty slots.
func (n NArg) childID(child Expr) (id, bool) {
	if child.arena == nil {
		return noID, true
	}
	return child.id, child.arena == n.arena
}

// ContainsNullArgument reports whether a child is missing, of the Null
// class, or of the NULL type.
func (n NArg) ContainsNullArgument() bool {
	for i := 0; i < n.Len(); i++ {
		c := n.At(i)
		if c.Class() == ClassNull || c.Type() == core.Null {
			return true
		}
	}
	return false
}

// ContainsInvalidArgument reports whether a child is missing, of the Null
// class, or of an invalid type.
func (n NArg) ContainsInvalidArgument() bool {
	for i := 0; i < n.Len(); i++ {
		c := n.At(i)
		if c.Class() == ClassNull || c.Type() == core.InvalidType {
			return true
		}
	}
	return false
}

// Value returns the literal value.
func (c Const) Value() core.Value {
	if c.Class() != ClassConst {
		return core.NullValue()
	}
	return c.node().value
}

// SetValue replaces the literal value. The type follows the new value.
func (c Const) SetValue(v core.Value) {
	if c.Class() == ClassConst {
		c.node().value = v.Clone()
	}
}

// SetToken replaces the literal class token.
func (c Const) SetToken(t token.Token) {
	if c.Class() == ClassConst {
		c.node().tok = t
	}
}

// Name returns the function name as written.
func (f Function) Name() string {
	if f.Class() != ClassFunction {
		return ""
	}
	return f.node().name
}

// SetName renames the function.
func (f Function) SetName(name string) {
	if f.Class() == ClassFunction {
		f.node().name = name
	}
}

// Arguments returns the argument list, or the zero NArg when there is none.
func (f Function) Arguments() NArg {
	if f.Class() != ClassFunction {
		return NArg{}
	}
	return NArg{f.arena.handle(f.node().children[0])}
}

// Name returns the dotted name as written.
func (v Variable) Name() string {
	if v.Class() != ClassVariable {
		return ""
	}
	return v.node().name
}

// IsAsterisk reports whether the variable is "*" or "table.*".
func (v Variable) IsAsterisk() bool { return isAsterisk(v.Name()) }

// Table returns the table qualifier, or "".
func (v Variable) Table() string {
	name := v.Name()
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[:i]
	}
	return ""
}

// Column returns the name without table qualifier.
func (v Variable) Column() string {
	name := v.Name()
	return name[strings.LastIndexByte(name, '.')+1:]
}

// FieldType returns the type the variable was bound to, InvalidType if unbound.
func (v Variable) FieldType() core.FieldType {
	if v.Class() != ClassVariable {
		return core.InvalidType
	}
	return v.node().ftype
}

// SetFieldType binds the variable to a column type.
func (v Variable) SetFieldType(t core.FieldType) {
	if v.Class() == ClassVariable {
		v.node().ftype = t
	}
}

// Name returns the parameter name.
func (p QueryParameter) Name() string {
	if p.Class() != ClassQueryParameter {
		return ""
	}
	return p.node().name
}

// FieldType returns the expected type of the parameter value.
func (p QueryParameter) FieldType() core.FieldType {
	if p.Class() != ClassQueryParameter {
		return core.InvalidType
	}
	return p.node().ftype
}

// SetFieldType sets the expected type of the parameter value.
func (p QueryParameter) SetFieldType(t core.FieldType) {
	if p.Class() == ClassQueryParameter {
		p.node().ftype = t
	}
}

func isAsterisk(name string) bool {
	return name == "*" || strings.HasSuffix(name, ".*")
}
