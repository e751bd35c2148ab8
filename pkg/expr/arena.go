package expr

import (
	"log/slog"

	"github.com/KDE/kdb-sub002/pkg/core"
	"github.com/KDE/kdb-sub002/pkg/token"
)

// Class is the kind of an expression node.
type Class int

// Class constants.
const (
	ClassNull Class = iota
	ClassUnary
	ClassBinary
	ClassNArg
	ClassConst
	ClassFunction
	ClassVariable
	ClassQueryParameter
)

func (c Class) String() string {
	switch c {
	case ClassUnary:
		return "Unary"
	case ClassBinary:
		return "Binary"
	case ClassNArg:
		return "NArg"
	case ClassConst:
		return "Const"
	case ClassFunction:
		return "Function"
	case ClassVariable:
		return "Variable"
	case ClassQueryParameter:
		return "QueryParameter"
	default:
		return "Null"
	}
}

// SubClass refines binary and n-ary expressions.
type SubClass int

// SubClass constants. Binary expressions derive theirs from the operator;
// n-ary expressions are created with one.
const (
	ArgumentList SubClass = iota
	FieldList
	TableList
	Arithmetic
	Logical
	Relational
	Special
)

func (s SubClass) String() string {
	switch s {
	case ArgumentList:
		return "ArgumentList"
	case FieldList:
		return "FieldList"
	case TableList:
		return "TableList"
	case Arithmetic:
		return "Arithmetic"
	case Logical:
		return "Logical"
	case Relational:
		return "Relational"
	default:
		return "Special"
	}
}

// isList reports whether s is one of the list-like sub-classes whose type
// is the Tuple marker.
func (s SubClass) isList() bool {
	return s == ArgumentList || s == FieldList || s == TableList
}

// id addresses a node in its arena. The zero id is "no node".
type id int32

const noID id = 0

type node struct {
	class    Class
	sub      SubClass
	tok      token.Token
	parent   id
	children []id
	name     string
	value    core.Value
	ftype    core.FieldType
}

// Arena owns expression nodes. Handles created by one arena can only be
// combined with handles of the same arena.
type Arena struct {
	nodes  []node
	logger *slog.Logger
}

// Option configures an Arena.
type Option func(*Arena)

// WithLogger sets the logger that receives mutation and cycle diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(a *Arena) {
		if l != nil {
			a.logger = l
		}
	}
}

// NewArena returns an empty arena.
func NewArena(opts ...Option) *Arena {
	a := &Arena{
		nodes:  make([]node, 1, 64), // index 0 is noID
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Len returns the number of nodes ever created in the arena.
func (a *Arena) Len() int { return len(a.nodes) - 1 }

func (a *Arena) add(n node) id {
	n.parent = noID
	a.nodes = append(a.nodes, n)
	return id(len(a.nodes) - 1)
}

func (a *Arena) handle(i id) Expr {
	if i == noID {
		return Expr{}
	}
	return Expr{arena: a, id: i}
}

// describe returns "{class} {token-name}" for diagnostics.
func (a *Arena) describe(i id) string {
	if i == noID {
		return "<none>"
	}
	n := &a.nodes[i]
	return n.class.String() + " " + n.tok.Name()
}

// Expr is a handle to an expression node. The zero Expr is the null handle.
type Expr struct {
	arena *Arena
	id    id
}

func (e Expr) node() *node {
	if e.arena == nil {
		return nil
	}
	return &e.arena.nodes[e.id]
}

// Arena returns the arena the node lives in, nil for the null handle.
func (e Expr) Arena() *Arena { return e.arena }

// Class returns the node class. The null handle is ClassNull.
func (e Expr) Class() Class {
	if n := e.node(); n != nil {
		return n.class
	}
	return ClassNull
}

// Token returns the operator or literal-class token of the node.
func (e Expr) Token() token.Token {
	if n := e.node(); n != nil {
		return n.tok
	}
	return token.Invalid
}

// Parent returns the node that holds e, or the null handle.
func (e Expr) Parent() Expr {
	if n := e.node(); n != nil {
		return e.arena.handle(n.parent)
	}
	return Expr{}
}

// IsNull reports whether e is the null handle, a Null class node, or a
// binary expression with a missing operand.
func (e Expr) IsNull() bool {
	n := e.node()
	if n == nil || n.class == ClassNull {
		return true
	}
	if n.class == ClassBinary {
		return n.children[0] == noID || n.children[1] == noID
	}
	return false
}

// IsValid is the negation of IsNull.
func (e Expr) IsValid() bool { return !e.IsNull() }

// Children returns handles to the direct children of e, in order.
// Empty slots are returned as null handles. Function nodes return their
// argument list.
func (e Expr) Children() []Expr {
	n := e.node()
	if n == nil {
		return nil
	}
	result := make([]Expr, len(n.children))
	for i, c := range n.children {
		result[i] = e.arena.handle(c)
	}
	return result
}

// Is reports whether e and other address the same node.
func (e Expr) Is(other Expr) bool { return e == other }

// Null creates a node of the Null class.
func (a *Arena) Null() Expr {
	return a.handle(a.add(node{class: ClassNull}))
}

// Const creates a constant. t is the literal class (INTEGER_CONST, SQL_NULL ...).
func (a *Arena) Const(t token.Token, v core.Value) Const {
	return Const{a.handle(a.add(node{class: ClassConst, tok: t, value: v.Clone()}))}
}

// Unary creates a unary expression. A null arg leaves the slot empty.
func (a *Arena) Unary(t token.Token, arg Expr) Unary {
	u := Unary{a.handle(a.add(node{class: ClassUnary, tok: t, children: []id{noID}}))}
	if arg.arena != nil {
		_ = a.setSlot("Unary", u.id, 0, arg)
	}
	return u
}

// Binary creates a binary expression. When an operand is missing, belongs
// to another arena or both operands are the same node, the result is a
// node of the Null class.
func (a *Arena) Binary(left Expr, t token.Token, right Expr) Binary {
	if left.Class() == ClassNull || right.Class() == ClassNull ||
		left.arena != a || right.arena != a || left == right {
		a.logger.Warn("binary expression needs two distinct operands, creating a null expression",
			"op", "Binary", "token", t.Name())
		return Binary{a.handle(a.add(node{class: ClassNull}))}
	}
	b := Binary{a.handle(a.add(node{class: ClassBinary, tok: t, children: []id{noID, noID}}))}
	_ = a.setSlot("Binary", b.id, 0, left)
	_ = a.setSlot("Binary", b.id, 1, right)
	return b
}

// NArg creates an n-ary expression with the given children.
func (a *Arena) NArg(sub SubClass, t token.Token, children ...Expr) NArg {
	n := NArg{a.handle(a.add(node{class: ClassNArg, sub: sub, tok: t}))}
	for _, c := range children {
		_ = n.Append(c)
	}
	return n
}

// ArgumentList creates an empty ','-separated argument list.
func (a *Arena) ArgumentList(children ...Expr) NArg {
	return a.NArg(ArgumentList, token.Char(','), children...)
}

// Function creates a function call. A null args creates an empty argument list.
func (a *Arena) Function(name string, args NArg) Function {
	f := Function{a.handle(a.add(node{class: ClassFunction, tok: token.IDENTIFIER, name: name, children: []id{noID}}))}
	if args.arena == nil {
		args = a.ArgumentList()
	}
	_ = f.SetArguments(args)
	return f
}

// Variable creates a reference to a column ("col", "t.col") or a wildcard ("*", "t.*").
func (a *Arena) Variable(name string) Variable {
	t := token.IDENTIFIER
	if isAsterisk(name) {
		t = token.IDENTIFIER_DOT_ASTERISK
	}
	return Variable{a.handle(a.add(node{class: ClassVariable, tok: t, name: name}))}
}

// QueryParameter creates a late-bound parameter. Its type defaults to Text.
func (a *Arena) QueryParameter(name string) QueryParameter {
	return QueryParameter{a.handle(a.add(node{class: ClassQueryParameter, tok: token.QUERY_PARAMETER, name: name, ftype: core.Text}))}
}
