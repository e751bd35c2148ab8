package expr

import (
	"strconv"
	"strings"

	"github.com/KDE/kdb-sub002/pkg/core"
	"github.com/KDE/kdb-sub002/pkg/dialect"
	"github.com/KDE/kdb-sub002/pkg/token"
)

// Placeholders written for expressions that cannot be rendered.
const (
	UnknownMarker = "<UNKNOWN!>"
	CycleMarker   = "<CYCLE!>"
)

// printer renders one expression tree. Nodes seen on the current path are
// printed as CycleMarker.
type printer struct {
	a       *Arena
	dialect *dialect.Dialect
	quote   bool
	debug   bool
	out     strings.Builder
	onPath  map[id]struct{}
	params  int
}

func newPrinter(a *Arena, d *dialect.Dialect, debug bool) *printer {
	p := &printer{a: a, dialect: d, quote: d != nil, debug: debug, onPath: make(map[id]struct{})}
	if p.dialect == nil {
		p.dialect = dialect.Native
	}
	return p
}

func (p *printer) write(s string) {
	p.out.WriteString(s)
}

// String renders e as SQL text with native literals and identifiers
// written as they are.
func (e Expr) String() string { return e.ToString(nil) }

// ToString renders e as SQL text for d. Identifiers are quoted when d
// requires it. A nil d behaves like String.
func (e Expr) ToString(d *dialect.Dialect) string {
	if e.arena == nil {
		return UnknownMarker
	}
	p := newPrinter(e.arena, d, false)
	p.format(e.id)
	return p.out.String()
}

// DebugString renders e with the class and type of every node.
func (e Expr) DebugString() string {
	if e.arena == nil {
		return UnknownMarker
	}
	p := newPrinter(e.arena, nil, true)
	p.format(e.id)
	return p.out.String()
}

func (p *printer) format(i id) {
	if i == noID {
		p.write(UnknownMarker)
		return
	}
	if _, seen := p.onPath[i]; seen {
		p.a.logger.Warn("cycle detected in expression", "op", "String", "node", p.a.describe(i))
		p.write(CycleMarker)
		return
	}
	p.onPath[i] = struct{}{}
	defer delete(p.onPath, i)

	n := &p.a.nodes[i]
	if p.debug {
		p.formatDebug(i, n)
		return
	}
	switch n.class {
	case ClassConst:
		p.formatConst(n)
	case ClassUnary:
		p.formatUnary(n)
	case ClassBinary:
		p.format(n.children[0])
		p.write(" " + n.tok.String() + " ")
		p.format(n.children[1])
	case ClassNArg:
		p.formatNArg(n)
	case ClassFunction:
		p.write(n.name)
		p.write("(")
		if list := n.children[0]; list != noID {
			p.formatList(p.a.nodes[list].children, ", ")
		}
		p.write(")")
	case ClassVariable:
		p.formatVariable(n.name)
	case ClassQueryParameter:
		p.params++
		p.write(p.dialect.FormatPlaceholder(n.name, p.params))
	default:
		p.write(UnknownMarker)
	}
}

func (p *printer) formatList(kids []id, sep string) {
	for i, c := range kids {
		if i > 0 {
			p.write(sep)
		}
		p.format(c)
	}
}

func (p *printer) formatConst(n *node) {
	p.write(p.literal(n.tok, n.value))
}

func (p *printer) literal(t token.Token, v core.Value) string {
	d := p.dialect
	switch v.Kind() {
	case core.KindInt, core.KindUint:
		return v.String()
	case core.KindReal:
		f, _ := v.Real()
		return core.FormatReal(f)
	case core.KindBool:
		b, _ := v.Bool()
		return d.FormatBool(b)
	case core.KindText:
		s, _ := v.Text()
		return d.QuoteString(s)
	case core.KindBytes:
		b, _ := v.Bytes()
		return d.FormatBytes(b)
	case core.KindDate:
		tm, _ := v.Time()
		return d.FormatDate(tm)
	case core.KindTime:
		tm, _ := v.Time()
		return d.FormatTime(tm)
	case core.KindDateTime:
		tm, _ := v.Time()
		return d.FormatDateTime(tm)
	}
	switch t {
	case token.SQL_TRUE:
		return d.FormatBool(true)
	case token.SQL_FALSE:
		return d.FormatBool(false)
	}
	return "NULL"
}

func (p *printer) formatUnary(n *node) {
	arg := n.children[0]
	switch {
	case n.tok == token.Char('('):
		p.write("(")
		p.format(arg)
		p.write(")")
	case n.tok == token.SQL_IS_NULL || n.tok == token.SQL_IS_NOT_NULL:
		p.format(arg)
		p.write(" " + n.tok.String())
	case n.tok.IsKeyword():
		p.write(n.tok.String() + " ")
		p.format(arg)
	default:
		p.write(n.tok.String())
		p.format(arg)
	}
}

func (p *printer) formatNArg(n *node) {
	kids := n.children
	switch {
	case (n.tok == token.BETWEEN_AND || n.tok == token.NOT_BETWEEN_AND) && len(kids) == 3:
		p.format(kids[0])
		p.write(" " + n.tok.String() + " ")
		p.format(kids[1])
		p.write(" AND ")
		p.format(kids[2])
	case n.sub.isList() || n.tok == token.Char(','):
		p.formatList(kids, ", ")
	default:
		p.formatList(kids, " "+n.tok.String()+" ")
	}
}

func (p *printer) formatVariable(name string) {
	if !p.quote {
		p.write(name)
		return
	}
	parts := strings.Split(name, ".")
	for i, part := range parts {
		if i > 0 {
			p.write(".")
		}
		if part == "*" {
			p.write(part)
			continue
		}
		p.write(p.dialect.QuoteIdentifier(part))
	}
}

// formatDebug writes the annotated form of n, e.g.
// BinaryExp(class=Arithmetic,ConstExp(1,type=Byte),+,ConstExp(2,type=Byte),type=Integer).
func (p *printer) formatDebug(i id, n *node) {
	switch n.class {
	case ClassConst:
		p.write("ConstExp(" + p.literal(n.tok, n.value))
	case ClassUnary:
		p.write("UnaryExp(" + n.tok.String() + ",")
		p.format(n.children[0])
	case ClassBinary:
		p.write("BinaryExp(class=" + operatorClass(n.tok).String() + ",")
		p.format(n.children[0])
		p.write("," + n.tok.String() + ",")
		p.format(n.children[1])
	case ClassNArg:
		p.write("NArgExp(class=" + n.sub.String() + ",token=" + n.tok.Name())
		for _, c := range n.children {
			p.write(",")
			p.format(c)
		}
	case ClassFunction:
		p.write("FunctionExp(" + n.name + ",")
		p.format(n.children[0])
	case ClassVariable:
		p.write("VariableExp(" + n.name)
	case ClassQueryParameter:
		p.write("QueryParameterExp(" + strconv.Quote(n.name))
	default:
		p.write(UnknownMarker)
		return
	}
	p.write(",type=" + p.a.typeOf(i, make(map[id]struct{})).String() + ")")
}
