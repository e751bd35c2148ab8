package expr

import (
	"fmt"
	"strings"

	"github.com/KDE/kdb-sub002/pkg/core"
	"github.com/KDE/kdb-sub002/pkg/token"
)

// ValidationError describes why an expression is not valid. Message is a
// short summary, Description names the offending part.
type ValidationError struct {
	Message     string
	Description string
}

func (e *ValidationError) Error() string {
	if e.Description == "" {
		return e.Message
	}
	return e.Message + ": " + e.Description
}

func invalid(msg, format string, args ...any) *ValidationError {
	return &ValidationError{Message: msg, Description: fmt.Sprintf(format, args...)}
}

// Validate checks e and all of its descendants. It returns nil or a
// *ValidationError for the first problem found. Query parameters that are
// operands of a binary expression take the type of the other operand.
func (e Expr) Validate() error {
	if e.arena == nil {
		return &ValidationError{Message: "Null expression"}
	}
	v := &validator{a: e.arena, onPath: make(map[id]struct{})}
	if err := v.validate(e.id); err != nil {
		return err
	}
	return nil
}

type validator struct {
	a      *Arena
	path   []string
	onPath map[id]struct{}
}

func (v *validator) validate(i id) *ValidationError {
	a := v.a
	if i == noID {
		return &ValidationError{Message: "Missing expression", Description: strings.Join(v.path, " -> ")}
	}
	if _, seen := v.onPath[i]; seen {
		path := strings.Join(append(v.path, a.describe(i)), " -> ")
		a.logger.Warn("cycle detected in expression", "op", "Validate", "path", path)
		return &ValidationError{Message: "Cycle detected", Description: path}
	}
	v.onPath[i] = struct{}{}
	v.path = append(v.path, a.describe(i))
	defer func() {
		delete(v.onPath, i)
		v.path = v.path[:len(v.path)-1]
	}()

	n := &a.nodes[i]
	switch n.class {
	case ClassNull:
		return invalid("Null expression", "%s", strings.Join(v.path, " -> "))
	case ClassUnary:
		if n.children[0] == noID {
			return invalid("Missing argument", "%s has no argument", n.tok)
		}
		if err := v.validate(n.children[0]); err != nil {
			return err
		}
	case ClassBinary:
		l, r := n.children[0], n.children[1]
		if l == noID || r == noID {
			return invalid("Missing operand", "%s needs two operands", n.tok)
		}
		if err := v.validate(l); err != nil {
			return err
		}
		if err := v.validate(r); err != nil {
			return err
		}
		v.bindParameter(l, r)
		v.bindParameter(r, l)
	case ClassNArg:
		if err := v.validateNArg(i); err != nil {
			return err
		}
	case ClassFunction:
		if err := v.validateFunction(i); err != nil {
			return err
		}
	case ClassVariable:
		if !isAsterisk(n.name) && n.ftype == core.InvalidType {
			return invalid("Unknown column", "%q is not bound to a field", n.name)
		}
	}

	if t := a.typeOf(i, make(map[id]struct{})); t == core.InvalidType {
		return invalid("Incorrect types", "%q has no valid type", a.handle(i).String())
	}
	return nil
}

// bindParameter gives a query parameter the type of its sibling operand.
func (v *validator) bindParameter(param, other id) {
	a := v.a
	if a.nodes[param].class != ClassQueryParameter {
		return
	}
	t := a.typeOf(other, make(map[id]struct{}))
	if t == core.InvalidType || t == core.Null || t == core.Tuple || t == core.Asterisk {
		return
	}
	a.nodes[param].ftype = t
}

func (v *validator) validateNArg(i id) *ValidationError {
	n := &v.a.nodes[i]
	for pos, c := range n.children {
		if c == noID {
			return invalid("Missing argument", "position %d of %s is empty", pos, n.sub)
		}
	}
	switch n.sub {
	case Relational:
		if (n.tok == token.BETWEEN_AND || n.tok == token.NOT_BETWEEN_AND) && len(n.children) != 3 {
			return invalid("Incorrect number of arguments", "%s needs 3 arguments, got %d", n.tok, len(n.children))
		}
	case Arithmetic, Logical:
		if len(n.children) < 2 {
			return invalid("Incorrect number of arguments", "%s needs at least 2 operands, got %d", n.tok, len(n.children))
		}
	}
	for _, c := range n.children {
		if err := v.validate(c); err != nil {
			return err
		}
	}
	return nil
}

func (v *validator) validateFunction(i id) *ValidationError {
	a := v.a
	n := &a.nodes[i]
	b, ok := LookupFunction(n.name)
	if !ok {
		return invalid("Unknown function", "%s()", n.name)
	}
	list := n.children[0]
	var args []id
	if list != noID {
		if err := v.validate(list); err != nil {
			return err
		}
		args = a.nodes[list].children
	}
	if !b.AcceptsCount(len(args)) {
		return invalid("Incorrect number of arguments", "%s() %s, got %d", b.Name, arity(b), len(args))
	}
	for pos, c := range args {
		t := a.typeOf(c, make(map[id]struct{}))
		if kind := b.ArgKind(pos); !kind.Accepts(t) {
			return invalid("Incorrect type of argument",
				"argument #%d of %s() must be %s, got %s", pos+1, b.Name, kind, t)
		}
	}
	return nil
}

func arity(b *Builtin) string {
	switch {
	case b.MaxArgs < 0:
		return fmt.Sprintf("expects at least %d arguments", b.MinArgs)
	case b.MinArgs == b.MaxArgs:
		return fmt.Sprintf("expects %d arguments", b.MinArgs)
	default:
		return fmt.Sprintf("expects %d to %d arguments", b.MinArgs, b.MaxArgs)
	}
}
