package treefile

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/KDE/kdb-sub002/pkg/core"
	"github.com/KDE/kdb-sub002/pkg/expr"
	"github.com/KDE/kdb-sub002/pkg/token"
)

// ErrMalformedNode is returned for nodes that do not describe exactly one expression.
var ErrMalformedNode = errors.New("malformed node")

var subClasses = map[string]expr.SubClass{
	"ArgumentList": expr.ArgumentList,
	"FieldList":    expr.FieldList,
	"TableList":    expr.TableList,
	"Arithmetic":   expr.Arithmetic,
	"Logical":      expr.Logical,
	"Relational":   expr.Relational,
	"Special":      expr.Special,
}

// Build creates the tree described by n on a.
func Build(a *expr.Arena, n *Node) (expr.Expr, error) {
	return build(a, n, "expr")
}

func build(a *expr.Arena, n *Node, path string) (expr.Expr, error) {
	set := 0
	for _, ok := range []bool{n.Const != nil, n.Unary != nil, n.Binary != nil, n.NArg != nil,
		n.Function != nil, n.Var != nil, n.Param != nil, n.Empty, n.NullNode} {
		if ok {
			set++
		}
	}
	if set != 1 {
		return expr.Expr{}, fmt.Errorf("%s: %w: expected exactly one node kind, got %d", path, ErrMalformedNode, set)
	}

	switch {
	case n.Empty:
		return expr.Expr{}, nil
	case n.NullNode:
		return a.Null(), nil
	case n.Const != nil:
		c, err := buildConst(a, n.Const)
		if err != nil {
			return expr.Expr{}, fmt.Errorf("%s.const: %w", path, err)
		}
		return c.Expr, nil
	case n.Unary != nil:
		op, err := operator(n.Unary.Op)
		if err != nil {
			return expr.Expr{}, fmt.Errorf("%s.unary: %w", path, err)
		}
		arg, err := build(a, &n.Unary.Arg, path+".unary.arg")
		if err != nil {
			return expr.Expr{}, err
		}
		return a.Unary(op, arg).Expr, nil
	case n.Binary != nil:
		op, err := operator(n.Binary.Op)
		if err != nil {
			return expr.Expr{}, fmt.Errorf("%s.binary: %w", path, err)
		}
		left, err := build(a, &n.Binary.Left, path+".binary.left")
		if err != nil {
			return expr.Expr{}, err
		}
		right, err := build(a, &n.Binary.Right, path+".binary.right")
		if err != nil {
			return expr.Expr{}, err
		}
		return a.Binary(left, op, right).Expr, nil
	case n.NArg != nil:
		list, err := buildNArg(a, n.NArg, path+".nary")
		if err != nil {
			return expr.Expr{}, err
		}
		return list.Expr, nil
	case n.Function != nil:
		args, err := buildNArg(a, &NArg{Args: n.Function.Args}, path+".function")
		if err != nil {
			return expr.Expr{}, err
		}
		return a.Function(n.Function.Name, args).Expr, nil
	case n.Var != nil:
		v := a.Variable(n.Var.Name)
		if n.Var.Type != "" {
			ft, err := fieldType(n.Var.Type)
			if err != nil {
				return expr.Expr{}, fmt.Errorf("%s.var: %w", path, err)
			}
			v.SetFieldType(ft)
		}
		return v.Expr, nil
	default:
		p := a.QueryParameter(n.Param.Name)
		if n.Param.Type != "" {
			ft, err := fieldType(n.Param.Type)
			if err != nil {
				return expr.Expr{}, fmt.Errorf("%s.param: %w", path, err)
			}
			p.SetFieldType(ft)
		}
		return p.Expr, nil
	}
}

func buildNArg(a *expr.Arena, n *NArg, path string) (expr.NArg, error) {
	sub := expr.ArgumentList
	if n.Class != "" {
		s, ok := subClasses[n.Class]
		if !ok {
			return expr.NArg{}, fmt.Errorf("%s: unknown class %q", path, n.Class)
		}
		sub = s
	}
	op := token.Char(',')
	if n.Op != "" {
		t, err := operator(n.Op)
		if err != nil {
			return expr.NArg{}, fmt.Errorf("%s: %w", path, err)
		}
		op = t
	}
	list := a.NArg(sub, op)
	for i := range n.Args {
		child, err := build(a, &n.Args[i], fmt.Sprintf("%s.args[%d]", path, i))
		if err != nil {
			return expr.NArg{}, err
		}
		if err := list.Append(child); err != nil {
			return expr.NArg{}, fmt.Errorf("%s.args[%d]: %w", path, i, err)
		}
	}
	return list, nil
}

func operator(s string) (token.Token, error) {
	t := token.Lookup(s)
	if !t.IsValid() {
		return token.Invalid, fmt.Errorf("unknown operator %q", s)
	}
	return t, nil
}

func fieldType(s string) (core.FieldType, error) {
	ft := core.ParseFieldType(s)
	if ft == core.InvalidType {
		return ft, fmt.Errorf("unknown field type %q", s)
	}
	return ft, nil
}

func buildConst(a *expr.Arena, c *Const) (expr.Const, error) {
	tok, v, err := literal(c.Type, c.Value)
	if err != nil {
		return expr.Const{}, err
	}
	if c.Token != "" {
		if tok, err = operator(c.Token); err != nil {
			return expr.Const{}, err
		}
	}
	return a.Const(tok, v), nil
}

// literal parses value as a literal of the given kind.
func literal(kind, value string) (token.Token, core.Value, error) {
	switch strings.ToLower(kind) {
	case "int", "integer":
		if i, err := strconv.ParseInt(value, 0, 64); err == nil {
			return token.INTEGER_CONST, core.IntValue(i), nil
		}
		u, err := strconv.ParseUint(value, 0, 64)
		if err != nil {
			return token.Invalid, core.Value{}, fmt.Errorf("invalid integer %q", value)
		}
		return token.INTEGER_CONST, core.UintValue(u), nil
	case "real", "float", "double":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return token.Invalid, core.Value{}, fmt.Errorf("invalid real %q", value)
		}
		return token.REAL_CONST, core.RealValue(f), nil
	case "text", "string":
		return token.CHARACTER_STRING_LITERAL, core.TextValue(value), nil
	case "bool", "boolean":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return token.Invalid, core.Value{}, fmt.Errorf("invalid boolean %q", value)
		}
		if b {
			return token.SQL_TRUE, core.BoolValue(true), nil
		}
		return token.SQL_FALSE, core.BoolValue(false), nil
	case "null":
		return token.SQL_NULL, core.NullValue(), nil
	case "hex", "blob":
		b, err := hex.DecodeString(value)
		if err != nil {
			return token.Invalid, core.Value{}, fmt.Errorf("invalid hex %q", value)
		}
		// Byte strings have no literal token of their own.
		return token.Invalid, core.BytesValue(b), nil
	case "date":
		t, err := time.Parse(core.DateLayout, value)
		if err != nil {
			return token.Invalid, core.Value{}, fmt.Errorf("invalid date %q", value)
		}
		return token.DATE_CONST, core.DateValue(t.Date()), nil
	case "time":
		t, err := time.Parse(core.TimeLayout, value)
		if err != nil {
			return token.Invalid, core.Value{}, fmt.Errorf("invalid time %q", value)
		}
		return token.TIME_CONST, core.TimeValue(t.Hour(), t.Minute(), t.Second(), t.Nanosecond()), nil
	case "datetime", "timestamp":
		for _, layout := range []string{core.DateTimeLayout, time.RFC3339Nano} {
			if t, err := time.Parse(layout, value); err == nil {
				return token.DATETIME_CONST, core.DateTimeValue(t), nil
			}
		}
		return token.Invalid, core.Value{}, fmt.Errorf("invalid datetime %q", value)
	default:
		return token.Invalid, core.Value{}, fmt.Errorf("unknown literal type %q", kind)
	}
}

// Check compares e with the expectations and returns every mismatch.
func (x *Expect) Check(e expr.Expr) error {
	if x == nil {
		return nil
	}
	var errs []error
	if x.Type != "" {
		if got := e.Type().String(); got != x.Type {
			errs = append(errs, fmt.Errorf("type: want %s, got %s", x.Type, got))
		}
	}
	if x.SQL != "" {
		if got := e.String(); got != x.SQL {
			errs = append(errs, fmt.Errorf("sql: want %q, got %q", x.SQL, got))
		}
	}
	verr := e.Validate()
	if x.Valid != nil && *x.Valid != (verr == nil) {
		errs = append(errs, fmt.Errorf("valid: want %t, got %t (%v)", *x.Valid, verr == nil, verr))
	}
	if x.Error != "" && (verr == nil || !strings.Contains(verr.Error(), x.Error)) {
		errs = append(errs, fmt.Errorf("error: want %q, got %v", x.Error, verr))
	}
	return errors.Join(errs...)
}
