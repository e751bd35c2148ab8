package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KDE/kdb-sub002/internal/testutil"
	"github.com/KDE/kdb-sub002/pkg/core"
	"github.com/KDE/kdb-sub002/pkg/token"
)

func newTestArena(t *testing.T) *Arena {
	t.Helper()
	return NewArena(WithLogger(testutil.NewTestLogger(t)))
}

func intConst(a *Arena, v int64) Const {
	return a.Const(token.INTEGER_CONST, core.IntValue(v))
}

func TestAppendMovesOwnership(t *testing.T) {
	a := newTestArena(t)
	c := intConst(a, 1)
	n := a.ArgumentList()
	n2 := a.ArgumentList()

	require.NoError(t, n.Append(c.Expr))
	assert.Equal(t, n.Expr, c.Parent())

	require.NoError(t, n2.Append(c.Expr))
	assert.Equal(t, 0, n.Len())
	assert.Equal(t, -1, n.IndexOf(c.Expr, 0))
	assert.Equal(t, 0, n2.IndexOf(c.Expr, 0))
	assert.Equal(t, n2.Expr, c.Parent())
}

func TestNoSelfContainment(t *testing.T) {
	logger, rec := testutil.NewRecorder(t)
	a := NewArena(WithLogger(logger))
	n := a.ArgumentList(intConst(a, 1).Expr)

	tests := []struct {
		name string
		op   func() error
	}{
		{"append", func() error { return n.Append(n.Expr) }},
		{"prepend", func() error { return n.Prepend(n.Expr) }},
		{"insert", func() error { return n.Insert(0, n.Expr) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec.Reset()
			err := tt.op()
			assert.ErrorIs(t, err, ErrSelfContainment)
			assert.Equal(t, 1, n.Len())
			assert.True(t, n.Parent().IsNull())
			assert.Len(t, rec.Warnings(), 1)
		})
	}
}

func TestUnarySelfContainment(t *testing.T) {
	a := newTestArena(t)
	c := intConst(a, 1)
	u := a.Unary(token.Char('-'), c.Expr)

	assert.ErrorIs(t, u.SetArg(u.Expr), ErrSelfContainment)
	assert.Equal(t, c.Expr, u.Arg())
	assert.Equal(t, "-1", u.String())
}

func TestAppendDeduplicates(t *testing.T) {
	a := newTestArena(t)
	n := a.ArgumentList()
	c := intConst(a, 7)

	require.NoError(t, n.Append(c.Expr))
	assert.ErrorIs(t, n.Append(c.Expr), ErrAlreadyMember)
	assert.ErrorIs(t, n.Prepend(c.Expr), ErrAlreadyMember)
	assert.Equal(t, 1, n.Len())
}

func TestInsertOutOfRange(t *testing.T) {
	a := newTestArena(t)
	n := a.ArgumentList(intConst(a, 1).Expr, intConst(a, 2).Expr)
	c := intConst(a, 3)

	for _, i := range []int{-1, 3, 100} {
		assert.ErrorIs(t, n.Insert(i, c.Expr), ErrIndexOutOfRange)
	}
	assert.Equal(t, "1, 2", n.String())
	assert.True(t, c.Parent().IsNull())

	require.NoError(t, n.Insert(2, c.Expr))
	require.NoError(t, n.Insert(1, intConst(a, 9).Expr))
	assert.Equal(t, "1, 9, 2, 3", n.String())
}

func TestRemoveAndTake(t *testing.T) {
	a := newTestArena(t)
	one, two, three := intConst(a, 1), intConst(a, 2), intConst(a, 3)
	n := a.ArgumentList(one.Expr, two.Expr, three.Expr)

	assert.True(t, n.Remove(two.Expr))
	assert.False(t, n.Remove(two.Expr))
	assert.True(t, two.Parent().IsNull())
	assert.Equal(t, "1, 3", n.String())

	assert.ErrorIs(t, n.RemoveAt(5), ErrIndexOutOfRange)
	assert.True(t, n.TakeAt(-1).IsNull())

	taken := n.TakeAt(0)
	assert.Equal(t, one.Expr, taken)
	assert.True(t, taken.Parent().IsNull())

	require.NoError(t, n.RemoveAt(0))
	assert.True(t, n.IsEmpty())
	assert.True(t, three.Parent().IsNull())
}

func TestIndexOf(t *testing.T) {
	a := newTestArena(t)
	one, two := intConst(a, 1), intConst(a, 2)
	n := a.ArgumentList(one.Expr, two.Expr)
	require.NoError(t, n.Append(Expr{}))

	assert.Equal(t, 1, n.IndexOf(two.Expr, 0))
	assert.Equal(t, -1, n.IndexOf(one.Expr, 1))
	assert.Equal(t, 0, n.LastIndexOf(one.Expr, -1))
	assert.Equal(t, -1, n.LastIndexOf(two.Expr, 0))
	assert.Equal(t, 1, n.LastIndexOf(two.Expr, 10))
	assert.Equal(t, 2, n.IndexOf(Expr{}, 0))
	assert.Equal(t, -1, n.IndexOf(NewArena().Null(), 0))

	assert.True(t, n.Remove(Expr{}))
	assert.Equal(t, 2, n.Len())
}

func TestBinaryAutoNull(t *testing.T) {
	a := newTestArena(t)
	tests := []struct {
		name        string
		left, right Expr
	}{
		{"missing left", Expr{}, intConst(a, 1).Expr},
		{"missing right", intConst(a, 1).Expr, Expr{}},
		{"null class operand", a.Null(), intConst(a, 2).Expr},
		{"foreign arena", NewArena().Const(token.SQL_NULL, core.NullValue()).Expr, intConst(a, 3).Expr},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := a.Binary(tt.left, token.Char('+'), tt.right)
			assert.True(t, b.IsNull())
			assert.False(t, b.IsValid())
			assert.Equal(t, ClassNull, b.Class())
			assert.Equal(t, UnknownMarker, b.String())
		})
	}

	c := intConst(a, 4)
	assert.True(t, a.Binary(c.Expr, token.Char('+'), c.Expr).IsNull())
}

func TestBinarySlotExclusivity(t *testing.T) {
	a := newTestArena(t)
	left, right := intConst(a, 1), intConst(a, 2)
	b := a.Binary(left.Expr, token.Char('+'), right.Expr)
	require.Equal(t, "1 + 2", b.String())

	require.NoError(t, b.SetLeft(b.Right()))
	assert.Equal(t, "2 + <UNKNOWN!>", b.String())
	assert.True(t, b.IsNull())
	assert.True(t, left.Parent().IsNull())
	assert.Equal(t, b.Expr, right.Parent())

	require.NoError(t, b.SetRight(left.Expr))
	assert.Equal(t, "2 + 1", b.String())
	assert.True(t, b.IsValid())
}

func TestBinarySetNullCollapses(t *testing.T) {
	a := newTestArena(t)
	left, right := intConst(a, 1), intConst(a, 2)
	b := a.Binary(left.Expr, token.Char('*'), right.Expr)

	require.NoError(t, b.SetRight(Expr{}))
	assert.Equal(t, ClassNull, b.Class())
	assert.True(t, left.Parent().IsNull())
	assert.True(t, right.Parent().IsNull())
	assert.ErrorIs(t, b.SetLeft(left.Expr), ErrNullExpression)

	_, ok := b.AsBinary()
	assert.False(t, ok)
}

func TestSetArgMovesBetweenParents(t *testing.T) {
	a := newTestArena(t)
	c := intConst(a, 5)
	n := a.ArgumentList(c.Expr)
	u := a.Unary(token.NOT, Expr{})

	require.NoError(t, u.SetArg(c.Expr))
	assert.True(t, n.IsEmpty())
	assert.Equal(t, u.Expr, c.Parent())

	require.NoError(t, u.SetArg(Expr{}))
	assert.True(t, u.Arg().IsNull())
	assert.True(t, c.Parent().IsNull())
}

func TestForeignArenaRejected(t *testing.T) {
	a, b := newTestArena(t), newTestArena(t)
	n := a.ArgumentList()
	assert.ErrorIs(t, n.Append(intConst(b, 1).Expr), ErrForeignArena)
	assert.ErrorIs(t, a.Unary(token.Char('-'), Expr{}).SetArg(intConst(b, 1).Expr), ErrForeignArena)
	assert.True(t, n.IsEmpty())
}

func TestFunctionArguments(t *testing.T) {
	a := newTestArena(t)
	f := a.Function("upper", NArg{})
	assert.Equal(t, "upper()", f.String())

	args := a.ArgumentList(a.Const(token.CHARACTER_STRING_LITERAL, core.TextValue("x")).Expr)
	require.NoError(t, f.SetArguments(args))
	assert.Equal(t, "upper('x')", f.String())
	assert.Equal(t, f.Expr, args.Parent())

	require.NoError(t, f.Arguments().Append(intConst(a, 1).Expr))
	assert.Equal(t, 2, f.Arguments().Len())

	assert.ErrorIs(t, f.SetArguments(NArg{intConst(a, 2).Expr}), ErrNotArgumentList)

	require.NoError(t, f.SetArguments(NArg{}))
	assert.True(t, args.Parent().IsNull())
	assert.Equal(t, 0, f.Arguments().Len())
	assert.ErrorIs(t, f.Arguments().Append(intConst(a, 3).Expr), ErrNullExpression)
}

func TestDownCasts(t *testing.T) {
	a := newTestArena(t)
	c := intConst(a, 1).Expr

	_, ok := c.AsUnary()
	assert.False(t, ok)
	_, ok = c.AsNArg()
	assert.False(t, ok)
	cv, ok := c.AsConst()
	require.True(t, ok)
	assert.Equal(t, c, cv.Expr)

	var zero Expr
	_, ok = zero.AsConst()
	assert.False(t, ok)
	assert.True(t, zero.IsNull())
	assert.Nil(t, zero.Children())
	assert.Equal(t, token.Invalid, zero.Token())
}

func TestVariableNames(t *testing.T) {
	a := newTestArena(t)
	v := a.Variable("cars.owner")
	assert.Equal(t, "cars", v.Table())
	assert.Equal(t, "owner", v.Column())
	assert.False(t, v.IsAsterisk())
	assert.Equal(t, token.IDENTIFIER, v.Token())

	star := a.Variable("cars.*")
	assert.True(t, star.IsAsterisk())
	assert.Equal(t, token.IDENTIFIER_DOT_ASTERISK, star.Token())
	assert.Equal(t, "", a.Variable("*").Table())
}
