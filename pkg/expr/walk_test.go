package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KDE/kdb-sub002/internal/testutil"
	"github.com/KDE/kdb-sub002/pkg/core"
	"github.com/KDE/kdb-sub002/pkg/token"
)

func sampleTrees(a *Arena) []Expr {
	price := a.Variable("price")
	price.SetFieldType(core.Double)
	return []Expr{
		intConst(a, 42).Expr,
		a.Binary(price.Expr, token.Char('*'), a.Const(token.REAL_CONST, core.RealValue(1.2)).Expr).Expr,
		a.Unary(token.NOT, a.Binary(a.Variable("a").Expr, token.LIKE, a.Const(token.CHARACTER_STRING_LITERAL, core.TextValue("x%")).Expr).Expr).Expr,
		a.Function("COALESCE", a.ArgumentList(a.QueryParameter("p").Expr, a.Const(token.SQL_NULL, core.NullValue()).Expr)).Expr,
		a.NArg(Relational, token.BETWEEN_AND, intConst(a, 1).Expr, intConst(a, 0).Expr, intConst(a, 2).Expr).Expr,
		a.ArgumentList(intConst(a, 1).Expr, Expr{}, a.Variable("t.*").Expr).Expr,
		a.Null(),
	}
}

func TestCloneRoundTrip(t *testing.T) {
	a := newTestArena(t)
	for _, e := range sampleTrees(a) {
		t.Run(e.String(), func(t *testing.T) {
			c := e.Clone()
			assert.False(t, c.Is(e))
			assert.Same(t, e.Arena(), c.Arena())
			assert.Equal(t, e.String(), c.String())
			assert.Equal(t, e.DebugString(), c.DebugString())
			assert.Equal(t, e.Token(), c.Token())
			assert.Equal(t, e.Type(), c.Type())
			assert.True(t, c.Parent().IsNull())

			var original, copied []Expr
			Walk(e, func(x Expr) bool { original = append(original, x); return true })
			Walk(c, func(x Expr) bool { copied = append(copied, x); return true })
			require.Len(t, copied, len(original))
			for i := range original {
				assert.NotEqual(t, original[i], copied[i])
			}
		})
	}
}

func TestCloneIsIndependent(t *testing.T) {
	a := newTestArena(t)
	one := intConst(a, 1)
	n := a.ArgumentList(one.Expr, intConst(a, 2).Expr)
	c, ok := n.Clone().AsNArg()
	require.True(t, ok)

	require.NoError(t, c.Append(intConst(a, 3).Expr))
	first, _ := c.At(0).AsConst()
	first.SetValue(core.IntValue(9))

	assert.Equal(t, "1, 2", n.String())
	assert.Equal(t, "9, 2, 3", c.String())
	assert.Equal(t, n.Expr, one.Parent())
	assert.Equal(t, c.Expr, c.At(1).Parent())
}

func TestCloneCycle(t *testing.T) {
	logger, rec := testutil.NewRecorder(t)
	a := NewArena(WithLogger(logger))
	u2 := a.Unary(token.Char('+'), intConst(a, 1).Expr)
	u := a.Unary(token.Char('-'), intConst(a, 2).Expr)
	require.NoError(t, u2.SetArg(u.Expr))
	require.NoError(t, u.SetArg(u2.Expr))

	rec.Reset()
	c := u.Clone()
	assert.NotEmpty(t, rec.Warnings())
	assert.Equal(t, "-+<CYCLE!>", c.String())
	assert.Equal(t, u.String(), c.String())
	assert.Equal(t, u.DebugString(), c.DebugString())

	var original, copied []Expr
	Walk(u.Expr, func(x Expr) bool { original = append(original, x); return true })
	Walk(c, func(x Expr) bool { copied = append(copied, x); return true })
	require.Len(t, copied, 2)
	require.Len(t, original, 2)
	for i := range original {
		assert.False(t, copied[i].Is(original[i]))
		assert.Equal(t, original[i].Token(), copied[i].Token())
	}

	// The copied cycle is closed over the new nodes only.
	c2 := c.Children()[0]
	assert.True(t, c2.Children()[0].Is(c))
	assert.True(t, c.Parent().Is(c2))

	// Breaking the copy leaves the original untouched.
	cu, ok := c.AsUnary()
	require.True(t, ok)
	require.NoError(t, cu.SetArg(intConst(a, 3).Expr))
	assert.Equal(t, "-3", c.String())
	assert.Equal(t, "-+<CYCLE!>", u.String())
}

func TestWalkSkipsChildren(t *testing.T) {
	a := newTestArena(t)
	inner := a.Binary(intConst(a, 1).Expr, token.Char('+'), intConst(a, 2).Expr)
	outer := a.Binary(inner.Expr, token.Char('*'), intConst(a, 3).Expr)

	var seen []string
	Walk(outer.Expr, func(e Expr) bool {
		seen = append(seen, e.Class().String())
		return e != inner.Expr
	})
	assert.Equal(t, []string{"Binary", "Binary", "Const"}, seen)
}

func TestWalkTerminatesOnCycle(t *testing.T) {
	a := newTestArena(t)
	n := a.ArgumentList()
	u := a.Unary(token.Char('-'), n.Expr)
	require.NoError(t, n.Append(u.Expr))

	count := 0
	Walk(n.Expr, func(Expr) bool { count++; return true })
	assert.Equal(t, 2, count)
}
