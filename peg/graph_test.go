package peg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func euclid() (*Graph, map[string]Node) {
	g := NewGraph("euclid")
	a := g.Param("a")
	b := g.Param("b")
	zero := g.Const(0)
	isBase := g.Arith(OpEq, b, zero)
	rem := g.Arith(OpMod, a, b)
	res := g.Gamma(isBase, a, rem)
	ret := g.Return(res)

	return g, map[string]Node{
		"a": a, "b": b, "zero": zero,
		"isBase": isBase, "rem": rem, "res": res, "ret": ret,
	}
}

func TestGraphConstruction(t *testing.T) {
	g, nodes := euclid()

	require.Equal(t, 7, g.NodeCount())
	require.Equal(t, nodes["ret"], g.Sink())

	// IDs follow allocation order.
	for id, n := range g.Nodes() {
		require.Equal(t, id, n.ID())
		require.Same(t, g, n.Graph())
	}

	require.Empty(t, nodes["a"].Dependencies())
	require.Equal(t,
		[]Node{nodes["b"], nodes["zero"]},
		nodes["isBase"].Dependencies())
	require.Equal(t,
		[]Node{nodes["isBase"], nodes["a"], nodes["rem"]},
		nodes["res"].Dependencies())
}

func TestKindAccessors(t *testing.T) {
	_, nodes := euclid()

	require.Equal(t, KindParam, nodes["a"].Kind())
	require.Equal(t, "b", nodes["b"].(*ParamNode).Name())
	require.Equal(t, int64(0), nodes["zero"].(*ConstNode).Value())

	isBase := nodes["isBase"].(*ArithNode)
	require.Equal(t, OpEq, isBase.Op())
	require.Equal(t, nodes["b"], isBase.Left())
	require.Equal(t, nodes["zero"], isBase.Right())

	res := nodes["res"].(*GammaNode)
	require.Equal(t, nodes["isBase"], res.Condition())
	require.Equal(t, nodes["a"], res.TrueValue())
	require.Equal(t, nodes["rem"], res.FalseValue())

	require.Equal(t, []Node{nodes["res"]}, nodes["ret"].(*ReturnNode).Values())
}

func TestSinkIsUnique(t *testing.T) {
	g, _ := euclid()
	require.Panics(t, func() { g.Return() })
}

func TestMissingSinkPanics(t *testing.T) {
	g := NewGraph("empty")
	require.Panics(t, func() { g.Sink() })
}

func TestForeignOperandPanics(t *testing.T) {
	g := NewGraph("g")
	other := NewGraph("other")
	foreign := other.Const(1)

	require.Panics(t, func() { g.Arith(OpAdd, g.Const(0), foreign) })
}

func TestUseIndexLifecycle(t *testing.T) {
	g, nodes := euclid()

	require.False(t, g.UsesActive())
	require.Panics(t, func() { g.Uses(nodes["a"]) })

	require.False(t, g.EnsureUses())
	require.True(t, g.UsesActive())
	require.True(t, g.EnsureUses())

	// Users come back in allocation order.
	require.Equal(t, []Node{nodes["rem"], nodes["res"]}, g.Uses(nodes["a"]))
	require.Equal(t, []Node{nodes["isBase"], nodes["rem"]}, g.Uses(nodes["b"]))
	require.Equal(t, []Node{nodes["ret"]}, g.Uses(nodes["res"]))
	require.Empty(t, g.Uses(nodes["ret"]))

	g.DeactivateUses()
	require.False(t, g.UsesActive())
	require.Panics(t, func() { g.Uses(nodes["a"]) })
}

func TestUseIndexStaysInSync(t *testing.T) {
	g := NewGraph("g")
	x := g.Param("x")
	g.EnsureUses()

	// Nodes added while the index is active must show up as users.
	double := g.Arith(OpAdd, x, x)
	require.Equal(t, []Node{double, double}, g.Uses(x))

	other := NewGraph("other")
	require.Panics(t, func() { g.Uses(other.Const(1)) })
}

func TestDependencyAndUseGraphsMirror(t *testing.T) {
	g, nodes := euclid()
	g.EnsureUses()
	defer g.DeactivateUses()

	deps := g.DependencyGraph()
	uses := g.UseGraph()

	for _, n := range g.Nodes() {
		for _, dep := range deps.Edges(n) {
			require.Contains(t, uses.Edges(dep), n)
		}
	}
	require.Equal(t, []Node{nodes["res"]}, deps.Edges(nodes["ret"]))
}
