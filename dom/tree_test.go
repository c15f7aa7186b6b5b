package dom

import (
	"bytes"
	"testing"

	"github.com/cs-au-dk/pegdom/peg"
	"github.com/cs-au-dk/pegdom/testutil"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
)

func TestDiamond(t *testing.T) {
	d := testutil.Diamond()
	tree := Build(d.G)

	require.Equal(t, d.R, tree.Root())
	require.Same(t, d.G, tree.Graph())
	require.Nil(t, tree.Parent(d.R))

	// a and b hang directly below the sink.
	require.Equal(t, d.R, tree.Parent(d.A))
	require.Equal(t, d.R, tree.Parent(d.B))

	// c is used by both a and b, so neither of them dominates it; its
	// only remaining dominator is the sink itself.
	require.Equal(t, d.R, tree.Parent(d.C))
	require.True(t, tree.Dominates(d.R, d.C))
	require.False(t, tree.Dominates(d.A, d.C))
	require.False(t, tree.Dominates(d.B, d.C))
	require.False(t, tree.Dominates(d.C, d.A))

	require.Equal(t, 3, tree.ChildrenCount(d.R))
	require.ElementsMatch(t, []peg.Node{d.A, d.B, d.C}, tree.Children(d.R))
	require.Equal(t, 0, tree.ChildrenCount(d.C))
}

func TestSingleNodeGraph(t *testing.T) {
	g := testutil.Single()
	tree := Build(g)

	root := tree.Root()
	require.Equal(t, g.Sink(), root)
	require.Nil(t, tree.Parent(root))
	require.Equal(t, 0, tree.ChildrenCount(root))
	require.True(t, tree.Dominates(root, root))
	require.Empty(t, tree.Regions())
}

func TestDominatesIsReflexive(t *testing.T) {
	g := testutil.Euclid()
	tree := Build(g)

	for _, n := range g.Nodes() {
		require.True(t, tree.Dominates(n, n), "%v should dominate itself", n)
	}
}

func TestRegions(t *testing.T) {
	d := testutil.Diamond()
	tree := Build(d.G)

	regions := tree.Regions()
	require.Len(t, regions, 3)

	// Every non-root node lands in exactly one region, and all nodes of
	// a region descend from the same root child.
	seen := map[peg.Node]bool{}
	for i, region := range regions {
		require.NotEmpty(t, region)
		child := tree.Children(d.R)[i]
		for _, n := range region {
			require.False(t, seen[n])
			seen[n] = true
			require.True(t, tree.Dominates(child, n))
		}
	}
	require.Len(t, seen, d.G.NodeCount()-1)

	// c forms a region of its own.
	require.Equal(t, []peg.Node{d.C}, regions[2])
}

func TestBuildRestoresUseIndex(t *testing.T) {
	g := testutil.Euclid()

	require.False(t, g.UsesActive())
	Build(g)
	require.False(t, g.UsesActive())

	g.EnsureUses()
	Build(g)
	require.True(t, g.UsesActive())
	g.DeactivateUses()
}

func TestReleasedTreePanics(t *testing.T) {
	g := testutil.Euclid()
	tree := Build(g)
	sink := g.Sink()

	tree.Release()

	require.Equal(t, "domtree (released)", tree.String())
	require.Panics(t, func() { tree.Dominates(sink, sink) })
	require.Panics(t, func() { tree.Parent(sink) })
	require.Panics(t, func() { tree.Root() })
	require.Panics(t, func() { tree.Regions() })
	require.Panics(t, func() { tree.Dump(&bytes.Buffer{}) })
}

func TestUnanalysedNodePanics(t *testing.T) {
	g := testutil.Euclid()
	tree := Build(g)

	// Nodes added after the build have no dominance information.
	late := g.Const(42)
	require.Panics(t, func() { tree.Parent(late) })
}

func TestMissingSinkPanics(t *testing.T) {
	require.Panics(t, func() { Build(peg.NewGraph("empty")) })
}

func TestDumpEuclid(t *testing.T) {
	tree := Build(testutil.Euclid())

	var buf bytes.Buffer
	tree.Dump(&buf)

	goldie.New(t).Assert(t, "euclid-dump", buf.Bytes())
}

func TestStringEuclid(t *testing.T) {
	tree := Build(testutil.Euclid())

	goldie.New(t).Assert(t, "euclid-string", []byte(tree.String()))
}
