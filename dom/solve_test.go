package dom

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/cs-au-dk/pegdom/peg"
	"github.com/cs-au-dk/pegdom/testutil"
	"github.com/cs-au-dk/pegdom/utils"
	"github.com/cs-au-dk/pegdom/utils/hmap"

	"github.com/stretchr/testify/require"
)

// The generic fix-point over dependency edges must agree with the
// specialised tree on every immediate dominator.
func requireMatchesOracle(t *testing.T, g *peg.Graph, tree *Tree) {
	t.Helper()
	oracle := g.DependencyGraph().DominatorTree(g.Sink())

	for _, n := range g.Nodes() {
		idom, ok := oracle.Idom(n)
		if !ok {
			require.Equal(t, g.Sink(), n)
			require.Nil(t, tree.Parent(n))
		} else {
			require.Equal(t, idom, tree.Parent(n), "immediate dominator of %v", n)
		}
	}
}

func requireWellFormed(t *testing.T, g *peg.Graph, tree *Tree) {
	t.Helper()
	root := tree.Root()

	for _, n := range g.Nodes() {
		// The root dominates everything, dominance is reflexive.
		require.True(t, tree.Dominates(root, n))
		require.True(t, tree.Dominates(n, n))

		// Parent and children agree.
		for _, child := range tree.Children(n) {
			require.Equal(t, n, tree.Parent(child))
			require.True(t, tree.Dominates(n, child))
			require.False(t, tree.Dominates(child, n))
		}

		// A node dominates exactly what lies in its subtree, so mutual
		// dominance implies equality.
		for _, m := range g.Nodes() {
			if tree.Dominates(n, m) && tree.Dominates(m, n) {
				require.Equal(t, n, m)
			}
		}
	}
}

func TestFixtureGraphs(t *testing.T) {
	graphs := []*peg.Graph{
		testutil.Diamond().G,
		testutil.Single(),
		testutil.Euclid(),
		testutil.Chain(10),
	}

	for _, g := range graphs {
		t.Run(g.Name(), func(t *testing.T) {
			tree := Build(g)
			requireWellFormed(t, g, tree)
			requireMatchesOracle(t, g, tree)
		})
	}
}

func TestRandomGraphs(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		t.Run(fmt.Sprintf("seed%d", seed), func(t *testing.T) {
			g := testutil.RandomDAG(rand.New(rand.NewSource(seed)), 40)
			tree := Build(g)
			requireWellFormed(t, g, tree)
			requireMatchesOracle(t, g, tree)
		})
	}
}

func TestRepeatedBuildsAgree(t *testing.T) {
	g := testutil.RandomDAG(rand.New(rand.NewSource(7)), 30)

	first := Build(g)
	second := Build(g)
	for _, n := range g.Nodes() {
		require.Equal(t, first.Parent(n), second.Parent(n))
	}
}

func TestChainDepth(t *testing.T) {
	const length = 50
	g := testutil.Chain(length)
	tree := Build(g)

	// The additions form a single dominance chain below the sink; the
	// parameter sits at its far end.
	depth := 0
	for n := g.Nodes()[0]; n != nil; n = tree.Parent(n) {
		depth++
	}
	require.Equal(t, length+2, depth)

	// The shared constant is used by every addition, so only the
	// addition closest to the sink dominates it.
	one := g.Nodes()[1]
	require.Equal(t, tree.Children(tree.Root())[0], tree.Parent(one))
}

// buildChecked mirrors Build but asserts, after every pass, that
// post-order indices strictly increase along all parent chains. The
// intersection walk relies on this at every intermediate state.
func buildChecked(t *testing.T, g *peg.Graph) *Tree {
	sink := g.Sink()
	wasActive := g.EnsureUses()

	tr := &Tree{
		graph:  g,
		arena:  &arena{},
		lookup: hmap.NewMap[nodeID](utils.PointerHasher[peg.Node]{}),
	}
	tr.root = tr.arena.alloc(sink)
	tr.lookup.Set(sink, tr.root)
	tr.arena.get(tr.root).defined = true

	tr.gen++
	tr.assignPostorder(sink, 0)

	for {
		tr.gen++
		changed := tr.solvePass(sink)

		for id := range tr.arena.nodes {
			dn := &tr.arena.nodes[id]
			if dn.parent != noNode {
				require.Greater(t, tr.arena.get(dn.parent).index, dn.index,
					"%v must have a smaller post-order index than its parent", dn.n)
			}
		}

		if !changed {
			break
		}
	}

	for id := range tr.arena.nodes {
		require.True(t, tr.arena.nodes[id].defined)
	}

	tr.assignIntervals(tr.root, 0)
	if !wasActive {
		g.DeactivateUses()
	}
	return tr
}

func TestPostorderMonotonicity(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		g := testutil.RandomDAG(rand.New(rand.NewSource(seed)), 25)
		tree := buildChecked(t, g)
		requireMatchesOracle(t, g, tree)
	}
}
