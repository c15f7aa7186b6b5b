package testutil

import (
	"fmt"
	"math/rand"

	"github.com/cs-au-dk/pegdom/peg"
)

// Shared dependence graphs used across test packages.

// DiamondGraph is the canonical shared-operand shape: the sink returns
// a and b, which both consume the shared node c. The only common
// ancestor of c's users is the sink itself, so c ends up as a direct
// dominance child of the sink.
type DiamondGraph struct {
	G          *peg.Graph
	R, A, B, C peg.Node
}

func Diamond() DiamondGraph {
	g := peg.NewGraph("diamond")
	c := g.Param("c")
	p := g.Param("p")
	q := g.Param("q")
	a := g.Arith(peg.OpAdd, c, p)
	b := g.Arith(peg.OpMul, c, q)
	r := g.Return(a, b)

	return DiamondGraph{g, r, a, b, c}
}

// Single returns a graph consisting solely of a sink.
func Single() *peg.Graph {
	g := peg.NewGraph("single")
	g.Return()
	return g
}

// Euclid returns the value graph of one step of the Euclidean
// algorithm: gcd(a, b) selects a when b = 0 and recurses on a mod b
// otherwise (the recursion itself is beyond a single graph).
func Euclid() *peg.Graph {
	g := peg.NewGraph("euclid")
	a := g.Param("a")
	b := g.Param("b")
	zero := g.Const(0)
	isBase := g.Arith(peg.OpEq, b, zero)
	rem := g.Arith(peg.OpMod, a, b)
	res := g.Gamma(isBase, a, rem)
	g.Return(res)
	return g
}

// Chain returns a graph whose nodes form a single dependency chain of
// the given length below the sink.
func Chain(length int) *peg.Graph {
	g := peg.NewGraph(fmt.Sprintf("chain%d", length))
	node := peg.Node(g.Param("x"))
	one := g.Const(1)
	for i := 0; i < length; i++ {
		node = g.Arith(peg.OpAdd, node, one)
	}
	g.Return(node)
	return g
}

// RandomDAG builds a random dependence graph with the given number of
// interior nodes. Every node without a user ends up as a sink operand,
// so the whole graph lies in the dependency cone of the sink.
func RandomDAG(rng *rand.Rand, size int) *peg.Graph {
	g := peg.NewGraph("random")

	nodes := []peg.Node{g.Param("p"), g.Const(int64(rng.Intn(100)))}
	used := map[peg.Node]bool{}

	for i := 0; i < size; i++ {
		left := nodes[rng.Intn(len(nodes))]
		right := nodes[rng.Intn(len(nodes))]

		var node peg.Node
		if rng.Intn(4) == 0 {
			cond := nodes[rng.Intn(len(nodes))]
			node = g.Gamma(cond, left, right)
			used[cond] = true
		} else {
			node = g.Arith(peg.Op(rng.Intn(7)), left, right)
		}
		used[left] = true
		used[right] = true
		nodes = append(nodes, node)
	}

	var unused []peg.Node
	for _, n := range nodes {
		if !used[n] {
			unused = append(unused, n)
		}
	}
	g.Return(unused...)
	return g
}
