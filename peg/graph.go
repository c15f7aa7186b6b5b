package peg

import (
	"fmt"

	"github.com/cs-au-dk/pegdom/utils/graph"
)

// Graph is a dependence graph: operations connected by ordered operand
// edges, with the implicit control flow of the program encoded in the
// graph shape. Exactly one node, the sink, terminates the graph.
type Graph struct {
	name  string
	nodes []Node
	sink  *ReturnNode

	// Reverse (use) edges, indexed on demand. nil when inactive.
	uses map[Node][]Node
}

func NewGraph(name string) *Graph {
	return &Graph{name: name}
}

func (g *Graph) Name() string {
	return g.name
}

// Nodes returns all nodes of the graph in allocation order. The
// returned slice must not be mutated.
func (g *Graph) Nodes() []Node {
	return g.nodes
}

func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// Sink returns the designated terminal operation of the graph. Panics
// if no sink has been registered.
func (g *Graph) Sink() Node {
	if g.sink == nil {
		panic(fmt.Sprintf("dependence graph %q has no sink", g.name))
	}
	return g.sink
}

func (g *Graph) add(n Node, deps ...Node) {
	base := n.base()
	base.graph = g
	base.id = len(g.nodes)

	for _, dep := range deps {
		if dep.Graph() != g {
			panic(fmt.Sprintf("operand %v belongs to graph %q, not %q",
				dep, dep.Graph().Name(), g.name))
		}
	}
	base.deps = deps

	g.nodes = append(g.nodes, n)

	// Keep the use index in sync while it is active.
	if g.uses != nil {
		for _, dep := range deps {
			g.uses[dep] = append(g.uses[dep], n)
		}
	}
}

func (g *Graph) Const(value int64) *ConstNode {
	n := &ConstNode{value: value}
	g.add(n)
	return n
}

func (g *Graph) Param(name string) *ParamNode {
	n := &ParamNode{name: name}
	g.add(n)
	return n
}

func (g *Graph) Arith(op Op, left, right Node) *ArithNode {
	n := &ArithNode{op: op}
	g.add(n, left, right)
	return n
}

func (g *Graph) Gamma(condition, trueValue, falseValue Node) *GammaNode {
	n := &GammaNode{}
	g.add(n, condition, trueValue, falseValue)
	return n
}

// Return registers the sink of the graph. A graph returning nothing
// takes no values. Panics if a sink was already registered; the sink
// must be unique.
func (g *Graph) Return(values ...Node) *ReturnNode {
	if g.sink != nil {
		panic(fmt.Sprintf("dependence graph %q already has a sink", g.name))
	}

	n := &ReturnNode{}
	g.add(n, values...)
	g.sink = n
	return n
}

// DependencyGraph views the dependence graph as a generic graph with
// edges from a node to its operands.
func (g *Graph) DependencyGraph() graph.Graph[Node] {
	return graph.OfHashable(func(n Node) []Node {
		return n.Dependencies()
	})
}

// UseGraph views the dependence graph as a generic graph with edges
// from a node to its users. Requires the use index to be active.
func (g *Graph) UseGraph() graph.Graph[Node] {
	return graph.OfHashable(func(n Node) []Node {
		return g.Uses(n)
	})
}
