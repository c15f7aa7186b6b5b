package peg

import "fmt"

// The use index materialises the reverse of the operand relation: for
// every node, the set of nodes that depend on it. Reverse edges are
// only needed by some consumers (dominance computation among them), so
// the index is activated on demand and can be dropped again when the
// consumer that requested it is done.

func (g *Graph) UsesActive() bool {
	return g.uses != nil
}

// EnsureUses activates the use index, building it if necessary, and
// reports whether it was already active. A consumer that activated the
// index itself should deactivate it when done.
func (g *Graph) EnsureUses() (wasActive bool) {
	if g.uses != nil {
		return true
	}

	g.uses = make(map[Node][]Node, len(g.nodes))
	for _, n := range g.nodes {
		for _, dep := range n.Dependencies() {
			g.uses[dep] = append(g.uses[dep], n)
		}
	}
	return false
}

func (g *Graph) DeactivateUses() {
	g.uses = nil
}

// Uses returns the nodes depending on n, in allocation order. Panics
// when the use index is not active.
func (g *Graph) Uses(n Node) []Node {
	if g.uses == nil {
		panic(fmt.Sprintf("use index of dependence graph %q is not active", g.name))
	}
	if n.Graph() != g {
		panic(fmt.Sprintf("%v belongs to graph %q, not %q", n, n.Graph().Name(), g.name))
	}
	return g.uses[n]
}
