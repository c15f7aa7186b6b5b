package dom

/*
	Package dom builds dominator trees over dependence graphs.

	In a dependence graph the sink is reachable from every node through
	chains of use edges, the same way every node of a control flow graph
	reaches the exit. A node A dominates a node B when every use chain
	from B to the sink passes through A. Scheduling and code generation
	passes consume the relation through O(1) dominance queries and the
	parent/children structure of the tree.
*/

import (
	"fmt"
	"io"
	"strings"

	"github.com/cs-au-dk/pegdom/peg"
	"github.com/cs-au-dk/pegdom/utils/hmap"
	i "github.com/cs-au-dk/pegdom/utils/indenter"

	"github.com/spakin/disjoint"
)

// Tree is the dominator tree of a dependence graph, rooted at the
// sink. It is built once by Build, queried arbitrarily often, and
// released as a unit. It holds no references into the graph beyond the
// analysed nodes themselves.
type Tree struct {
	graph  *peg.Graph
	arena  *arena
	root   nodeID
	lookup *hmap.Map[peg.Node, nodeID]
	gen    uint32
}

func (t *Tree) shadow(n peg.Node) *domNode {
	if t.arena == nil {
		panic("dominator tree has been released")
	}
	id, found := t.lookup.GetOk(n)
	if !found {
		panic(fmt.Sprintf("no dominance information for %v", n))
	}
	return t.arena.get(id)
}

// Dominates checks non-strict dominance: whether every use chain from
// b to the sink passes through a. Both nodes must be reachable from
// the sink via dependency edges.
func (t *Tree) Dominates(a, b peg.Node) bool {
	an, bn := t.shadow(a), t.shadow(b)

	return bn.index >= an.index &&
		bn.index <= an.maxIndex
}

// Parent returns the immediate dominator of n, or nil for the root.
func (t *Tree) Parent(n peg.Node) peg.Node {
	dn := t.shadow(n)
	if dn.parent == noNode {
		return nil
	}
	return t.arena.get(dn.parent).n
}

func (t *Tree) ChildrenCount(n peg.Node) int {
	return len(t.shadow(n).children)
}

// Children returns the nodes immediately dominated by n, in the order
// they were attached during solving. The order is stable within one
// build but otherwise unspecified.
func (t *Tree) Children(n peg.Node) []peg.Node {
	dn := t.shadow(n)
	children := make([]peg.Node, len(dn.children))
	for i, id := range dn.children {
		children[i] = t.arena.get(id).n
	}
	return children
}

// Root returns the sink of the analysed graph.
func (t *Tree) Root() peg.Node {
	if t.arena == nil {
		panic("dominator tree has been released")
	}
	return t.arena.get(t.root).n
}

// Graph returns the analysed dependence graph.
func (t *Tree) Graph() *peg.Graph {
	return t.graph
}

// Release drops the arena and the node lookup in one step. All queries
// panic afterwards.
func (t *Tree) Release() {
	t.arena = nil
	t.lookup = nil
}

// Regions partitions the non-root nodes into dominance regions: one
// region per child subtree of the root, in child order. Nodes in
// different regions have no dominance relation below the root, so
// scheduling passes may treat regions independently.
func (t *Tree) Regions() [][]peg.Node {
	if t.arena == nil {
		panic("dominator tree has been released")
	}

	elems := make([]*disjoint.Element, t.arena.size())
	for id := range elems {
		elems[id] = disjoint.NewElement()
	}

	// Collapse every subtree hanging off a root child into one set.
	for id := range t.arena.nodes {
		if parent := t.arena.nodes[id].parent; parent != noNode && parent != t.root {
			disjoint.Union(elems[id], elems[parent])
		}
	}

	rootChildren := t.arena.get(t.root).children
	slot := make(map[*disjoint.Element]int, len(rootChildren))
	for i, child := range rootChildren {
		slot[elems[child].Find()] = i
	}

	regions := make([][]peg.Node, len(rootChildren))
	for id := range t.arena.nodes {
		if nodeID(id) == t.root {
			continue
		}
		region := slot[elems[id].Find()]
		regions[region] = append(regions[region], t.arena.nodes[id].n)
	}
	return regions
}

// Dump recursively prints the tree, indented by tree depth.
func (t *Tree) Dump(w io.Writer) {
	if t.arena == nil {
		panic("dominator tree has been released")
	}
	t.dumpNode(w, t.root, 0)
}

func (t *Tree) dumpNode(w io.Writer, id nodeID, indent int) {
	dn := t.arena.get(id)
	fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", indent), dn.n)

	for _, child := range dn.children {
		t.dumpNode(w, child, indent+1)
	}
}

// String renders the tree with the query interval of every node.
func (t *Tree) String() string {
	if t.arena == nil {
		return "domtree (released)"
	}

	var lines []string
	var rec func(id nodeID, depth int)
	rec = func(id nodeID, depth int) {
		dn := t.arena.get(id)
		lines = append(lines, fmt.Sprintf("%s%s [%d, %d]",
			strings.Repeat("  ", depth), dn.n, dn.index, dn.maxIndex))
		for _, child := range dn.children {
			rec(child, depth+1)
		}
	}
	rec(t.root, 0)

	return i.Indenter().
		Start(fmt.Sprintf("domtree %s {", t.graph.Name())).
		NestStrings(lines...).
		End("}")
}
