package dom

import (
	"fmt"

	"github.com/cs-au-dk/pegdom/peg"
	"github.com/cs-au-dk/pegdom/utils/dot"
	"github.com/cs-au-dk/pegdom/utils/graph"
)

// ToDotGraph creates a dot graph of the dominator tree, with edges
// pointing from dominators to the nodes they immediately dominate.
func (t *Tree) ToDotGraph() *dot.DotGraph {
	var nodes []peg.Node
	var rec func(id nodeID)
	rec = func(id nodeID) {
		nodes = append(nodes, t.arena.get(id).n)
		for _, child := range t.arena.get(id).children {
			rec(child)
		}
	}
	rec(t.root)

	treeEdges := graph.OfHashable(func(n peg.Node) []peg.Node {
		return t.Children(n)
	})

	dg := treeEdges.ToDotGraph(nodes, &graph.VisualizationConfig[peg.Node]{
		NodeAttrs: func(n peg.Node) (string, dot.DotAttrs) {
			attrs := dot.DotAttrs{
				"label": fmt.Sprintf("%s\n[%d, %d]", n, t.shadow(n).index, t.shadow(n).maxIndex),
			}
			if n == t.Root() {
				attrs["fillcolor"] = "#ffd2a0"
			}
			return fmt.Sprintf("n%d", n.ID()), attrs
		},
	})
	dg.Title = fmt.Sprintf("domtree_%s", t.graph.Name())
	return dg
}
