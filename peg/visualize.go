package peg

import (
	"fmt"

	"github.com/cs-au-dk/pegdom/utils/dot"
	"github.com/cs-au-dk/pegdom/utils/graph"
)

// ToDotGraph creates a dot graph of the dependence graph, with edges
// pointing from consumers to their operands.
func (g *Graph) ToDotGraph() *dot.DotGraph {
	dg := g.DependencyGraph().ToDotGraph(g.Nodes(), &graph.VisualizationConfig[Node]{
		NodeAttrs: func(n Node) (string, dot.DotAttrs) {
			attrs := dot.DotAttrs{"label": n.String()}
			switch n.Kind() {
			case KindGamma:
				attrs["fillcolor"] = "#a0ecfa"
			case KindReturn:
				attrs["fillcolor"] = "#ffd2a0"
			}
			return fmt.Sprintf("n%d", n.ID()), attrs
		},
	})
	dg.Title = g.name
	return dg
}
