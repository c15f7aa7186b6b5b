package peg

import (
	"fmt"
	"strings"

	i "github.com/cs-au-dk/pegdom/utils/indenter"
)

// String renders the graph with one line per node, operands last.
func (g *Graph) String() string {
	lines := make([]string, 0, len(g.nodes))
	for _, n := range g.nodes {
		line := n.String()
		if deps := n.Dependencies(); len(deps) > 0 {
			operands := make([]string, len(deps))
			for i, dep := range deps {
				operands[i] = fmt.Sprintf("%d", dep.ID())
			}
			line += " <- " + strings.Join(operands, ", ")
		}
		lines = append(lines, line)
	}

	return i.Indenter().
		Start(fmt.Sprintf("graph %s {", g.name)).
		NestStrings(lines...).
		End("}")
}
