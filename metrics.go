package main

import (
	"fmt"

	"github.com/cs-au-dk/pegdom/dom"
	"github.com/cs-au-dk/pegdom/peg"
	"github.com/cs-au-dk/pegdom/utils"

	"github.com/fatih/color"
)

var colorize = struct {
	Graph func(...interface{}) string
	Count func(...interface{}) string
}{
	Graph: func(is ...interface{}) string {
		return utils.CanColorize(color.New(color.FgCyan).SprintFunc())(is...)
	},
	Count: func(is ...interface{}) string {
		return utils.CanColorize(color.New(color.FgHiGreen).SprintFunc())(is...)
	},
}

var metricKinds = []peg.Kind{
	peg.KindConst, peg.KindParam, peg.KindArith, peg.KindGamma, peg.KindReturn,
}

func gatherMetrics(g *peg.Graph, t *dom.Tree) {
	kindCount := map[peg.Kind]int{}
	for _, n := range g.Nodes() {
		kindCount[n.Kind()]++
	}

	// Only nodes in the dependency cone of the sink have dominance
	// information.
	reachable := 0
	maxChildren := 0
	g.DependencyGraph().BFS(g.Sink(), func(n peg.Node) bool {
		reachable++
		if cc := t.ChildrenCount(n); cc > maxChildren {
			maxChildren = cc
		}
		return false
	})

	var height func(n peg.Node) int
	height = func(n peg.Node) int {
		res := 0
		for _, child := range t.Children(n) {
			if h := height(child) + 1; h > res {
				res = h
			}
		}
		return res
	}

	msg := "================ Metrics =====================\n\n"
	msg += "Graph: " + colorize.Graph(g.Name()) + "\n"
	msg += fmt.Sprintf("Nodes: %s (%d reachable from the sink)\n",
		colorize.Count(g.NodeCount()), reachable)
	for _, kind := range metricKinds {
		if cnt := kindCount[kind]; cnt > 0 {
			msg += fmt.Sprintf("  %-6s -- %d\n", kind, cnt)
		}
	}
	msg += "\n"
	msg += fmt.Sprintf("Dominator tree height: %d\n", height(t.Root()))
	msg += fmt.Sprintf("Maximum children: %d\n", maxChildren)

	regions := t.Regions()
	msg += fmt.Sprintf("Dominance regions: %d {\n", len(regions))
	for i, region := range regions {
		msg += fmt.Sprintf("  %d -- %d nodes\n", i, len(region))
	}
	msg += "}\n"
	msg += "================ Metrics ====================="
	fmt.Println(msg)
}
