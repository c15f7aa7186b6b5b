package dom

import (
	"fmt"

	"github.com/cs-au-dk/pegdom/peg"
	"github.com/cs-au-dk/pegdom/utils"
	"github.com/cs-au-dk/pegdom/utils/hmap"
)

// Build computes the dominator tree for the given dependence graph in
// one blocking call: post-order indexing over dependency edges, an
// iterative dominance fix-point over use edges, and a final indexing
// pass over the resulting tree that makes dominance queries O(1).
//
// The graph is read-only input; the tree only maintains a separate
// shadow structure. Panics when the graph is malformed: no sink, a
// cycle through dependency edges, or a node that cannot reach the sink
// through use chains.
func Build(g *peg.Graph) *Tree {
	sink := g.Sink()

	// Dominance needs reverse edges. Restore the previous state of the
	// use index on the way out if we activated it here.
	wasActive := g.EnsureUses()

	// A dependency cycle can never resolve to a single sink and would
	// also overflow the post-order recursion, so reject it up front.
	scc := g.DependencyGraph().SCC([]peg.Node{sink})
	for _, comp := range scc.Components {
		if len(comp) > 1 {
			panic(fmt.Sprintf("dependence graph %q has a dependency cycle through %v",
				g.Name(), comp[0]))
		}
		for _, dep := range comp[0].Dependencies() {
			if dep == comp[0] {
				panic(fmt.Sprintf("%v depends on itself", comp[0]))
			}
		}
	}

	t := &Tree{
		graph:  g,
		arena:  &arena{},
		lookup: hmap.NewMap[nodeID](utils.PointerHasher[peg.Node]{}),
	}

	// Set up the root node.
	t.root = t.arena.alloc(sink)
	t.lookup.Set(sink, t.root)
	t.arena.get(t.root).defined = true

	// Index nodes in post-order for the algorithm.
	t.gen++
	t.assignPostorder(sink, 0)

	// Compute the dominance tree.
	for {
		t.gen++
		if !t.solvePass(sink) {
			break
		}
	}

	// A shadow that is still undefined at the fix-point has no defined
	// user in any pass: the node cannot reach the sink through use
	// chains, which violates the construction contract of the graph.
	for id := range t.arena.nodes {
		if dn := &t.arena.nodes[id]; !dn.defined {
			panic(fmt.Sprintf("%v cannot reach the sink of %q via use chains",
				dn.n, g.Name()))
		}
	}

	// Index nodes for fast queries.
	t.assignIntervals(t.root, 0)

	if !wasActive {
		g.DeactivateUses()
	}
	return t
}

// assignPostorder performs the depth-first descent over dependency
// edges, creating the shadow of every reachable node and numbering a
// node once all of its dependencies are numbered. Shared sub-expressions
// are visited once per call via the pass generation marker.
func (t *Tree) assignPostorder(n peg.Node, counter int) int {
	id, found := t.lookup.GetOk(n)
	if !found {
		id = t.arena.alloc(n)
		t.lookup.Set(n, id)
	}
	if t.arena.get(id).visited == t.gen {
		return counter
	}
	t.arena.get(id).visited = t.gen

	for _, dep := range n.Dependencies() {
		counter = t.assignPostorder(dep, counter)
	}

	// The arena may have grown during the descent; fetch again.
	t.arena.get(id).index = counter
	return counter + 1
}

// Paper: A simple, fast dominance algorithm. Keith et al.
//
// The classical algorithm walks control-flow predecessors; here the
// tree grows toward the sink, so candidates come from use edges while
// the traversal itself descends dependency edges, mirroring the
// post-order pass. Returns whether the pass reparented any node.
func (t *Tree) solvePass(n peg.Node) bool {
	id, _ := t.lookup.GetOk(n)
	dn := t.arena.get(id)
	if dn.visited == t.gen {
		return false
	}
	dn.visited = t.gen
	changed := false

	if id != t.root {
		idom := noNode
		users := t.graph.Uses(n)

		// Find the first defined user as the initial candidate. Users
		// outside the dependency cone of the sink have no shadow and
		// do not participate.
		for _, u := range users {
			if uid, found := t.lookup.GetOk(u); found && t.arena.get(uid).defined {
				idom = uid
				break
			}
		}

		if idom != noNode {
			// Intersect with every other defined user, in use order.
			for _, u := range users {
				uid, found := t.lookup.GetOk(u)
				if !found {
					continue
				}
				if uid != idom && t.arena.get(uid).defined {
					idom = t.intersect(uid, idom)
				}
			}

			// Link the candidate to the node.
			if dn.parent != idom {
				t.setParent(idom, id)
				dn.defined = true
				changed = true
			}
		}
		// No defined user yet: leave the node unresolved for this
		// pass. A later pass retries once a user becomes defined.
	}

	for _, dep := range n.Dependencies() {
		if t.solvePass(dep) {
			changed = true
		}
	}

	return changed
}

// intersect walks both candidates toward the root along the current
// parent chains, always advancing the one with the smaller post-order
// index. This terminates because a node's index is always smaller than
// its ancestors' at every intermediate state of the tree.
func (t *Tree) intersect(a, b nodeID) nodeID {
	for a != b {
		for t.arena.get(a).index < t.arena.get(b).index {
			a = t.arena.get(a).parent
		}
		for t.arena.get(b).index < t.arena.get(a).index {
			b = t.arena.get(b).parent
		}
	}
	return a
}

// setParent moves child under parent: detach from the old parent's
// children first, then append, so the child is never in two children
// lists at once.
func (t *Tree) setParent(parent, child nodeID) {
	cn := t.arena.get(child)
	if cn.parent != noNode {
		old := t.arena.get(cn.parent)
		detached := false
		for i, id := range old.children {
			if id == child {
				old.children = append(old.children[:i], old.children[i+1:]...)
				detached = true
				break
			}
		}
		if !detached {
			panic(fmt.Sprintf("%v is missing from the children of its parent", cn.n))
		}
	}

	cn.parent = parent
	pn := t.arena.get(parent)
	pn.children = append(pn.children, child)
}

// assignIntervals overwrites the post-order indices with preorder entry
// indices over the finished tree and records, per node, the maximum
// entry index of its subtree. Dominance queries become interval
// containment checks.
func (t *Tree) assignIntervals(id nodeID, counter int) int {
	dn := t.arena.get(id)
	dn.index = counter

	for _, child := range dn.children {
		counter = t.assignIntervals(child, counter+1)
	}

	dn.maxIndex = counter
	return counter
}
