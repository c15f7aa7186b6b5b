package dom

import "github.com/cs-au-dk/pegdom/peg"

// nodeID addresses a shadow node inside the arena. Parent/child
// relations are stored as nodeIDs, so reparenting during solving is an
// index rewrite with no lifetime hazards.
type nodeID int32

const noNode nodeID = -1

// domNode is the 1:1 shadow of a dependence node reachable from the
// sink. During solving, index holds the node's post-order number over
// dependency edges; after tree indexing it is repurposed as the
// preorder entry index of the node's query interval.
type domNode struct {
	n        peg.Node
	defined  bool
	index    int
	maxIndex int // valid only after tree indexing
	parent   nodeID
	children []nodeID
	visited  uint32 // pass generation marker
}

// arena owns every shadow node for the lifetime of one analysis run.
// Releasing the tree releases the arena in one step.
type arena struct {
	nodes []domNode
}

// alloc creates a fresh undefined shadow for n. Pointers obtained from
// get are invalidated by alloc; solving only calls get after the node
// set is complete.
func (a *arena) alloc(n peg.Node) nodeID {
	a.nodes = append(a.nodes, domNode{n: n, index: -1, parent: noNode})
	return nodeID(len(a.nodes) - 1)
}

func (a *arena) get(id nodeID) *domNode {
	return &a.nodes[id]
}

func (a *arena) size() int {
	return len(a.nodes)
}
