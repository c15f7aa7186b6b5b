package graph

import "fmt"

// Source: https://www.cs.rice.edu/~keith/EMBED/dom.pdf

// DominatorTree is the immediate-dominator relation over the nodes
// reachable from a designated root, in array form. This is the generic
// reference implementation; the dom package maintains a specialised
// tree with O(1) dominance queries for dependence graphs.
type DominatorTree[T any] struct {
	order         []T       // nodes in DFS post-order
	postorderTime Mapper[T] // node -> position in order
	idoms         []int     // position -> position of immediate dominator
}

func (G Graph[T]) DominatorTree(root T) DominatorTree[T] {
	postorderTime := G.mapFactory()
	pred := G.mapFactory()

	// Compute DFS post-order ordering
	time := 0
	order := []T{}

	var dfs func(T)
	dfs = func(node T) {
		if _, seen := postorderTime.Get(node); seen {
			return
		}

		postorderTime.Set(node, -1)

		for _, e := range G.Edges(node) {
			var preds []T
			if predsItf, found := pred.Get(e); found {
				preds = predsItf.([]T)
			}

			pred.Set(e, append(preds, node))

			dfs(e)
		}

		postorderTime.Set(node, time)
		order = append(order, node)
		time++
	}

	dfs(root)

	// Initialize doms to "Undefined"
	doms := make([]int, time)
	for i := 0; i < time; i++ {
		doms[i] = -1
	}
	doms[time-1] = time - 1

	intersect := func(a, b int) int {
		for a != b {
			if a < b {
				a = doms[a]
			} else {
				b = doms[b]
			}
		}
		return a
	}

	for {
		changed := false

		// Process nodes in reverse post-order (except for root)
		for i := time - 2; i >= 0; i-- {
			node := order[i]

			new_idom := -1
			predsItf, _ := pred.Get(node)

			for _, predecessor := range predsItf.([]T) {
				jItf, _ := postorderTime.Get(predecessor)
				j := jItf.(int)

				if doms[j] != -1 {
					if new_idom == -1 {
						new_idom = j
					} else {
						new_idom = intersect(j, new_idom)
					}
				}
			}

			if new_idom != doms[i] {
				doms[i] = new_idom
				changed = true
			}
		}

		if !changed {
			break
		}
	}

	return DominatorTree[T]{order, postorderTime, doms}
}

func (dt DominatorTree[T]) timeOf(node T) int {
	iItf, found := dt.postorderTime.Get(node)
	if !found {
		panic(fmt.Errorf("%v was not reachable when computing the dominator tree", node))
	}
	return iItf.(int)
}

func (dt DominatorTree[T]) intersect(a, b int) int {
	for a != b {
		if a < b {
			a = dt.idoms[a]
		} else {
			b = dt.idoms[b]
		}
	}
	return a
}

// Idom returns the immediate dominator of the given node. The second
// result is false when the node is the root.
func (dt DominatorTree[T]) Idom(node T) (res T, ok bool) {
	i := dt.timeOf(node)
	if i == len(dt.order)-1 {
		// The root finishes last in the post-order and dominates itself.
		return res, false
	}
	return dt.order[dt.idoms[i]], true
}

// NearestCommonDominator returns the nearest node that dominates all
// the given nodes.
func (dt DominatorTree[T]) NearestCommonDominator(nodes ...T) T {
	if len(nodes) == 0 {
		panic("Empty list of nodes for dominator computation")
	}

	dom := -1
	for _, node := range nodes {
		i := dt.timeOf(node)
		if dom == -1 {
			dom = i
		} else {
			dom = dt.intersect(i, dom)
		}
	}

	return dt.order[dom]
}
