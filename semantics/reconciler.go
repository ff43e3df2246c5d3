package semantics

import (
	"fmt"
	"sort"
	"strconv"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/suhaib0edu/ariabridge/dom"
)

// updateChildren reconciles the node's previously rendered child sequence
// against the traversal-ordered child ids delivered this cycle, issuing
// the minimal set of element moves. Children whose relative order is
// unchanged (the longest increasing subsequence of retained positions)
// are never touched; assistive technology loses focus when elements move
// without need.
func (n *Node) updateChildren() {
	o := n.owner

	var next []*Node
	for _, id := range n.childrenInTraversalOrder {
		child, ok := o.nodes[id]
		if !ok {
			o.fail(fmt.Errorf("semantics: node %d lists child %d which is not in the tree", n.id, id))
			continue
		}
		next = append(next, child)
	}

	if len(next) == 0 {
		for _, child := range n.renderedChildren {
			o.declareDetached(child)
		}
		n.renderedChildren = nil
		n.releaseChildContainer()
		return
	}

	container := n.getOrCreateChildContainer()
	prev := n.renderedChildren

	if len(prev) == 0 {
		for _, child := range next {
			container.AppendChild(child.element)
			o.declareAttached(n, child)
		}
		n.renderedChildren = next
		n.assignZIndexes()
		return
	}

	prevIDs := make([]int64, len(prev))
	for i, c := range prev {
		prevIDs[i] = c.id
	}
	nextIDs := make([]int64, len(next))
	for i, c := range next {
		nextIDs[i] = c.id
	}
	stationary := stationarySet(prevIDs, nextIDs, true)

	retained := mapset.NewThreadUnsafeSet(nextIDs...)
	for _, child := range prev {
		if !retained.Contains(child.id) {
			o.declareDetached(child)
		}
	}

	// Walk the new order back to front. Stationary children only advance
	// the insertion reference; everything else is inserted before it.
	var ref *dom.Element
	for i := len(next) - 1; i >= 0; i-- {
		child := next[i]
		if stationary.Contains(child.id) {
			ref = child.element
			continue
		}
		container.InsertBefore(child.element, ref)
		o.declareAttached(n, child)
		o.stats.Moves++
		ref = child.element
	}

	n.renderedChildren = next
	n.assignZIndexes()
}

// stationarySet computes the ids of children that keep their relative
// order between prev and next and therefore must not move. It maps each
// retained id in next to its position in prev (a common-prefix fast path
// first, then per-id lookup; sibling ids are unique, so lookup and the
// next-unused-match scan agree) and takes the longest increasing
// subsequence of those positions.
func stationarySet(prevIDs, nextIDs []int64, prefixFastPath bool) mapset.Set[int64] {
	positions := make(map[int64]int, len(prevIDs))
	for i, id := range prevIDs {
		positions[id] = i
	}

	intersection := make([]int, 0, len(prevIDs))
	i := 0
	if prefixFastPath {
		for ; i < len(prevIDs) && i < len(nextIDs) && prevIDs[i] == nextIDs[i]; i++ {
			intersection = append(intersection, i)
		}
	}
	for _, id := range nextIDs[i:] {
		if p, ok := positions[id]; ok {
			intersection = append(intersection, p)
		}
	}

	set := mapset.NewThreadUnsafeSet[int64]()
	for _, p := range longestIncreasingSubsequence(intersection) {
		set.Add(prevIDs[p])
	}
	return set
}

// longestIncreasingSubsequence returns one maximal strictly increasing
// subsequence of seq, patience-sort formulation with binary search,
// O(n log n). Values are distinct positions, so strict vs. non-strict
// does not matter.
func longestIncreasingSubsequence(seq []int) []int {
	if len(seq) == 0 {
		return nil
	}
	// tails[l] is the index in seq of the smallest tail value among all
	// increasing subsequences of length l+1 seen so far.
	tails := make([]int, 0, len(seq))
	prev := make([]int, len(seq))
	for i, v := range seq {
		lo := sort.Search(len(tails), func(j int) bool { return seq[tails[j]] >= v })
		if lo > 0 {
			prev[i] = tails[lo-1]
		} else {
			prev[i] = -1
		}
		if lo == len(tails) {
			tails = append(tails, i)
		} else {
			tails[lo] = i
		}
	}
	out := make([]int, len(tails))
	k := tails[len(tails)-1]
	for j := len(tails) - 1; j >= 0; j-- {
		out[j] = seq[k]
		k = prev[k]
	}
	return out
}

// assignZIndexes maps the declared hit-test order onto render depth so
// overlapping-region resolution matches it while the element order keeps
// driving reading order. Skipped for a single child, where depth cannot
// matter.
func (n *Node) assignZIndexes() {
	if len(n.renderedChildren) <= 1 {
		return
	}
	order := n.childrenInHitTestOrder
	for i, id := range order {
		if child, ok := n.owner.nodes[id]; ok {
			child.element.SetStyle("z-index", strconv.Itoa(len(order)-i))
		}
	}
}
