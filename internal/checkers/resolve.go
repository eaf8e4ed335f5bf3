package checkers

import "fmt"

// depthTo is the hop count from id down to the first node landing on dst,
// counting id itself as one hop; 0 when dst is not below id.
func (t *MoveTree) depthTo(id NodeID, dst int) int {
	n := t.nodes[id]
	if id != rootNode && n.Square == dst {
		return 1
	}
	best := 0
	for _, c := range n.Children {
		if d := t.depthTo(c, dst); d > 0 && (best == 0 || d < best) {
			best = d
		}
	}
	if best == 0 {
		return 0
	}
	return best + 1
}

// Locate reports whether dst is an offered landing square of the tree.
func (t *MoveTree) Locate(b *Board, dst int) bool {
	if !b.Playable(dst) || b.cells[dst] != Empty {
		return false
	}
	return t.depthTo(rootNode, dst) > 0
}

// Resolve turns a picked destination into a chain of hops.
//
// Routes are counted per direction leaving the origin. With a single route
// the shortest way down that direction is walked to dst; a king's sibling
// landings on one diagonal count as one route. Several routes are only
// accepted when dst is a direct child of the origin: that one hop is taken
// and the chain is marked Partial. Any other competing routes are rejected
// as ambiguous. A direct child offered more than once also yields a Partial
// chain.
func (t *MoveTree) Resolve(b *Board, dst int) (Chain, error) {
	if !t.Locate(b, dst) {
		return Chain{}, fmt.Errorf("%w: %s", ErrIllegalDestination, SquareName(dst, b.side))
	}
	var depth [4]int
	best, bestDepth := noNode, 0
	for _, c := range t.nodes[rootNode].Children {
		d := t.depthTo(c, dst)
		if d == 0 {
			continue
		}
		dir := t.nodes[c].Dir
		if depth[dir] == 0 || d < depth[dir] {
			depth[dir] = d
		}
		if bestDepth == 0 || d < bestDepth {
			best, bestDepth = c, d
		}
	}
	routes := 0
	for _, d := range depth {
		if d > 0 {
			routes++
		}
	}
	if routes > 1 && bestDepth > 1 {
		return Chain{}, fmt.Errorf("%w: %s", ErrAmbiguousDestination, SquareName(dst, b.side))
	}

	var chain Chain
	id := best
	for {
		n := t.nodes[id]
		chain.Hops = append(chain.Hops, Hop{Landing: n.Square, Victim: n.Victim})
		if n.Square == dst {
			chain.Partial = len(chain.Hops) == 1 && (routes > 1 || b.highlight[dst] > 1)
			return chain, nil
		}
		id = t.nearest(id, dst)
	}
}

// nearest picks the child of id with the shortest way down to dst; the
// first one wins ties.
func (t *MoveTree) nearest(id NodeID, dst int) NodeID {
	best, bestDepth := noNode, 0
	for _, c := range t.nodes[id].Children {
		if d := t.depthTo(c, dst); d > 0 && (bestDepth == 0 || d < bestDepth) {
			best, bestDepth = c, d
		}
	}
	return best
}
