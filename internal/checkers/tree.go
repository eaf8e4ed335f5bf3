package checkers

import (
	"fmt"
	"sort"
)

type NodeID int32

const (
	noNode   NodeID = -1
	rootNode NodeID = 0
)

// MoveNode is one reachable landing square. Victim is the square jumped on
// the edge from Parent, or -1 for simple moves and the root.
type MoveNode struct {
	Square   int
	Victim   int
	Dir      Direction
	Parent   NodeID
	Children []NodeID
}

// MoveTree holds every square the selected piece can reach in one
// interaction. Nodes live in a single arena; the tree is dropped wholesale
// once a destination has been resolved.
type MoveTree struct {
	Origin  int
	Capture bool
	nodes   []MoveNode
}

func newMoveTree(origin int, capture bool) *MoveTree {
	return &MoveTree{
		Origin:  origin,
		Capture: capture,
		nodes: []MoveNode{{
			Square: origin,
			Victim: -1,
			Dir:    NoDirection,
			Parent: noNode,
		}},
	}
}

func (t *MoveTree) add(parent NodeID, sq, victim int, d Direction) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, MoveNode{Square: sq, Victim: victim, Dir: d, Parent: parent})
	t.nodes[parent].Children = append(t.nodes[parent].Children, id)
	return id
}

func (t *MoveTree) Node(id NodeID) MoveNode { return t.nodes[id] }

func (t *MoveTree) Root() MoveNode { return t.nodes[rootNode] }

// Size is the number of landing nodes, root excluded.
func (t *MoveTree) Size() int { return len(t.nodes) - 1 }

// BuildTree builds the move tree of the piece on sq: a capture tree when the
// piece can jump, otherwise its simple moves.
func (b *Board) BuildTree(sq int) (*MoveTree, error) {
	pc := b.At(sq)
	if !b.Playable(sq) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSquare, sq)
	}
	if pc == Empty {
		return nil, fmt.Errorf("%w: %s", ErrSquareEmpty, SquareName(sq, b.side))
	}
	if b.HasCapture(sq) {
		return b.buildCaptureTree(sq), nil
	}
	return b.buildSimpleTree(sq), nil
}

func (b *Board) buildSimpleTree(sq int) *MoveTree {
	t := newMoveTree(sq, false)
	pc := b.cells[sq]
	if pc.Rank() == Man {
		for _, d := range forward(pc.Color()) {
			if n := b.Neighbor(sq, d); n >= 0 && b.cells[n] == Empty {
				t.add(rootNode, n, -1, d)
			}
		}
		return t
	}
	// every square of a king's slide is its own leaf
	for _, d := range Directions {
		for n := b.Neighbor(sq, d); n >= 0 && b.cells[n] == Empty; n = b.Neighbor(n, d) {
			t.add(rootNode, n, -1, d)
		}
	}
	return t
}

// maxCaptureNodes bounds a capture tree. Once it is reached no chain is
// extended below its first hop; every first hop is still offered, and the
// rest of the chain is found again from the landing square.
const maxCaptureNodes = 1 << 14

type captureSearch struct {
	b     *Board
	t     *MoveTree
	enemy Color
	king  bool
}

func (s *captureSearch) full() bool { return len(s.t.nodes) > maxCaptureNodes }

func (b *Board) buildCaptureTree(sq int) *MoveTree {
	pc := b.cells[sq]
	s := &captureSearch{
		b:     b,
		t:     newMoveTree(sq, true),
		enemy: pc.Color().Opponent(),
		king:  pc.Rank() == King,
	}
	s.expand(rootNode, sq, NoDirection, nil)
	return s.t
}

// vacant treats the mover's own origin as empty for the whole chain.
func (s *captureSearch) vacant(sq int) bool {
	return sq == s.t.Origin || s.b.cells[sq] == Empty
}

func (s *captureSearch) capturable(sq int, jumped []int) bool {
	if s.b.cells[sq].Color() != s.enemy {
		return false
	}
	for _, v := range jumped {
		if v == sq {
			return false
		}
	}
	return true
}

// expand adds every jump available from sq. forbid is the direction back
// along the diagonal just travelled; jumped holds the victims already taken
// in this chain. Victims stay on the board while searching, so they still
// block slides and landings.
func (s *captureSearch) expand(node NodeID, sq int, forbid Direction, jumped []int) {
	b := s.b
	for _, d := range Directions {
		if d == forbid {
			continue
		}
		victim := b.Neighbor(sq, d)
		if s.king {
			for victim >= 0 && s.vacant(victim) {
				victim = b.Neighbor(victim, d)
			}
		}
		if victim < 0 || !s.capturable(victim, jumped) {
			continue
		}
		next := append(jumped[:len(jumped):len(jumped)], victim)
		land := b.Neighbor(victim, d)
		for land >= 0 && s.vacant(land) {
			if node != rootNode && s.full() {
				return
			}
			child := s.t.add(node, land, victim, d)
			if !s.full() {
				s.expand(child, land, d.Opposite(), next)
			}
			if !s.king {
				break
			}
			land = b.Neighbor(land, d)
		}
	}
}

// MarkSquares bumps the highlight count of every landing node's square;
// a square reached by several nodes ends up above 1. It returns the number
// of distinct squares offered. The origin is never offered.
func (b *Board) MarkSquares(t *MoveTree) int {
	offered := 0
	for _, n := range t.nodes[1:] {
		if b.cells[n.Square] != Empty {
			continue
		}
		if b.highlight[n.Square] == 0 {
			offered++
		}
		b.highlight[n.Square]++
	}
	return offered
}

func (b *Board) UnmarkSquares(t *MoveTree) {
	for _, n := range t.nodes {
		b.highlight[n.Square] = 0
	}
}

// Destinations lists the squares a player may pick, in index order.
func (t *MoveTree) Destinations(b *Board) []int {
	seen := make(map[int]bool)
	var out []int
	for _, n := range t.nodes[1:] {
		if seen[n.Square] || b.cells[n.Square] != Empty {
			continue
		}
		seen[n.Square] = true
		out = append(out, n.Square)
	}
	sort.Ints(out)
	return out
}
