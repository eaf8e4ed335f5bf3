package checkers

import "fmt"

// Snapshot is the state handed to and taken from the persistence layer.
// Cells holds occupant codes row-major, light cells included as 0.
type Snapshot struct {
	Side   int
	Cells  []int
	Counts [2]int // indexed by Color
	Turn   Color
}

func (g *Game) Snapshot() Snapshot {
	b := g.board
	s := Snapshot{
		Side:   b.side,
		Cells:  make([]int, len(b.cells)),
		Counts: g.counts,
		Turn:   g.turn,
	}
	for sq, pc := range b.cells {
		s.Cells[sq] = pc.Code()
	}
	return s
}

// Restore replaces the game state with s. The snapshot is fully validated
// first; on any error the current game is left as it was.
func (g *Game) Restore(s Snapshot) error {
	b := g.board
	if s.Side != b.side {
		return fmt.Errorf("%w: snapshot side %d, board side %d", ErrBoardSizeMismatch, s.Side, b.side)
	}
	if len(s.Cells) != len(b.cells) {
		return fmt.Errorf("%w: %d cells, want %d", ErrInvalidSnapshot, len(s.Cells), len(b.cells))
	}
	if s.Turn != Dark && s.Turn != Light {
		return fmt.Errorf("%w: side to move %d", ErrInvalidSnapshot, s.Turn)
	}
	pieces := make([]Piece, len(s.Cells))
	var counts [2]int
	for sq, code := range s.Cells {
		pc, ok := PieceFromCode(code)
		if !ok {
			return fmt.Errorf("%w: code %d on %s", ErrInvalidSnapshot, code, SquareName(sq, b.side))
		}
		if pc == Empty {
			continue
		}
		if !b.Playable(sq) {
			return fmt.Errorf("%w: piece on light square %s", ErrInvalidSnapshot, SquareName(sq, b.side))
		}
		pieces[sq] = pc
		counts[pc.Color()]++
	}
	if counts != s.Counts {
		return fmt.Errorf("%w: counts %v do not match board %v", ErrInvalidSnapshot, s.Counts, counts)
	}

	g.dropSelection()
	b.Clear()
	for sq, pc := range pieces {
		if pc != Empty {
			b.set(sq, pc)
		}
	}
	g.counts = counts
	g.turn = s.Turn
	g.hops = 0
	g.startTurn()
	return nil
}

// SquareView is the read-only per-square state a renderer needs.
type SquareView struct {
	Index     int
	Name      string
	Playable  bool
	Piece     Piece
	Highlight int
	Selected  bool
}

func (g *Game) Squares() []SquareView {
	b := g.board
	out := make([]SquareView, len(b.cells))
	for sq, pc := range b.cells {
		out[sq] = SquareView{
			Index:     sq,
			Name:      SquareName(sq, b.side),
			Playable:  b.Playable(sq),
			Piece:     pc,
			Highlight: b.highlight[sq],
			Selected:  sq == b.selected,
		}
	}
	return out
}
