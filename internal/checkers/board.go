package checkers

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

const (
	MinSide     = 4
	MaxSide     = 26
	DefaultSide = 8
)

// Board is the square graph. Cells live in one slice indexed row*side+col;
// only dark cells ((row+col) odd) are playable and wired to neighbours.
type Board struct {
	side      int
	cells     []Piece
	adj       [][4]int
	highlight []int
	selected  int
	hash      uint64
}

func ValidSide(side int) bool { return side >= MinSide && side <= MaxSide }

func NewBoard(side int) (*Board, error) {
	if !ValidSide(side) {
		return nil, fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidSide, side, MinSide, MaxSide)
	}
	n := side * side
	b := &Board{
		side:      side,
		cells:     make([]Piece, n),
		adj:       make([][4]int, n),
		highlight: make([]int, n),
		selected:  -1,
	}
	for sq := 0; sq < n; sq++ {
		row, col := sq/side, sq%side
		for _, d := range Directions {
			b.adj[sq][d] = -1
			if !b.playable(row, col) {
				continue
			}
			r, c := row+directionDelta[d][0], col+directionDelta[d][1]
			if b.OnBoard(r, c) {
				b.adj[sq][d] = r*side + c
			}
		}
	}
	return b, nil
}

func (b *Board) Side() int       { return b.side }
func (b *Board) NumSquares() int { return len(b.cells) }

func (b *Board) Index(row, col int) int { return row*b.side + col }
func (b *Board) RowOf(sq int) int       { return sq / b.side }
func (b *Board) ColOf(sq int) int       { return sq % b.side }

func (b *Board) OnBoard(row, col int) bool {
	return row >= 0 && row < b.side && col >= 0 && col < b.side
}

func (b *Board) playable(row, col int) bool { return (row+col)%2 == 1 }

// Playable reports whether sq is a dark square of this board.
func (b *Board) Playable(sq int) bool {
	if sq < 0 || sq >= len(b.cells) {
		return false
	}
	return b.playable(b.RowOf(sq), b.ColOf(sq))
}

// Neighbor returns the adjacent square in direction d, or -1 at the edge.
func (b *Board) Neighbor(sq int, d Direction) int {
	if sq < 0 || sq >= len(b.cells) || d < 0 || d > 3 {
		return -1
	}
	return b.adj[sq][d]
}

func (b *Board) At(sq int) Piece {
	if sq < 0 || sq >= len(b.cells) {
		return Empty
	}
	return b.cells[sq]
}

func (b *Board) set(sq int, p Piece) {
	b.hash ^= pieceHashKey(b.cells[sq], sq)
	b.cells[sq] = p
	b.hash ^= pieceHashKey(p, sq)
}

func (b *Board) Place(sq int, p Piece) error {
	if !b.Playable(sq) {
		return fmt.Errorf("%w: %d", ErrInvalidSquare, sq)
	}
	if b.cells[sq] != Empty {
		return fmt.Errorf("%w: %s", ErrSquareOccupied, SquareName(sq, b.side))
	}
	b.set(sq, p)
	return nil
}

func (b *Board) Remove(sq int) (Piece, error) {
	if !b.Playable(sq) {
		return Empty, fmt.Errorf("%w: %d", ErrInvalidSquare, sq)
	}
	p := b.cells[sq]
	if p == Empty {
		return Empty, fmt.Errorf("%w: %s", ErrSquareEmpty, SquareName(sq, b.side))
	}
	b.set(sq, Empty)
	return p, nil
}

// Move copies the piece on src to dst and clears src. The selection marker
// follows the piece.
func (b *Board) Move(src, dst int) error {
	if !b.Playable(src) || !b.Playable(dst) {
		return fmt.Errorf("%w: %d -> %d", ErrInvalidSquare, src, dst)
	}
	p := b.cells[src]
	if p == Empty {
		return fmt.Errorf("%w: %s", ErrSquareEmpty, SquareName(src, b.side))
	}
	if b.cells[dst] != Empty {
		return fmt.Errorf("%w: %s", ErrSquareOccupied, SquareName(dst, b.side))
	}
	b.set(dst, p)
	b.set(src, Empty)
	if b.selected == src {
		b.selected = dst
	}
	return nil
}

func (b *Board) Clear() {
	for sq := range b.cells {
		b.cells[sq] = Empty
		b.highlight[sq] = 0
	}
	b.selected = -1
	b.hash = 0
}

// StartRows is the number of ranks each color fills at the start.
func StartRows(side int) int { return (4 * side) / 10 }

// SetupInitial places the men of both colors on an empty board.
func (b *Board) SetupInitial() {
	b.Clear()
	rows := StartRows(b.side)
	for sq := range b.cells {
		if !b.Playable(sq) {
			continue
		}
		row := b.RowOf(sq)
		switch {
		case row < rows:
			b.set(sq, MakePiece(Light, Man))
		case row >= b.side-rows:
			b.set(sq, MakePiece(Dark, Man))
		}
	}
}

func (b *Board) Count(c Color) int {
	n := 0
	for _, p := range b.cells {
		if p != Empty && p.Color() == c {
			n++
		}
	}
	return n
}

// FarRow is the rank on which a man of color c is crowned.
func (b *Board) FarRow(c Color) int {
	if c == Dark {
		return 0
	}
	return b.side - 1
}

func (b *Board) Highlight(sq int) int {
	if sq < 0 || sq >= len(b.highlight) {
		return 0
	}
	return b.highlight[sq]
}

func (b *Board) Selected() int { return b.selected }

func (b *Board) setSelected(sq int) { b.selected = sq }

// SquareName renders an index as a column letter plus rank number, e.g. "C3".
func SquareName(sq, side int) string {
	if side <= 0 || sq < 0 || sq >= side*side {
		return "?"
	}
	row, col := sq/side, sq%side
	return string(rune('A'+col)) + strconv.Itoa(side-row)
}

// ParseSquare turns a token like "c3" into a board index. Row number n maps to
// internal row side-n.
func ParseSquare(token string, side int) (int, error) {
	s := strings.TrimSpace(token)
	if len(s) < 2 {
		return -1, fmt.Errorf("%w: %q", ErrInvalidSquare, token)
	}
	letter := rune(s[0])
	if !unicode.IsLetter(letter) || letter > unicode.MaxASCII {
		return -1, fmt.Errorf("%w: %q", ErrInvalidSquare, token)
	}
	col := int(unicode.ToUpper(letter) - 'A')
	if col < 0 || col >= side {
		return -1, fmt.Errorf("%w: column out of range in %q", ErrInvalidSquare, token)
	}
	for _, ch := range s[1:] {
		if ch < '0' || ch > '9' {
			return -1, fmt.Errorf("%w: %q", ErrInvalidSquare, token)
		}
	}
	n, err := strconv.Atoi(s[1:])
	if err != nil || n < 1 || n > side {
		return -1, fmt.Errorf("%w: rank out of range in %q", ErrInvalidSquare, token)
	}
	return (side-n)*side + col, nil
}
