package checkers

import (
	"fmt"
	"strconv"
	"strings"
)

// Position is a board plus the side to move; it is what the text codec
// reads and writes.
type Position struct {
	Board *Board
	Turn  Color
}

func pieceToChar(p Piece) byte {
	var ch byte
	switch p.Color() {
	case Dark:
		ch = 'd'
	case Light:
		ch = 'l'
	default:
		return '.'
	}
	if p.Rank() == King {
		ch -= 'a' - 'A'
	}
	return ch
}

func charToPiece(ch rune) (Piece, bool) {
	switch ch {
	case 'd':
		return MakePiece(Dark, Man), true
	case 'D':
		return MakePiece(Dark, King), true
	case 'l':
		return MakePiece(Light, Man), true
	case 'L':
		return MakePiece(Light, King), true
	}
	return Empty, false
}

// Encode writes ranks top to bottom separated by '/', runs of empty cells
// as decimal counts, then the side to move ("d" or "l").
func (p Position) Encode() string {
	b := p.Board
	var sb strings.Builder
	for r := 0; r < b.side; r++ {
		if r > 0 {
			sb.WriteByte('/')
		}
		empty := 0
		for c := 0; c < b.side; c++ {
			pc := b.cells[b.Index(r, c)]
			if pc == Empty {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(pieceToChar(pc))
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
	}
	sb.WriteByte(' ')
	if p.Turn == Light {
		sb.WriteByte('l')
	} else {
		sb.WriteByte('d')
	}
	return sb.String()
}

func DecodePosition(s string) (Position, error) {
	parts := strings.Fields(s)
	if len(parts) != 2 {
		return Position{}, fmt.Errorf("%w: want \"<ranks> <turn>\"", ErrInvalidPosition)
	}
	rows := strings.Split(parts[0], "/")
	b, err := NewBoard(len(rows))
	if err != nil {
		return Position{}, fmt.Errorf("%w: %v", ErrInvalidPosition, err)
	}
	for r, row := range rows {
		c := 0
		run := 0
		flush := func() {
			c += run
			run = 0
		}
		for _, ch := range row {
			if ch >= '0' && ch <= '9' {
				run = run*10 + int(ch-'0')
				if c+run > b.side {
					return Position{}, fmt.Errorf("%w: rank %d too wide", ErrInvalidPosition, r)
				}
				continue
			}
			flush()
			if ch == '.' {
				c++
				continue
			}
			pc, ok := charToPiece(ch)
			if !ok {
				return Position{}, fmt.Errorf("%w: unknown piece %q", ErrInvalidPosition, ch)
			}
			if c >= b.side {
				return Position{}, fmt.Errorf("%w: rank %d too wide", ErrInvalidPosition, r)
			}
			sq := b.Index(r, c)
			if !b.Playable(sq) {
				return Position{}, fmt.Errorf("%w: piece on light square %s", ErrInvalidPosition, SquareName(sq, b.side))
			}
			b.set(sq, pc)
			c++
		}
		flush()
		if c != b.side {
			return Position{}, fmt.Errorf("%w: rank %d has %d cells, want %d", ErrInvalidPosition, r, c, b.side)
		}
	}
	var turn Color
	switch parts[1] {
	case "d":
		turn = Dark
	case "l":
		turn = Light
	default:
		return Position{}, fmt.Errorf("%w: side to move %q", ErrInvalidPosition, parts[1])
	}
	return Position{Board: b, Turn: turn}, nil
}
