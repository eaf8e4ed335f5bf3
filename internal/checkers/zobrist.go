package checkers

import "sync"

const zobristCodes = 5 // occupant codes 1..4, 0 stays unused

var (
	zobristOnce sync.Once

	zobristPieces [zobristCodes][MaxSide * MaxSide]uint64
	zobristSide   uint64
)

func initZobrist() {
	zobristOnce.Do(func() {
		seed := uint64(0x9E3779B97F4A7C15)
		next := func() uint64 {
			seed += 0x9E3779B97F4A7C15
			z := seed
			z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
			z = (z ^ (z >> 27)) * 0x94D049BB133111EB
			return z ^ (z >> 31)
		}

		for code := 1; code < zobristCodes; code++ {
			for sq := 0; sq < MaxSide*MaxSide; sq++ {
				zobristPieces[code][sq] = next()
			}
		}
		zobristSide = next()
	})
}

func pieceHashKey(pc Piece, sq int) uint64 {
	if pc == Empty || sq < 0 || sq >= MaxSide*MaxSide {
		return 0
	}
	initZobrist()
	return zobristPieces[pc.Code()][sq]
}

func sideHashKey(c Color) uint64 {
	if c != Light {
		return 0
	}
	initZobrist()
	return zobristSide
}

// CalculateHash recomputes the occupancy hash from scratch.
func (b *Board) CalculateHash() uint64 {
	var h uint64
	for sq, pc := range b.cells {
		h ^= pieceHashKey(pc, sq)
	}
	return h
}

// Hash is the incrementally maintained occupancy hash.
func (b *Board) Hash() uint64 { return b.hash }
