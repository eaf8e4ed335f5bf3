package checkers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	dm = MakePiece(Dark, Man)
	dk = MakePiece(Dark, King)
	lm = MakePiece(Light, Man)
	lk = MakePiece(Light, King)
)

func sq(t *testing.T, side int, name string) int {
	t.Helper()
	idx, err := ParseSquare(name, side)
	require.NoError(t, err, "square %s", name)
	return idx
}

func names(side int, squares []int) []string {
	out := make([]string, len(squares))
	for i, s := range squares {
		out[i] = SquareName(s, side)
	}
	return out
}

func setupBoard(t *testing.T, side int, pieces map[string]Piece) *Board {
	t.Helper()
	b, err := NewBoard(side)
	require.NoError(t, err)
	for name, pc := range pieces {
		require.NoError(t, b.Place(sq(t, side, name), pc), "place %s", name)
	}
	return b
}

func setupGame(t *testing.T, side int, turn Color, pieces map[string]Piece) *Game {
	t.Helper()
	g, err := NewGameFromPosition(Position{Board: setupBoard(t, side, pieces), Turn: turn})
	require.NoError(t, err)
	return g
}

func requireNoHighlights(t *testing.T, b *Board) {
	t.Helper()
	for s := 0; s < b.NumSquares(); s++ {
		require.Zero(t, b.Highlight(s), "highlight left on %s", SquareName(s, b.Side()))
	}
}
