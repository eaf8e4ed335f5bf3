package checkers

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStartPositionSimpleMoves(t *testing.T) {
	g, err := NewGame(8)
	require.NoError(t, err)
	require.False(t, g.MustCaptureNow())

	c3 := sq(t, 8, "C3")
	n, err := g.Select(c3)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Equal(t, []string{"B4", "D4"}, names(8, g.Destinations()))
	require.Equal(t, c3, g.Board().Selected())
}

func TestManSingleCapture(t *testing.T) {
	g := setupGame(t, 8, Dark, map[string]Piece{
		"C3": dm,
		"D4": lm,
		"H8": lm,
	})
	require.True(t, g.MustCaptureNow())

	tree, err := g.Board().BuildTree(sq(t, 8, "C3"))
	require.NoError(t, err)
	require.True(t, tree.Capture)
	require.Equal(t, 1, tree.Size())
	node := tree.Node(tree.Root().Children[0])
	require.Equal(t, sq(t, 8, "E5"), node.Square)
	require.Equal(t, sq(t, 8, "D4"), node.Victim)

	_, err = g.Select(sq(t, 8, "C3"))
	require.NoError(t, err)
	res, err := g.Choose(sq(t, 8, "E5"))
	require.NoError(t, err)
	require.Equal(t, 1, res.Captured)
	require.True(t, res.TurnOver)
	require.Equal(t, Empty, g.Board().At(sq(t, 8, "D4")))
	require.Equal(t, Empty, g.Board().At(sq(t, 8, "C3")))
	require.Equal(t, dm, g.Board().At(sq(t, 8, "E5")))
	require.Equal(t, 1, g.Count(Light))
	require.Equal(t, 1, g.Count(Dark))
	require.Equal(t, Light, g.Turn())
}

func TestKingLongCapture(t *testing.T) {
	want := []string{"D4", "E5", "F6", "G7", "H8"}
	for _, dst := range want {
		t.Run(dst, func(t *testing.T) {
			g := setupGame(t, 8, Dark, map[string]Piece{
				"A1": dk,
				"C3": lm,
				"A7": lm,
			})
			b := g.Board()
			tree, err := b.BuildTree(sq(t, 8, "A1"))
			require.NoError(t, err)
			require.Equal(t, len(want), tree.Size())
			for _, id := range tree.Root().Children {
				require.Equal(t, sq(t, 8, "C3"), tree.Node(id).Victim)
			}

			n, err := g.Select(sq(t, 8, "A1"))
			require.NoError(t, err)
			require.Equal(t, len(want), n)
			require.Equal(t, want, names(8, g.Destinations()))

			res, err := g.Choose(sq(t, 8, dst))
			require.NoError(t, err)
			require.Len(t, res.Chain.Hops, 1)
			require.Equal(t, dk, b.At(sq(t, 8, dst)))
			require.Equal(t, Empty, b.At(sq(t, 8, "C3")))
			require.Equal(t, 1, g.Count(Light))
			require.True(t, res.TurnOver)
		})
	}
}

func TestKingSlideLeavesAreIndependent(t *testing.T) {
	b := setupBoard(t, 8, map[string]Piece{"D4": dk, "F6": dm})
	tree, err := b.BuildTree(sq(t, 8, "D4"))
	require.NoError(t, err)
	require.False(t, tree.Capture)
	for _, id := range tree.Root().Children {
		require.Empty(t, tree.Node(id).Children)
	}
	// A1..C3, E5 (F6 blocks), A7..C5, E3..G1
	require.ElementsMatch(t,
		[]string{"A7", "B6", "C5", "E5", "E3", "F2", "G1", "C3", "B2", "A1"},
		names(8, tree.Destinations(b)))
}

func TestKingContinuesFromChosenLanding(t *testing.T) {
	pieces := map[string]Piece{
		"A1": dk,
		"C3": lm,
		"F4": lm,
		"A7": lm,
	}
	g := setupGame(t, 8, Dark, pieces)
	b := g.Board()

	tree, err := b.BuildTree(sq(t, 8, "A1"))
	require.NoError(t, err)
	require.Equal(t, 7, tree.Size())

	_, err = g.Select(sq(t, 8, "A1"))
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"D4", "E5", "F6", "G7", "H8", "G3", "H2"}, names(8, g.Destinations()))

	// a full route in one pick
	res, err := g.Choose(sq(t, 8, "H2"))
	require.NoError(t, err)
	require.Equal(t, []Hop{
		{Landing: sq(t, 8, "E5"), Victim: sq(t, 8, "C3")},
		{Landing: sq(t, 8, "H2"), Victim: sq(t, 8, "F4")},
	}, res.Chain.Hops)
	require.Equal(t, 2, res.Captured)
	require.Equal(t, 1, g.Count(Light))
	require.True(t, res.TurnOver)

	// stopping on the junction keeps the turn
	g = setupGame(t, 8, Dark, pieces)
	_, err = g.Select(sq(t, 8, "A1"))
	require.NoError(t, err)
	res, err = g.Choose(sq(t, 8, "E5"))
	require.NoError(t, err)
	require.True(t, res.MustContinue)
	require.False(t, res.TurnOver)
	require.Equal(t, Dark, g.Turn())
	require.Equal(t, []string{"G3", "H2"}, names(8, g.Destinations()))
	require.ErrorIs(t, g.Cancel(), ErrMustContinue)
	_, err = g.Select(sq(t, 8, "E5"))
	require.ErrorIs(t, err, ErrMustContinue)

	res, err = g.Choose(sq(t, 8, "G3"))
	require.NoError(t, err)
	require.True(t, res.TurnOver)
	require.Equal(t, 1, g.Count(Light))
}

// Two equally long routes lead to C7: over D4 then D6, or over B4 then B6.
func ambiguousGame(t *testing.T) *Game {
	return setupGame(t, 8, Dark, map[string]Piece{
		"C3": dm,
		"B4": lm,
		"D4": lm,
		"B6": lm,
		"D6": lm,
	})
}

func TestAmbiguousDestinationRejected(t *testing.T) {
	g := ambiguousGame(t)
	b := g.Board()
	before := g.Position().Encode()

	_, err := g.Select(sq(t, 8, "C3"))
	require.NoError(t, err)
	require.Equal(t, 2, b.Highlight(sq(t, 8, "C7")))
	require.Equal(t, 2, b.Highlight(sq(t, 8, "E5")))
	require.Equal(t, 2, b.Highlight(sq(t, 8, "A5")))
	require.Zero(t, b.Highlight(sq(t, 8, "C3")), "origin is never offered")

	for i := 0; i < 3; i++ {
		_, err = g.Choose(sq(t, 8, "C7"))
		require.ErrorIs(t, err, ErrAmbiguousDestination)
	}
	require.Equal(t, before, g.Position().Encode())
	require.Equal(t, PhaseAwaitDestination, g.Phase())

	_, err = g.Choose(sq(t, 8, "F2"))
	require.ErrorIs(t, err, ErrIllegalDestination)
}

func TestAmbiguousNeighbourTakesOneHop(t *testing.T) {
	g := ambiguousGame(t)
	_, err := g.Select(sq(t, 8, "C3"))
	require.NoError(t, err)

	res, err := g.Choose(sq(t, 8, "E5"))
	require.NoError(t, err)
	require.True(t, res.Chain.Partial)
	require.Len(t, res.Chain.Hops, 1)
	require.True(t, res.MustContinue)
	require.Equal(t, 3, g.Count(Light))

	// the route is unambiguous now
	res, err = g.Choose(sq(t, 8, "C7"))
	require.NoError(t, err)
	require.False(t, res.Chain.Partial)
	require.True(t, res.MustContinue)

	res, err = g.Choose(sq(t, 8, "C3"))
	require.NoError(t, err)
	require.Len(t, res.Chain.Hops, 2)
	require.True(t, res.TurnOver)
	require.Zero(t, g.Count(Light))
	require.Equal(t, 1, g.Count(Dark))
	require.Equal(t, DarkWon, g.Status().Outcome)
	require.Equal(t, "elimination", g.Status().Reason)
	require.Equal(t, PhaseGameOver, g.Phase())

	_, err = g.Select(sq(t, 8, "C3"))
	require.ErrorIs(t, err, ErrGameOver)
}

func TestPromotionAfterFullChainOnly(t *testing.T) {
	pieces := map[string]Piece{
		"B6": dm,
		"C7": lm,
		"E7": lm,
		"H2": lm,
	}
	g := setupGame(t, 8, Dark, pieces)
	b := g.Board()
	_, err := g.Select(sq(t, 8, "B6"))
	require.NoError(t, err)

	res, err := g.Choose(sq(t, 8, "D8"))
	require.NoError(t, err)
	require.True(t, res.MustContinue)
	require.False(t, res.Promoted)
	require.Equal(t, dm, b.At(sq(t, 8, "D8")), "no promotion mid-chain")

	res, err = g.Choose(sq(t, 8, "F6"))
	require.NoError(t, err)
	require.True(t, res.TurnOver)
	require.False(t, res.Promoted)
	require.Equal(t, dm, b.At(sq(t, 8, "F6")))

	g = setupGame(t, 8, Dark, map[string]Piece{"B6": dm, "C7": lm, "H2": lm})
	_, err = g.Select(sq(t, 8, "B6"))
	require.NoError(t, err)
	res, err = g.Choose(sq(t, 8, "D8"))
	require.NoError(t, err)
	require.True(t, res.Promoted)
	require.Equal(t, dk, g.Board().At(sq(t, 8, "D8")))
}

func TestSimpleMovePromotesLight(t *testing.T) {
	g := setupGame(t, 8, Light, map[string]Piece{"B2": lm, "H8": dm})
	_, err := g.Select(sq(t, 8, "B2"))
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"A1", "C1"}, names(8, g.Destinations()))
	res, err := g.Choose(sq(t, 8, "C1"))
	require.NoError(t, err)
	require.True(t, res.Promoted)
	require.Equal(t, lk, g.Board().At(sq(t, 8, "C1")))
}

func TestMarkUnmarkRestoresHighlights(t *testing.T) {
	g := ambiguousGame(t)
	b := g.Board()
	tree, err := b.BuildTree(sq(t, 8, "C3"))
	require.NoError(t, err)
	require.Equal(t, 3, b.MarkSquares(tree))
	b.UnmarkSquares(tree)
	requireNoHighlights(t, b)

	_, err = g.Select(sq(t, 8, "C3"))
	require.NoError(t, err)
	require.NoError(t, g.Cancel())
	requireNoHighlights(t, b)
	require.Equal(t, -1, b.Selected())
}

func randomBoard(r *rand.Rand, side int) *Board {
	b, _ := NewBoard(side)
	for s := 0; s < b.NumSquares(); s++ {
		if !b.Playable(s) {
			continue
		}
		switch r.Intn(6) {
		case 0:
			b.set(s, dm)
		case 1:
			b.set(s, lm)
		case 2:
			if r.Intn(3) == 0 {
				b.set(s, dk)
			} else {
				b.set(s, lk)
			}
		}
	}
	return b
}

func TestHasCaptureMatchesCaptureTree(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 300; i++ {
		b := randomBoard(r, 6+2*r.Intn(3))
		for s := 0; s < b.NumSquares(); s++ {
			if b.At(s) == Empty {
				continue
			}
			tree := b.buildCaptureTree(s)
			if b.HasCapture(s) != (tree.Size() > 0) {
				t.Fatalf("board %q square %s: HasCapture=%v tree size=%d",
					Position{Board: b, Turn: Dark}.Encode(), SquareName(s, b.Side()), b.HasCapture(s), tree.Size())
			}
		}
	}
}

func TestMustCaptureHidesSimpleMoves(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	checked := 0
	for i := 0; i < 300; i++ {
		b := randomBoard(r, 8)
		for _, c := range []Color{Dark, Light} {
			if !b.MustCapture(c) || b.Count(c.Opponent()) == 0 {
				continue
			}
			g, err := NewGameFromPosition(Position{Board: b, Turn: c})
			require.NoError(t, err)
			for _, s := range g.MovablePieces() {
				require.True(t, b.HasCapture(s))
			}
			for s := 0; s < b.NumSquares(); s++ {
				pc := b.At(s)
				if pc == Empty || pc.Color() != c || b.HasCapture(s) {
					continue
				}
				_, err := g.Select(s)
				require.ErrorIs(t, err, ErrMustCapture)
				require.ErrorIs(t, err, ErrInvalidSelection)
				checked++
			}
		}
	}
	require.Positive(t, checked)
}

func landings(t *testing.T, tree *MoveTree, side int, square string) []string {
	t.Helper()
	var victims []string
	for id := 1; id <= tree.Size(); id++ {
		n := tree.Node(NodeID(id))
		if n.Square == sq(t, side, square) {
			victims = append(victims, SquareName(n.Victim, side))
		}
	}
	return victims
}

func TestKingCannotJumpTwoInARow(t *testing.T) {
	g := setupGame(t, 8, Dark, map[string]Piece{
		"A1": dk,
		"C3": lm,
		"D4": lm,
	})
	b := g.Board()
	require.False(t, b.HasCapture(sq(t, 8, "A1")))
	require.False(t, g.MustCaptureNow())

	tree, err := b.BuildTree(sq(t, 8, "A1"))
	require.NoError(t, err)
	require.False(t, tree.Capture)
	require.Equal(t, []string{"B2"}, names(8, tree.Destinations(b)))
}

func TestCaptureSearchTreatsOriginAsEmpty(t *testing.T) {
	b := ambiguousGame(t).Board()
	tree, err := b.BuildTree(sq(t, 8, "C3"))
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"B4", "D4"}, landings(t, tree, 8, "C3"),
		"a man lands back on its own square from both sides")

	b = setupBoard(t, 8, map[string]Piece{
		"C3": dk,
		"B4": lm,
		"D4": lm,
		"B6": lm,
		"D6": lm,
	})
	tree, err = b.BuildTree(sq(t, 8, "C3"))
	require.NoError(t, err)
	require.Equal(t, []string{"B4"}, landings(t, tree, 8, "D2"), "slide over the origin after B4")
	require.Equal(t, []string{"D4"}, landings(t, tree, 8, "B2"), "slide over the origin after D4")
	dests := names(8, tree.Destinations(b))
	require.Subset(t, dests, []string{"A1", "B2", "D2", "E1"})
	require.NotContains(t, dests, "C3")
}

func TestVictimIsJumpedOnce(t *testing.T) {
	b := setupBoard(t, 8, map[string]Piece{
		"A1": dk,
		"C3": lm,
		"F4": lm,
		"F2": lm,
	})
	tree, err := b.BuildTree(sq(t, 8, "A1"))
	require.NoError(t, err)

	// E1 is reached over C3, F4 and F2; going on over C3 again would land on B4 or A5
	require.Equal(t, []string{"F2"}, landings(t, tree, 8, "E1"))
	require.Empty(t, landings(t, tree, 8, "B4"))
	require.Empty(t, landings(t, tree, 8, "A5"))

	for id := 1; id <= tree.Size(); id++ {
		seen := make(map[int]bool)
		for n := tree.Node(NodeID(id)); n.Parent != noNode; n = tree.Node(n.Parent) {
			require.False(t, seen[n.Victim], "victim %s taken twice", SquareName(n.Victim, 8))
			seen[n.Victim] = true
		}
	}
}

func TestKingSiblingLandingsAreOneRoute(t *testing.T) {
	g := setupGame(t, 8, Dark, map[string]Piece{
		"A1": dk,
		"C3": lm,
		"F6": lm,
		"A7": lm,
	})
	b := g.Board()
	_, err := g.Select(sq(t, 8, "A1"))
	require.NoError(t, err)
	// G7 is reached over F6 from both D4 and E5
	require.Equal(t, 2, b.Highlight(sq(t, 8, "G7")))

	res, err := g.Choose(sq(t, 8, "G7"))
	require.NoError(t, err)
	require.False(t, res.Chain.Partial)
	require.Equal(t, []Hop{
		{Landing: sq(t, 8, "D4"), Victim: sq(t, 8, "C3")},
		{Landing: sq(t, 8, "G7"), Victim: sq(t, 8, "F6")},
	}, res.Chain.Hops)
	require.True(t, res.TurnOver)
	require.Equal(t, 1, g.Count(Light))
}

func TestLargeBoardCaptureTreeIsBounded(t *testing.T) {
	const side = MaxSide
	for seed := int64(1); seed <= 4; seed++ {
		r := rand.New(rand.NewSource(seed))
		b, err := NewBoard(side)
		require.NoError(t, err)
		var dark []int
		for s := 0; s < b.NumSquares(); s++ {
			if !b.Playable(s) {
				continue
			}
			dark = append(dark, s)
			if r.Intn(5) == 0 {
				b.set(s, lm)
			}
		}
		king := dark[r.Intn(len(dark))]
		b.set(king, dk)
		if b.Count(Light) == 0 {
			continue
		}

		g, err := NewGameFromPosition(Position{Board: b, Turn: Dark})
		require.NoError(t, err)
		if g.Phase() == PhaseGameOver {
			continue
		}
		_, err = g.Select(king)
		require.NoError(t, err, "seed %d", seed)
		require.LessOrEqual(t, g.Tree().Size(), maxCaptureNodes+4*side, "seed %d", seed)
		require.Equal(t, b.HasCapture(king), g.Tree().Capture)

		// finish the turn one first hop at a time
		for hops := 0; ; hops++ {
			require.Less(t, hops, b.NumSquares(), "seed %d: chain never ends", seed)
			tree := g.Tree()
			first := tree.Node(tree.Root().Children[0]).Square
			res, err := g.Choose(first)
			require.NoError(t, err, "seed %d", seed)
			require.LessOrEqual(t, len(res.Chain.Hops), 1)
			require.Equal(t, b.Count(Light), g.Count(Light))
			if res.TurnOver {
				break
			}
			require.True(t, res.MustContinue)
			require.LessOrEqual(t, g.Tree().Size(), maxCaptureNodes+4*side, "seed %d", seed)
		}
	}
}
