package checkers

import (
	"fmt"

	"github.com/rs/zerolog"
)

type Phase int8

const (
	PhaseSelectPiece Phase = iota
	PhaseAwaitDestination
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseSelectPiece:
		return "select_piece"
	case PhaseAwaitDestination:
		return "await_destination"
	case PhaseGameOver:
		return "game_over"
	}
	return "unknown"
}

// MoveResult describes what one Choose call did.
type MoveResult struct {
	Mover        Color
	From         int
	To           int
	Chain        Chain
	Captured     int
	Promoted     bool
	MustContinue bool // same piece, same turn: a new tree is already offered
	TurnOver     bool
	Status       Status
}

// Game is the turn state machine. It is driven by one actor at a time and
// is not safe for concurrent use.
type Game struct {
	board  *Board
	turn   Color
	counts [2]int
	phase  Phase
	piece  int
	tree   *MoveTree
	hops   int
	status Status
	log    zerolog.Logger
}

type Option func(*Game)

func WithLogger(l zerolog.Logger) Option {
	return func(g *Game) { g.log = l }
}

// NewGame sets up the standard start position; Dark moves first.
func NewGame(side int, opts ...Option) (*Game, error) {
	b, err := NewBoard(side)
	if err != nil {
		return nil, err
	}
	b.SetupInitial()
	return newGame(b, Dark, opts), nil
}

// NewGameFromPosition starts a game from a decoded position.
func NewGameFromPosition(p Position, opts ...Option) (*Game, error) {
	if p.Board == nil {
		return nil, fmt.Errorf("%w: no board", ErrInvalidPosition)
	}
	if p.Turn != Dark && p.Turn != Light {
		return nil, fmt.Errorf("%w: side to move", ErrInvalidPosition)
	}
	return newGame(p.Board, p.Turn, opts), nil
}

func newGame(b *Board, turn Color, opts []Option) *Game {
	g := &Game{
		board: b,
		turn:  turn,
		piece: -1,
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.counts[Dark] = b.Count(Dark)
	g.counts[Light] = b.Count(Light)
	g.startTurn()
	return g
}

func (g *Game) Board() *Board        { return g.board }
func (g *Game) Turn() Color          { return g.turn }
func (g *Game) Phase() Phase         { return g.phase }
func (g *Game) Status() Status       { return g.status }
func (g *Game) Count(c Color) int    { return g.counts[c] }
func (g *Game) SelectedSquare() int  { return g.piece }
func (g *Game) Tree() *MoveTree      { return g.tree }
func (g *Game) Position() Position   { return Position{Board: g.board, Turn: g.turn} }
func (g *Game) Hash() uint64         { return g.board.Hash() ^ sideHashKey(g.turn) }
func (g *Game) MustCaptureNow() bool { return g.board.MustCapture(g.turn) }

// Continuing reports whether the turn is in the middle of a capture chain.
func (g *Game) Continuing() bool { return g.phase == PhaseAwaitDestination && g.hops > 0 }

// Destinations lists the squares currently offered for the selected piece.
func (g *Game) Destinations() []int {
	if g.tree == nil {
		return nil
	}
	return g.tree.Destinations(g.board)
}

// MovablePieces lists the squares Select would accept right now.
func (g *Game) MovablePieces() []int {
	if g.phase == PhaseGameOver {
		return nil
	}
	if g.Continuing() {
		return []int{g.piece}
	}
	must := g.board.MustCapture(g.turn)
	var out []int
	for sq, pc := range g.board.cells {
		if pc == Empty || pc.Color() != g.turn {
			continue
		}
		if must && !g.board.HasCapture(sq) {
			continue
		}
		if g.board.CanMove(sq) {
			out = append(out, sq)
		}
	}
	return out
}

// Select picks the piece to move and offers its destinations. While a
// capture exists anywhere for the side to move, only capturing pieces may be
// picked. Picking another piece before any hop replaces the selection.
func (g *Game) Select(sq int) (int, error) {
	switch g.phase {
	case PhaseGameOver:
		return 0, ErrGameOver
	case PhaseAwaitDestination:
		if g.hops > 0 {
			return 0, ErrMustContinue
		}
	}
	b := g.board
	if !b.Playable(sq) {
		return 0, fmt.Errorf("%w: not a playable square", ErrInvalidSelection)
	}
	pc := b.At(sq)
	if pc == Empty || pc.Color() != g.turn {
		return 0, fmt.Errorf("%w: no %s piece on %s", ErrInvalidSelection, g.turn, SquareName(sq, b.side))
	}
	if b.MustCapture(g.turn) && !b.HasCapture(sq) {
		return 0, fmt.Errorf("%w: %w", ErrInvalidSelection, ErrMustCapture)
	}
	tree, err := b.BuildTree(sq)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidSelection, err)
	}

	g.dropSelection()
	offered := b.MarkSquares(tree)
	if offered == 0 {
		b.UnmarkSquares(tree)
		g.phase = PhaseSelectPiece
		return 0, fmt.Errorf("%w: %s", ErrNoLegalMove, SquareName(sq, b.side))
	}
	g.piece = sq
	g.tree = tree
	g.phase = PhaseAwaitDestination
	b.setSelected(sq)
	return offered, nil
}

// Cancel drops the current selection. Once a hop has been executed the turn
// must be finished with the same piece.
func (g *Game) Cancel() error {
	switch g.phase {
	case PhaseGameOver:
		return ErrGameOver
	case PhaseSelectPiece:
		return nil
	}
	if g.hops > 0 {
		return ErrMustContinue
	}
	g.dropSelection()
	g.phase = PhaseSelectPiece
	return nil
}

func (g *Game) dropSelection() {
	if g.tree != nil {
		g.board.UnmarkSquares(g.tree)
	}
	g.tree = nil
	g.piece = -1
	g.board.setSelected(-1)
}

// Choose resolves dst against the offered tree and executes the resulting
// chain. Rejected destinations leave the game untouched.
func (g *Game) Choose(dst int) (MoveResult, error) {
	switch g.phase {
	case PhaseGameOver:
		return MoveResult{}, ErrGameOver
	case PhaseSelectPiece:
		return MoveResult{}, fmt.Errorf("%w: no piece selected", ErrInvalidSelection)
	}
	b := g.board
	chain, err := g.tree.Resolve(b, dst)
	if err != nil {
		return MoveResult{}, err
	}

	from := g.piece
	capture := g.tree.Capture
	b.UnmarkSquares(g.tree)
	g.tree = nil

	cur, err := g.execute(from, chain)
	if err != nil {
		return MoveResult{}, err
	}
	g.hops += len(chain.Hops)

	res := MoveResult{
		Mover:    g.turn,
		From:     from,
		To:       cur,
		Chain:    chain,
		Captured: chain.Captures(),
	}
	g.log.Debug().
		Str("color", g.turn.String()).
		Str("from", SquareName(from, b.side)).
		Str("to", SquareName(cur, b.side)).
		Int("captured", res.Captured).
		Bool("partial", chain.Partial).
		Msg("chain executed")

	if capture && b.HasCapture(cur) {
		g.tree = b.buildCaptureTree(cur)
		b.MarkSquares(g.tree)
		g.piece = cur
		res.MustContinue = true
		res.Status = g.status
		return res, nil
	}

	res.Promoted = g.promote(cur)
	g.endTurn()
	res.TurnOver = true
	res.Status = g.status
	return res, nil
}

func (g *Game) execute(from int, chain Chain) (int, error) {
	b := g.board
	enemy := g.turn.Opponent()
	cur := from
	for _, h := range chain.Hops {
		if err := b.Move(cur, h.Landing); err != nil {
			return cur, fmt.Errorf("execute hop: %w", err)
		}
		cur = h.Landing
		if h.Victim < 0 {
			continue
		}
		if _, err := b.Remove(h.Victim); err != nil {
			return cur, fmt.Errorf("execute hop: %w", err)
		}
		g.counts[enemy]--
	}
	return cur, nil
}

func (g *Game) promote(sq int) bool {
	b := g.board
	pc := b.At(sq)
	if pc.Rank() != Man || b.RowOf(sq) != b.FarRow(pc.Color()) {
		return false
	}
	b.set(sq, pc.Crowned())
	g.log.Debug().Str("square", SquareName(sq, b.side)).Msg("promoted")
	return true
}

func (g *Game) endTurn() {
	g.board.setSelected(-1)
	g.piece = -1
	g.hops = 0
	g.turn = g.turn.Opponent()
	g.startTurn()
}

// startTurn decides whether the side to move can still play.
func (g *Game) startTurn() {
	g.phase = PhaseSelectPiece
	g.status = Status{}
	switch {
	case g.counts[g.turn] == 0:
		g.status = Status{Outcome: wonBy(g.turn.Opponent()), Reason: "elimination"}
	case g.board.IsStuck(g.turn):
		g.status = Status{Outcome: wonBy(g.turn.Opponent()), Reason: "stuck"}
	default:
		return
	}
	g.phase = PhaseGameOver
	g.log.Debug().Str("outcome", g.status.Outcome.String()).Str("reason", g.status.Reason).Msg("game over")
}
