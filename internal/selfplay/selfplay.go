// Package selfplay plays random legal games as a soak test of the rules:
// every executed chain is checked against the board, and a game ends on a
// win, on the turn cap or on threefold repetition.
package selfplay

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"checkers/internal/checkers"
)

var ErrInconsistent = errors.New("selfplay: inconsistent game state")

const (
	EndTurnCap    = "turn_cap"
	EndRepetition = "repetition"
)

type Options struct {
	Side     int
	Games    int
	MaxTurns int
	Workers  int
	Seed     int64
}

type GameResult struct {
	Outcome  checkers.Outcome
	Reason   string // win reason, or EndTurnCap / EndRepetition
	Turns    int
	Captures int
}

type Report struct {
	Games     int
	DarkWins  int
	LightWins int
	Draws     int
	Turns     int
	Captures  int
	Elapsed   time.Duration
}

func (r Report) GamesPerSecond() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Games) / r.Elapsed.Seconds()
}

func (r *Report) add(res GameResult) {
	r.Games++
	r.Turns += res.Turns
	r.Captures += res.Captures
	switch res.Outcome {
	case checkers.DarkWon:
		r.DarkWins++
	case checkers.LightWon:
		r.LightWins++
	default:
		r.Draws++
	}
}

// PlayGame plays one random game to the end.
func PlayGame(rng *rand.Rand, side, maxTurns int) (GameResult, error) {
	g, err := checkers.NewGame(side)
	if err != nil {
		return GameResult{}, err
	}
	var res GameResult
	seen := map[uint64]int{g.Hash(): 1}

	for res.Turns < maxTurns {
		if st := g.Status(); st.Over() {
			res.Outcome, res.Reason = st.Outcome, st.Reason
			return res, nil
		}
		captured, err := playTurn(rng, g)
		if err != nil {
			return res, fmt.Errorf("turn %d: %w", res.Turns+1, err)
		}
		res.Turns++
		res.Captures += captured

		h := g.Hash()
		seen[h]++
		if seen[h] >= 3 {
			res.Reason = EndRepetition
			return res, nil
		}
	}
	if st := g.Status(); st.Over() {
		res.Outcome, res.Reason = st.Outcome, st.Reason
		return res, nil
	}
	res.Reason = EndTurnCap
	return res, nil
}

// playTurn picks a random movable piece and random destinations until the
// turn passes. It returns the number of pieces captured.
func playTurn(rng *rand.Rand, g *checkers.Game) (int, error) {
	movable := g.MovablePieces()
	if len(movable) == 0 {
		return 0, fmt.Errorf("%w: no movable piece in %q", ErrInconsistent, g.Position().Encode())
	}
	if _, err := g.Select(movable[rng.Intn(len(movable))]); err != nil {
		return 0, err
	}

	captured := 0
	for {
		dsts := g.Destinations()
		if len(dsts) == 0 {
			return captured, fmt.Errorf("%w: nothing offered", ErrInconsistent)
		}
		res, err := g.Choose(dsts[rng.Intn(len(dsts))])
		if errors.Is(err, checkers.ErrAmbiguousDestination) {
			continue
		}
		if err != nil {
			return captured, err
		}
		captured += res.Captured
		if err := verify(g); err != nil {
			return captured, err
		}
		if res.TurnOver {
			return captured, nil
		}
	}
}

func verify(g *checkers.Game) error {
	b := g.Board()
	for _, c := range []checkers.Color{checkers.Dark, checkers.Light} {
		if g.Count(c) != b.Count(c) {
			return fmt.Errorf("%w: %s count %d, board has %d", ErrInconsistent, c, g.Count(c), b.Count(c))
		}
	}
	if b.Hash() != b.CalculateHash() {
		return fmt.Errorf("%w: stale hash", ErrInconsistent)
	}
	return nil
}

// Run plays opts.Games games across opts.Workers goroutines. Each worker
// has its own seeded source so a run is reproducible per worker.
func Run(ctx context.Context, opts Options, log zerolog.Logger) (Report, error) {
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.MaxTurns <= 0 {
		opts.MaxTurns = 500
	}
	if !checkers.ValidSide(opts.Side) {
		return Report{}, fmt.Errorf("%w: %d", checkers.ErrInvalidSide, opts.Side)
	}

	start := time.Now()
	jobs := make(chan int)
	var (
		mu     sync.Mutex
		report Report
	)
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		defer close(jobs)
		for i := 0; i < opts.Games; i++ {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})
	for w := 0; w < opts.Workers; w++ {
		rng := rand.New(rand.NewSource(opts.Seed + int64(w)))
		eg.Go(func() error {
			for i := range jobs {
				res, err := PlayGame(rng, opts.Side, opts.MaxTurns)
				if err != nil {
					return fmt.Errorf("game %d: %w", i, err)
				}
				log.Debug().
					Int("game", i).
					Str("outcome", res.Outcome.String()).
					Str("reason", res.Reason).
					Int("turns", res.Turns).
					Msg("selfplay game finished")
				mu.Lock()
				report.add(res)
				mu.Unlock()
			}
			return nil
		})
	}
	err := eg.Wait()
	report.Elapsed = time.Since(start)
	return report, err
}
