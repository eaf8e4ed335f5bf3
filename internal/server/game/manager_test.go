package game

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checkers/internal/checkers"
)

func TestManagerLifecycle(t *testing.T) {
	m := NewManager(zerolog.Nop())
	var changed []string
	var versions []uint64
	m.OnChange(func(s *GameState, _ *checkers.Game, version uint64) {
		changed = append(changed, s.ID)
		versions = append(versions, version)
	})

	s, err := m.NewGame(8)
	require.NoError(t, err)
	require.Equal(t, 1, m.Len())

	got, err := m.Get(s.ID)
	require.NoError(t, err)
	require.Same(t, s, got)

	_, err = m.Get("nope")
	require.ErrorIs(t, err, ErrNotFound)

	c3, err := checkers.ParseSquare("C3", 8)
	require.NoError(t, err)
	_, err = m.Do(s.ID, func(g *checkers.Game) error {
		_, err := g.Select(c3)
		return err
	})
	require.NoError(t, err)
	require.Equal(t, []string{s.ID}, changed)
	require.Equal(t, []uint64{1}, versions)

	boom := errors.New("boom")
	_, err = m.Do(s.ID, func(*checkers.Game) error { return boom })
	require.ErrorIs(t, err, boom)
	require.Len(t, changed, 1, "failed mutations do not notify")

	s.View(func(g *checkers.Game, version uint64) {
		require.Equal(t, checkers.PhaseAwaitDestination, g.Phase())
		require.Equal(t, uint64(1), version)
	})
}

func TestManagerRejectsBadSide(t *testing.T) {
	m := NewManager(zerolog.Nop())
	_, err := m.NewGame(30)
	require.ErrorIs(t, err, checkers.ErrInvalidSide)
	require.Zero(t, m.Len())
}

func TestManagerSweep(t *testing.T) {
	m := NewManager(zerolog.Nop())
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return clock }

	old, err := m.NewGame(8)
	require.NoError(t, err)
	clock = clock.Add(time.Hour)
	fresh, err := m.NewGame(8)
	require.NoError(t, err)

	require.Equal(t, 1, m.Sweep(30*time.Minute))
	_, err = m.Get(old.ID)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = m.Get(fresh.ID)
	require.NoError(t, err)
}

func TestManagerChangesArriveInVersionOrder(t *testing.T) {
	m := NewManager(zerolog.Nop())
	var seen []uint64
	m.OnChange(func(_ *GameState, _ *checkers.Game, version uint64) {
		seen = append(seen, version)
	})
	s, err := m.NewGame(8)
	require.NoError(t, err)
	c3, err := checkers.ParseSquare("C3", 8)
	require.NoError(t, err)

	const workers = 16
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := m.Do(s.ID, func(g *checkers.Game) error {
				_, err := g.Select(c3)
				return err
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	require.Len(t, seen, workers)
	for i, v := range seen {
		require.Equal(t, uint64(i+1), v)
	}
	s.View(func(_ *checkers.Game, version uint64) {
		require.Equal(t, uint64(workers), version)
	})
}
