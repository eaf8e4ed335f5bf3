package game

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"checkers/internal/checkers"
)

var ErrNotFound = errors.New("game not found")

// ChangeFunc is called after every successful mutation with the game still
// locked, so hooks observe changes in version order. It must not block and
// must not call back into View or Do.
type ChangeFunc func(s *GameState, g *checkers.Game, version uint64)

type Manager struct {
	mu       sync.RWMutex
	games    map[string]*GameState
	log      zerolog.Logger
	onChange ChangeFunc
	now      func() time.Time
}

func NewManager(log zerolog.Logger) *Manager {
	return &Manager{
		games: make(map[string]*GameState),
		log:   log,
		now:   time.Now,
	}
}

// OnChange installs the mutation hook. It must be set before serving.
func (m *Manager) OnChange(fn ChangeFunc) { m.onChange = fn }

func (m *Manager) NewGame(side int) (*GameState, error) {
	id := uuid.NewString()
	g, err := checkers.NewGame(side, checkers.WithLogger(m.log.With().Str("game", id).Logger()))
	if err != nil {
		return nil, err
	}
	now := m.now()
	s := &GameState{
		ID:        id,
		CreatedAt: now,
		game:      g,
		updatedAt: now,
	}

	m.mu.Lock()
	m.games[id] = s
	m.mu.Unlock()

	m.log.Info().Str("game", id).Int("side", side).Msg("game created")
	return s, nil
}

func (m *Manager) Get(id string) (*GameState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.games[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Do runs fn with the game locked. When fn succeeds the game counts as
// changed and the change hook fires.
func (m *Manager) Do(id string, fn func(g *checkers.Game) error) (*GameState, error) {
	s, err := m.Get(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fn(s.game); err != nil {
		return s, err
	}
	s.updatedAt = m.now()
	s.version++
	if m.onChange != nil {
		m.onChange(s, s.game, s.version)
	}
	return s, nil
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}

// Sweep drops games idle for longer than maxIdle and returns how many went.
func (m *Manager) Sweep(maxIdle time.Duration) int {
	cutoff := m.now().Add(-maxIdle)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.games {
		if s.UpdatedAt().Before(cutoff) {
			delete(m.games, id)
			n++
		}
	}
	if n > 0 {
		m.log.Info().Int("dropped", n).Msg("idle games swept")
	}
	return n
}
