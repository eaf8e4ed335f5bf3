package game

import (
	"sync"
	"time"

	"checkers/internal/checkers"
)

// GameState is one hosted game. Game is only touched while mu is held; use
// Do or View.
type GameState struct {
	ID        string
	CreatedAt time.Time

	mu        sync.Mutex
	game      *checkers.Game
	updatedAt time.Time
	version   uint64
}

// View runs fn with the game locked for reading. version is the mutation
// count the game is at, so views taken concurrently can be ordered.
func (s *GameState) View(fn func(g *checkers.Game, version uint64)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.game, s.version)
}

func (s *GameState) UpdatedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}
