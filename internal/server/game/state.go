package game

import (
	"sync"
	"time"

	"xiangqi/internal/xiangqi"
)

// Session is one game held by the Manager. The Game inside is not
// goroutine-safe, so every access goes through Do.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu        sync.Mutex
	game      *xiangqi.Game
	updatedAt time.Time
}

// Do runs fn with exclusive access to the session's game.
func (s *Session) Do(fn func(g *xiangqi.Game) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := fn(s.game)
	s.updatedAt = time.Now()
	return err
}

func (s *Session) UpdatedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}
