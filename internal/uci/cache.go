package uci

import (
	"context"
	"strings"
	"sync"
)

const suggestionCacheCap = 50_000

// Cached remembers suggestions per position so that undo and replays do not
// pay for a second search. Only the board and side fields of the FEN form
// the key.
type Cached struct {
	next Suggester

	mu sync.RWMutex
	m  map[string]Suggestion
}

func NewCached(next Suggester) *Cached {
	return &Cached{next: next, m: make(map[string]Suggestion, 1<<10)}
}

func cacheKey(fen string) string {
	f := strings.Fields(fen)
	if len(f) >= 2 {
		return f[0] + " " + f[1]
	}
	return fen
}

func (c *Cached) BestMove(ctx context.Context, fen string) (Suggestion, error) {
	key := cacheKey(fen)
	c.mu.RLock()
	s, ok := c.m[key]
	c.mu.RUnlock()
	if ok {
		return s, nil
	}

	s, err := c.next.BestMove(ctx, fen)
	if err != nil {
		return s, err
	}
	c.mu.Lock()
	if len(c.m) > suggestionCacheCap {
		c.m = make(map[string]Suggestion, 1<<10)
	}
	c.m[key] = s
	c.mu.Unlock()
	return s, nil
}

// Len reports the number of cached positions.
func (c *Cached) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}
