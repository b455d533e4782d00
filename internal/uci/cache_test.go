package uci

import (
	"context"
	"errors"
	"testing"

	"xiangqi/internal/xiangqi"
)

type countingSuggester struct {
	calls int
	err   error
}

func (c *countingSuggester) BestMove(ctx context.Context, fen string) (Suggestion, error) {
	c.calls++
	if c.err != nil {
		return Suggestion{}, c.err
	}
	return Suggestion{Move: xiangqi.NewMove(xiangqi.Sq(2, 3), xiangqi.Sq(5, 3))}, nil
}

func TestCachedKeysOnBoardAndSide(t *testing.T) {
	next := &countingSuggester{}
	c := NewCached(next)
	ctx := context.Background()

	if _, err := c.BestMove(ctx, startFEN); err != nil {
		t.Fatal(err)
	}
	// 计数器不同但局面相同
	if _, err := c.BestMove(ctx, "rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR w - - 4 9"); err != nil {
		t.Fatal(err)
	}
	if next.calls != 1 || c.Len() != 1 {
		t.Fatalf("calls = %d len = %d", next.calls, c.Len())
	}
	if _, err := c.BestMove(ctx, "rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR b - - 0 1"); err != nil {
		t.Fatal(err)
	}
	if next.calls != 2 {
		t.Fatalf("side to move ignored by the cache")
	}
}

func TestCachedDoesNotStoreErrors(t *testing.T) {
	next := &countingSuggester{err: ErrNoBestMove}
	c := NewCached(next)
	for i := 0; i < 2; i++ {
		if _, err := c.BestMove(context.Background(), startFEN); !errors.Is(err, ErrNoBestMove) {
			t.Fatalf("err = %v", err)
		}
	}
	if next.calls != 2 || c.Len() != 0 {
		t.Fatalf("calls = %d len = %d", next.calls, c.Len())
	}
}
