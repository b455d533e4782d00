package main

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"xiangqi/internal/xiangqi"
)

// perft counts leaf nodes of the self-check-legal move tree.
func perft(b *xiangqi.Board, side xiangqi.Side, depth int) int64 {
	if depth == 0 {
		return 1
	}
	moves := xiangqi.SafeMoves(b, side)
	if depth == 1 {
		return int64(len(moves))
	}
	var n int64
	for _, mv := range moves {
		next := b.Clone()
		if err := next.ApplyMove(mv); err != nil {
			continue
		}
		n += perft(next, side.Opponent(), depth-1)
	}
	return n
}

func runPerft(log *logrus.Entry, depth int) {
	b := xiangqi.NewStartingBoard()
	for d := 1; d <= depth; d++ {
		start := time.Now()
		n := perft(b, xiangqi.Red, d)
		took := time.Since(start)
		nps := int64(float64(n) / max(took.Seconds(), 1e-9))
		fmt.Printf("perft(%d) = %d  time=%v  nps=%d\n", d, n, took, nps)
		log.WithFields(logrus.Fields{"depth": d, "nodes": n, "took": took}).Debug("perft")
	}
}
