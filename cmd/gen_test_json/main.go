package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"slices"
	"time"

	"github.com/sirupsen/logrus"

	"xiangqi/internal/notation"
	"xiangqi/internal/xiangqi"
)

// TestCase 给前端或其他实现做走法生成的对照数据
type TestCase struct {
	FEN     string `json:"fen"`
	InCheck bool   `json:"in_check"`
	Stage   int    `json:"stage"` // 0 = 选子，1 = 选落点
	From    string `json:"from,omitempty"`
	// Stage 0：能走的棋子所在格；Stage 1：from 的安全落点
	Squares []string `json:"squares"`
	// Stage 1：高亮落点，包括会送将的
	Highlight []string `json:"highlight,omitempty"`
	Status    string   `json:"status"`
}

func main() {
	numGames := flag.Int("games", 10, "random games to sample")
	maxMoves := flag.Int("maxmoves", 500, "half-move cap per game")
	out := flag.String("out", "move_gen_test_data.json", "output file")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))
	var testCases []TestCase

	for gi := 0; gi < *numGames; gi++ {
		g := xiangqi.NewGame()
		for moveCount := 0; moveCount < *maxMoves; moveCount++ {
			fen := notation.EncodeFEN(g)
			safe := g.SafeMoves()
			if len(safe) == 0 {
				testCases = append(testCases, TestCase{FEN: fen, InCheck: g.InCheck(), Squares: []string{}, Status: g.Status().String()})
				break
			}

			var froms []string
			for _, mv := range safe {
				froms = append(froms, mv.Start.String())
			}
			slices.Sort(froms)
			testCases = append(testCases, TestCase{
				FEN:     fen,
				InCheck: g.InCheck(),
				Stage:   0,
				Squares: slices.Compact(froms),
				Status:  g.Status().String(),
			})

			chosen := safe[rng.Intn(len(safe))]

			var ends []string
			for _, mv := range safe {
				if mv.Start == chosen.Start {
					ends = append(ends, mv.End.String())
				}
			}
			var highlight []string
			hl, _ := g.LegalMovesForSquare(chosen.Start)
			for _, mv := range hl {
				highlight = append(highlight, mv.End.String())
			}
			testCases = append(testCases, TestCase{
				FEN:       fen,
				InCheck:   g.InCheck(),
				Stage:     1,
				From:      chosen.Start.String(),
				Squares:   ends,
				Highlight: highlight,
				Status:    g.Status().String(),
			})

			if _, err := g.TryExecuteMove(chosen); err != nil {
				logrus.WithError(err).WithField("fen", fen).Error("safe move rejected")
				break
			}
		}
	}

	file, err := json.MarshalIndent(testCases, "", "  ")
	if err != nil {
		logrus.WithError(err).Fatal("marshal")
	}
	if err := os.WriteFile(*out, file, 0o644); err != nil {
		logrus.WithError(err).Fatal("write")
	}
	fmt.Printf("Generated %d test cases from %d random games to %s\n", len(testCases), *numGames, *out)
}
