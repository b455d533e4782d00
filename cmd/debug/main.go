package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"xiangqi/internal/notation"
	"xiangqi/internal/xiangqi"
)

func main() {
	fen := flag.String("fen", notation.StartFEN, "position to inspect")
	moves := flag.String("moves", "", "space separated moves to play first, e.g. \"b3e3 h10g8\"")
	square := flag.String("square", "", "also list the highlighted moves of this square")
	flag.Parse()

	g, err := notation.NewGameFromFEN(*fen)
	if err != nil {
		logrus.WithError(err).Fatal("bad -fen")
	}
	if err := notation.ReplayMoves(g, strings.Fields(*moves)); err != nil {
		logrus.WithError(err).Fatal("bad -moves")
	}

	b := g.Board()
	side := g.SideToMove()
	fmt.Println(b)
	fmt.Println("FEN:", notation.EncodeFEN(g))
	fmt.Printf("To move: %s  in check: %v  status: %s\n", side, g.InCheck(), g.Status())
	fmt.Println("Geometric moves:", xiangqi.CountMoves(b.LegalMovesBySide(side)))
	safe := g.SafeMoves()
	fmt.Println("Safe moves:", len(safe))
	for _, mv := range safe {
		fmt.Print(mv, " ")
	}
	fmt.Println()

	if *square != "" {
		sq, err := xiangqi.ParseSquare(*square)
		if err != nil {
			logrus.WithError(err).Fatal("bad -square")
		}
		hl, ok := g.LegalMovesForSquare(sq)
		if !ok {
			fmt.Printf("%s: nothing to highlight\n", sq)
			os.Exit(0)
		}
		fmt.Printf("%s highlights:", sq)
		for _, mv := range hl {
			fmt.Print(" ", mv.End)
		}
		fmt.Println()
	}
}
