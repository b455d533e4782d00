package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"xiangqi/internal/notation"
	"xiangqi/internal/uci"
	"xiangqi/internal/xiangqi"
)

// player 选一步棋；返回 false 表示认输
type player interface {
	Name() string
	Pick(ctx context.Context, g *xiangqi.Game) (xiangqi.Move, bool)
}

type randomPlayer struct{ rng *rand.Rand }

func (p randomPlayer) Name() string { return "random" }

func (p randomPlayer) Pick(_ context.Context, g *xiangqi.Game) (xiangqi.Move, bool) {
	moves := g.SafeMoves()
	if len(moves) == 0 {
		return xiangqi.Move{}, false
	}
	return moves[p.rng.Intn(len(moves))], true
}

type enginePlayer struct {
	name string
	eng  uci.Suggester
	log  *logrus.Entry
}

func (p enginePlayer) Name() string { return p.name }

func (p enginePlayer) Pick(ctx context.Context, g *xiangqi.Game) (xiangqi.Move, bool) {
	s, err := p.eng.BestMove(ctx, notation.EncodeFEN(g))
	if err != nil {
		p.log.WithError(err).Warn("engine failed to move")
		return xiangqi.Move{}, false
	}
	return s.Move, true
}

func main() {
	enginePath := flag.String("engine", "", "UCI engine binary; empty plays random moves")
	redLevel := flag.Int("red-level", 4, "engine level for red")
	blackLevel := flag.Int("black-level", 0, "engine level for black")
	games := flag.Int("games", 1, "number of games to play")
	maxMoves := flag.Int("maxmoves", 300, "half-moves before a game is called a draw")
	seed := flag.Int64("seed", time.Now().UnixNano(), "seed for the random player")
	perft := flag.Int("perft", 0, "run a move-generation benchmark to this depth instead of playing")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}
	log := logrus.WithField("app", "selfplay")

	if *perft > 0 {
		runPerft(log, *perft)
		return
	}

	ctx := context.Background()
	red, black, closeAll := buildPlayers(ctx, log, *enginePath, *redLevel, *blackLevel, *seed)
	defer closeAll()

	score := map[xiangqi.Side]int{}
	for i := 0; i < *games; i++ {
		// 每局交换先后手
		r, b := red, black
		if i%2 == 1 {
			r, b = black, red
		}
		g, winner := playGame(ctx, log, r, b, *maxMoves)
		fmt.Printf("game %d: red=%s black=%s result=%s moves=%d\n",
			i+1, r.Name(), b.Name(), resultText(winner), g.HalfMoveIndex()+1)
		switch {
		case winner == xiangqi.NoSide:
			score[xiangqi.NoSide]++
		case (winner == xiangqi.Red) == (i%2 == 0):
			score[xiangqi.Red]++
		default:
			score[xiangqi.Black]++
		}
	}
	fmt.Printf("%s: %d  %s: %d  draws: %d\n", red.Name(), score[xiangqi.Red], black.Name(), score[xiangqi.Black], score[xiangqi.NoSide])
}

func buildPlayers(ctx context.Context, log *logrus.Entry, path string, redLevel, blackLevel int, seed int64) (player, player, func()) {
	rng := rand.New(rand.NewSource(seed))
	if path == "" {
		log.WithField("seed", seed).Info("no engine, playing random moves")
		return randomPlayer{rng}, randomPlayer{rng}, func() {}
	}
	var engines []*uci.Engine
	start := func(level int) player {
		opts, err := uci.Options{Path: path, Logger: log}.WithLevel(level)
		if err != nil {
			log.WithError(err).Fatal("bad level")
		}
		eng, err := uci.Start(ctx, opts)
		if err != nil {
			log.WithError(err).Fatal("start engine")
		}
		engines = append(engines, eng)
		return enginePlayer{name: fmt.Sprintf("engine-L%d", level), eng: eng, log: log}
	}
	red, black := start(redLevel), start(blackLevel)
	return red, black, func() {
		for _, eng := range engines {
			_ = eng.Close()
		}
	}
}

func playGame(ctx context.Context, log *logrus.Entry, red, black player, maxMoves int) (*xiangqi.Game, xiangqi.Side) {
	g := xiangqi.NewGame()
	for i := 0; i < maxMoves; i++ {
		if g.Status() != xiangqi.Ongoing {
			return g, g.Winner()
		}
		p := red
		if g.SideToMove() == xiangqi.Black {
			p = black
		}
		mv, ok := p.Pick(ctx, g)
		if !ok {
			return g, g.SideToMove().Opponent()
		}
		hm, err := g.TryExecuteMove(mv)
		if err != nil {
			log.WithError(err).WithField("player", p.Name()).Warn("illegal move, forfeit")
			return g, g.SideToMove().Opponent()
		}
		log.WithFields(logrus.Fields{"ply": i + 1, "move": hm.String()}).Debug("played")
		if g.Repetitions() >= 3 {
			return g, xiangqi.NoSide
		}
	}
	return g, xiangqi.NoSide
}

func resultText(s xiangqi.Side) string {
	if s == xiangqi.NoSide {
		return "draw"
	}
	return s.String() + " wins"
}
