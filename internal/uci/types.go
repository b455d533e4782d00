// Package uci drives an external UCI engine (Fairy-Stockfish with
// UCI_Variant xiangqi) and turns its output into move suggestions.
package uci

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"xiangqi/internal/xiangqi"
)

var (
	ErrEngineClosed = errors.New("uci: engine closed")
	ErrNoBestMove   = errors.New("uci: engine returned no move")
)

// Suggester proposes a move for the position described by fen.
type Suggester interface {
	BestMove(ctx context.Context, fen string) (Suggestion, error)
}

// 引擎给出的结果
type Suggestion struct {
	Move      xiangqi.Move
	Ponder    string        // 引擎预想的对方应着，可能为空
	Score     int           // 走子方视角
	ScoreUnit string        // "cp" 或 "mate"
	WinProb   float32       // 走子方胜率，由 cp 粗略换算
	Depth     int           // 实际搜索深度
	PV        []string      // 主变
	TimeUsed  time.Duration // 花费时间
}

// Level is one row of the difficulty table.
type Level struct {
	MoveTime time.Duration
	Elo      int
}

// Levels 难度从低到高
var Levels = []Level{
	{200 * time.Millisecond, 1000},
	{500 * time.Millisecond, 1500},
	{1000 * time.Millisecond, 1800},
	{2000 * time.Millisecond, 2200},
	{3000 * time.Millisecond, 2800},
}

type Options struct {
	Path     string   // 引擎可执行文件
	Args     []string // 额外命令行参数
	Variant  string   // 默认 xiangqi
	MoveTime time.Duration
	Elo      int // 0 表示不限制强度
	Logger   *logrus.Entry
}

// WithLevel copies the move time and Elo of Levels[i] into o.
func (o Options) WithLevel(i int) (Options, error) {
	if i < 0 || i >= len(Levels) {
		return o, fmt.Errorf("uci: level %d not in [0, %d]", i, len(Levels)-1)
	}
	o.MoveTime = Levels[i].MoveTime
	o.Elo = Levels[i].Elo
	return o, nil
}

func (o Options) withDefaults() Options {
	if o.Variant == "" {
		o.Variant = "xiangqi"
	}
	if o.MoveTime <= 0 {
		o.MoveTime = 2 * time.Second
	}
	if o.Logger == nil {
		o.Logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return o
}

func winProb(unit string, score int) float32 {
	if unit == "mate" {
		if score > 0 {
			return 1
		}
		return 0
	}
	p := (float32(score)/1000.0 + 1.0) / 2.0
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	return p
}
