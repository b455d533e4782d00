package notation

import (
	"fmt"
	"strings"

	"xiangqi/internal/xiangqi"
)

// MoveList returns the played half-moves as coordinate tokens ("b3e3").
func MoveList(g *xiangqi.Game) []string {
	hms := g.HalfMoves()
	out := make([]string, len(hms))
	for i, hm := range hms {
		out[i] = hm.Move.String()
	}
	return out
}

// ReplayMoves plays tokens in order and stops at the first failure. Moves
// before the failing one stay on the game.
func ReplayMoves(g *xiangqi.Game, tokens []string) error {
	for i, tok := range tokens {
		mv, err := xiangqi.ParseMove(tok)
		if err != nil {
			return fmt.Errorf("%w: #%d %q: %w", ErrInvalidMove, i+1, tok, err)
		}
		if _, err := g.TryExecuteMove(mv); err != nil {
			return fmt.Errorf("%w: #%d %q: %w", ErrInvalidMove, i+1, tok, err)
		}
	}
	return nil
}

// PositionCommand builds the UCI "position" line for the current state.
func PositionCommand(g *xiangqi.Game) string {
	return "position fen " + EncodeFEN(g)
}

// ParsePosition reads the argument of a UCI "position" command:
// "startpos" or "fen <fen>", optionally followed by "moves ...".
func ParsePosition(arg string) (*xiangqi.Game, error) {
	fields := strings.Fields(arg)
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty position", ErrInvalidFEN)
	}

	var (
		g    *xiangqi.Game
		rest []string
		err  error
	)
	switch fields[0] {
	case "startpos":
		g = xiangqi.NewGame()
		rest = fields[1:]
	case "fen":
		end := 1
		for end < len(fields) && fields[end] != "moves" {
			end++
		}
		g, err = NewGameFromFEN(strings.Join(fields[1:end], " "))
		if err != nil {
			return nil, err
		}
		rest = fields[end:]
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidFEN, fields[0])
	}

	if len(rest) == 0 {
		return g, nil
	}
	if rest[0] != "moves" {
		return nil, fmt.Errorf("%w: unexpected %q", ErrInvalidFEN, rest[0])
	}
	if err := ReplayMoves(g, rest[1:]); err != nil {
		return nil, err
	}
	return g, nil
}
