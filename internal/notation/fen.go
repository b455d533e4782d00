// Package notation converts games to and from the text forms that engines
// and front-ends exchange: Xiangqi FEN and coordinate move lists.
package notation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"xiangqi/internal/xiangqi"
)

// StartFEN is the standard opening position.
const StartFEN = "rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR w - - 0 1"

var (
	ErrInvalidFEN  = errors.New("invalid FEN")
	ErrInvalidMove = errors.New("invalid move")
)

// FEN 用的字母和棋盘图不同：马是 n，相是 b
var fenLetters = map[xiangqi.PieceKind]byte{
	xiangqi.General:  'k',
	xiangqi.Advisor:  'a',
	xiangqi.Elephant: 'b',
	xiangqi.Chariot:  'r',
	xiangqi.Cannon:   'c',
	xiangqi.Horse:    'n',
	xiangqi.Soldier:  'p',
}

var letterKinds = func() map[byte]xiangqi.PieceKind {
	m := make(map[byte]xiangqi.PieceKind, len(fenLetters))
	for k, ch := range fenLetters {
		m[ch] = k
	}
	return m
}()

func pieceLetter(pc *xiangqi.Piece) byte {
	ch := fenLetters[pc.Kind]
	if pc.Owner == xiangqi.Red {
		ch -= 'a' - 'A'
	}
	return ch
}

// EncodeFEN describes the current position of g.
func EncodeFEN(g *xiangqi.Game) string {
	return EncodeBoard(g.Board(), g.Conditions())
}

// EncodeBoard writes b and c as FEN. Rank 10 comes first, file a on the left.
func EncodeBoard(b *xiangqi.Board, c xiangqi.GameConditions) string {
	var sb strings.Builder
	for r := xiangqi.Ranks; r >= 1; r-- {
		if r < xiangqi.Ranks {
			sb.WriteByte('/')
		}
		empty := 0
		for f := 1; f <= xiangqi.Files; f++ {
			pc, _ := b.At(xiangqi.Sq(f, r))
			if pc == nil {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(pieceLetter(pc))
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
	}
	sb.WriteByte(' ')
	if c.SideToMove == xiangqi.Black {
		sb.WriteByte('b')
	} else {
		sb.WriteByte('w')
	}
	fmt.Fprintf(&sb, " - - %d %d", c.HalfMoveClock, max(c.FullMoveNumber, 1))
	return sb.String()
}

// DecodeFEN parses a position. The counters are optional; "r" is accepted
// as a synonym of "w".
func DecodeFEN(fen string) (*xiangqi.Board, xiangqi.GameConditions, error) {
	cond := xiangqi.StartingConditions()
	parts := strings.Fields(fen)
	if len(parts) < 2 {
		return nil, cond, fmt.Errorf("%w: %q", ErrInvalidFEN, fen)
	}
	rows := strings.Split(parts[0], "/")
	if len(rows) != xiangqi.Ranks {
		return nil, cond, fmt.Errorf("%w: %d ranks", ErrInvalidFEN, len(rows))
	}

	var placements []xiangqi.Placement
	for i, row := range rows {
		rank := xiangqi.Ranks - i
		file := 1
		for j := 0; j < len(row); j++ {
			ch := row[j]
			if ch >= '1' && ch <= '9' {
				file += int(ch - '0')
				continue
			}
			side := xiangqi.Black
			lower := ch
			if ch >= 'A' && ch <= 'Z' {
				side = xiangqi.Red
				lower = ch + ('a' - 'A')
			}
			kind, ok := letterKinds[lower]
			if !ok {
				return nil, cond, fmt.Errorf("%w: bad piece %q", ErrInvalidFEN, ch)
			}
			if file > xiangqi.Files {
				return nil, cond, fmt.Errorf("%w: rank %d too long", ErrInvalidFEN, rank)
			}
			placements = append(placements, xiangqi.Placement{
				Square: xiangqi.Sq(file, rank),
				Piece:  xiangqi.NewPiece(side, kind),
			})
			file++
		}
		if file != xiangqi.Files+1 {
			return nil, cond, fmt.Errorf("%w: rank %d has %d files", ErrInvalidFEN, rank, file-1)
		}
	}

	switch parts[1] {
	case "w", "r":
		cond.SideToMove = xiangqi.Red
	case "b":
		cond.SideToMove = xiangqi.Black
	default:
		return nil, cond, fmt.Errorf("%w: side %q", ErrInvalidFEN, parts[1])
	}
	if len(parts) >= 6 {
		hm, err1 := strconv.Atoi(parts[4])
		fm, err2 := strconv.Atoi(parts[5])
		if err1 != nil || err2 != nil || hm < 0 || fm < 1 {
			return nil, cond, fmt.Errorf("%w: counters %q %q", ErrInvalidFEN, parts[4], parts[5])
		}
		cond.HalfMoveClock, cond.FullMoveNumber = hm, fm
	}

	b, err := xiangqi.NewBoard(placements...)
	if err != nil {
		return nil, cond, fmt.Errorf("%w: %w", ErrInvalidFEN, err)
	}
	cond.PositionKey = xiangqi.PositionKey(b, cond.SideToMove)
	return b, cond, nil
}

// NewGameFromFEN starts a game at the given position.
func NewGameFromFEN(fen string) (*xiangqi.Game, error) {
	b, c, err := DecodeFEN(fen)
	if err != nil {
		return nil, err
	}
	return xiangqi.NewGameFromBoard(b, c), nil
}
