package xiangqi

import (
	"fmt"
	"strings"
)

// 开局局面：第一行是 rank 10（黑方底线），最后一行是 rank 1（红方底线）。
const startingDiagram = `rheakaehr
.........
.c.....c.
p.p.p.p.p
.........
.........
P.P.P.P.P
.C.....C.
.........
RHEAKAEHR`

// NewStartingBoard returns the standard opening layout.
func NewStartingBoard() *Board {
	b, err := ParseDiagram(startingDiagram)
	if err != nil {
		panic("startingDiagram: " + err.Error())
	}
	return b
}

// String renders the board as ten lines of nine characters, rank 10 first.
func (b *Board) String() string {
	var sb strings.Builder
	sb.Grow(Ranks * (Files + 1))
	for r := Ranks; r >= 1; r-- {
		for f := 1; f <= Files; f++ {
			sb.WriteRune(b.at(Sq(f, r)).Letter())
		}
		if r > 1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// ParseDiagram reads the format produced by String. Blank lines and
// surrounding spaces are ignored.
func ParseDiagram(text string) (*Board, error) {
	lines := make([]string, 0, Ranks)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) != Ranks {
		return nil, fmt.Errorf("%w: %d rows, want %d", ErrBadDiagram, len(lines), Ranks)
	}

	b := &Board{}
	for i, line := range lines {
		if len(line) != Files {
			return nil, fmt.Errorf("%w: row %d has %d columns", ErrBadDiagram, i+1, len(line))
		}
		rank := Ranks - i
		for j, ch := range line {
			if ch == '.' {
				continue
			}
			pc, ok := PieceFromLetter(ch)
			if !ok {
				return nil, fmt.Errorf("%w: unknown piece %q", ErrBadDiagram, ch)
			}
			sq := Sq(j+1, rank)
			pc.Pos = sq
			b.set(sq, pc)
		}
	}
	return b, nil
}
