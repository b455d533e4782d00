package xiangqi

import (
	"fmt"
	"strings"
)

// SpecialMove is implemented by moves that need extra board fixups after the
// piece has been relocated. Standard Xiangqi has none; variants can plug in
// here without touching Board.
type SpecialMove interface {
	HandleAssociatedPiece(b *Board) error
}

type Move struct {
	Start   Square
	End     Square
	Special SpecialMove
}

// MoveKey identifies a move by its squares only.
type MoveKey struct {
	Start, End Square
}

func NewMove(start, end Square) Move {
	return Move{Start: start, End: end}
}

func (m Move) Key() MoveKey { return MoveKey{Start: m.Start, End: m.End} }

func (m Move) Equal(o Move) bool { return m.Start == o.Start && m.End == o.End }

// String 形如 "a1a4"、"b10c8"，也是和外部引擎交换的格式。
func (m Move) String() string {
	return m.Start.String() + m.End.String()
}

// ParseMove reads two concatenated squares. Ranks may have two digits so the
// split point is the second letter.
func ParseMove(token string) (Move, error) {
	token = strings.TrimSpace(token)
	split := -1
	for i := 1; i < len(token); i++ {
		if token[i] >= 'a' && token[i] <= 'z' {
			split = i
			break
		}
	}
	if split < 0 {
		return Move{}, fmt.Errorf("%w: %q", ErrBadMove, token)
	}
	start, err := ParseSquare(token[:split])
	if err != nil {
		return Move{}, fmt.Errorf("%w: %q", ErrBadMove, token)
	}
	end, err := ParseSquare(token[split:])
	if err != nil {
		return Move{}, fmt.Errorf("%w: %q", ErrBadMove, token)
	}
	return NewMove(start, end), nil
}
