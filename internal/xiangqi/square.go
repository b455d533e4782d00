package xiangqi

import (
	"fmt"
	"strconv"
)

const (
	Files = 9
	Ranks = 10

	RiverRank = 5 // 己方视角下 rank<=5 为本方半场
)

// Square is a 1-based (file, rank) coordinate. Arithmetic never clamps:
// callers must check Valid before touching the board.
type Square struct {
	File int
	Rank int
}

func Sq(file, rank int) Square { return Square{File: file, Rank: rank} }

func (s Square) Valid() bool {
	return s.File >= 1 && s.File <= Files && s.Rank >= 1 && s.Rank <= Ranks
}

func (s Square) Add(o Square) Square {
	return Square{File: s.File + o.File, Rank: s.Rank + o.Rank}
}

func (s Square) Scale(n int) Square {
	return Square{File: s.File * n, Rank: s.Rank * n}
}

// View 把坐标换成 side 自己的视角：黑方整盘旋转 180 度。
// 对同一方调用两次得到原坐标。
func (s Square) View(side Side) Square {
	if side != Black {
		return s
	}
	return Square{File: Files + 1 - s.File, Rank: Ranks + 1 - s.Rank}
}

func (s Square) String() string {
	if s.File < 1 || s.File > Files {
		return fmt.Sprintf("(%d,%d)", s.File, s.Rank)
	}
	return string(rune('a'+s.File-1)) + strconv.Itoa(s.Rank)
}

// ParseSquare reads "a1".."i10".
func ParseSquare(text string) (Square, error) {
	if len(text) < 2 || len(text) > 3 {
		return Square{}, fmt.Errorf("%w: %q", ErrBadSquare, text)
	}
	file := int(text[0]-'a') + 1
	rank, err := strconv.Atoi(text[1:])
	if err != nil || text[1] == '0' || text[1] == '+' || text[1] == '-' {
		return Square{}, fmt.Errorf("%w: %q", ErrBadSquare, text)
	}
	sq := Sq(file, rank)
	if !sq.Valid() {
		return Square{}, fmt.Errorf("%w: %q", ErrBadSquare, text)
	}
	return sq, nil
}

// inPalace 九宫：己方视角 rank 1..3，file 4..6。
func inPalace(side Side, sq Square) bool {
	v := sq.View(side)
	return v.Rank >= 1 && v.Rank <= 3 && v.File >= 4 && v.File <= 6
}

// crossedRiver 己方视角 rank>5 即已过河。
func crossedRiver(side Side, sq Square) bool {
	return sq.View(side).Rank > RiverRank
}

var (
	orthogonalDirs = [4]Square{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}
	diagonalDirs   = [4]Square{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
)
