package xiangqi

type Side int8

const (
	NoSide Side = -1
	Red    Side = 0 // 先手，下方（rank 1..5）
	Black  Side = 1
)

func (s Side) Opponent() Side {
	switch s {
	case Red:
		return Black
	case Black:
		return Red
	}
	return NoSide
}

// Forward 是兵前进时 rank 的变化量。
func (s Side) Forward() int {
	switch s {
	case Red:
		return +1
	case Black:
		return -1
	}
	return 0
}

func (s Side) String() string {
	switch s {
	case Red:
		return "red"
	case Black:
		return "black"
	}
	return "none"
}

type PieceKind int8

const (
	KindNone PieceKind = iota
	General            // 帅 / 将
	Advisor            // 仕 / 士
	Elephant           // 相 / 象
	Chariot            // 车
	Cannon             // 炮
	Horse              // 马
	Soldier            // 兵 / 卒
)

const numKinds = 8

var kindLetters = [numKinds]rune{
	KindNone: '.',
	General:  'K',
	Advisor:  'A',
	Elephant: 'E',
	Chariot:  'R',
	Cannon:   'C',
	Horse:    'H',
	Soldier:  'P',
}

var kindNames = [numKinds]string{
	KindNone: "none",
	General:  "general",
	Advisor:  "advisor",
	Elephant: "elephant",
	Chariot:  "chariot",
	Cannon:   "cannon",
	Horse:    "horse",
	Soldier:  "soldier",
}

func (k PieceKind) String() string {
	if k < 0 || int(k) >= numKinds {
		return "invalid"
	}
	return kindNames[k]
}

// Piece is a mutable cell owned by exactly one Board. Its Pos is kept in
// sync by the board when a move is applied.
type Piece struct {
	Owner Side
	Kind  PieceKind
	Pos   Square
}

func NewPiece(owner Side, kind PieceKind) *Piece {
	return &Piece{Owner: owner, Kind: kind}
}

func (p *Piece) Clone() *Piece {
	cp := *p
	return &cp
}

// Letter 返回棋盘图里的字符：红方大写，黑方小写。
func (p *Piece) Letter() rune {
	if p == nil || p.Kind <= KindNone || int(p.Kind) >= numKinds {
		return '.'
	}
	ch := kindLetters[p.Kind]
	if p.Owner == Black {
		ch += 'a' - 'A'
	}
	return ch
}

func (p *Piece) String() string {
	if p == nil {
		return "empty"
	}
	return p.Owner.String() + " " + p.Kind.String() + "@" + p.Pos.String()
}

// PieceFromLetter is the inverse of Letter. '.' and unknown runes report false.
func PieceFromLetter(ch rune) (*Piece, bool) {
	side := Red
	upper := ch
	if ch >= 'a' && ch <= 'z' {
		side = Black
		upper = ch - ('a' - 'A')
	}
	for k := General; int(k) < numKinds; k++ {
		if kindLetters[k] == upper {
			return NewPiece(side, k), true
		}
	}
	return nil, false
}
