package xiangqi

// HalfMove records one executed move. The game-end flags are filled in once,
// before the record is published to the history.
type HalfMove struct {
	Piece        Piece // 走之前的棋子（Pos 为起点）
	Move         Move
	Captured     bool
	CapturedKind PieceKind
	CausedCheck  bool

	causedCheckmate bool
	causedStalemate bool
}

func (hm HalfMove) CausedCheckmate() bool { return hm.causedCheckmate }
func (hm HalfMove) CausedStalemate() bool { return hm.causedStalemate }

// Ends reports whether the game is over after this half-move.
func (hm HalfMove) Ends() bool { return hm.causedCheckmate || hm.causedStalemate }

func (hm *HalfMove) setGameEnd(stalemate, checkmate bool) {
	hm.causedStalemate = stalemate
	hm.causedCheckmate = checkmate
}

func (hm HalfMove) String() string {
	s := hm.Move.String()
	switch {
	case hm.causedCheckmate:
		s += "#"
	case hm.CausedCheck:
		s += "+"
	}
	return s
}
