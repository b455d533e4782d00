package xiangqi

// GameConditions is the immutable per-state context that is not visible on
// the board itself.
type GameConditions struct {
	SideToMove     Side
	HalfMoveClock  int    // 距上次吃子的步数（半回合）
	FullMoveNumber int    // 黑方走完后加一
	PositionKey    uint64 // 局面 + 走子方的 Zobrist 键
}

func StartingConditions() GameConditions {
	return GameConditions{SideToMove: Red, FullMoveNumber: 1}
}

// Next derives the conditions after hm was played, producing the board after.
func (c GameConditions) Next(hm HalfMove, after *Board) GameConditions {
	next := GameConditions{
		SideToMove:     c.SideToMove.Opponent(),
		HalfMoveClock:  c.HalfMoveClock + 1,
		FullMoveNumber: c.FullMoveNumber,
	}
	if hm.Captured {
		next.HalfMoveClock = 0
	}
	if c.SideToMove == Black {
		next.FullMoveNumber++
	}
	next.PositionKey = PositionKey(after, next.SideToMove)
	return next
}
