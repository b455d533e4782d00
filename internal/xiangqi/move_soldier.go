package xiangqi

import "iter"

// 兵：未过河只能前进一格；过河后可以前进或左右一格，永远不能后退。
func soldierMoves(b *Board, pc *Piece, from Square) iter.Seq[Move] {
	return func(yield func(Move) bool) {
		if !yield(NewMove(from, from.Add(Sq(0, pc.Owner.Forward())))) {
			return
		}
		if !crossedRiver(pc.Owner, from) {
			return
		}
		for _, df := range [2]int{-1, +1} {
			if !yield(NewMove(from, from.Add(Sq(df, 0)))) {
				return
			}
		}
	}
}
