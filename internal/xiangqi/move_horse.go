package xiangqi

import "iter"

// 马：先走一步直线（马腿），再斜出一格。马腿有子则这个方向的两个落点都不能走。
func horseMoves(b *Board, pc *Piece, from Square) iter.Seq[Move] {
	return func(yield func(Move) bool) {
		for _, d := range orthogonalDirs {
			leg := from.Add(d)
			if leg.Valid() && b.at(leg) != nil {
				continue // 憋马腿
			}

			var ends [2]Square
			if d.Rank != 0 {
				ends = [2]Square{{1, 2 * d.Rank}, {-1, 2 * d.Rank}}
			} else {
				ends = [2]Square{{2 * d.File, 1}, {2 * d.File, -1}}
			}
			for _, off := range ends {
				if !yield(NewMove(from, from.Add(off))) {
					return
				}
			}
		}
	}
}

