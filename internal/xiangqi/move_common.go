package xiangqi

import "iter"

// 以下生成器只产出伪合法走法：不看终点上是不是自己的子，也可能产出棋盘外的终点，
// 这些都由 GeometricallyLegal 统一过滤。

// 帅：九宫内上下左右一格
func generalMoves(b *Board, pc *Piece, from Square) iter.Seq[Move] {
	return func(yield func(Move) bool) {
		for _, d := range orthogonalDirs {
			to := from.Add(d)
			if !inPalace(pc.Owner, to) {
				continue
			}
			if !yield(NewMove(from, to)) {
				return
			}
		}
	}
}

// 士：九宫内斜走一格
func advisorMoves(b *Board, pc *Piece, from Square) iter.Seq[Move] {
	return func(yield func(Move) bool) {
		for _, d := range diagonalDirs {
			to := from.Add(d)
			if !inPalace(pc.Owner, to) {
				continue
			}
			if !yield(NewMove(from, to)) {
				return
			}
		}
	}
}

// 相：田字，不过河。象眼不检查。
func elephantMoves(b *Board, pc *Piece, from Square) iter.Seq[Move] {
	return func(yield func(Move) bool) {
		for _, d := range diagonalDirs {
			to := from.Add(d.Scale(2))
			if crossedRiver(pc.Owner, to) {
				continue
			}
			if !yield(NewMove(from, to)) {
				return
			}
		}
	}
}

// 车：直线滑动，碰到第一个子（不论哪方）产出后停下
func chariotMoves(b *Board, pc *Piece, from Square) iter.Seq[Move] {
	return func(yield func(Move) bool) {
		for _, d := range orthogonalDirs {
			for to := from.Add(d); to.Valid(); to = to.Add(d) {
				if !yield(NewMove(from, to)) {
					return
				}
				if b.at(to) != nil {
					break
				}
			}
		}
	}
}

// 炮：炮架之前的空格可走；越过炮架后遇到的第一个子可吃，然后停下
func cannonMoves(b *Board, pc *Piece, from Square) iter.Seq[Move] {
	return func(yield func(Move) bool) {
		for _, d := range orthogonalDirs {
			screened := false
			for to := from.Add(d); to.Valid(); to = to.Add(d) {
				occupied := b.at(to) != nil
				if !screened {
					if occupied {
						screened = true
						continue
					}
					if !yield(NewMove(from, to)) {
						return
					}
					continue
				}
				if occupied {
					if !yield(NewMove(from, to)) {
						return
					}
					break
				}
			}
		}
	}
}
