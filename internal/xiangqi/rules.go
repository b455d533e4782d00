package xiangqi

// GeometricallyLegal: both squares on the board and the end square is not
// held by side. Self-check is not considered.
func GeometricallyLegal(b *Board, m Move, side Side) bool {
	if !m.Start.Valid() || !m.End.Valid() {
		return false
	}
	dst := b.at(m.End)
	return dst == nil || dst.Owner != side
}

// CausesSelfCheck plays m on a copy of b and reports whether side's general
// is exposed afterwards. b is never modified. A move that cannot be applied
// counts as self-checking.
func CausesSelfCheck(b *Board, m Move, side Side) bool {
	nb := b.Clone()
	if err := nb.ApplyMove(m); err != nil {
		return true
	}
	return nb.IsKingExposed(side)
}

func InCheck(b *Board, side Side) bool {
	return b.IsKingExposed(side)
}

func Checkmated(b *Board, side Side, numLegalMoves int) bool {
	return numLegalMoves <= 0 && InCheck(b, side)
}

func Stalemated(b *Board, side Side, numLegalMoves int) bool {
	return numLegalMoves <= 0 && !InCheck(b, side)
}

func CountMoves(lm LegalMoves) int {
	n := 0
	for _, moves := range lm {
		n += len(moves)
	}
	return n
}

// SafeMoves returns side's moves that pass both tiers, sorted. Every
// candidate costs one board copy.
func SafeMoves(b *Board, side Side) []Move {
	var out []Move
	for _, mv := range b.LegalMovesBySide(side).Flatten() {
		if !CausesSelfCheck(b, mv, side) {
			out = append(out, mv)
		}
	}
	return out
}

func hasSafeMove(b *Board, side Side) bool {
	for _, moves := range b.LegalMovesBySide(side) {
		for _, mv := range moves {
			if !CausesSelfCheck(b, mv, side) {
				return true
			}
		}
	}
	return false
}
