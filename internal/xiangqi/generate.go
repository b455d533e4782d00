package xiangqi

import (
	"iter"
	"slices"
)

// PseudoMoves lazily enumerates the geometrically possible moves of p standing
// on from. Own-side captures and off-board ends are not filtered here.
func (p *Piece) PseudoMoves(b *Board, from Square) iter.Seq[Move] {
	switch p.Kind {
	case General:
		return generalMoves(b, p, from)
	case Advisor:
		return advisorMoves(b, p, from)
	case Elephant:
		return elephantMoves(b, p, from)
	case Chariot:
		return chariotMoves(b, p, from)
	case Cannon:
		return cannonMoves(b, p, from)
	case Horse:
		return horseMoves(b, p, from)
	case Soldier:
		return soldierMoves(b, p, from)
	}
	return func(func(Move) bool) {}
}

// LegalMoves maps each piece to its geometrically legal moves keyed by
// (start, end). Maps returned by Board are memoized and must not be modified.
type LegalMoves map[*Piece]map[MoveKey]Move

// 生成某一方的全部几何合法走法（不过滤送将）
func generateLegalMoves(b *Board, pieces []*Piece) LegalMoves {
	out := make(LegalMoves, len(pieces))
	for _, pc := range pieces {
		var moves map[MoveKey]Move
		for mv := range pc.PseudoMoves(b, pc.Pos) {
			if !GeometricallyLegal(b, mv, pc.Owner) {
				continue
			}
			if moves == nil {
				moves = make(map[MoveKey]Move, 8)
			}
			moves[mv.Key()] = mv
		}
		if moves != nil {
			out[pc] = moves
		}
	}
	return out
}

// SortMoves orders moves by start then end square so results are stable.
func SortMoves(moves []Move) {
	slices.SortFunc(moves, func(a, b Move) int {
		if c := compareSquares(a.Start, b.Start); c != 0 {
			return c
		}
		return compareSquares(a.End, b.End)
	})
}

func compareSquares(a, b Square) int {
	if a.File != b.File {
		return a.File - b.File
	}
	return a.Rank - b.Rank
}

// Flatten returns every move in lm, sorted.
func (lm LegalMoves) Flatten() []Move {
	out := make([]Move, 0, CountMoves(lm))
	for _, moves := range lm {
		for _, mv := range moves {
			out = append(out, mv)
		}
	}
	SortMoves(out)
	return out
}
