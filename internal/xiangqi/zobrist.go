package xiangqi

import "sync"

const numSquares = Files * Ranks

var (
	zobristOnce sync.Once

	zobristPieces [2][numKinds][numSquares]uint64
	zobristSide   uint64
)

func initZobrist() {
	zobristOnce.Do(func() {
		// splitmix64，固定种子，保证每次运行哈希一致
		seed := uint64(0x9E3779B97F4A7C15)
		next := func() uint64 {
			seed += 0x9E3779B97F4A7C15
			z := seed
			z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
			z = (z ^ (z >> 27)) * 0x94D049BB133111EB
			return z ^ (z >> 31)
		}

		for side := 0; side < 2; side++ {
			for k := General; int(k) < numKinds; k++ {
				for sq := 0; sq < numSquares; sq++ {
					zobristPieces[side][k][sq] = next()
				}
			}
		}
		zobristSide = next()
	})
}

func squareIndex(sq Square) int {
	return (sq.Rank-1)*Files + (sq.File - 1)
}

func pieceHashKey(pc *Piece, sq Square) uint64 {
	if pc == nil || !sq.Valid() || (pc.Owner != Red && pc.Owner != Black) {
		return 0
	}
	if pc.Kind <= KindNone || int(pc.Kind) >= numKinds {
		return 0
	}
	return zobristPieces[pc.Owner][pc.Kind][squareIndex(sq)]
}

// Hash is the Zobrist key of the piece layout. It does not include the side
// to move; see PositionKey.
func (b *Board) Hash() uint64 {
	initZobrist()

	var h uint64
	for f := 1; f <= Files; f++ {
		for r := 1; r <= Ranks; r++ {
			sq := Sq(f, r)
			h ^= pieceHashKey(b.at(sq), sq)
		}
	}
	return h
}

// PositionKey mixes the side to move into the board hash.
func PositionKey(b *Board, toMove Side) uint64 {
	h := b.Hash()
	if toMove == Black {
		h ^= zobristSide
	}
	return h
}
