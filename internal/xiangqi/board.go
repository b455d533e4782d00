package xiangqi

import (
	"fmt"
	"slices"
)

// Placement pairs a square with the piece standing on it.
type Placement struct {
	Square Square
	Piece  *Piece
}

// sideCache 每一方的派生数据；棋盘一改动就整体作废，读取时再重建。
type sideCache struct {
	clean   bool
	pieces  []*Piece
	general *Piece
	legal   LegalMoves
}

// Board is a 9x10 grid. Every mutation goes through Place, Clear or
// ApplyMove so the per-side caches can be invalidated in one spot.
type Board struct {
	grid  [Files][Ranks]*Piece
	cache [2]sideCache
}

// NewBoard places copies of the given pieces. The board owns its pieces.
func NewBoard(placements ...Placement) (*Board, error) {
	b := &Board{}
	for _, pl := range placements {
		if pl.Piece == nil {
			continue
		}
		if err := b.Place(pl.Square, pl.Piece); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func (b *Board) at(sq Square) *Piece {
	return b.grid[sq.File-1][sq.Rank-1]
}

func (b *Board) set(sq Square, pc *Piece) {
	b.grid[sq.File-1][sq.Rank-1] = pc
}

// At returns the piece on sq, nil for an empty square.
func (b *Board) At(sq Square) (*Piece, error) {
	if !sq.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrOutOfRange, sq)
	}
	return b.at(sq), nil
}

// Place puts a copy of pc on sq, replacing whatever was there.
func (b *Board) Place(sq Square, pc *Piece) error {
	if !sq.Valid() {
		return fmt.Errorf("%w: %s", ErrOutOfRange, sq)
	}
	if pc == nil {
		b.set(sq, nil)
	} else {
		cp := pc.Clone()
		cp.Pos = sq
		b.set(sq, cp)
	}
	b.invalidate()
	return nil
}

func (b *Board) Clear(sq Square) error {
	return b.Place(sq, nil)
}

// ApplyMove moves the piece on m.Start to m.End, capturing whatever stood
// there. The board is left untouched when the move is rejected.
func (b *Board) ApplyMove(m Move) error {
	if !m.Start.Valid() || !m.End.Valid() {
		return fmt.Errorf("%w: %s", ErrOutOfRange, m)
	}
	pc := b.at(m.Start)
	if pc == nil {
		return fmt.Errorf("%w: %s", ErrNoPiece, m.Start)
	}
	b.set(m.Start, nil)
	b.set(m.End, pc)
	pc.Pos = m.End
	b.invalidate()

	if m.Special != nil {
		if err := m.Special.HandleAssociatedPiece(b); err != nil {
			return fmt.Errorf("special move %s: %w", m, err)
		}
		b.invalidate()
	}
	return nil
}

// Clone deep-copies every piece. The copy starts with cold caches.
func (b *Board) Clone() *Board {
	nb := &Board{}
	for f := range b.grid {
		for r, pc := range b.grid[f] {
			if pc != nil {
				nb.grid[f][r] = pc.Clone()
			}
		}
	}
	return nb
}

func (b *Board) invalidate() {
	b.cache[0] = sideCache{}
	b.cache[1] = sideCache{}
}

func (b *Board) side(s Side) *sideCache {
	c := &b.cache[s]
	if c.clean {
		return c
	}
	c.pieces = c.pieces[:0]
	c.general = nil
	for f := 1; f <= Files; f++ {
		for r := 1; r <= Ranks; r++ {
			pc := b.at(Sq(f, r))
			if pc == nil || pc.Owner != s {
				continue
			}
			if pc.Kind == General {
				c.general = pc
			}
			c.pieces = append(c.pieces, pc)
		}
	}
	c.clean = true
	return c
}

// Pieces returns the pieces owned by s in file-then-rank order.
func (b *Board) Pieces(s Side) []*Piece {
	if s != Red && s != Black {
		return nil
	}
	return slices.Clone(b.side(s).pieces)
}

// KingSquare reports where s's general stands; false if it is missing.
func (b *Board) KingSquare(s Side) (Square, bool) {
	if s != Red && s != Black {
		return Square{}, false
	}
	g := b.side(s).general
	if g == nil {
		return Square{}, false
	}
	return g.Pos, true
}

// LegalMovesBySide is memoized until the next mutation. Moves are only
// geometrically filtered; a move here may still expose the mover's general.
func (b *Board) LegalMovesBySide(s Side) LegalMoves {
	if s != Red && s != Black {
		return nil
	}
	c := b.side(s)
	if c.legal == nil {
		c.legal = generateLegalMoves(b, c.pieces)
	}
	return c.legal
}

// IsAttacked: some piece of by can legally move onto sq and sq currently holds
// an enemy of by.
func (b *Board) IsAttacked(sq Square, by Side) bool {
	if !sq.Valid() || (by != Red && by != Black) {
		return false
	}
	target := b.at(sq)
	if target == nil || target.Owner == by {
		return false
	}
	for pc, moves := range b.LegalMovesBySide(by) {
		if _, ok := moves[MoveKey{Start: pc.Pos, End: sq}]; ok {
			return true
		}
	}
	return false
}

// IsKingExposed reports check on s, including the facing-generals rule.
func (b *Board) IsKingExposed(s Side) bool {
	own, ok := b.KingSquare(s)
	if !ok {
		return false
	}
	if b.IsAttacked(own, s.Opponent()) {
		return true
	}

	// 将帅对脸
	enemy, ok := b.KingSquare(s.Opponent())
	if !ok || enemy.File != own.File {
		return false
	}
	step := 1
	if enemy.Rank < own.Rank {
		step = -1
	}
	for r := own.Rank + step; r != enemy.Rank; r += step {
		if b.at(Sq(own.File, r)) != nil {
			return false
		}
	}
	return true
}

// Occupancy lists copies of every piece, file-then-rank order.
func (b *Board) Occupancy() []Placement {
	var out []Placement
	for f := 1; f <= Files; f++ {
		for r := 1; r <= Ranks; r++ {
			sq := Sq(f, r)
			if pc := b.at(sq); pc != nil {
				out = append(out, Placement{Square: sq, Piece: pc.Clone()})
			}
		}
	}
	return out
}
