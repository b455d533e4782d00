package xiangqi

import "fmt"

type Status int

const (
	Ongoing Status = iota
	Checkmate
	Stalemate
)

func (s Status) String() string {
	switch s {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	}
	return "ongoing"
}

// history 三条时间线共用一个游标：boards/conditions 的 head 永远等于
// halfMoves 的 head + 1。只允许通过 commit 和 seek 改动。
type history struct {
	boards     *Timeline[*Board]
	conditions *Timeline[GameConditions]
	halfMoves  *Timeline[HalfMove]
}

func newHistory(b *Board, c GameConditions) history {
	return history{
		boards:     NewTimeline(b),
		conditions: NewTimeline(c),
		halfMoves:  NewTimeline[HalfMove](),
	}
}

func (h *history) commit(b *Board, c GameConditions, hm HalfMove) {
	h.boards.AddNext(b)
	h.conditions.AddNext(c)
	h.halfMoves.AddNext(hm)
}

func (h *history) seek(halfMoveIndex int) error {
	if h.halfMoves.Len() == 0 {
		return ErrNoHistory
	}
	if halfMoveIndex < -1 || halfMoveIndex >= h.halfMoves.Len() {
		return fmt.Errorf("%w: %d not in [-1, %d]", ErrHalfMoveIndex, halfMoveIndex, h.halfMoves.Len()-1)
	}
	h.boards.SetHead(halfMoveIndex + 1)
	h.conditions.SetHead(halfMoveIndex + 1)
	h.halfMoves.SetHead(halfMoveIndex)
	return nil
}

func (h *history) board() *Board {
	b, _ := h.boards.Current()
	return b
}

func (h *history) cond() GameConditions {
	c, _ := h.conditions.Current()
	return c
}

// Game drives a single match. It is not safe for concurrent use; callers that
// share a Game must serialize access themselves.
type Game struct {
	hist history
}

func NewGame() *Game {
	return NewGameFromBoard(NewStartingBoard(), StartingConditions())
}

// NewGameFromBoard starts a game from an arbitrary position. The board is
// copied; PositionKey is recomputed.
func NewGameFromBoard(b *Board, c GameConditions) *Game {
	b = b.Clone()
	if c.SideToMove != Black {
		c.SideToMove = Red
	}
	if c.FullMoveNumber < 1 {
		c.FullMoveNumber = 1
	}
	c.PositionKey = PositionKey(b, c.SideToMove)
	return &Game{hist: newHistory(b, c)}
}

// Board returns a copy of the current board.
func (g *Game) Board() *Board { return g.hist.board().Clone() }

func (g *Game) Conditions() GameConditions { return g.hist.cond() }

func (g *Game) SideToMove() Side { return g.hist.cond().SideToMove }

// Position lists every (square, piece) on the current board.
func (g *Game) Position() []Placement { return g.hist.board().Occupancy() }

// PieceAt returns a copy of the piece on sq, nil when empty.
func (g *Game) PieceAt(sq Square) (*Piece, error) {
	pc, err := g.hist.board().At(sq)
	if err != nil || pc == nil {
		return nil, err
	}
	return pc.Clone(), nil
}

// InCheck reports whether the side to move is currently in check.
func (g *Game) InCheck() bool {
	return InCheck(g.hist.board(), g.SideToMove())
}

func (g *Game) candidate(start, end Square) (Move, *Piece, bool) {
	b := g.hist.board()
	if !start.Valid() || !end.Valid() {
		return Move{}, nil, false
	}
	pc := b.at(start)
	if pc == nil {
		return Move{}, nil, false
	}
	moves, ok := b.LegalMovesBySide(g.SideToMove())[pc]
	if !ok {
		return Move{}, nil, false
	}
	mv, ok := moves[MoveKey{Start: start, End: end}]
	return mv, pc, ok
}

// QueryLegalMove looks the move up in the current legal-move map and then
// rejects it if it would expose the mover's general. On ErrSelfCheck the
// candidate move is still returned.
func (g *Game) QueryLegalMove(start, end Square) (Move, error) {
	mv, pc, ok := g.candidate(start, end)
	if !ok {
		return Move{}, &MoveError{Move: NewMove(start, end), Err: ErrIllegalMove}
	}
	if CausesSelfCheck(g.hist.board(), mv, pc.Owner) {
		return mv, &MoveError{Move: mv, Err: ErrSelfCheck}
	}
	return mv, nil
}

// LegalMovesForSquare is meant for highlighting: it returns the memoized,
// geometrically legal destinations of the piece on sq without the self-check
// filter, so a highlighted move can still be refused by TryExecuteMove.
// Only pieces of the side to move have entries.
func (g *Game) LegalMovesForSquare(sq Square) ([]Move, bool) {
	b := g.hist.board()
	if !sq.Valid() {
		return nil, false
	}
	pc := b.at(sq)
	if pc == nil {
		return nil, false
	}
	moves, ok := b.LegalMovesBySide(g.SideToMove())[pc]
	if !ok {
		return nil, false
	}
	out := make([]Move, 0, len(moves))
	for _, mv := range moves {
		out = append(out, mv)
	}
	SortMoves(out)
	return out, true
}

// SafeMoves lists every move of the side to move that passes both legality
// tiers.
func (g *Game) SafeMoves() []Move {
	return SafeMoves(g.hist.board(), g.SideToMove())
}

// TryExecuteMove validates m against the current position and, on success,
// appends the resulting board, conditions and half-move in one step. Nothing
// changes on failure.
func (g *Game) TryExecuteMove(m Move) (HalfMove, error) {
	mv, err := g.QueryLegalMove(m.Start, m.End)
	if err != nil {
		return HalfMove{}, err
	}

	before := g.hist.board()
	cond := g.hist.cond()

	after := before.Clone()
	if err := after.ApplyMove(mv); err != nil {
		return HalfMove{}, &MoveError{Move: mv, Err: err}
	}

	next := cond.SideToMove.Opponent()
	hm := HalfMove{
		Piece:       *before.at(mv.Start),
		Move:        mv,
		CausedCheck: InCheck(after, next),
	}
	if captured := before.at(mv.End); captured != nil {
		hm.Captured = true
		hm.CapturedKind = captured.Kind
	}
	nextCond := cond.Next(hm, after)

	// 这里只关心对方还有没有一步不送将的走法
	n := 0
	if hasSafeMove(after, next) {
		n = 1
	}
	hm.setGameEnd(Stalemated(after, next, n), Checkmated(after, next, n))

	g.hist.commit(after, nextCond, hm)
	return hm, nil
}

// ResetToHalfMoveIndex rewinds or fast-forwards to the state right after
// half-move i; i == -1 is the starting position. Later half-moves stay
// reachable until a new move overwrites them.
func (g *Game) ResetToHalfMoveIndex(i int) error {
	return g.hist.seek(i)
}

func (g *Game) Undo() error {
	return g.hist.seek(g.hist.halfMoves.HeadIndex() - 1)
}

func (g *Game) Redo() error {
	return g.hist.seek(g.hist.halfMoves.HeadIndex() + 1)
}

// HalfMoveIndex is the index of the last played half-move, -1 at the start.
func (g *Game) HalfMoveIndex() int { return g.hist.halfMoves.HeadIndex() }

// RecordedHalfMoves counts stored half-moves including undone ones.
func (g *Game) RecordedHalfMoves() int { return g.hist.halfMoves.Len() }

// HalfMoves returns the played half-moves up to the current head.
func (g *Game) HalfMoves() []HalfMove { return g.hist.halfMoves.History() }

func (g *Game) LastHalfMove() (HalfMove, bool) { return g.hist.halfMoves.Current() }

func (g *Game) Status() Status {
	hm, ok := g.LastHalfMove()
	switch {
	case !ok:
		return Ongoing
	case hm.CausedCheckmate():
		return Checkmate
	case hm.CausedStalemate():
		return Stalemate
	}
	return Ongoing
}

// Winner: in Xiangqi the side left without a move loses, whether or not it
// is in check.
func (g *Game) Winner() Side {
	if g.Status() == Ongoing {
		return NoSide
	}
	return g.SideToMove().Opponent()
}

// Repetitions counts how often the current position (with side to move) has
// occurred so far, the current occurrence included.
func (g *Game) Repetitions() int {
	key := g.hist.cond().PositionKey
	n := 0
	for _, c := range g.hist.conditions.History() {
		if c.PositionKey == key {
			n++
		}
	}
	return n
}
