package xiangqi

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfRange    = errors.New("square out of range")
	ErrBadSquare     = errors.New("invalid square")
	ErrBadMove       = errors.New("invalid move token")
	ErrNoPiece       = errors.New("no piece at start square")
	ErrIllegalMove   = errors.New("illegal move")
	ErrSelfCheck     = errors.New("move leaves own general in check")
	ErrNoHistory     = errors.New("no half-move recorded")
	ErrHalfMoveIndex = errors.New("half-move index out of range")
	ErrBadDiagram    = errors.New("invalid board diagram")
)

// MoveError carries the rejected move. Use errors.Is with ErrIllegalMove or
// ErrSelfCheck to tell "no such move" from "move exists but exposes the general".
type MoveError struct {
	Move Move
	Err  error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("move %s: %v", e.Move, e.Err)
}

func (e *MoveError) Unwrap() error { return e.Err }
