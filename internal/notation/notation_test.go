package notation

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"xiangqi/internal/xiangqi"
)

func TestStartFENMatchesStartingGame(t *testing.T) {
	if got := EncodeFEN(xiangqi.NewGame()); got != StartFEN {
		t.Fatalf("EncodeFEN = %q\nwant %q", got, StartFEN)
	}
	b, c, err := DecodeFEN(StartFEN)
	if err != nil {
		t.Fatalf("DecodeFEN: %v", err)
	}
	if diff := cmp.Diff(xiangqi.NewStartingBoard().String(), b.String()); diff != "" {
		t.Fatalf("board mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(xiangqi.NewGame().Conditions(), c); diff != "" {
		t.Fatalf("conditions mismatch (-want +got):\n%s", diff)
	}
}

func TestFENRoundTripAfterMoves(t *testing.T) {
	g := xiangqi.NewGame()
	if err := ReplayMoves(g, []string{"b3e3", "h10g8", "e3e7"}); err != nil {
		t.Fatalf("ReplayMoves: %v", err)
	}
	fen := EncodeFEN(g)
	want := "rnbakab1r/9/1c4nc1/p1p1C1p1p/9/9/P1P1P1P1P/7C1/9/RNBAKABNR b - - 0 2"
	if fen != want {
		t.Fatalf("EncodeFEN = %q\nwant %q", fen, want)
	}
	again, err := NewGameFromFEN(fen)
	if err != nil {
		t.Fatalf("NewGameFromFEN: %v", err)
	}
	if again.Board().String() != g.Board().String() {
		t.Fatalf("board changed by round trip")
	}
	if diff := cmp.Diff(g.Conditions(), again.Conditions()); diff != "" {
		t.Fatalf("conditions mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeFENOptionalCounters(t *testing.T) {
	_, c, err := DecodeFEN("4k4/9/9/9/9/9/9/9/9/4K4 r")
	if err != nil {
		t.Fatalf("DecodeFEN: %v", err)
	}
	if c.SideToMove != xiangqi.Red || c.FullMoveNumber != 1 || c.HalfMoveClock != 0 {
		t.Fatalf("conditions = %+v", c)
	}
}

func TestDecodeFENRejects(t *testing.T) {
	bad := []string{
		"",
		"rnbakabnr/9/1c5c1 w",
		"rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR x - - 0 1",
		"rnbakabnx/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR w - - 0 1",
		"rnbakabnrr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR w - - 0 1",
		"rnbakabn/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR w - - 0 1",
		"rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR w - - x 1",
		"rnbakabnr/9/1c5c1/p1p1p1p1p/9/9/P1P1P1P1P/1C5C1/9/RNBAKABNR w - - 0 0",
	}
	for _, fen := range bad {
		if _, _, err := DecodeFEN(fen); !errors.Is(err, ErrInvalidFEN) {
			t.Errorf("DecodeFEN(%q) err = %v, want ErrInvalidFEN", fen, err)
		}
	}
}

func TestReplayMovesStopsAtFirstFailure(t *testing.T) {
	g := xiangqi.NewGame()
	err := ReplayMoves(g, []string{"b3e3", "b3e3", "h10g8"})
	if !errors.Is(err, ErrInvalidMove) || !errors.Is(err, xiangqi.ErrIllegalMove) {
		t.Fatalf("err = %v", err)
	}
	if diff := cmp.Diff([]string{"b3e3"}, MoveList(g)); diff != "" {
		t.Fatalf("moves mismatch (-want +got):\n%s", diff)
	}

	if err := ReplayMoves(g, []string{"zz"}); !errors.Is(err, xiangqi.ErrBadMove) {
		t.Fatalf("bad token err = %v", err)
	}
}

func TestParsePosition(t *testing.T) {
	g, err := ParsePosition("startpos moves b3e3 h10g8")
	if err != nil {
		t.Fatalf("ParsePosition: %v", err)
	}
	if diff := cmp.Diff([]string{"b3e3", "h10g8"}, MoveList(g)); diff != "" {
		t.Fatalf("moves mismatch (-want +got):\n%s", diff)
	}

	g, err = ParsePosition("fen " + StartFEN + " moves h3e3")
	if err != nil {
		t.Fatalf("ParsePosition fen: %v", err)
	}
	if g.SideToMove() != xiangqi.Black {
		t.Fatalf("side = %s", g.SideToMove())
	}
	if PositionCommand(g) != "position fen "+EncodeFEN(g) {
		t.Fatalf("PositionCommand = %q", PositionCommand(g))
	}

	for _, in := range []string{"", "somewhere", "startpos b3e3"} {
		if _, err := ParsePosition(in); !errors.Is(err, ErrInvalidFEN) {
			t.Errorf("ParsePosition(%q) err = %v", in, err)
		}
	}
}
