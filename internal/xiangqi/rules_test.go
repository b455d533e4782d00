package xiangqi

import "testing"

// 黑将 d10，红车 b10 封底线、a9 封九路：黑方无子可动且被将军。
const matedDiagram = `.R.k.....
R........
.........
.........
.........
.........
.........
.........
.........
.....K...`

// 黑将 d10，红车 a9 封 d9，红车 e2 守 e10：黑方无子可动但没有被将军。
const stalematedDiagram = `...k.....
R........
.........
.........
.........
.........
.........
.........
....R....
.....K...`

func TestCheckmateAndStalemate(t *testing.T) {
	tests := []struct {
		name      string
		diagram   string
		checkmate bool
		stalemate bool
	}{
		{"mated", matedDiagram, true, false},
		{"stalemated", stalematedDiagram, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustBoard(t, tt.diagram)
			n := len(SafeMoves(b, Black))
			if n != 0 {
				t.Fatalf("black has %d safe moves: %v", n, moveTokens(SafeMoves(b, Black)))
			}
			if got := Checkmated(b, Black, n); got != tt.checkmate {
				t.Fatalf("Checkmated = %v", got)
			}
			if got := Stalemated(b, Black, n); got != tt.stalemate {
				t.Fatalf("Stalemated = %v", got)
			}
			// 几何合法走法不为零：两层过滤的差别
			if CountMoves(b.LegalMovesBySide(Black)) == 0 {
				t.Fatalf("geometric map should still list the general's steps")
			}
		})
	}
}

func TestNotOverWithMovesLeft(t *testing.T) {
	b := NewStartingBoard()
	n := len(SafeMoves(b, Red))
	if Checkmated(b, Red, n) || Stalemated(b, Red, n) {
		t.Fatalf("starting position reported as finished")
	}
	if !Stalemated(b, Red, 0) {
		t.Fatalf("zero moves without check is stalemate")
	}
}

func TestCausesSelfCheckIsPure(t *testing.T) {
	b := mustBoard(t, `....k....
....r....
.........
.........
.........
.........
.........
.........
....R....
....K....`)
	before := b.String()
	sideways := NewMove(Sq(5, 2), Sq(4, 2))
	forward := NewMove(Sq(5, 2), Sq(5, 5))

	for i := 0; i < 2; i++ {
		if !CausesSelfCheck(b, sideways, Red) {
			t.Fatalf("pinned chariot stepping aside must expose the general")
		}
		if CausesSelfCheck(b, forward, Red) {
			t.Fatalf("chariot moving along the pin is safe")
		}
	}
	if b.String() != before {
		t.Fatalf("CausesSelfCheck modified the board")
	}
	pc, _ := b.At(Sq(5, 2))
	if pc == nil || pc.Pos != Sq(5, 2) {
		t.Fatalf("piece moved: %v", pc)
	}
	if !CausesSelfCheck(b, NewMove(Sq(1, 1), Sq(1, 2)), Red) {
		t.Fatalf("a move from an empty square cannot be played")
	}
}

func TestGeometricallyLegal(t *testing.T) {
	b := NewStartingBoard()
	tests := []struct {
		mv   Move
		side Side
		want bool
	}{
		{NewMove(Sq(1, 1), Sq(1, 2)), Red, true},
		{NewMove(Sq(1, 1), Sq(1, 4)), Red, false}, // 自己的兵
		{NewMove(Sq(2, 3), Sq(2, 10)), Red, true},
		{NewMove(Sq(1, 1), Sq(0, 1)), Red, false},
		{NewMove(Sq(1, 10), Sq(1, 7)), Black, false},
	}
	for _, tt := range tests {
		if got := GeometricallyLegal(b, tt.mv, tt.side); got != tt.want {
			t.Errorf("GeometricallyLegal(%s, %s) = %v, want %v", tt.mv, tt.side, got, tt.want)
		}
	}
}
