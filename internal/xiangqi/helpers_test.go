package xiangqi

import (
	"slices"
	"strings"
	"testing"
)

func mustBoard(t *testing.T, diagram string) *Board {
	t.Helper()
	b, err := ParseDiagram(diagram)
	if err != nil {
		t.Fatalf("parse diagram: %v", err)
	}
	return b
}

func mustSquare(t *testing.T, s string) Square {
	t.Helper()
	sq, err := ParseSquare(s)
	if err != nil {
		t.Fatalf("parse square %q: %v", s, err)
	}
	return sq
}

// pseudoEnds collects the valid end squares yielded for the piece on from.
func pseudoEnds(t *testing.T, b *Board, from string) []string {
	t.Helper()
	sq := mustSquare(t, from)
	pc := b.at(sq)
	if pc == nil {
		t.Fatalf("no piece on %s", from)
	}
	var out []string
	for mv := range pc.PseudoMoves(b, sq) {
		if mv.End.Valid() {
			out = append(out, mv.End.String())
		}
	}
	slices.Sort(out)
	return out
}

// legalEnds collects the end squares in the memoized map for the piece on from.
func legalEnds(t *testing.T, b *Board, from string) []string {
	t.Helper()
	sq := mustSquare(t, from)
	pc := b.at(sq)
	if pc == nil {
		t.Fatalf("no piece on %s", from)
	}
	var out []string
	for _, mv := range b.LegalMovesBySide(pc.Owner)[pc] {
		out = append(out, mv.End.String())
	}
	slices.Sort(out)
	return out
}

func sorted(s ...string) []string {
	out := slices.Clone(s)
	slices.Sort(out)
	return out
}

func moveTokens(moves []Move) []string {
	out := make([]string, len(moves))
	for i, mv := range moves {
		out[i] = mv.String()
	}
	return out
}

// diagram builds a board text from rank-10-first rows, padding missing rows
// with empty ranks so tests only spell out what matters.
func diagram(rows ...string) string {
	full := make([]string, 0, Ranks)
	full = append(full, rows...)
	for len(full) < Ranks {
		full = append(full, ".........")
	}
	return strings.Join(full, "\n")
}
