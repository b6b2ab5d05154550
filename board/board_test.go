package board_test

import (
	"testing"

	"github.com/ChizhovVadim/godraughts/board"
	"github.com/ChizhovVadim/godraughts/variant"
)

func TestStartingMoveCounts(t *testing.T) {
	tests := []struct {
		name string
		v    *board.Variant
		want int
	}{
		{"Standard", variant.Standard, 9},
		{"American", variant.American, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := board.NewPosition(tt.v)
			moves := p.LegalMoves()
			if len(moves) != tt.want {
				t.Fatalf("got %d legal moves, want %d: %v", len(moves), tt.want, moves)
			}
			for _, m := range moves {
				if m.IsCapture() {
					t.Errorf("unexpected capture in opening position: %v", m)
				}
			}
			if p.IsGameOver() {
				t.Errorf("starting position must not be game over")
			}
		})
	}
}

func TestBitboardsDisjoint(t *testing.T) {
	for _, v := range []*board.Variant{variant.Standard, variant.American, variant.Russian, variant.Frisian} {
		p := board.NewPosition(v)
		if p.WhiteMen&p.WhiteKings != 0 || p.BlackMen&p.BlackKings != 0 ||
			p.All(true)&p.All(false) != 0 {
			t.Errorf("%s: bitboards not disjoint", v.Name)
		}
	}
}

func TestPushPopRoundTrip(t *testing.T) {
	for _, v := range []*board.Variant{variant.Standard, variant.American, variant.Russian, variant.Frisian} {
		p := board.NewPosition(v)
		for ply := 0; ply < 40; ply++ {
			moves := p.LegalMoves()
			if len(moves) == 0 {
				break
			}
			m := moves[ply%len(moves)]

			before := snapshot(p)
			p.Push(m)
			p.Pop()
			after := snapshot(p)

			if before != after {
				t.Fatalf("%s: push/pop did not restore position at ply %d: before=%+v after=%+v",
					v.Name, ply, before, after)
			}

			// Advance for real so the walk covers deeper positions.
			p.Push(m)
		}
	}
}

type posSnapshot struct {
	wm, wk, bm, bk uint64
	white          bool
	half           int
	key            uint64
}

func snapshot(p *board.Position) posSnapshot {
	return posSnapshot{p.WhiteMen, p.WhiteKings, p.BlackMen, p.BlackKings, p.WhiteToMove, p.Halfmove, p.HashKey()}
}

func TestMaximumCaptureEnforced(t *testing.T) {
	// Any position with captures must retain only the maximal chains in
	// a must-capture-maximum variant; verify the invariant directly on
	// the opening position after a few plies, which reliably produces
	// branching capture choices in Standard draughts.
	p := board.NewPosition(variant.Standard)
	for _, uci := range []string{"31-27", "19-23", "27-22"} {
		if err := p.PushNotation(uci); err != nil {
			t.Fatalf("PushNotation(%q): %v", uci, err)
		}
	}
	moves := p.LegalMoves()
	maxJumps := 0
	for _, m := range moves {
		if m.Jumps() > maxJumps {
			maxJumps = m.Jumps()
		}
	}
	if maxJumps == 0 {
		t.Skip("scenario produced no captures; invariant vacuously holds")
	}
	for _, m := range moves {
		if m.Jumps() != maxJumps {
			t.Errorf("non-maximal capture retained: %v (jumps=%d, max=%d)", m, m.Jumps(), maxJumps)
		}
	}
}

func TestFENRoundTrip(t *testing.T) {
	p := board.NewPosition(variant.Standard)
	fen := p.FEN()
	p2, err := board.FromFEN(variant.Standard, fen)
	if err != nil {
		t.Fatalf("FromFEN: %v", err)
	}
	if p2.FEN() != fen {
		t.Fatalf("FEN round trip mismatch: %q != %q", p2.FEN(), fen)
	}
	if !p.IsRepetition(p2) {
		t.Fatalf("round-tripped position differs")
	}
}

func TestPromotionStopsChainAmerican(t *testing.T) {
	// White man one step from promotion (row 0) captures into the
	// promotion row; American rules stop the chain even if a further
	// diagonal capture exists beyond it.
	p, err := board.FromFEN(variant.American, "W:W9:B5,1")
	if err != nil {
		t.Fatalf("FromFEN: %v", err)
	}
	moves := p.LegalMoves()
	for _, m := range moves {
		if m.Promoted && m.Jumps() > 1 {
			t.Errorf("American chain should stop at promotion, got %v", m)
		}
	}
}

func TestThreefoldRepetition(t *testing.T) {
	// Two kings, far enough apart that neither ever threatens a capture,
	// shuffle back and forth between the same two squares each. The
	// starting position must recur exactly three times (the test checks
	// right after the first, second and third full 4-ply cycle) before
	// IsThreefoldRepetition fires.
	p, err := board.FromFEN(variant.American, "W:WK1:BK25")
	if err != nil {
		t.Fatalf("FromFEN: %v", err)
	}
	cycle := []string{"1-6", "25-30", "6-1", "30-25"}
	for cycleNum := 1; cycleNum <= 3; cycleNum++ {
		for _, ply := range cycle {
			if err := p.PushNotation(ply); err != nil {
				t.Fatalf("cycle %d: PushNotation(%q): %v", cycleNum, ply, err)
			}
		}
		got := p.IsThreefoldRepetition()
		want := cycleNum == 3
		if got != want {
			t.Errorf("after cycle %d: IsThreefoldRepetition() = %v, want %v", cycleNum, got, want)
		}
	}
}

func TestHalfmoveDrawRuleFiresWithMenOnBoard(t *testing.T) {
	// Standard's 25-moves rule (original_source/draughts/boards/
	// standard.py's is_25_moves_rule) is unconditional: it fires at 50
	// reversible halfmoves regardless of how many men remain, not only
	// in a near-empty kings-only endgame.
	p := board.NewPosition(variant.Standard)
	p.Halfmove = 49
	if p.IsGameOver() {
		t.Fatalf("game over at halfmove=49, want not yet")
	}
	p.Halfmove = 50
	if !p.IsGameOver() {
		t.Fatalf("expected the 25-moves rule to fire at halfmove=50 with men on the board")
	}
	if got := p.Result(); got != "1/2-1/2" {
		t.Errorf("Result() = %q, want 1/2-1/2", got)
	}
}

func TestStandardFiveMovesRuleEndgame(t *testing.T) {
	// original_source's is_5_moves_rule: <=3 total pieces, a
	// king-weighted (king=2, man=1) sum >=5, draws at halfmove>=10 —
	// well before the general 50-halfmove rule.
	p, err := board.FromFEN(variant.Standard, "W:WK1,2:BK48")
	if err != nil {
		t.Fatalf("FromFEN: %v", err)
	}
	p.Halfmove = 9
	if p.IsGameOver() {
		t.Fatalf("game over at halfmove=9, want not yet (5-moves rule needs halfmove>=10)")
	}
	p.Halfmove = 10
	if !p.IsGameOver() {
		t.Fatalf("expected the 5-moves rule to fire at halfmove=10 in a 3-piece endgame")
	}
}

func TestRussianHasNoKingsOnlyRuleBelowGeneralThreshold(t *testing.T) {
	// Russian's is_15_moves_rule is unconditional at halfmove>=30; it
	// must fire with men on the board too (American's lack of a draw
	// rule below threefold repetition must not leak into Russian).
	p := board.NewPosition(variant.Russian)
	p.Halfmove = 30
	if !p.IsGameOver() {
		t.Fatalf("expected Russian's 15-moves rule to fire at halfmove=30 with men on the board")
	}
}

func TestAmericanHasNoHalfmoveDrawRule(t *testing.T) {
	// american.py's is_draw checks only threefold repetition.
	p := board.NewPosition(variant.American)
	p.Halfmove = 200
	if p.IsGameOver() {
		t.Fatalf("American has no halfmove-based draw rule, but position was reported as over")
	}
}

// TestAmbiguousCaptureSamesEndpointsDifferentPath builds a Russian
// position where a white flying king has two legal two-jump capture
// chains that share the same origin and destination but pass through
// different intermediate squares: the king on 3 jumps 7, stops on either
// 10 or 14, then jumps 17 and lands on 21.
// A notation string that only names the endpoints must stay ambiguous
// between them, but a notation string that spells out the full path must
// resolve to exactly one.
func TestAmbiguousCaptureSamesEndpointsDifferentPath(t *testing.T) {
	p, err := board.FromFEN(variant.Russian, "W:WK3:B7,17")
	if err != nil {
		t.Fatalf("FromFEN: %v", err)
	}
	moves := p.LegalMoves()

	var chains []board.Move
	for _, m := range moves {
		if m.From() == 2 && m.To() == 20 && m.Jumps() == 2 {
			chains = append(chains, m)
		}
	}
	if len(chains) != 2 {
		t.Fatalf("expected exactly 2 distinct same-endpoint capture chains, got %d: %v", len(chains), chains)
	}
	if chains[0].Equal(chains[1]) {
		t.Fatalf("the two chains share no common intermediate square and must not compare equal: %v vs %v", chains[0], chains[1])
	}

	// The endpoints-only notation must be ambiguous between the two chains.
	if err := p.Copy().PushNotation("3x21"); err != board.ErrAmbiguousNotation {
		t.Errorf("PushNotation(%q) = %v, want ErrAmbiguousNotation", "3x21", err)
	}

	// Each full-path notation must resolve to exactly its own chain.
	for _, want := range chains {
		notation := want.String()
		cp := p.Copy()
		if err := cp.PushNotation(notation); err != nil {
			t.Fatalf("PushNotation(%q): %v", notation, err)
		}
		last, err := cp.Pop()
		if err != nil {
			t.Fatalf("Pop: %v", err)
		}
		if !last.Equal(want) || last.To() != want.To() {
			t.Errorf("PushNotation(%q) resolved to %v, want %v", notation, last, want)
		}
	}
}

func TestPDNRoundTripPreservesAmbiguousCapturePath(t *testing.T) {
	// spec.md 4.F/8's from_pdn(pdn(game)) = game round-trip law, exercised
	// against exactly the scenario that breaks it if parseMoveNotation
	// drops the visited path: a capture chain sharing its endpoints with
	// another legal chain.
	p, err := board.FromFEN(variant.Russian, "W:W18:B6,7,14,15")
	if err != nil {
		t.Fatalf("FromFEN: %v", err)
	}
	var chosen board.Move
	for _, m := range p.LegalMoves() {
		if m.From() == 17 && m.To() == 1 && m.Jumps() == 2 {
			chosen = m
			break
		}
	}
	if chosen.Squares == nil {
		t.Fatalf("setup failure: no matching capture chain found")
	}
	p.Push(chosen)

	pdn := p.PDN()
	replayed, err := board.FromPDN(variant.Russian, pdn)
	if err != nil {
		t.Fatalf("FromPDN(%q): %v", pdn, err)
	}
	if replayed.FEN() != p.FEN() {
		t.Errorf("round trip mismatch: FromPDN(PDN(game)) = %q, want %q (pdn was %q)", replayed.FEN(), p.FEN(), pdn)
	}
}

func TestPerftShallow(t *testing.T) {
	p := board.NewPosition(variant.Standard)
	if got := board.Perft(p, 1); got != 9 {
		t.Errorf("perft(1) = %d, want 9", got)
	}
}

func TestNoDuplicateMoves(t *testing.T) {
	p := board.NewPosition(variant.Frisian)
	moves := p.LegalMoves()
	seen := map[string]bool{}
	for _, m := range moves {
		key := m.String()
		if seen[key] {
			t.Errorf("duplicate move %v", m)
		}
		seen[key] = true
	}
}
