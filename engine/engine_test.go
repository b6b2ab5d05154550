package engine

import (
	"testing"

	"github.com/ChizhovVadim/godraughts/board"
	"github.com/ChizhovVadim/godraughts/variant"
)

func TestSearchReturnsLegalMove(t *testing.T) {
	for _, v := range []*board.Variant{variant.Standard, variant.American, variant.Russian, variant.Frisian} {
		t.Run(v.Name, func(t *testing.T) {
			p := board.NewPosition(v)
			e := NewEngine()
			move, ok := e.BestMove(p, LimitsType{Depth: 4})
			if !ok {
				t.Fatalf("no move returned")
			}
			legal := p.LegalMoves()
			found := false
			for _, m := range legal {
				if m.Equal(move) {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("search returned %v, not among legal moves %v", move, legal)
			}
		})
	}
}

func TestSearchLeavesPositionUnchanged(t *testing.T) {
	p := board.NewPosition(variant.Standard)
	before := p.FEN()
	e := NewEngine()
	e.BestMove(p, LimitsType{Depth: 5})
	if after := p.FEN(); after != before {
		t.Fatalf("search mutated the position: before=%q after=%q", before, after)
	}
}

func TestSearchRespectsNodeLimit(t *testing.T) {
	p := board.NewPosition(variant.Standard)
	e := NewEngine()
	info := e.Search(SearchParams{Position: p, Limits: LimitsType{Nodes: 200, Depth: 30}})
	if len(info.MainLine) == 0 {
		t.Fatalf("no result under a tight node budget")
	}
	if info.Nodes <= 0 {
		t.Errorf("expected some nodes to be counted, got %d", info.Nodes)
	}
}

func TestSearchTakesForcedCapture(t *testing.T) {
	// White has a single man that can immediately capture a black man;
	// a one-ply search must prefer it over any quiet alternative, since
	// draughts makes the capture mandatory in the first place.
	p, err := board.FromFEN(variant.Standard, "W:W28:B22,23")
	if err != nil {
		t.Fatalf("FromFEN: %v", err)
	}
	legal := p.LegalMoves()
	if len(legal) == 0 || !legal[0].IsCapture() {
		t.Fatalf("expected a mandatory capture in this position, got %v", legal)
	}
	e := NewEngine()
	move, ok := e.BestMove(p, LimitsType{Depth: 2})
	if !ok || !move.IsCapture() {
		t.Errorf("search should have returned a capture, got %v (ok=%v)", move, ok)
	}
}

func TestEvaluateFavorsMaterial(t *testing.T) {
	// An extra white man, nothing else different, must score better for
	// white to move than the same position down a man.
	up, err := board.FromFEN(variant.American, "W:W12,16:B1")
	if err != nil {
		t.Fatalf("FromFEN: %v", err)
	}
	even, err := board.FromFEN(variant.American, "W:W12:B1")
	if err != nil {
		t.Fatalf("FromFEN: %v", err)
	}
	if evaluate(up) <= evaluate(even) {
		t.Errorf("extra man did not improve the evaluation: up=%d even=%d", evaluate(up), evaluate(even))
	}
}

func TestEvaluateSignFlipsWithSideToMove(t *testing.T) {
	p, err := board.FromFEN(variant.American, "W:W12,16:B1")
	if err != nil {
		t.Fatalf("FromFEN: %v", err)
	}
	whiteScore := evaluate(p)
	p.WhiteToMove = false
	blackScore := evaluate(p)
	// The tempo bonus goes to whichever side is to move, so apart from it
	// the two scores are exact negations of each other.
	if whiteScore != -blackScore+2*tempoBonus {
		t.Errorf("evaluate should negate with side to move, tempo bonus aside: white=%d black=%d", whiteScore, blackScore)
	}
}

func TestTransTableRoundTrip(t *testing.T) {
	tt := NewTransTable(1)
	p := board.NewPosition(variant.Standard)
	move := p.LegalMoves()[0]
	tt.Update(p, 6, 123, boundLower|boundUpper, move)
	depth, score, bound, got, ok := tt.Read(p)
	if !ok {
		t.Fatalf("expected a hit after Update")
	}
	if depth != 6 || score != 123 || bound != boundLower|boundUpper {
		t.Errorf("got depth=%d score=%d bound=%d", depth, score, bound)
	}
	if !got.Equal(move) {
		t.Errorf("resolved move %v, want %v", got, move)
	}
}

func TestHistoryTableRewardsCutoffs(t *testing.T) {
	ht := newHistoryTable()
	ht.Clear()
	p := board.NewPosition(variant.Standard)
	moves := p.LegalMoves()
	best, rest := moves[0], moves[1:2]
	before := ht.Score(true, best)
	ht.Update(true, best, rest, 4)
	after := ht.Score(true, best)
	if after <= before {
		t.Errorf("history score did not increase after a cutoff: before=%d after=%d", before, after)
	}
}
