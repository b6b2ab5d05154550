// Package variant declares the concrete rule sets this module supports,
// each a board.Variant value built from the geometry and draw-rule
// constants of the corresponding variant in the reference library this
// engine was distilled from.
package variant

import "github.com/ChizhovVadim/godraughts/board"

// Standard is International (10x10) draughts: flying kings, mandatory
// maximum captures, men capture in all four diagonal directions,
// mid-chain promotion continues as a king.
var Standard = &board.Variant{
	Name:                "Standard",
	BoardSide:           10,
	Squares:             50,
	FlyingKings:         true,
	MenCaptureBackward:  true,
	MustCaptureMaximum:  true,
	PromotionStopsChain: false,
	ManCaptureValue:     1,
	KingCaptureValue:    1,
	HalfmoveDrawPlies:   50, // 25-moves rule: 25 reversible moves = 50 halfmoves
	ExtraDrawRule:       standardExtraDraw,
	StartingWhiteMen:    startingMen(50, 30, 20),
	StartingBlackMen:    startingMen(50, 0, 20),
}

// standardExtraDraw reproduces is_16_moves_rule and is_5_moves_rule: two
// near-empty-endgame special cases that can fire earlier than the
// general 50-halfmove rule above, keyed on total piece count and a
// king-weighted sum (a king counts double).
func standardExtraDraw(p *board.Position) bool {
	wm, wk, bm, bk := p.PieceCounts()
	total := wm + wk + bm + bk
	weighted := (wk+bk)*2 + wm + bm
	if p.Halfmove >= 32 && total <= 4 && weighted >= 6 {
		return true // 16-moves rule: <=4 pieces, 32+ halfmoves
	}
	if total <= 3 && weighted >= 5 && p.Halfmove >= 10 {
		return true // 5-moves rule: <=3 pieces, 10+ halfmoves
	}
	return false
}

// American (English draughts) is 8x8 with short-range kings, men
// capture forward only, and the chain stops dead on promotion.
var American = &board.Variant{
	Name:                "American",
	BoardSide:           8,
	Squares:             32,
	FlyingKings:         false,
	MenCaptureBackward:  false,
	MustCaptureMaximum:  false,
	PromotionStopsChain: true,
	StartingWhiteMen:    startingMen(32, 20, 12),
	StartingBlackMen:    startingMen(32, 0, 12),
}

// Russian is 8x8 with flying kings, men capturing both forward and
// backward, free choice of capture sequence (no maximum-capture rule),
// and mid-chain promotion.
var Russian = &board.Variant{
	Name:                "Russian",
	BoardSide:           8,
	Squares:             32,
	FlyingKings:         true,
	MenCaptureBackward:  true,
	MustCaptureMaximum:  false,
	PromotionStopsChain: false,
	HalfmoveDrawPlies:   30, // 15-moves rule: 15 reversible moves = 30 halfmoves
	ExtraDrawRule:       russianExtraDraw,
	StartingWhiteMen:    startingMen(32, 20, 12),
	StartingBlackMen:    startingMen(32, 0, 12),
}

// russianExtraDraw reproduces is_3_kings_vs_1_rule: with no men left, a
// side holding 3+ kings against a lone king must win within 15 moves
// (30 halfmoves) or the game is drawn. That threshold is the same as
// HalfmoveDrawPlies above, so this rule never actually fires before the
// general one does — it is implemented anyway to match the source's own
// is_draw formula, which keeps it as a logically distinct condition.
func russianExtraDraw(p *board.Position) bool {
	wm, wk, bm, bk := p.PieceCounts()
	if wm > 0 || bm > 0 {
		return false
	}
	if (wk >= 3 && bk == 1) || (bk >= 3 && wk == 1) {
		return p.Halfmove >= 30
	}
	return false
}

// Frisian is 10x10 with flying kings, orthogonal captures in addition
// to diagonal ones, and a maximum-count capture rule whose ties are
// broken by weighted capture value, then in favor of king-initiated
// chains. The default capture weights follow spec.md 4.D.2/9 rather than
// the reference library's own 100/199 scale; both express the same
// "two men still beat one king" tie-break and are configurable per
// Variant instance.
var Frisian = &board.Variant{
	Name:                "Frisian",
	BoardSide:           10,
	Squares:             50,
	FlyingKings:         true,
	MenCaptureBackward:  true,
	MustCaptureMaximum:  true,
	OrthogonalCaptures:  true,
	PromotionStopsChain: false,
	ManCaptureValue:     1.0,
	KingCaptureValue:    1.5,
	HalfmoveDrawPlies:   50, // 25-moves rule: 25 reversible moves = 50 halfmoves
	ExtraDrawRule:       frisianExtraDraw,
	StartingWhiteMen:    startingMen(50, 30, 20),
	StartingBlackMen:    startingMen(50, 0, 20),
}

// frisianExtraDraw reproduces is_16_moves_rule (2 kings vs 1 king, no
// men left, 14+ halfmoves) and is_5_moves_rule (1 king vs 1 king, no
// men left, 4+ halfmoves), both of which fire well before the general
// 50-halfmove rule above.
func frisianExtraDraw(p *board.Position) bool {
	wm, wk, bm, bk := p.PieceCounts()
	if wm > 0 || bm > 0 {
		return false
	}
	kings := wk + bk
	if p.Halfmove >= 14 && kings == 3 {
		return true
	}
	if p.Halfmove >= 4 && kings == 2 && wk == 1 && bk == 1 {
		return true
	}
	return false
}

// startingMen returns a bitmask of `count` consecutive squares starting
// at `from` out of `squares` total playable squares.
func startingMen(squares, from, count int) uint64 {
	var mask uint64
	for i := 0; i < count; i++ {
		mask |= uint64(1) << uint(from+i)
	}
	return mask
}
