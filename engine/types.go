// Package engine implements the negamax search used to pick a move in a
// position: iterative deepening with a transposition table, killer
// moves and history heuristic for move ordering, quiescence search at
// the leaves, and principal-variation search with late-move reductions.
package engine

import "github.com/ChizhovVadim/godraughts/board"

const (
	maxHeight = 64

	valueInfinity = 32000
	valueMate     = 31000
	valueDraw     = 0

	// manValue and kingValue are the material weights used by the
	// evaluator, on the same centipawn scale as the teacher's PawnValue.
	manValue  = 100
	kingValue = 300
)

// mateIn and lossIn bound the score window a side can still improve on
// at a given search height: no position can score better than giving
// mate next move, nor worse than being mated immediately.
func mateIn(height int) int { return valueMate - height }
func lossIn(height int) int { return -valueMate + height }

// LimitsType describes the time or node budget for one search, mirroring
// the subset of UCI go-command limits a draughts engine needs.
type LimitsType struct {
	MoveTime       int
	WhiteTime      int
	BlackTime      int
	WhiteIncrement int
	BlackIncrement int
	MovesToGo      int
	Depth          int
	Nodes          int
	Infinite       bool
}

// SearchParams bundles everything one call to Engine.Search needs.
type SearchParams struct {
	Position *board.Position
	Limits   LimitsType
	Progress func(SearchInfo)
}

// SearchInfo reports one iteration of the search: the depth just
// completed, its score (from the side to move's perspective, in
// centipawns, or a mate distance), and the resulting principal variation.
type SearchInfo struct {
	Depth    int
	Score    int
	Nodes    int64
	Time     int64
	MainLine []board.Move
}
