package engine

import (
	"math/bits"
	"sync"

	"github.com/ChizhovVadim/godraughts/board"
)

// pstScale bounds the advancement and centralization tables at ±30
// centipawns, under a third of the value of a man, so no single piece's
// positional term outweighs a man.
const pstScale = 30

// tempoBonus rewards the side to move for having the move, the same
// small constant the teacher's search adds implicitly through its
// side-to-move-relative convention.
const tempoBonus = 5

// evalTables are the per-variant piece-square tables: advancement for
// men (who gain by approaching the promotion row) and centralization
// for kings (who gain by commanding the middle of the board), indexed
// by playable square and built once per board.Variant since the
// geometry never changes after construction.
type evalTables struct {
	whiteManPST, blackManPST   []int
	whiteKingPST, blackKingPST []int
}

var (
	evalTableMu    sync.Mutex
	evalTableCache = map[*board.Variant]*evalTables{}
)

func tablesFor(v *board.Variant) *evalTables {
	evalTableMu.Lock()
	defer evalTableMu.Unlock()
	if t, ok := evalTableCache[v]; ok {
		return t
	}
	t := buildEvalTables(v)
	evalTableCache[v] = t
	return t
}

func buildEvalTables(v *board.Variant) *evalTables {
	t := &evalTables{
		whiteManPST:  make([]int, v.Squares),
		blackManPST:  make([]int, v.Squares),
		whiteKingPST: make([]int, v.Squares),
		blackKingPST: make([]int, v.Squares),
	}
	side := v.BoardSide
	center := float64(side-1) / 2
	maxDist := center
	for sq := 0; sq < v.Squares; sq++ {
		row, col := v.SquareCoords(sq)

		// White advances toward row 0, black toward row side-1.
		t.whiteManPST[sq] = pstScale * (side - 1 - row) / (side - 1)
		t.blackManPST[sq] = pstScale * row / (side - 1)

		dist := chebyshev(float64(row)-center, float64(col)-center)
		central := pstScale - int(pstScale*dist/maxDist)
		t.whiteKingPST[sq] = central
		t.blackKingPST[sq] = central
	}
	return t
}

func chebyshev(dr, dc float64) float64 {
	dr, dc = absf(dr), absf(dc)
	if dr > dc {
		return dr
	}
	return dc
}

func absf(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// evaluate scores p from the perspective of the side to move: positive
// means that side stands better. Material carries the most weight per
// piece; the piece-square terms are summed over all pieces, so in a
// position with many advanced men they can outweigh a one-man deficit.
func evaluate(p *board.Position) int {
	t := tablesFor(p.Variant)
	score := 0

	for bb := p.WhiteMen; bb != 0; bb &= bb - 1 {
		sq := bits.TrailingZeros64(bb)
		score += manValue + t.whiteManPST[sq]
	}
	for bb := p.WhiteKings; bb != 0; bb &= bb - 1 {
		sq := bits.TrailingZeros64(bb)
		score += kingValue + t.whiteKingPST[sq]
	}
	for bb := p.BlackMen; bb != 0; bb &= bb - 1 {
		sq := bits.TrailingZeros64(bb)
		score -= manValue + t.blackManPST[sq]
	}
	for bb := p.BlackKings; bb != 0; bb &= bb - 1 {
		sq := bits.TrailingZeros64(bb)
		score -= kingValue + t.blackKingPST[sq]
	}

	if p.WhiteToMove {
		score += tempoBonus
	} else {
		score -= tempoBonus
	}

	if !p.WhiteToMove {
		score = -score
	}
	return score
}
