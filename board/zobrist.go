package board

import "math/rand"

// Zobrist keys are process-wide immutable state, built once at package
// init from a fixed seed so hashes are reproducible across runs.
var (
	zobristPiece [4][MaxSquares]uint64 // indexed by pieceIndex(white, king), square
	zobristSide  uint64
)

// pieceIndex maps (white, king) to a row in zobristPiece.
func pieceIndex(white, king bool) int {
	idx := 0
	if !white {
		idx |= 1
	}
	if king {
		idx |= 2
	}
	return idx
}

func init() {
	r := rand.New(rand.NewSource(0))
	for i := range zobristPiece {
		for sq := range zobristPiece[i] {
			zobristPiece[i][sq] = r.Uint64()
		}
	}
	zobristSide = r.Uint64()
}

func pieceSquareKey(white, king bool, sq int) uint64 {
	return zobristPiece[pieceIndex(white, king)][sq]
}
