package board

import "math/bits"

// Piece codes per spec.md 3.2: signed small integer per square.
const (
	WhiteKing = -2
	WhiteMan  = -1
	Empty     = 0
	BlackMan  = 1
	BlackKing = 2
)

// undoRecord carries everything push needs to reverse exactly: the move
// itself, the piece codes it captured (in capture order, for a faithful
// pop even though captured pieces are always enemy men-or-kings), the
// pre-move halfmove clock, a copy of the pre-move repetition window, and
// the pre-move hash key. Whether the move promoted is carried by the move.
type undoRecord struct {
	move           Move
	capturedPieces []int8
	prevHalfmove   int
	prevRepetition []uint64
	prevKey        uint64
}

// Position is a bitboard draughts position for one Variant. It is
// mutated only through Push and Pop; it is owned by at most one caller
// at a time (spec.md 5).
type Position struct {
	Variant *Variant

	WhiteMen, WhiteKings uint64
	BlackMen, BlackKings uint64

	WhiteToMove bool

	// Halfmove is the number of plies since the last man move or
	// capture; Repetition is the hash at the end of each such ply,
	// reset whenever Halfmove resets (spec.md 3.3).
	Halfmove    int
	Repetition  []uint64
	Key         uint64

	stack []undoRecord
}

// NewPosition returns the starting position for v.
func NewPosition(v *Variant) *Position {
	p := &Position{
		Variant:     v,
		WhiteMen:    v.StartingWhiteMen,
		BlackMen:    v.StartingBlackMen,
		WhiteToMove: true,
	}
	p.Key = p.computeKey()
	return p
}

// Copy returns a shallow copy: bitboards, side, counters and hash, with
// an empty move stack and repetition window (spec.md 6, board.copy()).
func (p *Position) Copy() *Position {
	return &Position{
		Variant:     p.Variant,
		WhiteMen:    p.WhiteMen,
		WhiteKings:  p.WhiteKings,
		BlackMen:    p.BlackMen,
		BlackKings:  p.BlackKings,
		WhiteToMove: p.WhiteToMove,
		Halfmove:    p.Halfmove,
		Key:         p.Key,
	}
}

func (p *Position) colorMen(white bool) uint64 {
	if white {
		return p.WhiteMen
	}
	return p.BlackMen
}

func (p *Position) colorKings(white bool) uint64 {
	if white {
		return p.WhiteKings
	}
	return p.BlackKings
}

// Men returns the man bitboard for the given color.
func (p *Position) Men(white bool) uint64 { return p.colorMen(white) }

// Kings returns the king bitboard for the given color.
func (p *Position) Kings(white bool) uint64 { return p.colorKings(white) }

// All returns every piece of the given color.
func (p *Position) All(white bool) uint64 { return p.colorMen(white) | p.colorKings(white) }

// PieceCounts returns the per-color, per-kind piece counts, used by
// endgame-specific draw rules that key on how many men and kings
// remain (spec.md 4.A's variant-specific draw-rule thresholds).
func (p *Position) PieceCounts() (whiteMen, whiteKings, blackMen, blackKings int) {
	return popCount(p.WhiteMen), popCount(p.WhiteKings), popCount(p.BlackMen), popCount(p.BlackKings)
}

// Occupied returns every occupied square, either color.
func (p *Position) Occupied() uint64 {
	return p.WhiteMen | p.WhiteKings | p.BlackMen | p.BlackKings
}

// EmptySquares returns every unoccupied playable square.
func (p *Position) EmptySquares() uint64 {
	return ^p.Occupied() & squaresMask(p.Variant.Squares)
}

func squaresMask(n int) uint64 {
	if n >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << uint(n)) - 1
}

// ColorToMove reports whether white is to move.
func (p *Position) ColorToMove() bool { return p.WhiteToMove }

// PieceAt returns the piece code on sq, per the WhiteKing..BlackKing
// constants, or Empty.
func (p *Position) PieceAt(sq int) int8 {
	bit := uint64(1) << uint(sq)
	switch {
	case p.WhiteMen&bit != 0:
		return WhiteMan
	case p.WhiteKings&bit != 0:
		return WhiteKing
	case p.BlackMen&bit != 0:
		return BlackMan
	case p.BlackKings&bit != 0:
		return BlackKing
	default:
		return Empty
	}
}

// HashKey returns the incremental Zobrist key.
func (p *Position) HashKey() uint64 { return p.Key }

func (p *Position) computeKey() uint64 {
	var key uint64
	if !p.WhiteToMove {
		key ^= zobristSide
	}
	for bb := p.WhiteMen; bb != 0; bb &= bb - 1 {
		key ^= pieceSquareKey(true, false, firstOne(bb))
	}
	for bb := p.WhiteKings; bb != 0; bb &= bb - 1 {
		key ^= pieceSquareKey(true, true, firstOne(bb))
	}
	for bb := p.BlackMen; bb != 0; bb &= bb - 1 {
		key ^= pieceSquareKey(false, false, firstOne(bb))
	}
	for bb := p.BlackKings; bb != 0; bb &= bb - 1 {
		key ^= pieceSquareKey(false, true, firstOne(bb))
	}
	return key
}

func firstOne(bb uint64) int {
	return bits.TrailingZeros64(bb)
}

func popCount(bb uint64) int {
	return bits.OnesCount64(bb)
}

// xorPiece toggles a single piece at sq in both the bitboard and the
// incremental hash, mirroring the teacher's common.xorPiece.
func (p *Position) xorPiece(white, king bool, sq int) {
	bit := uint64(1) << uint(sq)
	switch {
	case white && !king:
		p.WhiteMen ^= bit
	case white && king:
		p.WhiteKings ^= bit
	case !white && !king:
		p.BlackMen ^= bit
	default:
		p.BlackKings ^= bit
	}
	p.Key ^= pieceSquareKey(white, king, sq)
}

// IsRepetition reports whether the other position is identical in
// bitboards and side to move. IsThreefoldRepetition does not use it; it
// compares hash keys instead.
func (p *Position) IsRepetition(other *Position) bool {
	return p.WhiteMen == other.WhiteMen &&
		p.WhiteKings == other.WhiteKings &&
		p.BlackMen == other.BlackMen &&
		p.BlackKings == other.BlackKings &&
		p.WhiteToMove == other.WhiteToMove
}
