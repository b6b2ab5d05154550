package board

import (
	"fmt"
	"strconv"
	"strings"
)

// Move is an ordered sequence of visited squares plus the unordered set
// of squares whose pieces were captured along the way. A quiet move has
// two visited squares and no captures; a capture chain visits one square
// per landing and records every square it jumped.
type Move struct {
	Squares  []int8
	Captured []int8
	Promoted bool
}

// From returns the move's origin square.
func (m Move) From() int { return int(m.Squares[0]) }

// To returns the move's final destination square.
func (m Move) To() int { return int(m.Squares[len(m.Squares)-1]) }

// IsCapture reports whether the move captures at least one piece.
func (m Move) IsCapture() bool { return len(m.Captured) > 0 }

// Jumps returns the number of jumps in a capture chain (0 for a quiet move).
func (m Move) Jumps() int { return len(m.Captured) }

// capturedMask returns the bitmask of captured squares.
func (m Move) capturedMask() uint64 {
	var mask uint64
	for _, sq := range m.Captured {
		mask |= uint64(1) << uint(sq)
	}
	return mask
}

// String renders the move in the notation of spec.md 4.F/6: 1-based
// origin and destination joined by '-' for a quiet move or 'x' for a
// capture, with every visited square listed for multi-jump chains.
func (m Move) String() string {
	sep := "-"
	if m.IsCapture() {
		sep = "x"
	}
	parts := make([]string, len(m.Squares))
	for i, sq := range m.Squares {
		parts[i] = strconv.Itoa(int(sq) + 1)
	}
	return strings.Join(parts, sep)
}

// Equal reports whether two moves have the same start and end square and
// one's visited path is a subsequence of the other's — the path-tolerant
// equality used to resolve PDN's tolerant-read dialect (spec.md 4.F) and
// to match a parsed notation move against the generated legal moves.
func (m Move) Equal(other Move) bool {
	if m.From() != other.From() || m.To() != other.To() {
		return false
	}
	longer, shorter := m.Squares, other.Squares
	if len(shorter) > len(longer) {
		longer, shorter = shorter, longer
	}
	i := 0
	for _, sq := range longer {
		if i < len(shorter) && shorter[i] == sq {
			i++
		}
	}
	return i == len(shorter)
}

func containsSquare(path []int8, sq int8) bool {
	for _, s := range path {
		if s == sq {
			return true
		}
	}
	return false
}

// parseMoveNotation parses every visited square out of a move string in
// the notation described by String, without resolving it against legal
// moves. The full path is kept, not just origin/destination: Equal's
// subsequence check needs it to disambiguate two legal chains that share
// endpoints (Russian's free choice of capture sequence routinely
// produces exactly that), so an input that names only the endpoints
// still matches every chain between them, while an input that spells
// out the whole path matches only the one chain it names.
func parseMoveNotation(s string) (Move, error) {
	s = strings.TrimSpace(s)
	var sep string
	switch {
	case strings.Contains(s, "x"):
		sep = "x"
	case strings.Contains(s, "-"):
		sep = "-"
	default:
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}
	fields := strings.Split(s, sep)
	squares := make([]int8, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil || n < 1 {
			return Move{}, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
		}
		squares = append(squares, int8(n-1))
	}
	if len(squares) < 2 {
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}
	return Move{Squares: squares}, nil
}
