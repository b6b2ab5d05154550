package board

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
)

// MoveHistory returns every move pushed onto the position so far, in
// play order.
func (p *Position) MoveHistory() []Move {
	moves := make([]Move, len(p.stack))
	for i, rec := range p.stack {
		moves[i] = rec.move
	}
	return moves
}

// PDN renders the position's move history as "N. white black N+1. ..."
// using the visited-sequence-only dialect for round-trip correctness
// (spec.md 4.F): a quiet ply is "a-b", a capture is "axbx...xk" with no
// spaces, so each ply stays a single word for FromPDN.
func (p *Position) PDN() string {
	moves := p.MoveHistory()
	var sb strings.Builder
	for i := 0; i < len(moves); i += 2 {
		if i > 0 {
			sb.WriteString(" ")
		}
		fmt.Fprintf(&sb, "%d. %s", i/2+1, moves[i].String())
		if i+1 < len(moves) {
			sb.WriteString(" ")
			sb.WriteString(moves[i+1].String())
		}
	}
	return sb.String()
}

// FromPDN replays a PDN move list starting from variant v's starting
// position. Each ply is resolved against the legal moves at that point,
// tolerating either the visited-sequence-only or the with-intermediate-
// captures dialect on read; an unresolvable or ambiguous ply fails
// loudly rather than silently skipping a move.
func FromPDN(v *Variant, pdn string) (*Position, error) {
	p := NewPosition(v)
	scanner := bufio.NewScanner(strings.NewReader(pdn))
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		tok := scanner.Text()
		if isMoveNumberToken(tok) {
			continue
		}
		if tok == "*" || tok == "1-0" || tok == "0-1" || tok == "1/2-1/2" {
			continue
		}
		if err := p.PushNotation(tok); err != nil {
			return nil, fmt.Errorf("%w: ply %q", err, tok)
		}
	}
	return p, nil
}

// isMoveNumberToken reports whether tok is a move-number marker like
// "1." or "12." as opposed to a move in "a-b"/"axb" notation.
func isMoveNumberToken(tok string) bool {
	if !strings.HasSuffix(tok, ".") {
		return false
	}
	_, err := strconv.Atoi(strings.TrimSuffix(tok, "."))
	return err == nil
}
