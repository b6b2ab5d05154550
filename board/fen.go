package board

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// FEN returns the position in the grammar of spec.md 4.F:
// "[Side]:[WhiteList]:[BlackList]", each list a comma-separated
// K?<1-based-square> sequence, kings prefixed with K.
func (p *Position) FEN() string {
	var sb strings.Builder
	if p.WhiteToMove {
		sb.WriteString("W")
	} else {
		sb.WriteString("B")
	}
	sb.WriteString(":W")
	sb.WriteString(squareList(p.WhiteMen, p.WhiteKings, p.Variant.Squares))
	sb.WriteString(":B")
	sb.WriteString(squareList(p.BlackMen, p.BlackKings, p.Variant.Squares))
	return sb.String()
}

func squareList(men, kings uint64, squares int) string {
	var parts []string
	for sq := 0; sq < squares; sq++ {
		bit := uint64(1) << uint(sq)
		switch {
		case men&bit != 0:
			parts = append(parts, strconv.Itoa(sq+1))
		case kings&bit != 0:
			parts = append(parts, "K"+strconv.Itoa(sq+1))
		}
	}
	return strings.Join(parts, ",")
}

// leadingPrefix tolerates an optional game-type or header token
// ("G40:", "P1:", a redundant leading color field) some PDN dialects
// prepend to the FEN body, stripping at most one such token.
var leadingPrefix = regexp.MustCompile(`^(?:[A-Z]+[0-9]+:|[WB]:([WB]:))`)

// FromFEN parses a FEN string for variant v (spec.md 4.F). The caller
// chooses the variant; unknown variants are never auto-detected.
func FromFEN(v *Variant, fen string) (*Position, error) {
	s := strings.ToUpper(strings.TrimSpace(fen))
	s = leadingPrefix.ReplaceAllString(s, "$1")

	fields := strings.SplitN(s, ":", 3)
	if len(fields) != 3 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidNotation, fen)
	}
	sideField, whiteField, blackField := fields[0], fields[1], fields[2]
	if sideField != "W" && sideField != "B" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidNotation, fen)
	}
	if !strings.HasPrefix(whiteField, "W") || !strings.HasPrefix(blackField, "B") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidNotation, fen)
	}

	p := &Position{Variant: v, WhiteToMove: sideField == "W"}
	if err := parseSquareList(whiteField[1:], true, p); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidNotation, fen)
	}
	if err := parseSquareList(blackField[1:], false, p); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidNotation, fen)
	}
	p.Key = p.computeKey()
	return p, nil
}

func parseSquareList(list string, white bool, p *Position) error {
	list = strings.TrimSpace(list)
	if list == "" {
		return nil
	}
	for _, entry := range strings.Split(list, ",") {
		entry = strings.TrimSpace(entry)
		isKing := strings.HasPrefix(entry, "K")
		if isKing {
			entry = entry[1:]
		}
		n, err := strconv.Atoi(entry)
		if err != nil || n < 1 {
			return fmt.Errorf("%w: %q", ErrInvalidNotation, entry)
		}
		sq := uint64(1) << uint(n-1)
		switch {
		case white && isKing:
			p.WhiteKings |= sq
		case white && !isKing:
			p.WhiteMen |= sq
		case !white && isKing:
			p.BlackKings |= sq
		default:
			p.BlackMen |= sq
		}
	}
	return nil
}
