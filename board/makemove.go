package board

// Push applies a move to the position, maintaining the incremental hash,
// halfmove clock and repetition window, and pushing an undo record. It
// does not itself verify legality; callers that need the IllegalMove
// guarantee of spec.md 7 should check IsLegalMove first (Push is called
// internally only with moves drawn from LegalMoves).
func (p *Position) Push(m Move) {
	white := p.WhiteToMove
	rec := undoRecord{
		move:          m,
		prevHalfmove:  p.Halfmove,
		prevKey:       p.Key,
		prevRepetition: append([]uint64(nil), p.Repetition...),
	}

	isKing := p.colorKings(white)&(uint64(1)<<uint(m.From())) != 0
	p.xorPiece(white, isKing, m.From())

	for _, sq := range m.Captured {
		capturedIsKing := p.colorKings(!white)&(uint64(1)<<uint(sq)) != 0
		var piece int8
		switch {
		case white && capturedIsKing:
			piece = BlackKing
		case white && !capturedIsKing:
			piece = BlackMan
		case !white && capturedIsKing:
			piece = WhiteKing
		default:
			piece = WhiteMan
		}
		rec.capturedPieces = append(rec.capturedPieces, piece)
		p.xorPiece(!white, capturedIsKing, int(sq))
	}

	nowKing := isKing || m.Promoted
	p.xorPiece(white, nowKing, m.To())

	p.WhiteToMove = !white
	p.Key ^= zobristSide

	irreversible := m.IsCapture() || !isKing
	if irreversible {
		p.Halfmove = 0
		p.Repetition = p.Repetition[:0]
	} else {
		p.Halfmove++
		p.Repetition = append(p.Repetition, p.Key)
	}

	p.stack = append(p.stack, rec)
}

// Pop reverses the most recent Push exactly, restoring the position
// (including the hash) bit-for-bit. It returns the move that was
// undone, or ErrEmptyStack if there is nothing to undo.
func (p *Position) Pop() (Move, error) {
	if len(p.stack) == 0 {
		return Move{}, ErrEmptyStack
	}
	rec := p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]

	white := !p.WhiteToMove // the mover, since side-to-move has already toggled
	m := rec.move

	nowKing := p.colorKings(white)&(uint64(1)<<uint(m.To())) != 0
	p.xorPiece(white, nowKing, m.To())

	wasKing := nowKing && !m.Promoted
	p.xorPiece(white, wasKing, m.From())

	for i := len(m.Captured) - 1; i >= 0; i-- {
		sq := m.Captured[i]
		piece := rec.capturedPieces[i]
		capturedIsKing := piece == WhiteKing || piece == BlackKing
		capturedWhite := piece == WhiteMan || piece == WhiteKing
		p.xorPiece(capturedWhite, capturedIsKing, int(sq))
	}

	p.WhiteToMove = white
	p.Halfmove = rec.prevHalfmove
	p.Repetition = rec.prevRepetition
	p.Key = rec.prevKey

	return m, nil
}

// IsLegalMove reports whether m (matched by path-tolerant Equal) is
// among the position's legal moves, returning the exact legal move to
// push (whose path may be longer than m's, e.g. when m only names
// origin and destination of a multi-jump capture).
func (p *Position) IsLegalMove(m Move) (Move, bool) {
	for _, legal := range p.LegalMoves() {
		if legal.Equal(m) {
			return legal, true
		}
	}
	return Move{}, false
}

// PushNotation parses s as move notation (spec.md 4.F/6), resolves it
// against the legal moves, and pushes the match. It returns
// ErrInvalidNotation if s does not parse, ErrIllegalMove if it parses
// but matches no legal move, and ErrAmbiguousNotation if it matches
// more than one.
func (p *Position) PushNotation(s string) error {
	m, err := parseMoveNotation(s)
	if err != nil {
		return err
	}
	var matches []Move
	for _, legal := range p.LegalMoves() {
		if legal.Equal(m) {
			matches = append(matches, legal)
		}
	}
	switch len(matches) {
	case 0:
		return ErrIllegalMove
	case 1:
		p.Push(matches[0])
		return nil
	default:
		return ErrAmbiguousNotation
	}
}
