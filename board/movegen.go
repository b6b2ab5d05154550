package board

// LegalMoves returns every legal move for the side to move, honoring
// capture priority and the variant's maximum-capture rule (spec.md 4.D).
// The returned slice contains no duplicates and is empty, never nil-vs-
// error, when the side to move has no legal move.
func (p *Position) LegalMoves() []Move {
	captures := p.generateCaptures()
	if len(captures) > 0 {
		return p.filterMaxCapture(captures)
	}
	return p.generateQuiet()
}

// IsGameOver reports whether the side to move has no legal move, either
// side has no remaining pieces, or a variant draw rule fires.
func (p *Position) IsGameOver() bool {
	if p.WhiteMen|p.WhiteKings == 0 || p.BlackMen|p.BlackKings == 0 {
		return true
	}
	if len(p.LegalMoves()) == 0 {
		return true
	}
	return p.isDrawByRule()
}

// IsThreefoldRepetition reports whether the current hash appears at
// least three times in the repetition window accumulated since the
// last irreversible move (spec.md 4.D.4). The window already includes
// an entry for the current position itself (appended by the Push that
// reached it), so three total matches is the threshold, not two.
func (p *Position) IsThreefoldRepetition() bool {
	count := 0
	for _, h := range p.Repetition {
		if h == p.Key {
			count++
		}
	}
	return count >= 3
}

// isDrawByRule checks every draw condition a variant defines: threefold
// repetition (always), the general reversible-halfmove rule (unconditional
// on piece count per spec.md 4.A/original_source's is_25_moves_rule /
// is_15_moves_rule), and any closed-form endgame special case the variant
// adds on top (original_source's is_16_moves_rule / is_5_moves_rule /
// is_3_kings_vs_1_rule).
func (p *Position) isDrawByRule() bool {
	v := p.Variant
	if p.IsThreefoldRepetition() {
		return true
	}
	if v.HalfmoveDrawPlies > 0 && p.Halfmove >= v.HalfmoveDrawPlies {
		return true
	}
	if v.ExtraDrawRule != nil && v.ExtraDrawRule(p) {
		return true
	}
	return false
}

func (p *Position) filterMaxCapture(moves []Move) []Move {
	v := p.Variant
	if !v.MustCaptureMaximum {
		return moves
	}
	if v.OrthogonalCaptures {
		return p.filterMaxValueCapture(moves)
	}
	maxJumps := 0
	for _, m := range moves {
		if m.Jumps() > maxJumps {
			maxJumps = m.Jumps()
		}
	}
	var out []Move
	for _, m := range moves {
		if m.Jumps() == maxJumps {
			out = append(out, m)
		}
	}
	return out
}

func (p *Position) captureValue(m Move) float64 {
	v := p.Variant
	var total float64
	for _, sq := range m.Captured {
		piece := p.PieceAt(int(sq))
		if piece == WhiteKing || piece == BlackKing {
			total += v.KingCaptureValue
		} else {
			total += v.ManCaptureValue
		}
	}
	return total
}

func (p *Position) filterMaxValueCapture(moves []Move) []Move {
	maxJumps := 0
	for _, m := range moves {
		if m.Jumps() > maxJumps {
			maxJumps = m.Jumps()
		}
	}
	maxVal := 0.0
	for _, m := range moves {
		if m.Jumps() != maxJumps {
			continue
		}
		if val := p.captureValue(m); val > maxVal {
			maxVal = val
		}
	}
	var maxVol []Move
	for _, m := range moves {
		if m.Jumps() == maxJumps && p.captureValue(m) == maxVal {
			maxVol = append(maxVol, m)
		}
	}
	var kingInitiated []Move
	for _, m := range maxVol {
		piece := p.PieceAt(m.From())
		if piece == WhiteKing || piece == BlackKing {
			kingInitiated = append(kingInitiated, m)
		}
	}
	if len(kingInitiated) > 0 {
		return kingInitiated
	}
	return maxVol
}

// ---- capture enumeration ---------------------------------------------

func (p *Position) generateCaptures() []Move {
	v := p.Variant
	white := p.WhiteToMove
	ownMen, ownKings := p.colorMen(white), p.colorKings(white)
	enemyMen, enemyKings := p.colorMen(!white), p.colorKings(!white)
	if enemyMen|enemyKings == 0 {
		return nil
	}
	var out []Move
	for bb := ownMen; bb != 0; bb &= bb - 1 {
		sq := firstOne(bb)
		sqBit := uint64(1) << uint(sq)
		captureDFS(v, white, false, sq, ownMen&^sqBit, ownKings, enemyMen, enemyKings,
			0, []int8{int8(sq)}, nil, false, &out)
	}
	for bb := ownKings; bb != 0; bb &= bb - 1 {
		sq := firstOne(bb)
		sqBit := uint64(1) << uint(sq)
		captureDFS(v, white, true, sq, ownMen, ownKings&^sqBit, enemyMen, enemyKings,
			0, []int8{int8(sq)}, nil, false, &out)
	}
	return out
}

// captureDFS extends a capture chain from cur. isKing distinguishes a
// king (full directional freedom, flying if the variant says so) from a
// man (forward-only unless the variant allows backward man captures,
// short-range, promotes on reaching the far row unless already a king).
// promoted records whether the mover has already promoted earlier in
// this same chain.
func captureDFS(v *Variant, white, isKing bool, cur int, ownMen, ownKings, enemyMen, enemyKings uint64,
	capturedMask uint64, path []int8, capturedList []int8, promoted bool, out *[]Move) {

	g := v.Geometry()
	dirs := captureDirections(v, white, isKing)

	extended := false
	for _, d := range dirs {
		flying := isKing && v.FlyingKings

		if !flying {
			mid := stepTo(g, d, cur)
			if mid < 0 {
				continue
			}
			midBit := uint64(1) << uint(mid)
			if capturedMask&midBit != 0 {
				continue
			}
			if enemyMen&midBit == 0 && enemyKings&midBit == 0 {
				continue
			}
			land := stepTo(g, d, int(mid))
			if land < 0 {
				continue
			}
			landBit := uint64(1) << uint(land)
			if (ownMen|ownKings|enemyMen|enemyKings)&landBit != 0 {
				continue
			}
			if capturedMask&landBit != 0 {
				continue
			}
			if containsSquare(path, land) {
				continue
			}
			extended = true
			tryExtension(v, white, isKing, int(mid), int(land), ownMen, ownKings, enemyMen, enemyKings,
				capturedMask, path, capturedList, promoted, out)
			continue
		}

		ray := rayOf(g, d, cur)
		for i, sqr := range ray {
			sqrBit := uint64(1) << uint(sqr)
			if capturedMask&sqrBit != 0 {
				break
			}
			occupied := ownMen | ownKings | enemyMen | enemyKings
			if occupied&sqrBit == 0 {
				continue
			}
			if enemyMen&sqrBit == 0 && enemyKings&sqrBit == 0 {
				break // own piece blocks the ray
			}
			for _, land := range ray[i+1:] {
				landBit := uint64(1) << uint(land)
				if occupied&landBit != 0 {
					break
				}
				if capturedMask&landBit != 0 {
					break
				}
				if containsSquare(path, land) {
					break
				}
				extended = true
				tryExtension(v, white, isKing, int(sqr), int(land), ownMen, ownKings, enemyMen, enemyKings,
					capturedMask, path, capturedList, promoted, out)
			}
			break // the ray is blocked beyond the first piece regardless
		}
	}

	if !extended && len(capturedList) > 0 {
		*out = append(*out, Move{
			Squares:  append([]int8{}, path...),
			Captured: append([]int8{}, capturedList...),
			Promoted: promoted,
		})
	}
}

// tryExtension removes the captured piece at mid, advances the mover to
// land, and recurses (switching to king geometry on promotion unless the
// variant stops the chain there), emitting a leaf if nothing follows.
func tryExtension(v *Variant, white, isKing bool, mid, land int, ownMen, ownKings, enemyMen, enemyKings uint64,
	capturedMask uint64, path []int8, capturedList []int8, promoted bool, out *[]Move) {

	midBit := uint64(1) << uint(mid)
	newEnemyMen := enemyMen &^ midBit
	newEnemyKings := enemyKings &^ midBit
	newCapturedMask := capturedMask | midBit
	newPath := append(append([]int8{}, path...), int8(land))
	newCaptured := append(append([]int8{}, capturedList...), int8(mid))

	landBit := uint64(1) << uint(land)
	promotesHere := !isKing && !promoted && (landBit&v.PromotionRow(white)) != 0
	nowPromoted := promoted || promotesHere

	before := len(*out)
	if promotesHere && v.PromotionStopsChain {
		*out = append(*out, Move{
			Squares:  newPath,
			Captured: newCaptured,
			Promoted: true,
		})
		return
	}
	nowKing := isKing || promotesHere
	captureDFS(v, white, nowKing, land, ownMen, ownKings, newEnemyMen, newEnemyKings,
		newCapturedMask, newPath, newCaptured, nowPromoted, out)
	if len(*out) == before {
		*out = append(*out, Move{
			Squares:  newPath,
			Captured: newCaptured,
			Promoted: nowPromoted,
		})
	}
}

// captureDirections lists the direction indexes (0-3 diagonal, 4-7
// orthogonal when the variant allows it) a piece of the given kind may
// use to look for a capture.
func captureDirections(v *Variant, white, isKing bool) []int {
	var dirs []int
	if isKing || v.MenCaptureBackward {
		dirs = []int{int(NW), int(NE), int(SW), int(SE)}
	} else if white {
		dirs = []int{int(NW), int(NE)}
	} else {
		dirs = []int{int(SW), int(SE)}
	}
	if v.OrthogonalCaptures {
		dirs = append(dirs, 4, 5, 6, 7)
	}
	return dirs
}

func stepTo(g *geometry, dir int, sq int) int8 {
	if dir < 4 {
		return g.step[dir][sq]
	}
	return g.stepOrtho[dir-4][sq]
}

func rayOf(g *geometry, dir int, sq int) []int8 {
	if dir < 4 {
		return g.ray[dir][sq]
	}
	return g.rayOrtho[dir-4][sq]
}

// ---- quiet move generation --------------------------------------------

func (p *Position) generateQuiet() []Move {
	v := p.Variant
	g := v.Geometry()
	white := p.WhiteToMove
	empty := p.EmptySquares()

	var forward []int
	if white {
		forward = []int{int(NW), int(NE)}
	} else {
		forward = []int{int(SW), int(SE)}
	}

	var out []Move
	for bb := p.colorMen(white); bb != 0; bb &= bb - 1 {
		sq := firstOne(bb)
		for _, d := range forward {
			t := g.step[d][sq]
			if t < 0 {
				continue
			}
			tBit := uint64(1) << uint(t)
			if empty&tBit == 0 {
				continue
			}
			promoted := tBit&v.PromotionRow(white) != 0
			out = append(out, Move{Squares: []int8{int8(sq), t}, Promoted: promoted})
		}
	}

	for bb := p.colorKings(white); bb != 0; bb &= bb - 1 {
		sq := firstOne(bb)
		for d := 0; d < 4; d++ {
			if !v.FlyingKings {
				t := g.step[d][sq]
				if t < 0 {
					continue
				}
				if empty&(uint64(1)<<uint(t)) != 0 {
					out = append(out, Move{Squares: []int8{int8(sq), t}})
				}
				continue
			}
			for _, t := range g.ray[d][sq] {
				if empty&(uint64(1)<<uint(t)) == 0 {
					break
				}
				out = append(out, Move{Squares: []int8{int8(sq), t}})
			}
		}
	}
	return out
}
