package engine

import (
	"sort"

	"github.com/ChizhovVadim/godraughts/board"
)

func recoverFromSearchTimeout() {
	if r := recover(); r != nil && r != searchTimeout {
		panic(r)
	}
}

// searcher holds everything one search call needs beyond the position
// itself: the shared transposition/history tables from the Engine, this
// call's time budget, and the per-height killer and principal-variation
// state a single mutable board.Position walks through via Push/Pop.
type searcher struct {
	engine *Engine
	tm     *timeManager

	killers killers
	pv      [maxHeight + 1][]board.Move
}

// iterate runs iterative deepening from the root position, reporting
// each completed depth through progress before starting the next. It
// always returns a usable result, even one aborted mid-depth by the
// time manager's panic, because recoverFromSearchTimeout catches that
// panic right here and the previous depth's result is already in hand.
func (s *searcher) iterate(p *board.Position, maxDepth int, progress func(SearchInfo)) (result SearchInfo) {
	defer recoverFromSearchTimeout()
	defer func() {
		result.Time = s.tm.ElapsedMilliseconds()
		result.Nodes = s.tm.Nodes()
	}()

	moves := p.LegalMoves()
	if len(moves) == 0 {
		return
	}
	result.MainLine = []board.Move{moves[0]}
	if len(moves) == 1 {
		return
	}

	limit := maxHeight
	if maxDepth > 0 && maxDepth < limit {
		limit = maxDepth
	}

	for depth := 1; depth <= limit; depth++ {
		score := s.negamax(p, -valueInfinity, valueInfinity, depth, 0)
		result = SearchInfo{
			Depth:    depth,
			Score:    score,
			MainLine: append([]board.Move(nil), s.pv[0]...),
			Nodes:    s.tm.Nodes(),
			Time:     s.tm.ElapsedMilliseconds(),
		}
		if progress != nil {
			progress(result)
		}
		if score >= mateIn(maxHeight) || score <= lossIn(maxHeight) {
			break
		}
		if s.tm.IsSoftTimeout() {
			break
		}
	}
	return
}

// searchChild pushes m, recurses, and pops again on the way back out —
// via defer, so a panic unwinding through this frame (a hard timeout
// firing deeper in the tree) still leaves the position's move stack
// exactly where it was before this call.
func (s *searcher) searchChild(p *board.Position, m board.Move, alpha, beta, depth, height int) int {
	p.Push(m)
	defer p.Pop()
	return -s.negamax(p, alpha, beta, depth, height)
}

func (s *searcher) negamax(p *board.Position, alpha, beta, depth, height int) int {
	s.pv[height] = s.pv[height][:0]

	if height > 0 && p.IsThreefoldRepetition() {
		return valueDraw
	}
	if height >= maxHeight {
		return evaluate(p)
	}
	if depth <= 0 {
		return s.quiescence(p, alpha, beta, height)
	}

	s.tm.IncNodes()
	s.tm.PanicOnHardTimeout()

	if mateIn(height+1) <= alpha {
		return alpha
	}
	if lossIn(height+2) >= beta {
		return beta
	}

	moves := p.LegalMoves()
	if len(moves) == 0 {
		return lossIn(height)
	}

	hasTT, ttFrom, ttTo := false, 0, 0
	if ttDepth, ttScore, ttBound, ttMove, ok := s.engine.transTable.Read(p); ok {
		if len(ttMove.Squares) > 0 {
			hasTT, ttFrom, ttTo = true, ttMove.From(), ttMove.To()
		}
		if ttDepth >= depth {
			sc := valueFromTT(ttScore, height)
			if sc >= beta && ttBound&boundLower != 0 {
				return beta
			}
			if sc <= alpha && ttBound&boundUpper != 0 {
				return alpha
			}
		}
	}

	ordered := s.orderMoves(p, moves, ttFrom, ttTo, hasTT, height)
	k1, k2 := s.killers.at(height)
	var quietsSearched []board.Move
	var bestMove board.Move
	moveCount := 0

	for _, sm := range ordered {
		m := sm.move
		moveCount++
		quiet := !m.IsCapture()

		reduction := 0
		if quiet && moveCount > 1 && depth >= 3 && alpha > lossIn(maxHeight) &&
			!moveIsSame(m, k1) && !moveIsSame(m, k2) {
			reduction = 1
			if moveCount > 6 {
				reduction = 2
			}
			if reduction >= depth {
				reduction = depth - 1
			}
		}
		if quiet {
			quietsSearched = append(quietsSearched, m)
		}

		var score int
		if moveCount == 1 {
			score = s.searchChild(p, m, -beta, -alpha, depth-1, height+1)
		} else {
			score = s.searchChild(p, m, -(alpha + 1), -alpha, depth-1-reduction, height+1)
			if score > alpha && reduction > 0 {
				score = s.searchChild(p, m, -(alpha + 1), -alpha, depth-1, height+1)
			}
			if score > alpha {
				score = s.searchChild(p, m, -beta, -alpha, depth-1, height+1)
			}
		}

		if score > alpha {
			alpha = score
			bestMove = m
			s.pv[height] = append(append([]board.Move(nil), m), s.pv[height+1]...)
			if alpha >= beta {
				if quiet {
					s.killers.update(height, m)
				}
				break
			}
		}
	}

	if len(bestMove.Squares) > 0 && !bestMove.IsCapture() {
		s.engine.historyTable.Update(p.WhiteToMove, bestMove, quietsSearched, depth)
	}

	bound := 0
	if len(bestMove.Squares) > 0 {
		bound |= boundLower
	}
	if alpha < beta {
		bound |= boundUpper
	}
	s.engine.transTable.Update(p, depth, valueToTT(alpha, height), bound, bestMove)

	return alpha
}

// quiescence extends the search past the nominal depth limit while the
// side to move is still forced to capture — LegalMoves already returns
// only captures whenever one exists, so there is no stand-pat choice to
// make until the forced chain runs out. That is the draughts analogue
// of a chess quiescence search: not "look at tactical moves a bit
// further", but "don't stop mid-forced-sequence and misjudge it".
func (s *searcher) quiescence(p *board.Position, alpha, beta, height int) int {
	s.tm.IncNodes()
	s.tm.PanicOnHardTimeout()

	if height >= maxHeight {
		return evaluate(p)
	}

	moves := p.LegalMoves()
	if len(moves) == 0 {
		return lossIn(height)
	}
	if !moves[0].IsCapture() {
		return evaluate(p)
	}

	best := -valueInfinity
	for _, m := range moves {
		score := s.searchChild(p, m, -beta, -alpha, 0, height+1)
		if score > best {
			best = score
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			break
		}
	}
	return best
}

type scoredMove struct {
	move  board.Move
	score int
}

// orderMoves scores every legal move for this node: the transposition
// table's move first, then captures by chain length, then the killer
// moves recorded at this height, then every other quiet move by its
// history score. Sorting once up front keeps the alpha-beta loop itself
// simple.
func (s *searcher) orderMoves(p *board.Position, moves []board.Move, ttFrom, ttTo int, hasTT bool, height int) []scoredMove {
	k1, k2 := s.killers.at(height)
	white := p.WhiteToMove
	scored := make([]scoredMove, len(moves))
	for i, m := range moves {
		var sc int
		switch {
		case hasTT && m.From() == ttFrom && m.To() == ttTo:
			sc = 1_000_000
		case m.IsCapture():
			sc = 500_000 + m.Jumps()*1000
		case moveIsSame(m, k1):
			sc = 400_000
		case moveIsSame(m, k2):
			sc = 399_000
		default:
			sc = s.engine.historyTable.Score(white, m)
		}
		scored[i] = scoredMove{m, sc}
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })
	return scored
}
