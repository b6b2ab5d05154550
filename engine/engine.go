package engine

import "github.com/ChizhovVadim/godraughts/board"

// Engine owns the transposition table and the history heuristic. Their
// storage is allocated once and reused, but prepare clears both at the
// start of every Search, so no search result carries over into the next.
type Engine struct {
	HashMegabytes int

	transTable   *transTable
	historyTable historyTable

	cancel *CancellationToken
}

// NewEngine returns an Engine with a modest default hash size; callers
// that want a bigger table set HashMegabytes before the first Search.
func NewEngine() *Engine {
	return &Engine{
		HashMegabytes: 32,
		historyTable:  newHistoryTable(),
	}
}

// Cancel stops any Search in progress on this Engine as soon as it next
// checks the time manager.
func (e *Engine) Cancel() {
	if e.cancel != nil {
		e.cancel.Cancel()
	}
}

// prepare resets the transposition table before every search: spec.md
// 4.G.4 clears the table at the start of each get_best_move call, and
// the core's non-goals (spec.md 1) exclude persisting it across
// searches the way the teacher's engine persists its table across UCI
// "go" commands. The table is still reused node-to-node within this
// one call's iterative deepening.
func (e *Engine) prepare() {
	if e.transTable == nil || e.transTable.megabytes != e.HashMegabytes {
		e.transTable = NewTransTable(e.HashMegabytes)
	} else {
		e.transTable.Clear()
	}
	e.transTable.PrepareNewSearch()
	e.historyTable.Clear()
}

// Search runs iterative deepening from params.Position and returns the
// last fully-searched depth's result. params.Position is left exactly
// as it was handed in: every descent into the tree is balanced by a
// deferred Pop, including on a timeout abort.
func (e *Engine) Search(params SearchParams) SearchInfo {
	e.cancel = &CancellationToken{}
	tm := newTimeManager(params.Limits, params.Position.ColorToMove(), e.cancel)
	defer tm.Close()

	e.prepare()

	s := &searcher{engine: e, tm: tm}
	s.killers.clear()

	maxDepth := params.Limits.Depth
	return s.iterate(params.Position, maxDepth, params.Progress)
}

// BestMove runs Search to depth (0 meaning use the time limits in
// limits alone) and returns just the move it settled on, or false if
// the position has none.
func (e *Engine) BestMove(p *board.Position, limits LimitsType) (board.Move, bool) {
	info := e.Search(SearchParams{Position: p, Limits: limits})
	if len(info.MainLine) == 0 {
		return board.Move{}, false
	}
	return info.MainLine[0], true
}
