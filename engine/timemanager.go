package engine

import (
	"errors"
	"sync/atomic"
	"time"
)

// searchTimeout is recovered in searcher.iterate; panicking out
// of an arbitrary search depth is the only way to abort mid-recursion
// without threading a deadline check through every call site.
var searchTimeout = errors.New("search timeout")

// CancellationToken lets a caller stop a running search from another
// goroutine, independent of the deadline timer.
type CancellationToken struct {
	active atomic.Bool
}

func (ct *CancellationToken) Cancel() { ct.active.Store(true) }

func (ct *CancellationToken) IsCancellationRequested() bool { return ct.active.Load() }

// timeManager tracks node counts and elapsed time against the soft and
// hard limits computed for the current side, and panics the search off
// the stack once the hard limit is reached.
type timeManager struct {
	start     time.Time
	softTime  time.Duration
	nodes     int64
	softNodes int64
	hardNodes int64
	ct        *CancellationToken
	timer     *time.Timer
}

func newTimeManager(limits LimitsType, whiteToMove bool, ct *CancellationToken) *timeManager {
	if ct == nil {
		ct = &CancellationToken{}
	}
	softTime, hardTime := computeThinkTime(limits, whiteToMove)
	var hardNodes int64
	if limits.Nodes > 0 {
		hardNodes = int64(limits.Nodes)
	}
	var timer *time.Timer
	if hardTime > 0 {
		timer = time.AfterFunc(time.Duration(hardTime)*time.Millisecond, ct.Cancel)
	}
	return &timeManager{
		start:     time.Now(),
		softTime:  time.Duration(softTime) * time.Millisecond,
		ct:        ct,
		hardNodes: hardNodes,
		timer:     timer,
	}
}

func (tm *timeManager) Nodes() int64 { return atomic.LoadInt64(&tm.nodes) }

func (tm *timeManager) IncNodes() { atomic.AddInt64(&tm.nodes, 1) }

func (tm *timeManager) ElapsedMilliseconds() int64 {
	return int64(time.Since(tm.start) / time.Millisecond)
}

// PanicOnHardTimeout aborts the search via panic once the hard deadline,
// node budget or external cancellation fires.
func (tm *timeManager) PanicOnHardTimeout() {
	if tm.ct.IsCancellationRequested() ||
		(tm.hardNodes > 0 && tm.Nodes() >= tm.hardNodes) {
		panic(searchTimeout)
	}
}

func (tm *timeManager) IsSoftTimeout() bool {
	return tm.softTime > 0 && time.Since(tm.start) >= tm.softTime
}

func (tm *timeManager) Close() {
	if tm.timer != nil {
		tm.timer.Stop()
	}
}

// computeThinkTime allocates a slice of the remaining clock to this
// move, reserving overhead for the moves still to come; grounded on the
// teacher's ComputeThinkTime, with castling-free draughts clocks.
func computeThinkTime(limits LimitsType, whiteToMove bool) (softLimit, hardLimit int) {
	const (
		movesToGoDefault = 40
		moveOverhead     = 20
	)
	if limits.MoveTime != 0 {
		return limits.MoveTime, limits.MoveTime
	}
	if limits.Infinite {
		return 0, 0
	}
	var mainTime, incTime int
	if whiteToMove {
		mainTime, incTime = limits.WhiteTime, limits.WhiteIncrement
	} else {
		mainTime, incTime = limits.BlackTime, limits.BlackIncrement
	}
	if mainTime == 0 {
		return 0, 0
	}
	movesToGo := movesToGoDefault
	if 0 < limits.MovesToGo && limits.MovesToGo < movesToGoDefault {
		movesToGo = limits.MovesToGo
	}
	reserve := max(2*moveOverhead, min(1000, mainTime/20))
	mainTime = max(0, mainTime-reserve)
	softLimit = mainTime/movesToGo + incTime
	hardLimit = min(mainTime/2, softLimit*5)
	return
}
