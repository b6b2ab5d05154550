package engine

import (
	"sync/atomic"

	"github.com/ChizhovVadim/godraughts/board"
)

const (
	boundLower = 1 << iota
	boundUpper
)

// transEntry packs one slot: the upper 32 bits of the key for a cheap
// verification (the table index already fixes the lower bits), the
// hash move encoded as from/to squares, the score, depth and bound.
// Concurrent Read/Update calls gate on the same spin bit the teacher's
// deepReplaceTransTable uses, so a racing reader never observes a
// half-written entry.
type transEntry struct {
	gate     int32
	key32    uint32
	moveFrom int8
	moveTo   int8
	hasMove  bool
	score    int16
	depth    int8
	boundGen uint8
}

type transTable struct {
	megabytes  int
	entries    []transEntry
	generation uint8
	mask       uint32
}

// NewTransTable allocates a power-of-two-sized table no larger than the
// requested megabytes.
func NewTransTable(megabytes int) *transTable {
	const entrySize = 16
	size := roundPowerOfTwo(1024 * 1024 * megabytes / entrySize)
	if size == 0 {
		size = 1
	}
	return &transTable{
		megabytes: megabytes,
		entries:   make([]transEntry, size),
		mask:      uint32(size - 1),
	}
}

func roundPowerOfTwo(size int) int {
	x := 1
	for (x << 1) <= size {
		x <<= 1
	}
	return x
}

func (tt *transTable) PrepareNewSearch() {
	tt.generation = (tt.generation + 1) & 63
}

func (tt *transTable) Clear() {
	for i := range tt.entries {
		tt.entries[i] = transEntry{}
	}
}

// Read looks up p's hash key and, if present, resolves the stored
// from/to squares against p's own legal moves so the caller never sees
// a move struct built from stale board state.
func (tt *transTable) Read(p *board.Position) (depth, score, bound int, move board.Move, ok bool) {
	entry := &tt.entries[uint32(p.HashKey())&tt.mask]
	if !atomic.CompareAndSwapInt32(&entry.gate, 0, 1) {
		return
	}
	if entry.key32 == uint32(p.HashKey()>>32) {
		entry.boundGen = (entry.boundGen & 3) + (tt.generation << 2)
		depth = int(entry.depth)
		score = int(entry.score)
		bound = int(entry.boundGen & 3)
		if entry.hasMove {
			move, ok = resolveMove(p, int(entry.moveFrom), int(entry.moveTo))
		} else {
			ok = true
		}
	}
	atomic.StoreInt32(&entry.gate, 0)
	return
}

func (tt *transTable) Update(p *board.Position, depth, score, bound int, move board.Move) {
	entry := &tt.entries[uint32(p.HashKey())&tt.mask]
	if !atomic.CompareAndSwapInt32(&entry.gate, 0, 1) {
		return
	}
	key32 := uint32(p.HashKey() >> 32)
	if entry.boundGen>>2 != tt.generation || depth >= int(entry.depth) || entry.key32 == key32 {
		entry.key32 = key32
		entry.depth = int8(depth)
		entry.score = int16(score)
		entry.boundGen = uint8(bound) + (tt.generation << 2)
		if len(move.Squares) > 0 {
			entry.moveFrom, entry.moveTo = int8(move.From()), int8(move.To())
			entry.hasMove = true
		} else {
			entry.hasMove = false
		}
	}
	atomic.StoreInt32(&entry.gate, 0)
}

// resolveMove finds the legal move from->to in p, preferring the
// longest matching capture chain when more than one move shares those
// endpoints (multi-jump captures that revisit squares differently).
func resolveMove(p *board.Position, from, to int) (board.Move, bool) {
	var best board.Move
	found := false
	for _, m := range p.LegalMoves() {
		if m.From() != from || m.To() != to {
			continue
		}
		if !found || len(m.Squares) > len(best.Squares) {
			best = m
			found = true
		}
	}
	return best, found
}

// valueToTT and valueFromTT translate between the mate-distance-from-
// root score used outside the table and the mate-distance-from-this-
// node score that must be stored, so a hit at a different height still
// reports the correct mate distance.
func valueToTT(score, height int) int {
	if score >= mateIn(maxHeight) {
		return score + height
	}
	if score <= lossIn(maxHeight) {
		return score - height
	}
	return score
}

func valueFromTT(score, height int) int {
	if score >= mateIn(maxHeight) {
		return score - height
	}
	if score <= lossIn(maxHeight) {
		return score + height
	}
	return score
}
