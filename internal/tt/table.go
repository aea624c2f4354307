// Package tt implements the engine's transposition table: a fixed-size,
// power-of-two array addressed by the low bits of the Zobrist key, with
// a depth-preferred replacement policy (§4.6). It is shared, unlocked,
// read/write state across root-parallel search workers (§5/§9): races on
// a single 16-byte entry are tolerated because Probe independently
// validates the key, depth, and bound of whatever it reads before
// treating it as a hit.
package tt

import (
	"math/bits"

	"github.com/lmarchetti/pike/internal/config"
	"github.com/lmarchetti/pike/internal/logging"
)

// Table is the process-wide transposition table. Zero value is usable
// only after New or Resize.
type Table struct {
	data []entry
	mask uint64
}

// New builds a Table sized from config.Settings.Search.TTEntries,
// rounded down to the nearest power of two.
func New() *Table {
	t := &Table{}
	t.Resize(config.Settings.Search.TTEntries)
	return t
}

// Resize reallocates the table to hold n entries rounded down to the
// nearest power of two, discarding all prior content. Not safe to call
// while search workers are probing or storing.
func (t *Table) Resize(n int) {
	if n < 1 {
		n = 1
	}
	size := 1 << (bits.Len(uint(n)) - 1)
	t.data = make([]entry, size)
	t.mask = uint64(size) - 1
	logging.GetLog().Infof("transposition table sized to %d entries (%d bytes)", size, size*16)
}

// Clear zeroes every entry.
func (t *Table) Clear() {
	for i := range t.data {
		t.data[i] = entry{}
	}
}

func (t *Table) index(key uint64) uint64 {
	return key & t.mask
}

// Store writes (key, score, depth, bound) into the slot key hashes to,
// overwriting the existing occupant only if depth is at least as deep as
// what is already stored there (§4.6) -- a shallower search is never
// allowed to evict a deeper one, even on key collision.
func (t *Table) Store(key uint64, score int, depth int, bound Bound) {
	if len(t.data) == 0 {
		return
	}
	slot := &t.data[t.index(key)]
	if depth < int(slot.Depth) {
		return
	}
	slot.Key = key
	slot.Score = int32(score)
	slot.Depth = uint8(depth)
	slot.Bound = bound
}

// Probe looks up key and reports whether the stored entry at that index
// permits an immediate cutoff at the given depth/alpha/beta window
// (§4.6): the entry must match key, have depth at least the requested
// depth, and its bound type must license the return (exact always does;
// a lower bound only if its score already reaches beta; an upper bound
// only if its score already falls to or below alpha). Returns (0,
// false) on any miss, including a key collision or a torn read that
// fails these checks -- a false negative here only costs search
// efficiency, never correctness.
func (t *Table) Probe(key uint64, depth, alpha, beta int) (int, bool) {
	if len(t.data) == 0 {
		return 0, false
	}
	slot := t.data[t.index(key)]
	if slot.Key != key || int(slot.Depth) < depth {
		return 0, false
	}
	score := int(slot.Score)
	switch slot.Bound {
	case BoundExact:
		return score, true
	case BoundLower:
		if score >= beta {
			return score, true
		}
	case BoundUpper:
		if score <= alpha {
			return score, true
		}
	}
	return 0, false
}

// BestMove-style hint lookups are intentionally absent: the move-none
// TtEntry.move field the teacher carries has no equivalent store here
// because interior-node move ordering (§4.8) is recomputed by scoreMoves
// at every node rather than seeded from a TT hint.

// Len reports the table's capacity in entries.
func (t *Table) Len() int {
	return len(t.data)
}
