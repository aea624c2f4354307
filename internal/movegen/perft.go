package movegen

import (
	"context"
	"runtime"

	"golang.org/x/sync/semaphore"

	"github.com/lmarchetti/pike/internal/bitboard"
	"github.com/lmarchetti/pike/internal/position"
)

// Perft counts the number of leaf positions reachable in exactly depth
// plies from pos, used to validate move-generator correctness against
// known reference node counts (§4.9/§8).
func Perft(pos *position.Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves, _ := LegalMoves(pos, make([]bitboard.Move, 0, MaxMoves), false)
	var nodes uint64
	for _, m := range moves {
		snap := pos.TakeSnapshot()
		captured := pos.MakeMove(m)
		nodes += Perft(pos, depth-1)
		pos.UnmakeMove(m, captured)
		pos.Restore(snap)
	}
	return nodes
}

// PerftParallel is Perft with the root moves fanned out across
// goroutines, bounded by a semaphore the way search's root-parallel
// workers are (§5/§9): each worker gets its own Position copy, so no
// synchronization is needed beyond the semaphore itself.
func PerftParallel(pos *position.Position, depth int) uint64 {
	if depth <= 1 {
		return Perft(pos, depth)
	}
	moves, _ := LegalMoves(pos, make([]bitboard.Move, 0, MaxMoves), false)

	workers := int64(runtime.GOMAXPROCS(0))
	if workers < 1 {
		workers = 1
	}
	sem := semaphore.NewWeighted(workers)
	ctx := context.Background()
	results := make([]uint64, len(moves))
	done := make(chan struct{}, len(moves))

	for i, m := range moves {
		i, m := i, m
		_ = sem.Acquire(ctx, 1)
		go func() {
			defer sem.Release(1)
			defer func() { done <- struct{}{} }()
			worker := *pos
			worker.MakeMove(m)
			results[i] = Perft(&worker, depth-1)
		}()
	}
	for range moves {
		<-done
	}

	var total uint64
	for _, n := range results {
		total += n
	}
	return total
}
