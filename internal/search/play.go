package search

import (
	"context"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/lmarchetti/pike/internal/bitboard"
	"github.com/lmarchetti/pike/internal/config"
	"github.com/lmarchetti/pike/internal/logging"
	"github.com/lmarchetti/pike/internal/movegen"
	"github.com/lmarchetti/pike/internal/position"
)

// Result is the outcome of Play: the chosen move and the side-relative
// score (in centipawns) the search assigned to every legal root move, so
// callers can report the full ordering (§6 "scores").
type Result struct {
	BestMove         bitboard.Move
	ScoresCentipawns map[string]int
	Depth            int
	BookMove         bool
}

// Play runs the root driver: an opening-book short-circuit, then
// iterative deepening with one root-parallel worker per legal move per
// iteration, until millis elapses (§4.7). When fancy is set, root moves
// scoring in (0, 500] at the current depth are bumped by half their
// improvement over their own depth-2 score before the final sort (the
// "second-ply delta" heuristic).
func (e *Engine) Play(pos *position.Position, millis int, fancy bool) Result {
	start := time.Now()
	deadline := start.Add(time.Duration(millis) * time.Millisecond)

	if pos.Fullmoves <= config.Settings.Search.OpeningPlyWindow {
		if m, ok := e.Book.Probe(pos.ZHash); ok {
			return Result{BestMove: m, ScoresCentipawns: map[string]int{m.UCI(): 0}, BookMove: true}
		}
	}

	rootMoves, n := movegen.LegalMoves(pos, make([]bitboard.Move, 0, movegen.MaxMoves), false)
	rootMoves = rootMoves[:n]
	if n == 0 {
		return Result{BestMove: bitboard.NoMove, ScoresCentipawns: map[string]int{}}
	}
	scoreMoves(pos, rootMoves)
	sortByScoreDescending(rootMoves)

	slog := logging.GetSearchLog()

	workers := int64(runtime.GOMAXPROCS(0))
	if workers < 1 {
		workers = 1
	}

	depth2Scores := make(map[string]int, len(rootMoves))
	lastCompleted := append([]bitboard.Move(nil), rootMoves...)
	completedDepth := 0

	for depth := 1; !deadlinePassed(deadline); depth++ {
		scores := make([]int, len(rootMoves))
		canceled := make([]bool, len(rootMoves))

		sem := semaphore.NewWeighted(workers)
		ctx := context.Background()
		var wg sync.WaitGroup
		wg.Add(len(rootMoves))

		for i, m := range rootMoves {
			i, m := i, m
			_ = sem.Acquire(ctx, 1)
			go func() {
				defer sem.Release(1)
				defer wg.Done()

				worker := *pos
				captured := worker.MakeMove(m)
				isCapture := captured != bitboard.PieceNone
				var myCanceled bool
				scores[i] = -e.negamax(&worker, depth-1, -Mate, Mate, isCapture, 0, deadline, &myCanceled)
				canceled[i] = myCanceled
			}()
		}
		wg.Wait()

		anyCanceled := false
		for _, c := range canceled {
			if c {
				anyCanceled = true
				break
			}
		}

		iteration := append([]bitboard.Move(nil), rootMoves...)
		for i := range iteration {
			if canceled[i] {
				iteration[i].Score = -Mate
			} else {
				iteration[i].Score = scores[i]
			}
		}

		if depth == 2 {
			for _, m := range iteration {
				depth2Scores[m.UCI()] = m.Score
			}
		}
		if fancy && depth > 2 {
			for i := range iteration {
				s := iteration[i].Score
				if s > 0 && s <= 500 {
					if prev, ok := depth2Scores[iteration[i].UCI()]; ok {
						if delta := s - prev; delta > 0 {
							iteration[i].Score = s + delta/2
						}
					}
				}
			}
		}

		sortByScoreDescending(iteration)

		var stop bool
		lastCompleted, completedDepth, stop = mergeIteration(lastCompleted, completedDepth, iteration, depth, anyCanceled)
		if stop {
			slog.Debugf("depth %d canceled by deadline, discarding", depth)
			break
		}
		rootMoves = append([]bitboard.Move(nil), iteration...)
		slog.Debugf("depth %d complete: best %s score %d", depth, lastCompleted[0].UCI(), lastCompleted[0].Score)
	}

	scores := make(map[string]int, len(lastCompleted))
	for _, m := range lastCompleted {
		scores[m.UCI()] = m.Score
	}
	return Result{BestMove: lastCompleted[0], ScoresCentipawns: scores, Depth: completedDepth}
}

// mergeIteration decides what an iteration contributes to the running
// "best completed result" (§4.8, §7): a canceled iteration's partial
// scores are discarded outright, leaving prev/prevDepth (the most recent
// fully completed iteration) untouched, rather than letting a truncated
// iteration overwrite it.
func mergeIteration(prev []bitboard.Move, prevDepth int, iteration []bitboard.Move, depth int, canceled bool) (lastCompleted []bitboard.Move, completedDepth int, stop bool) {
	if canceled {
		return prev, prevDepth, true
	}
	return iteration, depth, false
}
