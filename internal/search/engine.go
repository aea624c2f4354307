// Package search implements the iterative-deepening, root-parallel
// negamax driver (§4.7): one goroutine per legal root move per
// iteration, a shared transposition table, alpha-beta pruning with a
// quiescence-search leaf extension, a one-ply check extension, and
// cooperative deadline cancellation.
package search

import (
	"time"

	"github.com/lmarchetti/pike/internal/attacks"
	"github.com/lmarchetti/pike/internal/bitboard"
	"github.com/lmarchetti/pike/internal/config"
	"github.com/lmarchetti/pike/internal/evaluator"
	"github.com/lmarchetti/pike/internal/movegen"
	"github.com/lmarchetti/pike/internal/openingbook"
	"github.com/lmarchetti/pike/internal/position"
	"github.com/lmarchetti/pike/internal/tt"
)

// Mate is the base score magnitude for a checkmate, high enough to stay
// clear of any realistic material+positional evaluation. A checkmated
// node scores -(Mate - depth), where depth is the remaining search depth
// at that node; the score does not favour shorter mates over longer ones.
const Mate = 32000

// Engine bundles the shared, process-wide search resources: the
// transposition table and the opening book. Both are safe to share
// across root-parallel workers (§5).
type Engine struct {
	TT   *tt.Table
	Book *openingbook.Book
}

// New builds an Engine with a fresh transposition table and an empty,
// unloaded opening book (callers that want a populated book load it into
// Book separately via Book.Load).
func New() *Engine {
	return &Engine{TT: tt.New(), Book: openingbook.New()}
}

// sideRelativeEval returns the evaluator's white-positive score negated
// for black, so every node in negamax maximizes its own perspective
// (§4.5 "the search negates the evaluation when side to move is black").
func sideRelativeEval(pos *position.Position) int {
	e := evaluator.Eval(pos)
	if pos.SideToMove == bitboard.Black {
		return -e
	}
	return e
}

func deadlinePassed(deadline time.Time) bool {
	return time.Now().After(deadline)
}

// negamax searches pos to depth plies and returns a side-to-move-relative
// score. lastWasCapture selects the depth==0 quiescence hand-off;
// extensions counts how many one-ply check extensions have already been
// applied along this path. canceled is set (and 0 returned) the first
// time a node is visited after deadline; callers must check it rather
// than trust the returned score.
func (e *Engine) negamax(pos *position.Position, depth int, alpha, beta int, lastWasCapture bool, extensions int, deadline time.Time, canceled *bool) int {
	if depth == 0 && lastWasCapture {
		return e.quiescence(pos, config.Settings.Search.QuiescenceDepth, alpha, beta, deadline, canceled)
	}

	if score, ok := e.TT.Probe(pos.ZHash, depth, alpha, beta); ok {
		return score
	}

	if depth == 0 {
		inCheck := attacks.Analyze(pos, pos.SideToMove).NumChecks > 0
		if inCheck && extensions < config.Settings.Search.MaxExtensions {
			depth = 1
			extensions++
		} else {
			score := sideRelativeEval(pos)
			e.TT.Store(pos.ZHash, score, 0, tt.BoundExact)
			return score
		}
	}

	if deadlinePassed(deadline) {
		*canceled = true
		return 0
	}

	if pos.RepetitionCount() >= 3 {
		return 0
	}

	moves, n := movegen.LegalMoves(pos, make([]bitboard.Move, 0, movegen.MaxMoves), false)
	if n == 0 {
		inCheck := attacks.Analyze(pos, pos.SideToMove).NumChecks > 0
		score := 0
		if inCheck {
			score = -(Mate - depth)
		}
		e.TT.Store(pos.ZHash, score, depth, tt.BoundExact)
		return score
	}
	moves = moves[:n]
	scoreMoves(pos, moves)

	alphaOrig := alpha
	best := -Mate - 1

	for i := range moves {
		selectNext(moves, i, 8)
		m := moves[i]

		snap := pos.TakeSnapshot()
		captured := pos.MakeMove(m)
		score := -e.negamax(pos, depth-1, -beta, -alpha, captured != bitboard.PieceNone, extensions, deadline, canceled)
		pos.UnmakeMove(m, captured)
		pos.Restore(snap)

		if score > best {
			best = score
		}
		if score >= beta {
			e.TT.Store(pos.ZHash, score, depth, tt.BoundLower)
			return score
		}
		if score > alpha {
			alpha = score
		}
	}

	bound := tt.BoundExact
	switch {
	case best <= alphaOrig:
		bound = tt.BoundUpper
	case best >= beta:
		bound = tt.BoundLower
	}
	e.TT.Store(pos.ZHash, best, depth, bound)
	return best
}

// quiescence extends search along capture sequences only, to avoid
// misjudging a position mid-exchange (the horizon effect), capped at a
// fixed recursion depth (§4.7).
func (e *Engine) quiescence(pos *position.Position, qdepth int, alpha, beta int, deadline time.Time, canceled *bool) int {
	if deadlinePassed(deadline) {
		*canceled = true
		return 0
	}

	standPat := sideRelativeEval(pos)
	if standPat >= beta {
		return standPat
	}
	if standPat > alpha {
		alpha = standPat
	}
	if qdepth <= 0 {
		return alpha
	}

	moves, n := movegen.LegalMoves(pos, make([]bitboard.Move, 0, movegen.MaxMoves), true)
	if n == 0 {
		return alpha
	}
	moves = moves[:n]
	scoreMoves(pos, moves)

	for i := range moves {
		selectNext(moves, i, 8)
		m := moves[i]

		snap := pos.TakeSnapshot()
		captured := pos.MakeMove(m)
		score := -e.quiescence(pos, qdepth-1, -beta, -alpha, deadline, canceled)
		pos.UnmakeMove(m, captured)
		pos.Restore(snap)

		if score >= beta {
			return score
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}
