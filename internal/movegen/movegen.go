// Package movegen generates fully-legal moves for a position, using the
// attacks package's check/pin snapshot to avoid a full make/unmake probe
// for most pieces (§4.4), plus a perft node-counter used for correctness
// testing against known reference counts (§4.9).
package movegen

import (
	"github.com/lmarchetti/pike/internal/attacks"
	"github.com/lmarchetti/pike/internal/bitboard"
	"github.com/lmarchetti/pike/internal/position"
)

// MaxMoves comfortably bounds the pseudo-legal move count of any legal
// chess position (the theoretical max is 218).
const MaxMoves = 256

// LegalMoves appends every legal move for the side to move in pos onto
// out and returns the extended slice along with how many moves were
// appended. When capturesOnly is set, only captures (including
// en-passant and capture-promotions) are generated.
func LegalMoves(pos *position.Position, out []bitboard.Move, capturesOnly bool) ([]bitboard.Move, int) {
	start := len(out)
	side := pos.SideToMove
	a := attacks.Analyze(pos, side)

	out = genKingMoves(pos, side, a, out, capturesOnly)

	if a.NumChecks < 2 {
		kingSq := pos.KingSquare[side]
		occAll := pos.OccAll()
		for bb := pos.Occ(side); bb != 0; {
			sq := bb.PopLsb()
			if sq == kingSq {
				continue
			}
			switch pos.Board[sq].TypeOf() {
			case bitboard.Pawn:
				out = genPawnMoves(pos, side, sq, a, out, capturesOnly)
			case bitboard.Knight:
				out = genMovesFromTargets(pos, side, sq, bitboard.KnightAttacks[sq], a, out, capturesOnly)
			case bitboard.Bishop:
				out = genMovesFromTargets(pos, side, sq, bitboard.BishopAttacks(sq, occAll), a, out, capturesOnly)
			case bitboard.Rook:
				out = genMovesFromTargets(pos, side, sq, bitboard.RookAttacks(sq, occAll), a, out, capturesOnly)
			case bitboard.Queen:
				out = genMovesFromTargets(pos, side, sq, bitboard.QueenAttacks(sq, occAll), a, out, capturesOnly)
			}
		}
	}

	return out, len(out) - start
}

// genMovesFromTargets applies the occupancy mask, captures-only filter,
// and the fast legality filter to a precomputed destination set -- a
// leaper's attack table or a slider's magic-table lookup (§4.4 step 4).
func genMovesFromTargets(pos *position.Position, side bitboard.Color, from bitboard.Square, targets bitboard.Bitboard, a attacks.Analysis, out []bitboard.Move, capturesOnly bool) []bitboard.Move {
	targets &^= pos.Occ(side)
	if capturesOnly {
		targets &= pos.Occ(side.Flip())
	}
	for bb := targets; bb != 0; {
		to := bb.PopLsb()
		if a.Legal(from, to) {
			out = append(out, bitboard.Move{From: from, To: to})
		}
	}
	return out
}

func genPawnMoves(pos *position.Position, side bitboard.Color, from bitboard.Square, a attacks.Analysis, out []bitboard.Move, capturesOnly bool) []bitboard.Move {
	occAll := pos.OccAll()
	enemyOcc := pos.Occ(side.Flip())
	forward, homeRank, lastRank := 8, 1, 7
	if side == bitboard.Black {
		forward, homeRank, lastRank = -8, 6, 0
	}

	emit := func(to bitboard.Square) {
		if !a.Legal(from, to) {
			return
		}
		if to.Rank() == lastRank {
			out = append(out,
				bitboard.Move{From: from, To: to, Promotion: bitboard.Queen},
				bitboard.Move{From: from, To: to, Promotion: bitboard.Rook},
				bitboard.Move{From: from, To: to, Promotion: bitboard.Bishop},
				bitboard.Move{From: from, To: to, Promotion: bitboard.Knight},
			)
		} else {
			out = append(out, bitboard.Move{From: from, To: to})
		}
	}

	if !capturesOnly {
		one := bitboard.Square(int(from) + forward)
		if one.IsValid() && !occAll.Has(one) {
			emit(one)
			if from.Rank() == homeRank {
				two := bitboard.Square(int(from) + 2*forward)
				if !occAll.Has(two) {
					emit(two)
				}
			}
		}
	}

	for bb := bitboard.PawnAttacks[side][from] & enemyOcc; bb != 0; {
		to := bb.PopLsb()
		emit(to)
	}

	if ep := pos.EnPassantSquare(); ep != bitboard.SqNone && bitboard.PawnAttacks[side][from].Has(ep) {
		out = genEnPassant(pos, side, from, ep, out)
	}

	return out
}

// genEnPassant verifies the rare discovered-check case with a full
// make/unmake probe rather than trusting the analyzer's pin map, which
// does not model the horizontal discovered attack created by removing
// two pawns from the same rank at once (§4.4 step 5, §9).
func genEnPassant(pos *position.Position, side bitboard.Color, from, to bitboard.Square, out []bitboard.Move) []bitboard.Move {
	m := bitboard.Move{From: from, To: to}
	snap := pos.TakeSnapshot()
	captured := pos.MakeMove(m)
	safe := !attacks.IsAttacked(pos, pos.KingSquare[side], side.Flip())
	pos.UnmakeMove(m, captured)
	pos.Restore(snap)
	if safe {
		out = append(out, m)
	}
	return out
}

func genKingMoves(pos *position.Position, side bitboard.Color, a attacks.Analysis, out []bitboard.Move, capturesOnly bool) []bitboard.Move {
	from := pos.KingSquare[side]
	enemy := side.Flip()
	targets := bitboard.KingAttacks[from] &^ pos.Occ(side)
	if capturesOnly {
		targets &= pos.Occ(enemy)
	}

	var safeAdjacency bitboard.Bitboard
	for bb := targets; bb != 0; {
		to := bb.PopLsb()
		if kingMoveIsSafe(pos, side, from, to) {
			safeAdjacency.PushSquare(to)
			out = append(out, bitboard.Move{From: from, To: to})
		}
	}

	if a.NumChecks != 0 || capturesOnly {
		return out
	}
	out = genCastling(pos, side, from, safeAdjacency, out)
	return out
}

// kingMoveIsSafe temporarily relocates the king to test whether the
// destination is attacked once the king has actually left its origin
// square, then restores the board (§4.4 step 6).
func kingMoveIsSafe(pos *position.Position, side bitboard.Color, from, to bitboard.Square) bool {
	origPiece := pos.Board[to]
	pos.Board[from] = bitboard.PieceNone
	pos.Board[to] = bitboard.MakePiece(side, bitboard.King)
	origOcc := pos.Occ(side)
	occ := origOcc
	occ.PopSquare(from)
	occ.PushSquare(to)
	if side == bitboard.White {
		pos.OccWhite = occ
	} else {
		pos.OccBlack = occ
	}

	safe := !attacks.IsAttacked(pos, to, side.Flip())

	pos.Board[from] = bitboard.MakePiece(side, bitboard.King)
	pos.Board[to] = origPiece
	if side == bitboard.White {
		pos.OccWhite = origOcc
	} else {
		pos.OccBlack = origOcc
	}

	return safe
}

// castleSpec describes one castling direction: the square the king lands
// on, the square it must safely transit (already generated as a normal
// king move), and the squares that must be empty between king and rook.
type castleSpec struct {
	kingside bool
	kingTo   bitboard.Square
	transit  bitboard.Square
	between  bitboard.Bitboard
}

func castlingSpecs(side bitboard.Color) []castleSpec {
	if side == bitboard.White {
		return []castleSpec{
			{kingside: true, kingTo: bitboard.SqG1, transit: bitboard.SqF1, between: bitboard.SqF1.Bb() | bitboard.SqG1.Bb()},
			{kingside: false, kingTo: bitboard.SqC1, transit: bitboard.SqD1, between: bitboard.SqB1.Bb() | bitboard.SqC1.Bb() | bitboard.SqD1.Bb()},
		}
	}
	return []castleSpec{
		{kingside: true, kingTo: bitboard.SqG8, transit: bitboard.SqF8, between: bitboard.SqF8.Bb() | bitboard.SqG8.Bb()},
		{kingside: false, kingTo: bitboard.SqC8, transit: bitboard.SqD8, between: bitboard.SqB8.Bb() | bitboard.SqC8.Bb() | bitboard.SqD8.Bb()},
	}
}

func genCastling(pos *position.Position, side bitboard.Color, kingFrom bitboard.Square, safeAdjacency bitboard.Bitboard, out []bitboard.Move) []bitboard.Move {
	for _, cs := range castlingSpecs(side) {
		hasRight := pos.CanCastleQueenside(side)
		if cs.kingside {
			hasRight = pos.CanCastleKingside(side)
		}
		if !hasRight {
			continue
		}
		if pos.OccAll()&cs.between != 0 {
			continue
		}
		if !safeAdjacency.Has(cs.transit) {
			continue
		}
		if !kingMoveIsSafe(pos, side, kingFrom, cs.kingTo) {
			continue
		}
		out = append(out, bitboard.Move{From: kingFrom, To: cs.kingTo})
	}
	return out
}
