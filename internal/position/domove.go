package position

import (
	"github.com/lmarchetti/pike/internal/bitboard"
)

// EnPassantSquare returns the square a pawn could capture onto
// en-passant this move, or SqNone if none is set.
func (p *Position) EnPassantSquare() bitboard.Square {
	if !p.State.hasEnPassant() {
		return bitboard.SqNone
	}
	rank := 5 // rank 6 label: white to move, capturing a black double push
	if p.SideToMove == bitboard.Black {
		rank = 2 // rank 3 label
	}
	return bitboard.SquareFromFileRank(p.State.enPassantFile(), rank)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// castleRookSquares maps a castling king destination to the (rook-from,
// rook-to) pair that move physically applies.
var castleRookSquares = map[bitboard.Square][2]bitboard.Square{
	bitboard.SqG1: {bitboard.SqH1, bitboard.SqF1},
	bitboard.SqC1: {bitboard.SqA1, bitboard.SqD1},
	bitboard.SqG8: {bitboard.SqH8, bitboard.SqF8},
	bitboard.SqC8: {bitboard.SqA8, bitboard.SqD8},
}

// cornerCastleRight maps a rook-home corner square to the castling right
// it governs, so a rook move or capture on that square revokes it.
var cornerCastleRight = map[bitboard.Square]GameState{
	bitboard.SqA1: castleWQ,
	bitboard.SqH1: castleWK,
	bitboard.SqA8: castleBQ,
	bitboard.SqH8: castleBK,
}

// lastMove caches the facts about the most recent MakeMove that
// UnmakeMove needs but cannot safely re-derive from board state alone
// (whether it was a castle or an en-passant capture, and where the
// en-passant victim sat). Position is always used in balanced
// make/unmake pairs (§3 invariant), so a single-slot cache is sufficient
// and travels correctly with a by-value Position copy.
type lastMove struct {
	isCastle    bool
	isEnPassant bool
	epCaptureSq bitboard.Square
}

// MakeMove applies m to p and returns the piece captured by the move (the
// piece standing on the to-square before the move, or for an en-passant
// capture the enemy pawn removed from the capture square). It follows
// spec.md §4.2 step by step; see Snapshot/Restore for the fields it does
// not undo symmetrically -- those are the caller's responsibility around
// UnmakeMove.
func (p *Position) MakeMove(m bitboard.Move) bitboard.Piece {
	from, to := m.From, m.To
	mover := p.SideToMove
	opponent := mover.Flip()
	moving := p.Board[from]
	targetBefore := p.Board[to]

	isPawn := moving.TypeOf() == bitboard.Pawn
	isEnPassant := isPawn && targetBefore == bitboard.PieceNone && from.File() != to.File()
	isDoublePush := isPawn && abs(int(to)-int(from)) == 16
	isCastle := moving.TypeOf() == bitboard.King && abs(to.File()-from.File()) == 2

	p.last = lastMove{isCastle: isCastle, isEnPassant: isEnPassant}

	var capturedPiece bitboard.Piece

	// 2. occupancy for the move itself.
	moverOcc := p.Occ(mover)
	moverOcc.PopSquare(from)
	moverOcc.PushSquare(to)
	p.setOcc(mover, moverOcc)

	if targetBefore != bitboard.PieceNone {
		oppOcc := p.Occ(opponent)
		oppOcc.PopSquare(to)
		p.setOcc(opponent, oppOcc)
		capturedPiece = targetBefore
	}

	// 3. XOR out moving piece @from and captured piece @to.
	p.ZHash ^= bitboard.ZPieceSquare[moving][from]
	p.EvalAcc -= bitboard.MaterialValue(moving) + bitboard.PieceSquareValue(moving, from)
	if targetBefore != bitboard.PieceNone {
		p.ZHash ^= bitboard.ZPieceSquare[targetBefore][to]
		p.EvalAcc -= bitboard.MaterialValue(targetBefore) + bitboard.PieceSquareValue(targetBefore, to)
	}

	// 4. XOR out old state.
	p.ZHash ^= p.State.castlingKeys(&bitboard.ZCastling)
	if p.State.hasEnPassant() {
		p.ZHash ^= bitboard.ZEnPassantFile[p.State.enPassantFile()]
	}

	// 5. halfmove clock.
	if isPawn || targetBefore != bitboard.PieceNone {
		p.Halfmoves = 0
	} else {
		p.Halfmoves++
	}

	// 6. fullmove increment on black's move.
	if mover == bitboard.Black {
		p.Fullmoves++
	}

	// 7. en-passant file bookkeeping.
	if isDoublePush {
		p.State.setEnPassant(from.File())
	} else {
		p.State.clearEnPassant()
	}

	// 8. castling-rights updates.
	switch moving.TypeOf() {
	case bitboard.King:
		if mover == bitboard.White {
			p.State.clearWK()
			p.State.clearWQ()
		} else {
			p.State.clearBK()
			p.State.clearBQ()
		}
	case bitboard.Rook:
		if right, ok := cornerCastleRight[from]; ok {
			p.State &^= right
		}
	}
	if right, ok := cornerCastleRight[to]; ok {
		p.State &^= right
	}

	// 9. castling rook relocation.
	if isCastle {
		rookSq := castleRookSquares[to]
		rookFrom, rookTo := rookSq[0], rookSq[1]
		rook := p.Board[rookFrom]
		p.Board[rookFrom] = bitboard.PieceNone
		p.Board[rookTo] = rook
		p.ZHash ^= bitboard.ZPieceSquare[rook][rookFrom]
		p.ZHash ^= bitboard.ZPieceSquare[rook][rookTo]
		p.EvalAcc -= bitboard.MaterialValue(rook) + bitboard.PieceSquareValue(rook, rookFrom)
		p.EvalAcc += bitboard.MaterialValue(rook) + bitboard.PieceSquareValue(rook, rookTo)
		moverOcc := p.Occ(mover)
		moverOcc.PopSquare(rookFrom)
		moverOcc.PushSquare(rookTo)
		p.setOcc(mover, moverOcc)
	}

	// 10. en-passant capture.
	if isEnPassant {
		capSq := bitboard.SquareFromFileRank(to.File(), from.Rank())
		p.last.epCaptureSq = capSq
		capturedPawn := p.Board[capSq]
		capturedPiece = capturedPawn
		p.Board[capSq] = bitboard.PieceNone
		p.ZHash ^= bitboard.ZPieceSquare[capturedPawn][capSq]
		p.EvalAcc -= bitboard.MaterialValue(capturedPawn) + bitboard.PieceSquareValue(capturedPawn, capSq)
		oppOcc := p.Occ(opponent)
		oppOcc.PopSquare(capSq)
		p.setOcc(opponent, oppOcc)
	}

	// 11. pawn-row-sum delta. Both colors use the same (rank - constant)
	// form (§3), so the raw rank delta applies unchanged regardless of
	// which side is moving.
	if isPawn {
		p.PawnRowSum += to.Rank() - from.Rank()
	}
	if targetBefore.TypeOf() == bitboard.Pawn {
		if opponent == bitboard.White {
			p.PawnRowSum -= to.Rank() - 1
		} else {
			p.PawnRowSum -= to.Rank() - 6
		}
	}
	if isEnPassant {
		capSq := p.last.epCaptureSq
		if mover == bitboard.White {
			p.PawnRowSum -= capSq.Rank() - 6
		} else {
			p.PawnRowSum -= capSq.Rank() - 1
		}
	}

	// 12. promotion replaces the moving piece before it is written.
	placed := moving
	if m.Promotion != bitboard.PtNone {
		placed = bitboard.MakePiece(mover, m.Promotion)
		if mover == bitboard.White {
			p.PawnRowSum -= to.Rank() - 1
		} else {
			p.PawnRowSum -= to.Rank() - 6
		}
	}

	// 13. flip side to move; update cached king square.
	p.ZHash ^= bitboard.ZSideToMove
	p.SideToMove = opponent
	if moving.TypeOf() == bitboard.King {
		p.KingSquare[mover] = to
	}

	// 14. write board, XOR in new piece/state.
	p.Board[to] = placed
	p.Board[from] = bitboard.PieceNone
	p.ZHash ^= bitboard.ZPieceSquare[placed][to]
	p.ZHash ^= p.State.castlingKeys(&bitboard.ZCastling)
	if p.State.hasEnPassant() {
		p.ZHash ^= bitboard.ZEnPassantFile[p.State.enPassantFile()]
	}
	p.EvalAcc += bitboard.MaterialValue(placed) + bitboard.PieceSquareValue(placed, to)
	p.PushHash()

	return capturedPiece
}

// UnmakeMove is the symmetric inverse of MakeMove for board placement,
// side to move, king-square cache, castling-rook relocation, and the
// en-passant-captured pawn. Per §4.2/§9 it does NOT restore State, ZHash,
// EvalAcc, PawnRowSum, occupancy, or Halfmoves -- a caller must have
// saved those via TakeSnapshot before MakeMove and call Restore after
// UnmakeMove if it needs them back.
func (p *Position) UnmakeMove(m bitboard.Move, captured bitboard.Piece) {
	p.PopHash()

	last := p.last

	opponent := p.SideToMove
	mover := opponent.Flip()
	p.SideToMove = mover

	if mover == bitboard.Black && p.Fullmoves > 1 {
		p.Fullmoves--
	}

	from, to := m.From, m.To
	placed := p.Board[to]

	moving := placed
	if m.Promotion != bitboard.PtNone {
		moving = bitboard.MakePiece(mover, bitboard.Pawn)
	}

	p.Board[from] = moving
	if last.isEnPassant {
		p.Board[to] = bitboard.PieceNone
		p.Board[last.epCaptureSq] = captured
	} else {
		p.Board[to] = captured
	}

	if moving.TypeOf() == bitboard.King {
		p.KingSquare[mover] = from
		if last.isCastle {
			rookSq := castleRookSquares[to]
			rookFrom, rookTo := rookSq[0], rookSq[1]
			rook := p.Board[rookTo]
			p.Board[rookTo] = bitboard.PieceNone
			p.Board[rookFrom] = rook
		}
	}
}
