package bitboard

// Piece-square tables, white's perspective, square 0 = a1 .. 63 = h8 (so
// the first row of each array below is rank 1, white's back rank, and the
// last row is rank 8 -- the reverse of the "board diagram" reading order
// used by chess literature). Values are
// centipawns. Non-king pieces use a single table folded directly into
// Position.EvalAcc incrementally; only the king is tapered between
// PSTKingMidGame and PSTKingEndGame at eval time (§4.5).
var (
	pstPawn = [SqLength]int{
		0, 0, 0, 0, 0, 0, 0, 0,
		5, 10, 10, -30, -30, 10, 10, 5,
		5, -5, -10, 0, 0, -10, -5, 5,
		0, 0, 0, 30, 30, 0, 0, 0,
		5, 5, 10, 30, 30, 10, 5, 5,
		0, 5, 5, 5, 5, 5, 5, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
	}
	pstKnight = [SqLength]int{
		-50, -25, -20, -30, -30, -20, -25, -50,
		-40, -20, 0, 5, 5, 0, -20, -40,
		-30, 5, 10, 15, 15, 10, 5, -30,
		-30, 0, 15, 20, 20, 15, 0, -30,
		-30, 5, 15, 20, 20, 15, 5, -30,
		-30, 0, 10, 15, 15, 10, 0, -30,
		-40, -20, 0, 0, 0, 0, -20, -40,
		-50, -40, -30, -30, -30, -30, -40, -50,
	}
	pstBishop = [SqLength]int{
		-20, -10, -40, -10, -10, -40, -10, -20,
		-10, 5, 0, 0, 0, 0, 5, -10,
		-10, 10, 10, 10, 10, 10, 10, -10,
		-10, 0, 10, 10, 10, 10, 0, -10,
		-10, 5, 5, 10, 10, 5, 5, -10,
		-10, 0, 5, 10, 10, 5, 0, -10,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-20, -10, -10, -10, -10, -10, -10, -20,
	}
	pstRook = [SqLength]int{
		-15, -10, 15, 15, 15, 15, -10, -15,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
		10, 10, 10, 10, 10, 10, 10, 10,
		5, 5, 5, 5, 5, 5, 5, 5,
	}
	pstQueen = [SqLength]int{
		-20, -10, -10, -5, -5, -10, -10, -20,
		-10, 0, 5, 5, 5, 5, 0, -10,
		-10, 0, 5, 5, 5, 5, 0, -10,
		-5, 0, 5, 5, 5, 5, 0, -5,
		-5, 0, 2, 2, 2, 2, 0, -5,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-10, 0, 0, 0, 0, 0, 0, -10,
		-20, -10, -10, -5, -5, -10, -10, -20,
	}

	// PSTKingMidGame and PSTKingEndGame are tapered between by the
	// evaluator based on fullmove count (§4.5); all other pieces use the
	// single tables above.
	PSTKingMidGame = [SqLength]int{
		20, 50, 0, -20, -20, 0, 50, 20,
		0, 0, -20, -20, -20, -20, 0, 0,
		-10, -20, -20, -30, -30, -30, -20, -10,
		-20, -30, -30, -40, -40, -30, -30, -20,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
		-30, -40, -40, -50, -50, -40, -40, -30,
	}
	PSTKingEndGame = [SqLength]int{
		-50, -30, -30, -30, -30, -30, -30, -50,
		-30, -30, 0, 0, 0, 0, -30, -30,
		-30, -10, 20, 30, 30, 20, -10, -30,
		-30, -10, 30, 40, 40, 30, -10, -30,
		-30, -10, 30, 40, 40, 30, -10, -30,
		-30, -10, 20, 30, 30, 20, -10, -30,
		-30, -20, -10, 0, 0, -10, -20, -30,
		-50, -30, -30, -20, -20, -30, -30, -50,
	}
)

// pstTables maps piece type to its (non-tapered) table. Kings are handled
// separately by the evaluator, so King has no entry consulted here.
var pstTables = [PtLength]*[SqLength]int{
	Pawn:   &pstPawn,
	Knight: &pstKnight,
	Bishop: &pstBishop,
	Rook:   &pstRook,
	Queen:  &pstQueen,
}

// mirror flips a white-perspective square index to read a white table
// entry for the black-side-mirrored square: rank is flipped, file kept.
func mirror(sq Square) Square {
	return SquareFromFileRank(sq.File(), 7-sq.Rank())
}

// MirrorSquare flips sq's rank, keeping its file -- the same
// white/black table-sharing trick PieceSquareValue uses internally,
// exposed so callers tapering the king PST tables (evaluator's job, not
// this package's) can look up black's king on the white-oriented tables.
func MirrorSquare(sq Square) Square {
	return mirror(sq)
}

// PieceSquareValue returns the white-perspective centipawn contribution
// of piece p sitting on sq: positive for white pieces, negative for
// black (so summing PieceSquareValue + material over the board yields
// Position.EvalAcc directly). Returns 0 for king (tapered separately) and
// PieceNone.
func PieceSquareValue(p Piece, sq Square) int {
	pt := p.TypeOf()
	if pt == PtNone || pt == King {
		return 0
	}
	tbl := pstTables[pt]
	if p.ColorOf() == White {
		return tbl[sq]
	}
	return -tbl[mirror(sq)]
}

// MaterialValue returns the signed, white-perspective material value of
// piece p: positive for white, negative for black, 0 for PieceNone.
func MaterialValue(p Piece) int {
	if p == PieceNone {
		return 0
	}
	v := p.ValueOf()
	if p.ColorOf() == Black {
		return -v
	}
	return v
}
