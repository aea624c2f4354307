// Package evaluator implements the tapered, piece-square-table
// evaluation of a position (§4.5): material and piece-square value
// accumulate incrementally on Position (everything but the king), and
// this package adds the pawn-structure term and the midgame/endgame
// king tapering on top at evaluation time.
package evaluator

import (
	"github.com/lmarchetti/pike/internal/bitboard"
	"github.com/lmarchetti/pike/internal/config"
	"github.com/lmarchetti/pike/internal/position"
)

// Eval returns the white-positive evaluation of pos in centipawns.
func Eval(pos *position.Position) int {
	fm := pos.Fullmoves
	if limit := config.Settings.Eval.FullmovesEndgame; fm > limit {
		fm = limit
	}

	e := pos.EvalAcc
	if bonus := config.Settings.Eval.PawnRankBonus; bonus != 0 {
		e += pos.PawnRowSum * fm / bonus
	}

	e += kingTerm(pos, bitboard.White, fm)
	e -= kingTerm(pos, bitboard.Black, fm)

	return e
}

// kingTerm blends the midgame and endgame king piece-square value for
// color's king, linearly on fm clamped to the same FullmovesEndgame
// constant fm itself is clamped to -- so the blend always reaches full
// endgame weight exactly when fm saturates, even under a config.toml
// override (§4.5: "fm = min(fullmoves, FULLMOVES_ENDGAME)", king term
// divided by FM_EG -- the same single constant, not two).
func kingTerm(pos *position.Position, color bitboard.Color, fm int) int {
	fmEG := config.Settings.Eval.FullmovesEndgame
	if fmEG == 0 {
		fmEG = 1
	}

	sq := pos.KingSquare[color]
	pstSq := sq
	if color == bitboard.Black {
		pstSq = bitboard.MirrorSquare(sq)
	}
	mg := bitboard.PSTKingMidGame[pstSq]
	eg := bitboard.PSTKingEndGame[pstSq]
	return (mg*(fmEG-fm) + eg*fm) / fmEG
}
