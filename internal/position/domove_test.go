package position

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lmarchetti/pike/internal/bitboard"
)

// playAndUndo applies m, restoring everything UnmakeMove itself leaves
// untouched via Snapshot/Restore, matching the caller contract documented
// on UnmakeMove.
func playAndUndo(t *testing.T, p *Position, m bitboard.Move) {
	t.Helper()
	before := *p
	snap := p.TakeSnapshot()
	captured := p.MakeMove(m)
	p.UnmakeMove(m, captured)
	p.Restore(snap)
	assert.Equal(t, before.Board, p.Board)
	assert.Equal(t, before.SideToMove, p.SideToMove)
	assert.Equal(t, before.KingSquare, p.KingSquare)
	assert.Equal(t, before.ZHash, p.ZHash)
	assert.Equal(t, before.EvalAcc, p.EvalAcc)
	assert.Equal(t, before.PawnRowSum, p.PawnRowSum)
}

func TestMakeUnmakeQuietMove(t *testing.T) {
	p := NewStartPosition()
	m := bitboard.Move{From: bitboard.SqE2, To: bitboard.SqE4}
	playAndUndo(t, p, m)
}

func TestMakeUnmakeCapture(t *testing.T) {
	p, err := FromFEN("rnbqkbnr/pppp1ppp/8/4p3/3P4/8/PPP1PPPP/RNBQKBNR w KQkq - 0 2")
	require.NoError(t, err)
	m := bitboard.Move{From: bitboard.SqD4, To: bitboard.SqE5}
	before := p.Board[bitboard.SqE5]
	assert.Equal(t, bitboard.BlackPawn, before)
	snap := p.TakeSnapshot()
	captured := p.MakeMove(m)
	assert.Equal(t, bitboard.BlackPawn, captured)
	assert.Equal(t, bitboard.WhitePawn, p.Board[bitboard.SqE5])
	assert.Equal(t, bitboard.PieceNone, p.Board[bitboard.SqD4])
	p.UnmakeMove(m, captured)
	p.Restore(snap)
	assert.Equal(t, bitboard.BlackPawn, p.Board[bitboard.SqE5])
	assert.Equal(t, bitboard.WhitePawn, p.Board[bitboard.SqD4])
}

func TestMakeUnmakeEnPassant(t *testing.T) {
	p, err := FromFEN("rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3")
	require.NoError(t, err)
	m := bitboard.Move{From: bitboard.SqE5, To: bitboard.SqD6}
	snap := p.TakeSnapshot()
	captured := p.MakeMove(m)
	assert.Equal(t, bitboard.BlackPawn, captured)
	assert.Equal(t, bitboard.PieceNone, p.Board[bitboard.SqD5])
	assert.Equal(t, bitboard.WhitePawn, p.Board[bitboard.SqD6])
	p.UnmakeMove(m, captured)
	p.Restore(snap)
	assert.Equal(t, bitboard.BlackPawn, p.Board[bitboard.SqD5])
	assert.Equal(t, bitboard.WhitePawn, p.Board[bitboard.SqE5])
	assert.Equal(t, bitboard.PieceNone, p.Board[bitboard.SqD6])
}

func TestMakeUnmakeCastleKingside(t *testing.T) {
	p, err := FromFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	require.NoError(t, err)
	m := bitboard.Move{From: bitboard.SqE1, To: bitboard.SqG1}
	before := *p
	snap := p.TakeSnapshot()
	captured := p.MakeMove(m)
	assert.Equal(t, bitboard.WhiteRook, p.Board[bitboard.SqF1])
	assert.Equal(t, bitboard.WhiteKing, p.Board[bitboard.SqG1])
	assert.Equal(t, bitboard.PieceNone, p.Board[bitboard.SqH1])
	assert.Equal(t, bitboard.SqG1, p.KingSquare[bitboard.White])
	p.UnmakeMove(m, captured)
	p.Restore(snap)
	assert.Equal(t, before.Board, p.Board)
	assert.Equal(t, before.KingSquare, p.KingSquare)
}

func TestMakeUnmakeCastleRevokesRights(t *testing.T) {
	p, err := FromFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	require.NoError(t, err)
	m := bitboard.Move{From: bitboard.SqE1, To: bitboard.SqG1}
	p.MakeMove(m)
	assert.False(t, p.State.hasWK())
	assert.False(t, p.State.hasWQ())
	assert.True(t, p.State.hasBK())
	assert.True(t, p.State.hasBQ())
}

func TestMakeUnmakeRookMoveRevokesOneRight(t *testing.T) {
	p, err := FromFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	require.NoError(t, err)
	m := bitboard.Move{From: bitboard.SqA1, To: bitboard.SqB1}
	p.MakeMove(m)
	assert.False(t, p.State.hasWQ())
	assert.True(t, p.State.hasWK())
}

func TestMakeUnmakeRookCaptureRevokesOpponentRight(t *testing.T) {
	p, err := FromFEN("r3k2r/8/8/8/8/8/1B6/R3K2R w KQkq - 0 1")
	require.NoError(t, err)
	m := bitboard.Move{From: bitboard.SqB2, To: bitboard.SqH8}
	p.MakeMove(m)
	assert.False(t, p.State.hasBK())
	assert.True(t, p.State.hasBQ())
}

func TestMakeUnmakePromotion(t *testing.T) {
	p, err := FromFEN("8/P7/8/8/8/8/8/k6K w - - 0 1")
	require.NoError(t, err)
	m := bitboard.Move{From: bitboard.SqA7, To: bitboard.SqA8, Promotion: bitboard.Queen}
	snap := p.TakeSnapshot()
	captured := p.MakeMove(m)
	assert.Equal(t, bitboard.PieceNone, captured)
	assert.Equal(t, bitboard.WhiteQueen, p.Board[bitboard.SqA8])
	assert.Equal(t, bitboard.PieceNone, p.Board[bitboard.SqA7])
	p.UnmakeMove(m, captured)
	p.Restore(snap)
	assert.Equal(t, bitboard.WhitePawn, p.Board[bitboard.SqA7])
	assert.Equal(t, bitboard.PieceNone, p.Board[bitboard.SqA8])
}

func TestRepetitionCount(t *testing.T) {
	p := NewStartPosition()
	moves := []bitboard.Move{
		{From: bitboard.SqG1, To: bitboard.SqF3},
		{From: bitboard.SqG8, To: bitboard.SqF6},
		{From: bitboard.SqF3, To: bitboard.SqG1},
		{From: bitboard.SqF6, To: bitboard.SqG8},
	}
	for _, m := range moves {
		p.MakeMove(m)
	}
	assert.Equal(t, 2, p.RepetitionCount())
}

func TestSequentialMakeUnmakeRestoresEverything(t *testing.T) {
	p := NewStartPosition()
	moves := []bitboard.Move{
		{From: bitboard.SqE2, To: bitboard.SqE4},
		{From: bitboard.SqE7, To: bitboard.SqE5},
		{From: bitboard.SqG1, To: bitboard.SqF3},
	}
	for _, m := range moves {
		playAndUndo(t, p, m)
	}
}
