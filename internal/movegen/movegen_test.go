package movegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lmarchetti/pike/internal/bitboard"
	"github.com/lmarchetti/pike/internal/position"
)

func TestPerftInitialPosition(t *testing.T) {
	p := position.NewStartPosition()
	assert.Equal(t, uint64(20), Perft(p, 1))
	assert.Equal(t, uint64(400), Perft(p, 2))
	assert.Equal(t, uint64(8902), Perft(p, 3))
}

func TestPerftInitialPositionDepth4(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping deeper perft in short mode")
	}
	p := position.NewStartPosition()
	assert.Equal(t, uint64(197281), Perft(p, 4))
}

func TestPerftKiwipete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping deeper perft in short mode")
	}
	p, err := position.FromFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	require.NoError(t, err)
	assert.Equal(t, uint64(48), Perft(p, 1))
	assert.Equal(t, uint64(2039), Perft(p, 2))
}

func TestPerftPosition3(t *testing.T) {
	p, err := position.FromFEN("8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1")
	require.NoError(t, err)
	assert.Equal(t, uint64(14), Perft(p, 1))
	assert.Equal(t, uint64(191), Perft(p, 2))
}

func TestPerftPosition4(t *testing.T) {
	p, err := position.FromFEN("r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2pP/R2Q1RK1 w kq - 0 1")
	require.NoError(t, err)
	assert.Equal(t, uint64(6), Perft(p, 1))
}

func TestPerftPosition5(t *testing.T) {
	p, err := position.FromFEN("rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8")
	require.NoError(t, err)
	assert.Equal(t, uint64(62379), Perft(p, 3))
}

func TestRookAndKingMoveCount(t *testing.T) {
	// The rook shares the e-file with its own king three ranks below, which
	// blocks e1 and the king's own square: 7 rank moves + 5 file moves =
	// 12 rook moves. The king has all eight adjacent squares free and
	// unattacked. 12 + 8 = 20 total.
	p, err := position.FromFEN("1k6/8/8/4R3/8/8/4K3/8 w - - 0 1")
	require.NoError(t, err)
	moves, count := LegalMoves(p, nil, false)
	assert.Equal(t, 20, count)
	assert.Len(t, moves, 20)

	rookMoves, kingMoves := 0, 0
	for _, m := range moves {
		switch m.From {
		case bitboard.SqE5:
			rookMoves++
		case bitboard.SqE2:
			kingMoves++
		}
	}
	assert.Equal(t, 12, rookMoves)
	assert.Equal(t, 8, kingMoves)
}

func TestFoolsMateHasNoLegalMoves(t *testing.T) {
	// Fool's mate: white is in check from the queen on h4 along the
	// h4-g3-f2-e1 diagonal, both intervening squares are empty, and
	// nothing can reach them, capture the queen, or give the king an
	// unattacked adjacent square -- checkmate, zero legal moves.
	p, err := position.FromFEN("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	require.NoError(t, err)
	_, count := LegalMoves(p, nil, false)
	assert.Equal(t, 0, count)
}

func TestStalemateReturnsNoMoves(t *testing.T) {
	p, err := position.FromFEN("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	require.NoError(t, err)
	_, count := LegalMoves(p, nil, false)
	assert.Equal(t, 0, count)
}

func TestEnPassantDiscoveredCheckRejected(t *testing.T) {
	p, err := position.FromFEN("8/8/8/KPp4r/8/8/8/5k2 w - c6 0 1")
	require.NoError(t, err)
	moves, _ := LegalMoves(p, nil, false)
	for _, m := range moves {
		assert.False(t, m.From == bitboard.SqB5 && m.To == bitboard.SqC6, "b5c6 en-passant must be rejected")
	}
}

func TestPromotionGeneratesFourVariants(t *testing.T) {
	p, err := position.FromFEN("8/P7/8/8/8/8/8/K6k w - - 0 1")
	require.NoError(t, err)
	moves, _ := LegalMoves(p, nil, false)
	promoCount := 0
	seen := map[bitboard.Promotion]bool{}
	for _, m := range moves {
		if m.From == bitboard.SqA7 {
			promoCount++
			seen[m.Promotion] = true
		}
	}
	assert.Equal(t, 4, promoCount)
	assert.True(t, seen[bitboard.Queen])
	assert.True(t, seen[bitboard.Rook])
	assert.True(t, seen[bitboard.Bishop])
	assert.True(t, seen[bitboard.Knight])
}

func TestCastlingGenerated(t *testing.T) {
	p, err := position.FromFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	require.NoError(t, err)
	moves, _ := LegalMoves(p, nil, false)
	foundKingside, foundQueenside := false, false
	for _, m := range moves {
		if m.From == bitboard.SqE1 && m.To == bitboard.SqG1 {
			foundKingside = true
		}
		if m.From == bitboard.SqE1 && m.To == bitboard.SqC1 {
			foundQueenside = true
		}
	}
	assert.True(t, foundKingside)
	assert.True(t, foundQueenside)
}

func TestCastlingBlockedByAttackedTransit(t *testing.T) {
	p, err := position.FromFEN("r3k2r/8/8/8/8/3b4/8/R3K2R w KQkq - 0 1")
	require.NoError(t, err)
	moves, _ := LegalMoves(p, nil, false)
	for _, m := range moves {
		assert.False(t, m.From == bitboard.SqE1 && m.To == bitboard.SqG1)
	}
}

func TestCapturesOnlyFiltersQuietMoves(t *testing.T) {
	p, err := position.FromFEN("4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	moves, count := LegalMoves(p, nil, true)
	require.Equal(t, 1, count)
	assert.Equal(t, bitboard.SqE4, moves[0].From)
	assert.Equal(t, bitboard.SqD5, moves[0].To)
}

func TestPerftParallelMatchesSerial(t *testing.T) {
	p := position.NewStartPosition()
	assert.Equal(t, Perft(p, 3), PerftParallel(p, 3))
}
