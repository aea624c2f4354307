package attacks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lmarchetti/pike/internal/bitboard"
	"github.com/lmarchetti/pike/internal/position"
)

func TestAnalyzeNoChecks(t *testing.T) {
	p := position.NewStartPosition()
	a := Analyze(p, bitboard.White)
	assert.Equal(t, 0, a.NumChecks)
	assert.Equal(t, bitboard.BbZero, a.PinnedMask)
}

func TestAnalyzeSingleSliderCheck(t *testing.T) {
	p, err := position.FromFEN("4k3/8/8/8/8/8/8/4R1K1 b - - 0 1")
	require.NoError(t, err)
	a := Analyze(p, bitboard.Black)
	assert.Equal(t, 1, a.NumChecks)
	assert.True(t, a.BlockMask.Has(bitboard.SqE1))
	assert.True(t, a.BlockMask.Has(bitboard.SqE4))
	assert.True(t, a.BlockMask.Has(bitboard.SqE7))
	assert.False(t, a.BlockMask.Has(bitboard.SqA1))
}

func TestAnalyzeKnightCheck(t *testing.T) {
	p, err := position.FromFEN("4k3/8/3N4/8/8/8/8/4K3 b - - 0 1")
	require.NoError(t, err)
	a := Analyze(p, bitboard.Black)
	assert.Equal(t, 1, a.NumChecks)
	assert.Equal(t, bitboard.SqD6.Bb(), a.BlockMask)
}

func TestAnalyzeDoubleCheckStops(t *testing.T) {
	p, err := position.FromFEN("4k3/8/3N4/8/8/8/8/4R1K1 b - - 0 1")
	require.NoError(t, err)
	a := Analyze(p, bitboard.Black)
	assert.Equal(t, 2, a.NumChecks)
}

func TestAnalyzePin(t *testing.T) {
	p, err := position.FromFEN("4k3/8/8/8/8/4r3/4R3/4K3 w - - 0 1")
	require.NoError(t, err)
	a := Analyze(p, bitboard.White)
	assert.Equal(t, 0, a.NumChecks)
	assert.True(t, a.PinnedMask.Has(bitboard.SqE2))
	assert.True(t, a.PinRay[bitboard.SqE2].Has(bitboard.SqE3))
}

func TestAnalyzeTwoFriendliesBreakPin(t *testing.T) {
	p, err := position.FromFEN("k7/8/8/8/4r3/4R3/4P3/4K3 w - - 0 1")
	require.NoError(t, err)
	a := Analyze(p, bitboard.White)
	assert.False(t, a.PinnedMask.Has(bitboard.SqE2))
	assert.Equal(t, 0, a.NumChecks)
}

func TestLegalFilter(t *testing.T) {
	p, err := position.FromFEN("4k3/8/8/8/8/4r3/4R3/4K3 w - - 0 1")
	require.NoError(t, err)
	a := Analyze(p, bitboard.White)
	assert.True(t, a.Legal(bitboard.SqE2, bitboard.SqE3))
	assert.False(t, a.Legal(bitboard.SqE2, bitboard.SqD2))
}

func TestLegalFilterBlockMask(t *testing.T) {
	p, err := position.FromFEN("3qk3/8/8/8/8/8/8/4R1K1 b - - 0 1")
	require.NoError(t, err)
	a := Analyze(p, bitboard.Black)
	assert.True(t, a.Legal(bitboard.SqD8, bitboard.SqE4))
	assert.False(t, a.Legal(bitboard.SqD8, bitboard.SqD4))
}
