package tt

import (
	"os"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"

	"github.com/lmarchetti/pike/internal/config"
)

func TestMain(m *testing.M) {
	config.Setup()
	os.Exit(m.Run())
}

func TestEntrySize(t *testing.T) {
	var e entry
	assert.LessOrEqual(t, unsafe.Sizeof(e), uintptr(16))
}

func TestResizeRoundsDownToPowerOfTwo(t *testing.T) {
	table := &Table{}
	table.Resize(100)
	assert.Equal(t, 64, table.Len())
}

func TestStoreThenProbeExactHit(t *testing.T) {
	table := &Table{}
	table.Resize(1024)
	table.Store(0xABCD, 42, 5, BoundExact)
	score, ok := table.Probe(0xABCD, 5, -1000, 1000)
	require := assert.New(t)
	require.True(ok)
	require.Equal(42, score)
}

func TestProbeMissesOnKeyMismatch(t *testing.T) {
	table := &Table{}
	table.Resize(1024)
	table.Store(0xABCD, 42, 5, BoundExact)
	_, ok := table.Probe(0xABCD+1024, 5, -1000, 1000)
	assert.False(t, ok)
}

func TestProbeMissesWhenStoredDepthShallower(t *testing.T) {
	table := &Table{}
	table.Resize(1024)
	table.Store(0xABCD, 42, 3, BoundExact)
	_, ok := table.Probe(0xABCD, 5, -1000, 1000)
	assert.False(t, ok)
}

func TestLowerBoundOnlyCutsOffWhenScoreReachesBeta(t *testing.T) {
	table := &Table{}
	table.Resize(1024)
	table.Store(0x1, 100, 5, BoundLower)
	_, ok := table.Probe(0x1, 5, -1000, 50)
	assert.True(t, ok, "score 100 >= beta 50 should cut off")
	table.Clear()
	table.Store(0x1, 10, 5, BoundLower)
	_, ok = table.Probe(0x1, 5, -1000, 50)
	assert.False(t, ok, "score 10 < beta 50 must not cut off")
}

func TestUpperBoundOnlyCutsOffWhenScoreFallsToAlpha(t *testing.T) {
	table := &Table{}
	table.Resize(1024)
	table.Store(0x1, -100, 5, BoundUpper)
	_, ok := table.Probe(0x1, 5, -50, 1000)
	assert.True(t, ok, "score -100 <= alpha -50 should cut off")
	table.Clear()
	table.Store(0x1, 0, 5, BoundUpper)
	_, ok = table.Probe(0x1, 5, -50, 1000)
	assert.False(t, ok, "score 0 > alpha -50 must not cut off")
}

func TestDepthReplacePolicyKeepsDeeperEntry(t *testing.T) {
	table := &Table{}
	table.Resize(1024)
	table.Store(0x1, 10, 8, BoundExact)
	table.Store(0x1, 99, 3, BoundExact)
	score, ok := table.Probe(0x1, 8, -1000, 1000)
	assert.True(t, ok)
	assert.Equal(t, 10, score, "shallower store must not overwrite a deeper entry")
}

func TestClearRemovesEntries(t *testing.T) {
	table := &Table{}
	table.Resize(1024)
	table.Store(0x1, 10, 8, BoundExact)
	table.Clear()
	_, ok := table.Probe(0x1, 1, -1000, 1000)
	assert.False(t, ok)
}

func TestNewUsesConfiguredSize(t *testing.T) {
	prev := config.Settings.Search.TTEntries
	config.Settings.Search.TTEntries = 256
	defer func() { config.Settings.Search.TTEntries = prev }()
	table := New()
	assert.Equal(t, 256, table.Len())
}
