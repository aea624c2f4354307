package openingbook

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lmarchetti/pike/internal/config"
)

func TestMain(m *testing.M) {
	config.Setup()
	os.Exit(m.Run())
}

func writeBookFile(t *testing.T, contents string) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "book-*.txt")
	require.NoError(t, err)
	_, err = f.WriteString(contents)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

func TestLoadSkipsCommentsAndBlankLines(t *testing.T) {
	path := writeBookFile(t, "# a comment\n\n463b96181691fc6c,1,e2e4\n")
	b := New()
	require.NoError(t, b.Load(path))
	assert.Equal(t, 1, b.Len())
}

func TestProbeReturnsOneOfListedMoves(t *testing.T) {
	path := writeBookFile(t, "463b96181691fc6c,2,e2e4,d2d4\n")
	b := New()
	require.NoError(t, b.Load(path))

	m, ok := b.Probe(0x463b96181691fc6c)
	require.True(t, ok)
	assert.Contains(t, []string{"e2e4", "d2d4"}, m.UCI())
}

func TestProbeMissesUnknownKey(t *testing.T) {
	path := writeBookFile(t, "463b96181691fc6c,1,e2e4\n")
	b := New()
	require.NoError(t, b.Load(path))

	_, ok := b.Probe(0xDEADBEEF)
	assert.False(t, ok)
}

func TestLoadRejectsMismatchedMoveCount(t *testing.T) {
	path := writeBookFile(t, "463b96181691fc6c,2,e2e4\n")
	b := New()
	require.NoError(t, b.Load(path))
	assert.Equal(t, 0, b.Len(), "malformed record must be skipped, not stored")
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	b := New()
	assert.Error(t, b.Load("/nonexistent/path/book.txt"))
}
