package dispatch

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuardAllowsWhenFileMissing(t *testing.T) {
	g := NewGuard(filepath.Join(t.TempDir(), "guard.txt"), 6*time.Hour)
	assert.True(t, g.Allow())
}

func TestGuardBlocksWithinWindow(t *testing.T) {
	g := NewGuard(filepath.Join(t.TempDir(), "guard.txt"), 6*time.Hour)
	require.NoError(t, g.Update())
	assert.False(t, g.Allow())
}

func TestGuardAllowsAfterWindow(t *testing.T) {
	g := NewGuard(filepath.Join(t.TempDir(), "guard.txt"), 6*time.Hour)

	now := time.Now()
	g.now = func() time.Time { return now }
	require.NoError(t, g.Update())

	g.now = func() time.Time { return now.Add(5 * time.Hour) }
	assert.False(t, g.Allow())

	g.now = func() time.Time { return now.Add(6*time.Hour + time.Minute) }
	assert.True(t, g.Allow())
}

func TestGuardToleratesGarbageFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guard.txt")
	require.NoError(t, os.WriteFile(path, []byte("not a number"), 0o644))
	g := NewGuard(path, 6*time.Hour)
	assert.True(t, g.Allow())
}

func TestGuardReadsFloatTimestamp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guard.txt")
	ts := float64(time.Now().UnixNano()) / float64(time.Second)
	require.NoError(t, os.WriteFile(path, []byte(strconv.FormatFloat(ts, 'f', 6, 64)), 0o644))

	g := NewGuard(path, 6*time.Hour)
	assert.False(t, g.Allow())
}
