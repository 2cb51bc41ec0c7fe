package filecache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadCachesContent(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "hello.txt")
	require.NoError(t, os.WriteFile(p, []byte("hello\n"), 0o644))

	c := New(4)
	e1, err := c.Load(p)
	require.NoError(t, err)
	require.Equal(t, "hello\n", string(e1.Content))

	// mutate on disk; cached copy should NOT reflect the change (§9).
	require.NoError(t, os.WriteFile(p, []byte("changed\n"), 0o644))
	e2, err := c.Load(p)
	require.NoError(t, err)
	require.Equal(t, "hello\n", string(e2.Content))
}

func TestLoadMissingFileErrors(t *testing.T) {
	c := New(0)
	_, err := c.Load("/does/not/exist")
	require.Error(t, err)
}

func TestIsFresh(t *testing.T) {
	mtime := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	require.True(t, IsFresh(mtime, mtime))
	require.True(t, IsFresh(mtime, mtime.Add(time.Hour)))
	require.False(t, IsFresh(mtime, mtime.Add(-time.Hour)))
}
