package docsite

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatcherDebouncesChanges(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"guide/index.md": "# a\n"})

	changed := make(chan struct{}, 10)
	w, err := NewWatcher(dir, func() { changed <- struct{}{} }, nil)
	require.NoError(t, err)
	defer w.Close()

	for i := range 3 {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "guide", "index.md"), []byte{'#', ' ', byte('a' + i), '\n'}, 0o644))
	}

	select {
	case <-changed:
	case <-time.After(3 * time.Second):
		t.Fatal("no change notification")
	}
	select {
	case <-changed:
		t.Fatal("burst of writes produced more than one notification")
	case <-time.After(2 * watchDebounce):
	}
}

func TestWatcherFollowsNewDirectories(t *testing.T) {
	dir := t.TempDir()
	changed := make(chan struct{}, 10)
	w, err := NewWatcher(dir, func() { changed <- struct{}{} }, nil)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.Mkdir(filepath.Join(dir, "api"), 0o755))
	waitChange(t, changed)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "api", "index.md"), []byte("# api\n"), 0o644))
	waitChange(t, changed)
}

func waitChange(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(3 * time.Second):
		t.Fatal("no change notification")
	}
}
