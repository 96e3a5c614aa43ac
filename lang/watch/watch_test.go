package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMatches(t *testing.T) {
	w := &Watcher{exts: []string{".radi"}}
	require.True(t, w.matches("app.radi"))
	require.True(t, w.matches("APP.RADI"))
	require.False(t, w.matches("app.go"))
	require.False(t, w.matches("radi"))

	all := &Watcher{}
	require.True(t, all.matches("anything.txt"))
}

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))

	w, err := New([]string{".radi"})
	require.NoError(t, err)
	defer w.Close()
	require.NoError(t, w.AddDir(dir))

	target := filepath.Join(dir, "sub", "app.radi")
	ignored := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(ignored, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(target, []byte("def a = 1;"), 0o644))

	select {
	case ev := <-w.Events():
		require.Equal(t, target, ev.Path)
	case err := <-w.Errors():
		t.Fatalf("watch error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}
