package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/require"
)

func TestWatcher_FiresAfterChange(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	path := filepath.Join(dir, "index.bui")
	require.NoError(t, os.WriteFile(path, []byte("version: \"1.0.0\"\n"), 0o600))

	changed := make(chan struct{}, 1)
	w, err := New(dir, 20*time.Millisecond, func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	require.NoError(t, err)
	defer w.Close()

	go w.Run(context.Background())

	// --- Act ---
	require.NoError(t, os.WriteFile(path, []byte("version: \"1.0.0\"\n---\n"), 0o600))

	// --- Assert ---
	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("expected a rebuild after the source file changed")
	}
}

func TestWatcher_ContextCancelStopsRun(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.bui"), []byte("x"), 0o600))

	w, err := New(dir, DefaultDebounce, func() {})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	// --- Act ---
	cancel()

	// --- Assert ---
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run must return once the context is cancelled")
	}
	require.NoError(t, w.Close())
}

func TestRelevant(t *testing.T) {
	t.Parallel()

	require.True(t, relevant(fsnotify.Event{Name: "a.bui", Op: fsnotify.Write}))
	require.True(t, relevant(fsnotify.Event{Name: "a.bui", Op: fsnotify.Create}))
	require.False(t, relevant(fsnotify.Event{Name: "a.bui", Op: fsnotify.Chmod}))
	require.False(t, relevant(fsnotify.Event{Name: "notes.txt", Op: fsnotify.Write}))
}
