package watch

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWatcher(t *testing.T) (*Watcher, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("windows: []\n"), 0o644))

	w, err := New(path, 20*time.Millisecond, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return w, path
}

func TestMatches(t *testing.T) {
	w, path := newWatcher(t)
	defer w.fsw.Close()

	assert.True(t, w.Matches(fsnotify.Event{Name: path, Op: fsnotify.Write}))
	assert.True(t, w.Matches(fsnotify.Event{Name: path, Op: fsnotify.Create}))
	assert.False(t, w.Matches(fsnotify.Event{Name: path, Op: fsnotify.Chmod}))
	assert.False(t, w.Matches(fsnotify.Event{Name: path + ".swp", Op: fsnotify.Write}))
}

func TestRunDeliversDebouncedReload(t *testing.T) {
	w, path := newWatcher(t)
	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte("windows: []\n"), 0o644))
	}

	select {
	case <-w.Reloads():
	case <-time.After(5 * time.Second):
		t.Fatal("no reload request")
	}

	// the burst collapses into at most one more pending request
	time.Sleep(100 * time.Millisecond)
	assert.LessOrEqual(t, len(w.Reloads()), 1)

	cancel()
	require.NoError(t, <-done)
}

func TestRunIgnoresOtherFiles(t *testing.T) {
	w, path := newWatcher(t)
	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(path), "other.yml"), []byte("x"), 0o644))

	select {
	case <-w.Reloads():
		t.Fatal("unexpected reload")
	case <-time.After(150 * time.Millisecond):
	}

	cancel()
	require.NoError(t, <-done)
}
