package watch

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/specialistvlad/schedgrid/internal/ctxlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithCancel(ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil))))
	t.Cleanup(cancel)
	return ctx
}

// start runs w in the background and returns the channel batches arrive on.
func start(t *testing.T, ctx context.Context, w *Watcher) <-chan []string {
	t.Helper()
	batches := make(chan []string, 10)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx, func(_ context.Context, changed []string) { batches <- changed })
	}()
	t.Cleanup(func() {
		w.Close()
		<-done
	})
	return batches
}

func nextBatch(t *testing.T, batches <-chan []string) []string {
	t.Helper()
	select {
	case b := <-batches:
		return b
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a change batch")
		return nil
	}
}

func TestWatcher_Directory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))

	w, err := New(dir, ".hcl", 150*time.Millisecond)
	require.NoError(t, err)
	batches := start(t, testContext(t), w)

	a := filepath.Join(dir, "a.hcl")
	b := filepath.Join(dir, "b.hcl")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".git", "c.hcl"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(a, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(a, []byte("xy"), 0o644))

	assert.Equal(t, []string{a, b}, nextBatch(t, batches))
}

func TestWatcher_NewSubdirectory(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir, ".hcl", 150*time.Millisecond)
	require.NoError(t, err)
	batches := start(t, testContext(t), w)

	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(sub, 0o755))
	// Give the watcher a moment to pick up the directory.
	time.Sleep(200 * time.Millisecond)

	file := filepath.Join(sub, "n.hcl")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	assert.Contains(t, nextBatch(t, batches), file)
}

func TestWatcher_SingleFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "main.hcl")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	w, err := New(file, ".hcl", 150*time.Millisecond)
	require.NoError(t, err)
	batches := start(t, testContext(t), w)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.hcl"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(file, []byte("y"), 0o644))
	assert.Equal(t, []string{file}, nextBatch(t, batches))
}

func TestWatcher_StopsWithContext(t *testing.T) {
	w, err := New(t.TempDir(), ".hcl", 0)
	require.NoError(t, err)
	defer w.Close()
	assert.Equal(t, DefaultDebounce, w.debounce)

	ctx, cancel := context.WithCancel(testContext(t))
	cancel()
	assert.ErrorIs(t, w.Run(ctx, func(context.Context, []string) {}), context.Canceled)
}

func TestNew_MissingPath(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing"), ".hcl", 0)
	assert.Error(t, err)
}
