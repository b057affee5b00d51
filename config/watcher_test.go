package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

func TestWatcherReloadsOnWrite(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := writeFile(t, dir, "dream.yaml", "test: false\n")

	store := NewStore(New())
	reloaded := make(chan *Snapshot, 8)
	w, err := NewWatcher(path, store,
		WithLogger(zaptest.NewLogger(t)),
		OnReload(func(s *Snapshot) { reloaded <- s }),
	)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.NoError(t, os.WriteFile(path, []byte("test: true\nfeatures: [json]\n"), 0o644))

	select {
	case snap := <-reloaded:
		assert.Greater(t, snap.Version, uint64(1))
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}

	assert.Eventually(t, func() bool {
		opts := store.Load().Options
		return opts.TestMode() && opts.HasFeature("json")
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := writeFile(t, dir, "dream.yaml", "test: false\n")

	store := NewStore(New())
	w, err := NewWatcher(path, store)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("test: true\n"), 0o644))
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, uint64(1), store.Load().Version)

	cancel()
	require.NoError(t, <-done)
}

func TestWatcherKeepsOptionsOnBadReload(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "dream.yaml", "features: [a")

	store := NewStore(ForTesting())
	w, err := NewWatcher(path, store, WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	defer w.watcher.Close()

	assert.Error(t, w.reload())
	assert.Equal(t, uint64(1), store.Load().Version)
	assert.True(t, store.Load().Options.TestMode())
}

func TestNewWatcherMissingDir(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "nope", "dream.yaml"), NewStore(New()))
	assert.Error(t, err)
}
