package watcher

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"indicadores/internal/shared/testutil"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func runWatcher(t *testing.T, w *Watcher) (cancel func()) {
	t.Helper()
	ctx, stop := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	return func() {
		stop()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("watcher did not stop")
		}
	}
}

func TestWatcher_DebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dados.csv")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0o644))

	var calls atomic.Int32
	w, err := New(path, 100*time.Millisecond, ReloaderFunc(func(context.Context) error {
		calls.Add(1)
		return nil
	}), testLogger())
	require.NoError(t, err)

	stop := runWatcher(t, w)
	defer stop()

	// give the watcher time to register the directory
	time.Sleep(50 * time.Millisecond)
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte{byte('b' + i)}, 0o644))
		time.Sleep(10 * time.Millisecond)
	}

	require.Eventually(t, func() bool { return calls.Load() >= 1 }, 3*time.Second, 10*time.Millisecond)
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load(), "burst of writes should reload once")
	assert.Equal(t, int64(1), w.Triggered())
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dados.csv")

	var calls atomic.Int32
	w, err := New(path, 50*time.Millisecond, ReloaderFunc(func(context.Context) error {
		calls.Add(1)
		return nil
	}), testLogger())
	require.NoError(t, err)

	stop := runWatcher(t, w)
	defer stop()

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "outro.csv"), []byte("x"), 0o644))
	time.Sleep(300 * time.Millisecond)

	assert.Equal(t, int32(0), calls.Load())
}

func TestWatcher_ReloadErrorKeepsWatching(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dados.csv")

	logger, logs := testutil.NewTestLogger()
	var calls atomic.Int32
	w, err := New(path, 50*time.Millisecond, ReloaderFunc(func(context.Context) error {
		calls.Add(1)
		return errors.New("boom")
	}), logger)
	require.NoError(t, err)

	stop := runWatcher(t, w)
	defer stop()

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("a"), 0o644))
	require.Eventually(t, func() bool { return calls.Load() == 1 }, 3*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte("b"), 0o644))
	require.Eventually(t, func() bool { return calls.Load() == 2 }, 3*time.Second, 10*time.Millisecond)

	r := logs.AssertLogged(t, slog.LevelWarn, "reload after file change failed")
	assert.Equal(t, "watcher", r.Attrs["component"])
	assert.Equal(t, "boom", r.Attrs["error"])
}

func TestWatcher_MissingDirectory(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "nope", "dados.csv"), time.Millisecond, ReloaderFunc(func(context.Context) error {
		return nil
	}), testLogger())
	require.NoError(t, err)

	err = w.Run(context.Background())
	assert.Error(t, err)
}
