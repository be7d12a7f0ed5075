package dataset

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestStore_CurrentBeforeLoad(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "x.xlsx"), "", DefaultColumns(), discardLogger())

	_, err := s.Current()
	assert.True(t, errors.Is(err, ErrNotLoaded))
}

func TestStore_LoadMissingFile(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "x.xlsx"), "", DefaultColumns(), discardLogger())

	_, err := s.Load(context.Background())
	require.Error(t, err)

	_, err = s.Current()
	assert.True(t, errors.Is(err, ErrDataNotFound))
	assert.False(t, s.Status().Loaded)
}

func TestStore_FailedReloadKeepsSnapshot(t *testing.T) {
	path := writeWorkbook(t, "dados.xlsx", exampleRows()...)
	s := NewStore(path, "", DefaultColumns(), discardLogger())

	first, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, first.Dataset.Len())

	require.NoError(t, os.Remove(path))

	_, err = s.Reload(context.Background())
	assert.True(t, errors.Is(err, ErrDataNotFound))

	current, err := s.Current()
	require.NoError(t, err)
	assert.Same(t, first, current)

	st := s.Status()
	assert.True(t, st.Loaded)
	assert.NotEmpty(t, st.LastError)
	assert.EqualValues(t, 2, st.Reloads)
}

func TestStore_OnReload(t *testing.T) {
	path := writeWorkbook(t, "dados.xlsx", exampleRows()...)
	s := NewStore(path, "", DefaultColumns(), discardLogger())

	var (
		mu    sync.Mutex
		calls []error
	)
	s.OnReload(func(snap *Snapshot, err error) {
		mu.Lock()
		defer mu.Unlock()
		calls = append(calls, err)
	})

	_, err := s.Load(context.Background())
	require.NoError(t, err)
	require.NoError(t, os.Remove(path))
	_, _ = s.Reload(context.Background())

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, calls, 2)
	assert.NoError(t, calls[0])
	assert.Error(t, calls[1])
}

func TestStore_ConcurrentReloads(t *testing.T) {
	path := writeWorkbook(t, "dados.xlsx", exampleRows()...)
	s := NewStore(path, "", DefaultColumns(), discardLogger())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			snap, err := s.Reload(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, 3, snap.Dataset.Len())
		}()
	}
	wg.Wait()

	st := s.Status()
	assert.LessOrEqual(t, st.Reloads, int64(8))
	assert.GreaterOrEqual(t, st.Reloads, int64(1))
}

func TestStore_ReloadCancelled(t *testing.T) {
	path := writeWorkbook(t, "dados.xlsx", exampleRows()...)
	s := NewStore(path, "", DefaultColumns(), discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Either the read wins the race or the cancellation does.
	_, err := s.Reload(ctx)
	if err != nil {
		assert.ErrorIs(t, err, context.Canceled)
	}
}
