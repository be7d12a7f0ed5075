package dataset

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"indicadores/pkg/contracts/domain"
)

const tracerName = "indicadores/internal/dataset"

// Snapshot is one successfully loaded version of the data file.
type Snapshot struct {
	Dataset  *Dataset
	Source   string
	Sheet    string
	LoadedAt time.Time
}

// Info summarizes the snapshot for API responses.
func (s *Snapshot) Info() domain.DatasetInfo {
	return domain.DatasetInfo{
		Source:           s.Source,
		LoadedAt:         s.LoadedAt,
		Rows:             s.Dataset.Len(),
		CoercionFailures: s.Dataset.CoercionFailures(),
	}
}

// Status describes the store state, including the outcome of the last attempt.
type Status struct {
	Source      string              `json:"source"`
	Loaded      bool                `json:"loaded"`
	Dataset     *domain.DatasetInfo `json:"dataset,omitempty"`
	LastAttempt time.Time           `json:"last_attempt"`
	LastError   string              `json:"last_error,omitempty"`
	Reloads     int64               `json:"reloads"`
	Failures    []CoercionFailure   `json:"coercion_failures,omitempty"`
}

// ReloadFunc is notified after every load attempt. On failure the snapshot
// is the one still being served, possibly nil.
type ReloadFunc func(snap *Snapshot, err error)

// Store holds the current snapshot. Readers never block; a reload builds a
// fresh snapshot and swaps it in whole.
type Store struct {
	path    string
	sheet   string
	columns ColumnMap
	logger  *slog.Logger
	tracer  trace.Tracer

	current atomic.Pointer[Snapshot]
	reloads atomic.Int64
	group   singleflight.Group

	mu          sync.RWMutex
	lastErr     error
	lastAttempt time.Time
	subscribers []ReloadFunc
}

// NewStore creates a store for the data file at path. Nothing is read until
// Load is called.
func NewStore(path, sheet string, columns ColumnMap, logger *slog.Logger) *Store {
	return &Store{
		path:    path,
		sheet:   sheet,
		columns: columns.WithDefaults(),
		logger:  logger.With(slog.String("component", "dataset_store")),
		tracer:  otel.Tracer(tracerName),
		lastErr: ErrNotLoaded,
	}
}

// Path returns the data file the store reads.
func (s *Store) Path() string {
	return s.path
}

// OnReload registers fn to be called after every load attempt.
func (s *Store) OnReload(fn ReloadFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Load performs the initial read of the data file.
func (s *Store) Load(ctx context.Context) (*Snapshot, error) {
	return s.Reload(ctx)
}

// Reload re-reads the data file. Concurrent calls share a single read. On
// failure the previous snapshot stays current and the error is returned.
func (s *Store) Reload(ctx context.Context) (*Snapshot, error) {
	ch := s.group.DoChan("reload", func() (interface{}, error) {
		// Detached so one caller's cancellation cannot fail the others.
		return s.reload(context.WithoutCancel(ctx))
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Snapshot), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *Store) reload(ctx context.Context) (*Snapshot, error) {
	ctx, span := s.tracer.Start(ctx, "dataset.reload",
		trace.WithAttributes(attribute.String("dataset.source", s.path)))
	defer span.End()

	start := time.Now()
	snap, err := s.read()
	s.reloads.Add(1)

	s.mu.Lock()
	s.lastAttempt = start
	s.lastErr = err
	subscribers := append([]ReloadFunc(nil), s.subscribers...)
	s.mu.Unlock()

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.ErrorContext(ctx, "failed to load data file",
			slog.String("source", s.path),
			slog.String("error", err.Error()),
			slog.Bool("serving_previous", s.current.Load() != nil),
		)
		notify(subscribers, s.current.Load(), err)
		return nil, err
	}

	s.current.Store(snap)

	for _, f := range snap.Dataset.Failures() {
		s.logger.DebugContext(ctx, "numeric cell treated as missing",
			slog.Int("row", f.Row),
			slog.String("column", f.Column),
			slog.String("value", f.Value),
		)
	}

	span.SetAttributes(
		attribute.Int("dataset.rows", snap.Dataset.Len()),
		attribute.Int("dataset.coercion_failures", snap.Dataset.CoercionFailures()),
	)
	s.logger.InfoContext(ctx, "data file loaded",
		slog.String("source", s.path),
		slog.Int("rows", snap.Dataset.Len()),
		slog.Int("coercion_failures", snap.Dataset.CoercionFailures()),
		slog.Duration("duration", time.Since(start)),
	)

	notify(subscribers, snap, nil)
	return snap, nil
}

func (s *Store) read() (*Snapshot, error) {
	var opts []LoadOption
	if s.sheet != "" {
		opts = append(opts, WithSheet(s.sheet))
	}

	raw, err := Load(s.path, opts...)
	if err != nil {
		return nil, err
	}

	ds, err := Normalize(raw, s.columns)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		Dataset:  ds,
		Source:   s.path,
		Sheet:    raw.Sheet,
		LoadedAt: time.Now(),
	}, nil
}

func notify(subscribers []ReloadFunc, snap *Snapshot, err error) {
	for _, fn := range subscribers {
		fn(snap, err)
	}
}

// Current returns the snapshot being served. Before the first successful
// load it returns the error of the last attempt instead.
func (s *Store) Current() (*Snapshot, error) {
	if snap := s.current.Load(); snap != nil {
		return snap, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return nil, s.lastErr
}

// Status reports the store state.
func (s *Store) Status() Status {
	s.mu.RLock()
	st := Status{
		Source:      s.path,
		LastAttempt: s.lastAttempt,
		Reloads:     s.reloads.Load(),
	}
	if s.lastErr != nil {
		st.LastError = s.lastErr.Error()
	}
	s.mu.RUnlock()

	if snap := s.current.Load(); snap != nil {
		info := snap.Info()
		st.Loaded = true
		st.Dataset = &info
		st.Failures = snap.Dataset.Failures()
	}
	return st
}
