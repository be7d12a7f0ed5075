package testutil

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// LogRecord is a captured log record with its attributes flattened.
type LogRecord struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// LogBuffer collects records from every logger derived from it.
type LogBuffer struct {
	mu      sync.Mutex
	records []LogRecord
}

// Records returns a copy of everything captured so far.
func (b *LogBuffer) Records() []LogRecord {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]LogRecord(nil), b.records...)
}

// Find returns the first record at level whose message contains msg.
func (b *LogBuffer) Find(level slog.Level, msg string) (LogRecord, bool) {
	for _, r := range b.Records() {
		if r.Level == level && strings.Contains(r.Message, msg) {
			return r, true
		}
	}
	return LogRecord{}, false
}

// AssertLogged fails t unless a record at level contains msg.
func (b *LogBuffer) AssertLogged(t testing.TB, level slog.Level, msg string) LogRecord {
	t.Helper()
	r, ok := b.Find(level, msg)
	if !ok {
		t.Errorf("expected %s log containing %q", level, msg)
		for _, r := range b.Records() {
			t.Logf("  [%s] %s %v", r.Level, r.Message, r.Attrs)
		}
	}
	return r
}

type captureHandler struct {
	buf   *LogBuffer
	attrs []slog.Attr
}

func (h *captureHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *captureHandler) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]any, len(h.attrs)+r.NumAttrs())
	for _, a := range h.attrs {
		attrs[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})

	h.buf.mu.Lock()
	h.buf.records = append(h.buf.records, LogRecord{Level: r.Level, Message: r.Message, Attrs: attrs})
	h.buf.mu.Unlock()
	return nil
}

func (h *captureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &captureHandler{buf: h.buf, attrs: append(append([]slog.Attr(nil), h.attrs...), attrs...)}
}

// Groups are flattened; tests match on attribute keys only.
func (h *captureHandler) WithGroup(string) slog.Handler { return h }

// NewTestLogger returns a logger that records at every level into the buffer.
func NewTestLogger() (*slog.Logger, *LogBuffer) {
	buf := &LogBuffer{}
	return slog.New(&captureHandler{buf: buf}), buf
}
