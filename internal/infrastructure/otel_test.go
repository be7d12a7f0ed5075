package infrastructure

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	apperrors "indicadores/internal/errors"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestInitializeOTel_MetricsEndpoint(t *testing.T) {
	providers, err := InitializeOTel(&OTelConfig{
		ServiceName:    "indicadores-test",
		ServiceVersion: "test",
		EnableMetrics:  true,
	}, discardLogger())
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	m, err := NewMetrics(providers.Meter)
	require.NoError(t, err)
	m.RecordReload(context.Background(), 3, 1, nil)

	rec := httptest.NewRecorder()
	providers.MetricsHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "dataset_rows")
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestInitializeOTel_Disabled(t *testing.T) {
	providers, err := InitializeOTel(&OTelConfig{ServiceName: "indicadores-test"}, discardLogger())
	require.NoError(t, err)

	assert.NotNil(t, providers.Meter)
	assert.NotNil(t, providers.Tracer)

	rec := httptest.NewRecorder()
	providers.MetricsHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	require.NoError(t, providers.Shutdown(context.Background()))
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := make(map[string]metricdata.Metrics)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func TestMetricsRecording(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(context.Background())

	m, err := NewMetrics(mp.Meter("test"))
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordRender(ctx, "dashboard", 5*time.Millisecond, nil)
	m.RecordRender(ctx, "dashboard", time.Millisecond, errors.New("boom"))
	m.RecordReload(ctx, 0, 0, apperrors.NewNotFoundError("missing", nil))
	m.RecordExport(ctx, "csv", nil)

	got := collect(t, reader)

	renders := got["dashboard_renders_total"].Data.(metricdata.Sum[int64])
	var total int64
	for _, dp := range renders.DataPoints {
		total += dp.Value
	}
	assert.EqualValues(t, 2, total)

	reloads := got["dataset_reloads_total"].Data.(metricdata.Sum[int64])
	require.Len(t, reloads.DataPoints, 1)
	kind, ok := reloads.DataPoints[0].Attributes.Value("error.kind")
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", kind.AsString())

	assert.Contains(t, got, "exports_total")
}

func TestMetricsNilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordRender(context.Background(), "dashboard", time.Second, nil)
		m.RecordReload(context.Background(), 1, 0, nil)
		m.RecordExport(context.Background(), "xlsx", nil)
		m.RecordWebSocketClients(context.Background(), 1)
	})
}
