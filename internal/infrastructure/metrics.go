package infrastructure

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	apperrors "indicadores/internal/errors"
)

// Metrics holds the application instruments
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   metric.Int64Counter
	HTTPRequestDuration metric.Float64Histogram
	HTTPActiveRequests  metric.Int64UpDownCounter

	// Pipeline
	DashboardRendersTotal   metric.Int64Counter
	DashboardRenderDuration metric.Float64Histogram
	DatasetReloadsTotal     metric.Int64Counter
	DatasetRows             metric.Int64Gauge
	CoercionFailures        metric.Int64Gauge
	ExportsTotal            metric.Int64Counter

	// Live updates
	WebSocketClients metric.Int64UpDownCounter
}

// NewMetrics creates the application instruments on meter
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	var (
		m   Metrics
		err error
	)

	if m.HTTPRequestsTotal, err = meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
	); err != nil {
		return nil, err
	}

	if m.HTTPRequestDuration, err = meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}

	if m.HTTPActiveRequests, err = meter.Int64UpDownCounter(
		"http_active_requests",
		metric.WithDescription("Number of active HTTP requests"),
	); err != nil {
		return nil, err
	}

	if m.DashboardRendersTotal, err = meter.Int64Counter(
		"dashboard_renders_total",
		metric.WithDescription("Total number of dashboard computations"),
	); err != nil {
		return nil, err
	}

	if m.DashboardRenderDuration, err = meter.Float64Histogram(
		"dashboard_render_duration_seconds",
		metric.WithDescription("Time to run the indicator pipeline over a snapshot"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}

	if m.DatasetReloadsTotal, err = meter.Int64Counter(
		"dataset_reloads_total",
		metric.WithDescription("Total number of data file load attempts"),
	); err != nil {
		return nil, err
	}

	if m.DatasetRows, err = meter.Int64Gauge(
		"dataset_rows",
		metric.WithDescription("Rows in the snapshot being served"),
	); err != nil {
		return nil, err
	}

	if m.CoercionFailures, err = meter.Int64Gauge(
		"dataset_coercion_failures",
		metric.WithDescription("Numeric cells treated as missing in the snapshot being served"),
	); err != nil {
		return nil, err
	}

	if m.ExportsTotal, err = meter.Int64Counter(
		"exports_total",
		metric.WithDescription("Total number of detail table exports"),
	); err != nil {
		return nil, err
	}

	if m.WebSocketClients, err = meter.Int64UpDownCounter(
		"websocket_clients",
		metric.WithDescription("Connected live update clients"),
	); err != nil {
		return nil, err
	}

	return &m, nil
}

func statusAttr(err error) attribute.KeyValue {
	if err != nil {
		return attribute.String("status", "failure")
	}
	return attribute.String("status", "success")
}

func errorKind(err error) string {
	if t, ok := apperrors.TypeOf(err); ok {
		return string(t)
	}
	return "unknown"
}

// RecordRender records one dashboard computation
func (m *Metrics) RecordRender(ctx context.Context, kind string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("kind", kind), statusAttr(err))
	m.DashboardRendersTotal.Add(ctx, 1, attrs)
	m.DashboardRenderDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordReload records a load attempt and, on success, the snapshot size
func (m *Metrics) RecordReload(ctx context.Context, rows, coercionFailures int, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.DatasetReloadsTotal.Add(ctx, 1, metric.WithAttributes(statusAttr(err), attribute.String("error.kind", errorKind(err))))
		return
	}
	m.DatasetReloadsTotal.Add(ctx, 1, metric.WithAttributes(statusAttr(nil)))
	m.DatasetRows.Record(ctx, int64(rows))
	m.CoercionFailures.Record(ctx, int64(coercionFailures))
}

// RecordExport records one detail table export
func (m *Metrics) RecordExport(ctx context.Context, format string, err error) {
	if m == nil {
		return
	}
	m.ExportsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("format", format), statusAttr(err)))
}

// RecordWebSocketClients adjusts the connected client count
func (m *Metrics) RecordWebSocketClients(ctx context.Context, delta int64) {
	if m == nil {
		return
	}
	m.WebSocketClients.Add(ctx, delta)
}
