package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"indicadores/internal/dataset"
	apierrors "indicadores/internal/errors"
	"indicadores/internal/indicators"
	"indicadores/internal/infrastructure"
	"indicadores/pkg/contracts/domain"
)

const tracerName = "indicadores/internal/services"

// Render kinds used as the metric attribute of pipeline runs.
const (
	RenderDashboard  = "dashboard"
	RenderDetail     = "detail"
	RenderDevelopers = "developers"
)

// DashboardService runs the indicator pipeline over the current snapshot.
// Every call recomputes from scratch; nothing is cached between requests.
type DashboardService struct {
	source  SnapshotSource
	metrics *infrastructure.Metrics
	tracer  trace.Tracer
	logger  *slog.Logger
	now     func() time.Time
}

// NewDashboardService creates a dashboard service. metrics may be nil.
func NewDashboardService(source SnapshotSource, metrics *infrastructure.Metrics, logger *slog.Logger) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardService{
		source:  source,
		metrics: metrics,
		tracer:  otel.Tracer(tracerName),
		logger:  infrastructure.WithComponent(logger, "dashboard_service"),
		now:     time.Now,
	}
}

// NormalizeSelection trims names, drops blanks and duplicates, and keeps
// the caller's order. The result is never nil.
func NormalizeSelection(selection []string) []string {
	out := make([]string, 0, len(selection))
	seen := make(map[string]struct{}, len(selection))
	for _, name := range selection {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// snapshot returns the snapshot being served, translating "nothing loaded
// yet" into an unavailable error. Load failures pass through untouched.
func (s *DashboardService) snapshot() (*dataset.Snapshot, error) {
	snap, err := s.source.Current()
	if err == nil {
		return snap, nil
	}
	if errors.Is(err, dataset.ErrNotLoaded) {
		return nil, apierrors.NewStorageError("Os dados ainda não foram carregados", fmt.Errorf("%w: %w", ErrDataUnavailable, err))
	}
	return nil, err
}

func (s *DashboardService) startRender(ctx context.Context, kind string, selection []string) (context.Context, trace.Span, time.Time) {
	ctx, span := s.tracer.Start(ctx, "dashboard.render",
		trace.WithAttributes(
			attribute.String("render.kind", kind),
			attribute.Int("render.selection_size", len(selection)),
		))
	return ctx, span, time.Now()
}

func (s *DashboardService) endRender(ctx context.Context, span trace.Span, kind string, start time.Time, err error) {
	if err != nil {
		infrastructure.RecordError(ctx, err)
	}
	span.End()
	s.metrics.RecordRender(ctx, kind, time.Since(start), err)
}

// Developers returns the selectable developer names in ascending order.
func (s *DashboardService) Developers(ctx context.Context) (devs []string, err error) {
	ctx, span, start := s.startRender(ctx, RenderDevelopers, nil)
	defer func() { s.endRender(ctx, span, RenderDevelopers, start, err) }()

	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return snap.Dataset.Developers(), nil
}

// Dashboard computes the KPIs, grouped tables and detail table for the
// developers in selection. An empty selection means every developer.
func (s *DashboardService) Dashboard(ctx context.Context, selection []string) (dash *domain.Dashboard, err error) {
	selection = NormalizeSelection(selection)
	ctx, span, start := s.startRender(ctx, RenderDashboard, selection)
	defer func() { s.endRender(ctx, span, RenderDashboard, start, err) }()

	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}

	view := snap.Dataset.Filter(selection)
	kpis := indicators.Summarize(view)

	dash = &domain.Dashboard{
		Title:                  indicators.Title,
		Selection:              selection,
		Developers:             snap.Dataset.Developers(),
		KPIs:                   kpis,
		Formatted:              indicators.FormatKPIs(kpis),
		MeanDaysByDeveloper:    indicators.MeanDaysByDeveloper(view),
		SavingsByAutomation:    indicators.SavingsByAutomation(view),
		MeanSavingsByDeveloper: indicators.MeanSavingsByDeveloper(view),
		Detail:                 indicators.DetailTable(view),
		Dataset:                snap.Info(),
		GeneratedAt:            s.now(),
	}

	span.SetAttributes(attribute.Int("render.rows", view.Len()))
	s.logger.DebugContext(ctx, "dashboard computed",
		slog.Int("selection", len(selection)),
		slog.Int("rows", view.Len()),
		slog.Int("automations", kpis.AutomationCount),
	)
	return dash, nil
}

// Detail returns only the detail table for the developers in selection.
func (s *DashboardService) Detail(ctx context.Context, selection []string) (rows []domain.DetailRow, err error) {
	selection = NormalizeSelection(selection)
	ctx, span, start := s.startRender(ctx, RenderDetail, selection)
	defer func() { s.endRender(ctx, span, RenderDetail, start, err) }()

	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return indicators.DetailTable(snap.Dataset.Filter(selection)), nil
}

// Reload re-reads the data file and returns the new snapshot status.
func (s *DashboardService) Reload(ctx context.Context) (dataset.Status, error) {
	snap, err := s.source.Reload(ctx)

	rows, failures := 0, 0
	if snap != nil {
		rows, failures = snap.Dataset.Len(), snap.Dataset.CoercionFailures()
	}
	s.metrics.RecordReload(ctx, rows, failures, err)

	if err != nil {
		s.logger.WarnContext(ctx, "reload requested but failed",
			slog.String("error", err.Error()))
		return s.source.Status(), fmt.Errorf("reload data file: %w", err)
	}
	return s.source.Status(), nil
}

// Status reports the state of the data snapshot.
func (s *DashboardService) Status(ctx context.Context) dataset.Status {
	return s.source.Status()
}
