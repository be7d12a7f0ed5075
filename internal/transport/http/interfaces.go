package http

import (
	"context"
	"io"

	"indicadores/internal/dataset"
	"indicadores/internal/exporter"
	"indicadores/pkg/contracts/domain"
)

// DashboardService defines the pipeline operations the handlers need
type DashboardService interface {
	Developers(ctx context.Context) ([]string, error)
	Dashboard(ctx context.Context, selection []string) (*domain.Dashboard, error)
	Detail(ctx context.Context, selection []string) ([]domain.DetailRow, error)
	Reload(ctx context.Context) (dataset.Status, error)
	Status(ctx context.Context) dataset.Status
}

// DetailExporter writes the detail table in a download format
type DetailExporter interface {
	Export(out io.Writer, format exporter.Format, rows []domain.DetailRow) error
}
