package http

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	apierrors "indicadores/internal/errors"
	"indicadores/internal/exporter"
	"indicadores/internal/infrastructure"
	api "indicadores/pkg/contracts/api/v1"
)

// ExportHandler serves detail table downloads
type ExportHandler struct {
	service      DashboardService
	exporter     DetailExporter
	metrics      *infrastructure.Metrics
	validate     *validator.Validate
	errorHandler *apierrors.ErrorHandler
	logger       *slog.Logger
}

// NewExportHandler creates a new export handler. metrics may be nil.
func NewExportHandler(service DashboardService, exp DetailExporter, metrics *infrastructure.Metrics, errorHandler *apierrors.ErrorHandler, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{
		service:      service,
		exporter:     exp,
		metrics:      metrics,
		validate:     validator.New(),
		errorHandler: errorHandler,
		logger:       logger.With(slog.String("component", "export_handler")),
	}
}

// Routes returns the export routes
func (h *ExportHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/detail.{format}", h.ExportDetail)
	return r
}

// ExportDetail handles GET /api/export/detail.{format}. The file is built
// in memory first so a failure can still be reported as a problem.
func (h *ExportHandler) ExportDetail(w http.ResponseWriter, r *http.Request) {
	req := api.ExportRequest{
		SelectionRequest: api.SelectionRequest{Developers: parseSelection(r)},
		Format:           chi.URLParam(r, "format"),
	}
	if err := h.validate.Struct(req); err != nil {
		h.errorHandler.HandleError(w, r, toValidationError(err))
		return
	}

	format, err := exporter.ParseFormat(req.Format)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("format", err.Error()))
		return
	}

	rows, err := h.service.Detail(r.Context(), req.Developers)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	var buf bytes.Buffer
	err = h.exporter.Export(&buf, format, rows)
	h.metrics.RecordExport(r.Context(), string(format), err)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ExportError(string(format), err))
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="%s"`, format.FileName(exporter.DetailFileBase)))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.WarnContext(r.Context(), "export download interrupted",
			slog.String("error", err.Error()))
	}
}
