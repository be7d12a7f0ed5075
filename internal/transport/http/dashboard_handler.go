package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "indicadores/internal/errors"
	api "indicadores/pkg/contracts/api/v1"
)

// DashboardHandler serves the indicator endpoints
type DashboardHandler struct {
	service      DashboardService
	validate     *validator.Validate
	errorHandler *apierrors.ErrorHandler
	logger       *slog.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service DashboardService, errorHandler *apierrors.ErrorHandler, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		service:      service,
		validate:     validator.New(),
		errorHandler: errorHandler,
		logger:       logger.With(slog.String("component", "dashboard_handler")),
	}
}

// Routes returns the dashboard routes
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/dashboard", h.GetDashboard)
	r.Get("/developers", h.GetDevelopers)
	r.Get("/records", h.GetRecords)
	r.Get("/dataset", h.GetDatasetStatus)
	r.Post("/dataset/reload", h.ReloadDataset)

	return r
}

// GetDashboard handles GET /api/dashboard
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	selection, err := selectionFromRequest(h.validate, r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	dash, err := h.service.Dashboard(r.Context(), selection)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, dash)
}

// GetDevelopers handles GET /api/developers
func (h *DashboardHandler) GetDevelopers(w http.ResponseWriter, r *http.Request) {
	devs, err := h.service.Developers(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, api.DevelopersResponse{Developers: devs, Count: len(devs)})
}

// GetRecords handles GET /api/records
func (h *DashboardHandler) GetRecords(w http.ResponseWriter, r *http.Request) {
	selection, err := selectionFromRequest(h.validate, r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	rows, err := h.service.Detail(r.Context(), selection)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	if selection == nil {
		selection = []string{}
	}
	render.JSON(w, r, api.RecordsResponse{Selection: selection, Rows: rows, Count: len(rows)})
}

// GetDatasetStatus handles GET /api/dataset
func (h *DashboardHandler) GetDatasetStatus(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.Status(r.Context()))
}

// ReloadDataset handles POST /api/dataset/reload. A failed reload is
// reported as a problem; the previous snapshot keeps being served.
func (h *DashboardHandler) ReloadDataset(w http.ResponseWriter, r *http.Request) {
	status, err := h.service.Reload(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "dataset reloaded on request",
		slog.Bool("loaded", status.Loaded))
	render.JSON(w, r, api.ReloadResponse{
		Reloaded:  true,
		Timestamp: time.Now(),
		Status:    status,
	})
}
