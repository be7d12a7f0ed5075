package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"golang.org/x/sync/errgroup"

	"indicadores/internal/config"
	"indicadores/internal/dataset"
	apierrors "indicadores/internal/errors"
	"indicadores/internal/exporter"
	"indicadores/internal/infrastructure"
	customMiddleware "indicadores/internal/middleware"
	"indicadores/internal/services"
	handlers "indicadores/internal/transport/http"
	"indicadores/internal/watcher"
	ws "indicadores/internal/websocket"
	"indicadores/pkg/contracts"
)

// Application represents the main application container
type Application struct {
	Config        *config.Config
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
	Metrics       *infrastructure.Metrics

	Store            *dataset.Store
	DashboardService *services.DashboardService
	HealthService    *services.HealthService
	WebSocketHub     *ws.Hub
	Watcher          *watcher.Watcher

	ErrorHandler *apierrors.ErrorHandler
	Router       *chi.Mux
	Server       *http.Server
}

// New wires every component from cfg. Nothing is read or served until Run.
func New(cfg *config.Config, logger *slog.Logger) (*Application, error) {
	providers, err := infrastructure.InitializeOTel(infrastructure.OTelConfigFrom(cfg.Telemetry), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	metrics, err := infrastructure.NewMetrics(providers.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics: %w", err)
	}

	a := &Application{
		Config:        cfg,
		Logger:        logger,
		OTelProviders: providers,
		Metrics:       metrics,
		ErrorHandler:  apierrors.NewErrorHandler(logger, cfg.Logging.Development),
	}

	if err := a.initializeServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	a.setupRouter()
	a.createServer()

	return a, nil
}

// ColumnsFrom maps the configured header overrides onto a column map.
func ColumnsFrom(cfg config.ColumnsConfig) dataset.ColumnMap {
	return dataset.ColumnMap{
		Automation:      cfg.Automation,
		Developer:       cfg.Developer,
		DevelopmentDays: cfg.DevelopmentDays,
		HoursSaved:      cfg.HoursSaved,
		SavingsPercent:  cfg.SavingsPercent,
	}.WithDefaults()
}

func (a *Application) initializeServices() error {
	a.Store = dataset.NewStore(a.Config.Data.File, a.Config.Data.Sheet, ColumnsFrom(a.Config.Data.Columns), a.Logger)

	a.WebSocketHub = ws.NewHub(a.Metrics, a.Logger)
	a.Store.OnReload(a.WebSocketHub.DatasetListener())

	a.DashboardService = services.NewDashboardService(a.Store, a.Metrics, a.Logger)
	a.HealthService = services.NewHealthService(contracts.Version, a.Store, a.WebSocketHub, a.Logger)

	if a.Config.Data.Watch {
		w, err := watcher.New(a.Config.Data.File, a.Config.Data.Debounce, watcher.ReloaderFunc(func(ctx context.Context) error {
			_, err := a.DashboardService.Reload(infrastructure.EnsureTraceID(ctx))
			return err
		}), a.Logger)
		if err != nil {
			return fmt.Errorf("failed to create file watcher: %w", err)
		}
		a.Watcher = w
	}

	return nil
}

// setupRouter configures the HTTP router with all routes
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	// Only middleware that leaves the ResponseWriter alone runs before /ws
	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)
	r.Use(customMiddleware.Recoverer(a.ErrorHandler))

	r.NotFound(a.ErrorHandler.NotFound)
	r.MethodNotAllowed(a.ErrorHandler.MethodNotAllowed)

	r.Method(http.MethodGet, "/ws", ws.NewHandler(a.WebSocketHub, ws.HandlerConfig{
		AllowedOrigins:  a.Config.Security.AllowedOrigins,
		ReadBufferSize:  a.Config.WebSocket.ReadBufferSize,
		WriteBufferSize: a.Config.WebSocket.WriteBufferSize,
		PingPeriod:      a.Config.WebSocket.PingPeriod,
		PongWait:        a.Config.WebSocket.PongWait,
	}, a.Logger))

	r.Method(http.MethodGet, "/metrics", a.OTelProviders.MetricsHandler())

	r.Group(func(r chi.Router) {
		// Order: OTel → Logger → SecurityHeaders → CORS → RateLimit → Timeout
		r.Use(customMiddleware.NewOTelMiddleware(a.OTelProviders.Tracer, a.Metrics).Handler)
		r.Use(customMiddleware.StructuredLogger(a.Logger))
		r.Use(customMiddleware.SecurityHeaders)

		if a.Config.Security.EnableCORS {
			r.Use(customMiddleware.CORS(customMiddleware.CORSConfig{
				AllowedOrigins: a.Config.Security.AllowedOrigins,
				Logger:         a.Logger,
			}))
		}

		if a.Config.Security.RateLimit.Enabled {
			r.Use(customMiddleware.NewRateLimiter(
				a.Config.Security.RateLimit.RPS,
				a.Config.Security.RateLimit.Burst,
				a.Logger,
			).Handler)
		}

		r.Use(customMiddleware.Timeout(a.Config.Server.RequestTimeout, a.Logger))

		a.setupAPIRoutes(r)
	})

	a.Router = r
}

// setupAPIRoutes configures API endpoints
func (a *Application) setupAPIRoutes(r chi.Router) {
	healthHandler := handlers.NewHealthHandler(a.HealthService)
	dashboardHandler := handlers.NewDashboardHandler(a.DashboardService, a.ErrorHandler, a.Logger)
	exportHandler := handlers.NewExportHandler(
		a.DashboardService,
		exporter.NewDetailExporter(a.Logger),
		a.Metrics,
		a.ErrorHandler,
		a.Logger,
	)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(render.SetContentType(render.ContentTypeJSON))
			healthHandler.Register(r)
		})

		r.Mount("/export", exportHandler.Routes())
		r.Mount("/", dashboardHandler.Routes())
	})
}

// createServer creates the HTTP server
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:           a.Config.Addr(),
		Handler:        a.Router,
		ReadTimeout:    a.Config.Server.ReadTimeout,
		WriteTimeout:   a.Config.Server.WriteTimeout,
		IdleTimeout:    a.Config.Server.IdleTimeout,
		MaxHeaderBytes: a.Config.Server.MaxHeaderBytes,
	}
}

// Run listens on the configured address and serves until ctx is cancelled.
func (a *Application) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.Server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", a.Server.Addr, err)
	}
	return a.Serve(ctx, ln)
}

// Serve loads the data file, starts the background components and serves
// HTTP on ln until ctx is cancelled, then shuts everything down gracefully.
// A missing or unreadable data file does not stop the server; the API
// reports the problem until a reload succeeds.
func (a *Application) Serve(ctx context.Context, ln net.Listener) error {
	if _, err := a.Store.Load(ctx); err != nil {
		a.Logger.WarnContext(ctx, "serving without data",
			slog.String("data_file", a.Config.Data.File),
			slog.String("error", err.Error()))
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.WebSocketHub.Run(gctx)
		return nil
	})

	if a.Watcher != nil {
		g.Go(func() error {
			if err := a.Watcher.Run(gctx); err != nil {
				a.Logger.ErrorContext(gctx, "file watcher stopped", slog.String("error", err.Error()))
			}
			return nil
		})
	}

	g.Go(func() error {
		a.Logger.InfoContext(gctx, "HTTP server listening",
			slog.String("address", ln.Addr().String()),
			slog.String("version", contracts.Version))
		if err := a.Server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		return a.shutdown(context.WithoutCancel(ctx))
	})

	return g.Wait()
}

func (a *Application) shutdown(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	var errs []error
	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("server shutdown error: %w", err))
	}
	if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("telemetry shutdown error: %w", err))
	}

	a.Logger.InfoContext(ctx, "Application shutdown complete")
	return errors.Join(errs...)
}
