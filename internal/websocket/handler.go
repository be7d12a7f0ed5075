package websocket

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/gorilla/websocket"

	apierrors "indicadores/internal/errors"
	"indicadores/internal/infrastructure"
)

// HandlerConfig configures the upgrade endpoint.
type HandlerConfig struct {
	// AllowedOrigins lists browser origins allowed to connect. Empty or "*"
	// allows any origin.
	AllowedOrigins  []string
	ReadBufferSize  int
	WriteBufferSize int
	PingPeriod      time.Duration
	PongWait        time.Duration
}

// Handler upgrades HTTP requests to live update connections.
type Handler struct {
	hub      *Hub
	cfg      HandlerConfig
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewHandler creates the upgrade handler for hub.
func NewHandler(hub *Hub, cfg HandlerConfig, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	h := &Handler{
		hub:    hub,
		cfg:    cfg,
		logger: infrastructure.WithComponent(logger, "websocket.handler"),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  cfg.ReadBufferSize,
		WriteBufferSize: cfg.WriteBufferSize,
		CheckOrigin:     h.checkOrigin,
		Error:           h.upgradeError,
	}
	return h
}

func (h *Handler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || len(h.cfg.AllowedOrigins) == 0 {
		return true
	}
	for _, allowed := range h.cfg.AllowedOrigins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}

func (h *Handler) upgradeError(w http.ResponseWriter, r *http.Request, status int, reason error) {
	h.logger.WarnContext(r.Context(), "websocket upgrade rejected",
		slog.Int("status", status),
		slog.String("reason", reason.Error()),
		slog.String("origin", r.Header.Get("Origin")))

	problem := apierrors.NewProblemDetails(
		status,
		apierrors.TypeWebSocketUpgrade,
		"WebSocket Upgrade Failed",
		reason.Error(),
		r.URL.Path,
	).WithExtension("trace_id", middleware.GetReqID(r.Context()))
	_ = render.Render(w, r, problem)
}

// ServeHTTP upgrades the request and starts the client pumps.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader has already replied
		return
	}

	traceID := middleware.GetReqID(r.Context())
	client := NewClient(h.hub, WrapConn(conn), traceID, h.cfg.PingPeriod, h.cfg.PongWait, h.logger)
	if !h.hub.Register(r.Context(), client) {
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "hub stopped"))
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}
