package services

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"indicadores/pkg/contracts"
)

// HealthService provides health check functionality
type HealthService struct {
	version   string
	source    SnapshotSource
	clients   ClientCounter
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime,omitempty"`
	Services  map[string]interface{} `json:"services,omitempty"`
}

// ServiceHealth represents individual service health
type ServiceHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Uptime  string `json:"uptime,omitempty"`
}

// NewHealthService creates a new health service. clients may be nil when
// live updates are disabled.
func NewHealthService(version string, source SnapshotSource, clients ClientCounter, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		version:   version,
		source:    source,
		clients:   clients,
		startTime: time.Now(),
		logger:    logger.With(slog.String("component", "health_service")),
	}
}

// HealthCheck returns overall health status
func (hs *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	hs.logger.DebugContext(ctx, "health check",
		slog.String("uptime", time.Since(hs.startTime).String()))

	return HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   hs.version,
	}
}

// ReadinessCheck reports ready once a data snapshot is being served.
func (hs *HealthService) ReadinessCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "ready",
		Timestamp: time.Now(),
		Version:   hs.version,
		Services: map[string]interface{}{
			"data":      hs.checkDataHealth(),
			"websocket": hs.checkWebSocketHealth(),
		},
	}

	for _, service := range status.Services {
		if sh, ok := service.(ServiceHealth); ok && sh.Status != "ready" {
			status.Status = "not_ready"
			break
		}
	}

	return status
}

// LivenessCheck returns liveness status
func (hs *HealthService) LivenessCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   hs.version,
		Runtime: map[string]interface{}{
			"uptime":     time.Since(hs.startTime).Seconds(),
			"go_version": runtime.Version(),
			"goroutines": runtime.NumGoroutine(),
		},
	}
}

// Version returns version information
func (hs *HealthService) Version() map[string]interface{} {
	info := contracts.GetVersionInfo()
	return map[string]interface{}{
		"version":      hs.version,
		"build_time":   info.BuildTime,
		"git_commit":   info.GitCommit,
		"go_version":   info.GoVersion,
		"os":           info.OS,
		"arch":         info.Architecture,
		"api_version":  info.APIVersion,
		"uptime":       time.Since(hs.startTime).Seconds(),
		"start_time":   hs.startTime.Format(time.RFC3339),
		"current_time": time.Now().Format(time.RFC3339),
	}
}

func (hs *HealthService) checkDataHealth() ServiceHealth {
	if hs.source == nil {
		return ServiceHealth{Status: "not_ready", Message: "data store not initialized"}
	}

	st := hs.source.Status()
	if !st.Loaded {
		return ServiceHealth{Status: "not_ready", Message: st.LastError}
	}

	health := ServiceHealth{
		Status:  "ready",
		Message: "Data snapshot loaded",
		Uptime:  time.Since(st.Dataset.LoadedAt).Round(time.Second).String(),
	}
	if st.LastError != "" {
		health.Message = "Serving previous snapshot: " + st.LastError
	}
	return health
}

func (hs *HealthService) checkWebSocketHealth() ServiceHealth {
	health := ServiceHealth{
		Status: "ready",
		Uptime: time.Since(hs.startTime).String(),
	}
	if hs.clients != nil {
		health.Message = fmt.Sprintf("%d clients connected", hs.clients.ClientCount())
	}
	return health
}
