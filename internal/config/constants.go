package config

import "time"

// Application constants
const (
	AppName     = "Indicadores"
	ServiceName = "indicadores"
	EnvPrefix   = "INDICADORES"

	// Input file expected next to the executable
	DefaultDataFileName = "indicadores_grupo_linhares.xlsx"

	// Directories relative to the executable
	DefaultLogsDir    = "logs"
	DefaultExportsDir = "exports"

	// HTTP
	DefaultPort           = 8080
	DefaultRequestTimeout = 30 * time.Second

	// Rate limiting
	DefaultRateLimit = 100 // requests per second
	DefaultBurstSize = 50

	// WebSocket
	WebSocketPingPeriod = 30 * time.Second
	WebSocketPongWait   = 60 * time.Second

	// File watcher
	DefaultWatchDebounce = 500 * time.Millisecond
)
