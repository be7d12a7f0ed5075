// Package events contains the message contracts pushed to live update
// clients over the websocket.
package events

import (
	"time"

	"indicadores/pkg/contracts/domain"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	// Dataset messages
	MessageTypeDatasetReloaded MessageType = "dataset:reloaded"
	MessageTypeDatasetError    MessageType = "dataset:error"

	// Connection messages
	MessageTypeConnect MessageType = "connect"
	MessageTypePong    MessageType = "pong"
	MessageTypeError   MessageType = "error"
)

// BaseMessage represents the base structure for all WebSocket messages
type BaseMessage struct {
	ID        string      `json:"id,omitempty"`
	Type      MessageType `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	TraceID   string      `json:"trace_id,omitempty"`
}

// WebSocketMessage represents a complete WebSocket message
type WebSocketMessage struct {
	BaseMessage
	Data interface{} `json:"data,omitempty"`
}

// DatasetReloaded tells clients to refetch the dashboard.
type DatasetReloaded struct {
	Dataset    domain.DatasetInfo `json:"dataset"`
	Developers []string           `json:"developers"`
}

// DatasetError reports a failed reload. Serving tells whether an older
// snapshot is still being served.
type DatasetError struct {
	Source  string `json:"source"`
	Error   string `json:"error"`
	Serving bool   `json:"serving"`
}

// ConnectMessage greets a newly connected client.
type ConnectMessage struct {
	ClientID   string `json:"client_id"`
	APIVersion string `json:"api_version"`
}
