package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"indicadores/internal/infrastructure"
	"indicadores/pkg/contracts"
	"indicadores/pkg/contracts/events"
)

const broadcastQueueSize = 64

// Hub errors
var (
	ErrHubStopped = errors.New("websocket hub stopped")
	ErrQueueFull  = errors.New("websocket broadcast queue full")
)

// Hub maintains the set of active clients and broadcasts messages to them.
// The client set is owned by the Run goroutine.
type Hub struct {
	clients    map[*Client]struct{}
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	count   atomic.Int64
	sent    atomic.Int64
	dropped atomic.Int64

	metrics *infrastructure.Metrics
	logger  *slog.Logger
}

// NewHub creates a hub. metrics may be nil.
func NewHub(metrics *infrastructure.Metrics, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	return &Hub{
		clients:    make(map[*Client]struct{}),
		broadcast:  make(chan []byte, broadcastQueueSize),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		metrics:    metrics,
		logger:     infrastructure.WithComponent(logger, "websocket.hub"),
	}
}

// Run serves registrations and broadcasts until ctx is cancelled, then
// disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.closeAll(ctx)
			h.logger.InfoContext(ctx, "hub shutting down",
				slog.Int64("messages_sent", h.sent.Load()),
				slog.Int64("messages_dropped", h.dropped.Load()))
			return

		case client := <-h.register:
			h.clients[client] = struct{}{}
			h.count.Store(int64(len(h.clients)))
			h.metrics.RecordWebSocketClients(ctx, 1)

			h.logger.InfoContext(client.context(ctx), "client registered",
				slog.Int("total_clients", len(h.clients)),
				slog.String("client_id", client.id),
				slog.String("remote_addr", client.remoteAddr))

			h.greet(ctx, client)

		case client := <-h.unregister:
			if _, ok := h.clients[client]; !ok {
				continue
			}
			h.remove(ctx, client)
			h.logger.InfoContext(client.context(ctx), "client unregistered",
				slog.Int("total_clients", len(h.clients)),
				slog.String("client_id", client.id),
				slog.Duration("connection_duration", time.Since(client.connectedAt)))

		case message := <-h.broadcast:
			delivered := 0
			for client := range h.clients {
				select {
				case client.send <- message:
					delivered++
				default:
					h.remove(ctx, client)
					h.logger.WarnContext(client.context(ctx), "client send buffer full, disconnecting",
						slog.String("client_id", client.id))
				}
			}
			h.sent.Add(int64(delivered))
			h.logger.DebugContext(ctx, "broadcast delivered",
				slog.Int("clients", delivered),
				slog.Int("message_size", len(message)))
		}
	}
}

func (h *Hub) remove(ctx context.Context, client *Client) {
	delete(h.clients, client)
	close(client.send)
	h.count.Store(int64(len(h.clients)))
	h.metrics.RecordWebSocketClients(ctx, -1)
}

func (h *Hub) closeAll(ctx context.Context) {
	for client := range h.clients {
		h.remove(ctx, client)
	}
}

func (h *Hub) greet(ctx context.Context, client *Client) {
	data, err := encode(events.MessageTypeConnect, events.ConnectMessage{
		ClientID:   client.id,
		APIVersion: contracts.APIVersion,
	}, client.traceID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to encode connect message", slog.String("error", err.Error()))
		return
	}

	select {
	case client.send <- data:
	default:
		h.logger.WarnContext(ctx, "connect message dropped, client buffer full",
			slog.String("client_id", client.id))
	}
}

// Register hands client to the running hub. It returns false when the hub
// has stopped or ctx ends first.
func (h *Hub) Register(ctx context.Context, client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	case <-ctx.Done():
		return false
	}
}

func (h *Hub) unregisterClient(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Broadcast queues a typed message for every connected client. It never
// blocks: a full queue drops the message and returns ErrQueueFull.
func (h *Hub) Broadcast(msgType events.MessageType, data interface{}, traceID string) error {
	payload, err := encode(msgType, data, traceID)
	if err != nil {
		return fmt.Errorf("encode %s message: %w", msgType, err)
	}

	select {
	case <-h.done:
		return ErrHubStopped
	default:
	}

	select {
	case h.broadcast <- payload:
		return nil
	default:
		h.dropped.Add(1)
		return ErrQueueFull
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	return int(h.count.Load())
}

// Done is closed once Run has returned.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

func encode(msgType events.MessageType, data interface{}, traceID string) ([]byte, error) {
	return json.Marshal(events.WebSocketMessage{
		BaseMessage: events.BaseMessage{
			ID:        uuid.New().String(),
			Type:      msgType,
			Timestamp: time.Now().UTC(),
			TraceID:   traceID,
		},
		Data: data,
	})
}
