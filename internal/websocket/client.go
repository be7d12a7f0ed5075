package websocket

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"indicadores/internal/infrastructure"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Maximum message size allowed from peer
	maxMessageSize = 512

	sendBufferSize = 32
)

// Client is a middleman between the websocket connection and the hub
type Client struct {
	hub  *Hub
	conn Connection

	// Buffered channel of outbound messages, closed by the hub
	send chan []byte

	id          string
	traceID     string
	remoteAddr  string
	connectedAt time.Time

	pongWait   time.Duration
	pingPeriod time.Duration

	logger *slog.Logger
}

// NewClient creates a client for conn. pongWait bounds how long the peer may
// stay silent; pings are sent at pingPeriod, which must be below pongWait.
func NewClient(hub *Hub, conn Connection, traceID string, pingPeriod, pongWait time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	id := uuid.New().String()

	return &Client{
		hub:         hub,
		conn:        conn,
		send:        make(chan []byte, sendBufferSize),
		id:          id,
		traceID:     traceID,
		remoteAddr:  conn.RemoteAddr(),
		connectedAt: time.Now(),
		pongWait:    pongWait,
		pingPeriod:  pingPeriod,
		logger: logger.With(
			slog.String("component", "websocket.client"),
			slog.String("client_id", id),
		),
	}
}

// ID returns the client identifier sent in the connect message.
func (c *Client) ID() string {
	return c.id
}

func (c *Client) context(ctx context.Context) context.Context {
	if c.traceID == "" {
		return ctx
	}
	return infrastructure.WithTraceID(ctx, c.traceID)
}

// ReadPump drains the connection so control frames are processed. Clients
// only listen; payloads they send are logged and discarded.
func (c *Client) ReadPump() {
	ctx := c.context(context.Background())
	defer func() {
		c.hub.unregisterClient(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(c.pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				c.logger.WarnContext(ctx, "unexpected websocket close",
					slog.String("error", err.Error()))
			}
			return
		}
		c.logger.DebugContext(ctx, "ignoring client message", slog.Int("size", len(message)))
	}
}

// WritePump pumps messages from the hub to the websocket connection
func (c *Client) WritePump() {
	ctx := c.context(context.Background())
	ticker := time.NewTicker(c.pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.logger.WarnContext(ctx, "failed to write websocket message",
					slog.String("error", err.Error()))
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.logger.DebugContext(ctx, "failed to send ping",
					slog.String("error", err.Error()))
				return
			}
		}
	}
}
