// Package feed maintains the single realtime connection to the orchestrator
// and fans inbound events out to panel subscribers through a shared log.
package feed

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/inventory-orchestrator/console/internal/metrics"
	"github.com/inventory-orchestrator/console/internal/models"
)

// Envelope is the wire framing for both directions: a named event with an
// opaque payload.
type Envelope struct {
	Type models.Kind     `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Conn is the subset of a websocket connection the client uses. Tests
// substitute a scripted implementation.
type Conn interface {
	ReadMessage() (int, []byte, error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Dialer establishes a Conn to the given URL.
type Dialer func(ctx context.Context, url string) (Conn, error)

// WebsocketDialer dials the upstream feed over a real websocket.
func WebsocketDialer(ctx context.Context, url string) (Conn, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// Subscriber is a view that derives its own state from ingested events.
// Every subscriber sees every event in delivery order; filtering by kind is
// the subscriber's job, not the bus's.
type Subscriber interface {
	Name() string
	Apply(ev models.Event)
}

// Client owns the one logical connection to the orchestrator feed.
//
// Failure semantics are deliberate: a read error flips the state to
// disconnected and nothing more. There is no automatic reconnect, no
// outbound buffering, and Send while disconnected is a silent no-op.
type Client struct {
	url     string
	dial    Dialer
	log     *Log
	metrics *metrics.Metrics
	logger  zerolog.Logger

	mu    sync.Mutex
	conn  Conn
	state models.ConnectionState
	subs  []Subscriber
}

// NewClient creates a feed client. The dialer may be nil, in which case the
// real websocket dialer is used.
func NewClient(url string, dial Dialer, log *Log, m *metrics.Metrics, logger zerolog.Logger) *Client {
	if dial == nil {
		dial = WebsocketDialer
	}
	return &Client{
		url:     url,
		dial:    dial,
		log:     log,
		metrics: m,
		logger:  logger.With().Str("component", "feed").Logger(),
		state:   models.StateDisconnected,
	}
}

// Subscribe registers a view for fan-out. Call before Connect; subscribers
// registered later miss earlier events but can catch up via Log.Since.
func (c *Client) Subscribe(s Subscriber) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs, s)
}

// Log returns the shared event log.
func (c *Client) Log() *Log {
	return c.log
}

// State reports the current connection state.
func (c *Client) State() models.ConnectionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Connect establishes the upstream connection and starts the read loop.
// Idempotent: connecting while connected is a no-op.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	if c.state == models.StateConnected {
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	conn, err := c.dial(ctx, c.url)
	if err != nil {
		c.logger.Warn().Err(err).Str("url", c.url).Msg("feed dial failed")
		return err
	}

	c.mu.Lock()
	c.conn = conn
	c.state = models.StateConnected
	c.mu.Unlock()

	c.metrics.ConnectionUp.Set(1)
	c.logger.Info().Str("url", c.url).Msg("feed connected")

	go c.readLoop(conn)
	return nil
}

// Close tears down the connection unconditionally. Safe to call at any time,
// including when already disconnected.
func (c *Client) Close() error {
	c.mu.Lock()
	conn := c.conn
	c.conn = nil
	wasConnected := c.state == models.StateConnected
	c.state = models.StateDisconnected
	c.mu.Unlock()

	c.metrics.ConnectionUp.Set(0)
	if wasConnected {
		c.logger.Info().Msg("feed disconnected")
	}

	if conn != nil {
		return conn.Close()
	}
	return nil
}

// Send forwards a command upstream. While disconnected it drops the command
// silently: nil error, no queueing, no retry. The caller's alert reflects
// intent, not delivery.
func (c *Client) Send(kind models.Kind, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	frame, err := json.Marshal(Envelope{Type: kind, Data: data})
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != models.StateConnected || c.conn == nil {
		c.metrics.CommandsDropped.WithLabelValues(string(kind)).Inc()
		c.logger.Debug().Str("kind", string(kind)).Msg("command dropped: feed disconnected")
		return nil
	}

	if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
		return err
	}

	c.metrics.CommandsSent.WithLabelValues(string(kind)).Inc()
	c.logger.Info().Str("kind", string(kind)).Msg("command sent")
	return nil
}

// readLoop is the single ingestion point. Events are appended to the log in
// exactly the order the transport delivers them, then handed to every
// subscriber. Runs until the connection errors or is closed.
func (c *Client) readLoop(conn Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			c.markDisconnected(conn, err)
			return
		}

		var env Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			c.logger.Debug().Err(err).Msg("discarding unparseable frame")
			continue
		}
		if env.Type == "" {
			c.logger.Debug().Msg("discarding frame without type")
			continue
		}

		c.ingest(env.Type, env.Data)
	}
}

func (c *Client) ingest(kind models.Kind, payload json.RawMessage) {
	ev := c.log.Append(kind, payload)

	c.metrics.EventsIngested.WithLabelValues(string(kind)).Inc()
	c.metrics.EventLogSize.Set(float64(c.log.Len()))
	c.logger.Debug().Str("kind", string(kind)).Uint64("seq", ev.Seq).Msg("event ingested")

	c.mu.Lock()
	subs := make([]Subscriber, len(c.subs))
	copy(subs, c.subs)
	c.mu.Unlock()

	for _, s := range subs {
		s.Apply(ev)
	}
}

// markDisconnected records connection loss observed by the read loop. If
// Close already swapped the connection out, the state is left alone.
func (c *Client) markDisconnected(conn Conn, err error) {
	c.mu.Lock()
	if c.conn != conn {
		c.mu.Unlock()
		return
	}
	c.conn = nil
	c.state = models.StateDisconnected
	c.mu.Unlock()

	c.metrics.ConnectionUp.Set(0)
	c.logger.Warn().Err(err).Msg("feed connection lost")
	conn.Close()
}
