package gateway

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"gochat/internal/common"
	"gochat/internal/config"
	"gochat/internal/metrics"
	"gochat/internal/session"
)

// Client is one authenticated websocket connection. Its events are handled one at a time in
// the read goroutine; writes go through the send buffer to the write goroutine.
type Client struct {
	id       string
	identity *session.Identity
	conn     *websocket.Conn
	send     chan []byte
	done     chan struct{}
	once     sync.Once
	limiter  *rate.Limiter
	cfg      config.GatewayConfig

	// guarded by Hub.mu
	rooms map[string]struct{}
}

func newClient(conn *websocket.Conn, identity *session.Identity, cfg config.GatewayConfig) *Client {
	buffer := cfg.SendBuffer
	if buffer < 1 {
		buffer = 256
	}
	if cfg.PongWait <= 0 {
		cfg.PongWait = 60 * time.Second
	}
	if cfg.PingPeriod <= 0 || cfg.PingPeriod >= cfg.PongWait {
		cfg.PingPeriod = cfg.PongWait * 9 / 10
	}
	if cfg.WriteWait <= 0 {
		cfg.WriteWait = 10 * time.Second
	}
	var limiter *rate.Limiter
	if cfg.EventsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.EventsPerSecond), cfg.EventBurst)
	}
	return &Client{
		id:       uuid.NewString(),
		identity: identity,
		conn:     conn,
		send:     make(chan []byte, buffer),
		done:     make(chan struct{}),
		limiter:  limiter,
		cfg:      cfg,
		rooms:    make(map[string]struct{}),
	}
}

func (c *Client) ID() string {
	return c.id
}

func (c *Client) Identity() *session.Identity {
	return c.identity
}

// Emit queues an event for this connection only.
func (c *Client) Emit(event string, data any) {
	frame, err := encode(event, data)
	if err != nil {
		log.Error().Err(err).Str("event", event).Str("socket_id", c.id).Msg("failed to encode event")
		return
	}
	c.enqueue(frame)
}

// enqueue never blocks. A connection that cannot keep up is closed.
func (c *Client) enqueue(frame []byte) {
	select {
	case <-c.done:
		return
	default:
	}
	select {
	case c.send <- frame:
	case <-c.done:
	default:
		log.Warn().Str("socket_id", c.id).Msg("send buffer full, closing connection")
		c.close()
	}
}

// close signals the write goroutine, which sends a close frame and releases the socket.
func (c *Client) close() {
	c.once.Do(func() {
		close(c.done)
	})
}

func (c *Client) allow() bool {
	return c.limiter == nil || c.limiter.Allow()
}

func (c *Client) readPump(dispatch func(c *Client, env Envelope)) {
	defer c.close()

	if c.cfg.MaxMessageBytes > 0 {
		c.conn.SetReadLimit(c.cfg.MaxMessageBytes)
	}
	_ = c.conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Str("socket_id", c.id).Msg("websocket read failed")
			}
			return
		}

		var env Envelope
		if err := json.Unmarshal(data, &env); err != nil || env.Event == "" {
			c.Emit(EventError, failure(common.InvalidArgument("Invalid event frame")))
			continue
		}
		if !c.allow() {
			metrics.WsEventsTotal.WithLabelValues(env.Event, "rate_limited").Inc()
			c.Emit(env.Event, failure(common.ErrRateLimited))
			continue
		}
		dispatch(c, env)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(c.cfg.PingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
		_ = c.conn.Close()
	}()

	for {
		select {
		case frame := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				log.Debug().Err(err).Str("socket_id", c.id).Msg("websocket write failed")
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
			for n := len(c.send); n > 0; n-- {
				if err := c.conn.WriteMessage(websocket.TextMessage, <-c.send); err != nil {
					return
				}
			}
			_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
