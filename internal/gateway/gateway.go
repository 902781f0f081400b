package gateway

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"gochat/internal/chat"
	"gochat/internal/chat/service"
	"gochat/internal/common"
	"gochat/internal/config"
	"gochat/internal/metrics"
	"gochat/internal/presence"
	"gochat/internal/session"
)

const (
	eventTimeout      = 15 * time.Second
	disconnectTimeout = 10 * time.Second
)

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*session.Identity, error)
}

type Presence interface {
	BindSocket(ctx context.Context, userID, sessionID primitive.ObjectID, socketID string) (*presence.BindResult, error)
	UnbindSocket(ctx context.Context, socketID string) (*presence.UnbindResult, error)
	IsOnline(ctx context.Context, userID primitive.ObjectID) (bool, error)
	SetViewing(ctx context.Context, userID primitive.ObjectID, socketID string, roomID *primitive.ObjectID) error
}

type Rooms interface {
	GetOrCreateRoom(ctx context.Context, userA, userB primitive.ObjectID) (*chat.Room, error)
	Room(ctx context.Context, roomID, userID primitive.ObjectID) (*chat.Room, error)
	DeleteRoom(ctx context.Context, roomID, userID primitive.ObjectID) error
}

type Messages interface {
	Send(ctx context.Context, in service.SendInput) (*chat.Message, error)
	Edit(ctx context.Context, messageID, editor primitive.ObjectID, body string) (*chat.Message, bool, error)
	DeleteForSelf(ctx context.Context, messageID, userID primitive.ObjectID) (*chat.Message, error)
	DeleteForEveryone(ctx context.Context, messageID, userID primitive.ObjectID) (*chat.Message, bool, error)
	MarkRead(ctx context.Context, roomID, reader primitive.ObjectID) (int64, error)
	List(ctx context.Context, roomID, viewer primitive.ObjectID, page, limit int) ([]*chat.Message, error)
}

type ChatList interface {
	Summary(ctx context.Context, viewer, roomID primitive.ObjectID) (*chat.Summary, error)
	List(ctx context.Context, viewer primitive.ObjectID, search string, page, limit int) ([]*chat.Summary, error)
}

type handlerFunc func(ctx context.Context, c *Client, env Envelope) error

// Gateway terminates websocket connections and turns inbound events into calls on the chat core.
type Gateway struct {
	hub      *Hub
	auth     Authenticator
	presence Presence
	rooms    Rooms
	messages Messages
	chats    ChatList
	cfg      config.GatewayConfig
	upgrader websocket.Upgrader
	handlers map[string]handlerFunc
}

func NewGateway(
	hub *Hub,
	auth Authenticator,
	registry Presence,
	rooms Rooms,
	messages Messages,
	chats ChatList,
	cfg *config.Config,
) *Gateway {
	g := &Gateway{
		hub:      hub,
		auth:     auth,
		presence: registry,
		rooms:    rooms,
		messages: messages,
		chats:    chats,
		cfg:      cfg.Gateway,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
	g.handlers = map[string]handlerFunc{
		EventSetSocketID:              g.handleSetSocketID,
		EventCheckUserIsOnline:        g.handleCheckUserIsOnline,
		EventCreateRoom:               g.handleCreateRoom,
		EventSendMessage:              g.handleSendMessage,
		EventGetAllMessage:            g.handleGetAllMessage,
		EventEditMessage:              g.handleEditMessage,
		EventDeleteMessage:            g.handleDeleteMessage,
		EventDeleteMessageForEveryOne: g.handleDeleteForEveryone,
		EventReadMessage:              g.handleReadMessage,
		EventChatUserList:             g.handleChatUserList,
		EventDeleteChatRoom:           g.handleDeleteChatRoom,
		EventChangeScreenStatus:       g.handleChangeScreenStatus,
	}
	return g
}

func (g *Gateway) Hub() *Hub {
	return g.hub
}

// ServeWS upgrades the request and authenticates the bearer token from the Authorization header
// or the token query parameter. A rejected connection receives an error event and is closed.
func (g *Gateway) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Debug().Err(err).Msg("websocket upgrade failed")
		return
	}

	token := common.BearerToken(r.Header.Get("Authorization"))
	if token == "" {
		token = r.URL.Query().Get("token")
	}

	identity, err := g.authenticate(r.Context(), token)
	if err != nil {
		g.reject(conn, err)
		return
	}

	c := newClient(conn, identity, g.cfg)
	g.hub.register(c)
	metrics.WsConnections.Inc()
	log.Info().Str("socket_id", c.id).Str("user_id", identity.UserID.Hex()).Msg("user connected")

	defer g.disconnect(c)

	go c.writePump()
	c.readPump(func(c *Client, env Envelope) {
		g.dispatch(r.Context(), c, env)
	})
}

func (g *Gateway) authenticate(ctx context.Context, token string) (*session.Identity, error) {
	if token == "" {
		return nil, common.ErrAuthFailed
	}
	ctx, cancel := context.WithTimeout(ctx, eventTimeout)
	defer cancel()
	return g.auth.Authenticate(ctx, token)
}

func (g *Gateway) reject(conn *websocket.Conn, err error) {
	defer conn.Close()

	msg := common.ErrAuthFailed.Message
	if common.IsCode(err, common.CodeAuthFailed) {
		msg = common.PublicMessage(err)
	} else {
		log.Error().Err(err).Msg("authentication lookup failed")
	}
	frame, encErr := encode(EventError, Response{
		Success: false,
		Message: msg,
		Code:    common.CodeAuthFailed,
	})
	if encErr != nil {
		return
	}

	wait := g.cfg.WriteWait
	if wait <= 0 {
		wait = 10 * time.Second
	}
	deadline := time.Now().Add(wait)
	_ = conn.SetWriteDeadline(deadline)
	_ = conn.WriteMessage(websocket.TextMessage, frame)
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.ClosePolicyViolation, msg), deadline)
}

func (g *Gateway) dispatch(parent context.Context, c *Client, env Envelope) {
	handler, ok := g.handlers[env.Event]
	if !ok {
		metrics.WsEventsTotal.WithLabelValues("unknown", "error").Inc()
		c.Emit(EventError, failure(common.InvalidArgument("Unknown event: "+env.Event)))
		return
	}

	ctx, cancel := context.WithTimeout(parent, eventTimeout)
	defer cancel()

	// a panicking handler fails only its own event; the connection keeps serving
	defer func() {
		if rec := recover(); rec != nil {
			metrics.WsEventsTotal.WithLabelValues(env.Event, "error").Inc()
			log.Error().Interface("panic", rec).Str("event", env.Event).Str("socket_id", c.id).Msg("event handler panicked")
			c.Emit(env.Event, failure(fmt.Errorf("handler %s panicked: %v", env.Event, rec)))
		}
	}()

	if err := handler(ctx, c, env); err != nil {
		metrics.WsEventsTotal.WithLabelValues(env.Event, "error").Inc()
		if common.CodeOf(err) == common.CodeInternal {
			log.Error().Err(err).Str("event", env.Event).Str("socket_id", c.id).Msg("event failed")
		} else {
			log.Debug().Err(err).Str("event", env.Event).Str("socket_id", c.id).Msg("event rejected")
		}
		c.Emit(env.Event, failure(err))
		return
	}
	metrics.WsEventsTotal.WithLabelValues(env.Event, "ok").Inc()
}

// disconnect runs on a fresh context so presence cleanup is not cut short by the closed request.
func (g *Gateway) disconnect(c *Client) {
	g.hub.unregister(c)
	metrics.WsConnections.Dec()

	ctx, cancel := context.WithTimeout(context.Background(), disconnectTimeout)
	defer cancel()

	res, err := g.presence.UnbindSocket(ctx, c.id)
	if err != nil {
		log.Error().Err(err).Str("socket_id", c.id).Msg("failed to unbind socket")
		return
	}
	log.Info().Str("socket_id", c.id).Str("user_id", c.identity.UserID.Hex()).Msg("user disconnected")
	if !res.Found {
		return
	}

	userID := res.UserID.Hex()
	if res.LeftRoomID != nil {
		roomID := res.LeftRoomID.Hex()
		g.hub.EmitTo(roomID, EventChangeScreenStatus, success("Screen status changed successfully",
			screenStatus{RoomID: roomID, UserID: userID, ScreenStatus: false}))
	}
	if res.Offline {
		g.hub.Broadcast(EventUserIsOffline, success("User is offline", onlineStatus{UserID: userID, IsOnline: false}))
	}
}

// Shutdown closes every live connection.
func (g *Gateway) Shutdown() {
	g.hub.CloseAll()
}
