//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"gochat/internal/blacklist"
	"gochat/internal/chat/repository"
	"gochat/internal/chat/service"
	"gochat/internal/common"
	"gochat/internal/dbmysql"
	"gochat/internal/gateway"
	"gochat/internal/notif"
	"gochat/internal/presence"
	"gochat/internal/rpc"
	"gochat/internal/session"
	"gochat/internal/user"
)

var infraSet = wire.NewSet(
	ProvideConfig,
	ProvideMongo,
	ProvideMySQL,
	ProvideRedis,
	ProvideFirebaseApp,
	ProvidePushClient,
)

var authSet = wire.NewSet(
	common.NewTokenManager,
	blacklist.NewTokenBlacklist,
	wire.Bind(new(common.TokenVerifier), new(*common.TokenManager)),
	wire.Bind(new(session.TokenIssuer), new(*common.TokenManager)),
	wire.Bind(new(common.RevocationChecker), new(*blacklist.TokenBlacklist)),
	wire.Bind(new(session.TokenRevoker), new(*blacklist.TokenBlacklist)),
	session.NewRepository,
	session.NewService,
	session.NewAuthenticator,
	ProvideSweeper,
)

var chatSet = wire.NewSet(
	user.NewProfileRepository,
	presence.NewRegistry,
	repository.NewRoomRepository,
	repository.NewMessageRepository,
	service.NewRoomService,
	service.NewMessageService,
	service.NewChatListService,
	wire.Bind(new(service.PresenceReader), new(*presence.Registry)),
	wire.Bind(new(service.MessageNotifier), new(*notif.NotificationService)),
)

var notifSet = wire.NewSet(
	dbmysql.NewNotificationRepository,
	notif.NewFanout,
	notif.NewNotificationService,
	ProvideTokenSource,
	wire.Bind(new(notif.InboxStore), new(*dbmysql.NotificationRepository)),
	wire.Bind(new(notif.Pusher), new(*notif.Fanout)),
)

var transportSet = wire.NewSet(
	gateway.NewHub,
	gateway.NewGateway,
	wire.Bind(new(gateway.Authenticator), new(*session.Authenticator)),
	wire.Bind(new(gateway.Presence), new(*presence.Registry)),
	wire.Bind(new(gateway.Rooms), new(*service.RoomService)),
	wire.Bind(new(gateway.Messages), new(*service.MessageService)),
	wire.Bind(new(gateway.ChatList), new(*service.ChatListService)),
	rpc.NewSessionServer,
	wire.Bind(new(rpc.Sessions), new(*session.Service)),
	wire.Bind(new(rpc.Notifications), new(*notif.NotificationService)),
	ProvideGRPCServer,
	ProvideRouter,
)

func InitializeApplication() (*Application, func(), error) {
	wire.Build(
		infraSet,
		authSet,
		chatSet,
		notifSet,
		transportSet,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil, nil
}
