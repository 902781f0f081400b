package di

import (
	"context"
	"fmt"
	"net/http"

	firebase "firebase.google.com/go/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
	"google.golang.org/grpc"
	"gorm.io/gorm"

	"gochat/internal/blacklist"
	"gochat/internal/common"
	"gochat/internal/config"
	"gochat/internal/dbmongo"
	"gochat/internal/dbmysql"
	"gochat/internal/gateway"
	"gochat/internal/notif"
	"gochat/internal/rpc"
	"gochat/internal/server"
	"gochat/internal/session"
)

// Application is everything cmd/chat-svc needs to run and stop the service.
type Application struct {
	Config        *config.Config
	Mongo         *dbmongo.MongoClient
	Gateway       *gateway.Gateway
	Notifications *notif.NotificationService
	Sweeper       *session.Sweeper
	Router        *server.Router
	GRPC          *grpc.Server
}

func ProvideConfig() (*config.Config, error) {
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func ProvideMongo(cfg *config.Config) (*dbmongo.MongoClient, func(), error) {
	mc, err := dbmongo.NewMongoConnection(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := mc.Close(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to close MongoDB connection")
		}
	}
	return mc, cleanup, nil
}

func ProvideMySQL(cfg *config.Config) (*gorm.DB, func(), error) {
	db, err := dbmysql.NewMySQL(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return db, cleanup, nil
}

func ProvideRedis(cfg *config.Config) (*redis.Client, func(), error) {
	client, err := blacklist.NewRedisClient(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if client != nil {
			_ = client.Close()
		}
	}
	return client, cleanup, nil
}

// ProvideFirebaseApp returns nil when push delivery is disabled or not configured.
func ProvideFirebaseApp(cfg *config.Config) (*firebase.App, error) {
	if !cfg.Firebase.Enabled {
		log.Info().Msg("Firebase disabled")
		return nil, nil
	}
	if cfg.Firebase.CredentialsFilePath == "" {
		log.Warn().Msg("Firebase credentials not provided, push delivery disabled")
		return nil, nil
	}

	app, err := firebase.NewApp(context.Background(), &firebase.Config{
		ProjectID: cfg.Firebase.ProjectID,
	}, option.WithCredentialsFile(cfg.Firebase.CredentialsFilePath))
	if err != nil {
		return nil, fmt.Errorf("firebase initialization failed: %w", err)
	}
	return app, nil
}

// ProvidePushClient returns a nil interface, not a typed nil, when there is no Firebase app.
func ProvidePushClient(app *firebase.App) (notif.PushClient, error) {
	if app == nil {
		return nil, nil
	}
	client, err := app.Messaging(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to create FCM client: %w", err)
	}
	return client, nil
}

func ProvideTokenSource(repo session.Repository) notif.TokenSource {
	return repo
}

func ProvideSweeper(repo session.Repository, cfg *config.Config) *session.Sweeper {
	return session.NewSweeper(repo, cfg.Auth.SweepInterval)
}

func ProvideGRPCServer(
	srv *rpc.SessionServer,
	tokens *common.TokenManager,
	revocations *blacklist.TokenBlacklist,
	cfg *config.Config,
) *grpc.Server {
	auth := common.AuthInterceptor(tokens, revocations, cfg.Auth.InternalAPIKey, rpc.Policies())
	s, _ := rpc.NewServer(srv, auth)
	return s
}

func ProvideRouter(
	cfg *config.Config,
	sessions *session.Service,
	tokens *common.TokenManager,
	revocations *blacklist.TokenBlacklist,
	gw *gateway.Gateway,
	mc *dbmongo.MongoClient,
	db *gorm.DB,
	rdb *redis.Client,
) *server.Router {
	deps := map[string]server.Pinger{
		"mongodb": mc,
		"mysql":   gormPinger{db: db},
	}
	if rdb != nil {
		deps["redis"] = redisPinger{client: rdb}
	}
	return server.NewRouter(cfg, sessions, tokens, revocations, http.HandlerFunc(gw.ServeWS), deps)
}

type gormPinger struct {
	db *gorm.DB
}

func (p gormPinger) Ping(ctx context.Context) error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

type redisPinger struct {
	client *redis.Client
}

func (p redisPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}
