package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"gochat/internal/dbmongo"
	"gochat/internal/di"
	"gochat/internal/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found, using system environment variables")
	}

	app, cleanup, err := di.InitializeApplication()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize application")
	}
	defer cleanup()

	closer, err := logger.Init(app.Config.Logging)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize logger")
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := dbmongo.EnsureIndexes(ctx, app.Mongo.Database); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure MongoDB indexes")
	}

	go app.Sweeper.Run(ctx)

	cfg := app.Config.Server
	httpServer := &http.Server{
		Addr:        net.JoinHostPort(cfg.Host, cfg.Port),
		Handler:     app.Router.Handler(),
		ReadTimeout: time.Duration(cfg.ReadTimeout) * time.Second,
		// no WriteTimeout: it would cut long-lived websocket connections
	}
	go func() {
		log.Info().Str("addr", httpServer.Addr).Msg("HTTP server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	lis, err := net.Listen("tcp", net.JoinHostPort(cfg.Host, cfg.GRPCPort))
	if err != nil {
		log.Fatal().Err(err).Str("port", cfg.GRPCPort).Msg("failed to listen")
	}
	go func() {
		log.Info().Str("addr", lis.Addr().String()).Msg("gRPC server listening")
		if err := app.GRPC.Serve(lis); err != nil {
			log.Fatal().Err(err).Msg("gRPC server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	app.Gateway.Shutdown()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown failed")
	}
	app.GRPC.GracefulStop()
	app.Notifications.Shutdown()
	log.Info().Msg("server stopped")
}
