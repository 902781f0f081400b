package rpc

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

// LoggingInterceptor logs every unary call with its status code and latency.
func LoggingInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		code := status.Code(err)
		event := log.Info()
		if err != nil {
			event = log.Warn().Err(err)
		}
		event.
			Str("method", info.FullMethod).
			Str("code", code.String()).
			Dur("duration", time.Since(start)).
			Msg("grpc call")
		return resp, err
	}
}

// NewServer builds a gRPC server exposing the session service and the standard health service.
// auth runs after logging so rejected calls are logged too. Reflection is not registered: the
// session service is JSON-coded and has no proto descriptors to serve.
func NewServer(srv SessionServiceServer, auth grpc.UnaryServerInterceptor) (*grpc.Server, *health.Server) {
	interceptors := []grpc.UnaryServerInterceptor{LoggingInterceptor()}
	if auth != nil {
		interceptors = append(interceptors, auth)
	}
	s := grpc.NewServer(grpc.ChainUnaryInterceptor(interceptors...))
	RegisterSessionServiceServer(s, srv)

	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(s, hs)
	return s, hs
}
