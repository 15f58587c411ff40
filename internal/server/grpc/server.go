package grpc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"github.com/Additional-Code/restaurants/internal/config"
	"github.com/Additional-Code/restaurants/internal/database"
	"github.com/Additional-Code/restaurants/pkg/errorbank"
)

// ServiceName is the name reported by the health service for this process.
const ServiceName = "restaurants"

// Module exposes the gRPC server and lifecycle hooks to Fx.
var Module = fx.Module("grpc_server",
	fx.Provide(NewServer, NewHealth),
	fx.Invoke(Run),
)

// NewServer builds a gRPC server with logging interceptors that also
// translate application errors into gRPC statuses.
func NewServer(logger *zap.Logger, healthServer *health.Server) *grpc.Server {
	unary := func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		err = toStatus(err)
		logCall(logger, "grpc unary call finished", info.FullMethod, time.Since(start), err)
		return resp, err
	}

	stream := func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		start := time.Now()
		err := toStatus(handler(srv, ss))
		logCall(logger, "grpc stream call finished", info.FullMethod, time.Since(start), err)
		return err
	}

	server := grpc.NewServer(
		grpc.ChainUnaryInterceptor(unary),
		grpc.ChainStreamInterceptor(stream),
	)
	healthpb.RegisterHealthServer(server, healthServer)
	return server
}

// NewHealth builds the health service. Every service starts NOT_SERVING
// until Run flips it after the database answers a ping.
func NewHealth() *health.Server {
	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	return hs
}

func logCall(logger *zap.Logger, msg, method string, duration time.Duration, err error) {
	if err != nil {
		logger.Warn(msg, zap.String("method", method), zap.Duration("duration", duration), zap.Error(err))
		return
	}
	logger.Debug(msg, zap.String("method", method), zap.Duration("duration", duration))
}

// toStatus maps application errors onto gRPC statuses. Errors that already
// carry a status pass through.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	var appErr *errorbank.AppError
	if errors.As(err, &appErr) {
		return appErr.GRPCStatus().Err()
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	return errorbank.From(err).GRPCStatus().Err()
}

// Run binds the gRPC server to the configured host/port and manages lifecycle.
func Run(lc fx.Lifecycle, cfg config.Config, server *grpc.Server, healthServer *health.Server, conns *database.Connections, logger *zap.Logger) {
	addr := fmt.Sprintf("%s:%d", cfg.GRPC.Host, cfg.GRPC.Port)
	var listener net.Listener

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("listen grpc: %w", err)
			}
			listener = ln

			serving := healthpb.HealthCheckResponse_SERVING
			if conns != nil {
				if err := conns.Writer.PingContext(ctx); err != nil {
					logger.Warn("database unreachable; reporting NOT_SERVING", zap.Error(err))
					serving = healthpb.HealthCheckResponse_NOT_SERVING
				}
			}
			healthServer.SetServingStatus("", serving)
			healthServer.SetServingStatus(ServiceName, serving)

			logger.Info("starting gRPC server", zap.String("addr", ln.Addr().String()))
			go func() {
				if err := server.Serve(listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
					logger.Error("grpc server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping gRPC server")
			healthServer.Shutdown()
			stopped := make(chan struct{})
			go func() {
				server.GracefulStop()
				close(stopped)
			}()

			select {
			case <-ctx.Done():
				server.Stop()
				return ctx.Err()
			case <-stopped:
				return nil
			}
		},
	})
}
