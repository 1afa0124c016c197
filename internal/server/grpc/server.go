// Package grpc runs the store's gRPC endpoint, which serves the standard
// health protocol. Clients poll it to decide whether the store is reachable.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/billed/internal/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the health service name of the bill store.
const ServiceName = "billed.Store"

// Pinger reports whether a dependency is usable; *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type GRPCServer struct {
	address  string
	logger   logging.Logger
	health   *health.Server
	db       Pinger
	interval time.Duration
}

// NewGRPCServer builds a health server on address. The store is reported
// SERVING while db answers pings, checked every interval.
func NewGRPCServer(address string, l logging.Logger, db Pinger, interval time.Duration) *GRPCServer {
	return &GRPCServer{
		address:  address,
		logger:   l.With("module", "grpc_server"),
		health:   health.NewServer(),
		db:       db,
		interval: interval,
	}
}

// SetServing flips the reported status of the store and of the server as a whole.
func (s *GRPCServer) SetServing(serving bool) {
	st := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		st = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus(ServiceName, st)
	s.health.SetServingStatus("", st)
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.serve(ctx, listen)
}

func (s *GRPCServer) serve(ctx context.Context, listen net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor))
	healthpb.RegisterHealthServer(srv, s.health)

	s.check(ctx)
	go s.watch(ctx)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}

func (s *GRPCServer) watch(ctx context.Context) {
	if s.interval <= 0 {
		return
	}
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.check(ctx)
		}
	}
}

func (s *GRPCServer) check(ctx context.Context) {
	if s.db == nil {
		s.SetServing(true)
		return
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := s.db.PingContext(pingCtx); err != nil {
		if ctx.Err() == nil {
			s.logger.Warn(ctx, "database unreachable", "error", err)
		}
		s.SetServing(false)
		return
	}
	s.SetServing(true)
}
