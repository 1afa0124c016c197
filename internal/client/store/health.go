package store

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/billed/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

// HealthServiceName is the service name the store registers with the
// standard gRPC health server.
const HealthServiceName = "billed.Store"

// HealthChecker probes the store over the gRPC health protocol.
type HealthChecker struct {
	conn   *grpc.ClientConn
	client healthpb.HealthClient
}

// NewHealthChecker prepares a lazy connection to addr; nothing is dialed
// until the first Ping.
func NewHealthChecker(addr string) (*HealthChecker, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, err
	}
	return &HealthChecker{conn: conn, client: healthpb.NewHealthClient(conn)}, nil
}

// Ping returns nil when the store reports SERVING.
func (h *HealthChecker) Ping(ctx context.Context) error {
	resp, err := h.client.Check(ctx, &healthpb.HealthCheckRequest{Service: HealthServiceName})
	if err != nil {
		return mapRPCError(err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return fmt.Errorf("%w: store is %s", common.ErrTransport, resp.GetStatus())
	}
	return nil
}

// Close releases the connection.
func (h *HealthChecker) Close() error {
	if h.conn == nil {
		return nil
	}
	return h.conn.Close()
}

func mapRPCError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unavailable, codes.DeadlineExceeded, codes.Canceled:
		return fmt.Errorf("%w: %v", common.ErrTransport, err)
	case codes.Unauthenticated, codes.PermissionDenied:
		return fmt.Errorf("%w: %v", common.ErrUnauthorized, err)
	default:
		return fmt.Errorf("%w: rpc error: %v", common.ErrServer, err)
	}
}
