package grpc

import (
	"context"
	"errors"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/billed/internal/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"
)

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

type fakePinger struct {
	mu  sync.Mutex
	err error
}

func (f *fakePinger) PingContext(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

func (f *fakePinger) set(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	srv := NewGRPCServer("127.0.0.1:0", nopLogger{}, nil, 0)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx)
	}()

	select {
	case err := <-done:
		t.Fatalf("server exited too early: %v", err)
	case <-time.After(150 * time.Millisecond):
	}

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error on graceful stop: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop within timeout after context cancel")
	}
}

func TestRun_ReturnsErrorOnBadAddress(t *testing.T) {
	t.Parallel()

	srv := NewGRPCServer("127.0.0.1:99999", nopLogger{}, nil, 0)
	if err := srv.Run(context.Background()); err == nil {
		t.Fatal("expected listen error")
	}
}

// startBufconn serves srv over an in-memory listener and returns a health client.
func startBufconn(t *testing.T, srv *GRPCServer) healthpb.HealthClient {
	t.Helper()
	lis := bufconn.Listen(1 << 20)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = srv.serve(ctx, lis)
		close(done)
	}()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}

	t.Cleanup(func() {
		_ = conn.Close()
		cancel()
		<-done
	})
	return healthpb.NewHealthClient(conn)
}

func checkStatus(t *testing.T, c healthpb.HealthClient) healthpb.HealthCheckResponse_ServingStatus {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	resp, err := c.Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}
	return resp.GetStatus()
}

func TestHealth_ServingWhileDatabaseAnswers(t *testing.T) {
	t.Parallel()

	db := &fakePinger{}
	c := startBufconn(t, NewGRPCServer("", nopLogger{}, db, 5*time.Millisecond))

	if got := checkStatus(t, c); got != healthpb.HealthCheckResponse_SERVING {
		t.Fatalf("status = %v, want SERVING", got)
	}

	db.set(errors.New("connection refused"))
	deadline := time.Now().Add(2 * time.Second)
	for checkStatus(t, c) != healthpb.HealthCheckResponse_NOT_SERVING {
		if time.Now().After(deadline) {
			t.Fatal("status never became NOT_SERVING")
		}
		time.Sleep(5 * time.Millisecond)
	}

	db.set(nil)
	deadline = time.Now().Add(2 * time.Second)
	for checkStatus(t, c) != healthpb.HealthCheckResponse_SERVING {
		if time.Now().After(deadline) {
			t.Fatal("status never recovered")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHealth_UnknownService(t *testing.T) {
	t.Parallel()

	c := startBufconn(t, NewGRPCServer("", nopLogger{}, nil, 0))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := c.Check(ctx, &healthpb.HealthCheckRequest{Service: "other"}); err == nil {
		t.Fatal("expected NotFound for unknown service")
	}
}

func TestSetServing(t *testing.T) {
	t.Parallel()

	srv := NewGRPCServer("", nopLogger{}, nil, 0)
	srv.SetServing(false)

	resp, err := srv.health.Check(context.Background(), &healthpb.HealthCheckRequest{Service: ServiceName})
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}
	if resp.GetStatus() != healthpb.HealthCheckResponse_NOT_SERVING {
		t.Fatalf("status = %v", resp.GetStatus())
	}

	srv.SetServing(true)
	resp, _ = srv.health.Check(context.Background(), &healthpb.HealthCheckRequest{Service: ""})
	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		t.Fatalf("overall status = %v", resp.GetStatus())
	}
}
