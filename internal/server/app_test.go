package server

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/billed/internal/logging"
	"github.com/dmitrijs2005/billed/internal/server/config"
	"github.com/stretchr/testify/require"

	gs "github.com/dmitrijs2005/billed/internal/server/grpc"
)

func newTestApp(t *testing.T, httpAddr string) (*App, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.ShutdownTimeout = time.Second

	return &App{
		config:     cfg,
		logger:     logging.Discard(),
		db:         db,
		httpServer: &http.Server{Addr: httpAddr, Handler: http.NotFoundHandler()},
		grpcServer: gs.NewGRPCServer("127.0.0.1:0", logging.Discard(), nil, 0),
	}, mock
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	app, mock := newTestApp(t, "127.0.0.1:0")
	mock.ExpectClose()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop after cancel")
	}
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRun_StopsWhenHTTPServerFails(t *testing.T) {
	app, mock := newTestApp(t, "127.0.0.1:99999")
	mock.ExpectClose()

	done := make(chan struct{})
	go func() {
		app.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("app kept running after the HTTP server failed")
	}
	require.NoError(t, mock.ExpectationsWereMet())
}
