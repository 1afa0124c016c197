// Package server initializes and runs the bill store: the REST API, the gRPC
// health endpoint, the PostgreSQL schema and the receipt bucket.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/billed/internal/logging"
	"github.com/dmitrijs2005/billed/internal/server/api"
	"github.com/dmitrijs2005/billed/internal/server/config"
	"github.com/dmitrijs2005/billed/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/billed/internal/server/services"
	"github.com/dmitrijs2005/billed/internal/server/storage"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	gs "github.com/dmitrijs2005/billed/internal/server/grpc"
)

// healthCheckInterval is how often the database is pinged for the health status.
const healthCheckInterval = 10 * time.Second

type App struct {
	config     *config.Config
	logger     logging.Logger
	db         *sql.DB
	httpServer *http.Server
	grpcServer *gs.GRPCServer
}

// NewApp connects to PostgreSQL, applies migrations, prepares object storage
// and wires the services into the HTTP and gRPC servers.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := repomanager.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	objects, err := storage.NewS3Storage(ctx, c)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("object storage init error: %w", err)
	}
	if err := objects.EnsureBucket(ctx); err != nil {
		logger.Warn(ctx, "receipt bucket unavailable", "bucket", c.S3Bucket, "error", err)
	}

	us := services.NewUserService(db, rm, c)
	bs := services.NewBillService(db, rm, objects, c, logger)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(db, "billed"),
	)

	gin.SetMode(gin.ReleaseMode)
	router := api.SetupRouter(api.Deps{
		Users:         us,
		Bills:         bs,
		Authenticator: us,
		Logger:        logger.With("module", "http_server"),
		Registry:      reg,
		MaxUploadSize: c.MaxUploadSize,
	})

	return &App{
		config: c,
		logger: logger,
		db:     db,
		httpServer: &http.Server{
			Addr:              c.EndpointAddrHTTP,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		grpcServer: gs.NewGRPCServer(c.EndpointAddrHealth, logger, db, healthCheckInterval),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.grpcServer.Run(ctx); err != nil {
		app.logger.Error(ctx, "gRPC server failed", "error", err)
		cancelFunc()
	}
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	app.logger.Info(ctx, "Starting HTTP server", "address", app.httpServer.Addr)
	if err := app.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, "HTTP server failed", "error", err)
		cancelFunc()
	}
}

// stopHTTPServer waits for ctx to end and drains in-flight requests for at
// most the configured shutdown timeout.
func (app *App) stopHTTPServer(ctx context.Context) {
	<-ctx.Done()
	app.logger.Info(ctx, "Stopping HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.ShutdownTimeout)
	defer cancel()
	if err := app.httpServer.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(ctx, "HTTP shutdown incomplete", "error", err)
	}
}

// Run serves until ctx is cancelled, a termination signal arrives or one of
// the servers fails, then shuts both down and closes the database.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(3)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.stopHTTPServer(ctx)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
