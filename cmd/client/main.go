package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/billed/internal/client/cli"
	"github.com/dmitrijs2005/billed/internal/client/config"
	"github.com/dmitrijs2005/billed/internal/logging"
)

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	logger := logging.NewConsoleLogger(os.Stderr)

	app, closeFn, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}
	defer closeFn()

	app.Run(ctx)

}
