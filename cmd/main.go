package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alcaldia-cabimas/cabimas-web/internal/app"
	"github.com/alcaldia-cabimas/cabimas-web/pkg/logger"
	"go.uber.org/fx"
)

func main() {
	log := logger.New(logger.Opts{Env: os.Getenv("APP_ENV")})

	app := fx.New(
		fx.Logger(log),
		app.Module,
	)

	startCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		log.Error("Failed to start application", "error", err)
		os.Exit(1)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	stopCtx, cancelStop := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelStop()
	if err := app.Stop(stopCtx); err != nil {
		log.Error("Failed to stop application", "error", err)
		os.Exit(1)
	}
}
