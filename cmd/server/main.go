package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"album-studio/internal/config"
	"album-studio/internal/logger"
	"album-studio/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger.InitLogger(logger.ParseLevel(cfg.LogLevel), os.Stderr)

	app, err := server.NewApp(cfg)
	if err != nil {
		logger.Errorf("init: %v", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}
