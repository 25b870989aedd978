package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pageza/pantry-chef/config"
	"github.com/pageza/pantry-chef/internal/logger"
	"github.com/pageza/pantry-chef/internal/server"
	"github.com/pageza/pantry-chef/internal/tracer"
)

func main() {
	if err := run(); err != nil {
		logger.L().Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	logger.Init(cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := tracer.Init(ctx, cfg.Tracing)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			logger.L().Warn("tracer shutdown failed", "error", err)
		}
	}()

	return server.New(ctx, cfg).Run(ctx)
}
