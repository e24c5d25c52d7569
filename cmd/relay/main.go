package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/relay/app"
	"github.com/dmitrymomot/relay/core/config"
	"github.com/dmitrymomot/relay/core/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg app.Config
	config.MustLoad(&cfg) // panic on error

	log := logger.New(
		logger.WithEnvironment(cfg.AppName, cfg.Env),
		logger.WithLevelString(cfg.LogLevel),
	)

	a, err := app.New(ctx, cfg, app.WithLogger(log))
	if err != nil {
		log.Error("Failed to initialize application", logger.Component("app"), logger.Error(err))
		os.Exit(1)
	}

	if err := a.Run(ctx); err != nil {
		log.Error("Failed to run server", logger.Component("server"), logger.Error(err))
		os.Exit(1)
	}

	log.Info("Application stopped")
}
