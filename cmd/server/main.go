package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mcoot/edgepuzzle/internal/api"
	"github.com/mcoot/edgepuzzle/internal/factory"
)

// Interval between sweeps for event hubs nobody is watching
const hubCleanupInterval = 5 * time.Minute

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	level, err := factory.ParseLogLevel(os.Getenv(factory.EnvLogLevel))
	if err != nil {
		return err
	}

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	cfg, err := factory.ConfigFromEnv(os.Getenv, logger)
	if err != nil {
		return err
	}
	port, err := factory.PortFromEnv(os.Getenv, api.DefaultServerConfig().Port)
	if err != nil {
		return err
	}

	app, err := factory.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warn("close failed", slog.String("error", err.Error()))
		}
	}()

	router := api.NewRouter(api.RouterConfig{
		Logger:           logger,
		PuzzleController: app.PuzzleController,
		HubManager:       app.HubManager,
	})

	serverConfig := api.DefaultServerConfig()
	serverConfig.Port = port
	server := api.NewServer(router, serverConfig, logger)
	// Open event streams would otherwise hold shutdown until its timeout
	server.RegisterOnShutdown(app.HubManager.Close)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go app.HubManager.RunCleanup(ctx, hubCleanupInterval)

	logger.Info("server starting",
		slog.String("addr", server.Addr()),
		slog.String("storage", storageName(cfg.StorageType)),
	)
	if err := server.Run(ctx); err != nil {
		return err
	}

	logger.Info("server stopped")
	return nil
}

func storageName(t string) string {
	if t == "" {
		return factory.StorageTypeMemory
	}
	return t
}
