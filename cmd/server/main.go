// Package main implements the entry point for the task prioritization API
// server, which stores tasks and ranks batches of them by urgency,
// importance, effort and dependency pressure.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/taskrank-api/internal/config"
	"github.com/phrazzld/taskrank-api/internal/platform/logger"
)

// main is the entry point for the taskrank-api server.
// It loads configuration, sets up logging, wires the application and serves
// HTTP until SIGINT or SIGTERM.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// run holds the body of main so that failures unwind deferred calls.
func run(ctx context.Context) error {
	cfg, err := initializeApp()
	if err != nil {
		return err
	}

	app, err := newApplication(cfg, slog.Default())
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}

// initializeApp loads configuration and sets up logging.
// Returns the loaded config and any initialization error.
func initializeApp() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if _, err := logger.Setup(cfg.Server); err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"default_strategy", cfg.Scoring.DefaultStrategy,
		"max_batch_size", cfg.Scoring.MaxBatchSize,
		"workers", cfg.Scoring.Workers)

	if path := os.Getenv(config.ConfigFileEnv); path != "" {
		slog.Debug("Configuration file in use", "path", path)
	}

	return cfg, nil
}
