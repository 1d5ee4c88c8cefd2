package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskrank-api/internal/config"
	"github.com/phrazzld/taskrank-api/internal/domain/priority"
	"github.com/phrazzld/taskrank-api/internal/platform/memory"
	"github.com/phrazzld/taskrank-api/internal/service"
	"github.com/phrazzld/taskrank-api/internal/store"
)

// application holds all the shared application dependencies.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	engine *priority.Engine

	// Stores (using interfaces for proper abstraction)
	taskStore store.TaskStore

	// Service interfaces
	taskService     service.TaskService
	analysisService service.AnalysisService
}

// appOption customizes application wiring, mainly for tests.
type appOption func(*appOptions)

type appOptions struct {
	engineOpts []priority.Option
}

// withEngineOptions passes extra options to the prioritization engine.
func withEngineOptions(opts ...priority.Option) appOption {
	return func(o *appOptions) {
		o.engineOpts = append(o.engineOpts, opts...)
	}
}

// newApplication creates a new application instance with all dependencies initialized.
func newApplication(cfg *config.Config, logger *slog.Logger, opts ...appOption) (*application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	var o appOptions
	for _, opt := range opts {
		opt(&o)
	}

	app := &application{
		config: cfg,
		logger: logger,
	}

	engineOpts := append([]priority.Option{priority.WithWorkers(cfg.Scoring.Workers)}, o.engineOpts...)
	app.engine = priority.NewEngine(engineOpts...)

	app.taskStore = memory.NewTaskStore(logger)

	var err error
	app.taskService, err = service.NewTaskService(app.taskStore, nil, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize task service: %w", err)
	}

	app.analysisService, err = service.NewAnalysisService(app.engine, app.taskStore, cfg.Scoring, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize analysis service: %w", err)
	}

	logger.Info("application initialized",
		"default_strategy", cfg.Scoring.DefaultStrategy,
		"workers", cfg.Scoring.Workers)

	return app, nil
}

// Run serves HTTP until ctx is canceled.
func (app *application) Run(ctx context.Context) error {
	return app.startHTTPServer(ctx, app.setupRouter())
}
