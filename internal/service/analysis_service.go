package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskrank-api/internal/config"
	"github.com/phrazzld/taskrank-api/internal/domain"
	"github.com/phrazzld/taskrank-api/internal/domain/priority"
	"github.com/phrazzld/taskrank-api/internal/platform/logger"
	"github.com/phrazzld/taskrank-api/internal/store"
)

// RankedTask is one analyzed task together with its score.
type RankedTask struct {
	Task        domain.Task
	Score       float64
	Explanation string
	Breakdown   priority.Breakdown
}

// Analysis is the ranked outcome of one batch.
type Analysis struct {
	// Tasks are ordered by descending score.
	Tasks []RankedTask
	// Strategy is the strategy name as requested, or the configured default
	// when none was requested. Unknown names are echoed unchanged.
	Strategy   string
	TotalTasks int
}

// AnalysisService ranks batches of tasks.
type AnalysisService interface {
	// Analyze ranks tasks under the named strategy.
	// Returns ErrEmptyBatch, ErrBatchTooLarge, a domain validation error, or a
	// *priority.CycleError when the batch cannot be ranked.
	Analyze(ctx context.Context, tasks []domain.Task, strategy string) (*Analysis, error)

	// AnalyzeStored ranks every task held in the record store.
	AnalyzeStored(ctx context.Context, strategy string) (*Analysis, error)
}

// analysisServiceImpl implements the AnalysisService interface
type analysisServiceImpl struct {
	engine          *priority.Engine
	tasks           store.TaskStore
	defaultStrategy string
	maxBatchSize    int
	logger          *slog.Logger
}

// NewAnalysisService creates a new AnalysisService.
// It returns an error if the engine or the task store is nil.
func NewAnalysisService(
	engine *priority.Engine,
	tasks store.TaskStore,
	cfg config.ScoringConfig,
	logger *slog.Logger,
) (AnalysisService, error) {
	if engine == nil {
		return nil, fmt.Errorf("engine cannot be nil")
	}
	if tasks == nil {
		return nil, fmt.Errorf("tasks cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.DefaultStrategy == "" {
		cfg.DefaultStrategy = string(priority.DefaultStrategy)
	}

	return &analysisServiceImpl{
		engine:          engine,
		tasks:           tasks,
		defaultStrategy: cfg.DefaultStrategy,
		maxBatchSize:    cfg.MaxBatchSize,
		logger:          logger.With(slog.String("component", "analysis_service")),
	}, nil
}

// Analyze implements AnalysisService.Analyze
func (s *analysisServiceImpl) Analyze(
	ctx context.Context,
	tasks []domain.Task,
	strategy string,
) (*Analysis, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(tasks) == 0 {
		return nil, ErrEmptyBatch
	}
	if s.maxBatchSize > 0 && len(tasks) > s.maxBatchSize {
		return nil, fmt.Errorf("%w: %d tasks submitted, limit is %d",
			ErrBatchTooLarge, len(tasks), s.maxBatchSize)
	}

	batch := make([]domain.Task, len(tasks))
	for i := range tasks {
		batch[i] = *tasks[i].Clone()
	}
	domain.AssignFallbackIDs(batch)
	for i := range batch {
		if err := batch[i].Validate(); err != nil {
			return nil, fmt.Errorf("task %d: %w", i+1, err)
		}
	}

	if strategy == "" {
		strategy = s.defaultStrategy
	}
	resolved, weights := priority.ResolveStrategy(strategy)
	if string(resolved) != strategy {
		log.Debug("unknown strategy, using fallback weights",
			slog.String("requested", strategy),
			slog.String("resolved", string(resolved)))
	}

	results, err := s.engine.Analyze(ctx, batch, weights)
	if err != nil {
		log.Debug("analysis rejected",
			slog.Int("task_count", len(batch)),
			slog.String("error", err.Error()))
		return nil, err
	}

	ranked := make([]RankedTask, len(results))
	for i, r := range results {
		ranked[i] = RankedTask{
			Task:        batch[r.Index],
			Score:       r.Score,
			Explanation: r.Explanation,
			Breakdown:   r.Breakdown,
		}
	}

	log.Info("tasks analyzed",
		slog.Int("task_count", len(ranked)),
		slog.String("strategy", string(resolved)))

	return &Analysis{
		Tasks:      ranked,
		Strategy:   strategy,
		TotalTasks: len(ranked),
	}, nil
}

// AnalyzeStored implements AnalysisService.AnalyzeStored.
// An empty store yields an empty analysis rather than ErrEmptyBatch.
func (s *analysisServiceImpl) AnalyzeStored(ctx context.Context, strategy string) (*Analysis, error) {
	stored, err := s.tasks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list stored tasks: %w", err)
	}

	if len(stored) == 0 {
		if strategy == "" {
			strategy = s.defaultStrategy
		}
		return &Analysis{Tasks: []RankedTask{}, Strategy: strategy}, nil
	}

	tasks := make([]domain.Task, len(stored))
	for i, t := range stored {
		tasks[i] = *t
	}
	return s.Analyze(ctx, tasks, strategy)
}
