package priority

import (
	"context"
	"errors"
	"runtime"
	"sort"
	"time"

	"github.com/phrazzld/taskrank-api/internal/domain"
	"golang.org/x/sync/errgroup"
)

// ErrEmptyBatch is returned when Analyze is called without any tasks.
var ErrEmptyBatch = errors.New("task batch cannot be empty")

// Engine scores batches of tasks. It holds only configuration; every call
// works on its own batch and an Engine is safe for concurrent use.
type Engine struct {
	now     func() time.Time
	workers int
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the function used to obtain "today".
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithWorkers bounds the number of goroutines used to score one batch.
// Values below 1 are ignored.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// NewEngine creates an Engine using the wall clock and one worker per CPU
// unless overridden.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		now:     time.Now,
		workers: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Today returns the engine's current reference date.
func (e *Engine) Today() time.Time {
	return domain.Today(e.now())
}

// ScoreTask scores one task against the batch it belongs to.
func (e *Engine) ScoreTask(task domain.Task, batch *Batch, w Weights) Result {
	return Score(task, batch, w, e.Today())
}

// Analyze validates the batch, scores every task and returns the results
// ordered by descending score. Ties keep their input order.
//
// The batch is all-or-nothing: invalid weights are rejected with
// ErrInvalidWeights, and if the dependency graph has any cycle a
// *CycleError is returned and no task is scored. The reference date is read
// once so every task in a batch is scored against the same day.
func (e *Engine) Analyze(ctx context.Context, tasks []domain.Task, w Weights) ([]Result, error) {
	if len(tasks) == 0 {
		return nil, ErrEmptyBatch
	}

	if err := w.Validate(); err != nil {
		return nil, err
	}

	if err := ValidateAcyclic(tasks); err != nil {
		return nil, err
	}

	batch := NewBatch(tasks)
	today := e.Today()
	results := make([]Result, len(tasks))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i := range tasks {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r := Score(tasks[i], batch, w, today)
			r.Index = i
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Score > results[b].Score
	})
	return results, nil
}
