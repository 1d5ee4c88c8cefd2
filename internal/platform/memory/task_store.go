package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"sync"

	"github.com/phrazzld/taskrank-api/internal/domain"
	"github.com/phrazzld/taskrank-api/internal/platform/logger"
	"github.com/phrazzld/taskrank-api/internal/store"
)

type record struct {
	seq  int64
	task *domain.Task
}

// TaskStore implements the store.TaskStore interface with an in-memory map.
// IDs are assigned sequentially starting at "1" and are never reused.
type TaskStore struct {
	mu      sync.RWMutex
	records map[string]record
	nextSeq int64
	logger  *slog.Logger
}

// NewTaskStore creates an empty in-memory task store.
// If logger is nil, a default logger will be used.
func NewTaskStore(logger *slog.Logger) *TaskStore {
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskStore{
		records: make(map[string]record),
		logger:  logger.With(slog.String("component", "task_store")),
	}
}

// Ensure TaskStore implements store.TaskStore interface
var _ store.TaskStore = (*TaskStore)(nil)

// Create implements store.TaskStore.Create.
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()))
		return nil, invalidTask("create", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSeq++
	stored := task.Clone()
	stored.ID = strconv.FormatInt(s.nextSeq, 10)
	s.records[stored.ID] = record{seq: s.nextSeq, task: stored}

	log.Debug("task created", slog.String("task_id", stored.ID))
	return stored.Clone(), nil
}

// GetByID implements store.TaskStore.GetByID.
func (s *TaskStore) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		logger.FromContextOrDefault(ctx, s.logger).Debug("task not found",
			slog.String("task_id", id))
		return nil, taskNotFound("get", id)
	}
	return rec.task.Clone(), nil
}

// List implements store.TaskStore.List.
// Tasks created at the same instant are ordered by descending ID sequence.
func (s *TaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	s.mu.RLock()
	recs := make([]record, 0, len(s.records))
	for _, rec := range s.records {
		recs = append(recs, rec)
	}
	s.mu.RUnlock()

	sort.Slice(recs, func(i, j int) bool {
		a, b := recs[i].task.CreatedAt, recs[j].task.CreatedAt
		if !a.Equal(b) {
			return a.After(b)
		}
		return recs[i].seq > recs[j].seq
	})

	tasks := make([]*domain.Task, len(recs))
	for i, rec := range recs {
		tasks[i] = rec.task.Clone()
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("listed tasks",
		slog.Int("count", len(tasks)))
	return tasks, nil
}

// Update implements store.TaskStore.Update.
func (s *TaskStore) Update(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during update",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID))
		return nil, invalidTask("update", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[task.ID]
	if !ok {
		return nil, taskNotFound("update", task.ID)
	}
	rec.task = task.Clone()
	s.records[task.ID] = rec

	log.Debug("task updated", slog.String("task_id", task.ID))
	return rec.task.Clone(), nil
}

// Delete implements store.TaskStore.Delete.
func (s *TaskStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return taskNotFound("delete", id)
	}
	delete(s.records, id)

	logger.FromContextOrDefault(ctx, s.logger).Debug("task deleted",
		slog.String("task_id", id))
	return nil
}

func taskNotFound(op, id string) error {
	return store.NewStoreError("task", op, fmt.Sprintf("no task with id %q", id), store.ErrTaskNotFound)
}

func invalidTask(op string, err error) error {
	return store.NewStoreError("task", op, "validation failed",
		fmt.Errorf("%w: %w", store.ErrInvalidEntity, err))
}
