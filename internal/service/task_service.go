package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/phrazzld/taskrank-api/internal/domain"
	"github.com/phrazzld/taskrank-api/internal/platform/logger"
	"github.com/phrazzld/taskrank-api/internal/store"
)

// TaskUpdate carries a full replacement of a stored task's editable fields.
// Title and DueDate are always replaced (an empty DueDate clears it); nil
// EstimatedHours, Importance or Dependencies keep the stored value.
type TaskUpdate struct {
	Title          string
	DueDate        string
	EstimatedHours *float64
	Importance     *int
	Dependencies   []string
}

// TaskService provides task record operations
type TaskService interface {
	// List returns every stored task, newest first.
	List(ctx context.Context) ([]*domain.Task, error)

	// Get retrieves a task by its ID.
	Get(ctx context.Context, id string) (*domain.Task, error)

	// Create validates and stores a new task, stamping its timestamps.
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)

	// Update applies update to the stored task with the given ID.
	Update(ctx context.Context, id string, update TaskUpdate) (*domain.Task, error)

	// Delete removes a task by its ID.
	Delete(ctx context.Context, id string) error
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	tasks  store.TaskStore
	now    func() time.Time
	logger *slog.Logger
}

// NewTaskService creates a new TaskService.
// A nil clock defaults to time.Now; a nil logger to slog.Default().
// It returns an error if the task store is nil.
func NewTaskService(
	tasks store.TaskStore,
	clock func() time.Time,
	logger *slog.Logger,
) (TaskService, error) {
	if tasks == nil {
		return nil, &TaskServiceError{
			Operation: "create_service",
			Message:   "tasks cannot be nil",
		}
	}
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		tasks:  tasks,
		now:    clock,
		logger: logger.With(slog.String("component", "task_service")),
	}, nil
}

// List implements TaskService.List
func (s *taskServiceImpl) List(ctx context.Context) ([]*domain.Task, error) {
	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return nil, NewTaskServiceError("list_tasks", "failed to list tasks", err)
	}
	return tasks, nil
}

// Get implements TaskService.Get
func (s *taskServiceImpl) Get(ctx context.Context, id string) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, NewTaskServiceError("get_task", "failed to retrieve task", err)
	}
	return task, nil
}

// Create implements TaskService.Create
func (s *taskServiceImpl) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	record := task.Clone()
	if record.Dependencies == nil {
		record.Dependencies = []string{}
	}
	now := s.now().UTC()
	record.CreatedAt = now
	record.UpdatedAt = now

	if err := record.Validate(); err != nil {
		log.Debug("rejecting invalid task", slog.String("error", err.Error()))
		return nil, err
	}

	created, err := s.tasks.Create(ctx, record)
	if err != nil {
		log.Error("failed to create task", slog.String("error", err.Error()))
		return nil, NewTaskServiceError("create_task", "failed to save task", err)
	}

	log.Info("task created", slog.String("task_id", created.ID))
	return created, nil
}

// Update implements TaskService.Update
func (s *taskServiceImpl) Update(
	ctx context.Context,
	id string,
	update TaskUpdate,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, NewTaskServiceError("update_task", "failed to retrieve task", err)
	}

	task.Title = update.Title
	task.DueDate = update.DueDate
	if update.EstimatedHours != nil {
		task.EstimatedHours = *update.EstimatedHours
	}
	if update.Importance != nil {
		task.Importance = *update.Importance
	}
	if update.Dependencies != nil {
		task.Dependencies = append([]string{}, update.Dependencies...)
	}
	task.UpdatedAt = s.now().UTC()

	if err := task.Validate(); err != nil {
		log.Debug("rejecting invalid task update",
			slog.String("task_id", id),
			slog.String("error", err.Error()))
		return nil, err
	}

	updated, err := s.tasks.Update(ctx, task)
	if err != nil {
		return nil, NewTaskServiceError("update_task", "failed to save task", err)
	}

	log.Info("task updated", slog.String("task_id", id))
	return updated, nil
}

// Delete implements TaskService.Delete
func (s *taskServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.tasks.Delete(ctx, id); err != nil {
		return NewTaskServiceError("delete_task", "failed to delete task", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("task deleted", slog.String("task_id", id))
	return nil
}
