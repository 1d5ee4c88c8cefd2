package store

import (
	"context"

	"github.com/phrazzld/taskrank-api/internal/domain"
)

// TaskStore defines the interface for task persistence.
type TaskStore interface {
	// Create validates and saves a new task, assigning its ID.
	// Any ID already set on the task is ignored.
	// Returns ErrInvalidEntity wrapping the validation error if the task is invalid.
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)

	// GetByID retrieves a task by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id string) (*domain.Task, error)

	// List returns all stored tasks ordered by creation time, newest first.
	List(ctx context.Context) ([]*domain.Task, error)

	// Update replaces the stored task that has the same ID.
	// Returns ErrTaskNotFound if the task does not exist and
	// ErrInvalidEntity if the replacement is invalid.
	Update(ctx context.Context, task *domain.Task) (*domain.Task, error)

	// Delete removes a task by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id string) error
}
