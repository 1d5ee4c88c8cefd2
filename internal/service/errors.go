package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/taskrank-api/internal/domain/priority"
	"github.com/phrazzld/taskrank-api/internal/store"
)

// Common service errors. Callers check for these with errors.Is().
var (
	// ErrTaskNotFound indicates that the requested task does not exist.
	// API layer should map this to HTTP 404 Not Found.
	ErrTaskNotFound = errors.New("task not found")

	// ErrEmptyBatch indicates an analysis request without tasks.
	// It is the engine's sentinel so either package can be matched.
	ErrEmptyBatch = priority.ErrEmptyBatch

	// ErrBatchTooLarge indicates an analysis request larger than the
	// configured maximum batch size.
	ErrBatchTooLarge = errors.New("task batch exceeds maximum size")
)

// TaskServiceError wraps errors from the task service with context.
type TaskServiceError struct {
	// Operation is the operation that failed (e.g., "create_task", "list_tasks")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for TaskServiceError.
func (e *TaskServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("task service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("task service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *TaskServiceError) Unwrap() error {
	return e.Err
}

// NewTaskServiceError creates a new TaskServiceError.
// Store-level "not found" errors are mapped to ErrTaskNotFound and returned
// directly without wrapping.
func NewTaskServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrTaskNotFound) || store.IsNotFoundError(err) {
		return ErrTaskNotFound
	}

	return &TaskServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
