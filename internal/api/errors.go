package api

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/taskrank-api/internal/domain"
	"github.com/phrazzld/taskrank-api/internal/domain/priority"
	"github.com/phrazzld/taskrank-api/internal/service"
	"github.com/phrazzld/taskrank-api/internal/store"
)

// Client-facing messages shared by several handlers.
const (
	msgInvalidFormat  = "Invalid request format"
	msgExpectedList   = "Expected a list of tasks"
	msgEmptyTaskList  = "Task list cannot be empty"
	msgCircularDeps   = "Circular dependencies detected"
	msgTaskNotFound   = "Task not found"
	msgUnexpected     = "An unexpected error occurred"
	msgValidationFail = "Validation error"
)

// validationMessages maps domain field errors to client-safe messages.
var validationMessages = []struct {
	err     error
	message string
}{
	{domain.ErrTitleRequired, "Title is required"},
	{domain.ErrTitleTooLong, fmt.Sprintf("Title must be at most %d characters", domain.MaxTitleLength)},
	{domain.ErrDueDateFormat, "Due date must be in YYYY-MM-DD format"},
	{domain.ErrImportanceRange, "Importance must be between 1 and 10"},
	{domain.ErrNegativeHours, "Estimated hours cannot be negative"},
	{domain.ErrEmptyDependency, "Dependencies cannot contain empty references"},
}

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, service.ErrBatchTooLarge):
		return http.StatusRequestEntityTooLarge

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, service.ErrEmptyBatch),
		errors.Is(err, priority.ErrCircularDependency):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return msgUnexpected
	}

	for _, vm := range validationMessages {
		if errors.Is(err, vm.err) {
			return vm.message
		}
	}

	switch {
	case errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, store.ErrNotFound):
		return msgTaskNotFound

	case errors.Is(err, service.ErrEmptyBatch):
		return msgEmptyTaskList

	case errors.Is(err, service.ErrBatchTooLarge):
		return "Too many tasks in one request"

	case errors.Is(err, priority.ErrCircularDependency):
		return msgCircularDeps

	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid task ID"

	case errors.Is(err, domain.ErrValidation):
		return msgValidationFail

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	default:
		return msgUnexpected
	}
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message naming the first failing field.
func SanitizeValidationError(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return msgValidationFail
	}

	fe := fieldErrs[0]
	return fmt.Sprintf("Invalid %s: %s", fe.Field(), getValidationTagMessage(fe))
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required field"
	case "max":
		if fe.Kind() == reflect.String {
			return "too long"
		}
		return "must be at most " + fe.Param()
	case "min", "gte":
		if fe.Param() == "0" {
			return "cannot be negative"
		}
		return "must be at least " + fe.Param()
	case "datetime":
		return "must be in YYYY-MM-DD format"
	default:
		return "validation failed"
	}
}
