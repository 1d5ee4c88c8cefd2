// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// Field-specific errors below wrap it.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when a task identifier cannot be decoded.
	ErrInvalidID = errors.New("invalid ID")
)

// Task-specific validation errors
var (
	// ErrTitleRequired is returned when a task has an empty title.
	ErrTitleRequired = fmt.Errorf("%w: title is required", ErrValidation)

	// ErrTitleTooLong is returned when a task title exceeds MaxTitleLength.
	ErrTitleTooLong = fmt.Errorf("%w: title is too long", ErrValidation)

	// ErrDueDateFormat is returned when a due date is not in YYYY-MM-DD form.
	ErrDueDateFormat = fmt.Errorf("%w: due date must be in YYYY-MM-DD format", ErrValidation)

	// ErrImportanceRange is returned when importance is outside 1..10.
	ErrImportanceRange = fmt.Errorf("%w: importance must be between 1 and 10", ErrValidation)

	// ErrNegativeHours is returned when estimated hours is negative.
	ErrNegativeHours = fmt.Errorf("%w: estimated hours cannot be negative", ErrValidation)

	// ErrEmptyDependency is returned when a dependency reference is blank.
	ErrEmptyDependency = fmt.Errorf("%w: dependency reference cannot be empty", ErrValidation)
)
