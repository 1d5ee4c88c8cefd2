package store

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
		{
			name:     "generic error",
			err:      errors.New("some error"),
			expected: false,
		},
		{
			name:     "ErrNotFound",
			err:      ErrNotFound,
			expected: true,
		},
		{
			name:     "wrapped ErrNotFound",
			err:      fmt.Errorf("failed to do something: %w", ErrNotFound),
			expected: true,
		},
		{
			name:     "ErrTaskNotFound",
			err:      ErrTaskNotFound,
			expected: true,
		},
		{
			name:     "StoreError wrapping ErrTaskNotFound",
			err:      NewStoreError("task", "get", "lookup failed", ErrTaskNotFound),
			expected: true,
		},
		{
			name:     "ErrInvalidEntity",
			err:      ErrInvalidEntity,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNotFoundError(tt.err); got != tt.expected {
				t.Errorf("IsNotFoundError() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestStoreError(t *testing.T) {
	withCause := NewStoreError("task", "update", "invalid replacement", ErrInvalidEntity)
	want := "update operation on task failed: invalid replacement: invalid entity"
	if withCause.Error() != want {
		t.Errorf("Error() = %q, want %q", withCause.Error(), want)
	}
	if !errors.Is(withCause, ErrInvalidEntity) {
		t.Error("expected StoreError to unwrap to ErrInvalidEntity")
	}

	bare := NewStoreError("task", "delete", "refused", nil)
	if bare.Error() != "delete operation on task failed: refused" {
		t.Errorf("unexpected message: %q", bare.Error())
	}
	if bare.Unwrap() != nil {
		t.Error("expected nil Unwrap without cause")
	}
}
