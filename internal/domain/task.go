package domain

import (
	"strconv"
	"strings"
	"time"
)

// DateLayout is the calendar date format used for task due dates.
const DateLayout = "2006-01-02"

const (
	// MaxTitleLength is the longest title a task may carry.
	MaxTitleLength = 200

	// MinImportance and MaxImportance bound the importance scale.
	MinImportance = 1
	MaxImportance = 10

	// DefaultImportance is applied when a task is submitted without one.
	DefaultImportance = 5
)

// Task is a unit of work to be prioritized.
//
// The prioritization engine only reads ID, DueDate, EstimatedHours, Importance
// and Dependencies. CreatedAt and UpdatedAt belong to the record store and are
// zero for tasks that were never stored.
type Task struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	DueDate        string    `json:"due_date,omitempty"`
	EstimatedHours float64   `json:"estimated_hours"`
	Importance     int       `json:"importance"`
	Dependencies   []string  `json:"dependencies"`
	CreatedAt      time.Time `json:"created_at,omitempty"`
	UpdatedAt      time.Time `json:"updated_at,omitempty"`
}

// NewTask creates a Task with default importance and no dependencies.
// Returns an error if validation fails.
func NewTask(title string) (*Task, error) {
	task := &Task{
		Title:        title,
		Importance:   DefaultImportance,
		Dependencies: []string{},
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns the first field error found; every returned error wraps ErrValidation.
func (t *Task) Validate() error {
	title := strings.TrimSpace(t.Title)
	if title == "" {
		return ErrTitleRequired
	}
	if len([]rune(t.Title)) > MaxTitleLength {
		return ErrTitleTooLong
	}

	if t.DueDate != "" {
		if _, err := ParseDate(t.DueDate); err != nil {
			return ErrDueDateFormat
		}
	}

	if t.Importance < MinImportance || t.Importance > MaxImportance {
		return ErrImportanceRange
	}

	if t.EstimatedHours < 0 {
		return ErrNegativeHours
	}

	for _, dep := range t.Dependencies {
		if strings.TrimSpace(dep) == "" {
			return ErrEmptyDependency
		}
	}

	return nil
}

// HasDueDate reports whether the task carries a deadline.
func (t *Task) HasDueDate() bool {
	return t.DueDate != ""
}

// IsOverdue reports whether the task's due date is strictly before the
// calendar day of now. Tasks without a parseable due date are never overdue.
func (t *Task) IsOverdue(now time.Time) bool {
	due, err := ParseDate(t.DueDate)
	if err != nil {
		return false
	}
	return due.Before(Today(now))
}

// Clone returns a deep copy of the task so callers can hand out records
// without sharing the dependency slice.
func (t *Task) Clone() *Task {
	c := *t
	c.Dependencies = append([]string{}, t.Dependencies...)
	return &c
}

// ParseDate parses a YYYY-MM-DD calendar date as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// Today truncates t to its calendar day, expressed as midnight UTC so that it
// compares directly with dates returned by ParseDate.
func Today(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AssignFallbackIDs gives each task without an ID its 1-based position in
// tasks. Dependency lists in an unnumbered batch refer to tasks this way, so
// the IDs must be in place before cycle detection or scoring.
func AssignFallbackIDs(tasks []Task) {
	for i := range tasks {
		if tasks[i].ID == "" {
			tasks[i].ID = strconv.Itoa(i + 1)
		}
	}
}
