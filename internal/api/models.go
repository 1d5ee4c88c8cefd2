package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/phrazzld/taskrank-api/internal/domain"
	"github.com/phrazzld/taskrank-api/internal/domain/priority"
	"github.com/phrazzld/taskrank-api/internal/service"
)

// TaskRequest is a task as submitted by clients, both for storage and as an
// element of an analysis batch. IDs and dependencies may be integers or strings.
type TaskRequest struct {
	ID             domain.TaskRef   `json:"id"`
	Title          string           `json:"title"           validate:"required,max=200"`
	DueDate        string           `json:"due_date"        validate:"omitempty,datetime=2006-01-02"`
	EstimatedHours *float64         `json:"estimated_hours" validate:"omitempty,gte=0"`
	Importance     *int             `json:"importance"      validate:"omitempty,min=1,max=10"`
	Dependencies   []domain.TaskRef `json:"dependencies"    validate:"omitempty,dive,required"`
}

// nonNullFields may be omitted from a task but not sent as null.
var nonNullFields = []string{"estimated_hours", "importance", "dependencies"}

// NullFieldError reports an optional field that was sent as an explicit null.
type NullFieldError struct {
	Field string
}

func (e *NullFieldError) Error() string {
	return fmt.Sprintf("Invalid %s: cannot be null", e.Field)
}

// UnmarshalJSON rejects explicit nulls for fields that only have defaults
// when omitted.
func (r *TaskRequest) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	for _, name := range nonNullFields {
		if raw, ok := fields[name]; ok && bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return &NullFieldError{Field: name}
		}
	}

	type plain TaskRequest
	return json.Unmarshal(data, (*plain)(r))
}

// toTask applies defaults for omitted fields.
func (r *TaskRequest) toTask() domain.Task {
	task := domain.Task{
		ID:           r.ID.String(),
		Title:        r.Title,
		DueDate:      r.DueDate,
		Importance:   domain.DefaultImportance,
		Dependencies: domain.RefsToStrings(r.Dependencies),
	}
	if r.EstimatedHours != nil {
		task.EstimatedHours = *r.EstimatedHours
	}
	if r.Importance != nil {
		task.Importance = *r.Importance
	}
	return task
}

// toUpdate leaves omitted optional fields nil so the stored values survive.
func (r *TaskRequest) toUpdate() service.TaskUpdate {
	update := service.TaskUpdate{
		Title:          r.Title,
		DueDate:        r.DueDate,
		EstimatedHours: r.EstimatedHours,
		Importance:     r.Importance,
	}
	if r.Dependencies != nil {
		update.Dependencies = domain.RefsToStrings(r.Dependencies)
	}
	return update
}

// TaskResponse represents a stored task.
type TaskResponse struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	DueDate        *string   `json:"due_date"`
	EstimatedHours float64   `json:"estimated_hours"`
	Importance     int       `json:"importance"`
	Dependencies   []string  `json:"dependencies"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// AnalyzedTaskResponse represents one ranked task in an analysis.
type AnalyzedTaskResponse struct {
	ID             string             `json:"id"`
	Title          string             `json:"title"`
	DueDate        *string            `json:"due_date"`
	EstimatedHours float64            `json:"estimated_hours"`
	Importance     int                `json:"importance"`
	Dependencies   []string           `json:"dependencies"`
	PriorityScore  float64            `json:"priority_score"`
	Explanation    string             `json:"explanation"`
	ScoreBreakdown priority.Breakdown `json:"score_breakdown"`
}

// AnalysisResponse is the body of a successful analysis.
type AnalysisResponse struct {
	Tasks      []AnalyzedTaskResponse `json:"tasks"`
	Strategy   string                 `json:"strategy"`
	TotalTasks int                    `json:"total_tasks"`
}

// CycleErrorResponse is returned when an analysis batch contains dependency cycles.
type CycleErrorResponse struct {
	Error   string     `json:"error"`
	Cycles  [][]string `json:"cycles"`
	TraceID string     `json:"trace_id,omitempty"`
}

// StrategyResponse describes one strategy profile.
type StrategyResponse struct {
	Name    string           `json:"name"`
	Weights priority.Weights `json:"weights"`
	Default bool             `json:"default"`
}

func optionalDate(date string) *string {
	if date == "" {
		return nil
	}
	return &date
}

func dependenciesOrEmpty(deps []string) []string {
	if deps == nil {
		return []string{}
	}
	return deps
}

func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:             task.ID,
		Title:          task.Title,
		DueDate:        optionalDate(task.DueDate),
		EstimatedHours: task.EstimatedHours,
		Importance:     task.Importance,
		Dependencies:   dependenciesOrEmpty(task.Dependencies),
		CreatedAt:      task.CreatedAt,
		UpdatedAt:      task.UpdatedAt,
	}
}

func analysisToResponse(analysis *service.Analysis) AnalysisResponse {
	tasks := make([]AnalyzedTaskResponse, len(analysis.Tasks))
	for i, ranked := range analysis.Tasks {
		tasks[i] = AnalyzedTaskResponse{
			ID:             ranked.Task.ID,
			Title:          ranked.Task.Title,
			DueDate:        optionalDate(ranked.Task.DueDate),
			EstimatedHours: ranked.Task.EstimatedHours,
			Importance:     ranked.Task.Importance,
			Dependencies:   dependenciesOrEmpty(ranked.Task.Dependencies),
			PriorityScore:  ranked.Score,
			Explanation:    ranked.Explanation,
			ScoreBreakdown: ranked.Breakdown,
		}
	}
	return AnalysisResponse{
		Tasks:      tasks,
		Strategy:   analysis.Strategy,
		TotalTasks: analysis.TotalTasks,
	}
}
