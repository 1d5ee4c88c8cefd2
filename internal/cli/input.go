package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/phrazzld/taskrank-api/internal/domain"
	"gopkg.in/yaml.v3"
)

// taskRecord is one entry of a task file. IDs and dependencies may be
// integers or strings.
type taskRecord struct {
	ID             domain.TaskRef   `json:"id"              yaml:"id"`
	Title          string           `json:"title"           yaml:"title"`
	DueDate        string           `json:"due_date"        yaml:"due_date"`
	EstimatedHours *float64         `json:"estimated_hours" yaml:"estimated_hours"`
	Importance     *int             `json:"importance"      yaml:"importance"`
	Dependencies   []domain.TaskRef `json:"dependencies"    yaml:"dependencies"`
}

func (r taskRecord) toTask() domain.Task {
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

// loadTasks reads a task list from path, or from stdin when path is "-".
// Files ending in .json are decoded as JSON; everything else as YAML.
func loadTasks(path string, stdin io.Reader) ([]domain.Task, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading tasks: %w", err)
	}

	var records []taskRecord
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &records)
	} else {
		err = yaml.Unmarshal(data, &records)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing tasks from %s: %w", path, err)
	}

	tasks := make([]domain.Task, len(records))
	for i, r := range records {
		tasks[i] = r.toTask()
	}
	return tasks, nil
}
