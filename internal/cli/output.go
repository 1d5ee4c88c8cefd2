package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/phrazzld/taskrank-api/internal/domain/priority"
	"github.com/phrazzld/taskrank-api/internal/service"
)

const (
	outputTable = "table"
	outputJSON  = "json"
)

var headerStyle = lipgloss.NewStyle().Bold(true)

// renderTable lays rows out in left-aligned columns sized to their widest
// cell. The first row is the header.
func renderTable(w io.Writer, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	for r, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			style := lipgloss.NewStyle()
			if r == 0 {
				style = headerStyle
			}
			if i < len(row)-1 {
				style = style.Width(widths[i] + 2)
			}
			cells[i] = style.Render(cell)
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, ""), " ")); err != nil {
			return err
		}
	}
	return nil
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

func writeAnalysisTable(w io.Writer, analysis *service.Analysis) error {
	rows := [][]string{{"RANK", "ID", "SCORE", "TITLE", "EXPLANATION"}}
	for i, t := range analysis.Tasks {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			t.Task.ID,
			formatScore(t.Score),
			t.Task.Title,
			t.Explanation,
		})
	}
	if _, err := fmt.Fprintf(w, "strategy: %s, tasks: %d\n", analysis.Strategy, analysis.TotalTasks); err != nil {
		return err
	}
	return renderTable(w, rows)
}

// rankedTaskJSON mirrors the HTTP analysis response entries.
type rankedTaskJSON struct {
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

type analysisJSON struct {
	Tasks      []rankedTaskJSON `json:"tasks"`
	Strategy   string           `json:"strategy"`
	TotalTasks int              `json:"total_tasks"`
}

func writeAnalysisJSON(w io.Writer, analysis *service.Analysis) error {
	out := analysisJSON{
		Tasks:      make([]rankedTaskJSON, len(analysis.Tasks)),
		Strategy:   analysis.Strategy,
		TotalTasks: analysis.TotalTasks,
	}
	for i, t := range analysis.Tasks {
		var due *string
		if t.Task.DueDate != "" {
			d := t.Task.DueDate
			due = &d
		}
		deps := t.Task.Dependencies
		if deps == nil {
			deps = []string{}
		}
		out.Tasks[i] = rankedTaskJSON{
			ID:             t.Task.ID,
			Title:          t.Task.Title,
			DueDate:        due,
			EstimatedHours: t.Task.EstimatedHours,
			Importance:     t.Task.Importance,
			Dependencies:   deps,
			PriorityScore:  t.Score,
			Explanation:    t.Explanation,
			ScoreBreakdown: t.Breakdown,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func writeStrategies(w io.Writer, defaultStrategy string) error {
	rows := [][]string{{"STRATEGY", "URGENCY", "IMPORTANCE", "EFFORT", "DEPENDENCIES", "DEFAULT"}}
	for _, p := range priority.Strategies() {
		isDefault := ""
		if string(p.Name) == defaultStrategy {
			isDefault = "*"
		}
		rows = append(rows, []string{
			string(p.Name),
			formatWeight(p.Weights.Urgency),
			formatWeight(p.Weights.Importance),
			formatWeight(p.Weights.Effort),
			formatWeight(p.Weights.Dependencies),
			isDefault,
		})
	}
	return renderTable(w, rows)
}

func formatWeight(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func writeCycles(w io.Writer, cycles [][]string) error {
	if len(cycles) == 0 {
		_, err := fmt.Fprintln(w, "no circular dependencies")
		return err
	}
	for _, cycle := range cycles {
		if _, err := fmt.Fprintln(w, strings.Join(cycle, " -> ")); err != nil {
			return err
		}
	}
	return nil
}
