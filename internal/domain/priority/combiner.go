package priority

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/phrazzld/taskrank-api/internal/domain"
)

// Explanation thresholds
const (
	highThreshold      = 0.8
	moderateThreshold  = 0.5
	quickWinThreshold  = 0.8
	highEffortCeiling  = 0.3
	standardPriority   = "standard priority"
	explanationJoinSep = ", "
)

// Breakdown holds the four component scores behind an aggregate priority,
// plus the blocked count that produced the dependency score.
type Breakdown struct {
	Urgency      float64 `json:"urgency"`
	Importance   float64 `json:"importance"`
	Effort       float64 `json:"effort"`
	Dependencies float64 `json:"dependencies"`
	BlockedCount int     `json:"blocked_count"`
}

// Result is the scored form of one task.
type Result struct {
	// Index is the task's position in the analyzed batch.
	Index       int       `json:"-"`
	TaskID      string    `json:"task_id"`
	Score       float64   `json:"priority_score"`
	Breakdown   Breakdown `json:"breakdown"`
	Explanation string    `json:"explanation"`
}

// ComputeBreakdown evaluates every score function for task against batch.
func ComputeBreakdown(task domain.Task, batch *Batch, today time.Time) Breakdown {
	blocked := batch.BlockedCount(task.ID)
	return Breakdown{
		Urgency:      UrgencyScore(task.DueDate, today),
		Importance:   ImportanceScore(task.Importance),
		Effort:       EffortScore(task.EstimatedHours),
		Dependencies: BlockedCountScore(blocked),
		BlockedCount: blocked,
	}
}

// Combine returns the weighted sum of the breakdown rounded to 4 decimal
// places.
func Combine(b Breakdown, w Weights) float64 {
	total := b.Urgency*w.Urgency +
		b.Importance*w.Importance +
		b.Effort*w.Effort +
		b.Dependencies*w.Dependencies
	return round4(total)
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// PriorityScore computes the aggregate priority for task. A nil weights
// pointer selects the default strategy.
func PriorityScore(task domain.Task, batch *Batch, weights *Weights, today time.Time) float64 {
	w := DefaultWeights()
	if weights != nil {
		w = *weights
	}
	return Combine(ComputeBreakdown(task, batch, today), w)
}

// Explain renders a short, human-readable tag list for a breakdown. It is a
// presentation aid only and plays no part in ranking.
func Explain(b Breakdown) string {
	parts := make([]string, 0, 4)

	parts = append(parts, levelTag(b.Urgency, "urgency"))
	parts = append(parts, levelTag(b.Importance, "importance"))

	if b.Effort >= quickWinThreshold {
		parts = append(parts, "quick win")
	} else if b.Effort <= highEffortCeiling {
		parts = append(parts, "high effort")
	}

	if b.BlockedCount > 0 {
		parts = append(parts, fmt.Sprintf("blocks %d task(s)", b.BlockedCount))
	}

	if len(parts) == 0 {
		return standardPriority
	}
	return strings.Join(parts, explanationJoinSep)
}

func levelTag(score float64, dimension string) string {
	switch {
	case score >= highThreshold:
		return "high " + dimension
	case score >= moderateThreshold:
		return "moderate " + dimension
	default:
		return "low " + dimension
	}
}

// Score computes the aggregate priority and explanation for task from one
// shared breakdown.
func Score(task domain.Task, batch *Batch, w Weights, today time.Time) Result {
	b := ComputeBreakdown(task, batch, today)
	return Result{
		TaskID:      task.ID,
		Score:       Combine(b, w),
		Breakdown:   b,
		Explanation: Explain(b),
	}
}
