package priority

import (
	"time"

	"github.com/phrazzld/taskrank-api/internal/domain"
)

// NeutralScore is returned for attributes that carry no signal, such as a
// missing or unparseable due date or a task nothing depends on.
const NeutralScore = 0.5

// UrgencyScore maps a due date to [0,1] relative to today.
//
// Dates are compared as calendar days. Tasks without a due date, or with one
// that does not parse as YYYY-MM-DD, score NeutralScore. Overdue tasks start
// at 0.9 and gain 0.1 per day overdue up to 1.0; future dates step down from
// 1.0 (due today) to 0.1 (more than 30 days out).
func UrgencyScore(dueDate string, today time.Time) float64 {
	if dueDate == "" {
		return NeutralScore
	}

	due, err := domain.ParseDate(dueDate)
	if err != nil {
		return NeutralScore
	}

	days := daysBetween(domain.Today(today), due)

	if days < 0 {
		return min(1.0, 0.9+float64(-days)*0.1)
	}

	switch {
	case days == 0:
		return 1.0
	case days <= 1:
		return 0.95
	case days <= 3:
		return 0.85
	case days <= 7:
		return 0.70
	case days <= 14:
		return 0.50
	case days <= 30:
		return 0.30
	default:
		return 0.10
	}
}

// daysBetween returns the whole number of days from a to b. Both must be
// midnight UTC. Unix seconds are used instead of Sub so that far-off dates do
// not saturate time.Duration.
func daysBetween(a, b time.Time) int64 {
	return (b.Unix() - a.Unix()) / secondsPerDay
}

const secondsPerDay = 24 * 60 * 60

// ImportanceScore clamps importance to the 1..10 scale and rescales it to
// [0.1,1.0]. Range enforcement belongs to input validation; the clamp only
// keeps the score bounded.
func ImportanceScore(importance int) float64 {
	if importance < domain.MinImportance {
		importance = domain.MinImportance
	} else if importance > domain.MaxImportance {
		importance = domain.MaxImportance
	}
	return float64(importance) / 10.0
}

// EffortScore maps estimated hours to [0.1,1.0], favouring quick wins.
// Zero, negative and sub-hour estimates all score 1.0.
func EffortScore(hours float64) float64 {
	switch {
	case hours <= 1:
		return 1.0
	case hours <= 2:
		return 0.9
	case hours <= 4:
		return 0.7
	case hours <= 8:
		return 0.5
	case hours <= 16:
		return 0.3
	default:
		return 0.1
	}
}

// BlockedCountScore maps the number of tasks waiting on a task to [0.5,1.0].
func BlockedCountScore(blocked int) float64 {
	switch {
	case blocked <= 0:
		return NeutralScore
	case blocked >= 5:
		return 1.0
	case blocked >= 3:
		return 0.9
	case blocked >= 2:
		return 0.8
	default:
		return 0.7
	}
}

// DependencyScore scores how many other tasks in tasks depend on task.
// Callers scoring a whole batch should build a Batch once and use
// Batch.DependencyScore instead.
func DependencyScore(task domain.Task, tasks []domain.Task) float64 {
	return NewBatch(tasks).DependencyScore(task)
}
