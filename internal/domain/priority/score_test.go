package priority

import (
	"testing"
	"time"

	"github.com/phrazzld/taskrank-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

var referenceDay = time.Date(2025, time.March, 10, 15, 4, 5, 0, time.UTC)

func dayOffset(days int) string {
	return referenceDay.AddDate(0, 0, days).Format(domain.DateLayout)
}

func TestUrgencyScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		dueDate  string
		expected float64
	}{
		{"no due date", "", 0.5},
		{"unparseable due date", "next tuesday", 0.5},
		{"due today", dayOffset(0), 1.0},
		{"due tomorrow", dayOffset(1), 0.95},
		{"due in 2 days", dayOffset(2), 0.85},
		{"due in 3 days", dayOffset(3), 0.85},
		{"due in 4 days", dayOffset(4), 0.70},
		{"due in 7 days", dayOffset(7), 0.70},
		{"due in 8 days", dayOffset(8), 0.50},
		{"due in 14 days", dayOffset(14), 0.50},
		{"due in 15 days", dayOffset(15), 0.30},
		{"due in 30 days", dayOffset(30), 0.30},
		{"due in 31 days", dayOffset(31), 0.10},
		{"due in 60 days", dayOffset(60), 0.10},
		{"one day overdue", dayOffset(-1), 1.0},
		{"five days overdue", dayOffset(-5), 1.0},
		{"far future", "9999-12-31", 0.10},
		{"far past", "0001-01-01", 1.0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, UrgencyScore(tc.dueDate, referenceDay), 1e-9)
		})
	}
}

func TestUrgencyScoreProperties(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1.0, UrgencyScore(dayOffset(0), referenceDay))
	assert.Equal(t, 0.95, UrgencyScore(dayOffset(1), referenceDay))
	assert.Less(t, UrgencyScore(dayOffset(60), referenceDay), 0.2)
	assert.Equal(t, 0.5, UrgencyScore("", referenceDay))
	assert.Greater(t, UrgencyScore(dayOffset(-5), referenceDay), 0.9)
}

func TestUrgencyScoreIgnoresTimeOfDayAndZone(t *testing.T) {
	t.Parallel()

	lateEvening := time.Date(2025, time.March, 10, 23, 59, 0, 0, time.UTC)
	earlyMorning := time.Date(2025, time.March, 10, 0, 0, 1, 0, time.FixedZone("UTC-8", -8*60*60))

	assert.Equal(t, 1.0, UrgencyScore("2025-03-10", lateEvening))
	assert.Equal(t, 1.0, UrgencyScore("2025-03-10", earlyMorning))
}

func TestImportanceScore(t *testing.T) {
	t.Parallel()

	for r := -3; r <= 15; r++ {
		clamped := min(max(r, 1), 10)
		assert.InDelta(t, float64(clamped)/10, ImportanceScore(r), 1e-9, "importance %d", r)
	}

	assert.Equal(t, 0.1, ImportanceScore(0))
	assert.Equal(t, 1.0, ImportanceScore(15))
	assert.Equal(t, 0.5, ImportanceScore(5))
}

func TestEffortScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		hours    float64
		expected float64
	}{
		{-2, 1.0},
		{0, 1.0},
		{0.5, 1.0},
		{1, 1.0},
		{1.5, 0.9},
		{2, 0.9},
		{3, 0.7},
		{4, 0.7},
		{8, 0.5},
		{12, 0.3},
		{16, 0.3},
		{16.1, 0.1},
		{20, 0.1},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, EffortScore(tc.hours), "hours %v", tc.hours)
	}
	assert.Less(t, EffortScore(20), 0.2)
}

func TestBlockedCountScore(t *testing.T) {
	t.Parallel()

	expected := map[int]float64{0: 0.5, 1: 0.7, 2: 0.8, 3: 0.9, 4: 0.9, 5: 1.0, 12: 1.0}
	for blocked, want := range expected {
		assert.Equal(t, want, BlockedCountScore(blocked), "blocked %d", blocked)
	}
}

func TestDependencyScore(t *testing.T) {
	t.Parallel()

	tasks := []domain.Task{
		{ID: "1", Title: "root"},
		{ID: "2", Title: "child a", Dependencies: []string{"1"}},
		{ID: "3", Title: "child b", Dependencies: []string{"1"}},
	}

	assert.Greater(t, DependencyScore(tasks[0], tasks), 0.7)
	assert.Equal(t, 0.8, DependencyScore(tasks[0], tasks))
	assert.Equal(t, 0.5, DependencyScore(tasks[1], tasks))
	assert.Equal(t, 0.5, DependencyScore(tasks[2], tasks))
}

func TestBatchBlockedCount(t *testing.T) {
	t.Parallel()

	tasks := []domain.Task{
		{ID: "1"},
		{ID: "2", Dependencies: []string{"1", "1"}},
		{ID: "3", Dependencies: []string{"3", "1"}},
		{ID: "4", Dependencies: []string{"missing"}},
	}
	batch := NewBatch(tasks)

	assert.Equal(t, 2, batch.BlockedCount("1"), "duplicates count once per dependent")
	assert.Equal(t, 0, batch.BlockedCount("3"), "self dependency does not count")
	assert.Equal(t, 1, batch.BlockedCount("missing"))
	assert.Equal(t, 0, batch.BlockedCount(""))
}
