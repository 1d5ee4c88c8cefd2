package priority

import "github.com/phrazzld/taskrank-api/internal/domain"

// Batch indexes the tasks submitted together for one scoring pass. Blocked
// counts are built once so that dependency pressure for every task costs O(1)
// after an O(N+E) build.
//
// A Batch never modifies the tasks it was built from and is safe for
// concurrent reads.
type Batch struct {
	blocked map[string]int
}

// NewBatch indexes tasks by the identifiers they depend on.
//
// Each dependent task is counted at most once per dependency, and a task that
// lists itself does not count as blocking itself.
func NewBatch(tasks []domain.Task) *Batch {
	blocked := make(map[string]int, len(tasks))

	for _, t := range tasks {
		seen := make(map[string]struct{}, len(t.Dependencies))
		for _, dep := range t.Dependencies {
			if dep == t.ID {
				continue
			}
			if _, dup := seen[dep]; dup {
				continue
			}
			seen[dep] = struct{}{}
			blocked[dep]++
		}
	}

	return &Batch{blocked: blocked}
}

// BlockedCount returns how many other tasks in the batch list id as a
// dependency.
func (b *Batch) BlockedCount(id string) int {
	if id == "" {
		return 0
	}
	return b.blocked[id]
}

// DependencyScore returns the dependency-pressure score for task.
func (b *Batch) DependencyScore(task domain.Task) float64 {
	return BlockedCountScore(b.BlockedCount(task.ID))
}
