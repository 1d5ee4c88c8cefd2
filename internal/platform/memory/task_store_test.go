package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/phrazzld/taskrank-api/internal/domain"
	"github.com/phrazzld/taskrank-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTask(title string, created time.Time) *domain.Task {
	return &domain.Task{
		Title:        title,
		Importance:   domain.DefaultImportance,
		Dependencies: []string{},
		CreatedAt:    created,
		UpdatedAt:    created,
	}
}

func TestTaskStoreCreateAssignsSequentialIDs(t *testing.T) {
	t.Parallel()
	s := NewTaskStore(nil)
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	first, err := s.Create(ctx, newTask("first", now))
	require.NoError(t, err)
	second, err := s.Create(ctx, &domain.Task{ID: "ignored", Title: "second", Importance: 3})
	require.NoError(t, err)

	assert.Equal(t, "1", first.ID)
	assert.Equal(t, "2", second.ID)
}

func TestTaskStoreCreateRejectsInvalid(t *testing.T) {
	t.Parallel()
	s := NewTaskStore(nil)

	_, err := s.Create(context.Background(), &domain.Task{Title: "", Importance: 5})
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
	assert.ErrorIs(t, err, domain.ErrTitleRequired)

	list, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestTaskStoreReturnsCopies(t *testing.T) {
	t.Parallel()
	s := NewTaskStore(nil)
	ctx := context.Background()

	input := newTask("copy me", time.Time{})
	input.Dependencies = []string{"9"}
	created, err := s.Create(ctx, input)
	require.NoError(t, err)

	input.Dependencies[0] = "mutated"
	created.Dependencies[0] = "mutated"
	created.Title = "mutated"

	got, err := s.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "copy me", got.Title)
	assert.Equal(t, []string{"9"}, got.Dependencies)
}

func TestTaskStoreListNewestFirst(t *testing.T) {
	t.Parallel()
	s := NewTaskStore(nil)
	ctx := context.Background()
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	_, err := s.Create(ctx, newTask("old", base))
	require.NoError(t, err)
	_, err = s.Create(ctx, newTask("new", base.Add(time.Hour)))
	require.NoError(t, err)
	_, err = s.Create(ctx, newTask("same instant as new", base.Add(time.Hour)))
	require.NoError(t, err)

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "same instant as new", list[0].Title)
	assert.Equal(t, "new", list[1].Title)
	assert.Equal(t, "old", list[2].Title)
}

func TestTaskStoreUpdate(t *testing.T) {
	t.Parallel()
	s := NewTaskStore(nil)
	ctx := context.Background()

	created, err := s.Create(ctx, newTask("before", time.Time{}))
	require.NoError(t, err)

	created.Title = "after"
	created.Importance = 9
	updated, err := s.Update(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, "after", updated.Title)

	got, err := s.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 9, got.Importance)

	t.Run("missing task", func(t *testing.T) {
		missing := newTask("ghost", time.Time{})
		missing.ID = "404"
		_, err := s.Update(ctx, missing)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)

		var storeErr *store.StoreError
		require.ErrorAs(t, err, &storeErr)
		assert.Equal(t, "task", storeErr.Entity)
		assert.Equal(t, "update", storeErr.Operation)
		assert.Contains(t, storeErr.Message, `"404"`)
	})

	t.Run("invalid replacement", func(t *testing.T) {
		bad := got.Clone()
		bad.Importance = 11
		_, err := s.Update(ctx, bad)
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
		assert.ErrorIs(t, err, domain.ErrImportanceRange)

		var storeErr *store.StoreError
		require.ErrorAs(t, err, &storeErr)
		assert.Equal(t, "update", storeErr.Operation)
	})
}

func TestTaskStoreDelete(t *testing.T) {
	t.Parallel()
	s := NewTaskStore(nil)
	ctx := context.Background()

	created, err := s.Create(ctx, newTask("doomed", time.Time{}))
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, created.ID))
	_, err = s.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
	err = s.Delete(ctx, created.ID)
	assert.True(t, store.IsNotFoundError(err))

	var storeErr *store.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "delete", storeErr.Operation)

	next, err := s.Create(ctx, newTask("after delete", time.Time{}))
	require.NoError(t, err)
	assert.Equal(t, "2", next.ID, "ids are never reused")
}

func TestTaskStoreConcurrentCreate(t *testing.T) {
	t.Parallel()
	s := NewTaskStore(nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Create(ctx, newTask(fmt.Sprintf("task %d", i), time.Time{}))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 50)

	seen := make(map[string]bool)
	for _, task := range list {
		assert.False(t, seen[task.ID], "duplicate id %s", task.ID)
		seen[task.ID] = true
	}
}
